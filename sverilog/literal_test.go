package sverilog_test

import (
	"math/big"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/netlistdb/sverilog"
)

var _ = Describe("DecodeLiteral", func() {
	It("decodes plain hex, binary, octal and decimal literals", func() {
		basics, err := sverilog.DecodeLiteral(8, 'h', "2a")
		Expect(err).NotTo(HaveOccurred())
		Expect(basics).To(HaveLen(1))
		Expect(basics[0].Value.Int64()).To(Equal(int64(0x2a)))
		Expect(basics[0].XZMask.Sign()).To(Equal(0))

		basics, err = sverilog.DecodeLiteral(4, 'b', "1010")
		Expect(err).NotTo(HaveOccurred())
		Expect(basics[0].Value.Int64()).To(Equal(int64(0b1010)))

		basics, err = sverilog.DecodeLiteral(6, 'o', "17")
		Expect(err).NotTo(HaveOccurred())
		Expect(basics[0].Value.Int64()).To(Equal(int64(017)))

		basics, err = sverilog.DecodeLiteral(8, 'd', "200")
		Expect(err).NotTo(HaveOccurred())
		Expect(basics[0].Value.Int64()).To(Equal(int64(200)))
	})

	It("resolves a leading x/z digit pair per the wildcard propagation rule", func() {
		// S5: 8'hxz resolves to value-mask 0x0f and xz-mask 0xff.
		basics, err := sverilog.DecodeLiteral(8, 'h', "xz")
		Expect(err).NotTo(HaveOccurred())
		Expect(basics).To(HaveLen(1))
		Expect(basics[0].Value.Uint64()).To(Equal(uint64(0x0f)))
		Expect(basics[0].XZMask.Uint64()).To(Equal(uint64(0xff)))
	})

	It("propagates a leading wildcard digit into implicit zero-padded positions", func() {
		// only one hex digit supplied for a two-digit (8 bit) width: the
		// supplied digit is entirely 'x', so the padded high digit also
		// becomes entirely 'x'.
		basics, err := sverilog.DecodeLiteral(8, 'h', "x")
		Expect(err).NotTo(HaveOccurred())
		Expect(basics[0].Value.Sign()).To(Equal(0))
		Expect(basics[0].XZMask.Uint64()).To(Equal(uint64(0xff)))
	})

	It("does not propagate when the supplied digit is fully known", func() {
		basics, err := sverilog.DecodeLiteral(8, 'h', "3")
		Expect(err).NotTo(HaveOccurred())
		Expect(basics[0].Value.Uint64()).To(Equal(uint64(0x03)))
		Expect(basics[0].XZMask.Sign()).To(Equal(0))
	})

	It("splits a wide literal into 128-bit chunks, high-order first", func() {
		// S4: a 256-bit literal produces two 128-bit Literal basics whose
		// concatenation equals the declared value.
		digits := ""
		for i := 0; i < 256; i++ {
			digits += "1"
		}
		basics, err := sverilog.DecodeLiteral(256, 'b', digits)
		Expect(err).NotTo(HaveOccurred())
		Expect(basics).To(HaveLen(2))
		Expect(basics[0].Width).To(Equal(128))
		Expect(basics[1].Width).To(Equal(128))

		full := new(big.Int).Lsh(basics[0].Value, 128)
		full.Or(full, basics[1].Value)

		want := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
		Expect(full.Cmp(want)).To(Equal(0))
	})

	It("rejects x/z digits in decimal literals", func() {
		_, err := sverilog.DecodeLiteral(8, 'd', "1x")
		Expect(err).To(HaveOccurred())
	})

	It("round-trips a plain literal through String()", func() {
		basics, err := sverilog.DecodeLiteral(8, 'h', "2a")
		Expect(err).NotTo(HaveOccurred())
		Expect(basics[0].String()).To(Equal("8'h2a"))
	})
})
