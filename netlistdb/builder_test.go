package netlistdb_test

import (
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/netlistdb/clilog"
	"github.com/sarchlab/netlistdb/netlistdb"
	"github.com/sarchlab/netlistdb/sverilog"
	"github.com/sarchlab/netlistdb/svrange"
)

// directionsByPin classifies standard-cell-like macro pins the way a real
// technology library would: every pin listed in outputPins (keyed
// "macro.pin") drives, every other pin listens.
func directionsByPin(outputPins map[string]bool) netlistdb.FuncLeafPinProvider {
	return func(macro, pin string, idx *int) netlistdb.Direction {
		if outputPins[macro+"."+pin] {
			return netlistdb.O
		}
		return netlistdb.I
	}
}

func mustParse(src string) *sverilog.SVerilog {
	sv, err := sverilog.ParseString(src)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return sv
}

var _ = Describe("Builder", func() {
	It("flattens a simple flat netlist matching the reference fixture (S1)", func() {
		src := `
module simple (inp1, inp2, clk, out);
  input inp1, inp2, clk;  output out;  wire n1, n2;
  na02s01 u1 (.a(inp1), .b(inp2), .o(n1));
  ms00f80 f1 (.d(n1),  .ck(clk),  .o(n2));
  in01s01 u2 (.a(n2),  .o(out));
endmodule
`
		sv := mustParse(src)
		lib := directionsByPin(map[string]bool{
			"na02s01.o": true,
			"ms00f80.o": true,
			"in01s01.o": true,
		})
		db, err := netlistdb.NewBuilder().
			WithLeafPinProvider(lib).
			WithSink(clilog.NopSink{}).
			Build(sv)
		Expect(err).NotTo(HaveOccurred())

		Expect(db.NumCells).To(Equal(4))
		Expect(db.NumPins).To(Equal(12))
		Expect(db.NumNets).To(Equal(6))
		Expect(db.Pin2Cell).To(Equal([]int{0, 0, 0, 0, 1, 1, 1, 2, 2, 2, 3, 3}))
		Expect(db.Pin2Net).To(Equal([]int{0, 1, 2, 3, 0, 1, 4, 4, 2, 5, 5, 3}))

		dirs := make([]netlistdb.Direction, db.NumPins)
		copy(dirs, db.PinDirect)
		Expect(dirs).To(Equal([]netlistdb.Direction{
			netlistdb.O, netlistdb.O, netlistdb.O, netlistdb.I,
			netlistdb.I, netlistdb.I, netlistdb.O, netlistdb.I,
			netlistdb.I, netlistdb.O, netlistdb.I, netlistdb.O,
		}))
		Expect(db.Cell2NOutputs).To(Equal([]int{3, 1, 1, 1}))
		Expect(db.ConstantNets).To(BeEmpty())
	})

	It("maps an aliased named top port to its underlying pin (S3)", func() {
		src := `
module m (real_inp2, .inp2(real_inp2), out);
  input real_inp2; output out; wire n;
  buf01 u1 (.a(real_inp2), .o(out));
endmodule
`
		sv := mustParse(src)
		lib := directionsByPin(map[string]bool{"buf01.o": true})
		db, err := netlistdb.NewBuilder().
			WithLeafPinProvider(lib).
			WithSink(clilog.NopSink{}).
			Build(sv)
		Expect(err).NotTo(HaveOccurred())

		realPinID, ok := db.PinNameToID[""+"\x00"+"real_inp2"]
		Expect(ok).To(BeTrue())

		aliasPinID, ok := db.PortNameToPinID[""+"\x00"+"inp2"]
		Expect(ok).To(BeTrue())
		Expect(aliasPinID).To(Equal(realPinID))

		_, hasOwnAliasPin := db.PinNameToID[""+"\x00"+"inp2"]
		Expect(hasOwnAliasPin).To(BeTrue())
	})

	It("rejects a net driven by two output pins (S6)", func() {
		src := `
module bad (out);
  output out; wire x, y;
  na02s01 u1 (.a(x), .b(y), .o(out));
  in01s01 u2 (.a(x), .o(out));
endmodule
`
		sv := mustParse(src)
		lib := directionsByPin(map[string]bool{
			"na02s01.o": true,
			"in01s01.o": true,
		})
		_, err := netlistdb.NewBuilder().
			WithLeafPinProvider(lib).
			WithSink(clilog.NopSink{}).
			Build(sv)
		Expect(err).To(MatchError(netlistdb.ErrMultiDriver))
	})

	It("ties a literal-driven net to a constant", func() {
		src := `
module c (out);
  output out; wire n;
  assign n = 1'b0;
  buf01 u1 (.a(n), .o(out));
endmodule
`
		sv := mustParse(src)
		lib := directionsByPin(map[string]bool{"buf01.o": true})
		db, err := netlistdb.NewBuilder().
			WithLeafPinProvider(lib).
			WithSink(clilog.NopSink{}).
			Build(sv)
		Expect(err).NotTo(HaveOccurred())

		var zeroNetID = -1
		for netID, isOne := range db.ConstantNets {
			Expect(isOne).To(BeFalse())
			zeroNetID = netID
		}
		Expect(zeroNetID).NotTo(Equal(-1))
	})

	It("consults a mocked pin-info provider for leaf cell directions", func() {
		src := `
module m (inp1, inp2, out);
  input inp1, inp2; output out; wire n1;
  na02s01 u1 (.a(inp1), .b(inp2), .o(n1));
  in01s01 u2 (.a(n1), .o(out));
endmodule
`
		sv := mustParse(src)

		ctrl := gomock.NewController(GinkgoT())
		lib := NewMockLeafPinProvider(ctrl)
		lib.EXPECT().WidthOf(gomock.Any(), gomock.Any()).Return(svrange.Range{}, false).AnyTimes()
		lib.EXPECT().ShouldWarnMissingDirections().Return(true).AnyTimes()
		lib.EXPECT().DirectionOf("na02s01", "a", gomock.Any()).Return(netlistdb.I).AnyTimes()
		lib.EXPECT().DirectionOf("na02s01", "b", gomock.Any()).Return(netlistdb.I).AnyTimes()
		lib.EXPECT().DirectionOf("na02s01", "o", gomock.Any()).Return(netlistdb.O).AnyTimes()
		lib.EXPECT().DirectionOf("in01s01", "a", gomock.Any()).Return(netlistdb.I).AnyTimes()
		lib.EXPECT().DirectionOf("in01s01", "o", gomock.Any()).Return(netlistdb.O).AnyTimes()

		db, err := netlistdb.NewBuilder().
			WithLeafPinProvider(lib).
			WithSink(clilog.NopSink{}).
			Build(sv)
		Expect(err).NotTo(HaveOccurred())
		Expect(db.Cell2NOutputs).To(Equal([]int{2, 1, 1}))
	})

	It("builds byte-identical Database snapshots for the same source (diffed with go-cmp)", func() {
		src := `
module simple (inp1, inp2, clk, out);
  input inp1, inp2, clk;  output out;  wire n1, n2;
  na02s01 u1 (.a(inp1), .b(inp2), .o(n1));
  ms00f80 f1 (.d(n1),  .ck(clk),  .o(n2));
  in01s01 u2 (.a(n2),  .o(out));
endmodule
`
		lib := directionsByPin(map[string]bool{
			"na02s01.o": true,
			"ms00f80.o": true,
			"in01s01.o": true,
		})

		db1, err := netlistdb.NewBuilder().
			WithLeafPinProvider(lib).
			WithSink(clilog.NopSink{}).
			Build(mustParse(src))
		Expect(err).NotTo(HaveOccurred())

		db2, err := netlistdb.NewBuilder().
			WithLeafPinProvider(lib).
			WithSink(clilog.NopSink{}).
			Build(mustParse(src))
		Expect(err).NotTo(HaveOccurred())

		Expect(cmp.Diff(db1, db2)).To(BeEmpty())
	})

	It("rejects a recursive module hierarchy", func() {
		src := `
module a (p);
  input p;
  a u1 (.p(p));
endmodule
`
		sv := mustParse(src)
		_, err := netlistdb.NewBuilder().
			WithSink(clilog.NopSink{}).
			Build(sv)
		Expect(err).To(MatchError(netlistdb.ErrRecursion))
	})
})
