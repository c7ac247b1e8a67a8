package sverilog_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/netlistdb/sverilog"
)

var _ = Describe("Parse", func() {
	It("parses a simple module with ports, defs, an assign and a cell", func() {
		src := `
			module top(a, b, y);
				input a, b;
				output y;
				wire [3:0] mid;
				assign mid[0] = a;
				AND2 u1 ( .A(a), .B(b), .Y(y) );
			endmodule
		`
		sv, err := sverilog.ParseString(src)
		Expect(err).NotTo(HaveOccurred())
		Expect(sv.Modules).To(HaveLen(1))

		m := sv.Modules[0]
		Expect(m.Name).To(Equal("top"))
		Expect(m.Module.Ports).To(HaveLen(3))
		Expect(m.Module.Ports[0].IsConn()).To(BeFalse())
		Expect(m.Module.Defs).To(HaveLen(4))
		Expect(m.Module.Assigns).To(HaveLen(1))
		Expect(m.Module.Cells).To(HaveLen(1))

		cell := m.Module.Cells[0]
		Expect(cell.MacroName).To(Equal("AND2"))
		Expect(cell.CellName).To(Equal("u1"))
		Expect(cell.IOPorts).To(HaveLen(3))
	})

	It("skips line comments, block comments and attribute blocks", func() {
		src := `
			// a leading comment
			module top(a); // trailing
			/* block
			   comment */
			(* keep = "true" *)
			input a;
			endmodule
		`
		sv, err := sverilog.ParseString(src)
		Expect(err).NotTo(HaveOccurred())
		Expect(sv.Modules).To(HaveLen(1))
		Expect(sv.Modules[0].Module.Defs).To(HaveLen(1))
	})

	It("accepts escaped identifiers", func() {
		src := `
			module top(\a.b );
				input \a.b ;
			endmodule
		`
		sv, err := sverilog.ParseString(src)
		Expect(err).NotTo(HaveOccurred())
		Expect(sv.Modules[0].Module.Ports[0].Name).To(Equal("a.b"))
	})

	It("parses named port connections and drops empty ones", func() {
		src := `
			module top();
			endmodule
			module holder();
				SUB u1 ( .in(1'b0), .unused() );
			endmodule
		`
		sv, err := sverilog.ParseString(src)
		Expect(err).NotTo(HaveOccurred())
		Expect(sv.Modules).To(HaveLen(2))
		cell := sv.Modules[1].Module.Cells[0]
		Expect(cell.IOPorts).To(HaveLen(1))
		Expect(cell.IOPorts[0].PinName).To(Equal("in"))
	})

	It("tolerates stray top-level semicolons between modules", func() {
		src := `;; module a(); endmodule ;; module b(); endmodule ;`
		sv, err := sverilog.ParseString(src)
		Expect(err).NotTo(HaveOccurred())
		Expect(sv.Modules).To(HaveLen(2))
	})

	It("reports a parse error with a bounded excerpt on malformed input", func() {
		_, err := sverilog.ParseString(`module top( )) endmodule`)
		Expect(err).To(HaveOccurred())

		var perr *sverilog.ParseError
		Expect(err).To(BeAssignableToTypeOf(perr))
	})

	It("parses slices and single-bit references", func() {
		src := `
			module top(a);
				input [7:0] a;
				wire b;
				assign b = a[3];
				wire [1:0] c;
				assign c = a[5:4];
			endmodule
		`
		sv, err := sverilog.ParseString(src)
		Expect(err).NotTo(HaveOccurred())
		assigns := sv.Modules[0].Module.Assigns
		Expect(assigns).To(HaveLen(2))
		Expect(assigns[0].RHS[0].Kind).To(Equal(sverilog.SingleBit))
		Expect(assigns[1].RHS[0].Kind).To(Equal(sverilog.Slice))
	})

	It("parses concatenation expressions", func() {
		src := `
			module top(a);
				input a;
				wire [1:0] y;
				assign y = {a, 1'b0};
			endmodule
		`
		sv, err := sverilog.ParseString(src)
		Expect(err).NotTo(HaveOccurred())
		rhs := sv.Modules[0].Module.Assigns[0].RHS
		Expect(rhs).To(HaveLen(2))
	})

	It("flattens nested concatenations", func() {
		src := `
			module top(a, b, c);
				input a, b, c;
				wire [2:0] y;
				assign y = {a, {b, c}};
			endmodule
		`
		sv, err := sverilog.ParseString(src)
		Expect(err).NotTo(HaveOccurred())
		rhs := sv.Modules[0].Module.Assigns[0].RHS
		Expect(rhs).To(HaveLen(3))
	})
})
