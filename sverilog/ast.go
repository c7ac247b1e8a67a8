// Package sverilog implements a tokenizer and parser for the structural
// subset of Verilog described by the netlist-flattening toolkit: modules,
// wire/IO declarations, continuous assignments, and cell instantiations.
// Behavioral constructs (always/initial blocks, expression operators
// beyond concatenation) are out of scope.
package sverilog

import (
	"math/big"

	"github.com/sarchlab/netlistdb/svrange"
)

// WireDefType is the declared kind of a wire/IO definition.
type WireDefType int

const (
	Input WireDefType = iota
	Output
	InOut
	Wire
)

func (t WireDefType) String() string {
	switch t {
	case Input:
		return "input"
	case Output:
		return "output"
	case InOut:
		return "inout"
	case Wire:
		return "wire"
	default:
		return "?"
	}
}

// WireDef is one `input`/`output`/`inout`/`wire` declared name, with an
// optional vector width shared by every name on the same declaration line.
type WireDef struct {
	Name  string
	Width *svrange.Range // nil for scalar defs
	Type  WireDefType
}

// BasicKind distinguishes the four shapes a WirexprBasic can take.
type BasicKind int

const (
	Full BasicKind = iota
	SingleBit
	Slice
	Literal
)

// WirexprBasic is one non-concatenation term of a wire expression: a bare
// identifier reference, a single-bit reference, a vector slice, or a sized
// constant literal. A literal wider than 128 bits is represented as an
// ordered sequence of WirexprBasic Literal terms (high-order first); see
// DecodeLiteral.
type WirexprBasic struct {
	Kind BasicKind

	// Full, SingleBit, Slice
	Name  string
	Index int         // SingleBit
	Range svrange.Range // Slice

	// Literal
	Width  int
	Value  *big.Int // value bits, width-masked
	XZMask *big.Int // 1 bit per unknown/high-impedance bit position
}

// Wirexpr is a wire expression: a single basic term, or (for a `{...}`
// concatenation, or an oversize literal split into multiple chunks) a
// sequence of basic terms evaluated in order.
type Wirexpr []WirexprBasic

// PortDef is a module header port: either a bare identifier (inheriting
// its range from the matching wire/IO definition) or a named-port
// connection `.name(expr)`.
type PortDef struct {
	Name string
	Conn Wirexpr // nil for a bare identifier port
}

// IsConn reports whether this is a named-port connection.
func (p PortDef) IsConn() bool { return p.Conn != nil }

// Assign is a continuous `assign lhs = rhs;` statement.
type Assign struct {
	LHS, RHS Wirexpr
}

// IOPort is one `.macroPin(expr)` connection inside a cell instantiation.
type IOPort struct {
	PinName string
	Expr    Wirexpr
}

// Cell is a parsed instantiation: `MacroName CellName ( .pin(expr), ... );`
type Cell struct {
	MacroName string
	CellName  string
	IOPorts   []IOPort
}

// Module is a single parsed `module ... endmodule` block.
type Module struct {
	Ports   []PortDef
	Defs    []WireDef
	Assigns []Assign
	Cells   []Cell
}

// ModuleDef pairs a module name with its parsed body. SVerilog keeps these
// in declaration order (not a map) so that downstream consumers needing
// deterministic iteration don't need to re-sort; netlistdb builds its own
// by-name index on top of this.
type ModuleDef struct {
	Name   string
	Module Module
}

// SVerilog is the whole parsed source: an ordered list of modules.
type SVerilog struct {
	Modules []ModuleDef
}
