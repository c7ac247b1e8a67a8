package netlistdb

import (
	"fmt"

	"github.com/sarchlab/netlistdb/svrange"
	"github.com/sarchlab/netlistdb/sverilog"
)

// bitConst is the 2-bit encoding packed into ExprBit for a constant bit:
// bit 0 is the value, bit 1 is the is-x/z flag. 0=0, 1=1, 2=X, 3=Z.
type bitConst int

const (
	bitZero bitConst = 0
	bitOne  bitConst = 1
	bitX    bitConst = 2
	bitZ    bitConst = 3
)

// ExprBit is one resolved bit of a wire expression: either a constant (0,
// 1, X or Z) or a reference to a named signal's bit (idx is nil for a
// scalar signal).
type ExprBit struct {
	IsConst bool
	Const   bitConst

	Name string
	Idx  *int
}

// ModuleMap is the per-module index built once before flattening begins:
// declared widths and kinds of every def, the resolved width of every
// header port, and helpers to walk a Wirexpr bit by bit.
type ModuleMap struct {
	DefWidths  map[string]*svrange.Range
	DefTypes   map[string]sverilog.WireDefType
	PortWidths map[string]*svrange.Range
}

// NewModuleMap indexes a single parsed module body.
func NewModuleMap(m sverilog.Module) (*ModuleMap, error) {
	mm := &ModuleMap{
		DefWidths:  make(map[string]*svrange.Range),
		DefTypes:   make(map[string]sverilog.WireDefType),
		PortWidths: make(map[string]*svrange.Range),
	}
	for _, def := range m.Defs {
		if existing, ok := mm.DefTypes[def.Name]; ok {
			if !compatibleDefTypes(existing, def.Type) {
				return nil, fmt.Errorf("conflicting declarations for %q: %v vs %v", def.Name, existing, def.Type)
			}
			if def.Type != sverilog.Wire {
				mm.DefTypes[def.Name] = def.Type
			}
			continue
		}
		mm.DefTypes[def.Name] = def.Type
		mm.DefWidths[def.Name] = def.Width
	}

	for _, port := range m.Ports {
		if !port.IsConn() {
			// bare port: inherit the range straight from its definition
			// (nil for a scalar def), always present in the map.
			mm.PortWidths[port.Name] = cloneRange(mm.DefWidths[port.Name])
			continue
		}

		w := mm.EvalExprLen(port.Conn)
		switch {
		case w > 1:
			r := svrange.Range{Left: w - 1, Right: 0}
			mm.PortWidths[port.Name] = &r
		case w == 1:
			if mm.exprMentionsVector(port.Conn) {
				r := svrange.Range{Left: 0, Right: 0}
				mm.PortWidths[port.Name] = &r
			} else {
				mm.PortWidths[port.Name] = nil
			}
		default:
			// w == 0: no entry at all, not even a nil one.
		}
	}

	return mm, nil
}

// compatibleDefTypes allows re-declaring a name as `wire` alongside one
// `input`/`output`/`inout` declaration (the common `input [7:0] a; wire
// [7:0] a;` pattern), but rejects two conflicting io directions.
func compatibleDefTypes(a, b sverilog.WireDefType) bool {
	if a == b {
		return true
	}
	return a == sverilog.Wire || b == sverilog.Wire
}

func cloneRange(r *svrange.Range) *svrange.Range {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

// exprMentionsVector reports whether expr references any vector
// identifier (directly, or through an explicit slice), used to
// disambiguate a 1-bit named-port connection: connecting a lone scalar
// wire keeps the port scalar, but connecting a single bit peeled off a
// vector (by name or by an explicit [i] slice) makes it a 1-bit vector.
func (mm *ModuleMap) exprMentionsVector(expr sverilog.Wirexpr) bool {
	for _, b := range expr {
		switch b.Kind {
		case sverilog.Slice:
			return true
		case sverilog.Full, sverilog.SingleBit:
			if w, ok := mm.DefWidths[b.Name]; ok && w != nil {
				return true
			}
		}
	}
	return false
}

// EvalExprLen returns the bit width of expr without materializing bits.
func (mm *ModuleMap) EvalExprLen(expr sverilog.Wirexpr) int {
	total := 0
	for _, b := range expr {
		total += mm.basicLen(b)
	}
	return total
}

func (mm *ModuleMap) basicLen(b sverilog.WirexprBasic) int {
	switch b.Kind {
	case sverilog.Full:
		if w, ok := mm.DefWidths[b.Name]; ok && w != nil {
			return w.Len()
		}
		return 1
	case sverilog.SingleBit:
		return 1
	case sverilog.Slice:
		return b.Range.Len()
	case sverilog.Literal:
		return b.Width
	default:
		return 0
	}
}

// EvalExpr lazily yields one ExprBit per bit of expr, most-significant
// basic term first, each basic term's own bits in its declared direction.
func (mm *ModuleMap) EvalExpr(expr sverilog.Wirexpr, yield func(ExprBit) bool) {
	for _, b := range expr {
		if !mm.evalBasic(b, yield) {
			return
		}
	}
}

// ExprBits materializes EvalExpr's sequence into a slice, for callers that
// need simultaneous (zipped) iteration over two expressions' bits.
func (mm *ModuleMap) ExprBits(expr sverilog.Wirexpr) []ExprBit {
	out := make([]ExprBit, 0, mm.EvalExprLen(expr))
	mm.EvalExpr(expr, func(b ExprBit) bool {
		out = append(out, b)
		return true
	})
	return out
}

func (mm *ModuleMap) evalBasic(b sverilog.WirexprBasic, yield func(ExprBit) bool) bool {
	switch b.Kind {
	case sverilog.Full:
		w, ok := mm.DefWidths[b.Name]
		if !ok || w == nil {
			return yield(ExprBit{Name: b.Name})
		}
		for idx := range w.Iter {
			i := idx
			if !yield(ExprBit{Name: b.Name, Idx: &i}) {
				return false
			}
		}
		return true
	case sverilog.SingleBit:
		i := b.Index
		return yield(ExprBit{Name: b.Name, Idx: &i})
	case sverilog.Slice:
		for idx := range b.Range.Iter {
			i := idx
			if !yield(ExprBit{Name: b.Name, Idx: &i}) {
				return false
			}
		}
		return true
	case sverilog.Literal:
		for i := b.Width - 1; i >= 0; i-- {
			v := b.Value.Bit(i)
			x := b.XZMask.Bit(i)
			c := bitConst((x << 1) | v)
			if !yield(ExprBit{IsConst: true, Const: c}) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
