package sverilog

import (
	"fmt"

	"github.com/sarchlab/netlistdb/svrange"
)

// ParseError reports where parsing gave up: which production failed, and
// up to 50 bytes of the unconsumed input at that point.
type ParseError struct {
	Kind    string
	Excerpt string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("sverilog: parse error (%s) at: %s", e.Kind, e.Excerpt)
}

// parser adds grammar productions on top of the raw lexer.
type parser struct {
	*lexer
}

func (p *parser) errorAt(kind string) error {
	return &ParseError{Kind: kind, Excerpt: p.excerpt()}
}

// Parse parses a complete structural Verilog source file.
func Parse(src []byte) (*SVerilog, error) {
	p := &parser{newLexer(src)}
	for p.byteLit(';') {
	}
	var mods []ModuleDef
	for {
		p.skipSpaceAndComments()
		if p.eof() {
			break
		}
		md, ok, err := p.module()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, p.errorAt("module")
		}
		mods = append(mods, md)
		for p.byteLit(';') {
		}
	}
	return &SVerilog{Modules: mods}, nil
}

// ParseString parses a complete structural Verilog source string.
func ParseString(src string) (*SVerilog, error) {
	return Parse([]byte(src))
}

func (p *parser) peekIsByte(c byte) bool {
	p.skipSpaceAndComments()
	return p.peek() == c
}

func (p *parser) module() (ModuleDef, bool, error) {
	if !p.keyword("module") {
		return ModuleDef{}, false, nil
	}
	name, ok := p.ident()
	if !ok {
		return ModuleDef{}, false, p.errorAt("module name")
	}
	if !p.byteLit('(') {
		return ModuleDef{}, false, p.errorAt("module ports open")
	}
	var ports []PortDef
	if !p.peekIsByte(')') {
		for {
			pd, ok, err := p.portdef()
			if err != nil {
				return ModuleDef{}, false, err
			}
			if !ok {
				return ModuleDef{}, false, p.errorAt("module port")
			}
			ports = append(ports, pd)
			if p.byteLit(',') {
				continue
			}
			break
		}
	}
	if !p.byteLit(')') {
		return ModuleDef{}, false, p.errorAt("module ports close")
	}
	if !p.byteLit(';') {
		return ModuleDef{}, false, p.errorAt("module header semicolon")
	}

	var defs []WireDef
	var assigns []Assign
	var cells []Cell
	for {
		if p.keyword("endmodule") {
			break
		}
		if wd, ok, err := p.wiredefs(); err != nil {
			return ModuleDef{}, false, err
		} else if ok {
			defs = append(defs, wd...)
			continue
		}
		if as, ok, err := p.assign(); err != nil {
			return ModuleDef{}, false, err
		} else if ok {
			assigns = append(assigns, as)
			continue
		}
		if c, ok, err := p.cell(); err != nil {
			return ModuleDef{}, false, err
		} else if ok {
			cells = append(cells, c)
			continue
		}
		return ModuleDef{}, false, p.errorAt("module body")
	}
	return ModuleDef{
		Name: name,
		Module: Module{
			Ports:   ports,
			Defs:    defs,
			Assigns: assigns,
			Cells:   cells,
		},
	}, true, nil
}

func (p *parser) portdef() (PortDef, bool, error) {
	if p.byteLit('.') {
		name, ok := p.ident()
		if !ok {
			return PortDef{}, false, p.errorAt("named port")
		}
		if !p.byteLit('(') {
			return PortDef{}, false, p.errorAt("named port open")
		}
		var expr Wirexpr
		if !p.peekIsByte(')') {
			e, err := p.wirexpr()
			if err != nil {
				return PortDef{}, false, err
			}
			expr = e
		}
		if !p.byteLit(')') {
			return PortDef{}, false, p.errorAt("named port close")
		}
		return PortDef{Name: name, Conn: expr}, true, nil
	}
	name, ok := p.ident()
	if !ok {
		return PortDef{}, false, nil
	}
	return PortDef{Name: name}, true, nil
}

func (p *parser) wiredefs() ([]WireDef, bool, error) {
	var typ WireDefType
	switch {
	case p.keyword("input"):
		typ = Input
	case p.keyword("output"):
		typ = Output
	case p.keyword("inout"):
		typ = InOut
	case p.keyword("wire"):
		typ = Wire
	default:
		return nil, false, nil
	}

	var width *svrange.Range
	if p.byteLit('[') {
		a, ok := p.int()
		if !ok {
			return nil, false, p.errorAt("wiredef width")
		}
		if !p.byteLit(':') {
			return nil, false, p.errorAt("wiredef width")
		}
		b, ok := p.int()
		if !ok {
			return nil, false, p.errorAt("wiredef width")
		}
		if !p.byteLit(']') {
			return nil, false, p.errorAt("wiredef width")
		}
		r := svrange.Range{Left: a, Right: b}
		width = &r
	}

	var defs []WireDef
	for {
		name, ok := p.ident()
		if !ok {
			return nil, false, p.errorAt("wiredef name")
		}
		defs = append(defs, WireDef{Name: name, Width: width, Type: typ})
		if p.byteLit(',') {
			continue
		}
		break
	}
	if !p.byteLit(';') {
		return nil, false, p.errorAt("wiredef semicolon")
	}
	return defs, true, nil
}

func (p *parser) assign() (Assign, bool, error) {
	if !p.keyword("assign") {
		return Assign{}, false, nil
	}
	lhs, err := p.wirexpr()
	if err != nil {
		return Assign{}, false, err
	}
	if !p.byteLit('=') {
		return Assign{}, false, p.errorAt("assign =")
	}
	rhs, err := p.wirexpr()
	if err != nil {
		return Assign{}, false, err
	}
	if !p.byteLit(';') {
		return Assign{}, false, p.errorAt("assign ;")
	}
	return Assign{LHS: lhs, RHS: rhs}, true, nil
}

// cell is tried only after wiredefs/assign fail, so any leading keyword
// they own has already been ruled out; two bare identifiers followed by
// '(' is unambiguously an instantiation.
func (p *parser) cell() (Cell, bool, error) {
	save := p.pos
	macroName, ok := p.ident()
	if !ok {
		return Cell{}, false, nil
	}
	cellName, ok := p.ident()
	if !ok {
		p.pos = save
		return Cell{}, false, nil
	}
	if !p.byteLit('(') {
		p.pos = save
		return Cell{}, false, nil
	}

	var ioports []IOPort
	if !p.peekIsByte(')') {
		for {
			if !p.byteLit('.') {
				return Cell{}, false, p.errorAt("cell ioport")
			}
			pinName, ok := p.ident()
			if !ok {
				return Cell{}, false, p.errorAt("cell pin name")
			}
			if !p.byteLit('(') {
				return Cell{}, false, p.errorAt("cell ioport open")
			}
			var expr Wirexpr
			if !p.peekIsByte(')') {
				e, err := p.wirexpr()
				if err != nil {
					return Cell{}, false, err
				}
				expr = e
			}
			if !p.byteLit(')') {
				return Cell{}, false, p.errorAt("cell ioport close")
			}
			// an empty `.pin()` connection is dropped, not kept as a nil expr.
			if expr != nil {
				ioports = append(ioports, IOPort{PinName: pinName, Expr: expr})
			}
			if p.byteLit(',') {
				continue
			}
			break
		}
	}
	if !p.byteLit(')') {
		return Cell{}, false, p.errorAt("cell close")
	}
	if !p.byteLit(';') {
		return Cell{}, false, p.errorAt("cell ;")
	}
	return Cell{MacroName: macroName, CellName: cellName, IOPorts: ioports}, true, nil
}

// wirexpr parses either a `{...}` concatenation (flattening nested
// concatenations and multi-chunk literals into one flat sequence) or a
// single basic term.
func (p *parser) wirexpr() (Wirexpr, error) {
	if p.byteLit('{') {
		var out Wirexpr
		for {
			item, err := p.wirexpr()
			if err != nil {
				return nil, err
			}
			out = append(out, item...)
			if p.byteLit(',') {
				continue
			}
			break
		}
		if !p.byteLit('}') {
			return nil, p.errorAt("concat close")
		}
		return out, nil
	}
	return p.basicOrLiteral()
}

// basicOrLiteral parses one non-concatenation wirexpr element: a sized
// literal (which may decode to several chunks), or an identifier reference
// (bare, single-bit, or sliced).
func (p *parser) basicOrLiteral() ([]WirexprBasic, error) {
	if basics, ok, err := p.lit(); err != nil {
		return nil, err
	} else if ok {
		return basics, nil
	}

	name, ok := p.ident()
	if !ok {
		return nil, p.errorAt("wirexpr term")
	}
	if p.byteLit('[') {
		a, ok := p.int()
		if !ok {
			return nil, p.errorAt("wirexpr index")
		}
		if p.byteLit(':') {
			b, ok := p.int()
			if !ok {
				return nil, p.errorAt("wirexpr slice")
			}
			if !p.byteLit(']') {
				return nil, p.errorAt("wirexpr slice close")
			}
			return []WirexprBasic{{Kind: Slice, Name: name, Range: svrange.Range{Left: a, Right: b}}}, nil
		}
		if !p.byteLit(']') {
			return nil, p.errorAt("wirexpr index close")
		}
		return []WirexprBasic{{Kind: SingleBit, Name: name, Index: a}}, nil
	}
	return []WirexprBasic{{Kind: Full, Name: name}}, nil
}
