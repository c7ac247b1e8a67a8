package sverilog

import (
	"fmt"
	"strings"
)

// lexer is a minimal hand-rolled scanner over the source bytes. Productions
// in parser.go call into it directly rather than going through a separate
// token stream, the same style as a nom combinator chain: each method
// consumes from the current position (or leaves it untouched on failure).
type lexer struct {
	src []byte
	pos int
}

func newLexer(src []byte) *lexer {
	return &lexer{src: src}
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.src)
}

func (l *lexer) peek() byte {
	if l.eof() {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

// skipSpaceAndComments consumes whitespace, `//` line comments, `/* */`
// block comments, and `(* *)` attribute blocks (treated the same as
// comments, since attributes carry no information this toolkit uses).
func (l *lexer) skipSpaceAndComments() {
	for {
		start := l.pos
		for !l.eof() && isSpace(l.peek()) {
			l.pos++
		}
		if l.peek() == '/' && l.peekAt(1) == '/' {
			for !l.eof() && l.peek() != '\n' {
				l.pos++
			}
			continue
		}
		if l.peek() == '/' && l.peekAt(1) == '*' {
			l.pos += 2
			for !l.eof() && !(l.peek() == '*' && l.peekAt(1) == '/') {
				l.pos++
			}
			if !l.eof() {
				l.pos += 2
			}
			continue
		}
		if l.peek() == '(' && l.peekAt(1) == '*' {
			l.pos += 2
			for !l.eof() && !(l.peek() == '*' && l.peekAt(1) == ')') {
				l.pos++
			}
			if !l.eof() {
				l.pos += 2
			}
			continue
		}
		if l.pos == start {
			return
		}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9') || c == '$'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// ws runs body after skipping leading whitespace/comments, then skips
// trailing whitespace/comments too, mirroring the grammar's ws() combinator.
func (l *lexer) ws(body func() (bool, error)) (bool, error) {
	l.skipSpaceAndComments()
	ok, err := body()
	if err != nil || !ok {
		return ok, err
	}
	l.skipSpaceAndComments()
	return true, nil
}

// ident consumes an identifier: either a backslash-escaped identifier
// (terminated by whitespace) or a plain [A-Za-z_][A-Za-z0-9_$]* token.
func (l *lexer) ident() (string, bool) {
	l.skipSpaceAndComments()
	start := l.pos
	if l.peek() == '\\' {
		l.pos++
		idStart := l.pos
		for !l.eof() && !isSpace(l.peek()) {
			l.pos++
		}
		if l.pos == idStart {
			l.pos = start
			return "", false
		}
		return string(l.src[idStart:l.pos]), true
	}
	if !isIdentStart(l.peek()) {
		l.pos = start
		return "", false
	}
	idStart := l.pos
	l.pos++
	for !l.eof() && isIdentCont(l.peek()) {
		l.pos++
	}
	return string(l.src[idStart:l.pos]), true
}

// uint consumes an unsigned decimal integer.
func (l *lexer) uint() (int, bool) {
	l.skipSpaceAndComments()
	start := l.pos
	if !isDigit(l.peek()) {
		return 0, false
	}
	for !l.eof() && isDigit(l.peek()) {
		l.pos++
	}
	var v int
	for _, c := range l.src[start:l.pos] {
		v = v*10 + int(c-'0')
	}
	return v, true
}

// int consumes an optionally-signed decimal integer.
func (l *lexer) int() (int, bool) {
	l.skipSpaceAndComments()
	start := l.pos
	neg := false
	if l.peek() == '-' {
		neg = true
		l.pos++
	} else if l.peek() == '+' {
		l.pos++
	}
	v, ok := l.uint()
	if !ok {
		l.pos = start
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}

// lit consumes a sized-constant literal `width'Rdigits` and decodes it.
func (l *lexer) lit() ([]WirexprBasic, bool, error) {
	l.skipSpaceAndComments()
	start := l.pos
	width, ok := l.uint()
	if !ok {
		return nil, false, nil
	}
	if l.peek() != '\'' {
		l.pos = start
		return nil, false, nil
	}
	l.pos++
	radix := l.peek()
	switch radix {
	case 'b', 'B', 'o', 'O', 'd', 'D', 'h', 'H':
		l.pos++
	default:
		l.pos = start
		return nil, false, nil
	}
	digitStart := l.pos
	for !l.eof() && isLiteralDigit(l.peek()) {
		l.pos++
	}
	if l.pos == digitStart {
		l.pos = start
		return nil, false, fmt.Errorf("literal %q has no digits", l.src[start:l.pos])
	}
	digits := string(l.src[digitStart:l.pos])
	basics, err := DecodeLiteral(width, radix, digits)
	if err != nil {
		l.pos = start
		return nil, true, err
	}
	return basics, true, nil
}

func isLiteralDigit(c byte) bool {
	_, isHex := hexDigitValue(c)
	return isHex || c == '_' || c == 'x' || c == 'X' || c == 'z' || c == 'Z'
}

// byteLit consumes a single literal byte (after skipping whitespace), e.g.
// ';', '(', ')', '[', ']', ',', '=', '.', '{', '}', ':'.
func (l *lexer) byteLit(c byte) bool {
	l.skipSpaceAndComments()
	if l.peek() != c {
		return false
	}
	l.pos++
	return true
}

// keyword consumes an exact identifier (e.g. "module", "endmodule", "input")
// that must not simply be a prefix of a longer identifier.
func (l *lexer) keyword(kw string) bool {
	l.skipSpaceAndComments()
	if !strings.HasPrefix(string(l.src[l.pos:]), kw) {
		return false
	}
	next := l.pos + len(kw)
	if next < len(l.src) && isIdentCont(l.src[next]) {
		return false
	}
	l.pos = next
	return true
}

// excerpt returns up to 50 bytes of unconsumed input for error messages.
func (l *lexer) excerpt() string {
	end := l.pos + 50
	if end > len(l.src) {
		end = len(l.src)
	}
	return string(l.src[l.pos:end])
}
