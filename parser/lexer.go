package parser

import (
	"github.com/cmkilger/goabnf/abnferr"
	"github.com/cmkilger/goabnf/corerule"
	"github.com/cmkilger/goabnf/element"
)

// lexer tokenizes ABNF grammar text. It swallows whitespace, comments,
// and continuation line endings (a c-nl immediately followed by WSP) as
// trivia, surfacing a single tokenKindNewline for every line ending that
// is NOT a continuation. That is exactly the signal the parser needs to
// tell a concatenation's next element apart from the next rule's name.
type lexer struct {
	runes []rune
	pos   int
	row   int
	cfg   config
}

func newLexer(src string, cfg config) *lexer {
	return &lexer{runes: []rune(src), row: 1, cfg: cfg}
}

func (l *lexer) offset() int { return l.pos }

func (l *lexer) peekAt(off int) (rune, bool) {
	i := l.pos + off
	if i < 0 || i >= len(l.runes) {
		return 0, false
	}
	return l.runes[i], true
}

func (l *lexer) peek() (rune, bool) { return l.peekAt(0) }

func (l *lexer) advance() { l.pos++ }

func (l *lexer) err(synErr *syntaxError) error {
	return &abnferr.ParserError{Construct: synErr.construct, Offset: l.pos, Row: l.row, Message: synErr.message}
}

func (l *lexer) next() (*token, error) {
	for {
		c, ok := l.peek()
		if !ok {
			return &token{kind: tokenKindEOF, row: l.row}, nil
		}

		switch {
		case c == ' ' || c == '\t':
			l.advance()
			continue

		case c == ';':
			if err := l.skipComment(); err != nil {
				return nil, err
			}
			continue

		case c == '\r' || c == '\n':
			real, err := l.consumeLineBreak()
			if err != nil {
				return nil, err
			}
			if real {
				return &token{kind: tokenKindNewline, row: l.row}, nil
			}
			continue

		default:
			return l.lexSignificant()
		}
	}
}

func (l *lexer) skipComment() error {
	l.advance() // ';'
	for {
		c, ok := l.peek()
		if !ok {
			if l.cfg.allowOmittingFinalNewline {
				return nil
			}
			return l.err(synErrUnclosedComment)
		}
		if c == '\r' || c == '\n' {
			return nil
		}
		if !(c == ' ' || c == '\t' || isVCHAR(c, l.cfg.encoding)) {
			return l.err(synErrInvalidChar)
		}
		l.advance()
	}
}

// consumeLineBreak consumes one CRLF/LF/CR line ending starting at the
// current position and reports whether it is a "real" line break (true)
// or a continuation swallowed as whitespace (false, because it is
// immediately followed by WSP).
func (l *lexer) consumeLineBreak() (bool, error) {
	c, _ := l.peek()
	switch c {
	case '\r':
		l.advance()
		if n, ok := l.peek(); ok && n == '\n' {
			l.advance()
		} else if !l.cfg.allowUnixNewlines {
			return false, l.err(synErrMalformedNewline)
		}
	case '\n':
		if !l.cfg.allowUnixNewlines {
			return false, l.err(synErrMalformedNewline)
		}
		l.advance()
	}
	l.row++

	if n, ok := l.peek(); ok && (n == ' ' || n == '\t') {
		return false, nil
	}
	return true, nil
}

func (l *lexer) lexSignificant() (*token, error) {
	c, _ := l.peek()
	row := l.row
	switch {
	case isAlpha(c):
		return l.lexIdentifier(row)
	case isDigit(c):
		return l.lexDigits(row)
	case c == '*':
		l.advance()
		return &token{kind: tokenKindStar, row: row}, nil
	case c == '=':
		l.advance()
		if n, ok := l.peek(); ok && n == '/' {
			l.advance()
			return &token{kind: tokenKindDefinedAsIncr, row: row}, nil
		}
		return &token{kind: tokenKindDefinedAs, row: row}, nil
	case c == '/':
		l.advance()
		return &token{kind: tokenKindSlash, row: row}, nil
	case c == '(':
		l.advance()
		return &token{kind: tokenKindLParen, row: row}, nil
	case c == ')':
		l.advance()
		return &token{kind: tokenKindRParen, row: row}, nil
	case c == '[':
		l.advance()
		return &token{kind: tokenKindLBracket, row: row}, nil
	case c == ']':
		l.advance()
		return &token{kind: tokenKindRBracket, row: row}, nil
	case c == '"':
		return l.lexString(row, false)
	case c == '%':
		return l.lexPercent(row)
	case c == '<':
		return nil, l.err(synErrProseVal)
	default:
		return nil, l.err(synErrInvalidChar)
	}
}

func (l *lexer) lexIdentifier(row int) (*token, error) {
	start := l.pos
	l.advance()
	for {
		c, ok := l.peek()
		if !ok || !(isAlpha(c) || isDigit(c) || c == '-') {
			break
		}
		l.advance()
	}
	return &token{kind: tokenKindID, name: string(l.runes[start:l.pos]), row: row}, nil
}

func (l *lexer) lexDigits(row int) (*token, error) {
	start := l.pos
	for {
		c, ok := l.peek()
		if !ok || !isDigit(c) {
			break
		}
		l.advance()
	}
	n := 0
	for _, c := range l.runes[start:l.pos] {
		n = n*10 + int(c-'0')
	}
	return &token{kind: tokenKindDigits, num: n, row: row}, nil
}

func (l *lexer) lexString(row int, caseSensitive bool) (*token, error) {
	l.advance() // opening DQUOTE
	var runes []rune
	for {
		c, ok := l.peek()
		if !ok {
			return nil, l.err(synErrUnclosedString)
		}
		if c == '"' {
			l.advance()
			return &token{kind: tokenKindString, text: string(runes), caseSensitive: caseSensitive, row: row}, nil
		}
		if !isLiteralChar(c, l.cfg.encoding) {
			return nil, l.err(synErrInvalidStringChar)
		}
		runes = append(runes, c)
		l.advance()
	}
}

// lexPercent handles both the RFC 7405 case-sensitivity prefixes
// (%s"...", %i"...") and the RFC 5234 numeric terminals (%b, %d, %x).
func (l *lexer) lexPercent(row int) (*token, error) {
	l.advance() // '%'
	c, ok := l.peek()
	if !ok {
		return nil, l.err(synErrInvalidChar)
	}
	switch lower(c) {
	case 's':
		l.advance()
		if n, ok2 := l.peek(); !ok2 || n != '"' {
			return nil, l.err(synErrInvalidChar)
		}
		return l.lexString(row, true)
	case 'i':
		l.advance()
		if n, ok2 := l.peek(); !ok2 || n != '"' {
			return nil, l.err(synErrInvalidChar)
		}
		return l.lexString(row, false)
	case 'b', 'd', 'x':
		return l.lexNumeric(row, c)
	default:
		return nil, l.err(synErrInvalidChar)
	}
}

func (l *lexer) lexNumeric(row int, radixChar rune) (*token, error) {
	l.advance() // radix letter
	var radix element.Radix
	switch lower(radixChar) {
	case 'b':
		radix = element.RadixBinary
	case 'd':
		radix = element.RadixDecimal
	default:
		radix = element.RadixHexadecimal
	}

	first, err := l.lexRadixNumber(radix)
	if err != nil {
		return nil, err
	}

	if n, ok := l.peek(); ok && n == '.' {
		values := []rune{first}
		for {
			n, ok := l.peek()
			if !ok || n != '.' {
				break
			}
			l.advance()
			v, err := l.lexRadixNumber(radix)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return &token{kind: tokenKindNumeric, shape: numericSeries, radix: radix, values: values, row: row}, nil
	}

	if n, ok := l.peek(); ok && n == '-' {
		l.advance()
		max, err := l.lexRadixNumber(radix)
		if err != nil {
			return nil, err
		}
		return &token{kind: tokenKindNumeric, shape: numericRange, radix: radix, min: first, max: max, row: row}, nil
	}

	return &token{kind: tokenKindNumeric, shape: numericSingle, radix: radix, value: first, row: row}, nil
}

func (l *lexer) lexRadixNumber(radix element.Radix) (rune, error) {
	start := l.pos
	base := radixBase(radix)
	for {
		c, ok := l.peek()
		if !ok || !isRadixDigit(c, radix) {
			break
		}
		l.advance()
	}
	if l.pos == start {
		return 0, l.err(synErrNoRadixDigits)
	}
	var v int64
	for _, c := range l.runes[start:l.pos] {
		d := int64(digitValue(c))
		v = v*int64(base) + d
		if v > 0x10FFFF {
			return 0, l.err(synErrCodePointOutOfRange)
		}
	}
	return rune(v), nil
}

func radixBase(r element.Radix) int {
	switch r {
	case element.RadixBinary:
		return 2
	case element.RadixDecimal:
		return 10
	default:
		return 16
	}
}

func isRadixDigit(c rune, r element.Radix) bool {
	switch r {
	case element.RadixBinary:
		return c == '0' || c == '1'
	case element.RadixDecimal:
		return isDigit(c)
	default:
		return isDigit(c) || (lower(c) >= 'a' && lower(c) <= 'f')
	}
}

func digitValue(c rune) int {
	switch {
	case isDigit(c):
		return int(c - '0')
	default:
		return int(lower(c)-'a') + 10
	}
}

func isAlpha(c rune) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func lower(c rune) rune {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func isVCHAR(c rune, enc corerule.Encoding) bool {
	if c >= 0x21 && c <= 0x7E {
		return true
	}
	switch enc {
	case corerule.EncodingLatin1:
		return c >= 0xA0 && c <= 0xFF
	case corerule.EncodingUnicode:
		return c >= 0xA0 && c <= 0x10FFFD
	default:
		return false
	}
}

// isLiteralChar reports whether c may appear inside a quoted literal:
// the printable ASCII range minus DQUOTE, widened like VCHAR for richer
// encodings, always excluding DQUOTE itself.
func isLiteralChar(c rune, enc corerule.Encoding) bool {
	if c == 0x22 {
		return false
	}
	if (c >= 0x20 && c <= 0x21) || (c >= 0x23 && c <= 0x7E) {
		return true
	}
	switch enc {
	case corerule.EncodingLatin1:
		return c >= 0xA0 && c <= 0xFF
	case corerule.EncodingUnicode:
		return c >= 0xA0 && c <= 0x10FFFD
	default:
		return false
	}
}
