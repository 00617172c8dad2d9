// Package corerule builds the predefined RFC 5234 Appendix B.1 rule
// table, parameterized by character encoding and newline policy.
package corerule

import "github.com/cmkilger/goabnf/element"

// Encoding selects how wide VCHAR and quoted literals are allowed to
// range, widening monotonically from ASCII through Latin-1 to Unicode.
type Encoding int

const (
	EncodingASCII Encoding = iota
	EncodingLatin1
	EncodingUnicode
)

// Names of the core rules that must be present in every table, per
// RFC 5234 Appendix B.1.
const (
	ALPHA  = "ALPHA"
	BIT    = "BIT"
	CHAR   = "CHAR"
	CR     = "CR"
	CRLF   = "CRLF"
	CTL    = "CTL"
	DIGIT  = "DIGIT"
	DQUOTE = "DQUOTE"
	HEXDIG = "HEXDIG"
	HTAB   = "HTAB"
	LF     = "LF"
	LWSP   = "LWSP"
	OCTET  = "OCTET"
	SP     = "SP"
	VCHAR  = "VCHAR"
	WSP    = "WSP"
)

// Table builds the core rule set for the given encoding and newline
// policy. The returned map is fresh on every call; callers may mutate
// it freely (e.g. to merge user rules over it).
func Table(enc Encoding, allowUnixNewlines bool) map[string]*element.Element {
	rng := func(lo, hi rune) *element.Element {
		return element.NewNumericRange(lo, hi, element.RadixHexadecimal)
	}
	lit := func(s string) *element.Element {
		return element.NewLiteralString(s, false)
	}

	alpha := element.NewAlternation([]*element.Element{rng(0x41, 0x5A), rng(0x61, 0x7A)})
	digit := rng(0x30, 0x39)
	cr := element.NewNumeric(0x0D, element.RadixHexadecimal)
	lf := element.NewNumeric(0x0A, element.RadixHexadecimal)
	sp := element.NewNumeric(0x20, element.RadixHexadecimal)
	htab := element.NewNumeric(0x09, element.RadixHexadecimal)
	dquote := element.NewNumeric(0x22, element.RadixHexadecimal)

	var crlf *element.Element
	if allowUnixNewlines {
		crlf = element.NewAlternation([]*element.Element{
			element.NewConcatenation([]*element.Element{element.NewRuleRef(CR), element.NewRuleRef(LF)}),
			element.NewRuleRef(LF),
			element.NewRuleRef(CR),
		})
	} else {
		crlf = element.NewConcatenation([]*element.Element{element.NewRuleRef(CR), element.NewRuleRef(LF)})
	}

	wsp := element.NewAlternation([]*element.Element{element.NewRuleRef(SP), element.NewRuleRef(HTAB)})

	var vchar *element.Element
	switch enc {
	case EncodingUnicode:
		vchar = element.NewAlternation([]*element.Element{rng(0x21, 0x7E), rng(0xA0, 0x10FFFD)})
	case EncodingLatin1:
		vchar = element.NewAlternation([]*element.Element{rng(0x21, 0x7E), rng(0xA0, 0xFF)})
	default:
		vchar = rng(0x21, 0x7E)
	}

	hexdig := element.NewAlternation([]*element.Element{
		element.NewRuleRef(DIGIT),
		lit("A"), lit("B"), lit("C"), lit("D"), lit("E"), lit("F"),
	})

	lwsp := element.NewRepetition(
		element.NewAlternation([]*element.Element{
			element.NewRuleRef(WSP),
			element.NewConcatenation([]*element.Element{element.NewRuleRef(CRLF), element.NewRuleRef(WSP)}),
		}),
		0, element.Unbounded,
	)

	return map[string]*element.Element{
		ALPHA:  alpha,
		BIT:    element.NewAlternation([]*element.Element{lit("0"), lit("1")}),
		CHAR:   rng(0x01, 0x7F),
		CR:     cr,
		CRLF:   crlf,
		CTL:    element.NewAlternation([]*element.Element{rng(0x00, 0x1F), element.NewNumeric(0x7F, element.RadixHexadecimal)}),
		DIGIT:  digit,
		DQUOTE: dquote,
		HEXDIG: hexdig,
		HTAB:   htab,
		LF:     lf,
		LWSP:   lwsp,
		OCTET:  rng(0x00, 0xFF),
		SP:     sp,
		VCHAR:  vchar,
		WSP:    wsp,
	}
}

// Merge returns a rule table with user rules layered over the core
// table: a user rule shadows a core rule of the same name
// (case-insensitively), and any core rule the user did not redefine
// passes through unchanged.
func Merge(core map[string]*element.Element, user *element.Grammar) func(name string) (*element.Element, bool) {
	return func(name string) (*element.Element, bool) {
		if user != nil {
			if r, ok := user.Rule(name); ok {
				return r.Body, true
			}
		}
		for coreName, body := range core {
			if equalFold(coreName, name) {
				return body, true
			}
		}
		return nil, false
	}
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
