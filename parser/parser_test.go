package parser

import (
	"testing"

	"github.com/cmkilger/goabnf/abnferr"
	"github.com/cmkilger/goabnf/element"
)

func mustParse(t *testing.T, text string, opts ...Option) *element.Grammar {
	t.Helper()
	g, err := Parse(text, opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return g
}

func TestParseSimpleRule(t *testing.T) {
	g := mustParse(t, "single-space = %b100000\r\n")
	r, ok := g.Rule("single-space")
	if !ok {
		t.Fatalf("rule not found")
	}
	want := element.NewNumeric(0x20, element.RadixBinary)
	if !r.Body.Equal(want) {
		t.Fatalf("want %v, got %v", want, r.Body)
	}
}

func TestParseAlternation(t *testing.T) {
	g := mustParse(t, "rule = \"a\" / \"b\" / \"c\"\r\n")
	r, _ := g.Rule("rule")
	want := element.NewAlternation([]*element.Element{
		element.NewLiteralString("a", false),
		element.NewLiteralString("b", false),
		element.NewLiteralString("c", false),
	})
	if !r.Body.Equal(want) {
		t.Fatalf("want %v, got %v", want, r.Body)
	}
}

func TestParseConcatenation(t *testing.T) {
	g := mustParse(t, "rule = \"a\" \"b\" \"c\"\r\n")
	r, _ := g.Rule("rule")
	want := element.NewConcatenation([]*element.Element{
		element.NewLiteralString("a", false),
		element.NewLiteralString("b", false),
		element.NewLiteralString("c", false),
	})
	if !r.Body.Equal(want) {
		t.Fatalf("want %v, got %v", want, r.Body)
	}
}

func TestParseIncrementalDefinitionFolds(t *testing.T) {
	g := mustParse(t, "A = X\r\nA =/ Y\r\nX = \"x\"\r\nY = \"y\"\r\n")
	if len(g.Rules) != 3 {
		t.Fatalf("want 3 rules after folding, got %d", len(g.Rules))
	}
	r, ok := g.Rule("A")
	if !ok {
		t.Fatalf("rule A not found")
	}
	want := element.NewAlternation([]*element.Element{
		element.NewRuleRef("X"),
		element.NewRuleRef("Y"),
	})
	if !r.Body.Equal(want) {
		t.Fatalf("want %v, got %v", want, r.Body)
	}
}

func TestParseIncrementalDefinitionFlattensExistingAlternation(t *testing.T) {
	g := mustParse(t, "A = X / Y\r\nA =/ Z\r\nX = \"x\"\r\nY = \"y\"\r\nZ = \"z\"\r\n")
	r, _ := g.Rule("A")
	want := element.NewAlternation([]*element.Element{
		element.NewRuleRef("X"), element.NewRuleRef("Y"), element.NewRuleRef("Z"),
	})
	if !r.Body.Equal(want) {
		t.Fatalf("want %v, got %v", want, r.Body)
	}
}

func TestParseOrderPreservesFirstAppearance(t *testing.T) {
	g := mustParse(t, "b = \"b\"\r\na = \"a\"\r\n")
	if g.Rules[0].Name != "b" || g.Rules[1].Name != "a" {
		t.Fatalf("want source order [b, a], got [%s, %s]", g.Rules[0].Name, g.Rules[1].Name)
	}
}

func TestParseDuplicateRuleIsError(t *testing.T) {
	_, err := Parse("a = \"x\"\r\na = \"y\"\r\n")
	if err == nil {
		t.Fatalf("expected an error for duplicate rule definition")
	}
	if _, ok := err.(*abnferr.ParserError); !ok {
		t.Fatalf("want *abnferr.ParserError, got %T", err)
	}
}

func TestParseGroupIsUnwrapped(t *testing.T) {
	g := mustParse(t, "a = (\"x\" / \"y\")\r\n")
	r, _ := g.Rule("a")
	want := element.NewAlternation([]*element.Element{
		element.NewLiteralString("x", false), element.NewLiteralString("y", false),
	})
	if !r.Body.Equal(want) {
		t.Fatalf("want %v, got %v", want, r.Body)
	}
}

func TestParseOption(t *testing.T) {
	g := mustParse(t, "a = [\"x\"]\r\n")
	r, _ := g.Rule("a")
	want := element.NewOptional(element.NewLiteralString("x", false))
	if !r.Body.Equal(want) {
		t.Fatalf("want %v, got %v", want, r.Body)
	}
}

func TestParseRepeatForms(t *testing.T) {
	tests := []struct {
		body    string
		atLeast int
		upTo    int
	}{
		{"2SP", 2, 2},
		{"2*3SP", 2, 3},
		{"*SP", 0, element.Unbounded},
		{"2*SP", 2, element.Unbounded},
		{"*3SP", 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			g := mustParse(t, "a = "+tt.body+"\r\n")
			r, _ := g.Rule("a")
			if r.Body.Kind != element.KindRepetition {
				t.Fatalf("want repetition, got %v", r.Body.Kind)
			}
			if r.Body.AtLeast != tt.atLeast || r.Body.UpTo != tt.upTo {
				t.Fatalf("want [%d,%d], got [%d,%d]", tt.atLeast, tt.upTo, r.Body.AtLeast, r.Body.UpTo)
			}
		})
	}
}

func TestParseNumericForms(t *testing.T) {
	g := mustParse(t, "single = %x41\r\nseries = %x41.42.43\r\nrng = %x41-5A\r\n")

	single, _ := g.Rule("single")
	if !single.Body.Equal(element.NewNumeric(0x41, element.RadixHexadecimal)) {
		t.Fatalf("unexpected single numeric: %v", single.Body)
	}

	series, _ := g.Rule("series")
	if !series.Body.Equal(element.NewNumericSeries([]rune{0x41, 0x42, 0x43}, element.RadixHexadecimal)) {
		t.Fatalf("unexpected numeric series: %v", series.Body)
	}

	rng, _ := g.Rule("rng")
	if !rng.Body.Equal(element.NewNumericRange(0x41, 0x5A, element.RadixHexadecimal)) {
		t.Fatalf("unexpected numeric range: %v", rng.Body)
	}
}

func TestParseQuotedLiteralCaseSensitivity(t *testing.T) {
	g := mustParse(t, "a = \"x\"\r\nb = %s\"x\"\r\nc = %i\"x\"\r\n")
	a, _ := g.Rule("a")
	if a.Body.CaseSensitive {
		t.Fatalf("plain quoted literal must default to case-insensitive")
	}
	b, _ := g.Rule("b")
	if !b.Body.CaseSensitive {
		t.Fatalf("%%s literal must be case-sensitive")
	}
	c, _ := g.Rule("c")
	if c.Body.CaseSensitive {
		t.Fatalf("%%i literal must be case-insensitive")
	}
}

func TestParseContinuationLine(t *testing.T) {
	g := mustParse(t, "a = \"x\"\r\n     \"y\"\r\nb = \"z\"\r\n")
	if len(g.Rules) != 2 {
		t.Fatalf("want 2 rules, got %d", len(g.Rules))
	}
	a, _ := g.Rule("a")
	want := element.NewConcatenation([]*element.Element{
		element.NewLiteralString("x", false), element.NewLiteralString("y", false),
	})
	if !a.Body.Equal(want) {
		t.Fatalf("want continuation to extend the concatenation: want %v, got %v", want, a.Body)
	}
}

func TestParseUnclosedGroupIsError(t *testing.T) {
	_, err := Parse("a = (\"x\"\r\n")
	if err == nil {
		t.Fatalf("expected an error for an unclosed group")
	}
}

func TestParseEmptyGrammarIsError(t *testing.T) {
	_, err := Parse("")
	if err == nil {
		t.Fatalf("expected an error for an empty grammar")
	}
}

func TestParseRFC5234NameExample(t *testing.T) {
	const grammar = `name-part = *(personal-part SP) last-name [SP suffix]
name-part =/ personal-part SP suffix
personal-part = first-name / (initial ".")
first-name = *ALPHA
initial = ALPHA
last-name = *ALPHA
suffix = ("Jr." / "Sr." / 1*("I" / "V" / "X"))
`
	g, err := Parse(grammar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := g.Rule("name-part"); !ok {
		t.Fatalf("expected name-part rule to exist")
	}
}
