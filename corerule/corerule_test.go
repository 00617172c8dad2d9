package corerule

import (
	"testing"

	"github.com/cmkilger/goabnf/element"
)

func TestTableHasAllStandardRules(t *testing.T) {
	want := []string{ALPHA, BIT, CHAR, CR, CRLF, CTL, DIGIT, DQUOTE, HEXDIG, HTAB, LF, LWSP, OCTET, SP, VCHAR, WSP}
	table := Table(EncodingASCII, true)
	for _, name := range want {
		if _, ok := table[name]; !ok {
			t.Fatalf("missing core rule %q", name)
		}
	}
}

func TestCRLFAllowsUnixNewlines(t *testing.T) {
	tight := Table(EncodingASCII, false)
	if tight[CRLF].Kind.String() != "concatenation" {
		t.Fatalf("want strict CRLF to be a concatenation, got %v", tight[CRLF].Kind)
	}

	loose := Table(EncodingASCII, true)
	if loose[CRLF].Kind.String() != "alternation" {
		t.Fatalf("want relaxed CRLF to be an alternation, got %v", loose[CRLF].Kind)
	}
	if len(loose[CRLF].Children) != 3 {
		t.Fatalf("want 3 alternatives (CRLF, LF, CR), got %d", len(loose[CRLF].Children))
	}
}

func TestVCHARWidensByEncoding(t *testing.T) {
	ascii := Table(EncodingASCII, true)[VCHAR]
	if ascii.Kind.String() != "numeric-range" {
		t.Fatalf("want ASCII VCHAR to be a single range, got %v", ascii.Kind)
	}
	if ascii.Max != 0x7E {
		t.Fatalf("want ASCII VCHAR max 0x7E, got %#x", ascii.Max)
	}

	latin1 := Table(EncodingLatin1, true)[VCHAR]
	if latin1.Kind.String() != "alternation" {
		t.Fatalf("want widened VCHAR to be an alternation, got %v", latin1.Kind)
	}

	unicode := Table(EncodingUnicode, true)[VCHAR]
	if unicode.Children[1].Max != 0x10FFFD {
		t.Fatalf("want Unicode VCHAR upper bound 0x10FFFD, got %#x", unicode.Children[1].Max)
	}
}

func TestMergeUserRuleShadowsCore(t *testing.T) {
	lookup := Merge(Table(EncodingASCII, true), nil)
	body, ok := lookup("sp")
	if !ok {
		t.Fatalf("expected case-insensitive core lookup to succeed")
	}
	if body.Value != 0x20 {
		t.Fatalf("want SP core rule, got %+v", body)
	}

	if _, ok := lookup("NOTACORERULE"); ok {
		t.Fatalf("expected lookup of undefined rule to fail")
	}

	user, err := element.NewGrammar([]*element.Rule{
		{Name: "SP", Body: element.NewLiteralString("!", false)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	shadowed := Merge(Table(EncodingASCII, true), user)
	body, ok = shadowed("SP")
	if !ok {
		t.Fatalf("expected shadowed lookup to succeed")
	}
	if body.Kind != element.KindLiteralString || body.Text != "!" {
		t.Fatalf("want user rule to shadow core SP, got %+v", body)
	}
}
