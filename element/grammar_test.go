package element

import "testing"

func TestNewGrammarOrderAndLookup(t *testing.T) {
	rules := []*Rule{
		{Name: "foo", Body: NewRuleRef("bar")},
		{Name: "bar", Body: NewLiteralString("x", false)},
	}
	g, err := NewGrammar(rules)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, ok := g.First()
	if !ok || first.Name != "foo" {
		t.Fatalf("want first rule %q, got %+v", "foo", first)
	}

	r, ok := g.Rule("BAR")
	if !ok {
		t.Fatalf("expected case-insensitive lookup to find %q", "bar")
	}
	if r.Name != "bar" {
		t.Fatalf("want stored name %q, got %q", "bar", r.Name)
	}

	if _, ok := g.Rule("missing"); ok {
		t.Fatalf("expected lookup of undefined rule to fail")
	}
}

func TestNewGrammarDuplicateRuleName(t *testing.T) {
	rules := []*Rule{
		{Name: "foo", Body: NewLiteralString("a", false)},
		{Name: "Foo", Body: NewLiteralString("b", false)},
	}
	_, err := NewGrammar(rules)
	if err == nil {
		t.Fatalf("expected duplicate rule error")
	}
	if _, ok := err.(*DuplicateRuleError); !ok {
		t.Fatalf("want *DuplicateRuleError, got %T", err)
	}
}
