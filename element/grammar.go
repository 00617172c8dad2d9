package element

import "strings"

// Rule pairs a name with the element tree describing its body.
type Rule struct {
	Name string
	Body *Element
}

// Grammar is an ordered list of rules. The order is the order of first
// appearance of each rule name in the source text; callers may omit an
// explicit entry rule and thereby select the first rule, so that order
// is observable.
type Grammar struct {
	Rules []*Rule

	// index maps a lower-cased rule name to its position in Rules.
	// Lookup is case-insensitive; the stored Rule retains the casing
	// of its first occurrence.
	index map[string]int
}

// NewGrammar builds a Grammar from an ordered list of rules. It returns
// an error if two rules share the same name (case-insensitively); a
// well-behaved parser folds repeated "=/" definitions before calling
// this, so a duplicate here indicates a genuine conflict.
func NewGrammar(rules []*Rule) (*Grammar, error) {
	index := make(map[string]int, len(rules))
	for i, r := range rules {
		key := strings.ToLower(r.Name)
		if _, ok := index[key]; ok {
			return nil, &DuplicateRuleError{Name: r.Name}
		}
		index[key] = i
	}
	return &Grammar{Rules: rules, index: index}, nil
}

// DuplicateRuleError reports that a grammar defined the same rule name
// more than once outside of an "=/" continuation.
type DuplicateRuleError struct {
	Name string
}

func (e *DuplicateRuleError) Error() string {
	return "rule already defined: " + e.Name
}

// Rule looks up a rule by name, case-insensitively.
func (g *Grammar) Rule(name string) (*Rule, bool) {
	if g == nil {
		return nil, false
	}
	i, ok := g.index[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return g.Rules[i], true
}

// First returns the first rule in source order, used as the implicit
// entry point when a caller does not name one explicitly.
func (g *Grammar) First() (*Rule, bool) {
	if g == nil || len(g.Rules) == 0 {
		return nil, false
	}
	return g.Rules[0], true
}

// String re-serializes the grammar as ABNF source text, one rule per
// line, in source order.
func (g *Grammar) String() string {
	if g == nil {
		return ""
	}
	var b strings.Builder
	for _, r := range g.Rules {
		b.WriteString(r.Name)
		b.WriteString(" = ")
		b.WriteString(r.Body.String())
		b.WriteString("\r\n")
	}
	return b.String()
}
