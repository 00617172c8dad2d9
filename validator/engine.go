// Package validator implements the non-deterministic matching engine
// that interprets an ABNF grammar against an input string, producing a
// parse tree annotated with matched spans or a structured diagnostic.
package validator

import (
	"fmt"

	"github.com/cmkilger/goabnf/abnferr"
	"github.com/cmkilger/goabnf/corerule"
	"github.com/cmkilger/goabnf/element"
)

// Validate matches input against the named entry rule of g (or, if
// entry is unset, the first rule in g's source order), returning a
// parse tree rooted at a RuleRef(entry) node spanning the whole input,
// or a diagnostic error if no such tree exists.
//
// Validation is purely a function of its arguments: identical inputs
// produce structurally identical trees, and a Grammar may be validated
// concurrently from multiple goroutines since each call builds its own
// memo table and touches no shared state.
func Validate(g *element.Grammar, input string, opts ...Option) (*ParseTree, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	entryName := cfg.entry
	if entryName == "" {
		r, ok := g.First()
		if !ok {
			return nil, &abnferr.ValidationError{Index: 0, Message: "grammar defines no rules"}
		}
		entryName = r.Name
	} else if _, ok := g.Rule(entryName); !ok {
		return nil, &abnferr.ValidationError{Index: 0, Message: "undefined entry rule: " + entryName}
	}

	core := corerule.Table(cfg.encoding, cfg.allowUnixNewlines)
	lookup := corerule.Merge(core, g)

	en := &engine{
		input:      []rune(input),
		lookup:     lookup,
		memo:       map[memoKey]matchResult{},
		inProgress: map[memoKey]bool{},
	}

	root := element.NewRuleRef(entryName)
	outcomes, err := en.match(root, 0)

	for _, o := range outcomes {
		if o.end == len(en.input) {
			return o.tree, nil
		}
	}
	if err != nil {
		return nil, err
	}
	furthest := 0
	for _, o := range outcomes {
		if o.end > furthest {
			furthest = o.end
		}
	}
	return nil, &abnferr.ValidationError{
		Index:   furthest,
		Message: fmt.Sprintf("rule %q did not match the entire input", entryName),
	}
}

type lookupFunc func(name string) (*element.Element, bool)

// outcome pins one possible end offset and resulting sub-tree for a
// match attempt at a given position.
type outcome struct {
	end  int
	tree *ParseTree
}

type memoKey struct {
	e   *element.Element
	pos int
}

type matchResult struct {
	outcomes []outcome
	err      error
}

// engine unifies grammar elements with positions in a single input. Its
// only state is the memo table and the in-progress set used to detect
// left recursion; both live exactly as long as one Validate call.
type engine struct {
	input      []rune
	lookup     lookupFunc
	memo       map[memoKey]matchResult
	inProgress map[memoKey]bool
}

func (en *engine) span(start, end int) string {
	return string(en.input[start:end])
}

// match returns every (end, sub-tree) outcome of matching e at pos, or
// an error describing why no outcome exists. Results are memoized by
// (element identity, position); a re-entrant call to the same key while
// it is still being computed indicates left recursion through a rule
// reference and fails immediately rather than recursing forever.
func (en *engine) match(e *element.Element, pos int) ([]outcome, error) {
	key := memoKey{e, pos}
	if res, ok := en.memo[key]; ok {
		return res.outcomes, res.err
	}
	if en.inProgress[key] {
		return nil, &abnferr.ValidationError{Index: pos, Message: "left-recursive rule reference detected"}
	}

	en.inProgress[key] = true
	outs, err := en.matchUncached(e, pos)
	delete(en.inProgress, key)

	en.memo[key] = matchResult{outcomes: outs, err: err}
	return outs, err
}

func (en *engine) matchUncached(e *element.Element, pos int) ([]outcome, error) {
	switch e.Kind {
	case element.KindRuleRef:
		return en.matchRuleRef(e, pos)
	case element.KindAlternation:
		return en.matchAlternation(e, pos)
	case element.KindConcatenation:
		return en.matchConcatenation(e, pos)
	case element.KindRepetition:
		return en.matchRepetition(e, pos)
	case element.KindOptional:
		return en.matchOptional(e, pos)
	case element.KindLiteralString:
		return en.matchLiteral(e, pos)
	case element.KindNumeric:
		return en.matchNumeric(e, pos)
	case element.KindNumericSeries:
		return en.matchNumericSeries(e, pos)
	case element.KindNumericRange:
		return en.matchNumericRange(e, pos)
	default:
		return nil, &abnferr.ValidationError{Index: pos, Message: "unrecognized element kind"}
	}
}

func (en *engine) matchRuleRef(e *element.Element, pos int) ([]outcome, error) {
	body, ok := en.lookup(e.Name)
	if !ok {
		return nil, &abnferr.ValidationError{Index: pos, Message: "undefined rule: " + e.Name}
	}
	outs, err := en.match(body, pos)
	if len(outs) == 0 {
		return nil, err
	}
	wrapped := make([]outcome, len(outs))
	for i, o := range outs {
		wrapped[i] = outcome{end: o.end, tree: &ParseTree{
			Element: e, Start: pos, End: o.end,
			Children:    []*ParseTree{o.tree},
			MatchedText: en.span(pos, o.end),
		}}
	}
	return wrapped, nil
}

// matchAlternation is the union of outcomes over alternatives: child
// errors are collected and suppressed as long as at least one sibling
// succeeds; otherwise a bare ValidationError or a flattened
// ErrorCollection is returned per the propagation policy.
func (en *engine) matchAlternation(e *element.Element, pos int) ([]outcome, error) {
	var outs []outcome
	var errs []error
	for _, child := range e.Children {
		childOuts, err := en.match(child, pos)
		if len(childOuts) == 0 {
			if err != nil {
				errs = append(errs, err)
			}
			continue
		}
		for _, o := range childOuts {
			outs = append(outs, outcome{end: o.end, tree: &ParseTree{
				Element: e, Start: pos, End: o.end,
				Children:    []*ParseTree{o.tree},
				MatchedText: en.span(pos, o.end),
			}})
		}
	}
	if len(outs) > 0 {
		return outs, nil
	}
	return nil, abnferr.Collect(errs)
}

type concatState struct {
	pos      int
	children []*ParseTree
}

// matchConcatenation is the Cartesian product across children: for each
// partial prefix, extend by every outcome of the next child. The first
// child whose match fails for every live prefix surfaces its error
// verbatim.
func (en *engine) matchConcatenation(e *element.Element, pos int) ([]outcome, error) {
	if len(e.Children) == 0 {
		return []outcome{{end: pos, tree: &ParseTree{Element: e, Start: pos, End: pos}}}, nil
	}

	states := []concatState{{pos: pos}}
	var firstErr error
	for _, child := range e.Children {
		var next []concatState
		var childErr error
		for _, st := range states {
			childOuts, err := en.match(child, st.pos)
			if len(childOuts) == 0 {
				if childErr == nil {
					childErr = err
				}
				continue
			}
			for _, o := range childOuts {
				trees := make([]*ParseTree, len(st.children)+1)
				copy(trees, st.children)
				trees[len(st.children)] = o.tree
				next = append(next, concatState{pos: o.end, children: trees})
			}
		}
		states = next
		if len(states) == 0 {
			firstErr = childErr
			break
		}
	}

	if len(states) == 0 {
		if firstErr == nil {
			firstErr = &abnferr.ValidationError{Index: pos, Message: "concatenation failed"}
		}
		return nil, firstErr
	}

	outs := make([]outcome, len(states))
	for i, st := range states {
		outs[i] = outcome{end: st.pos, tree: &ParseTree{
			Element: e, Start: pos, End: st.pos,
			Children:    st.children,
			MatchedText: en.span(pos, st.pos),
		}}
	}
	return outs, nil
}

type repState struct {
	count    int
	pos      int
	children []*ParseTree
	zeroHit  bool
}

// matchRepetition enumerates, breadth-first, every reachable repetition
// count in [AtLeast, UpTo], chaining matches of Child. A branch whose
// single iteration matched zero characters is never extended again,
// which is what keeps e.g. *("" ) from looping forever.
func (en *engine) matchRepetition(e *element.Element, pos int) ([]outcome, error) {
	var results []outcome
	var firstErr error
	recorded := false

	frontier := []repState{{count: 0, pos: pos}}
	for len(frontier) > 0 {
		var next []repState
		for _, st := range frontier {
			if st.count >= e.AtLeast {
				recorded = true
				results = append(results, outcome{end: st.pos, tree: &ParseTree{
					Element: e, Start: pos, End: st.pos,
					Children:    st.children,
					MatchedText: en.span(pos, st.pos),
				}})
			}

			if st.zeroHit {
				continue
			}
			if e.UpTo != element.Unbounded && st.count >= e.UpTo {
				continue
			}

			childOuts, err := en.match(e.Child, st.pos)
			if len(childOuts) == 0 {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			for _, o := range childOuts {
				trees := make([]*ParseTree, len(st.children)+1)
				copy(trees, st.children)
				trees[len(st.children)] = o.tree
				next = append(next, repState{
					count:    st.count + 1,
					pos:      o.end,
					children: trees,
					zeroHit:  o.end == st.pos,
				})
			}
		}
		frontier = next
	}

	if !recorded {
		if firstErr == nil {
			firstErr = &abnferr.ValidationError{Index: pos, Message: "repetition did not reach its minimum count"}
		}
		return nil, firstErr
	}
	return results, nil
}

// matchOptional always succeeds: the zero-width match plus every match
// of Child.
func (en *engine) matchOptional(e *element.Element, pos int) ([]outcome, error) {
	results := []outcome{{end: pos, tree: &ParseTree{Element: e, Start: pos, End: pos}}}
	childOuts, _ := en.match(e.Child, pos)
	for _, o := range childOuts {
		results = append(results, outcome{end: o.end, tree: &ParseTree{
			Element: e, Start: pos, End: o.end,
			Children:    []*ParseTree{o.tree},
			MatchedText: en.span(pos, o.end),
		}})
	}
	return results, nil
}

func (en *engine) matchLiteral(e *element.Element, pos int) ([]outcome, error) {
	text := []rune(e.Text)
	if pos+len(text) > len(en.input) {
		return nil, &abnferr.ValidationError{Index: pos, Message: fmt.Sprintf("expected %q", e.Text)}
	}
	for i, want := range text {
		got := en.input[pos+i]
		if e.CaseSensitive {
			if got != want {
				return nil, &abnferr.ValidationError{Index: pos, Message: fmt.Sprintf("expected %q", e.Text)}
			}
		} else if foldASCII(got) != foldASCII(want) {
			return nil, &abnferr.ValidationError{Index: pos, Message: fmt.Sprintf("expected %q (case-insensitive)", e.Text)}
		}
	}
	end := pos + len(text)
	return []outcome{{end: end, tree: &ParseTree{Element: e, Start: pos, End: end, MatchedText: en.span(pos, end)}}}, nil
}

func (en *engine) matchNumeric(e *element.Element, pos int) ([]outcome, error) {
	if pos >= len(en.input) || en.input[pos] != e.Value {
		return nil, &abnferr.ValidationError{Index: pos, Message: fmt.Sprintf("expected code point U+%04X", e.Value)}
	}
	end := pos + 1
	return []outcome{{end: end, tree: &ParseTree{Element: e, Start: pos, End: end, MatchedText: en.span(pos, end)}}}, nil
}

func (en *engine) matchNumericSeries(e *element.Element, pos int) ([]outcome, error) {
	if pos+len(e.Values) > len(en.input) {
		return nil, &abnferr.ValidationError{Index: pos, Message: "unexpected end of input in numeric series"}
	}
	for i, want := range e.Values {
		if en.input[pos+i] != want {
			return nil, &abnferr.ValidationError{Index: pos + i, Message: fmt.Sprintf("expected code point U+%04X", want)}
		}
	}
	end := pos + len(e.Values)
	return []outcome{{end: end, tree: &ParseTree{Element: e, Start: pos, End: end, MatchedText: en.span(pos, end)}}}, nil
}

func (en *engine) matchNumericRange(e *element.Element, pos int) ([]outcome, error) {
	if pos >= len(en.input) || en.input[pos] < e.Min || en.input[pos] > e.Max {
		return nil, &abnferr.ValidationError{Index: pos, Message: fmt.Sprintf("expected code point in U+%04X-U+%04X", e.Min, e.Max)}
	}
	end := pos + 1
	return []outcome{{end: end, tree: &ParseTree{Element: e, Start: pos, End: end, MatchedText: en.span(pos, end)}}}, nil
}

func foldASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
