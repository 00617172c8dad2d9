package validator

import "github.com/cmkilger/goabnf/element"

// ParseTree is a single node of the hierarchical match record produced
// by Validate. A node is either a leaf (a terminal element variant) or
// has children whose matched regions are contiguous and cover
// [Start, End) in order, for Concatenation and Repetition, or whose
// single child's span equals the parent's, for RuleRef, Alternation,
// and Optional.
type ParseTree struct {
	Element     *element.Element
	Start       int
	End         int
	Children    []*ParseTree
	MatchedText string
}
