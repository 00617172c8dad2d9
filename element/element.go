// Package element defines the recursive value that describes an ABNF
// grammar fragment, as specified by RFC 5234 and RFC 7405.
package element

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which variant of Element a value holds. The set of
// kinds is fixed by RFC 5234/7405; callers should switch on Kind
// exhaustively rather than adding new variants.
type Kind int

const (
	KindRuleRef Kind = iota
	KindAlternation
	KindConcatenation
	KindRepetition
	KindOptional
	KindLiteralString
	KindNumeric
	KindNumericSeries
	KindNumericRange
)

func (k Kind) String() string {
	switch k {
	case KindRuleRef:
		return "rule-ref"
	case KindAlternation:
		return "alternation"
	case KindConcatenation:
		return "concatenation"
	case KindRepetition:
		return "repetition"
	case KindOptional:
		return "optional"
	case KindLiteralString:
		return "literal-string"
	case KindNumeric:
		return "numeric"
	case KindNumericSeries:
		return "numeric-series"
	case KindNumericRange:
		return "numeric-range"
	default:
		return "unknown"
	}
}

// Radix records which base a numeric literal was written in. It has no
// effect on matching; it exists purely so that Element equality and
// String re-serialization round-trip the source text faithfully.
type Radix int

const (
	RadixBinary Radix = iota
	RadixDecimal
	RadixHexadecimal
)

func (r Radix) prefix() string {
	switch r {
	case RadixBinary:
		return "b"
	case RadixDecimal:
		return "d"
	default:
		return "x"
	}
}

func (r Radix) format(v rune) string {
	switch r {
	case RadixBinary:
		return strconv.FormatInt(int64(v), 2)
	case RadixDecimal:
		return strconv.FormatInt(int64(v), 10)
	default:
		return strings.ToUpper(strconv.FormatInt(int64(v), 16))
	}
}

// Unbounded marks an absent upper bound on a Repetition.
const Unbounded = -1

// Element is an immutable tagged value describing a grammar fragment.
// Which fields are meaningful depends on Kind; the zero value of any
// field not used by the current Kind is ignored.
type Element struct {
	Kind Kind

	// RuleRef
	Name string

	// Alternation, Concatenation: ordered children.
	Children []*Element

	// Repetition, Optional: the repeated/optional sub-element.
	Child *Element

	// Repetition only. AtLeast defaults to 0. UpTo is Unbounded when
	// there is no upper bound.
	AtLeast int
	UpTo    int

	// LiteralString
	Text          string
	CaseSensitive bool

	// Numeric
	Value rune

	// NumericSeries
	Values []rune

	// NumericRange
	Min rune
	Max rune

	// Numeric, NumericSeries, NumericRange
	Radix Radix
}

// NewRuleRef constructs a reference to a named rule.
func NewRuleRef(name string) *Element {
	return &Element{Kind: KindRuleRef, Name: name}
}

// NewAlternation constructs an ordered choice among children. If exactly
// one child is given, it is returned unwrapped so that the tree stays
// canonical (spec.md §4.2 "Unwrapping").
func NewAlternation(children []*Element) *Element {
	if len(children) == 1 {
		return children[0]
	}
	return &Element{Kind: KindAlternation, Children: children}
}

// NewConcatenation constructs an ordered sequence that must match in
// order. A single child is unwrapped like NewAlternation. A zero-length
// slice is a valid, explicit empty concatenation that matches the empty
// string at the current position.
func NewConcatenation(children []*Element) *Element {
	if len(children) == 1 {
		return children[0]
	}
	return &Element{Kind: KindConcatenation, Children: children}
}

// NewRepetition constructs a bounded or unbounded repetition of child.
// atLeast must be <= upTo when upTo is not Unbounded.
func NewRepetition(child *Element, atLeast, upTo int) *Element {
	return &Element{Kind: KindRepetition, Child: child, AtLeast: atLeast, UpTo: upTo}
}

// NewOptional constructs an element equivalent in meaning to
// NewRepetition(child, 0, 1) but preserved as its own variant so parse
// trees reproduce the bracketed-option shape of the source grammar.
func NewOptional(child *Element) *Element {
	return &Element{Kind: KindOptional, Child: child}
}

// NewLiteralString constructs a quoted text literal. caseSensitive
// selects RFC 7405 %s semantics; false is the RFC 5234 default.
func NewLiteralString(text string, caseSensitive bool) *Element {
	return &Element{Kind: KindLiteralString, Text: text, CaseSensitive: caseSensitive}
}

// NewNumeric constructs a single code-point literal.
func NewNumeric(value rune, radix Radix) *Element {
	return &Element{Kind: KindNumeric, Value: value, Radix: radix}
}

// NewNumericSeries constructs a dot-separated sequence of code points
// that must all match in order.
func NewNumericSeries(values []rune, radix Radix) *Element {
	return &Element{Kind: KindNumericSeries, Values: values, Radix: radix}
}

// NewNumericRange constructs an inclusive code-point range.
func NewNumericRange(min, max rune, radix Radix) *Element {
	return &Element{Kind: KindNumericRange, Min: min, Max: max, Radix: radix}
}

// Equal reports whether e and other describe the same grammar fragment,
// comparing variant, child structure, and every scalar including Radix
// and CaseSensitive.
func (e *Element) Equal(other *Element) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.Kind != other.Kind {
		return false
	}
	switch e.Kind {
	case KindRuleRef:
		return e.Name == other.Name
	case KindAlternation, KindConcatenation:
		if len(e.Children) != len(other.Children) {
			return false
		}
		for i := range e.Children {
			if !e.Children[i].Equal(other.Children[i]) {
				return false
			}
		}
		return true
	case KindRepetition:
		return e.AtLeast == other.AtLeast && e.UpTo == other.UpTo && e.Child.Equal(other.Child)
	case KindOptional:
		return e.Child.Equal(other.Child)
	case KindLiteralString:
		return e.Text == other.Text && e.CaseSensitive == other.CaseSensitive
	case KindNumeric:
		return e.Value == other.Value && e.Radix == other.Radix
	case KindNumericSeries:
		if e.Radix != other.Radix || len(e.Values) != len(other.Values) {
			return false
		}
		for i := range e.Values {
			if e.Values[i] != other.Values[i] {
				return false
			}
		}
		return true
	case KindNumericRange:
		return e.Min == other.Min && e.Max == other.Max && e.Radix == other.Radix
	default:
		return false
	}
}

// String re-serializes the element as ABNF source text. It is not
// guaranteed to reproduce whitespace or comments, only the normative
// shape: parsing String()'s output again yields an Equal element. The one
// exception is the empty concatenation, which is written as "" and reads
// back as an empty literal.
func (e *Element) String() string {
	if e == nil {
		return ""
	}
	// operand parenthesizes a child whose bare text would be grouped
	// differently when parsed again.
	operand := func(c *Element) string {
		s := c.String()
		switch {
		case c.Kind == KindAlternation,
			c.Kind == KindConcatenation && e.Kind != KindAlternation,
			c.Kind == KindRepetition && e.Kind == KindRepetition:
			return "(" + s + ")"
		}
		return s
	}
	switch e.Kind {
	case KindRuleRef:
		return e.Name
	case KindAlternation:
		parts := make([]string, len(e.Children))
		for i, c := range e.Children {
			parts[i] = operand(c)
		}
		return strings.Join(parts, " / ")
	case KindConcatenation:
		if len(e.Children) == 0 {
			return "\"\""
		}
		parts := make([]string, len(e.Children))
		for i, c := range e.Children {
			parts[i] = operand(c)
		}
		return strings.Join(parts, " ")
	case KindRepetition:
		return fmt.Sprintf("%v%v", repeatPrefix(e.AtLeast, e.UpTo), operand(e.Child))
	case KindOptional:
		return "[" + e.Child.String() + "]"
	case KindLiteralString:
		if e.CaseSensitive {
			return `%s"` + e.Text + `"`
		}
		return `"` + e.Text + `"`
	case KindNumeric:
		return "%" + e.Radix.prefix() + e.Radix.format(e.Value)
	case KindNumericSeries:
		parts := make([]string, len(e.Values))
		for i, v := range e.Values {
			parts[i] = e.Radix.format(v)
		}
		return "%" + e.Radix.prefix() + strings.Join(parts, ".")
	case KindNumericRange:
		return "%" + e.Radix.prefix() + e.Radix.format(e.Min) + "-" + e.Radix.format(e.Max)
	default:
		return ""
	}
}

func repeatPrefix(atLeast, upTo int) string {
	switch {
	case atLeast == upTo:
		return strconv.Itoa(atLeast)
	case atLeast == 0 && upTo == Unbounded:
		return "*"
	case atLeast == 0:
		return "*" + strconv.Itoa(upTo)
	case upTo == Unbounded:
		return strconv.Itoa(atLeast) + "*"
	default:
		return strconv.Itoa(atLeast) + "*" + strconv.Itoa(upTo)
	}
}
