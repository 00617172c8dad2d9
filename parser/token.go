package parser

import "github.com/cmkilger/goabnf/element"

type tokenKind string

const (
	tokenKindID            = tokenKind("rule name")
	tokenKindDefinedAs     = tokenKind("=")
	tokenKindDefinedAsIncr = tokenKind("=/")
	tokenKindSlash         = tokenKind("/")
	tokenKindLParen        = tokenKind("(")
	tokenKindRParen        = tokenKind(")")
	tokenKindLBracket      = tokenKind("[")
	tokenKindRBracket      = tokenKind("]")
	tokenKindString        = tokenKind("quoted string")
	tokenKindNumeric       = tokenKind("numeric terminal")
	tokenKindStar          = tokenKind("*")
	tokenKindDigits        = tokenKind("repeat count")
	tokenKindNewline       = tokenKind("newline")
	tokenKindEOF           = tokenKind("eof")
)

type numericShape int

const (
	numericSingle numericShape = iota
	numericSeries
	numericRange
)

// token is a single lexical unit of an ABNF grammar. Only the fields
// relevant to kind are populated.
type token struct {
	kind tokenKind
	row  int

	// tokenKindID
	name string

	// tokenKindString
	text          string
	caseSensitive bool

	// tokenKindNumeric
	shape  numericShape
	radix  element.Radix
	value  rune
	values []rune
	min    rune
	max    rune

	// tokenKindDigits
	num int
}
