// Package abnferr defines the structured error values raised by the
// grammar parser and the validation engine.
package abnferr

import (
	"fmt"
	"strings"
)

// ParserError reports that grammar text could not be parsed. Construct
// is the name of the production the parser was attempting (e.g.
// "rule name", "quoted literal") and Offset is the rune offset into the
// source text at which the parser gave up. The parser does not attempt
// recovery, so at most one ParserError is ever raised per call.
type ParserError struct {
	Construct string
	Offset    int
	Row       int
	Message   string
}

func (e *ParserError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%d: parsing %s: %s", e.Row, e.Construct, e.Message)
	}
	return fmt.Sprintf("offset %d: parsing %s: %s", e.Offset, e.Construct, e.Message)
}

// ValidationError reports that an input string did not match at a given
// code-point offset. Index is typically the position of the deepest
// failed sub-match.
type ValidationError struct {
	Index   int
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("at offset %d: %s", e.Index, e.Message)
}

// ErrorCollection aggregates the ValidationErrors of several alternative
// paths that all failed. It is only ever constructed with a flattened,
// leaf-only list: nested collections are flattened at construction time.
type ErrorCollection struct {
	Errors []*ValidationError
}

func (e *ErrorCollection) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("no alternative matched:\n  %s", strings.Join(msgs, "\n  "))
}

// Collect flattens a list of validation failures (bare ValidationErrors
// or nested ErrorCollections, as produced by a set of failed
// alternatives) into a single error following the propagation policy:
// zero inputs yields nil, one leaf error is returned bare, and more than
// one is wrapped in a flattened ErrorCollection.
func Collect(errs []error) error {
	var leaves []*ValidationError
	for _, err := range errs {
		switch e := err.(type) {
		case nil:
			continue
		case *ValidationError:
			leaves = append(leaves, e)
		case *ErrorCollection:
			leaves = append(leaves, e.Errors...)
		default:
			leaves = append(leaves, &ValidationError{Message: e.Error()})
		}
	}
	switch len(leaves) {
	case 0:
		return nil
	case 1:
		return leaves[0]
	default:
		return &ErrorCollection{Errors: leaves}
	}
}
