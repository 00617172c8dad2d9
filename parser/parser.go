// Package parser implements the hand-written recursive-descent parser
// for RFC 5234/7405 ABNF grammar text, producing an *element.Grammar.
package parser

import (
	"strings"

	"github.com/cmkilger/goabnf/abnferr"
	"github.com/cmkilger/goabnf/element"
)

func raiseSyntaxError(row int, se *syntaxError) {
	panic(&abnferr.ParserError{Construct: se.construct, Row: row, Message: se.message})
}

// Parse parses ABNF grammar text into a Grammar. The parser does not
// attempt error recovery: it raises at most one ParserError, naming the
// construct it was attempting and the offset it reached.
func Parse(text string, opts ...Option) (g *element.Grammar, err error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	p := &parser{lex: newLexer(text, cfg)}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		pe, ok := r.(*abnferr.ParserError)
		if !ok {
			panic(r)
		}
		pe.Offset = p.lex.offset()
		g, err = nil, pe
	}()

	return p.parseGrammar(), nil
}

type parser struct {
	lex    *lexer
	peeked *token
	last   *token
	row    int
}

func (p *parser) peekToken() *token {
	if p.peeked == nil {
		tok, err := p.lex.next()
		if err != nil {
			panic(err)
		}
		p.peeked = tok
	}
	return p.peeked
}

func (p *parser) consume(k tokenKind) bool {
	tok := p.peekToken()
	if tok.kind != k {
		return false
	}
	p.last = tok
	p.row = tok.row
	p.peeked = nil
	return true
}

func (p *parser) skipNewlines() {
	for p.consume(tokenKindNewline) {
	}
}

func (p *parser) parseGrammar() *element.Grammar {
	p.skipNewlines()

	var rules []*element.Rule
	index := map[string]int{}

	for !p.consume(tokenKindEOF) {
		name, isIncr, body := p.parseRule()
		key := strings.ToLower(name)

		if i, ok := index[key]; ok {
			if !isIncr {
				raiseSyntaxError(p.row, synErrDuplicateRule)
			}
			existing := rules[i].Body
			if existing.Kind == element.KindAlternation {
				existing.Children = append(existing.Children, body)
			} else {
				rules[i].Body = element.NewAlternation([]*element.Element{existing, body})
			}
		} else {
			index[key] = len(rules)
			rules = append(rules, &element.Rule{Name: name, Body: body})
		}

		p.skipNewlines()
	}

	if len(rules) == 0 {
		raiseSyntaxError(0, synErrEmptyGrammar)
	}

	g, err := element.NewGrammar(rules)
	if err != nil {
		panic(&abnferr.ParserError{Construct: "grammar", Message: err.Error()})
	}
	return g
}

func (p *parser) parseRule() (name string, isIncr bool, body *element.Element) {
	if !p.consume(tokenKindID) {
		raiseSyntaxError(p.row, synErrNoRuleName)
	}
	name = p.last.name

	switch {
	case p.consume(tokenKindDefinedAs):
		isIncr = false
	case p.consume(tokenKindDefinedAsIncr):
		isIncr = true
	default:
		raiseSyntaxError(p.row, synErrNoDefinedAs)
	}

	body = p.parseAlternation()

	switch {
	case p.consume(tokenKindNewline):
	case p.consume(tokenKindEOF):
		if !p.lex.cfg.allowOmittingFinalNewline {
			raiseSyntaxError(p.row, synErrMissingFinalNewline)
		}
	default:
		raiseSyntaxError(p.row, synErrTrailingContent)
	}

	return name, isIncr, body
}

func (p *parser) parseAlternation() *element.Element {
	alts := []*element.Element{p.parseConcatenation()}
	for p.consume(tokenKindSlash) {
		alts = append(alts, p.parseConcatenation())
	}
	return element.NewAlternation(alts)
}

func (p *parser) parseConcatenation() *element.Element {
	var children []*element.Element
	for {
		e := p.parseRepeatedElement()
		if e == nil {
			break
		}
		children = append(children, e)
	}
	if len(children) == 0 {
		raiseSyntaxError(p.row, synErrEmptyAlternative)
	}
	return element.NewConcatenation(children)
}

func (p *parser) parseRepeatedElement() *element.Element {
	atLeast, upTo, hasRepeat := p.parseRepeat()

	e := p.parseSingleElement()
	if e == nil {
		if hasRepeat {
			raiseSyntaxError(p.row, synErrRepeatNoOperand)
		}
		return nil
	}

	if !hasRepeat {
		return e
	}
	if upTo != element.Unbounded && atLeast > upTo {
		raiseSyntaxError(p.row, synErrRepeatBoundsInvalid)
	}
	return element.NewRepetition(e, atLeast, upTo)
}

// parseRepeat consumes an optional "repeat" prefix:
// repeat = 1*DIGIT / (*DIGIT "*" *DIGIT)
func (p *parser) parseRepeat() (atLeast, upTo int, ok bool) {
	if p.consume(tokenKindDigits) {
		n := p.last.num
		if p.consume(tokenKindStar) {
			if p.consume(tokenKindDigits) {
				return n, p.last.num, true
			}
			return n, element.Unbounded, true
		}
		return n, n, true
	}
	if p.consume(tokenKindStar) {
		if p.consume(tokenKindDigits) {
			return 0, p.last.num, true
		}
		return 0, element.Unbounded, true
	}
	return 0, 0, false
}

func (p *parser) parseSingleElement() *element.Element {
	switch {
	case p.consume(tokenKindID):
		return element.NewRuleRef(p.last.name)
	case p.consume(tokenKindString):
		return element.NewLiteralString(p.last.text, p.last.caseSensitive)
	case p.consume(tokenKindNumeric):
		return numericElement(p.last)
	case p.consume(tokenKindLParen):
		inner := p.parseAlternation()
		if !p.consume(tokenKindRParen) {
			raiseSyntaxError(p.row, synErrUnclosedGroup)
		}
		return inner
	case p.consume(tokenKindLBracket):
		inner := p.parseAlternation()
		if !p.consume(tokenKindRBracket) {
			raiseSyntaxError(p.row, synErrUnclosedOption)
		}
		return element.NewOptional(inner)
	default:
		return nil
	}
}

func numericElement(tok *token) *element.Element {
	switch tok.shape {
	case numericSeries:
		return element.NewNumericSeries(tok.values, tok.radix)
	case numericRange:
		return element.NewNumericRange(tok.min, tok.max, tok.radix)
	default:
		return element.NewNumeric(tok.value, tok.radix)
	}
}
