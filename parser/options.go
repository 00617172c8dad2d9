package parser

import "github.com/cmkilger/goabnf/corerule"

type config struct {
	allowUnixNewlines         bool
	allowOmittingFinalNewline bool
	encoding                  corerule.Encoding
}

func defaultConfig() config {
	return config{
		allowUnixNewlines:         true,
		allowOmittingFinalNewline: true,
		encoding:                  corerule.EncodingASCII,
	}
}

// Option configures a call to Parse.
type Option func(*config)

// WithUnixNewlines controls whether a bare "\n" is accepted as a line
// ending anywhere CRLF is expected. Default true.
func WithUnixNewlines(allow bool) Option {
	return func(c *config) { c.allowUnixNewlines = allow }
}

// WithOmittingFinalNewline controls whether the grammar text may end
// without a trailing line ending. Default true.
func WithOmittingFinalNewline(allow bool) Option {
	return func(c *config) { c.allowOmittingFinalNewline = allow }
}

// WithEncoding restricts the code points allowed inside quoted literals
// and widens VCHAR accordingly. Default EncodingASCII.
func WithEncoding(enc corerule.Encoding) Option {
	return func(c *config) { c.encoding = enc }
}
