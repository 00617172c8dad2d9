package validator

import "github.com/cmkilger/goabnf/corerule"

type config struct {
	entry             string
	allowUnixNewlines bool
	encoding          corerule.Encoding
}

func defaultConfig() config {
	return config{
		allowUnixNewlines: true,
		encoding:          corerule.EncodingASCII,
	}
}

// Option configures a call to Validate.
type Option func(*config)

// WithEntry selects the rule validation starts from. Defaults to the
// first rule in the grammar's source order.
func WithEntry(name string) Option {
	return func(c *config) { c.entry = name }
}

// WithUnixNewlines relaxes the CRLF core rule to also accept a bare
// "\n" or "\r". Default true.
func WithUnixNewlines(allow bool) Option {
	return func(c *config) { c.allowUnixNewlines = allow }
}

// WithEncoding widens VCHAR for the core rule table merged under the
// grammar's own rules. Default EncodingASCII.
func WithEncoding(enc corerule.Encoding) Option {
	return func(c *config) { c.encoding = enc }
}
