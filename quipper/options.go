package quipper

// Option configures Lex, Parse, ParseRule and ParseTree.
type Option func(*options)

type options struct {
	filename string
	strict   bool
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithFilename records name in every Position reported for the input.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// WithStrictCalls turns subroutine calls that do not resolve to a local
// definition into a SemanticError.
func WithStrictCalls() Option {
	return func(o *options) { o.strict = true }
}
