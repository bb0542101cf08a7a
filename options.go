package lispscan

import (
	"github.com/agentable/lispscan/idents"
	"github.com/agentable/lispscan/internal/source"
)

// IdentClassifier decides which characters make up identifiers. The
// classifiers of package idents implement it; [idents.Lisp] is the default.
type IdentClassifier interface {
	// IsIdentRune reports whether ch is accepted as the i'th character of
	// an identifier (i == 0 for the first).
	IsIdentRune(ch rune, i int) bool
}

// DefaultBufferSize is the read window capacity used without
// [WithBufferSize].
const DefaultBufferSize = source.DefaultSize

// Option configures a [Scanner].
type Option func(*scannerOptions)

// scannerOptions holds configuration for a [Scanner].
type scannerOptions struct {
	filename   string
	mode       Mode
	whitespace Whitespace
	ident      IdentClassifier
	handler    ErrorHandler
	bufSize    int
}

func defaultOptions() scannerOptions {
	return scannerOptions{
		mode:       LispTokens,
		whitespace: LispWhitespace,
		ident:      idents.Lisp{},
		handler:    stderrHandler,
		bufSize:    DefaultBufferSize,
	}
}

// WithFilename sets the filename recorded in every [Position].
func WithFilename(name string) Option {
	return func(o *scannerOptions) {
		o.filename = name
	}
}

// WithMode sets the initial recognition mode. The default is [LispTokens].
func WithMode(m Mode) Option {
	return func(o *scannerOptions) {
		o.mode = m
	}
}

// WithWhitespace sets the initial white space set. The default is
// [LispWhitespace].
func WithWhitespace(w Whitespace) Option {
	return func(o *scannerOptions) {
		o.whitespace = w
	}
}

// WithIdentClassifier sets the identifier classifier. A nil classifier
// restores the default.
func WithIdentClassifier(c IdentClassifier) Option {
	return func(o *scannerOptions) {
		if c == nil {
			c = idents.Lisp{}
		}
		o.ident = c
	}
}

// WithIdentFunc is like [WithIdentClassifier] for a plain function.
func WithIdentFunc(f func(ch rune, i int) bool) Option {
	if f == nil {
		return WithIdentClassifier(nil)
	}
	return WithIdentClassifier(idents.Func(f))
}

// WithErrorHandler sets the function receiving diagnostics. A nil handler
// restores the default, which prints each diagnostic to os.Stderr.
func WithErrorHandler(h ErrorHandler) Option {
	return func(o *scannerOptions) {
		if h == nil {
			h = stderrHandler
		}
		o.handler = h
	}
}

// WithBufferSize sets the capacity of the read window in bytes. Values
// below utf8.UTFMax are raised to it. The default is
// [DefaultBufferSize].
func WithBufferSize(n int) Option {
	return func(o *scannerOptions) {
		o.bufSize = n
	}
}
