// Package idents provides identifier classifiers for the lispscan Scanner.
//
// A classifier decides whether a rune may appear at index i of an
// identifier (i == 0 is the first rune). The set of accepted runes must not
// intersect the scanner's white space set.
package idents

import (
	"maps"
	"slices"
	"strings"
	"unicode"
)

// Classifier reports whether ch is accepted as the i'th rune of an
// identifier.
type Classifier interface {
	IsIdentRune(ch rune, i int) bool
}

// Func adapts an ordinary function to a [Classifier].
type Func func(ch rune, i int) bool

// IsIdentRune calls f(ch, i).
func (f Func) IsIdentRune(ch rune, i int) bool { return f(ch, i) }

// lispSymbols are the punctuation runes accepted anywhere in a Lisp symbol.
const lispSymbols = "_$*+/?!<>="

// Lisp accepts Lisp symbols: Unicode letters, '_' and the punctuation
// "$*+/?!<>=" at any index, and Unicode digits and '-' after the first rune.
// It is the scanner's default.
type Lisp struct{}

func (Lisp) IsIdentRune(ch rune, i int) bool {
	switch {
	case strings.ContainsRune(lispSymbols, ch), unicode.IsLetter(ch):
		return true
	case i > 0:
		return ch == '-' || unicode.IsDigit(ch)
	}
	return false
}

// Go accepts Go identifiers: letters and '_' anywhere, digits after the
// first rune.
type Go struct{}

func (Go) IsIdentRune(ch rune, i int) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch) && i > 0
}

// Clojure accepts Clojure symbols. On top of [Lisp] it allows '%', '&' and
// '.' anywhere, and '\'', '#' and ':' after the first rune.
type Clojure struct{}

func (Clojure) IsIdentRune(ch rune, i int) bool {
	if (Lisp{}).IsIdentRune(ch, i) {
		return true
	}
	switch ch {
	case '%', '&', '.':
		return true
	case '\'', '#', ':':
		return i > 0
	}
	return false
}

// Extend returns a classifier that accepts everything base accepts, plus
// the runes of anywhere at any index and the runes of inner after the first
// rune.
func Extend(base Classifier, anywhere, inner string) Classifier {
	return Func(func(ch rune, i int) bool {
		if base.IsIdentRune(ch, i) || strings.ContainsRune(anywhere, ch) {
			return true
		}
		return i > 0 && strings.ContainsRune(inner, ch)
	})
}

// builtins maps classifier names to the built-in implementations.
var builtins = map[string]Classifier{
	"lisp":    Lisp{},
	"go":      Go{},
	"clojure": Clojure{},
}

// Lookup returns the built-in classifier registered under name.
func Lookup(name string) (Classifier, bool) {
	c, ok := builtins[strings.ToLower(name)]
	return c, ok
}

// Names returns the names of the built-in classifiers in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(builtins))
}
