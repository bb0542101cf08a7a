package lispscan

import (
	"strconv"
	"strings"
)

// Mode selects the token categories a [Scanner] recognizes. When a category
// is disabled its characters are returned as [Char] tokens instead.
//
// The bit values match the historical integer mode word, so a Mode can be
// stored or exchanged as a plain integer.
type Mode uint

const (
	ScanIdents     Mode = 1 << (iota + 2) // identifiers, "-", "~@" and "#{"
	ScanInts                              // integer literals
	ScanFloats                            // floats; also enables integers
	ScanStrings                           // double-quoted strings
	ScanKeywords                          // ":keyword"
	ScanRawStrings                        // ¬raw¬ strings
	ScanComments                          // ; line comments
	SkipComments                          // drop comments from the token stream; needs ScanComments
)

// LispTokens recognizes every category and skips comments. It is the
// default mode.
const LispTokens = ScanIdents | ScanInts | ScanFloats | ScanStrings | ScanKeywords | ScanRawStrings | ScanComments | SkipComments

// Has reports whether every flag in f is set in m.
func (m Mode) Has(f Mode) bool { return m&f == f }

// With returns m with the flags of f set.
func (m Mode) With(f Mode) Mode { return m | f }

// Without returns m with the flags of f cleared.
func (m Mode) Without(f Mode) Mode { return m &^ f }

// scansNumbers reports whether numeric literals are recognized at all.
func (m Mode) scansNumbers() bool { return m&(ScanInts|ScanFloats) != 0 }

var modeNames = [...]struct {
	flag Mode
	name string
}{
	{ScanIdents, "ScanIdents"},
	{ScanInts, "ScanInts"},
	{ScanFloats, "ScanFloats"},
	{ScanStrings, "ScanStrings"},
	{ScanKeywords, "ScanKeywords"},
	{ScanRawStrings, "ScanRawStrings"},
	{ScanComments, "ScanComments"},
	{SkipComments, "SkipComments"},
}

// String lists the set flags joined by '|', or "0" for the empty mode.
func (m Mode) String() string {
	if m == 0 {
		return "0"
	}
	var names []string
	for _, n := range modeNames {
		if m.Has(n.flag) {
			names = append(names, n.name)
		}
	}
	if rest := m &^ LispTokens; rest != 0 {
		names = append(names, "0x"+strconv.FormatUint(uint64(rest), 16))
	}
	return strings.Join(names, "|")
}

// Whitespace is the set of characters a [Scanner] skips between tokens.
// Only characters below 64 can be members.
type Whitespace uint64

// LispWhitespace holds tab, newline, carriage return and space. It is the
// default white space set.
const LispWhitespace Whitespace = 1<<'\t' | 1<<'\n' | 1<<'\r' | 1<<' '

// WhitespaceOf returns the set holding chars. Characters of value 64 or
// more cannot be represented and are ignored.
func WhitespaceOf(chars ...rune) Whitespace {
	var w Whitespace
	for _, ch := range chars {
		if ch >= 0 && ch < 64 {
			w |= 1 << uint(ch)
		}
	}
	return w
}

// Contains reports whether ch is in w.
func (w Whitespace) Contains(ch rune) bool {
	return ch >= 0 && ch < 64 && w&(1<<uint(ch)) != 0
}
