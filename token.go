package lispscan

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"fortio.org/safecast"
)

// Kind identifies the category of a [Token].
type Kind uint8

const (
	EOF       Kind = iota // end of input
	Ident                 // symbol, including bare "-", "~@" and "#{"
	Int                   // integer literal in any base
	Float                 // floating-point literal
	String                // double-quoted string, quotes included
	Keyword               // ":name", colon included
	RawString             // ¬raw¬ string, delimiters included
	Comment               // ; line comment
	Char                  // any other single Unicode character
)

var kindNames = [...]string{
	EOF:       "EOF",
	Ident:     "Ident",
	Int:       "Int",
	Float:     "Float",
	String:    "String",
	Keyword:   "Keyword",
	RawString: "RawString",
	Comment:   "Comment",
	Char:      "Char",
}

// String returns the human-readable name of k.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Token is the result of [Scanner.Scan]: a category and, for [Char]
// tokens, the character itself. The zero Token is EOF.
type Token struct {
	Kind Kind
	Char rune // valid if Kind == Char
}

// CharToken returns the single-character token for ch.
func CharToken(ch rune) Token { return Token{Kind: Char, Char: ch} }

// String returns the kind name, or the Go-quoted character for [Char]
// tokens, e.g. `Ident` or `"("`.
func (t Token) String() string {
	if t.Kind == Char {
		return strconv.Quote(string(t.Char))
	}
	return t.Kind.String()
}

// MarshalText implements encoding.TextMarshaler using [Token.String].
func (t Token) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts every form
// produced by [Token.MarshalText].
func (t *Token) UnmarshalText(text []byte) error {
	s := string(text)
	for k, name := range kindNames {
		if Kind(k) != Char && name == s {
			*t = Token{Kind: Kind(k)}
			return nil
		}
	}
	u, err := strconv.Unquote(s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrTokenCode, s)
	}
	r, size := utf8.DecodeRuneInString(u)
	if size == 0 || size != len(u) {
		return fmt.Errorf("%w: %q is not a single character", ErrTokenCode, s)
	}
	*t = CharToken(r)
	return nil
}

// Code returns the integer encoding of t used by text/scanner style
// callers: negative values for token categories, the character itself
// for [Char] tokens.
func (t Token) Code() int32 {
	if t.Kind == Char {
		return t.Char
	}
	return -1 - int32(t.Kind)
}

// TokenFromCode is the inverse of [Token.Code].
func TokenFromCode(code int) (Token, error) {
	if code < 0 {
		k := -1 - code
		if k >= int(Char) {
			return Token{}, fmt.Errorf("%w: %d", ErrTokenCode, code)
		}
		return Token{Kind: Kind(k)}, nil
	}
	r, err := safecast.Conv[rune](code)
	if err != nil || !utf8.ValidRune(r) {
		return Token{}, fmt.Errorf("%w: %d", ErrTokenCode, code)
	}
	return CharToken(r), nil
}
