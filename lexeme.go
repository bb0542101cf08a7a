package lispscan

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// WriteJSON scans the remaining source and writes each lexeme to w as one
// JSON object per line, for example
//
//	{"token":"Ident","text":"def","pos":{"offset":1,"line":1,"column":2}}
//
// It returns the number of lexemes written. Lexical errors do not stop
// WriteJSON; check [Scanner.ErrorCount] afterwards.
func (s *Scanner) WriteJSON(w io.Writer) (n int, err error) {
	enc := jsontext.NewEncoder(w)
	for lx := range s.All() {
		if err := json.MarshalEncode(enc, lx); err != nil {
			return n, fmt.Errorf("lispscan: encode %s: %w", lx.Pos, err)
		}
		n++
	}
	return n, s.Err()
}

// ReadJSON decodes lexemes written by [Scanner.WriteJSON].
func ReadJSON(r io.Reader) ([]Lexeme, error) {
	dec := jsontext.NewDecoder(r)
	var out []Lexeme
	for {
		var lx Lexeme
		if err := json.UnmarshalDecode(dec, &lx); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, fmt.Errorf("lispscan: decode lexeme %d: %w", len(out), err)
		}
		out = append(out, lx)
	}
}
