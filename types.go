package lispscan

import "fmt"

// Position is a source position. A position is valid if Line > 0.
type Position struct {
	Filename string `json:"filename,omitempty"` // filename, if any
	Offset   int    `json:"offset"`             // byte offset, starting at 0
	Line     int    `json:"line"`               // line number, starting at 1
	Column   int    `json:"column"`             // column number, starting at 1 (character count per line)
}

// IsValid reports whether the position is valid.
func (pos Position) IsValid() bool { return pos.Line > 0 }

// String returns "file:line:column", using "<input>" for an empty filename
// and omitting line and column for an invalid position.
func (pos Position) String() string {
	s := pos.Filename
	if s == "" {
		s = "<input>"
	}
	if pos.IsValid() {
		s += fmt.Sprintf(":%d:%d", pos.Line, pos.Column)
	}
	return s
}

// Lexeme is a scanned token together with its source text and start
// position.
type Lexeme struct {
	Token Token    `json:"token"`
	Text  string   `json:"text"`
	Pos   Position `json:"pos"`
}

// String returns "pos: (token) text".
func (l Lexeme) String() string {
	return fmt.Sprintf("%s: (%s) %s", l.Pos, l.Token, l.Text)
}

// tracker keeps line and column counts for the characters consumed so
// far.
type tracker struct {
	line        int // line count
	column      int // character count on the current line
	lastLineLen int // length of last line in characters
}

func (t *tracker) reset() {
	*t = tracker{line: 1}
}

// advance records one consumed character.
func (t *tracker) advance(ch rune) {
	t.column++
	if ch == '\n' {
		t.line++
		t.lastLineLen = t.column
		t.column = 0
	}
}

// at returns the line and column of the last consumed character. Right
// after a newline that is the end of the previous line.
func (t *tracker) at() (line, column int) {
	switch {
	case t.column > 0:
		return t.line, t.column
	case t.lastLineLen > 0:
		return t.line - 1, t.lastLineLen
	}
	return 1, 1
}
