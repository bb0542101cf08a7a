package lispscan

import (
	"errors"
	"fmt"
	"os"
)

// Sentinel errors.
var (
	// ErrScan is matched by every lexical diagnostic reported by a Scanner.
	ErrScan = errors.New("lispscan: scan error")
	// ErrEncoding classifies invalid UTF-8 and NUL characters.
	ErrEncoding = errors.New("lispscan: encoding error")
	// ErrNumber classifies malformed numeric literals.
	ErrNumber = errors.New("lispscan: number error")
	// ErrLiteral classifies unterminated literals and bad escapes.
	ErrLiteral = errors.New("lispscan: literal error")
	// ErrTokenCode is returned when a value does not denote a Token.
	ErrTokenCode = errors.New("lispscan: invalid token code")
)

// Error is a lexical diagnostic. Scanning continues after every Error; the
// token being scanned when it was reported is still returned.
type Error struct {
	Pos  Position
	Msg  string
	Kind error // ErrEncoding, ErrNumber or ErrLiteral
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Unwrap lets errors.Is match both e.Kind and [ErrScan].
func (e *Error) Unwrap() []error {
	return []error{e.Kind, ErrScan}
}

// ErrorHandler receives each diagnostic as it is reported. It runs inside
// Scan, Next or Peek; [Scanner.TokenText] returns the text scanned so far.
type ErrorHandler func(err *Error)

// stderrHandler is the default ErrorHandler.
func stderrHandler(err *Error) {
	fmt.Fprintln(os.Stderr, err)
}

// error reports a diagnostic positioned at the current token, or at the
// scan position when no token is in progress.
func (s *Scanner) error(kind error, msg string) {
	s.tokEnd = s.src.MarkEnd()
	s.errCount++
	pos := s.Position
	if !pos.IsValid() {
		pos = s.Pos()
	}
	s.handler(&Error{Pos: pos, Msg: msg, Kind: kind})
}

func (s *Scanner) errorf(kind error, format string, args ...any) {
	s.error(kind, fmt.Sprintf(format, args...))
}
