// Package lispscan provides a streaming scanner and tokenizer for Lisp
// source text encoded as UTF-8.
//
// A [Scanner] reads from an [io.Reader] through a fixed-size window, so
// sources of any length are tokenized in constant memory apart from the
// text of the current token. Repeated calls to [Scanner.Scan] return the
// tokens of the source: identifiers (symbols), integer and floating-point
// literals in bases 2, 8, 10 and 16 with '_' digit separators, double-quoted
// strings, ¬raw¬ strings with "¬¬" as the escaped delimiter, :keywords,
// ; line comments and single characters. Every token carries the exact
// source text and its start [Position].
//
// For compatibility with existing tools, the NUL character is not allowed.
// If the first character in the source is a UTF-8 encoded byte order mark
// (BOM), it is discarded.
//
// Lexical errors never stop the scanner. Each one increments
// [Scanner.ErrorCount] and is passed to the configured [ErrorHandler]; the
// token being scanned is still returned with its best-effort text.
//
// By default a Scanner skips white space and comments and recognizes all
// literals. It may be customized with [Option] values, or between tokens, to
// recognize only a subset of those literals and to use different identifier
// and white space characters.
package lispscan

import (
	"errors"
	"io"
	"iter"

	"github.com/agentable/lispscan/idents"
	"github.com/agentable/lispscan/internal/source"
)

const (
	eof    rune = -1 // end of input
	noChar rune = -2 // no character read yet, not EOF
)

// Scanner reads characters and tokens from an [io.Reader]. A Scanner owns
// its source and buffer exclusively and is not safe for concurrent use.
type Scanner struct {
	src *source.Buffer
	pos tracker

	// one character look-ahead
	ch rune

	tokEnd   int // stream offset just past the last token
	errCount int

	mode       Mode
	whitespace Whitespace
	ident      IdentClassifier
	handler    ErrorHandler

	opts scannerOptions

	// Start position of the most recently scanned token; set by Scan.
	// Calling Next invalidates it (Line == 0). The Filename field is left
	// untouched by the Scanner. If an error is reported while Position is
	// invalid, the scanner is not inside a token and the diagnostic is
	// positioned with Pos instead.
	Position Position
}

// New returns a Scanner reading from src, configured by opts. Without
// options it uses [LispTokens], [LispWhitespace] and [idents.Lisp], and
// prints diagnostics to os.Stderr.
func New(src io.Reader, opts ...Option) *Scanner {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s := &Scanner{
		src:  source.New(src, o.bufSize),
		opts: o,
	}
	s.init()
	return s
}

// Reset makes s read from src, discarding all state, and restores the
// configuration given to [New].
func (s *Scanner) Reset(src io.Reader) {
	s.src.Reset(src)
	s.init()
}

func (s *Scanner) init() {
	s.pos.reset()
	s.ch = noChar
	s.tokEnd = 0
	s.errCount = 0
	s.mode = s.opts.mode
	s.whitespace = s.opts.whitespace
	s.ident = s.opts.ident
	s.handler = s.opts.handler
	s.Position = Position{Filename: s.opts.filename}
}

// SetMode changes the recognition mode used by subsequent calls to Scan.
func (s *Scanner) SetMode(m Mode) { s.mode = m }

// Mode returns the current recognition mode.
func (s *Scanner) Mode() Mode { return s.mode }

// SetWhitespace changes the white space set used by subsequent calls to
// Scan.
func (s *Scanner) SetWhitespace(w Whitespace) { s.whitespace = w }

// Whitespace returns the current white space set.
func (s *Scanner) Whitespace() Whitespace { return s.whitespace }

// SetIdentClassifier changes the identifier classifier used by subsequent
// calls to Scan. A nil classifier restores [idents.Lisp].
func (s *Scanner) SetIdentClassifier(c IdentClassifier) {
	if c == nil {
		c = idents.Lisp{}
	}
	s.ident = c
}

// ErrorCount returns the number of lexical errors reported so far.
func (s *Scanner) ErrorCount() int { return s.errCount }

// Err returns the first error other than io.EOF returned by the source.
// Such an error ends the token stream like end of input does.
func (s *Scanner) Err() error { return s.src.Err() }

// next reads and returns the next character, or eof. It keeps the line and
// column counts and reports encoding errors.
func (s *Scanner) next() rune {
	hadChar := s.src.LastWidth() > 0
	ch, _, err := s.src.ReadRune()
	switch {
	case errors.Is(err, io.EOF):
		if hadChar {
			// the position just past the last character
			s.pos.column++
		}
		return eof
	case err != nil:
		s.pos.advance(ch)
		s.error(ErrEncoding, "invalid UTF-8 encoding")
		return ch
	}

	s.pos.advance(ch)
	if ch == 0 {
		s.error(ErrEncoding, "invalid character NUL")
	}
	return ch
}

// peek returns the look-ahead character, reading the first one on demand.
func (s *Scanner) peek() rune {
	if s.ch == noChar {
		// only ever true for the very first character
		s.ch = s.next()
		if s.ch == '\uFEFF' {
			s.ch = s.next() // ignore BOM
		}
	}
	return s.ch
}

// Peek returns the next character in the source without advancing the
// scanner. ok is false at end of input.
func (s *Scanner) Peek() (ch rune, ok bool) {
	if ch = s.peek(); ch == eof {
		return 0, false
	}
	return ch, true
}

// Next reads and returns the next character, the one Peek would return. ok
// is false at end of input. Next does not update the Scanner's Position
// field and leaves no token text; use Pos to get the current position.
func (s *Scanner) Next() (ch rune, ok bool) {
	s.src.Unmark()
	s.Position.Line = 0
	ch = s.peek()
	if ch == eof {
		return 0, false
	}
	s.ch = s.next()
	s.tokEnd = s.src.Offset()
	return ch, true
}

func (s *Scanner) isIdentRune(ch rune, i int) bool {
	return ch != eof && s.ident.IsIdentRune(ch, i)
}

// scanIdentifier consumes identifier characters following the current one
// and returns the first character that is not part of the identifier.
func (s *Scanner) scanIdentifier() rune {
	ch := s.next()
	for i := 1; s.isIdentRune(ch, i); i++ {
		ch = s.next()
	}
	return ch
}

// Scan reads the next token from the source and returns it. It returns a
// token of kind [EOF] at the end of the source, again on every later call.
// It reports scanner errors through the ErrorHandler and keeps going.
func (s *Scanner) Scan() Token {
	ch := s.peek()

redo:
	// reset token text position
	s.src.Unmark()
	s.Position.Line = 0

	// skip white space
	for s.whitespace.Contains(ch) {
		ch = s.next()
	}

	// start collecting token text
	s.Position.Offset = s.src.Mark()
	s.Position.Line, s.Position.Column = s.pos.at()

	// determine token value
	tok := CharToken(ch)
	switch {
	case ch == eof:
		tok = Token{Kind: EOF}
	case s.isIdentRune(ch, 0):
		if s.mode.Has(ScanIdents) {
			tok = Token{Kind: Ident}
			ch = s.scanIdentifier()
		} else {
			ch = s.next()
		}
	case isDecimal(ch):
		if s.mode.scansNumbers() {
			tok, ch = s.scanNumber(ch, false, false)
		} else {
			ch = s.next()
		}
	default:
		switch ch {
		case '-':
			ch = s.next()
			switch {
			case s.isIdentRune(ch, 0) && s.mode.Has(ScanIdents):
				tok = Token{Kind: Ident}
				ch = s.scanIdentifier()
			case isDecimal(ch) && s.mode.scansNumbers():
				tok, ch = s.scanNumber(ch, false, true)
			case s.mode.Has(ScanIdents):
				tok = Token{Kind: Ident} // bare "-"
			}
		case '"':
			if s.mode.Has(ScanStrings) {
				s.scanString('"')
				tok = Token{Kind: String}
			}
			ch = s.next()
		case ':':
			if s.mode.Has(ScanKeywords) {
				tok = Token{Kind: Keyword}
				ch = s.scanIdentifier()
			} else {
				ch = s.next()
			}
		case '.':
			ch = s.next()
			if isDecimal(ch) && s.mode.Has(ScanFloats) {
				tok, ch = s.scanNumber(ch, true, false)
			}
		case ';':
			ch = s.next()
			if s.mode.Has(ScanComments) {
				ch = s.scanComment(ch)
				if s.mode.Has(SkipComments) {
					goto redo
				}
				tok = Token{Kind: Comment}
			}
		case '¬':
			if s.mode.Has(ScanRawStrings) {
				ch = s.scanRawString()
				tok = Token{Kind: RawString}
			} else {
				ch = s.next()
			}
		case '~':
			ch = s.next()
			if ch == '@' && s.mode.Has(ScanIdents) {
				tok = Token{Kind: Ident}
				ch = s.next()
			}
		case '#':
			ch = s.next()
			if ch == '{' && s.mode.Has(ScanIdents) {
				tok = Token{Kind: Ident}
				ch = s.next()
			}
		default:
			ch = s.next()
		}
	}

	// end of token text
	s.tokEnd = s.src.MarkEnd()

	s.ch = ch
	return tok
}

// Pos returns the position of the character immediately after the
// character or token returned by the last call to Next or Scan. Use the
// Scanner's Position field for the start position of the most recently
// scanned token.
func (s *Scanner) Pos() Position {
	pos := Position{
		Filename: s.Position.Filename,
		Offset:   s.src.Offset(),
	}
	pos.Line, pos.Column = s.pos.at()
	return pos
}

// TokenText returns the source text of the most recently scanned token.
// It is empty after Next and for EOF. If called from an ErrorHandler, it
// returns the text scanned so far.
func (s *Scanner) TokenText() string {
	return s.src.Text()
}

// TokenSpan returns the stream offsets delimiting the most recently
// scanned token: TokenText is the source between start and end.
func (s *Scanner) TokenSpan() (start, end int) {
	if s.Position.IsValid() {
		return s.Position.Offset, s.tokEnd
	}
	return s.tokEnd, s.tokEnd
}

// All returns an iterator over the lexemes of the remaining source. It
// stops before EOF.
func (s *Scanner) All() iter.Seq[Lexeme] {
	return func(yield func(Lexeme) bool) {
		for {
			tok := s.Scan()
			if tok.Kind == EOF {
				return
			}
			if !yield(Lexeme{Token: tok, Text: s.TokenText(), Pos: s.Position}) {
				return
			}
		}
	}
}
