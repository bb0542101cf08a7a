// Package source provides the buffered byte window underneath the lispscan
// Scanner: incremental refills from an [io.Reader], UTF-8 decoding that is
// safe across refill boundaries, and collection of token text that may span
// several refills.
//
// Offsets returned by a [Buffer] are absolute byte offsets from the start of
// the stream. The "last rune" is the rune most recently returned by
// [Buffer.ReadRune]; the scanner treats it as its one-rune lookahead, so the
// text of a token always ends just before it.
package source

import (
	"errors"
	"io"
	"unicode/utf8"
)

// DefaultSize is the window capacity used when none is given.
const DefaultSize = 1024

// ErrInvalidUTF8 is returned by [Buffer.ReadRune] together with
// [utf8.RuneError] when the bytes at the cursor are not valid UTF-8. The
// cursor has advanced by exactly one byte.
var ErrInvalidUTF8 = errors.New("invalid UTF-8 encoding")

// Buffer is a fixed-capacity window over an [io.Reader]. It is not safe for
// concurrent use.
type Buffer struct {
	src io.Reader
	buf []byte
	pos int // read cursor (buf index)
	end int // filled length (buf index)

	off  int   // stream offset of buf[0]
	last int   // byte width of the last rune; 0 after EOF
	eof  bool  // no further reads
	err  error // first read error other than io.EOF

	// Token text. Usually the whole token lives in buf[tokPos:tokEnd]; when a
	// refill discards the front of the window, the head is moved to tok.
	tok    []byte
	tokPos int // valid if >= 0
	tokEnd int
}

// New returns a Buffer reading from src with a window of size bytes. Sizes
// smaller than [utf8.UTFMax] are raised to it.
func New(src io.Reader, size int) *Buffer {
	size = max(size, utf8.UTFMax)
	b := &Buffer{buf: make([]byte, size)}
	b.Reset(src)
	return b
}

// Reset discards all buffered state and starts reading from src. The window
// allocation is reused.
func (b *Buffer) Reset(src io.Reader) {
	b.src = src
	b.pos, b.end = 0, 0
	b.off, b.last = 0, 0
	b.eof, b.err = false, nil
	b.tok = b.tok[:0]
	b.tokPos, b.tokEnd = -1, 0
}

// Size returns the window capacity.
func (b *Buffer) Size() int { return len(b.buf) }

// Err returns the first read error other than [io.EOF], if any.
func (b *Buffer) Err() error { return b.err }

// ReadRune decodes the rune at the cursor and advances past it. At end of
// stream it returns (0, 0, io.EOF) and keeps doing so. Invalid encodings
// yield (utf8.RuneError, 1, ErrInvalidUTF8).
func (b *Buffer) ReadRune() (r rune, size int, err error) {
	// common case: an ASCII byte is already buffered
	if b.pos < b.end && b.buf[b.pos] < utf8.RuneSelf {
		r = rune(b.buf[b.pos])
		b.pos++
		b.last = 1
		return r, 1, nil
	}

	for b.end-b.pos < utf8.UTFMax && !utf8.FullRune(b.buf[b.pos:b.end]) && !b.eof {
		b.fill()
	}
	if b.pos == b.end {
		b.last = 0
		return 0, 0, io.EOF
	}

	r, size = rune(b.buf[b.pos]), 1
	if r >= utf8.RuneSelf {
		r, size = utf8.DecodeRune(b.buf[b.pos:b.end])
	}
	b.pos += size
	b.last = size
	if r == utf8.RuneError && size == 1 {
		return r, size, ErrInvalidUTF8
	}
	return r, size, nil
}

// fill moves the unread tail of the window to its front and reads more
// bytes behind it. A read of zero bytes, or any error, ends the stream.
func (b *Buffer) fill() {
	if b.tokPos >= 0 {
		b.tok = append(b.tok, b.buf[b.tokPos:b.pos]...)
		b.tokPos = 0
		// tokEnd is set by MarkEnd
	}

	n := copy(b.buf, b.buf[b.pos:b.end])
	b.off += b.pos
	b.pos, b.end = 0, n

	m, err := b.src.Read(b.buf[n:])
	if m < 0 || m > len(b.buf)-n {
		// misbehaving reader
		m, err = 0, io.ErrShortBuffer
	}
	b.end += m
	if err != nil || m == 0 {
		b.eof = true
		if err != nil && !errors.Is(err, io.EOF) && b.err == nil {
			b.err = err
		}
	}
}

// Offset returns the stream offset at which the last rune starts, which is
// the offset immediately after everything consumed before it.
func (b *Buffer) Offset() int {
	return b.off + b.pos - b.last
}

// LastWidth returns the byte width of the last rune, or 0 after EOF.
func (b *Buffer) LastWidth() int { return b.last }

// Mark starts collecting token text at the last rune and returns its
// stream offset.
func (b *Buffer) Mark() int {
	b.tok = b.tok[:0]
	b.tokPos = b.pos - b.last
	b.tokEnd = b.tokPos
	return b.off + b.tokPos
}

// Unmark stops collecting token text; [Buffer.Text] returns "" until the
// next Mark.
func (b *Buffer) Unmark() { b.tokPos = -1 }

// MarkEnd ends the token text just before the last rune and returns the
// stream offset of that end.
func (b *Buffer) MarkEnd() int {
	b.tokEnd = b.pos - b.last
	return b.off + b.tokEnd
}

// Text returns the token text between Mark and MarkEnd, including any head
// saved away by intervening refills.
func (b *Buffer) Text() string {
	if b.tokPos < 0 {
		return ""
	}
	end := max(b.tokEnd, b.tokPos)
	if len(b.tok) == 0 {
		return string(b.buf[b.tokPos:end])
	}
	return string(b.tok) + string(b.buf[b.tokPos:end])
}
