package lispscan

import (
	"strings"
	"testing"

	"github.com/agentable/lispscan/idents"
	"github.com/agentable/lispscan/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NoOptions(t *testing.T) {
	s := New(strings.NewReader(""))
	require.NotNil(t, s)
	assert.Equal(t, LispTokens, s.Mode())
	assert.Equal(t, LispWhitespace, s.Whitespace())
	assert.Equal(t, idents.Lisp{}, s.ident)
	assert.NotNil(t, s.handler)
	assert.Equal(t, DefaultBufferSize, s.src.Size())
	assert.Equal(t, source.DefaultSize, DefaultBufferSize)
	assert.Empty(t, s.Position.Filename)
}

func TestNew_WithOptions(t *testing.T) {
	h := func(*Error) {}
	s := New(strings.NewReader(""),
		WithFilename("init.el"),
		WithMode(ScanIdents),
		WithWhitespace(WhitespaceOf(' ')),
		WithIdentClassifier(idents.Clojure{}),
		WithErrorHandler(h),
		WithBufferSize(64),
	)
	assert.Equal(t, "init.el", s.Position.Filename)
	assert.Equal(t, ScanIdents, s.Mode())
	assert.Equal(t, WhitespaceOf(' '), s.Whitespace())
	assert.Equal(t, idents.Clojure{}, s.ident)
	assert.Equal(t, 64, s.src.Size())
}

func TestWithBufferSize_Clamped(t *testing.T) {
	t.Parallel()

	for _, n := range []int{-1, 0, 1, 3} {
		s := New(strings.NewReader(""), WithBufferSize(n))
		assert.Equal(t, 4, s.src.Size(), "size %d", n)
	}
}

func TestWithNil_RestoresDefaults(t *testing.T) {
	t.Parallel()

	s := New(strings.NewReader(""),
		WithIdentClassifier(idents.Go{}), WithIdentClassifier(nil),
		WithErrorHandler(nil),
	)
	assert.Equal(t, idents.Lisp{}, s.ident)
	assert.NotNil(t, s.handler)

	s = New(strings.NewReader(""), WithIdentFunc(nil))
	assert.Equal(t, idents.Lisp{}, s.ident)
}

func TestOptions_LastWins(t *testing.T) {
	t.Parallel()

	s := New(strings.NewReader(""), WithMode(0), WithMode(ScanInts), WithFilename("a"), WithFilename("b"))
	assert.Equal(t, ScanInts, s.Mode())
	assert.Equal(t, "b", s.Position.Filename)
}
