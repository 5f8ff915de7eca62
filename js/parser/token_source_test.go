package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/jsfront/js/lexer"
	"github.com/dhamidi/jsfront/js/syntax"
)

func newTestSource(t *testing.T, src string) *TokenSource {
	t.Helper()
	lex, err := lexer.New(src, 0)
	require.NoError(t, err)
	return NewTokenSource(lex)
}

func TestTokenSourceSkipsTrivia(t *testing.T) {
	s := newTestSource(t, "  /* c */ a // d\n")
	assert.Equal(t, syntax.TokenIdent, s.Current())
	assert.Equal(t, 10, s.Position())
	require.Len(t, s.Trivia(), 3)

	s.Bump(lexer.Regular)
	assert.Equal(t, syntax.EOF, s.Current())
	kinds := make([]syntax.Kind, 0, len(s.Trivia()))
	for _, tr := range s.Trivia() {
		kinds = append(kinds, tr.Kind)
	}
	assert.Equal(t, []syntax.Kind{
		syntax.TokenWhitespace, syntax.TokenMultilineComment, syntax.TokenWhitespace,
		syntax.TokenWhitespace, syntax.TokenComment, syntax.TokenNewline,
	}, kinds)
}

func TestTokenSourceLookahead(t *testing.T) {
	s := newTestSource(t, "a\nb c")
	tests := []struct {
		n         int
		kind      syntax.Kind
		lineBreak bool
	}{
		{0, syntax.TokenIdent, false},
		{1, syntax.TokenIdent, true},
		{2, syntax.TokenIdent, false},
		{3, syntax.EOF, false},
		{7, syntax.EOF, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, s.Nth(tt.n), "Nth(%d)", tt.n)
		assert.Equal(t, tt.lineBreak, s.HasNthPrecedingLineBreak(tt.n), "HasNthPrecedingLineBreak(%d)", tt.n)
	}
	assert.Equal(t, syntax.NewRange(4, 5), s.NthRange(2))

	// Looking ahead does not move the current token.
	assert.Equal(t, syntax.NewRange(0, 1), s.CurrentRange())
	s.Bump(lexer.Regular)
	assert.Equal(t, syntax.NewRange(2, 3), s.CurrentRange())
	assert.True(t, s.HasPrecedingLineBreak())
	assert.Equal(t, syntax.TokenIdent, s.Nth(1))
	assert.Equal(t, syntax.EOF, s.Nth(2))
}

func TestTokenSourceReLex(t *testing.T) {
	s := newTestSource(t, "/a+/g.x")
	assert.Equal(t, syntax.TokenSlash, s.Current())
	assert.Equal(t, syntax.TokenIdent, s.Nth(1))

	assert.Equal(t, syntax.TokenRegex, s.ReLex(lexer.ReLexRegex))
	assert.Equal(t, syntax.NewRange(0, 5), s.CurrentRange())
	assert.Equal(t, syntax.TokenDot, s.Nth(1))
}

func TestTokenSourceCheckpoint(t *testing.T) {
	s := newTestSource(t, "a /* x */ b c")
	cp := s.Checkpoint()
	s.Bump(lexer.Regular)
	s.Bump(lexer.Regular)
	assert.Len(t, s.Trivia(), 4)

	s.Rewind(cp)
	assert.Equal(t, syntax.NewRange(0, 1), s.CurrentRange())
	assert.Empty(t, s.Trivia())
	assert.Equal(t, syntax.TokenIdent, s.Nth(1))
}

func TestTokenSourceJsxContext(t *testing.T) {
	s := newTestSource(t, "> hello {x}")
	assert.Equal(t, syntax.TokenRAngle, s.Current())
	assert.Equal(t, syntax.TokenIdent, s.Nth(1))

	s.Bump(lexer.JsxChild)
	assert.Equal(t, syntax.TokenJsxText, s.Current())
	assert.Equal(t, syntax.NewRange(1, 8), s.CurrentRange())
	assert.Equal(t, syntax.TokenLCurly, s.Nth(1))
}
