package diagnostics

import (
	"strings"
	"testing"

	"github.com/dhamidi/jsfront/js/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderDoesNotAlias(t *testing.T) {
	base := Error(1, "unterminated string literal", syntax.NewRange(5, 5)).
		WithSecondary(syntax.NewRange(0, 1), "string starts here")
	a := base.WithSecondary(syntax.NewRange(2, 3), "a")
	b := base.WithSecondary(syntax.NewRange(3, 4), "b")

	require.Len(t, base.Secondary, 1)
	assert.Equal(t, "a", a.Secondary[1].Message)
	assert.Equal(t, "b", b.Secondary[1].Message)
	assert.Equal(t, FileID(1), a.File)
	assert.Equal(t, SeverityError, a.Severity)
}

func TestHasErrors(t *testing.T) {
	warn := Error(0, "w", syntax.EmptyRange(0)).WithSeverity(SeverityWarning)
	assert.False(t, HasErrors([]Diagnostic{warn}))
	assert.True(t, HasErrors([]Diagnostic{warn, Error(0, "e", syntax.EmptyRange(0))}))
}

func TestLineIndex(t *testing.T) {
	idx := NewLineIndex("ab\ncd\r\nef\rg\u2028h")
	tests := []struct {
		offset int
		want   Position
	}{
		{0, Position{0, 0}},
		{2, Position{0, 2}},
		{3, Position{1, 0}},
		{7, Position{2, 0}},
		{10, Position{3, 0}},
		{14, Position{4, 0}},
		{100, Position{4, 1}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, idx.Position(tt.offset), "offset %d", tt.offset)
	}
	assert.Equal(t, 5, idx.LineCount())
	assert.Equal(t, "cd", idx.Line(1))
	assert.Equal(t, "g", idx.Line(3))
}

func TestUTF16Position(t *testing.T) {
	idx := NewLineIndex("\u00e9\U0001f600x")
	assert.Equal(t, Position{0, 3}, idx.UTF16Position(6))
	assert.Equal(t, Position{0, 6}, idx.Position(6))
}

func TestPrinter(t *testing.T) {
	source := "let a = ;\n"
	d := Error(0, "expected an expression but instead found ';'", syntax.NewRange(8, 9)).
		WithPrimaryLabel("expected an expression here").
		WithHint("remove the '='").
		WithFooter("see the initializer grammar")

	var out strings.Builder
	require.NoError(t, NewPrinter("test.js", source).Print(&out, d))

	got := out.String()
	assert.Contains(t, got, "test.js:1:9: error: expected an expression but instead found ';'")
	assert.Contains(t, got, "    1 | let a = ;")
	assert.Contains(t, got, "      |         ^ expected an expression here")
	assert.Contains(t, got, "hint: remove the '='")
	assert.Contains(t, got, "see the initializer grammar")
}
