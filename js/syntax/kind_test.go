package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The numeric values are consumed by tree consumers; these pins fail loudly if
// a kind is inserted instead of appended.
func TestKindValuesAreStable(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{Tombstone, 0},
		{EOF, 1},
		{TokenSemicolon, 2},
		{TokenHash, 61},
		{KwBreak, 64},
		{KwWith, 99},
		{KwImplements, 100},
		{KwYield, 108},
		{KwAbstract, 109},
		{KwUsing, 145},
		{TokenNumber, 160},
		{TokenHashbang, 175},
		{KindScript, 256},
		{KindDirective, 320},
		{KindIdentifierExpression, 400},
		{KindIdentifierBinding, 480},
		{KindImport, 520},
		{KindTypeAnnotation, 560},
		{KindJsxTagExpression, 660},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, int(tt.kind))
		})
	}
}

func TestKindBlocksDoNotOverlap(t *testing.T) {
	assert.Less(t, int(lastToken), 256)
	assert.Less(t, int(TokenHash), int(KwBreak))
	assert.Less(t, int(KwUsing), int(TokenNumber))
	assert.Less(t, int(KindImportAssertionEntryList), int(KindDirective))
	assert.Less(t, int(KindLabel), int(KindIdentifierExpression))
	assert.Less(t, int(KindObjectAssignmentPatternRest), int(KindIdentifierBinding))
	assert.Less(t, int(KindIndexSignatureClassMember), int(KindImport))
	assert.Less(t, int(KindTsExternalModuleReference), int(KindTypeAnnotation))
	assert.Less(t, int(KindDefiniteVariableAnnotation), int(KindJsxTagExpression))
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		text string
		want Kind
	}{
		{"if", KwIf},
		{"yield", KwYield},
		{"satisfies", KwSatisfies},
		{"readonly", KwReadonly},
		{"iff", TokenIdent},
		{"If", TokenIdent},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupKeyword(tt.text))
		})
	}
}

func TestKeywordClasses(t *testing.T) {
	assert.True(t, KwIf.IsReservedKeyword())
	assert.False(t, KwLet.IsReservedKeyword())
	assert.True(t, KwLet.IsStrictReservedKeyword())
	assert.True(t, KwAsync.IsContextualKeyword())
	assert.False(t, TokenIdent.IsKeyword())
	for text, kind := range keywords {
		require.Equal(t, text, kind.Text())
		require.True(t, kind.IsKeyword(), text)
	}
}

func TestKindNames(t *testing.T) {
	for k := Tombstone; k <= KindJsxExpressionAttributeValue; k++ {
		_, isNode := nodeNames[k]
		_, isToken := tokenNames[k]
		if !isNode && !isToken && k.Text() == "" {
			continue
		}
		assert.NotContains(t, k.String(), "Kind(", "kind %d", k)
	}
	assert.Equal(t, "'=>'", TokenFatArrow.Describe())
	assert.Equal(t, "an identifier", TokenIdent.Describe())
	assert.Equal(t, "IfStatement", KindIfStatement.String())
}

func TestToBogus(t *testing.T) {
	assert.Equal(t, KindBogusStatement, KindIfStatement.ToBogus())
	assert.Equal(t, KindBogusExpression, KindCallExpression.ToBogus())
	assert.Equal(t, KindBogusMember, KindMethodClassMember.ToBogus())
	assert.Equal(t, KindBogusBinding, KindObjectBindingPattern.ToBogus())
	assert.Equal(t, KindBogusAssignment, KindIdentifierAssignment.ToBogus())
	assert.Equal(t, KindBogusType, KindUnionType.ToBogus())
	assert.Equal(t, KindBogusParameter, KindFormalParameter.ToBogus())
	assert.Equal(t, KindBogusExpression, KindJsxElement.ToBogus())
}

func TestTokenSet(t *testing.T) {
	s := NewTokenSet(TokenSemicolon, KwIf, TokenHashbang)
	assert.True(t, s.Contains(TokenSemicolon))
	assert.True(t, s.Contains(KwIf))
	assert.True(t, s.Contains(TokenHashbang))
	assert.False(t, s.Contains(TokenComma))
	assert.False(t, s.Contains(KindScript))

	u := s.With(TokenComma)
	assert.True(t, u.Contains(TokenComma))
	assert.False(t, s.Contains(TokenComma))
	assert.True(t, TokenSet{}.IsEmpty())
	assert.Panics(t, func() { NewTokenSet(KindScript) })
}

func TestTextRange(t *testing.T) {
	r := NewRange(2, 5)
	assert.Equal(t, 3, r.Len())
	assert.True(t, r.Contains(2))
	assert.False(t, r.Contains(5))
	assert.Equal(t, TextRange{Start: 1, End: 5}, r.Cover(NewRange(1, 3)))
	assert.True(t, EmptyRange(4).IsEmpty())
	assert.Panics(t, func() { NewRange(3, 1) })
}
