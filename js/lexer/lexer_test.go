package lexer

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/jsfront/js/diagnostics"
	"github.com/dhamidi/jsfront/js/syntax"
)

type lexed struct {
	kind syntax.Kind
	text string
}

func lexAll(t *testing.T, src string) ([]lexed, []diagnostics.Diagnostic) {
	t.Helper()
	l, err := New(src, 0)
	require.NoError(t, err)
	var tokens []lexed
	for {
		kind := l.NextToken(Regular)
		if kind == syntax.EOF {
			break
		}
		r := l.CurrentRange()
		tokens = append(tokens, lexed{kind, src[r.Start:r.End]})
	}
	return tokens, l.Diagnostics()
}

func significant(tokens []lexed) []lexed {
	var out []lexed
	for _, tok := range tokens {
		if !tok.kind.IsTrivia() {
			out = append(out, tok)
		}
	}
	return out
}

func messages(diags []diagnostics.Diagnostic) []string {
	var out []string
	for _, d := range diags {
		out = append(out, d.Message)
	}
	return out
}

func TestDispatchTable(t *testing.T) {
	tests := []struct {
		b    byte
		want dispatch
	}{
		{'a', dispIdent},
		{'Z', dispIdent},
		{'$', dispIdent},
		{'_', dispIdent},
		{'0', dispZero},
		{'7', dispDigit},
		{' ', dispWhitespace},
		{'\t', dispWhitespace},
		{'\n', dispNewline},
		{'\r', dispNewline},
		{'"', dispQuote},
		{'\'', dispQuote},
		{'`', dispBacktick},
		{'\\', dispBackslash},
		{0x00, dispError},
		{0x7f, dispError},
		{0xc3, dispUnicode},
		{0xff, dispUnicode},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dispatchTable[tt.b], "byte %#x", tt.b)
	}
}

func TestPunctuation(t *testing.T) {
	tests := []struct {
		src  string
		want []syntax.Kind
	}{
		{"a?.b", []syntax.Kind{syntax.TokenIdent, syntax.TokenQuestionDot, syntax.TokenIdent}},
		{"a?.5:1", []syntax.Kind{syntax.TokenIdent, syntax.TokenQuestion, syntax.TokenNumber, syntax.TokenColon, syntax.TokenNumber}},
		{"a ??= b", []syntax.Kind{syntax.TokenIdent, syntax.TokenQuestion2Eq, syntax.TokenIdent}},
		{"x **= 2", []syntax.Kind{syntax.TokenIdent, syntax.TokenStar2Eq, syntax.TokenNumber}},
		{"...a", []syntax.Kind{syntax.TokenDot3, syntax.TokenIdent}},
		{"a !== b", []syntax.Kind{syntax.TokenIdent, syntax.TokenNeq2, syntax.TokenIdent}},
		{"() => {}", []syntax.Kind{syntax.TokenLParen, syntax.TokenRParen, syntax.TokenFatArrow, syntax.TokenLCurly, syntax.TokenRCurly}},
		{"a <<= 1", []syntax.Kind{syntax.TokenIdent, syntax.TokenShlEq, syntax.TokenNumber}},
		{"a >> 1", []syntax.Kind{syntax.TokenIdent, syntax.TokenRAngle, syntax.TokenRAngle, syntax.TokenNumber}},
		{"#x in y", []syntax.Kind{syntax.TokenHash, syntax.TokenIdent, syntax.KwIn, syntax.TokenIdent}},
		{"@dec", []syntax.Kind{syntax.TokenAt, syntax.TokenIdent}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tokens, diags := lexAll(t, tt.src)
			assert.Empty(t, diags)
			var kinds []syntax.Kind
			for _, tok := range significant(tokens) {
				kinds = append(kinds, tok.kind)
			}
			assert.Equal(t, tt.want, kinds)
		})
	}
}

func TestTrivia(t *testing.T) {
	src := "#!/usr/bin/env node\n// line\nlet\u00a0x /* block */ = 1\r\n\u2028y"
	tokens, diags := lexAll(t, src)
	require.Empty(t, diags)

	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.text)
	}
	assert.Equal(t, src, b.String())

	assert.Equal(t, lexed{syntax.TokenHashbang, "#!/usr/bin/env node"}, tokens[0])
	assert.Equal(t, lexed{syntax.TokenNewline, "\n"}, tokens[1])
	assert.Equal(t, lexed{syntax.TokenComment, "// line"}, tokens[2])
	assert.Equal(t, lexed{syntax.TokenWhitespace, "\u00a0"}, tokens[5])
	assert.Equal(t, lexed{syntax.TokenNewline, "\r\n\u2028"}, tokens[len(tokens)-2])
}

func TestHashbangOnlyAtStart(t *testing.T) {
	tokens, _ := lexAll(t, " #!x")
	assert.Equal(t, syntax.TokenHash, tokens[1].kind)
}

func TestPrecedingLineBreak(t *testing.T) {
	tests := []struct {
		src   string
		token string
		want  bool
	}{
		{"a\n++b", "++", true},
		{"a ++b", "++", false},
		{"a /*\n*/ b", "b", true},
		{"a /* */ b", "b", false},
		{"a // c\nb", "b", true},
		{"a\u2029b", "b", true},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			l, err := New(tt.src, 0)
			require.NoError(t, err)
			for l.NextToken(Regular) != syntax.EOF {
				r := l.CurrentRange()
				if tt.src[r.Start:r.End] == tt.token {
					assert.Equal(t, tt.want, l.HasPrecedingLineBreak())
					return
				}
			}
			t.Fatalf("token %q not found", tt.token)
		})
	}
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		src     string
		kind    syntax.Kind
		escaped bool
	}{
		{"foo", syntax.TokenIdent, false},
		{"$_a1", syntax.TokenIdent, false},
		{"\u00e9t\u00e9", syntax.TokenIdent, false},
		{"if", syntax.KwIf, false},
		{"\\u0069f", syntax.KwIf, true},
		{"\\u{69}f", syntax.KwIf, true},
		{"a\\u0062", syntax.TokenIdent, true},
		{"async", syntax.KwAsync, false},
		{"satisfies", syntax.KwSatisfies, false},
		{"_1000", syntax.TokenIdent, false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			l, err := New(tt.src, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, l.NextToken(Regular))
			assert.Equal(t, len(tt.src), l.CurrentRange().End)
			assert.Equal(t, tt.escaped, l.HasUnicodeEscape())
			assert.Empty(t, l.Diagnostics())
		})
	}
}

func TestIdentifierEscapeErrors(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"\\x41", "unexpected escape sequence in identifier"},
		{"\\u004", "invalid unicode escape sequence"},
		{"\\u{110000}", "out of bounds code point in unicode escape"},
		{"\\u0031a", "escaped character is not valid in an identifier"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, diags := lexAll(t, tt.src)
			require.NotEmpty(t, diags)
			assert.Equal(t, tt.want, diags[0].Message)
		})
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		src   string
		kind  syntax.Kind
		diags []string
	}{
		{"0x1F", syntax.TokenNumber, nil},
		{"0b1010", syntax.TokenNumber, nil},
		{"0O17", syntax.TokenNumber, nil},
		{"1_000", syntax.TokenNumber, nil},
		{"1.5e-3", syntax.TokenNumber, nil},
		{".5", syntax.TokenNumber, nil},
		{"5.", syntax.TokenNumber, nil},
		{"10n", syntax.TokenBigInt, nil},
		{"0xFFn", syntax.TokenBigInt, nil},
		{"017", syntax.TokenNumber, nil},
		{"089.5", syntax.TokenNumber, nil},
		{"1__000", syntax.TokenNumber, []string{"only one underscore is allowed as numeric separator"}},
		{"1000_", syntax.TokenNumber, []string{"numeric separators are not allowed at the end of numeric literals"}},
		{"0x_1", syntax.TokenNumber, []string{"numeric separators are not allowed here"}},
		{"1._5", syntax.TokenNumber, []string{"numeric separators are not allowed here"}},
		{"1e_5", syntax.TokenNumber, []string{"numeric separators are not allowed here"}},
		{"0_1", syntax.TokenNumber, []string{"numeric separators are not allowed after a leading 0"}},
		{"1e", syntax.TokenNumber, []string{"missing exponent digits"}},
		{"0x", syntax.TokenNumber, []string{"expected a hexadecimal digit after the radix prefix"}},
		{"1.5n", syntax.TokenBigInt, []string{"a BigInt literal must be an integer"}},
		{"01n", syntax.TokenBigInt, []string{"BigInt literals cannot have a leading zero"}},
		{"3in", syntax.TokenNumber, []string{"numbers cannot be followed by identifiers directly after"}},
		{"0b12", syntax.TokenNumber, []string{"numbers cannot be followed by identifiers directly after"}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tokens, diags := lexAll(t, tt.src)
			require.Len(t, tokens, 1)
			assert.Equal(t, tt.kind, tokens[0].kind)
			assert.Equal(t, tt.diags, messages(diags))
		})
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		src   string
		octal bool
		diags []string
	}{
		{`"abc"`, false, nil},
		{`'it\'s'`, false, nil},
		{`"\x41A\u{1F600}\n"`, false, nil},
		{"\"a\\\nb\"", false, nil},
		{`"\0"`, false, nil},
		{`"\012"`, true, nil},
		{`"\8"`, true, nil},
		{`"\xZZ"`, false, []string{"invalid hexadecimal escape sequence"}},
		{`"\u12\u{}"`, false, []string{"invalid unicode escape sequence", "invalid unicode escape sequence"}},
		{`"\u{110000}"`, false, []string{"out of bounds code point in unicode escape"}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			l, err := New(tt.src, 0)
			require.NoError(t, err)
			assert.Equal(t, syntax.TokenString, l.NextToken(Regular))
			assert.Equal(t, len(tt.src), l.Position())
			assert.Equal(t, tt.octal, l.CurrentFlags().Has(FlagOctalEscape))
			assert.Equal(t, tt.diags, messages(l.Diagnostics()))
		})
	}
}

func TestUnterminatedString(t *testing.T) {
	tokens, diags := lexAll(t, "x = 'abc\ny")
	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, "unterminated string literal", d.Message)
	assert.Equal(t, syntax.EmptyRange(8), d.Primary.Range)
	require.Len(t, d.Secondary, 1)
	assert.Equal(t, syntax.NewRange(4, 5), d.Secondary[0].Range)
	assert.Equal(t, lexed{syntax.TokenIdent, "y"}, tokens[len(tokens)-1])
}

func TestUnterminatedComment(t *testing.T) {
	tokens, diags := lexAll(t, "a /* never")
	require.Len(t, diags, 1)
	assert.Equal(t, "unterminated block comment", diags[0].Message)
	assert.Equal(t, syntax.TokenMultilineComment, tokens[len(tokens)-1].kind)
}

func TestTemplateElements(t *testing.T) {
	src := "`a${b}c\\n`"
	l, err := New(src, 0)
	require.NoError(t, err)

	steps := []struct {
		ctx  Context
		kind syntax.Kind
		text string
	}{
		{Regular, syntax.TokenBacktick, "`"},
		{TemplateElement, syntax.TokenTemplateChunk, "a"},
		{TemplateElement, syntax.TokenDollarCurly, "${"},
		{Regular, syntax.TokenIdent, "b"},
		{Regular, syntax.TokenRCurly, "}"},
		{TemplateElement, syntax.TokenTemplateChunk, "c\\n"},
		{TemplateElement, syntax.TokenBacktick, "`"},
		{TemplateElement, syntax.EOF, ""},
	}
	for _, step := range steps {
		kind := l.NextToken(step.ctx)
		r := l.CurrentRange()
		assert.Equal(t, step.kind, kind)
		assert.Equal(t, step.text, src[r.Start:r.End])
	}
	assert.Empty(t, l.Diagnostics())
}

func TestTemplateEscapes(t *testing.T) {
	tests := []struct {
		ctx   Context
		src   string
		diags []string
	}{
		{TemplateElement, `\01`, []string{"octal escape sequences are not allowed in template literals"}},
		{TaggedTemplateElement, `\01`, nil},
		{TemplateElement, `\xg`, []string{"invalid hexadecimal escape sequence"}},
		{TaggedTemplateElement, `\u{zz}`, nil},
		{TemplateElement, `$a \${b}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			l, err := New(tt.src, 0)
			require.NoError(t, err)
			assert.Equal(t, syntax.TokenTemplateChunk, l.NextToken(tt.ctx))
			assert.Equal(t, len(tt.src), l.Position())
			assert.Equal(t, tt.diags, messages(l.Diagnostics()))
		})
	}
}

func TestReLexRegex(t *testing.T) {
	tests := []struct {
		src   string
		end   int
		diags []string
	}{
		{"/ab+c/gi;", 8, nil},
		{"/[/]/", 5, nil},
		{"/a\\/b/", 6, nil},
		{"/=a/", 4, nil},
		{"/a/v", 4, nil},
		{"/a/gg", 5, []string{`duplicate flag 'g' in regex literal`}},
		{"/a/x", 4, []string{`invalid regex flag 'x'`}},
		{"/a/uv", 5, []string{"the u and v regex flags cannot be combined"}},
		{"/abc\nd", 4, []string{"unterminated regex literal"}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			l, err := New(tt.src, 0)
			require.NoError(t, err)
			l.NextToken(Regular)
			assert.Equal(t, syntax.TokenRegex, l.ReLex(ReLexRegex))
			assert.Equal(t, syntax.NewRange(0, tt.end), l.CurrentRange())
			assert.Equal(t, tt.diags, messages(l.Diagnostics()))
		})
	}
}

func TestReLexBinaryOperator(t *testing.T) {
	tests := []struct {
		src  string
		kind syntax.Kind
		end  int
	}{
		{"> b", syntax.TokenRAngle, 1},
		{">= b", syntax.TokenGtEq, 2},
		{">> b", syntax.TokenShr, 2},
		{">>= b", syntax.TokenShrEq, 3},
		{">>> b", syntax.TokenUShr, 3},
		{">>>= b", syntax.TokenUShrEq, 4},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			l, err := New(tt.src, 0)
			require.NoError(t, err)
			require.Equal(t, syntax.TokenRAngle, l.NextToken(Regular))
			assert.Equal(t, tt.kind, l.ReLex(ReLexBinaryOperator))
			assert.Equal(t, tt.end, l.Position())
			assert.Equal(t, syntax.TokenWhitespace, l.NextToken(Regular))
		})
	}
}

func TestReLexNoChangeKeepsPosition(t *testing.T) {
	l, err := New("a\n/ b", 0)
	require.NoError(t, err)
	l.NextToken(Regular)
	l.NextToken(Regular)
	require.Equal(t, syntax.TokenSlash, l.NextToken(Regular))
	before := l.Checkpoint()

	for _, ctx := range []ReLexContext{ReLexBinaryOperator, ReLexTypeArgumentLessThan, ReLexJsxIdentifier} {
		assert.Equal(t, syntax.TokenSlash, l.ReLex(ctx))
		assert.Equal(t, before, l.Checkpoint())
	}

	assert.Equal(t, syntax.TokenRegex, l.ReLex(ReLexRegex))
	assert.True(t, l.HasPrecedingLineBreak())
	assert.Len(t, l.Diagnostics(), 1)
}

func TestReLexTypeArgumentLessThan(t *testing.T) {
	l, err := New("<<T>", 0)
	require.NoError(t, err)
	require.Equal(t, syntax.TokenShl, l.NextToken(Regular))
	assert.Equal(t, syntax.TokenLAngle, l.ReLex(ReLexTypeArgumentLessThan))
	assert.Equal(t, syntax.NewRange(0, 1), l.CurrentRange())
	assert.Equal(t, syntax.TokenLAngle, l.NextToken(Regular))
	assert.Equal(t, syntax.NewRange(1, 2), l.CurrentRange())
}

func TestReLexJsxIdentifier(t *testing.T) {
	l, err := New("data-x:y", 0)
	require.NoError(t, err)
	require.Equal(t, syntax.TokenIdent, l.NextToken(Regular))
	assert.Equal(t, syntax.TokenJsxIdent, l.ReLex(ReLexJsxIdentifier))
	assert.Equal(t, syntax.NewRange(0, 6), l.CurrentRange())
	assert.Equal(t, syntax.TokenColon, l.NextToken(Regular))
}

func TestJsxChild(t *testing.T) {
	src := "hi there{x}</a>"
	l, err := New(src, 0)
	require.NoError(t, err)
	assert.Equal(t, syntax.TokenJsxText, l.NextToken(JsxChild))
	assert.Equal(t, syntax.NewRange(0, 8), l.CurrentRange())
	assert.Equal(t, syntax.TokenLCurly, l.NextToken(JsxChild))
	assert.Empty(t, l.Diagnostics())

	l, err = New("a > b}<", 0)
	require.NoError(t, err)
	assert.Equal(t, syntax.TokenJsxText, l.NextToken(JsxChild))
	assert.Equal(t, 6, l.Position())
	assert.Len(t, l.Diagnostics(), 2)
}

func TestReLexJsxChild(t *testing.T) {
	l, err := New("if (x) <", 0)
	require.NoError(t, err)
	require.Equal(t, syntax.KwIf, l.NextToken(Regular))
	assert.Equal(t, syntax.TokenJsxText, l.ReLex(ReLexJsxChild))
	assert.Equal(t, syntax.NewRange(0, 7), l.CurrentRange())
}

func TestJsxAttributeValue(t *testing.T) {
	l, err := New("\"a\\\"", 0)
	require.NoError(t, err)
	assert.Equal(t, syntax.TokenJsxString, l.NextToken(JsxAttributeValue))
	assert.Equal(t, 4, l.Position())
	assert.Empty(t, l.Diagnostics())

	l, err = New("{x}", 0)
	require.NoError(t, err)
	assert.Equal(t, syntax.TokenLCurly, l.NextToken(JsxAttributeValue))
}

func TestCheckpointRoundTrip(t *testing.T) {
	l, err := New("a\n'b c = 0_1", 0)
	require.NoError(t, err)
	l.NextToken(Regular)
	l.NextToken(Regular)
	cp := l.Checkpoint()

	var first []syntax.TextRange
	for l.NextToken(Regular) != syntax.EOF {
		first = append(first, l.CurrentRange())
	}
	require.Len(t, l.Diagnostics(), 2)

	l.Rewind(cp)
	assert.Equal(t, cp, l.Checkpoint())
	assert.Equal(t, syntax.TokenNewline, l.Current())
	assert.Empty(t, l.Diagnostics())

	var second []syntax.TextRange
	for l.NextToken(Regular) != syntax.EOF {
		second = append(second, l.CurrentRange())
	}
	assert.Equal(t, first, second)
	assert.Len(t, l.Diagnostics(), 2)
}

func TestInvalidUTF8(t *testing.T) {
	_, err := New("ab\xffc", 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidUTF8))
	assert.Contains(t, err.Error(), "offset 2")
}

func TestUnexpectedCharacters(t *testing.T) {
	tokens, diags := lexAll(t, "a\x01\u00b6")
	require.Len(t, tokens, 3)
	assert.Equal(t, syntax.TokenError, tokens[1].kind)
	assert.Equal(t, syntax.TokenError, tokens[2].kind)
	assert.Len(t, diags, 2)
}

// TestTotality drives the lexer over random input in random contexts and
// checks that every call advances and that token texts reassemble the input.
func TestTotality(t *testing.T) {
	pieces := []string{
		"a", "n", "e", "u", "1", "0", "0x", "_", ".", "/", "*", "\\", "{", "}",
		"`", "$", "${", "'", "\"", "\n", "\r", " ", "<", ">", "=", "-", "[", "]",
		"#", "!", "@", "\u00e9", "\u2028", "\u00a0", "\U0001F600", "\x01",
	}
	contexts := []Context{Regular, Regular, TemplateElement, TaggedTemplateElement, JsxChild, JsxAttributeValue}
	relexes := []ReLexContext{ReLexRegex, ReLexBinaryOperator, ReLexTypeArgumentLessThan, ReLexJsxIdentifier, ReLexJsxChild}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 2000; i++ {
		var b strings.Builder
		for n := rng.Intn(30); n > 0; n-- {
			b.WriteString(pieces[rng.Intn(len(pieces))])
		}
		src := b.String()
		l, err := New(src, 0)
		require.NoError(t, err)

		var ranges []syntax.TextRange
		for steps := 0; ; steps++ {
			require.Less(t, steps, len(src)+1, "no progress on %q", src)
			if l.NextToken(contexts[rng.Intn(len(contexts))]) == syntax.EOF {
				break
			}
			if rng.Intn(4) == 0 {
				l.ReLex(relexes[rng.Intn(len(relexes))])
			}
			r := l.CurrentRange()
			require.Greater(t, r.End, r.Start, "empty token in %q", src)
			ranges = append(ranges, r)
		}

		var text strings.Builder
		for _, r := range ranges {
			text.WriteString(src[r.Start:r.End])
		}
		require.Equal(t, src, text.String())
	}
}
