package tree

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/jsfront/js/parser"
	"github.com/dhamidi/jsfront/js/syntax"
)

func parseModule(t *testing.T, src string, st parser.SourceType) *Tree {
	t.Helper()
	tr, err := Parse(src, parser.WithSourceType(st))
	require.NoError(t, err)
	return tr
}

func TestTextIsLossless(t *testing.T) {
	tests := []struct {
		name string
		src  string
		st   parser.SourceType
	}{
		{"empty", "", parser.JavaScriptModule()},
		{"only trivia", "  // nothing\n/* here */\n", parser.JavaScriptModule()},
		{"hashbang", "#!/usr/bin/env node\nconsole.log(1)\n", parser.JavaScriptScript()},
		{"statements", "let a = 1;\nif (a) { a++ } else b()\n", parser.JavaScriptModule()},
		{"asi", "a\n++b\nreturn\n", parser.JavaScriptScript()},
		{"template", "tag`a${b}c${`d${e}`}`", parser.JavaScriptModule()},
		{"regex", "x = /[/]+/g.test(y) / 2", parser.JavaScriptModule()},
		{"class", "class A extends B { static #x = 1; get y() { return this.#x } }", parser.JavaScriptModule()},
		{"typescript", "type T<A> = A extends string ? { [K in keyof A]?: A[K] } : never;\nlet x = <T>y as unknown satisfies U;", parser.TypeScriptModule()},
		{"jsx", "const el = <div className=\"a\" {...rest}>hi {name} <b/></div>;", parser.JsxModule()},
		{"broken", "function (\n  let = ;; } ) {", parser.JavaScriptModule()},
		{"unterminated string", "let s = 'abc\nfoo()", parser.JavaScriptModule()},
		{"crlf", "a;\r\nb;\r\n", parser.JavaScriptModule()},
		{"unicode", "let \u00e9t\u00e9 = '\u2003'; // \u00fc\u2028x", parser.JavaScriptModule()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := parseModule(t, tt.src, tt.st)
			assert.Equal(t, tt.src, tr.Root.Text())
			assert.Equal(t, syntax.NewRange(0, len(tt.src)), tr.Root.Range)
		})
	}
}

func TestRootKind(t *testing.T) {
	assert.Equal(t, syntax.KindModule, parseModule(t, "a", parser.JavaScriptModule()).Root.Kind)
	assert.Equal(t, syntax.KindScript, parseModule(t, "a", parser.JavaScriptScript()).Root.Kind)

	res, err := parser.ParseExpression("a + b")
	require.NoError(t, err)
	assert.Equal(t, syntax.KindExpressionSnippet, Build(res).Root.Kind)
}

func TestTriviaPrecedesNodes(t *testing.T) {
	src := "  // leading\nfoo;\n"
	tr := parseModule(t, src, parser.JavaScriptModule())

	stmt := tr.Root.Find(syntax.KindExpressionStatement)
	require.NotNil(t, stmt)
	assert.Equal(t, "foo;", stmt.Text())
	assert.Equal(t, strings.Index(src, "foo"), stmt.Range.Start)

	eof := tr.Root.Children[len(tr.Root.Children)-1]
	assert.Equal(t, syntax.EOF, eof.Kind)
}

func TestTrimmedText(t *testing.T) {
	tr := parseModule(t, "if (a) {\n  // c\n  b() /* d */\n}", parser.JavaScriptModule())
	block := tr.Root.Find(syntax.KindBlockStatement)
	require.NotNil(t, block)
	assert.Equal(t, block.Text(), block.TrimmedText())

	list := block.FirstChildOfKind(syntax.KindStatementList)
	require.NotNil(t, list)
	assert.Equal(t, "b()", list.Text())
	assert.NotNil(t, block.FirstChildOfKind(syntax.TokenComment))
	assert.NotNil(t, block.FirstChildOfKind(syntax.TokenMultilineComment))
}

func TestNodeQueries(t *testing.T) {
	tr := parseModule(t, "let a = 1, b = 2;", parser.JavaScriptModule())
	list := tr.Root.Find(syntax.KindVariableDeclaratorList)
	require.NotNil(t, list)

	declarators := list.ChildrenOfKind(syntax.KindVariableDeclarator)
	require.Len(t, declarators, 2)
	assert.Equal(t, "a = 1", declarators[0].TrimmedText())
	assert.Equal(t, "b = 2", declarators[1].TrimmedText())
	assert.Len(t, list.Nodes(), 2)
	assert.Nil(t, list.FirstChildOfKind(syntax.KindIfStatement))

	var count int
	tr.Root.Walk(func(n *Node) bool {
		if n.Kind == syntax.KindVariableDeclarator {
			count++
			return false
		}
		return true
	})
	assert.Equal(t, 2, count)
}

func TestBogusNodes(t *testing.T) {
	tr := parseModule(t, "let = ;", parser.JavaScriptModule())
	assert.True(t, tr.HasErrors())

	var bogus []*Node
	tr.Root.Walk(func(n *Node) bool {
		if n.IsBogus() {
			bogus = append(bogus, n)
		}
		return true
	})
	assert.Equal(t, "let = ;", tr.Root.Text())
	for _, n := range bogus {
		assert.True(t, n.Kind.IsNode())
	}
}

func TestBuilderEmptyNodes(t *testing.T) {
	src := " a"
	b := NewBuilder(src, []parser.Trivia{{Kind: syntax.TokenWhitespace, Range: syntax.NewRange(0, 1)}})
	b.StartNode(syntax.KindScript)
	b.StartNode(syntax.KindDirectiveList)
	b.FinishNode()
	b.StartNode(syntax.KindIdentifierExpression)
	b.Token(syntax.TokenIdent, syntax.NewRange(1, 2))
	b.FinishNode()
	b.Token(syntax.EOF, syntax.EmptyRange(2))
	b.FinishNode()
	root := b.Finish()

	require.Len(t, root.Children, 4)
	assert.Equal(t, syntax.KindDirectiveList, root.Children[0].Kind)
	assert.Equal(t, syntax.EmptyRange(0), root.Children[0].Range)
	assert.Equal(t, syntax.TokenWhitespace, root.Children[1].Kind)
	assert.Equal(t, syntax.KindIdentifierExpression, root.Children[2].Kind)
	assert.Equal(t, syntax.NewRange(1, 2), root.Children[2].Range)
	assert.Equal(t, src, root.Text())
}

func TestBuilderPanicsWithoutRoot(t *testing.T) {
	assert.Panics(t, func() { NewBuilder("", nil).Finish() })
}

func TestString(t *testing.T) {
	tr := parseModule(t, "a // c\n", parser.JavaScriptModule())
	dump := tr.Root.String()
	assert.Contains(t, dump, "IdentifierExpression\n")
	assert.Contains(t, dump, "IDENT \"a\"")
	assert.Contains(t, dump, "\"// c\"")

	assert.NotContains(t, tr.Root.StringWithoutTrivia(), "// c")
	assert.Contains(t, tr.Root.StringWithPositions(), "Module@0..7")
}

func TestMarshalJSON(t *testing.T) {
	tr := parseModule(t, "let x = ;", parser.JavaScriptModule())
	data, err := json.Marshal(tr)
	require.NoError(t, err)

	var decoded struct {
		SourceType string `json:"sourceType"`
		Root       struct {
			Kind     string            `json:"kind"`
			Range    map[string]int    `json:"range"`
			Children []json.RawMessage `json:"children"`
		} `json:"root"`
		Diagnostics []struct {
			Severity string `json:"severity"`
			Message  string `json:"message"`
			Primary  struct {
				Start struct{ Line, Column int } `json:"start"`
			} `json:"primary"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "js", decoded.SourceType)
	assert.Equal(t, "Module", decoded.Root.Kind)
	assert.Equal(t, 9, decoded.Root.Range["end"])
	assert.NotEmpty(t, decoded.Root.Children)
	require.NotEmpty(t, decoded.Diagnostics)
	assert.Equal(t, "error", decoded.Diagnostics[0].Severity)
	assert.Equal(t, 0, decoded.Diagnostics[0].Primary.Start.Line)
	assert.Equal(t, 8, decoded.Diagnostics[0].Primary.Start.Column)
}

func TestTokenJSONKeepsEmptyText(t *testing.T) {
	tr := parseModule(t, "", parser.JavaScriptModule())
	data, err := json.Marshal(tr.Root)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"EOF","range":{"start":0,"end":0},"token":""`)
}
