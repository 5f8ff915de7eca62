package parser_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/jsfront/js/parser"
	"github.com/dhamidi/jsfront/js/syntax"
	"github.com/dhamidi/jsfront/js/tree"
)

func parse(t *testing.T, src string, st parser.SourceType) *tree.Tree {
	t.Helper()
	tr, err := tree.Parse(src, parser.WithSourceType(st))
	require.NoError(t, err)
	require.Equal(t, src, tr.Root.Text(), "tree must reproduce the input")
	return tr
}

func messages(tr *tree.Tree) []string {
	msgs := make([]string, len(tr.Diagnostics))
	for i, d := range tr.Diagnostics {
		msgs[i] = d.Message
	}
	return msgs
}

func TestValidPrograms(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		st    parser.SourceType
		kinds []syntax.Kind
	}{
		{
			name:  "variables",
			src:   "var a = 1; let b = a, c; const d = 'x';",
			st:    parser.JavaScriptModule(),
			kinds: []syntax.Kind{syntax.KindVariableStatement, syntax.KindVariableDeclarator},
		},
		{
			name:  "if else",
			src:   "if (a) b(); else { c(); }",
			st:    parser.JavaScriptModule(),
			kinds: []syntax.Kind{syntax.KindIfStatement, syntax.KindElseClause, syntax.KindBlockStatement},
		},
		{
			name:  "loops",
			src:   "for (let i = 0; i < 10; i++) {}\nfor (const k in o) {}\nfor (const v of xs) {}\nwhile (x) break;\ndo x--; while (x)",
			st:    parser.JavaScriptModule(),
			kinds: []syntax.Kind{syntax.KindForStatement, syntax.KindForInStatement, syntax.KindForOfStatement, syntax.KindWhileStatement, syntax.KindDoWhileStatement},
		},
		{
			name:  "labels",
			src:   "outer: for (;;) { inner: for (;;) { continue outer; } }",
			st:    parser.JavaScriptModule(),
			kinds: []syntax.Kind{syntax.KindLabeledStatement, syntax.KindContinueStatement},
		},
		{
			name:  "switch",
			src:   "switch (x) { case 1: a(); break; default: b(); }",
			st:    parser.JavaScriptModule(),
			kinds: []syntax.Kind{syntax.KindSwitchStatement, syntax.KindCaseClause, syntax.KindDefaultClause},
		},
		{
			name:  "try",
			src:   "try { a() } catch (e) { b(e) } finally { c() }",
			st:    parser.JavaScriptModule(),
			kinds: []syntax.Kind{syntax.KindTryStatement, syntax.KindCatchClause, syntax.KindFinallyClause},
		},
		{
			name:  "functions",
			src:   "function f(a, b = 1, ...rest) { return a + b; }\nasync function* g() { yield await 1; }",
			st:    parser.JavaScriptModule(),
			kinds: []syntax.Kind{syntax.KindFunctionDeclaration, syntax.KindRestParameter, syntax.KindYieldExpression, syntax.KindAwaitExpression},
		},
		{
			name:  "arrows",
			src:   "const f = (a, b) => a + b;\nconst g = async x => { await x; };",
			st:    parser.JavaScriptModule(),
			kinds: []syntax.Kind{syntax.KindArrowFunctionExpression},
		},
		{
			name:  "destructuring",
			src:   "const { a, b: [c, ...d], ...e } = o;\n[x, y] = [y, x];",
			st:    parser.JavaScriptModule(),
			kinds: []syntax.Kind{syntax.KindObjectBindingPattern, syntax.KindArrayBindingPattern, syntax.KindArrayAssignmentPattern},
		},
		{
			name:  "objects",
			src:   "const o = { a, b: 1, [c]: 2, d() {}, get e() { return 1 }, set e(v) {}, ...f };",
			st:    parser.JavaScriptModule(),
			kinds: []syntax.Kind{syntax.KindObjectExpression, syntax.KindShorthandPropertyObjectMember, syntax.KindGetterObjectMember, syntax.KindSetterObjectMember},
		},
		{
			name:  "classes",
			src:   "class A extends B { #x = 1; static y; constructor() { super(); } get z() { return this.#x; } static { init(); } }",
			st:    parser.JavaScriptModule(),
			kinds: []syntax.Kind{syntax.KindClassDeclaration, syntax.KindConstructorClassMember, syntax.KindPropertyClassMember, syntax.KindStaticInitializationBlock},
		},
		{
			name:  "expressions",
			src:   "a = b ? c : d ?? e;\nx = (-y) ** 2 === void 0;\nz = new Foo(1).bar?.[0]?.(2);\nq = `t${u}v`;",
			st:    parser.JavaScriptModule(),
			kinds: []syntax.Kind{syntax.KindConditionalExpression, syntax.KindLogicalExpression, syntax.KindNewExpression, syntax.KindTemplateExpression},
		},
		{
			name:  "regex after operator",
			src:   "x = a / b / c;\ny = /ab+c/gi.test(s);",
			st:    parser.JavaScriptModule(),
			kinds: []syntax.Kind{syntax.KindRegexLiteralExpression, syntax.KindBinaryExpression},
		},
		{
			name:  "modules",
			src:   "import a, { b as c, d } from \"m\";\nimport * as ns from 'n';\nexport { a, c as e };\nexport default function () {}\nexport * from 'o';",
			st:    parser.JavaScriptModule(),
			kinds: []syntax.Kind{syntax.KindImport, syntax.KindImportDefaultClause, syntax.KindImportNamespaceClause, syntax.KindExportNamedClause, syntax.KindExportDefaultDeclaration, syntax.KindExportFromClause},
		},
		{
			name:  "import meta and dynamic import",
			src:   "const u = import.meta.url;\nconst m = await import('./m.js');",
			st:    parser.JavaScriptModule(),
			kinds: []syntax.Kind{syntax.KindImportMetaExpression, syntax.KindImportCallExpression},
		},
		{
			name:  "sloppy script",
			src:   "var yield = 1;\nwith (o) { x }\nfunction f() { return arguments; }",
			st:    parser.JavaScriptScript(),
			kinds: []syntax.Kind{syntax.KindWithStatement},
		},
		{
			name:  "type declarations",
			src:   "type A<T> = T | null;\ninterface B extends C { x: number; y?(a: string): void; [k: string]: unknown }\nenum E { A, B = 2 }",
			st:    parser.TypeScriptModule(),
			kinds: []syntax.Kind{syntax.KindTypeAliasDeclaration, syntax.KindUnionType, syntax.KindInterfaceDeclaration, syntax.KindIndexSignatureTypeMember, syntax.KindEnumDeclaration},
		},
		{
			name:  "annotations",
			src:   "function f<T extends object>(a: T, b?: number): a is T { return true; }\nlet x: Array<string> = [];\nlet y = x as unknown as string[];",
			st:    parser.TypeScriptModule(),
			kinds: []syntax.Kind{syntax.KindTypeParameters, syntax.KindTypeAnnotation, syntax.KindTypePredicate, syntax.KindAsExpression, syntax.KindArrayType},
		},
		{
			name:  "advanced types",
			src:   "type M<T> = { readonly [K in keyof T]?: T[K] };\ntype C<T> = T extends (infer U)[] ? U : never;\ntype L = `a${string}`;\ntype Tu = [a: string, b?: number, ...rest: boolean[]];",
			st:    parser.TypeScriptModule(),
			kinds: []syntax.Kind{syntax.KindMappedType, syntax.KindConditionalType, syntax.KindInferType, syntax.KindTemplateLiteralType, syntax.KindTupleType},
		},
		{
			name:  "class modifiers",
			src:   "abstract class A<T> implements I {\n  private readonly x: number = 1;\n  protected abstract m(): void;\n  constructor(public y: string) {}\n}",
			st:    parser.TypeScriptModule(),
			kinds: []syntax.Kind{syntax.KindImplementsClause, syntax.KindModifierList, syntax.KindPropertyParameter},
		},
		{
			name:  "namespaces",
			src:   "namespace A.B { export const c = 1; }\ndeclare module \"m\" { export function f(): void; }",
			st:    parser.TypeScriptModule(),
			kinds: []syntax.Kind{syntax.KindModuleDeclaration, syntax.KindDeclareStatement, syntax.KindQualifiedName},
		},
		{
			name:  "non null and satisfies",
			src:   "const v = a!.b satisfies C;",
			st:    parser.TypeScriptModule(),
			kinds: []syntax.Kind{syntax.KindNonNullAssertionExpression, syntax.KindSatisfiesExpression},
		},
		{
			name:  "jsx",
			src:   "const el = <App.Item key=\"a\" {...props} on={() => go()}>\n  text {value}\n  <br />\n  <>frag</>\n</App.Item>;",
			st:    parser.JsxModule(),
			kinds: []syntax.Kind{syntax.KindJsxElement, syntax.KindJsxMemberName, syntax.KindJsxSpreadAttribute, syntax.KindJsxSelfClosingElement, syntax.KindJsxFragment, syntax.KindJsxText},
		},
		{
			name:  "tsx generics",
			src:   "const id = <T,>(x: T) => x;\nconst el = <div>{id(1)}</div>;",
			st:    parser.TsxModule(),
			kinds: []syntax.Kind{syntax.KindArrowFunctionExpression, syntax.KindJsxElement},
		},
		{
			name:  "declaration file",
			src:   "declare const x: number;\nexport function f(a: string): void;\nexport interface I { a: string }",
			st:    parser.TypeScriptDefinition(),
			kinds: []syntax.Kind{syntax.KindInterfaceDeclaration},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := parse(t, tt.src, tt.st)
			assert.Empty(t, messages(tr))
			for _, kind := range tt.kinds {
				assert.NotNil(t, tr.Root.Find(kind), "expected a %s node", kind)
			}
		})
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		st   parser.SourceType
		want string
	}{
		{"return outside function", "return 1;", parser.JavaScriptModule(), "illegal return statement outside of a function"},
		{"two constructors", "class A { constructor() {} constructor() {} }", parser.JavaScriptModule(), "classes may only have one constructor"},
		{"try without handler", "try {} x()", parser.JavaScriptModule(), "a `try` statement must have a `catch` or `finally` clause"},
		{"jsx in plain js", "const a = <div />;", parser.JavaScriptModule(), "JSX syntax is not enabled for this file"},
		{"types in js", "let a: number = 1;", parser.JavaScriptModule(), "are a TypeScript only feature"},
		{"interface in js", "interface A {}", parser.JavaScriptModule(), "are a TypeScript only feature"},
		{"duplicate label", "a: a: x;", parser.JavaScriptModule(), "duplicate statement label `a`"},
		{"undefined label", "for (;;) { break b; }", parser.JavaScriptModule(), "use of undefined label `b`"},
		{"two defaults", "switch (x) { default: a(); default: b(); }", parser.JavaScriptModule(), "multiple `default` clauses"},
		{"break outside loop", "break;", parser.JavaScriptModule(), "a `break` statement can only be used"},
		{"with in module", "with (o) {}", parser.JavaScriptModule(), "`with` statements are not allowed in strict mode"},
		{"import in script", "import a from 'a';", parser.JavaScriptScript(), "outside of a module"},
		{"missing initializer", "const a;", parser.JavaScriptModule(), "missing initializer in a declaration"},
		{"missing semicolon", "a b", parser.JavaScriptModule(), "expected a semicolon"},
		{"unclosed call", "f(a, b", parser.JavaScriptModule(), "but instead the file ends"},
		{"mismatched jsx", "<a></b>", parser.JsxModule(), "expected corresponding JSX closing tag for 'a'"},
		{"getter parameters", "({ get a(x) {} })", parser.JavaScriptModule(), "a getter cannot have parameters"},
		{"await outside async", "function f() { await x; }", parser.JavaScriptModule(), "`await` is only allowed within async functions"},
		{"duplicate binding", "let [a, a] = b;", parser.JavaScriptModule(), "identifier `a` is bound more than once"},
		{"reserved word in strict mode", "let package = 1;", parser.JavaScriptModule(), "in strict mode"},
		{"delete identifier", "delete x;", parser.JavaScriptModule(), "the target for a delete operator cannot be a single identifier"},
		{"unterminated string", "let s = 'abc\n", parser.JavaScriptModule(), "unterminated string literal"},
		{"export import without equals", "export import a;", parser.TypeScriptModule(), "expected '=' but instead found ';'"},
		{"export import from", "export import a from 'm';", parser.TypeScriptModule(), "expected '=' but instead found 'from'"},
		{"if without body", "if (a) )", parser.JavaScriptModule(), "expected a statement but instead found ')'"},
		{"tagged template in optional chain", "a?.b`t`", parser.JavaScriptModule(), "tagged template expressions are not permitted in an optional chain"},
		{"tagged template after optional call", "a?.()`t`", parser.JavaScriptModule(), "tagged template expressions are not permitted in an optional chain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := parse(t, tt.src, tt.st)
			require.True(t, tr.HasErrors())
			msgs := messages(tr)
			found := false
			for _, m := range msgs {
				if strings.Contains(m, tt.want) {
					found = true
					break
				}
			}
			assert.True(t, found, "no diagnostic contains %q in %q", tt.want, msgs)
		})
	}
}

// collect returns the descendants of n with one of kinds in document order.
func collect(n *tree.Node, kinds ...syntax.Kind) []*tree.Node {
	var found []*tree.Node
	n.Walk(func(c *tree.Node) bool {
		for _, k := range kinds {
			if c.Kind == k {
				found = append(found, c)
			}
		}
		return true
	})
	return found
}

func kindsOf(nodes []*tree.Node) []syntax.Kind {
	kinds := make([]syntax.Kind, len(nodes))
	for i, n := range nodes {
		kinds[i] = n.Kind
	}
	return kinds
}

func TestTreeShape(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		st    parser.SourceType
		check func(t *testing.T, tr *tree.Tree)
	}{
		{
			name: "line break ends a declaration",
			src:  "let a = 1\nlet b = 2",
			st:   parser.JavaScriptModule(),
			check: func(t *testing.T, tr *tree.Tree) {
				assert.Empty(t, tr.Diagnostics)
				items := tr.Root.FirstChildOfKind(syntax.KindModuleItemList)
				require.NotNil(t, items)
				stmts := items.Nodes()
				require.Len(t, stmts, 2)
				assert.Equal(t, []syntax.Kind{syntax.KindVariableStatement, syntax.KindVariableStatement}, kindsOf(stmts))
				assert.Equal(t, "let a = 1", stmts[0].TrimmedText())
				assert.Equal(t, "let b = 2", stmts[1].TrimmedText())
			},
		},
		{
			name: "line break after return",
			src:  "function f(){return\n1}",
			st:   parser.JavaScriptModule(),
			check: func(t *testing.T, tr *tree.Tree) {
				assert.Empty(t, tr.Diagnostics)
				stmts := collect(tr.Root, syntax.KindReturnStatement, syntax.KindExpressionStatement)
				require.Len(t, stmts, 2)
				assert.Equal(t, []syntax.Kind{syntax.KindReturnStatement, syntax.KindExpressionStatement}, kindsOf(stmts))
				assert.Empty(t, stmts[0].Nodes(), "return takes no argument")
				assert.Equal(t, "return", stmts[0].TrimmedText())
				assert.Equal(t, "1", stmts[1].TrimmedText())
			},
		},
		{
			name: "line break before prefix increment",
			src:  "a++\n++b",
			st:   parser.JavaScriptModule(),
			check: func(t *testing.T, tr *tree.Tree) {
				assert.Empty(t, tr.Diagnostics)
				updates := collect(tr.Root, syntax.KindPreUpdateExpression, syntax.KindPostUpdateExpression)
				assert.Equal(t, []syntax.Kind{syntax.KindPostUpdateExpression, syntax.KindPreUpdateExpression}, kindsOf(updates))
				assert.Len(t, collect(tr.Root, syntax.KindExpressionStatement), 2)
			},
		},
		{
			name: "nested type arguments",
			src:  "let x: Map<string, Array<number>> = y",
			st:   parser.TypeScriptModule(),
			check: func(t *testing.T, tr *tree.Tree) {
				assert.Empty(t, tr.Diagnostics)
				args := collect(tr.Root, syntax.KindTypeArguments)
				require.Len(t, args, 2)
				assert.Equal(t, "<string, Array<number>>", args[0].TrimmedText())
				assert.Equal(t, "<number>", args[1].TrimmedText())
				for _, a := range args {
					last := a.Children[len(a.Children)-1]
					assert.Equal(t, syntax.TokenRAngle, last.Kind)
					assert.Equal(t, ">", last.Token)
				}
				initializer := tr.Root.Find(syntax.KindInitializerClause)
				require.NotNil(t, initializer)
				assert.Equal(t, "= y", initializer.TrimmedText())
			},
		},
		{
			name: "error inside a class field keeps later statements",
			src:  "class A { [1 + 1] = () => { let a=; }; }\nfoo()",
			st:   parser.JavaScriptModule(),
			check: func(t *testing.T, tr *tree.Tree) {
				assert.True(t, tr.HasErrors())
				items := tr.Root.FirstChildOfKind(syntax.KindModuleItemList)
				require.NotNil(t, items)
				stmts := items.Nodes()
				require.NotEmpty(t, stmts)
				last := stmts[len(stmts)-1]
				assert.Equal(t, syntax.KindExpressionStatement, last.Kind)
				assert.Equal(t, "foo()", last.TrimmedText())
				assert.NotNil(t, last.Find(syntax.KindCallExpression))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, parse(t, tt.src, tt.st))
		})
	}
}

func TestEscapedReservedWord(t *testing.T) {
	tests := []struct {
		name string
		src  string
		st   parser.SourceType
		kind syntax.Kind
	}{
		{"variable", "var \\u{69}f = 1", parser.JavaScriptScript(), syntax.KindIdentifierBinding},
		{"reference", "\\u0069n + 1", parser.JavaScriptScript(), syntax.KindReferenceIdentifier},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := parse(t, tt.src, tt.st)
			assert.Equal(t, []string{"keywords cannot contain escape sequences"}, messages(tr))
			assert.NotNil(t, tr.Root.Find(tt.kind))
		})
	}

	tr := parse(t, "var \\u{69}f = 1", parser.JavaScriptScript())
	initializer := tr.Root.Find(syntax.KindInitializerClause)
	require.NotNil(t, initializer)
	assert.Equal(t, "= 1", initializer.TrimmedText())

	// Reserved words are fine as property names, escaped or not.
	tr = parse(t, "a.\\u{69}f", parser.JavaScriptScript())
	assert.Empty(t, tr.Diagnostics)
}

func TestDiagnosticsAreSorted(t *testing.T) {
	tr := parse(t, "let = ;\nreturn;\nconst b;", parser.JavaScriptModule())
	require.NotEmpty(t, tr.Diagnostics)
	for i := 1; i < len(tr.Diagnostics); i++ {
		assert.LessOrEqual(t, tr.Diagnostics[i-1].Primary.Range.Start, tr.Diagnostics[i].Primary.Range.Start)
	}
}

func TestRecoveryKeepsLaterStatements(t *testing.T) {
	tr := parse(t, "let = ;\nfoo();\nclass { }\nbar();", parser.JavaScriptModule())
	assert.True(t, tr.HasErrors())

	var calls []string
	tr.Root.Walk(func(n *tree.Node) bool {
		if n.Kind == syntax.KindCallExpression {
			calls = append(calls, n.TrimmedText())
		}
		return true
	})
	assert.Equal(t, []string{"foo()", "bar()"}, calls)
}

func TestParseExpression(t *testing.T) {
	res, err := parser.ParseExpression("a + b * c")
	require.NoError(t, err)
	assert.False(t, res.HasErrors())

	tr := tree.Build(res)
	bin := tr.Root.Find(syntax.KindBinaryExpression)
	require.NotNil(t, bin)
	assert.Equal(t, "a + b * c", bin.TrimmedText())

	res, err = parser.ParseExpression("a b")
	require.NoError(t, err)
	assert.True(t, res.HasErrors())
}

func TestInvalidUTF8(t *testing.T) {
	_, err := parser.Parse("a = '\xff'")
	assert.Error(t, err)
}

// Every input, however broken, must parse without panicking and give back
// a tree that reproduces it.
func TestRandomInputsAreLossless(t *testing.T) {
	pieces := []string{
		"a", "b1", "if", "(", ")", "{", "}", "[", "]", "<", ">", "/", "*", "=", "=>",
		";", ",", ".", "...", "?", ":", "'s'", "\"t", "`x${", "}`", "1", "0x", "1e",
		"class", "function", "return", "let", "const", "import", "export", "type",
		"interface", "<div>", "</div>", "{x}", "//c\n", "/*", "*/", "\n", " ", "\t",
		"#p", "@d", "async", "await", "yield", "new", "as", "satisfies", "!", "\\u0061",
		"\\u{69}f", "?.", "from",
	}
	types := []parser.SourceType{
		parser.JavaScriptScript(), parser.JavaScriptModule(), parser.JsxModule(),
		parser.TypeScriptModule(), parser.TsxModule(), parser.TypeScriptDefinition(),
	}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 300; i++ {
		var b strings.Builder
		n := rng.Intn(40)
		for j := 0; j < n; j++ {
			b.WriteString(pieces[rng.Intn(len(pieces))])
		}
		src := b.String()
		st := types[rng.Intn(len(types))]
		require.NotPanics(t, func() {
			tr, err := tree.Parse(src, parser.WithSourceType(st))
			require.NoError(t, err)
			require.Equal(t, src, tr.Root.Text(), "input %q as %s", src, st)
		}, "input %q as %s", src, st)
	}
}

func TestSourceTypeFromPath(t *testing.T) {
	tests := []struct {
		path string
		want parser.SourceType
	}{
		{"a.js", parser.JavaScriptModule()},
		{"a.mjs", parser.JavaScriptModule()},
		{"a.cjs", parser.JavaScriptScript()},
		{"src/App.jsx", parser.JsxModule()},
		{"a.ts", parser.TypeScriptModule()},
		{"a.mts", parser.TypeScriptModule()},
		{"A.TSX", parser.TsxModule()},
		{"lib.d.ts", parser.TypeScriptDefinition()},
		{"lib.d.mts", parser.TypeScriptDefinition()},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := parser.SourceTypeFromPath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parser.SourceTypeFromPath("main.go")
	assert.ErrorIs(t, err, parser.ErrUnknownSourceType)
}

func TestParseSourceTypeName(t *testing.T) {
	for _, name := range []string{"js", "script", "jsx", "ts", "tsx", "d.ts"} {
		st, err := parser.ParseSourceTypeName(name)
		require.NoError(t, err, name)
		if name == "script" {
			assert.Equal(t, "js script", st.String())
			continue
		}
		assert.Equal(t, name, st.String())
	}
	_, err := parser.ParseSourceTypeName("coffee")
	assert.ErrorIs(t, err, parser.ErrUnknownSourceType)
}
