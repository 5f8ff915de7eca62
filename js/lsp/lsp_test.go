package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/jsfront/js/diagnostics"
	"github.com/dhamidi/jsfront/js/parser"
	"github.com/dhamidi/jsfront/js/syntax"
	"github.com/dhamidi/jsfront/js/workspace"
)

func TestConvertUsesUTF16Columns(t *testing.T) {
	// The emoji takes four bytes but two UTF-16 code units.
	text := "let s = '\U0001F600';\nlet = 1;"
	start := len("let s = '\U0001F600';\nlet ")
	diags := []diagnostics.Diagnostic{
		diagnostics.Error(0, "expected an identifier", syntax.NewRange(start, start+1)).
			WithPrimaryLabel("here").
			WithHint("add a name").
			WithSecondary(syntax.NewRange(8, 14), "string"),
	}

	got := Convert("file:///a.js", text, diags)
	require.Len(t, got, 1)
	d := got[0]
	assert.Equal(t, protocol.Position{Line: 1, Character: 4}, d.Range.Start)
	assert.Equal(t, protocol.Position{Line: 1, Character: 5}, d.Range.End)
	require.NotNil(t, d.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	assert.Equal(t, "expected an identifier: here\nhint: add a name", d.Message)

	require.Len(t, d.RelatedInformation, 1)
	related := d.RelatedInformation[0]
	assert.Equal(t, "file:///a.js", related.Location.URI)
	assert.Equal(t, protocol.Position{Line: 0, Character: 8}, related.Location.Range.Start)
	assert.Equal(t, protocol.Position{Line: 0, Character: 12}, related.Location.Range.End)
}

func TestToSeverity(t *testing.T) {
	tests := []struct {
		in   diagnostics.Severity
		want protocol.DiagnosticSeverity
	}{
		{diagnostics.SeverityError, protocol.DiagnosticSeverityError},
		{diagnostics.SeverityWarning, protocol.DiagnosticSeverityWarning},
		{diagnostics.SeverityHint, protocol.DiagnosticSeverityHint},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, toSeverity(tt.in))
		})
	}
}

func TestPublishParams(t *testing.T) {
	ws := workspace.New(".")
	f := ws.UpdateFile("file:///x.ts", parser.TypeScriptModule(), "let a: = 1;", 3)

	params := PublishParams(f)
	assert.Equal(t, "file:///x.ts", params.URI)
	require.NotNil(t, params.Version)
	assert.Equal(t, protocol.UInteger(3), *params.Version)
	assert.NotEmpty(t, params.Diagnostics)

	clean := ws.UpdateFile("file:///y.ts", parser.TypeScriptModule(), "let a = 1;", 1)
	assert.NotNil(t, PublishParams(clean).Diagnostics)
	assert.Empty(t, PublishParams(clean).Diagnostics)
}

func TestSourceTypeFor(t *testing.T) {
	tests := []struct {
		uri        string
		languageID string
		want       parser.SourceType
	}{
		{"file:///src/a.ts", "", parser.TypeScriptModule()},
		{"file:///src/a.tsx", "javascript", parser.TsxModule()},
		{"file:///src/lib.d.ts", "typescript", parser.TypeScriptDefinition()},
		{"untitled:Untitled-1", "typescriptreact", parser.TsxModule()},
		{"untitled:Untitled-2", "javascriptreact", parser.JsxModule()},
		{"untitled:Untitled-3", "plaintext", parser.JavaScriptModule()},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.want, SourceTypeFor(tt.uri, tt.languageID))
		})
	}
}

func TestURIToPath(t *testing.T) {
	path, err := uriToPath("file:///home/me/a%20b.js")
	require.NoError(t, err)
	assert.Equal(t, "/home/me/a b.js", path)

	path, err = uriToPath("untitled:1")
	require.NoError(t, err)
	assert.Equal(t, "untitled:1", path)
}
