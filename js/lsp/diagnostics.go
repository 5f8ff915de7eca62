package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/jsfront/js/diagnostics"
	"github.com/dhamidi/jsfront/js/syntax"
	"github.com/dhamidi/jsfront/js/workspace"
)

// PublishParams converts the diagnostics of f into a publish notification.
// Positions are counted in UTF-16 code units.
func PublishParams(f *workspace.File) protocol.PublishDiagnosticsParams {
	version := protocol.UInteger(f.Version)
	return protocol.PublishDiagnosticsParams{
		URI:         f.Path,
		Version:     &version,
		Diagnostics: Convert(f.Path, f.Content, f.Diagnostics()),
	}
}

// Convert maps parser diagnostics to protocol diagnostics for the document
// uri with the given text. Hints and the footer are appended to the message.
func Convert(uri protocol.DocumentUri, text string, diags []diagnostics.Diagnostic) []protocol.Diagnostic {
	index := diagnostics.NewLineIndex(text)
	source := lsName
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		severity := toSeverity(d.Severity)
		pd := protocol.Diagnostic{
			Range:    toRange(index, d.Primary.Range),
			Severity: &severity,
			Source:   &source,
			Message:  message(d),
		}
		for _, l := range d.Secondary {
			pd.RelatedInformation = append(pd.RelatedInformation, protocol.DiagnosticRelatedInformation{
				Location: protocol.Location{URI: uri, Range: toRange(index, l.Range)},
				Message:  l.Message,
			})
		}
		out = append(out, pd)
	}
	return out
}

func message(d diagnostics.Diagnostic) string {
	var b strings.Builder
	b.WriteString(d.Message)
	if d.Primary.Message != "" {
		b.WriteString(": ")
		b.WriteString(d.Primary.Message)
	}
	for _, hint := range d.Hints {
		b.WriteString("\nhint: ")
		b.WriteString(hint)
	}
	if d.Footer != "" {
		b.WriteString("\n")
		b.WriteString(d.Footer)
	}
	return b.String()
}

func toRange(index *diagnostics.LineIndex, r syntax.TextRange) protocol.Range {
	return protocol.Range{
		Start: toPosition(index.UTF16Position(r.Start)),
		End:   toPosition(index.UTF16Position(r.End)),
	}
}

func toPosition(p diagnostics.Position) protocol.Position {
	return protocol.Position{
		Line:      protocol.UInteger(p.Line),
		Character: protocol.UInteger(p.Column),
	}
}

func toSeverity(s diagnostics.Severity) protocol.DiagnosticSeverity {
	switch s {
	case diagnostics.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case diagnostics.SeverityHint:
		return protocol.DiagnosticSeverityHint
	}
	return protocol.DiagnosticSeverityError
}
