// Package diagnostics holds the structured errors produced by the lexer and
// the parser, together with helpers to locate and render them.
package diagnostics

import (
	"github.com/dhamidi/jsfront/js/syntax"
)

// FileID is an opaque identifier the caller assigns to a source file. It is
// only used to tag diagnostics.
type FileID uint32

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityHint:
		return "hint"
	}
	return "unknown"
}

// Label attaches a message to a span of the source.
type Label struct {
	Range   syntax.TextRange
	Message string
}

// Diagnostic is one lexical or syntax error.
type Diagnostic struct {
	File      FileID
	Severity  Severity
	Message   string
	Primary   Label
	Secondary []Label
	Hints     []string
	Footer    string
}

// Error creates an error diagnostic whose primary span is r.
func Error(file FileID, message string, r syntax.TextRange) Diagnostic {
	return Diagnostic{
		File:     file,
		Severity: SeverityError,
		Message:  message,
		Primary:  Label{Range: r},
	}
}

// WithPrimaryLabel sets the message shown under the primary span.
func (d Diagnostic) WithPrimaryLabel(message string) Diagnostic {
	d.Primary.Message = message
	return d
}

// WithSecondary adds a detail span.
func (d Diagnostic) WithSecondary(r syntax.TextRange, message string) Diagnostic {
	d.Secondary = append(append([]Label(nil), d.Secondary...), Label{Range: r, Message: message})
	return d
}

func (d Diagnostic) WithHint(hint string) Diagnostic {
	d.Hints = append(append([]string(nil), d.Hints...), hint)
	return d
}

func (d Diagnostic) WithFooter(footer string) Diagnostic {
	d.Footer = footer
	return d
}

func (d Diagnostic) WithSeverity(s Severity) Diagnostic {
	d.Severity = s
	return d
}

func (d Diagnostic) Range() syntax.TextRange {
	return d.Primary.Range
}

func (d Diagnostic) Error() string {
	return d.Message
}

// HasErrors reports whether any diagnostic in diags is an error.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
