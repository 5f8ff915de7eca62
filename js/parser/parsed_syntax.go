package parser

import (
	"github.com/dhamidi/jsfront/js/diagnostics"
	"github.com/dhamidi/jsfront/js/syntax"
)

// ParsedSyntax is the result of a grammar rule: either a completed node or
// Absent. A rule that returns Absent has consumed no tokens, opened no nodes
// and reported nothing.
type ParsedSyntax struct {
	marker  CompletedMarker
	present bool
}

// Absent is the result of a rule that did not apply at the current token.
var Absent = ParsedSyntax{}

func Present(m CompletedMarker) ParsedSyntax {
	return ParsedSyntax{marker: m, present: true}
}

func (s ParsedSyntax) IsPresent() bool {
	return s.present
}

func (s ParsedSyntax) IsAbsent() bool {
	return !s.present
}

// Kind is the node kind, or syntax.Tombstone when absent.
func (s ParsedSyntax) Kind() syntax.Kind {
	if !s.present {
		return syntax.Tombstone
	}
	return s.marker.kind
}

func (s ParsedSyntax) Marker() (CompletedMarker, bool) {
	return s.marker, s.present
}

// Range is the node's range; absent results have an empty range at 0.
func (s ParsedSyntax) Range() syntax.TextRange {
	return s.marker.rng
}

// Or returns s when present and otherwise the result of alt.
func (s ParsedSyntax) Or(alt func() ParsedSyntax) ParsedSyntax {
	if s.present {
		return s
	}
	return alt()
}

// PrecedeOrStart wraps the node when present and otherwise opens an empty
// node at the current token.
func (s ParsedSyntax) PrecedeOrStart(p *Parser) Marker {
	if s.present {
		return s.marker.Precede(p)
	}
	return p.start()
}

// diagnosticBuilder produces the diagnostic reported for a missing node at r.
type diagnosticBuilder func(p *Parser, r syntax.TextRange) diagnostics.Diagnostic

// OrAddDiagnostic reports the diagnostic built by build at the current token
// when s is absent.
func (s ParsedSyntax) OrAddDiagnostic(p *Parser, build diagnosticBuilder) (CompletedMarker, bool) {
	if s.present {
		return s.marker, true
	}
	p.error(build(p, p.curRange()))
	return CompletedMarker{}, false
}

// OrRecover reports a missing node and skips tokens into a bogus node using
// r. The error is ErrAlreadyRecovered or ErrRecoveryAtEOF when there was
// nothing to skip.
func (s ParsedSyntax) OrRecover(p *Parser, r ParseRecovery, build diagnosticBuilder) (CompletedMarker, error) {
	if s.present {
		return s.marker, nil
	}
	p.error(build(p, p.curRange()))
	return r.Recover(p)
}

// expected builds the standard "expected X but instead found Y" diagnostic.
func expected(what string) diagnosticBuilder {
	return func(p *Parser, r syntax.TextRange) diagnostics.Diagnostic {
		return p.expectedDiagnostic(what, r)
	}
}
