package parser

import (
	"errors"
	"fmt"

	"github.com/dhamidi/jsfront/js/syntax"
)

var (
	// ErrRecoveryAtEOF means recovery could not skip anything because the
	// parser is at the end of the file.
	ErrRecoveryAtEOF = errors.New("recovery reached the end of the file")
	// ErrAlreadyRecovered means the current token is already a recovery
	// point.
	ErrAlreadyRecovered = errors.New("parser is already at a recovery point")
)

// ParseRecovery skips tokens until one in its recovery set, wrapping the
// skipped tokens in a bogus node.
type ParseRecovery struct {
	bogus     syntax.Kind
	recovery  syntax.TokenSet
	lineBreak bool
}

func NewRecovery(bogus syntax.Kind, recovery syntax.TokenSet) ParseRecovery {
	return ParseRecovery{bogus: bogus, recovery: recovery}
}

// WithLineBreak makes a token preceded by a line break a recovery point too.
func (r ParseRecovery) WithLineBreak() ParseRecovery {
	r.lineBreak = true
	return r
}

func (r ParseRecovery) atRecoveryPoint(p *Parser) bool {
	return p.atSet(r.recovery) || (r.lineBreak && p.hasPrecedingLineBreak())
}

func (r ParseRecovery) Recover(p *Parser) (CompletedMarker, error) {
	if p.at(syntax.EOF) {
		return CompletedMarker{}, ErrRecoveryAtEOF
	}
	if r.atRecoveryPoint(p) {
		return CompletedMarker{}, ErrAlreadyRecovered
	}
	m := p.start()
	for {
		p.bumpAny()
		if p.at(syntax.EOF) || r.atRecoveryPoint(p) {
			break
		}
	}
	return m.Complete(p, r.bogus), nil
}

// progress guards parsing loops: each iteration must move past at least one
// token.
type progress struct {
	pos     int
	started bool
}

func (pr *progress) assert(p *Parser) {
	pos := p.tokens.Position()
	if pr.started && pos == pr.pos && !p.at(syntax.EOF) {
		panic(fmt.Sprintf("parser: no progress at offset %d (%s)", pos, p.cur()))
	}
	pr.pos, pr.started = pos, true
}

// listRules describes a list production for parseNodeList and
// parseSeparatedList.
type listRules struct {
	kind     syntax.Kind
	atEnd    func(p *Parser) bool
	element  func(p *Parser) ParsedSyntax
	recovery ParseRecovery
	expected string
}

// recoverElement reports a missing list element and skips to the next
// recovery point. It reports whether the list loop should continue.
func (rules listRules) recoverElement(p *Parser) bool {
	_, err := Absent.OrRecover(p, rules.recovery, expected(rules.expected))
	return err == nil
}

// parseNodeList parses elements until atEnd or the end of the file.
func (p *Parser) parseNodeList(rules listRules) CompletedMarker {
	m := p.start()
	var pr progress
	for !p.at(syntax.EOF) && !rules.atEnd(p) {
		pr.assert(p)
		if rules.element(p).IsPresent() {
			continue
		}
		if !rules.recoverElement(p) {
			break
		}
	}
	return m.Complete(p, rules.kind)
}

// parseSeparatedList parses elements separated by sep until atEnd. A
// trailing separator is accepted when allowTrailing is set.
func (p *Parser) parseSeparatedList(rules listRules, sep syntax.Kind, allowTrailing bool) CompletedMarker {
	m := p.start()
	var pr progress
	first := true
	for !p.at(syntax.EOF) && !rules.atEnd(p) {
		if !first {
			if !p.at(sep) {
				p.error(p.expectedDiagnostic(sep.Describe(), p.curRange()))
			} else {
				sepRange := p.curRange()
				p.bump(sep)
				if rules.atEnd(p) {
					if !allowTrailing {
						p.errAt("trailing "+sep.Describe()+" is not allowed here", sepRange)
					}
					break
				}
			}
		}
		first = false
		pr.assert(p)
		if rules.element(p).IsPresent() {
			continue
		}
		if p.at(sep) {
			p.error(p.expectedDiagnostic(rules.expected, p.curRange()))
			continue
		}
		if !rules.recoverElement(p) {
			break
		}
	}
	return m.Complete(p, rules.kind)
}
