package parser

import (
	"fmt"

	"github.com/dhamidi/jsfront/js/diagnostics"
	"github.com/dhamidi/jsfront/js/syntax"
)

var assignmentPatternRecovery = syntax.NewTokenSet(
	syntax.TokenComma, syntax.TokenRBrack, syntax.TokenRCurly, syntax.TokenRParen,
	syntax.TokenSemicolon, syntax.TokenEq,
)

// toAssignmentTarget converts an expression that turned out to be the left
// side of an assignment or update. Object and array literals, and
// parenthesized expressions, are parsed again from cp as patterns. patterns
// is false where destructuring is not allowed.
func (p *Parser) toAssignmentTarget(cm CompletedMarker, cp Checkpoint, patterns bool) CompletedMarker {
	switch cm.Kind() {
	case syntax.KindIdentifierExpression:
		if p.isStrict() {
			if name := p.text(cm.Range()); name == "eval" || name == "arguments" {
				p.error(diagnostics.Error(p.file, fmt.Sprintf("Illegal use of `%s` as an assignment target in strict mode", name), cm.Range()).
					WithFooter(p.state.strict.String()))
			}
		}
		return cm.ChangeKind(p, syntax.KindIdentifierAssignment)
	case syntax.KindStaticMemberExpression:
		return cm.ChangeKind(p, syntax.KindStaticMemberAssignment)
	case syntax.KindComputedMemberExpression:
		return cm.ChangeKind(p, syntax.KindComputedMemberAssignment)
	case syntax.KindParenthesizedExpression:
		p.rewind(cp)
		m, _ := p.parseParenthesizedAssignment().Marker()
		return m
	case syntax.KindObjectExpression, syntax.KindArrayExpression:
		if patterns {
			p.rewind(cp)
			m, _ := p.parseAssignmentPattern().Marker()
			return m
		}
	case syntax.KindAsExpression, syntax.KindSatisfiesExpression,
		syntax.KindNonNullAssertionExpression, syntax.KindTypeAssertionExpression:
		if p.isTS() {
			return cm
		}
	case syntax.KindBogusAssignment:
		return cm
	}
	m := cm.Precede(p)
	p.error(diagnostics.Error(p.file, fmt.Sprintf("invalid assignment to `%s`", p.text(cm.Range())), cm.Range()).
		WithPrimaryLabel("this expression cannot be assigned to"))
	return m.Complete(p, syntax.KindBogusAssignment)
}

// parseAssignmentTarget parses a target at the current token: a pattern or
// a simple target.
func (p *Parser) parseAssignmentTarget() ParsedSyntax {
	if p.at(syntax.TokenLBrack) || p.at(syntax.TokenLCurly) {
		return p.parseAssignmentPattern()
	}
	return p.parseSimpleAssignmentTarget()
}

func (p *Parser) parseSimpleAssignmentTarget() ParsedSyntax {
	cp := p.checkpoint()
	expr := p.parseConditionalExpression()
	if expr.IsAbsent() {
		return expr
	}
	return Present(p.toAssignmentTarget(expr.marker, cp, false))
}

func (p *Parser) parseParenthesizedAssignment() ParsedSyntax {
	defer p.scope(p.state.without(noIn))()
	m := p.start()
	p.bump(syntax.TokenLParen)
	p.parseSimpleAssignmentTarget().OrAddDiagnostic(p, expected("an assignment target"))
	p.expect(syntax.TokenRParen)
	return Present(m.Complete(p, syntax.KindParenthesizedAssignment))
}

func (p *Parser) parseAssignmentPattern() ParsedSyntax {
	if p.at(syntax.TokenLBrack) {
		return p.parseArrayAssignmentPattern()
	}
	return p.parseObjectAssignmentPattern()
}

// parseAssignmentTargetWithDefault parses a pattern element: a target
// optionally followed by "= default".
func (p *Parser) parseAssignmentTargetWithDefault() ParsedSyntax {
	target := p.parseAssignmentTarget()
	if target.IsAbsent() || !p.at(syntax.TokenEq) {
		return target
	}
	m := target.marker.Precede(p)
	p.bump(syntax.TokenEq)
	p.parseAssignmentExpressionOrHigher().OrAddDiagnostic(p, expected("an expression"))
	return Present(m.Complete(p, syntax.KindAssignmentWithDefault))
}

func (p *Parser) parseArrayAssignmentPattern() ParsedSyntax {
	defer p.scope(p.state.without(noIn))()
	m := p.start()
	p.bump(syntax.TokenLBrack)
	list := p.start()
	var pr progress
	for !p.at(syntax.TokenRBrack) && !p.at(syntax.EOF) {
		pr.assert(p)
		if p.at(syntax.TokenComma) {
			p.start().Complete(p, syntax.KindArrayHole)
			p.bump(syntax.TokenComma)
			continue
		}
		if p.at(syntax.TokenDot3) {
			rest := p.start()
			p.bump(syntax.TokenDot3)
			p.parseAssignmentTarget().OrAddDiagnostic(p, expected("an assignment target"))
			r := rest.Complete(p, syntax.KindArrayAssignmentPatternRestElement)
			if p.at(syntax.TokenComma) {
				p.errAt("rest element must be the last element", r.Range())
			}
		} else if p.parseAssignmentTargetWithDefault().IsAbsent() {
			_, err := Absent.OrRecover(p, NewRecovery(syntax.KindBogusAssignment, assignmentPatternRecovery), expected("an assignment target"))
			if err != nil && !p.at(syntax.TokenComma) {
				break
			}
		}
		if p.at(syntax.TokenRBrack) {
			break
		}
		if !p.eat(syntax.TokenComma) {
			p.error(p.expectedDiagnostic("','", p.curRange()))
			break
		}
	}
	list.Complete(p, syntax.KindArrayPatternElementList)
	p.expect(syntax.TokenRBrack)
	return Present(m.Complete(p, syntax.KindArrayAssignmentPattern))
}

func (p *Parser) parseObjectAssignmentPattern() ParsedSyntax {
	defer p.scope(p.state.without(noIn))()
	m := p.start()
	p.bump(syntax.TokenLCurly)
	p.parseSeparatedList(listRules{
		kind:     syntax.KindObjectPatternPropertyList,
		atEnd:    atRCurly,
		element:  (*Parser).parseObjectAssignmentProperty,
		recovery: NewRecovery(syntax.KindBogusAssignment, assignmentPatternRecovery),
		expected: "a property assignment",
	}, syntax.TokenComma, true)
	p.expect(syntax.TokenRCurly)
	return Present(m.Complete(p, syntax.KindObjectAssignmentPattern))
}

func (p *Parser) parseObjectAssignmentProperty() ParsedSyntax {
	if p.at(syntax.TokenDot3) {
		m := p.start()
		p.bump(syntax.TokenDot3)
		p.parseSimpleAssignmentTarget().OrAddDiagnostic(p, expected("an assignment target"))
		r := m.Complete(p, syntax.KindObjectAssignmentPatternRest)
		if p.at(syntax.TokenComma) {
			p.errAt("rest element must be the last element", r.Range())
		}
		return Present(r)
	}
	if p.atIdentifier() && !p.nthAt(1, syntax.TokenColon) {
		m := p.start()
		id := p.start()
		p.parseReferenceIdentifier()
		id.Complete(p, syntax.KindIdentifierAssignment)
		p.parseInitializerClause()
		return Present(m.Complete(p, syntax.KindObjectAssignmentPatternShorthandProperty))
	}
	m := p.start()
	if p.parseObjectMemberName().IsAbsent() {
		m.Abandon(p)
		return Absent
	}
	p.expect(syntax.TokenColon)
	p.parseAssignmentTargetWithDefault().OrAddDiagnostic(p, expected("an assignment target"))
	return Present(m.Complete(p, syntax.KindObjectAssignmentPatternProperty))
}
