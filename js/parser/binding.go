package parser

import (
	"fmt"

	"github.com/dhamidi/jsfront/js/diagnostics"
	"github.com/dhamidi/jsfront/js/syntax"
)

var bindingRecovery = syntax.NewTokenSet(
	syntax.TokenComma, syntax.TokenRBrack, syntax.TokenRCurly, syntax.TokenRParen,
	syntax.TokenSemicolon, syntax.TokenEq, syntax.TokenColon,
)

func (p *Parser) parseBindingPattern() ParsedSyntax {
	switch p.cur() {
	case syntax.TokenLBrack:
		return p.parseArrayBindingPattern()
	case syntax.TokenLCurly:
		return p.parseObjectBindingPattern()
	}
	return p.parseIdentifierBinding()
}

func (p *Parser) parseIdentifierBinding() ParsedSyntax {
	if !p.atIdentifier() {
		return Absent
	}
	m := p.start()
	name, r := p.curText(), p.curRange()
	p.checkIdentifier(true)
	if prev, dup := p.recordName(name, r); dup {
		p.error(diagnostics.Error(p.file, fmt.Sprintf("identifier `%s` is bound more than once in the same declaration", name), r).
			WithPrimaryLabel("bound again here").
			WithSecondary(prev, "first bound here"))
	}
	p.bumpRemap(syntax.TokenIdent)
	return Present(m.Complete(p, syntax.KindIdentifierBinding))
}

// parseBindingElement parses a pattern optionally followed by "= default".
func (p *Parser) parseBindingElement() ParsedSyntax {
	pattern := p.parseBindingPattern()
	if pattern.IsAbsent() || !p.at(syntax.TokenEq) {
		return pattern
	}
	m := pattern.marker.Precede(p)
	p.bump(syntax.TokenEq)
	p.parseAssignmentExpressionOrHigher().OrAddDiagnostic(p, expected("an expression"))
	return Present(m.Complete(p, syntax.KindBindingPatternWithDefault))
}

func (p *Parser) parseArrayBindingPattern() ParsedSyntax {
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
			p.parseBindingPattern().OrAddDiagnostic(p, expected("an identifier or a binding pattern"))
			r := rest.Complete(p, syntax.KindArrayBindingPatternRestElement)
			if p.at(syntax.TokenComma) {
				p.errAt("rest element must be the last element", r.Range())
			}
		} else if p.parseBindingElement().IsAbsent() {
			_, err := Absent.OrRecover(p, NewRecovery(syntax.KindBogusBinding, bindingRecovery), expected("an identifier or a binding pattern"))
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
	return Present(m.Complete(p, syntax.KindArrayBindingPattern))
}

func (p *Parser) parseObjectBindingPattern() ParsedSyntax {
	m := p.start()
	p.bump(syntax.TokenLCurly)
	p.parseSeparatedList(listRules{
		kind:     syntax.KindObjectPatternPropertyList,
		atEnd:    atRCurly,
		element:  (*Parser).parseObjectBindingProperty,
		recovery: NewRecovery(syntax.KindBogusBinding, bindingRecovery),
		expected: "a property pattern",
	}, syntax.TokenComma, true)
	p.expect(syntax.TokenRCurly)
	return Present(m.Complete(p, syntax.KindObjectBindingPattern))
}

func (p *Parser) parseObjectBindingProperty() ParsedSyntax {
	if p.at(syntax.TokenDot3) {
		m := p.start()
		p.bump(syntax.TokenDot3)
		p.parseIdentifierBinding().OrAddDiagnostic(p, expected("an identifier"))
		r := m.Complete(p, syntax.KindObjectBindingPatternRest)
		if p.at(syntax.TokenComma) {
			p.errAt("rest element must be the last element", r.Range())
		}
		return Present(r)
	}
	if p.atIdentifier() && !p.nthAt(1, syntax.TokenColon) {
		m := p.start()
		p.parseIdentifierBinding()
		p.parseInitializerClause()
		return Present(m.Complete(p, syntax.KindObjectBindingPatternShorthandProperty))
	}
	m := p.start()
	if p.parseObjectMemberName().IsAbsent() {
		m.Abandon(p)
		return Absent
	}
	p.expect(syntax.TokenColon)
	p.parseBindingPattern().OrAddDiagnostic(p, expected("an identifier or a binding pattern"))
	p.parseInitializerClause()
	return Present(m.Complete(p, syntax.KindObjectBindingPatternProperty))
}
