package parser

import (
	"github.com/dhamidi/jsfront/js/diagnostics"
	"github.com/dhamidi/jsfront/js/syntax"
)

var objectMemberRecovery = syntax.NewTokenSet(
	syntax.TokenComma, syntax.TokenRCurly, syntax.TokenSemicolon,
)

func (p *Parser) parseObjectExpression() ParsedSyntax {
	defer p.scope(p.state.without(noIn))()
	m := p.start()
	p.bump(syntax.TokenLCurly)
	p.parseSeparatedList(listRules{
		kind:     syntax.KindObjectMemberList,
		atEnd:    atRCurly,
		element:  (*Parser).parseObjectMember,
		recovery: NewRecovery(syntax.KindBogusMember, objectMemberRecovery),
		expected: "a property, a method or a spread",
	}, syntax.TokenComma, true)
	p.expect(syntax.TokenRCurly)
	return Present(m.Complete(p, syntax.KindObjectExpression))
}

// atMemberNameStart reports whether the nth token can start a property name.
func (p *Parser) atMemberNameStart(n int) bool {
	switch k := p.nth(n); k {
	case syntax.TokenString, syntax.TokenNumber, syntax.TokenBigInt, syntax.TokenLBrack, syntax.TokenHash:
		return true
	default:
		return isNameKind(k)
	}
}

func (p *Parser) parseObjectMember() ParsedSyntax {
	switch p.cur() {
	case syntax.TokenDot3:
		return p.parseSpreadOrAssignmentExpression()
	case syntax.TokenStar:
		m := p.start()
		p.bump(syntax.TokenStar)
		p.parseObjectMemberName().OrAddDiagnostic(p, expected("a property name"))
		p.parseMethodRest(false, true)
		return Present(m.Complete(p, syntax.KindMethodObjectMember))
	case syntax.KwGet, syntax.KwSet:
		if p.atMemberNameStart(1) {
			m := p.start()
			getter := p.at(syntax.KwGet)
			p.bumpRemap(syntax.TokenIdent)
			p.parseObjectMemberName().OrAddDiagnostic(p, expected("a property name"))
			if getter {
				p.parseGetterRest(false)
				return Present(m.Complete(p, syntax.KindGetterObjectMember))
			}
			p.parseSetterRest(false)
			return Present(m.Complete(p, syntax.KindSetterObjectMember))
		}
	case syntax.KwAsync:
		if (p.atMemberNameStart(1) || p.nthAt(1, syntax.TokenStar)) && !p.hasNthPrecedingLineBreak(1) {
			m := p.start()
			p.bumpRemap(syntax.TokenIdent)
			generator := p.eat(syntax.TokenStar)
			p.parseObjectMemberName().OrAddDiagnostic(p, expected("a property name"))
			p.parseMethodRest(true, generator)
			return Present(m.Complete(p, syntax.KindMethodObjectMember))
		}
	}

	if p.atIdentifier() {
		switch p.nth(1) {
		case syntax.TokenComma, syntax.TokenRCurly, syntax.EOF:
			m := p.start()
			p.parseReferenceIdentifier()
			return Present(m.Complete(p, syntax.KindShorthandPropertyObjectMember))
		case syntax.TokenEq:
			// Only valid when the object is re-parsed as a pattern.
			m := p.start()
			p.parseReferenceIdentifier()
			eq := p.curRange()
			p.parseInitializerClause()
			p.error(diagnostics.Error(p.file, "did you mean to use a `:`? An `=` can only follow a property name when the containing object literal is part of a destructuring pattern", eq))
			return Present(m.Complete(p, syntax.KindShorthandPropertyObjectMember))
		}
	}

	m := p.start()
	if p.parseObjectMemberName().IsAbsent() {
		m.Abandon(p)
		return Absent
	}
	if p.at(syntax.TokenLParen) || p.at(syntax.TokenLAngle) {
		p.parseMethodRest(false, false)
		return Present(m.Complete(p, syntax.KindMethodObjectMember))
	}
	p.expect(syntax.TokenColon)
	p.parseAssignmentExpressionOrHigher().OrAddDiagnostic(p, expected("an expression"))
	return Present(m.Complete(p, syntax.KindPropertyObjectMember))
}

// parseObjectMemberName parses a literal or computed property name.
func (p *Parser) parseObjectMemberName() ParsedSyntax {
	switch k := p.cur(); {
	case k == syntax.TokenString || k == syntax.TokenNumber || k == syntax.TokenBigInt:
		if k == syntax.TokenNumber {
			p.checkLegacyOctal()
		}
		m := p.start()
		p.bumpAny()
		return Present(m.Complete(p, syntax.KindLiteralMemberName))
	case isNameKind(k):
		m := p.start()
		p.bumpRemap(syntax.TokenIdent)
		return Present(m.Complete(p, syntax.KindLiteralMemberName))
	case k == syntax.TokenLBrack:
		defer p.scope(p.state.without(noIn))()
		m := p.start()
		p.bump(syntax.TokenLBrack)
		p.parseAssignmentExpressionOrHigher().OrAddDiagnostic(p, expected("an expression"))
		p.expect(syntax.TokenRBrack)
		return Present(m.Complete(p, syntax.KindComputedMemberName))
	}
	return Absent
}
