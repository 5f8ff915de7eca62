package parser

import (
	"github.com/dhamidi/jsfront/js/syntax"
)

var enumMemberRecovery = syntax.NewTokenSet(syntax.TokenComma, syntax.TokenRCurly, syntax.TokenSemicolon)

// parseTsDeclarationStatement parses the TypeScript declarations that start
// with a contextual keyword. It returns Absent when the keyword is used as
// an identifier instead.
func (p *Parser) parseTsDeclarationStatement() ParsedSyntax {
	sameLine := !p.hasNthPrecedingLineBreak(1)
	switch p.cur() {
	case syntax.KwType:
		if isIdentifierKind(p.nth(1)) && sameLine {
			return p.parseTypeAliasDeclaration()
		}
	case syntax.KwInterface:
		if isIdentifierKind(p.nth(1)) && sameLine {
			return p.parseInterfaceDeclaration()
		}
	case syntax.KwEnum:
		return p.parseEnumDeclaration()
	case syntax.KwNamespace, syntax.KwModule:
		if sameLine && (isIdentifierKind(p.nth(1)) || (p.at(syntax.KwModule) && p.nthAt(1, syntax.TokenString))) {
			return p.parseModuleDeclaration()
		}
	case syntax.KwGlobal:
		if p.nthAt(1, syntax.TokenLCurly) && p.has(inAmbient) {
			return p.parseGlobalDeclaration()
		}
	case syntax.KwDeclare:
		if sameLine && p.atAmbientDeclaration(1) {
			return p.parseDeclareStatement()
		}
	case syntax.KwAbstract:
		if p.nthAt(1, syntax.KwClass) && sameLine {
			return p.parseClassDeclaration(nil)
		}
	}
	return Absent
}

// atAmbientDeclaration reports whether the nth token starts a declaration
// that can follow `declare`.
func (p *Parser) atAmbientDeclaration(n int) bool {
	switch p.nth(n) {
	case syntax.KwVar, syntax.KwLet, syntax.KwConst, syntax.KwFunction, syntax.KwClass, syntax.KwEnum:
		return true
	case syntax.KwAsync:
		return p.nthAt(n+1, syntax.KwFunction)
	case syntax.KwAbstract:
		return p.nthAt(n+1, syntax.KwClass)
	case syntax.KwInterface, syntax.KwType, syntax.KwNamespace:
		return isIdentifierKind(p.nth(n + 1))
	case syntax.KwModule:
		return isIdentifierKind(p.nth(n+1)) || p.nthAt(n+1, syntax.TokenString)
	case syntax.KwGlobal:
		return p.nthAt(n+1, syntax.TokenLCurly)
	}
	return false
}

func (p *Parser) parseDeclareStatement() ParsedSyntax {
	m := p.start()
	p.tsOnly("`declare` statements", p.curRange())
	p.bumpRemap(syntax.TokenIdent)
	p.within(p.state.with(inAmbient), func() {
		if p.at(syntax.KwAsync) {
			p.errAt("`async` modifier cannot be used in an ambient context", p.curRange())
		}
		decl := p.parseTsDeclarationStatement().Or(p.parseStatement)
		decl.OrAddDiagnostic(p, expected("a declaration"))
	})
	return Present(m.Complete(p, syntax.KindDeclareStatement))
}

func (p *Parser) parseTypeAliasDeclaration() ParsedSyntax {
	m := p.start()
	p.tsOnly("type aliases", p.curRange())
	p.bumpRemap(syntax.TokenIdent)
	p.parseTypeParameterName()
	p.parseTypeParameters()
	p.expect(syntax.TokenEq)
	p.within(p.typeState(), func() {
		p.parseType().OrAddDiagnostic(p, expected("a type"))
	})
	p.semicolon(m.Start())
	return Present(m.Complete(p, syntax.KindTypeAliasDeclaration))
}

func (p *Parser) parseInterfaceDeclaration() ParsedSyntax {
	m := p.start()
	p.tsOnly("interfaces", p.curRange())
	p.bumpRemap(syntax.TokenIdent)
	p.parseTypeParameterName()
	p.parseTypeParameters()
	if p.at(syntax.KwExtends) {
		e := p.start()
		p.bump(syntax.KwExtends)
		p.parseTypeList(func(p *Parser) bool { return p.at(syntax.TokenLCurly) })
		e.Complete(p, syntax.KindInterfaceExtendsClause)
	}
	if p.at(syntax.KwImplements) {
		p.errAt("interface declarations cannot have an `implements` clause", p.curRange())
		e := p.start()
		p.bump(syntax.KwImplements)
		p.parseTypeList(func(p *Parser) bool { return p.at(syntax.TokenLCurly) })
		e.Complete(p, syntax.KindBogus)
	}
	p.expect(syntax.TokenLCurly)
	p.parseTypeMembers()
	p.expect(syntax.TokenRCurly)
	return Present(m.Complete(p, syntax.KindInterfaceDeclaration))
}

// parseEnumDeclaration parses `[const] enum Name { A, B = 1 }`.
func (p *Parser) parseEnumDeclaration() ParsedSyntax {
	m := p.start()
	p.tsOnly("enums", p.curRange())
	p.eat(syntax.KwConst)
	p.bump(syntax.KwEnum)
	p.parseIdentifierBinding().OrAddDiagnostic(p, expected("a name for the enum"))
	p.expect(syntax.TokenLCurly)
	p.parseSeparatedList(listRules{
		kind:     syntax.KindEnumMemberList,
		atEnd:    atRCurly,
		element:  (*Parser).parseEnumMember,
		recovery: NewRecovery(syntax.KindBogusMember, enumMemberRecovery),
		expected: "an enum member",
	}, syntax.TokenComma, true)
	p.expect(syntax.TokenRCurly)
	return Present(m.Complete(p, syntax.KindEnumDeclaration))
}

func (p *Parser) parseEnumMember() ParsedSyntax {
	m := p.start()
	switch k := p.cur(); {
	case k == syntax.TokenString || isNameKind(k):
		n := p.start()
		if k == syntax.TokenString {
			p.bump(syntax.TokenString)
		} else {
			p.bumpRemap(syntax.TokenIdent)
		}
		n.Complete(p, syntax.KindLiteralMemberName)
	case k == syntax.TokenNumber || k == syntax.TokenBigInt:
		p.errAt("an enum member cannot have a numeric name", p.curRange())
		p.parseObjectMemberName()
	case k == syntax.TokenLBrack:
		name := p.parseObjectMemberName()
		p.errAt("computed property names are not allowed in enums", name.Range())
	default:
		m.Abandon(p)
		return Absent
	}
	p.parseInitializerClause()
	return Present(m.Complete(p, syntax.KindEnumMember))
}

// parseModuleDeclaration parses `namespace A.B { }` and `module "m" { }`.
// An ambient module may omit its body.
func (p *Parser) parseModuleDeclaration() ParsedSyntax {
	m := p.start()
	p.tsOnly("namespaces", p.curRange())
	p.bumpRemap(syntax.TokenIdent)
	if p.at(syntax.TokenString) {
		p.bump(syntax.TokenString)
		if !p.at(syntax.TokenLCurly) && p.has(inAmbient) {
			p.semicolon(m.Start())
			return Present(m.Complete(p, syntax.KindModuleDeclaration))
		}
	} else {
		name, ok := p.parseIdentifierBinding().OrAddDiagnostic(p, expected("a namespace name"))
		for ok && p.at(syntax.TokenDot) {
			q := name.Precede(p)
			p.bump(syntax.TokenDot)
			p.parseName().OrAddDiagnostic(p, expected("an identifier"))
			name = q.Complete(p, syntax.KindQualifiedName)
		}
	}
	p.parseModuleBlock()
	return Present(m.Complete(p, syntax.KindModuleDeclaration))
}

func (p *Parser) parseGlobalDeclaration() ParsedSyntax {
	m := p.start()
	p.bumpRemap(syntax.TokenIdent)
	p.parseModuleBlock()
	return Present(m.Complete(p, syntax.KindGlobalDeclaration))
}

func (p *Parser) parseModuleBlock() {
	if !p.at(syntax.TokenLCurly) {
		p.error(p.expectedDiagnostic("'{'", p.curRange()))
		return
	}
	m := p.start()
	p.bump(syntax.TokenLCurly)
	next := p.state.without(inIteration | inSwitch)
	next.labels = nil
	p.within(next, func() {
		p.parseNodeList(listRules{
			kind:     syntax.KindModuleItemList,
			atEnd:    atRCurly,
			element:  (*Parser).parseModuleItem,
			recovery: NewRecovery(syntax.KindBogusStatement, statementRecovery.With(syntax.TokenRCurly)),
			expected: "a statement",
		})
	})
	p.expect(syntax.TokenRCurly)
	m.Complete(p, syntax.KindModuleBlock)
}
