package parser

import (
	"fmt"

	"github.com/dhamidi/jsfront/js/diagnostics"
	"github.com/dhamidi/jsfront/js/syntax"
)

var classModifierKinds = syntax.NewTokenSet(
	syntax.KwDeclare, syntax.KwPublic, syntax.KwPrivate, syntax.KwProtected,
	syntax.KwAccessor, syntax.KwStatic, syntax.KwAbstract, syntax.KwOverride, syntax.KwReadonly,
)

var classMemberRecovery = syntax.NewTokenSet(
	syntax.TokenSemicolon, syntax.TokenRCurly, syntax.TokenAt, syntax.TokenHash,
	syntax.KwStatic, syntax.KwPublic, syntax.KwPrivate, syntax.KwProtected,
	syntax.KwAsync, syntax.KwGet, syntax.KwSet, syntax.KwReadonly, syntax.KwAbstract,
	syntax.KwDeclare, syntax.KwOverride, syntax.KwAccessor, syntax.KwConstructor,
)

// modifierRank orders class member modifiers; a modifier must not follow one
// with a higher rank.
func modifierRank(k syntax.Kind) int {
	switch k {
	case syntax.KwDeclare:
		return 0
	case syntax.KwPublic, syntax.KwPrivate, syntax.KwProtected:
		return 1
	case syntax.KwAccessor:
		return 2
	case syntax.KwStatic:
		return 3
	case syntax.KwAbstract:
		return 4
	case syntax.KwOverride:
		return 5
	case syntax.KwReadonly:
		return 6
	}
	return 7
}

type classModifier struct {
	kind syntax.Kind
	rng  syntax.TextRange
}

type modifierList []classModifier

func (l modifierList) find(kind syntax.Kind) (classModifier, bool) {
	for _, m := range l {
		if m.kind == kind {
			return m, true
		}
	}
	return classModifier{}, false
}

func (l modifierList) has(kind syntax.Kind) bool {
	_, ok := l.find(kind)
	return ok
}

func (l modifierList) accessibility() (classModifier, bool) {
	for _, m := range l {
		switch m.kind {
		case syntax.KwPublic, syntax.KwPrivate, syntax.KwProtected:
			return m, true
		}
	}
	return classModifier{}, false
}

type memberKind uint8

const (
	memberProperty memberKind = iota
	memberMethod
	memberAccessor
	memberConstructor
	memberIndexSignature
)

// memberShape is what modifier validation needs to know about a parsed
// member.
type memberShape struct {
	kind    memberKind
	hasBody bool
	private bool
	rng     syntax.TextRange
}

func (p *Parser) parseClassDeclaration(opts *declOptions) ParsedSyntax {
	return p.parseClass(syntax.KindClassDeclaration, opts)
}

func (p *Parser) parseClassExpression() ParsedSyntax {
	return p.parseClass(syntax.KindClassExpression, &declOptions{defaultExport: true})
}

func (p *Parser) parseClass(kind syntax.Kind, opts *declOptions) ParsedSyntax {
	m := p.start()
	p.parseDecorators()
	abstract := false
	if p.at(syntax.KwAbstract) && p.nthAt(1, syntax.KwClass) {
		abstract = true
		mods := p.start()
		p.tsOnly("abstract classes", p.curRange())
		p.bump(syntax.KwAbstract)
		mods.Complete(p, syntax.KindModifierList)
	}
	if !p.at(syntax.KwClass) {
		p.error(p.expectedDiagnostic("'class'", p.curRange()))
		return Present(m.Complete(p, kind.ToBogus()))
	}
	p.bump(syntax.KwClass)

	next := p.state
	if next.strict == sloppy {
		next.strict = strictClass
	}
	next = next.without(inAbstractClass | inDerivedClass)
	if abstract {
		next = next.with(inAbstractClass)
	}
	defer p.scope(next)()

	if !(p.at(syntax.KwImplements) && p.isTS()) && p.parseIdentifierBinding().IsAbsent() && !opts.nameOptional() {
		p.error(p.expectedDiagnostic("a name for the class declaration", p.curRange()))
	}
	p.parseTypeParameters()
	if p.at(syntax.KwExtends) {
		e := p.start()
		p.bump(syntax.KwExtends)
		p.parseLeftHandSideExpression().OrAddDiagnostic(p, expected("a class to extend"))
		if p.isTS() && p.at(syntax.TokenLAngle) {
			p.parseTypeArguments()
		}
		if p.at(syntax.TokenComma) {
			p.errAt("classes can only extend a single class", p.curRange())
			for p.eat(syntax.TokenComma) {
				p.parseLeftHandSideExpression()
			}
		}
		e.Complete(p, syntax.KindExtendsClause)
		p.state = p.state.with(inDerivedClass)
	}
	if p.at(syntax.KwImplements) {
		i := p.start()
		p.tsOnly("`implements` clauses", p.curRange())
		p.bump(syntax.KwImplements)
		p.parseTypeList(func(p *Parser) bool { return p.at(syntax.TokenLCurly) })
		i.Complete(p, syntax.KindImplementsClause)
	}
	p.expect(syntax.TokenLCurly)
	p.parseClassMembers()
	p.expect(syntax.TokenRCurly)
	return Present(m.Complete(p, kind))
}

func (p *Parser) parseClassMembers() {
	list := p.start()
	var ctor *syntax.TextRange
	var pr progress
	for !p.at(syntax.TokenRCurly) && !p.at(syntax.EOF) {
		pr.assert(p)
		member, hasBody := p.parseClassMember()
		if member.IsAbsent() {
			_, err := Absent.OrRecover(p, NewRecovery(syntax.KindBogusMember, classMemberRecovery), expected("a class member"))
			if err != nil {
				break
			}
			continue
		}
		if member.Kind() == syntax.KindConstructorClassMember && hasBody {
			r := member.Range()
			if ctor != nil {
				p.error(diagnostics.Error(p.file, "classes may only have one constructor", r).
					WithSecondary(*ctor, "the first constructor is declared here"))
			} else {
				ctor = &r
			}
		}
	}
	list.Complete(p, syntax.KindClassMemberList)
}

func (p *Parser) atClassModifier() bool {
	if !p.atSet(classModifierKinds) {
		return false
	}
	switch p.cur() {
	case syntax.KwStatic, syntax.KwPublic, syntax.KwPrivate, syntax.KwProtected:
	default:
		if p.hasNthPrecedingLineBreak(1) {
			return false
		}
	}
	switch next := p.nth(1); next {
	case syntax.TokenStar, syntax.TokenLBrack, syntax.TokenHash, syntax.TokenLCurly,
		syntax.TokenString, syntax.TokenNumber, syntax.TokenBigInt:
		return next != syntax.TokenLCurly || p.at(syntax.KwStatic)
	default:
		return isNameKind(next)
	}
}

// parseClassModifiers consumes modifiers into a ModifierList. A modifier
// keyword followed by something that cannot follow a modifier is left for
// the member name.
func (p *Parser) parseClassModifiers() modifierList {
	if !p.atClassModifier() {
		return nil
	}
	var mods modifierList
	list := p.start()
	for p.atClassModifier() && !(p.at(syntax.KwStatic) && p.nthAt(1, syntax.TokenLCurly)) {
		mods = append(mods, classModifier{kind: p.cur(), rng: p.curRange()})
		p.bumpAny()
	}
	list.Complete(p, syntax.KindModifierList)
	return mods
}

// parseClassMember parses one member and reports whether it has a body.
func (p *Parser) parseClassMember() (ParsedSyntax, bool) {
	if p.at(syntax.TokenSemicolon) {
		m := p.start()
		p.bump(syntax.TokenSemicolon)
		return Present(m.Complete(p, syntax.KindEmptyClassMember)), false
	}
	m := p.start()
	if p.at(syntax.KwStatic) && p.nthAt(1, syntax.TokenLCurly) {
		p.bump(syntax.KwStatic)
		p.bump(syntax.TokenLCurly)
		next := p.functionState(false, false).without(inFunction).with(inStaticBlock)
		p.within(next, func() {
			p.parseStatementList(atRCurly)
		})
		p.expect(syntax.TokenRCurly)
		return Present(m.Complete(p, syntax.KindStaticInitializationBlock)), true
	}

	p.parseDecorators()
	mods := p.parseClassModifiers()
	private := p.atPrivateMemberName()

	kind, member, hasBody := p.parseClassMemberBody(mods)
	if member == memberProperty && kind == syntax.Tombstone {
		if p.lastEnd <= m.Start() {
			m.Abandon(p)
			return Absent, false
		}
		p.error(p.expectedDiagnostic("a class member name", p.curRange()))
		kind = syntax.KindBogusMember
	}
	cm := m.Complete(p, kind)
	p.validateModifiers(mods, memberShape{kind: member, hasBody: hasBody, private: private, rng: cm.Range()})
	return Present(cm), hasBody
}

// atPrivateMemberName looks past a `*`, `get`, `set` or `async` prefix for a
// #name.
func (p *Parser) atPrivateMemberName() bool {
	switch p.cur() {
	case syntax.TokenHash:
		return true
	case syntax.TokenStar, syntax.KwGet, syntax.KwSet:
		return p.nthAt(1, syntax.TokenHash)
	case syntax.KwAsync:
		return p.nthAt(1, syntax.TokenHash) || (p.nthAt(1, syntax.TokenStar) && p.nthAt(2, syntax.TokenHash))
	}
	return false
}

// parseClassMemberBody parses a member after its modifiers. It returns
// syntax.Tombstone when not even a name was found.
func (p *Parser) parseClassMemberBody(mods modifierList) (syntax.Kind, memberKind, bool) {
	bodyOptional := p.isTS()
	switch {
	case p.at(syntax.TokenLBrack) && p.isTS() && isIdentifierKind(p.nth(1)) && p.nthAt(2, syntax.TokenColon):
		p.parseIndexSignatureParts()
		p.classMemberEnd()
		return syntax.KindIndexSignatureClassMember, memberIndexSignature, false
	case p.at(syntax.TokenStar):
		p.bump(syntax.TokenStar)
		p.parseClassMemberName().OrAddDiagnostic(p, expected("a method name"))
		return syntax.KindMethodClassMember, memberMethod, p.parseClassMethodRest(false, true, functionMethod, bodyOptional)
	case (p.at(syntax.KwGet) || p.at(syntax.KwSet)) && p.atMemberNameStart(1):
		getter := p.at(syntax.KwGet)
		p.bumpRemap(syntax.TokenIdent)
		p.parseClassMemberName().OrAddDiagnostic(p, expected("an accessor name"))
		if getter {
			return syntax.KindGetterClassMember, memberAccessor, p.parseGetterRest(bodyOptional)
		}
		return syntax.KindSetterClassMember, memberAccessor, p.parseSetterRest(bodyOptional)
	case p.at(syntax.KwAsync) && (p.atMemberNameStart(1) || p.nthAt(1, syntax.TokenStar)) && !p.hasNthPrecedingLineBreak(1):
		p.bumpRemap(syntax.TokenIdent)
		generator := p.eat(syntax.TokenStar)
		name := p.parseClassMemberName()
		name.OrAddDiagnostic(p, expected("a method name"))
		if p.isConstructorName(name) {
			p.errAt("constructors cannot be async", name.Range())
		}
		return syntax.KindMethodClassMember, memberMethod, p.parseClassMethodRest(true, generator, functionMethod, bodyOptional)
	}

	name := p.parseClassMemberName()
	if name.IsAbsent() {
		return syntax.Tombstone, memberProperty, false
	}
	if p.isConstructorName(name) && !mods.has(syntax.KwStatic) && p.at(syntax.TokenLParen) {
		return syntax.KindConstructorClassMember, memberConstructor, p.parseClassMethodRest(false, false, functionConstructor, bodyOptional)
	}
	optional := false
	if p.at(syntax.TokenQuestion) {
		optional = true
		p.tsOnly("optional members", p.curRange())
		p.bump(syntax.TokenQuestion)
	}
	if p.at(syntax.TokenLParen) || p.at(syntax.TokenLAngle) {
		return syntax.KindMethodClassMember, memberMethod, p.parseClassMethodRest(false, false, functionMethod, bodyOptional)
	}
	if !optional && p.at(syntax.TokenBang) && !p.hasPrecedingLineBreak() {
		p.tsOnly("definite assignment assertions", p.curRange())
		p.bump(syntax.TokenBang)
	}
	p.parseTypeAnnotation()
	if p.at(syntax.TokenEq) {
		next := p.functionState(false, false).without(inFunction).with(inClassFieldInitializer)
		p.within(next, func() {
			p.parseInitializerClause()
		})
	}
	p.classMemberEnd()
	return syntax.KindPropertyClassMember, memberProperty, false
}

// classMemberEnd ends a property declaration: an explicit ';' or an implicit
// one.
func (p *Parser) classMemberEnd() {
	if p.eat(syntax.TokenSemicolon) || p.atStatementEnd() {
		return
	}
	p.error(p.expectedDiagnostic("';' or a line break after a class property", p.curRange()))
}

func (p *Parser) parseClassMethodRest(async, generator bool, kind functionKind, bodyOptional bool) bool {
	if p.parseFunctionRest(async, generator, kind) {
		return true
	}
	if !bodyOptional {
		p.error(p.expectedDiagnostic("a function body", p.curRange()))
		return false
	}
	p.classMemberEnd()
	return false
}

func (p *Parser) parseClassMemberName() ParsedSyntax {
	if p.at(syntax.TokenHash) {
		return p.parsePrivateName(syntax.KindPrivateClassMemberName)
	}
	return p.parseObjectMemberName()
}

func (p *Parser) isConstructorName(name ParsedSyntax) bool {
	if name.Kind() != syntax.KindLiteralMemberName {
		return false
	}
	text := p.text(name.Range())
	return text == "constructor" || text == `"constructor"` || text == `'constructor'`
}

// validateModifiers checks the modifiers of a member once its kind is known.
// Every violation is reported; none stops parsing.
func (p *Parser) validateModifiers(mods modifierList, member memberShape) {
	seen := make(map[syntax.Kind]syntax.TextRange, len(mods))
	var last classModifier
	for i, mod := range mods {
		name := mod.kind.Text()
		if prev, ok := seen[mod.kind]; ok {
			p.error(diagnostics.Error(p.file, fmt.Sprintf("duplicate modifier `%s`", name), mod.rng).
				WithSecondary(prev, "first used here"))
			continue
		}
		seen[mod.kind] = mod.rng
		if i > 0 && modifierRank(mod.kind) < modifierRank(last.kind) {
			p.error(diagnostics.Error(p.file, fmt.Sprintf("`%s` must precede `%s`", name, last.kind.Text()), mod.rng).
				WithSecondary(last.rng, fmt.Sprintf("`%s` is here", last.kind.Text())))
		}
		last = mod

		if mod.kind != syntax.KwStatic && mod.kind != syntax.KwAccessor {
			p.tsOnly(fmt.Sprintf("`%s` modifiers", name), mod.rng)
		}
		switch mod.kind {
		case syntax.KwPublic, syntax.KwPrivate, syntax.KwProtected:
			if other, ok := mods.accessibility(); ok && other.rng != mod.rng {
				p.errAt("accessibility modifier already seen", mod.rng)
			}
			if member.private {
				p.errAt("an accessibility modifier cannot be used with a private identifier", mod.rng)
			}
		case syntax.KwAbstract:
			if !p.has(inAbstractClass) {
				p.errAt("only abstract classes can have abstract members", mod.rng)
			}
			if priv, ok := mods.find(syntax.KwPrivate); ok {
				p.error(diagnostics.Error(p.file, "`private` and `abstract` modifiers cannot be used together", mod.rng).
					WithSecondary(priv.rng, "`private` is here"))
			}
			if static, ok := mods.find(syntax.KwStatic); ok {
				p.error(diagnostics.Error(p.file, "`static` and `abstract` modifiers cannot be used together", mod.rng).
					WithSecondary(static.rng, "`static` is here"))
			}
			if member.hasBody {
				p.errAt("abstract methods cannot have an implementation", member.rng)
			}
		case syntax.KwAccessor:
			if member.kind != memberProperty {
				p.errAt("`accessor` modifier is only allowed on properties", mod.rng)
			}
		case syntax.KwReadonly:
			if member.kind != memberProperty && member.kind != memberIndexSignature {
				p.errAt("`readonly` modifier can only appear on a property declaration or index signature", mod.rng)
			}
		case syntax.KwDeclare:
			if member.kind != memberProperty {
				p.errAt("`declare` modifier is only allowed on properties", mod.rng)
			}
		case syntax.KwOverride:
			if !p.has(inDerivedClass) {
				p.errAt("`override` modifier can only be used in a class that extends another class", mod.rng)
			}
		}
		switch member.kind {
		case memberConstructor:
			if mod.kind != syntax.KwPublic && mod.kind != syntax.KwPrivate && mod.kind != syntax.KwProtected {
				p.errAt(fmt.Sprintf("`%s` modifier cannot appear on a constructor declaration", name), mod.rng)
			}
		case memberIndexSignature:
			if mod.kind != syntax.KwStatic && mod.kind != syntax.KwReadonly {
				p.errAt(fmt.Sprintf("`%s` modifier cannot appear on an index signature", name), mod.rng)
			}
		}
	}
}
