package parser

import (
	"github.com/dhamidi/jsfront/js/lexer"
	"github.com/dhamidi/jsfront/js/syntax"
)

var typeRecovery = syntax.NewTokenSet(
	syntax.TokenComma, syntax.TokenSemicolon, syntax.TokenRParen, syntax.TokenRBrack,
	syntax.TokenRCurly, syntax.TokenRAngle, syntax.TokenEq, syntax.TokenFatArrow,
)

var typeMemberRecovery = syntax.NewTokenSet(
	syntax.TokenComma, syntax.TokenSemicolon, syntax.TokenRCurly,
)

var keywordTypes = map[syntax.Kind]syntax.Kind{
	syntax.KwAny:       syntax.KindAnyType,
	syntax.KwUnknown:   syntax.KindUnknownType,
	syntax.KwNumber:    syntax.KindNumberType,
	syntax.KwBoolean:   syntax.KindBooleanType,
	syntax.KwBigint:    syntax.KindBigintType,
	syntax.KwString:    syntax.KindStringType,
	syntax.KwSymbol:    syntax.KindSymbolType,
	syntax.KwVoid:      syntax.KindVoidType,
	syntax.KwUndefined: syntax.KindUndefinedType,
	syntax.KwNever:     syntax.KindNeverType,
	syntax.KwObject:    syntax.KindNonPrimitiveType,
	syntax.KwNull:      syntax.KindNullLiteralType,
}

// typeState is the state types are parsed in: conditional types are allowed
// again inside any bracketed construct.
func (p *Parser) typeState() state {
	return p.state.with(inTypeContext).without(noConditionalType | noIn)
}

func (p *Parser) parseTypeAnnotation() ParsedSyntax {
	if !p.at(syntax.TokenColon) {
		return Absent
	}
	m := p.start()
	p.tsOnly("type annotations", p.curRange())
	p.bump(syntax.TokenColon)
	p.parseType().OrAddDiagnostic(p, expected("a type"))
	return Present(m.Complete(p, syntax.KindTypeAnnotation))
}

func (p *Parser) parseReturnTypeAnnotation() ParsedSyntax {
	if !p.at(syntax.TokenColon) {
		return Absent
	}
	m := p.start()
	p.tsOnly("return type annotations", p.curRange())
	p.bump(syntax.TokenColon)
	p.parseTypeOrPredicate().OrAddDiagnostic(p, expected("a type"))
	return Present(m.Complete(p, syntax.KindReturnTypeAnnotation))
}

// parseTypeOrPredicate parses a return type, which may also be a type
// predicate `x is T` or an assertion signature `asserts x [is T]`.
func (p *Parser) parseTypeOrPredicate() ParsedSyntax {
	defer p.scope(p.typeState())()
	isPredicateName := func(n int) bool {
		k := p.nth(n)
		return k == syntax.KwThis || isIdentifierKind(k)
	}
	if p.at(syntax.KwAsserts) && isPredicateName(1) && !p.hasNthPrecedingLineBreak(1) {
		m := p.start()
		p.bumpRemap(syntax.TokenIdent)
		p.parsePredicateName()
		if p.at(syntax.KwIs) && !p.hasPrecedingLineBreak() {
			p.bump(syntax.KwIs)
			p.parseType().OrAddDiagnostic(p, expected("a type"))
		}
		return Present(m.Complete(p, syntax.KindAssertsReturnType))
	}
	if isPredicateName(0) && p.nthAt(1, syntax.KwIs) && !p.hasNthPrecedingLineBreak(1) {
		m := p.start()
		p.parsePredicateName()
		p.bump(syntax.KwIs)
		p.parseType().OrAddDiagnostic(p, expected("a type"))
		return Present(m.Complete(p, syntax.KindTypePredicate))
	}
	return p.parseType()
}

func (p *Parser) parsePredicateName() {
	m := p.start()
	if p.at(syntax.KwThis) {
		p.bump(syntax.KwThis)
		m.Complete(p, syntax.KindThisType)
		return
	}
	p.bumpRemap(syntax.TokenIdent)
	m.Complete(p, syntax.KindReferenceIdentifier)
}

// parseType parses a full type, including function, constructor and
// conditional types.
func (p *Parser) parseType() ParsedSyntax {
	next := p.state.with(inTypeContext).without(noIn)
	defer p.scope(next)()

	if p.atFunctionTypeStart() {
		if fn := p.parseFunctionType(); fn.IsPresent() {
			return fn
		}
	}
	if p.at(syntax.KwNew) || (p.at(syntax.KwAbstract) && p.nthAt(1, syntax.KwNew)) {
		return p.parseConstructorType()
	}
	check := p.parseUnionTypeOrHigher()
	if check.IsAbsent() || p.has(noConditionalType) || !p.at(syntax.KwExtends) || p.hasPrecedingLineBreak() {
		return check
	}
	m := check.marker.Precede(p)
	p.bump(syntax.KwExtends)
	p.within(p.state.with(noConditionalType), func() {
		p.parseType().OrAddDiagnostic(p, expected("a type"))
	})
	p.expect(syntax.TokenQuestion)
	p.within(p.typeState(), func() {
		p.parseType().OrAddDiagnostic(p, expected("a type"))
	})
	p.expect(syntax.TokenColon)
	p.within(p.typeState(), func() {
		p.parseType().OrAddDiagnostic(p, expected("a type"))
	})
	return Present(m.Complete(p, syntax.KindConditionalType))
}

// atFunctionTypeStart reports whether a function type starts here: `<`, or a
// `(` whose contents look like a parameter list.
func (p *Parser) atFunctionTypeStart() bool {
	switch p.cur() {
	case syntax.TokenLAngle:
		return true
	case syntax.TokenLParen:
	default:
		return false
	}
	switch next := p.nth(1); {
	case next == syntax.TokenRParen || next == syntax.TokenDot3:
		return true
	case next == syntax.TokenLBrack || next == syntax.TokenLCurly:
		// A destructured parameter; the speculative parse decides.
		return true
	case next == syntax.KwThis || isIdentifierKind(next) || parameterModifiers.Contains(next):
		switch p.nth(2) {
		case syntax.TokenColon, syntax.TokenComma, syntax.TokenQuestion, syntax.TokenEq:
			return true
		case syntax.TokenRParen:
			return p.nthAt(3, syntax.TokenFatArrow)
		}
		return isIdentifierKind(p.nth(2)) && parameterModifiers.Contains(next)
	}
	return false
}

// parseFunctionType parses `<T>(params) => R`. It is speculative: when the
// parameter list does not parse cleanly or no `=>` follows, nothing is
// consumed.
func (p *Parser) parseFunctionType() ParsedSyntax {
	cp := p.checkpoint()
	m := p.start()
	p.parseTypeParameters()
	p.parseParameters(functionArrow)
	if len(p.diagnostics) > cp.diagnostics || !p.at(syntax.TokenFatArrow) {
		p.rewind(cp)
		return Absent
	}
	p.bump(syntax.TokenFatArrow)
	p.parseTypeOrPredicate().OrAddDiagnostic(p, expected("a return type"))
	return Present(m.Complete(p, syntax.KindFunctionType))
}

func (p *Parser) parseConstructorType() ParsedSyntax {
	m := p.start()
	if p.at(syntax.KwAbstract) {
		p.bumpRemap(syntax.TokenIdent)
	}
	p.bump(syntax.KwNew)
	p.parseTypeParameters()
	p.parseParameters(functionArrow)
	p.expect(syntax.TokenFatArrow)
	p.parseTypeOrPredicate().OrAddDiagnostic(p, expected("a return type"))
	return Present(m.Complete(p, syntax.KindConstructorType))
}

func (p *Parser) parseUnionTypeOrHigher() ParsedSyntax {
	return p.parseBinaryType(syntax.TokenPipe, syntax.KindUnionType, (*Parser).parseIntersectionTypeOrHigher)
}

func (p *Parser) parseIntersectionTypeOrHigher() ParsedSyntax {
	return p.parseBinaryType(syntax.TokenAmp, syntax.KindIntersectionType, (*Parser).parseTypeOperatorOrHigher)
}

// parseBinaryType parses `[op] T op T ...` into a flat node of kind. A
// single type without a leading operator is returned unwrapped.
func (p *Parser) parseBinaryType(op, kind syntax.Kind, operand func(*Parser) ParsedSyntax) ParsedSyntax {
	m := p.start()
	leading := p.eat(op)
	first := operand(p)
	if !p.at(op) {
		if !leading {
			m.Abandon(p)
			return first
		}
		first.OrAddDiagnostic(p, expected("a type"))
		return Present(m.Complete(p, kind))
	}
	first.OrAddDiagnostic(p, expected("a type"))
	for p.eat(op) {
		operand(p).OrAddDiagnostic(p, expected("a type"))
	}
	return Present(m.Complete(p, kind))
}

func (p *Parser) parseTypeOperatorOrHigher() ParsedSyntax {
	switch p.cur() {
	case syntax.KwKeyof, syntax.KwUnique, syntax.KwReadonly:
		m := p.start()
		p.bumpAny()
		p.parseTypeOperatorOrHigher().OrAddDiagnostic(p, expected("a type"))
		return Present(m.Complete(p, syntax.KindTypeOperatorType))
	case syntax.KwInfer:
		if isIdentifierKind(p.nth(1)) {
			return p.parseInferType()
		}
	}
	primary := p.parsePrimaryType()
	if primary.IsAbsent() {
		return primary
	}
	return Present(p.parsePostfixTypes(primary.marker))
}

// parseInferType parses `infer U [extends C]`. The constraint is dropped
// again when it turns out to be the start of a conditional type.
func (p *Parser) parseInferType() ParsedSyntax {
	m := p.start()
	p.bump(syntax.KwInfer)
	p.parseTypeParameterName()
	if p.at(syntax.KwExtends) {
		cp := p.checkpoint()
		c := p.start()
		p.bump(syntax.KwExtends)
		p.within(p.state.with(noConditionalType), func() {
			p.parseType().OrAddDiagnostic(p, expected("a type"))
		})
		c.Complete(p, syntax.KindTypeConstraint)
		if p.at(syntax.TokenQuestion) && !p.has(noConditionalType) {
			p.rewind(cp)
		}
	}
	return Present(m.Complete(p, syntax.KindInferType))
}

// parsePostfixTypes parses `T[]` and `T[K]` suffixes on the same line.
func (p *Parser) parsePostfixTypes(left CompletedMarker) CompletedMarker {
	for p.at(syntax.TokenLBrack) && !p.hasPrecedingLineBreak() {
		m := left.Precede(p)
		p.bump(syntax.TokenLBrack)
		if p.eat(syntax.TokenRBrack) {
			left = m.Complete(p, syntax.KindArrayType)
			continue
		}
		p.within(p.typeState(), func() {
			p.parseType().OrAddDiagnostic(p, expected("a type"))
		})
		p.expect(syntax.TokenRBrack)
		left = m.Complete(p, syntax.KindIndexedAccessType)
	}
	return left
}

func (p *Parser) parsePrimaryType() ParsedSyntax {
	k := p.cur()
	if kind, ok := keywordTypes[k]; ok && !p.nthAt(1, syntax.TokenDot) {
		m := p.start()
		p.bumpAny()
		return Present(m.Complete(p, kind))
	}
	switch k {
	case syntax.KwThis:
		m := p.start()
		p.bump(syntax.KwThis)
		return Present(m.Complete(p, syntax.KindThisType))
	case syntax.KwTrue, syntax.KwFalse:
		m := p.start()
		p.bumpAny()
		return Present(m.Complete(p, syntax.KindBooleanLiteralType))
	case syntax.TokenString:
		m := p.start()
		p.bumpAny()
		return Present(m.Complete(p, syntax.KindStringLiteralType))
	case syntax.TokenNumber:
		m := p.start()
		p.bumpAny()
		return Present(m.Complete(p, syntax.KindNumberLiteralType))
	case syntax.TokenBigInt:
		m := p.start()
		p.bumpAny()
		return Present(m.Complete(p, syntax.KindBigIntLiteralType))
	case syntax.TokenMinus:
		if p.nthAt(1, syntax.TokenNumber) || p.nthAt(1, syntax.TokenBigInt) {
			m := p.start()
			p.bump(syntax.TokenMinus)
			kind := syntax.KindNumberLiteralType
			if p.at(syntax.TokenBigInt) {
				kind = syntax.KindBigIntLiteralType
			}
			p.bumpAny()
			return Present(m.Complete(p, kind))
		}
		return Absent
	case syntax.TokenBacktick:
		return p.parseTemplateLiteralType()
	case syntax.KwTypeof:
		return p.parseTypeofType()
	case syntax.KwImport:
		return p.parseImportType()
	case syntax.TokenLBrack:
		return p.parseTupleType()
	case syntax.TokenLCurly:
		if p.atMappedTypeStart() {
			return p.parseMappedType()
		}
		return p.parseObjectType()
	case syntax.TokenLParen:
		defer p.scope(p.typeState())()
		m := p.start()
		p.bump(syntax.TokenLParen)
		p.parseType().OrAddDiagnostic(p, expected("a type"))
		p.expect(syntax.TokenRParen)
		return Present(m.Complete(p, syntax.KindParenthesizedType))
	}
	if isIdentifierKind(k) || (k.IsKeyword() && p.nthAt(1, syntax.TokenDot)) {
		return p.parseTypeReference()
	}
	return Absent
}

// parseTypeReference parses `A.B.C<Args>`.
func (p *Parser) parseTypeReference() ParsedSyntax {
	if !isNameKind(p.cur()) {
		return Absent
	}
	m := p.start()
	p.parseEntityName()
	if p.at(syntax.TokenLAngle) && !p.hasPrecedingLineBreak() {
		p.parseTypeArguments()
	}
	return Present(m.Complete(p, syntax.KindReferenceType))
}

// parseEntityName parses a possibly qualified name: an identifier followed
// by `.name` parts.
func (p *Parser) parseEntityName() CompletedMarker {
	id := p.start()
	p.bumpRemap(syntax.TokenIdent)
	name := id.Complete(p, syntax.KindReferenceIdentifier)
	for p.at(syntax.TokenDot) {
		q := name.Precede(p)
		p.bump(syntax.TokenDot)
		p.parseName().OrAddDiagnostic(p, expected("an identifier"))
		name = q.Complete(p, syntax.KindQualifiedName)
	}
	return name
}

func (p *Parser) parseTypeofType() ParsedSyntax {
	m := p.start()
	p.bump(syntax.KwTypeof)
	switch {
	case p.at(syntax.KwImport):
		p.parseImportType()
	case isNameKind(p.cur()):
		p.parseEntityName()
		if p.at(syntax.TokenLAngle) && !p.hasPrecedingLineBreak() {
			p.parseTypeArguments()
		}
	default:
		p.error(p.expectedDiagnostic("an identifier", p.curRange()))
	}
	return Present(m.Complete(p, syntax.KindTypeofType))
}

// parseImportType parses `import("mod").Name<Args>`.
func (p *Parser) parseImportType() ParsedSyntax {
	m := p.start()
	p.bump(syntax.KwImport)
	p.expect(syntax.TokenLParen)
	if p.at(syntax.TokenString) {
		p.bump(syntax.TokenString)
	} else {
		p.error(p.expectedDiagnostic("a module specifier string", p.curRange()))
	}
	p.expect(syntax.TokenRParen)
	for p.at(syntax.TokenDot) {
		p.bump(syntax.TokenDot)
		p.parseName().OrAddDiagnostic(p, expected("an identifier"))
	}
	if p.at(syntax.TokenLAngle) && !p.hasPrecedingLineBreak() {
		p.parseTypeArguments()
	}
	return Present(m.Complete(p, syntax.KindImportType))
}

func (p *Parser) parseTemplateLiteralType() ParsedSyntax {
	m := p.start()
	ctx := lexer.TemplateContext(false)
	start := p.curRange()
	p.bumpWith(syntax.TokenBacktick, ctx)
	list := p.start()
	for {
		switch p.cur() {
		case syntax.TokenTemplateChunk:
			e := p.start()
			p.bumpWith(syntax.TokenTemplateChunk, ctx)
			e.Complete(p, syntax.KindTemplateChunkElement)
		case syntax.TokenDollarCurly:
			e := p.start()
			p.bump(syntax.TokenDollarCurly)
			p.within(p.typeState(), func() {
				p.parseType().OrAddDiagnostic(p, expected("a type"))
			})
			if p.at(syntax.TokenRCurly) {
				p.bumpWith(syntax.TokenRCurly, ctx)
			} else {
				p.error(p.expectedDiagnostic("'}'", p.curRange()))
			}
			e.Complete(p, syntax.KindTemplateTypeElement)
		case syntax.TokenBacktick:
			list.Complete(p, syntax.KindTemplateTypeElementList)
			p.bump(syntax.TokenBacktick)
			return Present(m.Complete(p, syntax.KindTemplateLiteralType))
		default:
			p.errAt("unterminated template literal type", start)
			list.Complete(p, syntax.KindTemplateTypeElementList)
			return Present(m.Complete(p, syntax.KindTemplateLiteralType))
		}
	}
}

func (p *Parser) parseTupleType() ParsedSyntax {
	defer p.scope(p.typeState())()
	m := p.start()
	p.bump(syntax.TokenLBrack)
	p.parseSeparatedList(listRules{
		kind:     syntax.KindTupleTypeElementList,
		atEnd:    func(p *Parser) bool { return p.at(syntax.TokenRBrack) },
		element:  (*Parser).parseTupleTypeElement,
		recovery: NewRecovery(syntax.KindBogusType, typeRecovery),
		expected: "a type",
	}, syntax.TokenComma, true)
	p.expect(syntax.TokenRBrack)
	return Present(m.Complete(p, syntax.KindTupleType))
}

func (p *Parser) parseTupleTypeElement() ParsedSyntax {
	if p.at(syntax.TokenDot3) {
		m := p.start()
		p.bump(syntax.TokenDot3)
		if isNameKind(p.cur()) && p.nthAt(1, syntax.TokenColon) {
			p.parseName()
			p.bump(syntax.TokenColon)
		}
		p.parseType().OrAddDiagnostic(p, expected("a type"))
		return Present(m.Complete(p, syntax.KindRestTupleTypeElement))
	}
	if isNameKind(p.cur()) && (p.nthAt(1, syntax.TokenColon) || (p.nthAt(1, syntax.TokenQuestion) && p.nthAt(2, syntax.TokenColon))) {
		m := p.start()
		p.parseName()
		p.eat(syntax.TokenQuestion)
		p.bump(syntax.TokenColon)
		p.parseType().OrAddDiagnostic(p, expected("a type"))
		return Present(m.Complete(p, syntax.KindNamedTupleTypeElement))
	}
	ty := p.parseType()
	if ty.IsAbsent() || !p.at(syntax.TokenQuestion) {
		return ty
	}
	m := ty.marker.Precede(p)
	p.bump(syntax.TokenQuestion)
	return Present(m.Complete(p, syntax.KindOptionalTupleTypeElement))
}

func (p *Parser) atMappedTypeStart() bool {
	n := 1
	if p.nthAt(n, syntax.TokenPlus) || p.nthAt(n, syntax.TokenMinus) {
		n++
		if !p.nthAt(n, syntax.KwReadonly) {
			return false
		}
	}
	if p.nthAt(n, syntax.KwReadonly) {
		n++
	}
	return p.nthAt(n, syntax.TokenLBrack) && isIdentifierKind(p.nth(n+1)) && p.nthAt(n+2, syntax.KwIn)
}

// parseMappedType parses `{ readonly [K in T as N]?: V }`.
func (p *Parser) parseMappedType() ParsedSyntax {
	defer p.scope(p.typeState())()
	m := p.start()
	p.bump(syntax.TokenLCurly)
	if p.at(syntax.TokenPlus) || p.at(syntax.TokenMinus) {
		p.bumpAny()
	}
	if p.at(syntax.KwReadonly) {
		p.bumpRemap(syntax.TokenIdent)
	}
	p.bump(syntax.TokenLBrack)
	tp := p.start()
	p.parseTypeParameterName()
	tp.Complete(p, syntax.KindTypeParameter)
	p.bump(syntax.KwIn)
	p.parseType().OrAddDiagnostic(p, expected("a type"))
	if p.at(syntax.KwAs) {
		as := p.start()
		p.bump(syntax.KwAs)
		p.parseType().OrAddDiagnostic(p, expected("a type"))
		as.Complete(p, syntax.KindMappedTypeAsClause)
	}
	p.expect(syntax.TokenRBrack)
	if p.at(syntax.TokenPlus) || p.at(syntax.TokenMinus) {
		p.bumpAny()
		p.expect(syntax.TokenQuestion)
	} else {
		p.eat(syntax.TokenQuestion)
	}
	p.parseTypeAnnotation()
	p.eat(syntax.TokenSemicolon)
	p.expect(syntax.TokenRCurly)
	return Present(m.Complete(p, syntax.KindMappedType))
}

func (p *Parser) parseObjectType() ParsedSyntax {
	m := p.start()
	p.bump(syntax.TokenLCurly)
	p.parseTypeMembers()
	p.expect(syntax.TokenRCurly)
	return Present(m.Complete(p, syntax.KindObjectType))
}

// parseTypeMembers parses the members of an object type or interface body.
// Members are separated by ',', ';' or a line break.
func (p *Parser) parseTypeMembers() {
	defer p.scope(p.typeState())()
	list := p.start()
	var pr progress
	for !p.at(syntax.TokenRCurly) && !p.at(syntax.EOF) {
		pr.assert(p)
		if p.parseTypeMember().IsAbsent() {
			_, err := Absent.OrRecover(p, NewRecovery(syntax.KindBogusMember, typeMemberRecovery), expected("a property, a method or a signature"))
			if err != nil && !p.at(syntax.TokenComma) && !p.at(syntax.TokenSemicolon) {
				break
			}
		}
		if p.eat(syntax.TokenComma) || p.eat(syntax.TokenSemicolon) {
			continue
		}
		if !p.at(syntax.TokenRCurly) && !p.hasPrecedingLineBreak() && !p.at(syntax.EOF) {
			p.error(p.expectedDiagnostic("',' or ';'", p.curRange()))
		}
	}
	list.Complete(p, syntax.KindTypeMemberList)
}

func (p *Parser) parseTypeMember() ParsedSyntax {
	m := p.start()
	switch {
	case p.at(syntax.TokenLParen) || p.at(syntax.TokenLAngle):
		p.parseSignatureRest()
		return Present(m.Complete(p, syntax.KindCallSignatureTypeMember))
	case p.at(syntax.KwNew) && (p.nthAt(1, syntax.TokenLParen) || p.nthAt(1, syntax.TokenLAngle)):
		p.bump(syntax.KwNew)
		p.parseSignatureRest()
		return Present(m.Complete(p, syntax.KindConstructSignatureTypeMember))
	case p.at(syntax.KwReadonly) && p.nthAt(1, syntax.TokenLBrack) && p.atIndexSignature(2):
		p.bumpRemap(syntax.TokenIdent)
		p.parseIndexSignatureParts()
		return Present(m.Complete(p, syntax.KindIndexSignatureTypeMember))
	case p.at(syntax.TokenLBrack) && p.atIndexSignature(1):
		p.parseIndexSignatureParts()
		return Present(m.Complete(p, syntax.KindIndexSignatureTypeMember))
	case (p.at(syntax.KwGet) || p.at(syntax.KwSet)) && p.atMemberNameStart(1) && !p.hasNthPrecedingLineBreak(1):
		getter := p.at(syntax.KwGet)
		p.bumpRemap(syntax.TokenIdent)
		p.parseObjectMemberName().OrAddDiagnostic(p, expected("a property name"))
		if getter {
			params, info := p.parseParameters(functionMethod)
			if info.count > 0 {
				p.errAt("a getter cannot have parameters", params.Range())
			}
			p.parseReturnTypeAnnotation()
			return Present(m.Complete(p, syntax.KindGetterSignatureTypeMember))
		}
		params, info := p.parseParameters(functionMethod)
		if info.count != 1 {
			p.errAt("a setter must have exactly one parameter", params.Range())
		}
		return Present(m.Complete(p, syntax.KindSetterSignatureTypeMember))
	}

	if p.at(syntax.KwReadonly) && p.atMemberNameStart(1) && !p.nthAt(1, syntax.TokenHash) {
		p.bumpRemap(syntax.TokenIdent)
	}
	if p.parseObjectMemberName().IsAbsent() {
		if p.lastEnd > m.Start() {
			p.error(p.expectedDiagnostic("a property name", p.curRange()))
			return Present(m.Complete(p, syntax.KindBogusMember))
		}
		m.Abandon(p)
		return Absent
	}
	p.eat(syntax.TokenQuestion)
	if p.at(syntax.TokenLParen) || p.at(syntax.TokenLAngle) {
		p.parseSignatureRest()
		return Present(m.Complete(p, syntax.KindMethodSignatureTypeMember))
	}
	p.parseTypeAnnotation()
	return Present(m.Complete(p, syntax.KindPropertySignatureTypeMember))
}

// parseSignatureRest parses `<T>(params): R` of a signature without a body.
func (p *Parser) parseSignatureRest() {
	defer p.scope(p.functionState(false, false))()
	p.parseTypeParameters()
	p.parseParameters(functionMethod)
	p.parseReturnTypeAnnotation()
}

// atIndexSignature reports whether `[` at n-1 starts an index signature:
// `[name:`.
func (p *Parser) atIndexSignature(n int) bool {
	return isIdentifierKind(p.nth(n)) && p.nthAt(n+1, syntax.TokenColon)
}

// parseIndexSignatureParts parses `[key: K]: V` into the enclosing node.
func (p *Parser) parseIndexSignatureParts() {
	p.bump(syntax.TokenLBrack)
	param := p.start()
	p.parseTypeParameterName()
	p.parseTypeAnnotation().OrAddDiagnostic(p, expected("a type annotation"))
	param.Complete(p, syntax.KindIndexSignatureParameter)
	p.expect(syntax.TokenRBrack)
	p.parseTypeAnnotation().OrAddDiagnostic(p, expected("a type annotation"))
}

// parseTypeParameterName parses a name declared by a type construct, which
// can be any identifier including contextual keywords.
func (p *Parser) parseTypeParameterName() {
	if !isIdentifierKind(p.cur()) {
		p.error(p.expectedDiagnostic("an identifier", p.curRange()))
		return
	}
	m := p.start()
	p.bumpRemap(syntax.TokenIdent)
	m.Complete(p, syntax.KindIdentifierBinding)
}

func (p *Parser) parseTypeParameters() ParsedSyntax {
	if !p.at(syntax.TokenLAngle) {
		return Absent
	}
	defer p.scope(p.typeState())()
	m := p.start()
	p.tsOnly("type parameters", p.curRange())
	p.bump(syntax.TokenLAngle)
	list := p.parseSeparatedList(listRules{
		kind:     syntax.KindTypeParameterList,
		atEnd:    func(p *Parser) bool { return p.at(syntax.TokenRAngle) },
		element:  (*Parser).parseTypeParameter,
		recovery: NewRecovery(syntax.KindBogusType, typeRecovery),
		expected: "a type parameter",
	}, syntax.TokenComma, true)
	if list.Range().Len() == 0 {
		p.errAt("type parameter list cannot be empty", syntax.NewRange(m.Start(), p.curRange().End))
	}
	p.expect(syntax.TokenRAngle)
	return Present(m.Complete(p, syntax.KindTypeParameters))
}

func (p *Parser) parseTypeParameter() ParsedSyntax {
	m := p.start()
	for (p.at(syntax.KwConst) || p.at(syntax.KwIn) || p.at(syntax.KwOut)) && isIdentifierKind(p.nth(1)) {
		p.bumpAny()
	}
	if !isIdentifierKind(p.cur()) {
		if p.lastEnd > m.Start() {
			p.error(p.expectedDiagnostic("a type parameter name", p.curRange()))
			return Present(m.Complete(p, syntax.KindTypeParameter))
		}
		m.Abandon(p)
		return Absent
	}
	p.parseTypeParameterName()
	if p.at(syntax.KwExtends) {
		c := p.start()
		p.bump(syntax.KwExtends)
		p.parseType().OrAddDiagnostic(p, expected("a type"))
		c.Complete(p, syntax.KindTypeConstraint)
	}
	if p.at(syntax.TokenEq) {
		d := p.start()
		p.bump(syntax.TokenEq)
		p.parseType().OrAddDiagnostic(p, expected("a type"))
		d.Complete(p, syntax.KindDefaultTypeClause)
	}
	return Present(m.Complete(p, syntax.KindTypeParameter))
}

func (p *Parser) parseTypeArguments() ParsedSyntax {
	if p.at(syntax.TokenShl) {
		p.relex(lexer.ReLexTypeArgumentLessThan)
	}
	if !p.at(syntax.TokenLAngle) {
		return Absent
	}
	defer p.scope(p.typeState())()
	m := p.start()
	p.bump(syntax.TokenLAngle)
	list := p.parseSeparatedList(listRules{
		kind:     syntax.KindTypeArgumentList,
		atEnd:    func(p *Parser) bool { return p.at(syntax.TokenRAngle) },
		element:  (*Parser).parseType,
		recovery: NewRecovery(syntax.KindBogusType, typeRecovery),
		expected: "a type",
	}, syntax.TokenComma, true)
	if list.Range().Len() == 0 {
		p.errAt("type argument list cannot be empty", syntax.NewRange(m.Start(), p.curRange().End))
	}
	p.expect(syntax.TokenRAngle)
	return Present(m.Complete(p, syntax.KindTypeArguments))
}

// parseTypeList parses a comma separated list of type references, as in
// `implements A, B` and `interface I extends A, B`.
func (p *Parser) parseTypeList(atEnd func(*Parser) bool) CompletedMarker {
	return p.parseSeparatedList(listRules{
		kind:  syntax.KindTypeList,
		atEnd: atEnd,
		element: func(p *Parser) ParsedSyntax {
			if !isIdentifierKind(p.cur()) {
				return Absent
			}
			return p.parseTypeReference()
		},
		recovery: NewRecovery(syntax.KindBogusType, typeRecovery.With(syntax.TokenLCurly)),
		expected: "a type reference",
	}, syntax.TokenComma, false)
}
