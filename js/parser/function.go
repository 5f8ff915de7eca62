package parser

import (
	"github.com/dhamidi/jsfront/js/syntax"
)

type functionKind uint8

const (
	functionNormal functionKind = iota
	functionMethod
	functionConstructor
	functionArrow
)

// declOptions adjusts declaration parsing for `export default`, where the
// name is optional.
type declOptions struct {
	defaultExport bool
}

func (o *declOptions) nameOptional() bool {
	return o != nil && o.defaultExport
}

type paramInfo struct {
	count int
	rest  bool
}

var parameterRecovery = syntax.NewTokenSet(
	syntax.TokenComma, syntax.TokenRParen, syntax.TokenLCurly, syntax.TokenRCurly,
	syntax.TokenSemicolon, syntax.TokenFatArrow,
)

var parameterModifiers = syntax.NewTokenSet(
	syntax.KwPublic, syntax.KwPrivate, syntax.KwProtected, syntax.KwReadonly, syntax.KwOverride,
)

func (p *Parser) parseFunctionDeclaration(opts *declOptions) ParsedSyntax {
	m := p.start()
	async := p.eat(syntax.KwAsync)
	p.bump(syntax.KwFunction)
	generator := p.eat(syntax.TokenStar)
	if p.parseIdentifierBinding().IsAbsent() && !opts.nameOptional() {
		p.error(p.expectedDiagnostic("a name for the function declaration", p.curRange()))
	}
	if p.parseFunctionRest(async, generator, functionNormal) {
		return Present(m.Complete(p, syntax.KindFunctionDeclaration))
	}
	if !p.isTS() {
		p.error(p.expectedDiagnostic("a function body", p.curRange()))
		return Present(m.Complete(p, syntax.KindFunctionDeclaration))
	}
	// An overload signature or an ambient declaration.
	p.semicolon(m.Start())
	if p.has(inAmbient) {
		return Present(m.Complete(p, syntax.KindDeclareFunctionDeclaration))
	}
	return Present(m.Complete(p, syntax.KindFunctionDeclaration))
}

func (p *Parser) parseFunctionExpression() ParsedSyntax {
	m := p.start()
	async := p.eat(syntax.KwAsync)
	p.bump(syntax.KwFunction)
	generator := p.eat(syntax.TokenStar)
	p.within(p.functionState(async, generator), func() {
		p.parseIdentifierBinding()
	})
	if !p.parseFunctionRest(async, generator, functionNormal) {
		p.error(p.expectedDiagnostic("a function body", p.curRange()))
	}
	return Present(m.Complete(p, syntax.KindFunctionExpression))
}

// parseFunctionRest parses type parameters, parameters, return type and body
// of a function or method. It reports whether a body was present.
func (p *Parser) parseFunctionRest(async, generator bool, kind functionKind) bool {
	next := p.functionState(async, generator)
	if kind == functionConstructor {
		next = next.with(inConstructor)
	}
	defer p.scope(next)()
	p.parseTypeParameters()
	p.parseParameters(kind)
	p.parseReturnTypeAnnotation()
	return p.parseFunctionBody().IsPresent()
}

// parseMethodRest parses an object literal method after its name.
func (p *Parser) parseMethodRest(async, generator bool) {
	if !p.parseFunctionRest(async, generator, functionMethod) {
		p.error(p.expectedDiagnostic("a function body", p.curRange()))
	}
}

// parseGetterRest parses the parameters and body of a getter, which takes no
// parameters. It reports whether a body was present.
func (p *Parser) parseGetterRest(bodyOptional bool) bool {
	defer p.scope(p.functionState(false, false))()
	params, info := p.parseParameters(functionMethod)
	if info.count > 0 {
		p.errAt("a getter cannot have parameters", params.Range())
	}
	p.parseReturnTypeAnnotation()
	return p.parseAccessorBody(bodyOptional)
}

// parseSetterRest parses the parameters and body of a setter, which takes
// exactly one parameter.
func (p *Parser) parseSetterRest(bodyOptional bool) bool {
	defer p.scope(p.functionState(false, false))()
	params, info := p.parseParameters(functionMethod)
	switch {
	case info.rest:
		p.errAt("a setter cannot use a rest parameter", params.Range())
	case info.count != 1:
		p.errAt("a setter must have exactly one parameter", params.Range())
	}
	if p.at(syntax.TokenColon) {
		r := p.curRange()
		p.parseReturnTypeAnnotation()
		p.errAt("a setter cannot have a return type annotation", r)
	}
	return p.parseAccessorBody(bodyOptional)
}

func (p *Parser) parseAccessorBody(bodyOptional bool) bool {
	if p.parseFunctionBody().IsPresent() {
		return true
	}
	if !bodyOptional {
		p.error(p.expectedDiagnostic("a function body", p.curRange()))
	}
	return false
}

func (p *Parser) parseFunctionBody() ParsedSyntax {
	if !p.at(syntax.TokenLCurly) {
		return Absent
	}
	m := p.start()
	p.bump(syntax.TokenLCurly)
	p.parseDirectives()
	p.parseStatementList(atRCurly)
	p.expect(syntax.TokenRCurly)
	return Present(m.Complete(p, syntax.KindFunctionBody))
}

// parseParameters parses a parenthesized parameter list. Duplicate names are
// reported for arrows, methods and strict functions.
func (p *Parser) parseParameters(kind functionKind) (ParsedSyntax, paramInfo) {
	var info paramInfo
	if !p.at(syntax.TokenLParen) {
		p.error(p.expectedDiagnostic("'('", p.curRange()))
		return Absent, info
	}
	next := p.state
	next.names = nil
	if kind != functionNormal || p.isStrict() {
		next.names = make(map[string]syntax.TextRange)
	}
	defer p.scope(next)()

	m := p.start()
	p.bump(syntax.TokenLParen)
	list := p.start()
	var pr progress
	for !p.at(syntax.TokenRParen) && !p.at(syntax.EOF) {
		pr.assert(p)
		if p.parseParameter(kind, &info).IsAbsent() {
			_, err := Absent.OrRecover(p, NewRecovery(syntax.KindBogusParameter, parameterRecovery), expected("a parameter"))
			if err != nil && !p.at(syntax.TokenComma) {
				break
			}
		}
		if p.at(syntax.TokenRParen) {
			break
		}
		if !p.eat(syntax.TokenComma) {
			p.error(p.expectedDiagnostic("','", p.curRange()))
			break
		}
	}
	list.Complete(p, syntax.KindParameterList)
	p.expect(syntax.TokenRParen)
	return Present(m.Complete(p, syntax.KindParameters)), info
}

func (p *Parser) atParameterModifier() bool {
	if !p.atSet(parameterModifiers) {
		return false
	}
	next := p.nth(1)
	return isIdentifierKind(next) || next == syntax.TokenLBrack || next == syntax.TokenLCurly
}

func (p *Parser) parseParameter(kind functionKind, info *paramInfo) ParsedSyntax {
	m := p.start()
	p.parseDecorators()

	if p.atParameterModifier() {
		mods := p.start()
		for p.atParameterModifier() {
			p.tsOnly("parameter properties", p.curRange())
			p.bumpAny()
		}
		modifiers := mods.Complete(p, syntax.KindModifierList)
		if kind != functionConstructor {
			p.errAt("parameter properties are only allowed in constructor implementations", modifiers.Range())
		}
		param := p.start()
		if !p.parseFormalParameterParts() {
			p.error(p.expectedDiagnostic("a parameter name", p.curRange()))
		}
		param.Complete(p, syntax.KindFormalParameter)
		info.count++
		return Present(m.Complete(p, syntax.KindPropertyParameter))
	}

	switch {
	case p.at(syntax.TokenDot3):
		p.bump(syntax.TokenDot3)
		p.parseBindingPattern().OrAddDiagnostic(p, expected("an identifier or a binding pattern"))
		if p.at(syntax.TokenQuestion) {
			p.errAt("a rest parameter cannot be optional", p.curRange())
			p.bump(syntax.TokenQuestion)
		}
		p.parseTypeAnnotation()
		if p.at(syntax.TokenEq) {
			r := p.curRange()
			p.parseInitializerClause()
			p.errAt("a rest parameter cannot have an initializer", r)
		}
		rest := m.Complete(p, syntax.KindRestParameter)
		info.count++
		info.rest = true
		if p.at(syntax.TokenComma) {
			p.errAt("rest parameter must be the last parameter", rest.Range())
		}
		return Present(rest)
	case p.at(syntax.KwThis) && p.isTS():
		p.bump(syntax.KwThis)
		p.parseTypeAnnotation()
		return Present(m.Complete(p, syntax.KindThisParameter))
	}

	if !p.parseFormalParameterParts() {
		if p.lastEnd > m.Start() {
			// Decorators without a parameter.
			p.error(p.expectedDiagnostic("a parameter", p.curRange()))
			return Present(m.Complete(p, syntax.KindBogusParameter))
		}
		m.Abandon(p)
		return Absent
	}
	info.count++
	return Present(m.Complete(p, syntax.KindFormalParameter))
}

// parseFormalParameterParts parses "pattern [?] [: T] [= default]" into the
// enclosing node. It reports false when there is no pattern.
func (p *Parser) parseFormalParameterParts() bool {
	if p.parseBindingPattern().IsAbsent() {
		return false
	}
	if p.at(syntax.TokenQuestion) {
		p.tsOnly("optional parameters", p.curRange())
		p.bump(syntax.TokenQuestion)
	}
	p.parseTypeAnnotation()
	p.parseInitializerClause()
	return true
}

// parseDecorators parses `@expr` decorators before classes, members and
// parameters.
func (p *Parser) parseDecorators() ParsedSyntax {
	if !p.at(syntax.TokenAt) {
		return Absent
	}
	list := p.start()
	for p.at(syntax.TokenAt) {
		d := p.start()
		p.bump(syntax.TokenAt)
		p.parseLeftHandSideExpression().OrAddDiagnostic(p, expected("a decorator expression"))
		d.Complete(p, syntax.KindDecorator)
	}
	return Present(list.Complete(p, syntax.KindDecoratorList))
}

// tryParseArrowFunction parses an arrow function when one starts at the
// current token. Parenthesized heads are parsed speculatively.
func (p *Parser) tryParseArrowFunction() ParsedSyntax {
	switch {
	case p.at(syntax.KwAsync) && isIdentifierKind(p.nth(1)) && p.nthAt(2, syntax.TokenFatArrow) &&
		!p.hasNthPrecedingLineBreak(1) && !p.hasNthPrecedingLineBreak(2):
		m := p.start()
		p.bump(syntax.KwAsync)
		p.within(p.functionState(true, false), func() {
			p.parseIdentifierBinding()
		})
		return p.parseArrowBody(m, true)
	case p.atIdentifier() && p.nthAt(1, syntax.TokenFatArrow) && !p.hasNthPrecedingLineBreak(1):
		m := p.start()
		p.parseIdentifierBinding()
		return p.parseArrowBody(m, false)
	case p.at(syntax.TokenLParen):
		return p.tryParseParenthesizedArrow(false)
	case p.at(syntax.KwAsync) && (p.nthAt(1, syntax.TokenLParen) || (p.isTS() && p.nthAt(1, syntax.TokenLAngle))) && !p.hasNthPrecedingLineBreak(1):
		return p.tryParseParenthesizedArrow(true)
	case p.at(syntax.TokenLAngle) && p.isTS() && (!p.isJSX() || p.nthAt(2, syntax.TokenComma) || p.nthAt(2, syntax.KwExtends)):
		return p.tryParseParenthesizedArrow(false)
	}
	return Absent
}

func (p *Parser) tryParseParenthesizedArrow(async bool) ParsedSyntax {
	pos := p.tokens.Position()
	if p.notArrow[pos] {
		return Absent
	}
	cp := p.checkpoint()
	m := p.start()
	if async {
		p.bump(syntax.KwAsync)
	}
	p.within(p.functionState(async, false), func() {
		p.parseTypeParameters()
		p.parseParameters(functionArrow)
		p.parseReturnTypeAnnotation()
	})
	if len(p.diagnostics) > cp.diagnostics || !p.at(syntax.TokenFatArrow) || p.hasPrecedingLineBreak() {
		p.rewind(cp)
		p.notArrow[pos] = true
		return Absent
	}
	return p.parseArrowBody(m, async)
}

func (p *Parser) parseArrowBody(m Marker, async bool) ParsedSyntax {
	p.expect(syntax.TokenFatArrow)
	next := p.functionState(async, false)
	if p.has(noIn) {
		next = next.with(noIn)
	}
	p.within(next, func() {
		if p.at(syntax.TokenLCurly) {
			p.within(p.state.without(noIn), func() {
				p.parseFunctionBody()
			})
			return
		}
		p.parseAssignmentExpressionOrHigher().OrAddDiagnostic(p, expected("an expression or a block"))
	})
	return Present(m.Complete(p, syntax.KindArrowFunctionExpression))
}
