package parser

import (
	"fmt"

	"github.com/dhamidi/jsfront/js/diagnostics"
	"github.com/dhamidi/jsfront/js/lexer"
	"github.com/dhamidi/jsfront/js/syntax"
)

var assignmentOperators = syntax.NewTokenSet(
	syntax.TokenEq, syntax.TokenPlusEq, syntax.TokenMinusEq, syntax.TokenStarEq,
	syntax.TokenSlashEq, syntax.TokenPercentEq, syntax.TokenStar2Eq,
	syntax.TokenShlEq, syntax.TokenShrEq, syntax.TokenUShrEq,
	syntax.TokenAmpEq, syntax.TokenPipeEq, syntax.TokenCaretEq,
	syntax.TokenAmp2Eq, syntax.TokenPipe2Eq, syntax.TokenQuestion2Eq,
)

// expressionRecovery is where a bogus expression inside brackets stops.
var expressionRecovery = syntax.NewTokenSet(
	syntax.TokenComma, syntax.TokenRParen, syntax.TokenRBrack, syntax.TokenRCurly, syntax.TokenSemicolon,
)

func binaryPrecedence(k syntax.Kind) int {
	switch k {
	case syntax.TokenQuestion2:
		return 1
	case syntax.TokenPipe2:
		return 2
	case syntax.TokenAmp2:
		return 3
	case syntax.TokenPipe:
		return 4
	case syntax.TokenCaret:
		return 5
	case syntax.TokenAmp:
		return 6
	case syntax.TokenEq2, syntax.TokenNeq, syntax.TokenEq3, syntax.TokenNeq2:
		return 7
	case syntax.TokenLAngle, syntax.TokenRAngle, syntax.TokenLtEq, syntax.TokenGtEq,
		syntax.KwInstanceof, syntax.KwIn, syntax.KwAs, syntax.KwSatisfies:
		return 8
	case syntax.TokenShl, syntax.TokenShr, syntax.TokenUShr:
		return 9
	case syntax.TokenPlus, syntax.TokenMinus:
		return 10
	case syntax.TokenStar, syntax.TokenSlash, syntax.TokenPercent:
		return 11
	case syntax.TokenStar2:
		return 12
	}
	return 0
}

// isIdentifierKind reports whether a token of kind k can be used as an
// identifier reference or binding. Strict-mode and context restrictions are
// checked separately.
func isIdentifierKind(k syntax.Kind) bool {
	return k == syntax.TokenIdent || (k.IsKeyword() && !k.IsReservedKeyword())
}

// isNameKind reports whether k can be a property name after '.'.
func isNameKind(k syntax.Kind) bool {
	return k == syntax.TokenIdent || k.IsKeyword()
}

func isStartOfExpression(k syntax.Kind) bool {
	switch k {
	case syntax.TokenNumber, syntax.TokenBigInt, syntax.TokenString, syntax.TokenBacktick,
		syntax.TokenLParen, syntax.TokenLBrack, syntax.TokenLCurly,
		syntax.TokenBang, syntax.TokenTilde, syntax.TokenPlus, syntax.TokenMinus,
		syntax.TokenPlus2, syntax.TokenMinus2, syntax.TokenSlash, syntax.TokenSlashEq,
		syntax.TokenLAngle, syntax.TokenHash, syntax.TokenAt,
		syntax.KwThis, syntax.KwSuper, syntax.KwNew, syntax.KwFunction, syntax.KwClass,
		syntax.KwTypeof, syntax.KwVoid, syntax.KwDelete, syntax.KwTrue, syntax.KwFalse,
		syntax.KwNull, syntax.KwImport:
		return true
	}
	return isIdentifierKind(k)
}

// atIdentifier also accepts a reserved word spelled with escapes, like
// `\u{69}f`, so that checkIdentifier reports it once and parsing continues
// as if it were a name.
func (p *Parser) atIdentifier() bool {
	return isIdentifierKind(p.cur()) || p.atEscapedReservedWord()
}

func (p *Parser) atEscapedReservedWord() bool {
	return p.cur().IsReservedKeyword() && p.tokens.CurrentFlags().Has(lexer.FlagUnicodeEscape)
}

// checkIdentifier reports identifiers that are reserved in the current
// context. binding is set for names being declared.
func (p *Parser) checkIdentifier(binding bool) {
	kind, text, r := p.cur(), p.curText(), p.curRange()
	switch {
	case p.atEscapedReservedWord():
		p.error(diagnostics.Error(p.file, "keywords cannot contain escape sequences", r).
			WithHint(fmt.Sprintf("`%s` is a reserved word and cannot be used as an identifier", kind.Text())))
	case kind == syntax.KwYield && p.has(inGenerator):
		p.errAt("`yield` cannot be used as an identifier in a generator", r)
	case kind == syntax.KwAwait && (p.has(inAsync) || p.isModule()):
		p.errAt("`await` cannot be used as an identifier in an async function or a module", r)
	case kind.IsStrictReservedKeyword() && p.isStrict():
		p.error(diagnostics.Error(p.file, fmt.Sprintf("Illegal use of reserved keyword `%s` as an identifier in strict mode", text), r).
			WithFooter(p.state.strict.String()))
	case binding && p.isStrict() && (text == "eval" || text == "arguments"):
		p.error(diagnostics.Error(p.file, fmt.Sprintf("Illegal use of `%s` as an identifier in strict mode", text), r).
			WithFooter(p.state.strict.String()))
	}
}

func (p *Parser) parseReferenceIdentifier() ParsedSyntax {
	if !p.atIdentifier() {
		return Absent
	}
	m := p.start()
	p.checkIdentifier(false)
	p.bumpRemap(syntax.TokenIdent)
	return Present(m.Complete(p, syntax.KindReferenceIdentifier))
}

func (p *Parser) parseIdentifierExpression() ParsedSyntax {
	if !p.atIdentifier() {
		return Absent
	}
	m := p.start()
	p.parseReferenceIdentifier()
	return Present(m.Complete(p, syntax.KindIdentifierExpression))
}

// parseName parses an IdentifierName, where reserved words are allowed.
func (p *Parser) parseName() ParsedSyntax {
	if !isNameKind(p.cur()) {
		return Absent
	}
	m := p.start()
	p.bumpRemap(syntax.TokenIdent)
	return Present(m.Complete(p, syntax.KindName))
}

// parsePrivateName parses `#name`. The '#' and the name must be adjacent.
func (p *Parser) parsePrivateName(kind syntax.Kind) ParsedSyntax {
	if !p.at(syntax.TokenHash) {
		return Absent
	}
	m := p.start()
	hash := p.curRange()
	p.bump(syntax.TokenHash)
	if isNameKind(p.cur()) {
		if p.curRange().Start != hash.End {
			p.errAt("unexpected space or comment between `#` and the identifier", syntax.NewRange(hash.End, p.curRange().Start))
		}
		p.bumpRemap(syntax.TokenIdent)
	} else {
		p.error(p.expectedDiagnostic("an identifier", p.curRange()))
	}
	return Present(m.Complete(p, kind))
}

func (p *Parser) parseExpression() ParsedSyntax {
	first := p.parseAssignmentExpressionOrHigher()
	if first.IsAbsent() || !p.at(syntax.TokenComma) {
		return first
	}
	left := first.marker
	for p.at(syntax.TokenComma) {
		m := left.Precede(p)
		p.bump(syntax.TokenComma)
		p.parseAssignmentExpressionOrHigher().OrAddDiagnostic(p, expected("an expression"))
		left = m.Complete(p, syntax.KindSequenceExpression)
	}
	return Present(left)
}

func (p *Parser) parseAssignmentExpressionOrHigher() ParsedSyntax {
	if p.state.names != nil {
		next := p.state
		next.names = nil
		defer p.scope(next)()
	}
	if p.at(syntax.KwYield) && p.has(inGenerator) {
		return p.parseYieldExpression()
	}
	if arrow := p.tryParseArrowFunction(); arrow.IsPresent() {
		return arrow
	}
	cp := p.checkpoint()
	target := p.parseConditionalExpression()
	if target.IsAbsent() || !p.atSet(assignmentOperators) {
		return target
	}
	lhs := p.toAssignmentTarget(target.marker, cp, p.at(syntax.TokenEq))
	if !p.atSet(assignmentOperators) {
		// Re-parsing the target as a pattern stopped early; the error is
		// already reported.
		return Present(lhs)
	}
	m := lhs.Precede(p)
	p.bumpAny()
	p.parseAssignmentExpressionOrHigher().OrAddDiagnostic(p, expected("an expression"))
	return Present(m.Complete(p, syntax.KindAssignmentExpression))
}

func (p *Parser) parseYieldExpression() ParsedSyntax {
	m := p.start()
	p.bump(syntax.KwYield)
	if p.at(syntax.TokenStar) || (!p.hasPrecedingLineBreak() && isStartOfExpression(p.cur())) {
		arg := p.start()
		p.eat(syntax.TokenStar)
		p.parseAssignmentExpressionOrHigher().OrAddDiagnostic(p, expected("an expression"))
		arg.Complete(p, syntax.KindYieldArgument)
	}
	return Present(m.Complete(p, syntax.KindYieldExpression))
}

func (p *Parser) parseConditionalExpression() ParsedSyntax {
	test := p.parseBinaryExpressionOrHigher(0)
	if test.IsAbsent() || !p.at(syntax.TokenQuestion) {
		return test
	}
	m := test.marker.Precede(p)
	p.bump(syntax.TokenQuestion)
	p.within(p.state.without(noIn), func() {
		p.parseAssignmentExpressionOrHigher().OrAddDiagnostic(p, expected("an expression"))
	})
	p.expect(syntax.TokenColon)
	p.parseAssignmentExpressionOrHigher().OrAddDiagnostic(p, expected("an expression"))
	return Present(m.Complete(p, syntax.KindConditionalExpression))
}

func (p *Parser) parseBinaryExpressionOrHigher(minPrec int) ParsedSyntax {
	left := p.parseUnaryExpression()
	if left.IsAbsent() {
		return left
	}
	return Present(p.parseBinaryTail(left.marker, minPrec))
}

func (p *Parser) parseBinaryTail(left CompletedMarker, minPrec int) CompletedMarker {
	for {
		if p.at(syntax.TokenRAngle) {
			p.relex(lexer.ReLexBinaryOperator)
		}
		op := p.cur()
		prec := binaryPrecedence(op)
		if prec == 0 || prec <= minPrec {
			return left
		}
		if op == syntax.KwIn && p.has(noIn) {
			return left
		}
		if op == syntax.KwAs || op == syntax.KwSatisfies {
			if p.hasPrecedingLineBreak() {
				return left
			}
			left = p.parseTypeAssertionSuffix(left)
			continue
		}
		if op == syntax.TokenStar2 {
			switch left.Kind() {
			case syntax.KindUnaryExpression, syntax.KindAwaitExpression, syntax.KindTypeAssertionExpression:
				p.error(diagnostics.Error(p.file, "unparenthesized unary expression can't appear on the left-hand side of '**'", left.Range()).
					WithPrimaryLabel("the unary expression is here").
					WithHint("wrap the unary expression in parentheses"))
			}
		}
		m := left.Precede(p)
		p.bumpAny()
		next := prec
		if op == syntax.TokenStar2 {
			next = prec - 1
		}
		p.parseBinaryExpressionOrHigher(next).OrAddDiagnostic(p, expected("an expression"))

		kind := syntax.KindBinaryExpression
		switch op {
		case syntax.TokenQuestion2, syntax.TokenPipe2, syntax.TokenAmp2:
			kind = syntax.KindLogicalExpression
		case syntax.KwIn:
			kind = syntax.KindInExpression
		case syntax.KwInstanceof:
			kind = syntax.KindInstanceofExpression
		}
		left = m.Complete(p, kind)
	}
}

// parseTypeAssertionSuffix parses `expr as T` and `expr satisfies T`.
func (p *Parser) parseTypeAssertionSuffix(left CompletedMarker) CompletedMarker {
	m := left.Precede(p)
	kind := syntax.KindAsExpression
	what := "`as` expressions"
	if p.at(syntax.KwSatisfies) {
		kind, what = syntax.KindSatisfiesExpression, "`satisfies` expressions"
	}
	p.tsOnly(what, p.curRange())
	p.bumpAny()
	if kind == syntax.KindAsExpression && p.at(syntax.KwConst) {
		ref := p.start()
		p.bumpRemap(syntax.TokenIdent)
		ref.Complete(p, syntax.KindReferenceType)
	} else {
		p.parseType().OrAddDiagnostic(p, expected("a type"))
	}
	return m.Complete(p, kind)
}

func (p *Parser) parseUnaryExpression() ParsedSyntax {
	switch p.cur() {
	case syntax.KwDelete, syntax.KwVoid, syntax.KwTypeof,
		syntax.TokenPlus, syntax.TokenMinus, syntax.TokenTilde, syntax.TokenBang:
		m := p.start()
		op := p.cur()
		opRange := p.curRange()
		p.bumpAny()
		arg := p.parseUnaryExpression()
		if arg.IsAbsent() {
			p.error(p.expectedDiagnostic("an expression", p.curRange()))
		} else if op == syntax.KwDelete && p.isStrict() && arg.Kind() == syntax.KindIdentifierExpression {
			p.error(diagnostics.Error(p.file, "the target for a delete operator cannot be a single identifier", arg.Range()).
				WithSecondary(opRange, "the delete operator is here").
				WithFooter(p.state.strict.String()))
		}
		return Present(m.Complete(p, syntax.KindUnaryExpression))
	case syntax.TokenPlus2, syntax.TokenMinus2:
		m := p.start()
		p.bumpAny()
		cp := p.checkpoint()
		arg := p.parseUnaryExpression()
		if arg.IsAbsent() {
			p.error(p.expectedDiagnostic("an expression", p.curRange()))
		} else {
			p.toAssignmentTarget(arg.marker, cp, false)
		}
		return Present(m.Complete(p, syntax.KindPreUpdateExpression))
	case syntax.KwAwait:
		if p.has(inAsync) || p.isModule() {
			return p.parseAwaitExpression()
		}
	case syntax.TokenLAngle:
		if p.isTS() && !p.isJSX() {
			return p.parseTypeAssertionExpression()
		}
	}
	return p.parsePostfixExpression()
}

func (p *Parser) parseAwaitExpression() ParsedSyntax {
	m := p.start()
	r := p.curRange()
	if !p.has(inAsync) && p.has(inFunction) {
		p.errAt("`await` is only allowed within async functions and at the top levels of modules", r)
	}
	p.bump(syntax.KwAwait)
	p.parseUnaryExpression().OrAddDiagnostic(p, expected("an expression"))
	return Present(m.Complete(p, syntax.KindAwaitExpression))
}

// parseTypeAssertionExpression parses the angle-bracket assertion `<T>expr`,
// which only exists in .ts files.
func (p *Parser) parseTypeAssertionExpression() ParsedSyntax {
	m := p.start()
	p.bump(syntax.TokenLAngle)
	p.within(p.state.with(inTypeContext), func() {
		p.parseType().OrAddDiagnostic(p, expected("a type"))
	})
	p.expect(syntax.TokenRAngle)
	p.parseUnaryExpression().OrAddDiagnostic(p, expected("an expression"))
	return Present(m.Complete(p, syntax.KindTypeAssertionExpression))
}

func (p *Parser) parsePostfixExpression() ParsedSyntax {
	cp := p.checkpoint()
	lhs := p.parseLeftHandSideExpression()
	if lhs.IsAbsent() {
		return lhs
	}
	if (p.at(syntax.TokenPlus2) || p.at(syntax.TokenMinus2)) && !p.hasPrecedingLineBreak() {
		target := p.toAssignmentTarget(lhs.marker, cp, false)
		if !p.at(syntax.TokenPlus2) && !p.at(syntax.TokenMinus2) {
			return Present(target)
		}
		m := target.Precede(p)
		p.bumpAny()
		return Present(m.Complete(p, syntax.KindPostUpdateExpression))
	}
	return lhs
}

func (p *Parser) parseLeftHandSideExpression() ParsedSyntax {
	var lhs ParsedSyntax
	switch p.cur() {
	case syntax.KwNew:
		lhs = p.parseNewExpression()
	case syntax.KwSuper:
		lhs = p.parseSuperExpression()
	case syntax.KwImport:
		lhs = p.parseImportExpression()
	default:
		lhs = p.parsePrimaryExpression()
	}
	if lhs.IsAbsent() {
		return lhs
	}
	return Present(p.parseMemberSuffixes(lhs.marker, false))
}

// parseMemberSuffixes parses member accesses, calls, tagged templates and
// the TypeScript postfix forms after lhs. noCall stops at the first argument
// list, for the callee of `new`.
func (p *Parser) parseMemberSuffixes(lhs CompletedMarker, noCall bool) CompletedMarker {
	optionalChain := false
	for {
		switch p.cur() {
		case syntax.TokenDot:
			m := lhs.Precede(p)
			p.bump(syntax.TokenDot)
			p.parseMemberName()
			lhs = m.Complete(p, syntax.KindStaticMemberExpression)
		case syntax.TokenQuestionDot:
			if noCall {
				p.errAt("invalid optional chain from new expression", p.curRange())
			}
			optionalChain = true
			m := lhs.Precede(p)
			p.bump(syntax.TokenQuestionDot)
			switch {
			case p.at(syntax.TokenLBrack):
				p.parseComputedMemberTail()
				lhs = m.Complete(p, syntax.KindComputedMemberExpression)
			case p.at(syntax.TokenLParen):
				p.parseCallArguments()
				lhs = m.Complete(p, syntax.KindCallExpression)
			case p.at(syntax.TokenLAngle) && p.isTS():
				p.parseTypeArguments()
				p.parseCallArguments()
				lhs = m.Complete(p, syntax.KindCallExpression)
			default:
				p.parseMemberName()
				lhs = m.Complete(p, syntax.KindStaticMemberExpression)
			}
		case syntax.TokenLBrack:
			m := lhs.Precede(p)
			p.parseComputedMemberTail()
			lhs = m.Complete(p, syntax.KindComputedMemberExpression)
		case syntax.TokenLParen:
			if noCall {
				return lhs
			}
			m := lhs.Precede(p)
			p.parseCallArguments()
			lhs = m.Complete(p, syntax.KindCallExpression)
		case syntax.TokenBacktick:
			if optionalChain {
				p.errTaggedTemplateInChain()
			}
			m := lhs.Precede(p)
			lhs = p.parseTemplateLiteral(m, true)
		case syntax.TokenBang:
			if !p.isTS() || p.hasPrecedingLineBreak() {
				return lhs
			}
			m := lhs.Precede(p)
			p.bump(syntax.TokenBang)
			lhs = m.Complete(p, syntax.KindNonNullAssertionExpression)
		case syntax.TokenLAngle, syntax.TokenShl:
			if !p.isTS() || noCall || !p.tryParseTypeArgumentsInExpression() {
				return lhs
			}
			switch {
			case p.at(syntax.TokenLParen):
				m := lhs.Precede(p)
				p.parseCallArguments()
				lhs = m.Complete(p, syntax.KindCallExpression)
			case p.at(syntax.TokenBacktick):
				if optionalChain {
					p.errTaggedTemplateInChain()
				}
				m := lhs.Precede(p)
				lhs = p.parseTemplateLiteral(m, true)
			default:
				m := lhs.Precede(p)
				lhs = m.Complete(p, syntax.KindInstantiationExpression)
			}
		default:
			return lhs
		}
	}
}

// parseMemberName parses the name after '.' or '?.'.
func (p *Parser) parseMemberName() {
	if p.at(syntax.TokenHash) {
		p.parsePrivateName(syntax.KindPrivateName)
		return
	}
	p.parseName().OrAddDiagnostic(p, expected("an identifier"))
}

func (p *Parser) parseComputedMemberTail() {
	defer p.scope(p.state.without(noIn))()
	p.bump(syntax.TokenLBrack)
	p.parseExpression().OrAddDiagnostic(p, expected("an expression"))
	p.expect(syntax.TokenRBrack)
}

// tryParseTypeArgumentsInExpression speculatively parses `<T>` after an
// expression. It succeeds only when the type arguments parse cleanly and the
// next token cannot continue a comparison.
func (p *Parser) tryParseTypeArgumentsInExpression() bool {
	cp := p.checkpoint()
	if p.at(syntax.TokenShl) {
		p.relex(lexer.ReLexTypeArgumentLessThan)
	}
	p.parseTypeArguments()
	if len(p.diagnostics) > cp.diagnostics || !p.canFollowTypeArguments() {
		p.rewind(cp)
		return false
	}
	return true
}

func (p *Parser) errTaggedTemplateInChain() {
	p.error(diagnostics.Error(p.file, "tagged template expressions are not permitted in an optional chain", p.curRange()).
		WithHint("wrap the optional chain in parentheses"))
}

func (p *Parser) canFollowTypeArguments() bool {
	switch p.cur() {
	case syntax.TokenLParen, syntax.TokenBacktick:
		return true
	case syntax.TokenLAngle, syntax.TokenRAngle, syntax.TokenPlus, syntax.TokenMinus:
		return false
	}
	return p.hasPrecedingLineBreak() || !isStartOfExpression(p.cur())
}

func (p *Parser) parseCallArguments() {
	defer p.scope(p.state.without(noIn))()
	m := p.start()
	p.expect(syntax.TokenLParen)
	p.parseSeparatedList(listRules{
		kind: syntax.KindArgumentList,
		atEnd: func(p *Parser) bool {
			return p.at(syntax.TokenRParen)
		},
		element:  (*Parser).parseSpreadOrAssignmentExpression,
		recovery: NewRecovery(syntax.KindBogusExpression, expressionRecovery),
		expected: "an argument",
	}, syntax.TokenComma, true)
	p.expect(syntax.TokenRParen)
	m.Complete(p, syntax.KindCallArguments)
}

func (p *Parser) parseSpreadOrAssignmentExpression() ParsedSyntax {
	if !p.at(syntax.TokenDot3) {
		return p.parseAssignmentExpressionOrHigher()
	}
	m := p.start()
	p.bump(syntax.TokenDot3)
	p.parseAssignmentExpressionOrHigher().OrAddDiagnostic(p, expected("an expression"))
	return Present(m.Complete(p, syntax.KindSpread))
}

func (p *Parser) parseNewExpression() ParsedSyntax {
	m := p.start()
	newRange := p.curRange()
	p.bump(syntax.KwNew)
	if p.at(syntax.TokenDot) {
		p.bump(syntax.TokenDot)
		if p.curText() == "target" {
			p.bumpRemap(syntax.TokenIdent)
		} else {
			p.error(p.expectedDiagnostic("`target`", p.curRange()))
		}
		if !p.has(inFunction) && !p.has(inClassFieldInitializer) && !p.has(inStaticBlock) {
			p.errAt("`new.target` can only be used in functions and class bodies", syntax.NewRange(newRange.Start, p.lastEnd))
		}
		return Present(m.Complete(p, syntax.KindNewTargetExpression))
	}

	var callee ParsedSyntax
	switch p.cur() {
	case syntax.KwNew:
		callee = p.parseNewExpression()
	case syntax.KwSuper:
		callee = p.parseSuperExpression()
	case syntax.KwImport:
		callee = p.parseImportExpression()
		if callee.Kind() == syntax.KindImportCallExpression {
			p.errAt("`import()` cannot be used with `new`", callee.Range())
		}
	default:
		callee = p.parsePrimaryExpression()
	}
	if callee.IsAbsent() {
		p.error(p.expectedDiagnostic("an expression", p.curRange()))
	} else {
		p.parseMemberSuffixes(callee.marker, true)
	}
	if p.isTS() && p.at(syntax.TokenLAngle) {
		p.parseTypeArguments()
	}
	if p.at(syntax.TokenLParen) {
		p.parseCallArguments()
	}
	return Present(m.Complete(p, syntax.KindNewExpression))
}

func (p *Parser) parseSuperExpression() ParsedSyntax {
	m := p.start()
	p.bump(syntax.KwSuper)
	cm := m.Complete(p, syntax.KindSuperExpression)
	switch p.cur() {
	case syntax.TokenLParen, syntax.TokenDot, syntax.TokenLBrack:
	case syntax.TokenQuestionDot:
		p.errAt("super doesn't support optional chaining as super can never be null", p.curRange())
	default:
		p.error(diagnostics.Error(p.file, "`super` must be followed by an argument list or member access", cm.Range()))
	}
	return Present(cm)
}

// parseImportExpression parses `import(...)` and `import.meta`.
func (p *Parser) parseImportExpression() ParsedSyntax {
	m := p.start()
	p.bump(syntax.KwImport)
	if p.at(syntax.TokenDot) {
		p.bump(syntax.TokenDot)
		if p.curText() == "meta" {
			p.bumpRemap(syntax.TokenIdent)
		} else {
			p.error(p.expectedDiagnostic("`meta`", p.curRange()))
		}
		cm := m.Complete(p, syntax.KindImportMetaExpression)
		if !p.isModule() {
			p.errAt("`import.meta` is only allowed in modules", cm.Range())
		}
		return Present(cm)
	}
	if !p.at(syntax.TokenLParen) {
		p.error(p.expectedDiagnostic("'(' or '.' after `import`", p.curRange()))
		return Present(m.Complete(p, syntax.KindImportCallExpression))
	}
	p.parseCallArguments()
	return Present(m.Complete(p, syntax.KindImportCallExpression))
}

func (p *Parser) parsePrimaryExpression() ParsedSyntax {
	switch p.cur() {
	case syntax.KwThis:
		return p.parseSingleToken(syntax.KindThisExpression)
	case syntax.TokenNumber:
		p.checkLegacyOctal()
		return p.parseSingleToken(syntax.KindNumberLiteralExpression)
	case syntax.TokenBigInt:
		return p.parseSingleToken(syntax.KindBigIntLiteralExpression)
	case syntax.TokenString:
		if p.isStrict() && p.tokens.CurrentFlags().Has(lexer.FlagOctalEscape) {
			p.error(diagnostics.Error(p.file, "octal escape sequences are not allowed in strict mode", p.curRange()).
				WithFooter(p.state.strict.String()))
		}
		return p.parseSingleToken(syntax.KindStringLiteralExpression)
	case syntax.KwTrue, syntax.KwFalse:
		return p.parseSingleToken(syntax.KindBooleanLiteralExpression)
	case syntax.KwNull:
		return p.parseSingleToken(syntax.KindNullLiteralExpression)
	case syntax.TokenSlash, syntax.TokenSlashEq:
		if p.relex(lexer.ReLexRegex) == syntax.TokenRegex {
			return p.parseSingleToken(syntax.KindRegexLiteralExpression)
		}
	case syntax.TokenLParen:
		return p.parseParenthesizedExpression()
	case syntax.TokenLBrack:
		return p.parseArrayExpression()
	case syntax.TokenLCurly:
		return p.parseObjectExpression()
	case syntax.KwFunction:
		return p.parseFunctionExpression()
	case syntax.KwAsync:
		if p.nthAt(1, syntax.KwFunction) && !p.hasNthPrecedingLineBreak(1) {
			return p.parseFunctionExpression()
		}
	case syntax.KwClass, syntax.TokenAt:
		return p.parseClassExpression()
	case syntax.TokenBacktick:
		m := p.start()
		return Present(p.parseTemplateLiteral(m, false))
	case syntax.TokenLAngle:
		if p.isJSX() || !p.isTS() {
			return p.parseJsxTagExpression()
		}
	case syntax.TokenHash:
		if p.nthAt(2, syntax.KwIn) {
			return p.parsePrivateName(syntax.KindPrivateName)
		}
	}
	return p.parseIdentifierExpression()
}

func (p *Parser) parseSingleToken(kind syntax.Kind) ParsedSyntax {
	m := p.start()
	p.bumpAny()
	return Present(m.Complete(p, kind))
}

// checkLegacyOctal reports number literals with a leading zero in strict
// mode.
func (p *Parser) checkLegacyOctal() {
	text := p.curText()
	if !p.isStrict() || len(text) < 2 || text[0] != '0' || text[1] < '0' || text[1] > '9' {
		return
	}
	msg := "octal literals are not allowed in strict mode"
	for i := 1; i < len(text); i++ {
		if text[i] == '8' || text[i] == '9' {
			msg = "decimals with leading zeros are not allowed in strict mode"
			break
		}
	}
	p.error(diagnostics.Error(p.file, msg, p.curRange()).
		WithHint("use the `0o` prefix for octal literals").
		WithFooter(p.state.strict.String()))
}

func (p *Parser) parseParenthesizedExpression() ParsedSyntax {
	defer p.scope(p.state.without(noIn))()
	m := p.start()
	p.bump(syntax.TokenLParen)
	p.parseExpression().OrAddDiagnostic(p, expected("an expression"))
	p.expect(syntax.TokenRParen)
	return Present(m.Complete(p, syntax.KindParenthesizedExpression))
}

func (p *Parser) parseArrayExpression() ParsedSyntax {
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
		elem := p.parseSpreadOrAssignmentExpression()
		if elem.IsAbsent() {
			_, err := Absent.OrRecover(p, NewRecovery(syntax.KindBogusExpression, expressionRecovery), expected("an expression"))
			if err != nil && !p.at(syntax.TokenComma) {
				break
			}
		}
		if p.at(syntax.TokenRBrack) {
			break
		}
		if !p.eat(syntax.TokenComma) {
			p.error(p.expectedDiagnostic("','", p.curRange()))
			if !isStartOfExpression(p.cur()) && !p.at(syntax.TokenDot3) {
				break
			}
		}
	}
	list.Complete(p, syntax.KindArrayElementList)
	p.expect(syntax.TokenRBrack)
	return Present(m.Complete(p, syntax.KindArrayExpression))
}

// parseTemplateLiteral parses a template literal into m, which may already
// contain a tag.
func (p *Parser) parseTemplateLiteral(m Marker, tagged bool) CompletedMarker {
	defer p.scope(p.state.without(noIn))()
	ctx := lexer.TemplateContext(tagged)
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
			p.parseExpression().OrAddDiagnostic(p, expected("an expression"))
			if !p.at(syntax.TokenRCurly) {
				p.error(p.expectedDiagnostic("'}'", p.curRange()))
				if !p.at(syntax.EOF) {
					bogus := p.start()
					for !p.at(syntax.TokenRCurly) && !p.at(syntax.EOF) {
						p.bumpAny()
					}
					bogus.Complete(p, syntax.KindBogus)
				}
			}
			if p.at(syntax.TokenRCurly) {
				p.bumpWith(syntax.TokenRCurly, ctx)
			}
			e.Complete(p, syntax.KindTemplateElement)
		case syntax.TokenBacktick:
			list.Complete(p, syntax.KindTemplateElementList)
			p.bump(syntax.TokenBacktick)
			return m.Complete(p, syntax.KindTemplateExpression)
		default:
			p.error(diagnostics.Error(p.file, "unterminated template literal", p.curRange()).
				WithSecondary(start, "the template literal starts here"))
			list.Complete(p, syntax.KindTemplateElementList)
			return m.Complete(p, syntax.KindTemplateExpression)
		}
	}
}
