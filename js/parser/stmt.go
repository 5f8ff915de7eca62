package parser

import (
	"fmt"

	"github.com/dhamidi/jsfront/js/diagnostics"
	"github.com/dhamidi/jsfront/js/lexer"
	"github.com/dhamidi/jsfront/js/syntax"
)

// statementRecovery holds the tokens that always start a statement. Bogus
// statements stop in front of them.
var statementRecovery = syntax.NewTokenSet(
	syntax.TokenSemicolon,
	syntax.TokenAt,
	syntax.KwVar, syntax.KwConst,
	syntax.KwIf, syntax.KwFor, syntax.KwWhile, syntax.KwDo,
	syntax.KwReturn, syntax.KwBreak, syntax.KwContinue, syntax.KwThrow,
	syntax.KwTry, syntax.KwSwitch, syntax.KwFunction, syntax.KwClass,
	syntax.KwImport, syntax.KwExport, syntax.KwDebugger, syntax.KwWith,
)

func (p *Parser) parseRoot() {
	m := p.start()
	p.parseDirectives()
	kind, listKind := syntax.KindScript, syntax.KindStatementList
	if p.isModule() {
		kind, listKind = syntax.KindModule, syntax.KindModuleItemList
	}
	p.parseNodeList(listRules{
		kind:     listKind,
		atEnd:    func(*Parser) bool { return false },
		element:  (*Parser).parseModuleItem,
		recovery: NewRecovery(syntax.KindBogusStatement, statementRecovery),
		expected: "a statement",
	})
	p.push(syntax.EOF, lexer.Regular)
	m.Complete(p, kind)
}

func (p *Parser) parseExpressionSnippet() {
	m := p.start()
	p.parseExpression().OrAddDiagnostic(p, expected("an expression"))
	if !p.at(syntax.EOF) {
		bogus := p.start()
		p.errAt("expected the end of the expression", p.curRange())
		for !p.at(syntax.EOF) {
			p.bumpAny()
		}
		bogus.Complete(p, syntax.KindBogus)
	}
	p.push(syntax.EOF, lexer.Regular)
	m.Complete(p, syntax.KindExpressionSnippet)
}

// parseModuleItem parses a statement or, anywhere at the top level, an
// import or export declaration. Scripts report the module syntax.
func (p *Parser) parseModuleItem() ParsedSyntax {
	switch {
	case p.at(syntax.KwImport) && !p.nthAt(1, syntax.TokenLParen) && !p.nthAt(1, syntax.TokenDot):
		return p.parseImport()
	case p.at(syntax.KwExport):
		return p.parseExport()
	}
	return p.parseStatement()
}

// parseDirectives parses the directive prologue of a script, module or
// function body. A "use strict" directive makes the rest of the body strict.
func (p *Parser) parseDirectives() {
	list := p.start()
	for p.at(syntax.TokenString) {
		cp := p.checkpoint()
		m := p.start()
		lit := p.parseExpression()
		if lit.Kind() != syntax.KindStringLiteralExpression {
			m.Abandon(p)
			p.rewind(cp)
			break
		}
		text := p.text(lit.Range())
		p.semicolon(m.Start())
		lit.marker.UndoCompletion(p).Abandon(p)
		m.Complete(p, syntax.KindDirective)
		if text == `"use strict"` || text == `'use strict'` {
			if p.state.strict == sloppy {
				p.state.strict = strictDirective
			}
		}
	}
	list.Complete(p, syntax.KindDirectiveList)
}

func (p *Parser) parseStatementList(atEnd func(*Parser) bool) CompletedMarker {
	return p.parseNodeList(listRules{
		kind:     syntax.KindStatementList,
		atEnd:    atEnd,
		element:  (*Parser).parseStatement,
		recovery: NewRecovery(syntax.KindBogusStatement, statementRecovery.With(syntax.TokenRCurly)),
		expected: "a statement",
	})
}

func atRCurly(p *Parser) bool {
	return p.at(syntax.TokenRCurly)
}

func (p *Parser) parseStatement() ParsedSyntax {
	switch p.cur() {
	case syntax.TokenLCurly:
		return p.parseBlockStatement()
	case syntax.TokenSemicolon:
		m := p.start()
		p.bump(syntax.TokenSemicolon)
		return Present(m.Complete(p, syntax.KindEmptyStatement))
	case syntax.KwVar, syntax.KwConst:
		if p.at(syntax.KwConst) && p.nthAt(1, syntax.KwEnum) {
			return p.parseEnumDeclaration()
		}
		return p.parseVariableStatement()
	case syntax.KwLet:
		if p.atLetDeclaration() {
			return p.parseVariableStatement()
		}
	case syntax.KwIf:
		return p.parseIfStatement()
	case syntax.KwFor:
		return p.parseForStatement()
	case syntax.KwWhile:
		return p.parseWhileStatement()
	case syntax.KwDo:
		return p.parseDoWhileStatement()
	case syntax.KwReturn:
		return p.parseReturnStatement()
	case syntax.KwBreak, syntax.KwContinue:
		return p.parseBreakOrContinue()
	case syntax.KwThrow:
		return p.parseThrowStatement()
	case syntax.KwTry:
		return p.parseTryStatement()
	case syntax.KwSwitch:
		return p.parseSwitchStatement()
	case syntax.KwWith:
		return p.parseWithStatement()
	case syntax.KwDebugger:
		m := p.start()
		p.bump(syntax.KwDebugger)
		p.semicolon(m.Start())
		return Present(m.Complete(p, syntax.KindDebuggerStatement))
	case syntax.KwFunction:
		return p.parseFunctionDeclaration(nil)
	case syntax.KwAsync:
		if p.nthAt(1, syntax.KwFunction) && !p.hasNthPrecedingLineBreak(1) {
			return p.parseFunctionDeclaration(nil)
		}
	case syntax.KwClass, syntax.TokenAt:
		return p.parseClassDeclaration(nil)
	case syntax.KwImport:
		if !p.nthAt(1, syntax.TokenLParen) && !p.nthAt(1, syntax.TokenDot) {
			return p.parseNestedModuleItem(p.parseImport)
		}
	case syntax.KwExport:
		return p.parseNestedModuleItem(p.parseExport)
	}
	if decl := p.parseTsDeclarationStatement(); decl.IsPresent() {
		return decl
	}
	if p.atIdentifier() && p.nthAt(1, syntax.TokenColon) {
		return p.parseLabeledStatement()
	}
	return p.parseExpressionStatement()
}

// parseSubStatement parses the body of if, for, while, do, with and labeled
// statements, where declarations other than var are not allowed. A missing
// body is reported at the current token.
func (p *Parser) parseSubStatement() (CompletedMarker, bool) {
	stmt, ok := p.parseStatement().OrAddDiagnostic(p, expected("a statement"))
	if !ok {
		return stmt, false
	}
	switch stmt.Kind() {
	case syntax.KindVariableStatement:
		if kw := p.text(stmt.Range()); len(kw) >= 3 && kw[:3] != "var" {
			p.errAt("lexical declaration cannot appear in a single-statement context", stmt.Range())
		}
	case syntax.KindClassDeclaration, syntax.KindInterfaceDeclaration, syntax.KindTypeAliasDeclaration, syntax.KindEnumDeclaration:
		p.errAt("declarations cannot appear in a single-statement context", stmt.Range())
	case syntax.KindFunctionDeclaration:
		if p.isStrict() {
			p.error(diagnostics.Error(p.file, "in strict mode code, functions can only be declared at top level or inside a block", stmt.Range()).
				WithSecondary(stmt.Range(), p.state.strict.String()))
		}
	}
	return stmt, true
}

func (p *Parser) parseBlockStatement() ParsedSyntax {
	if !p.at(syntax.TokenLCurly) {
		return Absent
	}
	m := p.start()
	p.bump(syntax.TokenLCurly)
	p.parseStatementList(atRCurly)
	p.expect(syntax.TokenRCurly)
	return Present(m.Complete(p, syntax.KindBlockStatement))
}

// parseBlock parses a block that must be present, like the body of a try.
func (p *Parser) parseBlock() {
	p.parseBlockStatement().OrAddDiagnostic(p, expected("a block statement"))
}

func (p *Parser) parseExpressionStatement() ParsedSyntax {
	cp := p.checkpoint()
	m := p.start()
	expr := p.parseExpression()
	if expr.IsAbsent() {
		m.Abandon(p)
		p.rewind(cp)
		return Absent
	}
	p.semicolon(m.Start())
	return Present(m.Complete(p, syntax.KindExpressionStatement))
}

func (p *Parser) parseIfStatement() ParsedSyntax {
	m := p.start()
	p.bump(syntax.KwIf)
	p.parseParenthesizedCondition()
	p.parseSubStatement()
	if p.at(syntax.KwElse) {
		e := p.start()
		p.bump(syntax.KwElse)
		p.parseSubStatement()
		e.Complete(p, syntax.KindElseClause)
	}
	return Present(m.Complete(p, syntax.KindIfStatement))
}

// parseParenthesizedCondition parses the "(expr)" head of if, while, do-while,
// switch and with.
func (p *Parser) parseParenthesizedCondition() {
	defer p.scope(p.state.without(noIn))()
	p.expect(syntax.TokenLParen)
	p.parseExpression().OrAddDiagnostic(p, expected("an expression"))
	p.expect(syntax.TokenRParen)
}

func (p *Parser) parseWhileStatement() ParsedSyntax {
	m := p.start()
	p.bump(syntax.KwWhile)
	p.parseParenthesizedCondition()
	p.parseLoopBody()
	return Present(m.Complete(p, syntax.KindWhileStatement))
}

func (p *Parser) parseDoWhileStatement() ParsedSyntax {
	m := p.start()
	p.bump(syntax.KwDo)
	p.parseLoopBody()
	p.expect(syntax.KwWhile)
	p.parseParenthesizedCondition()
	// The semicolon after do-while is always optional.
	p.eat(syntax.TokenSemicolon)
	return Present(m.Complete(p, syntax.KindDoWhileStatement))
}

func (p *Parser) parseLoopBody() {
	p.within(p.state.with(inIteration), func() {
		p.parseSubStatement()
	})
}

func (p *Parser) parseForStatement() ParsedSyntax {
	m := p.start()
	p.bump(syntax.KwFor)
	var awaitRange syntax.TextRange
	isAwait := false
	if p.at(syntax.KwAwait) {
		awaitRange = p.curRange()
		isAwait = true
		if !p.has(inAsync) && !(p.isModule() && !p.has(inFunction)) {
			p.errAt("`for await` is only allowed within async functions and at the top levels of modules", awaitRange)
		}
		p.bump(syntax.KwAwait)
	}
	p.expect(syntax.TokenLParen)

	kind := syntax.KindForStatement
	var missingInit []syntax.TextRange
	switch {
	case p.at(syntax.TokenSemicolon):
	case p.at(syntax.KwVar) || p.at(syntax.KwConst) || (p.at(syntax.KwLet) && p.atLetDeclaration()):
		var decl CompletedMarker
		var info declaratorInfo
		p.within(p.state.with(noIn), func() {
			decl, info = p.parseVariableDeclaration()
		})
		missingInit = info.missing
		if p.at(syntax.KwIn) || p.at(syntax.KwOf) {
			kind = syntax.KindForInStatement
			if p.at(syntax.KwOf) {
				kind = syntax.KindForOfStatement
			}
			decl.ChangeKind(p, syntax.KindForVariableDeclaration)
			if info.count > 1 {
				p.errAt("only a single declaration is allowed in a `for...in` or `for...of` statement", decl.Range())
			}
			if info.initialized > 0 {
				p.errAt("`for...in` and `for...of` loop variable declarations may not have an initializer", decl.Range())
			}
			missingInit = nil
		}
	default:
		cp := p.checkpoint()
		var init ParsedSyntax
		p.within(p.state.with(noIn), func() {
			init = p.parseExpression()
		})
		if init.IsPresent() && (p.at(syntax.KwIn) || p.at(syntax.KwOf)) {
			kind = syntax.KindForInStatement
			if p.at(syntax.KwOf) {
				kind = syntax.KindForOfStatement
			}
			p.rewind(cp)
			p.within(p.state.with(noIn), func() {
				p.parseAssignmentTarget()
			})
		}
	}
	for _, r := range missingInit {
		p.errAt("missing initializer in a declaration", r)
	}

	if kind == syntax.KindForStatement {
		if isAwait {
			p.errAt("`for await` requires an `of` clause", awaitRange)
		}
		p.within(p.state.without(noIn), func() {
			p.expect(syntax.TokenSemicolon)
			if !p.at(syntax.TokenSemicolon) {
				p.parseExpression().OrAddDiagnostic(p, expected("an expression"))
			}
			p.expect(syntax.TokenSemicolon)
			if !p.at(syntax.TokenRParen) {
				p.parseExpression().OrAddDiagnostic(p, expected("an expression"))
			}
		})
	} else {
		if kind == syntax.KindForInStatement {
			if isAwait {
				p.errAt("`for await` requires an `of` clause", awaitRange)
			}
			p.expect(syntax.KwIn)
			p.within(p.state.without(noIn), func() {
				p.parseExpression().OrAddDiagnostic(p, expected("an expression"))
			})
		} else {
			p.expect(syntax.KwOf)
			p.within(p.state.without(noIn), func() {
				p.parseAssignmentExpressionOrHigher().OrAddDiagnostic(p, expected("an expression"))
			})
		}
	}
	p.expect(syntax.TokenRParen)
	p.parseLoopBody()
	return Present(m.Complete(p, kind))
}

func (p *Parser) parseReturnStatement() ParsedSyntax {
	m := p.start()
	r := p.curRange()
	p.bump(syntax.KwReturn)
	if !p.has(inFunction) {
		p.errAt("illegal return statement outside of a function", r)
	}
	if !p.atStatementEnd() {
		p.parseExpression().OrAddDiagnostic(p, expected("an expression"))
	}
	p.semicolon(m.Start())
	return Present(m.Complete(p, syntax.KindReturnStatement))
}

func (p *Parser) parseBreakOrContinue() ParsedSyntax {
	m := p.start()
	isBreak := p.at(syntax.KwBreak)
	kwRange := p.curRange()
	p.bumpAny()
	kind := syntax.KindContinueStatement
	if isBreak {
		kind = syntax.KindBreakStatement
	}

	if p.atIdentifier() && !p.hasPrecedingLineBreak() {
		name := p.curText()
		r := p.curRange()
		label := p.start()
		p.bumpRemap(syntax.TokenIdent)
		label.Complete(p, syntax.KindLabel)
		info, ok := p.state.labels[name]
		switch {
		case !ok:
			p.errAt(fmt.Sprintf("use of undefined label `%s`", name), r)
		case !isBreak && !info.iteration:
			p.error(diagnostics.Error(p.file, "a `continue` statement can only jump to a label of an enclosing `for`, `while` or `do while` statement", r).
				WithSecondary(info.rng, "this label does not belong to a loop"))
		}
	} else if isBreak && !p.has(inIteration|inSwitch) {
		p.errAt("a `break` statement can only be used within an enclosing iteration or switch statement", kwRange)
	} else if !isBreak && !p.has(inIteration) {
		p.errAt("a `continue` statement can only be used within an enclosing `for`, `while` or `do while` statement", kwRange)
	}
	p.semicolon(m.Start())
	return Present(m.Complete(p, kind))
}

func (p *Parser) parseThrowStatement() ParsedSyntax {
	m := p.start()
	p.bump(syntax.KwThrow)
	if p.hasPrecedingLineBreak() {
		p.errAt("a line break is not allowed after `throw`", p.curRange())
	}
	p.parseExpression().OrAddDiagnostic(p, expected("an expression to throw"))
	p.semicolon(m.Start())
	return Present(m.Complete(p, syntax.KindThrowStatement))
}

func (p *Parser) parseTryStatement() ParsedSyntax {
	m := p.start()
	tryRange := p.curRange()
	p.bump(syntax.KwTry)
	p.parseBlock()
	handled := false
	if p.at(syntax.KwCatch) {
		handled = true
		c := p.start()
		p.bump(syntax.KwCatch)
		if p.at(syntax.TokenLParen) {
			d := p.start()
			p.bump(syntax.TokenLParen)
			p.parseBindingPattern().OrAddDiagnostic(p, expected("an identifier or a binding pattern"))
			p.parseTypeAnnotation()
			p.expect(syntax.TokenRParen)
			d.Complete(p, syntax.KindCatchDeclaration)
		}
		p.parseBlock()
		c.Complete(p, syntax.KindCatchClause)
	}
	if p.at(syntax.KwFinally) {
		handled = true
		f := p.start()
		p.bump(syntax.KwFinally)
		p.parseBlock()
		f.Complete(p, syntax.KindFinallyClause)
	}
	if !handled {
		p.error(diagnostics.Error(p.file, "a `try` statement must have a `catch` or `finally` clause", p.curRange()).
			WithSecondary(tryRange, "the try statement starts here"))
	}
	return Present(m.Complete(p, syntax.KindTryStatement))
}

func (p *Parser) parseSwitchStatement() ParsedSyntax {
	m := p.start()
	p.bump(syntax.KwSwitch)
	p.parseParenthesizedCondition()
	p.expect(syntax.TokenLCurly)

	var firstDefault syntax.TextRange
	seenDefault := false
	p.within(p.state.with(inSwitch), func() {
		p.parseNodeList(listRules{
			kind:  syntax.KindSwitchCaseList,
			atEnd: atRCurly,
			element: func(p *Parser) ParsedSyntax {
				if !p.at(syntax.KwCase) && !p.at(syntax.KwDefault) {
					return Absent
				}
				c := p.start()
				kind := syntax.KindCaseClause
				if p.at(syntax.KwDefault) {
					kind = syntax.KindDefaultClause
					r := p.curRange()
					if seenDefault {
						p.error(diagnostics.Error(p.file, "multiple `default` clauses inside of a switch statement are not allowed", r).
							WithSecondary(firstDefault, "the first default clause is here"))
					} else {
						seenDefault, firstDefault = true, r
					}
					p.bump(syntax.KwDefault)
				} else {
					p.bump(syntax.KwCase)
					p.parseExpression().OrAddDiagnostic(p, expected("an expression"))
				}
				p.expect(syntax.TokenColon)
				p.parseStatementList(func(p *Parser) bool {
					return p.at(syntax.KwCase) || p.at(syntax.KwDefault) || p.at(syntax.TokenRCurly)
				})
				return Present(c.Complete(p, kind))
			},
			recovery: NewRecovery(syntax.KindBogus, syntax.NewTokenSet(syntax.KwCase, syntax.KwDefault, syntax.TokenRCurly)),
			expected: "a case or default clause",
		})
	})
	p.expect(syntax.TokenRCurly)
	return Present(m.Complete(p, syntax.KindSwitchStatement))
}

func (p *Parser) parseWithStatement() ParsedSyntax {
	m := p.start()
	r := p.curRange()
	p.bump(syntax.KwWith)
	if p.isStrict() {
		p.error(diagnostics.Error(p.file, "`with` statements are not allowed in strict mode", r).
			WithFooter(p.state.strict.String()))
	}
	p.parseParenthesizedCondition()
	p.parseSubStatement()
	return Present(m.Complete(p, syntax.KindWithStatement))
}

func (p *Parser) parseLabeledStatement() ParsedSyntax {
	m := p.start()
	name := p.curText()
	r := p.curRange()
	label := p.start()
	p.bumpRemap(syntax.TokenIdent)
	label.Complete(p, syntax.KindLabel)
	p.bump(syntax.TokenColon)

	if prev, ok := p.state.labels[name]; ok {
		p.error(diagnostics.Error(p.file, fmt.Sprintf("duplicate statement label `%s`", name), r).
			WithSecondary(prev.rng, "the first label is defined here"))
	}
	info := labelInfo{iteration: p.atIterationStart(), rng: r}
	p.within(p.state.withLabel(name, info), func() {
		p.parseSubStatement()
	})
	return Present(m.Complete(p, syntax.KindLabeledStatement))
}

// atIterationStart reports whether the statement at the current token is a
// loop, looking through any further labels.
func (p *Parser) atIterationStart() bool {
	n := 0
	for {
		switch p.nth(n) {
		case syntax.KwFor, syntax.KwWhile, syntax.KwDo:
			return true
		}
		if p.nthAt(n+1, syntax.TokenColon) && isIdentifierKind(p.nth(n)) {
			n += 2
			continue
		}
		return false
	}
}

// atLetDeclaration reports whether a `let` starts a declaration rather than
// an identifier expression.
func (p *Parser) atLetDeclaration() bool {
	next := p.nth(1)
	return next == syntax.TokenLBrack || next == syntax.TokenLCurly || (isIdentifierKind(next) && (p.isStrict() || !p.hasNthPrecedingLineBreak(1)))
}

func (p *Parser) parseVariableStatement() ParsedSyntax {
	m := p.start()
	_, info := p.parseVariableDeclaration()
	for _, r := range info.missing {
		p.errAt("missing initializer in a declaration", r)
	}
	p.semicolon(m.Start())
	return Present(m.Complete(p, syntax.KindVariableStatement))
}

// declaratorInfo summarizes a declarator list for the checks that depend on
// where the declaration appears.
type declaratorInfo struct {
	count       int
	initialized int
	// missing holds declarators that need an initializer but have none.
	missing []syntax.TextRange
}

// parseVariableDeclaration parses `var|let|const` and its declarators.
// Missing initializers are returned rather than reported because for-in and
// for-of heads never take one.
func (p *Parser) parseVariableDeclaration() (CompletedMarker, declaratorInfo) {
	m := p.start()
	kw := p.cur()
	p.bumpAny()
	lexical := kw != syntax.KwVar

	next := p.state
	if lexical {
		next.names = make(map[string]syntax.TextRange)
	}
	defer p.scope(next)()

	var info declaratorInfo
	list := p.start()
	for {
		d := p.start()
		binding := p.parseBindingPattern()
		if binding.IsAbsent() {
			d.Abandon(p)
			p.error(p.expectedDiagnostic("an identifier or a binding pattern", p.curRange()))
			break
		}
		info.count++
		if lexical && binding.Kind() == syntax.KindIdentifierBinding && p.text(binding.Range()) == "let" {
			p.errAt("`let` cannot be declared as a variable name inside of a `let` or `const` declaration", binding.Range())
		}
		definite := false
		if p.at(syntax.TokenBang) && !p.hasPrecedingLineBreak() && binding.Kind() == syntax.KindIdentifierBinding {
			definite = true
			a := p.start()
			p.tsOnly("definite assignment assertions", p.curRange())
			p.bump(syntax.TokenBang)
			p.parseTypeAnnotation().OrAddDiagnostic(p, expected("a type annotation"))
			a.Complete(p, syntax.KindDefiniteVariableAnnotation)
		} else {
			p.parseTypeAnnotation()
		}
		if p.parseInitializerClause().IsPresent() {
			info.initialized++
		} else if !definite && !p.has(inAmbient) && (kw == syntax.KwConst || binding.Kind() != syntax.KindIdentifierBinding) {
			info.missing = append(info.missing, binding.Range())
		}
		d.Complete(p, syntax.KindVariableDeclarator)
		if !p.eat(syntax.TokenComma) {
			break
		}
	}
	list.Complete(p, syntax.KindVariableDeclaratorList)
	return m.Complete(p, syntax.KindVariableDeclaration), info
}

// parseInitializerClause parses "= expr" after a binding.
func (p *Parser) parseInitializerClause() ParsedSyntax {
	if !p.at(syntax.TokenEq) {
		return Absent
	}
	m := p.start()
	p.bump(syntax.TokenEq)
	p.parseAssignmentExpressionOrHigher().OrAddDiagnostic(p, expected("an expression"))
	return Present(m.Complete(p, syntax.KindInitializerClause))
}
