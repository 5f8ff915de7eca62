package parser

import (
	"fmt"

	"github.com/dhamidi/jsfront/js/diagnostics"
	"github.com/dhamidi/jsfront/js/syntax"
)

var specifierRecovery = syntax.NewTokenSet(
	syntax.TokenComma, syntax.TokenRCurly, syntax.TokenSemicolon, syntax.KwFrom,
)

// checkModuleSyntax reports import and export declarations in scripts.
func (p *Parser) checkModuleSyntax(what string, r syntax.TextRange) {
	if p.isModule() {
		return
	}
	p.error(diagnostics.Error(p.file, fmt.Sprintf("Illegal use of an %s declaration outside of a module", what), r).
		WithHint("not allowed inside scripts"))
}

// parseNestedModuleItem parses an import or export that appears where only
// statements are allowed.
func (p *Parser) parseNestedModuleItem(parse func() ParsedSyntax) ParsedSyntax {
	item := parse()
	if item.IsPresent() && p.isModule() {
		p.errAt("`import` and `export` declarations can only appear at the top level of a module", item.Range())
	}
	return item
}

func (p *Parser) parseImport() ParsedSyntax {
	m := p.start()
	p.checkModuleSyntax("import", p.curRange())
	p.bump(syntax.KwImport)

	typeOnly := false
	if p.at(syntax.KwType) && p.atImportTypeModifier() {
		typeOnly = true
		p.tsOnly("type-only imports", p.curRange())
		p.bumpRemap(syntax.TokenIdent)
	}

	switch {
	case p.at(syntax.TokenString) && !typeOnly:
		c := p.start()
		p.parseModuleSource()
		p.parseImportAssertion()
		c.Complete(p, syntax.KindImportBareClause)
	case p.at(syntax.TokenStar):
		c := p.start()
		p.parseNamespaceBinding()
		p.parseFromSource()
		c.Complete(p, syntax.KindImportNamespaceClause)
	case p.at(syntax.TokenLCurly):
		c := p.start()
		p.parseNamedImportSpecifiers()
		p.parseFromSource()
		c.Complete(p, syntax.KindImportNamedClause)
	case p.atIdentifier() && p.nthAt(1, syntax.TokenEq):
		return p.parseImportEquals(m)
	case p.atIdentifier():
		c := p.start()
		p.parseIdentifierBinding()
		if p.eat(syntax.TokenComma) {
			if typeOnly {
				p.errAt("a type-only import can specify a default import or named bindings, but not both", p.curRange())
			}
			switch {
			case p.at(syntax.TokenStar):
				p.parseNamespaceBinding()
			case p.at(syntax.TokenLCurly):
				p.parseNamedImportSpecifiers()
			default:
				p.error(p.expectedDiagnostic("a namespace import or named imports", p.curRange()))
			}
		}
		p.parseFromSource()
		c.Complete(p, syntax.KindImportDefaultClause)
	default:
		p.error(p.expectedDiagnostic("an import clause", p.curRange()))
	}
	p.semicolon(m.Start())
	return Present(m.Complete(p, syntax.KindImport))
}

// atImportTypeModifier tells `import type X from` apart from importing a
// default binding named `type`.
func (p *Parser) atImportTypeModifier() bool {
	switch next := p.nth(1); {
	case next == syntax.TokenLCurly || next == syntax.TokenStar:
		return true
	case next == syntax.KwFrom:
		// `import type from "m"` imports `type`; `import type from from "m"`
		// imports `from` as a type.
		return p.nthAt(2, syntax.KwFrom)
	default:
		return isIdentifierKind(next)
	}
}

// parseImportEquals parses `import x = require("m")` and `import x = A.B`
// into m, which already holds `import` and an optional `type`.
func (p *Parser) parseImportEquals(m Marker) ParsedSyntax {
	p.tsOnly("import equals declarations", syntax.NewRange(m.Start(), p.curRange().End))
	p.parseIdentifierBinding()
	if !p.expect(syntax.TokenEq) {
		// `export import a from "m"` reaches here without an `=`.
		return Present(m.Complete(p, syntax.KindTsImportEqualsDeclaration))
	}
	if p.at(syntax.KwRequire) && p.nthAt(1, syntax.TokenLParen) {
		ref := p.start()
		p.bumpRemap(syntax.TokenIdent)
		p.bump(syntax.TokenLParen)
		if p.at(syntax.TokenString) {
			p.bump(syntax.TokenString)
		} else {
			p.error(p.expectedDiagnostic("a module specifier string", p.curRange()))
		}
		p.expect(syntax.TokenRParen)
		ref.Complete(p, syntax.KindTsExternalModuleReference)
	} else if isNameKind(p.cur()) {
		p.parseEntityName()
	} else {
		p.error(p.expectedDiagnostic("a module reference", p.curRange()))
	}
	p.semicolon(m.Start())
	return Present(m.Complete(p, syntax.KindTsImportEqualsDeclaration))
}

// parseNamespaceBinding parses `* as name`.
func (p *Parser) parseNamespaceBinding() {
	p.bump(syntax.TokenStar)
	p.expect(syntax.KwAs)
	p.parseIdentifierBinding().OrAddDiagnostic(p, expected("a namespace name"))
}

func (p *Parser) parseFromSource() {
	p.expect(syntax.KwFrom)
	p.parseModuleSource()
	p.parseImportAssertion()
}

func (p *Parser) parseModuleSource() {
	if !p.at(syntax.TokenString) {
		p.error(p.expectedDiagnostic("a module specifier string", p.curRange()))
		return
	}
	m := p.start()
	p.bump(syntax.TokenString)
	m.Complete(p, syntax.KindModuleSource)
}

// parseImportAssertion parses `with { type: "json" }` and the older
// `assert { ... }` form.
func (p *Parser) parseImportAssertion() {
	if !p.at(syntax.KwWith) && !(p.at(syntax.KwAssert) && !p.hasPrecedingLineBreak()) {
		return
	}
	m := p.start()
	p.bumpAny()
	p.expect(syntax.TokenLCurly)
	p.parseSeparatedList(listRules{
		kind:     syntax.KindImportAssertionEntryList,
		atEnd:    atRCurly,
		element:  (*Parser).parseImportAssertionEntry,
		recovery: NewRecovery(syntax.KindBogus, specifierRecovery),
		expected: "an import attribute",
	}, syntax.TokenComma, true)
	p.expect(syntax.TokenRCurly)
	m.Complete(p, syntax.KindImportAssertion)
}

func (p *Parser) parseImportAssertionEntry() ParsedSyntax {
	if !p.at(syntax.TokenString) && !isNameKind(p.cur()) {
		return Absent
	}
	m := p.start()
	if p.at(syntax.TokenString) {
		p.bump(syntax.TokenString)
	} else {
		p.bumpRemap(syntax.TokenIdent)
	}
	p.expect(syntax.TokenColon)
	if p.at(syntax.TokenString) {
		p.bump(syntax.TokenString)
	} else {
		p.error(p.expectedDiagnostic("a string literal", p.curRange()))
	}
	return Present(m.Complete(p, syntax.KindImportAssertionEntry))
}

func (p *Parser) parseNamedImportSpecifiers() {
	m := p.start()
	p.bump(syntax.TokenLCurly)
	p.parseSeparatedList(listRules{
		kind:     syntax.KindImportSpecifierList,
		atEnd:    atRCurly,
		element:  (*Parser).parseImportSpecifier,
		recovery: NewRecovery(syntax.KindBogusImportSpecifier, specifierRecovery),
		expected: "an import specifier",
	}, syntax.TokenComma, true)
	p.expect(syntax.TokenRCurly)
	m.Complete(p, syntax.KindNamedImportSpecifiers)
}

// atSpecifierTypeModifier reports whether a `type` in a specifier list
// marks the specifier as type-only rather than naming the binding.
func (p *Parser) atSpecifierTypeModifier() bool {
	if !p.at(syntax.KwType) {
		return false
	}
	next := p.nth(1)
	if next == syntax.KwAs {
		// `type as x` renames `type`; `type as as x` is a type-only `as`.
		return p.nthAt(2, syntax.KwAs)
	}
	return isNameKind(next) || next == syntax.TokenString
}

func (p *Parser) parseImportSpecifier() ParsedSyntax {
	if !isNameKind(p.cur()) && !p.at(syntax.TokenString) {
		return Absent
	}
	m := p.start()
	if p.atSpecifierTypeModifier() {
		p.tsOnly("type-only import specifiers", p.curRange())
		p.bumpRemap(syntax.TokenIdent)
	}
	if p.nthAt(1, syntax.KwAs) {
		p.parseModuleExportName()
		p.bump(syntax.KwAs)
		p.parseIdentifierBinding().OrAddDiagnostic(p, expected("an identifier"))
		return Present(m.Complete(p, syntax.KindNamedImportSpecifier))
	}
	if !p.atIdentifier() {
		r := p.curRange()
		p.parseModuleExportName()
		p.error(diagnostics.Error(p.file, fmt.Sprintf("`%s` cannot be imported without a local name", p.text(r)), r).
			WithHint("add an `as` clause"))
		return Present(m.Complete(p, syntax.KindNamedImportSpecifier))
	}
	p.parseIdentifierBinding()
	return Present(m.Complete(p, syntax.KindShorthandNamedImportSpecifier))
}

// parseModuleExportName parses a name that an import or export refers to:
// any identifier name or a string literal.
func (p *Parser) parseModuleExportName() {
	m := p.start()
	if p.at(syntax.TokenString) {
		p.bump(syntax.TokenString)
	} else {
		p.bumpRemap(syntax.TokenIdent)
	}
	m.Complete(p, syntax.KindLiteralMemberName)
}

func (p *Parser) parseExport() ParsedSyntax {
	m := p.start()
	p.checkModuleSyntax("export", p.curRange())
	p.bump(syntax.KwExport)

	switch {
	case p.at(syntax.KwDefault):
		p.parseExportDefault()
	case p.at(syntax.TokenEq):
		c := p.start()
		p.tsOnly("export assignments", p.curRange())
		p.bump(syntax.TokenEq)
		p.parseAssignmentExpressionOrHigher().OrAddDiagnostic(p, expected("an expression"))
		p.semicolon(m.Start())
		c.Complete(p, syntax.KindTsExportAssignment)
	case p.at(syntax.TokenStar) || (p.at(syntax.KwType) && p.nthAt(1, syntax.TokenStar)):
		c := p.start()
		p.parseExportTypeModifier()
		p.bump(syntax.TokenStar)
		if p.at(syntax.KwAs) {
			as := p.start()
			p.bump(syntax.KwAs)
			if isNameKind(p.cur()) || p.at(syntax.TokenString) {
				p.parseModuleExportName()
			} else {
				p.error(p.expectedDiagnostic("a name", p.curRange()))
			}
			as.Complete(p, syntax.KindExportAsClause)
		}
		p.parseFromSource()
		p.semicolon(m.Start())
		c.Complete(p, syntax.KindExportFromClause)
	case p.at(syntax.TokenLCurly) || (p.at(syntax.KwType) && p.nthAt(1, syntax.TokenLCurly)):
		p.parseExportNamed(m.Start())
	case p.at(syntax.KwImport) && isIdentifierKind(p.nth(1)):
		i := p.start()
		p.bump(syntax.KwImport)
		p.parseImportEquals(i)
	default:
		decl := p.parseExportedDeclaration(nil)
		decl.OrAddDiagnostic(p, expected("a declaration, a default export or a list of exports"))
	}
	return Present(m.Complete(p, syntax.KindExport))
}

func (p *Parser) parseExportTypeModifier() bool {
	if !p.at(syntax.KwType) {
		return false
	}
	p.tsOnly("type-only exports", p.curRange())
	p.bumpRemap(syntax.TokenIdent)
	return true
}

// parseExportedDeclaration parses the declaration after `export` or `export
// default`.
func (p *Parser) parseExportedDeclaration(opts *declOptions) ParsedSyntax {
	switch p.cur() {
	case syntax.KwVar, syntax.KwLet, syntax.KwConst:
		if opts == nil {
			if p.at(syntax.KwConst) && p.nthAt(1, syntax.KwEnum) {
				return p.parseEnumDeclaration()
			}
			return p.parseVariableStatement()
		}
	case syntax.KwFunction:
		return p.parseFunctionDeclaration(opts)
	case syntax.KwAsync:
		if p.nthAt(1, syntax.KwFunction) && !p.hasNthPrecedingLineBreak(1) {
			return p.parseFunctionDeclaration(opts)
		}
	case syntax.KwClass, syntax.TokenAt:
		return p.parseClassDeclaration(opts)
	case syntax.KwAbstract:
		if p.nthAt(1, syntax.KwClass) {
			return p.parseClassDeclaration(opts)
		}
	case syntax.KwInterface:
		if opts != nil && isIdentifierKind(p.nth(1)) {
			return p.parseInterfaceDeclaration()
		}
	}
	if opts != nil {
		return Absent
	}
	return p.parseTsDeclarationStatement()
}

func (p *Parser) parseExportDefault() {
	c := p.start()
	p.bump(syntax.KwDefault)
	if decl := p.parseExportedDeclaration(&declOptions{defaultExport: true}); decl.IsPresent() {
		c.Complete(p, syntax.KindExportDefaultDeclaration)
		return
	}
	p.parseAssignmentExpressionOrHigher().OrAddDiagnostic(p, expected("an expression"))
	p.semicolon(c.Start())
	c.Complete(p, syntax.KindExportDefaultExpression)
}

// parseExportNamed parses `export { a, b as c }` with an optional `from`
// clause. Without `from`, every local name must be a plain identifier.
func (p *Parser) parseExportNamed(start int) {
	c := p.start()
	p.parseExportTypeModifier()
	p.bump(syntax.TokenLCurly)
	var locals []syntax.TextRange
	p.parseSeparatedList(listRules{
		kind:  syntax.KindExportSpecifierList,
		atEnd: atRCurly,
		element: func(p *Parser) ParsedSyntax {
			if !isIdentifierKind(p.cur()) && !(p.at(syntax.KwType) && p.atSpecifierTypeModifier()) && (isNameKind(p.cur()) || p.at(syntax.TokenString)) {
				locals = append(locals, p.curRange())
			}
			return p.parseExportSpecifier()
		},
		recovery: NewRecovery(syntax.KindBogusImportSpecifier, specifierRecovery),
		expected: "an export specifier",
	}, syntax.TokenComma, true)
	p.expect(syntax.TokenRCurly)
	if p.at(syntax.KwFrom) {
		p.parseFromSource()
		p.semicolon(start)
		c.Complete(p, syntax.KindExportNamedFromClause)
		return
	}
	for _, r := range locals {
		p.error(diagnostics.Error(p.file, fmt.Sprintf("`%s` cannot be exported without a `from` clause", p.text(r)), r).
			WithHint("only local bindings can be exported by name"))
	}
	p.semicolon(start)
	c.Complete(p, syntax.KindExportNamedClause)
}

func (p *Parser) parseExportSpecifier() ParsedSyntax {
	if !isNameKind(p.cur()) && !p.at(syntax.TokenString) {
		return Absent
	}
	m := p.start()
	if p.atSpecifierTypeModifier() {
		p.tsOnly("type-only export specifiers", p.curRange())
		p.bumpRemap(syntax.TokenIdent)
	}
	p.parseModuleExportName()
	if p.eat(syntax.KwAs) {
		if isNameKind(p.cur()) || p.at(syntax.TokenString) {
			p.parseModuleExportName()
		} else {
			p.error(p.expectedDiagnostic("a name", p.curRange()))
		}
	}
	return Present(m.Complete(p, syntax.KindExportNamedSpecifier))
}
