package parser

import (
	"fmt"
	"strings"

	"github.com/dhamidi/jsfront/js/diagnostics"
	"github.com/dhamidi/jsfront/js/lexer"
	"github.com/dhamidi/jsfront/js/syntax"
)

var jsxAttributeRecovery = syntax.NewTokenSet(
	syntax.TokenRAngle, syntax.TokenSlash, syntax.TokenLCurly,
)

func (p *Parser) parseJsxTagExpression() ParsedSyntax {
	if !p.isJSX() {
		p.error(diagnostics.Error(p.file, "JSX syntax is not enabled for this file", p.curRange()).
			WithHint("rename the file to .jsx or .tsx to enable JSX"))
	}
	m := p.start()
	p.parseJsxElement(false)
	return Present(m.Complete(p, syntax.KindJsxTagExpression))
}

// jsxCloseContext is how the token after an element's final `>` is lexed:
// as JSX text inside a parent element, as a regular token otherwise.
func jsxCloseContext(nested bool) lexer.Context {
	if nested {
		return lexer.JsxChild
	}
	return lexer.Regular
}

// parseJsxElement parses an element or fragment starting at `<`.
func (p *Parser) parseJsxElement(nested bool) CompletedMarker {
	start := p.curRange()
	open := p.start()
	p.bump(syntax.TokenLAngle)

	if p.at(syntax.TokenRAngle) {
		p.bumpWith(syntax.TokenRAngle, lexer.JsxChild)
		opening := open.Complete(p, syntax.KindJsxOpeningFragment)
		m := opening.Precede(p)
		p.parseJsxChildren(start, "")
		if p.at(syntax.TokenLAngle) && p.nthAt(1, syntax.TokenSlash) {
			c := p.start()
			p.bump(syntax.TokenLAngle)
			p.bump(syntax.TokenSlash)
			if name := p.parseJsxElementName(); name.IsPresent() {
				p.error(diagnostics.Error(p.file, "expected corresponding closing tag for JSX fragment", name.Range()).
					WithSecondary(opening.Range(), "the fragment is opened here"))
			}
			p.expectWith(syntax.TokenRAngle, jsxCloseContext(nested))
			c.Complete(p, syntax.KindJsxClosingFragment)
		}
		return m.Complete(p, syntax.KindJsxFragment)
	}

	name := p.parseJsxElementName()
	if name.IsAbsent() {
		p.error(p.expectedDiagnostic("a JSX element name", p.curRange()))
	}
	if p.at(syntax.TokenLAngle) || p.at(syntax.TokenShl) {
		p.tsOnly("type arguments", p.curRange())
		p.parseTypeArguments()
	}
	p.parseJsxAttributes()

	if p.at(syntax.TokenSlash) {
		p.bump(syntax.TokenSlash)
		p.expectWith(syntax.TokenRAngle, jsxCloseContext(nested))
		return open.Complete(p, syntax.KindJsxSelfClosingElement)
	}
	if !p.at(syntax.TokenRAngle) {
		p.error(p.expectedDiagnostic("'>' or '/>'", p.curRange()))
		opening := open.Complete(p, syntax.KindJsxOpeningElement)
		return opening.Precede(p).Complete(p, syntax.KindJsxElement)
	}
	p.bumpWith(syntax.TokenRAngle, lexer.JsxChild)
	opening := open.Complete(p, syntax.KindJsxOpeningElement)
	m := opening.Precede(p)

	openName := ""
	if name.IsPresent() {
		openName = jsxNameText(p.text(name.Range()))
	}
	p.parseJsxChildren(start, openName)
	if p.at(syntax.TokenLAngle) && p.nthAt(1, syntax.TokenSlash) {
		c := p.start()
		p.bump(syntax.TokenLAngle)
		p.bump(syntax.TokenSlash)
		closing := p.parseJsxElementName()
		if closing.IsPresent() && name.IsPresent() && jsxNameText(p.text(closing.Range())) != openName {
			p.error(diagnostics.Error(p.file, fmt.Sprintf("expected corresponding JSX closing tag for '%s'", openName), closing.Range()).
				WithSecondary(name.Range(), "opening tag"))
		} else if closing.IsAbsent() {
			p.error(diagnostics.Error(p.file, fmt.Sprintf("expected corresponding JSX closing tag for '%s'", openName), p.curRange()).
				WithSecondary(name.Range(), "opening tag"))
		}
		p.expectWith(syntax.TokenRAngle, jsxCloseContext(nested))
		c.Complete(p, syntax.KindJsxClosingElement)
	}
	return m.Complete(p, syntax.KindJsxElement)
}

func jsxNameText(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// parseJsxChildren parses children until a closing tag `</` or the end of
// the file. The current token was lexed as JSX text.
func (p *Parser) parseJsxChildren(start syntax.TextRange, openName string) {
	list := p.start()
	defer func() { list.Complete(p, syntax.KindJsxChildList) }()
	var pr progress
	for {
		pr.assert(p)
		switch p.cur() {
		case syntax.TokenJsxText:
			m := p.start()
			p.bumpWith(syntax.TokenJsxText, lexer.JsxChild)
			m.Complete(p, syntax.KindJsxText)
		case syntax.TokenLCurly:
			if !p.parseJsxExpressionChild() {
				return
			}
		case syntax.TokenLAngle:
			if p.nthAt(1, syntax.TokenSlash) {
				return
			}
			p.parseJsxElement(true)
		case syntax.EOF:
			what := "JSX fragment"
			if openName != "" {
				what = fmt.Sprintf("JSX element '%s'", openName)
			}
			p.error(diagnostics.Error(p.file, "unterminated "+what+", expected a closing tag", p.curRange()).
				WithSecondary(start, "the element is opened here"))
			return
		default:
			return
		}
	}
}

// parseJsxExpressionChild parses `{expr}` or `{...expr}` among children. It
// reports false when the closing `}` is missing and child parsing cannot
// continue.
func (p *Parser) parseJsxExpressionChild() bool {
	defer p.scope(p.state.without(noIn))()
	m := p.start()
	p.bump(syntax.TokenLCurly)
	kind := syntax.KindJsxExpressionChild
	if p.eat(syntax.TokenDot3) {
		kind = syntax.KindJsxSpreadChild
		p.parseExpression().OrAddDiagnostic(p, expected("an expression"))
	} else {
		p.parseExpression()
	}
	ok := p.expectWith(syntax.TokenRCurly, lexer.JsxChild)
	m.Complete(p, kind)
	return ok
}

// parseJsxElementName parses `name`, `ns:name` or `A.B.C`.
func (p *Parser) parseJsxElementName() ParsedSyntax {
	if !isNameKind(p.cur()) {
		return Absent
	}
	if p.nthAt(1, syntax.TokenDot) {
		m := p.start()
		p.relex(lexer.ReLexJsxIdentifier)
		p.bumpAny()
		left := m.Complete(p, syntax.KindJsxReferenceIdentifier)
		for p.at(syntax.TokenDot) {
			member := left.Precede(p)
			p.bump(syntax.TokenDot)
			p.parseJsxName().OrAddDiagnostic(p, expected("a JSX member name"))
			left = member.Complete(p, syntax.KindJsxMemberName)
		}
		return Present(left)
	}
	return p.parseJsxNamespacedName()
}

// parseJsxNamespacedName parses `name` or `ns:name`, used for element and
// attribute names.
func (p *Parser) parseJsxNamespacedName() ParsedSyntax {
	name := p.parseJsxName()
	if name.IsAbsent() || !p.at(syntax.TokenColon) {
		return name
	}
	m := name.marker.Precede(p)
	p.bump(syntax.TokenColon)
	p.parseJsxName().OrAddDiagnostic(p, expected("a JSX name"))
	return Present(m.Complete(p, syntax.KindJsxNamespaceName))
}

func (p *Parser) parseJsxName() ParsedSyntax {
	if !isNameKind(p.cur()) {
		return Absent
	}
	m := p.start()
	p.relex(lexer.ReLexJsxIdentifier)
	p.bumpAny()
	return Present(m.Complete(p, syntax.KindJsxName))
}

func (p *Parser) parseJsxAttributes() {
	list := p.start()
	var pr progress
	for !p.at(syntax.TokenRAngle) && !p.at(syntax.TokenSlash) && !p.at(syntax.EOF) {
		pr.assert(p)
		if p.parseJsxAttribute().IsPresent() {
			continue
		}
		_, err := Absent.OrRecover(p, NewRecovery(syntax.KindBogus, jsxAttributeRecovery), expected("a JSX attribute"))
		if err != nil {
			break
		}
	}
	list.Complete(p, syntax.KindJsxAttributeList)
}

func (p *Parser) parseJsxAttribute() ParsedSyntax {
	if p.at(syntax.TokenLCurly) {
		defer p.scope(p.state.without(noIn))()
		m := p.start()
		p.bump(syntax.TokenLCurly)
		p.expect(syntax.TokenDot3)
		p.parseAssignmentExpressionOrHigher().OrAddDiagnostic(p, expected("an expression"))
		p.expect(syntax.TokenRCurly)
		return Present(m.Complete(p, syntax.KindJsxSpreadAttribute))
	}
	if !isNameKind(p.cur()) {
		return Absent
	}
	m := p.start()
	p.parseJsxNamespacedName()
	if p.at(syntax.TokenEq) {
		init := p.start()
		p.bumpWith(syntax.TokenEq, lexer.JsxAttributeValue)
		p.parseJsxAttributeValue()
		init.Complete(p, syntax.KindJsxAttributeInitializer)
	}
	return Present(m.Complete(p, syntax.KindJsxAttribute))
}

func (p *Parser) parseJsxAttributeValue() {
	switch p.cur() {
	case syntax.TokenJsxString:
		m := p.start()
		p.bump(syntax.TokenJsxString)
		m.Complete(p, syntax.KindJsxString)
	case syntax.TokenLCurly:
		defer p.scope(p.state.without(noIn))()
		m := p.start()
		p.bump(syntax.TokenLCurly)
		if p.at(syntax.TokenRCurly) {
			p.errAt("JSX attributes must only be assigned a non-empty expression", syntax.NewRange(m.Start(), p.curRange().End))
		} else {
			p.parseAssignmentExpressionOrHigher().OrAddDiagnostic(p, expected("an expression"))
		}
		p.expect(syntax.TokenRCurly)
		m.Complete(p, syntax.KindJsxExpressionAttributeValue)
	case syntax.TokenLAngle:
		m := p.start()
		p.parseJsxElement(false)
		m.Complete(p, syntax.KindJsxTagExpression)
	default:
		p.error(p.expectedDiagnostic("a JSX attribute value", p.curRange()))
	}
}
