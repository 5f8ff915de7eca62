package lexer

import (
	"github.com/dhamidi/jsfront/js/diagnostics"
	"github.com/dhamidi/jsfront/js/syntax"
)

// lexJsxChild scans the content between JSX tags: a '<' or '{' that opens a
// nested construct, or a run of text ending before one of them.
func (l *Lexer) lexJsxChild() syntax.Kind {
	switch l.source[l.pos] {
	case '<':
		return l.eat(1, syntax.TokenLAngle)
	case '{':
		return l.eat(1, syntax.TokenLCurly)
	}
	for l.pos < len(l.source) {
		switch b := l.source[l.pos]; b {
		case '<', '{':
			return syntax.TokenJsxText
		case '>', '}':
			escaped := "&gt;"
			if b == '}' {
				escaped = "&rbrace;"
			}
			l.push(diagnostics.Error(l.file, "unexpected token in JSX text", syntax.NewRange(l.pos, l.pos+1)).
				WithHint("did you mean `{'"+string(b)+"'}` or `"+escaped+"`?"))
		}
		l.pos++
	}
	return syntax.TokenJsxText
}

// lexJsxAttributeValue scans a quoted JSX attribute string. JSX strings have
// no escape sequences and may span lines. Anything else is lexed as a regular
// token.
func (l *Lexer) lexJsxAttributeValue() syntax.Kind {
	quote := l.source[l.pos]
	if quote != '"' && quote != '\'' {
		return l.lexToken()
	}
	start := l.pos
	l.pos++
	for l.pos < len(l.source) {
		if l.source[l.pos] == quote {
			l.pos++
			return syntax.TokenJsxString
		}
		l.pos++
	}
	l.push(diagnostics.Error(l.file, "unterminated string literal", syntax.EmptyRange(l.pos)).
		WithPrimaryLabel("the file ends here").
		WithSecondary(syntax.NewRange(start, start+1), "the string starts here"))
	return syntax.TokenJsxString
}
