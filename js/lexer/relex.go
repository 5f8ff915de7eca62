package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/jsfront/js/diagnostics"
	"github.com/dhamidi/jsfront/js/syntax"
)

// ReLex rescans the current token from its start under ctx and returns the
// resulting kind. If the kind does not change, the lexer is left exactly as it
// was. The preceding-line-break flag of the original token is kept.
func (l *Lexer) ReLex(ctx ReLexContext) syntax.Kind {
	old := l.Checkpoint()
	lineBreak := l.flags & FlagPrecedingLineBreak

	l.pos = l.start
	l.flags = 0
	l.diagnostics = l.diagnostics[:l.tokenDiags:l.tokenDiags]

	var kind syntax.Kind
	switch ctx {
	case ReLexRegex:
		kind = l.relexRegex(old.kind)
	case ReLexBinaryOperator:
		kind = l.relexBinaryOperator(old.kind)
	case ReLexTypeArgumentLessThan:
		kind = l.relexTypeArgumentLessThan(old.kind)
	case ReLexJsxIdentifier:
		kind = l.relexJsxIdentifier(old.kind)
	case ReLexJsxChild:
		if l.pos < len(l.source) {
			kind = l.lexJsxChild()
		} else {
			kind = syntax.EOF
		}
	default:
		panic(fmt.Sprintf("lexer: unknown re-lex context %d", ctx))
	}

	if kind == old.kind {
		l.Rewind(old)
		return kind
	}
	l.kind = kind
	l.flags |= lineBreak
	return kind
}

func (l *Lexer) relexRegex(current syntax.Kind) syntax.Kind {
	if current != syntax.TokenSlash && current != syntax.TokenSlashEq {
		return current
	}
	return l.lexRegex()
}

func (l *Lexer) relexBinaryOperator(current syntax.Kind) syntax.Kind {
	if current != syntax.TokenRAngle {
		return current
	}
	switch l.peek(1) {
	case '=':
		return l.eat(2, syntax.TokenGtEq)
	case '>':
		switch l.peek(2) {
		case '>':
			if l.peek(3) == '=' {
				return l.eat(4, syntax.TokenUShrEq)
			}
			return l.eat(3, syntax.TokenUShr)
		case '=':
			return l.eat(3, syntax.TokenShrEq)
		}
		return l.eat(2, syntax.TokenShr)
	}
	return current
}

func (l *Lexer) relexTypeArgumentLessThan(current syntax.Kind) syntax.Kind {
	switch current {
	case syntax.TokenShl, syntax.TokenShlEq, syntax.TokenLtEq:
		return l.eat(1, syntax.TokenLAngle)
	}
	return current
}

// relexJsxIdentifier rescans an identifier or keyword as a JSX name, which may
// contain '-' but ends before ':'.
func (l *Lexer) relexJsxIdentifier(current syntax.Kind) syntax.Kind {
	if current != syntax.TokenIdent && !current.IsKeyword() {
		return current
	}
	for l.pos < len(l.source) {
		b := l.source[l.pos]
		if b == '-' || (b < utf8.RuneSelf && isASCIIIdentPart(b)) {
			l.pos++
			continue
		}
		if b < utf8.RuneSelf {
			break
		}
		r, size := utf8.DecodeRuneInString(l.source[l.pos:])
		if !isIDContinue(r) {
			break
		}
		l.pos += size
	}
	if l.pos == l.start {
		return current
	}
	return syntax.TokenJsxIdent
}

// lexRegex scans a regular expression literal starting at '/'. The body is
// only delimited here; its pattern syntax is not validated.
func (l *Lexer) lexRegex() syntax.Kind {
	start := l.pos
	l.pos++
	inClass := false
	for {
		if l.pos >= len(l.source) || l.atLineTerminator() {
			where := "the line ends here"
			if l.pos >= len(l.source) {
				where = "the file ends here"
			}
			l.push(diagnostics.Error(l.file, "unterminated regex literal", syntax.EmptyRange(l.pos)).
				WithPrimaryLabel(where).
				WithSecondary(syntax.NewRange(start, start+1), "the regex starts here"))
			return syntax.TokenRegex
		}
		b := l.source[l.pos]
		l.pos++
		switch b {
		case '\\':
			if l.pos < len(l.source) && !l.atLineTerminator() {
				_, size := utf8.DecodeRuneInString(l.source[l.pos:])
				l.pos += size
			}
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				l.lexRegexFlags()
				return syntax.TokenRegex
			}
		}
	}
}

const regexFlags = "dgimsuyv"

func (l *Lexer) lexRegexFlags() {
	var seen [8]bool
	for l.pos < len(l.source) {
		r, size := utf8.DecodeRuneInString(l.source[l.pos:])
		if r == '\\' {
			l.push(diagnostics.Error(l.file, "escape sequences are not allowed in regex flags", syntax.NewRange(l.pos, l.pos+1)))
			l.pos++
			continue
		}
		if !isIDContinue(r) {
			break
		}
		flag := syntax.NewRange(l.pos, l.pos+size)
		l.pos += size
		switch i := strings.IndexRune(regexFlags, r); {
		case i < 0:
			l.push(diagnostics.Error(l.file, fmt.Sprintf("invalid regex flag %q", r), flag).
				WithHint("valid flags are d, g, i, m, s, u, v and y"))
		case seen[i]:
			l.push(diagnostics.Error(l.file, fmt.Sprintf("duplicate flag %q in regex literal", r), flag))
		default:
			seen[i] = true
		}
	}
	if seen[5] && seen[7] {
		l.push(diagnostics.Error(l.file, "the u and v regex flags cannot be combined", syntax.NewRange(l.start, l.pos)))
	}
}
