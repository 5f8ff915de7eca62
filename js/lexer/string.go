package lexer

import (
	"unicode/utf8"

	"github.com/dhamidi/jsfront/js/diagnostics"
	"github.com/dhamidi/jsfront/js/syntax"
)

func (l *Lexer) lexString(quote byte) syntax.Kind {
	start := l.pos
	l.pos++
	for l.pos < len(l.source) {
		b := l.source[l.pos]
		switch {
		case b == quote:
			l.pos++
			return syntax.TokenString
		case b == '\\':
			l.lexEscape(false, true)
		case b == '\n' || b == '\r':
			l.unterminatedString(start, "the line ends here")
			return syntax.TokenString
		default:
			l.pos++
		}
	}
	l.unterminatedString(start, "the file ends here")
	return syntax.TokenString
}

func (l *Lexer) unterminatedString(start int, where string) {
	l.push(diagnostics.Error(l.file, "unterminated string literal", syntax.EmptyRange(l.pos)).
		WithPrimaryLabel(where).
		WithSecondary(syntax.NewRange(start, start+1), "the string starts here"))
}

// lexEscape consumes one escape sequence starting at the backslash. Each
// malformed escape produces its own diagnostic. When report is false (tagged
// templates) the sequence is consumed without validation.
func (l *Lexer) lexEscape(template, report bool) {
	start := l.pos
	l.pos++
	if l.pos >= len(l.source) {
		return
	}
	b := l.source[l.pos]
	switch b {
	case '\r':
		l.pos++
		if l.peek(0) == '\n' && l.pos < len(l.source) {
			l.pos++
		}
	case '\n':
		l.pos++
	case 'x':
		l.pos++
		for i := 0; i < 2; i++ {
			if l.pos >= len(l.source) || !isHexDigit(l.source[l.pos]) {
				if report {
					l.push(diagnostics.Error(l.file, "invalid hexadecimal escape sequence", syntax.NewRange(start, l.pos)).
						WithHint("expected exactly two hexadecimal digits, like \\x41"))
				}
				return
			}
			l.pos++
		}
	case 'u':
		l.pos++
		l.readUnicodeEscape(start, report)
	case '0':
		l.pos++
		if !isDecimalDigit(l.peek(0)) || l.pos >= len(l.source) {
			return
		}
		l.lexLegacyOctalEscape(start, template, report)
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		l.lexLegacyOctalEscape(start, template, report)
	default:
		_, size := utf8.DecodeRuneInString(l.source[l.pos:])
		l.pos += size
	}
}

func (l *Lexer) lexLegacyOctalEscape(start int, template, report bool) {
	if b := l.source[l.pos]; b == '8' || b == '9' {
		l.pos++
	} else {
		for i := 0; i < 3 && l.pos < len(l.source) && isOctalDigit(l.source[l.pos]); i++ {
			l.pos++
		}
	}
	if template {
		if report {
			l.push(diagnostics.Error(l.file, "octal escape sequences are not allowed in template literals", syntax.NewRange(start, l.pos)))
		}
		return
	}
	l.flags |= FlagOctalEscape
}

// lexTemplateElement scans one piece of a template literal: the closing
// backtick, a '${' opening a substitution, or a run of literal text.
func (l *Lexer) lexTemplateElement(tagged bool) syntax.Kind {
	switch l.source[l.pos] {
	case '`':
		l.pos++
		return syntax.TokenBacktick
	case '$':
		if l.peek(1) == '{' {
			l.pos += 2
			return syntax.TokenDollarCurly
		}
	}
	for l.pos < len(l.source) {
		switch l.source[l.pos] {
		case '`':
			return syntax.TokenTemplateChunk
		case '$':
			if l.peek(1) == '{' {
				return syntax.TokenTemplateChunk
			}
			l.pos++
		case '\\':
			l.lexEscape(true, !tagged)
		default:
			l.pos++
		}
	}
	return syntax.TokenTemplateChunk
}
