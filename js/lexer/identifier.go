package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/jsfront/js/diagnostics"
	"github.com/dhamidi/jsfront/js/syntax"
)

func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\v', '\f', '\uFEFF':
		return true
	}
	return r >= utf8.RuneSelf && unicode.Is(unicode.Zs, r)
}

func isDecimalDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return isDecimalDigit(b) || (b|0x20 >= 'a' && b|0x20 <= 'f')
}

func isOctalDigit(b byte) bool {
	return b >= '0' && b <= '7'
}

func isBinaryDigit(b byte) bool {
	return b == '0' || b == '1'
}

func hexValue(b byte) rune {
	switch {
	case isDecimalDigit(b):
		return rune(b - '0')
	default:
		return rune(b|0x20-'a') + 10
	}
}

func isASCIIIdentPart(b byte) bool {
	return dispatchTable[b] == dispIdent || dispatchTable[b] == dispZero || dispatchTable[b] == dispDigit
}

// isIDStart reports whether r may start an identifier (ID_Start, '$', '_').
func isIDStart(r rune) bool {
	if r < utf8.RuneSelf {
		return dispatchTable[r] == dispIdent
	}
	return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r) || unicode.Is(unicode.Other_ID_Start, r)
}

// isIDContinue reports whether r may continue an identifier (ID_Continue,
// '$', ZWNJ, ZWJ).
func isIDContinue(r rune) bool {
	if r < utf8.RuneSelf {
		return isASCIIIdentPart(byte(r))
	}
	if isIDStart(r) || r == '\u200C' || r == '\u200D' {
		return true
	}
	return unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue)
}

// lexIdentifier scans an identifier or keyword starting at l.pos. Identifier
// characters may be spelled as \u escapes; the decoded text is what the
// keyword table sees, and the token is flagged so the parser can reject
// escaped keywords.
func (l *Lexer) lexIdentifier() syntax.Kind {
	start := l.pos
	var decoded strings.Builder
	escaped := false
	first := true

	for l.pos < len(l.source) {
		b := l.source[l.pos]
		switch {
		case b < utf8.RuneSelf && isASCIIIdentPart(b):
			if first && !isIDStart(rune(b)) {
				return l.finishIdentifier(start, escaped, &decoded)
			}
			l.pos++
			if escaped {
				decoded.WriteByte(b)
			}
		case b == '\\':
			if !escaped {
				escaped = true
				decoded.WriteString(l.source[start:l.pos])
			}
			r, ok := l.lexIdentifierEscape(first)
			if ok {
				decoded.WriteRune(r)
			}
		case b >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(l.source[l.pos:])
			if (first && !isIDStart(r)) || !isIDContinue(r) {
				return l.finishIdentifier(start, escaped, &decoded)
			}
			l.pos += size
			if escaped {
				decoded.WriteRune(r)
			}
		default:
			return l.finishIdentifier(start, escaped, &decoded)
		}
		first = false
	}
	return l.finishIdentifier(start, escaped, &decoded)
}

func (l *Lexer) finishIdentifier(start int, escaped bool, decoded *strings.Builder) syntax.Kind {
	text := l.source[start:l.pos]
	if escaped {
		l.flags |= FlagUnicodeEscape
		text = decoded.String()
	}
	return syntax.LookupKeyword(text)
}

// lexIdentifierEscape consumes a \u escape inside an identifier and checks the
// escaped character is valid at its position.
func (l *Lexer) lexIdentifierEscape(first bool) (rune, bool) {
	start := l.pos
	l.pos++
	if l.peek(0) != 'u' {
		if l.pos < len(l.source) {
			_, size := utf8.DecodeRuneInString(l.source[l.pos:])
			l.pos += size
		}
		l.push(diagnostics.Error(l.file, "unexpected escape sequence in identifier", syntax.NewRange(start, l.pos)).
			WithHint("only \\u escapes are allowed in identifiers"))
		return 0, false
	}
	l.pos++
	r, ok := l.readUnicodeEscape(start, true)
	if !ok {
		return 0, false
	}
	valid := isIDContinue(r)
	if first {
		valid = isIDStart(r)
	}
	if !valid {
		l.push(diagnostics.Error(l.file, "escaped character is not valid in an identifier", syntax.NewRange(start, l.pos)))
		return r, false
	}
	return r, true
}

// readUnicodeEscape reads the part of a unicode escape after "\u": either
// exactly four hex digits or a braced code point no larger than 0x10FFFF.
// escStart is the offset of the backslash.
func (l *Lexer) readUnicodeEscape(escStart int, report bool) (rune, bool) {
	if l.peek(0) == '{' && l.pos < len(l.source) {
		l.pos++
		var value rune
		digits := 0
		tooLarge := false
		for l.pos < len(l.source) && isHexDigit(l.source[l.pos]) {
			value = value*16 + hexValue(l.source[l.pos])
			if value > unicode.MaxRune {
				tooLarge = true
				value = unicode.MaxRune + 1
			}
			digits++
			l.pos++
		}
		if digits == 0 || l.peek(0) != '}' || l.pos >= len(l.source) {
			if report {
				l.push(diagnostics.Error(l.file, "invalid unicode escape sequence", syntax.NewRange(escStart, l.pos)).
					WithHint("expected a code point in braces, like \\u{1F600}"))
			}
			return 0, false
		}
		l.pos++
		if tooLarge {
			if report {
				l.push(diagnostics.Error(l.file, "out of bounds code point in unicode escape", syntax.NewRange(escStart, l.pos)).
					WithHint("code points must not exceed 0x10FFFF"))
			}
			return 0, false
		}
		return value, true
	}

	var value rune
	for i := 0; i < 4; i++ {
		if l.pos >= len(l.source) || !isHexDigit(l.source[l.pos]) {
			if report {
				l.push(diagnostics.Error(l.file, "invalid unicode escape sequence", syntax.NewRange(escStart, l.pos)).
					WithHint("expected exactly four hexadecimal digits"))
			}
			return 0, false
		}
		value = value*16 + hexValue(l.source[l.pos])
		l.pos++
	}
	return value, true
}
