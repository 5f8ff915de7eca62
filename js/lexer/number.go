package lexer

import (
	"unicode/utf8"

	"github.com/dhamidi/jsfront/js/diagnostics"
	"github.com/dhamidi/jsfront/js/syntax"
)

// lexNumber scans a numeric literal: decimal, 0x/0b/0o radix literals, legacy
// octal, fractions, exponents and the BigInt suffix. Malformed literals still
// produce a number token; the problems are reported as diagnostics.
func (l *Lexer) lexNumber() syntax.Kind {
	kind := syntax.TokenNumber
	if l.source[l.pos] == '0' {
		switch l.peek(1) | 0x20 {
		case 'x':
			kind = l.lexRadixNumber(isHexDigit, "hexadecimal")
			return l.verifyNumberEnd(kind)
		case 'b':
			kind = l.lexRadixNumber(isBinaryDigit, "binary")
			return l.verifyNumberEnd(kind)
		case 'o':
			kind = l.lexRadixNumber(isOctalDigit, "octal")
			return l.verifyNumberEnd(kind)
		}
		if isDecimalDigit(l.peek(1)) || l.peek(1) == '_' {
			return l.verifyNumberEnd(l.lexLegacyNumber())
		}
	}

	integer := l.source[l.pos] != '.'
	if integer {
		l.consumeDigits(isDecimalDigit)
	}
	if l.peek(0) == '.' && l.pos < len(l.source) {
		integer = false
		l.pos++
		l.consumeDigits(isDecimalDigit)
	}
	if l.lexExponent() {
		integer = false
	}
	if l.peek(0) == 'n' && l.pos < len(l.source) {
		start := l.start
		l.pos++
		if !integer {
			l.push(diagnostics.Error(l.file, "a BigInt literal must be an integer", syntax.NewRange(start, l.pos)))
		}
		kind = syntax.TokenBigInt
	}
	return l.verifyNumberEnd(kind)
}

func (l *Lexer) lexRadixNumber(isDigit func(byte) bool, name string) syntax.Kind {
	l.pos += 2
	if l.consumeDigits(isDigit) == 0 {
		l.push(diagnostics.Error(l.file, "expected a "+name+" digit after the radix prefix", syntax.NewRange(l.start, l.pos)))
	}
	if l.peek(0) == 'n' && l.pos < len(l.source) {
		l.pos++
		return syntax.TokenBigInt
	}
	return syntax.TokenNumber
}

// lexLegacyNumber scans a literal with a leading zero followed by digits.
// Literals made only of octal digits are legacy octal integers; a literal
// containing 8 or 9 is a legacy decimal and may have a fraction or exponent.
// Both are rejected in strict mode by the parser.
func (l *Lexer) lexLegacyNumber() syntax.Kind {
	l.pos++
	octal := true
	for l.pos < len(l.source) {
		b := l.source[l.pos]
		if b == '_' {
			l.push(diagnostics.Error(l.file, "numeric separators are not allowed after a leading 0", syntax.NewRange(l.pos, l.pos+1)))
			l.pos++
			continue
		}
		if !isDecimalDigit(b) {
			break
		}
		if !isOctalDigit(b) {
			octal = false
		}
		l.pos++
	}
	if !octal {
		if l.peek(0) == '.' && l.pos < len(l.source) {
			l.pos++
			l.consumeDigits(isDecimalDigit)
		}
		l.lexExponent()
	}
	if l.peek(0) == 'n' && l.pos < len(l.source) {
		l.pos++
		l.push(diagnostics.Error(l.file, "BigInt literals cannot have a leading zero", syntax.NewRange(l.start, l.pos)))
		return syntax.TokenBigInt
	}
	return syntax.TokenNumber
}

func (l *Lexer) lexExponent() bool {
	if l.peek(0)|0x20 != 'e' || l.pos >= len(l.source) {
		return false
	}
	start := l.pos
	l.pos++
	if b := l.peek(0); b == '+' || b == '-' {
		l.pos++
	}
	if l.consumeDigits(isDecimalDigit) == 0 {
		l.push(diagnostics.Error(l.file, "missing exponent digits", syntax.NewRange(start, l.pos)).
			WithHint("an exponent needs at least one digit, like 1e3"))
	}
	return true
}

// consumeDigits scans a digit run that may contain numeric separators. A
// separator must sit between two digits: it may not lead the run (after a
// radix prefix, '.' or 'e'), trail it, or follow another separator.
func (l *Lexer) consumeDigits(isDigit func(byte) bool) int {
	count := 0
	prevSeparator := false
	for l.pos < len(l.source) {
		b := l.source[l.pos]
		if b == '_' {
			sep := syntax.NewRange(l.pos, l.pos+1)
			l.pos++
			next := l.peek(0)
			if l.pos >= len(l.source) {
				next = 0
			}
			switch {
			case prevSeparator:
				l.push(diagnostics.Error(l.file, "only one underscore is allowed as numeric separator", sep))
			case count == 0:
				l.push(diagnostics.Error(l.file, "numeric separators are not allowed here", sep).
					WithHint("a separator cannot follow a radix prefix, '.', or an exponent marker"))
			case !isDigit(next) && next != '_':
				l.push(diagnostics.Error(l.file, "numeric separators are not allowed at the end of numeric literals", sep))
			}
			prevSeparator = true
			continue
		}
		if !isDigit(b) {
			break
		}
		prevSeparator = false
		count++
		l.pos++
	}
	return count
}

// verifyNumberEnd rejects an identifier start or digit directly after a
// numeric literal ("3in"). The offending characters are folded into the
// literal so the token stream stays in sync with what a reader sees.
func (l *Lexer) verifyNumberEnd(kind syntax.Kind) syntax.Kind {
	if l.pos >= len(l.source) {
		return kind
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.pos:])
	if !isIDStart(r) && r != '\\' && !isDecimalDigit(l.source[l.pos]) {
		return kind
	}
	start := l.pos
	for l.pos < len(l.source) {
		r, size := utf8.DecodeRuneInString(l.source[l.pos:])
		if !isIDContinue(r) && r != '\\' {
			break
		}
		l.pos += size
	}
	l.push(diagnostics.Error(l.file, "numbers cannot be followed by identifiers directly after", syntax.NewRange(start, l.pos)).
		WithPrimaryLabel("an identifier cannot appear here"))
	return kind
}
