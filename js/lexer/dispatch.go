package lexer

// dispatch is the coarse category of a token's first byte.
type dispatch uint8

const (
	dispError dispatch = iota
	dispWhitespace
	dispNewline
	dispBang
	dispQuote
	dispIdent
	dispHash
	dispPercent
	dispAmp
	dispLParen
	dispRParen
	dispStar
	dispPlus
	dispComma
	dispMinus
	dispPeriod
	dispSlash
	dispZero
	dispDigit
	dispColon
	dispSemicolon
	dispLess
	dispEq
	dispMore
	dispQuestion
	dispAt
	dispLBrack
	dispBackslash
	dispRBrack
	dispCaret
	dispBacktick
	dispLCurly
	dispPipe
	dispRCurly
	dispTilde
	dispUnicode
)

// dispatchTable maps every possible first byte to its category so NextToken
// branches once per token instead of comparing characters.
var dispatchTable = buildDispatchTable()

func buildDispatchTable() [256]dispatch {
	var t [256]dispatch
	for b := 0x80; b < 0x100; b++ {
		t[b] = dispUnicode
	}
	for b := 'a'; b <= 'z'; b++ {
		t[b] = dispIdent
	}
	for b := 'A'; b <= 'Z'; b++ {
		t[b] = dispIdent
	}
	t['$'] = dispIdent
	t['_'] = dispIdent
	t['0'] = dispZero
	for b := '1'; b <= '9'; b++ {
		t[b] = dispDigit
	}
	t[' '] = dispWhitespace
	t['\t'] = dispWhitespace
	t['\v'] = dispWhitespace
	t['\f'] = dispWhitespace
	t['\n'] = dispNewline
	t['\r'] = dispNewline
	t['!'] = dispBang
	t['"'] = dispQuote
	t['\''] = dispQuote
	t['#'] = dispHash
	t['%'] = dispPercent
	t['&'] = dispAmp
	t['('] = dispLParen
	t[')'] = dispRParen
	t['*'] = dispStar
	t['+'] = dispPlus
	t[','] = dispComma
	t['-'] = dispMinus
	t['.'] = dispPeriod
	t['/'] = dispSlash
	t[':'] = dispColon
	t[';'] = dispSemicolon
	t['<'] = dispLess
	t['='] = dispEq
	t['>'] = dispMore
	t['?'] = dispQuestion
	t['@'] = dispAt
	t['['] = dispLBrack
	t['\\'] = dispBackslash
	t[']'] = dispRBrack
	t['^'] = dispCaret
	t['`'] = dispBacktick
	t['{'] = dispLCurly
	t['|'] = dispPipe
	t['}'] = dispRCurly
	t['~'] = dispTilde
	return t
}

// unicodeSpaceLead marks the leading UTF-8 bytes of every non-ASCII character
// ECMAScript treats as whitespace or a line terminator. Characters starting
// with any other byte skip the whitespace lookup entirely.
var unicodeSpaceLead = [256]bool{
	0xC2: true, // U+00A0
	0xE1: true, // U+1680
	0xE2: true, // U+2000..U+200A, U+2028, U+2029, U+202F, U+205F
	0xE3: true, // U+3000
	0xEF: true, // U+FEFF
}
