// Package lexer turns JavaScript, TypeScript and JSX source text into tokens.
//
// The lexer is driven by the parser one token at a time. Every call to
// NextToken receives a Context because the same bytes mean different things
// inside a template literal, between JSX tags or in a JSX attribute value.
// When the parser learns more about a token after the fact (a '/' that starts
// a regular expression, a '>' that is part of '>>='), it asks the lexer to
// re-lex the current token under a different rule with ReLex.
//
// Trivia (whitespace, line breaks, comments) are returned as ordinary tokens
// so that every byte of the input belongs to exactly one token.
package lexer

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/dhamidi/jsfront/js/diagnostics"
	"github.com/dhamidi/jsfront/js/syntax"
)

// ErrInvalidUTF8 is returned when the source is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("source is not valid UTF-8")

// Context selects the token grammar used by NextToken.
type Context uint8

const (
	Regular Context = iota
	// TemplateElement lexes the inside of an untagged template literal.
	TemplateElement
	// TaggedTemplateElement is TemplateElement without escape validation;
	// tagged templates receive the raw text.
	TaggedTemplateElement
	JsxChild
	JsxAttributeValue
)

// TemplateContext returns the template element context for a tagged or
// untagged template.
func TemplateContext(tagged bool) Context {
	if tagged {
		return TaggedTemplateElement
	}
	return TemplateElement
}

// ReLexContext selects the alternate rule ReLex applies to the current token.
type ReLexContext uint8

const (
	ReLexRegex ReLexContext = iota
	ReLexBinaryOperator
	ReLexTypeArgumentLessThan
	ReLexJsxIdentifier
	ReLexJsxChild
)

type TokenFlags uint8

const (
	// FlagPrecedingLineBreak is set on a non-trivia token when a line break
	// appears between it and the previous non-trivia token.
	FlagPrecedingLineBreak TokenFlags = 1 << iota
	// FlagUnicodeEscape is set on identifiers and keywords spelled with a
	// \u escape.
	FlagUnicodeEscape
	// FlagOctalEscape is set on string literals containing a legacy octal
	// or \8 \9 escape.
	FlagOctalEscape
)

func (f TokenFlags) Has(flag TokenFlags) bool {
	return f&flag != 0
}

// Checkpoint is a snapshot of the lexer state. Rewinding to it restores the
// lexer, including its diagnostics, to the moment it was taken.
type Checkpoint struct {
	pos          int
	start        int
	kind         syntax.Kind
	flags        TokenFlags
	afterNewline bool
	tokenDiags   int
	diagnostics  []diagnostics.Diagnostic
}

// Position is the byte offset the lexer will scan from next.
func (c Checkpoint) Position() int {
	return c.pos
}

// DiagnosticCount is the number of diagnostics recorded when the checkpoint
// was taken.
func (c Checkpoint) DiagnosticCount() int {
	return len(c.diagnostics)
}

type Lexer struct {
	source       string
	file         diagnostics.FileID
	pos          int
	start        int
	kind         syntax.Kind
	flags        TokenFlags
	afterNewline bool
	// tokenDiags is len(diagnostics) before the current token was scanned.
	tokenDiags   int
	diagnostics  []diagnostics.Diagnostic
}

// New creates a lexer over source. Source must be valid UTF-8; the lexer
// slices it by byte offsets everywhere else.
func New(source string, file diagnostics.FileID) (*Lexer, error) {
	if !utf8.ValidString(source) {
		return nil, fmt.Errorf("%w: first invalid byte at offset %d", ErrInvalidUTF8, firstInvalidByte(source))
	}
	return &Lexer{source: source, file: file, kind: syntax.Tombstone}, nil
}

func firstInvalidByte(s string) int {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(s)
}

func (l *Lexer) Source() string {
	return l.source
}

func (l *Lexer) File() diagnostics.FileID {
	return l.file
}

// Current returns the kind of the most recently lexed token.
func (l *Lexer) Current() syntax.Kind {
	return l.kind
}

func (l *Lexer) CurrentRange() syntax.TextRange {
	return syntax.TextRange{Start: l.start, End: l.pos}
}

func (l *Lexer) CurrentStart() int {
	return l.start
}

func (l *Lexer) CurrentFlags() TokenFlags {
	return l.flags
}

func (l *Lexer) HasPrecedingLineBreak() bool {
	return l.flags.Has(FlagPrecedingLineBreak)
}

func (l *Lexer) HasUnicodeEscape() bool {
	return l.flags.Has(FlagUnicodeEscape)
}

// Position is the byte offset the next token starts at.
func (l *Lexer) Position() int {
	return l.pos
}

// Diagnostics returns the lexical errors found so far, in discovery order.
func (l *Lexer) Diagnostics() []diagnostics.Diagnostic {
	return l.diagnostics
}

func (l *Lexer) Checkpoint() Checkpoint {
	return Checkpoint{
		pos:          l.pos,
		start:        l.start,
		kind:         l.kind,
		flags:        l.flags,
		afterNewline: l.afterNewline,
		tokenDiags:   l.tokenDiags,
		diagnostics:  l.diagnostics,
	}
}

// Rewind restores the state captured by c. Diagnostics are only ever
// truncated with a clipped capacity, so the slice held by c still has its
// original contents.
func (l *Lexer) Rewind(c Checkpoint) {
	l.pos = c.pos
	l.start = c.start
	l.kind = c.kind
	l.flags = c.flags
	l.afterNewline = c.afterNewline
	l.tokenDiags = c.tokenDiags
	l.diagnostics = c.diagnostics
}

// NextToken scans the token starting at the current position under ctx and
// returns its kind. It always advances unless the input is exhausted, in
// which case it returns syntax.EOF.
func (l *Lexer) NextToken(ctx Context) syntax.Kind {
	l.start = l.pos
	l.flags = 0
	l.tokenDiags = len(l.diagnostics)

	var kind syntax.Kind
	if l.pos >= len(l.source) {
		kind = syntax.EOF
	} else {
		switch ctx {
		case TemplateElement, TaggedTemplateElement:
			kind = l.lexTemplateElement(ctx == TaggedTemplateElement)
		case JsxChild:
			kind = l.lexJsxChild()
		case JsxAttributeValue:
			kind = l.lexJsxAttributeValue()
		default:
			kind = l.lexToken()
		}
	}
	return l.finishToken(kind)
}

func (l *Lexer) finishToken(kind syntax.Kind) syntax.Kind {
	l.kind = kind
	switch kind {
	case syntax.TokenNewline:
		l.afterNewline = true
	case syntax.TokenMultilineComment:
		if containsLineTerminator(l.source[l.start:l.pos]) {
			l.afterNewline = true
		}
	case syntax.TokenWhitespace, syntax.TokenComment, syntax.TokenHashbang:
	default:
		if l.afterNewline {
			l.flags |= FlagPrecedingLineBreak
		}
		l.afterNewline = false
	}
	return kind
}

func (l *Lexer) lexToken() syntax.Kind {
	b := l.source[l.pos]
	switch dispatchTable[b] {
	case dispWhitespace:
		return l.lexWhitespace()
	case dispNewline:
		return l.lexNewline()
	case dispIdent, dispBackslash:
		return l.lexIdentifier()
	case dispZero, dispDigit:
		return l.lexNumber()
	case dispQuote:
		return l.lexString(b)
	case dispBang:
		if l.peek(1) == '=' {
			if l.peek(2) == '=' {
				return l.eat(3, syntax.TokenNeq2)
			}
			return l.eat(2, syntax.TokenNeq)
		}
		return l.eat(1, syntax.TokenBang)
	case dispHash:
		if l.pos == 0 && l.peek(1) == '!' {
			return l.lexHashbang()
		}
		return l.eat(1, syntax.TokenHash)
	case dispPercent:
		if l.peek(1) == '=' {
			return l.eat(2, syntax.TokenPercentEq)
		}
		return l.eat(1, syntax.TokenPercent)
	case dispAmp:
		switch l.peek(1) {
		case '&':
			if l.peek(2) == '=' {
				return l.eat(3, syntax.TokenAmp2Eq)
			}
			return l.eat(2, syntax.TokenAmp2)
		case '=':
			return l.eat(2, syntax.TokenAmpEq)
		}
		return l.eat(1, syntax.TokenAmp)
	case dispLParen:
		return l.eat(1, syntax.TokenLParen)
	case dispRParen:
		return l.eat(1, syntax.TokenRParen)
	case dispStar:
		switch l.peek(1) {
		case '*':
			if l.peek(2) == '=' {
				return l.eat(3, syntax.TokenStar2Eq)
			}
			return l.eat(2, syntax.TokenStar2)
		case '=':
			return l.eat(2, syntax.TokenStarEq)
		}
		return l.eat(1, syntax.TokenStar)
	case dispPlus:
		switch l.peek(1) {
		case '+':
			return l.eat(2, syntax.TokenPlus2)
		case '=':
			return l.eat(2, syntax.TokenPlusEq)
		}
		return l.eat(1, syntax.TokenPlus)
	case dispComma:
		return l.eat(1, syntax.TokenComma)
	case dispMinus:
		switch l.peek(1) {
		case '-':
			return l.eat(2, syntax.TokenMinus2)
		case '=':
			return l.eat(2, syntax.TokenMinusEq)
		}
		return l.eat(1, syntax.TokenMinus)
	case dispPeriod:
		if isDecimalDigit(l.peek(1)) {
			return l.lexNumber()
		}
		if l.peek(1) == '.' && l.peek(2) == '.' {
			return l.eat(3, syntax.TokenDot3)
		}
		return l.eat(1, syntax.TokenDot)
	case dispSlash:
		switch l.peek(1) {
		case '/':
			return l.lexLineComment()
		case '*':
			return l.lexBlockComment()
		case '=':
			return l.eat(2, syntax.TokenSlashEq)
		}
		return l.eat(1, syntax.TokenSlash)
	case dispColon:
		return l.eat(1, syntax.TokenColon)
	case dispSemicolon:
		return l.eat(1, syntax.TokenSemicolon)
	case dispLess:
		switch l.peek(1) {
		case '<':
			if l.peek(2) == '=' {
				return l.eat(3, syntax.TokenShlEq)
			}
			return l.eat(2, syntax.TokenShl)
		case '=':
			return l.eat(2, syntax.TokenLtEq)
		}
		return l.eat(1, syntax.TokenLAngle)
	case dispEq:
		switch l.peek(1) {
		case '=':
			if l.peek(2) == '=' {
				return l.eat(3, syntax.TokenEq3)
			}
			return l.eat(2, syntax.TokenEq2)
		case '>':
			return l.eat(2, syntax.TokenFatArrow)
		}
		return l.eat(1, syntax.TokenEq)
	case dispMore:
		// Always a single '>'; the parser re-lexes in expression position
		// so nested type argument lists can close one '>' at a time.
		return l.eat(1, syntax.TokenRAngle)
	case dispQuestion:
		switch l.peek(1) {
		case '?':
			if l.peek(2) == '=' {
				return l.eat(3, syntax.TokenQuestion2Eq)
			}
			return l.eat(2, syntax.TokenQuestion2)
		case '.':
			if !isDecimalDigit(l.peek(2)) {
				return l.eat(2, syntax.TokenQuestionDot)
			}
		}
		return l.eat(1, syntax.TokenQuestion)
	case dispAt:
		return l.eat(1, syntax.TokenAt)
	case dispLBrack:
		return l.eat(1, syntax.TokenLBrack)
	case dispRBrack:
		return l.eat(1, syntax.TokenRBrack)
	case dispCaret:
		if l.peek(1) == '=' {
			return l.eat(2, syntax.TokenCaretEq)
		}
		return l.eat(1, syntax.TokenCaret)
	case dispBacktick:
		return l.eat(1, syntax.TokenBacktick)
	case dispLCurly:
		return l.eat(1, syntax.TokenLCurly)
	case dispPipe:
		switch l.peek(1) {
		case '|':
			if l.peek(2) == '=' {
				return l.eat(3, syntax.TokenPipe2Eq)
			}
			return l.eat(2, syntax.TokenPipe2)
		case '=':
			return l.eat(2, syntax.TokenPipeEq)
		}
		return l.eat(1, syntax.TokenPipe)
	case dispRCurly:
		return l.eat(1, syntax.TokenRCurly)
	case dispTilde:
		return l.eat(1, syntax.TokenTilde)
	case dispUnicode:
		return l.lexUnicode()
	}
	return l.lexErrorByte()
}

func (l *Lexer) lexErrorByte() syntax.Kind {
	b := l.source[l.pos]
	l.pos++
	l.push(diagnostics.Error(l.file, fmt.Sprintf("unexpected character %q", rune(b)), l.CurrentRange()))
	return syntax.TokenError
}

func (l *Lexer) lexUnicode() syntax.Kind {
	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	if unicodeSpaceLead[l.source[l.pos]] {
		switch {
		case isLineTerminator(r):
			return l.lexNewline()
		case isWhitespace(r):
			return l.lexWhitespace()
		}
	}
	if isIDStart(r) {
		return l.lexIdentifier()
	}
	l.pos += size
	l.push(diagnostics.Error(l.file, fmt.Sprintf("unexpected character %q", r), l.CurrentRange()))
	return syntax.TokenError
}

func (l *Lexer) lexWhitespace() syntax.Kind {
	for l.pos < len(l.source) {
		b := l.source[l.pos]
		if dispatchTable[b] == dispWhitespace {
			l.pos++
			continue
		}
		if b >= utf8.RuneSelf && unicodeSpaceLead[b] {
			r, size := utf8.DecodeRuneInString(l.source[l.pos:])
			if isWhitespace(r) {
				l.pos += size
				continue
			}
		}
		break
	}
	return syntax.TokenWhitespace
}

func (l *Lexer) lexNewline() syntax.Kind {
	for l.pos < len(l.source) {
		b := l.source[l.pos]
		if b == '\n' || b == '\r' {
			l.pos++
			continue
		}
		if b == 0xE2 {
			r, size := utf8.DecodeRuneInString(l.source[l.pos:])
			if isLineTerminator(r) {
				l.pos += size
				continue
			}
		}
		break
	}
	return syntax.TokenNewline
}

func (l *Lexer) lexHashbang() syntax.Kind {
	for l.pos < len(l.source) && !l.atLineTerminator() {
		l.pos++
	}
	return syntax.TokenHashbang
}

func (l *Lexer) lexLineComment() syntax.Kind {
	l.pos += 2
	for l.pos < len(l.source) && !l.atLineTerminator() {
		l.pos++
	}
	return syntax.TokenComment
}

func (l *Lexer) lexBlockComment() syntax.Kind {
	start := l.pos
	l.pos += 2
	for l.pos < len(l.source) {
		if l.source[l.pos] == '*' && l.peek(1) == '/' {
			l.pos += 2
			return syntax.TokenMultilineComment
		}
		l.pos++
	}
	l.push(diagnostics.Error(l.file, "unterminated block comment", syntax.EmptyRange(l.pos)).
		WithPrimaryLabel("the file ends here").
		WithSecondary(syntax.NewRange(start, start+2), "the comment starts here"))
	return syntax.TokenMultilineComment
}

func (l *Lexer) eat(n int, kind syntax.Kind) syntax.Kind {
	l.pos += n
	return kind
}

func (l *Lexer) peek(n int) byte {
	if l.pos+n >= len(l.source) {
		return 0
	}
	return l.source[l.pos+n]
}

func (l *Lexer) atLineTerminator() bool {
	b := l.source[l.pos]
	if b == '\n' || b == '\r' {
		return true
	}
	if b == 0xE2 {
		r, _ := utf8.DecodeRuneInString(l.source[l.pos:])
		return isLineTerminator(r)
	}
	return false
}

func (l *Lexer) push(d diagnostics.Diagnostic) {
	l.diagnostics = append(l.diagnostics, d)
}

func containsLineTerminator(s string) bool {
	for _, r := range s {
		if isLineTerminator(r) {
			return true
		}
	}
	return false
}
