package parser

import (
	"github.com/dhamidi/jsfront/js/diagnostics"
	"github.com/dhamidi/jsfront/js/lexer"
	"github.com/dhamidi/jsfront/js/syntax"
)

// Trivia is a whitespace, line break, comment or hashbang token that the
// parser skipped. Trivia are recorded in source order.
type Trivia struct {
	Kind  syntax.Kind
	Range syntax.TextRange
}

type lookaheadToken struct {
	kind  syntax.Kind
	rng   syntax.TextRange
	flags lexer.TokenFlags
	after lexer.Checkpoint
}

// TokenSource sits between the lexer and the parser. It hides trivia, keeps
// the current token, and answers bounded lookahead queries from a cache of
// tokens lexed in the Regular context.
type TokenSource struct {
	lexer     *lexer.Lexer
	trivia    []Trivia
	lookahead []lookaheadToken
}

type TokenSourceCheckpoint struct {
	lexer  lexer.Checkpoint
	trivia int
}

// NewTokenSource positions the source at the first non-trivia token.
func NewTokenSource(l *lexer.Lexer) *TokenSource {
	s := &TokenSource{lexer: l}
	s.next(lexer.Regular)
	return s
}

func (s *TokenSource) next(ctx lexer.Context) {
	for {
		kind := s.lexer.NextToken(ctx)
		if !kind.IsTrivia() {
			return
		}
		s.trivia = append(s.trivia, Trivia{Kind: kind, Range: s.lexer.CurrentRange()})
	}
}

func (s *TokenSource) Source() string {
	return s.lexer.Source()
}

func (s *TokenSource) Current() syntax.Kind {
	return s.lexer.Current()
}

func (s *TokenSource) CurrentRange() syntax.TextRange {
	return s.lexer.CurrentRange()
}

func (s *TokenSource) CurrentFlags() lexer.TokenFlags {
	return s.lexer.CurrentFlags()
}

// Position is the start offset of the current token.
func (s *TokenSource) Position() int {
	return s.lexer.CurrentStart()
}

func (s *TokenSource) HasPrecedingLineBreak() bool {
	return s.lexer.HasPrecedingLineBreak()
}

// Nth returns the kind of the n-th non-trivia token after the current one;
// Nth(0) is the current token. Lookahead tokens are lexed in the Regular
// context.
func (s *TokenSource) Nth(n int) syntax.Kind {
	if n == 0 {
		return s.Current()
	}
	return s.nth(n).kind
}

func (s *TokenSource) NthRange(n int) syntax.TextRange {
	if n == 0 {
		return s.CurrentRange()
	}
	return s.nth(n).rng
}

func (s *TokenSource) HasNthPrecedingLineBreak(n int) bool {
	if n == 0 {
		return s.HasPrecedingLineBreak()
	}
	return s.nth(n).flags.Has(lexer.FlagPrecedingLineBreak)
}

func (s *TokenSource) nth(n int) lookaheadToken {
	if len(s.lookahead) < n {
		s.fill(n)
	}
	return s.lookahead[n-1]
}

func (s *TokenSource) fill(n int) {
	if s.Current() == syntax.EOF {
		for len(s.lookahead) < n {
			s.lookahead = append(s.lookahead, lookaheadToken{kind: syntax.EOF, rng: s.CurrentRange(), after: s.lexer.Checkpoint()})
		}
		return
	}
	restore := s.lexer.Checkpoint()
	if k := len(s.lookahead); k > 0 {
		s.lexer.Rewind(s.lookahead[k-1].after)
	}
	for len(s.lookahead) < n {
		kind := s.lexer.NextToken(lexer.Regular)
		for kind.IsTrivia() {
			kind = s.lexer.NextToken(lexer.Regular)
		}
		s.lookahead = append(s.lookahead, lookaheadToken{
			kind:  kind,
			rng:   s.lexer.CurrentRange(),
			flags: s.lexer.CurrentFlags(),
			after: s.lexer.Checkpoint(),
		})
	}
	s.lexer.Rewind(restore)
}

// Bump moves to the next non-trivia token, lexing it under ctx. The lookahead
// cache survives only Regular bumps.
func (s *TokenSource) Bump(ctx lexer.Context) {
	if s.Current() == syntax.EOF {
		return
	}
	if ctx == lexer.Regular && len(s.lookahead) > 0 {
		s.lookahead = s.lookahead[1:]
	} else {
		s.lookahead = s.lookahead[:0]
	}
	s.next(ctx)
}

// ReLex re-interprets the current token. The lookahead cache is dropped when
// the token changes.
func (s *TokenSource) ReLex(ctx lexer.ReLexContext) syntax.Kind {
	before := s.Current()
	kind := s.lexer.ReLex(ctx)
	if kind != before {
		s.lookahead = s.lookahead[:0]
	}
	return kind
}

func (s *TokenSource) Checkpoint() TokenSourceCheckpoint {
	return TokenSourceCheckpoint{lexer: s.lexer.Checkpoint(), trivia: len(s.trivia)}
}

func (s *TokenSource) Rewind(c TokenSourceCheckpoint) {
	s.lexer.Rewind(c.lexer)
	s.trivia = s.trivia[:c.trivia]
	s.lookahead = s.lookahead[:0]
}

// Trivia returns the trivia skipped so far.
func (s *TokenSource) Trivia() []Trivia {
	return s.trivia
}

// finish returns the collected trivia and lexical diagnostics once the
// parser reached the end of the input.
func (s *TokenSource) finish() ([]Trivia, []diagnostics.Diagnostic) {
	return s.trivia, s.lexer.Diagnostics()
}
