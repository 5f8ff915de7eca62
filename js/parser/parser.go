package parser

import (
	"fmt"
	"slices"
	"sort"

	"github.com/dhamidi/jsfront/js/diagnostics"
	"github.com/dhamidi/jsfront/js/lexer"
	"github.com/dhamidi/jsfront/js/syntax"
)

type Option func(*config)

type config struct {
	file       diagnostics.FileID
	sourceType SourceType
}

// WithFile tags every diagnostic with id.
func WithFile(id diagnostics.FileID) Option {
	return func(c *config) {
		c.file = id
	}
}

func WithSourceType(st SourceType) Option {
	return func(c *config) {
		c.sourceType = st
	}
}

// Result is the output of a parse: the event list describing the tree, the
// trivia the parser skipped, and every diagnostic ordered by position.
type Result struct {
	Source      string
	SourceType  SourceType
	Events      []Event
	Trivia      []Trivia
	Diagnostics []diagnostics.Diagnostic
}

// HasErrors reports whether any diagnostic is an error.
func (r *Result) HasErrors() bool {
	return diagnostics.HasErrors(r.Diagnostics)
}

// Walk replays the tree into sink.
func (r *Result) Walk(sink Sink) {
	ProcessEvents(r.Events, sink)
}

// Parse parses source as a script or module, depending on the source type.
// Syntax errors never make Parse fail: they are reported as diagnostics and
// the tree still covers the whole input. The only error is
// lexer.ErrInvalidUTF8.
func Parse(source string, opts ...Option) (*Result, error) {
	return run(source, opts, (*Parser).parseRoot)
}

// ParseExpression parses source as a single expression.
func ParseExpression(source string, opts ...Option) (*Result, error) {
	return run(source, opts, (*Parser).parseExpressionSnippet)
}

func run(source string, opts []Option, entry func(*Parser)) (*Result, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	lex, err := lexer.New(source, cfg.file)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	p := newParser(lex, cfg)
	entry(p)
	p.assertMarkersResolved()

	trivia, lexDiags := p.tokens.finish()
	diags := make([]diagnostics.Diagnostic, 0, len(lexDiags)+len(p.diagnostics))
	diags = append(diags, lexDiags...)
	diags = append(diags, p.diagnostics...)
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Primary.Range.Start < diags[j].Primary.Range.Start
	})
	return &Result{
		Source:      source,
		SourceType:  cfg.sourceType,
		Events:      p.events,
		Trivia:      trivia,
		Diagnostics: diags,
	}, nil
}

// Parser turns tokens into events. It is single-use: one Parser per parse.
type Parser struct {
	tokens      *TokenSource
	file        diagnostics.FileID
	sourceType  SourceType
	events      []Event
	diagnostics []diagnostics.Diagnostic
	open        []int
	lastEnd     int
	state       state
	// notArrow remembers offsets where a parenthesized arrow function was
	// tried and rejected.
	notArrow map[int]bool
}

func newParser(lex *lexer.Lexer, cfg config) *Parser {
	p := &Parser{
		tokens:     NewTokenSource(lex),
		file:       cfg.file,
		sourceType: cfg.sourceType,
		notArrow:   make(map[int]bool),
	}
	p.state.flags = topLevel
	if cfg.sourceType.IsModule() {
		p.state.strict = strictModule
	}
	if cfg.sourceType.Definition {
		p.state.flags |= inAmbient
	}
	return p
}

// Checkpoint captures everything a speculative parse can change.
type Checkpoint struct {
	tokens      TokenSourceCheckpoint
	events      int
	diagnostics int
	lastEnd     int
	open        []int
}

func (p *Parser) checkpoint() Checkpoint {
	cp := Checkpoint{
		tokens:      p.tokens.Checkpoint(),
		events:      len(p.events),
		diagnostics: len(p.diagnostics),
		lastEnd:     p.lastEnd,
	}
	if checkMarkers {
		cp.open = slices.Clone(p.open)
	}
	return cp
}

func (p *Parser) rewind(cp Checkpoint) {
	p.tokens.Rewind(cp.tokens)
	p.events = p.events[:cp.events]
	p.diagnostics = p.diagnostics[:cp.diagnostics]
	p.lastEnd = cp.lastEnd
	if checkMarkers {
		p.open = cp.open
	}
}

func (p *Parser) cur() syntax.Kind {
	return p.tokens.Current()
}

func (p *Parser) at(kind syntax.Kind) bool {
	return p.tokens.Current() == kind
}

func (p *Parser) atSet(set syntax.TokenSet) bool {
	return set.Contains(p.tokens.Current())
}

func (p *Parser) nth(n int) syntax.Kind {
	return p.tokens.Nth(n)
}

func (p *Parser) nthAt(n int, kind syntax.Kind) bool {
	return p.tokens.Nth(n) == kind
}

func (p *Parser) curRange() syntax.TextRange {
	return p.tokens.CurrentRange()
}

func (p *Parser) curText() string {
	return p.text(p.curRange())
}

func (p *Parser) text(r syntax.TextRange) string {
	return p.tokens.Source()[r.Start:r.End]
}

func (p *Parser) hasPrecedingLineBreak() bool {
	return p.tokens.HasPrecedingLineBreak()
}

func (p *Parser) hasNthPrecedingLineBreak(n int) bool {
	return p.tokens.HasNthPrecedingLineBreak(n)
}

func (p *Parser) isTS() bool {
	return p.sourceType.IsTypeScript()
}

func (p *Parser) isJSX() bool {
	return p.sourceType.IsJsx()
}

func (p *Parser) isModule() bool {
	return p.sourceType.IsModule()
}

// bump consumes the current token, which must be kind.
func (p *Parser) bump(kind syntax.Kind) {
	p.bumpWith(kind, lexer.Regular)
}

// bumpWith consumes the current token and lexes the next one under ctx.
func (p *Parser) bumpWith(kind syntax.Kind, ctx lexer.Context) {
	if !p.at(kind) {
		panic(fmt.Sprintf("parser: expected to bump %s but the current token is %s", kind, p.cur()))
	}
	if kind.IsKeyword() && p.tokens.CurrentFlags().Has(lexer.FlagUnicodeEscape) {
		p.errAt("keywords cannot contain escape sequences", p.curRange())
	}
	p.push(kind, ctx)
}

// bumpAny consumes the current token whatever it is. It does nothing at the
// end of the file.
func (p *Parser) bumpAny() {
	if p.at(syntax.EOF) {
		return
	}
	p.push(p.cur(), lexer.Regular)
}

// bumpRemap consumes the current token as kind. Keywords used as names are
// remapped to identifiers this way.
func (p *Parser) bumpRemap(kind syntax.Kind) {
	p.bumpRemapWith(kind, lexer.Regular)
}

func (p *Parser) bumpRemapWith(kind syntax.Kind, ctx lexer.Context) {
	if p.at(syntax.EOF) {
		panic("parser: cannot remap the end of the file")
	}
	p.push(kind, ctx)
}

func (p *Parser) push(kind syntax.Kind, ctx lexer.Context) {
	r := p.curRange()
	p.events = append(p.events, Event{Type: EventToken, Kind: kind, Range: r})
	p.lastEnd = r.End
	p.tokens.Bump(ctx)
}

// eat consumes the current token if it is kind.
func (p *Parser) eat(kind syntax.Kind) bool {
	if !p.at(kind) {
		return false
	}
	p.bump(kind)
	return true
}

// expect consumes kind or reports that it is missing.
func (p *Parser) expect(kind syntax.Kind) bool {
	return p.expectWith(kind, lexer.Regular)
}

func (p *Parser) expectWith(kind syntax.Kind, ctx lexer.Context) bool {
	if p.at(kind) {
		p.bumpWith(kind, ctx)
		return true
	}
	p.error(p.expectedDiagnostic(kind.Describe(), p.curRange()))
	return false
}

func (p *Parser) relex(ctx lexer.ReLexContext) syntax.Kind {
	return p.tokens.ReLex(ctx)
}

func (p *Parser) error(d diagnostics.Diagnostic) {
	p.diagnostics = append(p.diagnostics, d)
}

func (p *Parser) errAt(message string, r syntax.TextRange) {
	p.error(diagnostics.Error(p.file, message, r))
}

func (p *Parser) expectedDiagnostic(what string, r syntax.TextRange) diagnostics.Diagnostic {
	if p.at(syntax.EOF) {
		return diagnostics.Error(p.file, fmt.Sprintf("expected %s but instead the file ends", what), r).
			WithPrimaryLabel("the file ends here")
	}
	return diagnostics.Error(p.file, fmt.Sprintf("expected %s but instead found '%s'", what, p.curText()), r).
		WithPrimaryLabel("expected " + what + " here")
}

// tsOnly reports syntax that is only valid in TypeScript files when parsing
// JavaScript. The syntax is still part of the tree.
func (p *Parser) tsOnly(what string, r syntax.TextRange) {
	if !p.isTS() {
		p.error(diagnostics.Error(p.file, what+" are a TypeScript only feature", r).
			WithHint("convert this file to a TypeScript file or remove the syntax"))
	}
}

// atStatementEnd is the automatic semicolon insertion predicate: an explicit
// ';', the end of the file, a '}', or a line break before the current token.
func (p *Parser) atStatementEnd() bool {
	return p.at(syntax.TokenSemicolon) || p.at(syntax.EOF) || p.at(syntax.TokenRCurly) || p.hasPrecedingLineBreak()
}

// semicolon terminates a statement that started at start, consuming an
// explicit ';' or relying on automatic semicolon insertion.
func (p *Parser) semicolon(start int) bool {
	if p.eat(syntax.TokenSemicolon) {
		return true
	}
	if p.atStatementEnd() {
		return true
	}
	end := p.lastEnd
	if end < start {
		end = start
	}
	p.error(diagnostics.Error(p.file, "expected a semicolon or an implicit semicolon after a statement, but found none", p.curRange()).
		WithPrimaryLabel("an explicit or implicit semicolon is expected here...").
		WithSecondary(syntax.NewRange(start, end), "...which is required to end this statement"))
	return false
}
