package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/jsfront/js/lexer"
	"github.com/dhamidi/jsfront/js/syntax"
)

func newTestParser(t *testing.T, src string, st SourceType) *Parser {
	t.Helper()
	lex, err := lexer.New(src, 0)
	require.NoError(t, err)
	return newParser(lex, config{sourceType: st})
}

// recorder is a Sink that writes one line per callback.
type recorder struct {
	lines []string
}

func (r *recorder) StartNode(kind syntax.Kind) {
	r.lines = append(r.lines, "start "+kind.String())
}

func (r *recorder) Token(kind syntax.Kind, rng syntax.TextRange) {
	r.lines = append(r.lines, "token "+kind.String()+" "+rng.String())
}

func (r *recorder) FinishNode() {
	r.lines = append(r.lines, "finish")
}

func replay(p *Parser) []string {
	var r recorder
	ProcessEvents(p.events, &r)
	return r.lines
}

func TestMarkerComplete(t *testing.T) {
	p := newTestParser(t, "a b", JavaScriptModule())
	m := p.start()
	p.bump(syntax.TokenIdent)
	cm := m.Complete(p, syntax.KindName)

	assert.Equal(t, syntax.KindName, cm.Kind())
	assert.Equal(t, syntax.NewRange(0, 1), cm.Range())
	assert.Equal(t, []string{"start Name", "token IDENT 0..1", "finish"}, replay(p))
}

func TestMarkerCompleteEmptyNode(t *testing.T) {
	p := newTestParser(t, "  a", JavaScriptModule())
	cm := p.start().Complete(p, syntax.KindArrayHole)
	assert.Equal(t, syntax.EmptyRange(2), cm.Range())
}

func TestMarkerPrecede(t *testing.T) {
	p := newTestParser(t, "a b", JavaScriptModule())
	m := p.start()
	p.bump(syntax.TokenIdent)
	inner := m.Complete(p, syntax.KindName)

	outer := inner.Precede(p)
	p.bump(syntax.TokenIdent)
	cm := outer.Complete(p, syntax.KindSequenceExpression)

	assert.Equal(t, syntax.NewRange(0, 3), cm.Range())
	assert.Equal(t, []string{
		"start SequenceExpression",
		"start Name",
		"token IDENT 0..1",
		"finish",
		"token IDENT 2..3",
		"finish",
	}, replay(p))
}

func TestMarkerPrecedeTwice(t *testing.T) {
	p := newTestParser(t, "a", JavaScriptModule())
	m := p.start()
	p.bump(syntax.TokenIdent)
	first := m.Complete(p, syntax.KindName)
	second := first.Precede(p).Complete(p, syntax.KindIdentifierExpression)
	second.Precede(p).Complete(p, syntax.KindExpressionStatement)

	assert.Equal(t, []string{
		"start ExpressionStatement",
		"start IdentifierExpression",
		"start Name",
		"token IDENT 0..1",
		"finish",
		"finish",
		"finish",
	}, replay(p))
}

func TestMarkerAbandon(t *testing.T) {
	t.Run("last event is removed", func(t *testing.T) {
		p := newTestParser(t, "a", JavaScriptModule())
		p.start().Abandon(p)
		assert.Empty(t, p.events)
	})
	t.Run("children move to the parent", func(t *testing.T) {
		p := newTestParser(t, "a", JavaScriptModule())
		outer := p.start()
		m := p.start()
		p.bump(syntax.TokenIdent)
		m.Abandon(p)
		outer.Complete(p, syntax.KindName)
		assert.Equal(t, []string{"start Name", "token IDENT 0..1", "finish"}, replay(p))
	})
	t.Run("abandoned precede keeps the child", func(t *testing.T) {
		p := newTestParser(t, "a", JavaScriptModule())
		m := p.start()
		p.bump(syntax.TokenIdent)
		cm := m.Complete(p, syntax.KindName)
		cm.Precede(p).Abandon(p)
		assert.Equal(t, []string{"start Name", "token IDENT 0..1", "finish"}, replay(p))
	})
}

func TestMarkerUndoCompletion(t *testing.T) {
	p := newTestParser(t, "a b", JavaScriptModule())
	m := p.start()
	p.bump(syntax.TokenIdent)
	cm := m.Complete(p, syntax.KindName)

	reopened := cm.UndoCompletion(p)
	p.bump(syntax.TokenIdent)
	reopened.Complete(p, syntax.KindSequenceExpression)

	assert.Equal(t, []string{
		"start SequenceExpression",
		"token IDENT 0..1",
		"token IDENT 2..3",
		"finish",
	}, replay(p))
	p.assertMarkersResolved()
}

func TestMarkerChangeKind(t *testing.T) {
	p := newTestParser(t, "a", JavaScriptModule())
	m := p.start()
	p.bump(syntax.TokenIdent)
	cm := m.Complete(p, syntax.KindIdentifierExpression)

	cm = cm.ChangeKind(p, syntax.KindIdentifierAssignment)
	assert.Equal(t, syntax.KindIdentifierAssignment, cm.Kind())

	cm = cm.ChangeToBogus(p)
	assert.Equal(t, syntax.KindBogusAssignment, cm.Kind())
	assert.Equal(t, "start BogusAssignment", replay(p)[0])
}

func TestMarkerOrderIsChecked(t *testing.T) {
	if !checkMarkers {
		t.Skip("marker checks are disabled in release builds")
	}
	t.Run("outer before inner", func(t *testing.T) {
		p := newTestParser(t, "a", JavaScriptModule())
		outer := p.start()
		p.start()
		assert.Panics(t, func() { outer.Complete(p, syntax.KindName) })
	})
	t.Run("left open", func(t *testing.T) {
		p := newTestParser(t, "a", JavaScriptModule())
		p.start()
		assert.Panics(t, p.assertMarkersResolved)
	})
	t.Run("completed as a token", func(t *testing.T) {
		p := newTestParser(t, "a", JavaScriptModule())
		m := p.start()
		assert.Panics(t, func() { m.Complete(p, syntax.TokenIdent) })
	})
}

func TestCheckpointRewind(t *testing.T) {
	p := newTestParser(t, "a b c", JavaScriptModule())
	p.bump(syntax.TokenIdent)
	cp := p.checkpoint()

	m := p.start()
	p.bump(syntax.TokenIdent)
	p.errAt("speculative", p.curRange())
	m.Complete(p, syntax.KindName)
	require.Len(t, p.diagnostics, 1)

	p.rewind(cp)
	assert.Empty(t, p.diagnostics)
	assert.Len(t, p.events, 1)
	assert.Equal(t, syntax.NewRange(2, 3), p.curRange())
	assert.Equal(t, 1, p.lastEnd)
	p.assertMarkersResolved()
}

func TestParsedSyntax(t *testing.T) {
	p := newTestParser(t, "a", JavaScriptModule())
	assert.True(t, Absent.IsAbsent())
	assert.Equal(t, syntax.Tombstone, Absent.Kind())

	called := false
	got := Absent.Or(func() ParsedSyntax {
		called = true
		return p.parseIdentifierExpression()
	})
	assert.True(t, called)
	assert.Equal(t, syntax.KindIdentifierExpression, got.Kind())

	same := got.Or(func() ParsedSyntax {
		t.Fatal("alternative must not run when present")
		return Absent
	})
	assert.Equal(t, got, same)

	_, ok := Absent.OrAddDiagnostic(p, expected("a thing"))
	assert.False(t, ok)
	require.Len(t, p.diagnostics, 1)
	assert.Equal(t, "expected a thing but instead the file ends", p.diagnostics[0].Message)
}

func TestAbsentStatementHasNoSideEffects(t *testing.T) {
	for _, src := range []string{")", "]", "else", "case 1:", "}"} {
		t.Run(src, func(t *testing.T) {
			p := newTestParser(t, src, JavaScriptModule())
			start := p.cur()
			events := len(p.events)

			assert.True(t, p.parseStatement().IsAbsent())
			assert.Empty(t, p.diagnostics)
			assert.Len(t, p.events, events)
			assert.Equal(t, start, p.cur())

			_, ok := p.parseSubStatement()
			assert.False(t, ok)
			require.Len(t, p.diagnostics, 1)
			assert.Contains(t, p.diagnostics[0].Message, "expected a statement")
			assert.Equal(t, start, p.cur())
		})
	}
}

func TestParseRecovery(t *testing.T) {
	set := syntax.NewTokenSet(syntax.TokenSemicolon)

	t.Run("skips into a bogus node", func(t *testing.T) {
		p := newTestParser(t, "a b ; c", JavaScriptModule())
		cm, err := NewRecovery(syntax.KindBogusStatement, set).Recover(p)
		require.NoError(t, err)
		assert.Equal(t, syntax.KindBogusStatement, cm.Kind())
		assert.Equal(t, syntax.NewRange(0, 3), cm.Range())
		assert.True(t, p.at(syntax.TokenSemicolon))
	})
	t.Run("already at a recovery point", func(t *testing.T) {
		p := newTestParser(t, "; a", JavaScriptModule())
		_, err := NewRecovery(syntax.KindBogus, set).Recover(p)
		assert.ErrorIs(t, err, ErrAlreadyRecovered)
		assert.Empty(t, p.events)
	})
	t.Run("end of file", func(t *testing.T) {
		p := newTestParser(t, "", JavaScriptModule())
		_, err := Absent.OrRecover(p, NewRecovery(syntax.KindBogus, set), expected("a statement"))
		assert.ErrorIs(t, err, ErrRecoveryAtEOF)
		assert.Len(t, p.diagnostics, 1)
	})
	t.Run("line break stops recovery", func(t *testing.T) {
		p := newTestParser(t, "a b\nc", JavaScriptModule())
		cm, err := NewRecovery(syntax.KindBogus, set).WithLineBreak().Recover(p)
		require.NoError(t, err)
		assert.Equal(t, syntax.NewRange(0, 3), cm.Range())
		assert.Equal(t, "c", p.curText())
	})
}

func TestProgressAssertion(t *testing.T) {
	p := newTestParser(t, "a", JavaScriptModule())
	var pr progress
	pr.assert(p)
	assert.Panics(t, func() { pr.assert(p) })

	p.bump(syntax.TokenIdent)
	var atEOF progress
	atEOF.assert(p)
	assert.NotPanics(t, func() { atEOF.assert(p) })
}

func TestStateScope(t *testing.T) {
	p := newTestParser(t, "", JavaScriptScript())
	assert.True(t, p.has(topLevel))
	assert.False(t, p.isStrict())

	func() {
		defer p.scope(p.functionState(true, true))()
		assert.True(t, p.has(inFunction|inAsync))
		assert.True(t, p.has(inGenerator))
		assert.False(t, p.has(topLevel))
	}()
	assert.True(t, p.has(topLevel))
	assert.False(t, p.has(inFunction))

	labelled := p.state.withLabel("outer", labelInfo{iteration: true})
	assert.Nil(t, p.state.labels)
	assert.True(t, labelled.labels["outer"].iteration)

	module := newTestParser(t, "", JavaScriptModule())
	assert.True(t, module.isStrict())
	ambient := newTestParser(t, "", TypeScriptDefinition())
	assert.True(t, ambient.has(inAmbient))
}
