package parser

import "github.com/dhamidi/jsfront/js/syntax"

type contextFlags uint32

const (
	inFunction contextFlags = 1 << iota
	inGenerator
	inAsync
	inConstructor
	// inAmbient is set inside `declare` declarations and .d.ts files.
	inAmbient
	// topLevel is cleared on entering any function body.
	topLevel
	// noIn disallows the `in` operator (for-statement heads).
	noIn
	inIteration
	inSwitch
	inStaticBlock
	inClassFieldInitializer
	// inTypeContext is set while parsing TypeScript types.
	inTypeContext
	inAbstractClass
	inDerivedClass
	// noConditionalType is set in the extends clause of a conditional type.
	noConditionalType
)

type strictMode uint8

const (
	sloppy strictMode = iota
	strictModule
	strictDirective
	strictClass
)

func (s strictMode) String() string {
	switch s {
	case strictModule:
		return "modules are always strict"
	case strictDirective:
		return `the "use strict" directive applies here`
	case strictClass:
		return "class bodies are always strict"
	}
	return "sloppy"
}

type labelInfo struct {
	iteration bool
	rng       syntax.TextRange
}

// state is the context the grammar rules consult. It is a value: scoped
// changes copy it and restore the copy. labels is copied on every change;
// names belongs to the binding list that created it.
type state struct {
	flags  contextFlags
	strict strictMode
	labels map[string]labelInfo
	// names tracks the bindings of the list being parsed, for duplicate
	// detection. It is nil outside such lists.
	names map[string]syntax.TextRange
}

func (s state) with(flags contextFlags) state {
	s.flags |= flags
	return s
}

func (s state) without(flags contextFlags) state {
	s.flags &^= flags
	return s
}

func (s state) withLabel(name string, info labelInfo) state {
	labels := make(map[string]labelInfo, len(s.labels)+1)
	for k, v := range s.labels {
		labels[k] = v
	}
	labels[name] = info
	s.labels = labels
	return s
}

// scope installs next as the parser state and returns a function restoring
// the previous state. Use it with defer so every exit path restores.
func (p *Parser) scope(next state) func() {
	saved := p.state
	p.state = next
	return func() { p.state = saved }
}

// within runs fn with next as the parser state.
func (p *Parser) within(next state, fn func()) {
	defer p.scope(next)()
	fn()
}

func (p *Parser) has(flags contextFlags) bool {
	return p.state.flags&flags != 0
}

func (p *Parser) isStrict() bool {
	return p.state.strict != sloppy
}

// functionState is the state for a function body or arrow function body:
// labels and binding names reset, iteration and switch context cleared.
func (p *Parser) functionState(async, generator bool) state {
	s := p.state.without(inGenerator | inAsync | inIteration | inSwitch | topLevel | noIn | inStaticBlock | inClassFieldInitializer | inConstructor).with(inFunction)
	if async {
		s = s.with(inAsync)
	}
	if generator {
		s = s.with(inGenerator)
	}
	s.labels = nil
	s.names = nil
	return s
}

// recordName notes a binding name in the current binding list and reports
// whether it was already bound there.
func (p *Parser) recordName(name string, r syntax.TextRange) (syntax.TextRange, bool) {
	if p.state.names == nil {
		return syntax.TextRange{}, false
	}
	if prev, ok := p.state.names[name]; ok {
		return prev, true
	}
	p.state.names[name] = r
	return r, false
}
