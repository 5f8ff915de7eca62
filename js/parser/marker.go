package parser

import (
	"fmt"

	"github.com/dhamidi/jsfront/js/syntax"
)

// Marker is an open node. It must be completed or abandoned, innermost
// first; any other order panics unless the package is built with the release
// tag.
type Marker struct {
	pos   int
	start int
	// child is the start event of the node this marker precedes, plus one.
	child int
}

// start opens a node at the current token.
func (p *Parser) start() Marker {
	pos := len(p.events)
	p.events = append(p.events, Event{Type: EventStart, Kind: syntax.Tombstone})
	if checkMarkers {
		p.open = append(p.open, pos)
	}
	return Marker{pos: pos, start: p.tokens.Position()}
}

// Start is the byte offset the node begins at.
func (m Marker) Start() int {
	return m.start
}

func (m Marker) Complete(p *Parser, kind syntax.Kind) CompletedMarker {
	if kind == syntax.Tombstone || !kind.IsNode() {
		panic(fmt.Sprintf("parser: cannot complete a marker as %s", kind))
	}
	p.resolve(m, "completed")
	p.events[m.pos].Kind = kind
	p.events = append(p.events, Event{Type: EventFinish})
	end := p.lastEnd
	if end < m.start {
		end = m.start
	}
	return CompletedMarker{
		pos:    m.pos,
		finish: len(p.events) - 1,
		kind:   kind,
		rng:    syntax.NewRange(m.start, end),
	}
}

// Abandon drops the node. Its children become children of the enclosing
// node.
func (m Marker) Abandon(p *Parser) {
	p.resolve(m, "abandoned")
	if m.child > 0 {
		p.events[m.child-1].ForwardParent = 0
	}
	if m.pos == len(p.events)-1 {
		p.events = p.events[:m.pos]
		return
	}
	p.events[m.pos] = Event{Type: EventStart, Kind: syntax.Tombstone}
}

func (p *Parser) resolve(m Marker, action string) {
	if !checkMarkers {
		return
	}
	n := len(p.open)
	if n == 0 || p.open[n-1] != m.pos {
		top := -1
		if n > 0 {
			top = p.open[n-1]
		}
		panic(fmt.Sprintf("parser: marker at event %d %s while marker at event %d is still open; a marker was dropped without being completed or abandoned", m.pos, action, top))
	}
	p.open = p.open[:n-1]
}

// assertMarkersResolved panics when a marker outlived the parse.
func (p *Parser) assertMarkersResolved() {
	if checkMarkers && len(p.open) > 0 {
		panic(fmt.Sprintf("parser: %d marker(s) left open at the end of the parse, innermost at event %d", len(p.open), p.open[len(p.open)-1]))
	}
}

// CompletedMarker is a finished node that can still be wrapped, reopened or
// retagged.
type CompletedMarker struct {
	pos    int
	finish int
	kind   syntax.Kind
	rng    syntax.TextRange
}

func (c CompletedMarker) Kind() syntax.Kind {
	return c.kind
}

func (c CompletedMarker) Range() syntax.TextRange {
	return c.rng
}

// Precede opens a new node that starts where c starts and will contain c.
func (c CompletedMarker) Precede(p *Parser) Marker {
	m := p.start()
	m.start = c.rng.Start
	m.child = c.pos + 1
	p.events[c.pos].ForwardParent = m.pos - c.pos
	return m
}

// UndoCompletion reopens c. Its children are kept; the node must be completed
// or abandoned again.
func (c CompletedMarker) UndoCompletion(p *Parser) Marker {
	p.events[c.pos].Kind = syntax.Tombstone
	p.events[c.finish] = Event{Type: EventStart, Kind: syntax.Tombstone}
	if checkMarkers {
		p.open = append(p.open, c.pos)
	}
	return Marker{pos: c.pos, start: c.rng.Start}
}

func (c CompletedMarker) ChangeKind(p *Parser, kind syntax.Kind) CompletedMarker {
	p.events[c.pos].Kind = kind
	c.kind = kind
	return c
}

// ChangeToBogus retags c with the bogus kind matching its current kind.
func (c CompletedMarker) ChangeToBogus(p *Parser) CompletedMarker {
	return c.ChangeKind(p, c.kind.ToBogus())
}
