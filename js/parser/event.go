package parser

import "github.com/dhamidi/jsfront/js/syntax"

type EventType uint8

const (
	// EventStart opens a node. A start event whose Kind is syntax.Tombstone
	// belongs to an abandoned marker and is skipped.
	EventStart EventType = iota
	EventFinish
	EventToken
)

// Event is one step of the flat tree description the parser produces.
type Event struct {
	Type EventType
	Kind syntax.Kind
	// ForwardParent, when non-zero, is the distance to the start event of a
	// node that was opened later but wraps this one (see CompletedMarker.Precede).
	ForwardParent int
	// Range is set on token events.
	Range syntax.TextRange
}

// Sink receives the tree described by a list of events in document order.
type Sink interface {
	StartNode(kind syntax.Kind)
	Token(kind syntax.Kind, r syntax.TextRange)
	FinishNode()
}

// ProcessEvents replays events into sink, resolving forward parents so that
// every node is started before its children. The events slice is not
// modified.
func ProcessEvents(events []Event, sink Sink) {
	events = append([]Event(nil), events...)
	var parents []syntax.Kind
	for i, e := range events {
		switch e.Type {
		case EventStart:
			if e.Kind == syntax.Tombstone && e.ForwardParent == 0 {
				continue
			}
			parents = parents[:0]
			parents = append(parents, e.Kind)
			events[i] = Event{Type: EventStart, Kind: syntax.Tombstone}
			idx, fp := i, e.ForwardParent
			for fp != 0 {
				idx += fp
				parent := events[idx]
				events[idx] = Event{Type: EventStart, Kind: syntax.Tombstone}
				parents = append(parents, parent.Kind)
				fp = parent.ForwardParent
			}
			for j := len(parents) - 1; j >= 0; j-- {
				if parents[j] != syntax.Tombstone {
					sink.StartNode(parents[j])
				}
			}
		case EventFinish:
			sink.FinishNode()
		case EventToken:
			sink.Token(e.Kind, e.Range)
		}
	}
}
