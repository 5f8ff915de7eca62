// Package tree turns the event stream of the parser into a lossless concrete
// syntax tree. Every byte of the input ends up in exactly one token or trivia
// leaf, so Root.Text() always returns the source.
//
// Trivia are attached in front of the token they precede, inside the
// innermost node that is open at that point. A node whose first token is
// preceded by trivia therefore starts after that trivia.
package tree

import (
	"fmt"

	"github.com/dhamidi/jsfront/js/diagnostics"
	"github.com/dhamidi/jsfront/js/parser"
	"github.com/dhamidi/jsfront/js/syntax"
)

// Tree is a parsed file.
type Tree struct {
	Source      string
	SourceType  parser.SourceType
	Root        *Node
	Diagnostics []diagnostics.Diagnostic
}

func (t *Tree) HasErrors() bool {
	return diagnostics.HasErrors(t.Diagnostics)
}

// Parse parses source and builds its tree.
func Parse(source string, opts ...parser.Option) (*Tree, error) {
	res, err := parser.Parse(source, opts...)
	if err != nil {
		return nil, err
	}
	return Build(res), nil
}

// Build replays the events of res into a tree.
func Build(res *parser.Result) *Tree {
	b := NewBuilder(res.Source, res.Trivia)
	res.Walk(b)
	return &Tree{
		Source:      res.Source,
		SourceType:  res.SourceType,
		Root:        b.Finish(),
		Diagnostics: res.Diagnostics,
	}
}

// Builder implements parser.Sink. Node starts are buffered until the first
// token or the end of the node is seen, so that pending trivia can be placed
// before the node rather than inside it.
type Builder struct {
	source  string
	trivia  []parser.Trivia
	next    int
	stack   []*Node
	pending []syntax.Kind
	offset  int
	root    *Node
}

var _ parser.Sink = (*Builder)(nil)

func NewBuilder(source string, trivia []parser.Trivia) *Builder {
	return &Builder{source: source, trivia: trivia}
}

func (b *Builder) StartNode(kind syntax.Kind) {
	if len(b.stack) == 0 && b.root == nil {
		b.open(kind)
		return
	}
	b.pending = append(b.pending, kind)
}

func (b *Builder) Token(kind syntax.Kind, r syntax.TextRange) {
	b.flushTrivia(r.Start)
	b.openPending()
	b.leaf(kind, r)
}

func (b *Builder) FinishNode() {
	b.openPending()
	if len(b.stack) == 0 {
		panic("tree: FinishNode without an open node")
	}
	n := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	if len(n.Children) == 0 {
		n.Range = syntax.EmptyRange(b.offset)
	} else {
		n.Range = syntax.NewRange(n.Children[0].Range.Start, n.Children[len(n.Children)-1].Range.End)
	}
	if len(b.stack) == 0 {
		b.root = n
		return
	}
	b.stack[len(b.stack)-1].AddChild(n)
}

// Finish returns the root. Trivia left over after the last token, which only
// happens for inputs without an end-of-file token, are appended to the root.
func (b *Builder) Finish() *Node {
	if b.root == nil {
		panic("tree: no root node was built")
	}
	for ; b.next < len(b.trivia); b.next++ {
		t := b.trivia[b.next]
		b.root.AddChild(b.newLeaf(t.Kind, t.Range))
		b.root.Range = b.root.Range.Cover(t.Range)
	}
	return b.root
}

func (b *Builder) open(kind syntax.Kind) {
	b.stack = append(b.stack, &Node{Kind: kind})
}

func (b *Builder) openPending() {
	for _, kind := range b.pending {
		b.open(kind)
	}
	b.pending = b.pending[:0]
}

func (b *Builder) flushTrivia(before int) {
	for b.next < len(b.trivia) && b.trivia[b.next].Range.Start < before {
		t := b.trivia[b.next]
		b.leaf(t.Kind, t.Range)
		b.next++
	}
}

func (b *Builder) leaf(kind syntax.Kind, r syntax.TextRange) {
	if len(b.stack) == 0 {
		panic(fmt.Sprintf("tree: token %s outside of any node", kind))
	}
	b.stack[len(b.stack)-1].AddChild(b.newLeaf(kind, r))
	b.offset = r.End
}

func (b *Builder) newLeaf(kind syntax.Kind, r syntax.TextRange) *Node {
	return &Node{Kind: kind, Range: r, Token: b.source[r.Start:r.End]}
}
