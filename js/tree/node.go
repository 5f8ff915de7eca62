package tree

import (
	"strconv"
	"strings"

	"github.com/dhamidi/jsfront/js/syntax"
)

// Node is one element of the concrete syntax tree. Token and trivia leaves
// carry their source text in Token; inner nodes carry children.
type Node struct {
	Kind     syntax.Kind
	Range    syntax.TextRange
	Children []*Node
	Token    string
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) IsToken() bool {
	return n.Kind.IsToken()
}

func (n *Node) IsTrivia() bool {
	return n.Kind.IsTrivia()
}

func (n *Node) IsBogus() bool {
	return n.Kind.IsBogus()
}

func (n *Node) FirstChildOfKind(kind syntax.Kind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind syntax.Kind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// Nodes returns the children that are not tokens or trivia.
func (n *Node) Nodes() []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind.IsNode() {
			result = append(result, child)
		}
	}
	return result
}

// Walk visits n and its descendants in document order. Returning false from
// visit skips the children of that node.
func (n *Node) Walk(visit func(*Node) bool) {
	if !visit(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(visit)
	}
}

// Find returns the first descendant of kind in document order, n included.
func (n *Node) Find(kind syntax.Kind) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Kind == kind {
			found = c
			return false
		}
		return true
	})
	return found
}

// Text reconstructs the source text covered by n, trivia included.
func (n *Node) Text() string {
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	if len(n.Children) == 0 {
		b.WriteString(n.Token)
		return
	}
	for _, child := range n.Children {
		child.writeText(b)
	}
}

// TrimmedRange is Range without leading and trailing trivia.
func (n *Node) TrimmedRange() syntax.TextRange {
	first, last := n.firstToken(), n.lastToken()
	if first == nil || last == nil {
		return n.Range
	}
	return syntax.NewRange(first.Range.Start, last.Range.End)
}

// TrimmedText is the source text of n without leading and trailing trivia.
func (n *Node) TrimmedText() string {
	text := n.Text()
	r, tr := n.Range, n.TrimmedRange()
	return text[tr.Start-r.Start : tr.End-r.Start]
}

func (n *Node) firstToken() *Node {
	if n.IsTrivia() {
		return nil
	}
	if n.IsToken() {
		return n
	}
	for _, child := range n.Children {
		if t := child.firstToken(); t != nil {
			return t
		}
	}
	return nil
}

func (n *Node) lastToken() *Node {
	if n.IsTrivia() {
		return nil
	}
	if n.IsToken() {
		return n
	}
	for i := len(n.Children) - 1; i >= 0; i-- {
		if t := n.Children[i].lastToken(); t != nil {
			return t
		}
	}
	return nil
}

func (n *Node) String() string {
	var b strings.Builder
	n.dump(&b, 0, false, true)
	return b.String()
}

// StringWithPositions dumps the tree with byte ranges.
func (n *Node) StringWithPositions() string {
	var b strings.Builder
	n.dump(&b, 0, true, true)
	return b.String()
}

// StringWithoutTrivia dumps the tree without whitespace and comment leaves.
func (n *Node) StringWithoutTrivia() string {
	var b strings.Builder
	n.dump(&b, 0, false, false)
	return b.String()
}

func (n *Node) dump(b *strings.Builder, indent int, showPositions, showTrivia bool) {
	if n.IsTrivia() && !showTrivia {
		return
	}
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(n.Kind.String())
	if showPositions {
		b.WriteString("@")
		b.WriteString(n.Range.String())
	}
	if len(n.Children) == 0 && n.Kind.IsToken() {
		b.WriteString(" ")
		b.WriteString(strconv.Quote(n.Token))
	}
	b.WriteString("\n")
	for _, child := range n.Children {
		child.dump(b, indent+1, showPositions, showTrivia)
	}
}
