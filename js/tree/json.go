package tree

import (
	"encoding/json"

	"github.com/dhamidi/jsfront/js/diagnostics"
	"github.com/dhamidi/jsfront/js/syntax"
)

type jsonNode struct {
	Kind     string      `json:"kind"`
	Range    jsonRange   `json:"range"`
	Token    *string     `json:"token,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type jsonLabel struct {
	Start   jsonPosition `json:"start"`
	End     jsonPosition `json:"end"`
	Range   jsonRange    `json:"range"`
	Message string       `json:"message,omitempty"`
}

type jsonDiagnostic struct {
	Severity  string      `json:"severity"`
	Message   string      `json:"message"`
	Primary   jsonLabel   `json:"primary"`
	Secondary []jsonLabel `json:"secondary,omitempty"`
	Hints     []string    `json:"hints,omitempty"`
	Footer    string      `json:"footer,omitempty"`
}

type jsonTree struct {
	SourceType  string           `json:"sourceType"`
	Root        *jsonNode        `json:"root"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func (n *Node) toJSON() *jsonNode {
	jn := &jsonNode{
		Kind:  n.Kind.String(),
		Range: toJSONRange(n.Range),
	}
	if n.Kind.IsToken() {
		text := n.Token
		jn.Token = &text
	}
	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = child.toJSON()
		}
	}
	return jn
}

// MarshalJSON encodes the tree together with its diagnostics. Diagnostic
// positions are zero-based lines and byte columns.
func (t *Tree) MarshalJSON() ([]byte, error) {
	index := diagnostics.NewLineIndex(t.Source)
	jt := jsonTree{
		SourceType:  t.SourceType.String(),
		Root:        t.Root.toJSON(),
		Diagnostics: make([]jsonDiagnostic, 0, len(t.Diagnostics)),
	}
	for _, d := range t.Diagnostics {
		jd := jsonDiagnostic{
			Severity: d.Severity.String(),
			Message:  d.Message,
			Primary:  toJSONLabel(index, d.Primary),
			Hints:    d.Hints,
			Footer:   d.Footer,
		}
		for _, l := range d.Secondary {
			jd.Secondary = append(jd.Secondary, toJSONLabel(index, l))
		}
		jt.Diagnostics = append(jt.Diagnostics, jd)
	}
	return json.Marshal(jt)
}

func toJSONRange(r syntax.TextRange) jsonRange {
	return jsonRange{Start: r.Start, End: r.End}
}

func toJSONLabel(index *diagnostics.LineIndex, l diagnostics.Label) jsonLabel {
	start, end := index.Position(l.Range.Start), index.Position(l.Range.End)
	return jsonLabel{
		Start:   jsonPosition{Line: start.Line, Column: start.Column},
		End:     jsonPosition{Line: end.Line, Column: end.Column},
		Range:   toJSONRange(l.Range),
		Message: l.Message,
	}
}
