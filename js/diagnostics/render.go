package diagnostics

import (
	"fmt"
	"io"
	"strings"
)

// Printer renders diagnostics for one source file as plain text.
type Printer struct {
	name  string
	index *LineIndex
}

func NewPrinter(name, source string) *Printer {
	return &Printer{name: name, index: NewLineIndex(source)}
}

func (p *Printer) location(offset int) string {
	pos := p.index.Position(offset)
	return fmt.Sprintf("%s:%d:%d", p.name, pos.Line+1, pos.Column+1)
}

// Print writes d to w in the form
//
//	file.js:1:9: error: expected an expression
//	   1 | let a = ;
//	     |         ^ label
func (p *Printer) Print(w io.Writer, d Diagnostic) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s: %s\n", p.location(d.Primary.Range.Start), d.Severity, d.Message)
	p.snippet(&b, d.Primary)
	for _, label := range d.Secondary {
		fmt.Fprintf(&b, "  %s: note: %s\n", p.location(label.Range.Start), label.Message)
		p.snippet(&b, label)
	}
	for _, hint := range d.Hints {
		fmt.Fprintf(&b, "  hint: %s\n", hint)
	}
	if d.Footer != "" {
		fmt.Fprintf(&b, "  %s\n", d.Footer)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (p *Printer) PrintAll(w io.Writer, diags []Diagnostic) error {
	for _, d := range diags {
		if err := p.Print(w, d); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) snippet(b *strings.Builder, label Label) {
	start := p.index.Position(label.Range.Start)
	end := p.index.Position(label.Range.End)
	line := p.index.Line(start.Line)
	fmt.Fprintf(b, "%5d | %s\n", start.Line+1, line)

	width := 1
	if end.Line == start.Line && end.Column > start.Column {
		width = end.Column - start.Column
	}
	col := min(start.Column, len(line))
	marker := strings.Repeat(" ", col) + strings.Repeat("^", width)
	if label.Message != "" {
		marker += " " + label.Message
	}
	fmt.Fprintf(b, "      | %s\n", marker)
}
