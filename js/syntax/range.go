package syntax

import "fmt"

// TextRange is a half-open byte range [Start, End) into the source text.
type TextRange struct {
	Start int
	End   int
}

func NewRange(start, end int) TextRange {
	if end < start {
		panic(fmt.Sprintf("invalid text range: %d > %d", start, end))
	}
	return TextRange{Start: start, End: end}
}

// EmptyRange returns the zero-width range at offset.
func EmptyRange(offset int) TextRange {
	return TextRange{Start: offset, End: offset}
}

func (r TextRange) Len() int {
	return r.End - r.Start
}

func (r TextRange) IsEmpty() bool {
	return r.Start == r.End
}

// Cover returns the smallest range containing both r and other.
func (r TextRange) Cover(other TextRange) TextRange {
	return TextRange{Start: min(r.Start, other.Start), End: max(r.End, other.End)}
}

func (r TextRange) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

func (r TextRange) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}
