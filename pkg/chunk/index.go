package chunk

import "github.com/sqltint/sqltint/pkg/token"

// endColSlack is how many columns past a chunk's recorded end are still
// attributed to it on its last line. Text typed beyond the last parsed
// token would otherwise fall into no chunk until the next reparse.
const endColSlack = 50

// Index maps line numbers to their owning statement chunk for O(1) lookup.
// It is rebuilt whenever chunks change, never mutated in place.
type Index struct {
	byLine map[int]*Chunk
}

// NewIndex builds a line index over the given chunks. On overlapping spans
// the first chunk wins.
func NewIndex(chunks []*Chunk) *Index {
	idx := &Index{byLine: make(map[int]*Chunk)}
	for _, c := range chunks {
		if !c.Span.IsValid() {
			continue
		}
		for line := c.Span.Start.Line; line <= c.Span.End.Line; line++ {
			if _, taken := idx.byLine[line]; !taken {
				idx.byLine[line] = c
			}
		}
	}
	return idx
}

// At returns the chunk owning the given position, or nil.
// Columns before the chunk's start on its first line are rejected; interior
// lines accept any column; the last line tolerates endColSlack columns past
// the recorded end.
func (idx *Index) At(pos token.Position) *Chunk {
	c, ok := idx.byLine[pos.Line]
	if !ok {
		return nil
	}
	if pos.Line == c.Span.Start.Line && pos.Col < c.Span.Start.Col {
		return nil
	}
	if pos.Line == c.Span.End.Line && pos.Col > c.Span.End.Col+endColSlack {
		return nil
	}
	return c
}
