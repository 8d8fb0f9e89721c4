package token

// Position represents a location in the source buffer.
type Position struct {
	Line int // 1-based line number
	Col  int // 1-based column number
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Before reports whether p comes before other in the buffer.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

// Span represents an inclusive range in the source buffer.
type Span struct {
	Start Position
	End   Position
}

// Contains reports whether the span contains the given position.
// Both endpoints are inclusive; comparison is by line and column.
func (s Span) Contains(p Position) bool {
	if !s.Start.IsValid() || !s.End.IsValid() {
		return false
	}
	if p.Line < s.Start.Line || p.Line > s.End.Line {
		return false
	}
	if p.Line == s.Start.Line && p.Col < s.Start.Col {
		return false
	}
	if p.Line == s.End.Line && p.Col > s.End.Col {
		return false
	}
	return true
}

// IsValid returns true if both endpoints are valid.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid()
}
