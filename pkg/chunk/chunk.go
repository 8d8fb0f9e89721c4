// Package chunk splits a token stream into per-statement chunks and extracts
// the locally visible names (aliases, CTEs, temp tables, table references)
// the classification engine resolves against.
//
// A chunk is the unit of scoping: one top-level statement with its position
// span. Chunks are rebuilt from scratch on every parse; nothing here is
// mutated incrementally.
package chunk

import (
	"strings"

	"github.com/sqltint/sqltint/pkg/token"
)

// TableRef is one table reference from a FROM/JOIN/INTO/UPDATE clause.
type TableRef struct {
	Database string
	Schema   string
	Name     string
	Alias    string
	Pos      token.Position
}

// BareName returns the final segment of the (possibly qualified) name.
func (r TableRef) BareName() string {
	return r.Name
}

// CteInfo describes one common table expression declared in a WITH clause.
type CteInfo struct {
	Name string
	Body token.Span // span of the parenthesized CTE body, parens included

	// Names visible only inside the CTE body.
	Aliases         map[string]TableRef
	Tables          []TableRef
	SubqueryAliases map[string]struct{}
}

// Chunk is the extracted metadata of one top-level statement.
type Chunk struct {
	Span token.Span

	// Keys of Aliases, CTEs, SubqueryAliases, and TempTables are folded
	// with token.Fold at insertion; look them up with folded names.
	Aliases         map[string]TableRef
	CTEs            map[string]*CteInfo
	Tables          []TableRef
	SubqueryAliases map[string]struct{}
	TempTables      map[string]struct{}
}

func newChunk() *Chunk {
	return &Chunk{
		Aliases:         make(map[string]TableRef),
		CTEs:            make(map[string]*CteInfo),
		SubqueryAliases: make(map[string]struct{}),
		TempTables:      make(map[string]struct{}),
	}
}

// refFromParts builds a TableRef from the dotted parts of a table name.
// Longer chains keep only the trailing database.schema.name levels; linked
// server prefixes are not modeled.
func refFromParts(parts []string, pos token.Position) TableRef {
	ref := TableRef{Pos: pos}
	switch len(parts) {
	case 0:
	case 1:
		ref.Name = parts[0]
	case 2:
		ref.Schema, ref.Name = parts[0], parts[1]
	default:
		ref.Database = parts[len(parts)-3]
		ref.Schema = parts[len(parts)-2]
		ref.Name = parts[len(parts)-1]
	}
	return ref
}

// endOf returns the inclusive end position of a token.
func endOf(tok token.Token) token.Position {
	col := tok.Pos.Col
	if n := len(tok.Text); n > 1 {
		// Multi-line tokens (block comments) end on a later line; splitting
		// on newlines keeps the span honest for the chunk index.
		if i := strings.LastIndexByte(tok.Text, '\n'); i >= 0 {
			lines := strings.Count(tok.Text, "\n")
			return token.Position{Line: tok.Pos.Line + lines, Col: n - i - 1}
		}
		col += n - 1
	}
	return token.Position{Line: tok.Pos.Line, Col: col}
}
