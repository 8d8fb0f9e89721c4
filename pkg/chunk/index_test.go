package chunk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqltint/sqltint/pkg/chunk"
	"github.com/sqltint/sqltint/pkg/lexer"
	"github.com/sqltint/sqltint/pkg/token"
)

func TestIndexAt(t *testing.T) {
	sql := "SELECT *\nFROM Orders;\nSELECT 1"
	chunks := parse(t, sql)
	require.Len(t, chunks, 2)
	idx := chunk.NewIndex(chunks)

	assert.Same(t, chunks[0], idx.At(token.Position{Line: 1, Col: 3}))
	assert.Same(t, chunks[0], idx.At(token.Position{Line: 2, Col: 5}))
	assert.Same(t, chunks[1], idx.At(token.Position{Line: 3, Col: 1}))
	assert.Nil(t, idx.At(token.Position{Line: 9, Col: 1}))
}

func TestIndexRejectsColumnsBeforeStart(t *testing.T) {
	toks := lexer.Tokenize("    SELECT 1")
	chunks := chunk.Parse(toks)
	require.Len(t, chunks, 1)
	idx := chunk.NewIndex(chunks)

	assert.Nil(t, idx.At(token.Position{Line: 1, Col: 2}))
	assert.NotNil(t, idx.At(token.Position{Line: 1, Col: 5}))
}

func TestIndexEndColumnSlack(t *testing.T) {
	chunks := parse(t, "SELECT 1")
	require.Len(t, chunks, 1)
	end := chunks[0].Span.End
	idx := chunk.NewIndex(chunks)

	// Typing past the last parsed token still belongs to the chunk, up to
	// the tolerance window.
	assert.NotNil(t, idx.At(token.Position{Line: end.Line, Col: end.Col + 50}))
	assert.Nil(t, idx.At(token.Position{Line: end.Line, Col: end.Col + 51}))
}

func TestIndexFirstWriterWinsOnOverlap(t *testing.T) {
	a := &chunk.Chunk{Span: token.Span{
		Start: token.Position{Line: 1, Col: 1},
		End:   token.Position{Line: 2, Col: 10},
	}}
	b := &chunk.Chunk{Span: token.Span{
		Start: token.Position{Line: 2, Col: 1},
		End:   token.Position{Line: 3, Col: 10},
	}}
	idx := chunk.NewIndex([]*chunk.Chunk{a, b})

	assert.Same(t, a, idx.At(token.Position{Line: 2, Col: 5}))
	assert.Same(t, b, idx.At(token.Position{Line: 3, Col: 5}))
}

func TestClauseAt(t *testing.T) {
	sql := "SELECT Name FROM Employees WHERE DeptId = 1 ORDER BY Name"
	toks := lexer.Tokenize(sql)

	tests := []struct {
		col  int
		want chunk.Clause
	}{
		{8, chunk.ClauseSelect},  // Name
		{18, chunk.ClauseFrom},   // Employees
		{34, chunk.ClauseWhere},  // DeptId
		{55, chunk.ClauseOrderBy}, // trailing Name
	}
	for _, tt := range tests {
		got := chunk.ClauseAt(toks, token.Position{Line: 1, Col: tt.col})
		assert.Equal(t, tt.want, got, "col %d", tt.col)
	}
}

func TestClauseAtResetsAcrossStatements(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		pos  token.Position
		want chunk.Clause
	}{
		{
			"statement keyword after use",
			"USE Sales DROP TABLE Employees",
			token.Position{Line: 1, Col: 22}, // Employees
			chunk.ClauseNone,
		},
		{
			"semicolon boundary",
			"SELECT a FROM T; DROP TABLE U",
			token.Position{Line: 1, Col: 29}, // U
			chunk.ClauseNone,
		},
		{
			"batch separator",
			"USE Sales\nGO\nEmployees",
			token.Position{Line: 3, Col: 1},
			chunk.ClauseNone,
		},
		{
			"clause keyword after reset",
			"USE Sales\nDELETE FROM Employees",
			token.Position{Line: 2, Col: 13}, // Employees
			chunk.ClauseFrom,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := lexer.Tokenize(tt.sql)
			assert.Equal(t, tt.want, chunk.ClauseAt(toks, tt.pos))
		})
	}
}

func TestClauseTrackerAdvance(t *testing.T) {
	toks := lexer.Tokenize("USE Sales DROP TABLE U")
	var tr chunk.ClauseTracker
	want := []chunk.Clause{
		chunk.ClauseUse,  // USE
		chunk.ClauseUse,  // Sales
		chunk.ClauseNone, // DROP ends the USE clause
		chunk.ClauseNone, // TABLE
		chunk.ClauseNone, // U
	}
	for i, tok := range toks {
		assert.Equal(t, want[i], tr.Advance(tok), "token %d %q", i, tok.Text)
	}
}

func TestClauseAtSubquery(t *testing.T) {
	sql := "SELECT * FROM (SELECT Id FROM Orders) q"
	toks := lexer.Tokenize(sql)
	// Position of the inner Orders: the innermost preceding clause keyword
	// is the subquery's own FROM.
	got := chunk.ClauseAt(toks, token.Position{Line: 1, Col: 31})
	assert.Equal(t, chunk.ClauseFrom, got)
}
