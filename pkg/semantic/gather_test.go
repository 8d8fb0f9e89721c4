package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqltint/sqltint/pkg/lexer"
)

func TestGather(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		start    int
		parts    []string
		consumed int
	}{
		{"single", "Employees", 0, []string{"Employees"}, 1},
		{"two part", "dbo.Employees", 0, []string{"dbo", "Employees"}, 3},
		{"four part", "srv.db.dbo.T", 0, []string{"srv", "db", "dbo", "T"}, 7},
		{"bracketed unquoted", "[My Schema].[My Table]", 0, []string{"My Schema", "My Table"}, 3},
		{"temp table", "#tmp.Id", 0, []string{"#tmp", "Id"}, 3},
		{"stops at keyword", "Employees FROM", 0, []string{"Employees"}, 1},
		{"dangling dot left behind", "e.", 0, []string{"e"}, 1},
		{"dangling dot mid chain", "a.b.", 0, []string{"a", "b"}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := lexer.Tokenize(tt.sql)
			parts, consumed := gather(toks, tt.start)
			require.Len(t, parts, len(tt.parts))
			for i, want := range tt.parts {
				assert.Equal(t, want, parts[i].Text)
			}
			assert.Equal(t, tt.consumed, consumed)
		})
	}
}

func TestGatherKeepsTokenIndexes(t *testing.T) {
	toks := lexer.Tokenize("SELECT dbo.Employees.Name")
	parts, consumed := gather(toks, 1)
	require.Len(t, parts, 3)
	assert.Equal(t, 1, parts[0].Index)
	assert.Equal(t, 3, parts[1].Index)
	assert.Equal(t, 5, parts[2].Index)
	assert.Equal(t, 5, consumed)
}

func TestGatherRejectsNonIdentStart(t *testing.T) {
	toks := lexer.Tokenize("SELECT 1")
	parts, consumed := gather(toks, 0)
	assert.Nil(t, parts)
	assert.Zero(t, consumed)
}
