package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqltint/sqltint/pkg/lexer"
	"github.com/sqltint/sqltint/pkg/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeSelect(t *testing.T) {
	toks := lexer.Tokenize("SELECT e.Name FROM Employees e WHERE e.DeptId = 1")
	require.Equal(t, []token.Kind{
		token.Keyword, // SELECT
		token.Ident, token.Dot, token.Ident, // e.Name
		token.Keyword,              // FROM
		token.Ident, token.Ident,   // Employees e
		token.Keyword,              // WHERE
		token.Ident, token.Dot, token.Ident, // e.DeptId
		token.Operator, token.Number, // = 1
	}, kinds(toks))

	assert.Equal(t, token.KwStatement, toks[0].Category)
	assert.Equal(t, token.KwClause, toks[4].Category)
	assert.Equal(t, "Employees", toks[5].Text)
}

func TestTokenizeVariables(t *testing.T) {
	toks := lexer.Tokenize("SET @count = @@ROWCOUNT")
	require.Len(t, toks, 4)
	assert.Equal(t, token.Variable, toks[1].Kind)
	assert.Equal(t, "@count", toks[1].Text)
	assert.Equal(t, token.GlobalVariable, toks[3].Kind)
	assert.Equal(t, "@@ROWCOUNT", toks[3].Text)
}

func TestTokenizeTempTables(t *testing.T) {
	toks := lexer.Tokenize("SELECT * FROM #rows JOIN ##shared ON 1=1")
	var temps []string
	for _, tok := range toks {
		if tok.Kind == token.TempTable {
			temps = append(temps, tok.Text)
		}
	}
	assert.Equal(t, []string{"#rows", "##shared"}, temps)
}

func TestTokenizeBracketIdents(t *testing.T) {
	toks := lexer.Tokenize(`SELECT [Order Details].[Unit Price], "Quoted Id" FROM [Order Details]`)
	assert.Equal(t, token.BracketIdent, toks[1].Kind)
	assert.Equal(t, "[Order Details]", toks[1].Text)
	assert.Equal(t, token.BracketIdent, toks[3].Kind)
	assert.Equal(t, `"Quoted Id"`, toks[5].Text)
}

func TestTokenizeUnterminatedBracketStopsAtNewline(t *testing.T) {
	toks := lexer.Tokenize("SELECT [Unfinished\nFROM t")
	require.GreaterOrEqual(t, len(toks), 3)
	assert.Equal(t, token.BracketIdent, toks[1].Kind)
	assert.Equal(t, "[Unfinished", toks[1].Text)
	assert.Equal(t, token.Keyword, toks[2].Kind)
	assert.Equal(t, "FROM", toks[2].Text)
}

func TestTokenizeStringsWithEscapes(t *testing.T) {
	toks := lexer.Tokenize(`SELECT 'it''s fine', 'open ended`)
	assert.Equal(t, token.String, toks[1].Kind)
	assert.Equal(t, `'it''s fine'`, toks[1].Text)
	assert.Equal(t, token.String, toks[3].Kind)
	assert.Equal(t, `'open ended`, toks[3].Text)
}

func TestTokenizeComments(t *testing.T) {
	toks := lexer.Tokenize("SELECT 1 -- trailing\n/* block\nspans lines */ SELECT 2")
	var comments []string
	for _, tok := range toks {
		if tok.Kind == token.Comment {
			comments = append(comments, tok.Text)
		}
	}
	require.Len(t, comments, 2)
	assert.Equal(t, "-- trailing", comments[0])
	assert.Equal(t, "/* block\nspans lines */", comments[1])
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"42", "42"},
		{"3.14", "3.14"},
		{".5", ".5"},
		{"1.", "1."},
		{"2e10", "2e10"},
		{"6.02E+23", "6.02E+23"},
	}
	for _, tt := range tests {
		toks := lexer.Tokenize(tt.in)
		require.Len(t, toks, 1, tt.in)
		assert.Equal(t, token.Number, toks[0].Kind, tt.in)
		assert.Equal(t, tt.want, toks[0].Text, tt.in)
	}
}

func TestTokenizeOperators(t *testing.T) {
	toks := lexer.Tokenize("a <> b <= c >= d != e")
	var ops []string
	for _, tok := range toks {
		if tok.Kind == token.Operator {
			ops = append(ops, tok.Text)
		}
	}
	assert.Equal(t, []string{"<>", "<=", ">=", "!="}, ops)
}

func TestTokenizeBatchSeparatorAndSystemProcs(t *testing.T) {
	toks := lexer.Tokenize("EXEC sp_help\nGO\nEXEC xp_cmdshell")
	assert.Equal(t, token.SystemProc, toks[1].Kind)
	assert.Equal(t, token.BatchSeparator, toks[2].Kind)
	assert.Equal(t, token.SystemProc, toks[4].Kind)
}

func TestTokenizePositions(t *testing.T) {
	toks := lexer.Tokenize("SELECT x\nFROM t")
	require.Len(t, toks, 4)
	assert.Equal(t, token.Position{Line: 1, Col: 1}, toks[0].Pos)
	assert.Equal(t, token.Position{Line: 1, Col: 8}, toks[1].Pos)
	assert.Equal(t, token.Position{Line: 2, Col: 1}, toks[2].Pos)
	assert.Equal(t, token.Position{Line: 2, Col: 6}, toks[3].Pos)
}

func TestTokenizeNeverFails(t *testing.T) {
	// Garbage input produces Illegal tokens, never a panic or truncation.
	toks := lexer.Tokenize("SELECT ? ! \\ $")
	require.NotEmpty(t, toks)
	var illegals int
	for _, tok := range toks {
		if tok.Kind == token.Illegal {
			illegals++
		}
	}
	assert.Greater(t, illegals, 0)
}

func TestTokenizeDanglingDot(t *testing.T) {
	toks := lexer.Tokenize("SELECT e.")
	require.Len(t, toks, 3)
	assert.Equal(t, token.Dot, toks[2].Kind)
}
