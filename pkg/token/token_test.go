package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqltint/sqltint/pkg/token"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "employees", token.Fold("Employees"))
	assert.Equal(t, "employees", token.Fold("EMPLOYEES"))
	assert.Equal(t, "#tmp", token.Fold("#Tmp"))
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"[Order Details]", "Order Details"},
		{`"Order Details"`, "Order Details"},
		{"Orders", "Orders"},
		{"[Unterminated", "[Unterminated"},
		{"[]", ""},
		{"x", "x"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, token.Unquote(tt.in), tt.in)
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		word string
		want token.KeywordCategory
	}{
		{"SELECT", token.KwStatement},
		{"from", token.KwClause},
		{"Count", token.KwFunction},
		{"nvarchar", token.KwDatatype},
		{"and", token.KwOperator},
		{"primary", token.KwConstraint},
		{"distinct", token.KwModifier},
		{"procedure", token.KwMisc},
	}
	for _, tt := range tests {
		cat, ok := token.LookupKeyword(tt.word)
		require.True(t, ok, tt.word)
		assert.Equal(t, tt.want, cat, tt.word)
	}

	_, ok := token.LookupKeyword("Employees")
	assert.False(t, ok)
}

func TestKindIsIdentLike(t *testing.T) {
	assert.True(t, token.Ident.IsIdentLike())
	assert.True(t, token.BracketIdent.IsIdentLike())
	assert.True(t, token.TempTable.IsIdentLike())
	assert.True(t, token.SystemProc.IsIdentLike())
	assert.False(t, token.Keyword.IsIdentLike())
	assert.False(t, token.Number.IsIdentLike())
	assert.False(t, token.Variable.IsIdentLike())
}

func TestSpanContains(t *testing.T) {
	span := token.Span{
		Start: token.Position{Line: 2, Col: 5},
		End:   token.Position{Line: 4, Col: 10},
	}

	tests := []struct {
		pos  token.Position
		want bool
	}{
		{token.Position{Line: 2, Col: 5}, true},  // inclusive start
		{token.Position{Line: 4, Col: 10}, true}, // inclusive end
		{token.Position{Line: 3, Col: 1}, true},  // interior line, any col
		{token.Position{Line: 2, Col: 4}, false},
		{token.Position{Line: 4, Col: 11}, false},
		{token.Position{Line: 1, Col: 50}, false},
		{token.Position{Line: 5, Col: 1}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, span.Contains(tt.pos), "%+v", tt.pos)
	}
}

func TestPositionBefore(t *testing.T) {
	a := token.Position{Line: 1, Col: 9}
	b := token.Position{Line: 1, Col: 10}
	c := token.Position{Line: 2, Col: 1}
	assert.True(t, a.Before(b))
	assert.True(t, b.Before(c))
	assert.False(t, b.Before(a))
	assert.False(t, a.Before(a))
}
