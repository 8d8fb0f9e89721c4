package chunk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqltint/sqltint/pkg/chunk"
	"github.com/sqltint/sqltint/pkg/lexer"
)

func parse(t *testing.T, sql string) []*chunk.Chunk {
	t.Helper()
	return chunk.Parse(lexer.Tokenize(sql))
}

func TestParseSplitsOnSemicolon(t *testing.T) {
	chunks := parse(t, "SELECT 1; SELECT 2; SELECT 3")
	assert.Len(t, chunks, 3)
}

func TestParseSplitsOnBatchSeparator(t *testing.T) {
	chunks := parse(t, "SELECT 1\nGO\nSELECT 2")
	require.Len(t, chunks, 2)
	assert.Equal(t, 1, chunks[0].Span.Start.Line)
	assert.Equal(t, 3, chunks[1].Span.Start.Line)
}

func TestParseSplitsOnStatementKeyword(t *testing.T) {
	chunks := parse(t, "SELECT * FROM a\nUPDATE b SET x = 1\nDELETE FROM c")
	assert.Len(t, chunks, 3)
}

func TestParseKeepsUnionTogether(t *testing.T) {
	chunks := parse(t, "SELECT a FROM t1 UNION SELECT a FROM t2 UNION ALL SELECT a FROM t3")
	assert.Len(t, chunks, 1)
}

func TestParseKeepsInsertSelectTogether(t *testing.T) {
	chunks := parse(t, "INSERT INTO Archive (Id) SELECT Id FROM Orders")
	require.Len(t, chunks, 1)
	names := tableNames(chunks[0].Tables)
	assert.Contains(t, names, "Archive")
	assert.Contains(t, names, "Orders")
}

func TestParseKeepsCreateOrAlterTogether(t *testing.T) {
	chunks := parse(t, "CREATE OR ALTER VIEW dbo.V AS SELECT 1 AS x")
	assert.Len(t, chunks, 1)
}

func TestParseSubqueryStaysInStatement(t *testing.T) {
	chunks := parse(t, "SELECT * FROM t WHERE id IN (SELECT id FROM u)")
	require.Len(t, chunks, 1)
	assert.Contains(t, tableNames(chunks[0].Tables), "u")
}

func TestParseAliases(t *testing.T) {
	chunks := parse(t, "SELECT * FROM Employees e JOIN Departments AS d ON e.DeptId = d.Id")
	require.Len(t, chunks, 1)
	c := chunks[0]

	require.Contains(t, c.Aliases, "e")
	assert.Equal(t, "Employees", c.Aliases["e"].Name)
	require.Contains(t, c.Aliases, "d")
	assert.Equal(t, "Departments", c.Aliases["d"].Name)
	assert.Len(t, c.Tables, 2)
}

func TestParseQualifiedTableRefs(t *testing.T) {
	chunks := parse(t, "SELECT * FROM Sales.dbo.Orders o JOIN Reports.Summary s ON o.Id = s.Id")
	require.Len(t, chunks, 1)
	c := chunks[0]

	require.Contains(t, c.Aliases, "o")
	assert.Equal(t, "Sales", c.Aliases["o"].Database)
	assert.Equal(t, "dbo", c.Aliases["o"].Schema)
	assert.Equal(t, "Orders", c.Aliases["o"].Name)

	require.Contains(t, c.Aliases, "s")
	assert.Equal(t, "", c.Aliases["s"].Database)
	assert.Equal(t, "Reports", c.Aliases["s"].Schema)
	assert.Equal(t, "Summary", c.Aliases["s"].Name)
}

func TestParseCommaSeparatedFromList(t *testing.T) {
	chunks := parse(t, "SELECT * FROM Orders o, Customers c WHERE o.CustId = c.Id")
	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0].Aliases, "o")
	assert.Contains(t, chunks[0].Aliases, "c")
}

func TestParseTableHintSkipped(t *testing.T) {
	chunks := parse(t, "SELECT * FROM Orders o WITH (NOLOCK) WHERE o.Id = 1")
	require.Len(t, chunks, 1)
	require.Contains(t, chunks[0].Aliases, "o")
	assert.Equal(t, "Orders", chunks[0].Aliases["o"].Name)
}

func TestParseTempTables(t *testing.T) {
	chunks := parse(t, "SELECT Id INTO #tmp FROM Orders; SELECT * FROM #tmp")
	require.Len(t, chunks, 2)
	assert.Contains(t, chunks[0].TempTables, "#tmp")
	assert.NotContains(t, tableNames(chunks[0].Tables), "#tmp")
	assert.Contains(t, chunks[1].TempTables, "#tmp")
}

func TestParseSubqueryAlias(t *testing.T) {
	chunks := parse(t, "SELECT * FROM (SELECT Id FROM Orders) AS recent WHERE recent.Id > 5")
	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0].SubqueryAliases, "recent")
	assert.Contains(t, tableNames(chunks[0].Tables), "Orders")
}

func TestParseCTE(t *testing.T) {
	sql := "WITH Recent AS (\n" +
		"  SELECT o.Id FROM Orders o WHERE o.Placed > '2024-01-01'\n" +
		"), Big AS (\n" +
		"  SELECT t.Total FROM Totals t\n" +
		")\n" +
		"SELECT * FROM Recent r JOIN Big b ON r.Id = b.Total"
	chunks := parse(t, sql)
	require.Len(t, chunks, 1)
	c := chunks[0]

	require.Len(t, c.CTEs, 2)
	recent := c.CTEs["recent"]
	require.NotNil(t, recent)
	assert.Equal(t, "Recent", recent.Name)
	assert.Contains(t, recent.Aliases, "o")
	assert.Equal(t, []string{"Orders"}, tableNames(recent.Tables))

	big := c.CTEs["big"]
	require.NotNil(t, big)
	assert.Contains(t, big.Aliases, "t")
	assert.NotContains(t, big.Aliases, "o", "aliases must not leak between CTE bodies")

	// CTE body spans cover their own lines only.
	assert.Equal(t, 1, recent.Body.Start.Line)
	assert.Equal(t, 3, recent.Body.End.Line)
	assert.Equal(t, 3, big.Body.Start.Line)
	assert.Equal(t, 5, big.Body.End.Line)

	// The main body references the CTEs by name.
	assert.Contains(t, c.Aliases, "r")
	assert.Contains(t, c.Aliases, "b")
	assert.ElementsMatch(t, []string{"Recent", "Big"}, tableNames(c.Tables))
}

func TestParseCTEWithColumnList(t *testing.T) {
	chunks := parse(t, "WITH Nums (n) AS (SELECT 1) SELECT * FROM Nums")
	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0].CTEs, "nums")
}

func tableNames(refs []chunk.TableRef) []string {
	var names []string
	for _, r := range refs {
		names = append(names, r.Name)
	}
	return names
}
