package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqltint/sqltint/internal/cli"
)

const cliCatalogYAML = `
databases:
  - name: Sales
    default_schema: dbo
    schemas:
      - name: dbo
        tables:
          - name: Employees
            columns:
              - {name: Id, type: int}
              - {name: Name, type: nvarchar}
`

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// workspace writes a config, catalog fixture and SQL file into a temp dir.
func workspace(t *testing.T, sql string) (cfgPath, sqlPath string) {
	t.Helper()
	dir := t.TempDir()

	catPath := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(catPath, []byte(cliCatalogYAML), 0o644))

	cfgPath = filepath.Join(dir, "sqltint.yaml")
	cfg := "connection: dev\nconnections:\n  dev:\n    driver: yaml\n    path: catalog.yaml\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	sqlPath = filepath.Join(dir, "query.sql")
	require.NoError(t, os.WriteFile(sqlPath, []byte(sql), 0o644))
	return cfgPath, sqlPath
}

func TestVersionCommand(t *testing.T) {
	chdir(t, t.TempDir())
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sqltint "+cli.Version)
}

func TestClassifyList(t *testing.T) {
	cfgPath, sqlPath := workspace(t, "SELECT e.Name FROM Employees e\n")
	out, err := run(t, "--config", cfgPath, "classify", "--list", sqlPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Employees")
	assert.Contains(t, out, "table")
	assert.Contains(t, out, "alias")
	assert.Contains(t, out, "column")
	assert.NotContains(t, out, "SELECT", "keywords are not identifier rows")
}

func TestClassifyNoColor(t *testing.T) {
	sql := "SELECT e.Name\nFROM Employees e\n"
	cfgPath, sqlPath := workspace(t, sql)
	out, err := run(t, "--config", cfgPath, "--no-color", "classify", sqlPath)
	require.NoError(t, err)

	assert.NotContains(t, out, "\x1b[", "no ANSI escapes without color")
	assert.Contains(t, out, "SELECT e.Name")
	assert.Contains(t, out, "FROM Employees e")
}

func TestClassifyWithoutConnection(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	sqlPath := filepath.Join(dir, "query.sql")
	require.NoError(t, os.WriteFile(sqlPath, []byte("SELECT 1\n"), 0o644))

	out, err := run(t, "--no-color", "classify", sqlPath)
	require.NoError(t, err)
	assert.Contains(t, out, "SELECT 1")
}

func TestClassifyUnknownConnection(t *testing.T) {
	cfgPath, sqlPath := workspace(t, "SELECT 1")
	_, err := run(t, "--config", cfgPath, "--connection", "nope", "classify", sqlPath)
	assert.Error(t, err)
}
