package catalog_test

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqltint/sqltint/pkg/catalog"
)

func TestNewSQLSourceRejectsUnknownFlavor(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = catalog.NewSQLSource(db, catalog.Flavor("oracle"))
	assert.Error(t, err)
}

func TestSQLSourceSQLite(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	src, err := catalog.NewSQLSource(db, catalog.FlavorSQLite)
	require.NoError(t, err)
	ctx := context.Background()

	dbs, err := src.Databases(ctx)
	require.NoError(t, err)
	require.Len(t, dbs, 1)
	assert.Equal(t, "main", dbs[0].Name)
	assert.False(t, dbs[0].UsesSchemas)

	schemas, err := src.Schemas(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, []string{"main"}, schemas)

	mock.ExpectQuery("FROM sqlite_master").WillReturnRows(
		sqlmock.NewRows([]string{"name", "type"}).
			AddRow("Employees", "table").
			AddRow("ActiveEmployees", "view"))

	objs, err := src.Objects(ctx, "main", "main")
	require.NoError(t, err)
	require.Len(t, objs, 2)
	assert.Equal(t, catalog.KindTable, objs[0].Kind)
	assert.Equal(t, catalog.KindView, objs[1].Kind)
	assert.Equal(t, "main", objs[0].Schema)

	mock.ExpectQuery(regexp.QuoteMeta("pragma_table_info(?)")).
		WithArgs("Employees").
		WillReturnRows(sqlmock.NewRows([]string{"name", "type"}).
			AddRow("Id", "INTEGER").
			AddRow("Name", "TEXT"))

	cols, err := src.Columns(ctx, "main", "main", "Employees")
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, "Id", cols[0].Name)
	assert.Equal(t, "INTEGER", cols[0].DataType)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSourcePostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	src, err := catalog.NewSQLSource(db, catalog.FlavorPostgres)
	require.NoError(t, err)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT current_database()")).
		WillReturnRows(sqlmock.NewRows([]string{"current_database"}).AddRow("sales"))

	dbs, err := src.Databases(ctx)
	require.NoError(t, err)
	require.Len(t, dbs, 1)
	assert.Equal(t, "sales", dbs[0].Name)
	assert.True(t, dbs[0].UsesSchemas)
	assert.Equal(t, "public", dbs[0].DefaultSchema)

	mock.ExpectQuery("information_schema.schemata").WillReturnRows(
		sqlmock.NewRows([]string{"schema_name"}).AddRow("public").AddRow("reports"))

	schemas, err := src.Schemas(ctx, "sales")
	require.NoError(t, err)
	assert.Equal(t, []string{"public", "reports"}, schemas)

	mock.ExpectQuery("information_schema.tables").WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"table_name", "table_type"}).
			AddRow("orders", "BASE TABLE").
			AddRow("order_summary", "VIEW"))
	mock.ExpectQuery("information_schema.routines").WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"routine_name", "routine_type"}).
			AddRow("refresh_summary", "PROCEDURE").
			AddRow("order_total", "FUNCTION"))

	objs, err := src.Objects(ctx, "sales", "public")
	require.NoError(t, err)
	require.Len(t, objs, 4)
	assert.Equal(t, catalog.KindTable, objs[0].Kind)
	assert.Equal(t, catalog.KindView, objs[1].Kind)
	assert.Equal(t, catalog.KindProcedure, objs[2].Kind)
	assert.Equal(t, catalog.KindFunction, objs[3].Kind)

	mock.ExpectQuery("information_schema.columns").WithArgs("public", "orders").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type"}).
			AddRow("id", "integer"))

	cols, err := src.Columns(ctx, "sales", "public", "orders")
	require.NoError(t, err)
	require.Len(t, cols, 1)
	assert.Equal(t, "id", cols[0].Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}
