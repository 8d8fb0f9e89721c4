package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

// Flavor selects the introspection queries for a live database.
type Flavor string

// Supported flavors.
const (
	FlavorSQLite   Flavor = "sqlite"
	FlavorPostgres Flavor = "postgres"
)

// SQLSource introspects schema metadata from a live database over
// database/sql. The driver is registered by the caller (the CLI imports
// modernc.org/sqlite and pgx's stdlib shim); this package stays
// driver-agnostic so it can be tested against sqlmock.
type SQLSource struct {
	db     *sql.DB
	flavor Flavor
}

// NewSQLSource wraps an open database handle.
func NewSQLSource(db *sql.DB, flavor Flavor) (*SQLSource, error) {
	switch flavor {
	case FlavorSQLite, FlavorPostgres:
		return &SQLSource{db: db, flavor: flavor}, nil
	default:
		return nil, fmt.Errorf("unsupported catalog flavor %q", flavor)
	}
}

// Databases implements Source.
func (s *SQLSource) Databases(ctx context.Context) ([]DatabaseInfo, error) {
	switch s.flavor {
	case FlavorSQLite:
		// SQLite is single-database and schema-less; objects live in the
		// implicit "main" schema.
		return []DatabaseInfo{{Name: "main", UsesSchemas: false, DefaultSchema: "main"}}, nil
	case FlavorPostgres:
		var name string
		if err := s.db.QueryRowContext(ctx, `SELECT current_database()`).Scan(&name); err != nil {
			return nil, fmt.Errorf("current database: %w", err)
		}
		return []DatabaseInfo{{Name: name, UsesSchemas: true, DefaultSchema: "public"}}, nil
	}
	return nil, nil
}

// Schemas implements Source.
func (s *SQLSource) Schemas(ctx context.Context, db string) ([]string, error) {
	if s.flavor == FlavorSQLite {
		return []string{"main"}, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT schema_name FROM information_schema.schemata
		WHERE schema_name NOT IN ('pg_catalog', 'information_schema')
		ORDER BY schema_name`)
	if err != nil {
		return nil, fmt.Errorf("list schemas: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Objects implements Source.
func (s *SQLSource) Objects(ctx context.Context, db, schema string) ([]*Object, error) {
	switch s.flavor {
	case FlavorSQLite:
		return s.sqliteObjects(ctx, schema)
	case FlavorPostgres:
		return s.postgresObjects(ctx, schema)
	}
	return nil, nil
}

func (s *SQLSource) sqliteObjects(ctx context.Context, schema string) ([]*Object, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, type FROM sqlite_master
		WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%'
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	defer rows.Close()

	var objs []*Object
	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return nil, err
		}
		kind := KindTable
		if typ == "view" {
			kind = KindView
		}
		objs = append(objs, &Object{Name: name, Schema: schema, Kind: kind})
	}
	return objs, rows.Err()
}

func (s *SQLSource) postgresObjects(ctx context.Context, schema string) ([]*Object, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT table_name, table_type FROM information_schema.tables
		WHERE table_schema = $1
		ORDER BY table_name`, schema)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var objs []*Object
	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return nil, err
		}
		kind := KindTable
		if typ == "VIEW" {
			kind = KindView
		}
		objs = append(objs, &Object{Name: name, Schema: schema, Kind: kind})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	routines, err := s.db.QueryContext(ctx, `
		SELECT routine_name, routine_type FROM information_schema.routines
		WHERE routine_schema = $1
		ORDER BY routine_name`, schema)
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}
	defer routines.Close()

	for routines.Next() {
		var name, typ string
		if err := routines.Scan(&name, &typ); err != nil {
			return nil, err
		}
		kind := KindFunction
		if typ == "PROCEDURE" {
			kind = KindProcedure
		}
		objs = append(objs, &Object{Name: name, Schema: schema, Kind: kind})
	}
	return objs, routines.Err()
}

// Columns implements Source.
func (s *SQLSource) Columns(ctx context.Context, db, schema, object string) ([]Column, error) {
	var rows *sql.Rows
	var err error
	switch s.flavor {
	case FlavorSQLite:
		rows, err = s.db.QueryContext(ctx,
			`SELECT name, type FROM pragma_table_info(?) ORDER BY cid`, object)
	case FlavorPostgres:
		rows, err = s.db.QueryContext(ctx, `
			SELECT column_name, data_type FROM information_schema.columns
			WHERE table_schema = $1 AND table_name = $2
			ORDER BY ordinal_position`, schema, object)
	}
	if err != nil {
		return nil, fmt.Errorf("list columns of %s: %w", object, err)
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return nil, err
		}
		cols = append(cols, Column{Name: name, DataType: typ})
	}
	return cols, rows.Err()
}
