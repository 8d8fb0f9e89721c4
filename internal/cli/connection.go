package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/sqltint/sqltint/internal/config"
	"github.com/sqltint/sqltint/pkg/catalog"
	"github.com/sqltint/sqltint/pkg/semantic"
)

// session bundles an open catalog with the loader feeding it and the
// connection context handed to classification.
type session struct {
	Catalog *catalog.Catalog
	Loader  *catalog.Loader
	Conn    *semantic.ConnectionContext

	closers []func() error
}

// Close releases any database handles the session opened.
func (s *session) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openSession builds a catalog session from the active connection. A config
// with no connection yields a session with a nil Conn; classification then
// runs on scope and clause heuristics alone.
func openSession(cfg *config.Config) (*session, error) {
	cc, err := cfg.ActiveConnection()
	if err != nil {
		return nil, err
	}
	if cc == nil {
		return &session{}, nil
	}

	src, closer, err := openSource(cc)
	if err != nil {
		return nil, err
	}

	cat := catalog.New(slog.Default())
	s := &session{
		Catalog: cat,
		Loader:  catalog.NewLoader(cat, src, slog.Default()),
	}
	if closer != nil {
		s.closers = append(s.closers, closer)
	}
	s.Conn = &semantic.ConnectionContext{Accessor: cat, Database: cc.Database}
	return s, nil
}

func openSource(cc *config.ConnectionConfig) (catalog.Source, func() error, error) {
	switch cc.Driver {
	case "yaml":
		src, err := catalog.OpenYAML(cc.Path)
		return src, nil, err
	case "sqlite":
		db, err := sql.Open("sqlite", cc.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite database: %w", err)
		}
		src, err := catalog.NewSQLSource(db, catalog.FlavorSQLite)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return src, db.Close, nil
	case "postgres":
		db, err := sql.Open("pgx", cc.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres connection: %w", err)
		}
		src, err := catalog.NewSQLSource(db, catalog.FlavorPostgres)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return src, db.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown connection driver %q", cc.Driver)
}

// prime fills the session's catalog up front and picks a connected
// database when the config named none.
func (s *session) prime(ctx context.Context) error {
	if s.Conn == nil {
		return nil
	}
	if err := s.Loader.PrimeAll(ctx); err != nil {
		return err
	}
	if s.Conn.Database == "" {
		if names := sorted(s.Catalog.DatabaseNames()); len(names) > 0 {
			s.Conn.Database = names[0]
		}
	}
	return nil
}
