package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"
)

// DatabaseInfo describes a database a Source can enumerate.
type DatabaseInfo struct {
	Name          string
	UsesSchemas   bool
	DefaultSchema string
}

// Source fetches schema metadata from somewhere slow (a server, a file).
// Sources are only ever called by a Loader, never from classification.
type Source interface {
	Databases(ctx context.Context) ([]DatabaseInfo, error)
	Schemas(ctx context.Context, db string) ([]string, error)
	Objects(ctx context.Context, db, schema string) ([]*Object, error)
	Columns(ctx context.Context, db, schema, object string) ([]Column, error)
}

// Loader services the catalog's background load requests from a Source.
// Duplicate in-flight requests are collapsed with singleflight so a burst of
// classification passes cannot fan out into duplicate fetches.
type Loader struct {
	cat   *Catalog
	src   Source
	group singleflight.Group
	log   *slog.Logger
}

// NewLoader creates a loader feeding the given catalog from the source.
func NewLoader(cat *Catalog, src Source, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{cat: cat, src: src, log: log}
}

// Prime loads the database list and the schema lists eagerly. It is meant
// for startup, before the first classification pass; object and column
// loads stay lazy.
func (l *Loader) Prime(ctx context.Context) error {
	dbs, err := l.src.Databases(ctx)
	if err != nil {
		return fmt.Errorf("load databases: %w", err)
	}
	for _, db := range dbs {
		l.cat.PutDatabase(db.Name, db.UsesSchemas, db.DefaultSchema)
		if err := l.loadSchemas(ctx, db.Name); err != nil {
			return err
		}
	}
	return nil
}

// PrimeAll loads everything, columns included. Used for fixture catalogs
// and one-shot CLI runs where laziness buys nothing.
func (l *Loader) PrimeAll(ctx context.Context) error {
	if err := l.Prime(ctx); err != nil {
		return err
	}
	for _, db := range l.cat.DatabaseNames() {
		for _, schema := range l.cat.GetSchemas(db, Options{SkipLoad: true}) {
			if err := l.loadObjects(ctx, db, schema.Name); err != nil {
				return err
			}
			for _, obj := range schema.Objects {
				if err := l.loadColumns(ctx, db, schema.Name, obj.Name); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Run consumes load requests until the context is canceled. Errors are
// logged and dropped: a failed background load is indistinguishable from
// data that has not arrived yet, and the resolver already degrades to
// heuristics in that case.
func (l *Loader) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-l.cat.requests:
			if err := l.service(ctx, req); err != nil {
				l.log.Debug("background load failed",
					"database", req.Database, "schema", req.Schema,
					"object", req.Object, "error", err)
			}
		}
	}
}

func (l *Loader) service(ctx context.Context, req LoadRequest) error {
	key := fmt.Sprintf("%d/%s/%s/%s", req.Kind, req.Database, req.Schema, req.Object)
	_, err, _ := l.group.Do(key, func() (any, error) {
		switch req.Kind {
		case LoadSchemas:
			return nil, l.loadSchemas(ctx, req.Database)
		case LoadObjects:
			return nil, l.loadObjects(ctx, req.Database, req.Schema)
		case LoadColumns:
			return nil, l.loadColumns(ctx, req.Database, req.Schema, req.Object)
		}
		return nil, nil
	})
	return err
}

func (l *Loader) loadSchemas(ctx context.Context, db string) error {
	names, err := l.src.Schemas(ctx, db)
	if err != nil {
		return fmt.Errorf("load schemas of %s: %w", db, err)
	}
	l.cat.PutSchemas(db, names)
	return nil
}

func (l *Loader) loadObjects(ctx context.Context, db, schema string) error {
	objs, err := l.src.Objects(ctx, db, schema)
	if err != nil {
		return fmt.Errorf("load objects of %s.%s: %w", db, schema, err)
	}
	l.cat.PutObjects(db, schema, objs)
	return nil
}

func (l *Loader) loadColumns(ctx context.Context, db, schema, object string) error {
	cols, err := l.src.Columns(ctx, db, schema, object)
	if err != nil {
		return fmt.Errorf("load columns of %s.%s.%s: %w", db, schema, object, err)
	}
	l.cat.PutColumns(db, schema, object, cols)
	return nil
}
