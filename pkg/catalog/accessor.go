package catalog

import "github.com/sqltint/sqltint/pkg/token"

// Options controls a single accessor call.
type Options struct {
	Schema   string // restrict results to one schema; empty means all
	SkipLoad bool   // never enqueue background loads for missing data
}

// Accessor is the read-only, non-blocking view of the schema tree the
// resolver is handed. Every method returns only already resident data;
// with SkipLoad unset a miss may enqueue a background load, but no call
// ever waits for one.
type Accessor interface {
	HasDatabase(name string) bool
	DatabaseNames() []string
	UsesSchemas(db string) bool
	DefaultSchema(db string) string

	GetSchemas(db string, opts Options) []*Schema
	GetTables(db string, opts Options) []*Object
	GetViews(db string, opts Options) []*Object
	GetProcedures(db string, opts Options) []*Object
	GetFunctions(db string, opts Options) []*Object
	GetSynonyms(db string, opts Options) []*Object

	// SchemaObjectsLoaded reports whether the schema's object list is
	// resident, distinguishing "empty schema" from "not yet loaded".
	SchemaObjectsLoaded(db, schema string) bool

	// EnsureObjectDetails asks for an object's columns to be populated.
	// It may enqueue a background load; it never blocks.
	EnsureObjectDetails(db string, obj *Object)

	// RequestLoad asks for the database's schema list in the background.
	RequestLoad(db string)
}

var _ Accessor = (*Catalog)(nil)

// HasDatabase reports whether the database is known to the catalog.
func (c *Catalog) HasDatabase(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.databases[token.Fold(name)]
	return ok
}

// DatabaseNames returns the names of all known databases.
func (c *Catalog) DatabaseNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.databases))
	for _, d := range c.databases {
		names = append(names, d.Name)
	}
	return names
}

// UsesSchemas reports whether the database namespaces objects by schema.
func (c *Catalog) UsesSchemas(db string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if d, ok := c.databases[token.Fold(db)]; ok {
		return d.UsesSchemas
	}
	return false
}

// DefaultSchema returns the database's default schema name ("dbo" style).
func (c *Catalog) DefaultSchema(db string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if d, ok := c.databases[token.Fold(db)]; ok {
		return d.DefaultSchema
	}
	return ""
}

// GetSchemas returns the resident schemas of a database.
func (c *Catalog) GetSchemas(db string, opts Options) []*Schema {
	c.mu.RLock()
	d, ok := c.databases[token.Fold(db)]
	if !ok {
		c.mu.RUnlock()
		return nil
	}
	loaded := d.SchemasLoaded
	var out []*Schema
	for _, s := range d.Schemas {
		if opts.Schema == "" || token.Fold(opts.Schema) == token.Fold(s.Name) {
			out = append(out, s)
		}
	}
	c.mu.RUnlock()

	if !loaded && !opts.SkipLoad {
		c.request(LoadRequest{Kind: LoadSchemas, Database: db})
	}
	return out
}

// GetTables returns resident tables, optionally filtered by schema.
func (c *Catalog) GetTables(db string, opts Options) []*Object {
	return c.objects(db, opts, KindTable)
}

// GetViews returns resident views, optionally filtered by schema.
func (c *Catalog) GetViews(db string, opts Options) []*Object {
	return c.objects(db, opts, KindView)
}

// GetProcedures returns resident procedures, optionally filtered by schema.
func (c *Catalog) GetProcedures(db string, opts Options) []*Object {
	return c.objects(db, opts, KindProcedure)
}

// GetFunctions returns resident functions, optionally filtered by schema.
func (c *Catalog) GetFunctions(db string, opts Options) []*Object {
	return c.objects(db, opts, KindFunction)
}

// GetSynonyms returns resident synonyms, optionally filtered by schema.
func (c *Catalog) GetSynonyms(db string, opts Options) []*Object {
	return c.objects(db, opts, KindSynonym)
}

func (c *Catalog) objects(db string, opts Options, kind ObjectKind) []*Object {
	c.mu.RLock()
	d, ok := c.databases[token.Fold(db)]
	if !ok {
		c.mu.RUnlock()
		return nil
	}
	var out []*Object
	var missing []string
	for _, s := range d.Schemas {
		if opts.Schema != "" && token.Fold(opts.Schema) != token.Fold(s.Name) {
			continue
		}
		if !s.ObjectsLoaded {
			missing = append(missing, s.Name)
			continue
		}
		for _, o := range s.Objects {
			if o.Kind == kind {
				out = append(out, o)
			}
		}
	}
	c.mu.RUnlock()

	if !opts.SkipLoad {
		for _, schema := range missing {
			c.request(LoadRequest{Kind: LoadObjects, Database: db, Schema: schema})
		}
	}
	return out
}

// SchemaObjectsLoaded reports whether a schema's object list is resident.
func (c *Catalog) SchemaObjectsLoaded(db, schema string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.databases[token.Fold(db)]
	if !ok {
		return false
	}
	s, ok := d.Schemas[token.Fold(schema)]
	return ok && s.ObjectsLoaded
}

// EnsureObjectDetails enqueues a column load for the object unless its
// details are already resident.
func (c *Catalog) EnsureObjectDetails(db string, obj *Object) {
	if obj == nil || obj.ColumnsLoaded {
		return
	}
	c.request(LoadRequest{Kind: LoadColumns, Database: db, Schema: obj.Schema, Object: obj.Name})
}

// RequestLoad enqueues a schema-list load for the database.
func (c *Catalog) RequestLoad(db string) {
	c.request(LoadRequest{Kind: LoadSchemas, Database: db})
}
