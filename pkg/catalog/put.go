package catalog

import "github.com/sqltint/sqltint/pkg/token"

// The Put methods are the catalog's only write surface. They are used by
// Loaders and by test fixtures; classification code never calls them.

// PutDatabase registers a database. Existing schema data is preserved when
// the database is already known.
func (c *Catalog) PutDatabase(name string, usesSchemas bool, defaultSchema string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := token.Fold(name)
	if d, ok := c.databases[key]; ok {
		d.UsesSchemas = usesSchemas
		d.DefaultSchema = defaultSchema
		return
	}
	c.databases[key] = &Database{
		Name:          name,
		UsesSchemas:   usesSchemas,
		DefaultSchema: defaultSchema,
		Schemas:       make(map[string]*Schema),
	}
}

// PutSchemas replaces the schema list of a database, keeping object data of
// schemas that survive the replacement.
func (c *Catalog) PutSchemas(db string, names []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.databases[token.Fold(db)]
	if !ok {
		return
	}
	next := make(map[string]*Schema, len(names))
	for _, name := range names {
		key := token.Fold(name)
		if s, ok := d.Schemas[key]; ok {
			next[key] = s
		} else {
			next[key] = &Schema{Name: name, Objects: make(map[string]*Object)}
		}
	}
	d.Schemas = next
	d.SchemasLoaded = true
}

// PutObjects replaces a schema's object list. Column details of objects that
// survive the replacement are preserved.
func (c *Catalog) PutObjects(db, schema string, objs []*Object) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.databases[token.Fold(db)]
	if !ok {
		return
	}
	key := token.Fold(schema)
	s, ok := d.Schemas[key]
	if !ok {
		s = &Schema{Name: schema, Objects: make(map[string]*Object)}
		d.Schemas[key] = s
	}
	next := make(map[string]*Object, len(objs))
	for _, o := range objs {
		okey := token.Fold(o.Name)
		if prev, ok := s.Objects[okey]; ok && prev.ColumnsLoaded && !o.ColumnsLoaded {
			o.Columns = prev.Columns
			o.ColumnsLoaded = true
		}
		o.Schema = s.Name
		next[okey] = o
	}
	s.Objects = next
	s.ObjectsLoaded = true
}

// PutColumns attaches column details to an object. The object is replaced
// rather than mutated so concurrent readers keep a consistent view.
func (c *Catalog) PutColumns(db, schema, object string, cols []Column) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.databases[token.Fold(db)]
	if !ok {
		return
	}
	s, ok := d.Schemas[token.Fold(schema)]
	if !ok {
		return
	}
	okey := token.Fold(object)
	prev, ok := s.Objects[okey]
	if !ok {
		return
	}
	s.Objects[okey] = &Object{
		Name:          prev.Name,
		Schema:        prev.Schema,
		Kind:          prev.Kind,
		Columns:       cols,
		ColumnsLoaded: true,
	}
}
