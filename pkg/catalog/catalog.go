// Package catalog holds the lazily loaded schema tree the resolver
// classifies identifiers against.
//
// All reads are non-blocking by contract: a lookup returns only data already
// resident in memory. When data is missing and the caller did not ask for
// skip-load semantics, the catalog enqueues a fire-and-forget load request
// that a Loader may service in the background. A later classification pass
// simply observes that more data is present.
package catalog

import (
	"log/slog"
	"sync"

	"github.com/sqltint/sqltint/pkg/token"
)

// ObjectKind identifies the kind of a schema-level object.
type ObjectKind int

// Object kinds.
const (
	KindTable ObjectKind = iota
	KindView
	KindProcedure
	KindFunction
	KindSynonym
)

var kindNames = map[ObjectKind]string{
	KindTable:     "table",
	KindView:      "view",
	KindProcedure: "procedure",
	KindFunction:  "function",
	KindSynonym:   "synonym",
}

// String returns the kind name.
func (k ObjectKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "object"
}

// Column is one column of a table or view.
type Column struct {
	Name     string
	DataType string
}

// Object is a table, view, procedure, function, or synonym. Columns are
// populated lazily; ColumnsLoaded distinguishes "no columns" from "not yet
// loaded". Loaded objects are treated as immutable: the Loader replaces an
// object wholesale instead of mutating its slices.
type Object struct {
	Name          string
	Schema        string
	Kind          ObjectKind
	Columns       []Column
	ColumnsLoaded bool
}

// Column returns the named column, case-insensitively.
func (o *Object) Column(name string) (*Column, bool) {
	folded := token.Fold(name)
	for i := range o.Columns {
		if token.Fold(o.Columns[i].Name) == folded {
			return &o.Columns[i], true
		}
	}
	return nil, false
}

// Schema is one namespace of objects within a database.
type Schema struct {
	Name          string
	Objects       map[string]*Object // folded name -> object
	ObjectsLoaded bool
}

// Object returns the named object within the schema, case-insensitively.
func (s *Schema) Object(name string) (*Object, bool) {
	o, ok := s.Objects[token.Fold(name)]
	return o, ok
}

// Database is the root of one database's schema tree. Schema-less engines
// (UsesSchemas false) hold their objects in a single implicit schema whose
// name equals DefaultSchema.
type Database struct {
	Name          string
	UsesSchemas   bool
	DefaultSchema string
	Schemas       map[string]*Schema // folded name -> schema
	SchemasLoaded bool
}

// Schema returns the named schema, case-insensitively.
func (d *Database) Schema(name string) (*Schema, bool) {
	s, ok := d.Schemas[token.Fold(name)]
	return s, ok
}

// LoadKind identifies what a background load request should fetch.
type LoadKind int

// Load request kinds.
const (
	LoadSchemas LoadKind = iota // schema list of a database
	LoadObjects                 // object list of a schema
	LoadColumns                 // column details of one object
)

// LoadRequest is a fire-and-forget ask for background catalog loading.
type LoadRequest struct {
	Kind     LoadKind
	Database string
	Schema   string
	Object   string
}

// Catalog is the in-memory schema tree. Reads never block and never trigger
// I/O; writes come from a Loader (or test setup) through the Put methods.
type Catalog struct {
	mu        sync.RWMutex
	databases map[string]*Database // folded name -> database
	requests  chan LoadRequest
	log       *slog.Logger
}

// New creates an empty catalog. A nil logger falls back to slog.Default.
func New(log *slog.Logger) *Catalog {
	if log == nil {
		log = slog.Default()
	}
	return &Catalog{
		databases: make(map[string]*Database),
		requests:  make(chan LoadRequest, 256),
		log:       log,
	}
}

// Requests exposes the background load request channel for a Loader.
func (c *Catalog) Requests() <-chan LoadRequest {
	return c.requests
}

// request enqueues a load request without ever blocking. A full queue drops
// the request; a later pass will re-request whatever is still missing.
func (c *Catalog) request(req LoadRequest) {
	select {
	case c.requests <- req:
	default:
		c.log.Debug("load request dropped, queue full",
			"database", req.Database, "schema", req.Schema, "object", req.Object)
	}
}
