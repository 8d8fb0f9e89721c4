package semantic

import (
	"strings"

	"github.com/sqltint/sqltint/pkg/catalog"
	"github.com/sqltint/sqltint/pkg/chunk"
	"github.com/sqltint/sqltint/pkg/token"
)

// ConnectionContext identifies the database the buffer is bound to and the
// catalog snapshot to resolve against. A nil context degrades resolution to
// scope and clause heuristics.
type ConnectionContext struct {
	Accessor catalog.Accessor
	Database string
}

// CreateKind is the object kind named by an enclosing CREATE or ALTER.
type CreateKind int

// Create kinds.
const (
	CreateNone CreateKind = iota
	CreateProcedure
	CreateFunction
	CreateView
	CreateTable
)

func (k CreateKind) semanticType() Type {
	switch k {
	case CreateProcedure:
		return Procedure
	case CreateFunction:
		return Function
	case CreateView:
		return View
	case CreateTable:
		return Table
	}
	return Unresolved
}

// ResolutionContext carries the syntactic hints for one multi-part
// resolution call.
type ResolutionContext struct {
	Clause            chunk.Clause
	IsDatabaseContext bool
	Create            CreateKind
}

// resolver runs the disambiguation cascade for dotted identifier chains.
type resolver struct {
	conn *ConnectionContext
}

// resolve assigns one semantic type per name part. It is an ordered
// sequence of mutually exclusive checks; the first that applies wins. The
// ordering is observable behavior: in particular a name that is both a
// schema in the connected database and a database elsewhere must resolve
// as the schema, so the connected-schema check runs before any
// cross-database interpretation.
func (r *resolver) resolve(parts []NamePart, scope *ScopeContext, rctx ResolutionContext) []Type {
	types := make([]Type, len(parts))
	if len(parts) == 0 {
		return types
	}
	if scope == nil {
		scope = emptyScope()
	}
	first := parts[0].Text

	// Four or more parts is either database.schema.object.column or an
	// unsupported linked-server reference.
	if len(parts) >= 4 {
		if r.conn != nil && r.conn.Accessor.HasDatabase(first) {
			r.qualified(parts, types)
			return types
		}
		markFrom(types, 0, Unresolved)
		return types
	}

	// USE <name>: a database whether or not the catalog knows it yet.
	// Kick off a background schema load so the next pass can see inside.
	if rctx.IsDatabaseContext && len(parts) == 1 {
		types[0] = Database
		if r.conn != nil {
			r.conn.Accessor.RequestLoad(first)
		}
		return types
	}

	// CREATE/ALTER <kind> name: the trailing part is that kind even when
	// the object does not exist yet.
	if rctx.Create != CreateNone {
		last := len(parts) - 1
		types[last] = rctx.Create.semanticType()
		switch len(parts) {
		case 2:
			types[0] = Schema
		case 3:
			types[0] = Database
			types[1] = Schema
		}
		return types
	}

	// Local scope beats every catalog object.
	switch {
	case scope.lookupAlias(first):
		types[0] = Alias
		markFrom(types, 1, Column)
		return types
	case scope.lookupCte(first):
		types[0] = Cte
		markFrom(types, 1, Column)
		return types
	case strings.HasPrefix(first, "#") || scope.lookupTemp(first):
		types[0] = TempTable
		markFrom(types, 1, Column)
		return types
	}

	if r.conn != nil {
		acc, db := r.conn.Accessor, r.conn.Database

		// Schema of the connected database, before any cross-database
		// reading of the same name. Only fires once the schema's object
		// list is resident; an unloaded schema falls through to the
		// heuristic below.
		if len(parts) >= 2 && acc.UsesSchemas(db) && r.schemaExists(db, first) {
			if acc.SchemaObjectsLoaded(db, first) {
				types[0] = Schema
				if obj, ok := r.findObject(db, first, parts[1].Text); ok {
					types[1] = objectType(obj.Kind)
					r.verifyColumns(db, obj, parts, types, 2)
				} else {
					markFrom(types, 1, Unresolved)
				}
				return types
			}
		}

		// Cross-database qualification.
		if token.Fold(first) != token.Fold(db) && acc.HasDatabase(first) {
			r.qualified(parts, types)
			return types
		}

		// Schema known but its objects not yet loaded: guess part 2 from
		// the clause.
		if len(parts) >= 2 && acc.UsesSchemas(db) && r.schemaExists(db, first) {
			types[0] = Schema
			switch rctx.Clause {
			case chunk.ClauseFrom, chunk.ClauseJoin:
				types[1] = Table
			case chunk.ClauseExec:
				types[1] = Procedure
			default:
				types[1] = Unresolved
			}
			markFrom(types, 2, Column)
			return types
		}

		// Object in the connected database, default schema first.
		if obj, ok := r.findObjectAnySchema(db, first); ok {
			types[0] = objectType(obj.Kind)
			r.verifyColumns(db, obj, parts, types, 1)
			return types
		}
	}

	// Table list of the owning statement.
	if ref, ok := r.tableRef(scope, first); ok {
		types[0] = Table
		if r.conn != nil {
			db := ref.Database
			if db == "" {
				db = r.conn.Database
			}
			schema := ref.Schema
			if schema == "" {
				schema = r.conn.Accessor.DefaultSchema(db)
			}
			if obj, found := r.findObject(db, schema, ref.Name); found {
				r.verifyColumns(db, obj, parts, types, 1)
				return types
			}
		}
		markFrom(types, 1, Column)
		return types
	}

	// Lone name as a column: tables of this statement first, then every
	// loaded table and view of the connected database.
	if len(parts) == 1 && r.conn != nil && r.columnExists(scope, first) {
		types[0] = Column
		return types
	}

	// Clause heuristics for whatever the catalog could not decide.
	if len(parts) >= 2 {
		if r.clauseGuess(parts, types, rctx.Clause) {
			return types
		}
	}

	markFrom(types, 0, Unresolved)
	return types
}

// qualified resolves database.schema.object.column (or database.object.
// column for schema-less databases), verifying each level against resident
// catalog state. An unresolved level short-circuits everything deeper.
func (r *resolver) qualified(parts []NamePart, types []Type) {
	acc := r.conn.Accessor
	db := parts[0].Text
	types[0] = Database

	i := 1
	var schema string
	if acc.UsesSchemas(db) {
		if len(parts) < 2 {
			return
		}
		if !r.schemaExists(db, parts[1].Text) {
			markFrom(types, 1, Unresolved)
			return
		}
		types[1] = Schema
		schema = parts[1].Text
		i = 2
	} else {
		schema = acc.DefaultSchema(db)
	}

	if i >= len(parts) {
		return
	}
	obj, ok := r.findObject(db, schema, parts[i].Text)
	if !ok {
		markFrom(types, i, Unresolved)
		return
	}
	types[i] = objectType(obj.Kind)
	r.verifyColumns(db, obj, parts, types, i+1)
}

// verifyColumns classifies parts[from:] as columns of obj. Column details
// are requested on demand; while they are not resident the parts are
// optimistically columns rather than unresolved.
func (r *resolver) verifyColumns(db string, obj *catalog.Object, parts []NamePart, types []Type, from int) {
	if from >= len(parts) {
		return
	}
	r.conn.Accessor.EnsureObjectDetails(db, obj)
	if !obj.ColumnsLoaded {
		markFrom(types, from, Column)
		return
	}
	for i := from; i < len(parts); i++ {
		if _, ok := obj.Column(parts[i].Text); ok {
			types[i] = Column
		} else {
			types[i] = Unresolved
		}
	}
}

func (r *resolver) schemaExists(db, name string) bool {
	return len(r.conn.Accessor.GetSchemas(db, catalog.Options{Schema: name, SkipLoad: true})) > 0
}

// findObject looks name up in one schema across every object kind.
func (r *resolver) findObject(db, schema, name string) (*catalog.Object, bool) {
	acc := r.conn.Accessor
	opts := catalog.Options{Schema: schema, SkipLoad: true}
	folded := token.Fold(name)
	for _, list := range [][]*catalog.Object{
		acc.GetTables(db, opts),
		acc.GetViews(db, opts),
		acc.GetProcedures(db, opts),
		acc.GetFunctions(db, opts),
		acc.GetSynonyms(db, opts),
	} {
		for _, obj := range list {
			if token.Fold(obj.Name) == folded {
				return obj, true
			}
		}
	}
	return nil, false
}

// findObjectAnySchema searches the default schema first, then every other
// resident schema.
func (r *resolver) findObjectAnySchema(db, name string) (*catalog.Object, bool) {
	acc := r.conn.Accessor
	def := acc.DefaultSchema(db)
	if def != "" {
		if obj, ok := r.findObject(db, def, name); ok {
			return obj, true
		}
	}
	for _, s := range acc.GetSchemas(db, catalog.Options{SkipLoad: true}) {
		if token.Fold(s.Name) == token.Fold(def) {
			continue
		}
		if obj, ok := r.findObject(db, s.Name, name); ok {
			return obj, true
		}
	}
	return nil, false
}

// tableRef matches name against the bare names of the statement's table
// list.
func (r *resolver) tableRef(scope *ScopeContext, name string) (chunk.TableRef, bool) {
	folded := token.Fold(name)
	for _, ref := range scope.Tables {
		if token.Fold(ref.BareName()) == folded {
			return ref, true
		}
	}
	return chunk.TableRef{}, false
}

// columnExists checks name against the columns of the statement's own
// tables, then against every loaded table and view in the connected
// database.
func (r *resolver) columnExists(scope *ScopeContext, name string) bool {
	acc, db := r.conn.Accessor, r.conn.Database
	for _, ref := range scope.Tables {
		refDB := ref.Database
		if refDB == "" {
			refDB = db
		}
		schema := ref.Schema
		if schema == "" {
			schema = acc.DefaultSchema(refDB)
		}
		if obj, ok := r.findObject(refDB, schema, ref.Name); ok {
			if obj.ColumnsLoaded {
				if _, found := obj.Column(name); found {
					return true
				}
			}
		}
	}
	opts := catalog.Options{SkipLoad: true}
	for _, list := range [][]*catalog.Object{acc.GetTables(db, opts), acc.GetViews(db, opts)} {
		for _, obj := range list {
			if !obj.ColumnsLoaded {
				continue
			}
			if _, ok := obj.Column(name); ok {
				return true
			}
		}
	}
	return false
}

// clauseGuess fills in a multi-part name from the surrounding clause alone.
func (r *resolver) clauseGuess(parts []NamePart, types []Type, clause chunk.Clause) bool {
	switch clause {
	case chunk.ClauseFrom, chunk.ClauseJoin:
		if len(parts) == 2 {
			types[0], types[1] = Schema, Table
		} else {
			types[0], types[1], types[2] = Database, Schema, Table
		}
	case chunk.ClauseSelect, chunk.ClauseWhere, chunk.ClauseOn,
		chunk.ClauseGroupBy, chunk.ClauseHaving, chunk.ClauseOrderBy:
		if len(parts) == 2 {
			types[0], types[1] = Table, Column
		} else {
			types[0], types[1], types[2] = Schema, Table, Column
			markFrom(types, 3, Column)
		}
	case chunk.ClauseExec:
		if len(parts) == 2 {
			types[0], types[1] = Schema, Procedure
		} else {
			types[0], types[1], types[2] = Database, Schema, Procedure
		}
	default:
		return false
	}
	return true
}

func objectType(k catalog.ObjectKind) Type {
	switch k {
	case catalog.KindView:
		return View
	case catalog.KindProcedure:
		return Procedure
	case catalog.KindFunction:
		return Function
	case catalog.KindSynonym:
		return Synonym
	}
	return Table
}

func markFrom(types []Type, from int, t Type) {
	for i := from; i < len(types); i++ {
		types[i] = t
	}
}
