package semantic

import (
	"github.com/sqltint/sqltint/pkg/chunk"
	"github.com/sqltint/sqltint/pkg/token"
)

// ScopeContext is the set of locally visible names at one position. It is
// derived fresh from a chunk per resolution call and treated as read-only;
// its maps may share storage with the chunk.
type ScopeContext struct {
	Aliases    map[string]chunk.TableRef
	CTEs       map[string]*chunk.CteInfo
	TempTables map[string]struct{}
	Subqueries map[string]struct{}
	Tables     []chunk.TableRef
}

func emptyScope() *ScopeContext {
	return &ScopeContext{
		Aliases:    map[string]chunk.TableRef{},
		CTEs:       map[string]*chunk.CteInfo{},
		TempTables: map[string]struct{}{},
		Subqueries: map[string]struct{}{},
	}
}

// BuildScope derives the scope visible at pos from the owning chunk.
//
// When pos falls inside a CTE body, that CTE's own aliases, tables, and
// subquery aliases become the context and the outer statement's table list
// is suppressed, so names declared in one CTE do not leak into another.
// CTE names themselves stay visible everywhere in the statement, as do
// temp tables.
func BuildScope(c *chunk.Chunk, pos token.Position) *ScopeContext {
	if c == nil {
		return emptyScope()
	}
	sc := &ScopeContext{
		CTEs:       c.CTEs,
		TempTables: c.TempTables,
	}
	for _, cte := range c.CTEs {
		if cte.Body.Contains(pos) {
			sc.Aliases = cte.Aliases
			sc.Subqueries = cte.SubqueryAliases
			sc.Tables = cte.Tables
			return sc
		}
	}
	sc.Aliases = c.Aliases
	sc.Subqueries = c.SubqueryAliases
	sc.Tables = c.Tables
	return sc
}

// lookupAlias reports whether name matches an alias or subquery alias.
func (sc *ScopeContext) lookupAlias(name string) bool {
	folded := token.Fold(name)
	if _, ok := sc.Aliases[folded]; ok {
		return true
	}
	_, ok := sc.Subqueries[folded]
	return ok
}

// lookupCte reports whether name matches a declared CTE.
func (sc *ScopeContext) lookupCte(name string) bool {
	_, ok := sc.CTEs[token.Fold(name)]
	return ok
}

// lookupTemp reports whether name matches a known temp table.
func (sc *ScopeContext) lookupTemp(name string) bool {
	_, ok := sc.TempTables[token.Fold(name)]
	return ok
}
