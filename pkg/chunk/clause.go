package chunk

import "github.com/sqltint/sqltint/pkg/token"

// Clause identifies the syntactic clause surrounding a position. It is the
// hint the resolver falls back on when the catalog cannot decide.
type Clause int

// Clause kinds.
const (
	ClauseNone Clause = iota
	ClauseSelect
	ClauseFrom
	ClauseJoin
	ClauseWhere
	ClauseOn
	ClauseGroupBy
	ClauseHaving
	ClauseOrderBy
	ClauseExec
	ClauseUse
	ClauseSet
	ClauseInsert
)

var clauseNames = map[Clause]string{
	ClauseNone:    "none",
	ClauseSelect:  "select",
	ClauseFrom:    "from",
	ClauseJoin:    "join",
	ClauseWhere:   "where",
	ClauseOn:      "on",
	ClauseGroupBy: "group by",
	ClauseHaving:  "having",
	ClauseOrderBy: "order by",
	ClauseExec:    "exec",
	ClauseUse:     "use",
	ClauseSet:     "set",
	ClauseInsert:  "insert",
}

// String returns the clause name.
func (c Clause) String() string {
	if name, ok := clauseNames[c]; ok {
		return name
	}
	return "none"
}

// clauseKeywords maps clause-opening keywords to their clause kind.
var clauseKeywords = map[string]Clause{
	"select":  ClauseSelect,
	"from":    ClauseFrom,
	"join":    ClauseJoin,
	"where":   ClauseWhere,
	"on":      ClauseOn,
	"group":   ClauseGroupBy,
	"having":  ClauseHaving,
	"order":   ClauseOrderBy,
	"exec":    ClauseExec,
	"execute": ClauseExec,
	"use":     ClauseUse,
	"set":     ClauseSet,
	"insert":  ClauseInsert,
	"values":  ClauseInsert,
}

// ClauseTracker derives the clause in effect from a single forward pass
// over the token stream. Statement and batch boundaries reset the clause,
// so a hint from one statement never leaks into the next: after
// `USE Sales` a following `DROP TABLE Employees` is not in a USE clause.
type ClauseTracker struct {
	clause Clause
}

// Advance consumes one token and returns the clause in effect at it. The
// token's own effect is included, so advancing over a FROM keyword already
// reports ClauseFrom.
func (tr *ClauseTracker) Advance(t token.Token) Clause {
	switch t.Kind {
	case token.Semicolon, token.BatchSeparator:
		tr.clause = ClauseNone
	case token.Keyword:
		if c, ok := clauseKeywords[token.Fold(t.Text)]; ok {
			tr.clause = c
		} else if t.Category == token.KwStatement {
			// A statement starter that opens no clause of its own
			// (DROP, DELETE, UPDATE, ...) ends the previous clause.
			tr.clause = ClauseNone
		}
	}
	return tr.clause
}

// ClauseAt returns the clause in effect at the given position by scanning
// clause keywords up to it. The scan is over tokens, not the chunk, so a
// position inside a subquery picks up the subquery's own clause.
func ClauseAt(toks []token.Token, pos token.Position) Clause {
	var tr ClauseTracker
	clause := ClauseNone
	for _, t := range toks {
		if pos.Before(t.Pos) {
			break
		}
		clause = tr.Advance(t)
	}
	return clause
}
