// Package semantic assigns each token of a SQL buffer a semantic
// classification: not what the token looks like, but what its identifier
// actually resolves to against the connected database's catalog and the
// statement's local scope.
//
// Classification is a pure function of (tokens, chunks, catalog snapshot,
// config). It never blocks on I/O; at most it enqueues fire-and-forget
// catalog load requests whose results show up in a later pass.
package semantic

// Type is the resolved classification of one token. The set is closed so
// the highlight mapping can be total.
type Type int

// Semantic types.
const (
	Unresolved Type = iota

	Database
	Schema
	Table
	View
	Procedure
	Function
	Synonym
	Column
	Alias
	Cte
	TempTable

	KeywordStatement
	KeywordClause
	KeywordFunction
	KeywordDatatype
	KeywordOperator
	KeywordConstraint
	KeywordModifier
	KeywordMisc
	KeywordGlobalVariable
	KeywordSystemProcedure

	Parameter
	StringLiteral
	NumberLiteral
	Operator
	Comment
)

var typeNames = map[Type]string{
	Unresolved:             "unresolved",
	Database:               "database",
	Schema:                 "schema",
	Table:                  "table",
	View:                   "view",
	Procedure:              "procedure",
	Function:               "function",
	Synonym:                "synonym",
	Column:                 "column",
	Alias:                  "alias",
	Cte:                    "cte",
	TempTable:              "temptable",
	KeywordStatement:       "keyword.statement",
	KeywordClause:          "keyword.clause",
	KeywordFunction:        "keyword.function",
	KeywordDatatype:        "keyword.datatype",
	KeywordOperator:        "keyword.operator",
	KeywordConstraint:      "keyword.constraint",
	KeywordModifier:        "keyword.modifier",
	KeywordMisc:            "keyword.misc",
	KeywordGlobalVariable:  "keyword.globalvar",
	KeywordSystemProcedure: "keyword.sysproc",
	Parameter:              "parameter",
	StringLiteral:          "string",
	NumberLiteral:          "number",
	Operator:               "operator",
	Comment:                "comment",
}

// String returns the type name.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unresolved"
}

// IsKeyword reports whether the type is one of the keyword sub-kinds.
func (t Type) IsKeyword() bool {
	return t >= KeywordStatement && t <= KeywordSystemProcedure
}

// IsObject reports whether the type names a catalog or scope object.
func (t Type) IsObject() bool {
	return t >= Database && t <= TempTable
}
