package token

// KeywordCategory groups keywords by their syntactic role so each group can
// be colored distinctly.
type KeywordCategory int

// Keyword categories.
const (
	KwNone KeywordCategory = iota
	KwStatement
	KwClause
	KwFunction
	KwDatatype
	KwOperator
	KwConstraint
	KwModifier
	KwMisc
)

var categoryNames = map[KeywordCategory]string{
	KwNone:       "none",
	KwStatement:  "statement",
	KwClause:     "clause",
	KwFunction:   "function",
	KwDatatype:   "datatype",
	KwOperator:   "operator",
	KwConstraint: "constraint",
	KwModifier:   "modifier",
	KwMisc:       "misc",
}

// String returns the category name.
func (c KeywordCategory) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "none"
}

// keywords maps lowercase keyword strings to their category.
var keywords = map[string]KeywordCategory{
	// Statements
	"select":   KwStatement,
	"insert":   KwStatement,
	"update":   KwStatement,
	"delete":   KwStatement,
	"merge":    KwStatement,
	"create":   KwStatement,
	"alter":    KwStatement,
	"drop":     KwStatement,
	"truncate": KwStatement,
	"exec":     KwStatement,
	"execute":  KwStatement,
	"use":      KwStatement,
	"declare":  KwStatement,
	"set":      KwStatement,
	"begin":    KwStatement,
	"commit":   KwStatement,
	"rollback": KwStatement,
	"grant":    KwStatement,
	"revoke":   KwStatement,
	"deny":     KwStatement,
	"return":   KwStatement,
	"throw":    KwStatement,
	"print":    KwStatement,
	"while":    KwStatement,
	"if":       KwStatement,
	"else":     KwStatement,
	"goto":     KwStatement,
	"waitfor":  KwStatement,

	// Clauses
	"from":      KwClause,
	"where":     KwClause,
	"group":     KwClause,
	"having":    KwClause,
	"order":     KwClause,
	"by":        KwClause,
	"join":      KwClause,
	"on":        KwClause,
	"inner":     KwClause,
	"outer":     KwClause,
	"left":      KwClause,
	"right":     KwClause,
	"full":      KwClause,
	"cross":     KwClause,
	"apply":     KwClause,
	"union":     KwClause,
	"except":    KwClause,
	"intersect": KwClause,
	"into":      KwClause,
	"values":    KwClause,
	"with":      KwClause,
	"as":        KwClause,
	"output":    KwClause,
	"pivot":     KwClause,
	"unpivot":   KwClause,
	"over":      KwClause,
	"partition": KwClause,
	"when":      KwClause,
	"then":      KwClause,
	"case":      KwClause,
	"end":       KwClause,

	// Built-in functions that lex as keywords
	"count":      KwFunction,
	"sum":        KwFunction,
	"avg":        KwFunction,
	"min":        KwFunction,
	"max":        KwFunction,
	"cast":       KwFunction,
	"convert":    KwFunction,
	"coalesce":   KwFunction,
	"nullif":     KwFunction,
	"isnull":     KwFunction,
	"getdate":    KwFunction,
	"getutcdate": KwFunction,
	"datepart":   KwFunction,
	"dateadd":    KwFunction,
	"datediff":   KwFunction,
	"len":        KwFunction,
	"substring":  KwFunction,
	"replace":    KwFunction,
	"upper":      KwFunction,
	"lower":      KwFunction,
	"ltrim":      KwFunction,
	"rtrim":      KwFunction,
	"newid":      KwFunction,
	"row_number": KwFunction,
	"rank":       KwFunction,
	"dense_rank": KwFunction,
	"ntile":      KwFunction,
	"iif":        KwFunction,
	"format":     KwFunction,
	"object_id":  KwFunction,
	"scope_identity": KwFunction,

	// Data types
	"int":              KwDatatype,
	"bigint":           KwDatatype,
	"smallint":         KwDatatype,
	"tinyint":          KwDatatype,
	"bit":              KwDatatype,
	"decimal":          KwDatatype,
	"numeric":          KwDatatype,
	"money":            KwDatatype,
	"smallmoney":       KwDatatype,
	"float":            KwDatatype,
	"real":             KwDatatype,
	"date":             KwDatatype,
	"time":             KwDatatype,
	"datetime":         KwDatatype,
	"datetime2":        KwDatatype,
	"smalldatetime":    KwDatatype,
	"datetimeoffset":   KwDatatype,
	"char":             KwDatatype,
	"varchar":          KwDatatype,
	"text":             KwDatatype,
	"nchar":            KwDatatype,
	"nvarchar":         KwDatatype,
	"ntext":            KwDatatype,
	"binary":           KwDatatype,
	"varbinary":        KwDatatype,
	"image":            KwDatatype,
	"uniqueidentifier": KwDatatype,
	"xml":              KwDatatype,
	"sql_variant":      KwDatatype,

	// Logical/comparison operators spelled as words
	"and":     KwOperator,
	"or":      KwOperator,
	"not":     KwOperator,
	"in":      KwOperator,
	"like":    KwOperator,
	"between": KwOperator,
	"exists":  KwOperator,
	"is":      KwOperator,
	"null":    KwOperator,
	"any":     KwOperator,
	"some":    KwOperator,

	// Constraint keywords
	"constraint": KwConstraint,
	"primary":    KwConstraint,
	"foreign":    KwConstraint,
	"key":        KwConstraint,
	"references": KwConstraint,
	"unique":     KwConstraint,
	"check":      KwConstraint,
	"default":    KwConstraint,
	"index":      KwConstraint,
	"clustered":  KwConstraint,
	"nonclustered": KwConstraint,
	"identity":   KwConstraint,

	// Modifiers
	"distinct": KwModifier,
	"all":      KwModifier,
	"top":      KwModifier,
	"percent":  KwModifier,
	"asc":      KwModifier,
	"desc":     KwModifier,
	"nolock":   KwModifier,
	"readonly": KwModifier,

	// Everything else that is reserved but fits no bucket above
	"procedure": KwMisc,
	"proc":      KwMisc,
	"function":  KwMisc,
	"view":      KwMisc,
	"table":     KwMisc,
	"trigger":   KwMisc,
	"database":  KwMisc,
	"schema":    KwMisc,
	"to":        KwMisc,
	"add":       KwMisc,
	"column":    KwMisc,
	"returns":   KwMisc,
	"nocount":   KwMisc,
	"off":       KwMisc,
	"transaction": KwMisc,
	"tran":        KwMisc,
}

// LookupKeyword returns the keyword category for an identifier, and whether
// the identifier is a keyword at all. Input is folded before lookup.
func LookupKeyword(ident string) (KeywordCategory, bool) {
	cat, ok := keywords[Fold(ident)]
	return cat, ok
}
