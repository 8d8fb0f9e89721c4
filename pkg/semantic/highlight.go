package semantic

// Config gates which semantic classes produce a highlight group. A type
// whose gate is off still gets classified; only the group is withheld, so
// the rendering layer applies no highlight.
type Config struct {
	HighlightKeywords   bool
	HighlightParameters bool
	HighlightDatabases  bool
	HighlightSchemas    bool
	HighlightTables     bool
	HighlightColumns    bool
	HighlightUnresolved bool
}

// DefaultConfig enables every highlight class except unresolved noise.
func DefaultConfig() Config {
	return Config{
		HighlightKeywords:   true,
		HighlightParameters: true,
		HighlightDatabases:  true,
		HighlightSchemas:    true,
		HighlightTables:     true,
		HighlightColumns:    true,
		HighlightUnresolved: false,
	}
}

// Group is an editor highlight group name.
type Group string

// Highlight groups emitted to the rendering layer.
const (
	GroupDatabase   Group = "SqlTintDatabase"
	GroupSchema     Group = "SqlTintSchema"
	GroupTable      Group = "SqlTintTable"
	GroupView       Group = "SqlTintView"
	GroupProcedure  Group = "SqlTintProcedure"
	GroupFunction   Group = "SqlTintFunction"
	GroupSynonym    Group = "SqlTintSynonym"
	GroupColumn     Group = "SqlTintColumn"
	GroupAlias      Group = "SqlTintAlias"
	GroupCte        Group = "SqlTintCte"
	GroupTempTable  Group = "SqlTintTempTable"
	GroupKeyword    Group = "SqlTintKeyword"
	GroupDatatype   Group = "SqlTintDatatype"
	GroupParameter  Group = "SqlTintParameter"
	GroupString     Group = "SqlTintString"
	GroupNumber     Group = "SqlTintNumber"
	GroupOperator   Group = "SqlTintOperator"
	GroupComment    Group = "SqlTintComment"
	GroupUnresolved Group = "SqlTintUnresolved"
)

// HighlightGroup maps a semantic type to its highlight group under the
// given config. The second return is false when the type's gate is off and
// the token should stay unhighlighted.
func (t Type) HighlightGroup(cfg Config) (Group, bool) {
	switch t {
	case Database:
		return gated(GroupDatabase, cfg.HighlightDatabases)
	case Schema:
		return gated(GroupSchema, cfg.HighlightSchemas)
	case Table:
		return gated(GroupTable, cfg.HighlightTables)
	case View:
		return gated(GroupView, cfg.HighlightTables)
	case Synonym:
		return gated(GroupSynonym, cfg.HighlightTables)
	case Procedure:
		return gated(GroupProcedure, cfg.HighlightTables)
	case Function:
		return gated(GroupFunction, cfg.HighlightTables)
	case Alias:
		return gated(GroupAlias, cfg.HighlightTables)
	case Cte:
		return gated(GroupCte, cfg.HighlightTables)
	case TempTable:
		return gated(GroupTempTable, cfg.HighlightTables)
	case Column:
		return gated(GroupColumn, cfg.HighlightColumns)
	case Parameter:
		return gated(GroupParameter, cfg.HighlightParameters)
	case KeywordDatatype:
		return gated(GroupDatatype, cfg.HighlightKeywords)
	case KeywordStatement, KeywordClause, KeywordFunction, KeywordOperator,
		KeywordConstraint, KeywordModifier, KeywordMisc,
		KeywordGlobalVariable, KeywordSystemProcedure:
		return gated(GroupKeyword, cfg.HighlightKeywords)
	case StringLiteral:
		return GroupString, true
	case NumberLiteral:
		return GroupNumber, true
	case Operator:
		return GroupOperator, true
	case Comment:
		return GroupComment, true
	case Unresolved:
		return gated(GroupUnresolved, cfg.HighlightUnresolved)
	}
	return "", false
}

func gated(g Group, on bool) (Group, bool) {
	if !on {
		return "", false
	}
	return g, true
}
