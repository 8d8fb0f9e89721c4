package semantic

import (
	"github.com/sqltint/sqltint/pkg/chunk"
	"github.com/sqltint/sqltint/pkg/token"
)

// ClassifiedToken pairs a token with its resolved semantic type. Group is
// empty when the type's highlight gate is off in the config.
type ClassifiedToken struct {
	Token token.Token
	Type  Type
	Group Group
}

// walkerState is the keyword-context state the walker carries across one
// left-to-right pass.
type walkerState struct {
	inCreateAlter bool
	createKind    CreateKind

	inTableDef    bool
	tableDefDepth int

	expectColumnName     bool
	expectConstraintCols bool
	inConstraintList     bool
	constraintDepth      int

	prev string // folded text of the previous significant token
}

// Classify runs one full classification pass: every token gets a semantic
// type, identifier chains are resolved through the cascade against the
// statement scope and the connected catalog.
//
// The pass is a pure function of its inputs. It never blocks; at most the
// resolver enqueues fire-and-forget catalog loads whose results only show
// up in a later pass.
func Classify(toks []token.Token, chunks []*chunk.Chunk, conn *ConnectionContext, cfg Config) []ClassifiedToken {
	out := make([]ClassifiedToken, len(toks))
	idx := chunk.NewIndex(chunks)
	res := &resolver{conn: conn}
	var st walkerState
	var clauses chunk.ClauseTracker

	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		out[i].Token = tok
		clause := clauses.Advance(tok)

		switch tok.Kind {
		case token.Comment:
			out[i].Type = Comment
			continue // comments are invisible to the state machine

		case token.String:
			out[i].Type = StringLiteral
		case token.Number:
			out[i].Type = NumberLiteral
		case token.Operator, token.Comma, token.Dot, token.Semicolon,
			token.LParen, token.RParen:
			out[i].Type = Operator
		case token.Variable:
			out[i].Type = Parameter
		case token.GlobalVariable:
			out[i].Type = KeywordGlobalVariable
		case token.BatchSeparator:
			out[i].Type = KeywordStatement
		case token.Keyword:
			out[i].Type = keywordType(tok.Category)
		case token.SystemProc:
			out[i].Type = KeywordSystemProcedure
		}

		switch tok.Kind {
		case token.Keyword:
			st.keyword(token.Fold(tok.Text))
		case token.LParen:
			st.openParen()
		case token.RParen:
			st.closeParen()
		case token.Comma:
			if st.inTableDef && st.tableDefDepth == 1 && !st.inConstraintList {
				st.expectColumnName = true
				// An inline PRIMARY KEY with no column list leaves the
				// expectation armed; the next column's type paren must not
				// open a constraint list.
				st.expectConstraintCols = false
			}
		case token.Ident, token.BracketIdent, token.TempTable:
			// Column-definition and constraint column positions bypass
			// the cascade.
			if st.inConstraintList && st.constraintDepth == 1 {
				out[i].Type = Column
				break
			}
			if st.inTableDef && st.expectColumnName {
				out[i].Type = Column
				st.expectColumnName = false
				break
			}

			parts, consumed := gather(toks, i)
			scope := BuildScope(idx.At(tok.Pos), tok.Pos)
			create := st.createKind
			if st.inTableDef || st.inConstraintList {
				create = CreateNone
			}
			rctx := ResolutionContext{
				Clause: clause,
				Create: create,
			}
			rctx.IsDatabaseContext = rctx.Clause == chunk.ClauseUse
			types := res.resolve(parts, scope, rctx)
			for j, part := range parts {
				out[part.Index].Token = toks[part.Index]
				out[part.Index].Type = types[j]
			}
			for j := i + 1; j < i+consumed; j++ {
				out[j].Token = toks[j]
				if toks[j].Kind == token.Dot {
					out[j].Type = Operator
				}
			}
			st.prev = token.Fold(toks[i+consumed-1].Text)
			i += consumed - 1
			continue
		}

		st.prev = token.Fold(tok.Text)
	}

	for i := range out {
		if g, ok := out[i].Type.HighlightGroup(cfg); ok {
			out[i].Group = g
		}
	}
	return out
}

// keyword applies the CREATE/ALTER and constraint transitions for one
// keyword token.
func (st *walkerState) keyword(word string) {
	switch word {
	case "create", "alter":
		st.inCreateAlter = true
		st.createKind = CreateNone
	case "or":
		// CREATE OR ALTER keeps the state armed.
	case "procedure", "proc":
		st.setCreateKind(CreateProcedure)
	case "function":
		st.setCreateKind(CreateFunction)
	case "view":
		st.setCreateKind(CreateView)
	case "trigger":
		// Triggers color like procedures.
		st.setCreateKind(CreateProcedure)
	case "table":
		st.setCreateKind(CreateTable)
	case "constraint":
		// The next identifier names the constraint, not a column.
		st.expectColumnName = false
		st.expectConstraintCols = false
	case "key":
		if st.prev == "primary" || st.prev == "foreign" {
			st.expectConstraintCols = true
		}
	case "unique", "references", "index":
		st.expectConstraintCols = true
	default:
		st.clearCreate()
	}
}

func (st *walkerState) setCreateKind(kind CreateKind) {
	if st.inCreateAlter {
		st.createKind = kind
		return
	}
	st.clearCreate()
}

// clearCreate drops the CREATE/ALTER context unless the walk is inside a
// table definition, where datatype keywords must not disturb it.
func (st *walkerState) clearCreate() {
	if st.inTableDef || st.inConstraintList {
		return
	}
	st.inCreateAlter = false
	st.createKind = CreateNone
}

func (st *walkerState) openParen() {
	switch {
	case st.inConstraintList:
		st.constraintDepth++
	case st.expectConstraintCols:
		st.inConstraintList = true
		st.constraintDepth = 1
		st.expectConstraintCols = false
	case st.inTableDef:
		st.tableDefDepth++
	case st.createKind == CreateTable:
		st.inTableDef = true
		st.tableDefDepth = 1
		st.expectColumnName = true
	}
}

func (st *walkerState) closeParen() {
	switch {
	case st.inConstraintList:
		st.constraintDepth--
		if st.constraintDepth == 0 {
			st.inConstraintList = false
		}
	case st.inTableDef:
		st.tableDefDepth--
		if st.tableDefDepth == 0 {
			st.inTableDef = false
			st.expectColumnName = false
			st.createKind = CreateNone
			st.inCreateAlter = false
		}
	}
}

// keywordType maps a lexical keyword category to its semantic sub-kind.
func keywordType(cat token.KeywordCategory) Type {
	switch cat {
	case token.KwStatement:
		return KeywordStatement
	case token.KwClause:
		return KeywordClause
	case token.KwFunction:
		return KeywordFunction
	case token.KwDatatype:
		return KeywordDatatype
	case token.KwOperator:
		return KeywordOperator
	case token.KwConstraint:
		return KeywordConstraint
	case token.KwModifier:
		return KeywordModifier
	}
	return KeywordMisc
}
