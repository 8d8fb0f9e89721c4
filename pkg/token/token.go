// Package token defines the lexical token types consumed by the
// classification engine.
//
// Tokens are immutable once produced. The lexer fuses dialect-specific
// constructs (@variables, @@global variables, #temp tables, bracketed
// identifiers) into single tokens so downstream passes never re-scan text.
package token

import "strings"

// Kind identifies the lexical class of a token.
type Kind int

// Token kinds. The set is closed; the walker switches exhaustively over it.
const (
	EOF Kind = iota
	Illegal

	Keyword
	Ident
	BracketIdent // [Order Details]
	Number       // 123, 45.67, 0x1F
	String       // 'hello'
	Operator     // + - * / = <> ...

	Comma
	Dot
	Semicolon
	LParen
	RParen

	Comment        // -- line or /* block */
	Variable       // @name
	GlobalVariable // @@rowcount
	SystemProc     // sp_help, xp_cmdshell
	TempTable      // #rows, ##shared
	BatchSeparator // GO
)

var kindNames = map[Kind]string{
	EOF:            "EOF",
	Illegal:        "ILLEGAL",
	Keyword:        "KEYWORD",
	Ident:          "IDENT",
	BracketIdent:   "BRACKET_IDENT",
	Number:         "NUMBER",
	String:         "STRING",
	Operator:       "OPERATOR",
	Comma:          ",",
	Dot:            ".",
	Semicolon:      ";",
	LParen:         "(",
	RParen:         ")",
	Comment:        "COMMENT",
	Variable:       "VARIABLE",
	GlobalVariable: "GLOBAL_VARIABLE",
	SystemProc:     "SYSTEM_PROC",
	TempTable:      "TEMP_TABLE",
	BatchSeparator: "GO",
}

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "KIND(?)"
}

// IsIdentLike reports whether the kind can start a multi-part identifier.
func (k Kind) IsIdentLike() bool {
	return k == Ident || k == BracketIdent || k == TempTable || k == SystemProc
}

// Token is one lexical token with its source position.
type Token struct {
	Kind     Kind
	Text     string // raw source text, brackets and quotes included
	Pos      Position
	Category KeywordCategory // set only when Kind == Keyword
}

// Fold normalizes an identifier for case-insensitive comparison.
// Every map key and lookup in scope and catalog code goes through this
// single function so the folding rule cannot drift.
func Fold(name string) string {
	return strings.ToLower(name)
}

// Unquote strips one layer of [brackets] or "quotes" from an identifier.
// Unbracketed input is returned unchanged.
func Unquote(name string) string {
	if len(name) >= 2 {
		if name[0] == '[' && name[len(name)-1] == ']' {
			return name[1 : len(name)-1]
		}
		if name[0] == '"' && name[len(name)-1] == '"' {
			return name[1 : len(name)-1]
		}
	}
	return name
}
