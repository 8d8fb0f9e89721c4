// Package lexer tokenizes T-SQL source text.
//
// The lexer is deliberately forgiving: it never fails. Anything it cannot
// recognize becomes an Illegal token and the scan continues, so the
// classification pass always receives a complete token stream for a buffer
// that is mid-edit.
package lexer

import (
	"strings"

	"github.com/sqltint/sqltint/pkg/token"
)

// Lexer tokenizes SQL input.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)
}

// New creates a Lexer for the given input.
func New(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// Tokenize runs the lexer over the whole input and returns every token,
// comments included, without the trailing EOF.
func Tokenize(input string) []token.Token {
	l := New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// currentPos returns the position of the character under examination.
func (l *Lexer) currentPos() token.Position {
	return token.Position{Line: l.line, Col: l.col}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	pos := l.currentPos()

	switch l.ch {
	case 0:
		return token.Token{Kind: token.EOF, Pos: pos}
	case ',':
		return l.single(token.Comma, pos)
	case ';':
		return l.single(token.Semicolon, pos)
	case '(':
		return l.single(token.LParen, pos)
	case ')':
		return l.single(token.RParen, pos)
	case '.':
		// A dot starting a number (.5) is a number, not punctuation.
		if isDigit(l.peekChar()) {
			return l.readNumber(pos)
		}
		return l.single(token.Dot, pos)
	case '\'':
		return l.readString(pos)
	case '[':
		return l.readBracketIdent(pos)
	case '"':
		return l.readQuotedIdent(pos)
	case '@':
		return l.readVariable(pos)
	case '#':
		return l.readTempTable(pos)
	case '-':
		if l.peekChar() == '-' {
			return l.readLineComment(pos)
		}
		return l.single(token.Operator, pos)
	case '/':
		if l.peekChar() == '*' {
			return l.readBlockComment(pos)
		}
		return l.single(token.Operator, pos)
	case '+', '*', '%', '=', '&', '|', '^', '~':
		return l.single(token.Operator, pos)
	case '<':
		if l.peekChar() == '>' || l.peekChar() == '=' {
			return l.double(token.Operator, pos)
		}
		return l.single(token.Operator, pos)
	case '>':
		if l.peekChar() == '=' {
			return l.double(token.Operator, pos)
		}
		return l.single(token.Operator, pos)
	case '!':
		if l.peekChar() == '=' || l.peekChar() == '<' || l.peekChar() == '>' {
			return l.double(token.Operator, pos)
		}
		return l.single(token.Illegal, pos)
	}

	if isDigit(l.ch) {
		return l.readNumber(pos)
	}
	if isIdentStart(l.ch) {
		return l.readIdent(pos)
	}
	return l.single(token.Illegal, pos)
}

func (l *Lexer) single(kind token.Kind, pos token.Position) token.Token {
	tok := token.Token{Kind: kind, Text: string(l.ch), Pos: pos}
	l.readChar()
	return tok
}

func (l *Lexer) double(kind token.Kind, pos token.Position) token.Token {
	text := string(l.ch) + string(l.peekChar())
	l.readChar()
	l.readChar()
	return token.Token{Kind: kind, Text: text, Pos: pos}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readIdentText consumes an identifier body and returns its raw text.
func (l *Lexer) readIdentText() string {
	start := l.pos
	for isIdentPart(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readIdent reads an identifier or keyword.
// GO on its own is the batch separator; sp_/xp_ prefixes mark system
// procedures the way SSMS colors them, regardless of catalog presence.
func (l *Lexer) readIdent(pos token.Position) token.Token {
	text := l.readIdentText()
	folded := token.Fold(text)

	if folded == "go" {
		return token.Token{Kind: token.BatchSeparator, Text: text, Pos: pos}
	}
	if strings.HasPrefix(folded, "sp_") || strings.HasPrefix(folded, "xp_") {
		return token.Token{Kind: token.SystemProc, Text: text, Pos: pos}
	}
	if cat, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: token.Keyword, Text: text, Pos: pos, Category: cat}
	}
	return token.Token{Kind: token.Ident, Text: text, Pos: pos}
}

// readVariable reads @name or @@name as a single fused token.
func (l *Lexer) readVariable(pos token.Position) token.Token {
	start := l.pos
	l.readChar() // consume @
	kind := token.Variable
	if l.ch == '@' {
		kind = token.GlobalVariable
		l.readChar()
	}
	for isIdentPart(l.ch) {
		l.readChar()
	}
	text := l.input[start:l.pos]
	if len(text) == 1 || (kind == token.GlobalVariable && len(text) == 2) {
		return token.Token{Kind: token.Illegal, Text: text, Pos: pos}
	}
	return token.Token{Kind: kind, Text: text, Pos: pos}
}

// readTempTable reads #name or ##name as a single token.
func (l *Lexer) readTempTable(pos token.Position) token.Token {
	start := l.pos
	l.readChar() // consume #
	if l.ch == '#' {
		l.readChar()
	}
	for isIdentPart(l.ch) {
		l.readChar()
	}
	text := l.input[start:l.pos]
	if strings.Trim(text, "#") == "" {
		return token.Token{Kind: token.Illegal, Text: text, Pos: pos}
	}
	return token.Token{Kind: token.TempTable, Text: text, Pos: pos}
}

// readBracketIdent reads [name], keeping the brackets in the raw text.
// An unterminated bracket runs to end of line so a half-typed identifier
// does not swallow the rest of the buffer.
func (l *Lexer) readBracketIdent(pos token.Position) token.Token {
	start := l.pos
	l.readChar() // consume [
	for l.ch != ']' && l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	if l.ch == ']' {
		l.readChar()
	}
	return token.Token{Kind: token.BracketIdent, Text: l.input[start:l.pos], Pos: pos}
}

// readQuotedIdent reads "name" (QUOTED_IDENTIFIER style).
func (l *Lexer) readQuotedIdent(pos token.Position) token.Token {
	start := l.pos
	l.readChar() // consume "
	for l.ch != '"' && l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	if l.ch == '"' {
		l.readChar()
	}
	return token.Token{Kind: token.BracketIdent, Text: l.input[start:l.pos], Pos: pos}
}

// readString reads a 'literal' with '' escapes.
func (l *Lexer) readString(pos token.Position) token.Token {
	start := l.pos
	l.readChar() // consume opening quote
	for {
		if l.ch == 0 {
			break
		}
		if l.ch == '\'' {
			if l.peekChar() == '\'' {
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar()
			break
		}
		l.readChar()
	}
	return token.Token{Kind: token.String, Text: l.input[start:l.pos], Pos: pos}
}

// readNumber reads integer, decimal, and exponent forms.
func (l *Lexer) readNumber(pos token.Position) token.Token {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	} else if l.ch == '.' {
		// Trailing dot as in "1." still belongs to the number.
		l.readChar()
	}
	if l.ch == 'e' || l.ch == 'E' {
		if isDigit(l.peekChar()) || ((l.peekChar() == '+' || l.peekChar() == '-') && l.readPos+1 < len(l.input) && isDigit(l.input[l.readPos+1])) {
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	return token.Token{Kind: token.Number, Text: l.input[start:l.pos], Pos: pos}
}

// readLineComment reads -- to end of line.
func (l *Lexer) readLineComment(pos token.Position) token.Token {
	start := l.pos
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	return token.Token{Kind: token.Comment, Text: l.input[start:l.pos], Pos: pos}
}

// readBlockComment reads /* ... */ across lines. Unterminated comments run
// to end of input.
func (l *Lexer) readBlockComment(pos token.Position) token.Token {
	start := l.pos
	l.readChar() // consume /
	l.readChar() // consume *
	for {
		if l.ch == 0 {
			break
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			break
		}
		l.readChar()
	}
	return token.Token{Kind: token.Comment, Text: l.input[start:l.pos], Pos: pos}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch >= 0x80
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '$'
}
