package semantic

import "github.com/sqltint/sqltint/pkg/token"

// NamePart is one bracket-stripped segment of a dotted identifier chain,
// with the index of the token it came from so classifications can be
// written back by position.
type NamePart struct {
	Text  string
	Index int
}

// gather collapses identifier (DOT identifier)* starting at start into an
// ordered part list. It returns the parts and the number of tokens
// consumed, dots included. A dangling dot is left unconsumed so a partial
// chain at end of buffer never derails the walk.
func gather(toks []token.Token, start int) ([]NamePart, int) {
	if start >= len(toks) || !toks[start].Kind.IsIdentLike() {
		return nil, 0
	}
	parts := []NamePart{{Text: token.Unquote(toks[start].Text), Index: start}}
	i := start + 1
	for i+1 < len(toks) && toks[i].Kind == token.Dot && toks[i+1].Kind.IsIdentLike() {
		parts = append(parts, NamePart{Text: token.Unquote(toks[i+1].Text), Index: i + 1})
		i += 2
	}
	return parts, i - start
}
