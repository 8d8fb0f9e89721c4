package chunk

import (
	"github.com/sqltint/sqltint/pkg/token"
)

// statementStarters are keywords that begin a new top-level statement.
var statementStarters = map[string]bool{
	"select": true, "insert": true, "update": true, "delete": true,
	"merge": true, "create": true, "alter": true, "drop": true,
	"truncate": true, "exec": true, "execute": true, "use": true,
	"declare": true, "set": true, "with": true, "grant": true,
	"revoke": true, "deny": true, "print": true, "return": true,
	"throw": true, "while": true, "if": true, "waitfor": true,
}

// noSplitAfter lists keywords that glue the following statement keyword to
// the current statement (CREATE OR ALTER, INSERT ... SELECT via subclauses,
// UNION SELECT, CASE WHEN ... THEN, BEGIN blocks).
var noSplitAfter = map[string]bool{
	"or": true, "and": true, "not": true, "union": true, "except": true,
	"intersect": true, "all": true, "as": true, "else": true, "then": true,
	"begin": true, "on": true, "in": true, "exists": true, "top": true,
	"is": true, "when": true, "into": true,
}

// Parse splits a token stream into statement chunks and extracts each
// statement's scope metadata. GO batch separators and semicolons end the
// current chunk; a statement keyword at paren depth zero starts a new one.
func Parse(toks []token.Token) []*Chunk {
	var chunks []*Chunk
	start := -1
	depth := 0
	headKw := ""
	prevSig := -1

	flush := func(end int) {
		if start >= 0 && end > start {
			if c := extract(toks[start:end]); c != nil {
				chunks = append(chunks, c)
			}
		}
		start = -1
		headKw = ""
		depth = 0
	}

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.Kind == token.Comment {
			continue
		}
		if t.Kind == token.BatchSeparator {
			flush(i)
			prevSig = i
			continue
		}
		if start == -1 {
			start = i
		}
		switch t.Kind {
		case token.LParen:
			depth++
		case token.RParen:
			if depth > 0 {
				depth--
			}
		case token.Semicolon:
			flush(i + 1)
			prevSig = i
			continue
		case token.Keyword:
			f := token.Fold(t.Text)
			switch {
			case headKw == "":
				headKw = f
			case depth == 0 && statementStarters[f] && splitAllowed(toks, prevSig, f, headKw):
				flush(i)
				start = i
				headKw = f
			}
		}
		prevSig = i
	}
	flush(len(toks))
	return chunks
}

// splitAllowed reports whether a statement keyword at the current position
// really starts a new statement.
func splitAllowed(toks []token.Token, prevSig int, kw, headKw string) bool {
	if prevSig < 0 {
		return true
	}
	p := toks[prevSig]
	switch p.Kind {
	case token.LParen, token.Comma, token.Dot, token.Operator:
		return false
	case token.Keyword:
		if noSplitAfter[token.Fold(p.Text)] {
			return false
		}
	}
	switch {
	case kw == "select" && (headKw == "insert" || headKw == "merge"):
		// INSERT INTO t (...) SELECT ... is one statement.
		return false
	case kw == "set" && headKw == "update":
		// UPDATE t SET ... is one statement.
		return false
	case headKw == "with":
		// The WITH clause's CTEs feed the statement that follows them.
		return false
	case kw == "with" && (p.Kind.IsIdentLike() || p.Kind == token.RParen):
		// Table hint: FROM t WITH (NOLOCK).
		return false
	}
	return true
}

// extract builds a Chunk from one statement's tokens.
func extract(toks []token.Token) *Chunk {
	first := nextSig(toks, 0)
	if first < 0 {
		return nil
	}
	c := newChunk()
	c.Span = token.Span{Start: toks[0].Pos, End: endOf(toks[len(toks)-1])}

	body := first
	if isKw(toks[first], "with") {
		body = extractCTEs(toks, first, c)
	}
	extractRefs(toks[body:], c.Aliases, &c.Tables, c.SubqueryAliases, c.TempTables)
	return c
}

// extractCTEs parses "WITH name [(cols)] AS ( body ) [, ...]" and returns
// the index where the main statement body begins.
func extractCTEs(toks []token.Token, withIdx int, c *Chunk) int {
	i := nextSig(toks, withIdx+1)
	for i >= 0 {
		if !toks[i].Kind.IsIdentLike() {
			break
		}
		name := token.Unquote(toks[i].Text)
		i = nextSig(toks, i+1)

		// Optional explicit column list.
		if i >= 0 && toks[i].Kind == token.LParen {
			i = matchParen(toks, i)
			if i < 0 {
				return len(toks)
			}
			i = nextSig(toks, i+1)
		}

		if i < 0 || !isKw(toks[i], "as") {
			break
		}
		i = nextSig(toks, i+1)
		if i < 0 || toks[i].Kind != token.LParen {
			break
		}
		open := i
		close := matchParen(toks, open)
		if close < 0 {
			close = len(toks) - 1
		}

		cte := &CteInfo{
			Name:            name,
			Body:            token.Span{Start: toks[open].Pos, End: endOf(toks[close])},
			Aliases:         make(map[string]TableRef),
			SubqueryAliases: make(map[string]struct{}),
		}
		extractRefs(toks[open+1:close], cte.Aliases, &cte.Tables, cte.SubqueryAliases, c.TempTables)
		c.CTEs[token.Fold(name)] = cte

		i = nextSig(toks, close+1)
		if i < 0 || toks[i].Kind != token.Comma {
			break
		}
		i = nextSig(toks, i+1)
	}
	if i < 0 {
		return len(toks)
	}
	return i
}

// sourceIntroducers are keywords after which a table source is expected.
var sourceIntroducers = map[string]bool{
	"from": true, "join": true, "into": true, "update": true, "apply": true,
}

// fromListEnders end a comma-separated FROM list.
var fromListEnders = map[string]bool{
	"where": true, "group": true, "having": true, "order": true,
	"select": true, "union": true, "except": true, "intersect": true,
	"on": true, "set": true, "values": true, "option": true,
}

// extractRefs scans a statement region and collects table references,
// aliases, subquery aliases, and temp-table names. Subquery bodies are
// scanned in the same pass, so nested references land in the same maps.
func extractRefs(region []token.Token, aliases map[string]TableRef, tables *[]TableRef, subq map[string]struct{}, temps map[string]struct{}) {
	depth := 0
	expectSource := false
	inFromList := false
	fromDepth := 0
	var subqDepths []int

	i := 0
	for i < len(region) {
		t := region[i]
		switch t.Kind {
		case token.Comment:
			i++
			continue

		case token.TempTable:
			temps[token.Fold(t.Text)] = struct{}{}
			if expectSource {
				i = consumeSource(region, i, aliases, tables, temps)
				expectSource = false
				continue
			}

		case token.Keyword:
			f := token.Fold(t.Text)
			if sourceIntroducers[f] {
				expectSource = true
				if f == "from" {
					inFromList = true
					fromDepth = depth
				}
			} else if fromListEnders[f] {
				inFromList = false
				expectSource = false
			}

		case token.LParen:
			if expectSource {
				// Derived table: remember the depth so the closing paren
				// can pick up the alias that follows it.
				subqDepths = append(subqDepths, depth)
				expectSource = false
			}
			depth++

		case token.RParen:
			if depth > 0 {
				depth--
			}
			if n := len(subqDepths); n > 0 && subqDepths[n-1] == depth {
				subqDepths = subqDepths[:n-1]
				i = consumeSubqueryAlias(region, i+1, subq)
				continue
			}

		case token.Comma:
			if inFromList && depth == fromDepth {
				expectSource = true
			}

		default:
			if expectSource && t.Kind.IsIdentLike() {
				i = consumeSource(region, i, aliases, tables, temps)
				expectSource = false
				continue
			}
		}
		i++
	}
}

// consumeSource parses one table source (multipart name, optional alias,
// optional WITH (hints)) starting at i and returns the next index.
func consumeSource(region []token.Token, i int, aliases map[string]TableRef, tables *[]TableRef, temps map[string]struct{}) int {
	startTok := region[i]
	var parts []string
	parts = append(parts, token.Unquote(startTok.Text))
	i++
	for {
		j := nextSig(region, i)
		if j < 0 || region[j].Kind != token.Dot {
			break
		}
		k := nextSig(region, j+1)
		if k < 0 || !region[k].Kind.IsIdentLike() {
			i = j + 1
			break
		}
		parts = append(parts, token.Unquote(region[k].Text))
		i = k + 1
	}

	isTemp := startTok.Kind == token.TempTable
	ref := refFromParts(parts, startTok.Pos)
	if isTemp {
		temps[token.Fold(startTok.Text)] = struct{}{}
	}

	// Optional alias: AS ident, or a bare identifier that is not a keyword.
	j := nextSig(region, i)
	if j >= 0 && isKw(region[j], "as") {
		j = nextSig(region, j+1)
		if j >= 0 && (region[j].Kind == token.Ident || region[j].Kind == token.BracketIdent) {
			ref.Alias = token.Unquote(region[j].Text)
			i = j + 1
		}
	} else if j >= 0 && (region[j].Kind == token.Ident || region[j].Kind == token.BracketIdent) {
		ref.Alias = token.Unquote(region[j].Text)
		i = j + 1
	}

	// Optional table hint: WITH (NOLOCK, ...).
	j = nextSig(region, i)
	if j >= 0 && isKw(region[j], "with") {
		k := nextSig(region, j+1)
		if k >= 0 && region[k].Kind == token.LParen {
			if close := matchParen(region, k); close >= 0 {
				i = close + 1
			}
		}
	}

	if !isTemp {
		*tables = append(*tables, ref)
	}
	if ref.Alias != "" {
		aliases[token.Fold(ref.Alias)] = ref
	}
	return i
}

// consumeSubqueryAlias reads "[AS] ident" after a derived table's closing
// paren and returns the next index.
func consumeSubqueryAlias(region []token.Token, i int, subq map[string]struct{}) int {
	j := nextSig(region, i)
	if j >= 0 && isKw(region[j], "as") {
		j = nextSig(region, j+1)
	}
	if j >= 0 && (region[j].Kind == token.Ident || region[j].Kind == token.BracketIdent) {
		subq[token.Fold(token.Unquote(region[j].Text))] = struct{}{}
		return j + 1
	}
	return i
}

// nextSig returns the index of the next non-comment token at or after i,
// or -1 when none remains.
func nextSig(toks []token.Token, i int) int {
	for ; i < len(toks); i++ {
		if toks[i].Kind != token.Comment {
			return i
		}
	}
	return -1
}

// matchParen returns the index of the RParen matching the LParen at open,
// or -1 if the region ends first.
func matchParen(toks []token.Token, open int) int {
	depth := 0
	for i := open; i < len(toks); i++ {
		switch toks[i].Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isKw(t token.Token, kw string) bool {
	return t.Kind == token.Keyword && token.Fold(t.Text) == kw
}
