package lexer

import (
	"strings"

	"github.com/orneryd/cypherlite/pkg/diag"
	"github.com/orneryd/cypherlite/pkg/source"
)

// Clause is one lexed (keyword, body, span) triple.
type Clause struct {
	Keyword string // canonical, whitespace-collapsed, upper-cased
	Body string
	Span source.Span // covers the body only, keyword excluded
}

// Statement is a list of clauses split on top-level ';'.
type Statement struct {
	Clauses []Clause
	Span source.Span
}

// canonicalKeywords is the longest-match alternation of recognized clause
// keywords, ordered so that multi-word keywords are tried before the single-word
// keyword they start with (OPTIONAL MATCH before MATCH would be redundant
// since MATCH never appears as a bare prefix of OPTIONAL MATCH's body, but
// DETACH DELETE must be tried before DELETE, ORDER BY has no single-word
// collision, and UNION ALL must be tried before UNION).
var canonicalKeywords = []string{
	"OPTIONAL MATCH",
	"ORDER BY",
	"UNION ALL",
	"DETACH DELETE",
	"MATCH",
	"WHERE",
	"WITH",
	"RETURN",
	"CREATE",
	"MERGE",
	"SET",
	"REMOVE",
	"DELETE",
	"LIMIT",
	"SKIP",
	"UNWIND",
	"CALL",
	"UNION",
}

// Segment splits raw Cypher query text into statements of lexed clauses.
// Line comments ("//" to end of line, outside strings) must already have
// been stripped by the caller before parsing begins.
func Segment(text string, coll *diag.Collector) []Statement {
	var statements []Statement
	top := Scan(text)

	stmtStart := 0
	for i := 0; i <= len(text); i++ {
		atEnd := i == len(text)
		if !atEnd && !(text[i] == ';' && top.IsTopLevel(i)) {
			continue
		}
		raw := text[stmtStart:i]
		if strings.TrimSpace(raw) != "" {
			stmt := segmentOne(text, stmtStart, i, coll)
			statements = append(statements, stmt)
		}
		stmtStart = i + 1
	}
	return statements
}

// segmentOne segments the single statement covering text[start:end].
func segmentOne(text string, start, end int, coll *diag.Collector) Statement {
	top := Scan(text)

	type hit struct {
		keyword string
		keywordStart int
		keywordEnd int
	}
	var hits []hit
	pos := start
	for pos < end {
		best := hit{keywordStart: -1}
		for _, kw := range canonicalKeywords {
			s, e := top.FindKeyword(kw, pos)
			if s < 0 || s >= end {
				continue
			}
			if best.keywordStart == -1 || s < best.keywordStart || (s == best.keywordStart && e > best.keywordEnd) {
				best = hit{keyword: kw, keywordStart: s, keywordEnd: e}
			}
		}
		if best.keywordStart == -1 {
			break
		}
		// Reject ON <modifier> belonging to a preceding SET/MERGE suffix.
		if precededByWord(text, best.keywordStart, "ON") {
			pos = best.keywordEnd
			continue
		}
		// Reject WITH immediately preceded by STARTS/ENDS (string predicates).
		if best.keyword == "WITH" && (precededByWord(text, best.keywordStart, "STARTS") || precededByWord(text, best.keywordStart, "ENDS")) {
			pos = best.keywordEnd
			continue
		}
		hits = append(hits, best)
		pos = best.keywordEnd
	}

	var clauses []Clause
	if len(hits) == 0 || hits[0].keywordStart > start {
		leadEnd := start
		if len(hits) > 0 {
			leadEnd = hits[0].keywordStart
		} else {
			leadEnd = end
		}
		if strings.TrimSpace(text[start:leadEnd]) != "" {
			coll.Add(diag.CodeUnexpectedTokens, "unexpected tokens before first clause keyword", source.Span{Start: start, End: leadEnd})
		}
	}

	for idx, h := range hits {
		bodyStart := h.keywordEnd
		bodyEnd := end
		if idx+1 < len(hits) {
			bodyEnd = hits[idx+1].keywordStart
		}
		body := strings.TrimSpace(text[bodyStart:bodyEnd])
		canonical := normalizeKeyword(h.keyword)
		if body == "" && canonical != "UNION" && canonical != "UNION ALL" {
			coll.Add(diag.CodeUnexpectedTokens, "clause \""+canonical+"\" has an empty body", source.Span{Start: h.keywordStart, End: h.keywordEnd})
		}
		clauses = append(clauses, Clause{
			Keyword: canonical,
			Body: body,
			Span: source.Span{Start: bodyStart, End: bodyEnd},
		})
	}

	return Statement{Clauses: clauses, Span: source.Span{Start: start, End: end}}
}

// normalizeKeyword collapses internal whitespace and upper-cases the
// matched keyword text.
func normalizeKeyword(kw string) string {
	return strings.Join(strings.Fields(strings.ToUpper(kw)), " ")
}

// precededByWord reports whether the word immediately before position pos
// (skipping whitespace) case-insensitively equals word.
func precededByWord(text string, pos int, word string) bool {
	i := pos
	for i > 0 && isSpace(text[i-1]) {
		i--
	}
	if i < len(word) {
		return false
	}
	candidate := text[i-len(word) : i]
	if !strings.EqualFold(candidate, word) {
		return false
	}
	if i-len(word) > 0 && isWordByte(text[i-len(word)-1]) {
		return false
	}
	return true
}

// StripLineComments removes "//" to end-of-line outside string literals.
func StripLineComments(text string) string {
	top := Scan(text)
	var b strings.Builder
	i := 0
	for i < len(text) {
		if i+1 < len(text) && text[i] == '/' && text[i+1] == '/' && !top.Quoted[i] {
			for i < len(text) && text[i] != '\n' {
				i++
			}
			continue
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String()
}
