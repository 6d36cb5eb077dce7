// Package ast defines the typed clause-level AST, and builds it from the
// lexer's clause stream while validating clause ordering and detecting
// duplicate RETURN/alias occurrences.
//
// Every node carries a source.Span for diagnostics, and pattern/expression
// parsing is deferred to pkg/pattern and pkg/expr rather than inlined here —
// the same split between clause dispatch and per-clause body parsing used
// throughout this pipeline.
package ast

import (
	"strings"

	"github.com/orneryd/cypherlite/pkg/diag"
	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/source"
)

// Kind identifies a clause's normalized keyword.
type Kind string

const (
	KindMatch Kind = "MATCH"
	KindOptionalMatch Kind = "OPTIONAL MATCH"
	KindWhere Kind = "WHERE"
	KindWith Kind = "WITH"
	KindReturn Kind = "RETURN"
	KindCreate Kind = "CREATE"
	KindMerge Kind = "MERGE"
	KindSet Kind = "SET"
	KindRemove Kind = "REMOVE"
	KindDelete Kind = "DELETE"
	KindDetachDelete Kind = "DETACH DELETE"
	KindLimit Kind = "LIMIT"
	KindSkip Kind = "SKIP"
	KindOrderBy Kind = "ORDER BY"
	KindUnwind Kind = "UNWIND"
	KindCall Kind = "CALL"
	KindUnion Kind = "UNION"
	KindUnionAll Kind = "UNION ALL"
	KindUnknown Kind = "UNKNOWN"
)

var knownKinds = map[string]Kind{
	string(KindMatch): KindMatch, string(KindOptionalMatch): KindOptionalMatch,
	string(KindWhere): KindWhere, string(KindWith): KindWith, string(KindReturn): KindReturn,
	string(KindCreate): KindCreate, string(KindMerge): KindMerge, string(KindSet): KindSet,
	string(KindRemove): KindRemove, string(KindDelete): KindDelete, string(KindDetachDelete): KindDetachDelete,
	string(KindLimit): KindLimit, string(KindSkip): KindSkip, string(KindOrderBy): KindOrderBy,
	string(KindUnwind): KindUnwind,
	string(KindCall): KindCall, string(KindUnion): KindUnion, string(KindUnionAll): KindUnionAll,
}

// ProjectionItem is one comma-separated entry in a WITH/RETURN body: either
// "*", an expression, or "expression AS alias".
type ProjectionItem struct {
	Span source.Span
	Star bool
	Expr string
	Alias string // trimmed expression text when not explicit
	Hasher string // hidden-slot cache key, derived from Expr text
}

// Clause is one typed node in the clause-level AST.
type Clause struct {
	Kind Kind
	Keyword string // raw normalized keyword text, "UNKNOWN" kinds keep it verbatim
	Body string
	Span source.Span

	// Populated for KindWith/KindReturn only.
	Distinct bool
	Items []ProjectionItem
}

// Statement is one semicolon-delimited statement's fully built clause list.
type Statement struct {
	Clauses []Clause
	Span source.Span
}

// Document is the top-level parse result: every statement in the query text.
type Document struct {
	Statements []Statement
}

// Build converts the lexer's clause stream into the typed AST, running the
// ordering validation below and emitting diagnostics via coll.
func Build(statements []lexer.Statement, coll *diag.Collector) Document {
	doc := Document{}
	for _, st := range statements {
		doc.Statements = append(doc.Statements, buildStatement(st, coll))
	}
	return doc
}

func buildStatement(st lexer.Statement, coll *diag.Collector) Statement {
	out := Statement{Span: st.Span}

	var prevKind Kind
	haveReturn := false
	afterReturnRestricted := false

	for _, lc := range st.Clauses {
		kind, known := knownKinds[lc.Keyword]
		if !known {
			coll.Add(diag.CodeUnknownKeyword, "unknown clause keyword \""+lc.Keyword+"\"", lc.Span)
			kind = KindUnknown
		}

		c := Clause{Kind: kind, Keyword: lc.Keyword, Body: lc.Body, Span: lc.Span}

		switch kind {
		case KindWith, KindReturn:
			body := c.Body
			if strings.HasPrefix(strings.ToUpper(body), "DISTINCT ") {
				c.Distinct = true
				body = strings.TrimSpace(body[len("DISTINCT "):])
			} else if strings.EqualFold(body, "DISTINCT") {
				c.Distinct = true
				body = ""
			}
			c.Items = splitProjectionItems(body, lc.Span.Start)
			checkDuplicateAlias(c.Items, coll)
		}

		validateOrdering(kind, prevKind, &haveReturn, &afterReturnRestricted, c.Span, coll)

		out.Clauses = append(out.Clauses, c)
		prevKind = kind

		if kind == KindUnion || kind == KindUnionAll {
			haveReturn = false
			afterReturnRestricted = false
			prevKind = ""
		}
	}

	return out
}

// validateOrdering implements the CYP300/302 ordering rules; CYP301
// (duplicate alias) is checked by checkDuplicateAlias.
func validateOrdering(kind, prev Kind, haveReturn, restricted *bool, span source.Span, coll *diag.Collector) {
	switch kind {
	case KindReturn:
		if *haveReturn {
			coll.Add(diag.CodeDuplicateReturn, "duplicate RETURN in statement segment", span)
		}
		*haveReturn = true
		*restricted = true
		return
	case KindWhere:
		if prev != KindMatch && prev != KindOptionalMatch && prev != KindWith {
			coll.Add(diag.CodeOrdering, "WHERE must follow MATCH, OPTIONAL MATCH, or WITH", span)
		}
	case KindWith:
		if *restricted {
			coll.Add(diag.CodeOrdering, "only ORDER BY/SKIP/LIMIT/UNION/UNION ALL may follow RETURN", span)
		}
		*restricted = false
	case KindLimit, KindSkip:
		switch prev {
		case KindReturn, KindWith, KindOrderBy, KindLimit, KindSkip:
		default:
			coll.Add(diag.CodeOrdering, "SKIP/LIMIT must follow RETURN, WITH, ORDER BY, SKIP, or LIMIT", span)
		}
	case KindOrderBy:
		switch prev {
		case KindReturn, KindWith:
		default:
			coll.Add(diag.CodeOrdering, "ORDER BY must follow RETURN or WITH", span)
		}
	case KindUnion, KindUnionAll:
		switch prev {
		case KindReturn, KindOrderBy, KindLimit, KindSkip:
		default:
			coll.Add(diag.CodeOrdering, "UNION/UNION ALL must follow RETURN, ORDER BY, SKIP, or LIMIT", span)
		}
		return
	default:
		if *restricted {
			coll.Add(diag.CodeOrdering, "only ORDER BY/SKIP/LIMIT/UNION/UNION ALL may follow RETURN", span)
		}
	}
}

// splitProjectionItems splits a WITH/RETURN body into its comma-separated
// items, resolving "*" and implicit aliases.
func splitProjectionItems(body string, baseOffset int) []ProjectionItem {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	pieces := lexer.SplitTopLevel(body, ',')
	items := make([]ProjectionItem, 0, len(pieces))
	cursor := 0
	for _, piece := range pieces {
		start := strings.Index(body[cursor:], piece)
		if start < 0 {
			start = 0
		} else {
			start += cursor
		}
		cursor = start + len(piece)

		trimmed := strings.TrimSpace(piece)
		if trimmed == "*" {
			items = append(items, ProjectionItem{Star: true, Span: source.Span{Start: baseOffset + start, End: baseOffset + cursor}})
			continue
		}

		expr, alias := splitAlias(trimmed)
		items = append(items, ProjectionItem{
			Expr: expr,
			Alias: alias,
			Hasher: "$expr:" + expr,
			Span: source.Span{Start: baseOffset + start, End: baseOffset + cursor},
		})
	}
	return items
}

// splitAlias finds a top-level " AS " and splits expr/alias; if absent, the
// alias defaults to the trimmed expression text (or the property name for a
// bare property access).
func splitAlias(item string) (expr, alias string) {
	top := lexer.Scan(item)
	s, e := top.FindKeyword("AS", 0)
	if s < 0 {
		return item, implicitAlias(item)
	}
	return strings.TrimSpace(item[:s]), strings.TrimSpace(item[e:])
}

func implicitAlias(expr string) string {
	if idx := strings.LastIndex(expr, "."); idx >= 0 && idx < len(expr)-1 {
		prop := expr[idx+1:]
		if isSimpleIdent(prop) {
			return prop
		}
	}
	return expr
}

func isSimpleIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (i > 0 && r >= '0' && r <= '9') {
			continue
		}
		return false
	}
	return true
}

func checkDuplicateAlias(items []ProjectionItem, coll *diag.Collector) {
	seen := make(map[string]bool)
	for _, it := range items {
		if it.Star || it.Alias == "" {
			continue
		}
		if seen[it.Alias] {
			coll.Add(diag.CodeDuplicateAlias, "duplicate projection alias \""+it.Alias+"\"", it.Span)
		}
		seen[it.Alias] = true
	}
}
