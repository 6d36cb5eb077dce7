package engine

import (
	"sort"
	"strings"

	"github.com/orneryd/cypherlite/pkg/ast"
	"github.com/orneryd/cypherlite/pkg/diag"
	"github.com/orneryd/cypherlite/pkg/lexer"
)

// ExecuteStatement runs one parsed statement's clause list against c's
// store, starting from seed (the single empty row for a top-level
// statement, or the outer row for a nested EXISTS {...} subquery body).
// UNION/UNION ALL split the clause list into independently-executed
// segments sharing the same seed.
func (c *Context) ExecuteStatement(stmt ast.Statement, seed []Row) ([]Row, []string, error) {
	segments, joins := splitUnionSegments(stmt.Clauses)

	rows, cols, err := c.runSegment(segments[0], seed)
	if err != nil {
		return nil, nil, err
	}
	for i := 1; i < len(segments); i++ {
		nextRows, nextCols, err := c.runSegment(segments[i], seed)
		if err != nil {
			return nil, nil, err
		}
		if !sameColumns(cols, nextCols) {
			return nil, nil, errUnionColumnMismatch()
		}
		rows = append(rows, nextRows...)
		if joins[i-1] == ast.KindUnion {
			rows = dedupeRows(rows, cols)
		}
	}
	return rows, cols, nil
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// splitUnionSegments breaks clauses on every UNION/UNION ALL boundary,
// returning each segment's clause list and, parallel to the gaps between
// segments, which kind of UNION joined them.
func splitUnionSegments(clauses []ast.Clause) ([][]ast.Clause, []ast.Kind) {
	var segments [][]ast.Clause
	var joins []ast.Kind
	var cur []ast.Clause
	for _, cl := range clauses {
		if cl.Kind == ast.KindUnion || cl.Kind == ast.KindUnionAll {
			segments = append(segments, cur)
			joins = append(joins, cl.Kind)
			cur = nil
			continue
		}
		cur = append(cur, cl)
	}
	segments = append(segments, cur)
	return segments, joins
}

// runSegment executes one UNION segment's clause sequence: a flat list with
// no UNION/UNION ALL boundaries of its own per-clause
// dispatch.
func (c *Context) runSegment(clauses []ast.Clause, seed []Row) ([]Row, []string, error) {
	if len(clauses) == 0 {
		return nil, nil, errUnionEmptyPart()
	}

	rows := seed
	var cols []string
	mergeSlotValid := false
	carriedScope := ""

	for _, cl := range clauses {
		body := cl.Body
		thisScope := ""

		if cl.Kind == ast.KindSet {
			thisScope = carriedScope
			if thisScope != "" && !mergeSlotValid {
				return nil, nil, errOnModifierMustFollowMerge()
			}
		} else if carriedScope != "" {
			return nil, nil, errOnModifierMustFollowMerge()
		}

		nextCarried := ""
		if cl.Kind == ast.KindMerge || cl.Kind == ast.KindSet {
			clean, suffix := stripTrailingOnSuffix(body)
			body = clean
			nextCarried = suffix
		}

		var err error
		switch cl.Kind {
		case ast.KindMatch:
			rows, err = c.execMatch(body, rows, false)
		case ast.KindOptionalMatch:
			rows, err = c.execMatch(body, rows, true)
		case ast.KindWhere:
			rows, err = c.execWhere(body, rows)
		case ast.KindWith, ast.KindReturn:
			rows, cols, err = c.execProjection(cl, rows)
		case ast.KindOrderBy:
			rows, err = c.execOrderBy(body, rows)
		case ast.KindSkip, ast.KindLimit:
			rows, err = c.execSkipLimit(cl.Kind, body, rows)
		case ast.KindUnwind:
			rows, err = c.execUnwind(body, rows)
		case ast.KindCreate:
			rows, err = c.execCreate(body, rows)
		case ast.KindMerge:
			rows, err = c.execMerge(body, rows)
		case ast.KindSet:
			rows, err = c.execSet(body, rows, thisScope)
		case ast.KindRemove:
			rows, err = c.execRemove(body, rows)
		case ast.KindDelete:
			rows, err = c.execDelete(body, rows, false)
		case ast.KindDetachDelete:
			rows, err = c.execDelete(body, rows, true)
		case ast.KindCall:
			rows, cols, err = c.execCall(body, rows)
		case ast.KindUnknown:
			// Unknown keywords already emitted CYP101 at AST-build time;
			// at execution time they are a no-op pass-through.
		default:
			err = errUnparsableClause(string(cl.Kind))
		}
		if err != nil {
			return nil, nil, err
		}

		carriedScope = nextCarried
		mergeSlotValid = cl.Kind == ast.KindMerge || (cl.Kind == ast.KindSet && thisScope != "")
	}

	if cols == nil {
		cols = visibleColumns(rows)
	}
	return rows, cols, nil
}

// visibleColumns derives a column list for a segment that never reached a
// WITH/RETURN (e.g. a bare CREATE statement, or CALL without YIELD), as the
// sorted union of every row's bound variable names.
func visibleColumns(rows []Row) []string {
	seen := map[string]bool{}
	for _, r := range rows {
		for k := range r.Vars {
			seen[k] = true
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// runSubqueryBody segments and builds body as a standalone clause sequence
// (no top-level ';'), then runs it seeded with seed. Used by EXISTS {...}
// subqueries (pkg/expr, via the Matcher adapter's RunExistsSubquery in
// matcher.go).
func (c *Context) runSubqueryBody(body string, seed []Row) ([]Row, []string, error) {
	coll := diag.NewCollector()
	statements := lexer.Segment(body, coll)
	if len(statements) == 0 {
		return seed, visibleColumns(seed), nil
	}
	doc := ast.Build(statements, coll)
	return c.ExecuteStatement(doc.Statements[0], seed)
}

// stripTrailingOnSuffix removes a trailing top-level "ON CREATE"/"ON MATCH"
// from body. The clause segmenter's keyword alternation rejects
// "CREATE"/"MATCH" hits preceded by "ON ", so that text attaches to
// the preceding clause's body instead of starting a new one. The MERGE or
// SET clause whose body carries that suffix is the one that determines the
// *next* SET clause's ON CREATE/ON MATCH scope.
func stripTrailingOnSuffix(body string) (clean string, scope string) {
	trimmed := strings.TrimSpace(body)
	upper := strings.ToUpper(trimmed)
	for _, name := range []string{"CREATE", "MATCH"} {
		suffix := "ON " + name
		if !strings.HasSuffix(upper, suffix) {
			continue
		}
		cut := len(trimmed) - len(suffix)
		if cut == 0 || trimmed[cut-1] == ' ' || trimmed[cut-1] == '\t' || trimmed[cut-1] == '\n' {
			return strings.TrimSpace(trimmed[:cut]), name
		}
	}
	return trimmed, ""
}
