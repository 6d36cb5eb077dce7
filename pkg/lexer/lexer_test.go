package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orneryd/cypherlite/pkg/diag"
	"github.com/orneryd/cypherlite/pkg/lexer"
)

func TestMaskIgnoresEscapedQuotes(t *testing.T) {
	s := `'it\'s' x`
	mask := lexer.Mask(s)
	require.Len(t, mask, len(s))
	assert.True(t, mask[0])
	assert.False(t, mask[len(s)-1])
}

func TestDepthsTracksNesting(t *testing.T) {
	s := "(a[b]c)"
	mask := lexer.Mask(s)
	depths := lexer.Depths(s, mask)
	assert.Equal(t, 0, depths[0])
	assert.Equal(t, 1, depths[1])
	assert.Equal(t, 2, depths[3])
}

func TestFindKeywordSkipsLabelColon(t *testing.T) {
	top := lexer.Scan("MATCH (n:Return) RETURN n")
	s, _ := top.FindKeyword("RETURN", 0)
	require.GreaterOrEqual(t, s, 0)
	assert.Equal(t, "RETURN n", "MATCH (n:Return) RETURN n"[s:])
}

func TestFindKeywordMultiWordWhitespace(t *testing.T) {
	top := lexer.Scan("RETURN n ORDER  BY n.name")
	s, e := top.FindKeyword("ORDER BY", 0)
	require.GreaterOrEqual(t, s, 0)
	assert.Equal(t, "ORDER  BY", "RETURN n ORDER  BY n.name"[s:e])
}

func TestFindKeywordInsideStringIgnored(t *testing.T) {
	top := lexer.Scan(`RETURN 'RETURN' AS x`)
	s, _ := top.FindKeyword("RETURN", 1)
	assert.Equal(t, -1, s)
}

func TestSplitTopLevelHonorsNesting(t *testing.T) {
	parts := lexer.SplitTopLevel("a, f(b, c), d", ',')
	assert.Equal(t, []string{"a", "f(b, c)", "d"}, parts)
}

func TestMatchBracket(t *testing.T) {
	s := "[a, [b, c], d]"
	mask := lexer.Mask(s)
	assert.Equal(t, len(s)-1, lexer.MatchBracket(s, mask, 0))
}

func TestTrimParensSingleEnclosing(t *testing.T) {
	assert.Equal(t, "a AND b", lexer.TrimParens("(a AND b)"))
	assert.Equal(t, "(a) + (b)", lexer.TrimParens("(a) + (b)"))
}

func TestStripLineComments(t *testing.T) {
	out := lexer.StripLineComments("MATCH (n) // comment\nRETURN n")
	assert.Equal(t, "MATCH (n) \nRETURN n", out)
}

func TestStripLineCommentsInsideString(t *testing.T) {
	out := lexer.StripLineComments(`RETURN '//not a comment'`)
	assert.Equal(t, `RETURN '//not a comment'`, out)
}

func TestSegmentBasicClauses(t *testing.T) {
	coll := diag.NewCollector()
	stmts := lexer.Segment("MATCH (n) WHERE n.age > 1 RETURN n", coll)
	require.Len(t, stmts, 1)
	require.Len(t, stmts[0].Clauses, 3)
	assert.Equal(t, "MATCH", stmts[0].Clauses[0].Keyword)
	assert.Equal(t, "WHERE", stmts[0].Clauses[1].Keyword)
	assert.Equal(t, "RETURN", stmts[0].Clauses[2].Keyword)
	assert.False(t, coll.HasErrors())
}

func TestSegmentDetachDeleteBeforeDelete(t *testing.T) {
	coll := diag.NewCollector()
	stmts := lexer.Segment("MATCH (n) DETACH DELETE n", coll)
	require.Len(t, stmts, 1)
	require.Len(t, stmts[0].Clauses, 2)
	assert.Equal(t, "DETACH DELETE", stmts[0].Clauses[1].Keyword)
}

func TestSegmentOnCreateAttachesToPrecedingClause(t *testing.T) {
	coll := diag.NewCollector()
	stmts := lexer.Segment("MERGE (n) ON CREATE SET n.x = 1", coll)
	require.Len(t, stmts, 1)
	require.Len(t, stmts[0].Clauses, 2)
	assert.Equal(t, "MERGE", stmts[0].Clauses[0].Keyword)
	assert.Contains(t, stmts[0].Clauses[0].Body, "ON CREATE")
	assert.Equal(t, "SET", stmts[0].Clauses[1].Keyword)
	assert.Equal(t, "n.x = 1", stmts[0].Clauses[1].Body)
}

func TestSegmentMultipleStatements(t *testing.T) {
	coll := diag.NewCollector()
	stmts := lexer.Segment("CREATE (n); CREATE (m)", coll)
	assert.Len(t, stmts, 2)
}

func TestSegmentUnexpectedTokensDiagnostic(t *testing.T) {
	coll := diag.NewCollector()
	lexer.Segment("garbage tokens MATCH (n) RETURN n", coll)
	assert.True(t, coll.HasErrors())
}

func TestSegmentEmptyClauseBodyDiagnostic(t *testing.T) {
	coll := diag.NewCollector()
	lexer.Segment("MATCH (n) WHERE RETURN n", coll)
	assert.True(t, coll.HasErrors())
}
