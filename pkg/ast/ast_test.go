package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orneryd/cypherlite/pkg/ast"
	"github.com/orneryd/cypherlite/pkg/diag"
	"github.com/orneryd/cypherlite/pkg/lexer"
)

func build(t *testing.T, text string) (ast.Document, *diag.Collector) {
	t.Helper()
	coll := diag.NewCollector()
	stmts := lexer.Segment(text, coll)
	return ast.Build(stmts, coll), coll
}

func TestBuildBasicClauseKinds(t *testing.T) {
	doc, coll := build(t, "MATCH (n) RETURN n")
	require.False(t, coll.HasErrors())
	require.Len(t, doc.Statements, 1)
	clauses := doc.Statements[0].Clauses
	require.Len(t, clauses, 2)
	assert.Equal(t, ast.KindMatch, clauses[0].Kind)
	assert.Equal(t, ast.KindReturn, clauses[1].Kind)
}

func TestBuildUnknownKeywordDiagnostic(t *testing.T) {
	_, coll := build(t, "FOOBAR n RETURN n")
	assert.True(t, coll.HasErrors())
}

func TestBuildWhereMustFollowMatch(t *testing.T) {
	_, coll := build(t, "RETURN n WHERE n.x = 1")
	assert.True(t, coll.HasErrors())
}

func TestBuildDuplicateReturnDiagnostic(t *testing.T) {
	_, coll := build(t, "MATCH (n) RETURN n RETURN n")
	assert.True(t, coll.HasErrors())
}

func TestBuildOnlyOrderBySkipLimitAfterReturn(t *testing.T) {
	_, coll := build(t, "MATCH (n) RETURN n ORDER BY n.name SKIP 1 LIMIT 2")
	assert.False(t, coll.HasErrors())
}

func TestBuildClauseAfterReturnRestricted(t *testing.T) {
	_, coll := build(t, "MATCH (n) RETURN n MATCH (m) RETURN m")
	assert.True(t, coll.HasErrors())
}

func TestBuildDistinctProjection(t *testing.T) {
	doc, coll := build(t, "MATCH (n) RETURN DISTINCT n.name AS name")
	require.False(t, coll.HasErrors())
	items := doc.Statements[0].Clauses[1].Items
	require.Len(t, items, 1)
	assert.True(t, doc.Statements[0].Clauses[1].Distinct)
	assert.Equal(t, "n.name", items[0].Expr)
	assert.Equal(t, "name", items[0].Alias)
}

func TestBuildImplicitAliasFromProperty(t *testing.T) {
	doc, _ := build(t, "MATCH (n) RETURN n.name")
	items := doc.Statements[0].Clauses[1].Items
	require.Len(t, items, 1)
	assert.Equal(t, "name", items[0].Alias)
}

func TestBuildStarProjection(t *testing.T) {
	doc, _ := build(t, "MATCH (n) RETURN *")
	items := doc.Statements[0].Clauses[1].Items
	require.Len(t, items, 1)
	assert.True(t, items[0].Star)
}

func TestBuildDuplicateAliasDiagnostic(t *testing.T) {
	_, coll := build(t, "MATCH (n),(m) RETURN n.name AS x, m.name AS x")
	assert.True(t, coll.HasErrors())
}

func TestBuildUnionResetsRestriction(t *testing.T) {
	_, coll := build(t, "MATCH (n) RETURN n UNION MATCH (m) RETURN m")
	assert.False(t, coll.HasErrors())
}

func TestBuildUnionMustFollowReturn(t *testing.T) {
	_, coll := build(t, "MATCH (n) UNION MATCH (m) RETURN m")
	assert.True(t, coll.HasErrors())
}
