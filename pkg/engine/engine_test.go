package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orneryd/cypherlite/pkg/ast"
	"github.com/orneryd/cypherlite/pkg/diag"
	"github.com/orneryd/cypherlite/pkg/engine"
	"github.com/orneryd/cypherlite/pkg/gstore"
	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/value"
)

func buildStatement(t *testing.T, text string) ast.Statement {
	t.Helper()
	coll := diag.NewCollector()
	stmts := lexer.Segment(text, coll)
	require.False(t, coll.HasErrors())
	doc := ast.Build(stmts, coll)
	require.False(t, coll.HasErrors())
	require.Len(t, doc.Statements, 1)
	return doc.Statements[0]
}

func TestExecuteStatementCreateAndProject(t *testing.T) {
	store := gstore.New()
	ctx := engine.NewContext(store, nil)
	stmt := buildStatement(t, "CREATE (n:Person {name: 'Alice'}) RETURN n.name AS name")

	rows, cols, err := ctx.ExecuteStatement(stmt, []engine.Row{engine.NewRow()})
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, cols)
	require.Len(t, rows, 1)
	assert.Equal(t, "Alice", rows[0].Vars["name"])
}

func TestExecuteStatementUnionColumnMismatchErrors(t *testing.T) {
	store := gstore.New()
	ctx := engine.NewContext(store, nil)
	stmt := buildStatement(t, "CREATE (n) RETURN n.name AS name UNION CREATE (m) RETURN m.age AS age")

	_, _, err := ctx.ExecuteStatement(stmt, []engine.Row{engine.NewRow()})
	assert.Error(t, err)
}

func TestExecuteStatementCallYieldStar(t *testing.T) {
	store := gstore.New()
	store.CreateNode([]string{"Person"}, nil)
	ctx := engine.NewContext(store, nil)
	stmt := buildStatement(t, "CALL db.labels() YIELD *")

	rows, cols, err := ctx.ExecuteStatement(stmt, []engine.Row{engine.NewRow()})
	require.NoError(t, err)
	assert.Equal(t, []string{"label"}, cols)
	require.Len(t, rows, 1)
	assert.Equal(t, "Person", rows[0].Vars["label"])
}

func TestExecuteStatementCallUnsupportedProcedure(t *testing.T) {
	store := gstore.New()
	ctx := engine.NewContext(store, nil)
	stmt := buildStatement(t, "CALL db.nonexistent()")

	_, _, err := ctx.ExecuteStatement(stmt, []engine.Row{engine.NewRow()})
	assert.Error(t, err)
}

func TestExecuteStatementMergeCreatesOnce(t *testing.T) {
	store := gstore.New()
	ctx := engine.NewContext(store, nil)
	stmt := buildStatement(t, "MERGE (n:Counter {id: 1}) RETURN n.id AS id")

	_, _, err := ctx.ExecuteStatement(stmt, []engine.Row{engine.NewRow()})
	require.NoError(t, err)

	stmt2 := buildStatement(t, "MERGE (n:Counter {id: 1}) RETURN n.id AS id")
	rows, _, err := ctx.ExecuteStatement(stmt2, []engine.Row{engine.NewRow()})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, store.AllNodes(), 1)
}

func TestExecuteStatementWhereFiltersRows(t *testing.T) {
	store := gstore.New()
	store.CreateNode([]string{"Person"}, value.Map{"age": int64(30)})
	store.CreateNode([]string{"Person"}, value.Map{"age": int64(10)})
	ctx := engine.NewContext(store, nil)
	stmt := buildStatement(t, "MATCH (n:Person) WHERE n.age > 18 RETURN n.age AS age")

	rows, _, err := ctx.ExecuteStatement(stmt, []engine.Row{engine.NewRow()})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(30), rows[0].Vars["age"])
}

func TestExecuteStatementUnwindExpandsList(t *testing.T) {
	store := gstore.New()
	ctx := engine.NewContext(store, nil)
	stmt := buildStatement(t, "UNWIND [1, 2, 3] AS x RETURN x")

	rows, _, err := ctx.ExecuteStatement(stmt, []engine.Row{engine.NewRow()})
	require.NoError(t, err)
	require.Len(t, rows, 3)
}
