package cypherlite_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orneryd/cypherlite/pkg/cypherlite"
	"github.com/orneryd/cypherlite/pkg/gstore"
	"github.com/orneryd/cypherlite/pkg/value"
)

func run(t *testing.T, graph *gstore.Store, query string, params value.Map) cypherlite.Result {
	t.Helper()
	return cypherlite.Execute(query, graph, params, cypherlite.Options{Dialect: cypherlite.DialectStrict})
}

func TestCreateAndReturnNode(t *testing.T) {
	graph := gstore.New()
	res := run(t, graph, "CREATE (n:Person {name: 'Alice'}) RETURN n.name AS name", nil)
	require.Empty(t, res.RuntimeErrors)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Alice", res.Rows[0]["name"])
}

func TestMatchWhereReturn(t *testing.T) {
	graph := gstore.New()
	graph.CreateNode([]string{"Person"}, value.Map{"name": "Alice", "age": int64(30)})
	graph.CreateNode([]string{"Person"}, value.Map{"name": "Bob", "age": int64(25)})

	res := run(t, graph, "MATCH (n:Person) WHERE n.age > 26 RETURN n.name AS name", nil)
	require.Empty(t, res.RuntimeErrors)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Alice", res.Rows[0]["name"])
}

func TestMatchRelationshipPattern(t *testing.T) {
	graph := gstore.New()
	a := graph.CreateNode([]string{"Person"}, value.Map{"name": "Alice"})
	b := graph.CreateNode([]string{"Person"}, value.Map{"name": "Bob"})
	_, err := graph.CreateRelationship(a.ID, b.ID, "KNOWS", nil)
	require.NoError(t, err)

	res := run(t, graph, "MATCH (a:Person)-[:KNOWS]->(b:Person) RETURN a.name AS from, b.name AS to", nil)
	require.Empty(t, res.RuntimeErrors)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Alice", res.Rows[0]["from"])
	assert.Equal(t, "Bob", res.Rows[0]["to"])
}

func TestMergeOnCreateAndOnMatchScoping(t *testing.T) {
	graph := gstore.New()
	q := "MERGE (n:Counter {id: 1}) ON CREATE SET n.hits = 1 ON MATCH SET n.hits = n.hits + 1 RETURN n.hits AS hits"

	res := run(t, graph, q, nil)
	require.Empty(t, res.RuntimeErrors)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, int64(1), res.Rows[0]["hits"])

	res2 := run(t, graph, q, nil)
	require.Empty(t, res2.RuntimeErrors)
	require.Len(t, res2.Rows, 1)
	assert.Equal(t, int64(2), res2.Rows[0]["hits"])
}

func TestDeleteDetach(t *testing.T) {
	graph := gstore.New()
	a := graph.CreateNode([]string{"Person"}, nil)
	b := graph.CreateNode([]string{"Person"}, nil)
	_, err := graph.CreateRelationship(a.ID, b.ID, "KNOWS", nil)
	require.NoError(t, err)

	res := run(t, graph, "MATCH (n:Person) DETACH DELETE n", nil)
	require.Empty(t, res.RuntimeErrors)
	assert.Empty(t, graph.AllNodes())
	assert.Empty(t, graph.AllRelationships())
}

func TestUnionDedupes(t *testing.T) {
	graph := gstore.New()
	graph.CreateNode([]string{"Person"}, value.Map{"name": "Alice"})

	res := run(t, graph, "MATCH (n:Person) RETURN n.name AS name UNION MATCH (m:Person) RETURN m.name AS name", nil)
	require.Empty(t, res.RuntimeErrors)
	assert.Len(t, res.Rows, 1)
}

func TestUnionAllKeepsDuplicates(t *testing.T) {
	graph := gstore.New()
	graph.CreateNode([]string{"Person"}, value.Map{"name": "Alice"})

	res := run(t, graph, "MATCH (n:Person) RETURN n.name AS name UNION ALL MATCH (m:Person) RETURN m.name AS name", nil)
	require.Empty(t, res.RuntimeErrors)
	assert.Len(t, res.Rows, 2)
}

func TestOrderByOrdersDatesWithinKind(t *testing.T) {
	graph := gstore.New()
	res := run(t, graph, "UNWIND [date('2024-10-01'), date('2024-01-09'), date('2024-09-01')] AS d RETURN d AS d ORDER BY d", nil)
	require.Empty(t, res.RuntimeErrors)
	require.Len(t, res.Rows, 3)
	assert.Equal(t, "2024-01-09", res.Rows[0]["d"].(fmt.Stringer).String())
	assert.Equal(t, "2024-09-01", res.Rows[1]["d"].(fmt.Stringer).String())
	assert.Equal(t, "2024-10-01", res.Rows[2]["d"].(fmt.Stringer).String())
}

func TestOrderByTreatsSameInstantAcrossZonesAsEqual(t *testing.T) {
	graph := gstore.New()
	res := run(t, graph, "UNWIND [datetime('2024-06-01T12:00:00Z'), datetime('2024-06-01T14:00:00+02:00')] AS d RETURN d AS d ORDER BY d DESC", nil)
	require.Empty(t, res.RuntimeErrors)
	require.Len(t, res.Rows, 2)
	// Equal keys keep their input order under the stable sort.
	assert.Equal(t, "2024-06-01T12:00:00Z", res.Rows[0]["d"].(fmt.Stringer).String())
	assert.Equal(t, "2024-06-01T14:00:00+02:00", res.Rows[1]["d"].(fmt.Stringer).String())
}

func TestCallDbLabels(t *testing.T) {
	graph := gstore.New()
	graph.CreateNode([]string{"Person"}, nil)
	graph.CreateNode([]string{"Movie"}, nil)

	res := run(t, graph, "CALL db.labels() YIELD label RETURN label", nil)
	require.Empty(t, res.RuntimeErrors)
	var labels []string
	for _, r := range res.Rows {
		labels = append(labels, r["label"].(string))
	}
	assert.ElementsMatch(t, []string{"Person", "Movie"}, labels)
}

func TestParametersFlowThroughExecute(t *testing.T) {
	graph := gstore.New()
	res := run(t, graph, "CREATE (n:Person {name: $name}) RETURN n.name AS name", value.Map{"name": "Carol"})
	require.Empty(t, res.RuntimeErrors)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Carol", res.Rows[0]["name"])
}

func TestParseStrictRejectsExistsSubqueryWithoutFeature(t *testing.T) {
	result := cypherlite.Parse("MATCH (n) WHERE EXISTS { MATCH (n)-[:X]->() } RETURN n", cypherlite.Options{Dialect: cypherlite.DialectStrict})
	assert.NotEmpty(t, result.Diagnostics)
	assert.Nil(t, result.Document)
}

func TestParseRelaxedAllowsExistsSubquery(t *testing.T) {
	result := cypherlite.Parse("MATCH (n) WHERE EXISTS { MATCH (n)-[:X]->() } RETURN n", cypherlite.Options{Dialect: cypherlite.DialectRelaxed})
	assert.NotNil(t, result.Document)
}

func TestRuntimeErrorAbortsButKeepsParse(t *testing.T) {
	graph := gstore.New()
	res := run(t, graph, "RETURN 1 / 0 AS x", nil)
	assert.NotEmpty(t, res.RuntimeErrors)
	assert.NotNil(t, res.Parse.Document)
}

func TestQueryIDIsPopulated(t *testing.T) {
	graph := gstore.New()
	res := run(t, graph, "RETURN 1 AS x", nil)
	assert.NotEmpty(t, res.QueryID)
}
