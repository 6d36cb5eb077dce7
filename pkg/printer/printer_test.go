package printer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orneryd/cypherlite/pkg/ast"
	"github.com/orneryd/cypherlite/pkg/diag"
	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/printer"
)

func parse(t *testing.T, text string) ast.Document {
	t.Helper()
	coll := diag.NewCollector()
	stmts := lexer.Segment(text, coll)
	require.False(t, coll.HasErrors())
	return ast.Build(stmts, coll)
}

func TestPrintCollapsesWhitespace(t *testing.T) {
	doc := parse(t, "MATCH (n)   WHERE   n.age  >  1 RETURN n")
	out := printer.Print(doc)
	assert.Equal(t, "MATCH (n)\nWHERE n.age > 1\nRETURN n", out)
}

func TestPrintMultipleStatements(t *testing.T) {
	doc := parse(t, "CREATE (n); CREATE (m)")
	out := printer.Print(doc)
	assert.Equal(t, "CREATE (n);\nCREATE (m)", out)
}

func TestPrintIsIdempotentAcrossReparse(t *testing.T) {
	doc := parse(t, "MATCH (n) RETURN n.name AS name ORDER BY name")
	out := printer.Print(doc)
	doc2 := parse(t, out)
	assert.Equal(t, printer.Print(doc2), out)
}
