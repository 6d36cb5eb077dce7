package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orneryd/cypherlite/pkg/expr"
	"github.com/orneryd/cypherlite/pkg/value"
)

func eval(t *testing.T, text string, row value.Map) value.Value {
	t.Helper()
	v, err := expr.Eval(text, &expr.Env{Row: row})
	require.NoError(t, err)
	return v
}

func TestEvalLiterals(t *testing.T) {
	assert.Equal(t, int64(42), eval(t, "42", nil))
	assert.Equal(t, 1.5, eval(t, "1.5", nil))
	assert.Equal(t, "hi", eval(t, "'hi'", nil))
	assert.Equal(t, true, eval(t, "true", nil))
	assert.Nil(t, eval(t, "null", nil))
}

func TestEvalParameter(t *testing.T) {
	v, err := expr.Eval("$name", &expr.Env{Params: value.Map{"name": "Alice"}})
	require.NoError(t, err)
	assert.Equal(t, "Alice", v)
}

func TestEvalParameterMissingErrors(t *testing.T) {
	_, err := expr.Eval("$missing", &expr.Env{Params: value.Map{}})
	assert.Error(t, err)
}

func TestEvalArithmeticPrecedence(t *testing.T) {
	assert.Equal(t, int64(14), eval(t, "2 + 3 * 4", nil))
	assert.Equal(t, int64(20), eval(t, "(2 + 3) * 4", nil))
	assert.Equal(t, int64(8), eval(t, "2 ^ 3", nil))
}

func TestEvalDivisionAndModuloByZero(t *testing.T) {
	_, err := expr.Eval("1 / 0", nil)
	assert.Error(t, err)
	_, err = expr.Eval("1 % 0", nil)
	assert.Error(t, err)
}

func TestEvalStringConcat(t *testing.T) {
	assert.Equal(t, "ab", eval(t, "'a' + 'b'", nil))
}

func TestEvalComparisonChain(t *testing.T) {
	assert.Equal(t, true, eval(t, "1 < 2", nil))
	assert.Equal(t, true, eval(t, "1 < 2 < 3", nil))
	assert.Equal(t, false, eval(t, "1 < 2 < 1", nil))
}

func TestEvalNullComparisonYieldsNull(t *testing.T) {
	assert.Nil(t, eval(t, "null = 1", nil))
}

func TestEvalTemporalComparison(t *testing.T) {
	assert.Equal(t, true, eval(t, "date('2024-01-09') < date('2024-09-01')", nil))
	assert.Equal(t, true, eval(t, "date('2024-09-01') < date('2024-10-01')", nil))
	assert.Equal(t, false, eval(t, "datetime('2024-06-01T14:00:00+02:00') > datetime('2024-06-01T12:00:00Z')", nil))
	assert.Equal(t, true, eval(t, "datetime('2024-06-01T14:00:00+02:00') <= datetime('2024-06-01T12:00:00Z')", nil))
}

func TestEvalLogicalThreeValued(t *testing.T) {
	assert.Equal(t, false, eval(t, "null AND false", nil))
	assert.Nil(t, eval(t, "null AND true", nil))
	assert.Equal(t, true, eval(t, "null OR true", nil))
}

func TestEvalNot(t *testing.T) {
	assert.Equal(t, false, eval(t, "NOT true", nil))
	assert.Nil(t, eval(t, "NOT null", nil))
}

func TestEvalStringPredicates(t *testing.T) {
	assert.Equal(t, true, eval(t, "'hello' STARTS WITH 'he'", nil))
	assert.Equal(t, true, eval(t, "'hello' ENDS WITH 'lo'", nil))
	assert.Equal(t, true, eval(t, "'hello' CONTAINS 'ell'", nil))
}

func TestEvalIsNull(t *testing.T) {
	assert.Equal(t, true, eval(t, "null IS NULL", nil))
	assert.Equal(t, false, eval(t, "1 IS NULL", nil))
	assert.Equal(t, true, eval(t, "1 IS NOT NULL", nil))
}

func TestEvalIn(t *testing.T) {
	assert.Equal(t, true, eval(t, "1 IN [1, 2, 3]", nil))
	assert.Equal(t, false, eval(t, "4 IN [1, 2, 3]", nil))
	assert.Nil(t, eval(t, "4 IN [1, null, 3]", nil))
}

func TestEvalLabelPredicateOnNode(t *testing.T) {
	row := value.Map{"n": value.Node{ID: 1, Labels: []string{"Person", "Admin"}}}
	assert.Equal(t, true, eval(t, "n:Person", row))
	assert.Equal(t, false, eval(t, "n:Missing", row))
}

func TestEvalListLiteralAndIndexing(t *testing.T) {
	assert.Equal(t, value.List{int64(1), int64(2)}, eval(t, "[1, 2]", nil))
	assert.Equal(t, int64(2), eval(t, "[1, 2, 3][1]", nil))
	assert.Equal(t, int64(3), eval(t, "[1, 2, 3][-1]", nil))
}

func TestEvalListSlice(t *testing.T) {
	assert.Equal(t, value.List{int64(2), int64(3)}, eval(t, "[1, 2, 3, 4][1..3]", nil))
}

func TestEvalListComprehension(t *testing.T) {
	assert.Equal(t, value.List{int64(2), int64(4), int64(6)}, eval(t, "[x IN [1,2,3] | x * 2]", nil))
}

func TestEvalListComprehensionWithWhere(t *testing.T) {
	assert.Equal(t, value.List{int64(2)}, eval(t, "[x IN [1,2,3] WHERE x % 2 = 0 | x]", nil))
}

func TestEvalMapLiteral(t *testing.T) {
	assert.Equal(t, value.Map{"a": int64(1)}, eval(t, "{a: 1}", nil))
}

func TestEvalPropertyAccessOnMap(t *testing.T) {
	row := value.Map{"m": value.Map{"x": int64(5)}}
	assert.Equal(t, int64(5), eval(t, "m.x", row))
}

func TestEvalPropertyAccessMissingKeyIsNull(t *testing.T) {
	row := value.Map{"m": value.Map{"x": int64(5)}}
	assert.Nil(t, eval(t, "m.y", row))
}

func TestEvalFunctionCallCoalesce(t *testing.T) {
	assert.Equal(t, int64(5), eval(t, "coalesce(null, 5)", nil))
}

func TestEvalFunctionCallStringOps(t *testing.T) {
	assert.Equal(t, "HELLO", eval(t, "toUpper('hello')", nil))
	assert.Equal(t, int64(5), eval(t, "size('hello')", nil))
}

func TestEvalUnboundVariableErrors(t *testing.T) {
	_, err := expr.Eval("missing", &expr.Env{Row: value.Map{}})
	assert.Error(t, err)
}

func TestEvalAnyAllNonePredicates(t *testing.T) {
	assert.Equal(t, true, eval(t, "any(x IN [1,2,3] WHERE x > 2)", nil))
	assert.Equal(t, false, eval(t, "all(x IN [1,2,3] WHERE x > 2)", nil))
	assert.Equal(t, false, eval(t, "none(x IN [1,2,3] WHERE x > 2)", nil))
	assert.Equal(t, true, eval(t, "single(x IN [1,2,3] WHERE x = 2)", nil))
}
