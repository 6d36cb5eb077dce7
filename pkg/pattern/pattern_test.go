package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orneryd/cypherlite/pkg/pattern"
	"github.com/orneryd/cypherlite/pkg/value"
)

func TestParseChainSimpleNode(t *testing.T) {
	chain, err := pattern.ParseChain("(a:Person {name: 'Alice'})")
	require.NoError(t, err)
	assert.Equal(t, "a", chain.Start.Variable)
	assert.Equal(t, []string{"Person"}, chain.Start.Labels)
	assert.Equal(t, "Alice", chain.Start.Props["name"].Literal)
}

func TestParseChainRelationshipDirection(t *testing.T) {
	chain, err := pattern.ParseChain("(a)-[r:KNOWS]->(b)")
	require.NoError(t, err)
	require.Len(t, chain.Segs, 1)
	assert.Equal(t, pattern.DirOutgoing, chain.Segs[0].Rel.Direction)
	assert.Equal(t, []string{"KNOWS"}, chain.Segs[0].Rel.Types)
	assert.Equal(t, "b", chain.Segs[0].Node.Variable)
}

func TestParseChainIncomingDirection(t *testing.T) {
	chain, err := pattern.ParseChain("(a)<-[r:KNOWS]-(b)")
	require.NoError(t, err)
	assert.Equal(t, pattern.DirIncoming, chain.Segs[0].Rel.Direction)
}

func TestParseChainEitherDirection(t *testing.T) {
	chain, err := pattern.ParseChain("(a)-[r]-(b)")
	require.NoError(t, err)
	assert.Equal(t, pattern.DirEither, chain.Segs[0].Rel.Direction)
}

func TestParseChainBothArrowsIsError(t *testing.T) {
	_, err := pattern.ParseChain("(a)<-[r]->(b)")
	assert.Error(t, err)
}

func TestParseChainMultipleRelTypes(t *testing.T) {
	chain, err := pattern.ParseChain("(a)-[r:KNOWS|LIKES]->(b)")
	require.NoError(t, err)
	assert.Equal(t, []string{"KNOWS", "LIKES"}, chain.Segs[0].Rel.Types)
}

func TestParseChainVariableLengthRange(t *testing.T) {
	chain, err := pattern.ParseChain("(a)-[r:KNOWS*1..3]->(b)")
	require.NoError(t, err)
	assert.True(t, chain.Segs[0].Rel.VarLength)
	assert.Equal(t, 1, chain.Segs[0].Rel.MinHops)
	assert.Equal(t, 3, chain.Segs[0].Rel.MaxHops)
}

func TestParseChainVariableLengthOpenEnded(t *testing.T) {
	chain, err := pattern.ParseChain("(a)-[r*2..]->(b)")
	require.NoError(t, err)
	assert.Equal(t, 2, chain.Segs[0].Rel.MinHops)
	assert.Equal(t, -1, chain.Segs[0].Rel.MaxHops)
}

func TestParseChainPathVariable(t *testing.T) {
	chain, err := pattern.ParseChain("p = (a)-[r]->(b)")
	require.NoError(t, err)
	assert.Equal(t, "p", chain.PathVar)
}

func TestParseChainMultiSegment(t *testing.T) {
	chain, err := pattern.ParseChain("(a)-[:KNOWS]->(b)-[:LIKES]->(c)")
	require.NoError(t, err)
	assert.Len(t, chain.Segs, 2)
	assert.Equal(t, "c", chain.Segs[1].Node.Variable)
}

func TestParsePropValueParameterReference(t *testing.T) {
	pv := pattern.ParsePropValue("$name")
	assert.Equal(t, "name", pv.ParamName)
	assert.False(t, pv.HasLiteral)
}

func TestParsePropValueListLiteral(t *testing.T) {
	pv := pattern.ParsePropValue("[1, 2, 3]")
	require.True(t, pv.HasLiteral)
	assert.Equal(t, value.List{int64(1), int64(2), int64(3)}, pv.Literal)
}

func TestParsePropValueMapLiteral(t *testing.T) {
	pv := pattern.ParsePropValue("{a: 1, b: 'x'}")
	require.True(t, pv.HasLiteral)
	assert.Equal(t, value.Map{"a": int64(1), "b": "x"}, pv.Literal)
}

func TestParsePropValueStringEscapes(t *testing.T) {
	pv := pattern.ParsePropValue(`'line\nbreak'`)
	require.True(t, pv.HasLiteral)
	assert.Equal(t, "line\nbreak", pv.Literal)
}

func TestParsePropValueHexAndOctal(t *testing.T) {
	pv := pattern.ParsePropValue("0x1F")
	require.True(t, pv.HasLiteral)
	assert.Equal(t, int64(31), pv.Literal)

	pv = pattern.ParsePropValue("0o17")
	require.True(t, pv.HasLiteral)
	assert.Equal(t, int64(15), pv.Literal)
}

func TestParsePropValueNullAndBool(t *testing.T) {
	pv := pattern.ParsePropValue("null")
	assert.True(t, pv.HasLiteral)
	assert.Nil(t, pv.Literal)

	pv = pattern.ParsePropValue("true")
	assert.True(t, pv.HasLiteral)
	assert.Equal(t, true, pv.Literal)
}
