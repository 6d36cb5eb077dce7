package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orneryd/cypherlite/pkg/temporal"
	"github.com/orneryd/cypherlite/pkg/value"
)

func TestThreeValuedLogic(t *testing.T) {
	tru, fls := value.T(true), value.T(false)

	cases := []struct {
		name string
		got  value.Truth
		want value.Truth
	}{
		{"null AND false = false", value.And(value.Null, fls), fls},
		{"null OR true = true", value.Or(value.Null, tru), tru},
		{"null AND true = null", value.And(value.Null, tru), value.Null},
		{"null OR false = null", value.Or(value.Null, fls), value.Null},
		{"true XOR false = true", value.Xor(tru, fls), tru},
		{"null XOR true = null", value.Xor(value.Null, tru), value.Null},
		{"NOT null = null", value.Not(value.Null), value.Null},
		{"NOT true = false", value.Not(tru), fls},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.want == value.Null {
				assert.Nil(t, tc.got)
				return
			}
			require.NotNil(t, tc.got)
			assert.Equal(t, *tc.want, *tc.got)
		})
	}
}

func TestEqualStructural(t *testing.T) {
	assert.True(t, value.Equal(nil, nil))
	assert.False(t, value.Equal(nil, int64(1)))
	assert.True(t, value.Equal(int64(1), float64(1)))
	assert.True(t, value.Equal(value.List{int64(1), "a"}, value.List{int64(1), "a"}))
	assert.False(t, value.Equal(value.List{int64(1)}, value.List{int64(1), int64(2)}))
	assert.True(t, value.Equal(value.Map{"a": int64(1)}, value.Map{"a": int64(1)}))
	assert.True(t, value.Equal(value.Node{ID: 3}, value.Node{ID: 3, Labels: []string{"X"}}))
	assert.False(t, value.Equal(value.Node{ID: 3}, value.Node{ID: 4}))
	p1 := value.Path{Nodes: []value.Node{{ID: 1}, {ID: 2}}, Rels: []value.Relationship{{ID: 10}}}
	p2 := value.Path{Nodes: []value.Node{{ID: 1}, {ID: 2}}, Rels: []value.Relationship{{ID: 10}}}
	assert.True(t, value.Equal(p1, p2))
}

func TestCompareNullsSortLast(t *testing.T) {
	assert.Equal(t, 1, value.Compare(nil, int64(1)))
	assert.Equal(t, -1, value.Compare(int64(1), nil))
	assert.Equal(t, 0, value.Compare(nil, nil))
}

func TestCompareMixedNumeric(t *testing.T) {
	assert.Equal(t, -1, value.Compare(int64(1), float64(1.5)))
	assert.Equal(t, 0, value.Compare(int64(2), float64(2.0)))
	assert.Equal(t, -1, value.Compare(false, true))
}

func TestOrderedCompareNullShortCircuits(t *testing.T) {
	_, ok := value.OrderedCompare(nil, int64(1))
	assert.False(t, ok)
	cmp, ok := value.OrderedCompare(int64(1), int64(2))
	require.True(t, ok)
	assert.Equal(t, -1, cmp)
}

func TestCanonicalKeyDistinctAndEqual(t *testing.T) {
	assert.Equal(t, value.CanonicalKey(int64(1)), value.CanonicalKey(float64(1)))
	assert.NotEqual(t, value.CanonicalKey(int64(1)), value.CanonicalKey(int64(2)))
	assert.Equal(t, value.CanonicalKey(value.Map{"a": int64(1), "b": int64(2)}), value.CanonicalKey(value.Map{"b": int64(2), "a": int64(1)}))
}

func TestCompareTemporalOrdersWithinKind(t *testing.T) {
	jan, sep, oct := temporal.NewDate(2024, 1, 9), temporal.NewDate(2024, 9, 1), temporal.NewDate(2024, 10, 1)
	assert.Equal(t, -1, value.Compare(jan, sep))
	assert.Equal(t, -1, value.Compare(sep, oct))
	assert.Equal(t, 1, value.Compare(oct, jan))
	assert.Equal(t, 0, value.Compare(jan, temporal.NewDate(2024, 1, 9)))
}

func TestCompareTemporalSameInstantDifferentZoneIsEqual(t *testing.T) {
	utcNoon := temporal.NewDateTime(2024, 6, 1, 12, 0, 0, 0, 0, "")
	plusTwo := temporal.NewDateTime(2024, 6, 1, 14, 0, 0, 0, 120, "")
	assert.Equal(t, 0, value.Compare(utcNoon, plusTwo))
}

func TestOrderedCompareTemporalLessThan(t *testing.T) {
	a := temporal.NewDateTime(2024, 1, 1, 0, 0, 0, 0, 0, "")
	b := temporal.NewDateTime(2024, 1, 2, 0, 0, 0, 0, 0, "")
	cmp, ok := value.OrderedCompare(a, b)
	require.True(t, ok)
	assert.Equal(t, -1, cmp)

	cmp, ok = value.OrderedCompare(b, a)
	require.True(t, ok)
	assert.Equal(t, 1, cmp)
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "null", value.TypeName(nil))
	assert.Equal(t, "integer", value.TypeName(int64(1)))
	assert.Equal(t, "float", value.TypeName(1.5))
	assert.Equal(t, "string", value.TypeName("x"))
	assert.Equal(t, "list", value.TypeName(value.List{}))
	assert.Equal(t, "map", value.TypeName(value.Map{}))
	assert.Equal(t, "node", value.TypeName(value.Node{}))
}
