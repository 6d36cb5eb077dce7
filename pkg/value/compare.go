package value

import (
	"fmt"

	"github.com/orneryd/cypherlite/pkg/temporal"
)

// rank assigns a coarse type-class used to order mixed-type pairs that have
// no natural comparison.
func rank(v Value) int {
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case int64, int, float64:
		return 2
	case string:
		return 3
	case List:
		return 4
	case Map:
		return 5
	case Node:
		return 6
	case Relationship:
		return 7
	case Path:
		return 8
	default:
		return 9
	}
}

// Compare implements the total ORDER BY comparator: nulls sort last, nodes/
// relationships by id, paths by canonical key, numbers as floats, strings by
// byte order, booleans false < true, and otherwise a string-form fallback so
// the comparator never panics or returns "equal" for genuinely distinct
// values. Returns -1, 0, or 1.
func Compare(a, b Value) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return 1
	}
	if b == nil {
		return -1
	}

	if an, aok := asNumber(a); aok {
		if bn, bok := asNumber(b); bok {
			return compareFloat(an, bn)
		}
	}

	switch av := a.(type) {
	case bool:
		if bv, ok := b.(bool); ok {
			return compareBool(av, bv)
		}
	case string:
		if bv, ok := b.(string); ok {
			return compareString(av, bv)
		}
	case Node:
		if bv, ok := b.(Node); ok {
			return compareUint(av.ID, bv.ID)
		}
	case Relationship:
		if bv, ok := b.(Relationship); ok {
			return compareUint(av.ID, bv.ID)
		}
	case Path:
		if bv, ok := b.(Path); ok {
			return compareString(CanonicalKey(av), CanonicalKey(bv))
		}
	case List:
		if bv, ok := b.(List); ok {
			return compareList(av, bv)
		}
	case temporal.Value:
		if bv, ok := b.(temporal.Value); ok && av.Kind == bv.Kind {
			return temporal.Compare(av, bv)
		}
	}

	if rank(a) != rank(b) {
		return compareString(fmt.Sprintf("%v", a), fmt.Sprintf("%v", b))
	}
	return compareString(CanonicalKey(a), CanonicalKey(b))
}

func compareList(a, b List) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return compareInt(len(a), len(b))
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareBool(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}

// OrderedCompare implements the comparison operators (<, <=, >, >=): unlike
// Compare, nulls never sort — any nil operand yields "incomparable" (ok =
// false), so a null operand short-circuits the whole comparison to null
// instead of sorting last.
func OrderedCompare(a, b Value) (cmp int, ok bool) {
	if a == nil || b == nil {
		return 0, false
	}
	if an, aok := asNumber(a); aok {
		if bn, bok := asNumber(b); bok {
			return compareFloat(an, bn), true
		}
		return 0, false
	}
	if as, aok := a.(string); aok {
		if bs, bok := b.(string); bok {
			return compareString(as, bs), true
		}
		return 0, false
	}
	if ab, aok := a.(bool); aok {
		if bb, bok := b.(bool); bok {
			return compareBool(ab, bb), true
		}
		return 0, false
	}
	if at, aok := a.(temporal.Value); aok {
		if bt, bok := b.(temporal.Value); bok && at.Kind == bt.Kind {
			return temporal.Compare(at, bt), true
		}
		return 0, false
	}
	return 0, false
}
