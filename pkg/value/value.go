// Package value defines the runtime Value domain that flows through the row
// pipeline: null, boolean, integer, float, string, list, map, node,
// relationship, path, and temporal scalar.
//
// Properties and row bindings are carried as plain `interface{}` /
// `map[string]any` rather than a hand-rolled tagged union type, so Value
// here is simply an alias for `any`.
// The helpers in this package are what give that otherwise-untyped domain
// its Cypher semantics: structural equality, the total ordering comparator,
// and three-valued logic.
package value

import (
	"fmt"
	"sort"
	"strings"
)

// Value is any Cypher runtime value. A Go nil means Cypher null.
type Value = any

// List is the list Value representation.
type List = []Value

// Map is the map Value representation. Cypher maps always have string keys.
type Map = map[string]Value

// Node is the handle a row carries for a matched/created node: an id plus an
// immutable snapshot of labels/properties at bind time. Reads that need the
// live state consult the store by ID; NodeLookup implementations do that.
type Node struct {
	ID uint64
	Labels []string
	Properties Map
}

// Relationship is the row handle for a matched/created relationship.
type Relationship struct {
	ID uint64
	StartID uint64
	EndID uint64
	Type string
	Properties Map
}

// Path is an immutable matched path: len(Nodes) == len(Rels)+1, Nodes
// non-empty.
type Path struct {
	Nodes []Node
	Rels []Relationship
}

// IsNull reports whether v represents Cypher null.
func IsNull(v Value) bool { return v == nil }

// AsBool returns v as a bool and whether the conversion is exact (v was
// already a bool). Used for three-valued logic operands, not numeric
// truthiness coercion — Cypher never coerces numbers to bool.
func AsBool(v Value) (b bool, ok bool) {
	b, ok = v.(bool)
	return b, ok
}

// Truth is the three-valued logic carrier: nil means null/unknown,
// otherwise the bool's value holds.
type Truth *bool

func T(b bool) Truth { return &b }

var Null Truth = nil

// And implements three-valued AND: false if either side is false, true if
// both true, else null.
func And(a, b Truth) Truth {
	if a != nil && !*a {
		return T(false)
	}
	if b != nil && !*b {
		return T(false)
	}
	if a == nil || b == nil {
		return Null
	}
	return T(*a && *b)
}

// Or implements three-valued OR: true if either side is true, false if both
// false, else null.
func Or(a, b Truth) Truth {
	if a != nil && *a {
		return T(true)
	}
	if b != nil && *b {
		return T(true)
	}
	if a == nil || b == nil {
		return Null
	}
	return T(*a || *b)
}

// Xor implements three-valued XOR: null if either side is null.
func Xor(a, b Truth) Truth {
	if a == nil || b == nil {
		return Null
	}
	return T(*a != *b)
}

// Not implements three-valued NOT: NOT null = null.
func Not(a Truth) Truth {
	if a == nil {
		return Null
	}
	return T(!*a)
}

// ToTruth converts an evaluated Value into Truth, for contexts where a
// non-bool, non-null value is a type error (the caller decides whether that
// matters — WHERE does, other contexts may not).
func ToTruth(v Value) (Truth, bool) {
	if v == nil {
		return Null, true
	}
	b, ok := v.(bool)
	if !ok {
		return Null, false
	}
	return T(b), true
}

// Equal implements Cypher structural equality: nodes/relationships by id,
// paths by id sequence, lists/maps structurally, numbers across int/float,
// everything else by Go equality.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case Node:
		bv, ok := b.(Node)
		return ok && av.ID == bv.ID
	case Relationship:
		bv, ok := b.(Relationship)
		return ok && av.ID == bv.ID
	case Path:
		bv, ok := b.(Path)
		return ok && pathEqual(av, bv)
	case List:
		bv, ok := b.(List)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Map:
		bv, ok := b.(Map)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bvv, ok := bv[k]
			if !ok || !Equal(v, bvv) {
				return false
			}
		}
		return true
	}
	if af, aok := asNumber(a); aok {
		if bf, bok := asNumber(b); bok {
			return af == bf
		}
		return false
	}
	return a == b
}

func pathEqual(a, b Path) bool {
	if len(a.Nodes) != len(b.Nodes) || len(a.Rels) != len(b.Rels) {
		return false
	}
	for i := range a.Nodes {
		if a.Nodes[i].ID != b.Nodes[i].ID {
			return false
		}
	}
	for i := range a.Rels {
		if a.Rels[i].ID != b.Rels[i].ID {
			return false
		}
	}
	return true
}

func asNumber(v Value) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// CanonicalKey renders a Value into a string usable as a deduplication key
// (UNION, DISTINCT projection): distinct values never collide, structurally
// equal values always produce the same key.
func CanonicalKey(v Value) string {
	var b strings.Builder
	canonicalKey(&b, v)
	return b.String()
}

func canonicalKey(b *strings.Builder, v Value) {
	if v == nil {
		b.WriteString("\x00null")
		return
	}
	switch vv := v.(type) {
	case bool:
		fmt.Fprintf(b, "\x01%v", vv)
	case int64:
		fmt.Fprintf(b, "\x02%v", float64(vv))
	case int:
		fmt.Fprintf(b, "\x02%v", float64(vv))
	case float64:
		fmt.Fprintf(b, "\x02%v", vv)
	case string:
		fmt.Fprintf(b, "\x03%q", vv)
	case List:
		b.WriteString("\x04[")
		for _, e := range vv {
			canonicalKey(b, e)
			b.WriteByte(',')
		}
		b.WriteByte(']')
	case Map:
		b.WriteString("\x05{")
		keys := make([]string, 0, len(vv))
		for k := range vv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(b, "%q:", k)
			canonicalKey(b, vv[k])
			b.WriteByte(',')
		}
		b.WriteByte('}')
	case Node:
		fmt.Fprintf(b, "\x06node#%d", vv.ID)
	case Relationship:
		fmt.Fprintf(b, "\x07rel#%d", vv.ID)
	case Path:
		b.WriteString("\x08path[")
		for _, n := range vv.Nodes {
			fmt.Fprintf(b, "%d,", n.ID)
		}
		for _, r := range vv.Rels {
			fmt.Fprintf(b, "%d,", r.ID)
		}
		b.WriteByte(']')
	default:
		fmt.Fprintf(b, "\x09%T:%v", vv, vv)
	}
}

// TypeName returns the Cypher type name of v, for error messages.
func TypeName(v Value) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case int64, int:
		return "integer"
	case float64:
		return "float"
	case string:
		return "string"
	case List:
		return "list"
	case Map:
		return "map"
	case Node:
		return "node"
	case Relationship:
		return "relationship"
	case Path:
		return "path"
	default:
		return fmt.Sprintf("%T", v)
	}
}
