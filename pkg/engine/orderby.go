package engine

import (
	"sort"
	"strings"

	"github.com/orneryd/cypherlite/pkg/expr"
	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/value"
)

type orderKey struct {
	text string
	desc bool
}

// execOrderBy implements ORDER BY: a stable multi-key sort using the total
// ordering comparator (nulls sort last). A key that
// names a projected alias reads the row directly; a key whose text is a
// projected expression reads that projection's cached value (RowMeta.
// ExprCache); otherwise it is re-evaluated as an expression against the
// row in scope.
func (c *Context) execOrderBy(body string, rows []Row) ([]Row, error) {
	pieces := lexer.SplitTopLevel(body, ',')
	keys := make([]orderKey, 0, len(pieces))
	for _, p := range pieces {
		text, desc := parseOrderKey(p)
		keys = append(keys, orderKey{text: text, desc: desc})
	}

	type rowVals struct {
		row Row
		vals []value.Value
	}
	rv := make([]rowVals, len(rows))
	for i, r := range rows {
		vals := make([]value.Value, len(keys))
		for j, k := range keys {
			if v, ok := r.Vars[k.text]; ok {
				vals[j] = v
				continue
			}
			if r.Meta.ExprCache != nil {
				if v, ok := r.Meta.ExprCache["$expr:"+k.text]; ok {
					vals[j] = v
					continue
				}
			}
			v, err := expr.Eval(k.text, c.envFor(r))
			if err != nil {
				return nil, err
			}
			vals[j] = v
		}
		rv[i] = rowVals{row: r, vals: vals}
	}

	sort.SliceStable(rv, func(i, j int) bool {
		for k := range keys {
			cmp := value.Compare(rv[i].vals[k], rv[j].vals[k])
			if cmp == 0 {
				continue
			}
			if keys[k].desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})

	out := make([]Row, len(rv))
	for i, x := range rv {
		out[i] = x.row
	}
	return out, nil
}

func parseOrderKey(piece string) (text string, desc bool) {
	trimmed := strings.TrimSpace(piece)
	upper := strings.ToUpper(trimmed)
	if strings.HasSuffix(upper, " DESC") {
		return strings.TrimSpace(trimmed[:len(trimmed)-len(" DESC")]), true
	}
	if strings.HasSuffix(upper, " DESCENDING") {
		return strings.TrimSpace(trimmed[:len(trimmed)-len(" DESCENDING")]), true
	}
	if strings.HasSuffix(upper, " ASC") {
		return strings.TrimSpace(trimmed[:len(trimmed)-len(" ASC")]), false
	}
	if strings.HasSuffix(upper, " ASCENDING") {
		return strings.TrimSpace(trimmed[:len(trimmed)-len(" ASCENDING")]), false
	}
	return trimmed, false
}
