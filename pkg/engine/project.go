package engine

import (
	"sort"
	"strings"

	"github.com/orneryd/cypherlite/pkg/ast"
	"github.com/orneryd/cypherlite/pkg/expr"
	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/value"
)

var aggregateNames = []string{"count", "sum", "avg", "min", "max", "collect", "percentilecont", "percentiledisc"}

// isAggregateExpr reports whether exprText contains, anywhere in its
// top-level subtree, a call to one of the aggregate functions
// (distinguishing a projection item that requires grouping from a
// plain scalar one).
func isAggregateExpr(exprText string) bool {
	mask := lexer.Mask(exprText)
	lower := strings.ToLower(exprText)
	for i := 0; i < len(exprText); i++ {
		if mask[i] {
			continue
		}
		if i > 0 && isWordByte(exprText[i-1]) {
			continue
		}
		for _, name := range aggregateNames {
			end := i + len(name)
			if end > len(lower) || lower[i:end] != name {
				continue
			}
			j := end
			for j < len(exprText) && exprText[j] == ' ' {
				j++
			}
			if j < len(exprText) && exprText[j] == '(' && (i == 0 || exprText[i-1] != '.') {
				return true
			}
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// resolveItems expands a lone "*" item into the sorted union of variables
// visible across rows; other items pass through unchanged.
func resolveItems(items []ast.ProjectionItem, rows []Row) []ast.ProjectionItem {
	hasStar := false
	for _, it := range items {
		if it.Star {
			hasStar = true
		}
	}
	if !hasStar {
		return items
	}
	seen := map[string]bool{}
	var names []string
	for _, r := range rows {
		for k := range r.Vars {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
	}
	sort.Strings(names)

	out := make([]ast.ProjectionItem, 0, len(items)+len(names))
	for _, it := range items {
		if !it.Star {
			out = append(out, it)
			continue
		}
		for _, n := range names {
			out = append(out, ast.ProjectionItem{Expr: n, Alias: n, Hasher: "$expr:" + n})
		}
	}
	return out
}

// execProjection implements WITH and RETURN: non-
// aggregate projections evaluate per row; any aggregate item groups rows by
// every non-aggregate item's value and reduces the rest.
func (c *Context) execProjection(clause ast.Clause, rows []Row) ([]Row, []string, error) {
	resolved := resolveItems(clause.Items, rows)

	hasAggregate := false
	for _, it := range resolved {
		if !it.Star && isAggregateExpr(it.Expr) {
			hasAggregate = true
		}
	}
	if hasAggregate {
		for _, it := range resolved {
			if it.Star {
				return nil, nil, errWildcardAggregate()
			}
		}
	}

	cols := make([]string, 0, len(resolved))
	for _, it := range resolved {
		cols = append(cols, it.Alias)
	}

	if !hasAggregate {
		out := make([]Row, 0, len(rows))
		for _, r := range rows {
			nr := Row{Vars: value.Map{}, Meta: r.Meta}
			for _, it := range resolved {
				v, err := expr.Eval(it.Expr, c.envFor(r))
				if err != nil {
					return nil, nil, err
				}
				nr.Vars[it.Alias] = v
				if nr.Meta.ExprCache == nil {
					nr.Meta.ExprCache = map[string]value.Value{}
				}
				nr.Meta.ExprCache[it.Hasher] = v
			}
			out = append(out, nr)
		}
		if clause.Distinct {
			out = dedupeRows(out, cols)
		}
		return out, cols, nil
	}

	return c.execAggregateProjection(resolved, cols, rows, clause.Distinct)
}

type rowGroup struct {
	keyVals []value.Value
	rows []Row
}

func (c *Context) execAggregateProjection(items []ast.ProjectionItem, cols []string, rows []Row, distinct bool) ([]Row, []string, error) {
	var keyItems []ast.ProjectionItem
	for _, it := range items {
		if !isAggregateExpr(it.Expr) {
			keyItems = append(keyItems, it)
		}
	}

	var order []*rowGroup
	index := map[string]*rowGroup{}
	if len(rows) == 0 {
		order = append(order, &rowGroup{})
	} else {
		for _, r := range rows {
			keyVals := make([]value.Value, len(keyItems))
			var key strings.Builder
			for i, it := range keyItems {
				v, err := expr.Eval(it.Expr, c.envFor(r))
				if err != nil {
					return nil, nil, err
				}
				keyVals[i] = v
				key.WriteString(value.CanonicalKey(v))
				key.WriteByte('\x1f')
			}
			g, ok := index[key.String()]
			if !ok {
				g = &rowGroup{keyVals: keyVals}
				index[key.String()] = g
				order = append(order, g)
			}
			g.rows = append(g.rows, r)
		}
	}

	out := make([]Row, 0, len(order))
	for _, g := range order {
		nr := Row{Vars: value.Map{}, Meta: RowMeta{ExprCache: map[string]value.Value{}}}
		keyIdx := 0
		for _, it := range items {
			if isAggregateExpr(it.Expr) {
				v, err := c.evalAggregate(it.Expr, g.rows)
				if err != nil {
					return nil, nil, err
				}
				nr.Vars[it.Alias] = v
				nr.Meta.ExprCache[it.Hasher] = v
				continue
			}
			nr.Vars[it.Alias] = g.keyVals[keyIdx]
			nr.Meta.ExprCache[it.Hasher] = g.keyVals[keyIdx]
			keyIdx++
		}
		out = append(out, nr)
	}
	if distinct {
		out = dedupeRows(out, cols)
	}
	return out, cols, nil
}

func dedupeRows(rows []Row, cols []string) []Row {
	seen := map[string]bool{}
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		var b strings.Builder
		for _, col := range cols {
			b.WriteString(value.CanonicalKey(r.Vars[col]))
			b.WriteByte('\x1f')
		}
		k := b.String()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}

func dedupeValues(vals []value.Value) []value.Value {
	seen := map[string]bool{}
	out := make([]value.Value, 0, len(vals))
	for _, v := range vals {
		k := value.CanonicalKey(v)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, v)
	}
	return out
}

// evalAggregate evaluates one aggregate function call's text against the
// rows in a single group aggregate table.
func (c *Context) evalAggregate(exprText string, rows []Row) (value.Value, error) {
	text := strings.TrimSpace(exprText)
	open := strings.IndexByte(text, '(')
	if open < 0 || !strings.HasSuffix(text, ")") {
		return nil, errUnsupportedAggregate(text)
	}
	name := strings.ToLower(strings.TrimSpace(text[:open]))
	argsText := strings.TrimSpace(text[open+1 : len(text)-1])
	distinct := false
	if upper := strings.ToUpper(argsText); strings.HasPrefix(upper, "DISTINCT ") {
		distinct = true
		argsText = strings.TrimSpace(argsText[len("DISTINCT "):])
	}

	switch name {
	case "count":
		if argsText == "*" {
			return int64(len(rows)), nil
		}
		vals, err := c.evalPerRow(argsText, rows, true)
		if err != nil {
			return nil, err
		}
		if distinct {
			vals = dedupeValues(vals)
		}
		return int64(len(vals)), nil
	case "sum":
		vals, err := c.evalPerRow(argsText, rows, true)
		if err != nil {
			return nil, err
		}
		if distinct {
			vals = dedupeValues(vals)
		}
		var sum float64
		allInt := true
		for _, v := range vals {
			f, ok := asNumberEngine(v)
			if !ok {
				return nil, errAggregateNumeric(name)
			}
			if _, isInt := v.(int64); !isInt {
				allInt = false
			}
			sum += f
		}
		if allInt {
			return int64(sum), nil
		}
		return sum, nil
	case "avg":
		vals, err := c.evalPerRow(argsText, rows, true)
		if err != nil {
			return nil, err
		}
		if distinct {
			vals = dedupeValues(vals)
		}
		if len(vals) == 0 {
			return nil, nil
		}
		var sum float64
		for _, v := range vals {
			f, ok := asNumberEngine(v)
			if !ok {
				return nil, errAggregateNumeric(name)
			}
			sum += f
		}
		return sum / float64(len(vals)), nil
	case "min", "max":
		vals, err := c.evalPerRow(argsText, rows, true)
		if err != nil {
			return nil, err
		}
		if len(vals) == 0 {
			return nil, nil
		}
		best := vals[0]
		for _, v := range vals[1:] {
			cmp := value.Compare(v, best)
			if (name == "min" && cmp < 0) || (name == "max" && cmp > 0) {
				best = v
			}
		}
		return best, nil
	case "collect":
		vals, err := c.evalPerRow(argsText, rows, true)
		if err != nil {
			return nil, err
		}
		if distinct {
			vals = dedupeValues(vals)
		}
		return value.List(vals), nil
	case "percentilecont", "percentiledisc":
		return c.evalPercentile(name, argsText, rows)
	}
	return nil, errUnsupportedAggregate(name)
}

// evalPerRow evaluates exprText once per row, skipping nulls when
// skipNulls is true (every aggregate but count(*) ignores them).
func (c *Context) evalPerRow(exprText string, rows []Row, skipNulls bool) ([]value.Value, error) {
	var out []value.Value
	for _, r := range rows {
		v, err := expr.Eval(exprText, c.envFor(r))
		if err != nil {
			return nil, err
		}
		if v == nil && skipNulls {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *Context) evalPercentile(name, argsText string, rows []Row) (value.Value, error) {
	parts := lexer.SplitTopLevel(argsText, ',')
	if len(parts) != 2 {
		return nil, errPercentileArgs(name)
	}
	vals, err := c.evalPerRow(parts[0], rows, true)
	if err != nil {
		return nil, err
	}
	nums := make([]float64, 0, len(vals))
	for _, v := range vals {
		f, ok := asNumberEngine(v)
		if !ok {
			return nil, errAggregateNumeric(name)
		}
		nums = append(nums, f)
	}
	if len(nums) == 0 {
		return nil, nil
	}
	sort.Float64s(nums)

	pv, err := expr.Eval(parts[1], &expr.Env{Params: c.Params})
	if err != nil {
		return nil, err
	}
	p, ok := asNumberEngine(pv)
	if !ok {
		return nil, errAggregateNumeric(name)
	}

	if name == "percentiledisc" {
		idx := int(p*float64(len(nums))+0.999999) - 1
		if idx < 0 {
			idx = 0
		}
		if idx >= len(nums) {
			idx = len(nums) - 1
		}
		return nums[idx], nil
	}
	pos := p * float64(len(nums)-1)
	lo := int(pos)
	hi := lo + 1
	if hi >= len(nums) {
		return nums[len(nums)-1], nil
	}
	frac := pos - float64(lo)
	return nums[lo] + (nums[hi]-nums[lo])*frac, nil
}

func asNumberEngine(v value.Value) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

