package engine

import "github.com/orneryd/cypherlite/pkg/expr"

// execWhere implements WHERE: a row survives only when its
// expression evaluates to boolean true; null or false drop the row. Any
// non-boolean, non-null result is a runtime error.
func (c *Context) execWhere(body string, rows []Row) ([]Row, error) {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		v, err := expr.Eval(body, c.envFor(r))
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		b, ok := v.(bool)
		if !ok {
			return nil, errWhereNotBoolean()
		}
		if b {
			out = append(out, r)
		}
	}
	return out, nil
}
