package engine

import (
	"github.com/orneryd/cypherlite/pkg/ast"
	"github.com/orneryd/cypherlite/pkg/expr"
)

// execSkipLimit implements SKIP/LIMIT: the expression must
// be parameter-only or a literal integer (it is evaluated with no row
// bindings in scope) and must not be negative.
func (c *Context) execSkipLimit(kind ast.Kind, body string, rows []Row) ([]Row, error) {
	v, err := expr.Eval(body, &expr.Env{Params: c.Params})
	if err != nil {
		return nil, err
	}
	n, ok := v.(int64)
	if !ok {
		return nil, errSkipLimitNotInteger(string(kind))
	}
	if n < 0 {
		return nil, errSkipLimitNegative(string(kind))
	}
	if kind == ast.KindSkip {
		if int(n) >= len(rows) {
			return nil, nil
		}
		return rows[n:], nil
	}
	if int(n) >= len(rows) {
		return rows, nil
	}
	return rows[:n], nil
}
