package engine

import (
	"strings"

	"github.com/orneryd/cypherlite/pkg/expr"
	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/value"
)

// execUnwind implements UNWIND: "expr AS var" expands one
// output row per list element, dropping the row entirely when expr is null.
func (c *Context) execUnwind(body string, rows []Row) ([]Row, error) {
	top := lexer.Scan(body)
	s, e := top.FindKeyword("AS", 0)
	if s < 0 {
		return nil, errUnparsableClause("UNWIND")
	}
	exprText := strings.TrimSpace(body[:s])
	varName := strings.TrimSpace(body[e:])

	var out []Row
	for _, r := range rows {
		v, err := expr.Eval(exprText, c.envFor(r))
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		list, ok := v.(value.List)
		if !ok {
			return nil, errUnwindNotList()
		}
		for _, item := range list {
			nr := r.Clone()
			nr.Vars[varName] = item
			out = append(out, nr)
		}
	}
	return out, nil
}
