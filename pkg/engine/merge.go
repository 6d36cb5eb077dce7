package engine

import (
	"strings"

	"github.com/orneryd/cypherlite/pkg/pattern"
)

// execMerge implements MERGE's core: body is a single
// pattern chain with at most one relationship segment and no variable
// length. For each input row, the first existing match (by store order) is
// reused; absent any match, the whole chain is created exactly as CREATE
// would. Row.Meta.LastMergeCreated records which happened so an immediately
// following ON CREATE/ON MATCH SET can act on the right rows.
func (c *Context) execMerge(body string, rows []Row) ([]Row, error) {
	if strings.TrimSpace(body) == "" {
		return nil, errMergeEmptyPattern()
	}
	chain, err := pattern.ParseChain(body)
	if err != nil {
		return nil, err
	}
	if len(chain.Segs) > 1 {
		return nil, errMergeMultipleSegments()
	}
	for _, seg := range chain.Segs {
		if seg.Rel.VarLength {
			return nil, errMergeVarLength()
		}
	}

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		matches, err := c.expandChain(chain, r)
		if err != nil {
			return nil, err
		}
		nr := r.Clone()
		if len(matches) > 0 {
			m := matches[0]
			for _, v := range chainVars(chain) {
				nr.Vars[v] = m.Vars[v]
			}
			nr.Meta.LastMergeCreated = false
		} else {
			if err := c.createChain(chain, &nr); err != nil {
				return nil, err
			}
			nr.Meta.LastMergeCreated = true
		}
		out = append(out, nr)
	}
	return out, nil
}
