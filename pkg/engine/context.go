package engine

import (
	"github.com/orneryd/cypherlite/pkg/expr"
	"github.com/orneryd/cypherlite/pkg/gstore"
	"github.com/orneryd/cypherlite/pkg/pattern"
	"github.com/orneryd/cypherlite/pkg/value"
)

// Context is the execution scope shared by every clause handler for one
// statement run: the store being read/mutated and the query's parameters.
type Context struct {
	Store   *gstore.Store
	Params  value.Map
	matcher *Matcher
}

// NewContext returns a Context ready to execute statements against store.
func NewContext(store *gstore.Store, params value.Map) *Context {
	if params == nil {
		params = value.Map{}
	}
	c := &Context{Store: store, Params: params}
	c.matcher = &Matcher{ctx: c}
	return c
}

func (c *Context) envFor(row Row) *expr.Env {
	return &expr.Env{Row: row.Vars, Params: c.Params, Matcher: c.matcher}
}

// resolvePropValue evaluates one pattern property-map entry against row:
// literal, $parameter, or arbitrary expression text.
func (c *Context) resolvePropValue(pv pattern.PropValue, row Row) (value.Value, error) {
	if pv.HasLiteral {
		return pv.Literal, nil
	}
	if pv.ParamName != "" {
		v, ok := c.Params[pv.ParamName]
		if !ok {
			return nil, errMissingParameter(pv.ParamName)
		}
		return v, nil
	}
	return expr.Eval(pv.Text, c.envFor(row))
}

func (c *Context) resolvePropMap(props map[string]pattern.PropValue, row Row) (value.Map, error) {
	out := value.Map{}
	for k, pv := range props {
		v, err := c.resolvePropValue(pv, row)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func cloneUsedSet(used map[uint64]bool) map[uint64]bool {
	out := make(map[uint64]bool, len(used))
	for k, v := range used {
		out[k] = v
	}
	return out
}

func containsStr(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func buildPathValue(nodes []gstore.Node, rels []gstore.Relationship) value.Path {
	vn := make([]value.Node, len(nodes))
	for i, n := range nodes {
		vn[i] = gstore.ToValueNode(n)
	}
	vr := make([]value.Relationship, len(rels))
	for i, r := range rels {
		vr[i] = gstore.ToValueRelationship(r)
	}
	return value.Path{Nodes: vn, Rels: vr}
}

func chainVars(ch pattern.Chain) []string {
	var out []string
	if ch.Start.Variable != "" {
		out = append(out, ch.Start.Variable)
	}
	for _, seg := range ch.Segs {
		if seg.Rel.Variable != "" {
			out = append(out, seg.Rel.Variable)
		}
		if seg.Node.Variable != "" {
			out = append(out, seg.Node.Variable)
		}
	}
	if ch.PathVar != "" {
		out = append(out, ch.PathVar)
	}
	return out
}
