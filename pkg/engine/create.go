package engine

import (
	"github.com/orneryd/cypherlite/pkg/gstore"
	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/pattern"
	"github.com/orneryd/cypherlite/pkg/value"
)

// execCreate implements CREATE: every comma-separated
// chain in body is created fresh for every input row (a node/relationship
// pattern with a bound variable reuses that binding as an endpoint rather
// than creating a duplicate node).
func (c *Context) execCreate(body string, rows []Row) ([]Row, error) {
	chainTexts := lexer.SplitTopLevel(body, ',')
	var chains []pattern.Chain
	for _, t := range chainTexts {
		ch, err := pattern.ParseChain(t)
		if err != nil {
			return nil, err
		}
		chains = append(chains, ch)
	}

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		cur := r.Clone()
		for _, ch := range chains {
			if err := c.createChain(ch, &cur); err != nil {
				return nil, err
			}
		}
		out = append(out, cur)
	}
	return out, nil
}

func (c *Context) createChain(ch pattern.Chain, row *Row) error {
	startNode, err := c.resolveOrCreateNode(ch.Start, row)
	if err != nil {
		return err
	}
	pathNodes := []gstore.Node{startNode}
	var pathRels []gstore.Relationship
	cur := startNode

	for _, seg := range ch.Segs {
		if seg.Rel.VarLength {
			return errCreateVarLength()
		}
		if len(seg.Rel.Types) != 1 {
			return errCreateRelType()
		}
		nextNode, err := c.resolveOrCreateNode(seg.Node, row)
		if err != nil {
			return err
		}
		startID, endID := cur.ID, nextNode.ID
		if seg.Rel.Direction == pattern.DirIncoming {
			startID, endID = endID, startID
		}
		props, err := c.resolvePropMap(seg.Rel.Props, *row)
		if err != nil {
			return err
		}
		rel, err := c.Store.CreateRelationship(startID, endID, seg.Rel.Types[0], props)
		if err != nil {
			return err
		}
		if seg.Rel.Variable != "" {
			row.Vars[seg.Rel.Variable] = gstore.ToValueRelationship(rel)
		}
		pathRels = append(pathRels, rel)
		pathNodes = append(pathNodes, nextNode)
		cur = nextNode
	}

	if ch.PathVar != "" {
		row.Vars[ch.PathVar] = buildPathValue(pathNodes, pathRels)
	}
	return nil
}

// resolveOrCreateNode reuses an already-bound node variable as an endpoint,
// or creates a brand new node when the variable (if any) is unbound.
func (c *Context) resolveOrCreateNode(np pattern.NodePattern, row *Row) (gstore.Node, error) {
	if np.Variable != "" {
		if bound, ok := row.Vars[np.Variable]; ok {
			vn, ok2 := bound.(value.Node)
			if !ok2 {
				return gstore.Node{}, errNotBoundToNode(np.Variable, "CREATE")
			}
			n, ok3 := c.Store.GetNode(vn.ID)
			if !ok3 {
				return gstore.Node{}, errNotBoundToNode(np.Variable, "CREATE")
			}
			return n, nil
		}
	}
	props, err := c.resolvePropMap(np.Props, *row)
	if err != nil {
		return gstore.Node{}, err
	}
	n := c.Store.CreateNode(np.Labels, props)
	if np.Variable != "" {
		row.Vars[np.Variable] = gstore.ToValueNode(n)
	}
	return n, nil
}
