package engine

import (
	"sort"

	"github.com/orneryd/cypherlite/pkg/expr"
	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/value"
)

// execDelete implements DELETE/DETACH DELETE: targets from
// every row are collected into disjoint node/relationship id sets first,
// then relationships are removed in ascending id order followed by nodes in
// ascending id order, so a relationship is never left dangling mid-delete.
func (c *Context) execDelete(body string, rows []Row, detach bool) ([]Row, error) {
	targets := lexer.SplitTopLevel(body, ',')
	nodeIDs := map[uint64]bool{}
	relIDs := map[uint64]bool{}

	for _, r := range rows {
		for _, t := range targets {
			v, err := expr.Eval(t, c.envFor(r))
			if err != nil {
				return nil, err
			}
			if err := collectDeleteTargets(v, nodeIDs, relIDs); err != nil {
				return nil, err
			}
		}
	}

	relList := sortedKeys(relIDs)
	for _, id := range relList {
		c.Store.DeleteRelationship(id)
	}
	nodeList := sortedKeys(nodeIDs)
	for _, id := range nodeList {
		if _, err := c.Store.DeleteNode(id, detach); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

func collectDeleteTargets(v value.Value, nodeIDs, relIDs map[uint64]bool) error {
	switch t := v.(type) {
	case nil:
		return nil
	case value.Node:
		nodeIDs[t.ID] = true
	case value.Relationship:
		relIDs[t.ID] = true
	case value.Path:
		for _, n := range t.Nodes {
			nodeIDs[n.ID] = true
		}
		for _, r := range t.Rels {
			relIDs[r.ID] = true
		}
	case value.List:
		for _, item := range t {
			if err := collectDeleteTargets(item, nodeIDs, relIDs); err != nil {
				return err
			}
		}
	default:
		return errDeleteTargetInvalid()
	}
	return nil
}

func sortedKeys(m map[uint64]bool) []uint64 {
	out := make([]uint64, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
