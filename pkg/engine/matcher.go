package engine

import (
	"github.com/orneryd/cypherlite/pkg/gstore"
	"github.com/orneryd/cypherlite/pkg/pattern"
	"github.com/orneryd/cypherlite/pkg/value"
)

// Matcher implements expr.PatternMatcher, handing pattern predicates (a)--(b)
// and EXISTS {...} subqueries that show up inside WHERE expressions back to
// the engine that owns the store, without pkg/expr importing pkg/engine.
type Matcher struct {
	ctx *Context
}

func (m *Matcher) MatchPatternExists(patternText string, row value.Map) (bool, error) {
	chain, err := pattern.ParseChain(patternText)
	if err != nil {
		return false, err
	}
	rows, err := m.ctx.expandChain(chain, Row{Vars: row})
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

func (m *Matcher) ExpandPattern(patternText string, row value.Map) ([]value.Map, error) {
	chain, err := pattern.ParseChain(patternText)
	if err != nil {
		return nil, err
	}
	rows, err := m.ctx.expandChain(chain, Row{Vars: row})
	if err != nil {
		return nil, err
	}
	out := make([]value.Map, len(rows))
	for i, r := range rows {
		out[i] = r.Vars
	}
	return out, nil
}

func (m *Matcher) RunExistsSubquery(body string, row value.Map) (bool, error) {
	rows, _, err := m.ctx.runSubqueryBody(body, []Row{{Vars: row}})
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// expandChain matches chain against the store starting from row's existing
// bindings, returning one extended row per distinct match.
func (c *Context) expandChain(chain pattern.Chain, row Row) ([]Row, error) {
	starts, err := c.candidateNodes(chain.Start, row)
	if err != nil {
		return nil, err
	}
	var out []Row
	for _, n := range starts {
		r := row.Clone()
		if chain.Start.Variable != "" {
			r.Vars[chain.Start.Variable] = gstore.ToValueNode(n)
		}
		branches, err := c.walkSegments(chain, 0, r, n, []gstore.Node{n}, nil, map[uint64]bool{})
		if err != nil {
			return nil, err
		}
		out = append(out, branches...)
	}
	return out, nil
}

func (c *Context) walkSegments(chain pattern.Chain, idx int, row Row, curNode gstore.Node, pathNodes []gstore.Node, pathRels []gstore.Relationship, used map[uint64]bool) ([]Row, error) {
	if idx == len(chain.Segs) {
		r := row.Clone()
		if chain.PathVar != "" {
			r.Vars[chain.PathVar] = buildPathValue(pathNodes, pathRels)
		}
		return []Row{r}, nil
	}
	seg := chain.Segs[idx]
	if seg.Rel.VarLength {
		return c.expandVarLength(chain, idx, row, curNode, pathNodes, pathRels, used)
	}
	return c.expandFixedHop(chain, idx, row, curNode, pathNodes, pathRels, used)
}

func (c *Context) expandFixedHop(chain pattern.Chain, idx int, row Row, curNode gstore.Node, pathNodes []gstore.Node, pathRels []gstore.Relationship, used map[uint64]bool) ([]Row, error) {
	seg := chain.Segs[idx]
	var out []Row
	for _, relID := range c.Store.IncidentRelationships(curNode.ID) {
		if used[relID] {
			continue
		}
		rel, ok := c.Store.GetRelationship(relID)
		if !ok {
			continue
		}
		_, otherID, ok := actualDirection(rel, curNode.ID, seg.Rel.Direction)
		if !ok {
			continue
		}
		if !relTypeMatch(seg.Rel, rel) {
			continue
		}
		r := row.Clone()
		okProps, err := c.relPropsMatch(seg.Rel, rel, r)
		if err != nil {
			return nil, err
		}
		if !okProps {
			continue
		}
		relVal := gstore.ToValueRelationship(rel)
		if seg.Rel.Variable != "" {
			if bound, exists := r.Vars[seg.Rel.Variable]; exists && !value.Equal(bound, relVal) {
				continue
			}
		}
		okNode, nodeSnap, err := c.matchSingleNode(seg.Node, otherID, r)
		if err != nil {
			return nil, err
		}
		if !okNode {
			continue
		}
		if seg.Rel.Variable != "" {
			r.Vars[seg.Rel.Variable] = relVal
		}
		if seg.Node.Variable != "" {
			r.Vars[seg.Node.Variable] = gstore.ToValueNode(nodeSnap)
		}
		newUsed := cloneUsedSet(used)
		newUsed[relID] = true
		newPathNodes := append(append([]gstore.Node{}, pathNodes...), nodeSnap)
		newPathRels := append(append([]gstore.Relationship{}, pathRels...), rel)
		sub, err := c.walkSegments(chain, idx+1, r, nodeSnap, newPathNodes, newPathRels, newUsed)
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return out, nil
}

type varLenState struct {
	results []Row
	err error
}

func (c *Context) expandVarLength(chain pattern.Chain, idx int, row Row, curNode gstore.Node, pathNodes []gstore.Node, pathRels []gstore.Relationship, used map[uint64]bool) ([]Row, error) {
	seg := chain.Segs[idx]
	maxHops := seg.Rel.MaxHops
	if maxHops < 0 {
		maxHops = c.Store.RelationshipCount()
	}
	st := &varLenState{}
	c.walkVarLength(chain, idx, seg, maxHops, row, curNode, nil, used, pathNodes, pathRels, st)
	return st.results, st.err
}

func (c *Context) walkVarLength(chain pattern.Chain, idx int, seg pattern.Segment, maxHops int, row Row, node gstore.Node, rels []gstore.Relationship, used map[uint64]bool, pathNodes []gstore.Node, pathRels []gstore.Relationship, st *varLenState) {
	if st.err != nil {
		return
	}
	hops := len(rels)
	if hops >= seg.Rel.MinHops {
		candRow := row.Clone()
		ok, nodeSnap, err := c.matchSingleNode(seg.Node, node.ID, candRow)
		if err != nil {
			st.err = err
			return
		}
		if ok {
			relVal := make(value.List, len(rels))
			for i, r := range rels {
				relVal[i] = gstore.ToValueRelationship(r)
			}
			bindOK := true
			if seg.Rel.Variable != "" {
				if bound, exists := candRow.Vars[seg.Rel.Variable]; exists && !value.Equal(bound, relVal) {
					bindOK = false
				}
				if bindOK {
					candRow.Vars[seg.Rel.Variable] = relVal
				}
			}
			if bindOK {
				if seg.Node.Variable != "" {
					candRow.Vars[seg.Node.Variable] = gstore.ToValueNode(nodeSnap)
				}
				newPathNodes := append(append([]gstore.Node{}, pathNodes...), nodeSnap)
				newPathRels := append(append([]gstore.Relationship{}, pathRels...), rels...)
				sub, err := c.walkSegments(chain, idx+1, candRow, nodeSnap, newPathNodes, newPathRels, used)
				if err != nil {
					st.err = err
					return
				}
				st.results = append(st.results, sub...)
			}
		}
	}
	if hops >= maxHops {
		return
	}
	for _, relID := range c.Store.IncidentRelationships(node.ID) {
		if used[relID] {
			continue
		}
		rel, ok := c.Store.GetRelationship(relID)
		if !ok {
			continue
		}
		_, otherID, ok := actualDirection(rel, node.ID, seg.Rel.Direction)
		if !ok {
			continue
		}
		if !relTypeMatch(seg.Rel, rel) {
			continue
		}
		okProps, err := c.relPropsMatch(seg.Rel, rel, row)
		if err != nil {
			st.err = err
			return
		}
		if !okProps {
			continue
		}
		nextUsed := cloneUsedSet(used)
		nextUsed[relID] = true
		nextNode, ok := c.Store.GetNode(otherID)
		if !ok {
			continue
		}
		c.walkVarLength(chain, idx, seg, maxHops, row, nextNode, append(append([]gstore.Relationship{}, rels...), rel), nextUsed, pathNodes, pathRels, st)
		if st.err != nil {
			return
		}
	}
}

// actualDirection reports whether rel may be traversed from fromID under
// patternDir, and if so, which node lies at the other end.
func actualDirection(rel gstore.Relationship, fromID uint64, patternDir pattern.Direction) (dir pattern.Direction, otherID uint64, ok bool) {
	if rel.StartID == fromID && (patternDir == pattern.DirOutgoing || patternDir == pattern.DirEither) {
		return pattern.DirOutgoing, rel.EndID, true
	}
	if rel.EndID == fromID && (patternDir == pattern.DirIncoming || patternDir == pattern.DirEither) {
		return pattern.DirIncoming, rel.StartID, true
	}
	return 0, 0, false
}

func relTypeMatch(rp pattern.RelPattern, rel gstore.Relationship) bool {
	return len(rp.Types) == 0 || containsStr(rp.Types, rel.Type)
}

func (c *Context) relPropsMatch(rp pattern.RelPattern, rel gstore.Relationship, row Row) (bool, error) {
	for k, pv := range rp.Props {
		want, err := c.resolvePropValue(pv, row)
		if err != nil {
			return false, err
		}
		got, ok := rel.Properties[k]
		if !ok || !value.Equal(got, want) {
			return false, nil
		}
	}
	return true, nil
}

// candidateNodes returns every node satisfying np, restricted to np's bound
// value if its variable is already set in row (same-row rebinding).
func (c *Context) candidateNodes(np pattern.NodePattern, row Row) ([]gstore.Node, error) {
	if np.Variable != "" {
		if bound, ok := row.Vars[np.Variable]; ok {
			bn, ok2 := bound.(value.Node)
			if !ok2 {
				return nil, nil
			}
			n, ok3 := c.Store.GetNode(bn.ID)
			if !ok3 {
				return nil, nil
			}
			ok4, err := c.nodeMatchesPattern(np, n, row)
			if err != nil || !ok4 {
				return nil, err
			}
			return []gstore.Node{n}, nil
		}
	}
	var out []gstore.Node
	for _, n := range c.Store.AllNodes() {
		ok, err := c.nodeMatchesPattern(np, n, row)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, n)
		}
	}
	return out, nil
}

// matchSingleNode checks node id against np, including same-row rebinding.
func (c *Context) matchSingleNode(np pattern.NodePattern, id uint64, row Row) (bool, gstore.Node, error) {
	n, ok := c.Store.GetNode(id)
	if !ok {
		return false, gstore.Node{}, nil
	}
	ok2, err := c.nodeMatchesPattern(np, n, row)
	if err != nil || !ok2 {
		return false, gstore.Node{}, err
	}
	if np.Variable != "" {
		if bound, exists := row.Vars[np.Variable]; exists {
			bn, ok3 := bound.(value.Node)
			if !ok3 || bn.ID != n.ID {
				return false, gstore.Node{}, nil
			}
		}
	}
	return true, n, nil
}

func (c *Context) nodeMatchesPattern(np pattern.NodePattern, n gstore.Node, row Row) (bool, error) {
	for _, lbl := range np.Labels {
		if !containsStr(n.Labels, lbl) {
			return false, nil
		}
	}
	for k, pv := range np.Props {
		want, err := c.resolvePropValue(pv, row)
		if err != nil {
			return false, err
		}
		got, ok := n.Properties[k]
		if !ok || !value.Equal(got, want) {
			return false, nil
		}
	}
	return true, nil
}
