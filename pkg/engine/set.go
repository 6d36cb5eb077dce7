package engine

import (
	"strings"

	"github.com/orneryd/cypherlite/pkg/expr"
	"github.com/orneryd/cypherlite/pkg/gstore"
	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/value"
)

// execSet implements SET four assignment forms:
// "v.prop = expr", "v:Label[:Label...]", "v += expr" (map merge), and
// "v = expr" (map replace). scope restricts which rows the assignments
// apply to when this SET carries an ON CREATE/ON MATCH suffix: "" applies to
// every row, "CREATE" only to rows MERGE just created, "MATCH" only to rows
// MERGE reused.
func (c *Context) execSet(body string, rows []Row, scope string) ([]Row, error) {
	assignments := lexer.SplitTopLevel(body, ',')
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if scope == "CREATE" && !r.Meta.LastMergeCreated {
			out = append(out, r)
			continue
		}
		if scope == "MATCH" && r.Meta.LastMergeCreated {
			out = append(out, r)
			continue
		}
		nr := r.Clone()
		for _, a := range assignments {
			if err := c.applySetAssignment(a, &nr); err != nil {
				return nil, err
			}
		}
		out = append(out, nr)
	}
	return out, nil
}

func (c *Context) applySetAssignment(a string, row *Row) error {
	a = strings.TrimSpace(a)
	top := lexer.Scan(a)

	if pe := findPlusEquals(a, top); pe >= 0 {
		target := strings.TrimSpace(a[:pe])
		rhs := strings.TrimSpace(a[pe+2:])
		return c.applyMapMerge(target, rhs, row)
	}
	if eq := top.FindRune('=', 0); eq >= 0 {
		left := strings.TrimSpace(a[:eq])
		right := strings.TrimSpace(a[eq+1:])
		if dot := strings.Index(left, "."); dot >= 0 {
			return c.applyPropertySet(left[:dot], left[dot+1:], right, row)
		}
		return c.applyMapReplace(left, right, row)
	}
	if strings.Contains(a, ":") {
		return c.applyLabelSet(a, row)
	}
	return errInvalidSetAssignment(a)
}

func findPlusEquals(s string, top *lexer.TopLevel) int {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '+' && s[i+1] == '=' && top.IsTopLevel(i) {
			return i
		}
	}
	return -1
}

func (c *Context) applyPropertySet(varName, prop, rightText string, row *Row) error {
	varName = strings.TrimSpace(varName)
	prop = strings.Trim(strings.TrimSpace(prop), "`")
	bound, ok := row.Vars[varName]
	if !ok {
		return errUnboundVariable(varName)
	}
	if bound == nil {
		return nil
	}
	v, err := expr.Eval(rightText, c.envFor(*row))
	if err != nil {
		return err
	}
	switch t := bound.(type) {
	case value.Node:
		if err := c.Store.SetNodeProperty(t.ID, prop, v); err != nil {
			return err
		}
		row.Vars[varName] = c.refreshNode(t.ID)
	case value.Relationship:
		if err := c.Store.SetRelationshipProperty(t.ID, prop, v); err != nil {
			return err
		}
		row.Vars[varName] = c.refreshRel(t.ID)
	default:
		return errSetTargetNotEntity(varName)
	}
	return nil
}

func (c *Context) applyLabelSet(a string, row *Row) error {
	parts := strings.Split(a, ":")
	varName := strings.TrimSpace(parts[0])
	bound, ok := row.Vars[varName]
	if !ok {
		return errUnboundVariable(varName)
	}
	if bound == nil {
		return nil
	}
	n, ok2 := bound.(value.Node)
	if !ok2 {
		return errSetTargetNotEntity(varName)
	}
	for _, lbl := range parts[1:] {
		lbl = strings.TrimSpace(lbl)
		if lbl == "" {
			continue
		}
		if err := c.Store.AddLabel(n.ID, lbl); err != nil {
			return err
		}
	}
	row.Vars[varName] = c.refreshNode(n.ID)
	return nil
}

func (c *Context) applyMapMerge(target, rhsText string, row *Row) error {
	bound, ok := row.Vars[target]
	if !ok {
		return errUnboundVariable(target)
	}
	if bound == nil {
		return nil
	}
	v, err := expr.Eval(rhsText, c.envFor(*row))
	if err != nil {
		return err
	}
	var m value.Map
	switch src := v.(type) {
	case value.Map:
		m = src
	case value.Node:
		m = src.Properties
	case value.Relationship:
		m = src.Properties
	default:
		return errSetExpectsMap()
	}
	switch t := bound.(type) {
	case value.Node:
		if err := c.Store.MergeNodeProperties(t.ID, m); err != nil {
			return err
		}
		row.Vars[target] = c.refreshNode(t.ID)
	case value.Relationship:
		if err := c.Store.MergeRelationshipProperties(t.ID, m); err != nil {
			return err
		}
		row.Vars[target] = c.refreshRel(t.ID)
	default:
		return errSetTargetNotEntity(target)
	}
	return nil
}

func (c *Context) applyMapReplace(target, rhsText string, row *Row) error {
	v, err := expr.Eval(rhsText, c.envFor(*row))
	if err != nil {
		return err
	}
	var m value.Map
	switch vv := v.(type) {
	case value.Map:
		m = vv
	case value.Node:
		m = vv.Properties
	case value.Relationship:
		m = vv.Properties
	default:
		return errSetExpectsMap()
	}
	bound, ok := row.Vars[target]
	if !ok {
		return errUnboundVariable(target)
	}
	if bound == nil {
		return nil
	}
	switch t := bound.(type) {
	case value.Node:
		if err := c.Store.ReplaceNodeProperties(t.ID, m); err != nil {
			return err
		}
		row.Vars[target] = c.refreshNode(t.ID)
	case value.Relationship:
		if err := c.Store.ReplaceRelationshipProperties(t.ID, m); err != nil {
			return err
		}
		row.Vars[target] = c.refreshRel(t.ID)
	default:
		return errSetTargetNotEntity(target)
	}
	return nil
}

func (c *Context) refreshNode(id uint64) value.Value {
	n, ok := c.Store.GetNode(id)
	if !ok {
		return nil
	}
	return gstore.ToValueNode(n)
}

func (c *Context) refreshRel(id uint64) value.Value {
	r, ok := c.Store.GetRelationship(id)
	if !ok {
		return nil
	}
	return gstore.ToValueRelationship(r)
}
