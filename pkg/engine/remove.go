package engine

import (
	"strings"

	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/value"
)

// execRemove implements REMOVE: each comma-separated item
// is either "v.prop" (sets the property to null) or "v:Label[:Label...]".
func (c *Context) execRemove(body string, rows []Row) ([]Row, error) {
	items := lexer.SplitTopLevel(body, ',')
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		nr := r.Clone()
		for _, item := range items {
			if err := c.applyRemoveItem(item, &nr); err != nil {
				return nil, err
			}
		}
		out = append(out, nr)
	}
	return out, nil
}

func (c *Context) applyRemoveItem(item string, row *Row) error {
	item = strings.TrimSpace(item)
	if colon := strings.Index(item, ":"); colon >= 0 {
		parts := strings.Split(item, ":")
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
			if err := c.Store.RemoveLabel(n.ID, lbl); err != nil {
				return err
			}
		}
		row.Vars[varName] = c.refreshNode(n.ID)
		return nil
	}
	if dot := strings.Index(item, "."); dot >= 0 {
		varName := strings.TrimSpace(item[:dot])
		prop := strings.Trim(strings.TrimSpace(item[dot+1:]), "`")
		bound, ok := row.Vars[varName]
		if !ok {
			return errUnboundVariable(varName)
		}
		if bound == nil {
			return nil
		}
		switch t := bound.(type) {
		case value.Node:
			if err := c.Store.SetNodeProperty(t.ID, prop, nil); err != nil {
				return err
			}
			row.Vars[varName] = c.refreshNode(t.ID)
		case value.Relationship:
			if err := c.Store.SetRelationshipProperty(t.ID, prop, nil); err != nil {
				return err
			}
			row.Vars[varName] = c.refreshRel(t.ID)
		default:
			return errSetTargetNotEntity(varName)
		}
		return nil
	}
	return errUnsupportedRemoveItem(item)
}
