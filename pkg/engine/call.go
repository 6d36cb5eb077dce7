package engine

import (
	"sort"
	"strings"

	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/value"
)

// procedure describes one built-in CALL target: arg-free, yielding a fixed
// single column per output row.
type procedure struct {
	column string
	run func(c *Context) []value.Value
}

var procedures = map[string]procedure{
	"db.labels": {column: "label", run: func(c *Context) []value.Value {
		seen := map[string]bool{}
		for _, n := range c.Store.AllNodes() {
			for _, l := range n.Labels {
				seen[l] = true
			}
		}
		return sortedStrings(seen)
	}},
	"db.relationshiptypes": {column: "relationshipType", run: func(c *Context) []value.Value {
		seen := map[string]bool{}
		for _, r := range c.Store.AllRelationships() {
			seen[r.Type] = true
		}
		return sortedStrings(seen)
	}},
	"db.propertykeys": {column: "propertyKey", run: func(c *Context) []value.Value {
		seen := map[string]bool{}
		for _, n := range c.Store.AllNodes() {
			for k := range n.Properties {
				seen[k] = true
			}
		}
		for _, r := range c.Store.AllRelationships() {
			for k := range r.Properties {
				seen[k] = true
			}
		}
		return sortedStrings(seen)
	}},
	// db.ping is a minimal test-only procedure exercising the
	// implementations-may-add-test-procedures allowance.
	"db.ping": {column: "ok", run: func(c *Context) []value.Value {
		return []value.Value{true}
	}},
}

func sortedStrings(seen map[string]bool) []value.Value {
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	out := make([]value.Value, len(names))
	for i, n := range names {
		out[i] = n
	}
	return out
}

type yieldItem struct {
	name string
	alias string
}

// execCall implements CALL: `name[(args)] [YIELD items]`. Only the
// built-in arg-free db.* procedures (plus the test-only
// db.ping) are supported; a bare name (no parentheses) is only accepted for
// a non-"db." procedure, of which there are none here, so every supported
// invocation must include "()".
func (c *Context) execCall(body string, rows []Row) ([]Row, []string, error) {
	top := lexer.Scan(body)

	yieldStart, _ := top.FindKeyword("YIELD", 0)
	callPart := body
	yieldPart := ""
	if yieldStart >= 0 {
		callPart = strings.TrimSpace(body[:yieldStart])
		yieldPart = strings.TrimSpace(body[yieldStart+len("YIELD"):])
	}
	callPart = strings.TrimSpace(callPart)

	name := callPart
	hasParens := false
	if open := strings.IndexByte(callPart, '('); open >= 0 {
		if !strings.HasSuffix(callPart, ")") {
			return nil, nil, errUnsupportedCallInvocation()
		}
		name = strings.TrimSpace(callPart[:open])
		argsText := strings.TrimSpace(callPart[open+1 : len(callPart)-1])
		hasParens = true
		if argsText != "" {
			return nil, nil, errProcArgs(name)
		}
	}

	lowerName := strings.ToLower(name)
	proc, ok := procedures[lowerName]
	if !ok {
		return nil, nil, errUnsupportedProcedure(name)
	}
	if !hasParens && strings.HasPrefix(lowerName, "db.") {
		return nil, nil, errUnsupportedCallInvocation()
	}

	var items []yieldItem
	yieldStar := false
	if yieldPart != "" {
		if strings.TrimSpace(yieldPart) == "*" {
			yieldStar = true
			if len(rows) != 1 || len(rows[0].Vars) != 0 {
				return nil, nil, errYieldStarStandaloneOnly()
			}
		} else {
			pieces := lexer.SplitTopLevel(yieldPart, ',')
			for _, p := range pieces {
				p = strings.TrimSpace(p)
				if p == "" {
					return nil, nil, errYieldRequiresItem()
				}
				itemTop := lexer.Scan(p)
				s, e := itemTop.FindKeyword("AS", 0)
				if s >= 0 {
					items = append(items, yieldItem{name: strings.TrimSpace(p[:s]), alias: strings.TrimSpace(p[e:])})
				} else {
					items = append(items, yieldItem{name: p, alias: p})
				}
			}
			if len(items) == 0 {
				return nil, nil, errYieldRequiresItem()
			}
			for _, it := range items {
				if !strings.EqualFold(it.name, proc.column) {
					return nil, nil, errDoesNotYield(it.name)
				}
			}
		}
	}

	colName := proc.column
	if len(items) == 1 {
		colName = items[0].alias
	}

	values := proc.run(c)
	var procRows []value.Map
	for _, v := range values {
		procRows = append(procRows, value.Map{colName: v})
	}

	var out []Row
	for _, r := range rows {
		for _, pr := range procRows {
			nr := r.Clone()
			for k, v := range pr {
				nr.Vars[k] = v
			}
			out = append(out, nr)
		}
	}

	cols := []string{colName}
	if yieldStar {
		cols = []string{proc.column}
	}
	return out, cols, nil
}
