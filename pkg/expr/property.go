package expr

import (
	"strings"

	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/temporal"
	"github.com/orneryd/cypherlite/pkg/value"
)

// tryPropertyAccess implements step 20: "target.prop" (last
// top-level '.'; on a map returns null for missing key; on temporal values
// returns the named component).
func tryPropertyAccess(text string, env *Env) (value.Value, bool, error) {
	top := lexer.Scan(text)
	dot := -1
	for i := len(text) - 1; i >= 0; i-- {
		if text[i] == '.' && top.IsTopLevel(i) {
			if i+1 < len(text) && text[i+1] == '.' {
				continue // ".." range, not property access
			}
			if i > 0 && text[i-1] == '.' {
				continue
			}
			dot = i
			break
		}
	}
	if dot <= 0 || dot == len(text)-1 {
		return nil, false, nil
	}
	target := strings.TrimSpace(text[:dot])
	prop := strings.Trim(strings.TrimSpace(text[dot+1:]), "`")
	if !isIdentifier(prop) {
		return nil, false, nil
	}

	tv, err := Eval(target, env)
	if err != nil {
		return nil, true, err
	}
	if tv == nil {
		return nil, true, nil
	}
	switch t := tv.(type) {
	case value.Map:
		v, ok := t[prop]
		if !ok {
			return nil, true, nil
		}
		return v, true, nil
	case value.Node:
		v, ok := t.Properties[prop]
		if !ok {
			return nil, true, nil
		}
		return v, true, nil
	case value.Relationship:
		v, ok := t.Properties[prop]
		if !ok {
			return nil, true, nil
		}
		return v, true, nil
	case temporal.Value:
		v, ok := t.Component(prop)
		if !ok {
			return nil, true, nil
		}
		return v, true, nil
	}
	return nil, true, errConvert(value.TypeName(tv), "map, node, relationship, or temporal value")
}
