package expr

import (
	"strings"

	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/value"
)

// tryLabelPredicate implements step 14: "expr:Label[:Label...]"
// on a node (must contain all labels) or relationship (single type match).
func tryLabelPredicate(text string, env *Env) (value.Value, bool, error) {
	top := lexer.Scan(text)
	colon := -1
	for i := 0; i < len(text); i++ {
		if text[i] == ':' && top.IsTopLevel(i) {
			colon = i
			break
		}
	}
	if colon < 0 {
		return nil, false, nil
	}
	target := strings.TrimSpace(text[:colon])
	if target == "" || !isIdentifier(target) {
		return nil, false, nil
	}
	rest := text[colon:]
	labelParts := strings.Split(strings.TrimPrefix(rest, ":"), ":")
	var labels []string
	for _, l := range labelParts {
		l = strings.TrimSpace(l)
		if l == "" || !isIdentifier(l) {
			return nil, false, nil
		}
		labels = append(labels, l)
	}

	v, err := Eval(target, env)
	if err != nil {
		return nil, true, err
	}
	switch tv := v.(type) {
	case nil:
		return nil, true, nil
	case value.Node:
		for _, want := range labels {
			if !containsString(tv.Labels, want) {
				return false, true, nil
			}
		}
		return true, true, nil
	case value.Relationship:
		return len(labels) == 1 && labels[0] == tv.Type, true, nil
	}
	return nil, false, nil
}

func containsString(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}
