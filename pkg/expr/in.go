package expr

import (
	"strings"

	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/value"
)

// tryIn implements step 13: "expr IN list". Null short-circuits
// to null; found → true; not found but list contains null → null; else
// false.
func tryIn(text string, env *Env) (value.Value, bool, error) {
	top := lexer.Scan(text)
	s, e := top.FindKeyword("IN", 0)
	if s < 0 {
		return nil, false, nil
	}
	left := strings.TrimSpace(text[:s])
	right := strings.TrimSpace(text[e:])
	if left == "" {
		return nil, false, nil
	}

	lv, err := Eval(left, env)
	if err != nil {
		return nil, true, err
	}
	rv, err := Eval(right, env)
	if err != nil {
		return nil, true, err
	}
	if lv == nil {
		return nil, true, nil
	}
	list, ok := rv.(value.List)
	if !ok {
		if rv == nil {
			return nil, true, nil
		}
		return nil, true, errConvert(value.TypeName(rv), "list")
	}
	sawNull := false
	for _, item := range list {
		if item == nil {
			sawNull = true
			continue
		}
		if value.Equal(lv, item) {
			return true, true, nil
		}
	}
	if sawNull {
		return nil, true, nil
	}
	return false, true, nil
}
