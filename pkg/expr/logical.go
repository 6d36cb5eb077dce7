package expr

import (
	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/value"
)

// tryLogical implements step 6: split by OR, then XOR, then AND
// at the topmost boundary, each a binary reduction under three-valued logic.
func tryLogical(text string, env *Env) (value.Value, bool, error) {
	if parts, ok := splitKeyword(text, "OR"); ok {
		return reduceLogical(parts, value.Or, env)
	}
	if parts, ok := splitKeyword(text, "XOR"); ok {
		return reduceLogical(parts, value.Xor, env)
	}
	if parts, ok := splitKeyword(text, "AND"); ok {
		return reduceLogical(parts, value.And, env)
	}
	return nil, false, nil
}

// splitKeyword splits text on every top-level occurrence of keyword,
// requiring at least 2 pieces (otherwise the keyword never occurs at top
// level and this isn't the right precedence level).
func splitKeyword(text, keyword string) ([]string, bool) {
	top := lexer.Scan(text)
	var parts []string
	pos := 0
	for {
		s, e := top.FindKeyword(keyword, pos)
		if s < 0 {
			break
		}
		parts = append(parts, text[pos:s])
		pos = e
	}
	if len(parts) == 0 {
		return nil, false
	}
	parts = append(parts, text[pos:])
	return parts, true
}

func reduceLogical(parts []string, op func(a, b value.Truth) value.Truth, env *Env) (value.Value, bool, error) {
	acc, ok, err := evalTruth(parts[0], env)
	if err != nil {
		return nil, true, err
	}
	if !ok {
		return nil, true, errTypeMismatchBool(parts[0])
	}
	for _, p := range parts[1:] {
		t, ok, err := evalTruth(p, env)
		if err != nil {
			return nil, true, err
		}
		if !ok {
			return nil, true, errTypeMismatchBool(p)
		}
		acc = op(acc, t)
	}
	if acc == nil {
		return nil, true, nil
	}
	return *acc, true, nil
}

func evalTruth(text string, env *Env) (value.Truth, bool, error) {
	v, err := Eval(text, env)
	if err != nil {
		return nil, false, err
	}
	if v == nil {
		return value.Null, true, nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil, false, nil
	}
	return value.T(b), true, nil
}

func errTypeMismatchBool(text string) error {
	return errUnparsable(text)
}
