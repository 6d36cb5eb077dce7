package expr

import (
	"strings"

	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/value"
)

// tryIndexOrSlice implements step 18: "target[i]" or
// "target[lo..hi]" (negative indices relative to length; out-of-range index
// returns null).
func tryIndexOrSlice(text string, env *Env) (value.Value, bool, error) {
	if !strings.HasSuffix(text, "]") {
		return nil, false, nil
	}
	mask := lexer.Mask(text)
	open := -1
	for i := len(text) - 1; i >= 0; i-- {
		if text[i] == '[' && !mask[i] {
			open = i
			break
		}
	}
	if open <= 0 {
		return nil, false, nil
	}
	close := lexer.MatchBracket(text, mask, open)
	if close != len(text)-1 {
		return nil, false, nil
	}
	target := strings.TrimSpace(text[:open])
	if target == "" {
		return nil, false, nil
	}
	inner := strings.TrimSpace(text[open+1 : close])

	tv, err := Eval(target, env)
	if err != nil {
		return nil, true, err
	}
	if tv == nil {
		return nil, true, nil
	}

	top := lexer.Scan(inner)
	if dot := findTopLevelDotDot(inner, top); dot >= 0 {
		loText := strings.TrimSpace(inner[:dot])
		hiText := strings.TrimSpace(inner[dot+2:])
		v, err := evalSlice(tv, loText, hiText, env)
		return v, true, err
	}

	idxVal, err := Eval(inner, env)
	if err != nil {
		return nil, true, err
	}
	v, err := evalIndex(tv, idxVal)
	return v, true, err
}

func evalIndex(target, idxVal value.Value) (value.Value, error) {
	if idxVal == nil {
		return nil, nil
	}
	idx, ok := idxVal.(int64)
	if !ok {
		return nil, errConvert(value.TypeName(idxVal), "integer")
	}
	switch t := target.(type) {
	case value.List:
		i := normalizeIndex(idx, len(t))
		if i < 0 || i >= len(t) {
			return nil, nil
		}
		return t[i], nil
	case string:
		runes := []rune(t)
		i := normalizeIndex(idx, len(runes))
		if i < 0 || i >= len(runes) {
			return nil, nil
		}
		return string(runes[i]), nil
	case value.Map:
		return nil, errConvert("map", "indexable by integer")
	}
	return nil, errConvert(value.TypeName(target), "indexable")
}

func evalSlice(target value.Value, loText, hiText string, env *Env) (value.Value, error) {
	list, ok := target.(value.List)
	if !ok {
		if s, ok := target.(string); ok {
			lo, hi, err := resolveSliceBounds(len(s), loText, hiText, env)
			if err != nil {
				return nil, err
			}
			return s[lo:hi], nil
		}
		return nil, errConvert(value.TypeName(target), "list")
	}
	lo, hi, err := resolveSliceBounds(len(list), loText, hiText, env)
	if err != nil {
		return nil, err
	}
	return append(value.List{}, list[lo:hi]...), nil
}

func resolveSliceBounds(n int, loText, hiText string, env *Env) (lo, hi int, err error) {
	lo, hi = 0, n
	if loText != "" {
		v, err := Eval(loText, env)
		if err != nil {
			return 0, 0, err
		}
		if i, ok := v.(int64); ok {
			lo = normalizeIndex(i, n)
		}
	}
	if hiText != "" {
		v, err := Eval(hiText, env)
		if err != nil {
			return 0, 0, err
		}
		if i, ok := v.(int64); ok {
			hi = normalizeIndex(i, n)
		}
	}
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi, nil
}

func findTopLevelDotDot(s string, top *lexer.TopLevel) int {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '.' && s[i+1] == '.' && top.IsTopLevel(i) {
			return i
		}
	}
	return -1
}

func normalizeIndex(idx int64, n int) int {
	i := int(idx)
	if i < 0 {
		i += n
	}
	return i
}
