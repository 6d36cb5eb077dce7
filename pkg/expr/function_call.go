package expr

import (
	"strings"

	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/value"
)

var listPredicates = map[string]bool{"any": true, "all": true, "none": true, "single": true}

// tryFunctionCall implements step 19: "name(args)" (dotted
// names permitted, e.g. datetime.fromEpoch).
func tryFunctionCall(text string, env *Env) (value.Value, bool, error) {
	if !strings.HasSuffix(text, ")") {
		return nil, false, nil
	}
	open := strings.IndexByte(text, '(')
	if open < 0 {
		return nil, false, nil
	}
	mask := lexer.Mask(text)
	if mask[open] {
		return nil, false, nil
	}
	close := lexer.MatchBracket(text, mask, open)
	if close != len(text)-1 {
		return nil, false, nil
	}
	name := strings.TrimSpace(text[:open])
	if !isDottedName(name) {
		return nil, false, nil
	}
	argsText := strings.TrimSpace(text[open+1 : close])
	lowerName := strings.ToLower(name)

	if listPredicates[lowerName] {
		v, err := evalListPredicate(lowerName, argsText, env)
		return v, true, err
	}

	if lowerName == "count" && argsText == "*" {
		return nil, true, errUnsupportedFunction("count(*) outside projection")
	}

	var args []value.Value
	if argsText != "" {
		for _, a := range lexer.SplitTopLevel(argsText, ',') {
			piece := strings.TrimSpace(a)
			if upper := strings.ToUpper(piece); strings.HasPrefix(upper, "DISTINCT ") {
				piece = strings.TrimSpace(piece[len("DISTINCT "):])
			}
			v, err := Eval(piece, env)
			if err != nil {
				return nil, true, err
			}
			args = append(args, v)
		}
	}

	v, err := CallFunction(lowerName, args)
	return v, true, err
}

func isDottedName(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if !isIdentifier(part) {
			return false
		}
	}
	return true
}

// evalListPredicate implements any/all/none/single("x IN list WHERE pred"),
// three-valued function table.
func evalListPredicate(name, argsText string, env *Env) (value.Value, error) {
	top := lexer.Scan(argsText)
	inS, inE := top.FindKeyword("IN", 0)
	if inS < 0 {
		return nil, errUnparsable(argsText)
	}
	varName := strings.TrimSpace(argsText[:inS])
	rest := argsText[inE:]
	restTop := lexer.Scan(rest)
	wS, wE := restTop.FindKeyword("WHERE", 0)
	listText := rest
	whereText := ""
	hasWhere := wS >= 0
	if hasWhere {
		listText = rest[:wS]
		whereText = strings.TrimSpace(rest[wE:])
	}
	listVal, err := Eval(strings.TrimSpace(listText), env)
	if err != nil {
		return nil, err
	}
	if listVal == nil {
		return nil, nil
	}
	list, ok := listVal.(value.List)
	if !ok {
		return nil, errConvert(value.TypeName(listVal), "list")
	}

	matched, total, sawNull := 0, 0, false
	for _, item := range list {
		total++
		childRow := cloneRow(env)
		childRow[varName] = item
		childEnv := &Env{Row: childRow, Params: envParams(env), Matcher: envMatcher(env)}
		if !hasWhere {
			matched++
			continue
		}
		t, ok, err := evalTruth(whereText, childEnv)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errUnparsable(whereText)
		}
		if t == nil {
			sawNull = true
			continue
		}
		if *t {
			matched++
		}
	}

	switch name {
	case "any":
		if matched > 0 {
			return true, nil
		}
		if sawNull {
			return nil, nil
		}
		return false, nil
	case "all":
		if matched == total {
			if sawNull {
				return nil, nil
			}
			return true, nil
		}
		return false, nil
	case "none":
		if matched > 0 {
			return false, nil
		}
		if sawNull {
			return nil, nil
		}
		return true, nil
	case "single":
		return matched == 1, nil
	}
	return nil, errUnsupportedFunction(name)
}
