package expr

import (
	"strings"

	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/value"
)

// tryList implements step 8: a bracketed list literal, a list
// comprehension ("x IN list [WHERE p] | projection"), or a pattern
// comprehension ("[pattern [WHERE p] | projection]").
func tryList(text string, env *Env) (value.Value, bool, error) {
	if len(text) < 2 || text[0] != '[' || text[len(text)-1] != ']' {
		return nil, false, nil
	}
	mask := lexer.Mask(text)
	close := lexer.MatchBracket(text, mask, 0)
	if close != len(text)-1 {
		return nil, false, nil
	}
	inner := strings.TrimSpace(text[1 : len(text)-1])
	if inner == "" {
		return value.List{}, true, nil
	}

	top := lexer.Scan(inner)
	pipe := top.FindRune('|', 0)

	if inS, _ := top.FindKeyword("IN", 0); inS > 0 && looksLikeBoundVar(inner[:inS]) {
		return evalListComprehension(inner, top, pipe, env)
	}

	if pipe >= 0 && isPatternComprehension(inner[:pipe]) {
		return evalPatternComprehension(inner, pipe, env)
	}

	parts := lexer.SplitTopLevel(inner, ',')
	out := make(value.List, 0, len(parts))
	for _, p := range parts {
		v, err := Eval(p, env)
		if err != nil {
			return nil, true, err
		}
		out = append(out, v)
	}
	return out, true, nil
}

func looksLikeBoundVar(s string) bool {
	return isIdentifier(strings.TrimSpace(s))
}

// isPatternComprehension implements feature-probe shape: the
// left side of a top-level "|" contains "(" and "-" and no "IN" keyword.
func isPatternComprehension(left string) bool {
	top := lexer.Scan(left)
	if s, _ := top.FindKeyword("IN", 0); s >= 0 {
		return false
	}
	return strings.Contains(left, "(") && strings.Contains(left, "-")
}

func evalListComprehension(inner string, top *lexer.TopLevel, pipe int, env *Env) (value.Value, bool, error) {
	inS, inE := top.FindKeyword("IN", 0)
	varName := strings.TrimSpace(inner[:inS])

	rest := inner[inE:]
	restTop := lexer.Scan(rest)
	wS, wE := restTop.FindKeyword("WHERE", 0)
	localPipe := -1
	if pipe >= 0 {
		localPipe = pipe - inE
	}

	listText := rest
	whereText := ""
	hasWhere := wS >= 0
	projText := ""
	hasProj := localPipe >= 0

	end := len(rest)
	if hasWhere && wS < end {
		end = wS
	}
	if hasProj && localPipe < end {
		end = localPipe
	}
	listText = strings.TrimSpace(rest[:end])

	if hasWhere {
		whereEnd := len(rest)
		if hasProj {
			whereEnd = localPipe
		}
		whereText = strings.TrimSpace(rest[wE:whereEnd])
	}
	if hasProj {
		projText = strings.TrimSpace(rest[localPipe+1:])
	}

	listVal, err := Eval(listText, env)
	if err != nil {
		return nil, true, err
	}
	if listVal == nil {
		return nil, true, nil
	}
	list, ok := listVal.(value.List)
	if !ok {
		return nil, true, errConvert(value.TypeName(listVal), "list")
	}

	out := value.List{}
	for _, item := range list {
		childRow := cloneRow(env)
		childRow[varName] = item
		childEnv := &Env{Row: childRow, Params: envParams(env), Matcher: envMatcher(env)}

		if hasWhere {
			t, ok, err := evalTruth(whereText, childEnv)
			if err != nil {
				return nil, true, err
			}
			if !ok || t == nil || !*t {
				continue
			}
		}
		if hasProj {
			v, err := Eval(projText, childEnv)
			if err != nil {
				return nil, true, err
			}
			out = append(out, v)
		} else {
			out = append(out, item)
		}
	}
	return out, true, nil
}

func evalPatternComprehension(inner string, pipe int, env *Env) (value.Value, bool, error) {
	left := inner[:pipe]
	top := lexer.Scan(left)
	wS, wE := top.FindKeyword("WHERE", 0)
	patternText := left
	whereText := ""
	hasWhere := wS >= 0
	if hasWhere {
		patternText = strings.TrimSpace(left[:wS])
		whereText = strings.TrimSpace(left[wE:])
	}
	projText := strings.TrimSpace(inner[pipe+1:])

	if env == nil || env.Matcher == nil {
		return nil, true, errUnparsable(inner)
	}
	rows, err := env.Matcher.ExpandPattern(patternText, env.Row)
	if err != nil {
		return nil, true, err
	}

	out := value.List{}
	for _, r := range rows {
		childEnv := &Env{Row: r, Params: envParams(env), Matcher: env.Matcher}
		if hasWhere {
			t, ok, err := evalTruth(whereText, childEnv)
			if err != nil {
				return nil, true, err
			}
			if !ok || t == nil || !*t {
				continue
			}
		}
		v, err := Eval(projText, childEnv)
		if err != nil {
			return nil, true, err
		}
		out = append(out, v)
	}
	return out, true, nil
}

// tryMap implements step 9: a map literal with arbitrary
// expression values (unlike pkg/pattern's literal-only property maps).
func tryMap(text string, env *Env) (value.Value, bool, error) {
	if len(text) < 2 || text[0] != '{' || text[len(text)-1] != '}' {
		return nil, false, nil
	}
	mask := lexer.Mask(text)
	close := lexer.MatchBracket(text, mask, 0)
	if close != len(text)-1 {
		return nil, false, nil
	}
	inner := strings.TrimSpace(text[1 : len(text)-1])
	out := value.Map{}
	if inner == "" {
		return out, true, nil
	}
	for _, pair := range lexer.SplitTopLevel(inner, ',') {
		colon := lexer.Scan(pair).FindRune(':', 0)
		if colon < 0 {
			return nil, true, errInvalidMapEntry()
		}
		key := strings.Trim(strings.TrimSpace(pair[:colon]), "`")
		if key == "" {
			return nil, true, errUnsupportedMapKey()
		}
		v, err := Eval(pair[colon+1:], env)
		if err != nil {
			return nil, true, err
		}
		out[key] = v
	}
	return out, true, nil
}

func cloneRow(env *Env) value.Map {
	out := value.Map{}
	if env != nil {
		for k, v := range env.Row {
			out[k] = v
		}
	}
	return out
}

func envParams(env *Env) value.Map {
	if env == nil {
		return nil
	}
	return env.Params
}

func envMatcher(env *Env) PatternMatcher {
	if env == nil {
		return nil
	}
	return env.Matcher
}
