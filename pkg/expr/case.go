package expr

import (
	"strings"

	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/value"
)

// tryCase implements step 4: simple or searched CASE, with a
// balanced END at top level (CASE may nest inside its own WHEN/THEN/ELSE
// arms, so END must be matched counting nested CASE occurrences).
func tryCase(text string, env *Env) (value.Value, bool, error) {
	top := lexer.Scan(text)
	s, e := top.FindKeyword("CASE", 0)
	if s != 0 {
		return nil, false, nil
	}

	endPos := findMatchingEnd(text, top, e)
	if endPos < 0 {
		return nil, true, errUnterminated("CASE expression")
	}
	if strings.TrimSpace(text[endPos+3:]) != "" {
		return nil, false, nil // trailing text after END: not a bare CASE expression
	}

	body := text[e:endPos]
	return evalCaseBody(body, env)
}

// findMatchingEnd scans forward from `from` counting nested CASE/END
// keyword pairs and returns the index of the END that closes the opening
// CASE, or -1 if unbalanced.
func findMatchingEnd(text string, top *lexer.TopLevel, from int) int {
	depth := 1
	pos := from
	for {
		caseS, caseE := top.FindKeyword("CASE", pos)
		endS, endE := top.FindKeyword("END", pos)
		if endS < 0 {
			return -1
		}
		if caseS >= 0 && caseS < endS {
			depth++
			pos = caseE
			continue
		}
		depth--
		pos = endE
		if depth == 0 {
			return endS
		}
	}
}

func evalCaseBody(body string, env *Env) (value.Value, bool, error) {
	top := lexer.Scan(body)

	var subject string
	hasSubject := false
	if s, _ := top.FindKeyword("WHEN", 0); s > 0 {
		subject = strings.TrimSpace(body[:s])
		hasSubject = true
	}

	type arm struct{ when, then string }
	var arms []arm
	var elseExpr string
	hasElse := false

	pos := 0
	if hasSubject {
		pos, _ = top.FindKeyword("WHEN", 0)
	}
	for {
		whenS, whenE := top.FindKeyword("WHEN", pos)
		if whenS < 0 {
			elseS, elseE := top.FindKeyword("ELSE", pos)
			if elseS >= 0 {
				elseExpr = strings.TrimSpace(body[elseE:])
				hasElse = true
			}
			break
		}
		thenS, thenE := top.FindKeyword("THEN", whenE)
		if thenS < 0 {
			return nil, true, errUnparsable(body)
		}
		nextWhenS, _ := top.FindKeyword("WHEN", thenE)
		elseS, elseE := top.FindKeyword("ELSE", thenE)
		armEnd := len(body)
		if nextWhenS >= 0 {
			armEnd = nextWhenS
		}
		if elseS >= 0 && elseS < armEnd {
			armEnd = elseS
		}
		arms = append(arms, arm{when: strings.TrimSpace(body[whenE:thenS]), then: strings.TrimSpace(body[thenE:armEnd])})
		if elseS >= 0 && (nextWhenS < 0 || elseS < nextWhenS) {
			elseExpr = strings.TrimSpace(body[elseE:])
			hasElse = true
			break
		}
		if nextWhenS < 0 {
			break
		}
		pos = nextWhenS
	}

	var subjectVal value.Value
	if hasSubject {
		v, err := Eval(subject, env)
		if err != nil {
			return nil, true, err
		}
		subjectVal = v
	}

	for _, a := range arms {
		if hasSubject {
			whenVal, err := Eval(a.when, env)
			if err != nil {
				return nil, true, err
			}
			if value.Equal(subjectVal, whenVal) {
				v, err := Eval(a.then, env)
				return v, true, err
			}
			continue
		}
		t, ok, err := evalTruth(a.when, env)
		if err != nil {
			return nil, true, err
		}
		if ok && t != nil && *t {
			v, err := Eval(a.then, env)
			return v, true, err
		}
	}
	if hasElse {
		v, err := Eval(elseExpr, env)
		return v, true, err
	}
	return nil, true, nil
}
