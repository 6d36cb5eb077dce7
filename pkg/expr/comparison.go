package expr

import (
	"strings"

	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/value"
)

type compOp struct {
	text string
	pos int
	end int
}

// tryComparisonChain implements step 10: collect all top-level
// =, <>/!=, <, <=, >, >= and evaluate left-to-right in chained form
// ("a < b < c" ⇔ "a<b AND b<c"); any null operand yields null.
func tryComparisonChain(text string, env *Env) (value.Value, bool, error) {
	ops := findComparisonOps(text)
	if len(ops) == 0 {
		return nil, false, nil
	}

	operands := make([]string, 0, len(ops)+1)
	last := 0
	for _, op := range ops {
		operands = append(operands, text[last:op.pos])
		last = op.end
	}
	operands = append(operands, text[last:])

	vals := make([]value.Value, len(operands))
	for i, o := range operands {
		v, err := Eval(o, env)
		if err != nil {
			return nil, true, err
		}
		vals[i] = v
	}

	result := value.T(true)
	for i, op := range ops {
		a, b := vals[i], vals[i+1]
		if a == nil || b == nil {
			result = value.And(result, value.Null)
			continue
		}
		var ok bool
		var eq bool
		var cmp int
		switch op.text {
		case "=":
			ok, eq = true, value.Equal(a, b)
		case "<>", "!=":
			ok, eq = true, !value.Equal(a, b)
		default:
			cmp, ok = value.OrderedCompare(a, b)
		}
		if !ok {
			result = value.And(result, value.Null)
			continue
		}
		var cur bool
		switch op.text {
		case "=":
			cur = eq
		case "<>", "!=":
			cur = eq
		case "<":
			cur = cmp < 0
		case "<=":
			cur = cmp <= 0
		case ">":
			cur = cmp > 0
		case ">=":
			cur = cmp >= 0
		}
		result = value.And(result, value.T(cur))
	}
	if result == nil {
		return nil, true, nil
	}
	return *result, true, nil
}

// findComparisonOps scans text for top-level comparison operators, skipping
// occurrences that are part of a relationship arrow ("->"/"<-").
func findComparisonOps(text string) []compOp {
	top := lexer.Scan(text)
	var ops []compOp
	for i := 0; i < len(text); i++ {
		if !top.IsTopLevel(i) {
			continue
		}
		c := text[i]
		switch c {
		case '<':
			if i+1 < len(text) && text[i+1] == '-' {
				continue // "<-" arrow
			}
			if i+1 < len(text) && text[i+1] == '=' {
				ops = append(ops, compOp{"<=", i, i + 2})
				i++
				continue
			}
			if i+1 < len(text) && text[i+1] == '>' {
				ops = append(ops, compOp{"<>", i, i + 2})
				i++
				continue
			}
			ops = append(ops, compOp{"<", i, i + 1})
		case '>':
			if i > 0 && text[i-1] == '-' {
				continue // "->" arrow, already consumed with the '-'
			}
			if i+1 < len(text) && text[i+1] == '=' {
				ops = append(ops, compOp{">=", i, i + 2})
				i++
				continue
			}
			ops = append(ops, compOp{">", i, i + 1})
		case '=':
			if i > 0 && (text[i-1] == '<' || text[i-1] == '>' || text[i-1] == '!') {
				continue // consumed as part of <=, >=, !=
			}
			ops = append(ops, compOp{"=", i, i + 1})
		case '!':
			if i+1 < len(text) && text[i+1] == '=' {
				ops = append(ops, compOp{"!=", i, i + 2})
				i++
			}
		}
	}
	return ops
}

// tryStringPredicate implements step 11: STARTS WITH, ENDS
// WITH, CONTAINS — null-propagating, non-string operands yield null.
func tryStringPredicate(text string, env *Env) (value.Value, bool, error) {
	top := lexer.Scan(text)
	for _, kw := range []string{"STARTS WITH", "ENDS WITH", "CONTAINS"} {
		s, e := top.FindKeyword(kw, 0)
		if s < 0 {
			continue
		}
		left := strings.TrimSpace(text[:s])
		right := strings.TrimSpace(text[e:])
		lv, err := Eval(left, env)
		if err != nil {
			return nil, true, err
		}
		rv, err := Eval(right, env)
		if err != nil {
			return nil, true, err
		}
		if lv == nil || rv == nil {
			return nil, true, nil
		}
		ls, lok := lv.(string)
		rs, rok := rv.(string)
		if !lok || !rok {
			return nil, true, nil
		}
		switch kw {
		case "STARTS WITH":
			return strings.HasPrefix(ls, rs), true, nil
		case "ENDS WITH":
			return strings.HasSuffix(ls, rs), true, nil
		case "CONTAINS":
			return strings.Contains(ls, rs), true, nil
		}
	}
	return nil, false, nil
}

// tryIsNull implements step 12: suffix IS NULL / IS NOT NULL.
func tryIsNull(text string, env *Env) (value.Value, bool, error) {
	top := lexer.Scan(text)
	if s, e := top.FindKeyword("IS NOT NULL", 0); s >= 0 && strings.TrimSpace(text[e:]) == "" {
		v, err := Eval(text[:s], env)
		if err != nil {
			return nil, true, err
		}
		return v != nil, true, nil
	}
	if s, e := top.FindKeyword("IS NULL", 0); s >= 0 && strings.TrimSpace(text[e:]) == "" {
		v, err := Eval(text[:s], env)
		if err != nil {
			return nil, true, err
		}
		return v == nil, true, nil
	}
	return nil, false, nil
}
