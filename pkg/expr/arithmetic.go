package expr

import (
	"strings"

	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/value"
)

// tryAdditive implements step 16: additive +/-, then
// multiplicative */%, then right-associative ^. Precedence among the three
// falls naturally out of recursive Eval calls on each split's operands: an
// additive split's operands are themselves evaluated from the top, so a
// multiplicative expression nested inside one operand is handled when Eval
// reaches this same function again for that substring.
func tryAdditive(text string, env *Env) (value.Value, bool, error) {
	if pos, op, ok := findBinaryOpLast(text, "+-"); ok {
		return evalArith(text, pos, op, env)
	}
	if pos, op, ok := findBinaryOpLast(text, "*/%"); ok {
		return evalArith(text, pos, op, env)
	}
	if pos, ok := findCaretFirst(text); ok {
		return evalArith(text, pos, '^', env)
	}
	return nil, false, nil
}

func evalArith(text string, pos int, op byte, env *Env) (value.Value, bool, error) {
	left := strings.TrimSpace(text[:pos])
	right := strings.TrimSpace(text[pos+1:])
	lv, err := Eval(left, env)
	if err != nil {
		return nil, true, err
	}
	rv, err := Eval(right, env)
	if err != nil {
		return nil, true, err
	}
	v, err := applyArith(op, lv, rv)
	return v, true, err
}

func applyArith(op byte, a, b value.Value) (value.Value, error) {
	if a == nil || b == nil {
		return nil, nil
	}
	if op == '+' {
		if v, ok := tryConcat(a, b); ok {
			return v, nil
		}
	}
	af, aok := asNumber(a)
	bf, bok := asNumber(b)
	if !aok || !bok {
		if op == '+' {
			return nil, errPlusOperands()
		}
		return nil, errConvert(value.TypeName(a), "number")
	}
	ai, aIsInt := a.(int64)
	bi, bIsInt := b.(int64)
	bothInt := aIsInt && bIsInt

	switch op {
	case '+':
		if bothInt {
			return ai + bi, nil
		}
		return af + bf, nil
	case '-':
		if bothInt {
			return ai - bi, nil
		}
		return af - bf, nil
	case '*':
		if bothInt {
			return ai * bi, nil
		}
		return af * bf, nil
	case '/':
		if bothInt {
			if bi == 0 {
				return nil, errDivisionByZero()
			}
		}
		if bf == 0 {
			return af / bf, nil
		}
		return af / bf, nil
	case '%':
		if bothInt {
			if bi == 0 {
				return nil, errModuloByZero()
			}
			return ai % bi, nil
		}
		if bf == 0 {
			return nil, errModuloByZero()
		}
		return modFloat(af, bf), nil
	case '^':
		result := powFloat(af, bf)
		if bothInt && bi >= 0 && result == float64(int64(result)) {
			return int64(result), nil
		}
		return result, nil
	}
	return nil, errPlusOperands()
}

func modFloat(a, b float64) float64 {
	for a >= b {
		a -= b
	}
	return a
}

func powFloat(a, b float64) float64 {
	result := 1.0
	neg := b < 0
	n := b
	if neg {
		n = -n
	}
	for i := 0; i < int(n); i++ {
		result *= a
	}
	if neg {
		if result == 0 {
			return 0
		}
		return 1 / result
	}
	return result
}

func tryConcat(a, b value.Value) (value.Value, bool) {
	as, aIsStr := a.(string)
	bs, bIsStr := b.(string)
	if aIsStr && bIsStr {
		return as + bs, true
	}
	al, aIsList := a.(value.List)
	bl, bIsList := b.(value.List)
	if aIsList && bIsList {
		out := make(value.List, 0, len(al)+len(bl))
		out = append(out, al...)
		out = append(out, bl...)
		return out, true
	}
	if aIsList {
		out := make(value.List, 0, len(al)+1)
		out = append(out, al...)
		out = append(out, b)
		return out, true
	}
	if bIsList {
		out := make(value.List, 0, len(bl)+1)
		out = append(out, a)
		out = append(out, bl...)
		return out, true
	}
	return nil, false
}

func asNumber(v value.Value) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// findBinaryOpLast finds the last top-level occurrence of any byte in ops
// that is a genuine binary operator (not a leading or post-operator unary
// sign, and not part of a relationship arrow).
func findBinaryOpLast(text string, ops string) (pos int, op byte, ok bool) {
	top := lexer.Scan(text)
	pos = -1
	for i := 0; i < len(text); i++ {
		if !top.IsTopLevel(i) || !strings.ContainsRune(ops, rune(text[i])) {
			continue
		}
		if !isBinaryPosition(text, i) {
			continue
		}
		pos = i
		op = text[i]
	}
	return pos, op, pos >= 0
}

func findCaretFirst(text string) (int, bool) {
	top := lexer.Scan(text)
	for i := 0; i < len(text); i++ {
		if text[i] == '^' && top.IsTopLevel(i) {
			return i, true
		}
	}
	return -1, false
}

func isBinaryPosition(text string, i int) bool {
	if i == 0 {
		return false
	}
	j := i - 1
	for j >= 0 && text[j] == ' ' {
		j--
	}
	if j < 0 {
		return false
	}
	c := text[j]
	if (text[i] == '-' || text[i] == '+') && j > 0 {
		// exponent form: "1e-5" / "1E+5"
		if (c == 'e' || c == 'E') && isDigitByte(text[j-1]) {
			return false
		}
	}
	if text[i] == '>' && c == '-' {
		return false // "->" arrow
	}
	return isWordByte(c) || c == ')' || c == ']' || c == '\'' || c == '"' || c == '`'
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }

// tryUnaryMinus implements step 17.
func tryUnaryMinus(text string, env *Env) (value.Value, bool, error) {
	if !strings.HasPrefix(text, "-") {
		return nil, false, nil
	}
	v, err := Eval(text[1:], env)
	if err != nil {
		return nil, true, err
	}
	if v == nil {
		return nil, true, nil
	}
	switch n := v.(type) {
	case int64:
		return -n, true, nil
	case float64:
		return -n, true, nil
	}
	return nil, true, errConvert(value.TypeName(v), "number")
}
