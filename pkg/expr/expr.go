// Package expr implements the Cypher expression parser/evaluator: a
// recursive-descent evaluator over substrings of the original body text,
// using the shared top-level scanner (pkg/lexer) to find the topmost
// operator at each precedence level rather than building an intermediate
// token stream.
//
// Each precedence level re-scans the clause body text directly instead of
// working from a pre-built token stream — this "split at topmost operator"
// structure carries over cleanly to a Pratt-style typed evaluator, and is
// driven here off pkg/lexer's reusable Scanner rather than ad hoc regexes.
package expr

import (
	"strings"

	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/value"
)

// PatternMatcher lets the evaluator hand off pattern predicates and EXISTS
// subqueries to pkg/engine, which owns both the store and the clause
// pipeline — without expr importing engine (engine imports expr instead).
type PatternMatcher interface {
	// MatchPatternExists reports whether at least one extension of row
	// matches the pattern chain in patternText.
	MatchPatternExists(patternText string, row value.Map) (bool, error)
	// RunExistsSubquery runs the inner clause sequence in body, seeded with
	// row, and reports whether it produced any output row.
	RunExistsSubquery(body string, row value.Map) (bool, error)
	// ExpandPattern returns one extended row per match of the pattern chain
	// in patternText against row, for pattern comprehension.
	ExpandPattern(patternText string, row value.Map) ([]value.Map, error)
}

// Env carries everything one Eval call needs: the current row's bindings,
// query parameters, and (optionally) the pattern/subquery callback. Env is
// nil-Matcher-safe: contexts that never need pattern predicates (SKIP/LIMIT
// expressions) can omit it.
type Env struct {
	Row value.Map
	Params value.Map
	Matcher PatternMatcher
}

// Eval evaluates one expression string against env
// 21-step precedence order. First matching rule wins.
func Eval(text string, env *Env) (value.Value, error) {
	text = lexer.TrimParens(text)
	if text == "" {
		return nil, errEmptyExpression()
	}

	if v, ok, err := tryParameter(text, env); ok || err != nil {
		return v, err
	}
	if v, ok := tryKeywordLiteral(text); ok {
		return v, nil
	}
	if v, ok := tryStringLiteral(text); ok {
		return v, nil
	}
	if v, ok := tryNumberLiteral(text); ok {
		return v, nil
	}
	if v, ok, err := tryCase(text, env); ok || err != nil {
		return v, err
	}
	if v, ok, err := tryExists(text, env); ok || err != nil {
		return v, err
	}
	if v, ok, err := tryLogical(text, env); ok || err != nil {
		return v, err
	}
	if v, ok, err := tryNot(text, env); ok || err != nil {
		return v, err
	}
	if v, ok, err := tryList(text, env); ok || err != nil {
		return v, err
	}
	if v, ok, err := tryMap(text, env); ok || err != nil {
		return v, err
	}
	if v, ok, err := tryComparisonChain(text, env); ok || err != nil {
		return v, err
	}
	if v, ok, err := tryStringPredicate(text, env); ok || err != nil {
		return v, err
	}
	if v, ok, err := tryIsNull(text, env); ok || err != nil {
		return v, err
	}
	if v, ok, err := tryIn(text, env); ok || err != nil {
		return v, err
	}
	if v, ok, err := tryLabelPredicate(text, env); ok || err != nil {
		return v, err
	}
	if v, ok, err := tryPatternPredicate(text, env); ok || err != nil {
		return v, err
	}
	if v, ok, err := tryAdditive(text, env); ok || err != nil {
		return v, err
	}
	if v, ok, err := tryUnaryMinus(text, env); ok || err != nil {
		return v, err
	}
	if v, ok, err := tryIndexOrSlice(text, env); ok || err != nil {
		return v, err
	}
	if v, ok, err := tryFunctionCall(text, env); ok || err != nil {
		return v, err
	}
	if v, ok, err := tryPropertyAccess(text, env); ok || err != nil {
		return v, err
	}
	return tryIdentifier(text, env)
}

// lookup resolves a bare or backtick-quoted identifier against the row.
func lookup(env *Env, name string) (value.Value, bool) {
	if env == nil || env.Row == nil {
		return nil, false
	}
	v, ok := env.Row[name]
	return v, ok
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (i > 0 && r >= '0' && r <= '9') {
			continue
		}
		return false
	}
	return true
}

func stripBackticks(s string) string {
	if len(s) >= 2 && s[0] == '`' && s[len(s)-1] == '`' {
		return s[1 : len(s)-1]
	}
	return s
}

func tryIdentifier(text string, env *Env) (value.Value, error) {
	name := stripBackticks(strings.TrimSpace(text))
	if !isIdentifier(name) && !isIdentifier(strings.TrimSpace(text)) {
		return nil, errUnparsable(text)
	}
	v, ok := lookup(env, name)
	if !ok {
		return nil, errUnboundVariable(name)
	}
	return v, nil
}
