package cypherlite

import (
	"regexp"
	"strings"

	"github.com/orneryd/cypherlite/pkg/diag"
	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/source"
)

// Feature names strict dialect gates behind enabled_features.
const (
	FeatureExistsSubquery = "exists_subquery"
	FeatureCallInTransactions = "call_in_transactions"
	FeaturePatternComprehension = "pattern_comprehension"
	FeatureUseClause = "use_clause"
)

var existsSubqueryRe = regexp.MustCompile(`(?i)\bEXISTS\s*\{`)
var callInTransactionsRe = regexp.MustCompile(`(?is)\bCALL\s*\{.*?\}\s*IN\s+TRANSACTIONS\b`)
var leadingUseRe = regexp.MustCompile(`(?i)^\s*USE\s+`)

// detectFeatures runs pre-parse regex probes over raw text and
// emits the corresponding CYP20x diagnostic at each detected span for every
// feature not present in enabled. Parse calls it for every dialect; under the
// relaxed dialect it passes an enabled set holding every feature.
func detectFeatures(text string, enabled map[string]bool, coll *diag.Collector) {
	if loc := existsSubqueryRe.FindStringIndex(text); loc != nil && !enabled[FeatureExistsSubquery] {
		coll.Add(diag.CodeExistsSubquery, "EXISTS subquery syntax is not enabled", source.Span{Start: loc[0], End: loc[1]})
	}
	if loc := callInTransactionsRe.FindStringIndex(text); loc != nil && !enabled[FeatureCallInTransactions] {
		coll.Add(diag.CodeCallInTransactions, "CALL... IN TRANSACTIONS syntax is not enabled", source.Span{Start: loc[0], End: loc[1]})
	}
	if loc := leadingUseRe.FindStringIndex(text); loc != nil && !enabled[FeatureUseClause] {
		coll.Add(diag.CodeUseClause, "leading USE clause syntax is not enabled", source.Span{Start: loc[0], End: loc[1]})
	}
	if span, ok := findPatternComprehension(text); ok && !enabled[FeaturePatternComprehension] {
		coll.Add(diag.CodePatternComprehension, "pattern comprehension syntax is not enabled", span)
	}
}

// findPatternComprehension looks for a top-level "[...]" whose content has
// a top-level '|' with a left side containing both '(' and '-' and no
// top-level IN keyword probe description — the shape that
// distinguishes "[pattern | projection]" from a plain list comprehension
// ("[x IN list | projection]") or literal list.
func findPatternComprehension(text string) (source.Span, bool) {
	mask := lexer.Mask(text)
	for i := 0; i < len(text); i++ {
		if mask[i] || text[i] != '[' {
			continue
		}
		close := lexer.MatchBracket(text, mask, i)
		if close < 0 {
			continue
		}
		inner := text[i+1 : close]
		innerTop := lexer.Scan(inner)
		pipeAt := innerTop.FindRune('|', 0)
		if pipeAt < 0 {
			continue
		}
		left := inner[:pipeAt]
		leftTop := lexer.Scan(left)
		if s, _ := leftTop.FindKeyword("IN", 0); s >= 0 {
			continue
		}
		if strings.ContainsRune(left, '(') && strings.ContainsRune(left, '-') {
			return source.Span{Start: i, End: close + 1}, true
		}
	}
	return source.Span{}, false
}
