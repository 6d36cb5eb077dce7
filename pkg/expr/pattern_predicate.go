package expr

import (
	"strings"

	"github.com/orneryd/cypherlite/pkg/pattern"
	"github.com/orneryd/cypherlite/pkg/value"
)

// tryPatternPredicate implements step 15: an expression that
// textually parses as a pattern chain is evaluated as "does there exist at
// least one matching extension of the current row". Parsing is attempted
// here (via pkg/pattern, the pure grammar) only to classify the text;
// matching itself goes through env.Matcher since that needs the live store.
func tryPatternPredicate(text string, env *Env) (value.Value, bool, error) {
	if !strings.HasPrefix(text, "(") {
		return nil, false, nil
	}
	if _, err := pattern.ParseChain(text); err != nil {
		return nil, false, nil
	}
	if env == nil || env.Matcher == nil {
		return nil, true, errUnparsable(text)
	}
	ok, err := env.Matcher.MatchPatternExists(text, env.Row)
	if err != nil {
		return nil, true, err
	}
	return ok, true, nil
}
