package expr

import (
	"strings"

	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/value"
)

// tryExists implements step 5: "EXISTS {... }" subquery,
// delegated to the engine's clause pipeline via env.Matcher.
func tryExists(text string, env *Env) (value.Value, bool, error) {
	upper := strings.ToUpper(text)
	if !strings.HasPrefix(upper, "EXISTS") {
		return nil, false, nil
	}
	rest := strings.TrimSpace(text[len("EXISTS"):])
	if !strings.HasPrefix(rest, "{") {
		return nil, false, nil
	}
	mask := lexer.Mask(rest)
	close := lexer.MatchBracket(rest, mask, 0)
	if close < 0 {
		return nil, true, errUnterminated("EXISTS subquery")
	}
	if strings.TrimSpace(rest[close+1:]) != "" {
		return nil, false, nil
	}
	body := strings.TrimSpace(rest[1:close])

	if env == nil || env.Matcher == nil {
		return nil, true, errUnparsable(text)
	}
	ok, err := env.Matcher.RunExistsSubquery(body, env.Row)
	if err != nil {
		return nil, true, err
	}
	return ok, true, nil
}
