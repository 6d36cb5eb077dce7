package expr

import (
	"strings"

	"github.com/orneryd/cypherlite/pkg/value"
)

// tryNot implements step 7: prefix NOT, three-valued.
func tryNot(text string, env *Env) (value.Value, bool, error) {
	upper := strings.ToUpper(text)
	if !strings.HasPrefix(upper, "NOT") {
		return nil, false, nil
	}
	if len(text) == 3 || !isWordSep(text[3]) {
		return nil, false, nil
	}
	rest := strings.TrimSpace(text[4:])
	t, ok, err := evalTruth(rest, env)
	if err != nil {
		return nil, true, err
	}
	if !ok {
		return nil, true, errUnparsable(text)
	}
	n := value.Not(t)
	if n == nil {
		return nil, true, nil
	}
	return *n, true, nil
}

func isWordSep(b byte) bool {
	return !((b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_')
}
