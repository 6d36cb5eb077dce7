package expr

import (
	"strconv"
	"strings"

	"github.com/orneryd/cypherlite/pkg/value"
)

// tryParameter implements step 2: "$name" or "$<integer>".
func tryParameter(text string, env *Env) (value.Value, bool, error) {
	if !strings.HasPrefix(text, "$") || len(text) < 2 {
		return nil, false, nil
	}
	name := text[1:]
	if !isParamName(name) {
		return nil, true, errInvalidParameterName(name)
	}
	if env == nil || env.Params == nil {
		return nil, true, errMissingParameter(name)
	}
	v, ok := env.Params[name]
	if !ok {
		return nil, true, errMissingParameter(name)
	}
	return v, true, nil
}

func isParamName(s string) bool {
	if s == "" {
		return false
	}
	if _, err := strconv.Atoi(s); err == nil {
		return true
	}
	return isIdentifier(s)
}

// tryKeywordLiteral implements the true/false/null portion of step 3.
func tryKeywordLiteral(text string) (value.Value, bool) {
	switch {
	case strings.EqualFold(text, "null"):
		return nil, true
	case strings.EqualFold(text, "true"):
		return true, true
	case strings.EqualFold(text, "false"):
		return false, true
	}
	return nil, false
}

// tryStringLiteral implements the string-literal portion of step 3.
func tryStringLiteral(text string) (value.Value, bool) {
	if len(text) < 2 {
		return nil, false
	}
	first, last := text[0], text[len(text)-1]
	if !((first == '\'' && last == '\'') || (first == '"' && last == '"')) {
		return nil, false
	}
	content := text[1 : len(text)-1]
	if first == '\'' {
		content = strings.ReplaceAll(content, "\\'", "'")
	} else {
		content = strings.ReplaceAll(content, "\\\"", "\"")
	}
	content = strings.ReplaceAll(content, "\\\\", "\\")
	content = strings.ReplaceAll(content, "\\n", "\n")
	content = strings.ReplaceAll(content, "\\t", "\t")
	content = strings.ReplaceAll(content, "\\r", "\r")
	return content, true
}

// tryNumberLiteral implements the numeric-literal portion of step 3:
// decimal, 0x, 0o integers, and floats.
func tryNumberLiteral(text string) (value.Value, bool) {
	neg := strings.HasPrefix(text, "-")
	body := text
	if neg {
		body = text[1:]
	}
	if body == "" {
		return nil, false
	}
	if strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X") {
		n, err := strconv.ParseInt(body[2:], 16, 64)
		if err != nil {
			return nil, false
		}
		if neg {
			n = -n
		}
		return n, true
	}
	if strings.HasPrefix(body, "0o") || strings.HasPrefix(body, "0O") {
		n, err := strconv.ParseInt(body[2:], 8, 64)
		if err != nil {
			return nil, false
		}
		if neg {
			n = -n
		}
		return n, true
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f, true
	}
	return nil, false
}
