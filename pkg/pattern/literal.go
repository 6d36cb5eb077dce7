package pattern

import (
	"strconv"
	"strings"

	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/value"
)

// PropValue is one property map entry's value, kept as raw text plus an
// eagerly-parsed literal when the text is a plain literal. Patterns only
// ever carry literals or parameter references in real Cypher; for anything
// else this type gives pkg/engine a raw-text fallback to send through the
// full expression evaluator instead of trying to evaluate function calls
// here.
type PropValue struct {
	Text string
	Literal value.Value
	HasLiteral bool
	ParamName string // non-empty if Text is exactly "$name" or "$<int>"
}

// ParsePropValue classifies valueStr as a literal, a parameter reference, or
// (if neither) leaves only Text set for the caller's expression evaluator.
func ParsePropValue(valueStr string) PropValue {
	text := strings.TrimSpace(valueStr)
	pv := PropValue{Text: text}

	if strings.HasPrefix(text, "$") && len(text) > 1 {
		name := text[1:]
		if isParamName(name) {
			pv.ParamName = name
			return pv
		}
	}

	if lit, ok := parseLiteral(text); ok {
		pv.Literal = lit
		pv.HasLiteral = true
	}
	return pv
}

func isParamName(s string) bool {
	if s == "" {
		return false
	}
	if _, err := strconv.Atoi(s); err == nil {
		return true
	}
	for i, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (i > 0 && r >= '0' && r <= '9') {
			continue
		}
		return false
	}
	return true
}

// parseLiteral parses a Cypher literal: null, quoted string, true/false,
// integer (decimal/0x/0o), float, list literal, or map literal, using
// lexer.SplitTopLevel for nested splitting instead of bespoke
// bracket-counting loops.
func parseLiteral(s string) (value.Value, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	if strings.EqualFold(s, "null") {
		return nil, true
	}
	if strings.EqualFold(s, "true") {
		return true, true
	}
	if strings.EqualFold(s, "false") {
		return false, true
	}
	if lit, ok := parseQuoted(s); ok {
		return lit, true
	}
	if lit, ok := parseNumber(s); ok {
		return lit, true
	}
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return parseListLiteral(s)
	}
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		return parseMapLiteral(s)
	}
	return nil, false
}

func parseQuoted(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	first, last := s[0], s[len(s)-1]
	if !((first == '\'' && last == '\'') || (first == '"' && last == '"')) {
		return "", false
	}
	content := s[1 : len(s)-1]
	if first == '\'' {
		content = strings.ReplaceAll(content, "\\'", "'")
	} else {
		content = strings.ReplaceAll(content, "\\\"", "\"")
	}
	content = strings.ReplaceAll(content, "\\\\", "\\")
	content = strings.ReplaceAll(content, "\\n", "\n")
	content = strings.ReplaceAll(content, "\\t", "\t")
	return content, true
}

func parseNumber(s string) (value.Value, bool) {
	neg := strings.HasPrefix(s, "-")
	body := s
	if neg {
		body = s[1:]
	}
	if strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X") {
		if n, err := strconv.ParseInt(body[2:], 16, 64); err == nil {
			if neg {
				n = -n
			}
			return n, true
		}
		return nil, false
	}
	if strings.HasPrefix(body, "0o") || strings.HasPrefix(body, "0O") {
		if n, err := strconv.ParseInt(body[2:], 8, 64); err == nil {
			if neg {
				n = -n
			}
			return n, true
		}
		return nil, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	return nil, false
}

func parseListLiteral(s string) (value.Value, bool) {
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return value.List{}, true
	}
	parts := lexer.SplitTopLevel(inner, ',')
	out := make(value.List, 0, len(parts))
	for _, p := range parts {
		lit, ok := parseLiteral(p)
		if !ok {
			return nil, false
		}
		out = append(out, lit)
	}
	return out, true
}

func parseMapLiteral(s string) (value.Value, bool) {
	inner := strings.TrimSpace(s[1 : len(s)-1])
	out := value.Map{}
	if inner == "" {
		return out, true
	}
	for _, pair := range lexer.SplitTopLevel(inner, ',') {
		colon := lexer.Scan(pair).FindRune(':', 0)
		if colon < 0 {
			return nil, false
		}
		key := strings.TrimSpace(pair[:colon])
		key = strings.Trim(key, "`")
		lit, ok := parseLiteral(strings.TrimSpace(pair[colon+1:]))
		if !ok {
			return nil, false
		}
		out[key] = lit
	}
	return out, true
}
