// Package pattern parses Cypher pattern text — "(a:Person)-[r:KNOWS]->(b)"
// style chains — into a typed node/relationship segment chain. Parsing here
// is pure text-to-structure; matching the parsed chain against a live store
// is pkg/engine's job (it is the one component that needs both a
// pattern.Chain and a gstore.Store in scope at once).
//
// Node and relationship properties parse into the typed pattern.PropValue
// (see literal.go) rather than a bare map[string]interface{}, across the
// full node-rel-node chain and variable-length range grammar.
package pattern

import (
	"strconv"
	"strings"

	"github.com/orneryd/cypherlite/pkg/lexer"
)

// Direction is a relationship segment's matched orientation.
type Direction int

const (
	DirOutgoing Direction = iota
	DirIncoming
	DirEither
)

// NodePattern is one "(identifier:Label1:Label2 {props})" pattern.
type NodePattern struct {
	Variable string
	Labels []string
	Props map[string]PropValue
}

// RelPattern is one "-[identifier:TYPE1|TYPE2*min..max {props}]-" segment.
type RelPattern struct {
	Variable string
	Types []string
	Props map[string]PropValue
	Direction Direction

	VarLength bool
	MinHops int
	MaxHops int // -1 means "unbounded" (resolved against the store at match time)
}

// Segment is one relationship plus the node pattern it leads to.
type Segment struct {
	Rel RelPattern
	Node NodePattern
}

// Chain is a full pattern: a starting node plus zero or more
// relationship/node segments, with an optional path variable.
type Chain struct {
	PathVar string
	Start NodePattern
	Segs []Segment
}

// ParseChain parses one pattern chain, e.g. "p=(a:Person)-[r:KNOWS*1..3]->(b)".
func ParseChain(text string) (Chain, error) {
	text = strings.TrimSpace(text)
	var chain Chain

	top := lexer.Scan(text)
	if eq := top.FindRune('=', 0); eq >= 0 && looksLikePathVar(text[:eq]) {
		chain.PathVar = strings.TrimSpace(text[:eq])
		text = strings.TrimSpace(text[eq+1:])
	}

	pos := 0
	n, next, err := parseNode(text, pos)
	if err != nil {
		return Chain{}, err
	}
	chain.Start = n
	pos = next

	for pos < len(text) {
		for pos < len(text) && text[pos] == ' ' {
			pos++
		}
		if pos >= len(text) {
			break
		}
		seg, next, err := parseSegment(text, pos)
		if err != nil {
			return Chain{}, err
		}
		chain.Segs = append(chain.Segs, seg)
		pos = next
	}

	return chain, nil
}

func looksLikePathVar(s string) bool {
	s = strings.TrimSpace(s)
	return isIdent(s)
}

func isIdent(s string) bool {
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

// parseNode parses "(identifier:Label {props})" starting at text[pos] == '('.
func parseNode(text string, pos int) (NodePattern, int, error) {
	for pos < len(text) && text[pos] == ' ' {
		pos++
	}
	if pos >= len(text) || text[pos] != '(' {
		return NodePattern{}, 0, errInvalidPattern("node", text)
	}
	mask := lexer.Mask(text)
	close := lexer.MatchBracket(text, mask, pos)
	if close < 0 {
		return NodePattern{}, 0, errUnterminated("node pattern")
	}
	inner := strings.TrimSpace(text[pos+1 : close])
	n, err := parseNodeBody(inner)
	if err != nil {
		return NodePattern{}, 0, err
	}
	return n, close + 1, nil
}

func parseNodeBody(inner string) (NodePattern, error) {
	n := NodePattern{Props: map[string]PropValue{}}
	top := lexer.Scan(inner)

	propStart := len(inner)
	if b := strings.IndexByte(inner, '{'); b >= 0 && top.IsTopLevel(b) {
		propStart = b
	}
	head := strings.TrimSpace(inner[:propStart])
	propsText := strings.TrimSpace(inner[propStart:])

	parts := strings.Split(head, ":")
	varPart := strings.TrimSpace(parts[0])
	if varPart != "" {
		if !isIdent(varPart) {
			return NodePattern{}, errInvalidVariable("node")
		}
		n.Variable = varPart
	}
	for _, lbl := range parts[1:] {
		lbl = strings.TrimSpace(lbl)
		if lbl == "" {
			return NodePattern{}, errInvalidLabel()
		}
		n.Labels = append(n.Labels, lbl)
	}

	if propsText != "" {
		props, err := parseProps(propsText)
		if err != nil {
			return NodePattern{}, err
		}
		n.Props = props
	}
	return n, nil
}

// parseSegment parses one "-[...]->"-style relationship plus the following
// node pattern, starting at the left edge character.
func parseSegment(text string, pos int) (Segment, int, error) {
	if pos >= len(text) || (text[pos] != '-' && text[pos] != '<') {
		return Segment{}, 0, errInvalidPattern("relationship", text)
	}

	leftArrow := false
	if text[pos] == '<' {
		leftArrow = true
		pos++
	}
	if pos >= len(text) || text[pos] != '-' {
		return Segment{}, 0, errInvalidPattern("relationship", text)
	}
	pos++

	var rel RelPattern
	if pos < len(text) && text[pos] == '[' {
		mask := lexer.Mask(text)
		close := lexer.MatchBracket(text, mask, pos)
		if close < 0 {
			return Segment{}, 0, errUnterminated("relationship detail")
		}
		r, err := parseRelBody(text[pos+1 : close])
		if err != nil {
			return Segment{}, 0, err
		}
		rel = r
		pos = close + 1
	}

	if pos >= len(text) || text[pos] != '-' {
		return Segment{}, 0, errInvalidPattern("relationship", text)
	}
	pos++

	rightArrow := false
	if pos < len(text) && text[pos] == '>' {
		rightArrow = true
		pos++
	}

	switch {
	case leftArrow && rightArrow:
		return Segment{}, 0, errInvalidPattern("relationship direction", text)
	case leftArrow:
		rel.Direction = DirIncoming
	case rightArrow:
		rel.Direction = DirOutgoing
	default:
		rel.Direction = DirEither
	}

	node, next, err := parseNode(text, pos)
	if err != nil {
		return Segment{}, 0, err
	}
	return Segment{Rel: rel, Node: node}, next, nil
}

func parseRelBody(inner string) (RelPattern, error) {
	rel := RelPattern{Props: map[string]PropValue{}, MinHops: 1, MaxHops: -1}
	top := lexer.Scan(inner)

	propStart := len(inner)
	if b := strings.IndexByte(inner, '{'); b >= 0 && top.IsTopLevel(b) {
		propStart = b
	}
	starIdx := -1
	for i := 0; i < propStart; i++ {
		if inner[i] == '*' && top.IsTopLevel(i) {
			starIdx = i
			break
		}
	}

	headEnd := propStart
	if starIdx >= 0 {
		headEnd = starIdx
	}
	head := strings.TrimSpace(inner[:headEnd])
	propsText := strings.TrimSpace(inner[propStart:])

	parts := strings.Split(head, ":")
	varPart := strings.TrimSpace(parts[0])
	if varPart != "" {
		if !isIdent(varPart) {
			return RelPattern{}, errInvalidVariable("relationship")
		}
		rel.Variable = varPart
	}
	for _, tp := range parts[1:] {
		for _, alt := range strings.Split(tp, "|") {
			alt = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(alt), ":"))
			if alt == "" {
				return RelPattern{}, errInvalidType()
			}
			rel.Types = append(rel.Types, alt)
		}
	}

	if starIdx >= 0 {
		rel.VarLength = true
		rangeText := strings.TrimSpace(inner[starIdx+1 : propStart])
		min, max, err := parseRange(rangeText)
		if err != nil {
			return RelPattern{}, err
		}
		rel.MinHops, rel.MaxHops = min, max
	}

	if propsText != "" {
		props, err := parseProps(propsText)
		if err != nil {
			return RelPattern{}, err
		}
		rel.Props = props
	}
	return rel, nil
}

// parseRange parses the variable-length range grammar: "", "2", "2..5",
// "..5", "0..".
func parseRange(s string) (min, max int, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, -1, nil
	}
	if idx := strings.Index(s, ".."); idx >= 0 {
		lo := strings.TrimSpace(s[:idx])
		hi := strings.TrimSpace(s[idx+2:])
		min, max = 1, -1
		if lo != "" {
			min, err = strconv.Atoi(lo)
			if err != nil {
				return 0, 0, errInvalidPattern("variable-length range", s)
			}
		} else {
			min = 0
		}
		if hi != "" {
			max, err = strconv.Atoi(hi)
			if err != nil {
				return 0, 0, errInvalidPattern("variable-length range", s)
			}
		}
		return min, max, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, 0, errInvalidPattern("variable-length range", s)
	}
	return n, n, nil
}

func parseProps(braced string) (map[string]PropValue, error) {
	if len(braced) < 2 || braced[0] != '{' || braced[len(braced)-1] != '}' {
		return nil, errInvalidPattern("property map", braced)
	}
	inner := strings.TrimSpace(braced[1 : len(braced)-1])
	props := map[string]PropValue{}
	if inner == "" {
		return props, nil
	}
	for _, pair := range lexer.SplitTopLevel(inner, ',') {
		colon := lexer.Scan(pair).FindRune(':', 0)
		if colon < 0 {
			return nil, errInvalidPattern("property entry", pair)
		}
		key := strings.Trim(strings.TrimSpace(pair[:colon]), "`")
		props[key] = ParsePropValue(pair[colon+1:])
	}
	return props, nil
}
