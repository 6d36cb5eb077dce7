package engine

import (
	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/pattern"
)

// execMatch implements MATCH and OPTIONAL MATCH: each
// comma-separated chain in body is matched in sequence against the rows
// produced so far, so a later chain can reference a variable an earlier one
// bound. optional rows that find no match for a chain still flow through,
// with that chain's variables bound to null.
func (c *Context) execMatch(body string, rows []Row, optional bool) ([]Row, error) {
	chainTexts := lexer.SplitTopLevel(body, ',')
	var chains []pattern.Chain
	for _, t := range chainTexts {
		ch, err := pattern.ParseChain(t)
		if err != nil {
			return nil, err
		}
		chains = append(chains, ch)
	}

	result := rows
	for _, ch := range chains {
		var next []Row
		for _, r := range result {
			expanded, err := c.expandChain(ch, r)
			if err != nil {
				return nil, err
			}
			if len(expanded) == 0 {
				if optional {
					nr := r.Clone()
					for _, v := range chainVars(ch) {
						if _, exists := nr.Vars[v]; !exists {
							nr.Vars[v] = nil
						}
					}
					next = append(next, nr)
				}
				continue
			}
			next = append(next, expanded...)
		}
		result = next
	}
	return result, nil
}
