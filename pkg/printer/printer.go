// Package printer canonicalizes a parsed AST back into normalized query
// text: statements separated by ";\n", one clause per line, keyword in
// canonical uppercase, body whitespace collapsed to single spaces. It only
// ever consumes pkg/ast.Document, never the raw query text.
package printer

import (
	"strings"

	"github.com/orneryd/cypherlite/pkg/ast"
)

// Print renders doc as normalized Cypher text. Parsing the result again
// reproduces the same clause sequence and bodies up to whitespace
// normalization (parse→print→parse idempotence property).
func Print(doc ast.Document) string {
	var b strings.Builder
	for i, stmt := range doc.Statements {
		if i > 0 {
			b.WriteString(";\n")
		}
		for j, cl := range stmt.Clauses {
			if j > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(cl.Keyword)
			body := collapseWhitespace(cl.Body)
			if body != "" {
				b.WriteByte(' ')
				b.WriteString(body)
			}
		}
	}
	return b.String()
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
