// Package cypherlite is the public surface API: Parse and Execute entry
// points over the clause-level AST (pkg/ast), the clause segmenter
// (pkg/lexer), the row pipeline (pkg/engine), and the embedded graph store
// (pkg/gstore).
//
// Execute is a single "parse, then run" entry point over that typed
// AST/diagnostic model, rather than a class that owns parsing and
// execution as separate, independently-invoked steps.
package cypherlite

import (
	"github.com/google/uuid"

	"github.com/orneryd/cypherlite/pkg/ast"
	"github.com/orneryd/cypherlite/pkg/diag"
	"github.com/orneryd/cypherlite/pkg/engine"
	"github.com/orneryd/cypherlite/pkg/gstore"
	"github.com/orneryd/cypherlite/pkg/lexer"
	"github.com/orneryd/cypherlite/pkg/value"
)

// Dialect selects the parser profile.
type Dialect string

const (
	DialectStrict Dialect = "strict"
	DialectRelaxed Dialect = "relaxed"
)

// Options configures Parse and Execute.
type Options struct {
	Dialect Dialect
	// EnabledFeatures names which strict-dialect feature gates (see
	// features.go) are allowed. Ignored under DialectRelaxed, which
	// implicitly enables every feature.
	EnabledFeatures map[string]bool
	// RecoverErrors: when false (the default), Document is absent from the
	// ParseResult whenever any error diagnostic was recorded.
	RecoverErrors bool
}

// ParseResult is Parse's return value.
type ParseResult struct {
	Document *ast.Document
	Diagnostics []diag.Diagnostic
}

// Parse lexes, segments, and builds text into a typed AST. Line comments
// are stripped before segmenting.
func Parse(text string, opts Options) ParseResult {
	coll := diag.NewCollector()

	enabled := opts.EnabledFeatures
	if opts.Dialect == DialectRelaxed {
		enabled = map[string]bool{
			FeatureExistsSubquery: true,
			FeatureCallInTransactions: true,
			FeaturePatternComprehension: true,
			FeatureUseClause: true,
		}
	}
	detectFeatures(text, enabled, coll)

	stripped := lexer.StripLineComments(text)
	statements := lexer.Segment(stripped, coll)
	doc := ast.Build(statements, coll)

	result := ParseResult{Diagnostics: coll.Diagnostics()}
	if opts.RecoverErrors || !coll.HasErrors() {
		result.Document = &doc
	}
	return result
}

// Result is Execute's return value.
type Result struct {
	Parse ParseResult
	Rows []value.Map
	Columns []string
	RuntimeErrors []string
	// QueryID is an opaque per-call correlation handle for caller-side
	// logging/telemetry.
	QueryID string
}

// Execute parses text and, if parsing produced a usable Document, runs
// every statement in order against graph, threading parameters through.
// When Parse returns no Document, nothing runs (empty rows, no runtime
// errors). A runtime error stops execution at the statement that raised
// it: later statements do not run, Rows and Columns are left empty, and
// earlier statements' mutations are not rolled back.
func Execute(text string, graph *gstore.Store, parameters value.Map, opts Options) Result {
	parseResult := Parse(text, opts)
	res := Result{Parse: parseResult, QueryID: uuid.NewString()}

	if parseResult.Document == nil {
		return res
	}

	ctx := engine.NewContext(graph, parameters)
	for _, stmt := range parseResult.Document.Statements {
		seed := []engine.Row{engine.NewRow()}
		rows, cols, err := ctx.ExecuteStatement(stmt, seed)
		if err != nil {
			res.RuntimeErrors = append(res.RuntimeErrors, err.Error())
			res.Rows = nil
			res.Columns = nil
			return res
		}
		res.Rows = toValueMaps(rows)
		res.Columns = cols
	}
	return res
}

func toValueMaps(rows []engine.Row) []value.Map {
	out := make([]value.Map, len(rows))
	for i, r := range rows {
		out[i] = r.Vars
	}
	return out
}
