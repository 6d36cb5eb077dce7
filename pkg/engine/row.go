// Package engine executes a parsed statement's clause list against a
// pkg/gstore.Store, producing the row stream one clause handler at a time.
//
// Each clause handler threads a row slice through in the usual
// "plain row slice, re-evaluate text per row" shape, but the row itself is
// split into a Row{Vars, Meta} pair so clause handlers that need scratch
// state (MERGE's created/matched flag, ORDER BY's projection-expression
// cache) never smuggle it through a reserved key in Vars.
package engine

import "github.com/orneryd/cypherlite/pkg/value"

// RowMeta carries per-row bookkeeping that clause handlers need but that is
// never a query-visible variable.
type RowMeta struct {
	// LastMergeCreated is set by MERGE to report whether this row's pattern
	// was created (true) or matched (false); consulted by an immediately
	// following ON CREATE/ON MATCH SET.
	LastMergeCreated bool
	// ExprCache holds WITH/RETURN projection results, keyed by
	// ast.ProjectionItem.Hasher, so ORDER BY can reuse an already-computed
	// aggregate instead of re-evaluating its (now out-of-scope) source text.
	ExprCache map[string]value.Value
}

// Row is one row of the pipeline: variable bindings plus hidden metadata.
type Row struct {
	Vars value.Map
	Meta RowMeta
}

// NewRow returns a single empty row, the seed every statement starts from.
func NewRow() Row {
	return Row{Vars: value.Map{}}
}

// Clone deep-copies r so a branch produced by pattern expansion never
// aliases another branch's bindings.
func (r Row) Clone() Row {
	vars := make(value.Map, len(r.Vars))
	for k, v := range r.Vars {
		vars[k] = v
	}
	meta := RowMeta{LastMergeCreated: r.Meta.LastMergeCreated}
	if r.Meta.ExprCache != nil {
		meta.ExprCache = make(map[string]value.Value, len(r.Meta.ExprCache))
		for k, v := range r.Meta.ExprCache {
			meta.ExprCache[k] = v
		}
	}
	return Row{Vars: vars, Meta: meta}
}
