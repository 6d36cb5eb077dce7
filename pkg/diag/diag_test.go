package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orneryd/cypherlite/pkg/diag"
	"github.com/orneryd/cypherlite/pkg/source"
)

func TestCollectorTracksErrorsAndWarnings(t *testing.T) {
	coll := diag.NewCollector()
	assert.False(t, coll.HasErrors())

	coll.AddWarning(diag.CodeOrdering, "just a warning", source.Span{})
	assert.False(t, coll.HasErrors())

	coll.Add(diag.CodeUnknownKeyword, "bad keyword", source.Span{Start: 1, End: 2})
	assert.True(t, coll.HasErrors())
	assert.Len(t, coll.Diagnostics(), 2)
}
