package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orneryd/cypherlite/pkg/source"
)

func TestMapPosAcrossLines(t *testing.T) {
	text := "abc\ndef\nghi"
	m := source.NewMap(text)

	assert.Equal(t, source.Pos{Line: 1, Column: 1}, m.Pos(0))
	assert.Equal(t, source.Pos{Line: 2, Column: 1}, m.Pos(4))
	assert.Equal(t, source.Pos{Line: 3, Column: 3}, m.Pos(10))
}

func TestMapPosClampsOutOfRange(t *testing.T) {
	text := "abc"
	m := source.NewMap(text)
	assert.Equal(t, source.Pos{Line: 1, Column: 1}, m.Pos(-5))
	assert.Equal(t, source.Pos{Line: 1, Column: 4}, m.Pos(100))
}

func TestMapTextExtractsSpan(t *testing.T) {
	text := "MATCH (n) RETURN n"
	m := source.NewMap(text)
	assert.Equal(t, "MATCH", m.Text(source.Span{Start: 0, End: 5}))
}

func TestMapTextInvalidRangeReturnsEmpty(t *testing.T) {
	text := "abc"
	m := source.NewMap(text)
	assert.Equal(t, "", m.Text(source.Span{Start: 2, End: 1}))
}

func TestPosString(t *testing.T) {
	p := source.Pos{Line: 3, Column: 7}
	assert.Equal(t, "3:7", p.String())
}
