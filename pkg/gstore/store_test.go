package gstore_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orneryd/cypherlite/pkg/gstore"
	"github.com/orneryd/cypherlite/pkg/value"
)

func TestCreateNodeAssignsDenseIDs(t *testing.T) {
	s := gstore.New()
	a := s.CreateNode([]string{"Person"}, value.Map{"name": "Alice"})
	b := s.CreateNode([]string{"Person"}, value.Map{"name": "Bob"})
	assert.Equal(t, uint64(1), a.ID)
	assert.Equal(t, uint64(2), b.ID)
}

func TestCreateRelationshipUnknownEndpoint(t *testing.T) {
	s := gstore.New()
	a := s.CreateNode(nil, nil)
	_, err := s.CreateRelationship(a.ID, 999, "KNOWS", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gstore.ErrUnknownEndpoint))
}

func TestSetNodePropertyNilRemovesKey(t *testing.T) {
	s := gstore.New()
	n := s.CreateNode(nil, value.Map{"age": int64(30)})
	require.NoError(t, s.SetNodeProperty(n.ID, "age", nil))
	got, _ := s.GetNode(n.ID)
	_, exists := got.Properties["age"]
	assert.False(t, exists)
}

func TestAddRemoveLabelIdempotent(t *testing.T) {
	s := gstore.New()
	n := s.CreateNode([]string{"Person"}, nil)
	require.NoError(t, s.AddLabel(n.ID, "Person"))
	got, _ := s.GetNode(n.ID)
	assert.Equal(t, []string{"Person"}, got.Labels)

	require.NoError(t, s.RemoveLabel(n.ID, "Missing"))
	require.NoError(t, s.RemoveLabel(n.ID, "Person"))
	got, _ = s.GetNode(n.ID)
	assert.Empty(t, got.Labels)
}

func TestDeleteNodeStillConnected(t *testing.T) {
	s := gstore.New()
	a := s.CreateNode(nil, nil)
	b := s.CreateNode(nil, nil)
	_, err := s.CreateRelationship(a.ID, b.ID, "R", nil)
	require.NoError(t, err)

	_, err = s.DeleteNode(a.ID, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gstore.ErrStillConnected))

	ok, err := s.DeleteNode(a.ID, true)
	require.NoError(t, err)
	assert.True(t, ok)
	_, exists := s.GetNode(a.ID)
	assert.False(t, exists)
	assert.Empty(t, s.AllRelationships())
}

func TestDeleteNodeMissingReturnsFalse(t *testing.T) {
	s := gstore.New()
	ok, err := s.DeleteNode(123, false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAllNodesInsertionOrder(t *testing.T) {
	s := gstore.New()
	ids := make([]uint64, 5)
	for i := range ids {
		ids[i] = s.CreateNode(nil, nil).ID
	}
	all := s.AllNodes()
	require.Len(t, all, 5)
	for i, n := range all {
		assert.Equal(t, ids[i], n.ID)
	}
}

func TestSnapshotIsolationOnMutation(t *testing.T) {
	s := gstore.New()
	n := s.CreateNode([]string{"Person"}, value.Map{"name": "Alice"})
	n.Labels[0] = "Mutated"
	got, _ := s.GetNode(n.ID)
	assert.Equal(t, "Person", got.Labels[0])
}
