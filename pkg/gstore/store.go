// Package gstore is the embedded in-memory property graph store. It owns
// all nodes and relationships; rows elsewhere hold id + snapshot handles and
// consult the store for current state.
//
// Reads and writes copy labels and property maps. Nodes and relationships
// are kept in insertion order, with adjacency tables for
// incident-relationship lookup; there is no label index. Ids are
// dense uint64, monotonically assigned from 1 — embedding callers never
// choose ids themselves.
package gstore

import (
	"errors"
	"fmt"
	"sync"

	"github.com/orneryd/cypherlite/pkg/value"
)

// Errors returned by Store operations. Stable sentinel values so callers
// can match with errors.Is.
var (
	ErrUnknownEntity = errors.New("unknown entity")
	ErrUnknownEndpoint = errors.New("unknown endpoint")
	ErrStillConnected = errors.New("still connected")
)

// Node is the store's internal node record. Immutable once returned to a
// caller — every mutation replaces the record under the store's lock.
type Node struct {
	ID uint64
	Labels []string
	Properties value.Map
}

// Relationship is the store's internal relationship record.
type Relationship struct {
	ID uint64
	StartID uint64
	EndID uint64
	Type string
	Properties value.Map
}

// Store is the process-local property graph. All operations are
// synchronous; a single Store is exclusively owned by the caller executing
// a statement for that statement's duration.
type Store struct {
	mu sync.Mutex

	nextNodeID uint64
	nextRelID uint64

	nodeOrder []uint64
	nodes map[uint64]*Node

	relOrder []uint64
	rels map[uint64]*Relationship

	// outgoing/incoming map a node id to the ids of relationships where it
	// is the start/end, preserving relationship insertion order.
	outgoing map[uint64][]uint64
	incoming map[uint64][]uint64
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		nodes: make(map[uint64]*Node),
		rels: make(map[uint64]*Relationship),
		outgoing: make(map[uint64][]uint64),
		incoming: make(map[uint64][]uint64),
	}
}

func cloneProps(p value.Map) value.Map {
	if p == nil {
		return value.Map{}
	}
	out := make(value.Map, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

func cloneLabels(l []string) []string {
	out := make([]string, len(l))
	copy(out, l)
	return out
}

func (s *Store) snapshotNode(n *Node) Node {
	return Node{ID: n.ID, Labels: cloneLabels(n.Labels), Properties: cloneProps(n.Properties)}
}

func (s *Store) snapshotRel(r *Relationship) Relationship {
	return Relationship{ID: r.ID, StartID: r.StartID, EndID: r.EndID, Type: r.Type, Properties: cloneProps(r.Properties)}
}

// CreateNode allocates the next node id and stores an immutable record.
func (s *Store) CreateNode(labels []string, properties value.Map) Node {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextNodeID++
	id := s.nextNodeID
	n := &Node{ID: id, Labels: cloneLabels(labels), Properties: cloneProps(properties)}
	s.nodes[id] = n
	s.nodeOrder = append(s.nodeOrder, id)
	return s.snapshotNode(n)
}

// CreateRelationship allocates the next relationship id. Fails with
// ErrUnknownEndpoint if either id is absent.
func (s *Store) CreateRelationship(startID, endID uint64, relType string, properties value.Map) (Relationship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodes[startID]; !ok {
		return Relationship{}, fmt.Errorf("%w: node %d", ErrUnknownEndpoint, startID)
	}
	if _, ok := s.nodes[endID]; !ok {
		return Relationship{}, fmt.Errorf("%w: node %d", ErrUnknownEndpoint, endID)
	}

	s.nextRelID++
	id := s.nextRelID
	r := &Relationship{ID: id, StartID: startID, EndID: endID, Type: relType, Properties: cloneProps(properties)}
	s.rels[id] = r
	s.relOrder = append(s.relOrder, id)
	s.outgoing[startID] = append(s.outgoing[startID], id)
	s.incoming[endID] = append(s.incoming[endID], id)
	return s.snapshotRel(r), nil
}

// GetNode returns a snapshot of the node with id, if present.
func (s *Store) GetNode(id uint64) (Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[id]
	if !ok {
		return Node{}, false
	}
	return s.snapshotNode(n), true
}

// GetRelationship returns a snapshot of the relationship with id, if present.
func (s *Store) GetRelationship(id uint64) (Relationship, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rels[id]
	if !ok {
		return Relationship{}, false
	}
	return s.snapshotRel(r), true
}

// SetNodeProperty replaces the node record with key set to value, or removed
// if value is nil.
func (s *Store) SetNodeProperty(id uint64, key string, v value.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[id]
	if !ok {
		return fmt.Errorf("%w: node %d", ErrUnknownEntity, id)
	}
	props := cloneProps(n.Properties)
	if v == nil {
		delete(props, key)
	} else {
		props[key] = v
	}
	s.nodes[id] = &Node{ID: n.ID, Labels: n.Labels, Properties: props}
	return nil
}

// SetRelationshipProperty is the relationship-symmetric form of
// SetNodeProperty.
func (s *Store) SetRelationshipProperty(id uint64, key string, v value.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rels[id]
	if !ok {
		return fmt.Errorf("%w: relationship %d", ErrUnknownEntity, id)
	}
	props := cloneProps(r.Properties)
	if v == nil {
		delete(props, key)
	} else {
		props[key] = v
	}
	s.rels[id] = &Relationship{ID: r.ID, StartID: r.StartID, EndID: r.EndID, Type: r.Type, Properties: props}
	return nil
}

// ReplaceNodeProperties clears every property, then writes props (SET n = map).
func (s *Store) ReplaceNodeProperties(id uint64, props value.Map) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[id]
	if !ok {
		return fmt.Errorf("%w: node %d", ErrUnknownEntity, id)
	}
	s.nodes[id] = &Node{ID: n.ID, Labels: n.Labels, Properties: cloneProps(props)}
	return nil
}

// ReplaceRelationshipProperties is the relationship-symmetric form.
func (s *Store) ReplaceRelationshipProperties(id uint64, props value.Map) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rels[id]
	if !ok {
		return fmt.Errorf("%w: relationship %d", ErrUnknownEntity, id)
	}
	s.rels[id] = &Relationship{ID: r.ID, StartID: r.StartID, EndID: r.EndID, Type: r.Type, Properties: cloneProps(props)}
	return nil
}

// MergeNodeProperties merges props into the node's existing properties
// (SET n += map).
func (s *Store) MergeNodeProperties(id uint64, props value.Map) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[id]
	if !ok {
		return fmt.Errorf("%w: node %d", ErrUnknownEntity, id)
	}
	merged := cloneProps(n.Properties)
	for k, v := range props {
		if v == nil {
			delete(merged, k)
		} else {
			merged[k] = v
		}
	}
	s.nodes[id] = &Node{ID: n.ID, Labels: n.Labels, Properties: merged}
	return nil
}

// MergeRelationshipProperties is the relationship-symmetric form.
func (s *Store) MergeRelationshipProperties(id uint64, props value.Map) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rels[id]
	if !ok {
		return fmt.Errorf("%w: relationship %d", ErrUnknownEntity, id)
	}
	merged := cloneProps(r.Properties)
	for k, v := range props {
		if v == nil {
			delete(merged, k)
		} else {
			merged[k] = v
		}
	}
	s.rels[id] = &Relationship{ID: r.ID, StartID: r.StartID, EndID: r.EndID, Type: r.Type, Properties: merged}
	return nil
}

// AddLabel is idempotent on presence.
func (s *Store) AddLabel(id uint64, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[id]
	if !ok {
		return fmt.Errorf("%w: node %d", ErrUnknownEntity, id)
	}
	for _, l := range n.Labels {
		if l == label {
			return nil
		}
	}
	labels := append(cloneLabels(n.Labels), label)
	s.nodes[id] = &Node{ID: n.ID, Labels: labels, Properties: n.Properties}
	return nil
}

// RemoveLabel is idempotent on absence.
func (s *Store) RemoveLabel(id uint64, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[id]
	if !ok {
		return fmt.Errorf("%w: node %d", ErrUnknownEntity, id)
	}
	labels := make([]string, 0, len(n.Labels))
	for _, l := range n.Labels {
		if l != label {
			labels = append(labels, l)
		}
	}
	s.nodes[id] = &Node{ID: n.ID, Labels: labels, Properties: n.Properties}
	return nil
}

// DeleteRelationship removes a relationship by id, returning whether one was
// removed.
func (s *Store) DeleteRelationship(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteRelationshipLocked(id)
}

func (s *Store) deleteRelationshipLocked(id uint64) bool {
	r, ok := s.rels[id]
	if !ok {
		return false
	}
	delete(s.rels, id)
	s.relOrder = removeUint64(s.relOrder, id)
	s.outgoing[r.StartID] = removeUint64(s.outgoing[r.StartID], id)
	s.incoming[r.EndID] = removeUint64(s.incoming[r.EndID], id)
	return true
}

// DeleteNode removes a node. If detach is false and the node has any
// incident relationship, it fails with ErrStillConnected. If detach is true,
// incident relationships are removed first. Missing id returns (false, nil).
func (s *Store) DeleteNode(id uint64, detach bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.nodes[id]; !ok {
		return false, nil
	}

	incident := s.incidentLocked(id)
	if len(incident) > 0 && !detach {
		return false, fmt.Errorf("%w: node %d", ErrStillConnected, id)
	}
	for _, relID := range incident {
		s.deleteRelationshipLocked(relID)
	}

	delete(s.nodes, id)
	s.nodeOrder = removeUint64(s.nodeOrder, id)
	delete(s.outgoing, id)
	delete(s.incoming, id)
	return true, nil
}

func (s *Store) incidentLocked(id uint64) []uint64 {
	seen := make(map[uint64]bool)
	var out []uint64
	for _, r := range s.outgoing[id] {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	for _, r := range s.incoming[id] {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

// IncidentRelationships returns, in store order, the ids of relationships
// touching node id (as either endpoint).
func (s *Store) IncidentRelationships(id uint64) []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.incidentLocked(id)
}

// OutgoingRelationships returns relationship ids where id is the start node,
// in insertion order.
func (s *Store) OutgoingRelationships(id uint64) []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uint64, len(s.outgoing[id]))
	copy(out, s.outgoing[id])
	return out
}

// IncomingRelationships returns relationship ids where id is the end node,
// in insertion order.
func (s *Store) IncomingRelationships(id uint64) []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uint64, len(s.incoming[id]))
	copy(out, s.incoming[id])
	return out
}

// AllNodes returns a snapshot of every node, in insertion (id) order — the
// order the deterministic match sequence depends on.
func (s *Store) AllNodes() []Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Node, 0, len(s.nodeOrder))
	for _, id := range s.nodeOrder {
		out = append(out, s.snapshotNode(s.nodes[id]))
	}
	return out
}

// AllRelationships returns a snapshot of every relationship, in insertion order.
func (s *Store) AllRelationships() []Relationship {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Relationship, 0, len(s.relOrder))
	for _, id := range s.relOrder {
		out = append(out, s.snapshotRel(s.rels[id]))
	}
	return out
}

// RelationshipCount reports the number of live relationships, used as the
// default unbounded maxHops for variable-length traversal.
func (s *Store) RelationshipCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rels)
}

func removeUint64(s []uint64, v uint64) []uint64 {
	for i, x := range s {
		if x == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// ToValueNode converts a store Node into the row-level value.Node handle.
func ToValueNode(n Node) value.Node {
	return value.Node{ID: n.ID, Labels: n.Labels, Properties: n.Properties}
}

// ToValueRelationship converts a store Relationship into the row-level
// value.Relationship handle.
func ToValueRelationship(r Relationship) value.Relationship {
	return value.Relationship{ID: r.ID, StartID: r.StartID, EndID: r.EndID, Type: r.Type, Properties: r.Properties}
}
