package service

import (
	"sync"

	"github.com/gibbz00/language-service-go/protocol"
)

// typer types an untyped wire response once its originating request's
// method is known.
type typer func(protocol.UntypedResponseMessage) (any, error)

// TypeStore tracks outstanding outbound requests so an untyped inbound
// response can be reconstituted with the correct result type (spec.md
// Sec.3, Sec.4.4). Entries are inserted when an outbound request leaves
// the Filter toward the Frontend and removed when the matching response
// arrives; a duplicate insertion with the same id replaces the prior
// entry (last-writer-wins, per spec.md Sec.3).
type TypeStore struct {
	mu      sync.Mutex
	entries map[protocol.RequestID]typer
}

// NewTypeStore returns an empty TypeStore.
func NewTypeStore() *TypeStore {
	return &TypeStore{entries: make(map[protocol.RequestID]typer)}
}

// Insert records the typing function for an outstanding request's id.
func (s *TypeStore) Insert(id protocol.RequestID, t typer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = t
}

// Resolve looks up and removes the typer for id, then invokes it on u.
// ok is false when no outstanding request matches id -- the orphan-
// response case (spec.md Sec.4.4, Sec.7, Sec.9): the caller's policy is
// to drop and log.
func (s *TypeStore) Resolve(id protocol.RequestID, u protocol.UntypedResponseMessage) (any, bool, error) {
	s.mu.Lock()
	t, ok := s.entries[id]
	if ok {
		delete(s.entries, id)
	}
	s.mu.Unlock()

	if !ok {
		return nil, false, nil
	}
	v, err := t(u)
	return v, true, err
}

// Len reports the number of outstanding requests, for tests and metrics.
func (s *TypeStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
