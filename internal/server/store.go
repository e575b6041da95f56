package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/swissfort-mfg/entrydesk/internal/workspace"
)

// handle guards one workspace, which is not safe for concurrent use.
type handle struct {
	mu sync.Mutex
	ws *workspace.Workspace
}

type store struct {
	mu    sync.RWMutex
	items map[string]*handle
	newWS func() *workspace.Workspace
}

func newStore(newWS func() *workspace.Workspace) *store {
	return &store{items: make(map[string]*handle), newWS: newWS}
}

// create mounts a new workspace and returns its id.
func (s *store) create() (string, *handle) {
	ws := s.newWS()
	ws.Mount()
	h := &handle{ws: ws}
	id := uuid.NewString()

	s.mu.Lock()
	s.items[id] = h
	s.mu.Unlock()
	return id, h
}

func (s *store) get(id string) (*handle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.items[id]
	return h, ok
}

// remove drops a workspace. The caller unmounts it.
func (s *store) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[id]
	delete(s.items, id)
	return ok
}

func (s *store) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
