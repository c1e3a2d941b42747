// Package session provides local implementations of the session slot: a
// process-memory store and a file-backed one for surviving restarts.
package session

import (
	"context"
	"sync"

	"github.com/probooking/probooking-api/internal/core/domain"
)

// MemoryStore keeps the slot in process memory only. Sessions do not survive
// a restart; useful for tests and ephemeral environments.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	set   bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.set = true
	return nil
}

func (m *MemoryStore) Load(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return "", domain.ErrNoSession
	}
	return m.token, nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.set = false
	return nil
}
