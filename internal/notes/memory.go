package notes

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository is an in-memory Repository for unit tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*Note
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*Note)}
}

func (m *MemoryRepository) Insert(ctx context.Context, n *Note) (*Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	cp := *n
	m.store[n.ID.Hex()] = &cp
	return n, nil
}

func (m *MemoryRepository) FindByID(ctx context.Context, id string) (*Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.store[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (m *MemoryRepository) FindByOwner(ctx context.Context, ownerID string) ([]*Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*Note{}
	for _, n := range m.store {
		if n.OwnerID.Hex() == ownerID {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MemoryRepository) UpdateOwned(ctx context.Context, id, ownerID string, patch UpdatePatch) (*Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.store[id]
	if !ok || n.OwnerID.Hex() != ownerID {
		return nil, nil
	}
	if patch.Content != nil {
		n.Content = *patch.Content
	}
	n.UpdatedAt = time.Now().UTC()
	cp := *n
	return &cp, nil
}

func (m *MemoryRepository) DeleteOwned(ctx context.Context, id, ownerID string) (*Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.store[id]
	if !ok || n.OwnerID.Hex() != ownerID {
		return nil, nil
	}
	delete(m.store, id)
	return n, nil
}
