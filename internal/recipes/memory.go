package recipes

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository is an in-memory Repository for unit tests. Mutations apply
// the same combined (id AND owner) match as the Mongo implementation.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*Recipe
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*Recipe)}
}

func (m *MemoryRepository) Insert(ctx context.Context, r *Recipe) (*Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	cp := *r
	m.store[r.ID.Hex()] = &cp
	return r, nil
}

func (m *MemoryRepository) FindByID(ctx context.Context, id string) (*Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.store[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *MemoryRepository) FindAll(ctx context.Context, category string) ([]*Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*Recipe{}
	for _, r := range m.store {
		if category != "" && r.Category != category {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemoryRepository) UpdateOwned(ctx context.Context, id, ownerID string, patch UpdatePatch) (*Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.store[id]
	if !ok || r.OwnerID.Hex() != ownerID {
		return nil, nil
	}
	if patch.Title != nil {
		r.Title = *patch.Title
	}
	if patch.Ingredients != nil {
		r.Ingredients = *patch.Ingredients
	}
	if patch.Steps != nil {
		r.Steps = *patch.Steps
	}
	if patch.Category != nil {
		r.Category = *patch.Category
	}
	if patch.Image != nil {
		r.Image = *patch.Image
	}
	r.UpdatedAt = time.Now().UTC()
	cp := *r
	return &cp, nil
}

func (m *MemoryRepository) DeleteOwned(ctx context.Context, id, ownerID string) (*Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.store[id]
	if !ok || r.OwnerID.Hex() != ownerID {
		return nil, nil
	}
	delete(m.store, id)
	return r, nil
}
