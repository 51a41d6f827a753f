package users

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/recipebook/go-services/internal/models"
)

// MemoryRepository is an in-memory Repository used by unit tests. It enforces
// the same email uniqueness as the Mongo index.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*models.User // keyed by hex id
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*models.User)}
}

func (m *MemoryRepository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.store {
		if other.Email == u.Email {
			return nil, ErrEmailTaken
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	cp := *u
	m.store[u.HexID()] = &cp
	return u, nil
}

func (m *MemoryRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.store {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemoryRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.store[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *MemoryRepository) List(ctx context.Context) ([]*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.User, 0, len(m.store))
	for _, u := range m.store {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

// Delete removes a user directly; tests use it to simulate out-of-band
// account deletion (dangling owner references).
func (m *MemoryRepository) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, id)
}
