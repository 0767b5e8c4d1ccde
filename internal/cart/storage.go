package cart

import (
	"context"
	"sync"

	"tastybites-web/internal/domain"
)

// Storage is one serialized cart slot per user id. Load returns an empty
// cart for missing or unreadable slots rather than failing the store.
type Storage interface {
	Load(ctx context.Context, userID int) ([]domain.CartLine, error)
	Save(ctx context.Context, userID int, lines []domain.CartLine) error
	Delete(ctx context.Context, userID int) error
}

// MemoryStorage keeps slots in process memory. Used when no redis is
// configured, and in tests.
type MemoryStorage struct {
	mu    sync.RWMutex
	slots map[int][]domain.CartLine
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{slots: make(map[int][]domain.CartLine)}
}

func (m *MemoryStorage) Load(_ context.Context, userID int) ([]domain.CartLine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	slot, ok := m.slots[userID]
	if !ok {
		return nil, nil
	}
	lines := make([]domain.CartLine, len(slot))
	copy(lines, slot)
	return lines, nil
}

func (m *MemoryStorage) Save(_ context.Context, userID int, lines []domain.CartLine) error {
	slot := make([]domain.CartLine, len(lines))
	copy(slot, lines)

	m.mu.Lock()
	m.slots[userID] = slot
	m.mu.Unlock()
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, userID int) error {
	m.mu.Lock()
	delete(m.slots, userID)
	m.mu.Unlock()
	return nil
}

var _ Storage = (*MemoryStorage)(nil)
