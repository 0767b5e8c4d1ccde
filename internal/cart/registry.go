package cart

import (
	"context"
	"sync"
)

// Registry hands out the per-user Store, creating and rehydrating it on
// first access. Switching users can never read another user's slot because
// every store is bound to exactly one user id.
type Registry struct {
	mu      sync.Mutex
	storage Storage
	stores  map[int]*Store
}

func NewRegistry(storage Storage) *Registry {
	return &Registry{
		storage: storage,
		stores:  make(map[int]*Store),
	}
}

func (r *Registry) For(ctx context.Context, userID int) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	if store, ok := r.stores[userID]; ok {
		return store
	}
	store := NewStore(ctx, userID, r.storage)
	r.stores[userID] = store
	return store
}
