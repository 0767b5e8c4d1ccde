package cart

import (
	"context"
	"log"
	"sync"

	"tastybites-web/internal/domain"
)

// Store holds the cart lines for one user and is their single writer.
// Presentation code goes through the operations below, never the slice.
// Mutations are persisted to the user's slot as a whole; a failed write is
// logged and the in-memory cart stays usable.
type Store struct {
	mu      sync.RWMutex
	userID  int
	lines   []domain.CartLine
	storage Storage
}

// NewStore creates an empty store for the user and rehydrates any
// previously persisted slot. A corrupt or missing slot loads as an
// empty cart.
func NewStore(ctx context.Context, userID int, storage Storage) *Store {
	s := &Store{userID: userID, storage: storage}

	if userID != 0 && storage != nil {
		lines, err := storage.Load(ctx, userID)
		if err != nil {
			log.Printf("[cart] loading slot for user %d: %v", userID, err)
		}
		s.lines = lines
	}
	return s
}

// AddToCart increments the quantity of an existing line with the same item
// id, or appends a new line with quantity 1. Purely local.
func (s *Store) AddToCart(ctx context.Context, item domain.CartLine) {
	s.mu.Lock()
	found := false
	for i := range s.lines {
		if s.lines[i].ID == item.ID {
			s.lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		item.Quantity = 1
		s.lines = append(s.lines, item)
	}
	s.mu.Unlock()

	s.persist(ctx)
}

// RemoveFromCart deletes the line with the given item id; absent ids are
// a no-op.
func (s *Store) RemoveFromCart(ctx context.Context, itemID int) {
	s.mu.Lock()
	changed := false
	for i := range s.lines {
		if s.lines[i].ID == itemID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			changed = true
			break
		}
	}
	s.mu.Unlock()

	if changed {
		s.persist(ctx)
	}
}

// UpdateQuantity sets the quantity for the matching line, floored at 1.
// Call sites reject decrements that would reach zero before getting here.
func (s *Store) UpdateQuantity(ctx context.Context, itemID, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	changed := false
	for i := range s.lines {
		if s.lines[i].ID == itemID {
			s.lines[i].Quantity = quantity
			changed = true
			break
		}
	}
	s.mu.Unlock()

	if changed {
		s.persist(ctx)
	}
}

// ClearCart empties the cart and removes the persisted slot.
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	s.lines = nil
	userID := s.userID
	s.mu.Unlock()

	if userID != 0 && s.storage != nil {
		if err := s.storage.Delete(ctx, userID); err != nil {
			log.Printf("[cart] clearing slot for user %d: %v", userID, err)
		}
	}
}

// GetCartCount returns the sum of quantities across all lines.
func (s *Store) GetCartCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// Items returns a copy of the cart lines.
func (s *Store) Items() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.CartLine, len(s.lines))
	copy(items, s.lines)
	return items
}

func (s *Store) persist(ctx context.Context) {
	s.mu.RLock()
	userID := s.userID
	lines := make([]domain.CartLine, len(s.lines))
	copy(lines, s.lines)
	s.mu.RUnlock()

	if userID == 0 || s.storage == nil {
		return
	}
	if err := s.storage.Save(ctx, userID, lines); err != nil {
		log.Printf("[cart] saving slot for user %d: %v", userID, err)
	}
}
