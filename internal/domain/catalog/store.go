package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/example/watchhaven/internal/infrastructure/eventbus"
	log "github.com/sirupsen/logrus"
)

// Store holds the authoritative product list. New products go to the front.
type Store struct {
	mu       sync.RWMutex
	products []Product
	emitter  eventbus.Emitter
}

// NewStore creates a store seeded with the given products in order
func NewStore(emitter eventbus.Emitter, seed []Product) *Store {
	products := make([]Product, 0, len(seed))
	for _, p := range seed {
		products = append(products, p.Clone())
	}
	return &Store{products: products, emitter: emitter}
}

// List returns copies of all live products
func (s *Store) List() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, len(s.products))
	for i, p := range s.products {
		out[i] = p.Clone()
	}
	return out
}

// Get returns the product with the given id
func (s *Store) Get(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.products[i].Clone(), true
	}
	return Product{}, false
}

// Len returns the number of live products
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// Add prepends p. The caller owns id uniqueness.
func (s *Store) Add(ctx context.Context, p Product) {
	p = p.Clone()

	s.mu.Lock()
	s.products = append([]Product{p}, s.products...)
	s.mu.Unlock()

	s.emit(ctx, p.ID, EventProductAdded, ProductAdded{Product: p, AddedAt: time.Now()})
}

// Update replaces the product with the same id. A missing id is a no-op
// and reports false.
func (s *Store) Update(ctx context.Context, p Product) bool {
	p = p.Clone()

	s.mu.Lock()
	i := s.indexOf(p.ID)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.products[i] = p
	s.mu.Unlock()

	s.emit(ctx, p.ID, EventProductUpdated, ProductUpdated{Product: p, UpdatedAt: time.Now()})
	return true
}

// Delete removes the product with the given id once confirm agrees.
// Declined confirmation and missing ids leave the catalog untouched.
func (s *Store) Delete(ctx context.Context, id string, confirm Confirmer) bool {
	if confirm == nil || !confirm.Confirm(ctx, DeletePrompt) {
		log.WithField("product_id", id).Debug("product delete declined")
		return false
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.products = append(s.products[:i:i], s.products[i+1:]...)
	s.mu.Unlock()

	s.emit(ctx, id, EventProductDeleted, ProductDeleted{ProductID: id, DeletedAt: time.Now()})
	return true
}

// indexOf must be called with the lock held
func (s *Store) indexOf(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) emit(ctx context.Context, id, eventType string, data any) {
	if s.emitter == nil {
		return
	}
	if _, err := s.emitter.Emit(ctx, id, AggregateType, eventType, data); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"product_id": id,
			"event_type": eventType,
		}).Warn("[Catalog] Failed to publish event")
	}
}
