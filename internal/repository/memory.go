package repository

import (
	"context"
	"sync"

	"github.com/onecheckout/checkout-demo/internal/model"
)

// MemoryStore is the demo-mode order store: a mutex-guarded map with the
// same versioning semantics as the database-backed store. Insertion order
// is preserved for ListAll.
type MemoryStore struct {
	mu     sync.RWMutex
	orders map[string]*model.Order
	ids    []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{orders: make(map[string]*model.Order)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (s *MemoryStore) Put(_ context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.orders[order.ID]; ok {
		order.Version = existing.Version + 1
	} else {
		order.Version++
		s.ids = append(s.ids, order.ID)
	}
	s.orders[order.ID] = cloneOrder(order)
	return nil
}

func (s *MemoryStore) ListAll(_ context.Context) ([]*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]*model.Order, 0, len(s.ids))
	for _, id := range s.ids {
		orders = append(orders, cloneOrder(s.orders[id]))
	}
	return orders, nil
}

func (s *MemoryStore) CompareAndSwap(_ context.Context, expectedVersion int64, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.orders[order.ID]
	if !ok {
		return model.ErrOrderNotFound
	}
	if existing.Version != expectedVersion {
		return model.ErrVersionConflict
	}

	order.Version = expectedVersion + 1
	s.orders[order.ID] = cloneOrder(order)
	return nil
}

func cloneOrder(order *model.Order) *model.Order {
	clone := *order
	if order.OrderLines != nil {
		clone.OrderLines = make([]model.OrderLine, len(order.OrderLines))
		copy(clone.OrderLines, order.OrderLines)
	}
	if order.PaymentLinks != nil {
		clone.PaymentLinks = append([]byte(nil), order.PaymentLinks...)
	}
	return &clone
}
