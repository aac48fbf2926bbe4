package portrait

import (
	"context"
	"sync"

	"custodia/internal/customer/models"
	"custodia/pkg/domain"
	"custodia/pkg/platform/sentinel"
)

// InMemoryStore keeps portraits in process memory, one per customer.
type InMemoryStore struct {
	mu        sync.RWMutex
	portraits map[domain.CustomerID]models.Portrait
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{portraits: make(map[domain.CustomerID]models.Portrait)}
}

// Upsert replaces any existing portrait for the customer.
func (s *InMemoryStore) Upsert(_ context.Context, p *models.Portrait) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.portraits[p.CustomerID] = *p
	return nil
}

func (s *InMemoryStore) FindByCustomer(_ context.Context, customerID domain.CustomerID) (*models.Portrait, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.portraits[customerID]; ok {
		portrait := p
		return &portrait, nil
	}
	return nil, sentinel.ErrNotFound
}

// DeleteByCustomer removes the portrait if one exists. Idempotent.
func (s *InMemoryStore) DeleteByCustomer(_ context.Context, customerID domain.CustomerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.portraits, customerID)
	return nil
}
