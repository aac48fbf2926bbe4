package customer

import (
	"context"
	"sync"

	"custodia/internal/customer/models"
	"custodia/pkg/domain"
	"custodia/pkg/platform/sentinel"
)

// InMemoryStore keeps customers in process memory. It favors clarity over
// performance; the postgres store is the production path.
type InMemoryStore struct {
	mu        sync.RWMutex
	customers map[domain.CustomerID]models.Customer
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{customers: make(map[domain.CustomerID]models.Customer)}
}

// Create persists a new customer; the identifier must be unused.
func (s *InMemoryStore) Create(_ context.Context, customer *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[customer.Identifier]; ok {
		return sentinel.ErrConflict
	}
	s.customers[customer.Identifier] = *customer
	return nil
}

func (s *InMemoryStore) FindByIdentifier(_ context.Context, id domain.CustomerID) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.customers[id]; ok {
		customer := c
		return &customer, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) Update(_ context.Context, customer *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[customer.Identifier]; !ok {
		return sentinel.ErrNotFound
	}
	s.customers[customer.Identifier] = *customer
	return nil
}
