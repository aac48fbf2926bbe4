package fieldvalue

import (
	"context"
	"sync"

	"custodia/internal/customer/models"
	"custodia/pkg/domain"
)

// InMemoryStore keeps custom field values in process memory, grouped by
// owner.
type InMemoryStore struct {
	mu     sync.RWMutex
	values map[domain.CustomerID][]models.FieldValue
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{values: make(map[domain.CustomerID][]models.FieldValue)}
}

func (s *InMemoryStore) FindByCustomer(_ context.Context, customerID domain.CustomerID) ([]models.FieldValue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.FieldValue, len(s.values[customerID]))
	copy(out, s.values[customerID])
	return out, nil
}

func (s *InMemoryStore) DeleteByCustomer(_ context.Context, customerID domain.CustomerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, customerID)
	return nil
}

func (s *InMemoryStore) SaveAll(_ context.Context, customerID domain.CustomerID, values []models.FieldValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]models.FieldValue, 0, len(values))
	for _, v := range values {
		v.CustomerID = customerID
		stored = append(stored, v)
	}
	s.values[customerID] = append(s.values[customerID], stored...)
	return nil
}
