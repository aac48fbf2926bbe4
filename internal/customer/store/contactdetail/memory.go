package contactdetail

import (
	"context"
	"sync"

	"custodia/internal/customer/models"
	"custodia/pkg/domain"
)

// InMemoryStore keeps contact details in process memory, grouped by owner.
type InMemoryStore struct {
	mu      sync.RWMutex
	details map[domain.CustomerID][]models.ContactDetail
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{details: make(map[domain.CustomerID][]models.ContactDetail)}
}

func (s *InMemoryStore) FindByCustomer(_ context.Context, customerID domain.CustomerID) ([]models.ContactDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ContactDetail, len(s.details[customerID]))
	copy(out, s.details[customerID])
	return out, nil
}

func (s *InMemoryStore) DeleteByCustomer(_ context.Context, customerID domain.CustomerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.details, customerID)
	return nil
}

func (s *InMemoryStore) SaveAll(_ context.Context, customerID domain.CustomerID, details []models.ContactDetail) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]models.ContactDetail, 0, len(details))
	for _, d := range details {
		d.CustomerID = customerID
		stored = append(stored, d)
	}
	s.details[customerID] = append(s.details[customerID], stored...)
	return nil
}
