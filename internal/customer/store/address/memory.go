package address

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"custodia/internal/customer/models"
	"custodia/pkg/platform/sentinel"
)

// InMemoryStore keeps address rows in process memory.
type InMemoryStore struct {
	mu        sync.RWMutex
	addresses map[uuid.UUID]models.Address
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{addresses: make(map[uuid.UUID]models.Address)}
}

func (s *InMemoryStore) Save(_ context.Context, addr *models.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addresses[addr.ID] = *addr
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.addresses[id]; ok {
		addr := a
		return &addr, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.addresses, id)
	return nil
}

// Count reports live address rows; integration checks use it to prove the
// replace flow leaks at most the detached row.
func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.addresses), nil
}
