package commandlog

import (
	"context"
	"sync"

	"custodia/internal/customer/models"
	"custodia/pkg/domain"
)

// InMemoryStore keeps command log entries in process memory. Append-only.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[domain.CustomerID][]models.CommandLogEntry
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{entries: make(map[domain.CustomerID][]models.CommandLogEntry)}
}

func (s *InMemoryStore) Append(_ context.Context, entry *models.CommandLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.CustomerID] = append(s.entries[entry.CustomerID], *entry)
	return nil
}

func (s *InMemoryStore) ListByCustomer(_ context.Context, customerID domain.CustomerID) ([]models.CommandLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.CommandLogEntry, len(s.entries[customerID]))
	copy(out, s.entries[customerID])
	return out, nil
}
