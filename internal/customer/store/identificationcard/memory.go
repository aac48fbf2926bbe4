package identificationcard

import (
	"context"
	"sync"

	"custodia/internal/customer/models"
	"custodia/pkg/domain"
	"custodia/pkg/platform/sentinel"
)

// InMemoryStore keeps identification cards in process memory, keyed by the
// globally unique card number.
type InMemoryStore struct {
	mu    sync.RWMutex
	cards map[domain.CardNumber]models.IdentificationCard
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{cards: make(map[domain.CardNumber]models.IdentificationCard)}
}

// Create persists a new card; the number must be unused globally.
func (s *InMemoryStore) Create(_ context.Context, card *models.IdentificationCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cards[card.Number]; ok {
		return sentinel.ErrConflict
	}
	s.cards[card.Number] = *card
	return nil
}

func (s *InMemoryStore) FindByNumber(_ context.Context, number domain.CardNumber) (*models.IdentificationCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.cards[number]; ok {
		card := c
		return &card, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) FindByCustomer(_ context.Context, customerID domain.CustomerID) ([]models.IdentificationCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.IdentificationCard
	for _, c := range s.cards {
		if c.CustomerID == customerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, card *models.IdentificationCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cards[card.Number]; !ok {
		return sentinel.ErrNotFound
	}
	s.cards[card.Number] = *card
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, number domain.CardNumber) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cards, number)
	return nil
}
