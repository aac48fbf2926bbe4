package cardscan

import (
	"context"
	"sync"

	"custodia/internal/customer/models"
	"custodia/pkg/domain"
	"custodia/pkg/platform/sentinel"
)

type scanKey struct {
	card domain.CardNumber
	scan domain.ScanID
}

// InMemoryStore keeps card scans in process memory. Scan identifiers are
// only unique per card, so the key is composite.
type InMemoryStore struct {
	mu    sync.RWMutex
	scans map[scanKey]models.IdentificationCardScan
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{scans: make(map[scanKey]models.IdentificationCardScan)}
}

func (s *InMemoryStore) Save(_ context.Context, scan *models.IdentificationCardScan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := scanKey{card: scan.CardNumber, scan: scan.Identifier}
	if _, ok := s.scans[key]; ok {
		return sentinel.ErrConflict
	}
	s.scans[key] = *scan
	return nil
}

func (s *InMemoryStore) FindByIdentifierAndCard(_ context.Context, id domain.ScanID, number domain.CardNumber) (*models.IdentificationCardScan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sc, ok := s.scans[scanKey{card: number, scan: id}]; ok {
		scan := sc
		return &scan, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) FindByCard(_ context.Context, number domain.CardNumber) ([]models.IdentificationCardScan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.IdentificationCardScan
	for key, sc := range s.scans {
		if key.card == number {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (s *InMemoryStore) Delete(_ context.Context, id domain.ScanID, number domain.CardNumber) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := scanKey{card: number, scan: id}
	if _, ok := s.scans[key]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.scans, key)
	return nil
}

func (s *InMemoryStore) DeleteByCard(_ context.Context, number domain.CardNumber) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.scans {
		if key.card == number {
			delete(s.scans, key)
		}
	}
	return nil
}
