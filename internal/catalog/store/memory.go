package store

import (
	"context"
	"sync"

	"custodia/internal/catalog/models"
	"custodia/pkg/domain"
	"custodia/pkg/platform/sentinel"
)

type fieldKey struct {
	catalog domain.CatalogID
	field   domain.FieldID
}

// InMemoryStore keeps catalog definitions in process memory.
type InMemoryStore struct {
	mu       sync.RWMutex
	catalogs map[domain.CatalogID]models.Catalog
	fields   map[fieldKey]models.Field
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		catalogs: make(map[domain.CatalogID]models.Catalog),
		fields:   make(map[fieldKey]models.Field),
	}
}

// SeedCatalog registers a catalog and its fields, for tests and local runs.
func (s *InMemoryStore) SeedCatalog(catalog models.Catalog, fields ...models.Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalogs[catalog.Identifier] = catalog
	for _, f := range fields {
		f.CatalogID = catalog.Identifier
		s.fields[fieldKey{catalog: catalog.Identifier, field: f.Identifier}] = f
	}
}

func (s *InMemoryStore) FindCatalog(_ context.Context, id domain.CatalogID) (*models.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.catalogs[id]; ok {
		return &c, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) FindField(_ context.Context, catalogID domain.CatalogID, fieldID domain.FieldID) (*models.Field, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if f, ok := s.fields[fieldKey{catalog: catalogID, field: fieldID}]; ok {
		return &f, nil
	}
	return nil, sentinel.ErrNotFound
}
