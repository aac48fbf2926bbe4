package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"custodia/internal/task/models"
	"custodia/pkg/domain"
	"custodia/pkg/platform/sentinel"
)

// InMemoryStore keeps tasks in process memory for tests and local runs.
type InMemoryStore struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]models.Task
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{tasks: make(map[uuid.UUID]models.Task)}
}

func (s *InMemoryStore) Save(_ context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = *task
	return nil
}

func (s *InMemoryStore) CountOpen(_ context.Context, customerID domain.CustomerID, kind string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, t := range s.tasks {
		if t.Open && t.CustomerID == customerID && t.Kind == kind {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) FindOpen(_ context.Context, customerID domain.CustomerID, kind string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.Open && t.CustomerID == customerID && t.Kind == kind {
			task := t
			return &task, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) Update(_ context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[task.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.tasks[task.ID] = *task
	return nil
}
