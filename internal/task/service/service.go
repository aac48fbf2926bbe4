// Package service implements the task gate the customer aggregate consults
// before guarded transitions. It is queried synchronously inside the same
// unit of work as the transition it guards.
package service

import (
	"context"
	"errors"
	"log/slog"

	"custodia/internal/task/models"
	"custodia/pkg/domain"
	dErrors "custodia/pkg/domain-errors"
	"custodia/pkg/platform/sentinel"
	"custodia/pkg/requestcontext"
)

type Store interface {
	Save(ctx context.Context, task *models.Task) error
	CountOpen(ctx context.Context, customerID domain.CustomerID, kind string) (int, error)
	FindOpen(ctx context.Context, customerID domain.CustomerID, kind string) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
}

// Service answers "does an open task of kind K exist for customer C" and
// registers new obligations when commands schedule follow-up work.
type Service struct {
	store  Store
	logger *slog.Logger
}

func New(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// HasOpenTask reports whether a blocking task of the given kind is open.
func (s *Service) HasOpenTask(ctx context.Context, customerID domain.CustomerID, kind string) (bool, error) {
	count, err := s.store.CountOpen(ctx, customerID, kind)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count open tasks")
	}
	return count > 0, nil
}

// RegisterTask opens a task of the given kind for a customer.
func (s *Service) RegisterTask(ctx context.Context, customerID domain.CustomerID, kind string) error {
	task := models.NewTask(customerID, kind, requestcontext.Actor(ctx), requestcontext.Now(ctx))
	if err := s.store.Save(ctx, task); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to register task")
	}
	s.logger.InfoContext(ctx, "task registered",
		"customer", customerID,
		"kind", kind,
		"task_id", task.ID,
	)
	return nil
}

// CloseTask closes the oldest open task of the given kind. Closing when no
// task is open is a no-op so operators can reconcile freely.
func (s *Service) CloseTask(ctx context.Context, customerID domain.CustomerID, kind string) error {
	task, err := s.store.FindOpen(ctx, customerID, kind)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to find open task")
	}
	task.Close(requestcontext.Actor(ctx), requestcontext.Now(ctx))
	if err := s.store.Update(ctx, task); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to close task")
	}
	return nil
}
