package models

import (
	"time"

	"github.com/google/uuid"

	"custodia/pkg/domain"
)

// Task is an open work item tracked for a customer. Certain lifecycle
// transitions are blocked while a task of the matching kind is still open.
type Task struct {
	ID         uuid.UUID
	CustomerID domain.CustomerID
	Kind       string
	Comment    string
	Open       bool
	CreatedBy  string
	CreatedOn  time.Time
	ClosedBy   string
	ClosedOn   *time.Time
}

// NewTask opens a task of the given kind for a customer.
func NewTask(customerID domain.CustomerID, kind, actor string, now time.Time) *Task {
	return &Task{
		ID:         uuid.New(),
		CustomerID: customerID,
		Kind:       kind,
		Open:       true,
		CreatedBy:  actor,
		CreatedOn:  now,
	}
}

// Close marks the task done.
func (t *Task) Close(actor string, now time.Time) {
	t.Open = false
	t.ClosedBy = actor
	closed := now
	t.ClosedOn = &closed
}
