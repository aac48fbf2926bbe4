package models

import (
	"time"

	"github.com/google/uuid"

	"custodia/pkg/domain"
)

// Action names a lifecycle command. Transition actions double as task kinds
// in the task subsystem: locking a customer schedules an UNLOCK-kind task,
// closing schedules a REOPEN-kind task, creation schedules ACTIVATE.
type Action string

const (
	ActionCreate   Action = "CREATE"
	ActionActivate Action = "ACTIVATE"
	ActionLock     Action = "LOCK"
	ActionUnlock   Action = "UNLOCK"
	ActionClose    Action = "CLOSE"
	ActionReopen   Action = "REOPEN"
)

// IsTransition reports whether the action moves the state machine. CREATE is
// a lifecycle command but not a transition; it establishes the initial state.
func (a Action) IsTransition() bool {
	_, ok := actionTargets[a]
	return ok
}

// CommandLogEntry is the immutable record of one executed lifecycle command.
// Entries are append-only; nothing updates or deletes them.
type CommandLogEntry struct {
	ID         uuid.UUID
	CustomerID domain.CustomerID
	Action     Action
	Comment    string
	CreatedBy  string
	CreatedOn  time.Time
}

// NewCommandLogEntry stamps a log entry for an executed command.
func NewCommandLogEntry(customerID domain.CustomerID, action Action, comment, actor string, now time.Time) *CommandLogEntry {
	return &CommandLogEntry{
		ID:         uuid.New(),
		CustomerID: customerID,
		Action:     action,
		Comment:    comment,
		CreatedBy:  actor,
		CreatedOn:  now,
	}
}
