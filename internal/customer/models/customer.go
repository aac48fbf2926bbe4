package models

import (
	"time"

	"github.com/google/uuid"

	"custodia/pkg/domain"
	dErrors "custodia/pkg/domain-errors"
)

// State is the lifecycle state of a customer.
type State string

const (
	StatePending State = "PENDING"
	StateActive  State = "ACTIVE"
	StateLocked  State = "LOCKED"
	StateClosed  State = "CLOSED"
)

// stateTransitions is the complete transition table, keyed by the current
// state and the command leaving it. No other state values are reachable;
// CLOSED is reopenable, so no state is terminal.
var stateTransitions = map[State]map[Action]State{
	StatePending: {ActionActivate: StateActive},
	StateActive:  {ActionLock: StateLocked, ActionClose: StateClosed},
	StateLocked:  {ActionUnlock: StateActive, ActionClose: StateClosed},
	StateClosed:  {ActionReopen: StateActive},
}

// Customer is the aggregate root. It owns exactly one Address, zero-or-many
// contact details, identification cards and field values, and at most one
// portrait. Sub-entities reference it by identifier, never the other way
// around.
//
// Invariants:
//   - Identifier is unique and immutable
//   - CurrentState only changes through the transition table above
//   - CurrentAddressID always points at exactly one live address row
//   - every mutation of the customer or a sub-entity refreshes
//     LastModifiedBy/On inside the same unit of work
//   - customers are never hard-deleted
type Customer struct {
	Identifier         domain.CustomerID
	GivenName          string
	MiddleName         string
	Surname            string
	DateOfBirth        *time.Time
	Member             bool
	AccountBeneficiary string
	ReferenceCustomer  string
	AssignedOffice     string
	AssignedEmployee   string
	CurrentState       State
	ApplicationDate    *time.Time
	CurrentAddressID   uuid.UUID
	CreatedBy          string
	CreatedOn          time.Time
	LastModifiedBy     string
	LastModifiedOn     time.Time
}

// NewCustomer constructs a customer in PENDING state with audit stamps set.
func NewCustomer(identifier domain.CustomerID, actor string, now time.Time) (*Customer, error) {
	if identifier.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "customer identifier cannot be empty")
	}
	if len(identifier) > 32 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "customer identifier must be 32 characters or less")
	}
	return &Customer{
		Identifier:     identifier,
		CurrentState:   StatePending,
		CreatedBy:      actor,
		CreatedOn:      now,
		LastModifiedBy: actor,
		LastModifiedOn: now,
	}, nil
}

// Touch refreshes the modification stamp. Every command that mutates the
// customer or anything it owns must call this before persisting.
func (c *Customer) Touch(actor string, now time.Time) {
	c.LastModifiedBy = actor
	c.LastModifiedOn = now
}

// CanTransition checks that the transition for the given action is defined
// from the current state. Guard evaluation (open tasks) happens at the
// service layer; this covers the shape of the machine only.
func (c *Customer) CanTransition(action Action) error {
	if !action.IsTransition() {
		return dErrors.New(dErrors.CodeValidation, "action %s is not a state transition", action)
	}
	if _, ok := stateTransitions[c.CurrentState][action]; !ok {
		return dErrors.New(dErrors.CodeValidation,
			"customer %s cannot %s while %s", c.Identifier, action, c.CurrentState)
	}
	return nil
}

// ApplyTransition moves the customer to the action's target state and
// refreshes the modification stamp. Activation additionally sets the
// application date if it was never set. Call CanTransition first.
func (c *Customer) ApplyTransition(action Action, actor string, now time.Time) {
	c.CurrentState = actionTargets[action]
	if action == ActionActivate && c.ApplicationDate == nil {
		applied := now
		c.ApplicationDate = &applied
	}
	c.Touch(actor, now)
}

// actionTargets maps transition actions to their target state.
var actionTargets = map[Action]State{
	ActionActivate: StateActive,
	ActionLock:     StateLocked,
	ActionUnlock:   StateActive,
	ActionClose:    StateClosed,
	ActionReopen:   StateActive,
}
