package service

import (
	"context"

	"custodia/internal/customer/events"
	"custodia/internal/customer/models"
	"custodia/pkg/domain"
	dErrors "custodia/pkg/domain-errors"
	"custodia/pkg/requestcontext"
)

// transitionGuards names the task kind that must not be open for the
// transition to proceed. Locking and closing schedule these tasks; until
// someone closes them the reverse transition is blocked.
var transitionGuards = map[models.Action]models.Action{
	models.ActionUnlock: models.ActionUnlock,
	models.ActionReopen: models.ActionReopen,
}

// transitionSchedules names the task kind a transition registers for
// later follow-up.
var transitionSchedules = map[models.Action]models.Action{
	models.ActionLock:  models.ActionUnlock,
	models.ActionClose: models.ActionReopen,
}

var transitionEvents = map[models.Action]string{
	models.ActionActivate: events.ActivateCustomer,
	models.ActionLock:     events.LockCustomer,
	models.ActionUnlock:   events.UnlockCustomer,
	models.ActionClose:    events.CloseCustomer,
	models.ActionReopen:   events.ReopenCustomer,
}

// ActivateCustomer moves a PENDING customer to ACTIVE and stamps the
// application date on first activation.
func (s *Service) ActivateCustomer(ctx context.Context, id domain.CustomerID, comment string) error {
	return s.transition(ctx, id, models.ActionActivate, comment)
}

// LockCustomer moves an ACTIVE customer to LOCKED and schedules an UNLOCK
// task.
func (s *Service) LockCustomer(ctx context.Context, id domain.CustomerID, comment string) error {
	return s.transition(ctx, id, models.ActionLock, comment)
}

// UnlockCustomer moves a LOCKED customer back to ACTIVE. Blocked while an
// UNLOCK task is still open.
func (s *Service) UnlockCustomer(ctx context.Context, id domain.CustomerID, comment string) error {
	return s.transition(ctx, id, models.ActionUnlock, comment)
}

// CloseCustomer moves an ACTIVE or LOCKED customer to CLOSED and schedules
// a REOPEN task.
func (s *Service) CloseCustomer(ctx context.Context, id domain.CustomerID, comment string) error {
	return s.transition(ctx, id, models.ActionClose, comment)
}

// ReopenCustomer moves a CLOSED customer back to ACTIVE. Blocked while a
// REOPEN task is still open.
func (s *Service) ReopenCustomer(ctx context.Context, id domain.CustomerID, comment string) error {
	return s.transition(ctx, id, models.ActionReopen, comment)
}

func (s *Service) transition(ctx context.Context, id domain.CustomerID, action models.Action, comment string) error {
	eventName := transitionEvents[action]

	actor, err := requireActor(ctx)
	if err != nil {
		s.commandRejected(eventName, err)
		return err
	}
	now := requestcontext.Now(ctx)

	err = s.uow.RunInTx(ctx, id.String(), func(ctx context.Context) error {
		customer, err := s.findCustomer(ctx, id)
		if err != nil {
			return err
		}
		if err := customer.CanTransition(action); err != nil {
			return err
		}

		if guard, ok := transitionGuards[action]; ok {
			open, err := s.taskGate.HasOpenTask(ctx, id, string(guard))
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check open tasks")
			}
			if open {
				return dErrors.New(dErrors.CodeConflict,
					"customer %s has an open %s task", id, guard)
			}
		}

		customer.ApplyTransition(action, actor, now)
		if err := s.customers.Update(ctx, customer); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update customer")
		}

		entry := models.NewCommandLogEntry(id, action, comment, actor, now)
		if err := s.commandLog.Append(ctx, entry); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append command log")
		}

		if schedule, ok := transitionSchedules[action]; ok {
			return s.taskGate.RegisterTask(ctx, id, string(schedule))
		}
		return nil
	})
	if err != nil {
		s.commandRejected(eventName, err)
		return err
	}

	s.publish(ctx, events.Event{Name: eventName, Key: id.String(), Payload: id})
	s.commandExecuted(ctx, eventName, "customer", id, "action", string(action))
	return nil
}
