package service

import (
	"context"

	"custodia/internal/customer/events"
	"custodia/internal/customer/models"
	"custodia/pkg/domain"
	dErrors "custodia/pkg/domain-errors"
	"custodia/pkg/requestcontext"
)

// PortraitInput carries a portrait upload. An empty image makes the create
// command a no-op.
type PortraitInput struct {
	Image       []byte
	ContentType string
}

// CreatePortrait stores the customer's portrait, replacing any existing
// one. An empty image writes nothing and emits no event.
func (s *Service) CreatePortrait(ctx context.Context, id domain.CustomerID, input PortraitInput) error {
	actor, err := requireActor(ctx)
	if err != nil {
		s.commandRejected(events.PostPortrait, err)
		return err
	}
	if len(input.Image) == 0 {
		return nil
	}
	now := requestcontext.Now(ctx)

	err = s.uow.RunInTx(ctx, id.String(), func(ctx context.Context) error {
		customer, err := s.findCustomer(ctx, id)
		if err != nil {
			return err
		}

		portrait := &models.Portrait{
			CustomerID:  id,
			Image:       input.Image,
			ContentType: input.ContentType,
			Size:        int64(len(input.Image)),
		}
		if err := s.portraits.Upsert(ctx, portrait); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save portrait")
		}

		customer.Touch(actor, now)
		if err := s.customers.Update(ctx, customer); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update customer")
		}
		return nil
	})
	if err != nil {
		s.commandRejected(events.PostPortrait, err)
		return err
	}

	s.publish(ctx, events.Event{Name: events.PostPortrait, Key: id.String(), Payload: id})
	s.commandExecuted(ctx, events.PostPortrait, "customer", id)
	return nil
}

// DeletePortrait removes the customer's portrait. Deleting when none is
// stored is a no-op that still counts as an executed command.
func (s *Service) DeletePortrait(ctx context.Context, id domain.CustomerID) error {
	actor, err := requireActor(ctx)
	if err != nil {
		s.commandRejected(events.DeletePortrait, err)
		return err
	}
	now := requestcontext.Now(ctx)

	err = s.uow.RunInTx(ctx, id.String(), func(ctx context.Context) error {
		customer, err := s.findCustomer(ctx, id)
		if err != nil {
			return err
		}

		if err := s.portraits.DeleteByCustomer(ctx, id); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete portrait")
		}

		customer.Touch(actor, now)
		if err := s.customers.Update(ctx, customer); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update customer")
		}
		return nil
	})
	if err != nil {
		s.commandRejected(events.DeletePortrait, err)
		return err
	}

	s.publish(ctx, events.Event{Name: events.DeletePortrait, Key: id.String(), Payload: id})
	s.commandExecuted(ctx, events.DeletePortrait, "customer", id)
	return nil
}
