package service

import (
	"context"
	"errors"
	"time"

	"custodia/internal/customer/events"
	"custodia/internal/customer/models"
	"custodia/pkg/domain"
	dErrors "custodia/pkg/domain-errors"
	"custodia/pkg/platform/sentinel"
	"custodia/pkg/requestcontext"
)

// CardInput carries the mutable attributes of an identification card.
type CardInput struct {
	Number         domain.CardNumber
	Type           string
	Issuer         string
	ExpirationDate *time.Time
}

// ScanInput carries a scan upload.
type ScanInput struct {
	Identifier  domain.ScanID
	Description string
	Image       []byte
	ContentType string
}

// CreateIdentificationCard attaches a new card to the customer. The card
// number is unique across all customers.
func (s *Service) CreateIdentificationCard(ctx context.Context, id domain.CustomerID, input CardInput) error {
	actor, err := requireActor(ctx)
	if err != nil {
		s.commandRejected(events.PostIdentificationCard, err)
		return err
	}
	if input.Number.IsNil() {
		err := dErrors.New(dErrors.CodeValidation, "card number is required")
		s.commandRejected(events.PostIdentificationCard, err)
		return err
	}
	now := requestcontext.Now(ctx)

	err = s.uow.RunInTx(ctx, id.String(), func(ctx context.Context) error {
		customer, err := s.findCustomer(ctx, id)
		if err != nil {
			return err
		}

		card := &models.IdentificationCard{
			Number:         input.Number,
			CustomerID:     id,
			Type:           input.Type,
			Issuer:         input.Issuer,
			ExpirationDate: input.ExpirationDate,
			CreatedBy:      actor,
			CreatedOn:      now,
			LastModifiedBy: actor,
			LastModifiedOn: now,
		}
		if err := s.cards.Create(ctx, card); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeConflict, "identification card %s already exists", input.Number)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create identification card")
		}

		customer.Touch(actor, now)
		if err := s.customers.Update(ctx, customer); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update customer")
		}
		return nil
	})
	if err != nil {
		s.commandRejected(events.PostIdentificationCard, err)
		return err
	}

	s.publish(ctx, events.Event{Name: events.PostIdentificationCard, Key: id.String(), Payload: input.Number})
	s.commandExecuted(ctx, events.PostIdentificationCard, "customer", id, "card", input.Number)
	return nil
}

// UpdateIdentificationCard overwrites the card's mutable attributes. A
// number that resolves to no card owned by the customer writes nothing.
func (s *Service) UpdateIdentificationCard(ctx context.Context, id domain.CustomerID, number domain.CardNumber, input CardInput) error {
	actor, err := requireActor(ctx)
	if err != nil {
		s.commandRejected(events.PutIdentificationCard, err)
		return err
	}
	now := requestcontext.Now(ctx)

	err = s.uow.RunInTx(ctx, id.String(), func(ctx context.Context) error {
		customer, err := s.findCustomer(ctx, id)
		if err != nil {
			return err
		}

		card, err := s.cards.FindByNumber(ctx, number)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load identification card")
		}
		if card.CustomerID != id {
			return nil
		}

		card.Type = input.Type
		card.Issuer = input.Issuer
		card.ExpirationDate = input.ExpirationDate
		card.Touch(actor, now)
		if err := s.cards.Update(ctx, card); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update identification card")
		}

		customer.Touch(actor, now)
		if err := s.customers.Update(ctx, customer); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update customer")
		}
		return nil
	})
	if err != nil {
		s.commandRejected(events.PutIdentificationCard, err)
		return err
	}

	s.publish(ctx, events.Event{Name: events.PutIdentificationCard, Key: id.String(), Payload: number})
	s.commandExecuted(ctx, events.PutIdentificationCard, "customer", id, "card", number)
	return nil
}

// DeleteIdentificationCard removes the card and every scan attached to it.
// A number that resolves to no card owned by the customer writes nothing.
func (s *Service) DeleteIdentificationCard(ctx context.Context, id domain.CustomerID, number domain.CardNumber) error {
	actor, err := requireActor(ctx)
	if err != nil {
		s.commandRejected(events.DeleteIdentificationCard, err)
		return err
	}
	now := requestcontext.Now(ctx)

	err = s.uow.RunInTx(ctx, id.String(), func(ctx context.Context) error {
		customer, err := s.findCustomer(ctx, id)
		if err != nil {
			return err
		}

		card, err := s.cards.FindByNumber(ctx, number)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load identification card")
		}
		if card.CustomerID != id {
			return nil
		}

		if err := s.scans.DeleteByCard(ctx, number); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete card scans")
		}
		if err := s.cards.Delete(ctx, number); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete identification card")
		}

		customer.Touch(actor, now)
		if err := s.customers.Update(ctx, customer); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update customer")
		}
		return nil
	})
	if err != nil {
		s.commandRejected(events.DeleteIdentificationCard, err)
		return err
	}

	s.publish(ctx, events.Event{Name: events.DeleteIdentificationCard, Key: id.String(), Payload: number})
	s.commandExecuted(ctx, events.DeleteIdentificationCard, "customer", id, "card", number)
	return nil
}

// CreateIdentificationCardScan stores a scanned image under the given card.
func (s *Service) CreateIdentificationCardScan(ctx context.Context, id domain.CustomerID, number domain.CardNumber, input ScanInput) error {
	actor, err := requireActor(ctx)
	if err != nil {
		s.commandRejected(events.PostIdentificationCardScan, err)
		return err
	}
	if input.Identifier.IsNil() {
		err := dErrors.New(dErrors.CodeValidation, "scan identifier is required")
		s.commandRejected(events.PostIdentificationCardScan, err)
		return err
	}
	now := requestcontext.Now(ctx)

	err = s.uow.RunInTx(ctx, id.String(), func(ctx context.Context) error {
		customer, err := s.findCustomer(ctx, id)
		if err != nil {
			return err
		}

		card, err := s.cards.FindByNumber(ctx, number)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "identification card %s not found", number)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load identification card")
		}
		if card.CustomerID != id {
			return dErrors.New(dErrors.CodeNotFound, "identification card %s not found", number)
		}

		scan := &models.IdentificationCardScan{
			Identifier:  input.Identifier,
			CardNumber:  number,
			Description: input.Description,
			Image:       input.Image,
			ContentType: input.ContentType,
			Size:        int64(len(input.Image)),
			CreatedBy:   actor,
			CreatedOn:   now,
		}
		if err := s.scans.Save(ctx, scan); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeConflict, "scan %s already exists for card %s", input.Identifier, number)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save scan")
		}

		card.Touch(actor, now)
		if err := s.cards.Update(ctx, card); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update identification card")
		}

		customer.Touch(actor, now)
		if err := s.customers.Update(ctx, customer); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update customer")
		}
		return nil
	})
	if err != nil {
		s.commandRejected(events.PostIdentificationCardScan, err)
		return err
	}

	s.publish(ctx, events.Event{
		Name: events.PostIdentificationCardScan,
		Key:  id.String(),
		Payload: events.ScanEvent{
			CustomerIdentifier: id,
			CardNumber:         number,
			ScanIdentifier:     input.Identifier,
		},
	})
	s.commandExecuted(ctx, events.PostIdentificationCardScan, "customer", id, "card", number, "scan", input.Identifier)
	return nil
}

// DeleteIdentificationCardScan removes a single scan. A card or scan that
// does not resolve under the customer writes nothing.
func (s *Service) DeleteIdentificationCardScan(ctx context.Context, id domain.CustomerID, number domain.CardNumber, scanID domain.ScanID) error {
	actor, err := requireActor(ctx)
	if err != nil {
		s.commandRejected(events.DeleteIdentificationCardScan, err)
		return err
	}
	now := requestcontext.Now(ctx)

	err = s.uow.RunInTx(ctx, id.String(), func(ctx context.Context) error {
		customer, err := s.findCustomer(ctx, id)
		if err != nil {
			return err
		}

		card, err := s.cards.FindByNumber(ctx, number)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load identification card")
		}
		if card.CustomerID != id {
			return nil
		}

		if err := s.scans.Delete(ctx, scanID, number); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete scan")
		}

		card.Touch(actor, now)
		if err := s.cards.Update(ctx, card); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update identification card")
		}

		customer.Touch(actor, now)
		if err := s.customers.Update(ctx, customer); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update customer")
		}
		return nil
	})
	if err != nil {
		s.commandRejected(events.DeleteIdentificationCardScan, err)
		return err
	}

	s.publish(ctx, events.Event{
		Name: events.DeleteIdentificationCardScan,
		Key:  id.String(),
		Payload: events.ScanEvent{
			CustomerIdentifier: id,
			CardNumber:         number,
			ScanIdentifier:     scanID,
		},
	})
	s.commandExecuted(ctx, events.DeleteIdentificationCardScan, "customer", id, "card", number, "scan", scanID)
	return nil
}
