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

// CustomerInput carries everything a create or update command may set.
// ContactDetails and FieldValues are full replacement sets; on update a nil
// slice clears the stored set. Address is required on create and optional
// on update.
type CustomerInput struct {
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
	Address            *models.Address
	ContactDetails     []models.ContactDetail
	FieldValues        []models.FieldValue
}

func (in CustomerInput) validate(requireAddress bool) error {
	if in.GivenName == "" {
		return dErrors.New(dErrors.CodeValidation, "given name is required")
	}
	if in.Surname == "" {
		return dErrors.New(dErrors.CodeValidation, "surname is required")
	}
	if requireAddress && in.Address == nil {
		return dErrors.New(dErrors.CodeValidation, "address is required")
	}
	return nil
}

func applyScalars(customer *models.Customer, in CustomerInput) {
	customer.GivenName = in.GivenName
	customer.MiddleName = in.MiddleName
	customer.Surname = in.Surname
	customer.DateOfBirth = in.DateOfBirth
	customer.Member = in.Member
	customer.AccountBeneficiary = in.AccountBeneficiary
	customer.ReferenceCustomer = in.ReferenceCustomer
	customer.AssignedOffice = in.AssignedOffice
	customer.AssignedEmployee = in.AssignedEmployee
}

// CreateCustomer registers a new customer in PENDING state with its address,
// contact details and field values, and schedules an ACTIVATE task.
func (s *Service) CreateCustomer(ctx context.Context, input CustomerInput) (*models.Customer, error) {
	actor, err := requireActor(ctx)
	if err != nil {
		s.commandRejected(events.PostCustomer, err)
		return nil, err
	}
	if err := input.validate(true); err != nil {
		s.commandRejected(events.PostCustomer, err)
		return nil, err
	}
	now := requestcontext.Now(ctx)

	customer, err := models.NewCustomer(input.Identifier, actor, now)
	if err != nil {
		s.commandRejected(events.PostCustomer, err)
		return nil, err
	}
	applyScalars(customer, input)

	err = s.uow.RunInTx(ctx, customer.Identifier.String(), func(ctx context.Context) error {
		address := models.NewAddress(customer.Identifier, *input.Address)
		if err := s.addresses.Save(ctx, address); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save address")
		}
		customer.CurrentAddressID = address.ID

		if err := s.customers.Create(ctx, customer); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeConflict, "customer %s already exists", customer.Identifier)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create customer")
		}

		if len(input.ContactDetails) > 0 {
			if err := s.contactDetails.SaveAll(ctx, customer.Identifier, input.ContactDetails); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save contact details")
			}
		}
		if len(input.FieldValues) > 0 {
			if err := s.resolveFieldValues(ctx, customer.Identifier, input.FieldValues); err != nil {
				return err
			}
		}

		return s.taskGate.RegisterTask(ctx, customer.Identifier, string(models.ActionActivate))
	})
	if err != nil {
		s.commandRejected(events.PostCustomer, err)
		return nil, err
	}

	s.publish(ctx, events.Event{
		Name:    events.PostCustomer,
		Key:     customer.Identifier.String(),
		Payload: customer.Identifier,
	})
	s.commandExecuted(ctx, events.PostCustomer, "customer", customer.Identifier)
	return customer, nil
}

// UpdateCustomer overwrites the customer's scalar attributes and replaces
// its contact details wholesale. A nil date of birth in the input clears a
// stored one. The address is swapped only when the input carries one, and
// field values are replaced only when the input carries a set; an empty
// non-nil set clears them, nil leaves them untouched.
func (s *Service) UpdateCustomer(ctx context.Context, id domain.CustomerID, input CustomerInput) error {
	actor, err := requireActor(ctx)
	if err != nil {
		s.commandRejected(events.PutCustomer, err)
		return err
	}
	if err := input.validate(false); err != nil {
		s.commandRejected(events.PutCustomer, err)
		return err
	}
	now := requestcontext.Now(ctx)

	err = s.uow.RunInTx(ctx, id.String(), func(ctx context.Context) error {
		customer, err := s.findCustomer(ctx, id)
		if err != nil {
			return err
		}

		applyScalars(customer, input)
		customer.Touch(actor, now)

		if input.Address != nil {
			if err := s.replaceAddress(ctx, customer, *input.Address); err != nil {
				return err
			}
		} else if err := s.customers.Update(ctx, customer); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update customer")
		}

		if err := s.replaceContactDetails(ctx, customer.Identifier, input.ContactDetails); err != nil {
			return err
		}

		if input.FieldValues != nil {
			if err := s.fieldValues.DeleteByCustomer(ctx, customer.Identifier); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete field values")
			}
			if err := s.resolveFieldValues(ctx, customer.Identifier, input.FieldValues); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.commandRejected(events.PutCustomer, err)
		return err
	}

	s.publish(ctx, events.Event{Name: events.PutCustomer, Key: id.String(), Payload: id})
	s.commandExecuted(ctx, events.PutCustomer, "customer", id)
	return nil
}

// UpdateAddress swaps the customer's address for the given one.
func (s *Service) UpdateAddress(ctx context.Context, id domain.CustomerID, payload models.Address) error {
	actor, err := requireActor(ctx)
	if err != nil {
		s.commandRejected(events.PutAddress, err)
		return err
	}
	now := requestcontext.Now(ctx)

	err = s.uow.RunInTx(ctx, id.String(), func(ctx context.Context) error {
		customer, err := s.findCustomer(ctx, id)
		if err != nil {
			return err
		}
		customer.Touch(actor, now)
		return s.replaceAddress(ctx, customer, payload)
	})
	if err != nil {
		s.commandRejected(events.PutAddress, err)
		return err
	}

	s.publish(ctx, events.Event{Name: events.PutAddress, Key: id.String(), Payload: id})
	s.commandExecuted(ctx, events.PutAddress, "customer", id)
	return nil
}

// UpdateContactDetails replaces the customer's contact details with the
// given set. An empty set clears them; repeating a clear is a no-op.
func (s *Service) UpdateContactDetails(ctx context.Context, id domain.CustomerID, details []models.ContactDetail) error {
	actor, err := requireActor(ctx)
	if err != nil {
		s.commandRejected(events.PutContactDetails, err)
		return err
	}
	now := requestcontext.Now(ctx)

	err = s.uow.RunInTx(ctx, id.String(), func(ctx context.Context) error {
		customer, err := s.findCustomer(ctx, id)
		if err != nil {
			return err
		}
		if err := s.replaceContactDetails(ctx, customer.Identifier, details); err != nil {
			return err
		}
		customer.Touch(actor, now)
		if err := s.customers.Update(ctx, customer); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update customer")
		}
		return nil
	})
	if err != nil {
		s.commandRejected(events.PutContactDetails, err)
		return err
	}

	s.publish(ctx, events.Event{Name: events.PutContactDetails, Key: id.String(), Payload: id})
	s.commandExecuted(ctx, events.PutContactDetails, "customer", id)
	return nil
}
