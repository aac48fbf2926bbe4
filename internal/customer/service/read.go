package service

import (
	"context"
	"errors"

	"custodia/internal/customer/models"
	"custodia/pkg/domain"
	dErrors "custodia/pkg/domain-errors"
	"custodia/pkg/platform/sentinel"
)

// GetCustomer returns the customer by identifier.
func (s *Service) GetCustomer(ctx context.Context, id domain.CustomerID) (*models.Customer, error) {
	return s.findCustomer(ctx, id)
}

// GetAddress returns the customer's current address.
func (s *Service) GetAddress(ctx context.Context, id domain.CustomerID) (*models.Address, error) {
	customer, err := s.findCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	address, err := s.addresses.FindByID(ctx, customer.CurrentAddressID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load address for customer %s", id)
	}
	return address, nil
}

// GetContactDetails returns the customer's contact details.
func (s *Service) GetContactDetails(ctx context.Context, id domain.CustomerID) ([]models.ContactDetail, error) {
	if _, err := s.findCustomer(ctx, id); err != nil {
		return nil, err
	}
	details, err := s.contactDetails.FindByCustomer(ctx, id)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load contact details")
	}
	return details, nil
}

// GetFieldValues returns the customer's custom field values.
func (s *Service) GetFieldValues(ctx context.Context, id domain.CustomerID) ([]models.FieldValue, error) {
	if _, err := s.findCustomer(ctx, id); err != nil {
		return nil, err
	}
	values, err := s.fieldValues.FindByCustomer(ctx, id)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load field values")
	}
	return values, nil
}

// GetCommandLog returns the lifecycle commands executed against the
// customer, oldest first.
func (s *Service) GetCommandLog(ctx context.Context, id domain.CustomerID) ([]models.CommandLogEntry, error) {
	if _, err := s.findCustomer(ctx, id); err != nil {
		return nil, err
	}
	entries, err := s.commandLog.ListByCustomer(ctx, id)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load command log")
	}
	return entries, nil
}

// GetIdentificationCards returns all cards attached to the customer.
func (s *Service) GetIdentificationCards(ctx context.Context, id domain.CustomerID) ([]models.IdentificationCard, error) {
	if _, err := s.findCustomer(ctx, id); err != nil {
		return nil, err
	}
	cards, err := s.cards.FindByCustomer(ctx, id)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load identification cards")
	}
	return cards, nil
}

// GetIdentificationCard returns one card owned by the customer.
func (s *Service) GetIdentificationCard(ctx context.Context, id domain.CustomerID, number domain.CardNumber) (*models.IdentificationCard, error) {
	if _, err := s.findCustomer(ctx, id); err != nil {
		return nil, err
	}
	card, err := s.cards.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "identification card %s not found", number)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load identification card")
	}
	if card.CustomerID != id {
		return nil, dErrors.New(dErrors.CodeNotFound, "identification card %s not found", number)
	}
	return card, nil
}

// GetIdentificationCardScans returns the scans of one card without image
// bytes loaded.
func (s *Service) GetIdentificationCardScans(ctx context.Context, id domain.CustomerID, number domain.CardNumber) ([]models.IdentificationCardScan, error) {
	if _, err := s.GetIdentificationCard(ctx, id, number); err != nil {
		return nil, err
	}
	scans, err := s.scans.FindByCard(ctx, number)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load scans")
	}
	return scans, nil
}

// GetIdentificationCardScan returns one scan including its image bytes.
func (s *Service) GetIdentificationCardScan(ctx context.Context, id domain.CustomerID, number domain.CardNumber, scanID domain.ScanID) (*models.IdentificationCardScan, error) {
	if _, err := s.GetIdentificationCard(ctx, id, number); err != nil {
		return nil, err
	}
	scan, err := s.scans.FindByIdentifierAndCard(ctx, scanID, number)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "scan %s not found", scanID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load scan")
	}
	return scan, nil
}

// GetPortrait returns the customer's portrait.
func (s *Service) GetPortrait(ctx context.Context, id domain.CustomerID) (*models.Portrait, error) {
	if _, err := s.findCustomer(ctx, id); err != nil {
		return nil, err
	}
	portrait, err := s.portraits.FindByCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "portrait for customer %s not found", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load portrait")
	}
	return portrait, nil
}
