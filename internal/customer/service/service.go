// Package service implements the customer aggregate: the command surface
// over a customer and everything it owns. Each command executes inside one
// unit of work, enforces the state machine and ownership invariants, stamps
// audit metadata, appends to the command log where the lifecycle demands
// it, and yields exactly one domain event after commit.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"custodia/internal/customer/events"
	"custodia/internal/customer/metrics"
	"custodia/internal/customer/models"
	"custodia/pkg/domain"
	dErrors "custodia/pkg/domain-errors"
	"custodia/pkg/platform/sentinel"
	"custodia/pkg/requestcontext"
)

type CustomerStore interface {
	Create(ctx context.Context, customer *models.Customer) error
	FindByIdentifier(ctx context.Context, id domain.CustomerID) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
}

type AddressStore interface {
	Save(ctx context.Context, addr *models.Address) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Address, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ContactDetailStore interface {
	FindByCustomer(ctx context.Context, customerID domain.CustomerID) ([]models.ContactDetail, error)
	DeleteByCustomer(ctx context.Context, customerID domain.CustomerID) error
	SaveAll(ctx context.Context, customerID domain.CustomerID, details []models.ContactDetail) error
}

type IdentificationCardStore interface {
	Create(ctx context.Context, card *models.IdentificationCard) error
	FindByNumber(ctx context.Context, number domain.CardNumber) (*models.IdentificationCard, error)
	FindByCustomer(ctx context.Context, customerID domain.CustomerID) ([]models.IdentificationCard, error)
	Update(ctx context.Context, card *models.IdentificationCard) error
	Delete(ctx context.Context, number domain.CardNumber) error
}

type CardScanStore interface {
	Save(ctx context.Context, scan *models.IdentificationCardScan) error
	FindByIdentifierAndCard(ctx context.Context, id domain.ScanID, number domain.CardNumber) (*models.IdentificationCardScan, error)
	FindByCard(ctx context.Context, number domain.CardNumber) ([]models.IdentificationCardScan, error)
	Delete(ctx context.Context, id domain.ScanID, number domain.CardNumber) error
	DeleteByCard(ctx context.Context, number domain.CardNumber) error
}

type PortraitStore interface {
	Upsert(ctx context.Context, portrait *models.Portrait) error
	FindByCustomer(ctx context.Context, customerID domain.CustomerID) (*models.Portrait, error)
	DeleteByCustomer(ctx context.Context, customerID domain.CustomerID) error
}

type FieldValueStore interface {
	FindByCustomer(ctx context.Context, customerID domain.CustomerID) ([]models.FieldValue, error)
	DeleteByCustomer(ctx context.Context, customerID domain.CustomerID) error
	SaveAll(ctx context.Context, customerID domain.CustomerID, values []models.FieldValue) error
}

type CommandLogStore interface {
	Append(ctx context.Context, entry *models.CommandLogEntry) error
	ListByCustomer(ctx context.Context, customerID domain.CustomerID) ([]models.CommandLogEntry, error)
}

//go:generate mockgen -destination=mocks/mocks.go -package=mocks custodia/internal/customer/service TaskGate,CatalogLookup,EventPublisher

// TaskGate is the task-tracking subsystem. Guards call it synchronously
// inside the same unit of work as the transition they protect.
type TaskGate interface {
	HasOpenTask(ctx context.Context, customerID domain.CustomerID, kind string) (bool, error)
	RegisterTask(ctx context.Context, customerID domain.CustomerID, kind string) error
}

// CatalogLookup answers whether catalog/field schema entries exist.
type CatalogLookup interface {
	CatalogExists(ctx context.Context, id domain.CatalogID) (bool, error)
	FieldExists(ctx context.Context, catalogID domain.CatalogID, fieldID domain.FieldID) (bool, error)
}

// EventPublisher broadcasts one domain event per successful command, after
// the unit of work has committed.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service orchestrates customer lifecycle commands.
type Service struct {
	uow UnitOfWork

	customers      CustomerStore
	addresses      AddressStore
	contactDetails ContactDetailStore
	cards          IdentificationCardStore
	scans          CardScanStore
	portraits      PortraitStore
	fieldValues    FieldValueStore
	commandLog     CommandLogStore

	taskGate TaskGate
	catalogs CatalogLookup

	logger    *slog.Logger
	publisher EventPublisher
	metrics   *metrics.Metrics
}

// Stores bundles the entity stores so New keeps a readable signature.
type Stores struct {
	Customers      CustomerStore
	Addresses      AddressStore
	ContactDetails ContactDetailStore
	Cards          IdentificationCardStore
	Scans          CardScanStore
	Portraits      PortraitStore
	FieldValues    FieldValueStore
	CommandLog     CommandLogStore
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithEventPublisher(publisher EventPublisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs the aggregate service.
func New(uow UnitOfWork, stores Stores, taskGate TaskGate, catalogs CatalogLookup, opts ...Option) *Service {
	s := &Service{
		uow:            uow,
		customers:      stores.Customers,
		addresses:      stores.Addresses,
		contactDetails: stores.ContactDetails,
		cards:          stores.Cards,
		scans:          stores.Scans,
		portraits:      stores.Portraits,
		fieldValues:    stores.FieldValues,
		commandLog:     stores.CommandLog,
		taskGate:       taskGate,
		catalogs:       catalogs,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// requireActor rejects commands that arrive without an acting user. The
// caller resolves the actor before invoking the aggregate; an empty actor
// is a wiring bug, never a legal command.
func requireActor(ctx context.Context) (string, error) {
	actor := requestcontext.Actor(ctx)
	if actor == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "command requires an acting user")
	}
	return actor, nil
}

// findCustomer loads the aggregate root or translates the store sentinel.
func (s *Service) findCustomer(ctx context.Context, id domain.CustomerID) (*models.Customer, error) {
	customer, err := s.customers.FindByIdentifier(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "customer %s not found", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load customer %s", id)
	}
	return customer, nil
}

// resolveFieldValues verifies every referenced catalog/field pair exists
// and persists the whole set. Any unresolved reference fails the command
// before a single row is written.
func (s *Service) resolveFieldValues(ctx context.Context, customerID domain.CustomerID, values []models.FieldValue) error {
	for _, v := range values {
		ok, err := s.catalogs.CatalogExists(ctx, v.CatalogID)
		if err != nil {
			return err
		}
		if !ok {
			return dErrors.New(dErrors.CodeNotFound, "catalog %s not found", v.CatalogID)
		}
		ok, err = s.catalogs.FieldExists(ctx, v.CatalogID, v.FieldID)
		if err != nil {
			return err
		}
		if !ok {
			return dErrors.New(dErrors.CodeNotFound, "field %s not found", v.FieldID)
		}
	}
	if err := s.fieldValues.SaveAll(ctx, customerID, values); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save field values")
	}
	return nil
}

// replaceContactDetails deletes the full set and inserts the provided one.
// A nil list clears everything; there is no diffing.
func (s *Service) replaceContactDetails(ctx context.Context, customerID domain.CustomerID, details []models.ContactDetail) error {
	if err := s.contactDetails.DeleteByCustomer(ctx, customerID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete contact details")
	}
	if len(details) == 0 {
		return nil
	}
	if err := s.contactDetails.SaveAll(ctx, customerID, details); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save contact details")
	}
	return nil
}

// replaceAddress attaches a fresh address row before the old one is
// deleted. Worst case under a mid-operation fault is an orphaned old row,
// never a customer without an address.
func (s *Service) replaceAddress(ctx context.Context, customer *models.Customer, payload models.Address) error {
	oldAddressID := customer.CurrentAddressID

	newAddress := models.NewAddress(customer.Identifier, payload)
	if err := s.addresses.Save(ctx, newAddress); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save address")
	}

	customer.CurrentAddressID = newAddress.ID
	if err := s.customers.Update(ctx, customer); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to attach address")
	}

	if err := s.addresses.Delete(ctx, oldAddressID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete previous address")
	}
	return nil
}

// publish broadcasts the command's domain event. The command has already
// committed; a publishing failure is logged, not surfaced to the caller.
func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "event publish failed",
			"event", event.Name,
			"key", event.Key,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}

func (s *Service) commandExecuted(ctx context.Context, command string, attributes ...any) {
	args := append(attributes, "command", command, "log_type", "audit",
		"actor", requestcontext.Actor(ctx), "request_id", requestcontext.RequestID(ctx))
	s.logger.InfoContext(ctx, "command executed", args...)
	if s.metrics != nil {
		s.metrics.CommandsExecuted.WithLabelValues(command).Inc()
	}
}

func (s *Service) commandRejected(command string, err error) {
	if s.metrics != nil {
		s.metrics.CommandsRejected.WithLabelValues(command, string(dErrors.CodeOf(err))).Inc()
	}
}
