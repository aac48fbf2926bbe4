package service_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	catalogmodels "custodia/internal/catalog/models"
	catalogservice "custodia/internal/catalog/service"
	catalogstore "custodia/internal/catalog/store"
	"custodia/internal/customer/events"
	"custodia/internal/customer/models"
	"custodia/internal/customer/service"
	addressstore "custodia/internal/customer/store/address"
	cardscanstore "custodia/internal/customer/store/cardscan"
	commandlogstore "custodia/internal/customer/store/commandlog"
	contactdetailstore "custodia/internal/customer/store/contactdetail"
	customerstore "custodia/internal/customer/store/customer"
	fieldvaluestore "custodia/internal/customer/store/fieldvalue"
	cardstore "custodia/internal/customer/store/identificationcard"
	portraitstore "custodia/internal/customer/store/portrait"
	taskservice "custodia/internal/task/service"
	taskstore "custodia/internal/task/store"
	"custodia/pkg/domain"
	dErrors "custodia/pkg/domain-errors"
	"custodia/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite

	ctx context.Context
	now time.Time

	svc       *service.Service
	publisher *events.MemoryPublisher
	taskSvc   *taskservice.Service
	addresses *addressstore.InMemoryStore
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	logger := slog.New(slog.DiscardHandler)

	catalogs := catalogstore.NewInMemory()
	catalogs.SeedCatalog(
		catalogmodels.Catalog{Identifier: "onboarding", Name: "Onboarding"},
		catalogmodels.Field{Identifier: "segment", Label: "Segment", DataType: "TEXT"},
	)

	s.taskSvc = taskservice.New(taskstore.NewInMemory(), logger)
	s.publisher = events.NewMemoryPublisher()
	s.addresses = addressstore.NewInMemory()

	s.svc = service.New(
		service.NewShardedUnitOfWork(),
		service.Stores{
			Customers:      customerstore.NewInMemory(),
			Addresses:      s.addresses,
			ContactDetails: contactdetailstore.NewInMemory(),
			Cards:          cardstore.NewInMemory(),
			Scans:          cardscanstore.NewInMemory(),
			Portraits:      portraitstore.NewInMemory(),
			FieldValues:    fieldvaluestore.NewInMemory(),
			CommandLog:     commandlogstore.NewInMemory(),
		},
		s.taskSvc,
		catalogservice.NewLookup(catalogs, nil, logger),
		service.WithLogger(logger),
		service.WithEventPublisher(s.publisher),
	)

	s.now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(
		requestcontext.WithActor(context.Background(), "operator"), s.now)
}

func (s *ServiceSuite) input(id string) service.CustomerInput {
	return service.CustomerInput{
		Identifier: domain.CustomerID(id),
		GivenName:  "Ada",
		Surname:    "Lovelace",
		Address: &models.Address{
			Street:      "12 Main St",
			City:        "Albury",
			CountryCode: "AU",
			Country:     "Australia",
		},
	}
}

func (s *ServiceSuite) create(id string) *models.Customer {
	customer, err := s.svc.CreateCustomer(s.ctx, s.input(id))
	s.Require().NoError(err)
	return customer
}

func (s *ServiceSuite) activate(id string) {
	s.Require().NoError(s.taskSvc.CloseTask(s.ctx, domain.CustomerID(id), string(models.ActionActivate)))
	s.Require().NoError(s.svc.ActivateCustomer(s.ctx, domain.CustomerID(id), ""))
}

func (s *ServiceSuite) lastEvent() events.Event {
	published := s.publisher.Events()
	s.Require().NotEmpty(published)
	return published[len(published)-1]
}

func (s *ServiceSuite) TestCreateCustomer() {
	s.Run("creates pending customer with one address", func() {
		customer := s.create("cust-001")

		s.Equal(models.StatePending, customer.CurrentState)
		s.Equal("operator", customer.CreatedBy)

		address, err := s.svc.GetAddress(s.ctx, "cust-001")
		s.Require().NoError(err)
		s.Equal("Albury", address.City)

		count, err := s.addresses.Count(s.ctx)
		s.Require().NoError(err)
		s.Equal(1, count)

		s.Equal(events.PostCustomer, s.lastEvent().Name)
	})

	s.Run("schedules an activate task", func() {
		s.create("cust-002")
		open, err := s.taskSvc.HasOpenTask(s.ctx, "cust-002", string(models.ActionActivate))
		s.Require().NoError(err)
		s.True(open)
	})

	s.Run("rejects duplicate identifier", func() {
		s.create("cust-003")
		_, err := s.svc.CreateCustomer(s.ctx, s.input("cust-003"))
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("rejects missing address", func() {
		input := s.input("cust-004")
		input.Address = nil
		_, err := s.svc.CreateCustomer(s.ctx, input)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("rejects missing actor", func() {
		_, err := s.svc.CreateCustomer(context.Background(), s.input("cust-005"))
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("rejects unknown catalog reference", func() {
		input := s.input("cust-006")
		input.FieldValues = []models.FieldValue{
			{CatalogID: "missing", FieldID: "segment", Value: "retail"},
		}
		_, err := s.svc.CreateCustomer(s.ctx, input)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("accepts known catalog reference", func() {
		input := s.input("cust-007")
		input.FieldValues = []models.FieldValue{
			{CatalogID: "onboarding", FieldID: "segment", Value: "retail"},
		}
		_, err := s.svc.CreateCustomer(s.ctx, input)
		s.Require().NoError(err)

		values, err := s.svc.GetFieldValues(s.ctx, "cust-007")
		s.Require().NoError(err)
		s.Require().Len(values, 1)
		s.Equal("retail", values[0].Value)
	})
}

func (s *ServiceSuite) TestLifecycle() {
	s.Run("full chain ends active", func() {
		s.create("cust-010")
		s.activate("cust-010")

		s.Require().NoError(s.svc.LockCustomer(s.ctx, "cust-010", "suspicious activity"))
		s.Require().NoError(s.taskSvc.CloseTask(s.ctx, "cust-010", string(models.ActionUnlock)))
		s.Require().NoError(s.svc.UnlockCustomer(s.ctx, "cust-010", ""))
		s.Require().NoError(s.svc.CloseCustomer(s.ctx, "cust-010", "left the bank"))
		s.Require().NoError(s.taskSvc.CloseTask(s.ctx, "cust-010", string(models.ActionReopen)))
		s.Require().NoError(s.svc.ReopenCustomer(s.ctx, "cust-010", "came back"))

		customer, err := s.svc.GetCustomer(s.ctx, "cust-010")
		s.Require().NoError(err)
		s.Equal(models.StateActive, customer.CurrentState)

		entries, err := s.svc.GetCommandLog(s.ctx, "cust-010")
		s.Require().NoError(err)
		s.Require().Len(entries, 5)
		s.Equal(models.ActionActivate, entries[0].Action)
		s.Equal(models.ActionReopen, entries[4].Action)
		s.Equal("suspicious activity", entries[1].Comment)
	})

	s.Run("activation stamps application date", func() {
		s.create("cust-011")
		s.activate("cust-011")

		customer, err := s.svc.GetCustomer(s.ctx, "cust-011")
		s.Require().NoError(err)
		s.Require().NotNil(customer.ApplicationDate)
		s.Equal(s.now, *customer.ApplicationDate)
	})

	s.Run("unlock blocked while unlock task is open", func() {
		s.create("cust-012")
		s.activate("cust-012")
		s.Require().NoError(s.svc.LockCustomer(s.ctx, "cust-012", ""))

		err := s.svc.UnlockCustomer(s.ctx, "cust-012", "")
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))

		customer, getErr := s.svc.GetCustomer(s.ctx, "cust-012")
		s.Require().NoError(getErr)
		s.Equal(models.StateLocked, customer.CurrentState)
	})

	s.Run("reopen blocked while reopen task is open", func() {
		s.create("cust-013")
		s.activate("cust-013")
		s.Require().NoError(s.svc.CloseCustomer(s.ctx, "cust-013", ""))

		err := s.svc.ReopenCustomer(s.ctx, "cust-013", "")
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("undefined transition rejected", func() {
		s.create("cust-014")
		s.activate("cust-014")

		err := s.svc.ActivateCustomer(s.ctx, "cust-014", "")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("transition on unknown customer rejected", func() {
		err := s.svc.ActivateCustomer(s.ctx, "ghost", "")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("unlock does not apply to a pending customer", func() {
		s.create("cust-015")

		err := s.svc.UnlockCustomer(s.ctx, "cust-015", "")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		customer, getErr := s.svc.GetCustomer(s.ctx, "cust-015")
		s.Require().NoError(getErr)
		s.Equal(models.StatePending, customer.CurrentState)
	})

	s.Run("activate does not apply to a locked customer", func() {
		s.create("cust-016")
		s.activate("cust-016")
		s.Require().NoError(s.svc.LockCustomer(s.ctx, "cust-016", ""))

		err := s.svc.ActivateCustomer(s.ctx, "cust-016", "")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		customer, getErr := s.svc.GetCustomer(s.ctx, "cust-016")
		s.Require().NoError(getErr)
		s.Equal(models.StateLocked, customer.CurrentState)
	})

	s.Run("reopen does not apply to a pending customer", func() {
		s.create("cust-017")

		err := s.svc.ReopenCustomer(s.ctx, "cust-017", "")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestUpdateCustomer() {
	s.Run("overwrites scalars and clears date of birth", func() {
		dob := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
		input := s.input("cust-020")
		input.DateOfBirth = &dob
		_, err := s.svc.CreateCustomer(s.ctx, input)
		s.Require().NoError(err)

		update := s.input("cust-020")
		update.Address = nil
		update.GivenName = "Augusta"
		update.DateOfBirth = nil

		later := requestcontext.WithTime(s.ctx, s.now.Add(time.Hour))
		s.Require().NoError(s.svc.UpdateCustomer(later, "cust-020", update))

		customer, err := s.svc.GetCustomer(s.ctx, "cust-020")
		s.Require().NoError(err)
		s.Equal("Augusta", customer.GivenName)
		s.Nil(customer.DateOfBirth)
		s.Equal(s.now.Add(time.Hour), customer.LastModifiedOn)
	})

	s.Run("replaces field values wholesale", func() {
		input := s.input("cust-021")
		input.FieldValues = []models.FieldValue{
			{CatalogID: "onboarding", FieldID: "segment", Value: "retail"},
		}
		_, err := s.svc.CreateCustomer(s.ctx, input)
		s.Require().NoError(err)

		update := s.input("cust-021")
		update.Address = nil
		update.FieldValues = []models.FieldValue{
			{CatalogID: "onboarding", FieldID: "segment", Value: "corporate"},
		}
		s.Require().NoError(s.svc.UpdateCustomer(s.ctx, "cust-021", update))

		values, err := s.svc.GetFieldValues(s.ctx, "cust-021")
		s.Require().NoError(err)
		s.Require().Len(values, 1)
		s.Equal("corporate", values[0].Value)
	})

	s.Run("keeps field values when the update carries none", func() {
		input := s.input("cust-023")
		input.FieldValues = []models.FieldValue{
			{CatalogID: "onboarding", FieldID: "segment", Value: "retail"},
		}
		_, err := s.svc.CreateCustomer(s.ctx, input)
		s.Require().NoError(err)

		update := s.input("cust-023")
		update.Address = nil
		s.Require().NoError(s.svc.UpdateCustomer(s.ctx, "cust-023", update))

		values, err := s.svc.GetFieldValues(s.ctx, "cust-023")
		s.Require().NoError(err)
		s.Require().Len(values, 1)
		s.Equal("retail", values[0].Value)
	})

	s.Run("clears field values on an explicit empty set", func() {
		input := s.input("cust-024")
		input.FieldValues = []models.FieldValue{
			{CatalogID: "onboarding", FieldID: "segment", Value: "retail"},
		}
		_, err := s.svc.CreateCustomer(s.ctx, input)
		s.Require().NoError(err)

		update := s.input("cust-024")
		update.Address = nil
		update.FieldValues = []models.FieldValue{}
		s.Require().NoError(s.svc.UpdateCustomer(s.ctx, "cust-024", update))

		values, err := s.svc.GetFieldValues(s.ctx, "cust-024")
		s.Require().NoError(err)
		s.Empty(values)
	})

	s.Run("swaps address when one is provided", func() {
		s.create("cust-022")

		update := s.input("cust-022")
		update.Address = &models.Address{
			Street:      "7 Harbour Rd",
			City:        "Sydney",
			CountryCode: "AU",
			Country:     "Australia",
		}
		s.Require().NoError(s.svc.UpdateCustomer(s.ctx, "cust-022", update))

		address, err := s.svc.GetAddress(s.ctx, "cust-022")
		s.Require().NoError(err)
		s.Equal("Sydney", address.City)
	})

	s.Run("unknown customer rejected", func() {
		update := s.input("ghost")
		update.Address = nil
		err := s.svc.UpdateCustomer(s.ctx, "ghost", update)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestUpdateAddress() {
	s.Run("keeps exactly one live address", func() {
		s.create("cust-030")

		s.Require().NoError(s.svc.UpdateAddress(s.ctx, "cust-030", models.Address{
			Street:      "99 New St",
			City:        "Melbourne",
			CountryCode: "AU",
			Country:     "Australia",
		}))

		address, err := s.svc.GetAddress(s.ctx, "cust-030")
		s.Require().NoError(err)
		s.Equal("Melbourne", address.City)

		count, err := s.addresses.Count(s.ctx)
		s.Require().NoError(err)
		s.Equal(1, count)
	})

	s.Run("touches the customer", func() {
		s.create("cust-031")
		later := requestcontext.WithTime(s.ctx, s.now.Add(time.Hour))
		s.Require().NoError(s.svc.UpdateAddress(later, "cust-031", models.Address{
			Street: "1 Side St", City: "Perth", CountryCode: "AU", Country: "Australia",
		}))

		customer, err := s.svc.GetCustomer(s.ctx, "cust-031")
		s.Require().NoError(err)
		s.Equal(s.now.Add(time.Hour), customer.LastModifiedOn)
	})
}

func (s *ServiceSuite) TestUpdateContactDetails() {
	s.Run("replaces the set", func() {
		s.create("cust-040")

		details := []models.ContactDetail{
			{Type: models.ContactEmail, Value: "ada@example.com", PreferenceLevel: 1},
			{Type: models.ContactMobile, Value: "+61400000000", PreferenceLevel: 2},
		}
		s.Require().NoError(s.svc.UpdateContactDetails(s.ctx, "cust-040", details))

		stored, err := s.svc.GetContactDetails(s.ctx, "cust-040")
		s.Require().NoError(err)
		s.Len(stored, 2)
	})

	s.Run("empty set clears and stays idempotent", func() {
		s.create("cust-041")
		s.Require().NoError(s.svc.UpdateContactDetails(s.ctx, "cust-041", []models.ContactDetail{
			{Type: models.ContactEmail, Value: "ada@example.com"},
		}))

		s.Require().NoError(s.svc.UpdateContactDetails(s.ctx, "cust-041", nil))
		s.Require().NoError(s.svc.UpdateContactDetails(s.ctx, "cust-041", nil))

		stored, err := s.svc.GetContactDetails(s.ctx, "cust-041")
		s.Require().NoError(err)
		s.Empty(stored)
	})
}
