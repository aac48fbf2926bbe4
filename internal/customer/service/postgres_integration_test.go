//go:build integration

package service_test

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/suite"

	catalogservice "custodia/internal/catalog/service"
	catalogstore "custodia/internal/catalog/store"
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
	"custodia/pkg/testutil/containers"
)

type ServiceIntegrationSuite struct {
	suite.Suite

	ctx       context.Context
	pg        *containers.Postgres
	db        *sql.DB
	svc       *service.Service
	taskSvc   *taskservice.Service
	addresses *addressstore.PostgresStore
}

func TestServiceIntegrationSuite(t *testing.T) {
	suite.Run(t, new(ServiceIntegrationSuite))
}

func (s *ServiceIntegrationSuite) SetupSuite() {
	base := context.Background()

	pg, err := containers.StartPostgres(base)
	s.Require().NoError(err)
	s.pg = pg

	db, err := sql.Open("pgx", pg.DSN)
	s.Require().NoError(err)
	s.Require().NoError(db.PingContext(base))
	s.db = db

	logger := slog.New(slog.DiscardHandler)
	s.addresses = addressstore.NewPostgres(db)
	s.taskSvc = taskservice.New(taskstore.NewPostgres(db), logger)

	s.svc = service.New(
		service.NewSQLUnitOfWork(db),
		service.Stores{
			Customers:      customerstore.NewPostgres(db),
			Addresses:      s.addresses,
			ContactDetails: contactdetailstore.NewPostgres(db),
			Cards:          cardstore.NewPostgres(db),
			Scans:          cardscanstore.NewPostgres(db),
			Portraits:      portraitstore.NewPostgres(db),
			FieldValues:    fieldvaluestore.NewPostgres(db),
			CommandLog:     commandlogstore.NewPostgres(db),
		},
		s.taskSvc,
		catalogservice.NewLookup(catalogstore.NewPostgres(db), nil, logger),
		service.WithLogger(logger),
	)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(requestcontext.WithActor(base, "operator"), now)
}

func (s *ServiceIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		_ = s.db.Close()
	}
	if s.pg != nil {
		_ = s.pg.Terminate(context.Background())
	}
}

func (s *ServiceIntegrationSuite) SetupTest() {
	s.Require().NoError(containers.TruncateTables(s.ctx, s.db,
		"tasks", "command_log", "field_values", "portraits",
		"identification_card_scans", "identification_cards",
		"contact_details", "addresses", "customers"))
}

func (s *ServiceIntegrationSuite) input(id string) service.CustomerInput {
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

func (s *ServiceIntegrationSuite) TestCreateCommitsAtomically() {
	_, err := s.svc.CreateCustomer(s.ctx, s.input("cust-001"))
	s.Require().NoError(err)

	count, err := s.addresses.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, count)

	open, err := s.taskSvc.HasOpenTask(s.ctx, "cust-001", string(models.ActionActivate))
	s.Require().NoError(err)
	s.True(open)
}

func (s *ServiceIntegrationSuite) TestDuplicateCreateRollsBackAddress() {
	_, err := s.svc.CreateCustomer(s.ctx, s.input("cust-002"))
	s.Require().NoError(err)

	_, err = s.svc.CreateCustomer(s.ctx, s.input("cust-002"))
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	// The losing command's address insert must not survive its transaction.
	count, err := s.addresses.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *ServiceIntegrationSuite) TestAddressSwapKeepsSingleRow() {
	_, err := s.svc.CreateCustomer(s.ctx, s.input("cust-003"))
	s.Require().NoError(err)

	s.Require().NoError(s.svc.UpdateAddress(s.ctx, "cust-003", models.Address{
		Street: "99 New St", City: "Melbourne", CountryCode: "AU", Country: "Australia",
	}))

	address, err := s.svc.GetAddress(s.ctx, "cust-003")
	s.Require().NoError(err)
	s.Equal("Melbourne", address.City)

	count, err := s.addresses.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *ServiceIntegrationSuite) TestLifecycleChain() {
	_, err := s.svc.CreateCustomer(s.ctx, s.input("cust-004"))
	s.Require().NoError(err)

	s.Require().NoError(s.taskSvc.CloseTask(s.ctx, "cust-004", string(models.ActionActivate)))
	s.Require().NoError(s.svc.ActivateCustomer(s.ctx, "cust-004", ""))
	s.Require().NoError(s.svc.LockCustomer(s.ctx, "cust-004", ""))

	err = s.svc.UnlockCustomer(s.ctx, "cust-004", "")
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	s.Require().NoError(s.taskSvc.CloseTask(s.ctx, "cust-004", string(models.ActionUnlock)))
	s.Require().NoError(s.svc.UnlockCustomer(s.ctx, "cust-004", ""))

	customer, err := s.svc.GetCustomer(s.ctx, "cust-004")
	s.Require().NoError(err)
	s.Equal(models.StateActive, customer.CurrentState)

	entries, err := s.svc.GetCommandLog(s.ctx, "cust-004")
	s.Require().NoError(err)
	s.Len(entries, 3)
}
