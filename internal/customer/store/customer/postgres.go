package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"custodia/internal/customer/models"
	"custodia/pkg/domain"
	"custodia/pkg/platform/sentinel"
	"custodia/pkg/platform/tx"
)

// PostgresStore persists customers in PostgreSQL. Queries resolve their
// executor through pkg/platform/tx so command writes share one transaction.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const customerColumns = `
	identifier, given_name, middle_name, surname, date_of_birth, member,
	account_beneficiary, reference_customer, assigned_office, assigned_employee,
	current_state, application_date, current_address_id,
	created_by, created_on, last_modified_by, last_modified_on`

func (s *PostgresStore) Create(ctx context.Context, c *models.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := tx.Resolve(ctx, s.db).ExecContext(ctx, query,
		c.Identifier.String(), c.GivenName, c.MiddleName, c.Surname, c.DateOfBirth, c.Member,
		c.AccountBeneficiary, c.ReferenceCustomer, c.AssignedOffice, c.AssignedEmployee,
		string(c.CurrentState), c.ApplicationDate, c.CurrentAddressID,
		c.CreatedBy, c.CreatedOn, c.LastModifiedBy, c.LastModifiedOn)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByIdentifier(ctx context.Context, id domain.CustomerID) (*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE identifier = $1 FOR UPDATE`
	// Without an enclosing transaction FOR UPDATE degenerates to a plain
	// read, which is what the query surface wants anyway.
	if _, inTx := tx.From(ctx); !inTx {
		query = `SELECT ` + customerColumns + ` FROM customers WHERE identifier = $1`
	}

	var (
		c          models.Customer
		identifier string
		state      string
	)
	err := tx.Resolve(ctx, s.db).QueryRowContext(ctx, query, id.String()).Scan(
		&identifier, &c.GivenName, &c.MiddleName, &c.Surname, &c.DateOfBirth, &c.Member,
		&c.AccountBeneficiary, &c.ReferenceCustomer, &c.AssignedOffice, &c.AssignedEmployee,
		&state, &c.ApplicationDate, &c.CurrentAddressID,
		&c.CreatedBy, &c.CreatedOn, &c.LastModifiedBy, &c.LastModifiedOn)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	c.Identifier = domain.CustomerID(identifier)
	c.CurrentState = models.State(state)
	return &c, nil
}

func (s *PostgresStore) Update(ctx context.Context, c *models.Customer) error {
	query := `
		UPDATE customers SET
			given_name = $2, middle_name = $3, surname = $4, date_of_birth = $5, member = $6,
			account_beneficiary = $7, reference_customer = $8, assigned_office = $9,
			assigned_employee = $10, current_state = $11, application_date = $12,
			current_address_id = $13, last_modified_by = $14, last_modified_on = $15
		WHERE identifier = $1
	`
	res, err := tx.Resolve(ctx, s.db).ExecContext(ctx, query,
		c.Identifier.String(), c.GivenName, c.MiddleName, c.Surname, c.DateOfBirth, c.Member,
		c.AccountBeneficiary, c.ReferenceCustomer, c.AssignedOffice, c.AssignedEmployee,
		string(c.CurrentState), c.ApplicationDate, c.CurrentAddressID,
		c.LastModifiedBy, c.LastModifiedOn)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
