package identificationcard

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

// PostgresStore persists identification cards in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const cardColumns = `
	number, customer_identifier, type, issuer, expiration_date,
	created_by, created_on, last_modified_by, last_modified_on`

func (s *PostgresStore) Create(ctx context.Context, c *models.IdentificationCard) error {
	query := `
		INSERT INTO identification_cards (` + cardColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := tx.Resolve(ctx, s.db).ExecContext(ctx, query,
		c.Number.String(), c.CustomerID.String(), c.Type, c.Issuer, c.ExpirationDate,
		c.CreatedBy, c.CreatedOn, c.LastModifiedBy, c.LastModifiedOn)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create identification card: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByNumber(ctx context.Context, number domain.CardNumber) (*models.IdentificationCard, error) {
	query := `SELECT ` + cardColumns + ` FROM identification_cards WHERE number = $1`
	var (
		c          models.IdentificationCard
		cardNumber string
		customer   string
	)
	err := tx.Resolve(ctx, s.db).QueryRowContext(ctx, query, number.String()).Scan(
		&cardNumber, &customer, &c.Type, &c.Issuer, &c.ExpirationDate,
		&c.CreatedBy, &c.CreatedOn, &c.LastModifiedBy, &c.LastModifiedOn)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find identification card: %w", err)
	}
	c.Number = domain.CardNumber(cardNumber)
	c.CustomerID = domain.CustomerID(customer)
	return &c, nil
}

func (s *PostgresStore) FindByCustomer(ctx context.Context, customerID domain.CustomerID) ([]models.IdentificationCard, error) {
	query := `SELECT ` + cardColumns + ` FROM identification_cards WHERE customer_identifier = $1 ORDER BY created_on`
	rows, err := tx.Resolve(ctx, s.db).QueryContext(ctx, query, customerID.String())
	if err != nil {
		return nil, fmt.Errorf("list identification cards: %w", err)
	}
	defer rows.Close()

	var out []models.IdentificationCard
	for rows.Next() {
		var (
			c          models.IdentificationCard
			cardNumber string
			customer   string
		)
		if err := rows.Scan(&cardNumber, &customer, &c.Type, &c.Issuer, &c.ExpirationDate,
			&c.CreatedBy, &c.CreatedOn, &c.LastModifiedBy, &c.LastModifiedOn); err != nil {
			return nil, fmt.Errorf("scan identification card: %w", err)
		}
		c.Number = domain.CardNumber(cardNumber)
		c.CustomerID = domain.CustomerID(customer)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, c *models.IdentificationCard) error {
	query := `
		UPDATE identification_cards
		SET type = $2, issuer = $3, expiration_date = $4, last_modified_by = $5, last_modified_on = $6
		WHERE number = $1
	`
	res, err := tx.Resolve(ctx, s.db).ExecContext(ctx, query,
		c.Number.String(), c.Type, c.Issuer, c.ExpirationDate, c.LastModifiedBy, c.LastModifiedOn)
	if err != nil {
		return fmt.Errorf("update identification card: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update identification card: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, number domain.CardNumber) error {
	_, err := tx.Resolve(ctx, s.db).ExecContext(ctx,
		`DELETE FROM identification_cards WHERE number = $1`, number.String())
	if err != nil {
		return fmt.Errorf("delete identification card: %w", err)
	}
	return nil
}
