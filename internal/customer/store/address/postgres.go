package address

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"custodia/internal/customer/models"
	"custodia/pkg/domain"
	"custodia/pkg/platform/sentinel"
	"custodia/pkg/platform/tx"
)

// PostgresStore persists address rows in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, a *models.Address) error {
	query := `
		INSERT INTO addresses (id, customer_identifier, street, city, region, postal_code, country_code, country, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := tx.Resolve(ctx, s.db).ExecContext(ctx, query,
		a.ID, a.CustomerID.String(), a.Street, a.City, a.Region, a.PostalCode,
		a.CountryCode, a.Country, a.Latitude, a.Longitude)
	if err != nil {
		return fmt.Errorf("save address: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Address, error) {
	query := `
		SELECT id, customer_identifier, street, city, region, postal_code, country_code, country, latitude, longitude
		FROM addresses WHERE id = $1
	`
	var (
		a        models.Address
		customer string
	)
	err := tx.Resolve(ctx, s.db).QueryRowContext(ctx, query, id).Scan(
		&a.ID, &customer, &a.Street, &a.City, &a.Region, &a.PostalCode,
		&a.CountryCode, &a.Country, &a.Latitude, &a.Longitude)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find address: %w", err)
	}
	a.CustomerID = domain.CustomerID(customer)
	return &a, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := tx.Resolve(ctx, s.db).ExecContext(ctx, `DELETE FROM addresses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	return nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := tx.Resolve(ctx, s.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM addresses`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count addresses: %w", err)
	}
	return count, nil
}
