package portrait

import (
	"context"
	"database/sql"
	"fmt"

	"custodia/internal/customer/models"
	"custodia/pkg/domain"
	"custodia/pkg/platform/sentinel"
	"custodia/pkg/platform/tx"
)

// PostgresStore persists portraits in PostgreSQL with a unique-per-customer
// constraint; Upsert relies on it.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Upsert(ctx context.Context, p *models.Portrait) error {
	query := `
		INSERT INTO portraits (customer_identifier, image, content_type, size)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (customer_identifier) DO UPDATE SET
			image = EXCLUDED.image,
			content_type = EXCLUDED.content_type,
			size = EXCLUDED.size
	`
	_, err := tx.Resolve(ctx, s.db).ExecContext(ctx, query,
		p.CustomerID.String(), p.Image, p.ContentType, p.Size)
	if err != nil {
		return fmt.Errorf("upsert portrait: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByCustomer(ctx context.Context, customerID domain.CustomerID) (*models.Portrait, error) {
	var (
		p        models.Portrait
		customer string
	)
	err := tx.Resolve(ctx, s.db).QueryRowContext(ctx,
		`SELECT customer_identifier, image, content_type, size FROM portraits WHERE customer_identifier = $1`,
		customerID.String()).Scan(&customer, &p.Image, &p.ContentType, &p.Size)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find portrait: %w", err)
	}
	p.CustomerID = domain.CustomerID(customer)
	return &p, nil
}

func (s *PostgresStore) DeleteByCustomer(ctx context.Context, customerID domain.CustomerID) error {
	_, err := tx.Resolve(ctx, s.db).ExecContext(ctx,
		`DELETE FROM portraits WHERE customer_identifier = $1`, customerID.String())
	if err != nil {
		return fmt.Errorf("delete portrait: %w", err)
	}
	return nil
}
