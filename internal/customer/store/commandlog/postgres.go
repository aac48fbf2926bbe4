package commandlog

import (
	"context"
	"database/sql"
	"fmt"

	"custodia/internal/customer/models"
	"custodia/pkg/domain"
	"custodia/pkg/platform/tx"
)

// PostgresStore persists command log entries in PostgreSQL. Append-only:
// no update or delete statements exist on purpose.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, entry *models.CommandLogEntry) error {
	query := `
		INSERT INTO command_log (id, customer_identifier, action, comment, created_by, created_on)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := tx.Resolve(ctx, s.db).ExecContext(ctx, query,
		entry.ID, entry.CustomerID.String(), string(entry.Action), entry.Comment,
		entry.CreatedBy, entry.CreatedOn)
	if err != nil {
		return fmt.Errorf("append command log entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByCustomer(ctx context.Context, customerID domain.CustomerID) ([]models.CommandLogEntry, error) {
	query := `
		SELECT id, customer_identifier, action, comment, created_by, created_on
		FROM command_log WHERE customer_identifier = $1
		ORDER BY created_on
	`
	rows, err := tx.Resolve(ctx, s.db).QueryContext(ctx, query, customerID.String())
	if err != nil {
		return nil, fmt.Errorf("list command log: %w", err)
	}
	defer rows.Close()

	var out []models.CommandLogEntry
	for rows.Next() {
		var (
			e        models.CommandLogEntry
			customer string
			action   string
		)
		if err := rows.Scan(&e.ID, &customer, &action, &e.Comment, &e.CreatedBy, &e.CreatedOn); err != nil {
			return nil, fmt.Errorf("scan command log entry: %w", err)
		}
		e.CustomerID = domain.CustomerID(customer)
		e.Action = models.Action(action)
		out = append(out, e)
	}
	return out, rows.Err()
}
