package fieldvalue

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"custodia/internal/customer/models"
	"custodia/pkg/domain"
	"custodia/pkg/platform/tx"
)

// PostgresStore persists custom field values in PostgreSQL. Like contact
// details, writes are whole-set replacements batched with unnest. The
// delete is issued on the same transaction before the insert, so the
// unique (customer, catalog, field) key never sees stale rows.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByCustomer(ctx context.Context, customerID domain.CustomerID) ([]models.FieldValue, error) {
	query := `
		SELECT customer_identifier, catalog_identifier, field_identifier, value
		FROM field_values WHERE customer_identifier = $1
		ORDER BY catalog_identifier, field_identifier
	`
	rows, err := tx.Resolve(ctx, s.db).QueryContext(ctx, query, customerID.String())
	if err != nil {
		return nil, fmt.Errorf("list field values: %w", err)
	}
	defer rows.Close()

	var out []models.FieldValue
	for rows.Next() {
		var (
			v        models.FieldValue
			customer string
			catalog  string
			field    string
		)
		if err := rows.Scan(&customer, &catalog, &field, &v.Value); err != nil {
			return nil, fmt.Errorf("scan field value: %w", err)
		}
		v.CustomerID = domain.CustomerID(customer)
		v.CatalogID = domain.CatalogID(catalog)
		v.FieldID = domain.FieldID(field)
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *PostgresStore) DeleteByCustomer(ctx context.Context, customerID domain.CustomerID) error {
	_, err := tx.Resolve(ctx, s.db).ExecContext(ctx,
		`DELETE FROM field_values WHERE customer_identifier = $1`, customerID.String())
	if err != nil {
		return fmt.Errorf("delete field values: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveAll(ctx context.Context, customerID domain.CustomerID, values []models.FieldValue) error {
	if len(values) == 0 {
		return nil
	}

	catalogs := make([]string, len(values))
	fields := make([]string, len(values))
	contents := make([]string, len(values))
	for i, v := range values {
		catalogs[i] = v.CatalogID.String()
		fields[i] = v.FieldID.String()
		contents[i] = v.Value
	}

	query := `
		INSERT INTO field_values (customer_identifier, catalog_identifier, field_identifier, value)
		SELECT $1, unnest($2::text[]), unnest($3::text[]), unnest($4::text[])
	`
	_, err := tx.Resolve(ctx, s.db).ExecContext(ctx, query,
		customerID.String(), pq.Array(catalogs), pq.Array(fields), pq.Array(contents))
	if err != nil {
		return fmt.Errorf("save field values: %w", err)
	}
	return nil
}
