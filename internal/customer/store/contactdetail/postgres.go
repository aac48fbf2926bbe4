package contactdetail

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"custodia/internal/customer/models"
	"custodia/pkg/domain"
	"custodia/pkg/platform/tx"
)

// PostgresStore persists contact details in PostgreSQL. The set is only
// ever written whole, so inserts are batched with unnest.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByCustomer(ctx context.Context, customerID domain.CustomerID) ([]models.ContactDetail, error) {
	query := `
		SELECT customer_identifier, type, value, preference_level, validated
		FROM contact_details WHERE customer_identifier = $1
		ORDER BY preference_level, type
	`
	rows, err := tx.Resolve(ctx, s.db).QueryContext(ctx, query, customerID.String())
	if err != nil {
		return nil, fmt.Errorf("list contact details: %w", err)
	}
	defer rows.Close()

	var out []models.ContactDetail
	for rows.Next() {
		var (
			d        models.ContactDetail
			customer string
			kind     string
		)
		if err := rows.Scan(&customer, &kind, &d.Value, &d.PreferenceLevel, &d.Validated); err != nil {
			return nil, fmt.Errorf("scan contact detail: %w", err)
		}
		d.CustomerID = domain.CustomerID(customer)
		d.Type = models.ContactDetailType(kind)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *PostgresStore) DeleteByCustomer(ctx context.Context, customerID domain.CustomerID) error {
	_, err := tx.Resolve(ctx, s.db).ExecContext(ctx,
		`DELETE FROM contact_details WHERE customer_identifier = $1`, customerID.String())
	if err != nil {
		return fmt.Errorf("delete contact details: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveAll(ctx context.Context, customerID domain.CustomerID, details []models.ContactDetail) error {
	if len(details) == 0 {
		return nil
	}

	types := make([]string, len(details))
	values := make([]string, len(details))
	prefs := make([]int64, len(details))
	validated := make([]bool, len(details))
	for i, d := range details {
		types[i] = string(d.Type)
		values[i] = d.Value
		prefs[i] = int64(d.PreferenceLevel)
		validated[i] = d.Validated
	}

	query := `
		INSERT INTO contact_details (customer_identifier, type, value, preference_level, validated)
		SELECT $1, unnest($2::text[]), unnest($3::text[]), unnest($4::bigint[]), unnest($5::boolean[])
	`
	_, err := tx.Resolve(ctx, s.db).ExecContext(ctx, query,
		customerID.String(), pq.Array(types), pq.Array(values), pq.Array(prefs), pq.Array(validated))
	if err != nil {
		return fmt.Errorf("save contact details: %w", err)
	}
	return nil
}
