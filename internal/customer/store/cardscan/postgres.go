package cardscan

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

// PostgresStore persists card scans in PostgreSQL. The image bytes live in
// a bytea column; no binary format is assumed.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const scanColumns = `
	identifier, card_number, description, image, content_type, size, created_by, created_on`

func (s *PostgresStore) Save(ctx context.Context, scan *models.IdentificationCardScan) error {
	query := `
		INSERT INTO identification_card_scans (` + scanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := tx.Resolve(ctx, s.db).ExecContext(ctx, query,
		scan.Identifier.String(), scan.CardNumber.String(), scan.Description,
		scan.Image, scan.ContentType, scan.Size, scan.CreatedBy, scan.CreatedOn)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("save scan: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByIdentifierAndCard(ctx context.Context, id domain.ScanID, number domain.CardNumber) (*models.IdentificationCardScan, error) {
	query := `SELECT ` + scanColumns + ` FROM identification_card_scans WHERE identifier = $1 AND card_number = $2`
	scan, err := scanRow(tx.Resolve(ctx, s.db).QueryRowContext(ctx, query, id.String(), number.String()))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find scan: %w", err)
	}
	return scan, nil
}

func (s *PostgresStore) FindByCard(ctx context.Context, number domain.CardNumber) ([]models.IdentificationCardScan, error) {
	query := `SELECT ` + scanColumns + ` FROM identification_card_scans WHERE card_number = $1 ORDER BY created_on`
	rows, err := tx.Resolve(ctx, s.db).QueryContext(ctx, query, number.String())
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	defer rows.Close()

	var out []models.IdentificationCardScan
	for rows.Next() {
		var (
			sc         models.IdentificationCardScan
			identifier string
			card       string
		)
		if err := rows.Scan(&identifier, &card, &sc.Description, &sc.Image,
			&sc.ContentType, &sc.Size, &sc.CreatedBy, &sc.CreatedOn); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		sc.Identifier = domain.ScanID(identifier)
		sc.CardNumber = domain.CardNumber(card)
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Delete(ctx context.Context, id domain.ScanID, number domain.CardNumber) error {
	res, err := tx.Resolve(ctx, s.db).ExecContext(ctx,
		`DELETE FROM identification_card_scans WHERE identifier = $1 AND card_number = $2`,
		id.String(), number.String())
	if err != nil {
		return fmt.Errorf("delete scan: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete scan: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteByCard(ctx context.Context, number domain.CardNumber) error {
	_, err := tx.Resolve(ctx, s.db).ExecContext(ctx,
		`DELETE FROM identification_card_scans WHERE card_number = $1`, number.String())
	if err != nil {
		return fmt.Errorf("delete scans for card: %w", err)
	}
	return nil
}

func scanRow(row *sql.Row) (*models.IdentificationCardScan, error) {
	var (
		sc         models.IdentificationCardScan
		identifier string
		card       string
	)
	if err := row.Scan(&identifier, &card, &sc.Description, &sc.Image,
		&sc.ContentType, &sc.Size, &sc.CreatedBy, &sc.CreatedOn); err != nil {
		return nil, err
	}
	sc.Identifier = domain.ScanID(identifier)
	sc.CardNumber = domain.CardNumber(card)
	return &sc, nil
}
