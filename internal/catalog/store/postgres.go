package store

import (
	"context"
	"database/sql"
	"fmt"

	"custodia/internal/catalog/models"
	"custodia/pkg/domain"
	"custodia/pkg/platform/sentinel"
	"custodia/pkg/platform/tx"
)

// PostgresStore reads catalog definitions from PostgreSQL. The schema
// service owns writes; this side is read-only.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindCatalog(ctx context.Context, id domain.CatalogID) (*models.Catalog, error) {
	var c models.Catalog
	var identifier string
	err := tx.Resolve(ctx, s.db).QueryRowContext(ctx,
		`SELECT identifier, name, description, created_by, created_on FROM catalogs WHERE identifier = $1`,
		id.String()).Scan(&identifier, &c.Name, &c.Description, &c.CreatedBy, &c.CreatedOn)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find catalog: %w", err)
	}
	c.Identifier = domain.CatalogID(identifier)
	return &c, nil
}

func (s *PostgresStore) FindField(ctx context.Context, catalogID domain.CatalogID, fieldID domain.FieldID) (*models.Field, error) {
	var f models.Field
	var catalog, field string
	err := tx.Resolve(ctx, s.db).QueryRowContext(ctx,
		`SELECT catalog_identifier, identifier, label, data_type, mandatory
		 FROM fields WHERE catalog_identifier = $1 AND identifier = $2`,
		catalogID.String(), fieldID.String()).Scan(&catalog, &field, &f.Label, &f.DataType, &f.Mandatory)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find field: %w", err)
	}
	f.CatalogID = domain.CatalogID(catalog)
	f.Identifier = domain.FieldID(field)
	return &f, nil
}
