package models

import (
	"time"

	"custodia/pkg/domain"
)

// Catalog groups the custom fields the schema service defines. This core
// only ever reads catalogs; management lives in the schema service.
type Catalog struct {
	Identifier  domain.CatalogID
	Name        string
	Description string
	CreatedBy   string
	CreatedOn   time.Time
}

// Field is one custom-field definition within a catalog.
type Field struct {
	CatalogID  domain.CatalogID
	Identifier domain.FieldID
	Label      string
	DataType   string
	Mandatory  bool
}
