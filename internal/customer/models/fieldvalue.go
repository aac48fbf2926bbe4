package models

import "custodia/pkg/domain"

// FieldValue stores one dynamic custom-field value, keyed by the catalog
// and field schema entries defined by the catalog service. Like contact
// details, the set is replaced whole on update.
type FieldValue struct {
	CustomerID domain.CustomerID
	CatalogID  domain.CatalogID
	FieldID    domain.FieldID
	Value      string
}
