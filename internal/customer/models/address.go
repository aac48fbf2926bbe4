package models

import (
	"github.com/google/uuid"

	"custodia/pkg/domain"
)

// Address is a value entity owned by exactly one customer. Updates never
// edit a row in place: a new row is attached first, then the old one is
// deleted, so readers never observe a half-written address. The surrogate
// ID exists only to make that swap possible.
type Address struct {
	ID          uuid.UUID
	CustomerID  domain.CustomerID
	Street      string
	City        string
	Region      string
	PostalCode  string
	CountryCode string
	Country     string
	Latitude    *float64
	Longitude   *float64
}

// NewAddress assigns a fresh row identifier for the given payload.
func NewAddress(customerID domain.CustomerID, payload Address) *Address {
	addr := payload
	addr.ID = uuid.New()
	addr.CustomerID = customerID
	return &addr
}
