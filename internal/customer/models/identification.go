package models

import (
	"time"

	"custodia/pkg/domain"
)

// IdentificationCard is owned by one customer. The card number is globally
// unique across all customers.
type IdentificationCard struct {
	Number         domain.CardNumber
	CustomerID     domain.CustomerID
	Type           string
	Issuer         string
	ExpirationDate *time.Time
	CreatedBy      string
	CreatedOn      time.Time
	LastModifiedBy string
	LastModifiedOn time.Time
}

// Touch refreshes the card's modification stamp.
func (c *IdentificationCard) Touch(actor string, now time.Time) {
	c.LastModifiedBy = actor
	c.LastModifiedOn = now
}

// IdentificationCardScan holds an opaque scanned image owned by one card.
// Scans never outlive their card: deleting the card cascades to its scans.
type IdentificationCardScan struct {
	Identifier  domain.ScanID
	CardNumber  domain.CardNumber
	Description string
	Image       []byte
	ContentType string
	Size        int64
	CreatedBy   string
	CreatedOn   time.Time
}
