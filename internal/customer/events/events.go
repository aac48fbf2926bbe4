// Package events defines the domain events the customer aggregate emits.
// Exactly one event is published per successful command, after the unit of
// work commits.
package events

import "custodia/pkg/domain"

// Event names, one per command.
const (
	PostCustomer     = "post-customer"
	PutCustomer      = "put-customer"
	ActivateCustomer = "activate-customer"
	LockCustomer     = "lock-customer"
	UnlockCustomer   = "unlock-customer"
	CloseCustomer    = "close-customer"
	ReopenCustomer   = "reopen-customer"

	PutAddress        = "put-address"
	PutContactDetails = "put-contact-details"

	PostIdentificationCard   = "post-identification-card"
	PutIdentificationCard    = "put-identification-card"
	DeleteIdentificationCard = "delete-identification-card"

	PostIdentificationCardScan   = "post-identification-card-scan"
	DeleteIdentificationCardScan = "delete-identification-card-scan"

	PostPortrait   = "post-portrait"
	DeletePortrait = "delete-portrait"
)

// Event is one domain event ready for publication. Key selects the kafka
// partition so all events of one customer stay ordered.
type Event struct {
	Name    string `json:"name"`
	Key     string `json:"key"`
	Payload any    `json:"payload"`
}

// ScanEvent describes the outcome of a scan command. The delete path still
// carries the customer identifier even though the scan row is already gone;
// the aggregate resolves the owner before deleting.
type ScanEvent struct {
	CustomerIdentifier domain.CustomerID `json:"customer_identifier"`
	CardNumber         domain.CardNumber `json:"card_number"`
	ScanIdentifier     domain.ScanID     `json:"scan_identifier"`
}
