// Package domain holds typed identifier primitives shared across modules.
//
// Identifiers are caller-supplied business keys (not surrogate UUIDs): a
// customer identifier comes from the upstream channel, an identification
// card number is printed on the physical document. Typing them prevents
// accidental mixups between the different key spaces.
package domain

// CustomerID is the unique, immutable business identifier of a customer.
type CustomerID string

func (id CustomerID) String() string { return string(id) }

// IsNil returns true when the identifier is empty.
func (id CustomerID) IsNil() bool { return id == "" }

// CardNumber is the externally unique number of an identification card.
type CardNumber string

func (n CardNumber) String() string { return string(n) }

func (n CardNumber) IsNil() bool { return n == "" }

// ScanID identifies a scan within its owning identification card. It is
// only unique per card, never globally.
type ScanID string

func (id ScanID) String() string { return string(id) }

func (id ScanID) IsNil() bool { return id == "" }

// CatalogID identifies a custom-field catalog defined by the schema service.
type CatalogID string

func (id CatalogID) String() string { return string(id) }

func (id CatalogID) IsNil() bool { return id == "" }

// FieldID identifies a field within a catalog.
type FieldID string

func (id FieldID) String() string { return string(id) }

func (id FieldID) IsNil() bool { return id == "" }
