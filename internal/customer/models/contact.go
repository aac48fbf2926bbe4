package models

import "custodia/pkg/domain"

// ContactDetailType enumerates supported contact channels.
type ContactDetailType string

const (
	ContactEmail  ContactDetailType = "EMAIL"
	ContactPhone  ContactDetailType = "PHONE"
	ContactMobile ContactDetailType = "MOBILE"
)

// ContactDetail is a multi-valued sub-entity of a customer. The set is
// always replaced whole: no diffing, no partial merges.
type ContactDetail struct {
	CustomerID      domain.CustomerID
	Type            ContactDetailType
	Value           string
	PreferenceLevel int
	Validated       bool
}
