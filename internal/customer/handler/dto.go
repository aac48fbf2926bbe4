package handler

import (
	"time"

	"custodia/internal/customer/models"
	"custodia/internal/customer/service"
	"custodia/pkg/domain"
	dErrors "custodia/pkg/domain-errors"
)

const dateLayout = "2006-01-02"

type addressPayload struct {
	Street      string   `json:"street"`
	City        string   `json:"city"`
	Region      string   `json:"region,omitempty"`
	PostalCode  string   `json:"postal_code,omitempty"`
	CountryCode string   `json:"country_code"`
	Country     string   `json:"country"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

func (p addressPayload) toModel() models.Address {
	return models.Address{
		Street:      p.Street,
		City:        p.City,
		Region:      p.Region,
		PostalCode:  p.PostalCode,
		CountryCode: p.CountryCode,
		Country:     p.Country,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
	}
}

func addressFromModel(a *models.Address) addressPayload {
	return addressPayload{
		Street:      a.Street,
		City:        a.City,
		Region:      a.Region,
		PostalCode:  a.PostalCode,
		CountryCode: a.CountryCode,
		Country:     a.Country,
		Latitude:    a.Latitude,
		Longitude:   a.Longitude,
	}
}

type contactDetailPayload struct {
	Type            string `json:"type"`
	Value           string `json:"value"`
	PreferenceLevel int    `json:"preference_level"`
	Validated       bool   `json:"validated"`
}

func contactDetailsToModel(payloads []contactDetailPayload) []models.ContactDetail {
	if payloads == nil {
		return nil
	}
	details := make([]models.ContactDetail, 0, len(payloads))
	for _, p := range payloads {
		details = append(details, models.ContactDetail{
			Type:            models.ContactDetailType(p.Type),
			Value:           p.Value,
			PreferenceLevel: p.PreferenceLevel,
			Validated:       p.Validated,
		})
	}
	return details
}

func contactDetailsFromModel(details []models.ContactDetail) []contactDetailPayload {
	payloads := make([]contactDetailPayload, 0, len(details))
	for _, d := range details {
		payloads = append(payloads, contactDetailPayload{
			Type:            string(d.Type),
			Value:           d.Value,
			PreferenceLevel: d.PreferenceLevel,
			Validated:       d.Validated,
		})
	}
	return payloads
}

type fieldValuePayload struct {
	CatalogIdentifier string `json:"catalog_identifier"`
	FieldIdentifier   string `json:"field_identifier"`
	Value             string `json:"value"`
}

func fieldValuesToModel(payloads []fieldValuePayload) []models.FieldValue {
	if payloads == nil {
		return nil
	}
	values := make([]models.FieldValue, 0, len(payloads))
	for _, p := range payloads {
		values = append(values, models.FieldValue{
			CatalogID: domain.CatalogID(p.CatalogIdentifier),
			FieldID:   domain.FieldID(p.FieldIdentifier),
			Value:     p.Value,
		})
	}
	return values
}

func fieldValuesFromModel(values []models.FieldValue) []fieldValuePayload {
	payloads := make([]fieldValuePayload, 0, len(values))
	for _, v := range values {
		payloads = append(payloads, fieldValuePayload{
			CatalogIdentifier: v.CatalogID.String(),
			FieldIdentifier:   v.FieldID.String(),
			Value:             v.Value,
		})
	}
	return payloads
}

type customerRequest struct {
	Identifier         string                 `json:"identifier"`
	GivenName          string                 `json:"given_name"`
	MiddleName         string                 `json:"middle_name,omitempty"`
	Surname            string                 `json:"surname"`
	DateOfBirth        string                 `json:"date_of_birth,omitempty"`
	Member             bool                   `json:"member"`
	AccountBeneficiary string                 `json:"account_beneficiary,omitempty"`
	ReferenceCustomer  string                 `json:"reference_customer,omitempty"`
	AssignedOffice     string                 `json:"assigned_office,omitempty"`
	AssignedEmployee   string                 `json:"assigned_employee,omitempty"`
	Address            *addressPayload        `json:"address,omitempty"`
	ContactDetails     []contactDetailPayload `json:"contact_details,omitempty"`
	FieldValues        []fieldValuePayload    `json:"field_values,omitempty"`
}

func (r customerRequest) toInput() (service.CustomerInput, error) {
	input := service.CustomerInput{
		Identifier:         domain.CustomerID(r.Identifier),
		GivenName:          r.GivenName,
		MiddleName:         r.MiddleName,
		Surname:            r.Surname,
		Member:             r.Member,
		AccountBeneficiary: r.AccountBeneficiary,
		ReferenceCustomer:  r.ReferenceCustomer,
		AssignedOffice:     r.AssignedOffice,
		AssignedEmployee:   r.AssignedEmployee,
		ContactDetails:     contactDetailsToModel(r.ContactDetails),
		FieldValues:        fieldValuesToModel(r.FieldValues),
	}
	if r.DateOfBirth != "" {
		dob, err := time.Parse(dateLayout, r.DateOfBirth)
		if err != nil {
			return service.CustomerInput{}, dErrors.New(dErrors.CodeBadRequest, "invalid date_of_birth, expected YYYY-MM-DD")
		}
		input.DateOfBirth = &dob
	}
	if r.Address != nil {
		addr := r.Address.toModel()
		input.Address = &addr
	}
	return input, nil
}

type customerResponse struct {
	Identifier         string `json:"identifier"`
	GivenName          string `json:"given_name"`
	MiddleName         string `json:"middle_name,omitempty"`
	Surname            string `json:"surname"`
	DateOfBirth        string `json:"date_of_birth,omitempty"`
	Member             bool   `json:"member"`
	AccountBeneficiary string `json:"account_beneficiary,omitempty"`
	ReferenceCustomer  string `json:"reference_customer,omitempty"`
	AssignedOffice     string `json:"assigned_office,omitempty"`
	AssignedEmployee   string `json:"assigned_employee,omitempty"`
	CurrentState       string `json:"current_state"`
	ApplicationDate    string `json:"application_date,omitempty"`
	CreatedBy          string `json:"created_by"`
	CreatedOn          string `json:"created_on"`
	LastModifiedBy     string `json:"last_modified_by"`
	LastModifiedOn     string `json:"last_modified_on"`
}

func customerFromModel(c *models.Customer) customerResponse {
	resp := customerResponse{
		Identifier:         c.Identifier.String(),
		GivenName:          c.GivenName,
		MiddleName:         c.MiddleName,
		Surname:            c.Surname,
		Member:             c.Member,
		AccountBeneficiary: c.AccountBeneficiary,
		ReferenceCustomer:  c.ReferenceCustomer,
		AssignedOffice:     c.AssignedOffice,
		AssignedEmployee:   c.AssignedEmployee,
		CurrentState:       string(c.CurrentState),
		CreatedBy:          c.CreatedBy,
		CreatedOn:          c.CreatedOn.Format(time.RFC3339),
		LastModifiedBy:     c.LastModifiedBy,
		LastModifiedOn:     c.LastModifiedOn.Format(time.RFC3339),
	}
	if c.DateOfBirth != nil {
		resp.DateOfBirth = c.DateOfBirth.Format(dateLayout)
	}
	if c.ApplicationDate != nil {
		resp.ApplicationDate = c.ApplicationDate.Format(dateLayout)
	}
	return resp
}

type commandRequest struct {
	Action  string `json:"action"`
	Comment string `json:"comment,omitempty"`
}

type commandLogEntryResponse struct {
	Action    string `json:"action"`
	Comment   string `json:"comment,omitempty"`
	CreatedBy string `json:"created_by"`
	CreatedOn string `json:"created_on"`
}

func commandLogFromModel(entries []models.CommandLogEntry) []commandLogEntryResponse {
	out := make([]commandLogEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, commandLogEntryResponse{
			Action:    string(e.Action),
			Comment:   e.Comment,
			CreatedBy: e.CreatedBy,
			CreatedOn: e.CreatedOn.Format(time.RFC3339),
		})
	}
	return out
}

type cardRequest struct {
	Number         string `json:"number"`
	Type           string `json:"type"`
	Issuer         string `json:"issuer"`
	ExpirationDate string `json:"expiration_date,omitempty"`
}

func (r cardRequest) toInput() (service.CardInput, error) {
	input := service.CardInput{
		Number: domain.CardNumber(r.Number),
		Type:   r.Type,
		Issuer: r.Issuer,
	}
	if r.ExpirationDate != "" {
		exp, err := time.Parse(dateLayout, r.ExpirationDate)
		if err != nil {
			return service.CardInput{}, dErrors.New(dErrors.CodeBadRequest, "invalid expiration_date, expected YYYY-MM-DD")
		}
		input.ExpirationDate = &exp
	}
	return input, nil
}

type cardResponse struct {
	Number         string `json:"number"`
	Type           string `json:"type"`
	Issuer         string `json:"issuer"`
	ExpirationDate string `json:"expiration_date,omitempty"`
	CreatedBy      string `json:"created_by"`
	CreatedOn      string `json:"created_on"`
	LastModifiedBy string `json:"last_modified_by"`
	LastModifiedOn string `json:"last_modified_on"`
}

func cardFromModel(c *models.IdentificationCard) cardResponse {
	resp := cardResponse{
		Number:         c.Number.String(),
		Type:           c.Type,
		Issuer:         c.Issuer,
		CreatedBy:      c.CreatedBy,
		CreatedOn:      c.CreatedOn.Format(time.RFC3339),
		LastModifiedBy: c.LastModifiedBy,
		LastModifiedOn: c.LastModifiedOn.Format(time.RFC3339),
	}
	if c.ExpirationDate != nil {
		resp.ExpirationDate = c.ExpirationDate.Format(dateLayout)
	}
	return resp
}

type scanRequest struct {
	Identifier  string `json:"identifier"`
	Description string `json:"description,omitempty"`
	ContentType string `json:"content_type"`
	Image       []byte `json:"image"`
}

type scanResponse struct {
	Identifier  string `json:"identifier"`
	Description string `json:"description,omitempty"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	CreatedBy   string `json:"created_by"`
	CreatedOn   string `json:"created_on"`
}

func scanFromModel(s *models.IdentificationCardScan) scanResponse {
	return scanResponse{
		Identifier:  s.Identifier.String(),
		Description: s.Description,
		ContentType: s.ContentType,
		Size:        s.Size,
		CreatedBy:   s.CreatedBy,
		CreatedOn:   s.CreatedOn.Format(time.RFC3339),
	}
}

type portraitRequest struct {
	ContentType string `json:"content_type"`
	Image       []byte `json:"image"`
}
