package entity

import (
	"regexp"
	"strings"

	domainerrors "boutik/internal/domain/errors"
)

var postalCodePattern = regexp.MustCompile(`^\d{5}$`)

// Address is the postal address attached to client accounts.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// Validate checks that all address fields are present and the postal code
// is a five digit string.
func (a *Address) Validate() error {
	if strings.TrimSpace(a.Street) == "" {
		return domainerrors.ErrValidationFailed.WithDetails("street is required")
	}
	if strings.TrimSpace(a.City) == "" {
		return domainerrors.ErrValidationFailed.WithDetails("city is required")
	}
	if !postalCodePattern.MatchString(a.PostalCode) {
		return domainerrors.ErrValidationFailed.WithDetails("postal code must be 5 digits")
	}

	return nil
}
