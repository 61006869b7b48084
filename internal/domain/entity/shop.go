package entity

import (
	"regexp"
	"strings"
	"time"

	domainerrors "boutik/internal/domain/errors"

	"github.com/google/uuid"
)

const (
	shopNameMinLen        = 2
	shopNameMaxLen        = 100
	shopDescriptionMaxLen = 500

	// Base64-encoded images are bounded at roughly 5 MB of encoded text.
	imageMaxLen = 5_000_000
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9 .\-]{6,20}$`)
	imagePattern = regexp.MustCompile(`^image/(png|jpg|jpeg|gif|webp|svg\+xml);base64,[A-Za-z0-9+/]+={0,2}$`)
)

// Shop is a tenant storefront with an email identity and an active status.
// It references categories; it does not own users or categories, so deleting
// a shop never cascades into them.
type Shop struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Image       string      `json:"image,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	Email       string      `json:"email"`
	Active      bool        `json:"active"`
	Categories  []*Category `json:"categories,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// NewShop builds a shop from raw input, applying the field rules:
// name 2-100 characters, description up to 500, optional bounded base64
// image, optional phone, required well-formed email. New shops start active.
func NewShop(name, description, image, phone, email string) (*Shop, error) {
	shop := &Shop{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Image:       strings.TrimSpace(image),
		Phone:       strings.TrimSpace(phone),
		Email:       strings.ToLower(strings.TrimSpace(email)),
		Active:      true,
	}

	if err := shop.Validate(); err != nil {
		return nil, err
	}

	return shop, nil
}

// Validate checks the shop field invariants.
func (s *Shop) Validate() error {
	if len(s.Name) < shopNameMinLen || len(s.Name) > shopNameMaxLen {
		return domainerrors.ErrValidationFailed.WithDetails("shop name must be between 2 and 100 characters")
	}
	if len(s.Description) > shopDescriptionMaxLen {
		return domainerrors.ErrValidationFailed.WithDetails("description cannot exceed 500 characters")
	}
	if err := validateEmail(s.Email); err != nil {
		return err
	}
	if s.Phone != "" && !phonePattern.MatchString(s.Phone) {
		return domainerrors.ErrValidationFailed.WithDetails("invalid phone number")
	}
	if err := validateImage(s.Image); err != nil {
		return err
	}

	return nil
}

// Activate marks the shop as active.
func (s *Shop) Activate() { s.Active = true }

// Deactivate marks the shop as inactive.
func (s *Shop) Deactivate() { s.Active = false }

// CategoryIDs returns the identifiers of the referenced categories.
func (s *Shop) CategoryIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s.Categories))
	for _, c := range s.Categories {
		ids = append(ids, c.ID)
	}

	return ids
}

func validateEmail(email string) error {
	if email == "" {
		return domainerrors.ErrValidationFailed.WithDetails("email is required")
	}
	if !emailPattern.MatchString(email) {
		return domainerrors.ErrValidationFailed.WithDetails("invalid email address")
	}

	return nil
}

func validateImage(image string) error {
	if image == "" {
		return nil
	}
	if len(image) > imageMaxLen {
		return domainerrors.ErrValidationFailed.WithDetails("image cannot exceed 5 MB")
	}
	if !imagePattern.MatchString(image) {
		return domainerrors.ErrValidationFailed.WithDetails("image must be a base64 data string")
	}

	return nil
}
