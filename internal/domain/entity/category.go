package entity

import (
	"strings"
	"time"
	"unicode"

	domainerrors "boutik/internal/domain/errors"

	"github.com/google/uuid"
)

// Category is a classification entity, globally unique by name. Uniqueness is
// case-insensitive; names are normalized to capitalized form on construction
// so "électronique" and "ÉLECTRONIQUE" both persist as "Électronique".
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewCategory builds a category with a normalized name. New categories start
// active.
func NewCategory(name, description, image string) (*Category, error) {
	category := &Category{
		Name:        NormalizeCategoryName(name),
		Description: strings.TrimSpace(description),
		Image:       strings.TrimSpace(image),
		Active:      true,
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// Validate checks the category field invariants.
func (c *Category) Validate() error {
	if len(c.Name) < 2 || len(c.Name) > 100 {
		return domainerrors.ErrValidationFailed.WithDetails("category name must be between 2 and 100 characters")
	}
	if len(c.Description) > 500 {
		return domainerrors.ErrValidationFailed.WithDetails("description cannot exceed 500 characters")
	}
	if err := validateImage(c.Image); err != nil {
		return err
	}

	return nil
}

// Activate marks the category as active.
func (c *Category) Activate() { c.Active = true }

// Deactivate marks the category as inactive.
func (c *Category) Deactivate() { c.Active = false }

// NormalizeCategoryName trims the name and converts it to capitalized form:
// first rune upper case, the rest lower case.
func NormalizeCategoryName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return name
	}

	runes := []rune(strings.ToLower(name))
	runes[0] = unicode.ToUpper(runes[0])

	return string(runes)
}
