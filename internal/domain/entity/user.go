package entity

import (
	"strings"
	"time"

	domainerrors "boutik/internal/domain/errors"

	"github.com/google/uuid"
)

// User is a person interacting with the platform: an administrator, a shop
// owner (current or pending) or a client.
//
// The role decides which optional fields must be set: shop owners carry a
// shop reference and nothing else, clients carry an address and nothing
// else. NewUser is the only way to build a valid combination.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone,omitempty"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	ShopID       *uuid.UUID `json:"shopId,omitempty"`
	Address      *Address   `json:"address,omitempty"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// NewUser builds a user and enforces the role invariants:
// role = shop-owner requires a non-nil shop reference, every other role
// forbids one; role = client requires a valid address, every other role
// forbids one.
func NewUser(name, email, phone, passwordHash string, role Role, shopID *uuid.UUID, address *Address) (*User, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 50 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name must be between 2 and 50 characters")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	if passwordHash == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("password is required")
	}

	if !role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("role must be admin, shop-owner, shop-owner-pending or client")
	}

	if role == RoleShopOwner {
		if shopID == nil {
			return nil, domainerrors.ErrValidationFailed.WithDetails("shop-owner users must reference a shop")
		}
	} else if shopID != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("only shop-owner users may reference a shop")
	}

	if role == RoleClient {
		if address == nil {
			return nil, domainerrors.ErrValidationFailed.WithDetails("client users must have an address")
		}
		if err := address.Validate(); err != nil {
			return nil, err
		}
	} else if address != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("only client users may have an address")
	}

	return &User{
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(phone),
		PasswordHash: passwordHash,
		Role:         role,
		ShopID:       shopID,
		Address:      address,
		Active:       true,
	}, nil
}

// IsAdmin reports whether the user is a platform administrator.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// IsShopOwner reports whether the user currently owns a shop.
func (u *User) IsShopOwner() bool { return u.Role == RoleShopOwner }

// IsClient reports whether the user is an end customer.
func (u *User) IsClient() bool { return u.Role == RoleClient }
