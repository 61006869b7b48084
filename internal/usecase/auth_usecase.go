// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"boutik/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// ShopID is only meaningful for shop owners and Address only for clients.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     entity.Role
	ShopID   *uuid.UUID
	Address  *entity.Address
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput returns the authenticated user and their access token.
type AuthOutput struct {
	User  *entity.User
	Token string
}

// AuthUsecase defines the interface for authentication operations.
// This is the contract that the delivery layer depends on.
type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)

	// Login verifies credentials and issues a token. It returns (nil, nil)
	// when the email is unknown, the password does not match, or the
	// account is inactive, so the handler can answer uniformly without
	// leaking which check failed.
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)

	// CurrentUser loads the profile of an authenticated user.
	CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
