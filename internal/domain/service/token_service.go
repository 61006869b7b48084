package service

import (
	"github.com/google/uuid"

	"boutik/internal/domain/entity"
)

// TokenClaims carries the identity extracted from a validated token.
type TokenClaims struct {
	UserID uuid.UUID
	Role   entity.Role
}

// TokenService defines the interface for issuing and validating access tokens.
type TokenService interface {
	// GenerateToken issues a signed token for the user.
	GenerateToken(userID uuid.UUID, role entity.Role) (string, error)

	// ValidateToken parses and verifies a token, returning its claims.
	ValidateToken(token string) (*TokenClaims, error)
}
