package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"boutik/config"
	"boutik/internal/domain/entity"
	domainerrors "boutik/internal/domain/errors"
	"boutik/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret string
	ttl    time.Duration
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := cfg.JWT.Expire
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	return &jwtService{
		secret: cfg.JWT.Secret,
		ttl:    ttl,
	}, nil
}

// GenerateToken creates a signed token carrying the user's identity and role.
func (s *jwtService) GenerateToken(userID uuid.UUID, role entity.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// ValidateToken parses and verifies a token, returning its claims.
// Anything wrong with the token, signature, expiry, or claim shape,
// yields ErrInvalidToken.
func (s *jwtService) ValidateToken(tokenString string) (*service.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, domainerrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domainerrors.ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, domainerrors.ErrInvalidToken
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken
	}

	roleValue, _ := claims["role"].(string)
	role := entity.Role(roleValue)
	if !role.IsValid() {
		return nil, domainerrors.ErrInvalidToken
	}

	return &service.TokenClaims{UserID: userID, Role: role}, nil
}
