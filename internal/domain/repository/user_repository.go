package repository

import (
	"context"

	"boutik/internal/domain/entity"
	"boutik/internal/errors"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when no user matches the given identifier.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a user by email. Emails are stored lowercased.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	Update(ctx context.Context, user *entity.User) error

	// FindEligibleForAssignment returns, among the given ids, the users that
	// can be attached to a shop: active and either pending owners or owners
	// without a shop. A shorter result than the input means at least one id
	// is invalid or ineligible.
	FindEligibleForAssignment(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error)

	// FindAssignedToShop returns the users currently attached to the shop.
	FindAssignedToShop(ctx context.Context, shopID uuid.UUID) ([]*entity.User, error)

	// AssignToShop attaches the users to the shop, promoting them to the
	// shop owner role. The update only touches rows that are still
	// eligible, so the returned count falls short of len(ids) when a user
	// was taken concurrently; callers must treat that as a failed unit.
	AssignToShop(ctx context.Context, ids []uuid.UUID, shopID uuid.UUID) (int64, error)

	// ReleaseFromShop detaches the users from their shop. The role is left
	// untouched so a released owner stays an owner without a shop.
	ReleaseFromShop(ctx context.Context, ids []uuid.UUID) (int64, error)

	Paginate(ctx context.Context, filters map[string]any, limit, offset int) ([]*entity.User, int64, error)
}
