package repository

import (
	"context"

	"boutik/internal/domain/entity"
	"boutik/internal/errors"

	"github.com/google/uuid"
)

// ErrShopNotFound is returned when no shop matches the given identifier.
var ErrShopNotFound = errors.New("shop not found")

// ShopRepository defines persistence operations for shops.
type ShopRepository interface {
	// Create persists a new shop, including its category reference set.
	Create(ctx context.Context, shop *entity.Shop) error

	// FindByID retrieves a shop without relations.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Shop, error)

	// FindByIDWithCategories retrieves a shop with its categories populated.
	FindByIDWithCategories(ctx context.Context, id uuid.UUID) (*entity.Shop, error)

	// FindByEmail retrieves a shop by its unique email.
	FindByEmail(ctx context.Context, email string) (*entity.Shop, error)

	// Update persists field changes of an existing shop.
	Update(ctx context.Context, shop *entity.Shop) error

	// ReplaceCategories overwrites the shop's category reference set.
	ReplaceCategories(ctx context.Context, shopID uuid.UUID, categoryIDs []uuid.UUID) error

	// SetActive toggles the active flag.
	SetActive(ctx context.Context, id uuid.UUID, active bool) error

	// Delete removes the shop and its join rows. It never cascades into
	// users or categories.
	Delete(ctx context.Context, id uuid.UUID) error

	// Search returns shops whose name or email contains the term,
	// case-insensitively, ordered by name.
	Search(ctx context.Context, term string) ([]*entity.Shop, error)

	// Paginate counts and fetches shops matching the filters, ordered by
	// name then id for stability.
	Paginate(ctx context.Context, filters map[string]any, limit, offset int) ([]*entity.Shop, int64, error)
}
