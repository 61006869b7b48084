package usecase

import (
	"context"

	"github.com/google/uuid"

	"boutik/internal/domain/entity"
	"boutik/internal/pagination"
)

// ShopFilterFields is the allow-list of fields accepted as shop list
// filters. Names match the storage columns so sanitized filters feed the
// query directly.
var ShopFilterFields = pagination.NewFieldSet("name", "email", "phone", "active")

// --- Input DTOs ---

// CreateShopInput defines the data required to create a shop, optionally
// with its initial user and category relations.
type CreateShopInput struct {
	Name        string
	Description string
	Image       string
	Phone       string
	Email       string
	UserIDs     []uuid.UUID
	CategoryIDs []uuid.UUID
}

// UpdateShopInput defines a partial shop update. Nil field pointers leave
// the current value untouched. Nil slice pointers skip relation changes,
// a pointer to an empty slice clears the relation, and a pointer to a
// non-empty slice replaces it exactly.
type UpdateShopInput struct {
	Name        *string
	Description *string
	Image       *string
	Phone       *string
	Email       *string
	UserIDs     *[]uuid.UUID
	CategoryIDs *[]uuid.UUID
}

// --- Output DTOs ---

// CreateShopOutput returns the created shop and counters describing the
// relation work performed in the same transaction.
type CreateShopOutput struct {
	Shop  *entity.Shop
	Stats CreateShopStats
}

// CreateShopStats counts the relation operations of a shop creation.
type CreateShopStats struct {
	UsersAssigned      int `json:"usersAssigned"`
	CategoriesAssigned int `json:"categoriesAssigned"`
	TotalOperations    int `json:"totalOperations"`
}

// UpdateShopOutput returns the updated shop and counters describing the
// relation changes applied in the same transaction.
type UpdateShopOutput struct {
	Shop  *entity.Shop
	Stats UpdateShopStats
}

// UpdateShopStats counts the relation changes of a shop update.
// CategoriesUpdated is nil when the category set was not touched.
type UpdateShopStats struct {
	UsersAdded        int  `json:"usersAdded"`
	UsersRemoved      int  `json:"usersRemoved"`
	CategoriesUpdated *int `json:"categoriesUpdated"`
	TotalChanges      int  `json:"totalChanges"`
}

// ShopUsecase defines the interface for shop administration operations.
type ShopUsecase interface {
	// CreateShop creates a shop and wires its user and category relations
	// in one transaction. Any invalid reference rolls back everything.
	CreateShop(ctx context.Context, input CreateShopInput) (*CreateShopOutput, error)

	// UpdateShop applies a partial update and reconciles relations in one
	// transaction.
	UpdateShop(ctx context.Context, id uuid.UUID, input UpdateShopInput) (*UpdateShopOutput, error)

	// GetShop returns a shop with its categories populated.
	GetShop(ctx context.Context, id uuid.UUID) (*entity.Shop, error)

	// ListShops returns a page of shops matching the sanitized filters.
	ListShops(ctx context.Context, params pagination.Params, filters map[string]any) (*pagination.Page[*entity.Shop], error)

	// SearchShops returns shops whose name or email contains the term.
	SearchShops(ctx context.Context, term string) ([]*entity.Shop, error)

	// DeleteShop removes a shop and releases its users in one transaction.
	DeleteShop(ctx context.Context, id uuid.UUID) error

	// SetShopActive toggles a shop's active flag.
	SetShopActive(ctx context.Context, id uuid.UUID, active bool) (*entity.Shop, error)

	// AssignUserToShop attaches a single eligible user to the shop.
	AssignUserToShop(ctx context.Context, shopID, userID uuid.UUID) error

	// GenerateShopQRCode renders a PNG QR code for the shop storefront.
	GenerateShopQRCode(ctx context.Context, id uuid.UUID) ([]byte, error)
}
