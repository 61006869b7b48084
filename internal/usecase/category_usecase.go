package usecase

import (
	"context"

	"github.com/google/uuid"

	"boutik/internal/domain/entity"
	"boutik/internal/pagination"
)

// CategoryFilterFields is the allow-list of fields accepted as category
// list filters.
var CategoryFilterFields = pagination.NewFieldSet("name", "active")

// CreateCategoryInput defines the data required to create a category.
type CreateCategoryInput struct {
	Name        string
	Description string
	Image       string
}

// UpdateCategoryInput defines a partial category update. Nil pointers
// leave the current value untouched.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	Image       *string
}

// CategoryUsecase defines the interface for category administration.
type CategoryUsecase interface {
	// CreateCategory creates a category. Names are unique
	// case-insensitively after normalization.
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*entity.Category, error)

	GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	UpdateCategory(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*entity.Category, error)

	// DeleteCategory removes a category. Shops referencing it simply lose
	// the link.
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	SetCategoryActive(ctx context.Context, id uuid.UUID, active bool) (*entity.Category, error)

	ListCategories(ctx context.Context, params pagination.Params, filters map[string]any) (*pagination.Page[*entity.Category], error)
}
