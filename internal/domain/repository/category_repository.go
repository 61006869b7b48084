package repository

import (
	"context"

	"boutik/internal/domain/entity"
	"boutik/internal/errors"

	"github.com/google/uuid"
)

// ErrCategoryNotFound is returned when no category matches the given identifier.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByNameFold retrieves a category by name, case-insensitively.
	FindByNameFold(ctx context.Context, name string) (*entity.Category, error)

	// FindActiveByIDs returns the subset of the given ids that exist and
	// are active. Used by the relation validator: a shorter result than
	// the input means invalid or inactive references.
	FindActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Category, error)

	Update(ctx context.Context, category *entity.Category) error

	SetActive(ctx context.Context, id uuid.UUID, active bool) error

	Delete(ctx context.Context, id uuid.UUID) error

	Paginate(ctx context.Context, filters map[string]any, limit, offset int) ([]*entity.Category, int64, error)
}
