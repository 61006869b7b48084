package usecase

import (
	"context"

	"github.com/google/uuid"

	"boutik/internal/domain/entity"
	"boutik/internal/pagination"
)

// UserFilterFields is the allow-list of fields accepted as user list filters.
var UserFilterFields = pagination.NewFieldSet("name", "email", "role", "active")

// UserUsecase defines the interface for user administration.
type UserUsecase interface {
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// ListUsers returns a page of users matching the sanitized filters.
	ListUsers(ctx context.Context, params pagination.Params, filters map[string]any) (*pagination.Page[*entity.User], error)
}
