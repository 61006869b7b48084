package impl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "boutik/internal/delivery/context"
	"boutik/internal/domain/entity"
	domainerrors "boutik/internal/domain/errors"
	"boutik/internal/domain/repository"
	"boutik/internal/pagination"
	"boutik/internal/usecase"
)

// categoryService implements the CategoryUsecase interface.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	logger       *slog.Logger
}

// CategoryServiceParams holds dependencies for CategoryService, injected by Fx.
type CategoryServiceParams struct {
	fx.In

	CategoryRepo repository.CategoryRepository
	Logger       *slog.Logger
}

// NewCategoryService is the constructor for categoryService.
func NewCategoryService(params CategoryServiceParams) usecase.CategoryUsecase {
	return &categoryService{
		categoryRepo: params.CategoryRepo,
		logger:       params.Logger,
	}
}

func (srv *categoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateCategory creates a category. Names are normalized before the
// uniqueness check so "MODE" and "mode" collide.
func (srv *categoryService) CreateCategory(ctx context.Context, input usecase.CreateCategoryInput) (*entity.Category, error) {
	category, err := entity.NewCategory(input.Name, input.Description, input.Image)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	if err := srv.ensureNameFree(ctx, category.Name, uuid.Nil); err != nil {
		return nil, err
	}

	if err := srv.categoryRepo.Create(ctx, category); err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}
	srv.log(ctx).Debug("Category created", slog.Any("categoryID", category.ID), slog.String("name", category.Name))

	return category, nil
}

// GetCategory returns a category by id.
func (srv *categoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := srv.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapCategoryRepoError(err)
	}

	return category, nil
}

// UpdateCategory applies a partial update, renormalizing the name and
// rechecking uniqueness when it changes.
func (srv *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, input usecase.UpdateCategoryInput) (*entity.Category, error) {
	category, err := srv.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapCategoryRepoError(err)
	}

	if input.Name != nil {
		category.Name = entity.NormalizeCategoryName(*input.Name)
	}
	if input.Description != nil {
		category.Description = strings.TrimSpace(*input.Description)
	}
	if input.Image != nil {
		category.Image = strings.TrimSpace(*input.Image)
	}

	if err := category.Validate(); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	if input.Name != nil {
		if err := srv.ensureNameFree(ctx, category.Name, category.ID); err != nil {
			return nil, err
		}
	}

	if err := srv.categoryRepo.Update(ctx, category); err != nil {
		return nil, errors.Wrap(err, "failed to update category")
	}
	srv.log(ctx).Debug("Category updated", slog.Any("categoryID", category.ID))

	return category, nil
}

// DeleteCategory removes a category. Join rows to shops disappear with
// it; shops themselves are untouched.
func (srv *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := srv.categoryRepo.Delete(ctx, id); err != nil {
		return mapCategoryRepoError(err)
	}
	srv.log(ctx).Info("Category deleted", slog.Any("categoryID", id))

	return nil
}

// SetCategoryActive toggles the active flag and returns the updated category.
func (srv *categoryService) SetCategoryActive(ctx context.Context, id uuid.UUID, active bool) (*entity.Category, error) {
	if err := srv.categoryRepo.SetActive(ctx, id, active); err != nil {
		return nil, mapCategoryRepoError(err)
	}

	category, err := srv.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapCategoryRepoError(err)
	}

	return category, nil
}

// ListCategories returns a page of categories matching the sanitized filters.
func (srv *categoryService) ListCategories(ctx context.Context, params pagination.Params, filters map[string]any) (*pagination.Page[*entity.Category], error) {
	categories, total, err := srv.categoryRepo.Paginate(ctx, filters, params.Limit, params.Offset())
	if err != nil {
		return nil, errors.Wrap(err, "failed to paginate categories")
	}

	page := pagination.NewPage(categories, total, params, filters)

	return &page, nil
}

// ensureNameFree rejects a normalized name already used by another category.
func (srv *categoryService) ensureNameFree(ctx context.Context, name string, excludeID uuid.UUID) error {
	existing, err := srv.categoryRepo.FindByNameFold(ctx, name)
	if errors.Is(err, repository.ErrCategoryNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to check category name uniqueness")
	}
	if existing.ID == excludeID {
		return nil
	}

	return domainerrors.ErrCategoryNameTaken
}

func mapCategoryRepoError(err error) error {
	if errors.Is(err, repository.ErrCategoryNotFound) {
		return domainerrors.ErrCategoryNotFound
	}

	return errors.Wrap(err, "category repository error")
}
