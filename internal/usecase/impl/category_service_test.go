package impl

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"boutik/internal/domain/entity"
	domainerrors "boutik/internal/domain/errors"
	"boutik/internal/domain/repository"
	"boutik/internal/pagination"
	"boutik/internal/usecase"
)

func newCategoryServiceFixture() (usecase.CategoryUsecase, *mockCategoryRepo) {
	categoryRepo := &mockCategoryRepo{}
	service := NewCategoryService(CategoryServiceParams{
		CategoryRepo: categoryRepo,
		Logger:       discardLogger(),
	})

	return service, categoryRepo
}

func TestCategoryService_CreateCategory_NormalizesName(t *testing.T) {
	service, categoryRepo := newCategoryServiceFixture()
	ctx := context.Background()

	categoryRepo.On("FindByNameFold", ctx, "Électronique").
		Return(nil, repository.ErrCategoryNotFound)
	categoryRepo.On("Create", ctx, mock.AnythingOfType("*entity.Category")).
		Return(nil)

	category, err := service.CreateCategory(ctx, usecase.CreateCategoryInput{
		Name: "  éLECTRONIQUE ",
	})

	require.NoError(t, err)
	assert.Equal(t, "Électronique", category.Name)
	assert.True(t, category.Active)
}

func TestCategoryService_CreateCategory_DuplicateNameCaseInsensitive(t *testing.T) {
	service, categoryRepo := newCategoryServiceFixture()
	ctx := context.Background()

	categoryRepo.On("FindByNameFold", ctx, "Mode").
		Return(&entity.Category{ID: uuid.New(), Name: "Mode"}, nil)

	_, err := service.CreateCategory(ctx, usecase.CreateCategoryInput{Name: "MODE"})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CATEGORY_NAME_TAKEN", appErr.ErrorCode())
	categoryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCategoryService_UpdateCategory_RenameToOwnNameAllowed(t *testing.T) {
	service, categoryRepo := newCategoryServiceFixture()
	ctx := context.Background()

	categoryID := uuid.New()
	existing := &entity.Category{ID: categoryID, Name: "Mode", Active: true}

	categoryRepo.On("FindByID", ctx, categoryID).Return(existing, nil)
	categoryRepo.On("FindByNameFold", ctx, "Mode").Return(existing, nil)
	categoryRepo.On("Update", ctx, existing).Return(nil)

	name := "mode"
	category, err := service.UpdateCategory(ctx, categoryID, usecase.UpdateCategoryInput{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "Mode", category.Name)
}

func TestCategoryService_UpdateCategory_NotFound(t *testing.T) {
	service, categoryRepo := newCategoryServiceFixture()
	ctx := context.Background()
	categoryID := uuid.New()

	categoryRepo.On("FindByID", ctx, categoryID).
		Return(nil, repository.ErrCategoryNotFound)

	_, err := service.UpdateCategory(ctx, categoryID, usecase.UpdateCategoryInput{})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CATEGORY_NOT_FOUND", appErr.ErrorCode())
}

func TestCategoryService_DeleteCategory(t *testing.T) {
	service, categoryRepo := newCategoryServiceFixture()
	ctx := context.Background()
	categoryID := uuid.New()

	categoryRepo.On("Delete", ctx, categoryID).Return(nil)

	require.NoError(t, service.DeleteCategory(ctx, categoryID))
}

func TestCategoryService_ListCategories_BuildsPage(t *testing.T) {
	service, categoryRepo := newCategoryServiceFixture()
	ctx := context.Background()

	filters := map[string]any{"active": true}
	categoryRepo.On("Paginate", ctx, filters, 10, 0).
		Return([]*entity.Category{{Name: "Mode"}}, int64(1), nil)

	page, err := service.ListCategories(ctx, pagination.Params{Page: 1, Limit: 10}, filters)

	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.Len(t, page.Items, 1)
}
