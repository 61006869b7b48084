package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"boutik/internal/domain/entity"
	domainerrors "boutik/internal/domain/errors"
	"boutik/internal/domain/repository"
	"boutik/internal/infra/persistence/model"
)

// categoryRepository implements the domain.CategoryRepository interface using GORM.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository is the constructor for categoryRepository.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

// Create persists a new category.
func (repo *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryM := fromCategoryDomain(category)

	if err := repo.db.WithContext(ctx).Create(categoryM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrCategoryNameTaken
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create category")
	}

	category.ID = categoryM.ID
	category.CreatedAt = categoryM.CreatedAt
	category.UpdatedAt = categoryM.UpdatedAt

	return nil
}

// FindByID retrieves a category by id.
func (repo *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryM model.CategoryModel
	if err := repo.db.WithContext(ctx).First(&categoryM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category by id")
	}

	return toCategoryDomain(&categoryM), nil
}

// FindByNameFold retrieves a category by name, case-insensitively.
func (repo *categoryRepository) FindByNameFold(ctx context.Context, name string) (*entity.Category, error) {
	var categoryM model.CategoryModel
	if err := repo.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&categoryM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category by name")
	}

	return toCategoryDomain(&categoryM), nil
}

// FindActiveByIDs returns the subset of the ids that exist and are active.
func (repo *categoryRepository) FindActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var categoryMs []*model.CategoryModel
	if err := repo.db.WithContext(ctx).
		Where("id IN ? AND active", ids).
		Find(&categoryMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find categories by ids")
	}

	categories := make([]*entity.Category, 0, len(categoryMs))
	for _, m := range categoryMs {
		categories = append(categories, toCategoryDomain(m))
	}

	return categories, nil
}

// Update persists field changes of an existing category.
func (repo *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	categoryM := fromCategoryDomain(category)

	if err := repo.db.WithContext(ctx).Save(categoryM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrCategoryNameTaken
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update category")
	}

	category.UpdatedAt = categoryM.UpdatedAt

	return nil
}

// SetActive toggles the active flag.
func (repo *categoryRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("id = ?", id).
		Update("active", active)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to set category active flag")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

// Delete removes the category and its join rows. Shops survive, they
// simply lose the link.
func (repo *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	categoryM := &model.CategoryModel{ID: id}

	if err := repo.db.WithContext(ctx).Model(categoryM).Association("Shops").Clear(); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear category shops")
	}

	result := repo.db.WithContext(ctx).Delete(categoryM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete category")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

// Paginate counts and fetches categories matching the filters, ordered
// by name then id.
func (repo *categoryRepository) Paginate(ctx context.Context, filters map[string]any, limit, offset int) ([]*entity.Category, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.CategoryModel{})
	if len(filters) > 0 {
		query = query.Where(filters)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count categories")
	}

	var categoryMs []*model.CategoryModel
	if err := query.
		Order("name ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&categoryMs).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to paginate categories")
	}

	categories := make([]*entity.Category, 0, len(categoryMs))
	for _, m := range categoryMs {
		categories = append(categories, toCategoryDomain(m))
	}

	return categories, total, nil
}

// --- Mapper Functions ---

func toCategoryDomain(data *model.CategoryModel) *entity.Category {
	if data == nil {
		return nil
	}

	return &entity.Category{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Image:       data.Image,
		Active:      data.Active,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromCategoryDomain(data *entity.Category) *model.CategoryModel {
	if data == nil {
		return nil
	}

	return &model.CategoryModel{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Image:       data.Image,
		Active:      data.Active,
	}
}
