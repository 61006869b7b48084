package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"boutik/internal/domain/entity"
	domainerrors "boutik/internal/domain/errors"
	"boutik/internal/domain/repository"
	"boutik/internal/infra/persistence/model"
)

// shopRepository implements the domain.ShopRepository interface using GORM.
type shopRepository struct {
	db *gorm.DB
}

// NewShopRepository is the constructor for shopRepository. The db handle
// may be a transaction, which binds every operation to it.
func NewShopRepository(db *gorm.DB) repository.ShopRepository {
	return &shopRepository{db: db}
}

// Create persists a new shop. Category links are managed separately
// through ReplaceCategories.
func (repo *shopRepository) Create(ctx context.Context, shop *entity.Shop) error {
	shopM := fromShopDomain(shop)

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(shopM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrShopEmailTaken
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WithDetails("missing required shop information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create shop")
	}

	shop.ID = shopM.ID
	shop.CreatedAt = shopM.CreatedAt
	shop.UpdatedAt = shopM.UpdatedAt

	return nil
}

// FindByID retrieves a shop without relations.
func (repo *shopRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Shop, error) {
	var shopM model.ShopModel
	if err := repo.db.WithContext(ctx).First(&shopM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrShopNotFound
		}

		return nil, errors.Wrap(err, "failed to find shop by id")
	}

	return toShopDomain(&shopM), nil
}

// FindByIDWithCategories retrieves a shop with its categories populated.
func (repo *shopRepository) FindByIDWithCategories(ctx context.Context, id uuid.UUID) (*entity.Shop, error) {
	var shopM model.ShopModel
	if err := repo.db.WithContext(ctx).
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("categories.name ASC")
		}).
		First(&shopM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrShopNotFound
		}

		return nil, errors.Wrap(err, "failed to find shop with categories")
	}

	return toShopDomain(&shopM), nil
}

// FindByEmail retrieves a shop by its unique email.
func (repo *shopRepository) FindByEmail(ctx context.Context, email string) (*entity.Shop, error) {
	var shopM model.ShopModel
	if err := repo.db.WithContext(ctx).First(&shopM, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrShopNotFound
		}

		return nil, errors.Wrap(err, "failed to find shop by email")
	}

	return toShopDomain(&shopM), nil
}

// Update persists field changes of an existing shop.
func (repo *shopRepository) Update(ctx context.Context, shop *entity.Shop) error {
	shopM := fromShopDomain(shop)

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Save(shopM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrShopEmailTaken
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update shop")
	}

	shop.UpdatedAt = shopM.UpdatedAt

	return nil
}

// ReplaceCategories overwrites the shop's category reference set.
func (repo *shopRepository) ReplaceCategories(ctx context.Context, shopID uuid.UUID, categoryIDs []uuid.UUID) error {
	shopM := &model.ShopModel{ID: shopID}

	refs := make([]*model.CategoryModel, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		refs = append(refs, &model.CategoryModel{ID: id})
	}

	if err := repo.db.WithContext(ctx).Model(shopM).Association("Categories").Replace(refs); err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrRelationInvalid.WithDetails("category reference does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to replace shop categories")
	}

	return nil
}

// SetActive toggles the active flag.
func (repo *shopRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ShopModel{}).
		Where("id = ?", id).
		Update("active", active)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to set shop active flag")
	}
	if result.RowsAffected == 0 {
		return repository.ErrShopNotFound
	}

	return nil
}

// Delete removes the shop and its join rows. Users and categories survive.
func (repo *shopRepository) Delete(ctx context.Context, id uuid.UUID) error {
	shopM := &model.ShopModel{ID: id}

	if err := repo.db.WithContext(ctx).Model(shopM).Association("Categories").Clear(); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear shop categories")
	}

	result := repo.db.WithContext(ctx).Delete(shopM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete shop")
	}
	if result.RowsAffected == 0 {
		return repository.ErrShopNotFound
	}

	return nil
}

// Search returns shops whose name or email contains the term,
// case-insensitively, ordered by name.
func (repo *shopRepository) Search(ctx context.Context, term string) ([]*entity.Shop, error) {
	var shopMs []*model.ShopModel
	pattern := "%" + term + "%"

	if err := repo.db.WithContext(ctx).
		Where("name ILIKE ? OR email ILIKE ?", pattern, pattern).
		Order("name ASC").
		Find(&shopMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search shops")
	}

	return toShopDomains(shopMs), nil
}

// Paginate counts and fetches shops matching the filters, ordered by
// name then id so pages stay stable across requests.
func (repo *shopRepository) Paginate(ctx context.Context, filters map[string]any, limit, offset int) ([]*entity.Shop, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.ShopModel{})
	if len(filters) > 0 {
		query = query.Where(filters)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count shops")
	}

	var shopMs []*model.ShopModel
	if err := query.
		Order("name ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&shopMs).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to paginate shops")
	}

	return toShopDomains(shopMs), total, nil
}

// --- Mapper Functions ---

func toShopDomain(data *model.ShopModel) *entity.Shop {
	if data == nil {
		return nil
	}

	var categories []*entity.Category
	if len(data.Categories) > 0 {
		categories = make([]*entity.Category, 0, len(data.Categories))
		for _, c := range data.Categories {
			categories = append(categories, toCategoryDomain(c))
		}
	}

	return &entity.Shop{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Image:       data.Image,
		Phone:       data.Phone,
		Email:       data.Email,
		Active:      data.Active,
		Categories:  categories,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toShopDomains(data []*model.ShopModel) []*entity.Shop {
	shops := make([]*entity.Shop, 0, len(data))
	for _, m := range data {
		shops = append(shops, toShopDomain(m))
	}

	return shops
}

func fromShopDomain(data *entity.Shop) *model.ShopModel {
	if data == nil {
		return nil
	}

	return &model.ShopModel{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Image:       data.Image,
		Phone:       data.Phone,
		Email:       data.Email,
		Active:      data.Active,
	}
}
