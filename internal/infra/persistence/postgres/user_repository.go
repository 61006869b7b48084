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

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Create persists a new user.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailTaken
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrRelationInvalid.WithDetails("shop reference does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// FindByID retrieves a user by id.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).First(&userM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a user by email. Emails are stored lowercased.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).First(&userM, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Update persists field changes of an existing user.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Save(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailTaken
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// FindEligibleForAssignment returns, among the given ids, the users that
// can be attached to a shop: active pending owners, or active owners
// without a shop.
func (repo *userRepository) FindEligibleForAssignment(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var userMs []*model.UserModel
	if err := repo.db.WithContext(ctx).
		Where("id IN ? AND active", ids).
		Where("(role = ? OR (role = ? AND shop_id IS NULL))",
			string(entity.RoleShopOwnerPending), string(entity.RoleShopOwner)).
		Find(&userMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find eligible users")
	}

	return toUserDomains(userMs), nil
}

// FindAssignedToShop returns the users currently attached to the shop.
func (repo *userRepository) FindAssignedToShop(ctx context.Context, shopID uuid.UUID) ([]*entity.User, error) {
	var userMs []*model.UserModel
	if err := repo.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Find(&userMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find users assigned to shop")
	}

	return toUserDomains(userMs), nil
}

// AssignToShop attaches the users to the shop and promotes them to the
// shop owner role in one statement. The WHERE clause repeats the
// eligibility predicate so a user taken by a concurrent assignment since
// the eligibility read is not updated; callers must compare the returned
// count against len(ids) and abort on a shortfall.
func (repo *userRepository) AssignToShop(ctx context.Context, ids []uuid.UUID, shopID uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id IN ? AND active", ids).
		Where("(role = ? OR (role = ? AND shop_id IS NULL))",
			string(entity.RoleShopOwnerPending), string(entity.RoleShopOwner)).
		Updates(map[string]any{
			"role":    string(entity.RoleShopOwner),
			"shop_id": shopID,
		})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to assign users to shop")
	}

	return result.RowsAffected, nil
}

// ReleaseFromShop detaches the users from their shop. The role stays as
// is, so a released owner remains an owner without a shop.
func (repo *userRepository) ReleaseFromShop(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id IN ?", ids).
		Update("shop_id", nil)
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to release users from shop")
	}

	return result.RowsAffected, nil
}

// Paginate counts and fetches users matching the filters, ordered by
// name then id.
func (repo *userRepository) Paginate(ctx context.Context, filters map[string]any, limit, offset int) ([]*entity.User, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.UserModel{})
	if len(filters) > 0 {
		query = query.Where(filters)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count users")
	}

	var userMs []*model.UserModel
	if err := query.
		Order("name ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&userMs).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to paginate users")
	}

	return toUserDomains(userMs), total, nil
}

// --- Mapper Functions ---

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	var address *entity.Address
	if data.Street != nil || data.City != nil || data.PostalCode != nil {
		address = &entity.Address{
			Street:     derefString(data.Street),
			City:       derefString(data.City),
			PostalCode: derefString(data.PostalCode),
		}
	}

	return &entity.User{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		Phone:        data.Phone,
		PasswordHash: data.PasswordHash,
		Role:         entity.Role(data.Role),
		ShopID:       data.ShopID,
		Address:      address,
		Active:       data.Active,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func toUserDomains(data []*model.UserModel) []*entity.User {
	users := make([]*entity.User, 0, len(data))
	for _, m := range data {
		users = append(users, toUserDomain(m))
	}

	return users
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	userM := &model.UserModel{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		Phone:        data.Phone,
		PasswordHash: data.PasswordHash,
		Role:         string(data.Role),
		ShopID:       data.ShopID,
		Active:       data.Active,
	}

	if data.Address != nil {
		userM.Street = &data.Address.Street
		userM.City = &data.Address.City
		userM.PostalCode = &data.Address.PostalCode
	}

	return userM
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
