package impl

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"boutik/internal/domain/entity"
	"boutik/internal/domain/repository"
	"boutik/internal/domain/service"
)

// Test doubles for the repository and service interfaces, backed by
// testify's mock package.

type mockShopRepo struct{ mock.Mock }

func (m *mockShopRepo) Create(ctx context.Context, shop *entity.Shop) error {
	args := m.Called(ctx, shop)
	return args.Error(0)
}

func (m *mockShopRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Shop, error) {
	args := m.Called(ctx, id)
	if shop, ok := args.Get(0).(*entity.Shop); ok {
		return shop, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockShopRepo) FindByIDWithCategories(ctx context.Context, id uuid.UUID) (*entity.Shop, error) {
	args := m.Called(ctx, id)
	if shop, ok := args.Get(0).(*entity.Shop); ok {
		return shop, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockShopRepo) FindByEmail(ctx context.Context, email string) (*entity.Shop, error) {
	args := m.Called(ctx, email)
	if shop, ok := args.Get(0).(*entity.Shop); ok {
		return shop, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockShopRepo) Update(ctx context.Context, shop *entity.Shop) error {
	args := m.Called(ctx, shop)
	return args.Error(0)
}

func (m *mockShopRepo) ReplaceCategories(ctx context.Context, shopID uuid.UUID, categoryIDs []uuid.UUID) error {
	args := m.Called(ctx, shopID, categoryIDs)
	return args.Error(0)
}

func (m *mockShopRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *mockShopRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockShopRepo) Search(ctx context.Context, term string) ([]*entity.Shop, error) {
	args := m.Called(ctx, term)
	if shops, ok := args.Get(0).([]*entity.Shop); ok {
		return shops, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockShopRepo) Paginate(ctx context.Context, filters map[string]any, limit, offset int) ([]*entity.Shop, int64, error) {
	args := m.Called(ctx, filters, limit, offset)
	if shops, ok := args.Get(0).([]*entity.Shop); ok {
		return shops, args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

type mockCategoryRepo struct{ mock.Mock }

func (m *mockCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if category, ok := args.Get(0).(*entity.Category); ok {
		return category, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) FindByNameFold(ctx context.Context, name string) (*entity.Category, error) {
	args := m.Called(ctx, name)
	if category, ok := args.Get(0).(*entity.Category); ok {
		return category, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) FindActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Category, error) {
	args := m.Called(ctx, ids)
	if categories, ok := args.Get(0).([]*entity.Category); ok {
		return categories, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *mockCategoryRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCategoryRepo) Paginate(ctx context.Context, filters map[string]any, limit, offset int) ([]*entity.Category, int64, error) {
	args := m.Called(ctx, filters, limit, offset)
	if categories, ok := args.Get(0).([]*entity.Category); ok {
		return categories, args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) FindEligibleForAssignment(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	args := m.Called(ctx, ids)
	if users, ok := args.Get(0).([]*entity.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindAssignedToShop(ctx context.Context, shopID uuid.UUID) ([]*entity.User, error) {
	args := m.Called(ctx, shopID)
	if users, ok := args.Get(0).([]*entity.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) AssignToShop(ctx context.Context, ids []uuid.UUID, shopID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids, shopID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) ReleaseFromShop(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) Paginate(ctx context.Context, filters map[string]any, limit, offset int) ([]*entity.User, int64, error) {
	args := m.Called(ctx, filters, limit, offset)
	if users, ok := args.Get(0).([]*entity.User); ok {
		return users, args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

type mockHasher struct{ mock.Mock }

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *mockHasher) Check(hashedPassword, password string) error {
	args := m.Called(hashedPassword, password)
	return args.Error(0)
}

type mockTokenService struct{ mock.Mock }

func (m *mockTokenService) GenerateToken(userID uuid.UUID, role entity.Role) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) ValidateToken(token string) (*service.TokenClaims, error) {
	args := m.Called(token)
	if claims, ok := args.Get(0).(*service.TokenClaims); ok {
		return claims, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockQRService struct{ mock.Mock }

func (m *mockQRService) GenerateShopQRCode(shopID uuid.UUID) ([]byte, error) {
	args := m.Called(shopID)
	if png, ok := args.Get(0).([]byte); ok {
		return png, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockQRService) ShopURL(shopID uuid.UUID) string {
	args := m.Called(shopID)
	return args.String(0)
}

// fakeTxManager runs the transaction body directly against a factory
// wrapping the test's mocks. No commit or rollback semantics, the tests
// assert on the returned error instead.
type fakeTxManager struct {
	factory *fakeRepoFactory
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

type fakeRepoFactory struct {
	shopRepo     *mockShopRepo
	categoryRepo *mockCategoryRepo
	userRepo     *mockUserRepo
}

func (f *fakeRepoFactory) ShopRepo() repository.ShopRepository         { return f.shopRepo }
func (f *fakeRepoFactory) CategoryRepo() repository.CategoryRepository { return f.categoryRepo }
func (f *fakeRepoFactory) UserRepo() repository.UserRepository         { return f.userRepo }
