// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "boutik/internal/delivery/context"
	"boutik/internal/domain/entity"
	domainerrors "boutik/internal/domain/errors"
	"boutik/internal/domain/repository"
	"boutik/internal/domain/service"
	"boutik/internal/pagination"
	"boutik/internal/usecase"
)

// shopService implements the ShopUsecase interface. Multi-entity
// operations run through the transaction manager so relation failures
// roll back every change.
type shopService struct {
	txManager repository.TransactionManager
	shopRepo  repository.ShopRepository
	qrService service.QRCodeService
	logger    *slog.Logger
}

// ShopServiceParams holds dependencies for ShopService, injected by Fx.
type ShopServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	ShopRepo  repository.ShopRepository
	QRService service.QRCodeService
	Logger    *slog.Logger
}

// NewShopService is the constructor for shopService.
func NewShopService(params ShopServiceParams) usecase.ShopUsecase {
	return &shopService{
		txManager: params.TxManager,
		shopRepo:  params.ShopRepo,
		qrService: params.QRService,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *shopService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateShop creates a shop and its relations atomically. Category and
// user references are validated inside the transaction so a single bad
// id cancels the whole creation.
func (srv *shopService) CreateShop(ctx context.Context, input usecase.CreateShopInput) (*usecase.CreateShopOutput, error) {
	shop, err := entity.NewShop(input.Name, input.Description, input.Image, input.Phone, input.Email)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	categoryIDs := uniqueIDs(input.CategoryIDs)
	userIDs := uniqueIDs(input.UserIDs)

	srv.log(ctx).Info("Creating shop",
		slog.String("name", shop.Name),
		slog.Int("categories", len(categoryIDs)),
		slog.Int("users", len(userIDs)))

	var created *entity.Shop
	stats := usecase.CreateShopStats{}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		shopRepo := repoFactory.ShopRepo()

		if err := ensureShopEmailFree(ctx, shopRepo, shop.Email, uuid.Nil); err != nil {
			return err
		}

		if err := validateCategoryRefs(ctx, repoFactory.CategoryRepo(), categoryIDs); err != nil {
			return err
		}

		assignable, err := validateAssignableUsers(ctx, repoFactory.UserRepo(), userIDs)
		if err != nil {
			return err
		}

		if err := shopRepo.Create(ctx, shop); err != nil {
			return errors.Wrap(err, "failed to create shop")
		}

		if len(categoryIDs) > 0 {
			if err := shopRepo.ReplaceCategories(ctx, shop.ID, categoryIDs); err != nil {
				return errors.Wrap(err, "failed to attach categories")
			}
			stats.CategoriesAssigned = len(categoryIDs)
		}

		if len(assignable) > 0 {
			assigned, err := assignEligibleUsers(ctx, repoFactory.UserRepo(), assignable, shop.ID)
			if err != nil {
				return err
			}
			stats.UsersAssigned = assigned
		}

		created, err = shopRepo.FindByIDWithCategories(ctx, shop.ID)
		if err != nil {
			return errors.Wrap(err, "failed to reload created shop")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Error("Failed to execute shop creation transaction",
			slog.String("name", shop.Name), slog.Any("error", err))

		return nil, err
	}

	stats.TotalOperations = 1 + stats.UsersAssigned + stats.CategoriesAssigned
	srv.log(ctx).Debug("Shop created", slog.Any("shopID", created.ID))

	return &usecase.CreateShopOutput{Shop: created, Stats: stats}, nil
}

// UpdateShop applies scalar changes and reconciles relations atomically.
// A nil relation pointer skips that relation, an empty slice clears it,
// and a non-empty slice replaces it exactly.
func (srv *shopService) UpdateShop(ctx context.Context, id uuid.UUID, input usecase.UpdateShopInput) (*usecase.UpdateShopOutput, error) {
	srv.log(ctx).Info("Updating shop", slog.Any("shopID", id))

	var updated *entity.Shop
	stats := usecase.UpdateShopStats{}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		shopRepo := repoFactory.ShopRepo()

		shop, err := shopRepo.FindByID(ctx, id)
		if err != nil {
			return mapShopRepoError(err)
		}

		applyShopFields(shop, input)
		if err := shop.Validate(); err != nil {
			return domainerrors.ErrValidationFailed.WithDetails(err.Error())
		}

		if input.Email != nil {
			if err := ensureShopEmailFree(ctx, shopRepo, shop.Email, shop.ID); err != nil {
				return err
			}
		}

		if err := shopRepo.Update(ctx, shop); err != nil {
			return errors.Wrap(err, "failed to update shop")
		}

		if input.CategoryIDs != nil {
			categoryIDs := uniqueIDs(*input.CategoryIDs)
			if err := validateCategoryRefs(ctx, repoFactory.CategoryRepo(), categoryIDs); err != nil {
				return err
			}
			if err := shopRepo.ReplaceCategories(ctx, shop.ID, categoryIDs); err != nil {
				return errors.Wrap(err, "failed to replace categories")
			}
			count := len(categoryIDs)
			stats.CategoriesUpdated = &count
		}

		if input.UserIDs != nil {
			added, removed, err := srv.reconcileShopUsers(ctx, repoFactory.UserRepo(), shop.ID, uniqueIDs(*input.UserIDs))
			if err != nil {
				return err
			}
			stats.UsersAdded = added
			stats.UsersRemoved = removed
		}

		updated, err = shopRepo.FindByIDWithCategories(ctx, shop.ID)
		if err != nil {
			return errors.Wrap(err, "failed to reload updated shop")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Error("Failed to execute shop update transaction",
			slog.Any("shopID", id), slog.Any("error", err))

		return nil, err
	}

	stats.TotalChanges = stats.UsersAdded + stats.UsersRemoved
	if stats.CategoriesUpdated != nil {
		stats.TotalChanges++
	}
	srv.log(ctx).Debug("Shop updated", slog.Any("shopID", id))

	return &usecase.UpdateShopOutput{Shop: updated, Stats: stats}, nil
}

// reconcileShopUsers moves the shop's user set to exactly the desired
// ids. New members must be eligible. Removed members keep their role and
// only lose the shop link.
func (srv *shopService) reconcileShopUsers(ctx context.Context, userRepo repository.UserRepository, shopID uuid.UUID, desired []uuid.UUID) (added, removed int, err error) {
	current, err := userRepo.FindAssignedToShop(ctx, shopID)
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to load assigned users")
	}

	currentSet := make(map[uuid.UUID]struct{}, len(current))
	for _, u := range current {
		currentSet[u.ID] = struct{}{}
	}
	desiredSet := make(map[uuid.UUID]struct{}, len(desired))
	for _, id := range desired {
		desiredSet[id] = struct{}{}
	}

	var toAdd, toRemove []uuid.UUID
	for _, id := range desired {
		if _, ok := currentSet[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	for _, u := range current {
		if _, ok := desiredSet[u.ID]; !ok {
			toRemove = append(toRemove, u.ID)
		}
	}

	assignable, err := validateAssignableUsers(ctx, userRepo, toAdd)
	if err != nil {
		return 0, 0, err
	}

	if len(assignable) > 0 {
		added, err = assignEligibleUsers(ctx, userRepo, assignable, shopID)
		if err != nil {
			return 0, 0, err
		}
	}

	if len(toRemove) > 0 {
		n, err := userRepo.ReleaseFromShop(ctx, toRemove)
		if err != nil {
			return 0, 0, errors.Wrap(err, "failed to release users")
		}
		removed = int(n)
	}

	return added, removed, nil
}

// GetShop returns a shop with its categories populated.
func (srv *shopService) GetShop(ctx context.Context, id uuid.UUID) (*entity.Shop, error) {
	shop, err := srv.shopRepo.FindByIDWithCategories(ctx, id)
	if err != nil {
		return nil, mapShopRepoError(err)
	}

	return shop, nil
}

// ListShops returns a page of shops matching the sanitized filters.
func (srv *shopService) ListShops(ctx context.Context, params pagination.Params, filters map[string]any) (*pagination.Page[*entity.Shop], error) {
	shops, total, err := srv.shopRepo.Paginate(ctx, filters, params.Limit, params.Offset())
	if err != nil {
		return nil, errors.Wrap(err, "failed to paginate shops")
	}

	page := pagination.NewPage(shops, total, params, filters)

	return &page, nil
}

// SearchShops returns shops whose name or email contains the term.
func (srv *shopService) SearchShops(ctx context.Context, term string) ([]*entity.Shop, error) {
	shops, err := srv.shopRepo.Search(ctx, term)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search shops")
	}

	return shops, nil
}

// DeleteShop removes a shop and releases its users in one transaction.
// Categories survive, only the join rows disappear.
func (srv *shopService) DeleteShop(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting shop", slog.Any("shopID", id))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		shopRepo := repoFactory.ShopRepo()
		userRepo := repoFactory.UserRepo()

		if _, err := shopRepo.FindByID(ctx, id); err != nil {
			return mapShopRepoError(err)
		}

		assigned, err := userRepo.FindAssignedToShop(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to load assigned users")
		}
		if len(assigned) > 0 {
			ids := make([]uuid.UUID, 0, len(assigned))
			for _, u := range assigned {
				ids = append(ids, u.ID)
			}
			if _, err := userRepo.ReleaseFromShop(ctx, ids); err != nil {
				return errors.Wrap(err, "failed to release users before delete")
			}
		}

		if err := shopRepo.Delete(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete shop")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Error("Failed to execute shop deletion transaction",
			slog.Any("shopID", id), slog.Any("error", err))

		return err
	}

	return nil
}

// SetShopActive toggles the active flag and returns the updated shop.
func (srv *shopService) SetShopActive(ctx context.Context, id uuid.UUID, active bool) (*entity.Shop, error) {
	if err := srv.shopRepo.SetActive(ctx, id, active); err != nil {
		return nil, mapShopRepoError(err)
	}

	shop, err := srv.shopRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapShopRepoError(err)
	}

	return shop, nil
}

// AssignUserToShop attaches a single eligible user to the shop.
func (srv *shopService) AssignUserToShop(ctx context.Context, shopID, userID uuid.UUID) error {
	srv.log(ctx).Info("Assigning user to shop", slog.Any("shopID", shopID), slog.Any("userID", userID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.ShopRepo().FindByID(ctx, shopID); err != nil {
			return mapShopRepoError(err)
		}

		userRepo := repoFactory.UserRepo()
		assignable, err := validateAssignableUsers(ctx, userRepo, []uuid.UUID{userID})
		if err != nil {
			return err
		}

		if _, err := assignEligibleUsers(ctx, userRepo, assignable, shopID); err != nil {
			return err
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Error("Failed to execute user assignment transaction",
			slog.Any("shopID", shopID), slog.Any("userID", userID), slog.Any("error", err))

		return err
	}

	return nil
}

// GenerateShopQRCode renders a PNG QR code for the shop storefront page.
func (srv *shopService) GenerateShopQRCode(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if _, err := srv.shopRepo.FindByID(ctx, id); err != nil {
		return nil, mapShopRepoError(err)
	}

	png, err := srv.qrService.GenerateShopQRCode(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate shop QR code")
	}

	return png, nil
}

// --- helpers shared by the coordinator ---

// ensureShopEmailFree rejects an email already used by another shop.
// excludeID skips the shop being updated.
func ensureShopEmailFree(ctx context.Context, shopRepo repository.ShopRepository, email string, excludeID uuid.UUID) error {
	existing, err := shopRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrShopNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to check shop email uniqueness")
	}
	if existing.ID == excludeID {
		return nil
	}

	return domainerrors.ErrShopEmailTaken
}

// assignEligibleUsers runs the conditional bulk assignment and aborts the
// unit when fewer rows than requested were updated, which happens when a
// user lost eligibility between the validation read and the update.
func assignEligibleUsers(ctx context.Context, userRepo repository.UserRepository, ids []uuid.UUID, shopID uuid.UUID) (int, error) {
	assigned, err := userRepo.AssignToShop(ctx, ids, shopID)
	if err != nil {
		return 0, errors.Wrap(err, "failed to assign users")
	}
	if assigned != int64(len(ids)) {
		return 0, domainerrors.ErrRelationInvalid.WithDetails(
			fmt.Sprintf("only %d of %d users could be assigned", assigned, len(ids)))
	}

	return int(assigned), nil
}

// validateCategoryRefs fails when any id does not resolve to an active
// category.
func validateCategoryRefs(ctx context.Context, categoryRepo repository.CategoryRepository, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	found, err := categoryRepo.FindActiveByIDs(ctx, ids)
	if err != nil {
		return errors.Wrap(err, "failed to validate category references")
	}
	if len(found) != len(ids) {
		foundSet := make(map[uuid.UUID]struct{}, len(found))
		for _, c := range found {
			foundSet[c.ID] = struct{}{}
		}

		return domainerrors.ErrRelationInvalid.WithDetails(
			fmt.Sprintf("unknown or inactive categories: %s", joinMissing(ids, foundSet)))
	}

	return nil
}

// validateAssignableUsers fails when any id does not resolve to a user
// eligible for shop assignment. It returns the validated ids.
func validateAssignableUsers(ctx context.Context, userRepo repository.UserRepository, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	eligible, err := userRepo.FindEligibleForAssignment(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to validate user references")
	}
	if len(eligible) != len(ids) {
		eligibleSet := make(map[uuid.UUID]struct{}, len(eligible))
		for _, u := range eligible {
			eligibleSet[u.ID] = struct{}{}
		}

		return nil, domainerrors.ErrRelationInvalid.WithDetails(
			fmt.Sprintf("unknown or ineligible users: %s", joinMissing(ids, eligibleSet)))
	}

	return ids, nil
}

// applyShopFields overlays non-nil input fields, normalized the same way
// the constructor normalizes them.
func applyShopFields(shop *entity.Shop, input usecase.UpdateShopInput) {
	if input.Name != nil {
		shop.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		shop.Description = strings.TrimSpace(*input.Description)
	}
	if input.Image != nil {
		shop.Image = strings.TrimSpace(*input.Image)
	}
	if input.Phone != nil {
		shop.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Email != nil {
		shop.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
}

func mapShopRepoError(err error) error {
	if errors.Is(err, repository.ErrShopNotFound) {
		return domainerrors.ErrShopNotFound
	}

	return errors.Wrap(err, "shop repository error")
}

// uniqueIDs preserves order while dropping duplicates.
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return nil
	}

	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}

func joinMissing(requested []uuid.UUID, found map[uuid.UUID]struct{}) string {
	var out string
	for _, id := range requested {
		if _, ok := found[id]; ok {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += id.String()
	}

	return out
}
