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
	"boutik/internal/domain/service"
	"boutik/internal/usecase"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	shopRepo     repository.ShopRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	ShopRepo     repository.ShopRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		shopRepo:     params.ShopRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an account and issues its first token. The email must
// be free and a shop owner's shop reference must resolve.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	srv.log(ctx).Info("Registering account", slog.String("email", input.Email), slog.Any("role", input.Role))

	if _, err := srv.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check email uniqueness")
	}

	if input.Role == entity.RoleShopOwner && input.ShopID != nil {
		if _, err := srv.shopRepo.FindByID(ctx, *input.ShopID); err != nil {
			if errors.Is(err, repository.ErrShopNotFound) {
				return nil, domainerrors.ErrRelationInvalid.WithDetails("shop reference does not exist")
			}

			return nil, errors.Wrap(err, "failed to resolve shop reference")
		}
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed
	}

	user, err := entity.NewUser(input.Name, input.Email, input.Phone, hash, input.Role, input.ShopID, input.Address)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	token, err := srv.tokenService.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}
	srv.log(ctx).Debug("Account registered", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{User: user, Token: token}, nil
}

// Login verifies credentials and issues a token. Unknown emails, wrong
// passwords and inactive accounts all yield (nil, nil) so callers answer
// uniformly.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Warn("Login failed, unknown email", slog.String("email", input.Email))

		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for login")
	}

	if !user.Active {
		srv.log(ctx).Warn("Login failed, inactive account", slog.Any("userID", user.ID))

		return nil, nil
	}

	if err := srv.hasher.Check(user.PasswordHash, input.Password); err != nil {
		srv.log(ctx).Warn("Login failed, password mismatch", slog.Any("userID", user.ID))

		return nil, nil
	}

	token, err := srv.tokenService.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}
	srv.log(ctx).Debug("Login succeeded", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{User: user, Token: token}, nil
}

// CurrentUser loads the profile of an authenticated user.
func (srv *authService) CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	return user, nil
}
