package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"boutik/internal/delivery/http/middleware"
	"boutik/internal/delivery/http/response"
	"boutik/internal/domain/entity"
	"boutik/internal/usecase"
)

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

type addressPayload struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
}

type registerRequest struct {
	Name     string          `json:"name" validate:"required,min=2,max=50"`
	Email    string          `json:"email" validate:"required,email"`
	Phone    string          `json:"phone"`
	Password string          `json:"password" validate:"required,min=8"`
	Role     string          `json:"role" validate:"required"`
	ShopID   *uuid.UUID      `json:"shopId"`
	Address  *addressPayload `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// authResponse is the payload returned by register and login.
type authResponse struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

// Register handles the account registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	input := usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     entity.Role(req.Role),
		ShopID:   req.ShopID,
	}
	if req.Address != nil {
		input.Address = &entity.Address{
			Street:     req.Address.Street,
			City:       req.Address.City,
			PostalCode: req.Address.PostalCode,
		}
	}

	output, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, authResponse{
		User:  output.User,
		Token: output.Token,
	}, "Account registered successfully")
}

// Login handles the login request. Unknown email, wrong password and
// inactive account all answer the same 401.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	if output == nil {
		return response.Unauthorized(c, "INVALID_CREDENTIALS", "Invalid email or password")
	}

	return response.Success(c, http.StatusOK, authResponse{
		User:  output.User,
		Token: output.Token,
	}, "Login successful")
}

// Me returns the profile of the authenticated caller.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing authenticated user")
	}

	user, err := h.uc.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "")
}
