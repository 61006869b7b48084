package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"boutik/internal/delivery/http/response"
	"boutik/internal/usecase"
)

// ShopHandler holds dependencies for shop administration handlers.
type ShopHandler struct {
	uc     usecase.ShopUsecase
	logger *slog.Logger
}

// NewShopHandler is the constructor for ShopHandler, injected by Fx.
func NewShopHandler(uc usecase.ShopUsecase, logger *slog.Logger) *ShopHandler {
	return &ShopHandler{
		uc:     uc,
		logger: logger,
	}
}

type createShopRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Phone       string `json:"phone"`
	Email       string `json:"email" validate:"required,email"`
}

type createShopWithRelationsRequest struct {
	createShopRequest
	UserIDs     []uuid.UUID `json:"userIds"`
	CategoryIDs []uuid.UUID `json:"categoryIds"`
}

type updateShopRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email" validate:"omitempty,email"`
}

type updateShopWithRelationsRequest struct {
	updateShopRequest
	UserIDs     *[]uuid.UUID `json:"userIds"`
	CategoryIDs *[]uuid.UUID `json:"categoryIds"`
}

type assignUserRequest struct {
	UserID uuid.UUID `json:"userId" validate:"required"`
}

// shopWithStatsResponse pairs a shop with the relation counters of the
// transaction that produced it.
type shopWithStatsResponse struct {
	Shop  any `json:"shop"`
	Stats any `json:"stats"`
}

// Create handles the plain shop creation request, without relations.
func (h *ShopHandler) Create(c echo.Context) error {
	var req createShopRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid shop input")
	}

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.CreateShop(c.Request().Context(), usecase.CreateShopInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Phone:       req.Phone,
		Email:       req.Email,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.Shop, "Shop created successfully")
}

// CreateWithRelations creates a shop together with its initial user and
// category relations in one transaction.
func (h *ShopHandler) CreateWithRelations(c echo.Context) error {
	var req createShopWithRelationsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid shop input")
	}

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.CreateShop(c.Request().Context(), usecase.CreateShopInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Phone:       req.Phone,
		Email:       req.Email,
		UserIDs:     req.UserIDs,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, shopWithStatsResponse{
		Shop:  output.Shop,
		Stats: output.Stats,
	}, "Shop created successfully")
}

// Update handles a partial field update without touching relations.
func (h *ShopHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid shop id")
	}

	var req updateShopRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid shop input")
	}

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.UpdateShop(c.Request().Context(), id, usecase.UpdateShopInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Phone:       req.Phone,
		Email:       req.Email,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output.Shop, "Shop updated successfully")
}

// UpdateWithRelations applies a partial update and reconciles user and
// category relations in one transaction. Omitted arrays leave relations
// untouched, empty arrays clear them.
func (h *ShopHandler) UpdateWithRelations(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid shop id")
	}

	var req updateShopWithRelationsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid shop input")
	}

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.UpdateShop(c.Request().Context(), id, usecase.UpdateShopInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Phone:       req.Phone,
		Email:       req.Email,
		UserIDs:     req.UserIDs,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, shopWithStatsResponse{
		Shop:  output.Shop,
		Stats: output.Stats,
	}, "Shop updated successfully")
}

// Get returns a single shop with its categories.
func (h *ShopHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid shop id")
	}

	shop, err := h.uc.GetShop(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, shop, "")
}

// List returns a paginated, filterable shop listing.
func (h *ShopHandler) List(c echo.Context) error {
	params, filters := parseListQuery(c, usecase.ShopFilterFields, nil)

	page, err := h.uc.ListShops(c.Request().Context(), params, filters)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "")
}

// Search returns shops whose name or email contains the search term.
func (h *ShopHandler) Search(c echo.Context) error {
	term := strings.TrimSpace(c.QueryParam(queryParamTerm))
	if term == "" {
		return response.BadRequest(c, "MISSING_QUERY", "Search term is required")
	}

	shops, err := h.uc.SearchShops(c.Request().Context(), term)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, shops, "")
}

// Delete removes a shop and releases its assigned users.
func (h *ShopHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid shop id")
	}

	if err := h.uc.DeleteShop(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Shop deleted successfully")
}

// Activate marks a shop as active.
func (h *ShopHandler) Activate(c echo.Context) error {
	return h.setActive(c, true, "Shop activated successfully")
}

// Deactivate marks a shop as inactive.
func (h *ShopHandler) Deactivate(c echo.Context) error {
	return h.setActive(c, false, "Shop deactivated successfully")
}

func (h *ShopHandler) setActive(c echo.Context, active bool, message string) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid shop id")
	}

	shop, err := h.uc.SetShopActive(c.Request().Context(), id, active)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, shop, message)
}

// AssignUser attaches a single eligible user to the shop.
func (h *ShopHandler) AssignUser(c echo.Context) error {
	shopID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid shop id")
	}

	var req assignUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid assignment input")
	}

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.AssignUserToShop(c.Request().Context(), shopID, req.UserID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User assigned successfully")
}

// QRCode renders the shop storefront QR code as a PNG image.
func (h *ShopHandler) QRCode(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid shop id")
	}

	png, err := h.uc.GenerateShopQRCode(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
