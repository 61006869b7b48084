// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"boutik/internal/delivery/http/middleware"
	"boutik/internal/delivery/http/router/handler"
	"boutik/internal/domain/entity"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	ShopHandler     *handler.ShopHandler
	CategoryHandler *handler.CategoryHandler
	UserHandler     *handler.UserHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	shopHandler     *handler.ShopHandler
	categoryHandler *handler.CategoryHandler
	userHandler     *handler.UserHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		shopHandler:     params.ShopHandler,
		categoryHandler: params.CategoryHandler,
		userHandler:     params.UserHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// Reads require authentication, writes additionally require the admin role.
func (r *router) RegisterRoutes(e *echo.Echo) {
	admin := r.authMiddleware.RequireRole(entity.RoleAdmin)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
	}

	// Shop routes
	shopGroup := e.Group("/shops")
	shopGroup.Use(r.authMiddleware.Authenticate)
	{
		shopGroup.GET("/list", r.shopHandler.List)
		shopGroup.GET("/search", r.shopHandler.Search)
		shopGroup.GET("/:id", r.shopHandler.Get)
		shopGroup.GET("/:id/qrcode", r.shopHandler.QRCode)

		shopGroup.POST("", r.shopHandler.Create, admin)
		shopGroup.POST("/with-relations", r.shopHandler.CreateWithRelations, admin)
		shopGroup.PUT("/:id", r.shopHandler.Update, admin)
		shopGroup.PUT("/:id/with-relations", r.shopHandler.UpdateWithRelations, admin)
		shopGroup.DELETE("/:id", r.shopHandler.Delete, admin)
		shopGroup.PATCH("/:id/activate", r.shopHandler.Activate, admin)
		shopGroup.PATCH("/:id/deactivate", r.shopHandler.Deactivate, admin)
		shopGroup.POST("/:id/assign-user", r.shopHandler.AssignUser, admin)
	}

	// Category routes
	categoryGroup := e.Group("/categories")
	categoryGroup.Use(r.authMiddleware.Authenticate)
	{
		categoryGroup.GET("/list", r.categoryHandler.List)
		categoryGroup.GET("/:id", r.categoryHandler.Get)

		categoryGroup.POST("", r.categoryHandler.Create, admin)
		categoryGroup.PUT("/:id", r.categoryHandler.Update, admin)
		categoryGroup.DELETE("/:id", r.categoryHandler.Delete, admin)
		categoryGroup.PATCH("/:id/activate", r.categoryHandler.Activate, admin)
		categoryGroup.PATCH("/:id/deactivate", r.categoryHandler.Deactivate, admin)
	}

	// User administration routes
	userGroup := e.Group("/users")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/list", r.userHandler.List, admin)
		userGroup.GET("/:id", r.userHandler.Get, admin)
	}
}
