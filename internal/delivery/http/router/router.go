// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"
	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	ProductHandler   *handler.ProductHandler
	CategoryHandler  *handler.CategoryHandler
	TeamHandler      *handler.TeamHandler
	OrderHandler     *handler.OrderHandler
	ReviewHandler    *handler.ReviewHandler
	UserHandler      *handler.UserHandler
	DashboardHandler *handler.DashboardHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler      *handler.AuthHandler
	productHandler   *handler.ProductHandler
	categoryHandler  *handler.CategoryHandler
	teamHandler      *handler.TeamHandler
	orderHandler     *handler.OrderHandler
	reviewHandler    *handler.ReviewHandler
	userHandler      *handler.UserHandler
	dashboardHandler *handler.DashboardHandler
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:      params.AuthHandler,
		productHandler:   params.ProductHandler,
		categoryHandler:  params.CategoryHandler,
		teamHandler:      params.TeamHandler,
		orderHandler:     params.OrderHandler,
		reviewHandler:    params.ReviewHandler,
		userHandler:      params.UserHandler,
		dashboardHandler: params.DashboardHandler,
		authMiddleware:   params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	authenticate := r.authMiddleware.Authenticate
	adminOnly := r.authMiddleware.RequireRole(entity.RoleAdmin)

	apiV1 := e.Group("/api/v1")

	// Identity provider tokens are exchanged for session tokens here.
	authGroup := apiV1.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/social", r.authHandler.SocialLogin)
		authGroup.POST("/forgot-password", r.authHandler.ForgotPassword)
		authGroup.POST("/reset-password", r.authHandler.ResetPassword)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/me", r.authHandler.Me, authenticate)
		authGroup.PUT("/password", r.authHandler.ChangePassword, authenticate)
		authGroup.POST("/password", r.authHandler.SetPassword, authenticate)
	}

	productsGroup := apiV1.Group("/products")
	{
		productsGroup.GET("", r.productHandler.ListProducts)
		productsGroup.GET("/:id", r.productHandler.GetProduct)
		productsGroup.GET("/:id/reviews", r.reviewHandler.ListProductReviews)
		productsGroup.POST("", r.productHandler.CreateProduct, authenticate, adminOnly)
		productsGroup.PUT("/:id", r.productHandler.UpdateProduct, authenticate, adminOnly)
		productsGroup.DELETE("/:id", r.productHandler.DeleteProduct, authenticate, adminOnly)
	}

	categoriesGroup := apiV1.Group("/categories")
	{
		categoriesGroup.GET("", r.categoryHandler.ListCategories)
		categoriesGroup.GET("/:id", r.categoryHandler.GetCategory)
		categoriesGroup.POST("", r.categoryHandler.CreateCategory, authenticate, adminOnly)
		categoriesGroup.PUT("/:id", r.categoryHandler.UpdateCategory, authenticate, adminOnly)
		categoriesGroup.DELETE("/:id", r.categoryHandler.DeleteCategory, authenticate, adminOnly)
	}

	teamsGroup := apiV1.Group("/teams")
	{
		teamsGroup.GET("", r.teamHandler.ListTeams)
		teamsGroup.GET("/:id", r.teamHandler.GetTeam)
		teamsGroup.POST("", r.teamHandler.CreateTeam, authenticate, adminOnly)
		teamsGroup.PUT("/:id", r.teamHandler.UpdateTeam, authenticate, adminOnly)
		teamsGroup.DELETE("/:id", r.teamHandler.DeleteTeam, authenticate, adminOnly)
	}

	ordersGroup := apiV1.Group("/orders", authenticate)
	{
		ordersGroup.POST("", r.orderHandler.CreateOrder)
		ordersGroup.GET("/me", r.orderHandler.ListMyOrders)
		ordersGroup.GET("/:id", r.orderHandler.GetOrder)
		ordersGroup.PUT("/:id/cancel", r.orderHandler.CancelOrder)
	}

	reviewsGroup := apiV1.Group("/reviews")
	{
		reviewsGroup.POST("", r.reviewHandler.CreateReview, authenticate)
		reviewsGroup.GET("/me", r.reviewHandler.ListMyReviews, authenticate)
		reviewsGroup.GET("/:id", r.reviewHandler.GetReview)
		reviewsGroup.PUT("/:id", r.reviewHandler.UpdateReview, authenticate)
		reviewsGroup.DELETE("/:id", r.reviewHandler.DeleteReview, authenticate)
	}

	usersGroup := apiV1.Group("/users", authenticate)
	{
		usersGroup.PUT("/me", r.userHandler.UpdateProfile)
	}

	adminGroup := apiV1.Group("/admin", authenticate, adminOnly)
	{
		adminGroup.GET("/orders", r.orderHandler.ListOrders)
		adminGroup.PUT("/orders/:id/status", r.orderHandler.UpdateOrderStatus)
		adminGroup.DELETE("/orders/:id", r.orderHandler.DeleteOrder)

		adminGroup.GET("/users", r.userHandler.ListUsers)
		adminGroup.GET("/users/:id", r.userHandler.GetUser)
		adminGroup.PUT("/users/:id", r.userHandler.UpdateUser)
		adminGroup.DELETE("/users/:id", r.userHandler.DeleteUser)

		adminGroup.GET("/reviews", r.reviewHandler.ListReviews)

		dashboardGroup := adminGroup.Group("/dashboard")
		dashboardGroup.GET("/summary", r.dashboardHandler.Summary)
		dashboardGroup.GET("/sales", r.dashboardHandler.Sales)
		dashboardGroup.GET("/top-products", r.dashboardHandler.TopProducts)
		dashboardGroup.GET("/category-distribution", r.dashboardHandler.CategoryDistribution)
		dashboardGroup.GET("/revenue-by-category", r.dashboardHandler.RevenueByCategory)
		dashboardGroup.GET("/order-status", r.dashboardHandler.OrderStatusDistribution)
	}
}
