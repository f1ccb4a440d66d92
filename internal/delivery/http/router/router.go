// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"lens/internal/delivery/http/middleware"
	"lens/internal/delivery/http/router/handler"
	"lens/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	IngestHandler    *handler.IngestHandler
	AnalyticsHandler *handler.AnalyticsHandler
	AuthMiddleware   *middleware.AuthMiddleware
	RequestContext   *middleware.RequestContextMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler      *handler.AuthHandler
	ingestHandler    *handler.IngestHandler
	analyticsHandler *handler.AnalyticsHandler
	authMiddleware   *middleware.AuthMiddleware
	requestContext   *middleware.RequestContextMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:      params.AuthHandler,
		ingestHandler:    params.IngestHandler,
		analyticsHandler: params.AnalyticsHandler,
		authMiddleware:   params.AuthMiddleware,
		requestContext:   params.RequestContext,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestContext.Handle)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
	}

	meGroup := e.Group("/auth")
	meGroup.Use(r.authMiddleware.Authenticate)
	{
		meGroup.GET("/me", r.authHandler.Me)
	}

	// Ingestion routes: the pipeline writes with an admin service account
	ingestGroup := e.Group("/ingest")
	ingestGroup.Use(r.authMiddleware.Authenticate)
	ingestGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin.String()))
	{
		ingestGroup.POST("/products", r.ingestHandler.IngestProduct)
		ingestGroup.POST("/transactions", r.ingestHandler.IngestTransaction)
		ingestGroup.POST("/profiles", r.ingestHandler.UpsertProfile)
	}

	// Analytics read routes: any authenticated staff role
	analyticsGroup := e.Group("/analytics")
	analyticsGroup.Use(r.authMiddleware.Authenticate)
	{
		analyticsGroup.GET("/products", r.analyticsHandler.SearchProducts)
		analyticsGroup.GET("/products/:id", r.analyticsHandler.GetProduct)
		analyticsGroup.GET("/profiles/:userID", r.analyticsHandler.GetProfile)
		analyticsGroup.GET("/transactions/:id", r.analyticsHandler.GetTransaction)
		analyticsGroup.GET("/users/:userID/transactions", r.analyticsHandler.ListUserTransactions)
	}
}
