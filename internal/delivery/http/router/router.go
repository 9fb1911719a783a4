// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"shoplist/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	OwnerHandler        *handler.OwnerHandler
	VerificationHandler *handler.VerificationHandler
	GroupHandler        *handler.GroupHandler
	DiscoveryHandler    *handler.DiscoveryHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	ownerHandler        *handler.OwnerHandler
	verificationHandler *handler.VerificationHandler
	groupHandler        *handler.GroupHandler
	discoveryHandler    *handler.DiscoveryHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		ownerHandler:        params.OwnerHandler,
		verificationHandler: params.VerificationHandler,
		groupHandler:        params.GroupHandler,
		discoveryHandler:    params.DiscoveryHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	ownerGroup := e.Group("/owners")
	{
		ownerGroup.POST("", r.ownerHandler.Register)
		ownerGroup.GET("", r.ownerHandler.List)
		ownerGroup.GET("/:id", r.ownerHandler.Get)
		ownerGroup.PUT("/:id", r.ownerHandler.UpdateProfile)
		ownerGroup.DELETE("/:id", r.ownerHandler.Deactivate)

		ownerGroup.POST("/:id/items", r.ownerHandler.AttachItem)
		ownerGroup.PUT("/:id/items/:key", r.ownerHandler.UpdateItem)
		ownerGroup.PUT("/:id/area", r.ownerHandler.SetInterestedArea)

		ownerGroup.POST("/:id/verification", r.verificationHandler.RequestCode)
		ownerGroup.POST("/:id/verification/confirm", r.verificationHandler.ConfirmCode)

		ownerGroup.POST("/:id/groups", r.groupHandler.Create)
		ownerGroup.GET("/:id/groups", r.groupHandler.List)
		ownerGroup.POST("/:id/groups/:groupID/members", r.groupHandler.AddMember)
		ownerGroup.POST("/:id/items/:key/share", r.groupHandler.ShareItem)

		ownerGroup.GET("/:id/nearby", r.discoveryHandler.Nearby)
	}

	groupGroup := e.Group("/groups")
	{
		groupGroup.GET("/:groupID", r.groupHandler.Get)
	}

	discoveryGroup := e.Group("/discovery")
	{
		discoveryGroup.POST("/search", r.discoveryHandler.Search)
	}
}
