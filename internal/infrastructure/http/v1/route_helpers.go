// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
)

// AssociationRouteHandler defines the routes every relation exposes.
type AssociationRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Replace(c *gin.Context)
	Patch(c *gin.Context)
	Delete(c *gin.Context)
	Orphans(c *gin.Context)
}

// RegisterAssociationRoutes registers CRUD routes for one relation.
//
// Usage:
//
//	handler := handlers.NewAssociationHandler(baseHandler, registry.CartItems)
//	RegisterAssociationRoutes(associations.Group("/cart-items"), handler)
func RegisterAssociationRoutes(group *gin.RouterGroup, handler AssociationRouteHandler) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/orphans", handler.Orphans)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Replace)
	group.PATCH("/:id", handler.Patch)
	group.DELETE("/:id", handler.Delete)
}
