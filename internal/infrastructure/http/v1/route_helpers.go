// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/infrastructure/http/v1/middleware"
)

// CatalogRouteHandler defines the interface for catalog handlers.
// All catalog handlers must implement these methods.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	SetDeletionMark(c *gin.Context)
}

// DocumentRouteHandler defines the interface for document handlers.
// Documents are immutable after commit: list, create, and read only.
type DocumentRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
}

// RegisterCatalogRoutes registers standard CRUD routes for a catalog.
// Reads are open to any authenticated user; mutations require the
// manager or admin role.
//
// Usage:
//
//	repo := catalog_repo.NewSupplierRepo(cfg.TxManager)
//	service := supplier.NewService(repo, cfg.TxManager, num)
//	handler := handlers.NewSupplierHandler(baseHandler, service)
//	RegisterCatalogRoutes(catalogs.Group("/suppliers"), handler)
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler) {
	mutate := middleware.RequireRole("manager", "admin")

	group.GET("", handler.List)
	group.POST("", mutate, handler.Create)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", mutate, handler.Update)
	group.DELETE("/:id", mutate, handler.Delete)
	group.POST("/:id/deletion-mark", mutate, handler.SetDeletionMark)
}

// RegisterDocumentRoutes registers list/create/read routes for a
// document. createGuards run before Create only; reads stay open to
// any authenticated user.
func RegisterDocumentRoutes(group *gin.RouterGroup, handler DocumentRouteHandler, createGuards ...gin.HandlerFunc) {
	group.GET("", handler.List)
	group.GET("/:id", handler.Get)

	create := append(append([]gin.HandlerFunc{}, createGuards...), handler.Create)
	group.POST("", create...)
}
