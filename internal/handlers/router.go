package handlers

import (
	"net/http"
	"strings"

	apperrors "sweet-shop/pkg/errors"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes mounts the JSON API on an /api/v1 group
func RegisterAPIRoutes(v1 *gin.RouterGroup, h *InventoryHandler) {
	v1.GET("/health", h.Health)
	v1.GET("/stats", h.Stats)

	sweets := v1.Group("/sweets")
	{
		sweets.GET("", h.ListSweets)
		sweets.POST("", h.CreateSweet)
		sweets.GET("/search", h.SearchSweets)
		sweets.GET("/:id", h.GetSweet)
		sweets.DELETE("/:id", h.DeleteSweet)
		sweets.POST("/:id/purchase", h.PurchaseSweet)
		sweets.POST("/:id/restock", h.RestockSweet)
		sweets.GET("/:id/movements", h.ListMovements)
	}
}

// RegisterWebRoutes mounts the dashboard and its form endpoints. The engine
// must have the dashboard templates loaded.
func RegisterWebRoutes(router *gin.Engine, h *WebHandler) {
	router.GET("/", h.Index)
	router.GET("/search", h.Search)
	router.POST("/add_sweet", h.AddSweet)
	router.POST("/delete_sweet/:id", h.DeleteSweet)
	router.POST("/purchase", h.Purchase)
	router.POST("/restock", h.Restock)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, apperrors.NewStandardError("NotFound", "route not found", c.Request.URL.Path))
			return
		}
		h.NotFound(c)
	})
}
