package routes

import (
	"github.com/gin-gonic/gin"

	"mechanic_shop/internal/controllers"
)

func InventoryRoutes(r *gin.Engine, h *controllers.Handler) {
	inventory := r.Group("/inventory")
	{
		inventory.POST("", h.CreateInventory)
		inventory.GET("", h.ListInventory)
		inventory.GET("/:id", h.GetInventory)
		inventory.PUT("/:id", h.UpdateInventory)
		inventory.DELETE("/:id", h.DeleteInventory)
	}
}
