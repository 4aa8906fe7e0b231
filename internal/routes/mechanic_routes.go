package routes

import (
	"github.com/gin-gonic/gin"

	"mechanic_shop/internal/controllers"
)

func MechanicRoutes(r *gin.Engine, h *controllers.Handler) {
	mechanics := r.Group("/mechanics")
	{
		mechanics.POST("", h.CreateMechanic)
		mechanics.GET("", h.ListMechanics)
		mechanics.GET("/top", h.TopMechanics)
		mechanics.GET("/top_mechanics", h.TopMechanics)
		mechanics.GET("/:id", h.GetMechanic)
		mechanics.PUT("/:id", h.UpdateMechanic)
		mechanics.DELETE("/:id", h.DeleteMechanic)
	}
}
