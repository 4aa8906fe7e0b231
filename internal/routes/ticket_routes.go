package routes

import (
	"github.com/gin-gonic/gin"

	"mechanic_shop/internal/controllers"
)

func ServiceTicketRoutes(r *gin.Engine, h *controllers.Handler) {
	tickets := r.Group("/service_tickets")
	{
		tickets.POST("", h.CreateTicket)
		tickets.GET("", h.ListTickets)
		tickets.GET("/export", h.ExportTickets)
		tickets.GET("/:id", h.GetTicket)
		tickets.PUT("/:id", h.UpdateTicket)
		tickets.DELETE("/:id", h.DeleteTicket)
		tickets.PUT("/:id/assign_mechanics", h.AssignMechanics)
		tickets.PUT("/:id/remove_mechanics", h.RemoveMechanics)
		tickets.PUT("/:id/add_inventory", h.AddInventory)
	}
}
