package routes

import (
	"github.com/gin-gonic/gin"

	"mechanic_shop/internal/controllers"
)

func WebSocketRoutes(r *gin.Engine, h *controllers.Handler) {
	ws := r.Group("/ws")
	{
		ws.GET("/service_tickets", h.TicketFeed)
	}
}
