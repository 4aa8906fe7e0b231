package routes

import (
	"github.com/gin-gonic/gin"

	"mechanic_shop/internal/controllers"
	"mechanic_shop/internal/middleware"
)

// SetupRouter builds the engine with every route registered. mw runs before
// any route handler.
func SetupRouter(h *controllers.Handler, auth middleware.Authenticator, mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(mw...)

	r.GET("/healthz", h.Health)

	CustomerRoutes(r, h, auth)
	MechanicRoutes(r, h)
	InventoryRoutes(r, h)
	ServiceTicketRoutes(r, h)
	WebSocketRoutes(r, h)

	return r
}
