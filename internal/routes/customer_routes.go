package routes

import (
	"github.com/gin-gonic/gin"

	"mechanic_shop/internal/controllers"
	"mechanic_shop/internal/middleware"
)

func CustomerRoutes(r *gin.Engine, h *controllers.Handler, auth middleware.Authenticator) {
	customers := r.Group("/customers")
	{
		customers.POST("/login", h.Login)
		customers.POST("", h.CreateCustomer)
		customers.GET("", h.ListCustomers)
		customers.GET("/:id", h.GetCustomer)
		customers.PUT("/:id", h.UpdateCustomer)
	}

	protected := r.Group("/customers")
	protected.Use(middleware.RequireAuth(auth))
	{
		protected.DELETE("", h.DeleteCustomer)
		protected.GET("/my-tickets", h.MyTickets)
	}
}
