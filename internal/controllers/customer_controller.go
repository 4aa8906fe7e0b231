package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"mechanic_shop/internal/apperrors"
	"mechanic_shop/internal/middleware"
	"mechanic_shop/internal/responses"
	"mechanic_shop/internal/services"
)

func (h *Handler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.shop.Login(c.Request.Context(), req)
	if err != nil {
		var authErr *apperrors.AuthError
		if errors.As(err, &authErr) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": authErr.Reason})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Login successful.",
		"token":   token,
	})
}

func (h *Handler) CreateCustomer(c *gin.Context) {
	var req services.CustomerSignup
	if !bindJSON(c, &req) {
		return
	}
	customer, err := h.shop.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, responses.Customer(*customer))
}

func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.shop.ListCustomers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.Customers(customers))
}

func (h *Handler) GetCustomer(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	customer, err := h.shop.GetCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.Customer(*customer))
}

func (h *Handler) UpdateCustomer(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req services.CustomerUpdate
	if !bindJSON(c, &req) {
		return
	}
	customer, err := h.shop.UpdateCustomer(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.Customer(*customer))
}

// DeleteCustomer deletes the caller's own record.
func (h *Handler) DeleteCustomer(c *gin.Context) {
	id, ok := middleware.CustomerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login to access this resource"})
		return
	}
	if err := h.shop.DeleteCustomer(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Customer id: %d, successfully deleted.", id)})
}

// MyTickets lists the caller's tickets.
func (h *Handler) MyTickets(c *gin.Context) {
	id, ok := middleware.CustomerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login to access this resource"})
		return
	}
	tickets, err := h.shop.CustomerTickets(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.Summaries(tickets))
}
