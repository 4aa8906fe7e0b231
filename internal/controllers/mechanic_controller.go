package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"mechanic_shop/internal/responses"
	"mechanic_shop/internal/services"
)

func (h *Handler) CreateMechanic(c *gin.Context) {
	var req services.MechanicCreate
	if !bindJSON(c, &req) {
		return
	}
	mechanic, err := h.shop.CreateMechanic(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, responses.Mechanic(*mechanic))
}

func (h *Handler) ListMechanics(c *gin.Context) {
	mechanics, err := h.shop.ListMechanics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.Mechanics(mechanics))
}

// TopMechanics lists mechanics busiest first.
func (h *Handler) TopMechanics(c *gin.Context) {
	ranked, err := h.shop.TopMechanics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.Ranked(ranked))
}

func (h *Handler) GetMechanic(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	mechanic, err := h.shop.GetMechanic(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.Mechanic(*mechanic))
}

func (h *Handler) UpdateMechanic(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req services.MechanicUpdate
	if !bindJSON(c, &req) {
		return
	}
	mechanic, err := h.shop.UpdateMechanic(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.Mechanic(*mechanic))
}

func (h *Handler) DeleteMechanic(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.shop.DeleteMechanic(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Mechanic id: %d, successfully deleted.", id)})
}
