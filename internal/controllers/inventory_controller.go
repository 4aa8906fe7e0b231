package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"mechanic_shop/internal/responses"
	"mechanic_shop/internal/services"
)

func (h *Handler) CreateInventory(c *gin.Context) {
	var req services.InventoryCreate
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.shop.CreateInventory(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, responses.Inventory(*item))
}

func (h *Handler) ListInventory(c *gin.Context) {
	items, err := h.shop.ListInventory(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.InventoryList(items))
}

func (h *Handler) GetInventory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	item, err := h.shop.GetInventory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.Inventory(*item))
}

func (h *Handler) UpdateInventory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req services.InventoryUpdate
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.shop.UpdateInventory(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.Inventory(*item))
}

func (h *Handler) DeleteInventory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.shop.DeleteInventory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Inventory id: %d, successfully deleted.", id)})
}
