package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mechanic_shop/internal/events"
	"mechanic_shop/internal/reports"
	"mechanic_shop/internal/responses"
	"mechanic_shop/internal/services"
)

func (h *Handler) CreateTicket(c *gin.Context) {
	var req services.CreateTicketRequest
	if !bindJSON(c, &req) {
		return
	}
	ticket, err := h.shop.CreateTicket(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.publishTicket(events.TicketCreated, ticket)
	c.JSON(http.StatusCreated, gin.H{"service_ticket": responses.Ticket(*ticket)})
}

func (h *Handler) ListTickets(c *gin.Context) {
	tickets, err := h.shop.ListTickets(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.Summaries(tickets))
}

// ExportTickets streams every ticket as an xlsx workbook.
func (h *Handler) ExportTickets(c *gin.Context) {
	tickets, err := h.shop.ListTicketAggregates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	buf, err := reports.TicketWorkbook(tickets)
	if err != nil {
		respondError(c, err)
		return
	}
	filename := fmt.Sprintf("service_tickets_%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, reports.XLSXContentType, buf.Bytes())
}

func (h *Handler) GetTicket(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	ticket, err := h.shop.GetTicket(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.Ticket(*ticket))
}

func (h *Handler) UpdateTicket(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req services.TicketUpdate
	if !bindJSON(c, &req) {
		return
	}
	ticket, err := h.shop.UpdateTicket(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.publishTicket(events.TicketUpdated, ticket)
	c.JSON(http.StatusOK, responses.Ticket(*ticket))
}

func (h *Handler) DeleteTicket(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.shop.DeleteTicket(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	h.publish(events.TicketDeleted, id, nil)
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Service ticket id: %d, successfully deleted.", id)})
}

func (h *Handler) AssignMechanics(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req services.AssignMechanicsRequest
	if !bindJSON(c, &req) {
		return
	}
	ticket, err := h.shop.AssignMechanics(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.publishTicket(events.TicketMechanicsChanged, ticket)
	c.JSON(http.StatusOK, responses.Ticket(*ticket))
}

func (h *Handler) RemoveMechanics(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req services.RemoveMechanicsRequest
	if !bindJSON(c, &req) {
		return
	}
	ticket, err := h.shop.UnassignMechanics(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.publishTicket(events.TicketMechanicsChanged, ticket)
	c.JSON(http.StatusOK, responses.Ticket(*ticket))
}

func (h *Handler) AddInventory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req services.AddInventoryRequest
	if !bindJSON(c, &req) {
		return
	}
	ticket, err := h.shop.AddInventory(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.publishTicket(events.TicketUpdated, ticket)
	c.JSON(http.StatusOK, responses.Ticket(*ticket))
}
