package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"mechanic_shop/internal/apperrors"
	"mechanic_shop/internal/events"
	"mechanic_shop/internal/middleware"
	"mechanic_shop/internal/models"
	"mechanic_shop/internal/services"
	"mechanic_shop/internal/validation"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler carries what the HTTP handlers need. There is no package-level
// state.
type Handler struct {
	shop *services.Shop
	auth middleware.Authenticator
	hub  *events.Hub
	db   Pinger
}

func NewHandler(shop *services.Shop, auth middleware.Authenticator, hub *events.Hub, db Pinger) *Handler {
	return &Handler{shop: shop, auth: auth, hub: hub, db: db}
}

// bindJSON decodes the body into req. On failure it writes the 400 response
// and returns false.
func bindJSON(c *gin.Context, req interface{}) bool {
	body, err := c.GetRawData()
	if err != nil {
		respondError(c, err)
		return false
	}
	if err := validation.DecodeJSON(body, req); err != nil {
		respondError(c, err)
		return false
	}
	return true
}

// paramID parses the :id path parameter.
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// respondError maps err onto a status code and body. Unexpected errors are
// logged and answered with a generic 500.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *apperrors.ValidationError
		referenceErr  *apperrors.ReferenceError
		notFoundErr   *apperrors.NotFoundError
		conflictErr   *apperrors.ConflictError
		authErr       *apperrors.AuthError
	)
	entry := logrus.WithError(err).WithFields(logrus.Fields{
		"method":     c.Request.Method,
		"path":       c.FullPath(),
		"request_id": c.GetString(middleware.RequestIDKey),
	})

	switch {
	case errors.As(err, &validationErr):
		entry.Warn("request rejected: validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationErr.Fields})
	case errors.As(err, &referenceErr):
		entry.Warn("request rejected: unknown reference")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": referenceErr.Error(),
			"field": referenceErr.Field,
			"id":    referenceErr.ID,
		})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.As(err, &conflictErr):
		entry.Warn("request rejected: conflict")
		c.JSON(http.StatusConflict, gin.H{"error": conflictErr.Error()})
	case errors.As(err, &authErr):
		c.JSON(http.StatusUnauthorized, gin.H{"error": authErr.Error()})
	default:
		entry.Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// publish sends a ticket event once the unit of work has committed.
func (h *Handler) publish(kind string, ticketID uint, mechanicIDs []uint) {
	if h.hub == nil {
		return
	}
	if mechanicIDs == nil {
		mechanicIDs = []uint{}
	}
	h.hub.Publish(events.Event{Type: kind, TicketID: ticketID, MechanicIDs: mechanicIDs})
}

func (h *Handler) publishTicket(kind string, t *models.ServiceTicket) {
	h.publish(kind, t.ID, t.MechanicIDs())
}

// Health reports 200 when the database answers a ping.
func (h *Handler) Health(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		logrus.WithError(err).Error("health check: database unreachable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
