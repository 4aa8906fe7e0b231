package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// TicketFeed upgrades to a websocket that receives every ticket event. The
// caller authenticates with ?token=<jwt>.
func (h *Handler) TicketFeed(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		logrus.Warn("Ticket feed connection attempt: missing token query parameter.")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authentication token"})
		return
	}
	customerID, err := h.auth.ValidateCredential(token)
	if err != nil {
		logrus.WithError(err).Warn("Ticket feed connection attempt: invalid token.")
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("Failed to upgrade ticket feed connection.")
		return
	}
	defer conn.Close()

	log := logrus.WithFields(logrus.Fields{
		"customer_id": customerID,
		"conn_ptr":    fmt.Sprintf("%p", conn),
	})
	log.Info("Ticket feed connection established.")

	h.hub.Register(conn)
	defer h.hub.Unregister(conn)

	// The feed is one-way; reading only detects the client going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Info("Ticket feed closed by client.")
			} else {
				log.WithError(err).Warn("Ticket feed read failed.")
			}
			return
		}
		log.Debug("Ticket feed client sent unexpected message. Ignoring.")
	}
}
