package handlers

import (
	"net/http"
	"os"

	"chairduel/internal/logger"
	"chairduel/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WS upgrades a spectator connection subscribed to one match's event stream.
// Events are public, so no token is required; the client only receives.
func (h *Handler) WS(hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		matchID := c.Query("match_id")
		if matchID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "match_id required"})
			return
		}

		m, err := h.MatchRepo.GetByID(c.Request.Context(), matchID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if m == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
			return
		}

		allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
		upgrader := websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade failed", "error", err)
			return
		}

		client := ws.NewClient(matchID, conn, hub)
		go client.Run()
	}
}
