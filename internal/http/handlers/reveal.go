package handlers

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"chairduel/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type submitRevealRequest struct {
	Credential string `json:"credential" binding:"required"`
}

// SubmitReveal records the caller's reveal for one round. The credential is
// the base64 of the opaque proof body plus the four trailing scalars.
func (h *Handler) SubmitReveal(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "player not found"})
		return
	}

	roundNo, ok := roundParam(c)
	if !ok {
		return
	}

	var req submitRevealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	credential, err := base64.StdEncoding.DecodeString(req.Credential)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "credential must be base64"})
		return
	}

	rd, err := h.Reveals.SubmitReveal(c.Request.Context(), playerID, c.Param("id"), roundNo, credential)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	middleware.RevealsSubmitted.Inc()

	c.JSON(http.StatusOK, gin.H{
		"match_id": rd.MatchID,
		"round_no": rd.RoundNo,
		"status":   rd.Status,
	})
}

func roundParam(c *gin.Context) (int, bool) {
	roundNo, err := strconv.Atoi(c.Param("round"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "round must be a number"})
		return 0, false
	}
	return roundNo, true
}
