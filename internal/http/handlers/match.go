package handlers

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"chairduel/internal/domain"
	"chairduel/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type startMatchRequest struct {
	MatchID     string   `json:"match_id" binding:"required"`
	Stake       int64    `json:"stake" binding:"required"`
	Commitments []string `json:"commitments" binding:"required"`
}

// StartMatch is the single entry point for both creating and joining a match.
// The first caller queues the match, the second activates it. Commitments for
// all three rounds are supplied up front, base64 encoded.
func (h *Handler) StartMatch(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "player not found"})
		return
	}

	var req startMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(req.Commitments) != domain.RoundsPerMatch {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly 3 commitments required"})
		return
	}

	var commitments [domain.RoundsPerMatch][]byte
	for i, enc := range req.Commitments {
		raw, err := base64.StdEncoding.DecodeString(enc)
		if err != nil || len(raw) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "commitments must be non-empty base64"})
			return
		}
		commitments[i] = raw
	}

	m, err := h.Matches.StartMatch(c.Request.Context(), playerID, req.MatchID, req.Stake, commitments)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if m.Status == domain.MatchStatusActive {
		middleware.MatchesStarted.Inc()
	}

	c.JSON(http.StatusOK, matchView(m))
}

// GetMatch returns public match state. No authentication; scores and status
// are spectator-visible.
func (h *Handler) GetMatch(c *gin.Context) {
	m, err := h.MatchRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		return
	}
	c.JSON(http.StatusOK, matchView(m))
}

// GetRound returns one round of a match: commitments, revealed values, status
// and scores. Revealed values are public as soon as they land; the opponent's
// own values are already commitment-bound, so early visibility changes nothing.
func (h *Handler) GetRound(c *gin.Context) {
	roundNo, ok := roundParam(c)
	if !ok {
		return
	}

	rd, err := h.RoundRepo.Get(c.Request.Context(), c.Param("id"), roundNo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if rd == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "round not found"})
		return
	}
	c.JSON(http.StatusOK, rd)
}

// GetCommitment returns one stored commitment by (match, player, round).
func (h *Handler) GetCommitment(c *gin.Context) {
	player, err := strconv.ParseInt(c.Param("player"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "player must be a number"})
		return
	}
	roundNo, ok := roundParam(c)
	if !ok {
		return
	}

	sc, err := h.CommitmentRepo.Get(c.Request.Context(), c.Param("id"), player, roundNo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if sc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "commitment not found"})
		return
	}
	c.JSON(http.StatusOK, sc)
}

// GetMatchLedger returns every value movement of a match: stake locks,
// payouts and the retained fee.
func (h *Handler) GetMatchLedger(c *gin.Context) {
	entries, err := h.LedgerRepo.GetByMatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// GetMatchEvents returns the stored event log for a match, oldest first.
func (h *Handler) GetMatchEvents(c *gin.Context) {
	evts, err := h.EventRepo.GetByMatch(c.Request.Context(), c.Param("id"), 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": evts})
}

func matchView(m *domain.Match) gin.H {
	return gin.H{
		"match_id":      m.MatchID,
		"player_a":      m.PlayerA,
		"player_b":      m.PlayerB,
		"stake":         m.Stake,
		"status":        m.Status,
		"current_round": m.CurrentRound,
		"score_a":       m.ScoreA,
		"score_b":       m.ScoreB,
		"created_at":    m.CreatedAt,
		"updated_at":    m.UpdatedAt,
	}
}
