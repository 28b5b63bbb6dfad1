package handlers

import (
	"net/http"

	"chairduel/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// SettleRound scores a fully revealed round. Deliberately unauthenticated:
// settlement is deterministic from committed state, so anyone may trigger it.
func (h *Handler) SettleRound(c *gin.Context) {
	roundNo, ok := roundParam(c)
	if !ok {
		return
	}

	rd, splitABps, err := h.Settlements.SettleRound(c.Request.Context(), c.Param("id"), roundNo)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	middleware.RoundsSettled.Inc()

	c.JSON(http.StatusOK, gin.H{
		"match_id":    rd.MatchID,
		"round_no":    rd.RoundNo,
		"status":      rd.Status,
		"score_a":     rd.ScoreA,
		"score_b":     rd.ScoreB,
		"split_a_bps": splitABps,
	})
}

// SettleMatch pays out the pot after the final round is scored. Also open to
// any caller for the same reason as SettleRound.
func (h *Handler) SettleMatch(c *gin.Context) {
	st, err := h.Settlements.SettleMatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	middleware.MatchesFinished.Inc()

	c.JSON(http.StatusOK, gin.H{
		"match_id":    c.Param("id"),
		"pot":         st.Pot,
		"payout_a":    st.PayoutA,
		"payout_b":    st.PayoutB,
		"fee":         st.Fee,
		"split_a_bps": st.SplitABps,
		"tier":        st.Tier,
	})
}
