package handlers

import (
	"errors"
	"net/http"

	"chairduel/internal/ledger"
	"chairduel/internal/service"

	"github.com/gin-gonic/gin"
)

// writeServiceError maps a service sentinel to an HTTP status. Unknown errors
// become a 500 with a generic message so internals never leak to clients.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMatchNotFound),
		errors.Is(err, service.ErrRoundNotFound),
		errors.Is(err, ledger.ErrPlayerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotPlayer):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyStarted),
		errors.Is(err, service.ErrAlreadyRevealed),
		errors.Is(err, service.ErrRoundAlreadyScored),
		errors.Is(err, service.ErrMatchFinished),
		errors.Is(err, service.ErrMatchNotActive),
		errors.Is(err, service.ErrRoundNotReady),
		errors.Is(err, service.ErrFinalRoundPending):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidStake),
		errors.Is(err, service.ErrBadCommitment),
		errors.Is(err, service.ErrSelfJoin),
		errors.Is(err, service.ErrStakeMismatch),
		errors.Is(err, service.ErrInvalidRound),
		errors.Is(err, service.ErrBadCredential),
		errors.Is(err, service.ErrRevealOutOfRange),
		errors.Is(err, service.ErrDuplicateTraps),
		errors.Is(err, service.ErrChairOnTrap),
		errors.Is(err, ledger.ErrInsufficientFunds):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrProofRejected):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
