package handlers

import (
	"chairduel/internal/events"
	"chairduel/internal/ledger"
	"chairduel/internal/repository"
	"chairduel/internal/service"
	"chairduel/internal/verifier"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB          *pgxpool.Pool
	Matches     *service.MatchService
	Reveals     *service.RevealService
	Settlements *service.SettlementService

	MatchRepo      *repository.MatchRepository
	RoundRepo      *repository.RoundRepository
	CommitmentRepo *repository.CommitmentRepository
	PlayerRepo     *repository.PlayerRepository
	LedgerRepo     *repository.LedgerEntryRepository
	EventRepo      *repository.EventRepository
}

func NewHandler(db *pgxpool.Pool, v verifier.Verifier, lgr ledger.Ledger, publisher events.Publisher) *Handler {
	return &Handler{
		DB:          db,
		Matches:     service.NewMatchService(db, lgr, publisher),
		Reveals:     service.NewRevealService(db, v, publisher),
		Settlements: service.NewSettlementService(db, lgr, publisher),

		MatchRepo:      repository.NewMatchRepository(db),
		RoundRepo:      repository.NewRoundRepository(db),
		CommitmentRepo: repository.NewCommitmentRepository(db),
		PlayerRepo:     repository.NewPlayerRepository(db),
		LedgerRepo:     repository.NewLedgerEntryRepository(db),
		EventRepo:      repository.NewEventRepository(db),
	}
}

// getPlayerID extracts the authenticated player id set by the JWT middleware.
func getPlayerID(c interface{ Get(string) (any, bool) }) (int64, bool) {
	pidVal, ok := c.Get("player_id")
	if !ok {
		return 0, false
	}
	switch v := pidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
