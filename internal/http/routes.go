package http

import (
	"os"
	"strconv"
	"time"

	"chairduel/internal/config"
	"chairduel/internal/events"
	"chairduel/internal/http/handlers"
	"chairduel/internal/http/middleware"
	"chairduel/internal/ledger"
	"chairduel/internal/repository"
	"chairduel/internal/verifier"
	"chairduel/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	// Proof verification is pluggable: an external verifier when configured,
	// the built-in hash check otherwise.
	var v verifier.Verifier = verifier.HashVerifier{}
	if cfg.VerifierURL != "" {
		v = verifier.NewHTTPVerifier(cfg.VerifierURL, cfg.VerifierTimeout)
	}

	lgr := ledger.NewPostgresLedger(repository.NewLedgerEntryRepository(db))

	hub := ws.NewHub()

	// Events fan out to the durable log, live ws subscribers and, when Redis
	// is up, the pub/sub channel for other processes.
	publisher := events.Fanout{
		events.NewStorePublisher(repository.NewEventRepository(db)),
		events.NewHubPublisher(hub),
	}
	if rc := middleware.Client(); rc != nil {
		publisher = append(publisher, events.NewRedisPublisher(rc))
	}

	h := handlers.NewHandler(db, v, lgr, publisher)
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	revealRateLimit := 30
	if v := os.Getenv("REVEAL_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			revealRateLimit = n
		}
	}
	revealRateWindow := time.Minute
	if v := os.Getenv("REVEAL_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			revealRateWindow = time.Duration(n) * time.Second
		}
	}

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))

	// Player
	v1.GET("/me", middleware.JWT(), h.Me)
	v1.GET("/me/ledger", middleware.JWT(), h.MyLedger)

	// Match lifecycle
	v1.POST("/matches/start", middleware.JWT(), h.StartMatch)
	v1.GET("/matches/:id", h.GetMatch)
	v1.GET("/matches/:id/rounds/:round", h.GetRound)
	v1.GET("/matches/:id/commitments/:player/:round", h.GetCommitment)
	v1.GET("/matches/:id/events", h.GetMatchEvents)
	v1.GET("/matches/:id/ledger", h.GetMatchLedger)

	// Reveals (per-player rate limited)
	revealRL := middleware.RevealRateLimit(revealRateLimit, revealRateWindow)
	v1.POST("/matches/:id/rounds/:round/reveal", middleware.JWT(), revealRL, h.SubmitReveal)

	// Settlement is deterministic and open to any caller
	v1.POST("/matches/:id/rounds/:round/settle", h.SettleRound)
	v1.POST("/matches/:id/settle", h.SettleMatch)

	// WebSocket event stream for spectators
	r.GET("/ws", h.WS(hub))
}
