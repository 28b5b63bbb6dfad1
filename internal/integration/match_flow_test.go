package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"chairduel/internal/domain"
	"chairduel/internal/events"
	"chairduel/internal/ledger"
	"chairduel/internal/repository"
	"chairduel/internal/service"
	"chairduel/internal/verifier"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func connectDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func createPlayer(t *testing.T, repo *repository.PlayerRepository, balance int64) *domain.Player {
	t.Helper()
	p := &domain.Player{Name: "it-" + uuid.NewString(), Balance: balance}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("create player: %v", err)
	}
	return p
}

// credential builds a hash-verifiable proof for one round and returns it with
// its commitment.
func credential(r verifier.Reveal) (cred, commitment []byte) {
	cred = verifier.AppendTrailer([]byte("proof-body-"+uuid.NewString()), r)
	return cred, verifier.Commit(cred)
}

func TestMatchFlow_FullLifecycle(t *testing.T) {
	db := connectDB(t)
	defer db.Close()
	applyMigrations(t, db)

	ctx := context.Background()
	playerRepo := repository.NewPlayerRepository(db)
	eventRepo := repository.NewEventRepository(db)

	lgr := ledger.NewPostgresLedger(repository.NewLedgerEntryRepository(db))
	publisher := events.Fanout{events.NewStorePublisher(eventRepo)}

	matchSvc := service.NewMatchService(db, lgr, publisher)
	revealSvc := service.NewRevealService(db, verifier.HashVerifier{}, publisher)
	settleSvc := service.NewSettlementService(db, lgr, publisher)

	const stake = int64(1000)
	pa := createPlayer(t, playerRepo, 5000)
	pb := createPlayer(t, playerRepo, 5000)

	revealsA := [3]verifier.Reveal{
		{Chair: 8, Traps: [3]int{1, 2, 3}},
		{Chair: 3, Traps: [3]int{5, 6, 7}},
		{Chair: 2, Traps: [3]int{4, 5, 6}},
	}
	revealsB := [3]verifier.Reveal{
		{Chair: 5, Traps: [3]int{4, 6, 7}},
		{Chair: 5, Traps: [3]int{1, 2, 9}},
		{Chair: 4, Traps: [3]int{7, 8, 9}},
	}

	var credsA, credsB [3][]byte
	var commitsA, commitsB [domain.RoundsPerMatch][]byte
	for i := 0; i < 3; i++ {
		credsA[i], commitsA[i] = credential(revealsA[i])
		credsB[i], commitsB[i] = credential(revealsB[i])
	}

	matchID := uuid.NewString()

	m, err := matchSvc.StartMatch(ctx, pa.ID, matchID, stake, commitsA)
	if err != nil {
		t.Fatalf("start match (create): %v", err)
	}
	if m.Status != domain.MatchStatusWaiting {
		t.Fatalf("expected waiting, got %s", m.Status)
	}

	// precondition failures before the join
	if _, err := matchSvc.StartMatch(ctx, pa.ID, matchID, stake, commitsB); !errors.Is(err, service.ErrSelfJoin) {
		t.Fatalf("expected ErrSelfJoin, got %v", err)
	}
	if _, err := matchSvc.StartMatch(ctx, pb.ID, matchID, stake+1, commitsB); !errors.Is(err, service.ErrStakeMismatch) {
		t.Fatalf("expected ErrStakeMismatch, got %v", err)
	}

	m, err = matchSvc.StartMatch(ctx, pb.ID, matchID, stake, commitsB)
	if err != nil {
		t.Fatalf("start match (join): %v", err)
	}
	if m.Status != domain.MatchStatusActive || m.CurrentRound != 1 {
		t.Fatalf("expected active round 1, got %s round %d", m.Status, m.CurrentRound)
	}

	// third start attempt must be rejected
	if _, err := matchSvc.StartMatch(ctx, pa.ID, matchID, stake, commitsA); !errors.Is(err, service.ErrAlreadyStarted) {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}

	// both stakes are locked
	for _, p := range []*domain.Player{pa, pb} {
		got, err := playerRepo.GetByID(ctx, p.ID)
		if err != nil {
			t.Fatalf("get player: %v", err)
		}
		if got.Balance != 4000 {
			t.Fatalf("expected balance 4000 after lock, got %d", got.Balance)
		}
	}

	expected := [3]struct{ scoreA, scoreB int64 }{
		{32, 20},
		{44, 5},
		{40, 4},
	}

	for i := 0; i < 3; i++ {
		roundNo := i + 1

		rd, err := revealSvc.SubmitReveal(ctx, pa.ID, matchID, roundNo, credsA[i])
		if err != nil {
			t.Fatalf("round %d reveal a: %v", roundNo, err)
		}
		if rd.Status != domain.RoundStatusRevealedA {
			t.Fatalf("round %d: expected revealed_a, got %s", roundNo, rd.Status)
		}

		// settling a half-revealed round must fail
		if _, _, err := settleSvc.SettleRound(ctx, matchID, roundNo); !errors.Is(err, service.ErrRoundNotReady) {
			t.Fatalf("round %d: expected ErrRoundNotReady, got %v", roundNo, err)
		}

		// a second reveal by the same player must fail
		if _, err := revealSvc.SubmitReveal(ctx, pa.ID, matchID, roundNo, credsA[i]); !errors.Is(err, service.ErrAlreadyRevealed) {
			t.Fatalf("round %d: expected ErrAlreadyRevealed, got %v", roundNo, err)
		}

		rd, err = revealSvc.SubmitReveal(ctx, pb.ID, matchID, roundNo, credsB[i])
		if err != nil {
			t.Fatalf("round %d reveal b: %v", roundNo, err)
		}
		if rd.Status != domain.RoundStatusBothRevealed {
			t.Fatalf("round %d: expected both_revealed, got %s", roundNo, rd.Status)
		}

		if roundNo == 3 {
			// match settlement requires the final round to be scored
			if _, err := settleSvc.SettleMatch(ctx, matchID); !errors.Is(err, service.ErrFinalRoundPending) {
				t.Fatalf("expected ErrFinalRoundPending, got %v", err)
			}
		}

		rd, _, err = settleSvc.SettleRound(ctx, matchID, roundNo)
		if err != nil {
			t.Fatalf("round %d settle: %v", roundNo, err)
		}
		if rd.ScoreA != expected[i].scoreA || rd.ScoreB != expected[i].scoreB {
			t.Fatalf("round %d: expected scores %d/%d, got %d/%d",
				roundNo, expected[i].scoreA, expected[i].scoreB, rd.ScoreA, rd.ScoreB)
		}

		if _, _, err := settleSvc.SettleRound(ctx, matchID, roundNo); !errors.Is(err, service.ErrRoundAlreadyScored) {
			t.Fatalf("round %d: expected ErrRoundAlreadyScored, got %v", roundNo, err)
		}
	}

	st, err := settleSvc.SettleMatch(ctx, matchID)
	if err != nil {
		t.Fatalf("settle match: %v", err)
	}
	// totals 116/29: decisive win for a, 1% fee from the winner's gross
	if st.Pot != 2000 || st.PayoutA != 1580 || st.PayoutB != 400 || st.Fee != 20 {
		t.Fatalf("unexpected settlement: %+v", st)
	}
	if st.PayoutA+st.PayoutB+st.Fee != st.Pot {
		t.Fatalf("pot not conserved: %+v", st)
	}

	if _, err := settleSvc.SettleMatch(ctx, matchID); !errors.Is(err, service.ErrMatchFinished) {
		t.Fatalf("expected ErrMatchFinished, got %v", err)
	}

	gotA, _ := playerRepo.GetByID(ctx, pa.ID)
	gotB, _ := playerRepo.GetByID(ctx, pb.ID)
	if gotA.Balance != 5580 {
		t.Fatalf("expected winner balance 5580, got %d", gotA.Balance)
	}
	if gotB.Balance != 4400 {
		t.Fatalf("expected loser balance 4400, got %d", gotB.Balance)
	}

	// ledger trail: two locks, two payouts, one retained fee, oldest first
	ledgerRepo := repository.NewLedgerEntryRepository(db)
	entries, err := ledgerRepo.GetByMatch(ctx, matchID)
	if err != nil {
		t.Fatalf("get match ledger: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 ledger entries, got %d", len(entries))
	}
	wantKinds := []string{
		domain.LedgerKindStakeLock, domain.LedgerKindStakeLock,
		domain.LedgerKindPayout, domain.LedgerKindPayout,
		domain.LedgerKindFeeRetained,
	}
	var net int64
	for i, e := range entries {
		if e.Kind != wantKinds[i] {
			t.Fatalf("entry %d: expected kind %s, got %s", i, wantKinds[i], e.Kind)
		}
		net += e.Amount
	}
	// locks are negative, payouts positive, fee positive: everything nets to 0
	if net != 0 {
		t.Fatalf("ledger does not balance: net %d", net)
	}

	evts, err := eventRepo.GetByMatch(ctx, matchID, 100)
	if err != nil {
		t.Fatalf("get events: %v", err)
	}
	// queued + started + 6 reveals + 3 round settlements + finished
	if len(evts) != 12 {
		t.Fatalf("expected 12 events, got %d", len(evts))
	}
	if evts[0].Type != domain.EventMatchQueued || evts[len(evts)-1].Type != domain.EventMatchFinished {
		t.Fatalf("unexpected event order: first=%s last=%s", evts[0].Type, evts[len(evts)-1].Type)
	}
}

func TestMatchFlow_InsufficientFunds(t *testing.T) {
	db := connectDB(t)
	defer db.Close()
	applyMigrations(t, db)

	ctx := context.Background()
	playerRepo := repository.NewPlayerRepository(db)
	lgr := ledger.NewPostgresLedger(repository.NewLedgerEntryRepository(db))
	matchSvc := service.NewMatchService(db, lgr, events.Fanout{})

	poor := createPlayer(t, playerRepo, 100)

	var commits [domain.RoundsPerMatch][]byte
	for i := range commits {
		_, commits[i] = credential(verifier.Reveal{Chair: 1, Traps: [3]int{2, 3, 4}})
	}

	if _, err := matchSvc.StartMatch(ctx, poor.ID, uuid.NewString(), 1000, commits); !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	// failed lock must not create the match or touch the balance
	got, err := playerRepo.GetByID(ctx, poor.ID)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if got.Balance != 100 {
		t.Fatalf("expected balance 100 untouched, got %d", got.Balance)
	}
}

func TestMatchFlow_ProofRejected(t *testing.T) {
	db := connectDB(t)
	defer db.Close()
	applyMigrations(t, db)

	ctx := context.Background()
	playerRepo := repository.NewPlayerRepository(db)
	lgr := ledger.NewPostgresLedger(repository.NewLedgerEntryRepository(db))
	matchSvc := service.NewMatchService(db, lgr, events.Fanout{})
	revealSvc := service.NewRevealService(db, verifier.HashVerifier{}, events.Fanout{})

	pa := createPlayer(t, playerRepo, 5000)
	pb := createPlayer(t, playerRepo, 5000)

	var credsA [3][]byte
	var commitsA, commitsB [domain.RoundsPerMatch][]byte
	for i := 0; i < 3; i++ {
		credsA[i], commitsA[i] = credential(verifier.Reveal{Chair: 8, Traps: [3]int{1, 2, 3}})
		_, commitsB[i] = credential(verifier.Reveal{Chair: 5, Traps: [3]int{4, 6, 7}})
	}

	matchID := uuid.NewString()
	if _, err := matchSvc.StartMatch(ctx, pa.ID, matchID, 1000, commitsA); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := matchSvc.StartMatch(ctx, pb.ID, matchID, 1000, commitsB); err != nil {
		t.Fatalf("join: %v", err)
	}

	// tampering with the trailer breaks the commitment hash
	tampered := verifier.AppendTrailer(credsA[0][:len(credsA[0])-16], verifier.Reveal{Chair: 9, Traps: [3]int{1, 2, 3}})
	if _, err := revealSvc.SubmitReveal(ctx, pa.ID, matchID, 1, tampered); !errors.Is(err, service.ErrProofRejected) {
		t.Fatalf("expected ErrProofRejected, got %v", err)
	}

	// outsiders cannot reveal
	outsider := createPlayer(t, playerRepo, 5000)
	if _, err := revealSvc.SubmitReveal(ctx, outsider.ID, matchID, 1, credsA[0]); !errors.Is(err, service.ErrNotPlayer) {
		t.Fatalf("expected ErrNotPlayer, got %v", err)
	}

	// the honest credential still works afterwards
	if _, err := revealSvc.SubmitReveal(ctx, pa.ID, matchID, 1, credsA[0]); err != nil {
		t.Fatalf("honest reveal: %v", err)
	}
}
