package service

import (
	"context"

	"chairduel/internal/domain"
	"chairduel/internal/events"
	"chairduel/internal/ledger"
	"chairduel/internal/logger"
	"chairduel/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MatchService owns the two-phase match lifecycle: the first start_match call
// creates a Waiting match, the second activates it. Every call runs as one
// serialized transaction per match id.
type MatchService struct {
	db          *pgxpool.Pool
	matches     *repository.MatchRepository
	rounds      *repository.RoundRepository
	commitments *repository.CommitmentRepository
	ledger      ledger.Ledger
	publisher   events.Publisher
}

func NewMatchService(db *pgxpool.Pool, lgr ledger.Ledger, publisher events.Publisher) *MatchService {
	return &MatchService{
		db:          db,
		matches:     repository.NewMatchRepository(db),
		rounds:      repository.NewRoundRepository(db),
		commitments: repository.NewCommitmentRepository(db),
		ledger:      lgr,
		publisher:   publisher,
	}
}

// lockMatch takes the per-match advisory lock for the rest of the
// transaction. All state-mutating operations acquire it first, so concurrent
// calls against one match serialize and never interleave partial writes.
func lockMatch(ctx context.Context, tx pgx.Tx, matchID string) error {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, matchID)
	return err
}

// StartMatch is the idempotent two-phase join. The caller supplies the stake
// and commitments for all three rounds up front; the stake is locked via the
// ledger before any match state is written.
func (s *MatchService) StartMatch(ctx context.Context, caller int64, matchID string, stake int64, commitments [domain.RoundsPerMatch][]byte) (*domain.Match, error) {
	for _, c := range commitments {
		if len(c) == 0 {
			return nil, ErrBadCommitment
		}
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := lockMatch(ctx, tx, matchID); err != nil {
		return nil, err
	}

	m, err := s.matches.GetForUpdateTx(ctx, tx, matchID)
	if err != nil {
		return nil, err
	}

	if m == nil {
		return s.createMatch(ctx, tx, caller, matchID, stake, commitments)
	}
	return s.joinMatch(ctx, tx, m, caller, stake, commitments)
}

func (s *MatchService) createMatch(ctx context.Context, tx pgx.Tx, caller int64, matchID string, stake int64, commitments [domain.RoundsPerMatch][]byte) (*domain.Match, error) {
	if stake <= 0 {
		return nil, ErrInvalidStake
	}

	if err := s.ledger.Lock(ctx, tx, matchID, caller, stake); err != nil {
		return nil, err
	}

	m := &domain.Match{
		MatchID: matchID,
		PlayerA: caller,
		Stake:   stake,
		Status:  domain.MatchStatusWaiting,
	}
	if err := s.matches.CreateTx(ctx, tx, m); err != nil {
		return nil, err
	}
	if err := s.rounds.CreateAllTx(ctx, tx, matchID); err != nil {
		return nil, err
	}
	if err := s.commitments.InsertAllTx(ctx, tx, matchID, caller, commitments); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	logger.Info("match queued", "match_id", matchID, "player", caller, "stake", stake)
	s.publisher.Publish(ctx, events.New(matchID, domain.EventMatchQueued, map[string]interface{}{
		"player": caller,
		"stake":  stake,
	}))

	return m, nil
}

func (s *MatchService) joinMatch(ctx context.Context, tx pgx.Tx, m *domain.Match, caller int64, stake int64, commitments [domain.RoundsPerMatch][]byte) (*domain.Match, error) {
	if m.Status != domain.MatchStatusWaiting {
		return nil, ErrAlreadyStarted
	}
	if caller == m.PlayerA {
		return nil, ErrSelfJoin
	}
	if stake != m.Stake {
		return nil, ErrStakeMismatch
	}

	if err := s.ledger.Lock(ctx, tx, m.MatchID, caller, m.Stake); err != nil {
		return nil, err
	}
	if err := s.commitments.InsertAllTx(ctx, tx, m.MatchID, caller, commitments); err != nil {
		return nil, err
	}

	// merge the first player's side-table commitments with the joiner's into
	// the round records; reveal logic reads only these from here on
	commitmentsA, err := s.commitments.ListForPlayerTx(ctx, tx, m.MatchID, m.PlayerA)
	if err != nil {
		return nil, err
	}
	for i := 0; i < domain.RoundsPerMatch; i++ {
		if len(commitmentsA[i]) == 0 {
			return nil, ErrBadCommitment
		}
		if err := s.rounds.BindCommitmentsTx(ctx, tx, m.MatchID, i+1, commitmentsA[i], commitments[i]); err != nil {
			return nil, err
		}
	}

	if err := s.matches.ActivateTx(ctx, tx, m.MatchID, caller); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	m.PlayerB = caller
	m.Status = domain.MatchStatusActive
	m.CurrentRound = 1

	logger.Info("match started", "match_id", m.MatchID, "player_a", m.PlayerA, "player_b", m.PlayerB, "stake", m.Stake)
	s.publisher.Publish(ctx, events.New(m.MatchID, domain.EventMatchStarted, map[string]interface{}{
		"player_a": m.PlayerA,
		"player_b": m.PlayerB,
		"stake":    m.Stake,
	}))

	return m, nil
}
