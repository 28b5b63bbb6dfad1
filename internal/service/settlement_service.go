package service

import (
	"context"

	"chairduel/internal/domain"
	"chairduel/internal/events"
	"chairduel/internal/game"
	"chairduel/internal/ledger"
	"chairduel/internal/logger"
	"chairduel/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettlementService converts revealed rounds into scores and the finished
// match into payouts. Both operations are callable by anyone once their
// preconditions hold; idempotence guards make redundant calls fail cleanly
// instead of double-paying.
type SettlementService struct {
	db        *pgxpool.Pool
	matches   *repository.MatchRepository
	rounds    *repository.RoundRepository
	ledger    ledger.Ledger
	publisher events.Publisher
}

func NewSettlementService(db *pgxpool.Pool, lgr ledger.Ledger, publisher events.Publisher) *SettlementService {
	return &SettlementService{
		db:        db,
		matches:   repository.NewMatchRepository(db),
		rounds:    repository.NewRoundRepository(db),
		ledger:    lgr,
		publisher: publisher,
	}
}

// SettleRound scores a fully revealed round, accumulates into the match and
// advances the round counter. Rounds settle independently of current_round:
// any fully revealed round may be scored in any order, and SettleMatch gates
// only on the final round. The returned bps split is informational only.
func (s *SettlementService) SettleRound(ctx context.Context, matchID string, roundNo int) (*domain.Round, int64, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := lockMatch(ctx, tx, matchID); err != nil {
		return nil, 0, err
	}

	m, err := s.matches.GetForUpdateTx(ctx, tx, matchID)
	if err != nil {
		return nil, 0, err
	}
	if m == nil {
		return nil, 0, ErrMatchNotFound
	}
	if m.Status == domain.MatchStatusFinished {
		return nil, 0, ErrMatchFinished
	}
	if m.Status != domain.MatchStatusActive {
		return nil, 0, ErrMatchNotActive
	}
	if roundNo < 1 || roundNo > domain.RoundsPerMatch {
		return nil, 0, ErrInvalidRound
	}

	rd, err := s.rounds.GetForUpdateTx(ctx, tx, matchID, roundNo)
	if err != nil {
		return nil, 0, err
	}
	if rd == nil {
		return nil, 0, ErrRoundNotFound
	}
	if rd.Status == domain.RoundStatusScored || rd.ScoreA != 0 || rd.ScoreB != 0 {
		return nil, 0, ErrRoundAlreadyScored
	}
	if rd.Status != domain.RoundStatusBothRevealed {
		return nil, 0, ErrRoundNotReady
	}

	// each chair is scored against the opponent's traps
	scoreA, scoreB := game.Score(rd.ChairA, rd.TrapsB, rd.ChairB, rd.TrapsA)

	if err := s.rounds.SetScoresTx(ctx, tx, matchID, roundNo, scoreA, scoreB); err != nil {
		if err == pgx.ErrNoRows {
			return nil, 0, ErrRoundAlreadyScored
		}
		return nil, 0, err
	}
	if err := s.matches.ApplyRoundScoresTx(ctx, tx, matchID, scoreA, scoreB); err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, err
	}

	rd.ScoreA, rd.ScoreB, rd.Status = scoreA, scoreB, domain.RoundStatusScored
	splitABps := game.SplitBps(m.ScoreA+scoreA, m.ScoreB+scoreB)

	logger.Info("round settled", "match_id", matchID, "round", roundNo,
		"score_a", scoreA, "score_b", scoreB, "split_a_bps", splitABps)
	s.publisher.Publish(ctx, events.New(matchID, domain.EventRoundSettled, map[string]interface{}{
		"round":       roundNo,
		"score_a":     scoreA,
		"score_b":     scoreB,
		"split_a_bps": splitABps,
	}))

	return rd, splitABps, nil
}

// SettleMatch pays out the pooled stake once the final round is scored and
// marks the match Finished. A second call fails on the status guard.
func (s *SettlementService) SettleMatch(ctx context.Context, matchID string) (*game.Settlement, error) {
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
		return nil, ErrMatchNotFound
	}
	if m.Status == domain.MatchStatusFinished {
		return nil, ErrMatchFinished
	}
	if m.Status != domain.MatchStatusActive {
		return nil, ErrMatchNotActive
	}

	final, err := s.rounds.GetForUpdateTx(ctx, tx, matchID, domain.RoundsPerMatch)
	if err != nil {
		return nil, err
	}
	if final == nil {
		return nil, ErrRoundNotFound
	}
	if final.Status != domain.RoundStatusScored || final.ScoreA+final.ScoreB == 0 {
		return nil, ErrFinalRoundPending
	}

	settlement := game.SettlePot(m.Stake, m.ScoreA, m.ScoreB)

	if settlement.PayoutA > 0 {
		if err := s.ledger.Pay(ctx, tx, matchID, m.PlayerA, settlement.PayoutA); err != nil {
			return nil, err
		}
	}
	if settlement.PayoutB > 0 {
		if err := s.ledger.Pay(ctx, tx, matchID, m.PlayerB, settlement.PayoutB); err != nil {
			return nil, err
		}
	}
	if err := s.ledger.RetainFee(ctx, tx, matchID, settlement.Fee); err != nil {
		return nil, err
	}

	if err := s.matches.FinishTx(ctx, tx, matchID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	logger.Info("match finished", "match_id", matchID,
		"payout_a", settlement.PayoutA, "payout_b", settlement.PayoutB,
		"fee", settlement.Fee, "split_a_bps", settlement.SplitABps, "tier", settlement.Tier)
	s.publisher.Publish(ctx, events.New(matchID, domain.EventMatchFinished, map[string]interface{}{
		"payout_a":    settlement.PayoutA,
		"payout_b":    settlement.PayoutB,
		"fee":         settlement.Fee,
		"split_a_bps": settlement.SplitABps,
		"tier":        string(settlement.Tier),
	}))

	return &settlement, nil
}
