package service

import (
	"context"
	"errors"

	"chairduel/internal/domain"
	"chairduel/internal/events"
	"chairduel/internal/game"
	"chairduel/internal/logger"
	"chairduel/internal/repository"
	"chairduel/internal/verifier"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RevealService records a single player's reveal for one round. Cryptographic
// validity is delegated to the injected Verifier; everything checkable from
// the extracted values fails fast before the verifier is invoked.
type RevealService struct {
	db        *pgxpool.Pool
	matches   *repository.MatchRepository
	rounds    *repository.RoundRepository
	verifier  verifier.Verifier
	publisher events.Publisher
}

func NewRevealService(db *pgxpool.Pool, v verifier.Verifier, publisher events.Publisher) *RevealService {
	return &RevealService{
		db:        db,
		matches:   repository.NewMatchRepository(db),
		rounds:    repository.NewRoundRepository(db),
		verifier:  v,
		publisher: publisher,
	}
}

// SubmitReveal validates and records the caller's reveal for a round. The
// credential is opaque except for its four trailing scalars: chair, trap1,
// trap2, trap3. Any failure leaves the round untouched.
func (s *RevealService) SubmitReveal(ctx context.Context, caller int64, matchID string, roundNo int, credential []byte) (*domain.Round, error) {
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
	if m.Status != domain.MatchStatusActive {
		return nil, ErrMatchNotActive
	}
	if roundNo < 1 || roundNo > domain.RoundsPerMatch {
		return nil, ErrInvalidRound
	}
	if !m.HasPlayer(caller) {
		return nil, ErrNotPlayer
	}

	rd, err := s.rounds.GetForUpdateTx(ctx, tx, matchID, roundNo)
	if err != nil {
		return nil, err
	}
	if rd == nil {
		return nil, ErrRoundNotFound
	}

	isPlayerA := caller == m.PlayerA
	if rd.RevealedBy(isPlayerA) {
		return nil, ErrAlreadyRevealed
	}

	reveal, err := verifier.ParseCredential(credential)
	if err != nil {
		return nil, ErrBadCredential
	}
	if err := validateReveal(reveal); err != nil {
		return nil, err
	}

	commitment := rd.CommitmentA
	if !isPlayerA {
		commitment = rd.CommitmentB
	}
	if err := s.verifier.Verify(ctx, commitment, credential); err != nil {
		if errors.Is(err, verifier.ErrProofInvalid) {
			return nil, ErrProofRejected
		}
		return nil, err
	}

	if isPlayerA {
		status := domain.RoundStatusRevealedA
		if rd.ChairB != 0 {
			status = domain.RoundStatusBothRevealed
		}
		if err := s.rounds.SetRevealATx(ctx, tx, matchID, roundNo, reveal.Chair, reveal.Traps, status); err != nil {
			return nil, err
		}
		rd.ChairA, rd.TrapsA, rd.Status = reveal.Chair, reveal.Traps, status
	} else {
		status := domain.RoundStatusRevealedB
		if rd.ChairA != 0 {
			status = domain.RoundStatusBothRevealed
		}
		if err := s.rounds.SetRevealBTx(ctx, tx, matchID, roundNo, reveal.Chair, reveal.Traps, status); err != nil {
			return nil, err
		}
		rd.ChairB, rd.TrapsB, rd.Status = reveal.Chair, reveal.Traps, status
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	logger.Info("reveal submitted", "match_id", matchID, "round", roundNo, "player", caller, "chair", reveal.Chair)
	s.publisher.Publish(ctx, events.New(matchID, domain.EventRevealSubmitted, map[string]interface{}{
		"round":  roundNo,
		"player": caller,
		"chair":  reveal.Chair,
	}))

	return rd, nil
}

// validateReveal enforces the value constraints the commitment scheme cannot:
// chair and traps in [1, NumChairs], traps pairwise distinct, chair not on a
// trap.
func validateReveal(r verifier.Reveal) error {
	if r.Chair < 1 || r.Chair > game.NumChairs {
		return ErrRevealOutOfRange
	}
	for _, trap := range r.Traps {
		if trap < 1 || trap > game.NumChairs {
			return ErrRevealOutOfRange
		}
		if trap == r.Chair {
			return ErrChairOnTrap
		}
	}
	if r.Traps[0] == r.Traps[1] || r.Traps[0] == r.Traps[2] || r.Traps[1] == r.Traps[2] {
		return ErrDuplicateTraps
	}
	return nil
}
