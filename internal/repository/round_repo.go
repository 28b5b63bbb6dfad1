package repository

import (
	"context"

	"chairduel/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const roundColumns = `match_id, round_no, commitment_a, commitment_b,
	chair_a, trap_a1, trap_a2, trap_a3,
	chair_b, trap_b1, trap_b2, trap_b3,
	status, score_a, score_b, created_at, updated_at`

type RoundRepository struct {
	db *pgxpool.Pool
}

func NewRoundRepository(db *pgxpool.Pool) *RoundRepository {
	return &RoundRepository{db: db}
}

// CreateAllTx bulk-creates the three empty Pending rounds of a match.
func (r *RoundRepository) CreateAllTx(ctx context.Context, tx pgx.Tx, matchID string) error {
	for roundNo := 1; roundNo <= domain.RoundsPerMatch; roundNo++ {
		if _, err := tx.Exec(ctx,
			`INSERT INTO rounds (match_id, round_no, status)
			 VALUES ($1, $2, $3)`,
			matchID, roundNo, domain.RoundStatusPending,
		); err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a round; returns (nil, nil) when it does not exist.
func (r *RoundRepository) Get(ctx context.Context, matchID string, roundNo int) (*domain.Round, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+roundColumns+` FROM rounds WHERE match_id = $1 AND round_no = $2`,
		matchID, roundNo)
	return scanRound(row)
}

// GetForUpdateTx retrieves a round inside a transaction with a row lock.
func (r *RoundRepository) GetForUpdateTx(ctx context.Context, tx pgx.Tx, matchID string, roundNo int) (*domain.Round, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+roundColumns+` FROM rounds WHERE match_id = $1 AND round_no = $2 FOR UPDATE`,
		matchID, roundNo)
	return scanRound(row)
}

// BindCommitmentsTx copies both players' commitments into a round record at
// match activation. Downstream reveal logic reads only these.
func (r *RoundRepository) BindCommitmentsTx(ctx context.Context, tx pgx.Tx, matchID string, roundNo int, commitmentA, commitmentB []byte) error {
	_, err := tx.Exec(ctx,
		`UPDATE rounds SET commitment_a = $3, commitment_b = $4, updated_at = now()
		 WHERE match_id = $1 AND round_no = $2`,
		matchID, roundNo, commitmentA, commitmentB)
	return err
}

// SetRevealATx stores player A's revealed chair and traps and the new status.
func (r *RoundRepository) SetRevealATx(ctx context.Context, tx pgx.Tx, matchID string, roundNo int, chair int, traps [3]int, status domain.RoundStatus) error {
	_, err := tx.Exec(ctx,
		`UPDATE rounds
		 SET chair_a = $3, trap_a1 = $4, trap_a2 = $5, trap_a3 = $6, status = $7, updated_at = now()
		 WHERE match_id = $1 AND round_no = $2`,
		matchID, roundNo, chair, traps[0], traps[1], traps[2], status)
	return err
}

// SetRevealBTx stores player B's revealed chair and traps and the new status.
func (r *RoundRepository) SetRevealBTx(ctx context.Context, tx pgx.Tx, matchID string, roundNo int, chair int, traps [3]int, status domain.RoundStatus) error {
	_, err := tx.Exec(ctx,
		`UPDATE rounds
		 SET chair_b = $3, trap_b1 = $4, trap_b2 = $5, trap_b3 = $6, status = $7, updated_at = now()
		 WHERE match_id = $1 AND round_no = $2`,
		matchID, roundNo, chair, traps[0], traps[1], traps[2], status)
	return err
}

// SetScoresTx writes a round's scores and moves it to Scored. Guarded by the
// status predicate so a round can be scored at most once even under races.
func (r *RoundRepository) SetScoresTx(ctx context.Context, tx pgx.Tx, matchID string, roundNo int, scoreA, scoreB int64) error {
	tag, err := tx.Exec(ctx,
		`UPDATE rounds SET score_a = $3, score_b = $4, status = $5, updated_at = now()
		 WHERE match_id = $1 AND round_no = $2 AND status = $6`,
		matchID, roundNo, scoreA, scoreB, domain.RoundStatusScored, domain.RoundStatusBothRevealed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanRound(row pgx.Row) (*domain.Round, error) {
	var rd domain.Round
	err := row.Scan(
		&rd.MatchID, &rd.RoundNo, &rd.CommitmentA, &rd.CommitmentB,
		&rd.ChairA, &rd.TrapsA[0], &rd.TrapsA[1], &rd.TrapsA[2],
		&rd.ChairB, &rd.TrapsB[0], &rd.TrapsB[1], &rd.TrapsB[2],
		&rd.Status, &rd.ScoreA, &rd.ScoreB, &rd.CreatedAt, &rd.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rd, nil
}
