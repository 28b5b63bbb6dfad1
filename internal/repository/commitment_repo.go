package repository

import (
	"context"

	"chairduel/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommitmentRepository struct {
	db *pgxpool.Pool
}

func NewCommitmentRepository(db *pgxpool.Pool) *CommitmentRepository {
	return &CommitmentRepository{db: db}
}

// InsertAllTx records a player's three commitments, one per round.
func (r *CommitmentRepository) InsertAllTx(ctx context.Context, tx pgx.Tx, matchID string, player int64, commitments [domain.RoundsPerMatch][]byte) error {
	for i, c := range commitments {
		if _, err := tx.Exec(ctx,
			`INSERT INTO commitments (match_id, player, round_no, commitment)
			 VALUES ($1, $2, $3, $4)`,
			matchID, player, i+1, c,
		); err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves one stored commitment; returns (nil, nil) when missing.
func (r *CommitmentRepository) Get(ctx context.Context, matchID string, player int64, roundNo int) (*domain.StoredCommitment, error) {
	row := r.db.QueryRow(ctx,
		`SELECT match_id, player, round_no, commitment, created_at
		 FROM commitments
		 WHERE match_id = $1 AND player = $2 AND round_no = $3`,
		matchID, player, roundNo)

	var c domain.StoredCommitment
	if err := row.Scan(&c.MatchID, &c.Player, &c.RoundNo, &c.Commitment, &c.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// ListForPlayerTx returns a player's commitments ordered by round, inside a
// transaction. Used when merging the first player's side-table rows into the
// round records at activation.
func (r *CommitmentRepository) ListForPlayerTx(ctx context.Context, tx pgx.Tx, matchID string, player int64) ([domain.RoundsPerMatch][]byte, error) {
	var out [domain.RoundsPerMatch][]byte

	rows, err := tx.Query(ctx,
		`SELECT round_no, commitment FROM commitments
		 WHERE match_id = $1 AND player = $2
		 ORDER BY round_no`,
		matchID, player)
	if err != nil {
		return out, err
	}
	defer rows.Close()

	for rows.Next() {
		var roundNo int
		var commitment []byte
		if err := rows.Scan(&roundNo, &commitment); err != nil {
			return out, err
		}
		if roundNo >= 1 && roundNo <= domain.RoundsPerMatch {
			out[roundNo-1] = commitment
		}
	}
	return out, rows.Err()
}
