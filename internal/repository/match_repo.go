package repository

import (
	"context"

	"chairduel/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const matchColumns = `match_id, player_a, player_b, stake, current_round, status, score_a, score_b, created_at, updated_at`

type MatchRepository struct {
	db *pgxpool.Pool
}

func NewMatchRepository(db *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{db: db}
}

// GetByID retrieves a match; returns (nil, nil) when no match exists.
func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (*domain.Match, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE match_id = $1`, matchID)
	return scanMatch(row)
}

// GetForUpdateTx retrieves a match inside a transaction with a row lock;
// returns (nil, nil) when no match exists.
func (r *MatchRepository) GetForUpdateTx(ctx context.Context, tx pgx.Tx, matchID string) (*domain.Match, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE match_id = $1 FOR UPDATE`, matchID)
	return scanMatch(row)
}

// CreateTx inserts a new Waiting match for its first player.
func (r *MatchRepository) CreateTx(ctx context.Context, tx pgx.Tx, m *domain.Match) error {
	return tx.QueryRow(ctx,
		`INSERT INTO matches (match_id, player_a, player_b, stake, current_round, status, score_a, score_b)
		 VALUES ($1, $2, 0, $3, 0, $4, 0, 0)
		 RETURNING created_at, updated_at`,
		m.MatchID, m.PlayerA, m.Stake, m.Status,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
}

// ActivateTx records the second player and moves the match to Active, round 1.
func (r *MatchRepository) ActivateTx(ctx context.Context, tx pgx.Tx, matchID string, playerB int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE matches
		 SET player_b = $2, status = $3, current_round = 1, updated_at = now()
		 WHERE match_id = $1`,
		matchID, playerB, domain.MatchStatusActive)
	return err
}

// ApplyRoundScoresTx accumulates one round's scores into the match and
// advances the current round counter.
func (r *MatchRepository) ApplyRoundScoresTx(ctx context.Context, tx pgx.Tx, matchID string, scoreA, scoreB int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE matches
		 SET score_a = score_a + $2, score_b = score_b + $3,
		     current_round = current_round + 1, updated_at = now()
		 WHERE match_id = $1`,
		matchID, scoreA, scoreB)
	return err
}

// FinishTx marks the match Finished.
func (r *MatchRepository) FinishTx(ctx context.Context, tx pgx.Tx, matchID string) error {
	_, err := tx.Exec(ctx,
		`UPDATE matches SET status = $2, updated_at = now() WHERE match_id = $1`,
		matchID, domain.MatchStatusFinished)
	return err
}

func scanMatch(row pgx.Row) (*domain.Match, error) {
	var m domain.Match
	err := row.Scan(
		&m.MatchID, &m.PlayerA, &m.PlayerB, &m.Stake, &m.CurrentRound,
		&m.Status, &m.ScoreA, &m.ScoreB, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
