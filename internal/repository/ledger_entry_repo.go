package repository

import (
	"context"

	"chairduel/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LedgerEntryRepository struct {
	db *pgxpool.Pool
}

func NewLedgerEntryRepository(db *pgxpool.Pool) *LedgerEntryRepository {
	return &LedgerEntryRepository{db: db}
}

// CreateTx inserts a ledger entry within an existing database transaction.
func (r *LedgerEntryRepository) CreateTx(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	return tx.QueryRow(ctx,
		`INSERT INTO ledger_entries (player, match_id, kind, amount)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		e.Player, e.MatchID, e.Kind, e.Amount,
	).Scan(&e.ID, &e.CreatedAt)
}

// GetByPlayer returns a player's recent ledger entries.
func (r *LedgerEntryRepository) GetByPlayer(ctx context.Context, player int64, limit int) ([]*domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, player, match_id, kind, amount, created_at
		 FROM ledger_entries
		 WHERE player = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		player, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLedgerEntries(rows)
}

// GetByMatch returns all ledger entries of one match, oldest first.
func (r *LedgerEntryRepository) GetByMatch(ctx context.Context, matchID string) ([]*domain.LedgerEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, player, match_id, kind, amount, created_at
		 FROM ledger_entries
		 WHERE match_id = $1
		 ORDER BY id`,
		matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLedgerEntries(rows)
}

func scanLedgerEntries(rows pgx.Rows) ([]*domain.LedgerEntry, error) {
	var result []*domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(&e.ID, &e.Player, &e.MatchID, &e.Kind, &e.Amount, &e.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &e)
	}
	return result, rows.Err()
}
