package ledger

import (
	"context"
	"errors"

	"chairduel/internal/domain"
	"chairduel/internal/repository"

	"github.com/jackc/pgx/v5"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrPlayerNotFound    = errors.New("player not found")
)

// Ledger custodies stake funds between lock-in and payout. The match core
// never touches balances directly; all value movement goes through these two
// calls, inside the caller's transaction, so a failed lock or payout aborts
// the whole operation.
type Ledger interface {
	// Lock moves amount from the payer into protocol custody. Fails the
	// operation when the payer cannot cover it.
	Lock(ctx context.Context, tx pgx.Tx, matchID string, payer int64, amount int64) error
	// Pay moves amount out of custody to the recipient. Called only for
	// amount > 0.
	Pay(ctx context.Context, tx pgx.Tx, matchID string, recipient int64, amount int64) error
	// RetainFee records the undistributed remainder staying in custody.
	RetainFee(ctx context.Context, tx pgx.Tx, matchID string, amount int64) error
}

// PostgresLedger keeps balances in the players table and records every
// movement as a ledger entry.
type PostgresLedger struct {
	entries *repository.LedgerEntryRepository
}

func NewPostgresLedger(entries *repository.LedgerEntryRepository) *PostgresLedger {
	return &PostgresLedger{entries: entries}
}

func (l *PostgresLedger) Lock(ctx context.Context, tx pgx.Tx, matchID string, payer int64, amount int64) error {
	var newBalance int64
	err := tx.QueryRow(ctx,
		`UPDATE players SET balance = balance - $1 WHERE id = $2 AND balance >= $1 RETURNING balance`,
		amount, payer,
	).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// not found or cannot cover, check which
			var exists bool
			_ = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM players WHERE id = $1)`, payer).Scan(&exists)
			if !exists {
				return ErrPlayerNotFound
			}
			return ErrInsufficientFunds
		}
		return err
	}

	return l.entries.CreateTx(ctx, tx, &domain.LedgerEntry{
		Player:  payer,
		MatchID: matchID,
		Kind:    domain.LedgerKindStakeLock,
		Amount:  -amount,
	})
}

func (l *PostgresLedger) Pay(ctx context.Context, tx pgx.Tx, matchID string, recipient int64, amount int64) error {
	var newBalance int64
	err := tx.QueryRow(ctx,
		`UPDATE players SET balance = balance + $1 WHERE id = $2 RETURNING balance`,
		amount, recipient,
	).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPlayerNotFound
		}
		return err
	}

	return l.entries.CreateTx(ctx, tx, &domain.LedgerEntry{
		Player:  recipient,
		MatchID: matchID,
		Kind:    domain.LedgerKindPayout,
		Amount:  amount,
	})
}

func (l *PostgresLedger) RetainFee(ctx context.Context, tx pgx.Tx, matchID string, amount int64) error {
	if amount == 0 {
		return nil
	}
	return l.entries.CreateTx(ctx, tx, &domain.LedgerEntry{
		MatchID: matchID,
		Kind:    domain.LedgerKindFeeRetained,
		Amount:  amount,
	})
}
