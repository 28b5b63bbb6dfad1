package domain

import "time"

// Ledger entry kinds. stake_lock moves funds from a player into protocol
// custody; payout moves funds back out; fee_retained records the undistributed
// remainder that stays in custody (no withdrawal path).
const (
	LedgerKindStakeLock   = "stake_lock"
	LedgerKindPayout      = "payout"
	LedgerKindFeeRetained = "fee_retained"
)

// LedgerEntry records one value movement between a player and protocol custody.
// Amount is negative for locks (player -> custody) and positive for payouts.
type LedgerEntry struct {
	ID        int64     `db:"id" json:"id"`
	Player    int64     `db:"player" json:"player"`
	MatchID   string    `db:"match_id" json:"match_id"`
	Kind      string    `db:"kind" json:"kind"`
	Amount    int64     `db:"amount" json:"amount"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
