package domain

import "time"

// StoredCommitment is the side-table record keyed (match_id, player, round_no).
// The first player's commitments land here before the match row has a second
// player; at activation they are copied into the Round records, which is the
// only place downstream logic reads them from. Rows are kept for the public
// commitment query.
type StoredCommitment struct {
	MatchID    string    `db:"match_id" json:"match_id"`
	Player     int64     `db:"player" json:"player"`
	RoundNo    int       `db:"round_no" json:"round_no"`
	Commitment []byte    `db:"commitment" json:"commitment"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
