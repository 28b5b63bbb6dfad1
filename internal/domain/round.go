package domain

import "time"

// RoundStatus - reveal progress of a single round.
// both_revealed means "both sides revealed, not yet scored"; scored is terminal.
type RoundStatus string

const (
	RoundStatusPending      RoundStatus = "pending"
	RoundStatusRevealedA    RoundStatus = "revealed_a"
	RoundStatusRevealedB    RoundStatus = "revealed_b"
	RoundStatusBothRevealed RoundStatus = "both_revealed"
	RoundStatusScored       RoundStatus = "scored"
)

// Round holds per-round state, keyed by (match_id, round_no). The three rounds
// are pre-created empty when the match is created; commitments are bound at
// activation. Chair/trap fields use 0 as the not-yet-revealed sentinel and are
// write-once. ScoreA/ScoreB are written exactly once, at round settlement.
type Round struct {
	MatchID     string      `db:"match_id" json:"match_id"`
	RoundNo     int         `db:"round_no" json:"round_no"`
	CommitmentA []byte      `db:"commitment_a" json:"commitment_a,omitempty"`
	CommitmentB []byte      `db:"commitment_b" json:"commitment_b,omitempty"`
	ChairA      int         `db:"chair_a" json:"chair_a"`
	TrapsA      [3]int      `db:"-" json:"traps_a"`
	ChairB      int         `db:"chair_b" json:"chair_b"`
	TrapsB      [3]int      `db:"-" json:"traps_b"`
	Status      RoundStatus `db:"status" json:"status"`
	ScoreA      int64       `db:"score_a" json:"score_a"`
	ScoreB      int64       `db:"score_b" json:"score_b"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}

// RevealedBy reports whether the given side of the round has already revealed.
func (r *Round) RevealedBy(isPlayerA bool) bool {
	if isPlayerA {
		return r.ChairA != 0
	}
	return r.ChairB != 0
}
