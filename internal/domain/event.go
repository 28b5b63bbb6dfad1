package domain

import "time"

// Event types emitted for off-chain observers. They have no behavioral effect
// on the match core.
const (
	EventMatchQueued     = "match_queued"
	EventMatchStarted    = "match_started"
	EventRevealSubmitted = "reveal_submitted"
	EventRoundSettled    = "round_settled"
	EventMatchFinished   = "match_finished"
)

// Event is a notification about match progress. Details carries the
// event-specific payload (player ids, chair, scores, split bps, payouts).
type Event struct {
	ID        string                 `db:"id" json:"id"`
	MatchID   string                 `db:"match_id" json:"match_id"`
	Type      string                 `db:"type" json:"type"`
	Details   map[string]interface{} `db:"details" json:"details,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}
