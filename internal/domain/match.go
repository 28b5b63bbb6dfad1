package domain

import "time"

// MatchStatus - lifecycle state of a match
type MatchStatus string

const (
	MatchStatusWaiting  MatchStatus = "waiting"
	MatchStatusActive   MatchStatus = "active"
	MatchStatusFinished MatchStatus = "finished"
)

// RoundsPerMatch - every match is exactly three rounds, committed up front
const RoundsPerMatch = 3

// Match holds per-match state. PlayerB stays 0 until the second player joins.
// ScoreA/ScoreB are cumulative scaled scores (real score × game.ScoreScale) and
// only ever grow via round settlement.
type Match struct {
	MatchID      string      `db:"match_id" json:"match_id"`
	PlayerA      int64       `db:"player_a" json:"player_a"`
	PlayerB      int64       `db:"player_b" json:"player_b"`
	Stake        int64       `db:"stake" json:"stake"`
	CurrentRound int         `db:"current_round" json:"current_round"`
	Status       MatchStatus `db:"status" json:"status"`
	ScoreA       int64       `db:"score_a" json:"score_a"`
	ScoreB       int64       `db:"score_b" json:"score_b"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

// HasPlayer reports whether id is one of the two match players.
func (m *Match) HasPlayer(id int64) bool {
	return id != 0 && (id == m.PlayerA || id == m.PlayerB)
}
