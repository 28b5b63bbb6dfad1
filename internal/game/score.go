package game

// Chair/trap scoring for one round of a chair duel.
//
// All scores are fixed-point integers scaled by ScoreScale; the real score is
// scaled/4. Integer scaling keeps the 0.25x trapped debuff exact without
// floating point anywhere in match state.

const (
	// NumChairs is the number of discrete chair positions.
	NumChairs = 12

	// ScoreScale is the fixed-point scale factor: stored score = real score × 4.
	ScoreScale = 4

	// trapBonus (scaled) is awarded to a player iff the opponent sat on one of
	// the player's traps. 32 scaled = 8.0 real points.
	trapBonus = ScoreScale * 8

	trappedMultiplier = 1 // 0.25x
	safeMultiplier    = ScoreScale
)

// isTrapped reports whether pos matches one of the three traps.
func isTrapped(pos int, traps [3]int) bool {
	return pos == traps[0] || pos == traps[1] || pos == traps[2]
}

// Score computes both players' scaled scores for one round. Each player's
// chair is checked against the opponent's traps: a trapped chair scores at
// 0.25x, a safe one at 1.0x, and trapping the opponent earns a flat bonus
// regardless of the player's own fate. Deterministic in its four inputs.
func Score(chairA int, trapsB [3]int, chairB int, trapsA [3]int) (scoreA, scoreB int64) {
	aTrapped := isTrapped(chairA, trapsB)
	bTrapped := isTrapped(chairB, trapsA)

	scoreA = int64(chairA) * multiplier(aTrapped)
	scoreB = int64(chairB) * multiplier(bTrapped)

	if bTrapped {
		scoreA += trapBonus
	}
	if aTrapped {
		scoreB += trapBonus
	}

	return scoreA, scoreB
}

func multiplier(trapped bool) int64 {
	if trapped {
		return trappedMultiplier
	}
	return safeMultiplier
}

// Real converts a scaled score to real units. Presentation use only; match
// state always carries the scaled integer.
func Real(scaled int64) float64 {
	return float64(scaled) / ScoreScale
}
