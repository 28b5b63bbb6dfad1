package game

// Pot settlement: proportional split of the pooled stake by cumulative score,
// with a fee schedule keyed on how close the match was.

const (
	// BpsDenom - basis point denominator for split reporting.
	BpsDenom = 10000

	// closeBandLow/High bound the "close game" fee tier on split_a_bps,
	// inclusive on both ends.
	closeBandLow  = 4500
	closeBandHigh = 5500
)

// FeeTier names the applied fee schedule.
type FeeTier string

const (
	// FeeTierTie - total score 0: 50/50 split, 0.5% fee from each side.
	FeeTierTie FeeTier = "tie"
	// FeeTierClose - split within [4500,5500] bps: 0.5% fee from each side.
	FeeTierClose FeeTier = "close"
	// FeeTierDecisive - split outside the close band: 1% of the pot, debited
	// entirely from the winner's gross share.
	FeeTierDecisive FeeTier = "decisive"
)

// Settlement is the final pot decomposition. PayoutA + PayoutB + Fee == Pot.
type Settlement struct {
	Pot       int64   `json:"pot"`
	PayoutA   int64   `json:"payout_a"`
	PayoutB   int64   `json:"payout_b"`
	Fee       int64   `json:"fee"`
	SplitABps int64   `json:"split_a_bps"`
	Tier      FeeTier `json:"tier"`
}

// SplitBps returns player A's share of the cumulative score in basis points,
// 5000 when the total is zero. B's share is always BpsDenom - SplitBps.
func SplitBps(scoreA, scoreB int64) int64 {
	total := scoreA + scoreB
	if total == 0 {
		return BpsDenom / 2
	}
	return scoreA * BpsDenom / total
}

// SettlePot splits the pooled stake (2×stake) between the two players by
// cumulative score and applies the fee tier. Integer truncation always favors
// the fee: payouts are computed from truncated gross shares and the remainder
// stays in custody.
func SettlePot(stake, scoreA, scoreB int64) Settlement {
	pot := 2 * stake
	bpsA := SplitBps(scoreA, scoreB)

	s := Settlement{Pot: pot, SplitABps: bpsA}

	if scoreA+scoreB == 0 {
		feeEach := pot / 200 // 0.5% each side
		s.Tier = FeeTierTie
		s.PayoutA = pot/2 - feeEach
		s.PayoutB = pot/2 - feeEach
		s.Fee = pot - s.PayoutA - s.PayoutB
		return s
	}

	grossA := pot * bpsA / BpsDenom
	grossB := pot - grossA

	if bpsA >= closeBandLow && bpsA <= closeBandHigh {
		feeEach := pot / 200
		s.Tier = FeeTierClose
		s.PayoutA = grossA - feeEach
		s.PayoutB = grossB - feeEach
		s.Fee = pot - s.PayoutA - s.PayoutB
		return s
	}

	fee := pot / 100 // 1% of the pot, from the winner's gross share
	s.Tier = FeeTierDecisive
	if scoreA > scoreB {
		s.PayoutA = grossA - fee
		s.PayoutB = grossB
	} else {
		s.PayoutA = grossA
		s.PayoutB = grossB - fee
	}
	s.Fee = pot - s.PayoutA - s.PayoutB
	return s
}
