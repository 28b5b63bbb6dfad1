package game

import "testing"

func TestSplitBps(t *testing.T) {
	cases := []struct {
		scoreA, scoreB int64
		want           int64
	}{
		{0, 0, 5000},
		{84, 36, 7000},
		{36, 84, 3000},
		{60, 60, 5000},
		{120, 0, 10000},
	}

	for _, tc := range cases {
		if got := SplitBps(tc.scoreA, tc.scoreB); got != tc.want {
			t.Fatalf("SplitBps(%d,%d) = %d; want %d", tc.scoreA, tc.scoreB, got, tc.want)
		}
	}
}

func TestSplitBps_Conservation(t *testing.T) {
	cases := [][2]int64{{84, 36}, {1, 2}, {37, 113}, {5501, 4499}, {1, 9999}}
	for _, tc := range cases {
		bpsA := SplitBps(tc[0], tc[1])
		bpsB := BpsDenom - bpsA
		if bpsA+bpsB != BpsDenom {
			t.Fatalf("bps leak for scores %v: %d + %d", tc, bpsA, bpsB)
		}
	}
}

func TestSettlePot_Tie(t *testing.T) {
	s := SettlePot(1000, 0, 0)
	if s.Tier != FeeTierTie {
		t.Fatalf("tier = %s; want tie", s.Tier)
	}
	if s.PayoutA != s.PayoutB {
		t.Fatalf("tie payouts differ: %d vs %d", s.PayoutA, s.PayoutB)
	}
	// pot 2000, 0.5% each side = 10 each
	if s.PayoutA != 990 {
		t.Fatalf("payoutA = %d; want 990", s.PayoutA)
	}
	if s.Fee != 20 {
		t.Fatalf("fee = %d; want 20", s.Fee)
	}
}

func TestSettlePot_FeeTierBoundaries(t *testing.T) {
	cases := []struct {
		scoreA, scoreB int64
		wantBps        int64
		wantTier       FeeTier
	}{
		{4500, 5500, 4500, FeeTierClose},
		{5500, 4500, 5500, FeeTierClose},
		{4499, 5501, 4499, FeeTierDecisive},
		{5501, 4499, 5501, FeeTierDecisive},
	}

	for _, tc := range cases {
		s := SettlePot(10000, tc.scoreA, tc.scoreB)
		if s.SplitABps != tc.wantBps {
			t.Fatalf("scores (%d,%d): bps = %d; want %d", tc.scoreA, tc.scoreB, s.SplitABps, tc.wantBps)
		}
		if s.Tier != tc.wantTier {
			t.Fatalf("scores (%d,%d): tier = %s; want %s", tc.scoreA, tc.scoreB, s.Tier, tc.wantTier)
		}
	}
}

func TestSettlePot_Decisive(t *testing.T) {
	// cumulative 84 vs 36 after three rounds: split 7000 bps, 1% fee from A
	s := SettlePot(1000, 84, 36)
	if s.Tier != FeeTierDecisive {
		t.Fatalf("tier = %s; want decisive", s.Tier)
	}
	if s.SplitABps != 7000 {
		t.Fatalf("bps = %d; want 7000", s.SplitABps)
	}
	// pot 2000: grossA 1400, grossB 600, fee 20 entirely from A
	if s.PayoutA != 1380 {
		t.Fatalf("payoutA = %d; want 1380", s.PayoutA)
	}
	if s.PayoutB != 600 {
		t.Fatalf("payoutB = %d; want 600 (loser keeps full gross)", s.PayoutB)
	}
	if s.Fee != 20 {
		t.Fatalf("fee = %d; want 20", s.Fee)
	}
}

func TestSettlePot_DecisiveLoserA(t *testing.T) {
	s := SettlePot(1000, 36, 84)
	if s.PayoutA != 600 {
		t.Fatalf("payoutA = %d; want 600", s.PayoutA)
	}
	if s.PayoutB != 1380 {
		t.Fatalf("payoutB = %d; want 1380", s.PayoutB)
	}
}

func TestSettlePot_Conservation(t *testing.T) {
	cases := []struct {
		stake, scoreA, scoreB int64
	}{
		{1000, 84, 36},
		{1000, 0, 0},
		{333, 47, 53},
		{777, 1, 9999},
		{50, 55, 45},
	}

	for _, tc := range cases {
		s := SettlePot(tc.stake, tc.scoreA, tc.scoreB)
		if s.PayoutA+s.PayoutB+s.Fee != s.Pot {
			t.Fatalf("stake %d scores (%d,%d): %d + %d + %d != pot %d",
				tc.stake, tc.scoreA, tc.scoreB, s.PayoutA, s.PayoutB, s.Fee, s.Pot)
		}
		if s.PayoutA < 0 || s.PayoutB < 0 || s.Fee < 0 {
			t.Fatalf("negative component in %+v", s)
		}
	}
}
