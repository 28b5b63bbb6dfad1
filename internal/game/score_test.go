package game

import "testing"

func TestScore_BothSafe(t *testing.T) {
	// A chair=8 traps=[1,2,3]; B chair=5 traps=[4,6,7]; nobody trapped
	scoreA, scoreB := Score(8, [3]int{4, 6, 7}, 5, [3]int{1, 2, 3})
	if scoreA != 32 {
		t.Fatalf("scoreA = %d; want 32 (8.0)", scoreA)
	}
	if scoreB != 20 {
		t.Fatalf("scoreB = %d; want 20 (5.0)", scoreB)
	}
}

func TestScore_OneTrapped(t *testing.T) {
	// A chair=3 traps=[5,6,7]; B chair=5 traps=[1,2,9]
	// B's chair 5 is in A's traps; A is safe and earns the bonus
	scoreA, scoreB := Score(3, [3]int{1, 2, 9}, 5, [3]int{5, 6, 7})
	if scoreA != 44 {
		t.Fatalf("scoreA = %d; want 44 (3*4 + 32)", scoreA)
	}
	if scoreB != 5 {
		t.Fatalf("scoreB = %d; want 5 (5*1, trapped)", scoreB)
	}
}

func TestScore_BothTrapped(t *testing.T) {
	// mutual trapping: both score at 0.25x but both earn the bonus
	scoreA, scoreB := Score(4, [3]int{4, 6, 7}, 6, [3]int{6, 2, 3})
	if scoreA != 4+32 {
		t.Fatalf("scoreA = %d; want %d", scoreA, 4+32)
	}
	if scoreB != 6+32 {
		t.Fatalf("scoreB = %d; want %d", scoreB, 6+32)
	}
}

func TestScore_ScaleInvariant(t *testing.T) {
	// a safe, non-bonus score for chair c is exactly 4c; trapped is exactly c
	traps := [3]int{1, 2, 3}
	for c := 4; c <= NumChairs; c++ {
		scoreA, _ := Score(c, traps, 10, [3]int{11, 12, 9})
		if scoreA != int64(4*c) {
			t.Fatalf("safe chair %d scored %d; want %d", c, scoreA, 4*c)
		}
	}
	for _, c := range []int{1, 2, 3} {
		scoreA, _ := Score(c, traps, 10, [3]int{11, 12, 9})
		if scoreA != int64(c) {
			t.Fatalf("trapped chair %d scored %d; want %d", c, scoreA, c)
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		a1, b1 := Score(7, [3]int{1, 5, 9}, 9, [3]int{2, 7, 12})
		a2, b2 := Score(7, [3]int{1, 5, 9}, 9, [3]int{2, 7, 12})
		if a1 != a2 || b1 != b2 {
			t.Fatalf("Score not deterministic: (%d,%d) vs (%d,%d)", a1, b1, a2, b2)
		}
	}
}

func TestReal(t *testing.T) {
	if Real(44) != 11.0 {
		t.Fatalf("Real(44) = %v; want 11.0", Real(44))
	}
	if Real(5) != 1.25 {
		t.Fatalf("Real(5) = %v; want 1.25", Real(5))
	}
}
