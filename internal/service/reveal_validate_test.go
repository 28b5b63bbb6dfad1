package service

import (
	"errors"
	"testing"

	"chairduel/internal/verifier"
)

func TestValidateReveal(t *testing.T) {
	cases := []struct {
		name    string
		reveal  verifier.Reveal
		wantErr error
	}{
		{
			name:   "valid",
			reveal: verifier.Reveal{Chair: 8, Traps: [3]int{1, 2, 3}},
		},
		{
			name:   "valid upper bound",
			reveal: verifier.Reveal{Chair: 12, Traps: [3]int{1, 2, 11}},
		},
		{
			name:    "chair zero",
			reveal:  verifier.Reveal{Chair: 0, Traps: [3]int{1, 2, 3}},
			wantErr: ErrRevealOutOfRange,
		},
		{
			name:    "chair above range",
			reveal:  verifier.Reveal{Chair: 13, Traps: [3]int{1, 2, 3}},
			wantErr: ErrRevealOutOfRange,
		},
		{
			name:    "trap zero",
			reveal:  verifier.Reveal{Chair: 8, Traps: [3]int{0, 2, 3}},
			wantErr: ErrRevealOutOfRange,
		},
		{
			name:    "trap above range",
			reveal:  verifier.Reveal{Chair: 8, Traps: [3]int{1, 2, 13}},
			wantErr: ErrRevealOutOfRange,
		},
		{
			name:    "duplicate traps",
			reveal:  verifier.Reveal{Chair: 8, Traps: [3]int{5, 5, 3}},
			wantErr: ErrDuplicateTraps,
		},
		{
			name:    "duplicate traps non-adjacent",
			reveal:  verifier.Reveal{Chair: 8, Traps: [3]int{5, 3, 5}},
			wantErr: ErrDuplicateTraps,
		},
		{
			name:    "chair on first trap",
			reveal:  verifier.Reveal{Chair: 5, Traps: [3]int{5, 2, 3}},
			wantErr: ErrChairOnTrap,
		},
		{
			name:    "chair on last trap",
			reveal:  verifier.Reveal{Chair: 3, Traps: [3]int{1, 2, 3}},
			wantErr: ErrChairOnTrap,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateReveal(tc.reveal)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("validateReveal(%+v) = %v; want nil", tc.reveal, err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("validateReveal(%+v) = %v; want %v", tc.reveal, err, tc.wantErr)
			}
		})
	}
}
