package service

import "errors"

// Every operation checks all preconditions before any mutation and aborts on
// the first violation with one of these, so callers can render an accurate
// message instead of a generic failure.
var (
	// not found
	ErrMatchNotFound = errors.New("match not found")
	ErrRoundNotFound = errors.New("round not found")

	// start_match
	ErrInvalidStake   = errors.New("stake must be positive")
	ErrBadCommitment  = errors.New("commitment missing or empty")
	ErrAlreadyStarted = errors.New("match already started")
	ErrSelfJoin       = errors.New("cannot join own match")
	ErrStakeMismatch  = errors.New("stake mismatch")

	// submit_reveal
	ErrMatchNotActive   = errors.New("match is not active")
	ErrInvalidRound     = errors.New("round number out of range")
	ErrNotPlayer        = errors.New("caller is not a match player")
	ErrAlreadyRevealed  = errors.New("already revealed for this round")
	ErrBadCredential    = errors.New("malformed reveal credential")
	ErrRevealOutOfRange = errors.New("chair or trap out of range")
	ErrDuplicateTraps   = errors.New("traps must be pairwise distinct")
	ErrChairOnTrap      = errors.New("chair must not equal a trap")
	ErrProofRejected    = errors.New("proof verification rejected")

	// settlement
	ErrRoundNotReady      = errors.New("round is not fully revealed")
	ErrRoundAlreadyScored = errors.New("round already scored")
	ErrFinalRoundPending  = errors.New("final round not settled")
	ErrMatchFinished      = errors.New("match already finished")
)
