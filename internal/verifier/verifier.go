package verifier

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
)

// ErrProofInvalid is returned when a credential is not a valid opening of the
// commitment.
var ErrProofInvalid = errors.New("proof verification failed")

// Verifier attests that a credential opens the commitment stored for a
// player/round. Implementations must treat the whole credential, trailer
// included, as the attested message so the extracted scalars are bound to the
// commitment and cannot be swapped after proving.
type Verifier interface {
	Verify(ctx context.Context, commitment, credential []byte) error
}

// HashVerifier checks commitment == SHA-256(credential). The proof body acts
// as the blinding salt: the commitment hides the trailer scalars until reveal
// and binds them once revealed. Suitable for development and tests, and as the
// default when no external prover is configured.
type HashVerifier struct{}

func (HashVerifier) Verify(_ context.Context, commitment, credential []byte) error {
	sum := sha256.Sum256(credential)
	if !bytes.Equal(sum[:], commitment) {
		return ErrProofInvalid
	}
	return nil
}

// Commit computes the commitment a HashVerifier will accept for a credential.
// Client-side helper.
func Commit(credential []byte) []byte {
	sum := sha256.Sum256(credential)
	return sum[:]
}
