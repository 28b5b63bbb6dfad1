package verifier

import (
	"encoding/binary"
	"errors"
)

// A credential is an opaque proof blob whose trailing 16 bytes carry the four
// revealed scalars as big-endian uint32 values: chair, trap1, trap2, trap3.
// Everything before the trailer is the proof body the verifier attests to.

const (
	scalarSize  = 4
	trailerSize = 4 * scalarSize
)

var ErrShortCredential = errors.New("credential too short")

// Reveal is the claimed opening extracted from a credential.
type Reveal struct {
	Chair int
	Traps [3]int
}

// ParseCredential extracts the four trailing scalars from a credential.
// The proof body must be non-empty; value validation (ranges, distinctness)
// is the caller's job.
func ParseCredential(credential []byte) (Reveal, error) {
	if len(credential) <= trailerSize {
		return Reveal{}, ErrShortCredential
	}

	tail := credential[len(credential)-trailerSize:]
	r := Reveal{
		Chair: int(binary.BigEndian.Uint32(tail[0:4])),
	}
	for i := 0; i < 3; i++ {
		r.Traps[i] = int(binary.BigEndian.Uint32(tail[(i+1)*scalarSize : (i+2)*scalarSize]))
	}
	return r, nil
}

// AppendTrailer appends the reveal scalars to a proof body, producing a
// credential in the wire format ParseCredential expects. Used by clients and
// tests when building credentials.
func AppendTrailer(proofBody []byte, r Reveal) []byte {
	out := make([]byte, 0, len(proofBody)+trailerSize)
	out = append(out, proofBody...)

	var buf [scalarSize]byte
	binary.BigEndian.PutUint32(buf[:], uint32(r.Chair))
	out = append(out, buf[:]...)
	for _, trap := range r.Traps {
		binary.BigEndian.PutUint32(buf[:], uint32(trap))
		out = append(out, buf[:]...)
	}
	return out
}
