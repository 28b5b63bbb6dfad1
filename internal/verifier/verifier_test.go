package verifier

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseCredential_RoundTrip(t *testing.T) {
	cases := []Reveal{
		{Chair: 8, Traps: [3]int{1, 2, 3}},
		{Chair: 5, Traps: [3]int{4, 6, 7}},
		{Chair: 12, Traps: [3]int{9, 10, 11}},
	}

	for _, want := range cases {
		cred := AppendTrailer([]byte("proof-body"), want)
		got, err := ParseCredential(cred)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if got != want {
			t.Fatalf("parsed %+v; want %+v", got, want)
		}
	}
}

func TestParseCredential_TooShort(t *testing.T) {
	// 16 bytes is only a trailer; a credential needs a proof body too
	if _, err := ParseCredential(make([]byte, 16)); err != ErrShortCredential {
		t.Fatalf("err = %v; want ErrShortCredential", err)
	}
	if _, err := ParseCredential(nil); err != ErrShortCredential {
		t.Fatalf("err = %v; want ErrShortCredential", err)
	}
}

func TestHashVerifier(t *testing.T) {
	cred := AppendTrailer([]byte("salt"), Reveal{Chair: 3, Traps: [3]int{5, 6, 7}})
	commitment := Commit(cred)

	v := HashVerifier{}
	if err := v.Verify(context.Background(), commitment, cred); err != nil {
		t.Fatalf("valid credential rejected: %v", err)
	}

	// flipping any byte of the credential must invalidate the commitment,
	// trailer bytes included
	tampered := append([]byte(nil), cred...)
	tampered[len(tampered)-1] ^= 0x01
	if err := v.Verify(context.Background(), commitment, tampered); err != ErrProofInvalid {
		t.Fatalf("tampered trailer accepted: %v", err)
	}
}

func TestHTTPVerifier(t *testing.T) {
	cred := AppendTrailer([]byte("salt"), Reveal{Chair: 3, Traps: [3]int{5, 6, 7}})
	commitment := Commit(cred)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req verifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		gotCred, _ := base64.StdEncoding.DecodeString(req.Credential)
		gotCommit, _ := base64.StdEncoding.DecodeString(req.Commitment)

		valid := HashVerifier{}.Verify(r.Context(), gotCommit, gotCred) == nil
		_ = json.NewEncoder(w).Encode(verifyResponse{Valid: valid})
	}))
	defer srv.Close()

	v := NewHTTPVerifier(srv.URL, 5*time.Second)
	if err := v.Verify(context.Background(), commitment, cred); err != nil {
		t.Fatalf("valid credential rejected: %v", err)
	}
	if err := v.Verify(context.Background(), commitment, append(cred, 0x00)); err != ErrProofInvalid {
		t.Fatalf("invalid credential accepted: %v", err)
	}
}
