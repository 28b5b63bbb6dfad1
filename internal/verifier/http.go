package verifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPVerifier delegates proof checking to an external proving service.
type HTTPVerifier struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPVerifier creates a verifier client for the given base URL.
func NewHTTPVerifier(baseURL string, timeout time.Duration) *HTTPVerifier {
	return &HTTPVerifier{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type verifyRequest struct {
	Commitment string `json:"commitment"`
	Credential string `json:"credential"`
}

type verifyResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// Verify posts the full credential and commitment to the proving service. The
// service sees the trailer scalars as part of the attested message, so its
// pass/fail covers the exact values the core will record.
func (v *HTTPVerifier) Verify(ctx context.Context, commitment, credential []byte) error {
	body, err := json.Marshal(verifyRequest{
		Commitment: base64.StdEncoding.EncodeToString(commitment),
		Credential: base64.StdEncoding.EncodeToString(credential),
	})
	if err != nil {
		return err
	}

	url := v.baseURL + "/verify"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("verifier error: %s - %s", resp.Status, string(b))
	}

	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return err
	}
	if !out.Valid {
		return ErrProofInvalid
	}
	return nil
}
