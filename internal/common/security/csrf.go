package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
)

const (
	// CsrfCookieName holds the server-issued token; the client mirrors it
	// back in CsrfHeaderName on state-changing requests (double submit).
	CsrfCookieName = "csrf-token"
	CsrfHeaderName = "X-CSRF-Token"

	csrfTokenBytes = 32
)

// NewCsrfToken returns a hex-encoded token with 32 bytes of entropy.
func NewCsrfToken() (string, error) {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// VerifyCsrfToken compares the stored token with the candidate echoed by
// the client. Timing-safe; false on empty input or length mismatch, and it
// never fails on malformed input.
func VerifyCsrfToken(stored, candidate string) bool {
	if stored == "" || candidate == "" {
		return false
	}
	if len(stored) != len(candidate) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}
