package helpers

import (
	"crypto/rand"
	"encoding/hex"
	"testing"
)

// NewAdminToken returns a random bearer token for ADMIN_TOKEN
func NewAdminToken(t *testing.T) string {
	t.Helper()
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		t.Fatalf("Failed to generate admin token: %v", err)
	}
	return hex.EncodeToString(b)
}

// Bearer formats an Authorization header value
func Bearer(token string) string {
	return "Bearer " + token
}
