// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	mathrand "math/rand/v2"
	"strings"
	"time"
)

var ErrInvalidAdminKey = errors.New("invalid admin key")

// VoterIdentity is the (client token, ip hash) pair carried on every poll
// response. Neither field alone is authoritative; a match on EITHER field
// counts as the same voter for deduplication.
type VoterIdentity struct {
	ClientToken string
	IPHash      string
}

// Resolve derives a voter identity from the raw request IP and the
// client-supplied token. Pure function, no error conditions: a missing IP
// hashes to the hash of the empty string, which makes all unknown-IP clients
// share one fallback identity. That is a known tradeoff, not a defect.
func Resolve(rawIP, clientToken, salt string) VoterIdentity {
	return VoterIdentity{
		ClientToken: clientToken,
		IPHash:      HashIP(rawIP, salt),
	}
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NewClientToken creates a random token for a voter who arrived without one.
// The client persists it and replays it on every later submission.
func NewClientToken() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate client token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// NewUID mints a human-scannable correlation id: a short prefix plus a
// numeric suffix from the current time and a few random digits, e.g.
// "PR-1724609341123042". Collisions are possible and acceptable; these ids
// exist for cross-referencing responses and contacts, not for security.
func NewUID(prefix string) string {
	return fmt.Sprintf("%s-%d%03d", prefix, time.Now().UnixMilli(), mathrand.IntN(1000))
}

// CheckAdminKey compares the presented dashboard key against the configured
// one in constant time.
func CheckAdminKey(got, want string) error {
	if want == "" || !hmac.Equal([]byte(got), []byte(want)) {
		return ErrInvalidAdminKey
	}
	return nil
}
