// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var ErrInvalidAdminKey = errors.New("invalid admin key")

// HashDevice derives a pseudonymous device identifier from the caller's
// network address and user-agent. HMAC-SHA256 with a process-wide salt,
// truncated to 16 hex characters. Deterministic for the same inputs; empty
// inputs are allowed. Two devices behind the same NAT with identical
// user-agents collide - an accepted identity trade-off.
func HashDevice(address, userAgent, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(address + userAgent))
	sum := h.Sum(nil)
	// First 16 hex chars (64 bits) - enough to distinguish devices
	return hex.EncodeToString(sum[:8])
}

// ValidateAdminKey checks a presented admin key against the configured
// secret in constant time.
func ValidateAdminKey(presented, secret string) error {
	if !hmac.Equal([]byte(presented), []byte(secret)) {
		return ErrInvalidAdminKey
	}
	return nil
}
