package auth

import (
	"regexp"
	"testing"
)

func TestHashDevice(t *testing.T) {
	hexPattern := regexp.MustCompile(`^[0-9a-f]{16}$`)

	t.Run("deterministic", func(t *testing.T) {
		a := HashDevice("203.0.113.7", "Mozilla/5.0", "salt")
		b := HashDevice("203.0.113.7", "Mozilla/5.0", "salt")
		if a != b {
			t.Errorf("Same inputs produced different hashes: %s vs %s", a, b)
		}
	})

	t.Run("fixed length hex", func(t *testing.T) {
		tests := []struct {
			name      string
			address   string
			userAgent string
		}{
			{"normal", "203.0.113.7", "Mozilla/5.0"},
			{"empty address", "", "Mozilla/5.0"},
			{"empty user agent", "203.0.113.7", ""},
			{"both empty", "", ""},
			{"ipv6", "2001:db8::1", "curl/8.0"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				hash := HashDevice(tt.address, tt.userAgent, "salt")
				if !hexPattern.MatchString(hash) {
					t.Errorf("Expected 16 hex chars, got %q", hash)
				}
			})
		}
	})

	t.Run("distinct inputs diverge", func(t *testing.T) {
		base := HashDevice("203.0.113.7", "Mozilla/5.0", "salt")

		if HashDevice("203.0.113.8", "Mozilla/5.0", "salt") == base {
			t.Error("Different address should change the hash")
		}
		if HashDevice("203.0.113.7", "curl/8.0", "salt") == base {
			t.Error("Different user-agent should change the hash")
		}
		if HashDevice("203.0.113.7", "Mozilla/5.0", "other-salt") == base {
			t.Error("Different salt should change the hash")
		}
	})
}

func TestValidateAdminKey(t *testing.T) {
	if err := ValidateAdminKey("secret", "secret"); err != nil {
		t.Errorf("Expected matching key to validate, got %v", err)
	}

	if err := ValidateAdminKey("wrong", "secret"); err != ErrInvalidAdminKey {
		t.Errorf("Expected ErrInvalidAdminKey, got %v", err)
	}

	if err := ValidateAdminKey("", "secret"); err != ErrInvalidAdminKey {
		t.Errorf("Expected empty key to fail, got %v", err)
	}
}
