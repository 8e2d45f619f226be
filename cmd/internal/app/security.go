package app

import (
	"encoding/hex"
	"errors"
	"os"
	"strings"
)

const tokenSecretEnv = "POSTHUB_TOKEN_SECRET_HEX"

// ValidateSecurityConfig enforces the startup security policy.
//
// Fail-fast is intentional: the token secret has no default, so a deployment
// can never silently run with development crypto. The same key material is
// validated again by the token manager; this check exists to fail with a
// readable message before any listener is opened.
func ValidateSecurityConfig(Config) error {
	raw := strings.TrimSpace(os.Getenv(tokenSecretEnv))
	if raw == "" {
		return errors.New("security policy: " + tokenSecretEnv + " is required (64 hex chars)")
	}

	key, err := hex.DecodeString(raw)
	if err != nil {
		return errors.New("security policy: " + tokenSecretEnv + " is not valid hex")
	}
	if len(key) != 32 {
		return errors.New("security policy: " + tokenSecretEnv + " must decode to exactly 32 bytes")
	}

	return nil
}
