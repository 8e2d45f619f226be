package auth

import (
	"os"
	"strings"
	"time"
)

// Config defines runtime configuration for token issuance and verification.
//
// It is intentionally explicit and environment-driven: the signing secret,
// issuer and audience have no fallback values, so a production deployment
// cannot silently run with development crypto.
type Config struct {
	// Issuer is the value set in the "iss" claim of session tokens and
	// required on verification.
	Issuer string

	// Audience is the value set in the "aud" claim and required on
	// verification.
	Audience string

	// SecretKeyHex is the hex-encoded 32-byte symmetric key for PASETO
	// v4.local tokens.
	SecretKeyHex string

	// TokenTTL defines the lifetime of session tokens.
	TokenTTL time.Duration

	// ClockSkew defines the allowed time skew during token validation.
	ClockSkew time.Duration
}

// LoadConfigFromEnv loads token configuration from environment variables.
//
// Required:
//   - POSTHUB_TOKEN_SECRET_HEX (64 hex chars / 32 bytes)
//   - POSTHUB_TOKEN_ISSUER
//   - POSTHUB_TOKEN_AUDIENCE
//
// Optional:
//   - POSTHUB_TOKEN_TTL (Go duration, default 15m)
//   - POSTHUB_TOKEN_CLOCK_SKEW (Go duration, default 30s)
//
// Returns ErrConfig if configuration is invalid.
func LoadConfigFromEnv() (Config, error) {
	cfg := Config{
		Issuer:       strings.TrimSpace(os.Getenv("POSTHUB_TOKEN_ISSUER")),
		Audience:     strings.TrimSpace(os.Getenv("POSTHUB_TOKEN_AUDIENCE")),
		SecretKeyHex: strings.TrimSpace(os.Getenv("POSTHUB_TOKEN_SECRET_HEX")),
		TokenTTL:     15 * time.Minute,
		ClockSkew:    30 * time.Second,
	}

	if cfg.SecretKeyHex == "" || cfg.Issuer == "" || cfg.Audience == "" {
		return Config{}, ErrConfig
	}

	if v := os.Getenv("POSTHUB_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.TokenTTL = d
	}

	if v := os.Getenv("POSTHUB_TOKEN_CLOCK_SKEW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Config{}, ErrConfig
		}
		cfg.ClockSkew = d
	}

	return cfg, nil
}
