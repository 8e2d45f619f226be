package app

import "time"

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr string
	LogLevel string

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int

	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	// If true:
	// - /readyz returns 503 unless DB is configured and reachable.
	ReadinessRequireDB bool

	// Rate admission: permits per window, per client partition.
	RatePermits int
	RateWindow  time.Duration

	// CORS: origins allowed to call the API from a browser. Empty means
	// cross-origin browser requests are refused.
	CORSAllowedOrigins []string
}

// LoadConfig loads Config from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		HTTPAddr: EnvString("POSTHUB_HTTP_ADDR", "0.0.0.0:8080"),
		LogLevel: EnvString("POSTHUB_LOG_LEVEL", "info"),

		ReadHeaderTimeout: EnvDuration("POSTHUB_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       EnvDuration("POSTHUB_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      EnvDuration("POSTHUB_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       EnvDuration("POSTHUB_HTTP_IDLE_TIMEOUT", 60*time.Second),

		MaxHeaderBytes: EnvInt("POSTHUB_HTTP_MAX_HEADER_BYTES", 1<<20),

		DatabaseURL: EnvString("POSTHUB_DATABASE_URL", ""),
		DBMaxConns:  EnvInt32("POSTHUB_DB_MAX_CONNS", 10),
		DBMinConns:  EnvInt32("POSTHUB_DB_MIN_CONNS", 0),

		ReadinessRequireDB: EnvBool("POSTHUB_READINESS_REQUIRE_DB", false),

		RatePermits: EnvInt("POSTHUB_RATE_PERMITS", 100),
		RateWindow:  EnvDuration("POSTHUB_RATE_WINDOW", time.Minute),

		CORSAllowedOrigins: EnvStrings("POSTHUB_CORS_ALLOWED_ORIGINS", nil),
	}
}
