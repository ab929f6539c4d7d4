package config

import (
	"log/slog"
	"os"
	"time"
)

const defaultJWTSecret = "tokenSecretJWT"

type Config struct {
	Port        string
	Env         string
	DatabaseDSN string

	JWTSecret string
	JWTTTL    time.Duration

	StorageTimeout time.Duration

	// LegacyUnprotectedClaims restores the historical behavior of embedding the
	// raw stored user record, password hash included, in unprotected session
	// tokens. Off by default; the hardened path strips the hash.
	LegacyUnprotectedClaims bool
}

func Load() Config {
	cfg := Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		DatabaseDSN:             getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/adoptme?parseTime=true"),
		JWTSecret:               getEnv("JWT_SECRET", defaultJWTSecret),
		JWTTTL:                  getDuration("JWT_TTL", time.Hour),
		StorageTimeout:          getDuration("STORAGE_TIMEOUT", 5*time.Second),
		LegacyUnprotectedClaims: getEnv("UNPROTECTED_LEGACY_CLAIMS", "") == "true",
	}

	if cfg.Env == "production" && cfg.JWTSecret == defaultJWTSecret {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

// IsProduction reports whether the service runs as a production deployment,
// which controls the Secure flag on the protected session cookie.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration, using fallback", "key", key, "value", v)
		return fallback
	}
	return d
}
