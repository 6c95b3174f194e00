package config

import (
	"os"
	"strconv"
	"strings"
)

// PostStorePostgres and PostStoreMemory are the accepted POST_STORE values.
const (
	PostStorePostgres = "postgres"
	PostStoreMemory   = "memory"
)

type Config struct {
	Port string

	DBHost string
	DBPort string
	DBName string
	DBUser string
	DBPass string

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int

	JWTSecret string

	// Env is "dev" (default) or "prod". When "prod", JWT_SECRET must be set and not the default.
	Env string

	// TokenExpireMinutes is the token lifetime in minutes (default 60). Set via TOKEN_EXPIRE_MINUTES.
	TokenExpireMinutes int

	// PostStore selects the post store backend: "postgres" (default) or "memory".
	// The memory backend does not survive a restart; users always live in Postgres.
	PostStore string

	// MigrateOnStart applies embedded migrations at boot (default true). Set MIGRATE_ON_START=false to skip.
	MigrateOnStart bool

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	// When empty, the server listens with plain HTTP.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string

	// CORSAllowedOrigins is a list of origins allowed for CORS (e.g. https://app.example.com).
	// Set via CORS_ALLOWED_ORIGINS (comma-separated). When empty, no CORS headers are sent (same-origin only).
	CORSAllowedOrigins []string
}

func Load() Config {
	return Config{
		// The original deployment listened on 5000.
		Port: getEnv("PORT", "5000"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBName: getEnv("DB_NAME", "socialdb"),
		DBUser: getEnv("DB_USER", "socialuser"),
		DBPass: getEnv("DB_PASS", "socialpass"),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		JWTSecret: getEnv("JWT_SECRET", "supersecretkey"),
		Env:       getEnv("ENV", "dev"),

		TokenExpireMinutes: getEnvInt("TOKEN_EXPIRE_MINUTES", 60),

		PostStore: getEnv("POST_STORE", PostStorePostgres),

		MigrateOnStart: getEnvBool("MIGRATE_ON_START", true),

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		LogFormat: getEnv("LOG_FORMAT", "text"),

		CORSAllowedOrigins: parseCORSOrigins(getEnv("CORS_ALLOWED_ORIGINS", "")),
	}
}

// parseCORSOrigins splits a comma-separated list of origins and trims spaces. Empty strings are omitted.
func parseCORSOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
