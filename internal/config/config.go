package config

import (
	"log/slog"
	"os"
	"time"
)

type Config struct {
	Port          string
	Env           string
	MongoURI      string
	MongoDatabase string
	JWTSecret     string
	JWTExpiry     time.Duration
	ClientOrigin  string

	// Stream Chat credentials for the external identity sync and
	// client-side chat tokens.
	StreamAPIKey    string
	StreamAPISecret string
}

func Load() Config {
	cfg := Config{
		Port:            getEnv("PORT", "5001"),
		Env:             getEnv("ENV", "development"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDatabase:   getEnv("MONGO_DB", "lingomate"),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		JWTExpiry:       7 * 24 * time.Hour,
		ClientOrigin:    getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		StreamAPIKey:    os.Getenv("STREAM_API_KEY"),
		StreamAPISecret: os.Getenv("STREAM_API_SECRET"),
	}

	if cfg.IsProduction() && cfg.JWTSecret == "dev-secret-change-in-production" {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	if cfg.StreamAPIKey == "" || cfg.StreamAPISecret == "" {
		slog.Warn("STREAM_API_KEY/STREAM_API_SECRET not set, server will not start without them")
	}

	return cfg
}

// IsProduction reports whether the server runs with production settings
// (secure cookies, mandatory secrets).
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
