package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/storefront/internal/flagx"
)

var knownFlags = []string{
	"-s", "-db", "-pg", "-r", "-n", "-ttl", "-seed", "-google",
	"-google-secret", "-google-redirect",
	"-log-format", "-log-level", "-m",
}

// parseFlags overlays cfg with the flags it knows about; everything else in
// args is filtered out first so other components may define their own.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.StorageDriver, "s", cfg.StorageDriver, "storage driver: memory, sqlite, redis, postgres")
	fs.StringVar(&cfg.SQLitePath, "db", cfg.SQLitePath, "sqlite database path")
	fs.StringVar(&cfg.PostgresDSN, "pg", cfg.PostgresDSN, "postgres DSN")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.Namespace, "n", cfg.Namespace, "visitor namespace")
	fs.DurationVar(&cfg.SessionTTL, "ttl", cfg.SessionTTL, "session lifetime")
	fs.BoolVar(&cfg.SeedUsers, "seed", cfg.SeedUsers, "create demo users on an empty registry")
	fs.StringVar(&cfg.GoogleClientID, "google", cfg.GoogleClientID, "Google OAuth client id")
	fs.StringVar(&cfg.GoogleClientSecret, "google-secret", cfg.GoogleClientSecret, "Google OAuth client secret")
	fs.StringVar(&cfg.GoogleRedirectURL, "google-redirect", cfg.GoogleRedirectURL, "Google OAuth redirect URL")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text, json, zap")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics listen address")

	return fs.Parse(flagx.FilterArgs(args, knownFlags))
}
