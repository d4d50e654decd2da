package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const envPrefix = "STOREFRONT_"

// dotenvFiles lists the files godotenv tries before the environment is read.
// Variables already present in the environment are never overwritten.
var dotenvFiles = []string{".env"}

// parseEnv overlays cfg with STOREFRONT_* variables. Unset variables leave
// the current value alone.
func parseEnv(cfg *Config) error {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	return env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix})
}
