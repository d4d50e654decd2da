package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/flagx"
	"github.com/dmitrijs2005/storefront/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig is the DTO decoded from a config file. Pointer fields tell
// "absent" apart from zero values so a file only overrides what it names.
type fileConfig struct {
	StorageDriver  *string         `json:"storage_driver" yaml:"storage_driver"`
	SQLitePath     *string         `json:"sqlite_path" yaml:"sqlite_path"`
	PostgresDSN    *string         `json:"postgres_dsn" yaml:"postgres_dsn"`
	RedisAddr      *string         `json:"redis_addr" yaml:"redis_addr"`
	RedisPassword  *string         `json:"redis_password" yaml:"redis_password"`
	RedisDB        *int            `json:"redis_db" yaml:"redis_db"`
	Namespace      *string         `json:"namespace" yaml:"namespace"`
	SessionTTL     *timex.Duration `json:"session_ttl" yaml:"session_ttl"`
	SeedUsers      *bool           `json:"seed_users" yaml:"seed_users"`
	GoogleClientID *string         `json:"google_client_id" yaml:"google_client_id"`
	GoogleSecret   *string         `json:"google_client_secret" yaml:"google_client_secret"`
	GoogleRedirect *string         `json:"google_redirect_url" yaml:"google_redirect_url"`
	Currency       *string         `json:"currency" yaml:"currency"`
	LogFormat      *string         `json:"log_format" yaml:"log_format"`
	LogLevel       *string         `json:"log_level" yaml:"log_level"`
	MetricsAddr    *string         `json:"metrics_addr" yaml:"metrics_addr"`
}

// parseFile overlays cfg with the file named by -c/-config in args.
// No flag means no file and no error.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return err
	}

	fc.apply(cfg)
	return nil
}

func (fc fileConfig) apply(cfg *Config) {
	setString(&cfg.StorageDriver, fc.StorageDriver)
	setString(&cfg.SQLitePath, fc.SQLitePath)
	setString(&cfg.PostgresDSN, fc.PostgresDSN)
	setString(&cfg.RedisAddr, fc.RedisAddr)
	setString(&cfg.RedisPassword, fc.RedisPassword)
	setString(&cfg.Namespace, fc.Namespace)
	setString(&cfg.GoogleClientID, fc.GoogleClientID)
	setString(&cfg.GoogleClientSecret, fc.GoogleSecret)
	setString(&cfg.GoogleRedirectURL, fc.GoogleRedirect)
	setString(&cfg.Currency, fc.Currency)
	setString(&cfg.LogFormat, fc.LogFormat)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.MetricsAddr, fc.MetricsAddr)

	if fc.RedisDB != nil {
		cfg.RedisDB = *fc.RedisDB
	}
	if fc.SessionTTL != nil {
		cfg.SessionTTL = fc.SessionTTL.Duration
	}
	if fc.SeedUsers != nil {
		cfg.SeedUsers = *fc.SeedUsers
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
