// Package config loads runtime configuration for the storefront.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are decoded as YAML, anything else as JSON.
//  3. A .env file in the working directory (if present) and environment
//     variables prefixed with STOREFRONT_.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-s string     storage driver: memory, sqlite, redis, postgres
//	-db string    sqlite database path
//	-pg string    postgres DSN
//	-r string     redis address (host:port)
//	-n string     visitor namespace for shared backends
//	-ttl duration session lifetime
//	-seed bool    create demo users on an empty registry
//	-google string  Google OAuth client id
//	-log-format string  text, json or zap
//	-log-level string   debug, info, warn, error
//	-m string     metrics listen address (empty disables)
//
// # File schema
//
// Durations accept Go duration strings or integer nanoseconds:
//
//	{
//	  "storage_driver": "sqlite",
//	  "sqlite_path": "storefront.db",
//	  "session_ttl": "24h"
//	}
package config
