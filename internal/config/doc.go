// Package config loads runtime configuration for the applists CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path to the SQLite catalog database
//	-s string   installed-app source ("dpkg" or "file")
//	-f string   inventory JSON file for the "file" source
//	-i int      registry refresh interval (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "30s" or integer nanoseconds:
//
//	{
//	  "database_path": "applists.db",
//	  "registry_source": "dpkg",
//	  "inventory_path": "",
//	  "refresh_interval": "30s"
//	}
//
// Primary API
//
//   - type Config                     — holds the database path, registry source and refresh interval
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
