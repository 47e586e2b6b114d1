package config

import "time"

// Config holds runtime settings for the applists CLI.
//
// Fields:
//   - DatabasePath: location of the SQLite catalog file.
//   - RegistrySource: which installed-app provider to use ("dpkg" or "file").
//   - InventoryPath: JSON inventory file, used when RegistrySource is "file".
//   - RefreshInterval: how often the registry snapshot is refreshed in the
//     background while the CLI runs.
//
// Units: RefreshInterval is a time.Duration (e.g., 30*time.Second).
type Config struct {
	DatabasePath    string
	RegistrySource  string
	InventoryPath   string
	RefreshInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "applists.db"
	c.RegistrySource = "dpkg"
	c.InventoryPath = ""
	c.RefreshInterval = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
