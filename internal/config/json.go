package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/applists/internal/flagx"
	"github.com/dmitrijs2005/applists/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the refresh interval either as a string
// like "30s" or as integer nanoseconds. After parsing, values are copied into
// the runtime Config (which uses time.Duration).
type JsonConfig struct {
	DatabasePath    string         `json:"database_path"`
	RegistrySource  string         `json:"registry_source"`
	InventoryPath   string         `json:"inventory_path"`
	RefreshInterval timex.Duration `json:"refresh_interval"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flags via
// flagx.JsonConfigFlags(); if neither is set, no JSON is loaded. Only fields
// present in the file override earlier values. Read or unmarshal errors panic
// (the caller may recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RegistrySource != "" {
		cfg.RegistrySource = jc.RegistrySource
	}
	if jc.InventoryPath != "" {
		cfg.InventoryPath = jc.InventoryPath
	}
	if jc.RefreshInterval.Duration != 0 {
		cfg.RefreshInterval = time.Duration(jc.RefreshInterval.Duration)
	}
}
