package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/applists/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path to the SQLite catalog database (default from Config)
//	-s string   installed-app source, "dpkg" or "file" (default from Config)
//	-f string   inventory JSON file for the "file" source
//	-i int      registry refresh interval in seconds (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-s", "-f", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the catalog database")
	fs.StringVar(&cfg.RegistrySource, "s", cfg.RegistrySource, "installed-app source (dpkg or file)")
	fs.StringVar(&cfg.InventoryPath, "f", cfg.InventoryPath, "inventory JSON file for the file source")
	refreshInterval := fs.Int("i", int(cfg.RefreshInterval.Seconds()), "registry refresh interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RefreshInterval = time.Duration(*refreshInterval) * time.Second
}
