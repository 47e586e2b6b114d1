package cli

import (
	"bufio"
	"context"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/dmitrijs2005/applists/internal/catalog"
	"github.com/dmitrijs2005/applists/internal/config"
	"github.com/dmitrijs2005/applists/internal/export"
	"github.com/dmitrijs2005/applists/internal/logging"
	"github.com/dmitrijs2005/applists/internal/registry"
	"github.com/dmitrijs2005/applists/internal/storage"

	_ "modernc.org/sqlite"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

type App struct {
	config  *config.Config
	catalog *catalog.Service
	export  *export.Service
	cache   *registry.Cache
	log     logging.Logger

	db     interface{ Close() error }
	reader *bufio.Reader

	// interactive is true when stdin is a real terminal; affects only the
	// welcome banner, the REPL itself works over any input.
	interactive bool
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {

	ctx := context.Background()

	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	var provider registry.Provider
	switch c.RegistrySource {
	case "file":
		provider = &registry.FileProvider{Path: c.InventoryPath}
	default:
		provider = &registry.DpkgProvider{}
	}

	cache := registry.NewCache(provider)
	cat := catalog.New(db, cache, log)
	exp := export.NewService(cat, cache, log)

	return &App{
		config:      c,
		catalog:     cat,
		export:      exp,
		cache:       cache,
		log:         log,
		db:          db,
		reader:      bufio.NewReader(os.Stdin),
		interactive: isTerminal(int(os.Stdin.Fd())),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}

// StartRegistryWatcher refreshes the installed-app snapshot on a fixed
// interval until ctx is cancelled. A failed scan keeps the previous snapshot,
// so transient registry errors only delay freshness.
func (a *App) StartRegistryWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			scanCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err := a.cache.Refresh(scanCtx)
			cancel()

			if err != nil {
				a.log.Warn(ctx, "registry refresh failed", "error", err)
			}

		case <-ctx.Done():
			return
		}
	}
}
