package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	apps := len(a.cache.Snapshot())
	if apps == 0 {
		return ""
	}
	return fmt.Sprintf("(%d apps) ", apps)
}

func (a *App) Root(ctx context.Context) {

	if a.interactive {
		printlnFn("Welcome to applists CLI (type 'help' for commands)")
	}
	scanner := bufio.NewScanner(os.Stdin)

	if err := a.cache.Refresh(ctx); err != nil {
		a.log.Warn(ctx, "initial registry scan failed", "error", err)
	}

	go func() {
		a.StartRegistryWatcher(ctx, a.config.RefreshInterval)
	}()

	runREPL(ctx, a, a.getStatus, scanner)
}
