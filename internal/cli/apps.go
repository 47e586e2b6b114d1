package cli

import (
	"context"
	"fmt"
)

// Apps prints the current installed-app snapshot sorted by label.
func (a *App) Apps(ctx context.Context) error {
	apps, err := a.cache.Apps(ctx)
	if err != nil {
		a.log.Error(ctx, "error scanning registry", "error", err)
		return err
	}
	for _, app := range apps {
		line := fmt.Sprintf("%s  %s %s", app.PackageName, app.Label, app.VersionName)
		if app.System {
			line += "  [system]"
		}
		if !app.Enabled {
			line += "  [disabled]"
		}
		printlnFn(line)
	}
	printlnFn(fmt.Sprintf("%d app(s) installed", len(apps)))
	return nil
}

// Refresh forces a registry rescan outside the watcher's schedule.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.cache.Refresh(ctx); err != nil {
		a.log.Error(ctx, "error refreshing registry", "error", err)
		return err
	}
	printlnFn(fmt.Sprintf("Registry refreshed, %d app(s)", len(a.cache.Snapshot())))
	return nil
}
