package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/applists/internal/buildinfo"
	"github.com/dmitrijs2005/applists/internal/cli"
	"github.com/dmitrijs2005/applists/internal/config"
	"github.com/dmitrijs2005/applists/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	log := logging.NewText(os.Stderr, slog.LevelInfo)

	app, err := cli.NewApp(cfg, log)
	if err != nil {
		log.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)

}
