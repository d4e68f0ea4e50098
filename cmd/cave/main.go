package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"cave-ca/internal/app"

	"github.com/charmbracelet/log"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "cave",
		ReportTimestamp: true,
	})
	lvl, err := cfg.Level()
	if err != nil {
		logger.Fatal("bad flags", "err", err)
	}
	logger.SetLevel(lvl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := app.Run(ctx, cfg, flag.CommandLine, os.Stdout, logger); err != nil {
		logger.Fatal("generation failed", "err", err)
	}
}
