// Package main is the entry point for the money-manager expense dashboard.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gitlab.com/yelinaung/money-manager/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		logger.Log.Error().Err(err).Msg("Command failed")
		stop()
		os.Exit(1)
	}
}

func versionString() string {
	return fmt.Sprintf("money-manager %s (commit: %s, built: %s)", version, commit, date)
}
