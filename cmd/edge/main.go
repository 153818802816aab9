// Package main is the entry point for the edge process — the origin the
// browser actually talks to (route guard, auth proxy, dashboard shell).
package main

import (
	"log/slog"
	"os"

	"github.com/sakif/tutoring-admin/internal/config"
	"github.com/sakif/tutoring-admin/internal/edge"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	e, err := edge.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create edge", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := e.Start(); err != nil {
		logger.Error("edge failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
