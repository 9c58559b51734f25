package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ridloal/smartshop-pos/internal/appcontext"
	"github.com/ridloal/smartshop-pos/internal/platform/config"
	"github.com/ridloal/smartshop-pos/internal/platform/logger"
	"github.com/ridloal/smartshop-pos/internal/till"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(".env")
	if err != nil {
		logger.Error("Failed to load configuration", err)
		os.Exit(1)
	}
	// Logs go to stderr so they do not interleave with the menu.
	logger.Init(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := appcontext.NewApplicationContext(ctx, cfg)
	if err != nil {
		logger.Error("Startup aborted", err)
		os.Exit(1)
	}
	defer app.Shutdown(context.Background())

	shell := till.NewShell(os.Stdin, os.Stdout, app.TillServices(), cfg.ExportPath, app.Settings())
	if err := shell.Run(ctx); err != nil {
		if errors.Is(err, till.ErrTooManyAttempts) {
			app.Shutdown(context.Background())
			os.Exit(2)
		}
		logger.Error("Till stopped", err)
	}
}
