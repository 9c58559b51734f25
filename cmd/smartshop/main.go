package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ridloal/smartshop-pos/internal/api/router"
	"github.com/ridloal/smartshop-pos/internal/appcontext"
	"github.com/ridloal/smartshop-pos/internal/platform/config"
	"github.com/ridloal/smartshop-pos/internal/platform/logger"
)

func main() {
	// Load .env into the process environment; a missing file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(".env")
	if err != nil {
		logger.Error("Failed to load configuration", err)
		os.Exit(1)
	}
	logger.Init(os.Stdout, cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	logger.Info("Starting SmartShop API...")

	app, err := appcontext.NewApplicationContext(context.Background(), cfg)
	if err != nil {
		logger.Error("Startup aborted", err)
		os.Exit(1)
	}

	r := router.SetupRouter(router.Dependencies{
		AuthService:    app.AuthService,
		ProductService: app.ProductService,
		SaleService:    app.SaleService,
		ReportService:  app.ReportService,
		Ping:           app.DB.PingContext,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger.Get(),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutdownCompleted := make(chan struct{}, 1)
	go func() {
		<-sigChan
		logger.Info("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", err)
		}
		if err := app.Shutdown(shutdownCtx); err != nil {
			logger.Error("Application shutdown error", err)
		}
		shutdownCompleted <- struct{}{}
	}()

	logger.Info("SmartShop API listening on " + srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("SmartShop API failed to start or crashed", err)
		app.Shutdown(context.Background())
		os.Exit(1)
	}
	<-shutdownCompleted
	logger.Info("Shutdown completed")
}
