// cmd/dashboard/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"campaigndash/internal/config"
	"campaigndash/internal/dashboard"
	"campaigndash/internal/handlers"
	"campaigndash/internal/logging"
	"campaigndash/internal/notify"
	"campaigndash/internal/render"
	"campaigndash/internal/routes"
	"campaigndash/internal/services"
	"campaigndash/internal/store"
)

// @title Campaign Dashboard API
// @version 1.0
// @description Reconciled campaign, insight and live-metric view served to the dashboard page.
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	server, controller, err := newServer(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to build server", zap.Error(err))
	}

	// Initial load runs alongside the listener so the page can show progress.
	controller.Refresh()

	// Graceful shutdown
	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Port), zap.String("api", cfg.APIBaseURL))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Give server 5 seconds to finish current requests
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	controller.Close()

	logger.Info("Server exiting")
}

// newServer wires the store, its observers and the HTTP surface.
func newServer(cfg *config.Config, logger *zap.Logger) (*http.Server, *dashboard.Controller, error) {
	renderer, err := render.NewRenderer(cfg.Locale, cfg.TimeZone)
	if err != nil {
		return nil, nil, err
	}

	st := store.New()
	hub := notify.NewHub(cfg.NotificationHistory)
	st.Subscribe(notify.ErrorObserver(notify.Multi(hub, notify.NewLogNotifier(logger))))

	api := services.NewCampaignAPIClient(cfg.APIBaseURL, logger)
	api.SetTimeout(cfg.RequestTimeout)
	streams := services.NewStreamManager(cfg.APIBaseURL, st, logger)

	controller := dashboard.NewController(api, streams, st, logger)
	dashboardHandler := handlers.NewDashboardHandler(controller, renderer, hub, logger)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.SetupRoutes(cfg, dashboardHandler, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server, controller, nil
}
