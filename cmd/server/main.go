package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agendafeed/config"
	_ "agendafeed/docs"
	"agendafeed/internal/app"
	deliveryhttp "agendafeed/internal/delivery/http"
	"agendafeed/internal/delivery/http/controllers"
)

// @title Agenda Feed API
// @version 1.0
// @description Filterable event agenda normalized from legacy and modern feeds.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := config.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := app.OpenSelectionRepository(ctx, cfg)
	if err != nil {
		logger.Error("failed to open selection store", "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeRepo(); err != nil {
			logger.Warn("failed to close selection store", "err", err)
		}
	}()

	svc := app.NewAgendaService(logger, cfg, app.NewFetcher(cfg), repo)
	if err := svc.Load(ctx); err != nil {
		// The agenda serves an empty state until an explicit reload.
		logger.Error("initial agenda load failed", "err", err)
	}

	handler := deliveryhttp.NewHandler(logger, cfg.AllowedOrigins, controllers.NewAgendaController(logger, svc))
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "err", err)
		}
	}()

	logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
