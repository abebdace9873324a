package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/sherlock/internal/admission"
	"github.com/dgallion1/sherlock/internal/api"
	"github.com/dgallion1/sherlock/internal/config"
	"github.com/dgallion1/sherlock/internal/source"
	"github.com/dgallion1/sherlock/internal/stats"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	window := stats.NewWindow(cfg.StatsWindow)
	loader := source.Loader{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext}
	svc := admission.NewService(cfg.DataFile, cfg.Search, loader, window, log)

	srv := api.NewServer(svc, window, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting sherlock", "port", cfg.Port, "data_file", cfg.DataFile)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
