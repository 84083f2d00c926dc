package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/kirillkom/ats-resume-analyzer/internal/adapters/http"
	"github.com/kirillkom/ats-resume-analyzer/internal/bootstrap"
	"github.com/kirillkom/ats-resume-analyzer/internal/config"
	"github.com/kirillkom/ats-resume-analyzer/internal/observability/logging"
	"github.com/kirillkom/ats-resume-analyzer/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	logging.Setup("ats-api", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	httpMetrics := metrics.NewHTTPServerMetrics("ats-api")
	router := httpadapter.NewRouter(
		cfg,
		app.IngestUC,
		app.AnalyzeUC,
		app.Repo,
		app.MatchUC,
		app.Vocabulary,
		httpMetrics,
	).Handler()

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("api_listening", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("api_server_failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("api_shutdown_failed", "error", err)
	}
}
