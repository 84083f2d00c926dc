package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kirillkom/ats-resume-analyzer/internal/bootstrap"
	"github.com/kirillkom/ats-resume-analyzer/internal/config"
	"github.com/kirillkom/ats-resume-analyzer/internal/observability/logging"
	"github.com/kirillkom/ats-resume-analyzer/internal/observability/metrics"
)

const processTimeout = 5 * time.Minute

func main() {
	cfg := config.Load()
	logging.Setup("ats-worker", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics("ats-worker")
	go serveMetrics(cfg.WorkerMetricsPort, workerMetrics)

	slog.Info("worker_subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeResumeUploaded(ctx, func(handlerCtx context.Context, resumeID string) error {
		processCtx, cancel := context.WithTimeout(handlerCtx, processTimeout)
		defer cancel()

		workerMetrics.StartResume()
		start := time.Now()
		processErr := app.ProcessUC.ProcessByID(processCtx, resumeID)
		workerMetrics.FinishResume("ats-worker", time.Since(start), processErr)
		return processErr
	})
	if err != nil {
		slog.Error("worker_subscribe_failed", "error", err)
		os.Exit(1)
	}
}

func serveMetrics(port string, workerMetrics *metrics.WorkerMetrics) {
	if port == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", workerMetrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		slog.Error("worker_metrics_server_failed", "error", err)
	}
}
