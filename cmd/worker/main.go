package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/riskibarqy/fantasy-points/internal/app"
	"github.com/riskibarqy/fantasy-points/internal/config"
	"github.com/riskibarqy/fantasy-points/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-points/internal/observability"
	"github.com/riskibarqy/fantasy-points/internal/platform/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	gameweekFlag := flag.Int("gameweek", 0, "finalize this gameweek once and exit")
	exportUser := flag.String("export-user", "", "with -gameweek, print this user's points breakdown as JSON")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat}).With("service", cfg.ServiceName, "version", cfg.ServiceVersion)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger, *gameweekFlag, *exportUser); err != nil {
		logger.Error("worker failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *logging.Logger, gameweekNumber int, exportUser string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	telemetry, err := observability.StartTelemetry(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	metrics := observability.NewJobMetrics(nil)
	worker, err := app.NewWorker(ctx, cfg, logger, app.Options{Metrics: metrics})
	if err != nil {
		return err
	}
	defer func() {
		if err := worker.Close(context.Background()); err != nil {
			logger.Warn("worker close failed", "error", err)
		}
	}()

	if gameweekNumber > 0 {
		return finalizeOnce(ctx, worker, logger, gameweekNumber, exportUser)
	}

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		return err
	}
	metricsSrv, err := observability.StartMetricsServer(cfg, metrics.Registry(), logger)
	if err != nil {
		return err
	}

	worker.Scheduler.Start()
	logger.Info("worker started", "schedule", cfg.JobSchedule, "storage", cfg.StorageDriver)
	<-ctx.Done()
	logger.Info("shutdown signal received")

	if err := observability.StopServer(metricsSrv, logger, shutdownTimeout); err != nil {
		logger.Warn("metrics server shutdown failed", "error", err)
	}
	if err := observability.StopServer(pprofSrv, logger, shutdownTimeout); err != nil {
		logger.Warn("pprof server shutdown failed", "error", err)
	}
	return nil
}

func finalizeOnce(ctx context.Context, worker *app.Worker, logger *logging.Logger, gameweekNumber int, exportUser string) error {
	report, err := worker.Job.FinalizeGameweek(ctx, gameweekNumber)
	if err != nil && report.Gameweek == 0 {
		return err
	}
	if err != nil {
		logger.Warn("gameweek finalized with errors", "gameweek", gameweekNumber, "error", err)
	}

	if exportUser == "" {
		return err
	}
	result, getErr := worker.SquadPoints.GetUserGameweekPoints(ctx, exportUser, gameweekNumber)
	if getErr != nil {
		return crerr.CombineErrors(err, getErr)
	}
	payload, exportErr := scoring.ExportBreakdown(result)
	if exportErr != nil {
		return crerr.CombineErrors(err, exportErr)
	}
	if _, writeErr := os.Stdout.Write(append(payload, '\n')); writeErr != nil {
		return crerr.CombineErrors(err, writeErr)
	}
	return err
}
