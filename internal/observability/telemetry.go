package observability

import (
	"context"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/fantasy-points/internal/config"
	"github.com/riskibarqy/fantasy-points/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// Telemetry owns the process-wide exporters started for the worker: the Uptrace
// OpenTelemetry pipeline (traces, metrics and mirrored logs) and the Pyroscope profiler.
type Telemetry struct {
	logger   *logging.Logger
	tracing  bool
	profiler *pyroscope.Profiler
}

// StartTelemetry starts whatever cfg enables. The returned value is never nil and
// Shutdown is safe to call when nothing was started.
func StartTelemetry(cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{logger: logger}

	t.startTracing(cfg)
	if err := t.startProfiler(cfg); err != nil {
		_ = t.stopTracing(context.Background())
		return t, crerr.Wrap(err, "start pyroscope")
	}
	return t, nil
}

func (t *Telemetry) TracingEnabled() bool {
	return t != nil && t.tracing
}

func (t *Telemetry) ProfilingEnabled() bool {
	return t != nil && t.profiler != nil
}

// Shutdown stops the profiler and flushes the exporters, returning every failure.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}

	var err error
	if t.profiler != nil {
		if stopErr := t.profiler.Stop(); stopErr != nil {
			err = crerr.CombineErrors(err, crerr.Wrap(stopErr, "stop pyroscope"))
		}
		t.profiler = nil
	}
	if flushErr := t.stopTracing(ctx); flushErr != nil {
		err = crerr.CombineErrors(err, crerr.Wrap(flushErr, "shutdown uptrace"))
	}
	return err
}

func (t *Telemetry) startTracing(cfg config.Config) {
	if !cfg.UptraceEnabled || strings.TrimSpace(cfg.UptraceDSN) == "" {
		logging.SetMirror(nil)
		t.logger.Info("uptrace disabled", "enabled", cfg.UptraceEnabled)
		return
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)
	t.tracing = true

	var mirror logging.MirrorFunc
	if cfg.UptraceLogsEnabled {
		mirror = newLogMirror(cfg.ServiceVersion)
	}
	logging.SetMirror(mirror)

	t.logger.Info("uptrace enabled",
		"environment", cfg.AppEnv,
		"logs_enabled", cfg.UptraceLogsEnabled,
	)
}

func (t *Telemetry) stopTracing(ctx context.Context) error {
	logging.SetMirror(nil)
	if !t.tracing {
		return nil
	}
	t.tracing = false
	return uptrace.Shutdown(ctx)
}

func (t *Telemetry) startProfiler(cfg config.Config) error {
	if !cfg.PyroscopeEnabled {
		t.logger.Info("pyroscope disabled")
		return nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPass,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags:              profileTags(cfg),
		ProfileTypes:      workerProfileTypes,
	})
	if err != nil {
		return err
	}
	t.profiler = profiler

	t.logger.Info("pyroscope enabled", "server_address", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)
	return nil
}

// Scoring runs are CPU and allocation bound; goroutine and mutex profiles cover the worker pools.
var workerProfileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
	pyroscope.ProfileMutexDuration,
}

func profileTags(cfg config.Config) map[string]string {
	tags := map[string]string{
		"env":     cfg.AppEnv,
		"service": cfg.ServiceName,
		"storage": cfg.StorageDriver,
	}
	if cfg.AutoSubstitution {
		tags["auto_sub"] = "on"
	}
	return tags
}
