package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-points/internal/platform/logging"
	"github.com/riskibarqy/fantasy-points/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-points/internal/scheduler"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config stores runtime configuration for the scoring worker.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	LogLevel                logging.Level
	LogFormat               logging.Format
	StorageDriver           string
	DBURL                   string
	DBDisablePreparedBinary bool
	DBAutoMigrate           bool
	DBBootstrapSeed         bool
	CacheEnabled            bool
	CacheTTL                time.Duration
	PprofEnabled            bool
	PprofAddr               string
	MetricsEnabled          bool
	MetricsAddr             string
	UptraceEnabled          bool
	UptraceDSN              string
	UptraceLogsEnabled      bool
	PyroscopeEnabled        bool
	PyroscopeServerAddress  string
	PyroscopeAppName        string
	PyroscopeAuthToken      string
	PyroscopeBasicAuthUser  string
	PyroscopeBasicAuthPass  string
	PyroscopeUploadRate     time.Duration
	JobSchedule             string
	JobSquadWorkers         int
	JobBonusWorkers         int
	JobTimeout              time.Duration
	JobCircuit              resilience.CircuitBreakerConfig
	AutoSubstitution        bool
	TripleCaptainMultiplier int
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    strings.TrimSpace(getEnv("APP_SERVICE_NAME", "fantasy-points-worker")),
		ServiceVersion: strings.TrimSpace(getEnv("APP_SERVICE_VERSION", "dev")),
		LogLevel:       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogFormat:      logging.ParseFormat(getEnv("APP_LOG_FORMAT", string(logging.FormatJSON))),
	}

	if err := loadStorage(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadObservability(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadJob(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadScoring(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadStorage(cfg *Config) error {
	driver, err := parseStorageDriver(getEnv("STORAGE_DRIVER", StorageMemory))
	if err != nil {
		return err
	}
	cfg.StorageDriver = driver
	cfg.DBURL = strings.TrimSpace(getEnv("DB_URL", ""))
	if driver == StoragePostgres && cfg.DBURL == "" {
		return fmt.Errorf("DB_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
	}

	if cfg.DBDisablePreparedBinary, err = strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true")); err != nil {
		return fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	if cfg.DBAutoMigrate, err = strconv.ParseBool(getEnv("DB_AUTO_MIGRATE", "false")); err != nil {
		return fmt.Errorf("parse DB_AUTO_MIGRATE: %w", err)
	}

	seedDefault := "false"
	if cfg.AppEnv == EnvDev {
		seedDefault = "true"
	}
	if cfg.DBBootstrapSeed, err = strconv.ParseBool(getEnv("DB_BOOTSTRAP_SEED", seedDefault)); err != nil {
		return fmt.Errorf("parse DB_BOOTSTRAP_SEED: %w", err)
	}
	if cfg.AppEnv == EnvProd && cfg.DBBootstrapSeed {
		return fmt.Errorf("DB_BOOTSTRAP_SEED cannot be enabled when APP_ENV=%s", EnvProd)
	}

	if cfg.CacheEnabled, err = strconv.ParseBool(getEnv("CACHE_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	if cfg.CacheTTL, err = time.ParseDuration(getEnv("CACHE_TTL", "60s")); err != nil {
		return fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cfg.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be > 0")
	}
	return nil
}

func loadObservability(cfg *Config) error {
	var err error

	if cfg.PprofEnabled, err = strconv.ParseBool(getEnv("PPROF_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	cfg.PprofAddr = strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	if cfg.MetricsEnabled, err = strconv.ParseBool(getEnv("METRICS_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse METRICS_ENABLED: %w", err)
	}
	cfg.MetricsAddr = strings.TrimSpace(getEnv("METRICS_ADDR", ":9090"))
	if cfg.MetricsEnabled && cfg.MetricsAddr == "" {
		return fmt.Errorf("METRICS_ADDR is required when METRICS_ENABLED=true")
	}

	if cfg.UptraceEnabled, err = strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if cfg.UptraceLogsEnabled, err = strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	if cfg.PyroscopeEnabled, err = strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false")); err != nil {
		return fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPass = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	if cfg.PyroscopeUploadRate, err = time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s")); err != nil {
		return fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if cfg.PyroscopeUploadRate <= 0 {
		return fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}
	return nil
}

func loadJob(cfg *Config) error {
	var err error

	cfg.JobSchedule = strings.TrimSpace(getEnv("JOB_SCHEDULE", "0 */15 * * * *"))
	if _, err := scheduler.ParseSpec(cfg.JobSchedule); err != nil {
		return fmt.Errorf("parse JOB_SCHEDULE %q: %w", cfg.JobSchedule, err)
	}

	if cfg.JobSquadWorkers, err = getEnvAsInt("JOB_SQUAD_WORKERS", 8); err != nil {
		return fmt.Errorf("parse JOB_SQUAD_WORKERS: %w", err)
	}
	if cfg.JobSquadWorkers < 1 {
		return fmt.Errorf("JOB_SQUAD_WORKERS must be >= 1")
	}
	if cfg.JobBonusWorkers, err = getEnvAsInt("JOB_BONUS_WORKERS", 4); err != nil {
		return fmt.Errorf("parse JOB_BONUS_WORKERS: %w", err)
	}
	if cfg.JobBonusWorkers < 1 {
		return fmt.Errorf("JOB_BONUS_WORKERS must be >= 1")
	}
	if cfg.JobTimeout, err = time.ParseDuration(getEnv("JOB_TIMEOUT", "10m")); err != nil {
		return fmt.Errorf("parse JOB_TIMEOUT: %w", err)
	}
	if cfg.JobTimeout <= 0 {
		return fmt.Errorf("JOB_TIMEOUT must be > 0")
	}

	circuit := resilience.DefaultCircuitBreakerConfig()
	if circuit.Enabled, err = strconv.ParseBool(getEnv("JOB_CIRCUIT_ENABLED", "true")); err != nil {
		return fmt.Errorf("parse JOB_CIRCUIT_ENABLED: %w", err)
	}
	if circuit.FailureThreshold, err = getEnvAsInt("JOB_CIRCUIT_FAILURE_COUNT", circuit.FailureThreshold); err != nil {
		return fmt.Errorf("parse JOB_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if circuit.OpenTimeout, err = time.ParseDuration(getEnv("JOB_CIRCUIT_OPEN_TIMEOUT", circuit.OpenTimeout.String())); err != nil {
		return fmt.Errorf("parse JOB_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if circuit.HalfOpenMaxReq, err = getEnvAsInt("JOB_CIRCUIT_HALF_OPEN_MAX_REQ", circuit.HalfOpenMaxReq); err != nil {
		return fmt.Errorf("parse JOB_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if err := circuit.Validate(); err != nil {
		return fmt.Errorf("JOB_CIRCUIT_*: %w", err)
	}
	cfg.JobCircuit = circuit
	return nil
}

func loadScoring(cfg *Config) error {
	var err error

	if cfg.AutoSubstitution, err = strconv.ParseBool(getEnv("SCORING_AUTO_SUBSTITUTION", "false")); err != nil {
		return fmt.Errorf("parse SCORING_AUTO_SUBSTITUTION: %w", err)
	}
	if cfg.TripleCaptainMultiplier, err = getEnvAsInt("SCORING_TRIPLE_CAPTAIN_MULTIPLIER", 3); err != nil {
		return fmt.Errorf("parse SCORING_TRIPLE_CAPTAIN_MULTIPLIER: %w", err)
	}
	if cfg.TripleCaptainMultiplier < 2 {
		return fmt.Errorf("SCORING_TRIPLE_CAPTAIN_MULTIPLIER must be >= 2")
	}
	return nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseStorageDriver(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case StorageMemory, StoragePostgres:
		return value, nil
	default:
		return "", fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s", v, StorageMemory, StoragePostgres)
	}
}
