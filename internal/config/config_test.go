package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-points/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("unexpected StorageDriver: %q", cfg.StorageDriver)
	}
	if cfg.ServiceName != "fantasy-points-worker" {
		t.Fatalf("unexpected ServiceName: %q", cfg.ServiceName)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
	if cfg.LogFormat != logging.FormatJSON {
		t.Fatalf("unexpected LogFormat: %q", cfg.LogFormat)
	}
	if !cfg.DBBootstrapSeed {
		t.Fatalf("expected DBBootstrapSeed=true in dev by default")
	}
	if cfg.JobSquadWorkers != 8 || cfg.JobBonusWorkers != 4 {
		t.Fatalf("unexpected worker sizes: squads=%d bonus=%d", cfg.JobSquadWorkers, cfg.JobBonusWorkers)
	}
	if cfg.JobTimeout != 10*time.Minute {
		t.Fatalf("unexpected JobTimeout: %s", cfg.JobTimeout)
	}
	if !cfg.JobCircuit.Enabled || cfg.JobCircuit.FailureThreshold != 3 || cfg.JobCircuit.OpenTimeout != 5*time.Minute {
		t.Fatalf("unexpected JobCircuit: %+v", cfg.JobCircuit)
	}
	if cfg.AutoSubstitution {
		t.Fatalf("expected AutoSubstitution=false by default")
	}
	if cfg.TripleCaptainMultiplier != 3 {
		t.Fatalf("unexpected TripleCaptainMultiplier: %d", cfg.TripleCaptainMultiplier)
	}
}

func TestLoad_StorageDriver(t *testing.T) {
	t.Run("invalid driver", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("STORAGE_DRIVER", "sqlite")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown STORAGE_DRIVER")
		}
	})

	t.Run("postgres requires DB_URL", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("STORAGE_DRIVER", "postgres")
		t.Setenv("DB_URL", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when STORAGE_DRIVER=postgres without DB_URL")
		}
	})

	t.Run("postgres with DB_URL", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvStage)
		t.Setenv("STORAGE_DRIVER", " Postgres ")
		t.Setenv("DB_URL", "postgres://localhost:5432/points?sslmode=disable")
		t.Setenv("DB_AUTO_MIGRATE", "true")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageDriver != StoragePostgres {
			t.Fatalf("unexpected StorageDriver: %q", cfg.StorageDriver)
		}
		if !cfg.DBAutoMigrate {
			t.Fatalf("expected DBAutoMigrate=true")
		}
		if cfg.DBBootstrapSeed {
			t.Fatalf("expected DBBootstrapSeed=false outside dev by default")
		}
	})
}

func TestLoad_SeedRejectedInProd(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("DB_BOOTSTRAP_SEED", "true")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when DB_BOOTSTRAP_SEED=true in prod")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-other=1, uptrace-dsn=\"https://token@api.uptrace.dev?grpc=4317\"")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("unexpected PprofAddr: %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_SERVICE_NAME", "points-worker")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://pyroscope:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "points-worker" {
		t.Fatalf("unexpected PyroscopeAppName: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	tests := []struct {
		name    string
		ttl     string
		wantErr bool
		want    time.Duration
	}{
		{name: "explicit ttl", ttl: "90s", want: 90 * time.Second},
		{name: "zero ttl", ttl: "0s", wantErr: true},
		{name: "garbage", ttl: "soon", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv("CACHE_ENABLED", "false")
			t.Setenv("CACHE_TTL", tc.ttl)

			cfg, err := Load()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for CACHE_TTL=%q", tc.ttl)
				}
				return
			}
			if err != nil {
				t.Fatalf("load config: %v", err)
			}
			if cfg.CacheEnabled {
				t.Fatalf("expected CacheEnabled=false")
			}
			if cfg.CacheTTL != tc.want {
				t.Fatalf("unexpected CacheTTL: %s", cfg.CacheTTL)
			}
		})
	}
}

func TestLoad_JobConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("JOB_SCHEDULE", "@every 5m")
	t.Setenv("JOB_SQUAD_WORKERS", "16")
	t.Setenv("JOB_BONUS_WORKERS", "2")
	t.Setenv("JOB_TIMEOUT", "90s")
	t.Setenv("JOB_CIRCUIT_ENABLED", "false")
	t.Setenv("JOB_CIRCUIT_FAILURE_COUNT", "5")
	t.Setenv("JOB_CIRCUIT_OPEN_TIMEOUT", "1m")
	t.Setenv("JOB_CIRCUIT_HALF_OPEN_MAX_REQ", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.JobSchedule != "@every 5m" {
		t.Fatalf("unexpected JobSchedule: %q", cfg.JobSchedule)
	}
	if cfg.JobSquadWorkers != 16 || cfg.JobBonusWorkers != 2 {
		t.Fatalf("unexpected worker sizes: squads=%d bonus=%d", cfg.JobSquadWorkers, cfg.JobBonusWorkers)
	}
	if cfg.JobTimeout != 90*time.Second {
		t.Fatalf("unexpected JobTimeout: %s", cfg.JobTimeout)
	}
	if cfg.JobCircuit.Enabled {
		t.Fatalf("expected JobCircuit.Enabled=false")
	}
	if cfg.JobCircuit.FailureThreshold != 5 || cfg.JobCircuit.OpenTimeout != time.Minute || cfg.JobCircuit.HalfOpenMaxReq != 2 {
		t.Fatalf("unexpected JobCircuit: %+v", cfg.JobCircuit)
	}
}

func TestLoad_JobConfigValidation(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "JOB_SCHEDULE", value: "every now and then"},
		{key: "JOB_SQUAD_WORKERS", value: "0"},
		{key: "JOB_BONUS_WORKERS", value: "x"},
		{key: "JOB_TIMEOUT", value: "-1s"},
		{key: "JOB_CIRCUIT_FAILURE_COUNT", value: "0"},
		{key: "JOB_CIRCUIT_OPEN_TIMEOUT", value: "0s"},
		{key: "JOB_CIRCUIT_HALF_OPEN_MAX_REQ", value: "0"},
		{key: "SCORING_TRIPLE_CAPTAIN_MULTIPLIER", value: "1"},
		{key: "SCORING_AUTO_SUBSTITUTION", value: "maybe"},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]logging.Level{
		"debug":   logging.LevelDebug,
		"WARNING": logging.LevelWarn,
		" error ": logging.LevelError,
		"chatty":  logging.LevelInfo,
	}
	for raw, want := range tests {
		if got := parseLogLevel(raw); got != want {
			t.Fatalf("parseLogLevel(%q) = %s, want %s", raw, got, want)
		}
	}
}
