package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fantasy-points/db/migrations"
	"github.com/riskibarqy/fantasy-points/internal/config"
	"github.com/riskibarqy/fantasy-points/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-points/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-points/internal/domain/league"
	"github.com/riskibarqy/fantasy-points/internal/domain/player"
	"github.com/riskibarqy/fantasy-points/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-points/internal/domain/scoring"
	cacherepo "github.com/riskibarqy/fantasy-points/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-points/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-points/internal/infrastructure/repository/postgres"
	platformcache "github.com/riskibarqy/fantasy-points/internal/platform/cache"
	"github.com/riskibarqy/fantasy-points/internal/platform/logging"
)

type repositories struct {
	players   player.Repository
	stats     playerstats.Repository
	gameweeks gameweek.Repository
	squads    fantasy.Repository
	points    scoring.Repository
	leagues   league.Repository
	close     func() error
}

func newRepositories(ctx context.Context, cfg config.Config, clock clockwork.Clock, logger *logging.Logger) (repositories, error) {
	var (
		repos repositories
		err   error
	)
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		repos, err = newPostgresRepositories(ctx, cfg, clock, logger)
	default:
		repos, err = newMemoryRepositories(ctx, clock)
	}
	if err != nil {
		return repositories{}, err
	}

	if cfg.CacheEnabled {
		store := platformcache.NewStore(cfg.CacheTTL, platformcache.WithClock(clock))
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
		repos.gameweeks = cacherepo.NewGameweekRepository(repos.gameweeks, store)
	}

	logger.Info("repositories ready", "storage", cfg.StorageDriver, "cache_enabled", cfg.CacheEnabled)
	return repos, nil
}

func newMemoryRepositories(ctx context.Context, clock clockwork.Clock) (repositories, error) {
	leagues := memory.NewLeagueRepository(memory.SeedLeagues())
	for _, membership := range memory.SeedMemberships() {
		if err := leagues.AddMember(ctx, membership); err != nil {
			return repositories{}, fmt.Errorf("seed league member %s: %w", membership.UserID, err)
		}
	}

	return repositories{
		players:   memory.NewPlayerRepository(memory.SeedPlayers()),
		stats:     memory.NewPlayerStatsRepository(memory.SeedStats(), clock),
		gameweeks: memory.NewGameweekRepository(memory.SeedGameweeks(), clock),
		squads:    memory.NewSquadRepository(memory.SeedSquads()...),
		points:    memory.NewScoringRepository(),
		leagues:   leagues,
		close:     func() error { return nil },
	}, nil
}

func newPostgresRepositories(ctx context.Context, cfg config.Config, clock clockwork.Clock, logger *logging.Logger) (repositories, error) {
	dbURL := NormalizeDBURL(cfg.DBURL, cfg.ServiceName, cfg.DBDisablePreparedBinary)
	if cfg.DBAutoMigrate {
		if err := migrations.Up(dbURL); err != nil {
			return repositories{}, err
		}
		logger.Info("database migrations applied")
	}

	db, err := openDB(ctx, cfg, dbURL)
	if err != nil {
		return repositories{}, err
	}

	if cfg.DBBootstrapSeed {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			_ = db.Close()
			return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
		}
	}

	return postgresRepositories(db, clock), nil
}

func postgresRepositories(db *sqlx.DB, clock clockwork.Clock) repositories {
	return repositories{
		players:   postgres.NewPlayerRepository(db),
		stats:     postgres.NewPlayerStatsRepository(db, clock),
		gameweeks: postgres.NewGameweekRepository(db, clock),
		squads:    postgres.NewSquadRepository(db),
		points:    postgres.NewScoringRepository(db),
		leagues:   postgres.NewLeagueRepository(db),
		close:     db.Close,
	}
}
