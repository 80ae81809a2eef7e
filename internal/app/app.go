package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fantasy-points/internal/config"
	"github.com/riskibarqy/fantasy-points/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-points/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-points/internal/observability"
	idgen "github.com/riskibarqy/fantasy-points/internal/platform/id"
	"github.com/riskibarqy/fantasy-points/internal/platform/logging"
	"github.com/riskibarqy/fantasy-points/internal/scheduler"
	"github.com/riskibarqy/fantasy-points/internal/usecase"
)

// Worker holds the wired services of the scoring worker.
type Worker struct {
	Job          *usecase.GameweekJob
	PlayerPoints *usecase.PlayerPointsService
	SquadPoints  *usecase.SquadPointsService
	Leaderboards *usecase.LeaderboardService
	Leagues      *usecase.LeagueService
	Scheduler    *scheduler.Scheduler
	Metrics      *observability.JobMetrics

	logger  *logging.Logger
	closeDB func() error
}

type Options struct {
	Clock   clockwork.Clock
	Metrics *observability.JobMetrics
}

func NewWorker(ctx context.Context, cfg config.Config, logger *logging.Logger, opts Options) (*Worker, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Metrics == nil {
		opts.Metrics = observability.NewJobMetrics(nil)
	}

	rules := scoring.DefaultRules()
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("scoring rules: %w", err)
	}

	repos, err := newRepositories(ctx, cfg, opts.Clock, logger)
	if err != nil {
		return nil, err
	}

	playerPoints := usecase.NewPlayerPointsService(repos.stats, repos.players, rules, cfg.JobBonusWorkers, logger)
	squadPoints := usecase.NewSquadPointsService(
		usecase.SquadPointsRepositories{
			Squads:    repos.squads,
			Stats:     repos.stats,
			Players:   repos.players,
			Gameweeks: repos.gameweeks,
			Points:    repos.points,
			Leagues:   repos.leagues,
		},
		newAggregator(cfg, rules),
		cfg.JobSquadWorkers,
		opts.Clock,
		logger,
	)
	leaderboards := usecase.NewLeaderboardService(repos.leagues, repos.gameweeks, repos.points, opts.Clock, logger)
	leagues := usecase.NewLeagueService(repos.leagues, idgen.NewUUIDGenerator(), opts.Clock, logger)

	job := usecase.NewGameweekJob(usecase.GameweekJobDeps{
		Gameweeks:    repos.gameweeks,
		Leagues:      repos.leagues,
		PlayerPoints: playerPoints,
		SquadPoints:  squadPoints,
		Leaderboards: leaderboards,
		Metrics:      opts.Metrics,
		Clock:        opts.Clock,
		Logger:       logger,
	}, cfg.JobTimeout)

	sched := scheduler.New(scheduler.Options{
		Timeout:    cfg.JobTimeout,
		Circuit:    cfg.JobCircuit,
		Clock:      opts.Clock,
		Logger:     logger,
		Rejections: opts.Metrics,
	})
	if err := sched.Register(scheduler.GameweekJobs(job, cfg.JobSchedule)...); err != nil {
		_ = repos.close()
		return nil, err
	}

	return &Worker{
		Job:          job,
		PlayerPoints: playerPoints,
		SquadPoints:  squadPoints,
		Leaderboards: leaderboards,
		Leagues:      leagues,
		Scheduler:    sched,
		Metrics:      opts.Metrics,
		logger:       logger,
		closeDB:      repos.close,
	}, nil
}

func newAggregator(cfg config.Config, rules scoring.Rules) *scoring.Aggregator {
	squadRules := fantasy.DefaultRules()
	multipliers := scoring.NewDefaultMultiplierPolicy()
	multipliers.TripleCaptain = cfg.TripleCaptainMultiplier

	opts := []scoring.AggregatorOption{
		scoring.WithSquadRules(squadRules),
		scoring.WithMultiplierPolicy(multipliers),
	}
	if cfg.AutoSubstitution {
		opts = append(opts, scoring.WithSubstitutor(scoring.NewFormationSubstitution(squadRules)))
	}
	return scoring.NewAggregator(rules, opts...)
}

// Close stops the scheduler and releases storage.
func (w *Worker) Close(ctx context.Context) error {
	stopCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	schedErr := w.Scheduler.Stop(stopCtx)
	dbErr := w.closeDB()
	if schedErr != nil {
		return fmt.Errorf("stop scheduler: %w", schedErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close storage: %w", dbErr)
	}
	w.logger.Info("worker closed")
	return nil
}
