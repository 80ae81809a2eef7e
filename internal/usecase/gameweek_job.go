package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fantasy-points/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-points/internal/domain/league"
	"github.com/riskibarqy/fantasy-points/internal/platform/logging"
	"github.com/riskibarqy/fantasy-points/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
)

const (
	jobStatusSuccess = "success"
	jobStatusPartial = "partial"
	jobStatusFailed  = "failed"
	jobStatusSkipped = "skipped"
)

// JobMetrics receives job outcomes. observability.JobMetrics implements it.
type JobMetrics interface {
	ObserveJobRun(job, status string, duration time.Duration)
	AddSquadFailures(count int)
}

type noopJobMetrics struct{}

func (noopJobMetrics) ObserveJobRun(string, string, time.Duration) {}
func (noopJobMetrics) AddSquadFailures(int)                        {}

type playerPointsRecomputer interface {
	RecomputeGameweek(ctx context.Context, gameweek int) (RecomputeResult, error)
}

type usersGameweekScorer interface {
	ComputeUsersGameweek(ctx context.Context, userIDs []string, gameweek int) (BatchReport, error)
}

type leaderboardBuilder interface {
	Build(ctx context.Context, leagueID string, upTo int) ([]league.Standing, error)
}

type LeagueFinalizeReport struct {
	LeagueID  string
	Standings int
	Err       error
}

type FinalizeReport struct {
	Gameweek  int
	Finalized bool
	Players   int
	Squads    BatchReport
	Leagues   []LeagueFinalizeReport
}

// GameweekJob drives the per-gameweek pipeline: player points (bonus, then scoring),
// squad results, then league leaderboards.
type GameweekJob struct {
	gameweekRepo gameweek.Repository
	leagueRepo   league.Repository
	playerPoints playerPointsRecomputer
	squadPoints  usersGameweekScorer
	leaderboards leaderboardBuilder
	flight       resilience.SingleFlight
	metrics      JobMetrics
	timeout      time.Duration
	clock        clockwork.Clock
	logger       *logging.Logger

	// settledMu guards settled, the finished gameweeks known to have standings.
	settledMu sync.Mutex
	settled   map[int]struct{}
}

type GameweekJobDeps struct {
	Gameweeks    gameweek.Repository
	Leagues      league.Repository
	PlayerPoints playerPointsRecomputer
	SquadPoints  usersGameweekScorer
	Leaderboards leaderboardBuilder
	Metrics      JobMetrics
	Clock        clockwork.Clock
	Logger       *logging.Logger
}

func NewGameweekJob(deps GameweekJobDeps, timeout time.Duration) *GameweekJob {
	job := &GameweekJob{
		gameweekRepo: deps.Gameweeks,
		leagueRepo:   deps.Leagues,
		playerPoints: deps.PlayerPoints,
		squadPoints:  deps.SquadPoints,
		leaderboards: deps.Leaderboards,
		metrics:      deps.Metrics,
		timeout:      timeout,
		clock:        deps.Clock,
		logger:       deps.Logger,
		settled:      make(map[int]struct{}),
	}
	if job.metrics == nil {
		job.metrics = noopJobMetrics{}
	}
	if job.clock == nil {
		job.clock = clockwork.NewRealClock()
	}
	if job.logger == nil {
		job.logger = logging.Default()
	}
	return job
}

// FinalizeGameweek runs the full pipeline for a finished gameweek. Concurrent calls for
// the same gameweek share one run.
func (j *GameweekJob) FinalizeGameweek(ctx context.Context, gameweekNumber int) (report FinalizeReport, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekJob.FinalizeGameweek", attribute.Int("gameweek", gameweekNumber))
	defer func() { endSpan(span, err) }()

	gw, exists, err := j.gameweekRepo.Get(ctx, gameweekNumber)
	if err != nil {
		return FinalizeReport{}, fmt.Errorf("get gameweek=%d: %w", gameweekNumber, err)
	}
	if !exists {
		return FinalizeReport{}, fmt.Errorf("%w: gameweek=%d", ErrNotFound, gameweekNumber)
	}
	if !gw.IsFinished() {
		return FinalizeReport{}, fmt.Errorf("%w: gameweek=%d status=%s", ErrGameweekNotFinished, gw.Number, gw.Status)
	}

	key := "gameweek:finalize:" + strconv.Itoa(gw.Number)
	value, err, shared := j.flight.Do(key, func() (any, error) {
		return j.run(ctx, "finalize", gw, true)
	})
	if shared {
		j.logger.DebugContext(ctx, "finalize shared with in-flight run", "gameweek", gw.Number)
	}
	report, _ = value.(FinalizeReport)
	if err == nil {
		j.markSettled(gw.Number)
	}
	return report, err
}

// RunCurrent refreshes the current gameweek. Earlier finished gameweeks that were never
// finalized are finalized first, oldest first. A finished current gameweek is finalized,
// a live one gets provisional player and squad points without touching leaderboards.
func (j *GameweekJob) RunCurrent(ctx context.Context) (report FinalizeReport, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekJob.RunCurrent")
	defer func() { endSpan(span, err) }()

	gw, exists, err := j.gameweekRepo.Current(ctx)
	if err != nil {
		return FinalizeReport{}, fmt.Errorf("get current gameweek: %w", err)
	}
	if !exists {
		j.metrics.ObserveJobRun("current", jobStatusSkipped, 0)
		j.logger.InfoContext(ctx, "skip gameweek job: no current gameweek")
		return FinalizeReport{}, nil
	}
	span.SetAttributes(attribute.Int("gameweek", gw.Number))

	catchUpErr := j.finalizePending(ctx, gw.Number)
	if gw.IsFinished() {
		report, err = j.FinalizeGameweek(ctx, gw.Number)
		return report, crerr.CombineErrors(catchUpErr, err)
	}

	key := "gameweek:live:" + strconv.Itoa(gw.Number)
	value, err, _ := j.flight.Do(key, func() (any, error) {
		return j.run(ctx, "live", gw, false)
	})
	report, _ = value.(FinalizeReport)
	return report, crerr.CombineErrors(catchUpErr, err)
}

// finalizePending finalizes every finished gameweek before current that still lacks
// standings in a league with members. One gameweek's failure does not stop the rest.
func (j *GameweekJob) finalizePending(ctx context.Context, current int) error {
	finished, err := j.gameweekRepo.ListFinished(ctx)
	if err != nil {
		return crerr.Wrap(err, "list finished gameweeks")
	}
	sort.Slice(finished, func(a, b int) bool { return finished[a].Number < finished[b].Number })

	var errs error
	for _, gw := range finished {
		if gw.Number >= current || j.isSettled(gw.Number) {
			continue
		}
		pending, err := j.missingStandings(ctx, gw.Number)
		if err != nil {
			errs = crerr.CombineErrors(errs, crerr.Wrapf(err, "check standings gameweek=%d", gw.Number))
			continue
		}
		if !pending {
			j.markSettled(gw.Number)
			continue
		}
		j.logger.InfoContext(ctx, "finalizing missed gameweek", "gameweek", gw.Number, "current", current)
		if _, err := j.FinalizeGameweek(ctx, gw.Number); err != nil {
			errs = crerr.CombineErrors(errs, crerr.Wrapf(err, "finalize missed gameweek=%d", gw.Number))
		}
	}
	return errs
}

func (j *GameweekJob) missingStandings(ctx context.Context, gameweekNumber int) (bool, error) {
	leagues, err := j.leagueRepo.List(ctx)
	if err != nil {
		return false, crerr.Wrap(err, "list leagues")
	}
	for _, item := range leagues {
		members, err := j.leagueRepo.ListMembers(ctx, item.ID)
		if err != nil {
			return false, crerr.Wrapf(err, "list members league=%s", item.ID)
		}
		if len(members) == 0 {
			continue
		}
		standings, err := j.leagueRepo.ListStandings(ctx, item.ID, gameweekNumber)
		if err != nil {
			return false, crerr.Wrapf(err, "list standings league=%s", item.ID)
		}
		if len(standings) == 0 {
			return true, nil
		}
	}
	return false, nil
}

func (j *GameweekJob) isSettled(gameweekNumber int) bool {
	j.settledMu.Lock()
	defer j.settledMu.Unlock()
	_, ok := j.settled[gameweekNumber]
	return ok
}

func (j *GameweekJob) markSettled(gameweekNumber int) {
	j.settledMu.Lock()
	defer j.settledMu.Unlock()
	j.settled[gameweekNumber] = struct{}{}
}

func (j *GameweekJob) run(ctx context.Context, name string, gw gameweek.Gameweek, withLeaderboards bool) (report FinalizeReport, err error) {
	start := j.clock.Now()
	defer func() {
		status := jobStatusSuccess
		switch {
		case err != nil && len(report.Leagues) == 0:
			status = jobStatusFailed
		case err != nil || report.Squads.Failed() > 0:
			status = jobStatusPartial
		}
		j.metrics.ObserveJobRun(name, status, j.clock.Since(start))
		j.metrics.AddSquadFailures(report.Squads.Failed())
	}()

	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	report = FinalizeReport{Gameweek: gw.Number, Finalized: gw.IsFinished()}

	recomputed, err := j.playerPoints.RecomputeGameweek(ctx, gw.Number)
	if err != nil {
		return report, crerr.Wrapf(err, "recompute player points gameweek=%d", gw.Number)
	}
	report.Players = recomputed.Players

	leagues, err := j.leagueRepo.List(ctx)
	if err != nil {
		return report, crerr.Wrap(err, "list leagues")
	}
	userIDs := make([]string, 0)
	for _, item := range leagues {
		members, err := j.leagueRepo.ListMembers(ctx, item.ID)
		if err != nil {
			return report, crerr.Wrapf(err, "list members league=%s", item.ID)
		}
		for _, member := range members {
			userIDs = append(userIDs, member.UserID)
		}
	}

	squads, err := j.squadPoints.ComputeUsersGameweek(ctx, userIDs, gw.Number)
	report.Squads = squads
	if err != nil {
		return report, crerr.Wrapf(err, "compute squad points gameweek=%d", gw.Number)
	}
	invariantFailures := 0
	for _, failure := range squads.Failures {
		if isSquadInvariantError(failure.Err) {
			invariantFailures++
		}
	}

	var leagueErrs error
	if withLeaderboards {
		for _, item := range leagues {
			standings, buildErr := j.leaderboards.Build(ctx, item.ID, gw.Number)
			row := LeagueFinalizeReport{LeagueID: item.ID, Standings: len(standings), Err: buildErr}
			if buildErr != nil {
				leagueErrs = crerr.CombineErrors(leagueErrs, crerr.Wrapf(buildErr, "league=%s", item.ID))
				j.logger.WarnContext(ctx, "build leaderboard failed", "league_id", item.ID, "gameweek", gw.Number, "error", buildErr)
			}
			report.Leagues = append(report.Leagues, row)
		}
	}

	j.logger.InfoContext(ctx, "gameweek job finished",
		"job", name,
		"gameweek", gw.Number,
		"players", report.Players,
		"squads_succeeded", squads.Succeeded,
		"squads_skipped", squads.Skipped,
		"squads_failed", squads.Failed(),
		"invalid_squads", invariantFailures,
		"leagues", len(report.Leagues),
	)
	return report, leagueErrs
}
