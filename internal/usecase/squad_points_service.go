package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jonboulle/clockwork"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-points/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-points/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-points/internal/domain/league"
	"github.com/riskibarqy/fantasy-points/internal/domain/player"
	"github.com/riskibarqy/fantasy-points/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-points/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-points/internal/platform/logging"
)

const defaultSquadWorkers = 8

type SquadPointsRepositories struct {
	Squads    fantasy.Repository
	Stats     playerstats.Repository
	Players   player.Repository
	Gameweeks gameweek.Repository
	Points    scoring.Repository
	Leagues   league.Repository
}

// SquadPointsService computes and stores per-user gameweek results.
type SquadPointsService struct {
	squadRepo    fantasy.Repository
	statsRepo    playerstats.Repository
	playerRepo   player.Repository
	gameweekRepo gameweek.Repository
	pointsRepo   scoring.Repository
	leagueRepo   league.Repository
	aggregator   *scoring.Aggregator
	workers      int
	clock        clockwork.Clock
	logger       *logging.Logger
}

func NewSquadPointsService(
	repos SquadPointsRepositories,
	aggregator *scoring.Aggregator,
	workers int,
	clock clockwork.Clock,
	logger *logging.Logger,
) *SquadPointsService {
	if workers <= 0 {
		workers = defaultSquadWorkers
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if aggregator == nil {
		aggregator = scoring.NewAggregator(scoring.DefaultRules())
	}
	return &SquadPointsService{
		squadRepo:    repos.Squads,
		statsRepo:    repos.Stats,
		playerRepo:   repos.Players,
		gameweekRepo: repos.Gameweeks,
		pointsRepo:   repos.Points,
		leagueRepo:   repos.Leagues,
		aggregator:   aggregator,
		workers:      workers,
		clock:        clock,
		logger:       logger,
	}
}

// ComputeLeagueGameweek computes results for every member of a league.
func (s *SquadPointsService) ComputeLeagueGameweek(ctx context.Context, leagueID string, gameweekNumber int) (BatchReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadPointsService.ComputeLeagueGameweek")
	defer span.End()

	members, err := s.leagueRepo.ListMembers(ctx, leagueID)
	if err != nil {
		return BatchReport{}, fmt.Errorf("list league members league=%s: %w", leagueID, err)
	}
	userIDs := make([]string, 0, len(members))
	for _, member := range members {
		userIDs = append(userIDs, member.UserID)
	}
	return s.ComputeUsersGameweek(ctx, userIDs, gameweekNumber)
}

// ComputeUsersGameweek computes and stores results for the given users on a bounded
// worker pool. One user's failure never aborts the others; failures are collected in
// the report. Results already finalized are left untouched.
func (s *SquadPointsService) ComputeUsersGameweek(ctx context.Context, userIDs []string, gameweekNumber int) (BatchReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadPointsService.ComputeUsersGameweek")
	defer span.End()

	report := BatchReport{Gameweek: gameweekNumber}
	gw, err := s.getGameweek(ctx, gameweekNumber)
	if err != nil {
		return report, err
	}
	userIDs = uniqueStrings(userIDs)
	if len(userIDs) == 0 {
		return report, nil
	}

	squads, err := s.squadRepo.ListByUsersAndGameweek(ctx, userIDs, gw.Number)
	if err != nil {
		return report, fmt.Errorf("%w: list squads gameweek=%d: %v", ErrDependencyUnavailable, gw.Number, err)
	}
	squadByUser := make(map[string]fantasy.Squad, len(squads))
	for _, squad := range squads {
		squadByUser[squad.UserID] = squad
	}

	stats, positions, err := s.loadSquadInputs(ctx, gw.Number, squads)
	if err != nil {
		return report, err
	}

	var succeeded atomic.Int32
	var skipped atomic.Int32
	failures := make(chan UserFailure, len(userIDs))

	workerPool, err := ants.NewPool(s.workers)
	if err != nil {
		return report, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var workers sync.WaitGroup
	for _, userID := range userIDs {
		userID := userID
		squad, ok := squadByUser[userID]
		if !ok {
			skipped.Add(1)
			continue
		}

		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			stored, err := s.computeAndStore(ctx, gw, withPositions(squad, positions), stats)
			if err != nil {
				failures <- UserFailure{UserID: userID, Err: err}
				return
			}
			if stored {
				succeeded.Add(1)
				return
			}
			skipped.Add(1)
		}); err != nil {
			workers.Done()
			failures <- UserFailure{UserID: userID, Err: fmt.Errorf("submit task to worker pool: %w", err)}
		}
	}

	workers.Wait()
	close(failures)

	for failure := range failures {
		report.Failures = append(report.Failures, failure)
	}
	report.sortFailures()
	report.Succeeded = int(succeeded.Load())
	report.Skipped = int(skipped.Load())

	if len(report.Failures) > 0 {
		s.logger.WarnContext(ctx, "some squads could not be scored",
			"gameweek", gw.Number,
			"failed", len(report.Failures),
			"succeeded", report.Succeeded,
			"error", report.Err(),
		)
	}
	return report, nil
}

// GetUserGameweekPoints returns the stored result, or a live computation when none exists.
func (s *SquadPointsService) GetUserGameweekPoints(ctx context.Context, userID string, gameweekNumber int) (scoring.GameweekPointsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadPointsService.GetUserGameweekPoints")
	defer span.End()

	if userID == "" {
		return scoring.GameweekPointsResult{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	stored, exists, err := s.pointsRepo.GetResult(ctx, userID, gameweekNumber)
	if err != nil {
		return scoring.GameweekPointsResult{}, fmt.Errorf("get gameweek result user=%s gameweek=%d: %w", userID, gameweekNumber, err)
	}
	if exists {
		return stored, nil
	}

	gw, err := s.getGameweek(ctx, gameweekNumber)
	if err != nil {
		return scoring.GameweekPointsResult{}, err
	}
	squad, exists, err := s.squadRepo.GetByUserAndGameweek(ctx, userID, gw.Number)
	if err != nil {
		return scoring.GameweekPointsResult{}, fmt.Errorf("get squad user=%s gameweek=%d: %w", userID, gw.Number, err)
	}
	if !exists {
		return scoring.GameweekPointsResult{}, fmt.Errorf("%w: squad for user=%s gameweek=%d", ErrNotFound, userID, gw.Number)
	}

	stats, positions, err := s.loadSquadInputs(ctx, gw.Number, []fantasy.Squad{squad})
	if err != nil {
		return scoring.GameweekPointsResult{}, err
	}
	result, err := s.aggregator.ComputeSquadPoints(withPositions(squad, positions), stats)
	if err != nil {
		return scoring.GameweekPointsResult{}, fmt.Errorf("compute squad points user=%s: %w", userID, err)
	}
	result.CalculatedAt = s.clock.Now().UTC()
	return result, nil
}

func (s *SquadPointsService) computeAndStore(
	ctx context.Context,
	gw gameweek.Gameweek,
	squad fantasy.Squad,
	stats []playerstats.GameweekStat,
) (bool, error) {
	existing, exists, err := s.pointsRepo.GetResult(ctx, squad.UserID, gw.Number)
	if err != nil {
		return false, fmt.Errorf("%w: get stored result: %v", ErrDependencyUnavailable, err)
	}
	if exists && existing.Finalized {
		return false, nil
	}

	result, err := s.aggregator.ComputeSquadPoints(squad, stats)
	if err != nil {
		return false, err
	}
	result.Finalized = gw.IsFinished()
	result.CalculatedAt = s.clock.Now().UTC()

	if err := s.pointsRepo.UpsertResult(ctx, result); err != nil {
		return false, fmt.Errorf("%w: store result: %v", ErrDependencyUnavailable, err)
	}
	return true, nil
}

// loadSquadInputs batch-fetches stats and player positions for every pick of every squad.
func (s *SquadPointsService) loadSquadInputs(
	ctx context.Context,
	gameweekNumber int,
	squads []fantasy.Squad,
) ([]playerstats.GameweekStat, map[string]player.Position, error) {
	playerIDs := make([]string, 0, len(squads)*fantasy.SquadSize)
	for _, squad := range squads {
		playerIDs = append(playerIDs, squad.PlayerIDs()...)
	}
	playerIDs = uniqueStrings(playerIDs)
	if len(playerIDs) == 0 {
		return nil, map[string]player.Position{}, nil
	}

	stats, err := s.statsRepo.ListByGameweekAndPlayers(ctx, gameweekNumber, playerIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: list stats gameweek=%d: %v", ErrDependencyUnavailable, gameweekNumber, err)
	}
	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: get players by ids: %v", ErrDependencyUnavailable, err)
	}

	positions := make(map[string]player.Position, len(players))
	for _, item := range players {
		positions[item.ID] = item.Position
	}
	return stats, positions, nil
}

func (s *SquadPointsService) getGameweek(ctx context.Context, number int) (gameweek.Gameweek, error) {
	if number <= 0 {
		return gameweek.Gameweek{}, fmt.Errorf("%w: gameweek must be greater than zero", ErrInvalidInput)
	}
	gw, exists, err := s.gameweekRepo.Get(ctx, number)
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("get gameweek=%d: %w", number, err)
	}
	if !exists {
		return gameweek.Gameweek{}, fmt.Errorf("%w: gameweek=%d", ErrNotFound, number)
	}
	return gw, nil
}

// withPositions overrides pick positions with the player pool's metadata.
func withPositions(squad fantasy.Squad, positions map[string]player.Position) fantasy.Squad {
	out := squad.Clone()
	for i, pick := range out.Picks {
		if pos, ok := positions[pick.PlayerID]; ok {
			out.Picks[i].Position = pos
		}
	}
	return out
}

func uniqueStrings(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

func isSquadInvariantError(err error) bool {
	return errors.Is(err, fantasy.ErrInvalidSquadInvariant)
}
