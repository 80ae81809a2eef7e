package usecase

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fantasy-points/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-points/internal/domain/league"
	"github.com/riskibarqy/fantasy-points/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-points/internal/platform/logging"
)

type LeaderboardService struct {
	leagueRepo   league.Repository
	gameweekRepo gameweek.Repository
	pointsRepo   scoring.Repository
	clock        clockwork.Clock
	logger       *logging.Logger
}

func NewLeaderboardService(
	leagueRepo league.Repository,
	gameweekRepo gameweek.Repository,
	pointsRepo scoring.Repository,
	clock clockwork.Clock,
	logger *logging.Logger,
) *LeaderboardService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeaderboardService{
		leagueRepo:   leagueRepo,
		gameweekRepo: gameweekRepo,
		pointsRepo:   pointsRepo,
		clock:        clock,
		logger:       logger,
	}
}

// Build ranks a league on the cumulative points of every finished gameweek up to upTo
// (upTo <= 0 means all finished gameweeks) and stores the standings under the latest
// finished gameweek. Movement compares against the table one finished gameweek earlier.
func (s *LeaderboardService) Build(ctx context.Context, leagueID string, upTo int) ([]league.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Build")
	defer span.End()

	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if _, exists, err := s.leagueRepo.GetByID(ctx, leagueID); err != nil {
		return nil, fmt.Errorf("get league by id: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	members, err := s.leagueRepo.ListMembers(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list league members: %w", err)
	}
	finished, err := s.gameweekRepo.ListFinished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list finished gameweeks: %w", err)
	}
	gameweeks := gameweek.FinishedNumbers(finished, upTo)
	if len(gameweeks) == 0 {
		return league.BuildLeaderboard(members, nil), nil
	}

	userIDs := make([]string, 0, len(members))
	for _, member := range members {
		userIDs = append(userIDs, member.UserID)
	}
	rows, err := s.pointsRepo.ListTotalsByUsers(ctx, userIDs, gameweeks)
	if err != nil {
		return nil, fmt.Errorf("list gameweek totals: %w", err)
	}

	latest := maxInt(gameweeks)
	previous := 0
	for _, number := range gameweeks {
		if number < latest && number > previous {
			previous = number
		}
	}

	current := league.BuildLeaderboard(members, sumTotals(rows, latest))
	if previous > 0 {
		current = league.ApplyMovement(current, league.BuildLeaderboard(members, sumTotals(rows, previous)))
	}

	now := s.clock.Now().UTC()
	for i := range current {
		current[i].LeagueID = leagueID
		current[i].Gameweek = latest
		current[i].CalculatedAt = now
	}

	if err := s.leagueRepo.ReplaceStandings(ctx, leagueID, latest, current); err != nil {
		return nil, fmt.Errorf("replace standings league=%s gameweek=%d: %w", leagueID, latest, err)
	}

	s.logger.InfoContext(ctx, "league leaderboard built",
		"league_id", leagueID,
		"gameweek", latest,
		"members", len(current),
	)
	return current, nil
}

// Standings returns stored standings for a league at a gameweek.
func (s *LeaderboardService) Standings(ctx context.Context, leagueID string, gameweekNumber int) ([]league.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Standings")
	defer span.End()

	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	items, err := s.leagueRepo.ListStandings(ctx, leagueID, gameweekNumber)
	if err != nil {
		return nil, fmt.Errorf("list standings league=%s gameweek=%d: %w", leagueID, gameweekNumber, err)
	}
	return items, nil
}

// sumTotals adds up totals per user for gameweeks up to and including upTo.
func sumTotals(rows []scoring.UserGameweekTotal, upTo int) map[string]int {
	out := make(map[string]int)
	for _, row := range rows {
		if row.Gameweek > upTo {
			continue
		}
		out[row.UserID] += row.TotalPoints
	}
	return out
}

func maxInt(items []int) int {
	out := 0
	for _, item := range items {
		if item > out {
			out = item
		}
	}
	return out
}
