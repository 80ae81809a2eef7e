package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-points/internal/domain/player"
	"github.com/riskibarqy/fantasy-points/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-points/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-points/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

const defaultBonusWorkers = 4

// PlayerPointsService recomputes the derived fields of every stat record in a gameweek.
type PlayerPointsService struct {
	statsRepo    playerstats.Repository
	playerRepo   player.Repository
	rules        scoring.Rules
	bonusWorkers int
	logger       *logging.Logger
}

type RecomputeResult struct {
	Gameweek int
	Players  int
	Fixtures int
	Derived  []playerstats.Derived
}

func NewPlayerPointsService(
	statsRepo playerstats.Repository,
	playerRepo player.Repository,
	rules scoring.Rules,
	bonusWorkers int,
	logger *logging.Logger,
) *PlayerPointsService {
	if bonusWorkers <= 0 {
		bonusWorkers = defaultBonusWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerPointsService{
		statsRepo:    statsRepo,
		playerRepo:   playerRepo,
		rules:        rules,
		bonusWorkers: bonusWorkers,
		logger:       logger,
	}
}

// RecomputeGameweek computes BPS, allocates bonus per fixture, scores every player and
// writes the derived fields back in one explicit step. Bonus allocation for every
// fixture completes before any player is scored.
func (s *PlayerPointsService) RecomputeGameweek(ctx context.Context, gameweek int) (RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerPointsService.RecomputeGameweek", attribute.Int("gameweek", gameweek))
	defer span.End()

	if gameweek <= 0 {
		return RecomputeResult{}, fmt.Errorf("%w: gameweek must be greater than zero", ErrInvalidInput)
	}

	stats, err := s.statsRepo.ListByGameweek(ctx, gameweek)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("list stats by gameweek=%d: %w", gameweek, err)
	}
	result := RecomputeResult{Gameweek: gameweek}
	if len(stats) == 0 {
		return result, nil
	}

	positions, err := s.loadPositions(ctx, stats)
	if err != nil {
		return RecomputeResult{}, err
	}

	bpsByPlayer := make(map[string]int, len(stats))
	for _, item := range stats {
		bps, err := s.rules.ComputeBPS(positions[item.PlayerID], item)
		if err != nil {
			return RecomputeResult{}, fmt.Errorf("compute bps player=%s: %w", item.PlayerID, err)
		}
		bpsByPlayer[item.PlayerID] = bps
	}

	fixtures := playerstats.GroupByFixture(stats)
	bonusByPlayer, err := s.allocateFixtureBonus(ctx, fixtures, bpsByPlayer)
	if err != nil {
		return RecomputeResult{}, err
	}

	derived := make([]playerstats.Derived, 0, len(stats))
	for _, item := range stats {
		if item.FixtureID != "" {
			item.Bonus = bonusByPlayer[item.PlayerID]
		}
		score, err := s.rules.ScorePlayer(positions[item.PlayerID], item)
		if err != nil {
			return RecomputeResult{}, fmt.Errorf("score player=%s: %w", item.PlayerID, err)
		}
		derived = append(derived, playerstats.Derived{
			PlayerID:    item.PlayerID,
			Gameweek:    gameweek,
			BPS:         bpsByPlayer[item.PlayerID],
			Bonus:       item.Bonus,
			TotalPoints: score.Points,
		})
	}
	sort.Slice(derived, func(i, j int) bool {
		return derived[i].PlayerID < derived[j].PlayerID
	})

	if err := s.statsRepo.UpdateDerived(ctx, gameweek, derived); err != nil {
		return RecomputeResult{}, fmt.Errorf("update derived stats gameweek=%d: %w", gameweek, err)
	}

	result.Players = len(derived)
	result.Fixtures = len(fixtures)
	result.Derived = derived
	s.logger.InfoContext(ctx, "player points recomputed",
		"gameweek", gameweek,
		"players", result.Players,
		"fixtures", result.Fixtures,
	)
	return result, nil
}

func (s *PlayerPointsService) loadPositions(ctx context.Context, stats []playerstats.GameweekStat) (map[string]player.Position, error) {
	playerIDs := make([]string, 0, len(stats))
	for _, item := range stats {
		playerIDs = append(playerIDs, item.PlayerID)
	}

	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}

	positions := make(map[string]player.Position, len(players))
	for _, item := range players {
		positions[item.ID] = item.Position
	}
	for _, playerID := range playerIDs {
		if _, ok := positions[playerID]; !ok {
			return nil, fmt.Errorf("%w: no position for player %s", scoring.ErrUnknownPosition, playerID)
		}
	}
	return positions, nil
}

// allocateFixtureBonus runs one allocation per fixture. Only players with minutes take part.
func (s *PlayerPointsService) allocateFixtureBonus(
	ctx context.Context,
	fixtures map[string][]playerstats.GameweekStat,
	bpsByPlayer map[string]int,
) (map[string]int, error) {
	var mu sync.Mutex
	out := make(map[string]int, len(bpsByPlayer))

	p := pool.New().WithMaxGoroutines(s.bonusWorkers).WithErrors().WithContext(ctx)
	for fixtureID, items := range fixtures {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("allocate bonus fixture=%s: %w", fixtureID, err)
			}

			scores := make([]scoring.BPSScore, 0, len(items))
			for _, item := range items {
				if item.Minutes <= 0 {
					continue
				}
				scores = append(scores, scoring.BPSScore{PlayerID: item.PlayerID, BPS: bpsByPlayer[item.PlayerID]})
			}
			awards := s.rules.AllocateBonus(scores)

			mu.Lock()
			defer mu.Unlock()
			for playerID, bonus := range awards {
				out[playerID] = bonus
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
