package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fantasy-points/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-points/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-points/internal/domain/player"
	"github.com/riskibarqy/fantasy-points/internal/domain/playerstats"
	"github.com/riskibarqy/fantasy-points/internal/domain/scoring"
	fantasymock "github.com/riskibarqy/fantasy-points/internal/mocks/domain/fantasy"
	gameweekmock "github.com/riskibarqy/fantasy-points/internal/mocks/domain/gameweek"
	leaguemock "github.com/riskibarqy/fantasy-points/internal/mocks/domain/league"
	playermock "github.com/riskibarqy/fantasy-points/internal/mocks/domain/player"
	playerstatsmock "github.com/riskibarqy/fantasy-points/internal/mocks/domain/playerstats"
	scoringmock "github.com/riskibarqy/fantasy-points/internal/mocks/domain/scoring"
	"github.com/riskibarqy/fantasy-points/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

type squadPointsFixture struct {
	squads    *fantasymock.Repository
	stats     *playerstatsmock.Repository
	players   *playermock.Repository
	gameweeks *gameweekmock.Repository
	points    *scoringmock.Repository
	leagues   *leaguemock.Repository
	clock     *clockwork.FakeClock
	service   *SquadPointsService
}

func newSquadPointsFixture(t *testing.T) squadPointsFixture {
	t.Helper()

	f := squadPointsFixture{
		squads:    fantasymock.NewRepository(t),
		stats:     playerstatsmock.NewRepository(t),
		players:   playermock.NewRepository(t),
		gameweeks: gameweekmock.NewRepository(t),
		points:    scoringmock.NewRepository(t),
		leagues:   leaguemock.NewRepository(t),
		clock:     clockwork.NewFakeClockAt(time.Date(2025, time.September, 1, 20, 0, 0, 0, time.UTC)),
	}
	f.service = NewSquadPointsService(SquadPointsRepositories{
		Squads:    f.squads,
		Stats:     f.stats,
		Players:   f.players,
		Gameweeks: f.gameweeks,
		Points:    f.points,
		Leagues:   f.leagues,
	}, scoring.NewAggregator(scoring.DefaultRules()), 4, f.clock, logging.NewNop())
	return f
}

func TestSquadPointsService_ComputeUsersGameweek(t *testing.T) {
	t.Parallel()

	f := newSquadPointsFixture(t)
	ctx := context.Background()

	valid := usecaseSquad("u1", 2)
	broken := usecaseSquad("u2", 2)
	broken.CaptainID = "ghost"
	finalized := usecaseSquad("u4", 2)

	f.gameweeks.On("Get", mock.Anything, 2).
		Return(gameweek.Gameweek{Number: 2, Status: gameweek.StatusFinished}, true, nil).
		Once()
	f.squads.On("ListByUsersAndGameweek", mock.Anything, []string{"u1", "u2", "u3", "u4"}, 2).
		Return([]fantasy.Squad{valid, broken, finalized}, nil).
		Once()

	stats := make([]playerstats.GameweekStat, 0, fantasy.SquadSize)
	for _, pick := range valid.Picks {
		stats = append(stats, playerstats.GameweekStat{PlayerID: pick.PlayerID, Gameweek: 2, Minutes: 90})
	}
	f.stats.On("ListByGameweekAndPlayers", mock.Anything, 2, mock.Anything).Return(stats, nil).Once()
	f.players.On("GetByIDs", mock.Anything, mock.Anything).Return(poolPlayers(valid), nil).Once()

	f.points.On("GetResult", mock.Anything, "u1", 2).Return(scoring.GameweekPointsResult{}, false, nil).Once()
	f.points.On("GetResult", mock.Anything, "u2", 2).Return(scoring.GameweekPointsResult{}, false, nil).Once()
	f.points.On("GetResult", mock.Anything, "u4", 2).
		Return(scoring.GameweekPointsResult{UserID: "u4", Gameweek: 2, TotalPoints: 61, Finalized: true}, true, nil).
		Once()
	f.points.On("UpsertResult", mock.Anything, mock.MatchedBy(func(result scoring.GameweekPointsResult) bool {
		return result.UserID == "u1" &&
			result.Finalized &&
			result.TotalPoints == 12*4 &&
			result.CalculatedAt.Equal(f.clock.Now().UTC())
	})).Return(nil).Once()

	report, err := f.service.ComputeUsersGameweek(ctx, []string{"u1", "u2", "u3", "u4", "u1"}, 2)
	if err != nil {
		t.Fatalf("compute users gameweek: %v", err)
	}
	if report.Succeeded != 1 {
		t.Fatalf("succeeded = %d, want 1", report.Succeeded)
	}
	if report.Skipped != 2 {
		t.Fatalf("skipped = %d, want 2 (no squad and finalized)", report.Skipped)
	}
	if len(report.Failures) != 1 || report.Failures[0].UserID != "u2" {
		t.Fatalf("unexpected failures: %+v", report.Failures)
	}
	if !errors.Is(report.Failures[0].Err, fantasy.ErrInvalidSquadInvariant) {
		t.Fatalf("expected ErrInvalidSquadInvariant, got %v", report.Failures[0].Err)
	}
}

func TestSquadPointsService_ComputeUsersGameweek_StoreFailureIsolated(t *testing.T) {
	t.Parallel()

	f := newSquadPointsFixture(t)
	a := usecaseSquad("a", 1)
	b := usecaseSquad("b", 1)

	f.gameweeks.On("Get", mock.Anything, 1).
		Return(gameweek.Gameweek{Number: 1, Status: gameweek.StatusLive}, true, nil).
		Once()
	f.squads.On("ListByUsersAndGameweek", mock.Anything, []string{"a", "b"}, 1).
		Return([]fantasy.Squad{a, b}, nil).
		Once()
	f.stats.On("ListByGameweekAndPlayers", mock.Anything, 1, mock.Anything).Return([]playerstats.GameweekStat{}, nil).Once()
	f.players.On("GetByIDs", mock.Anything, mock.Anything).Return(poolPlayers(a), nil).Once()
	f.points.On("GetResult", mock.Anything, mock.Anything, 1).Return(scoring.GameweekPointsResult{}, false, nil).Twice()
	f.points.On("UpsertResult", mock.Anything, mock.MatchedBy(func(r scoring.GameweekPointsResult) bool {
		return r.UserID == "a" && !r.Finalized
	})).Return(errors.New("connection reset")).Once()
	f.points.On("UpsertResult", mock.Anything, mock.MatchedBy(func(r scoring.GameweekPointsResult) bool {
		return r.UserID == "b"
	})).Return(nil).Once()

	report, err := f.service.ComputeUsersGameweek(context.Background(), []string{"a", "b"}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Succeeded != 1 || report.Failed() != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if !errors.Is(report.Failures[0].Err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", report.Failures[0].Err)
	}
}

func TestSquadPointsService_ComputeUsersGameweek_UnknownGameweek(t *testing.T) {
	t.Parallel()

	f := newSquadPointsFixture(t)
	f.gameweeks.On("Get", mock.Anything, 9).Return(gameweek.Gameweek{}, false, nil).Once()

	_, err := f.service.ComputeUsersGameweek(context.Background(), []string{"u1"}, 9)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSquadPointsService_GetUserGameweekPoints(t *testing.T) {
	t.Parallel()

	t.Run("stored result", func(t *testing.T) {
		f := newSquadPointsFixture(t)
		stored := scoring.GameweekPointsResult{UserID: "u1", Gameweek: 3, TotalPoints: 70, Finalized: true}
		f.points.On("GetResult", mock.Anything, "u1", 3).Return(stored, true, nil).Once()

		got, err := f.service.GetUserGameweekPoints(context.Background(), "u1", 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.TotalPoints != 70 || !got.Finalized {
			t.Fatalf("expected stored snapshot, got %+v", got)
		}
	})

	t.Run("live computation", func(t *testing.T) {
		f := newSquadPointsFixture(t)
		squad := usecaseSquad("u1", 3)
		captainStat := playerstats.GameweekStat{PlayerID: squad.CaptainID, Gameweek: 3, Minutes: 90, GoalsScored: 2, Assists: 1}

		f.points.On("GetResult", mock.Anything, "u1", 3).Return(scoring.GameweekPointsResult{}, false, nil).Once()
		f.gameweeks.On("Get", mock.Anything, 3).Return(gameweek.Gameweek{Number: 3, Status: gameweek.StatusLive}, true, nil).Once()
		f.squads.On("GetByUserAndGameweek", mock.Anything, "u1", 3).Return(squad, true, nil).Once()
		f.stats.On("ListByGameweekAndPlayers", mock.Anything, 3, squad.PlayerIDs()).
			Return([]playerstats.GameweekStat{captainStat}, nil).
			Once()
		f.players.On("GetByIDs", mock.Anything, squad.PlayerIDs()).Return(poolPlayers(squad), nil).Once()

		got, err := f.service.GetUserGameweekPoints(context.Background(), "u1", 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.TotalPoints != 34 || got.Finalized {
			t.Fatalf("expected live total 34, got %+v", got)
		}
	})

	t.Run("missing squad", func(t *testing.T) {
		f := newSquadPointsFixture(t)
		f.points.On("GetResult", mock.Anything, "u9", 3).Return(scoring.GameweekPointsResult{}, false, nil).Once()
		f.gameweeks.On("Get", mock.Anything, 3).Return(gameweek.Gameweek{Number: 3, Status: gameweek.StatusLive}, true, nil).Once()
		f.squads.On("GetByUserAndGameweek", mock.Anything, "u9", 3).Return(fantasy.Squad{}, false, nil).Once()

		_, err := f.service.GetUserGameweekPoints(context.Background(), "u9", 3)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

// usecaseSquad builds a 4-4-2 squad whose captain is the midfielder in slot 6.
func usecaseSquad(userID string, gw int) fantasy.Squad {
	positions := []player.Position{
		player.PositionGoalkeeper,
		player.PositionDefender, player.PositionDefender, player.PositionDefender, player.PositionDefender,
		player.PositionMidfielder, player.PositionMidfielder, player.PositionMidfielder, player.PositionMidfielder,
		player.PositionForward, player.PositionForward,
		player.PositionGoalkeeper, player.PositionDefender, player.PositionMidfielder, player.PositionForward,
	}
	picks := make([]fantasy.SquadPick, 0, len(positions))
	for i, pos := range positions {
		picks = append(picks, fantasy.SquadPick{PlayerID: fmt.Sprintf("p%d", i+1), Position: pos})
	}
	return fantasy.Squad{
		ID:            "sq-" + userID,
		UserID:        userID,
		Gameweek:      gw,
		Picks:         picks,
		CaptainID:     "p6",
		ViceCaptainID: "p10",
		Formation:     "4-4-2",
	}
}

func poolPlayers(squad fantasy.Squad) []player.Player {
	out := make([]player.Player, 0, len(squad.Picks))
	for _, pick := range squad.Picks {
		out = append(out, player.Player{ID: pick.PlayerID, Position: pick.Position})
	}
	return out
}
