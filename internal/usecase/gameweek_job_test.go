package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-points/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-points/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-points/internal/domain/league"
	gameweekmock "github.com/riskibarqy/fantasy-points/internal/mocks/domain/gameweek"
	leaguemock "github.com/riskibarqy/fantasy-points/internal/mocks/domain/league"
	"github.com/riskibarqy/fantasy-points/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

type pipelineRecorder struct {
	mu    sync.Mutex
	steps []string

	squadUsers  []string
	squadReport BatchReport
	buildErr    map[string]error
}

func (r *pipelineRecorder) record(step string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, step)
}

func (r *pipelineRecorder) RecomputeGameweek(_ context.Context, gw int) (RecomputeResult, error) {
	r.record("players")
	return RecomputeResult{Gameweek: gw, Players: 4}, nil
}

func (r *pipelineRecorder) ComputeUsersGameweek(_ context.Context, userIDs []string, gw int) (BatchReport, error) {
	r.record("squads")
	r.squadUsers = append([]string(nil), userIDs...)
	report := r.squadReport
	report.Gameweek = gw
	return report, nil
}

func (r *pipelineRecorder) Build(_ context.Context, leagueID string, _ int) ([]league.Standing, error) {
	r.record("leaderboard:" + leagueID)
	if err := r.buildErr[leagueID]; err != nil {
		return nil, err
	}
	return []league.Standing{{LeagueID: leagueID, UserID: "u1", Rank: 1}}, nil
}

type recordingMetrics struct {
	statuses []string
	failures int
}

func (m *recordingMetrics) ObserveJobRun(_ string, status string, _ time.Duration) {
	m.statuses = append(m.statuses, status)
}

func (m *recordingMetrics) AddSquadFailures(count int) {
	m.failures += count
}

func newTestGameweekJob(t *testing.T, recorder *pipelineRecorder, metrics *recordingMetrics) (*GameweekJob, *gameweekmock.Repository, *leaguemock.Repository) {
	t.Helper()

	gameweekRepo := gameweekmock.NewRepository(t)
	leagueRepo := leaguemock.NewRepository(t)
	job := NewGameweekJob(GameweekJobDeps{
		Gameweeks:    gameweekRepo,
		Leagues:      leagueRepo,
		PlayerPoints: recorder,
		SquadPoints:  recorder,
		Leaderboards: recorder,
		Metrics:      metrics,
		Logger:       logging.NewNop(),
	}, time.Minute)
	return job, gameweekRepo, leagueRepo
}

func TestGameweekJob_FinalizeGameweek_RunsPipelineInOrder(t *testing.T) {
	t.Parallel()

	recorder := &pipelineRecorder{}
	metrics := &recordingMetrics{}
	job, gameweekRepo, leagueRepo := newTestGameweekJob(t, recorder, metrics)

	gameweekRepo.On("Get", mock.Anything, 5).
		Return(gameweek.Gameweek{Number: 5, Status: gameweek.StatusFinished}, true, nil).
		Once()
	leagueRepo.On("List", mock.Anything).
		Return([]league.League{{ID: "l1"}, {ID: "l2"}}, nil).
		Once()
	leagueRepo.On("ListMembers", mock.Anything, "l1").
		Return([]league.Membership{{LeagueID: "l1", UserID: "u1"}, {LeagueID: "l1", UserID: "u2"}}, nil).
		Once()
	leagueRepo.On("ListMembers", mock.Anything, "l2").
		Return([]league.Membership{{LeagueID: "l2", UserID: "u2"}}, nil).
		Once()

	report, err := job.FinalizeGameweek(context.Background(), 5)
	if err != nil {
		t.Fatalf("finalize gameweek: %v", err)
	}

	want := []string{"players", "squads", "leaderboard:l1", "leaderboard:l2"}
	if len(recorder.steps) != len(want) {
		t.Fatalf("unexpected steps: %v", recorder.steps)
	}
	for i := range want {
		if recorder.steps[i] != want[i] {
			t.Fatalf("step %d: expected %s, got %s", i, want[i], recorder.steps[i])
		}
	}
	if len(recorder.squadUsers) != 3 {
		t.Fatalf("expected member ids from every league, got %v", recorder.squadUsers)
	}
	if !report.Finalized || report.Players != 4 || len(report.Leagues) != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(metrics.statuses) != 1 || metrics.statuses[0] != jobStatusSuccess {
		t.Fatalf("unexpected job statuses: %v", metrics.statuses)
	}
}

func TestGameweekJob_FinalizeGameweek_PartialFailures(t *testing.T) {
	t.Parallel()

	recorder := &pipelineRecorder{
		squadReport: BatchReport{
			Succeeded: 1,
			Failures: []UserFailure{{
				UserID: "u2",
				Err:    fantasy.ErrInvalidSquadInvariant,
			}},
		},
		buildErr: map[string]error{"l2": errors.New("standings store unavailable")},
	}
	metrics := &recordingMetrics{}
	job, gameweekRepo, leagueRepo := newTestGameweekJob(t, recorder, metrics)

	gameweekRepo.On("Get", mock.Anything, 7).
		Return(gameweek.Gameweek{Number: 7, Status: gameweek.StatusFinished}, true, nil).
		Once()
	leagueRepo.On("List", mock.Anything).Return([]league.League{{ID: "l1"}, {ID: "l2"}}, nil).Once()
	leagueRepo.On("ListMembers", mock.Anything, mock.Anything).
		Return([]league.Membership{{UserID: "u1"}, {UserID: "u2"}}, nil).
		Twice()

	report, err := job.FinalizeGameweek(context.Background(), 7)
	if err == nil {
		t.Fatalf("expected leaderboard error")
	}
	if len(report.Leagues) != 2 || report.Leagues[0].Err != nil || report.Leagues[1].Err == nil {
		t.Fatalf("unexpected league reports: %+v", report.Leagues)
	}
	if metrics.failures != 1 {
		t.Fatalf("expected one squad failure, got %d", metrics.failures)
	}
	if len(metrics.statuses) != 1 || metrics.statuses[0] != jobStatusPartial {
		t.Fatalf("unexpected job statuses: %v", metrics.statuses)
	}
}

func TestGameweekJob_FinalizeGameweek_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		item    gameweek.Gameweek
		exists  bool
		wantErr error
	}{
		{name: "unknown gameweek", exists: false, wantErr: ErrNotFound},
		{name: "still live", item: gameweek.Gameweek{Number: 3, Status: gameweek.StatusLive}, exists: true, wantErr: ErrGameweekNotFinished},
	}

	for _, tc := range tests {
		recorder := &pipelineRecorder{}
		job, gameweekRepo, _ := newTestGameweekJob(t, recorder, &recordingMetrics{})
		gameweekRepo.On("Get", mock.Anything, 3).Return(tc.item, tc.exists, nil).Once()

		_, err := job.FinalizeGameweek(context.Background(), 3)
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
		if len(recorder.steps) != 0 {
			t.Fatalf("%s: pipeline must not run, got %v", tc.name, recorder.steps)
		}
	}
}

func TestGameweekJob_RunCurrent(t *testing.T) {
	t.Parallel()

	t.Run("no current gameweek", func(t *testing.T) {
		t.Parallel()

		recorder := &pipelineRecorder{}
		metrics := &recordingMetrics{}
		job, gameweekRepo, _ := newTestGameweekJob(t, recorder, metrics)
		gameweekRepo.On("Current", mock.Anything).Return(gameweek.Gameweek{}, false, nil).Once()

		if _, err := job.RunCurrent(context.Background()); err != nil {
			t.Fatalf("run current: %v", err)
		}
		if len(recorder.steps) != 0 {
			t.Fatalf("expected no pipeline steps, got %v", recorder.steps)
		}
		if len(metrics.statuses) != 1 || metrics.statuses[0] != jobStatusSkipped {
			t.Fatalf("unexpected job statuses: %v", metrics.statuses)
		}
	})

	t.Run("live gameweek skips leaderboards", func(t *testing.T) {
		t.Parallel()

		recorder := &pipelineRecorder{}
		job, gameweekRepo, leagueRepo := newTestGameweekJob(t, recorder, &recordingMetrics{})
		gameweekRepo.On("Current", mock.Anything).
			Return(gameweek.Gameweek{Number: 9, Status: gameweek.StatusLive}, true, nil).
			Once()
		gameweekRepo.On("ListFinished", mock.Anything).Return([]gameweek.Gameweek(nil), nil).Once()
		leagueRepo.On("List", mock.Anything).Return([]league.League{{ID: "l1"}}, nil).Once()
		leagueRepo.On("ListMembers", mock.Anything, "l1").Return([]league.Membership{{UserID: "u1"}}, nil).Once()

		report, err := job.RunCurrent(context.Background())
		if err != nil {
			t.Fatalf("run current: %v", err)
		}
		if report.Finalized || len(report.Leagues) != 0 {
			t.Fatalf("live run must not build leaderboards: %+v", report)
		}
		if len(recorder.steps) != 2 || recorder.steps[0] != "players" || recorder.steps[1] != "squads" {
			t.Fatalf("unexpected steps: %v", recorder.steps)
		}
	})
	t.Run("finalizes missed finished gameweeks before the live one", func(t *testing.T) {
		t.Parallel()

		recorder := &pipelineRecorder{}
		job, gameweekRepo, leagueRepo := newTestGameweekJob(t, recorder, &recordingMetrics{})
		live := gameweek.Gameweek{Number: 9, Status: gameweek.StatusLive}
		missed := gameweek.Gameweek{Number: 8, Status: gameweek.StatusFinished}
		done := gameweek.Gameweek{Number: 7, Status: gameweek.StatusFinished}
		gameweekRepo.On("Current", mock.Anything).Return(live, true, nil).Twice()
		gameweekRepo.On("ListFinished", mock.Anything).Return([]gameweek.Gameweek{missed, done}, nil).Twice()
		gameweekRepo.On("Get", mock.Anything, 8).Return(missed, true, nil).Once()
		leagueRepo.On("List", mock.Anything).Return([]league.League{{ID: "l1"}, {ID: "empty"}}, nil)
		leagueRepo.On("ListMembers", mock.Anything, "l1").Return([]league.Membership{{UserID: "u1"}}, nil)
		leagueRepo.On("ListMembers", mock.Anything, "empty").Return([]league.Membership(nil), nil)
		leagueRepo.On("ListStandings", mock.Anything, "l1", 7).
			Return([]league.Standing{{LeagueID: "l1", UserID: "u1", Gameweek: 7, Rank: 1}}, nil).
			Once()
		leagueRepo.On("ListStandings", mock.Anything, "l1", 8).Return([]league.Standing(nil), nil).Once()

		report, err := job.RunCurrent(context.Background())
		if err != nil {
			t.Fatalf("run current: %v", err)
		}
		if report.Gameweek != 9 || report.Finalized {
			t.Fatalf("expected live report for gameweek 9, got %+v", report)
		}
		want := []string{"players", "squads", "leaderboard:l1", "leaderboard:empty", "players", "squads"}
		if len(recorder.steps) != len(want) {
			t.Fatalf("unexpected steps: %v", recorder.steps)
		}
		for i := range want {
			if recorder.steps[i] != want[i] {
				t.Fatalf("unexpected steps: %v", recorder.steps)
			}
		}

		// Settled gameweeks are not checked again.
		if _, err := job.RunCurrent(context.Background()); err != nil {
			t.Fatalf("second run current: %v", err)
		}
		if len(recorder.steps) != len(want)+2 {
			t.Fatalf("expected only the live pipeline on the second run, got %v", recorder.steps)
		}
	})

	t.Run("missed gameweek failure does not block the live run", func(t *testing.T) {
		t.Parallel()

		recorder := &pipelineRecorder{}
		job, gameweekRepo, leagueRepo := newTestGameweekJob(t, recorder, &recordingMetrics{})
		gameweekRepo.On("Current", mock.Anything).
			Return(gameweek.Gameweek{Number: 9, Status: gameweek.StatusLive}, true, nil).
			Once()
		gameweekRepo.On("ListFinished", mock.Anything).Return(nil, errors.New("db down")).Once()
		leagueRepo.On("List", mock.Anything).Return([]league.League{{ID: "l1"}}, nil).Once()
		leagueRepo.On("ListMembers", mock.Anything, "l1").Return([]league.Membership{{UserID: "u1"}}, nil).Once()

		report, err := job.RunCurrent(context.Background())
		if err == nil {
			t.Fatalf("expected the catch-up error to be reported")
		}
		if report.Gameweek != 9 {
			t.Fatalf("expected live report for gameweek 9, got %+v", report)
		}
		if len(recorder.steps) != 2 || recorder.steps[0] != "players" || recorder.steps[1] != "squads" {
			t.Fatalf("unexpected steps: %v", recorder.steps)
		}
	})
}
