package scoring

import (
	"errors"
	"fmt"
	"testing"

	"github.com/riskibarqy/fantasy-points/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-points/internal/domain/player"
	"github.com/riskibarqy/fantasy-points/internal/domain/playerstats"
)

func TestComputeSquadPoints_CaptainDoubled(t *testing.T) {
	t.Parallel()

	squad := testSquad()
	squad.CaptainID = "p6"
	stats := playedStats(squad, 90)
	stats["p6"] = playerstats.GameweekStat{PlayerID: "p6", Gameweek: 1, Minutes: 90, GoalsScored: 2, Assists: 1}

	result, err := NewAggregator(DefaultRules()).ComputeSquadPoints(squad, statList(stats))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	captain, ok := result.Player("p6")
	if !ok {
		t.Fatalf("captain missing from result")
	}
	if captain.RawPoints != 17 || captain.Multiplier != 2 || captain.FinalPoints != 34 {
		t.Fatalf("unexpected captain points: %+v", captain)
	}

	// ten other starters on 4 points each (2 playing + 2 for sixty minutes)
	if result.TotalPoints != 34+10*4 {
		t.Fatalf("total = %d, want %d", result.TotalPoints, 34+40)
	}
}

func TestComputeSquadPoints_TripleCaptain(t *testing.T) {
	t.Parallel()

	squad := testSquad()
	squad.Chip = fantasy.ChipTripleCaptain
	stats := playedStats(squad, 90)

	result, err := NewAggregator(DefaultRules()).ComputeSquadPoints(squad, statList(stats))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	captain, _ := result.Player(squad.CaptainID)
	if captain.Multiplier != 3 || captain.FinalPoints != 12 {
		t.Fatalf("unexpected captain points: %+v", captain)
	}
}

func TestComputeSquadPoints_ViceCaptainFallback(t *testing.T) {
	t.Parallel()

	squad := testSquad()
	stats := playedStats(squad, 90)
	delete(stats, squad.CaptainID)

	result, err := NewAggregator(DefaultRules()).ComputeSquadPoints(squad, statList(stats))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	captain, _ := result.Player(squad.CaptainID)
	vice, _ := result.Player(squad.ViceCaptainID)
	if captain.Multiplier != 1 || captain.FinalPoints != 0 {
		t.Fatalf("captain should revert to 1x: %+v", captain)
	}
	if vice.Multiplier != 2 || vice.FinalPoints != 8 {
		t.Fatalf("vice captain should inherit 2x: %+v", vice)
	}
	if result.TotalPoints != 8+9*4 {
		t.Fatalf("total = %d, want %d", result.TotalPoints, 8+9*4)
	}
}

func TestComputeSquadPoints_ViceInheritsTripleCaptain(t *testing.T) {
	t.Parallel()

	squad := testSquad()
	squad.Chip = fantasy.ChipTripleCaptain
	stats := playedStats(squad, 90)
	stats[squad.CaptainID] = playerstats.GameweekStat{PlayerID: squad.CaptainID, Gameweek: 1, Minutes: 0, GoalsScored: 1}

	result, err := NewAggregator(DefaultRules()).ComputeSquadPoints(squad, statList(stats))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vice, _ := result.Player(squad.ViceCaptainID)
	if vice.Multiplier != 3 {
		t.Fatalf("vice multiplier = %d, want 3", vice.Multiplier)
	}
}

func TestComputeSquadPoints_BenchAndMissingStats(t *testing.T) {
	t.Parallel()

	squad := testSquad()
	stats := playedStats(squad, 90)
	delete(stats, "p2")
	stats["p13"] = playerstats.GameweekStat{PlayerID: "p13", Gameweek: 1, Minutes: 90, GoalsScored: 3}
	stats["p99"] = playerstats.GameweekStat{PlayerID: "p99", Gameweek: 1, Minutes: 90, GoalsScored: 3}
	stats["p3"] = playerstats.GameweekStat{PlayerID: "p3", Gameweek: 2, Minutes: 90, GoalsScored: 3}

	result, err := NewAggregator(DefaultRules()).ComputeSquadPoints(squad, statList(stats))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bench, _ := result.Player("p13")
	if bench.Counted || bench.FinalPoints != 0 || bench.RawPoints == 0 {
		t.Fatalf("bench player should be scored but not counted: %+v", bench)
	}
	missing, _ := result.Player("p2")
	if missing.RawPoints != 0 || missing.FinalPoints != 0 {
		t.Fatalf("missing stat should contribute zero: %+v", missing)
	}
	otherGameweek, _ := result.Player("p3")
	if otherGameweek.RawPoints != 0 {
		t.Fatalf("stats from another gameweek must be ignored: %+v", otherGameweek)
	}
	// captain p6 doubled, p2 and p3 contribute nothing
	if result.TotalPoints != 8+8*4 {
		t.Fatalf("total = %d, want %d", result.TotalPoints, 8+8*4)
	}
	if len(result.Players) != fantasy.SquadSize {
		t.Fatalf("expected %d players, got %d", fantasy.SquadSize, len(result.Players))
	}
}

func TestComputeSquadPoints_InvalidSquad(t *testing.T) {
	t.Parallel()

	squad := testSquad()
	squad.CaptainID = "ghost"

	_, err := NewAggregator(DefaultRules()).ComputeSquadPoints(squad, nil)
	if !errors.Is(err, fantasy.ErrInvalidSquadInvariant) {
		t.Fatalf("expected ErrInvalidSquadInvariant, got %v", err)
	}
}

func TestComputeSquadPoints_UnknownPositionRule(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	delete(rules.Positions, player.PositionForward)

	squad := testSquad()
	_, err := NewAggregator(rules).ComputeSquadPoints(squad, statList(playedStats(squad, 90)))
	if !errors.Is(err, ErrUnknownPosition) {
		t.Fatalf("expected ErrUnknownPosition, got %v", err)
	}
}

func TestComputeSquadPoints_FormationSubstitution(t *testing.T) {
	t.Parallel()

	squad := testSquad()
	stats := playedStats(squad, 90)
	// starting goalkeeper p1 and defender p2 did not play
	delete(stats, "p1")
	delete(stats, "p2")

	aggregator := NewAggregator(DefaultRules(), WithSubstitutor(NewFormationSubstitution(fantasy.DefaultRules())))
	result, err := aggregator.ComputeSquadPoints(squad, statList(stats))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Substitutions) != 2 {
		t.Fatalf("expected 2 substitutions, got %+v", result.Substitutions)
	}
	if result.Substitutions[0] != (Substitution{OutPlayerID: "p1", InPlayerID: "p12"}) {
		t.Fatalf("goalkeeper must be replaced by bench goalkeeper: %+v", result.Substitutions[0])
	}
	if result.Substitutions[1] != (Substitution{OutPlayerID: "p2", InPlayerID: "p13"}) {
		t.Fatalf("defender must be replaced by first eligible outfield bench player: %+v", result.Substitutions[1])
	}

	benchKeeper, _ := result.Player("p12")
	if !benchKeeper.Counted {
		t.Fatalf("substituted goalkeeper should count: %+v", benchKeeper)
	}
	// 11 players on 4 points, captain doubled
	if result.TotalPoints != 12*4 {
		t.Fatalf("total = %d, want %d", result.TotalPoints, 12*4)
	}
}

func TestComputeSquadPoints_FormationSubstitutionKeepsMinimums(t *testing.T) {
	t.Parallel()

	// 3-5-2: losing a defender must bring on the bench defender, not the forward ahead of him.
	squad := testSquad()
	squad.Picks = reorder(squad.Picks, []string{"p1", "p2", "p3", "p4", "p6", "p7", "p8", "p9", "p14", "p10", "p11", "p12", "p15", "p5", "p13"})
	squad.Formation = "3-5-2"
	stats := playedStats(squad, 90)
	delete(stats, "p2")

	aggregator := NewAggregator(DefaultRules(), WithSubstitutor(NewFormationSubstitution(fantasy.DefaultRules())))
	result, err := aggregator.ComputeSquadPoints(squad, statList(stats))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Substitutions) != 1 || result.Substitutions[0].InPlayerID != "p5" {
		t.Fatalf("expected defender p5 to come on, got %+v", result.Substitutions)
	}
}

func TestComputeSquadPoints_NoSubstitutionByDefault(t *testing.T) {
	t.Parallel()

	squad := testSquad()
	stats := playedStats(squad, 90)
	delete(stats, "p2")

	result, err := NewAggregator(DefaultRules()).ComputeSquadPoints(squad, statList(stats))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Substitutions) != 0 {
		t.Fatalf("expected no substitutions, got %+v", result.Substitutions)
	}
}

func TestExportBreakdown(t *testing.T) {
	t.Parallel()

	squad := testSquad()
	result, err := NewAggregator(DefaultRules()).ComputeSquadPoints(squad, statList(playedStats(squad, 90)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := ExportBreakdown(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	export := NewBreakdownExport(result)
	if export.Captain != squad.CaptainID {
		t.Fatalf("captain = %q, want %q", export.Captain, squad.CaptainID)
	}
	if export.Players["p1"][KeyPlaying] != 2 || export.Players["p1"][KeySixtyMinutes] != 2 {
		t.Fatalf("unexpected breakdown for p1: %v", export.Players["p1"])
	}
	if len(raw) == 0 || raw[0] != '{' {
		t.Fatalf("unexpected export payload: %s", raw)
	}
}

// testSquad is a 4-4-2 XI (p1..p11) with bench GK p12, DEF p13, MID p14, FWD p15.
func testSquad() fantasy.Squad {
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
		ID:            "sq-1",
		UserID:        "u1",
		Gameweek:      1,
		Picks:         picks,
		CaptainID:     "p6",
		ViceCaptainID: "p10",
		Formation:     "4-4-2",
	}
}

func playedStats(squad fantasy.Squad, minutes int) map[string]playerstats.GameweekStat {
	out := make(map[string]playerstats.GameweekStat, len(squad.Picks))
	for _, pick := range squad.Picks {
		out[pick.PlayerID] = playerstats.GameweekStat{PlayerID: pick.PlayerID, Gameweek: squad.Gameweek, Minutes: minutes}
	}
	return out
}

func statList(stats map[string]playerstats.GameweekStat) []playerstats.GameweekStat {
	out := make([]playerstats.GameweekStat, 0, len(stats))
	for _, item := range stats {
		out = append(out, item)
	}
	return out
}

func reorder(picks []fantasy.SquadPick, order []string) []fantasy.SquadPick {
	byID := make(map[string]fantasy.SquadPick, len(picks))
	for _, pick := range picks {
		byID[pick.PlayerID] = pick
	}
	out := make([]fantasy.SquadPick, 0, len(order))
	for _, playerID := range order {
		out = append(out, byID[playerID])
	}
	return out
}
