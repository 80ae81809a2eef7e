package playerstats

import (
	"fmt"
	"time"
)

// GameweekStat is the raw per-player record for one gameweek, keyed by (PlayerID, Gameweek).
// BPS, Bonus and TotalPoints are derived fields written by the recompute job only.
type GameweekStat struct {
	PlayerID  string
	Gameweek  int
	FixtureID string

	Minutes         int
	GoalsScored     int
	Assists         int
	CleanSheets     int
	GoalsConceded   int
	OwnGoals        int
	PenaltiesSaved  int
	PenaltiesMissed int
	YellowCards     int
	RedCards        int
	Saves           int

	Tackles                int
	Interceptions          int
	Clearances             int
	Blocks                 int
	Recoveries             int
	KeyPasses              int
	BigChancesCreated      int
	SuccessfulDribbles     int
	Fouls                  int
	Offsides               int
	ErrorsLeadingToGoal    int
	ErrorsLeadingToAttempt int

	BPS         int
	Bonus       int
	TotalPoints int
	UpdatedAt   time.Time
}

// Derived carries the recomputed fields for one stat record.
type Derived struct {
	PlayerID    string
	Gameweek    int
	BPS         int
	Bonus       int
	TotalPoints int
}

// Key identifies a stat record.
type Key struct {
	PlayerID string
	Gameweek int
}

func (s GameweekStat) Key() Key {
	return Key{PlayerID: s.PlayerID, Gameweek: s.Gameweek}
}

// CBI is clearances, blocks and interceptions combined.
func (s GameweekStat) CBI() int {
	return s.Clearances + s.Blocks + s.Interceptions
}

func (s GameweekStat) Validate() error {
	if s.PlayerID == "" {
		return fmt.Errorf("player id is required")
	}
	if s.Gameweek <= 0 {
		return fmt.Errorf("gameweek must be greater than zero")
	}
	counters := map[string]int{
		"minutes":          s.Minutes,
		"goals_scored":     s.GoalsScored,
		"assists":          s.Assists,
		"clean_sheets":     s.CleanSheets,
		"goals_conceded":   s.GoalsConceded,
		"own_goals":        s.OwnGoals,
		"penalties_saved":  s.PenaltiesSaved,
		"penalties_missed": s.PenaltiesMissed,
		"yellow_cards":     s.YellowCards,
		"red_cards":        s.RedCards,
		"saves":            s.Saves,
	}
	for name, value := range counters {
		if value < 0 {
			return fmt.Errorf("%s must be >= 0 for player %s", name, s.PlayerID)
		}
	}
	return nil
}

// IndexByPlayer maps stats by player id. When the same player appears more than once the
// last record wins.
func IndexByPlayer(stats []GameweekStat) map[string]GameweekStat {
	out := make(map[string]GameweekStat, len(stats))
	for _, item := range stats {
		out[item.PlayerID] = item
	}
	return out
}

// GroupByFixture groups stats by fixture id. Records without a fixture id are skipped.
func GroupByFixture(stats []GameweekStat) map[string][]GameweekStat {
	out := make(map[string][]GameweekStat)
	for _, item := range stats {
		if item.FixtureID == "" {
			continue
		}
		out[item.FixtureID] = append(out[item.FixtureID], item)
	}
	return out
}
