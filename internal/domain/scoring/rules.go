package scoring

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/fantasy-points/internal/domain/player"
	"github.com/riskibarqy/fantasy-points/internal/domain/playerstats"
)

var ErrUnknownPosition = errors.New("unknown player position")

// PositionRules holds the position-dependent point values.
type PositionRules struct {
	GoalScored int
	CleanSheet int
	// SavesPerPoint awards one point per N saves. Zero disables saves points.
	SavesPerPoint int
	// GoalsConcededStep deducts GoalsConcededPenalty per N goals conceded. Zero disables it.
	GoalsConcededStep    int
	GoalsConcededPenalty int
}

// Rules is the single rule table used by every caller that scores players.
type Rules struct {
	Playing              int
	SixtyMinutes         int
	SixtyMinutesMinutes  int
	CleanSheetMinMinutes int
	Assist               int
	PenaltySaved         int
	PenaltyMissed        int
	YellowCard           int
	RedCard              int
	OwnGoal              int
	Positions            map[player.Position]PositionRules
	BonusAwards          []int
	BPS                  BPSWeights
}

func DefaultRules() Rules {
	return Rules{
		Playing:              2,
		SixtyMinutes:         2,
		SixtyMinutesMinutes:  60,
		CleanSheetMinMinutes: 60,
		Assist:               3,
		PenaltySaved:         5,
		PenaltyMissed:        -2,
		YellowCard:           -1,
		RedCard:              -3,
		OwnGoal:              -2,
		Positions: map[player.Position]PositionRules{
			player.PositionGoalkeeper: {GoalScored: 6, CleanSheet: 4, SavesPerPoint: 3, GoalsConcededStep: 2, GoalsConcededPenalty: -1},
			player.PositionDefender:   {GoalScored: 6, CleanSheet: 4, GoalsConcededStep: 2, GoalsConcededPenalty: -1},
			player.PositionMidfielder: {GoalScored: 5, CleanSheet: 1},
			player.PositionForward:    {GoalScored: 4},
		},
		BonusAwards: append([]int(nil), defaultBonusAwards...),
		BPS:         DefaultBPSWeights(),
	}
}

func (r Rules) Validate() error {
	for pos := range player.AllPositions {
		rules, ok := r.Positions[pos]
		if !ok {
			return fmt.Errorf("%w: no rules for %s", ErrUnknownPosition, pos)
		}
		if rules.SavesPerPoint < 0 || rules.GoalsConcededStep < 0 {
			return fmt.Errorf("position %s: saves and goals conceded steps must be >= 0", pos)
		}
	}
	if r.SixtyMinutesMinutes <= 0 {
		return fmt.Errorf("sixty minutes threshold must be > 0")
	}
	if len(r.BonusAwards) == 0 {
		return fmt.Errorf("bonus awards must not be empty")
	}
	for i, award := range r.BonusAwards {
		if award < 0 {
			return fmt.Errorf("bonus award %d must be >= 0", i)
		}
	}
	return nil
}

func (r Rules) position(pos player.Position) (PositionRules, error) {
	rules, ok := r.Positions[pos]
	if !ok {
		return PositionRules{}, fmt.Errorf("%w: %q", ErrUnknownPosition, pos)
	}
	return rules, nil
}

// ScorePlayer scores one stat record with the default rules.
func ScorePlayer(position player.Position, stat playerstats.GameweekStat) (PlayerScore, error) {
	return DefaultRules().ScorePlayer(position, stat)
}

// ScorePlayer maps a stat record to fantasy points. A player without minutes scores
// nothing regardless of the other counters. Totals are not floored at zero.
func (r Rules) ScorePlayer(position player.Position, stat playerstats.GameweekStat) (PlayerScore, error) {
	pos, err := r.position(position)
	if err != nil {
		return PlayerScore{}, err
	}

	breakdown := make(Breakdown)
	if stat.Minutes <= 0 {
		return PlayerScore{Breakdown: breakdown}, nil
	}

	breakdown.add(KeyPlaying, r.Playing)
	if stat.Minutes >= r.SixtyMinutesMinutes {
		breakdown.add(KeySixtyMinutes, r.SixtyMinutes)
	}
	breakdown.add(KeyGoalsScored, stat.GoalsScored*pos.GoalScored)
	breakdown.add(KeyAssists, stat.Assists*r.Assist)
	if stat.Minutes >= r.CleanSheetMinMinutes {
		breakdown.add(KeyCleanSheets, stat.CleanSheets*pos.CleanSheet)
	}
	if pos.SavesPerPoint > 0 {
		breakdown.add(KeySaves, stat.Saves/pos.SavesPerPoint)
	}
	breakdown.add(KeyPenaltiesSaved, stat.PenaltiesSaved*r.PenaltySaved)
	breakdown.add(KeyPenaltiesMissed, stat.PenaltiesMissed*r.PenaltyMissed)
	breakdown.add(KeyYellowCards, stat.YellowCards*r.YellowCard)
	breakdown.add(KeyRedCards, stat.RedCards*r.RedCard)
	breakdown.add(KeyOwnGoals, stat.OwnGoals*r.OwnGoal)
	if pos.GoalsConcededStep > 0 {
		breakdown.add(KeyGoalsConceded, (stat.GoalsConceded/pos.GoalsConcededStep)*pos.GoalsConcededPenalty)
	}
	breakdown.add(KeyBonus, stat.Bonus)

	return PlayerScore{Points: breakdown.Total(), Breakdown: breakdown}, nil
}
