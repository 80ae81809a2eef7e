package scoring

import (
	"github.com/riskibarqy/fantasy-points/internal/domain/player"
	"github.com/riskibarqy/fantasy-points/internal/domain/playerstats"
)

// BPSWeights is the bonus points system weight table. It only ranks players for bonus
// allocation and never contributes to fantasy points directly.
type BPSWeights struct {
	PlayedUpTo60           int
	PlayedOver60           int
	GoalByPosition         map[player.Position]int
	Assist                 int
	CleanSheetByPosition   map[player.Position]int
	GoalConcededByPosition map[player.Position]int
	Save                   int
	PenaltySaved           int
	PenaltyMissed          int
	YellowCard             int
	RedCard                int
	OwnGoal                int
	CBIPerPoint            int
	Tackle                 int
	RecoveriesPerPoint     int
	KeyPass                int
	BigChanceCreated       int
	SuccessfulDribble      int
	Foul                   int
	Offside                int
	ErrorLeadingToGoal     int
	ErrorLeadingToAttempt  int
}

func DefaultBPSWeights() BPSWeights {
	return BPSWeights{
		PlayedUpTo60: 3,
		PlayedOver60: 6,
		GoalByPosition: map[player.Position]int{
			player.PositionGoalkeeper: 12,
			player.PositionDefender:   12,
			player.PositionMidfielder: 18,
			player.PositionForward:    24,
		},
		Assist: 9,
		CleanSheetByPosition: map[player.Position]int{
			player.PositionGoalkeeper: 12,
			player.PositionDefender:   12,
		},
		GoalConcededByPosition: map[player.Position]int{
			player.PositionGoalkeeper: -4,
			player.PositionDefender:   -4,
		},
		Save:                  2,
		PenaltySaved:          15,
		PenaltyMissed:         -6,
		YellowCard:            -3,
		RedCard:               -9,
		OwnGoal:               -6,
		CBIPerPoint:           2,
		Tackle:                2,
		RecoveriesPerPoint:    3,
		KeyPass:               1,
		BigChanceCreated:      3,
		SuccessfulDribble:     1,
		Foul:                  -1,
		Offside:               -1,
		ErrorLeadingToGoal:    -3,
		ErrorLeadingToAttempt: -1,
	}
}

// ComputeBPS derives the bonus points system score from in-match actions.
func (r Rules) ComputeBPS(position player.Position, stat playerstats.GameweekStat) (int, error) {
	if _, err := r.position(position); err != nil {
		return 0, err
	}
	if stat.Minutes <= 0 {
		return 0, nil
	}

	w := r.BPS
	total := 0
	if stat.Minutes > 60 {
		total += w.PlayedOver60
	} else {
		total += w.PlayedUpTo60
	}
	total += stat.GoalsScored * w.GoalByPosition[position]
	total += stat.Assists * w.Assist
	if stat.Minutes >= r.CleanSheetMinMinutes {
		total += stat.CleanSheets * w.CleanSheetByPosition[position]
	}
	total += stat.GoalsConceded * w.GoalConcededByPosition[position]
	total += stat.Saves * w.Save
	total += stat.PenaltiesSaved * w.PenaltySaved
	total += stat.PenaltiesMissed * w.PenaltyMissed
	total += stat.YellowCards * w.YellowCard
	total += stat.RedCards * w.RedCard
	total += stat.OwnGoals * w.OwnGoal
	if w.CBIPerPoint > 0 {
		total += stat.CBI() / w.CBIPerPoint
	}
	total += stat.Tackles * w.Tackle
	if w.RecoveriesPerPoint > 0 {
		total += stat.Recoveries / w.RecoveriesPerPoint
	}
	total += stat.KeyPasses * w.KeyPass
	total += stat.BigChancesCreated * w.BigChanceCreated
	total += stat.SuccessfulDribbles * w.SuccessfulDribble
	total += stat.Fouls * w.Foul
	total += stat.Offsides * w.Offside
	total += stat.ErrorsLeadingToGoal * w.ErrorLeadingToGoal
	total += stat.ErrorsLeadingToAttempt * w.ErrorLeadingToAttempt

	return total, nil
}
