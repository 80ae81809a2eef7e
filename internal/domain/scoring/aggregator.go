package scoring

import (
	"fmt"

	"github.com/riskibarqy/fantasy-points/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-points/internal/domain/playerstats"
)

// Aggregator turns a squad and the gameweek's stat records into a GameweekPointsResult.
// It holds no mutable state and is safe for concurrent use.
type Aggregator struct {
	rules       Rules
	squadRules  fantasy.Rules
	multipliers MultiplierPolicy
	substitutor Substitutor
}

type AggregatorOption func(*Aggregator)

func WithSubstitutor(s Substitutor) AggregatorOption {
	return func(a *Aggregator) {
		if s != nil {
			a.substitutor = s
		}
	}
}

func WithMultiplierPolicy(p MultiplierPolicy) AggregatorOption {
	return func(a *Aggregator) {
		if p != nil {
			a.multipliers = p
		}
	}
}

func WithSquadRules(rules fantasy.Rules) AggregatorOption {
	return func(a *Aggregator) {
		a.squadRules = rules
	}
}

func NewAggregator(rules Rules, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		rules:       rules,
		squadRules:  fantasy.DefaultRules(),
		multipliers: NewDefaultMultiplierPolicy(),
		substitutor: NoSubstitution{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Aggregator) Rules() Rules {
	return a.rules
}

// ComputeSquadPoints scores a squad for its gameweek. Stats for other gameweeks are
// ignored and a pick without a stat record contributes zero.
func (a *Aggregator) ComputeSquadPoints(squad fantasy.Squad, stats []playerstats.GameweekStat) (GameweekPointsResult, error) {
	if err := fantasy.ValidateForScoring(squad, a.squadRules); err != nil {
		return GameweekPointsResult{}, err
	}

	byPlayer := make(map[string]playerstats.GameweekStat, len(stats))
	minutes := make(map[string]int, len(stats))
	for _, item := range stats {
		if item.Gameweek != squad.Gameweek {
			continue
		}
		byPlayer[item.PlayerID] = item
		minutes[item.PlayerID] = item.Minutes
	}

	effective, subs := a.substitutor.Substitute(squad, minutes)

	captainMultiplier := a.multipliers.CaptainMultiplier(squad.Chip)
	// A captain without minutes hands the armband to the vice captain.
	armband := squad.CaptainID
	if minutes[squad.CaptainID] <= 0 {
		armband = squad.ViceCaptainID
	}

	result := GameweekPointsResult{
		UserID:        squad.UserID,
		Gameweek:      squad.Gameweek,
		SquadID:       squad.ID,
		Chip:          squad.Chip,
		Players:       make([]PlayerPoints, 0, len(effective.Picks)),
		Substitutions: subs,
	}

	for i, pick := range effective.Picks {
		stat := byPlayer[pick.PlayerID]
		score, err := a.rules.ScorePlayer(pick.Position, stat)
		if err != nil {
			return GameweekPointsResult{}, fmt.Errorf("score player %s: %w", pick.PlayerID, err)
		}

		multiplier := 1
		if pick.PlayerID == armband {
			multiplier = captainMultiplier
		}
		counted := i < fantasy.StartersSize

		item := PlayerPoints{
			PlayerID:      pick.PlayerID,
			Position:      pick.Position,
			Minutes:       stat.Minutes,
			RawPoints:     score.Points,
			Multiplier:    multiplier,
			IsCaptain:     pick.PlayerID == squad.CaptainID,
			IsViceCaptain: pick.PlayerID == squad.ViceCaptainID,
			Counted:       counted,
			Breakdown:     score.Breakdown,
		}
		if counted {
			item.FinalPoints = score.Points * multiplier
			result.TotalPoints += item.FinalPoints
		}
		result.Players = append(result.Players, item)
	}

	return result, nil
}
