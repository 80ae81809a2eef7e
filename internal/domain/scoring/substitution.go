package scoring

import (
	"github.com/riskibarqy/fantasy-points/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-points/internal/domain/player"
)

// Substitutor swaps non-playing starters for bench players. Implementations must not
// mutate the input squad.
type Substitutor interface {
	Substitute(squad fantasy.Squad, minutes map[string]int) (fantasy.Squad, []Substitution)
}

// NoSubstitution keeps the starting XI as picked.
type NoSubstitution struct{}

func (NoSubstitution) Substitute(squad fantasy.Squad, _ map[string]int) (fantasy.Squad, []Substitution) {
	return squad, nil
}

// FormationSubstitution replaces each zero-minute starter, in slot order, with the first
// bench player who played and keeps the XI legal. Goalkeepers only replace goalkeepers.
type FormationSubstitution struct {
	Rules fantasy.Rules
}

func NewFormationSubstitution(rules fantasy.Rules) FormationSubstitution {
	return FormationSubstitution{Rules: rules}
}

func (s FormationSubstitution) Substitute(squad fantasy.Squad, minutes map[string]int) (fantasy.Squad, []Substitution) {
	out := squad.Clone()
	if len(out.Picks) <= fantasy.StartersSize {
		return out, nil
	}

	var subs []Substitution
	for i := 0; i < fantasy.StartersSize; i++ {
		starter := out.Picks[i]
		if minutes[starter.PlayerID] > 0 {
			continue
		}

		for j := fantasy.StartersSize; j < len(out.Picks); j++ {
			candidate := out.Picks[j]
			if minutes[candidate.PlayerID] <= 0 {
				continue
			}
			if (starter.Position == player.PositionGoalkeeper) != (candidate.Position == player.PositionGoalkeeper) {
				continue
			}

			out.Picks[i], out.Picks[j] = candidate, starter
			if fantasy.ValidateStarters(out.Picks[:fantasy.StartersSize], s.Rules) != nil {
				out.Picks[i], out.Picks[j] = starter, candidate
				continue
			}
			subs = append(subs, Substitution{OutPlayerID: starter.PlayerID, InPlayerID: candidate.PlayerID})
			break
		}
	}

	if len(subs) > 0 {
		out.Formation = fantasy.FormationOf(out.Picks[:fantasy.StartersSize]).String()
	}
	return out, subs
}
