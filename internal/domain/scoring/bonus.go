package scoring

import "sort"

var defaultBonusAwards = []int{3, 2, 1}

// BPSScore is one player's bonus points system score within a single match.
type BPSScore struct {
	PlayerID string
	BPS      int
}

// AllocateBonus awards bonus points for one match with the default 3/2/1 awards.
func AllocateBonus(scores []BPSScore) map[string]int {
	return allocateBonus(scores, defaultBonusAwards)
}

// AllocateBonus awards bonus points for one match using the configured awards.
func (r Rules) AllocateBonus(scores []BPSScore) map[string]int {
	awards := r.BonusAwards
	if len(awards) == 0 {
		awards = defaultBonusAwards
	}
	return allocateBonus(scores, awards)
}

// allocateBonus ranks players by BPS descending and gives the i-th distinct BPS value
// awards[i]. Tied players share their group's award, and no new group starts once
// len(awards) players have been awarded. [50 50 40 30] yields 3 3 2 0.
func allocateBonus(scores []BPSScore, awards []int) map[string]int {
	best := make(map[string]int, len(scores))
	for _, item := range scores {
		if current, ok := best[item.PlayerID]; !ok || item.BPS > current {
			best[item.PlayerID] = item.BPS
		}
	}

	ranked := make([]BPSScore, 0, len(best))
	out := make(map[string]int, len(best))
	for playerID, bps := range best {
		ranked = append(ranked, BPSScore{PlayerID: playerID, BPS: bps})
		out[playerID] = 0
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].BPS != ranked[j].BPS {
			return ranked[i].BPS > ranked[j].BPS
		}
		return ranked[i].PlayerID < ranked[j].PlayerID
	})

	awarded := 0
	group := 0
	for i := 0; i < len(ranked); {
		if group >= len(awards) || awarded >= len(awards) {
			break
		}
		j := i
		for j < len(ranked) && ranked[j].BPS == ranked[i].BPS {
			out[ranked[j].PlayerID] = awards[group]
			j++
		}
		awarded += j - i
		group++
		i = j
	}

	return out
}
