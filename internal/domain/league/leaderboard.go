package league

import "sort"

// BuildLeaderboard ranks members by total points descending, then earlier join time,
// then user id. Ranks are 1-based positions, so no two members share a rank.
// Members missing from totals score zero.
func BuildLeaderboard(members []Membership, totals map[string]int) []Standing {
	out := make([]Standing, 0, len(members))
	seen := make(map[string]struct{}, len(members))
	for _, member := range members {
		if _, ok := seen[member.UserID]; ok {
			continue
		}
		seen[member.UserID] = struct{}{}
		out = append(out, Standing{
			LeagueID: member.LeagueID,
			UserID:   member.UserID,
			Points:   totals[member.UserID],
			JoinedAt: member.JoinedAt,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if !out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].JoinedAt.Before(out[j].JoinedAt)
		}
		return out[i].UserID < out[j].UserID
	})

	for i := range out {
		out[i].Rank = i + 1
		out[i].Movement = RankMovementNew
	}
	return out
}

// ApplyMovement fills PreviousRank and Movement from an earlier leaderboard.
func ApplyMovement(current, previous []Standing) []Standing {
	previousRanks := make(map[string]int, len(previous))
	for _, item := range previous {
		if item.Rank > 0 {
			previousRanks[item.UserID] = item.Rank
		}
	}

	out := make([]Standing, len(current))
	copy(out, current)
	for i := range out {
		prev, ok := previousRanks[out[i].UserID]
		if !ok {
			out[i].PreviousRank = nil
			out[i].Movement = RankMovementNew
			continue
		}
		rank := prev
		out[i].PreviousRank = &rank
		out[i].Movement = resolveRankMovement(out[i].Rank, &rank)
	}
	return out
}

func resolveRankMovement(currentRank int, previousRank *int) RankMovement {
	if previousRank == nil || *previousRank <= 0 || currentRank <= 0 {
		return RankMovementNew
	}
	switch {
	case currentRank < *previousRank:
		return RankMovementUp
	case currentRank > *previousRank:
		return RankMovementDown
	default:
		return RankMovementSame
	}
}
