package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-points/internal/domain/scoring"
)

type resultKey struct {
	userID   string
	gameweek int
}

type ScoringRepository struct {
	mu    sync.RWMutex
	items map[resultKey]scoring.GameweekPointsResult
}

func NewScoringRepository() *ScoringRepository {
	return &ScoringRepository{items: make(map[resultKey]scoring.GameweekPointsResult)}
}

func (r *ScoringRepository) GetResult(_ context.Context, userID string, gameweek int) (scoring.GameweekPointsResult, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[resultKey{userID: userID, gameweek: gameweek}]
	if !ok {
		return scoring.GameweekPointsResult{}, false, nil
	}
	return cloneResult(item), true, nil
}

// UpsertResult stores result unless a finalized result already exists for the same key.
func (r *ScoringRepository) UpsertResult(_ context.Context, result scoring.GameweekPointsResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := resultKey{userID: result.UserID, gameweek: result.Gameweek}
	if existing, ok := r.items[key]; ok && existing.Finalized {
		return nil
	}
	r.items[key] = cloneResult(result)
	return nil
}

func (r *ScoringRepository) ListTotalsByUsers(_ context.Context, userIDs []string, gameweeks []int) ([]scoring.UserGameweekTotal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.UserGameweekTotal, 0, len(userIDs)*len(gameweeks))
	for _, userID := range userIDs {
		for _, gw := range gameweeks {
			item, ok := r.items[resultKey{userID: userID, gameweek: gw}]
			if !ok {
				continue
			}
			out = append(out, scoring.UserGameweekTotal{UserID: userID, Gameweek: gw, TotalPoints: item.TotalPoints})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].Gameweek < out[j].Gameweek
	})
	return out, nil
}

func cloneResult(in scoring.GameweekPointsResult) scoring.GameweekPointsResult {
	out := in
	out.Players = make([]scoring.PlayerPoints, len(in.Players))
	for i, p := range in.Players {
		p.Breakdown = p.Breakdown.Clone()
		out.Players[i] = p
	}
	out.Substitutions = append([]scoring.Substitution(nil), in.Substitutions...)
	return out
}
