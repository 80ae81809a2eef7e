package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fantasy-points/internal/domain/playerstats"
)

type PlayerStatsRepository struct {
	mu    sync.RWMutex
	items map[playerstats.Key]playerstats.GameweekStat
	clock clockwork.Clock
}

func NewPlayerStatsRepository(stats []playerstats.GameweekStat, clock clockwork.Clock) *PlayerStatsRepository {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	items := make(map[playerstats.Key]playerstats.GameweekStat, len(stats))
	for _, s := range stats {
		items[s.Key()] = s
	}
	return &PlayerStatsRepository{items: items, clock: clock}
}

func (r *PlayerStatsRepository) ListByGameweek(_ context.Context, gameweek int) ([]playerstats.GameweekStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]playerstats.GameweekStat, 0)
	for key, item := range r.items {
		if key.Gameweek == gameweek {
			out = append(out, item)
		}
	}
	sortStats(out)
	return out, nil
}

func (r *PlayerStatsRepository) ListByGameweekAndPlayers(_ context.Context, gameweek int, playerIDs []string) ([]playerstats.GameweekStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]playerstats.GameweekStat, 0, len(playerIDs))
	seen := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if item, ok := r.items[playerstats.Key{PlayerID: id, Gameweek: gameweek}]; ok {
			out = append(out, item)
		}
	}
	sortStats(out)
	return out, nil
}

func (r *PlayerStatsRepository) UpdateDerived(_ context.Context, gameweek int, derived []playerstats.Derived) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now().UTC()
	for _, d := range derived {
		key := playerstats.Key{PlayerID: d.PlayerID, Gameweek: gameweek}
		item, ok := r.items[key]
		if !ok {
			continue
		}
		item.BPS = d.BPS
		item.Bonus = d.Bonus
		item.TotalPoints = d.TotalPoints
		item.UpdatedAt = now
		r.items[key] = item
	}
	return nil
}

// Upsert stores a raw stat record, keeping previously derived fields.
func (r *PlayerStatsRepository) Upsert(_ context.Context, stat playerstats.GameweekStat) error {
	if err := stat.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.items[stat.Key()]; ok {
		stat.BPS = existing.BPS
		stat.Bonus = existing.Bonus
		stat.TotalPoints = existing.TotalPoints
	}
	stat.UpdatedAt = r.clock.Now().UTC()
	r.items[stat.Key()] = stat
	return nil
}

func sortStats(items []playerstats.GameweekStat) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].PlayerID < items[j].PlayerID
	})
}
