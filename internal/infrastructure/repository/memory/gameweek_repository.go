package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fantasy-points/internal/domain/gameweek"
)

type GameweekRepository struct {
	mu    sync.RWMutex
	items map[int]gameweek.Gameweek
	clock clockwork.Clock
}

func NewGameweekRepository(items []gameweek.Gameweek, clock clockwork.Clock) *GameweekRepository {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	index := make(map[int]gameweek.Gameweek, len(items))
	for _, item := range items {
		index[item.Number] = item
	}
	return &GameweekRepository{items: index, clock: clock}
}

func (r *GameweekRepository) Get(_ context.Context, number int) (gameweek.Gameweek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[number]
	return item, ok, nil
}

func (r *GameweekRepository) Current(_ context.Context) (gameweek.Gameweek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := r.clock.Now()
	var (
		current gameweek.Gameweek
		found   bool
	)
	for _, item := range r.items {
		if item.DeadlineAt.After(now) {
			continue
		}
		if !found || item.Number > current.Number {
			current = item
			found = true
		}
	}
	return current, found, nil
}

func (r *GameweekRepository) ListFinished(_ context.Context) ([]gameweek.Gameweek, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gameweek.Gameweek, 0, len(r.items))
	for _, item := range r.items {
		if item.IsFinished() {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

// MarkFinished moves a gameweek to finished.
func (r *GameweekRepository) MarkFinished(_ context.Context, number int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[number]
	if !ok {
		return false
	}
	finishedAt := r.clock.Now().UTC()
	item.Status = gameweek.StatusFinished
	item.FinishedAt = &finishedAt
	r.items[number] = item
	return true
}
