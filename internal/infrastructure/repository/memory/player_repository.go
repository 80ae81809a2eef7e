package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-points/internal/domain/player"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	index map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	index := make(map[string]player.Player, len(players))
	for _, p := range players {
		index[p.ID] = p
	}
	return &PlayerRepository{index: index}
}

// GetByIDs returns known players in request order; unknown ids are skipped.
func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := r.index[id]
		if !ok {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PlayerRepository) Upsert(_ context.Context, p player.Player) error {
	if err := p.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.index[p.ID] = p
	return nil
}
