package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-points/internal/domain/fantasy"
)

type squadKey struct {
	userID   string
	gameweek int
}

type SquadRepository struct {
	mu    sync.RWMutex
	items map[squadKey]fantasy.Squad
}

func NewSquadRepository(squads ...fantasy.Squad) *SquadRepository {
	items := make(map[squadKey]fantasy.Squad, len(squads))
	for _, s := range squads {
		items[squadKey{userID: s.UserID, gameweek: s.Gameweek}] = s.Clone()
	}
	return &SquadRepository{items: items}
}

func (r *SquadRepository) GetByUserAndGameweek(_ context.Context, userID string, gameweek int) (fantasy.Squad, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	squad, ok := r.items[squadKey{userID: userID, gameweek: gameweek}]
	if !ok {
		return fantasy.Squad{}, false, nil
	}
	return squad.Clone(), true, nil
}

func (r *SquadRepository) ListByUsersAndGameweek(_ context.Context, userIDs []string, gameweek int) ([]fantasy.Squad, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasy.Squad, 0, len(userIDs))
	for _, userID := range userIDs {
		if squad, ok := r.items[squadKey{userID: userID, gameweek: gameweek}]; ok {
			out = append(out, squad.Clone())
		}
	}
	return out, nil
}

func (r *SquadRepository) Upsert(_ context.Context, squad fantasy.Squad) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[squadKey{userID: squad.UserID, gameweek: squad.Gameweek}] = squad.Clone()
	return nil
}
