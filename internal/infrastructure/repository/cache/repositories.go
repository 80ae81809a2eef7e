package cache

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/fantasy-points/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-points/internal/domain/player"
	basecache "github.com/riskibarqy/fantasy-points/internal/platform/cache"
)

// PlayerRepository caches player lookups by id set. Positions change rarely and the TTL
// bounds staleness.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	items, err := basecache.Load(ctx, r.cache, "player:ids:"+idsKey(playerIDs), func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.GetByIDs(ctx, playerIDs)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

// GameweekRepository caches finished gameweeks only; other states can still move.
type GameweekRepository struct {
	next  gameweek.Repository
	cache *basecache.Store
}

func NewGameweekRepository(next gameweek.Repository, cache *basecache.Store) *GameweekRepository {
	return &GameweekRepository{next: next, cache: cache}
}

func (r *GameweekRepository) Get(ctx context.Context, number int) (gameweek.Gameweek, bool, error) {
	key := "gameweek:finished:" + strconv.Itoa(number)
	if v, ok := r.cache.Get(ctx, key); ok {
		if item, ok := v.(gameweek.Gameweek); ok {
			return item, true, nil
		}
	}

	item, exists, err := r.next.Get(ctx, number)
	if err != nil || !exists {
		return item, exists, err
	}
	if item.IsFinished() {
		r.cache.Set(ctx, key, item)
	}
	return item, true, nil
}

func (r *GameweekRepository) Current(ctx context.Context) (gameweek.Gameweek, bool, error) {
	return r.next.Current(ctx)
}

func (r *GameweekRepository) ListFinished(ctx context.Context) ([]gameweek.Gameweek, error) {
	return r.next.ListFinished(ctx)
}

func idsKey(ids []string) string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
