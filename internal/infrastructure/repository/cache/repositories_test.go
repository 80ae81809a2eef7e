package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-points/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-points/internal/domain/player"
	gameweekmock "github.com/riskibarqy/fantasy-points/internal/mocks/domain/gameweek"
	playermock "github.com/riskibarqy/fantasy-points/internal/mocks/domain/player"
	basecache "github.com/riskibarqy/fantasy-points/internal/platform/cache"
	"github.com/stretchr/testify/mock"
)

func TestPlayerRepository_GetByIDs_CachesBySortedIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := playermock.NewRepository(t)
	repo := NewPlayerRepository(next, basecache.NewStore(time.Minute))

	next.On("GetByIDs", mock.Anything, []string{"p2", "p1"}).
		Return([]player.Player{{ID: "p1"}, {ID: "p2"}}, nil).
		Once()

	first, err := repo.GetByIDs(ctx, []string{"p2", "p1"})
	if err != nil || len(first) != 2 {
		t.Fatalf("first lookup: %+v err=%v", first, err)
	}
	first[0].ID = "mutated"

	second, err := repo.GetByIDs(ctx, []string{"p1", "p2"})
	if err != nil || len(second) != 2 || second[0].ID != "p1" {
		t.Fatalf("second lookup must come from cache unmodified: %+v err=%v", second, err)
	}
}

func TestGameweekRepository_CachesFinishedOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := gameweekmock.NewRepository(t)
	repo := NewGameweekRepository(next, basecache.NewStore(time.Minute))

	next.On("Get", mock.Anything, 1).
		Return(gameweek.Gameweek{Number: 1, Status: gameweek.StatusFinished}, true, nil).
		Once()
	next.On("Get", mock.Anything, 2).
		Return(gameweek.Gameweek{Number: 2, Status: gameweek.StatusLive}, true, nil).
		Twice()

	for i := 0; i < 2; i++ {
		if item, ok, err := repo.Get(ctx, 1); err != nil || !ok || item.Number != 1 {
			t.Fatalf("get finished gameweek: %+v ok=%v err=%v", item, ok, err)
		}
		if item, ok, err := repo.Get(ctx, 2); err != nil || !ok || item.Status != gameweek.StatusLive {
			t.Fatalf("get live gameweek: %+v ok=%v err=%v", item, ok, err)
		}
	}
}
