package playerstats

import "context"

type Repository interface {
	ListByGameweek(ctx context.Context, gameweek int) ([]GameweekStat, error)
	ListByGameweekAndPlayers(ctx context.Context, gameweek int, playerIDs []string) ([]GameweekStat, error)
	// UpdateDerived writes bps, bonus and total_points. Writes are last-writer-wins.
	UpdateDerived(ctx context.Context, gameweek int, derived []Derived) error
}
