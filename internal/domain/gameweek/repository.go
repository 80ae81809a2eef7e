package gameweek

import "context"

type Repository interface {
	Get(ctx context.Context, number int) (Gameweek, bool, error)
	// Current returns the latest gameweek whose deadline has passed.
	Current(ctx context.Context) (Gameweek, bool, error)
	ListFinished(ctx context.Context) ([]Gameweek, error)
}
