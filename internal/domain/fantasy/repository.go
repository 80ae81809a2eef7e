package fantasy

import "context"

// Repository describes squad persistence needs from use cases.
type Repository interface {
	GetByUserAndGameweek(ctx context.Context, userID string, gameweek int) (Squad, bool, error)
	ListByUsersAndGameweek(ctx context.Context, userIDs []string, gameweek int) ([]Squad, error)
	Upsert(ctx context.Context, squad Squad) error
}
