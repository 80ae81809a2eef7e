package scoring

import "context"

// Repository stores gameweek points results. Finalized results are never overwritten.
type Repository interface {
	GetResult(ctx context.Context, userID string, gameweek int) (GameweekPointsResult, bool, error)
	UpsertResult(ctx context.Context, result GameweekPointsResult) error
	ListTotalsByUsers(ctx context.Context, userIDs []string, gameweeks []int) ([]UserGameweekTotal, error)
}
