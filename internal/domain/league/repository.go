package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	// Create stores the league and the admin membership atomically: either both exist afterwards or neither does.
	Create(ctx context.Context, league League, admin Membership) error
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
	GetByCode(ctx context.Context, code string) (League, bool, error)
	List(ctx context.Context) ([]League, error)

	// AddMember returns ErrDuplicateMember or ErrCapacityReached when an invariant would break.
	AddMember(ctx context.Context, membership Membership) error
	ListMembers(ctx context.Context, leagueID string) ([]Membership, error)

	ReplaceStandings(ctx context.Context, leagueID string, gameweek int, standings []Standing) error
	ListStandings(ctx context.Context, leagueID string, gameweek int) ([]Standing, error)
}
