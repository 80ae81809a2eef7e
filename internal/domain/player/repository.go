package player

import "context"

// Repository resolves player pool entries. Unknown ids are omitted from the result.
type Repository interface {
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
}
