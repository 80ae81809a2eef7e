package postgres

import (
	"context"
	"fmt"
	"slices"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-points/internal/domain/player"
	qb "github.com/riskibarqy/fantasy-points/internal/platform/querybuilder"
)

// playerLookupChunk bounds the size of the id array bound into one query.
const playerLookupChunk = 500

// PlayerRepository reads the player pool. Soft-deleted players are invisible.
type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	ids := slices.Compact(slices.Sorted(slices.Values(playerIDs)))
	out := make([]player.Player, 0, len(ids))

	for chunk := range slices.Chunk(ids, playerLookupChunk) {
		rows, err := r.selectByIDs(ctx, chunk)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			p, err := row.toDomain()
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PlayerRepository) selectByIDs(ctx context.Context, ids []string) ([]playerTableModel, error) {
	query, args, err := qb.Select("id", "team_id", "name", "position", "price").
		From("players").
		Where(qb.AnyString("id", ids), qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build player lookup query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select %d players: %w", len(ids), err)
	}
	return rows, nil
}
