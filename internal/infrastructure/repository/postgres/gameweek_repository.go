package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fantasy-points/internal/domain/gameweek"
	qb "github.com/riskibarqy/fantasy-points/internal/platform/querybuilder"
)

var gameweekSelectColumns = []string{"number", "name", "deadline_at", "status", "finished_at"}

type GameweekRepository struct {
	db    *sqlx.DB
	clock clockwork.Clock
}

func NewGameweekRepository(db *sqlx.DB, clock clockwork.Clock) *GameweekRepository {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &GameweekRepository{db: db, clock: clock}
}

func (r *GameweekRepository) Get(ctx context.Context, number int) (gameweek.Gameweek, bool, error) {
	query, args, err := qb.Select(gameweekSelectColumns...).From("gameweeks").
		Where(qb.Eq("number", number)).
		ToSQL()
	if err != nil {
		return gameweek.Gameweek{}, false, fmt.Errorf("build get gameweek query: %w", err)
	}
	return r.getOne(ctx, query, args)
}

func (r *GameweekRepository) Current(ctx context.Context) (gameweek.Gameweek, bool, error) {
	query, args, err := qb.Select(gameweekSelectColumns...).From("gameweeks").
		Where(qb.Lte("deadline_at", r.clock.Now().UTC())).
		OrderBy("number DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return gameweek.Gameweek{}, false, fmt.Errorf("build current gameweek query: %w", err)
	}
	return r.getOne(ctx, query, args)
}

func (r *GameweekRepository) ListFinished(ctx context.Context) ([]gameweek.Gameweek, error) {
	query, args, err := qb.Select(gameweekSelectColumns...).From("gameweeks").
		Where(qb.Eq("status", string(gameweek.StatusFinished))).
		OrderBy("number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list finished gameweeks query: %w", err)
	}

	var rows []gameweekTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list finished gameweeks: %w", err)
	}
	out := make([]gameweek.Gameweek, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameweekFromRow(row))
	}
	return out, nil
}

func (r *GameweekRepository) getOne(ctx context.Context, query string, args []any) (gameweek.Gameweek, bool, error) {
	var row gameweekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return gameweek.Gameweek{}, false, nil
		}
		return gameweek.Gameweek{}, false, fmt.Errorf("get gameweek: %w", err)
	}
	return gameweekFromRow(row), true, nil
}

func gameweekFromRow(row gameweekTableModel) gameweek.Gameweek {
	return gameweek.Gameweek{
		Number:     row.Number,
		Name:       row.Name,
		DeadlineAt: row.DeadlineAt,
		Status:     gameweek.Status(row.Status),
		FinishedAt: row.FinishedAt,
	}
}
