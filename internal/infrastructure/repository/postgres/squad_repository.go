package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-points/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-points/internal/domain/player"
	qb "github.com/riskibarqy/fantasy-points/internal/platform/querybuilder"
)

var squadSelectColumns = []string{
	"id",
	"user_id",
	"gameweek",
	"captain_id",
	"vice_captain_id",
	"formation",
	"chip",
	"budget_remaining",
	"picks",
	"updated_at",
}

type SquadRepository struct {
	db *sqlx.DB
}

func NewSquadRepository(db *sqlx.DB) *SquadRepository {
	return &SquadRepository{db: db}
}

func (r *SquadRepository) GetByUserAndGameweek(ctx context.Context, userID string, gameweek int) (fantasy.Squad, bool, error) {
	query, args, err := qb.Select(squadSelectColumns...).From("fantasy_squads").
		Where(qb.Eq("user_id", userID), qb.Eq("gameweek", gameweek)).
		ToSQL()
	if err != nil {
		return fantasy.Squad{}, false, fmt.Errorf("build get squad query: %w", err)
	}

	var row squadTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fantasy.Squad{}, false, nil
		}
		return fantasy.Squad{}, false, fmt.Errorf("get squad: %w", err)
	}

	squad, err := squadFromRow(row)
	if err != nil {
		return fantasy.Squad{}, false, err
	}
	return squad, true, nil
}

func (r *SquadRepository) ListByUsersAndGameweek(ctx context.Context, userIDs []string, gameweek int) ([]fantasy.Squad, error) {
	if len(userIDs) == 0 {
		return []fantasy.Squad{}, nil
	}

	query, args, err := qb.Select(squadSelectColumns...).From("fantasy_squads").
		Where(qb.Eq("gameweek", gameweek), qb.AnyString("user_id", userIDs)).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list squads query: %w", err)
	}

	var rows []squadTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list squads gameweek=%d: %w", gameweek, err)
	}

	out := make([]fantasy.Squad, 0, len(rows))
	for _, row := range rows {
		squad, err := squadFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, squad)
	}
	return out, nil
}

func (r *SquadRepository) Upsert(ctx context.Context, squad fantasy.Squad) error {
	picks := make([]squadPickJSON, 0, len(squad.Picks))
	for _, pick := range squad.Picks {
		picks = append(picks, squadPickJSON{
			PlayerID: pick.PlayerID,
			TeamID:   pick.TeamID,
			Position: string(pick.Position),
		})
	}
	encoded, err := encodeJSON(picks)
	if err != nil {
		return fmt.Errorf("encode squad picks: %w", err)
	}

	b, err := qb.InsertModels("fantasy_squads", []squadInsertModel{{
		ID:              squad.ID,
		UserID:          squad.UserID,
		Gameweek:        squad.Gameweek,
		CaptainID:       squad.CaptainID,
		ViceCaptainID:   squad.ViceCaptainID,
		Formation:       squad.Formation,
		Chip:            string(squad.Chip),
		BudgetRemaining: squad.BudgetRemaining,
		Picks:           encoded,
		UpdatedAt:       squad.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("build upsert squad query: %w", err)
	}
	query, args, err := b.
		OnConflict("user_id", "gameweek").
		DoUpdate("", "id", "captain_id", "vice_captain_id", "formation", "chip", "budget_remaining", "picks", "updated_at").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert squad query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert squad user=%s gameweek=%d: %w", squad.UserID, squad.Gameweek, err)
	}
	return nil
}

func squadFromRow(row squadTableModel) (fantasy.Squad, error) {
	var picks []squadPickJSON
	if err := decodeJSON(row.Picks, &picks); err != nil {
		return fantasy.Squad{}, fmt.Errorf("decode squad picks user=%s gameweek=%d: %w", row.UserID, row.Gameweek, err)
	}

	out := fantasy.Squad{
		ID:              row.ID,
		UserID:          row.UserID,
		Gameweek:        row.Gameweek,
		Picks:           make([]fantasy.SquadPick, 0, len(picks)),
		CaptainID:       row.CaptainID,
		ViceCaptainID:   row.ViceCaptainID,
		Formation:       row.Formation,
		Chip:            fantasy.Chip(row.Chip),
		BudgetRemaining: row.BudgetRemaining,
		UpdatedAt:       row.UpdatedAt,
	}
	for _, pick := range picks {
		out.Picks = append(out.Picks, fantasy.SquadPick{
			PlayerID: pick.PlayerID,
			TeamID:   pick.TeamID,
			Position: player.Position(pick.Position),
		})
	}
	return out, nil
}
