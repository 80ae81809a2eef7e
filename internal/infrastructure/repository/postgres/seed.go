package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-points/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/fantasy-points/internal/platform/querybuilder"
)

// BootstrapSeed loads the demo dataset into an empty database. It is a no-op once any
// player exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM players WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	if err := withTx(ctx, db, "bootstrap seed", seedReferenceData(ctx)); err != nil {
		return err
	}

	squads := NewSquadRepository(db)
	for _, squad := range memory.SeedSquads() {
		if err := squads.Upsert(ctx, squad); err != nil {
			return fmt.Errorf("seed squad %s: %w", squad.ID, err)
		}
	}
	leagues := NewLeagueRepository(db)
	for _, membership := range memory.SeedMemberships() {
		if err := leagues.AddMember(ctx, membership); err != nil {
			return fmt.Errorf("seed league member %s: %w", membership.UserID, err)
		}
	}
	return nil
}

func seedReferenceData(ctx context.Context) func(tx *sqlx.Tx) error {
	return func(tx *sqlx.Tx) error {
		for _, p := range memory.SeedPlayers() {
			if err := namedExec(ctx, tx, `
INSERT INTO players (id, team_id, name, position, price)
VALUES (:id, :team_id, :name, :position, :price)
ON CONFLICT (id) DO NOTHING`, map[string]any{
				"id":       p.ID,
				"team_id":  p.TeamID,
				"name":     p.Name,
				"position": string(p.Position),
				"price":    p.Price,
			}); err != nil {
				return fmt.Errorf("seed player %s: %w", p.ID, err)
			}
		}

		for _, gw := range memory.SeedGameweeks() {
			if err := namedExec(ctx, tx, `
INSERT INTO gameweeks (number, name, deadline_at, status, finished_at)
VALUES (:number, :name, :deadline_at, :status, :finished_at)
ON CONFLICT (number) DO NOTHING`, map[string]any{
				"number":      gw.Number,
				"name":        gw.Name,
				"deadline_at": gw.DeadlineAt,
				"status":      string(gw.Status),
				"finished_at": gw.FinishedAt,
			}); err != nil {
				return fmt.Errorf("seed gameweek %d: %w", gw.Number, err)
			}
		}

		seededAt := time.Now().UTC()
		stats := make([]playerGameweekStatTableModel, 0)
		for _, s := range memory.SeedStats() {
			stats = append(stats, playerGameweekStatTableModel{
				PlayerID:          s.PlayerID,
				Gameweek:          s.Gameweek,
				FixtureID:         s.FixtureID,
				Minutes:           s.Minutes,
				GoalsScored:       s.GoalsScored,
				Assists:           s.Assists,
				GoalsConceded:     s.GoalsConceded,
				PenaltiesSaved:    s.PenaltiesSaved,
				YellowCards:       s.YellowCards,
				Saves:             s.Saves,
				Tackles:           s.Tackles,
				Clearances:        s.Clearances,
				Blocks:            s.Blocks,
				Recoveries:        s.Recoveries,
				KeyPasses:         s.KeyPasses,
				BigChancesCreated: s.BigChancesCreated,
				UpdatedAt:         seededAt,
			})
		}
		b, err := qb.InsertModels("player_gameweek_stats", stats)
		if err != nil {
			return fmt.Errorf("build seed stats query: %w", err)
		}
		query, args, err := b.ToSQL()
		if err != nil {
			return fmt.Errorf("build seed stats query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed player stats: %w", err)
		}

		for _, l := range memory.SeedLeagues() {
			if err := namedExec(ctx, tx, `
INSERT INTO leagues (id, name, code, type, is_private, admin_user_id, capacity, created_at, updated_at)
VALUES (:id, :name, :code, :type, :is_private, :admin_user_id, :capacity, :created_at, :updated_at)
ON CONFLICT (id) DO NOTHING`, map[string]any{
				"id":            l.ID,
				"name":          l.Name,
				"code":          l.Code,
				"type":          string(l.Type),
				"is_private":    l.IsPrivate,
				"admin_user_id": l.AdminUserID,
				"capacity":      l.Capacity,
				"created_at":    l.CreatedAt,
				"updated_at":    l.UpdatedAt,
			}); err != nil {
				return fmt.Errorf("seed league %s: %w", l.ID, err)
			}
		}
		return nil
	}
}

func namedExec(ctx context.Context, tx *sqlx.Tx, query string, arg map[string]any) error {
	bound, args, err := sqlx.Named(query, arg)
	if err != nil {
		return fmt.Errorf("bind named query: %w", err)
	}
	_, err = tx.ExecContext(ctx, tx.Rebind(bound), args...)
	return err
}
