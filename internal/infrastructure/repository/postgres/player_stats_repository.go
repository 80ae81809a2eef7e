package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	"github.com/lib/pq"
	"github.com/riskibarqy/fantasy-points/internal/domain/playerstats"
	qb "github.com/riskibarqy/fantasy-points/internal/platform/querybuilder"
)

// updateDerivedQuery writes every derived row of a gameweek in one statement.
const updateDerivedQuery = `
UPDATE player_gameweek_stats AS s
SET bps = d.bps,
    bonus = d.bonus,
    total_points = d.total_points,
    updated_at = $6
FROM (
    SELECT UNNEST($2::text[]) AS player_id,
           UNNEST($3::int[]) AS bps,
           UNNEST($4::int[]) AS bonus,
           UNNEST($5::int[]) AS total_points
) AS d
WHERE s.gameweek = $1 AND s.player_id = d.player_id`

type PlayerStatsRepository struct {
	db    *sqlx.DB
	clock clockwork.Clock
}

func NewPlayerStatsRepository(db *sqlx.DB, clock clockwork.Clock) *PlayerStatsRepository {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &PlayerStatsRepository{db: db, clock: clock}
}

func (r *PlayerStatsRepository) ListByGameweek(ctx context.Context, gameweek int) ([]playerstats.GameweekStat, error) {
	return r.list(ctx, qb.Eq("gameweek", gameweek))
}

func (r *PlayerStatsRepository) ListByGameweekAndPlayers(ctx context.Context, gameweek int, playerIDs []string) ([]playerstats.GameweekStat, error) {
	if len(playerIDs) == 0 {
		return []playerstats.GameweekStat{}, nil
	}
	return r.list(ctx, qb.Eq("gameweek", gameweek), qb.AnyString("player_id", playerIDs))
}

func (r *PlayerStatsRepository) UpdateDerived(ctx context.Context, gameweek int, derived []playerstats.Derived) error {
	if len(derived) == 0 {
		return nil
	}

	playerIDs := make(pq.StringArray, 0, len(derived))
	bps := make(pq.Int64Array, 0, len(derived))
	bonus := make(pq.Int64Array, 0, len(derived))
	totals := make(pq.Int64Array, 0, len(derived))
	for _, d := range derived {
		playerIDs = append(playerIDs, d.PlayerID)
		bps = append(bps, int64(d.BPS))
		bonus = append(bonus, int64(d.Bonus))
		totals = append(totals, int64(d.TotalPoints))
	}

	if _, err := r.db.ExecContext(ctx, updateDerivedQuery, gameweek, playerIDs, bps, bonus, totals, r.clock.Now().UTC()); err != nil {
		return fmt.Errorf("update derived player stats gameweek=%d: %w", gameweek, err)
	}
	return nil
}

func (r *PlayerStatsRepository) list(ctx context.Context, conditions ...qb.Condition) ([]playerstats.GameweekStat, error) {
	columns, err := qb.Columns(playerGameweekStatTableModel{})
	if err != nil {
		return nil, fmt.Errorf("resolve player stat columns: %w", err)
	}
	query, args, err := qb.Select(columns...).From("player_gameweek_stats").
		Where(conditions...).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player stats query: %w", err)
	}

	var rows []playerGameweekStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player stats: %w", err)
	}

	out := make([]playerstats.GameweekStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerStatFromRow(row))
	}
	return out, nil
}

func playerStatFromRow(row playerGameweekStatTableModel) playerstats.GameweekStat {
	return playerstats.GameweekStat{
		PlayerID:               row.PlayerID,
		Gameweek:               row.Gameweek,
		FixtureID:              row.FixtureID,
		Minutes:                row.Minutes,
		GoalsScored:            row.GoalsScored,
		Assists:                row.Assists,
		CleanSheets:            row.CleanSheets,
		GoalsConceded:          row.GoalsConceded,
		OwnGoals:               row.OwnGoals,
		PenaltiesSaved:         row.PenaltiesSaved,
		PenaltiesMissed:        row.PenaltiesMissed,
		YellowCards:            row.YellowCards,
		RedCards:               row.RedCards,
		Saves:                  row.Saves,
		Tackles:                row.Tackles,
		Interceptions:          row.Interceptions,
		Clearances:             row.Clearances,
		Blocks:                 row.Blocks,
		Recoveries:             row.Recoveries,
		KeyPasses:              row.KeyPasses,
		BigChancesCreated:      row.BigChancesCreated,
		SuccessfulDribbles:     row.SuccessfulDribbles,
		Fouls:                  row.Fouls,
		Offsides:               row.Offsides,
		ErrorsLeadingToGoal:    row.ErrorsLeadingToGoal,
		ErrorsLeadingToAttempt: row.ErrorsLeadingToAttempt,
		BPS:                    row.BPS,
		Bonus:                  row.Bonus,
		TotalPoints:            row.TotalPoints,
		UpdatedAt:              row.UpdatedAt,
	}
}
