package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-points/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-points/internal/domain/player"
	"github.com/riskibarqy/fantasy-points/internal/domain/scoring"
	qb "github.com/riskibarqy/fantasy-points/internal/platform/querybuilder"
)

var gameweekResultColumns = []string{
	"user_id",
	"gameweek",
	"squad_id",
	"chip",
	"total_points",
	"players",
	"substitutions",
	"finalized",
	"calculated_at",
}

type ScoringRepository struct {
	db *sqlx.DB
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

func (r *ScoringRepository) GetResult(ctx context.Context, userID string, gameweek int) (scoring.GameweekPointsResult, bool, error) {
	query, args, err := qb.Select(gameweekResultColumns...).From("gameweek_results").
		Where(qb.Eq("user_id", userID), qb.Eq("gameweek", gameweek)).
		ToSQL()
	if err != nil {
		return scoring.GameweekPointsResult{}, false, fmt.Errorf("build get gameweek result query: %w", err)
	}

	var row gameweekResultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.GameweekPointsResult{}, false, nil
		}
		return scoring.GameweekPointsResult{}, false, fmt.Errorf("get gameweek result: %w", err)
	}

	result, err := resultFromRow(row)
	if err != nil {
		return scoring.GameweekPointsResult{}, false, err
	}
	return result, true, nil
}

// UpsertResult never overwrites a finalized row; the conflict update is guarded on it.
func (r *ScoringRepository) UpsertResult(ctx context.Context, result scoring.GameweekPointsResult) error {
	model, err := resultInsertModel(result)
	if err != nil {
		return err
	}

	b, err := qb.InsertModels("gameweek_results", []gameweekResultInsertModel{model})
	if err != nil {
		return fmt.Errorf("build upsert gameweek result query: %w", err)
	}
	query, args, err := b.
		OnConflict("user_id", "gameweek").
		DoUpdate("NOT gameweek_results.finalized",
			"squad_id", "chip", "total_points", "players", "substitutions", "finalized", "calculated_at").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert gameweek result query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert gameweek result user=%s gameweek=%d: %w", result.UserID, result.Gameweek, err)
	}
	return nil
}

func (r *ScoringRepository) ListTotalsByUsers(ctx context.Context, userIDs []string, gameweeks []int) ([]scoring.UserGameweekTotal, error) {
	if len(userIDs) == 0 || len(gameweeks) == 0 {
		return []scoring.UserGameweekTotal{}, nil
	}

	query, args, err := qb.Select("user_id", "gameweek", "total_points").From("gameweek_results").
		Where(qb.AnyString("user_id", userIDs), qb.AnyInt("gameweek", gameweeks)).
		OrderBy("user_id", "gameweek").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list gameweek totals query: %w", err)
	}

	var rows []userGameweekTotalRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list gameweek totals: %w", err)
	}

	out := make([]scoring.UserGameweekTotal, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoring.UserGameweekTotal{
			UserID:      row.UserID,
			Gameweek:    row.Gameweek,
			TotalPoints: row.TotalPoints,
		})
	}
	return out, nil
}

func resultInsertModel(result scoring.GameweekPointsResult) (gameweekResultInsertModel, error) {
	players := make([]resultPlayerJSON, 0, len(result.Players))
	for _, p := range result.Players {
		players = append(players, resultPlayerJSON{
			PlayerID:      p.PlayerID,
			Position:      string(p.Position),
			Minutes:       p.Minutes,
			RawPoints:     p.RawPoints,
			Multiplier:    p.Multiplier,
			FinalPoints:   p.FinalPoints,
			IsCaptain:     p.IsCaptain,
			IsViceCaptain: p.IsViceCaptain,
			Counted:       p.Counted,
			Breakdown:     p.Breakdown,
		})
	}
	subs := make([]substitutionJSON, 0, len(result.Substitutions))
	for _, s := range result.Substitutions {
		subs = append(subs, substitutionJSON{Out: s.OutPlayerID, In: s.InPlayerID})
	}

	encodedPlayers, err := encodeJSON(players)
	if err != nil {
		return gameweekResultInsertModel{}, fmt.Errorf("encode result players: %w", err)
	}
	encodedSubs, err := encodeJSON(subs)
	if err != nil {
		return gameweekResultInsertModel{}, fmt.Errorf("encode result substitutions: %w", err)
	}

	return gameweekResultInsertModel{
		UserID:        result.UserID,
		Gameweek:      result.Gameweek,
		SquadID:       result.SquadID,
		Chip:          string(result.Chip),
		TotalPoints:   result.TotalPoints,
		Players:       encodedPlayers,
		Substitutions: encodedSubs,
		Finalized:     result.Finalized,
		CalculatedAt:  result.CalculatedAt,
	}, nil
}

func resultFromRow(row gameweekResultTableModel) (scoring.GameweekPointsResult, error) {
	var players []resultPlayerJSON
	if err := decodeJSON(row.Players, &players); err != nil {
		return scoring.GameweekPointsResult{}, fmt.Errorf("decode result players user=%s gameweek=%d: %w", row.UserID, row.Gameweek, err)
	}
	var subs []substitutionJSON
	if err := decodeJSON(row.Substitutions, &subs); err != nil {
		return scoring.GameweekPointsResult{}, fmt.Errorf("decode result substitutions user=%s gameweek=%d: %w", row.UserID, row.Gameweek, err)
	}

	out := scoring.GameweekPointsResult{
		UserID:        row.UserID,
		Gameweek:      row.Gameweek,
		SquadID:       row.SquadID,
		Chip:          fantasy.Chip(row.Chip),
		TotalPoints:   row.TotalPoints,
		Players:       make([]scoring.PlayerPoints, 0, len(players)),
		Substitutions: make([]scoring.Substitution, 0, len(subs)),
		Finalized:     row.Finalized,
		CalculatedAt:  row.CalculatedAt,
	}
	for _, p := range players {
		breakdown := scoring.Breakdown(p.Breakdown)
		if breakdown == nil {
			breakdown = scoring.Breakdown{}
		}
		out.Players = append(out.Players, scoring.PlayerPoints{
			PlayerID:      p.PlayerID,
			Position:      player.Position(p.Position),
			Minutes:       p.Minutes,
			RawPoints:     p.RawPoints,
			Multiplier:    p.Multiplier,
			FinalPoints:   p.FinalPoints,
			IsCaptain:     p.IsCaptain,
			IsViceCaptain: p.IsViceCaptain,
			Counted:       p.Counted,
			Breakdown:     breakdown,
		})
	}
	for _, s := range subs {
		out.Substitutions = append(out.Substitutions, scoring.Substitution{OutPlayerID: s.Out, InPlayerID: s.In})
	}
	return out, nil
}
