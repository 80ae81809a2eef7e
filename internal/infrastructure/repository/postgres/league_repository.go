package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-points/internal/domain/league"
	qb "github.com/riskibarqy/fantasy-points/internal/platform/querybuilder"
)

var leagueSelectColumns = []string{
	"id",
	"name",
	"code",
	"type",
	"is_private",
	"admin_user_id",
	"capacity",
	"created_at",
	"updated_at",
	"deleted_at",
}

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

// Create inserts the league and its admin membership in one transaction.
func (r *LeagueRepository) Create(ctx context.Context, item league.League, admin league.Membership) error {
	b, err := qb.InsertModels("leagues", []leagueInsertModel{{
		ID:          item.ID,
		Name:        item.Name,
		Code:        item.Code,
		Type:        string(item.Type),
		IsPrivate:   item.IsPrivate,
		AdminUserID: item.AdminUserID,
		Capacity:    item.Capacity,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("build insert league query: %w", err)
	}
	query, args, err := b.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert league query: %w", err)
	}

	return withTx(ctx, r.db, "create league", func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("league %s or code %s already exists: %w", item.ID, item.Code, err)
			}
			return fmt.Errorf("insert league: %w", err)
		}
		admin.LeagueID = item.ID
		return insertMember(ctx, tx, admin)
	})
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	return r.getOne(ctx, qb.Eq("id", leagueID))
}

func (r *LeagueRepository) GetByCode(ctx context.Context, code string) (league.League, bool, error) {
	return r.getOne(ctx, qb.Eq("code", code))
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	query, args, err := qb.Select(leagueSelectColumns...).From("leagues").
		Where(qb.IsNull("deleted_at")).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}
	return out, nil
}

// AddMember locks the league row so concurrent joins cannot exceed capacity.
func (r *LeagueRepository) AddMember(ctx context.Context, membership league.Membership) error {
	return withTx(ctx, r.db, "add league member", func(tx *sqlx.Tx) error {
		lockQuery, lockArgs, err := qb.Select("capacity").From("leagues").
			Where(qb.Eq("id", membership.LeagueID), qb.IsNull("deleted_at")).
			ForUpdate().
			ToSQL()
		if err != nil {
			return fmt.Errorf("build lock league query: %w", err)
		}
		var capacity int
		if err := tx.GetContext(ctx, &capacity, lockQuery, lockArgs...); err != nil {
			if isNotFound(err) {
				return fmt.Errorf("league %s not found", membership.LeagueID)
			}
			return fmt.Errorf("lock league %s: %w", membership.LeagueID, err)
		}

		var isMember bool
		if err := tx.GetContext(ctx, &isMember,
			`SELECT EXISTS(SELECT 1 FROM league_members WHERE league_id = $1 AND user_id = $2)`,
			membership.LeagueID, membership.UserID,
		); err != nil {
			return fmt.Errorf("check league membership: %w", err)
		}
		var count int
		if !isMember {
			if err := tx.GetContext(ctx, &count, `SELECT COUNT(1) FROM league_members WHERE league_id = $1`, membership.LeagueID); err != nil {
				return fmt.Errorf("count league members: %w", err)
			}
		}
		if err := admitMember(isMember, count, capacity); err != nil {
			return err
		}
		return insertMember(ctx, tx, membership)
	})
}

// admitMember reports why a user cannot join. A duplicate wins over a full league.
func admitMember(isMember bool, count, capacity int) error {
	if isMember {
		return league.ErrDuplicateMember
	}
	if capacity > 0 && count >= capacity {
		return league.ErrCapacityReached
	}
	return nil
}

func insertMember(ctx context.Context, tx *sqlx.Tx, membership league.Membership) error {
	query, args, err := qb.InsertInto("league_members").
		Columns("league_id", "user_id", "joined_at").
		Values(membership.LeagueID, membership.UserID, membership.JoinedAt).
		OnConflict("league_id", "user_id").
		DoNothing().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert league member query: %w", err)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert league member: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return league.ErrDuplicateMember
	}
	return nil
}

func (r *LeagueRepository) ListMembers(ctx context.Context, leagueID string) ([]league.Membership, error) {
	query, args, err := qb.Select("league_id", "user_id", "joined_at").From("league_members").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("joined_at", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list league members query: %w", err)
	}

	var rows []leagueMemberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list league members: %w", err)
	}
	out := make([]league.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, league.Membership{LeagueID: row.LeagueID, UserID: row.UserID, JoinedAt: row.JoinedAt})
	}
	return out, nil
}

// ReplaceStandings swaps the stored standings of one league gameweek atomically.
func (r *LeagueRepository) ReplaceStandings(ctx context.Context, leagueID string, gameweek int, standings []league.Standing) error {
	return withTx(ctx, r.db, "replace league standings", func(tx *sqlx.Tx) error {
		deleteQuery, deleteArgs, err := qb.DeleteFrom("league_standings").
			Where(qb.Eq("league_id", leagueID), qb.Eq("gameweek", gameweek)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build clear league standings query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
			return fmt.Errorf("clear league standings: %w", err)
		}
		if len(standings) == 0 {
			return nil
		}

		rows := make([]leagueStandingTableModel, 0, len(standings))
		for _, s := range standings {
			rows = append(rows, leagueStandingTableModel{
				LeagueID:     leagueID,
				Gameweek:     gameweek,
				UserID:       s.UserID,
				Points:       s.Points,
				Rank:         s.Rank,
				PreviousRank: s.PreviousRank,
				Movement:     string(s.Movement),
				JoinedAt:     s.JoinedAt,
				CalculatedAt: s.CalculatedAt,
			})
		}
		b, err := qb.InsertModels("league_standings", rows)
		if err != nil {
			return fmt.Errorf("build insert league standings query: %w", err)
		}
		insertQuery, insertArgs, err := b.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert league standings query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert league standings: %w", err)
		}
		return nil
	})
}

func (r *LeagueRepository) ListStandings(ctx context.Context, leagueID string, gameweek int) ([]league.Standing, error) {
	columns, err := qb.Columns(leagueStandingTableModel{})
	if err != nil {
		return nil, fmt.Errorf("resolve league standing columns: %w", err)
	}
	query, args, err := qb.Select(columns...).From("league_standings").
		Where(qb.Eq("league_id", leagueID), qb.Eq("gameweek", gameweek)).
		OrderBy("rank").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list league standings query: %w", err)
	}

	var rows []leagueStandingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list league standings: %w", err)
	}
	out := make([]league.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, league.Standing{
			LeagueID:     row.LeagueID,
			UserID:       row.UserID,
			Gameweek:     row.Gameweek,
			Points:       row.Points,
			Rank:         row.Rank,
			JoinedAt:     row.JoinedAt,
			PreviousRank: row.PreviousRank,
			Movement:     league.RankMovement(row.Movement),
			CalculatedAt: row.CalculatedAt,
		})
	}
	return out, nil
}

func (r *LeagueRepository) getOne(ctx context.Context, condition qb.Condition) (league.League, bool, error) {
	query, args, err := qb.Select(leagueSelectColumns...).From("leagues").
		Where(condition, qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league: %w", err)
	}
	return leagueFromRow(row), true, nil
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:          row.ID,
		Name:        row.Name,
		Code:        row.Code,
		Type:        league.Type(row.Type),
		IsPrivate:   row.IsPrivate,
		AdminUserID: row.AdminUserID,
		Capacity:    row.Capacity,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
