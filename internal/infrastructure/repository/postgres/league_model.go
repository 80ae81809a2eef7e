package postgres

import "time"

type leagueTableModel struct {
	ID          string     `db:"id"`
	Name        string     `db:"name"`
	Code        string     `db:"code"`
	Type        string     `db:"type"`
	IsPrivate   bool       `db:"is_private"`
	AdminUserID string     `db:"admin_user_id"`
	Capacity    int        `db:"capacity"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type leagueInsertModel struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Code        string    `db:"code"`
	Type        string    `db:"type"`
	IsPrivate   bool      `db:"is_private"`
	AdminUserID string    `db:"admin_user_id"`
	Capacity    int       `db:"capacity"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type leagueMemberTableModel struct {
	LeagueID string    `db:"league_id"`
	UserID   string    `db:"user_id"`
	JoinedAt time.Time `db:"joined_at"`
}

type leagueStandingTableModel struct {
	LeagueID     string    `db:"league_id"`
	Gameweek     int       `db:"gameweek"`
	UserID       string    `db:"user_id"`
	Points       int       `db:"points"`
	Rank         int       `db:"rank"`
	PreviousRank *int      `db:"previous_rank"`
	Movement     string    `db:"movement"`
	JoinedAt     time.Time `db:"joined_at"`
	CalculatedAt time.Time `db:"calculated_at"`
}
