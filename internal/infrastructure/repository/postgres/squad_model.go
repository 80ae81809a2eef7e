package postgres

import "time"

type squadTableModel struct {
	ID              string    `db:"id"`
	UserID          string    `db:"user_id"`
	Gameweek        int       `db:"gameweek"`
	CaptainID       string    `db:"captain_id"`
	ViceCaptainID   string    `db:"vice_captain_id"`
	Formation       string    `db:"formation"`
	Chip            string    `db:"chip"`
	BudgetRemaining int64     `db:"budget_remaining"`
	Picks           []byte    `db:"picks"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type squadInsertModel struct {
	ID              string    `db:"id"`
	UserID          string    `db:"user_id"`
	Gameweek        int       `db:"gameweek"`
	CaptainID       string    `db:"captain_id"`
	ViceCaptainID   string    `db:"vice_captain_id"`
	Formation       string    `db:"formation"`
	Chip            string    `db:"chip"`
	BudgetRemaining int64     `db:"budget_remaining"`
	Picks           string    `db:"picks"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// squadPickJSON is the stored shape of one pick inside fantasy_squads.picks.
type squadPickJSON struct {
	PlayerID string `json:"player_id"`
	TeamID   string `json:"team_id,omitempty"`
	Position string `json:"position"`
}
