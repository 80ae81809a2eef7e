package postgres

import "time"

type gameweekResultTableModel struct {
	UserID        string    `db:"user_id"`
	Gameweek      int       `db:"gameweek"`
	SquadID       string    `db:"squad_id"`
	Chip          string    `db:"chip"`
	TotalPoints   int       `db:"total_points"`
	Players       []byte    `db:"players"`
	Substitutions []byte    `db:"substitutions"`
	Finalized     bool      `db:"finalized"`
	CalculatedAt  time.Time `db:"calculated_at"`
}

type gameweekResultInsertModel struct {
	UserID        string    `db:"user_id"`
	Gameweek      int       `db:"gameweek"`
	SquadID       string    `db:"squad_id"`
	Chip          string    `db:"chip"`
	TotalPoints   int       `db:"total_points"`
	Players       string    `db:"players"`
	Substitutions string    `db:"substitutions"`
	Finalized     bool      `db:"finalized"`
	CalculatedAt  time.Time `db:"calculated_at"`
}

type userGameweekTotalRow struct {
	UserID      string `db:"user_id"`
	Gameweek    int    `db:"gameweek"`
	TotalPoints int    `db:"total_points"`
}

type resultPlayerJSON struct {
	PlayerID      string         `json:"player_id"`
	Position      string         `json:"position"`
	Minutes       int            `json:"minutes"`
	RawPoints     int            `json:"raw_points"`
	Multiplier    int            `json:"multiplier"`
	FinalPoints   int            `json:"final_points"`
	IsCaptain     bool           `json:"is_captain,omitempty"`
	IsViceCaptain bool           `json:"is_vice_captain,omitempty"`
	Counted       bool           `json:"counted"`
	Breakdown     map[string]int `json:"breakdown"`
}

type substitutionJSON struct {
	Out string `json:"out"`
	In  string `json:"in"`
}
