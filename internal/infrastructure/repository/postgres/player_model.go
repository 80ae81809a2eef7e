package postgres

import (
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-points/internal/domain/player"
)

type playerTableModel struct {
	ID       string `db:"id"`
	TeamID   string `db:"team_id"`
	Name     string `db:"name"`
	Position string `db:"position"`
	Price    int64  `db:"price"`
}

// toDomain rejects rows whose position code the scoring rules cannot handle.
func (m playerTableModel) toDomain() (player.Player, error) {
	position, err := player.ParsePosition(m.Position)
	if err != nil {
		return player.Player{}, fmt.Errorf("player %s: %w", m.ID, err)
	}
	return player.Player{
		ID:       m.ID,
		TeamID:   m.TeamID,
		Name:     m.Name,
		Position: position,
		Price:    m.Price,
	}, nil
}

type gameweekTableModel struct {
	Number     int        `db:"number"`
	Name       string     `db:"name"`
	DeadlineAt time.Time  `db:"deadline_at"`
	Status     string     `db:"status"`
	FinishedAt *time.Time `db:"finished_at"`
}
