package fantasy

import (
	"time"

	"github.com/riskibarqy/fantasy-points/internal/domain/player"
)

// Chip is an optional per-gameweek booster. Only the captain multiplier hook is modelled.
type Chip string

const (
	ChipNone          Chip = ""
	ChipTripleCaptain Chip = "triple_captain"
)

// SquadPick represents one selected player in a user's fantasy squad.
type SquadPick struct {
	PlayerID string          `validate:"required"`
	TeamID   string          `validate:"omitempty"`
	Position player.Position `validate:"required,oneof=GK DEF MID FWD"`
}

// Squad is a user's roster for one gameweek. Picks are ordered: the first 11 are
// starters, the remaining 4 are the bench in substitution priority order.
type Squad struct {
	ID              string
	UserID          string      `validate:"required"`
	Gameweek        int         `validate:"gt=0"`
	Picks           []SquadPick `validate:"len=15,dive"`
	CaptainID       string      `validate:"required"`
	ViceCaptainID   string      `validate:"required,nefield=CaptainID"`
	Formation       string      `validate:"required"`
	Chip            Chip        `validate:"omitempty,oneof=triple_captain"`
	BudgetRemaining int64       `validate:"gte=0"`
	UpdatedAt       time.Time
}

// Starters returns the starting XI. It is empty for squads shorter than the XI.
func (s Squad) Starters() []SquadPick {
	if len(s.Picks) < StartersSize {
		return nil
	}
	return s.Picks[:StartersSize]
}

// Bench returns the bench picks in priority order.
func (s Squad) Bench() []SquadPick {
	if len(s.Picks) <= StartersSize {
		return nil
	}
	return s.Picks[StartersSize:]
}

func (s Squad) PlayerIDs() []string {
	out := make([]string, 0, len(s.Picks))
	for _, pick := range s.Picks {
		out = append(out, pick.PlayerID)
	}
	return out
}

func (s Squad) Clone() Squad {
	out := s
	out.Picks = append([]SquadPick(nil), s.Picks...)
	return out
}
