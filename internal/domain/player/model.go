package player

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPosition = errors.New("invalid player position")

// Position represents football position categories used in fantasy rules.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

func (p Position) Valid() bool {
	_, ok := AllPositions[p]
	return ok
}

// ParsePosition accepts the short codes as well as the numeric element types
// used by public fantasy data feeds (1=GK, 2=DEF, 3=MID, 4=FWD).
func ParsePosition(raw string) (Position, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "GK", "GKP", "GOALKEEPER", "1":
		return PositionGoalkeeper, nil
	case "DEF", "DEFENDER", "2":
		return PositionDefender, nil
	case "MID", "MIDFIELDER", "3":
		return PositionMidfielder, nil
	case "FWD", "FORWARD", "4":
		return PositionForward, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPosition, raw)
	}
}

// Player is a selectable athlete in the fantasy player pool.
type Player struct {
	ID       string
	TeamID   string
	Name     string
	Position Position
	Price    int64
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if !p.Position.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidPosition, p.Position)
	}
	if p.Price <= 0 {
		return fmt.Errorf("player price must be greater than zero")
	}

	return nil
}
