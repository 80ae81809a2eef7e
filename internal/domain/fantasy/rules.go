package fantasy

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fantasy-points/internal/domain/player"
)

const (
	SquadSize    = 15
	StartersSize = 11
)

var (
	ErrInvalidSquadInvariant  = errors.New("invalid squad invariant")
	ErrInvalidSquadSize       = errors.New("invalid squad size")
	ErrInvalidFormation       = errors.New("invalid formation")
	ErrInsufficientFormation  = errors.New("minimum formation requirement not met")
	ErrDuplicatePlayerInSquad = errors.New("duplicate player in squad")
	ErrCaptainNotInSquad      = errors.New("captain is not in squad")
	ErrViceCaptainNotInSquad  = errors.New("vice captain is not in squad")
)

var structValidator = validator.New()

// Formation is the outfield shape of the starting XI, e.g. "4-4-2".
type Formation struct {
	Defenders   int
	Midfielders int
	Forwards    int
}

func (f Formation) String() string {
	return fmt.Sprintf("%d-%d-%d", f.Defenders, f.Midfielders, f.Forwards)
}

func (f Formation) Counts() map[player.Position]int {
	return map[player.Position]int{
		player.PositionGoalkeeper: 1,
		player.PositionDefender:   f.Defenders,
		player.PositionMidfielder: f.Midfielders,
		player.PositionForward:    f.Forwards,
	}
}

func ParseFormation(raw string) (Formation, error) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 3 {
		return Formation{}, fmt.Errorf("%w: %q", ErrInvalidFormation, raw)
	}

	values := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Formation{}, fmt.Errorf("%w: %q", ErrInvalidFormation, raw)
		}
		values[i] = n
	}

	f := Formation{Defenders: values[0], Midfielders: values[1], Forwards: values[2]}
	if f.Defenders+f.Midfielders+f.Forwards != StartersSize-1 {
		return Formation{}, fmt.Errorf("%w: %q must have %d outfield players", ErrInvalidFormation, raw, StartersSize-1)
	}
	return f, nil
}

// Rules stores starting XI constraints.
type Rules struct {
	MinStartersByPosition map[player.Position]int
	MaxGoalkeepers        int
}

func DefaultRules() Rules {
	return Rules{
		MinStartersByPosition: map[player.Position]int{
			player.PositionGoalkeeper: 1,
			player.PositionDefender:   3,
			player.PositionMidfielder: 2,
			player.PositionForward:    1,
		},
		MaxGoalkeepers: 1,
	}
}

// FormationOf derives the formation from a starting XI.
func FormationOf(starters []SquadPick) Formation {
	var f Formation
	for _, pick := range starters {
		switch pick.Position {
		case player.PositionDefender:
			f.Defenders++
		case player.PositionMidfielder:
			f.Midfielders++
		case player.PositionForward:
			f.Forwards++
		}
	}
	return f
}

// ValidateStarters checks the XI size and per-position limits.
func ValidateStarters(starters []SquadPick, rules Rules) error {
	if len(starters) != StartersSize {
		return fmt.Errorf("%w: expected %d starters, got %d", ErrInvalidSquadSize, StartersSize, len(starters))
	}

	counter := make(map[player.Position]int)
	for _, pick := range starters {
		counter[pick.Position]++
	}
	if counter[player.PositionGoalkeeper] > rules.MaxGoalkeepers {
		return fmt.Errorf("%w: pos=%s max=%d current=%d", ErrInsufficientFormation, player.PositionGoalkeeper, rules.MaxGoalkeepers, counter[player.PositionGoalkeeper])
	}
	for pos, minRequired := range rules.MinStartersByPosition {
		if counter[pos] < minRequired {
			return fmt.Errorf("%w: pos=%s min=%d current=%d", ErrInsufficientFormation, pos, minRequired, counter[pos])
		}
	}
	return nil
}

// ValidateForScoring re-checks the squad invariants the scoring path depends on.
// Every failure wraps ErrInvalidSquadInvariant.
func ValidateForScoring(s Squad, rules Rules) error {
	if err := validateForScoring(s, rules); err != nil {
		return fmt.Errorf("%w: user=%s gameweek=%d: %w", ErrInvalidSquadInvariant, s.UserID, s.Gameweek, err)
	}
	return nil
}

func validateForScoring(s Squad, rules Rules) error {
	if len(s.Picks) != SquadSize {
		return fmt.Errorf("%w: expected %d, got %d", ErrInvalidSquadSize, SquadSize, len(s.Picks))
	}
	if err := structValidator.Struct(s); err != nil {
		return fmt.Errorf("validation failed: %v", err)
	}

	playerSet := make(map[string]struct{}, len(s.Picks))
	for _, pick := range s.Picks {
		if _, exists := playerSet[pick.PlayerID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayerInSquad, pick.PlayerID)
		}
		playerSet[pick.PlayerID] = struct{}{}
	}
	if _, ok := playerSet[s.CaptainID]; !ok {
		return fmt.Errorf("%w: %s", ErrCaptainNotInSquad, s.CaptainID)
	}
	if _, ok := playerSet[s.ViceCaptainID]; !ok {
		return fmt.Errorf("%w: %s", ErrViceCaptainNotInSquad, s.ViceCaptainID)
	}

	formation, err := ParseFormation(s.Formation)
	if err != nil {
		return err
	}
	starters := s.Starters()
	if err := ValidateStarters(starters, rules); err != nil {
		return err
	}
	if actual := FormationOf(starters); actual != formation {
		return fmt.Errorf("%w: declared %s, starters form %s", ErrInvalidFormation, formation, actual)
	}
	return nil
}
