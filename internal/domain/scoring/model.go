package scoring

import (
	"time"

	"github.com/riskibarqy/fantasy-points/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-points/internal/domain/player"
)

// Breakdown category keys.
const (
	KeyPlaying         = "playing"
	KeySixtyMinutes    = "60_minutes"
	KeyGoalsScored     = "goals_scored"
	KeyAssists         = "assists"
	KeyCleanSheets     = "clean_sheets"
	KeySaves           = "saves"
	KeyPenaltiesSaved  = "penalties_saved"
	KeyPenaltiesMissed = "penalties_missed"
	KeyYellowCards     = "yellow_cards"
	KeyRedCards        = "red_cards"
	KeyOwnGoals        = "own_goals"
	KeyGoalsConceded   = "goals_conceded"
	KeyBonus           = "bonus"
)

// Breakdown maps a scoring category to the points it contributed. Zero categories are omitted.
type Breakdown map[string]int

func (b Breakdown) Total() int {
	total := 0
	for _, points := range b {
		total += points
	}
	return total
}

func (b Breakdown) add(key string, points int) {
	if points == 0 {
		return
	}
	b[key] += points
}

func (b Breakdown) Clone() Breakdown {
	out := make(Breakdown, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// PlayerScore is the output of ScorePlayer.
type PlayerScore struct {
	Points    int
	Breakdown Breakdown
}

// PlayerPoints is one squad pick's contribution to a gameweek result.
type PlayerPoints struct {
	PlayerID      string
	Position      player.Position
	Minutes       int
	RawPoints     int
	Multiplier    int
	FinalPoints   int
	IsCaptain     bool
	IsViceCaptain bool
	// Counted is true for the XI that scores after substitutions.
	Counted   bool
	Breakdown Breakdown
}

// Substitution records a bench player replacing a starter.
type Substitution struct {
	OutPlayerID string
	InPlayerID  string
}

// GameweekPointsResult is the scored squad of one user for one gameweek.
type GameweekPointsResult struct {
	UserID        string
	Gameweek      int
	SquadID       string
	Chip          fantasy.Chip
	TotalPoints   int
	Players       []PlayerPoints
	Substitutions []Substitution
	Finalized     bool
	CalculatedAt  time.Time
}

func (r GameweekPointsResult) Player(playerID string) (PlayerPoints, bool) {
	for _, item := range r.Players {
		if item.PlayerID == playerID {
			return item, true
		}
	}
	return PlayerPoints{}, false
}

// UserGameweekTotal is the stored total of one user for one gameweek.
type UserGameweekTotal struct {
	UserID      string
	Gameweek    int
	TotalPoints int
}
