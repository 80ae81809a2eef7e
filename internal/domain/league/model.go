package league

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrCapacityReached = errors.New("league capacity reached")
	ErrDuplicateMember = errors.New("user already in league")
)

type Type string

const (
	TypeClassic    Type = "classic"
	TypeHeadToHead Type = "h2h"
)

type RankMovement string

const (
	RankMovementUp   RankMovement = "up"
	RankMovementDown RankMovement = "down"
	RankMovementSame RankMovement = "same"
	RankMovementNew  RankMovement = "new"
)

// League is a user-run competition ranked by cumulative fantasy points.
type League struct {
	ID          string
	Name        string
	Code        string
	Type        Type
	IsPrivate   bool
	AdminUserID string
	Capacity    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.Code == "" {
		return fmt.Errorf("league code is required")
	}
	switch l.Type {
	case TypeClassic, TypeHeadToHead:
	default:
		return fmt.Errorf("invalid league type: %s", l.Type)
	}
	if l.AdminUserID == "" {
		return fmt.Errorf("league admin is required")
	}
	if l.Capacity <= 0 {
		return fmt.Errorf("league capacity must be greater than zero")
	}

	return nil
}

// Membership relates a user to a league.
type Membership struct {
	LeagueID string
	UserID   string
	JoinedAt time.Time
}

// Standing is one leaderboard row as of a gameweek.
type Standing struct {
	LeagueID     string
	UserID       string
	Gameweek     int
	Points       int
	Rank         int
	JoinedAt     time.Time
	PreviousRank *int
	Movement     RankMovement
	CalculatedAt time.Time
}
