package gameweek

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusLive     Status = "live"
	StatusFinished Status = "finished"
)

// Gameweek is one round of fixtures. It becomes finished through an external status
// transition.
type Gameweek struct {
	Number     int
	Name       string
	DeadlineAt time.Time
	Status     Status
	FinishedAt *time.Time
}

func (g Gameweek) IsFinished() bool {
	return g.Status == StatusFinished
}

func (g Gameweek) Validate() error {
	if g.Number <= 0 {
		return fmt.Errorf("gameweek number must be greater than zero")
	}
	switch g.Status {
	case StatusUpcoming, StatusLive, StatusFinished:
	default:
		return fmt.Errorf("invalid gameweek status: %s", g.Status)
	}
	return nil
}

// FinishedNumbers returns the numbers of finished gameweeks up to and including upTo.
// upTo <= 0 means no upper bound.
func FinishedNumbers(items []Gameweek, upTo int) []int {
	out := make([]int, 0, len(items))
	for _, item := range items {
		if !item.IsFinished() {
			continue
		}
		if upTo > 0 && item.Number > upTo {
			continue
		}
		out = append(out, item.Number)
	}
	return out
}
