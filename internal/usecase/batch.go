package usecase

import (
	"sort"

	crerr "github.com/cockroachdb/errors"
)

// UserFailure is one user whose gameweek points could not be computed.
type UserFailure struct {
	UserID string
	Err    error
}

// BatchReport summarises a partial-success batch over many users.
type BatchReport struct {
	Gameweek  int
	Succeeded int
	Skipped   int
	Failures  []UserFailure
}

func (r BatchReport) Failed() int {
	return len(r.Failures)
}

// Err combines every per-user failure into one error, or returns nil.
func (r BatchReport) Err() error {
	var combined error
	for _, failure := range r.Failures {
		combined = crerr.CombineErrors(combined, crerr.Wrapf(failure.Err, "user %s", failure.UserID))
	}
	return combined
}

func (r *BatchReport) sortFailures() {
	sort.SliceStable(r.Failures, func(i, j int) bool {
		return r.Failures[i].UserID < r.Failures[j].UserID
	})
}
