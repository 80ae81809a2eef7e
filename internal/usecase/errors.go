package usecase

import "errors"

// Caller errors.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("resource not found")
	ErrLeagueFull    = errors.New("league is full")
	ErrAlreadyMember = errors.New("user already joined league")
)

// ErrGameweekNotFinished guards finalization of a gameweek that is still live.
var ErrGameweekNotFinished = errors.New("gameweek is not finished")

// ErrDependencyUnavailable wraps storage failures so callers can tell them from bad input.
var ErrDependencyUnavailable = errors.New("dependency unavailable")
