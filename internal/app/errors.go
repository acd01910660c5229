package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrTeamNotFound = errors.New("team not found")
	ErrInvalidDays  = errors.New("days must be >= 1")
	ErrUpstream     = errors.New("league provider failed")
)
