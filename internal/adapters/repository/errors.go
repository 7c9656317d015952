package repository

import "errors"

// Sentinel kinds for move log errors.
var (
	ErrNoMovesForTeam = errors.New("no moves recorded for team")
	ErrCorruptLog     = errors.New("corrupt move log")
)
