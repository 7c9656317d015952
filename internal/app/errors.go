package app

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel kinds for engine errors. All are rendered to user-facing text by
// the chat adapter; none of them is fatal.
var (
	ErrNotOnTeam       = errors.New("user is not on any team")
	ErrOnCooldown      = errors.New("team is on cooldown")
	ErrAlreadyRevealed = errors.New("tile already revealed")
	ErrTeamNotFound    = errors.New("team not found")
	ErrUnauthorized    = errors.New("unauthorized")
)

// CooldownError carries the remaining wait alongside the ErrOnCooldown kind.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s: %s remaining", ErrOnCooldown, e.Remaining.Round(time.Second))
}

// Unwrap makes errors.Is(err, ErrOnCooldown) work.
func (e *CooldownError) Unwrap() error { return ErrOnCooldown }
