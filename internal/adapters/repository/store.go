// Package repository defines the move log store interface and errors.
// The move log is the single source of truth for revealed board state.
package repository

import (
	"context"

	"github.com/okian/tilebingo/internal/domain/model"
)

// Store provides ordered, durable access to the move log. Append and
// RemoveLast are logical operations over the in-memory sequence, each
// followed by a full save; mutations are only acknowledged once persisted.
type Store interface {
	// Load reads the persisted log into memory. A missing file yields an
	// empty log, not an error (first run).
	Load(ctx context.Context) error

	// Save writes the full in-memory sequence to durable storage.
	Save(ctx context.Context) error

	// Append adds a move to the end of the log and persists.
	Append(ctx context.Context, mv model.Move) error

	// RemoveLast removes the most recent move for a team (exactly one
	// entry, in log order) and persists. Returns the removed move, or
	// ErrNoMovesForTeam.
	RemoveLast(ctx context.Context, teamID int) (model.Move, error)

	// Moves returns a copy of the full ordered log.
	Moves(ctx context.Context) []model.Move

	// MovesForTeam returns a copy of the team's subset, in log order.
	MovesForTeam(ctx context.Context, teamID int) []model.Move

	// Len returns the current number of logged moves.
	Len(ctx context.Context) int
}
