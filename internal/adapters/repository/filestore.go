// Package repository defines the move log store interface and errors.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/okian/tilebingo/internal/domain/model"
	"github.com/okian/tilebingo/pkg/metrics"
)

// defaultPath mirrors the historical log filename.
const defaultPath = "move_log.json"

// FileStore is a Store backed by a single JSON file. Writes go to a temp
// file in the same directory followed by an atomic rename, so a crash
// mid-write never corrupts the previous valid content.
type FileStore struct {
	mu    sync.Mutex
	path  string
	moves []model.Move
}

// NewFileStore creates a file-backed store with configuration options.
func NewFileStore(opts ...Option) *FileStore {
	s := &FileStore{
		path: defaultPath,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load reads the persisted log. A missing file yields an empty log.
func (s *FileStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.moves = nil
			metrics.UpdateMoveLogSize(0)
			return nil
		}
		return fmt.Errorf("read move log %q: %w", s.path, err)
	}

	var moves []model.Move
	if err := json.Unmarshal(raw, &moves); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrCorruptLog, s.path, err)
	}
	s.moves = moves
	metrics.UpdateMoveLogSize(len(s.moves))
	return nil
}

// Save writes the full sequence. Callers holding no lock should use the
// public mutating operations instead.
func (s *FileStore) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes temp-then-rename. Callers must hold the lock.
func (s *FileStore) save() error {
	start := time.Now()
	defer func() {
		metrics.RecordPersistLatency(float64(time.Since(start).Milliseconds()))
	}()

	moves := s.moves
	if moves == nil {
		moves = []model.Move{} // persist an empty array, not null
	}
	data, err := json.MarshalIndent(moves, "", "  ")
	if err != nil {
		return fmt.Errorf("encode move log: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".move_log-*.json")
	if err != nil {
		return fmt.Errorf("create temp move log in %q: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp move log %q: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp move log %q: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename move log into place: %w", err)
	}

	metrics.UpdateMoveLogSize(len(s.moves))
	return nil
}

// Append adds a move and persists. The in-memory append is rolled back if
// the write fails, so memory and disk never disagree about a success.
func (s *FileStore) Append(ctx context.Context, mv model.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.moves = append(s.moves, mv)
	if err := s.save(); err != nil {
		s.moves = s.moves[:len(s.moves)-1]
		metrics.RecordPersistError()
		return err
	}
	return nil
}

// RemoveLast removes the most recent move for a team, in log order, and
// persists. Exactly one entry is removed even if duplicates exist.
func (s *FileStore) RemoveLast(ctx context.Context, teamID int) (model.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := len(s.moves) - 1; i >= 0; i-- {
		if s.moves[i].TeamID == teamID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.Move{}, fmt.Errorf("%w: team %d", ErrNoMovesForTeam, teamID)
	}

	removed := s.moves[idx]
	rest := make([]model.Move, 0, len(s.moves)-1)
	rest = append(rest, s.moves[:idx]...)
	rest = append(rest, s.moves[idx+1:]...)

	prev := s.moves
	s.moves = rest
	if err := s.save(); err != nil {
		s.moves = prev
		metrics.RecordPersistError()
		return model.Move{}, err
	}
	return removed, nil
}

// Moves returns a copy of the full ordered log.
func (s *FileStore) Moves(ctx context.Context) []model.Move {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Move, len(s.moves))
	copy(out, s.moves)
	return out
}

// MovesForTeam returns a copy of the team's subset, preserving log order.
func (s *FileStore) MovesForTeam(ctx context.Context, teamID int) []model.Move {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Move
	for _, mv := range s.moves {
		if mv.TeamID == teamID {
			out = append(out, mv)
		}
	}
	return out
}

// Len returns the current number of logged moves.
func (s *FileStore) Len(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.moves)
}
