// Package app owns the game engine: the reveal transaction, its inverse, and
// the read models derived from the move log. All state mutation funnels
// through one mutex so the engine stays correct even when called outside the
// single command worker (tests, future transports).
package app

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/okian/tilebingo/internal/adapters/repository"
	"github.com/okian/tilebingo/internal/domain/cooldown"
	"github.com/okian/tilebingo/internal/domain/model"
	"github.com/okian/tilebingo/internal/domain/projection"
	"github.com/okian/tilebingo/internal/domain/roster"
	"github.com/okian/tilebingo/internal/domain/scoring"
	"github.com/okian/tilebingo/internal/domain/types"
	"github.com/okian/tilebingo/pkg/logger"
	"github.com/okian/tilebingo/pkg/metrics"
)

// Rejection reason labels for the reveal metrics.
const (
	reasonNotOnTeam       = "not_on_team"
	reasonCooldown        = "cooldown"
	reasonBadCoordinate   = "bad_coordinate"
	reasonAlreadyRevealed = "already_revealed"
	reasonPersist         = "persist"
)

// Service is the engine. The move log is ground truth; every board's
// revealed flags are a projection the service keeps in sync under its mutex.
type Service struct {
	mu     sync.Mutex
	teams  *roster.Registry
	log    repository.Store
	gate   *cooldown.Gate
	now    func() time.Time
	logger logger.Logger
}

// New creates the engine over a registry, a move log store and a cooldown
// gate.
func New(teams *roster.Registry, log repository.Store, gate *cooldown.Gate, opts ...Option) *Service {
	s := &Service{
		teams: teams,
		log:   log,
		gate:  gate,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("engine")
	}

	return s
}

// Start loads the persisted move log and projects it onto every board.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.log.Load(ctx); err != nil {
		return fmt.Errorf("loading move log: %w", err)
	}

	moves := s.log.Moves(ctx)
	for _, team := range s.teams.Teams() {
		projection.Apply(team.Board, team.ID, moves)
		score, _ := scoring.BoardScore(team.Board)
		metrics.UpdateTeamScore(strconv.Itoa(team.ID), score)
	}

	s.logger.Info(ctx, "engine started",
		logger.Int("teams", len(s.teams.Teams())),
		logger.Int("moves", s.log.Len(ctx)),
	)
	return nil
}

// Registry exposes the team registry for adapters that render rosters.
func (s *Service) Registry() *roster.Registry { return s.teams }

// Reveal runs the reveal transaction for one user-supplied coordinate and
// returns a copy of the revealed tile for message composition. On any error
// the move log length and board state are unchanged.
func (s *Service) Reveal(ctx context.Context, discordID int64, coordText string) (model.Tile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.teams.TeamFor(discordID)
	if !ok {
		metrics.RecordRevealRejection(reasonNotOnTeam)
		return model.Tile{}, fmt.Errorf("%w: user %d", ErrNotOnTeam, discordID)
	}

	// Cooldown is checked before the coordinate is even parsed, so a blocked
	// user learns the remaining wait rather than burning it on a typo report.
	if remaining, blocked := s.gate.Check(discordID, team.ID); blocked {
		metrics.RecordRevealRejection(reasonCooldown)
		metrics.RecordCooldownRejection()
		return model.Tile{}, &CooldownError{Remaining: remaining}
	}

	coord, err := model.ParseCoordinate(coordText)
	if err != nil {
		metrics.RecordRevealRejection(reasonBadCoordinate)
		return model.Tile{}, err
	}

	tile, err := team.Board.Lookup(coord)
	if err != nil {
		metrics.RecordRevealRejection(reasonBadCoordinate)
		return model.Tile{}, err
	}

	if tile.Revealed {
		metrics.RecordRevealRejection(reasonAlreadyRevealed)
		return model.Tile{}, fmt.Errorf("%w: %s", ErrAlreadyRevealed, coord)
	}

	tile.Revealed = true
	mv := model.Move{
		TeamID:    team.ID,
		DiscordID: discordID,
		Coord:     coord,
		Timestamp: s.now().UTC(),
	}
	if err := s.log.Append(ctx, mv); err != nil {
		// The store already rolled its sequence back; undo the tile flag so
		// board and log stay in agreement, and never confirm the reveal.
		tile.Revealed = false
		metrics.RecordRevealRejection(reasonPersist)
		s.logger.Error(ctx, "reveal not persisted",
			logger.Int("team", team.ID),
			logger.String("coord", coord.String()),
			logger.Error(err),
		)
		return model.Tile{}, fmt.Errorf("persisting move: %w", err)
	}

	s.gate.Record(discordID, team.ID)
	metrics.RecordReveal()
	score, _ := scoring.BoardScore(team.Board)
	metrics.UpdateTeamScore(strconv.Itoa(team.ID), score)

	s.logger.Info(ctx, "tile revealed",
		logger.Int("team", team.ID),
		logger.Int64("discordID", discordID),
		logger.String("coord", coord.String()),
	)
	return *tile, nil
}

// Undo removes the most recent move for a team and unreveals its tile. Admin
// capability; callers supply the authorization decision.
func (s *Service) Undo(ctx context.Context, teamID int, authorized bool) (model.Move, error) {
	if !authorized {
		return model.Move{}, ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.teams.Team(teamID)
	if !ok {
		return model.Move{}, fmt.Errorf("%w: %d", ErrTeamNotFound, teamID)
	}

	mv, err := s.log.RemoveLast(ctx, teamID)
	if err != nil {
		return model.Move{}, err
	}

	// Reproject from the surviving log instead of flipping one flag; this
	// stays correct even if a hand-edited log holds duplicate coordinates.
	projection.Apply(team.Board, teamID, s.log.Moves(ctx))
	metrics.RecordUndo()
	score, _ := scoring.BoardScore(team.Board)
	metrics.UpdateTeamScore(strconv.Itoa(teamID), score)

	s.logger.Info(ctx, "move undone",
		logger.Int("team", teamID),
		logger.String("coord", mv.Coord.String()),
	)
	return mv, nil
}

// ResetCooldown clears every cooldown entry for a team and reports how many
// were cleared. Always succeeds for authorized callers.
func (s *Service) ResetCooldown(ctx context.Context, teamID int, authorized bool) (int, error) {
	if !authorized {
		return 0, ErrUnauthorized
	}

	cleared := s.gate.Reset(teamID)
	metrics.RecordCooldownReset()
	s.logger.Info(ctx, "cooldown reset",
		logger.Int("team", teamID),
		logger.Int("cleared", cleared),
	)
	return cleared, nil
}

// BoardView projects and renders a team's board.
func (s *Service) BoardView(ctx context.Context, teamID int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.teams.Team(teamID)
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrTeamNotFound, teamID)
	}

	projection.Apply(team.Board, teamID, s.log.Moves(ctx))
	return projection.Render(team.Board), nil
}

// BoardViewFor renders the board of the caller's own team.
func (s *Service) BoardViewFor(ctx context.Context, discordID int64) (string, error) {
	team, ok := s.teams.TeamFor(discordID)
	if !ok {
		return "", fmt.Errorf("%w: user %d", ErrNotOnTeam, discordID)
	}
	return s.BoardView(ctx, team.ID)
}

// Moves returns the full ordered move log.
func (s *Service) Moves(ctx context.Context) []model.Move {
	return s.log.Moves(ctx)
}

// MovesForTeam returns one team's subset of the log, in log order.
func (s *Service) MovesForTeam(ctx context.Context, teamID int) ([]model.Move, error) {
	if _, ok := s.teams.Team(teamID); !ok {
		return nil, fmt.Errorf("%w: %d", ErrTeamNotFound, teamID)
	}
	return s.log.MovesForTeam(ctx, teamID), nil
}

// LastRevealed returns the tile behind the most recent move of the caller's
// team, so the current objective can be re-read mid-window.
func (s *Service) LastRevealed(ctx context.Context, discordID int64) (model.Tile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.teams.TeamFor(discordID)
	if !ok {
		return model.Tile{}, fmt.Errorf("%w: user %d", ErrNotOnTeam, discordID)
	}

	moves := s.log.MovesForTeam(ctx, team.ID)
	if len(moves) == 0 {
		return model.Tile{}, fmt.Errorf("%w: team %d", repository.ErrNoMovesForTeam, team.ID)
	}

	tile, err := team.Board.Lookup(moves[len(moves)-1].Coord)
	if err != nil {
		return model.Tile{}, err
	}
	return *tile, nil
}

// Cooldowns dumps the live cooldown entries for admin inspection.
func (s *Service) Cooldowns(ctx context.Context, authorized bool) ([]types.CooldownStatus, error) {
	if !authorized {
		return nil, ErrUnauthorized
	}
	return s.gate.Snapshot(), nil
}

// CooldownWindow returns the configured window length.
func (s *Service) CooldownWindow() time.Duration { return s.gate.Window() }

// Leaderboard projects every board from the log and ranks the teams.
func (s *Service) Leaderboard(ctx context.Context, authorized bool) ([]types.LeaderboardEntry, error) {
	if !authorized {
		return nil, ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	moves := s.log.Moves(ctx)
	for _, team := range s.teams.Teams() {
		projection.Apply(team.Board, team.ID, moves)
	}
	entries := scoring.Leaderboard(s.teams.Teams())
	for _, e := range entries {
		metrics.UpdateTeamScore(strconv.Itoa(e.TeamID), e.Score)
	}
	return entries, nil
}
