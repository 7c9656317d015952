// Package chat is the inbound command boundary: it parses raw command text,
// funnels commands through the queue to the single worker, and renders every
// outcome as a user-facing message. There is no silent failure mode.
package chat

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/okian/tilebingo/internal/adapters/mq/queue"
	"github.com/okian/tilebingo/internal/adapters/mq/worker"
	"github.com/okian/tilebingo/internal/app"
	"github.com/okian/tilebingo/internal/domain/flavor"
	"github.com/okian/tilebingo/internal/domain/model"
	"github.com/okian/tilebingo/pkg/logger"
	"github.com/okian/tilebingo/pkg/metrics"
)

// Command status labels for metrics.
const (
	statusOK       = "ok"
	statusRejected = "rejected"
	statusBusy     = "busy"
)

// Dispatcher parses commands, enforces admin gating, and composes replies.
type Dispatcher struct {
	engine *app.Service
	queue  queue.Queue
	flavor *flavor.Composer
	admins map[int64]struct{}
	logger logger.Logger
}

// New creates a dispatcher over the engine and the command queue.
func New(engine *app.Service, q queue.Queue, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		engine: engine,
		queue:  q,
		admins: make(map[int64]struct{}),
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.flavor == nil {
		d.flavor = flavor.New()
	}
	if d.logger == nil {
		d.logger = logger.Get().Named("chat")
	}

	return d
}

// Dispatch enqueues one raw command and waits for its reply. This is the
// entry point transports call; execution itself happens on the worker.
func (d *Dispatcher) Dispatch(ctx context.Context, discordID int64, text string) (string, error) {
	cmd := model.Command{
		ID:        uuid.NewString(),
		DiscordID: discordID,
		Text:      strings.TrimSpace(text),
		Reply:     make(chan model.Reply, 1),
	}

	if !d.queue.Enqueue(ctx, cmd) {
		metrics.RecordCommand(commandWord(cmd.Text), statusBusy)
		return msgBusy, nil
	}

	select {
	case reply := <-cmd.Reply:
		return reply.Text, nil
	case <-ctx.Done():
		return "", fmt.Errorf("waiting for reply to command %s: %w", cmd.ID, ctx.Err())
	}
}

// Execute runs one dequeued command. It satisfies the worker's Executor
// contract: the returned text is always user-facing, and a non-nil error
// additionally flags an unexpected failure for logging.
func (d *Dispatcher) Execute(ctx context.Context, cmd worker.Command) (string, error) {
	word, args := splitCommand(cmd.Text)

	text, err := d.run(ctx, cmd.DiscordID, word, args)
	if err != nil {
		metrics.RecordCommand(word, statusRejected)
		rendered := renderError(err, d.engine.CooldownWindow())
		if !expected(err) {
			// Surface unexpected failures (e.g. persistence loss) to the
			// worker's error log while still answering the user.
			return rendered, err
		}
		return rendered, nil
	}

	metrics.RecordCommand(word, statusOK)
	return text, nil
}

func (d *Dispatcher) run(ctx context.Context, discordID int64, word string, args []string) (string, error) {
	switch word {
	case "select", "reveal":
		return d.reveal(ctx, discordID, args)
	case "board":
		return d.engine.BoardViewFor(ctx, discordID)
	case "team":
		return d.team(discordID)
	case "teams":
		return renderTeams(d.engine.Registry().Teams()), nil
	case "moves":
		return d.moves(ctx, discordID, args)
	case "last":
		return d.last(ctx, discordID)
	case "undo":
		return d.undo(ctx, discordID, args)
	case "cooldowns":
		return d.cooldowns(ctx, discordID)
	case "reset_cooldown":
		return d.resetCooldown(ctx, discordID, args)
	case "leaderboard":
		return d.leaderboard(ctx, discordID)
	case "commands", "help":
		return helpText, nil
	default:
		return msgUnknownCommand(word), nil
	}
}

func (d *Dispatcher) reveal(ctx context.Context, discordID int64, args []string) (string, error) {
	if len(args) == 0 {
		return msgSelectUsage, nil
	}

	// Rejoin so "select A, 2" and "select A,2" both reach the parser.
	tile, err := d.engine.Reveal(ctx, discordID, strings.Join(args, " "))
	if err != nil {
		return "", err
	}

	name := d.engine.Registry().MemberName(discordID)
	return d.flavor.Reveal(tile, name), nil
}

func (d *Dispatcher) team(discordID int64) (string, error) {
	team, ok := d.engine.Registry().TeamFor(discordID)
	if !ok {
		return "", fmt.Errorf("%w: user %d", app.ErrNotOnTeam, discordID)
	}
	return renderTeam(team), nil
}

func (d *Dispatcher) moves(ctx context.Context, discordID int64, args []string) (string, error) {
	team, onTeam := d.engine.Registry().TeamFor(discordID)

	if len(args) > 0 {
		teamID, err := strconv.Atoi(args[0])
		if err != nil {
			return msgTeamIDUsage("moves"), nil
		}
		// Members may read their own team's history; anyone else's is an
		// admin capability.
		if (!onTeam || team.ID != teamID) && !d.isAdmin(discordID) {
			return "", fmt.Errorf("%w: moves for team %d", app.ErrUnauthorized, teamID)
		}
		moves, err := d.engine.MovesForTeam(ctx, teamID)
		if err != nil {
			return "", err
		}
		return renderMoves(teamID, moves, d.engine.Registry()), nil
	}

	if !onTeam {
		return "", fmt.Errorf("%w: user %d", app.ErrNotOnTeam, discordID)
	}
	moves, err := d.engine.MovesForTeam(ctx, team.ID)
	if err != nil {
		return "", err
	}
	return renderMoves(team.ID, moves, d.engine.Registry()), nil
}

func (d *Dispatcher) last(ctx context.Context, discordID int64) (string, error) {
	tile, err := d.engine.LastRevealed(ctx, discordID)
	if err != nil {
		return "", err
	}
	name := d.engine.Registry().MemberName(discordID)
	return d.flavor.Reveal(tile, name), nil
}

func (d *Dispatcher) undo(ctx context.Context, discordID int64, args []string) (string, error) {
	if len(args) == 0 {
		return msgTeamIDUsage("undo"), nil
	}
	teamID, err := strconv.Atoi(args[0])
	if err != nil {
		return msgTeamIDUsage("undo"), nil
	}

	mv, err := d.engine.Undo(ctx, teamID, d.isAdmin(discordID))
	if err != nil {
		return "", err
	}
	return msgUndone(teamID, mv), nil
}

func (d *Dispatcher) cooldowns(ctx context.Context, discordID int64) (string, error) {
	statuses, err := d.engine.Cooldowns(ctx, d.isAdmin(discordID))
	if err != nil {
		return "", err
	}
	return renderCooldowns(statuses), nil
}

func (d *Dispatcher) resetCooldown(ctx context.Context, discordID int64, args []string) (string, error) {
	if len(args) == 0 {
		return msgTeamIDUsage("reset_cooldown"), nil
	}
	teamID, err := strconv.Atoi(args[0])
	if err != nil {
		return msgTeamIDUsage("reset_cooldown"), nil
	}

	cleared, err := d.engine.ResetCooldown(ctx, teamID, d.isAdmin(discordID))
	if err != nil {
		return "", err
	}
	return msgCooldownReset(teamID, cleared), nil
}

func (d *Dispatcher) leaderboard(ctx context.Context, discordID int64) (string, error) {
	entries, err := d.engine.Leaderboard(ctx, d.isAdmin(discordID))
	if err != nil {
		return "", err
	}
	return renderLeaderboard(entries), nil
}

func (d *Dispatcher) isAdmin(discordID int64) bool {
	_, ok := d.admins[discordID]
	return ok
}

// splitCommand lowercases the command word and returns the remaining args.
func splitCommand(text string) (string, []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

func commandWord(text string) string {
	word, _ := splitCommand(text)
	return word
}
