package chat

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/okian/tilebingo/internal/adapters/repository"
	"github.com/okian/tilebingo/internal/app"
	"github.com/okian/tilebingo/internal/domain/model"
	"github.com/okian/tilebingo/internal/domain/roster"
	"github.com/okian/tilebingo/internal/domain/types"
)

// Fixed reply strings.
const (
	msgBusy        = "⏳ The board is swamped right now. Give it a moment and try again."
	msgSelectUsage = "Usage: `select <row>,<column>` — for example `select A,2`."

	helpText = "**Available commands**\n" +
		"`select A,2` (or `reveal A,2`) — reveal a tile for your team\n" +
		"`board` — show your team's board\n" +
		"`team` — show your team's roster\n" +
		"`teams` — list all teams\n" +
		"`moves [team_id]` — list logged moves (yours by default; other teams admin-only)\n" +
		"`last` — repeat your team's most recent reveal\n" +
		"`undo <team_id>` — admin: undo a team's latest move\n" +
		"`cooldowns` — admin: show live cooldowns\n" +
		"`reset_cooldown <team_id>` — admin: clear a team's cooldown\n" +
		"`leaderboard` — admin: team standings\n" +
		"`commands` / `help` — this list"
)

func msgUnknownCommand(word string) string {
	if word == "" {
		return helpText
	}
	return fmt.Sprintf("❓ Unknown command `%s`. Try `help`.", word)
}

func msgTeamIDUsage(command string) string {
	return fmt.Sprintf("Usage: `%s <team_id>`.", command)
}

func msgUndone(teamID int, mv model.Move) string {
	return fmt.Sprintf("↩️ Undid team %d's move: tile **%s** is hidden again.", teamID, mv.Coord)
}

func msgCooldownReset(teamID int, cleared int) string {
	if cleared == 0 {
		return fmt.Sprintf("✅ Team %d had no active cooldown.", teamID)
	}
	return fmt.Sprintf("✅ Cooldown cleared for team %d. They may reveal immediately.", teamID)
}

// expected reports whether an error belongs to the rule taxonomy rendered
// for users, as opposed to an operational failure worth an error log.
func expected(err error) bool {
	for _, kind := range []error{
		app.ErrNotOnTeam,
		app.ErrOnCooldown,
		app.ErrAlreadyRevealed,
		app.ErrTeamNotFound,
		app.ErrUnauthorized,
		model.ErrInvalidCoordinateFormat,
		model.ErrCoordinateOutOfRange,
		model.ErrTileNotFound,
		repository.ErrNoMovesForTeam,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// renderError turns any engine error into a user-facing message.
func renderError(err error, window time.Duration) string {
	var ce *app.CooldownError
	if errors.As(err, &ce) {
		return fmt.Sprintf("🕐 Your team is on cooldown! Next reveal available in **%s**.",
			formatDuration(ce.Remaining))
	}

	switch {
	case errors.Is(err, app.ErrNotOnTeam):
		return "🚫 You're not on any team. Ask an organizer to add you to the roster."
	case errors.Is(err, app.ErrAlreadyRevealed):
		return "👀 That tile is already revealed! Check `board` and pick a hidden one."
	case errors.Is(err, app.ErrTeamNotFound):
		return "❓ No team with that id."
	case errors.Is(err, app.ErrUnauthorized):
		return "🚫 That command is for admins only."
	case errors.Is(err, model.ErrInvalidCoordinateFormat):
		return "❌ I couldn't read that coordinate. " + msgSelectUsage
	case errors.Is(err, model.ErrCoordinateOutOfRange), errors.Is(err, model.ErrTileNotFound):
		return fmt.Sprintf("❌ That's off the board! Rows are A-G and columns 1-%d.", model.BoardSize)
	case errors.Is(err, repository.ErrNoMovesForTeam):
		return "📭 No moves logged for that team yet."
	default:
		return "💥 Something went wrong and no changes were saved. Please try again."
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) - m*60
	if s == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dm %ds", m, s)
}

func renderTeam(team *roster.Team) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**Team %d** (%d members)\n", team.ID, len(team.Members))
	for _, m := range team.Members {
		fmt.Fprintf(&sb, "• %s\n", m.RSN)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderTeams(teams []*roster.Team) string {
	var sb strings.Builder
	sb.WriteString("**Teams**\n")
	for _, team := range teams {
		names := make([]string, 0, len(team.Members))
		for _, m := range team.Members {
			names = append(names, m.RSN)
		}
		fmt.Fprintf(&sb, "**%d** — %s\n", team.ID, strings.Join(names, ", "))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderMoves(teamID int, moves []model.Move, reg *roster.Registry) string {
	if len(moves) == 0 {
		return fmt.Sprintf("📭 No moves logged for team %d yet.", teamID)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**Team %d move log** (%d)\n", teamID, len(moves))
	for i, mv := range moves {
		fmt.Fprintf(&sb, "%d. **%s** by %s at %s\n",
			i+1, mv.Coord, reg.MemberName(mv.DiscordID), mv.Timestamp.Format("2006-01-02 15:04 MST"))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderCooldowns(statuses []types.CooldownStatus) string {
	if len(statuses) == 0 {
		return "✅ No team is on cooldown."
	}

	var sb strings.Builder
	sb.WriteString("**Active cooldowns**\n")
	for _, st := range statuses {
		if st.DiscordID != 0 {
			fmt.Fprintf(&sb, "Team %d / user %d — %s remaining\n",
				st.TeamID, st.DiscordID, formatDuration(st.Remaining))
			continue
		}
		fmt.Fprintf(&sb, "Team %d — %s remaining\n", st.TeamID, formatDuration(st.Remaining))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderLeaderboard(entries []types.LeaderboardEntry) string {
	var sb strings.Builder
	sb.WriteString("🏆 **Leaderboard**\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "%d. Team %d — **%d** points (%d tiles)\n",
			e.Rank, e.TeamID, e.Score, e.Revealed)
	}
	return strings.TrimRight(sb.String(), "\n")
}
