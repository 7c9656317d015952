// Package roster holds the static team registry: who is on which team and
// which board each team owns. Built once at startup; no team lifecycle.
package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/okian/tilebingo/internal/domain/model"
)

// Member is a team member: display name plus external chat user id.
// Members exist only embedded in a Team.
type Member struct {
	RSN       string `json:"rsn"`
	DiscordID int64  `json:"discord_id"`
}

// Team owns exactly one board and an ordered member list.
type Team struct {
	ID      int
	Members []Member
	Board   *model.Board
}

// teamDef is the on-disk roster shape; boards are instantiated per team from
// the shared tile template.
type teamDef struct {
	ID      int      `json:"id"`
	Members []Member `json:"members"`
}

// Registry answers membership and team lookups for the process lifetime.
type Registry struct {
	teams []*Team
}

// New builds a registry from already-constructed teams.
func New(teams []*Team) *Registry {
	return &Registry{teams: teams}
}

// Load reads the tile template and team roster files and builds one board
// per team from the shared template. Any failure here is fatal to startup:
// a partial board is never acceptable.
func Load(ctx context.Context, tilesPath, teamsPath string) (*Registry, error) {
	template, err := LoadTileDefinitions(ctx, tilesPath)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(teamsPath)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrLoadRoster, teamsPath, err)
	}
	var defs []teamDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrLoadRoster, teamsPath, err)
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w %q: no teams defined", ErrLoadRoster, teamsPath)
	}

	teams := make([]*Team, 0, len(defs))
	for _, d := range defs {
		teams = append(teams, &Team{
			ID:      d.ID,
			Members: d.Members,
			Board:   model.NewBoard(template),
		})
	}
	return New(teams), nil
}

// LoadTileDefinitions reads the static tile template used for every board.
func LoadTileDefinitions(ctx context.Context, path string) ([]model.Tile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrLoadTiles, path, err)
	}
	var defs []model.Tile
	if err := json.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrLoadTiles, path, err)
	}
	return defs, nil
}

// TeamFor returns the team containing the given user, if any. Duplicate
// membership is undefined input; the first match in roster order wins.
func (r *Registry) TeamFor(discordID int64) (*Team, bool) {
	for _, team := range r.teams {
		for _, m := range team.Members {
			if m.DiscordID == discordID {
				return team, true
			}
		}
	}
	return nil, false
}

// Team returns the team with the given id.
func (r *Registry) Team(id int) (*Team, bool) {
	for _, team := range r.teams {
		if team.ID == id {
			return team, true
		}
	}
	return nil, false
}

// Teams returns all teams in roster order.
func (r *Registry) Teams() []*Team {
	return r.teams
}

// MemberName returns the display name of a user within a team, falling back
// to the raw id when the user is not on the roster.
func (r *Registry) MemberName(discordID int64) string {
	for _, team := range r.teams {
		for _, m := range team.Members {
			if m.DiscordID == discordID {
				return m.RSN
			}
		}
	}
	return fmt.Sprintf("user %d", discordID)
}
