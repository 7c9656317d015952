// Command seed writes sample tiles.json and teams.json files so a fresh
// install has a playable board without hand-writing JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/google/uuid"
	"github.com/okian/tilebingo/internal/domain/model"
	"github.com/okian/tilebingo/internal/domain/roster"
)

// Default generation constants.
const (
	defaultTeams          = 2
	defaultMembersPerTeam = 4
	defaultBombs          = 4
	defaultUniques        = 6
	defaultCollections    = 10
)

// Sample content pools for generated tiles.
var (
	killCountSources  = []string{"General Graardor", "K'ril Tsutsaroth", "Commander Zilyana", "Kree'arra", "Vorkath", "Zulrah"}
	uniqueSources     = []string{"Chambers of Xeric", "Theatre of Blood", "Tombs of Amascut", "The Gauntlet", "Nightmare"}
	collectionDrops   = []string{"Rune Platebody", "Dragon Bones", "Zulrah Scale", "Onyx Bolt", "Grimy Ranarr Weed"}
	collectionSources = []string{"Slayer tasks", "Wilderness bosses", "Barrows", "Zulrah", "Herbiboar"}
	bombDrops         = []string{"Gnome Child Detonator", "Dwarven Boom Box", "Karamja Firecracker", "Wintertodt Ember"}
)

func main() {
	var (
		tilesPath = flag.String("tiles", "tiles.json", "Output path for the tile template")
		teamsPath = flag.String("teams", "teams.json", "Output path for the team rosters")
		teamCount = flag.Int("team-count", defaultTeams, "Number of teams to generate")
		teamSize  = flag.Int("team-size", defaultMembersPerTeam, "Members per team")
		seed      = flag.Int64("seed", 0, "Random seed (0 means nondeterministic)")
		bombs     = flag.Int("bombs", defaultBombs, "Number of bomb tiles")
		uniqueN   = flag.Int("uniques", defaultUniques, "Number of unique tiles")
		collectN  = flag.Int("collections", defaultCollections, "Number of collection tiles")
	)
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed)) //nolint:gosec // sample data only
	if *seed == 0 {
		rng = rand.New(rand.NewSource(int64(uuid.New().ID()))) //nolint:gosec // sample data only
	}

	tiles := generateTiles(rng, *bombs, *uniqueN, *collectN)
	if err := writeJSON(*tilesPath, tiles); err != nil {
		os.Stderr.WriteString("failed to write tiles: " + err.Error() + "\n")
		return
	}

	teams := generateTeams(rng, *teamCount, *teamSize)
	if err := writeJSON(*teamsPath, teams); err != nil {
		os.Stderr.WriteString("failed to write teams: " + err.Error() + "\n")
		return
	}

	fmt.Printf("wrote %d tiles to %s and %d teams to %s\n", len(tiles), *tilesPath, len(teams), *teamsPath)
}

// generateTiles fills the full grid: bombs, uniques and collections land on
// randomly chosen cells, everything else becomes a kill-count tile.
func generateTiles(rng *rand.Rand, bombs, uniques, collections int) []model.Tile {
	coords := make([]model.Coordinate, 0, model.BoardSize*model.BoardSize)
	for r := 0; r < model.BoardSize; r++ {
		for c := 0; c < model.BoardSize; c++ {
			coords = append(coords, model.CoordinateAt(r, c))
		}
	}
	rng.Shuffle(len(coords), func(i, j int) {
		coords[i], coords[j] = coords[j], coords[i]
	})

	tiles := make([]model.Tile, 0, len(coords))
	for i, coord := range coords {
		switch {
		case i < bombs:
			tiles = append(tiles, model.Tile{
				Coordinates: coord,
				Type:        model.TileBomb,
				Drop:        pick(rng, bombDrops),
				Description: "Post a screenshot of the whole team at the drop location within the hour",
			})
		case i < bombs+uniques:
			tiles = append(tiles, model.Tile{
				Coordinates: coord,
				Type:        model.TileUnique,
				DropSource:  pick(rng, uniqueSources),
				Description: "Any unique drop counts",
			})
		case i < bombs+uniques+collections:
			tiles = append(tiles, model.Tile{
				Coordinates:     coord,
				Type:            model.TileCollection,
				Drop:            pick(rng, collectionDrops),
				AlternativeDrop: pick(rng, collectionDrops),
				DropSource:      pick(rng, collectionSources),
				Count:           1 + rng.Intn(25),
				Description:     "Collect the listed items as a team",
			})
		default:
			tiles = append(tiles, model.Tile{
				Coordinates: coord,
				Type:        model.TileKillCount,
				DropSource:  pick(rng, killCountSources),
				Count:       5 + rng.Intn(45),
				Description: "Kill count or unique item drop",
			})
		}
	}
	return tiles
}

// generateTeams builds rosters with placeholder names and synthetic ids.
func generateTeams(rng *rand.Rand, teamCount, teamSize int) []teamDef {
	teams := make([]teamDef, 0, teamCount)
	for id := 1; id <= teamCount; id++ {
		members := make([]roster.Member, 0, teamSize)
		for m := 0; m < teamSize; m++ {
			members = append(members, roster.Member{
				RSN:       fmt.Sprintf("player-%s", uuid.NewString()[:8]),
				DiscordID: 100000000000000000 + rng.Int63n(900000000000000000),
			})
		}
		teams = append(teams, teamDef{ID: id, Members: members})
	}
	return teams
}

// teamDef mirrors the roster file shape.
type teamDef struct {
	ID      int             `json:"id"`
	Members []roster.Member `json:"members"`
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.Intn(len(pool))]
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %q: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}
