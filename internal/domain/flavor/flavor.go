// Package flavor composes the randomized reveal messages. Selection is a
// pure pick over a fixed set of variants per tile type; the random source
// is injectable so tests can pin the choice.
package flavor

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/okian/tilebingo/internal/domain/model"
)

// Composer picks one rendered variant per reveal.
type Composer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Composer with configuration options.
func New(opts ...Option) *Composer {
	c := &Composer{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // flavor selection needs no crypto strength
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Reveal returns the user-facing message for a freshly revealed tile,
// chosen uniformly from the variants for its type.
func (c *Composer) Reveal(tile model.Tile, displayName string) string {
	variants := Variants(tile, displayName)

	c.mu.Lock()
	i := c.rng.Intn(len(variants))
	c.mu.Unlock()

	return variants[i]
}

// Variants renders every message variant for a tile. Exposed so tests can
// assert that a composed message is one of the known set.
func Variants(tile model.Tile, displayName string) []string {
	coord := tile.Coordinates.String()
	header := fmt.Sprintf("🎉 `%s` revealed tile **%s**.\n\n", displayName, coord)

	switch tile.Type {
	case model.TileCollection:
		demand := fmt.Sprintf("**%d %s%s**%s from %s",
			tile.Count, tile.Drop, plural(tile.Count), altClause(tile.AlternativeDrop), tile.DropSource)
		return []string{
			header + fmt.Sprintf(
				"You venture forth to tile %s. A stinky little troll blocks your path and demands %s before it will let you pass. What a greedy little bastard! Good luck, team!%s",
				coord, demand, noteLine(tile.Notes)),
			header + fmt.Sprintf(
				"Tile %s hides a toll gate. The keeper wants %s as payment. Pay up, team!%s",
				coord, demand, noteLine(tile.Notes)),
			header + fmt.Sprintf(
				"At tile %s a merchant refuses to budge until your team hands over %s. Time to go collecting!%s",
				coord, demand, noteLine(tile.Notes)),
		}

	case model.TileUnique:
		return []string{
			header + fmt.Sprintf(
				"You venture forth to tile %s. Before you lies a vast pit... A booming voice demands A UNIQUE FROM %s be placed before its hole. Bring it and a bridge shall be erected. Good luck, team!%s",
				coord, strings.ToUpper(tile.DropSource), noteLine(tile.Notes)),
			header + fmt.Sprintf(
				"Tile %s is barred by an ancient seal. Only a unique drop from %s will break it. Get hunting!%s",
				coord, tile.DropSource, noteLine(tile.Notes)),
			header + fmt.Sprintf(
				"A spectral gatekeeper at tile %s will pass only those bearing a unique from %s. The grind begins!%s",
				coord, tile.DropSource, noteLine(tile.Notes)),
		}

	case model.TileBomb:
		instructions := fmt.Sprintf("“**%s** — *%s*”", tile.Drop, tile.Description)
		bombHeader := fmt.Sprintf("💣 `%s` revealed tile **%s**.\n\n", displayName, coord)
		return []string{
			bombHeader + fmt.Sprintf(
				"Oho! You've stumbled across one of the bombs scattered throughout the world! It's up to you to defuse it. The instructions read:\n\n%s%s",
				instructions, noteLine(tile.Notes)),
			bombHeader + fmt.Sprintf(
				"A ticking package sits on tile %s. Defusal instructions are attached:\n\n%s%s",
				coord, instructions, noteLine(tile.Notes)),
			bombHeader + fmt.Sprintf(
				"Tile %s is rigged! To disarm it, follow the note taped to the casing:\n\n%s%s",
				coord, instructions, noteLine(tile.Notes)),
		}

	default: // kill count
		task := fmt.Sprintf("**%d** of them", tile.Count)
		return []string{
			header + fmt.Sprintf(
				"You venture forth to tile %s. There, you encounter an army of %ss! The only way past is by banding together and brutally eliminating %s. May RNGesus be with you.",
				coord, tile.DropSource, task),
			header + fmt.Sprintf(
				"Tile %s is overrun by %ss. Clear out %s to secure the path. Good luck, team!",
				coord, tile.DropSource, task),
			header + fmt.Sprintf(
				"The road through tile %s is blocked until %s from the %s horde lie defeated. To battle!",
				coord, task, tile.DropSource),
		}
	}
}

func plural(count int) string {
	if count > 1 {
		return "s"
	}
	return ""
}

func altClause(alt string) string {
	if alt == "" {
		return ""
	}
	return fmt.Sprintf(" **OR %s**", alt)
}

func noteLine(notes string) string {
	if notes == "" {
		return ""
	}
	return fmt.Sprintf("\n📝 **Note:** %s", notes)
}
