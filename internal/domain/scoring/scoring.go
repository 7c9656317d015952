// Package scoring defines the point values awarded for revealed tiles and
// derives team scores and the leaderboard from projected board state.
package scoring

import (
	"sort"

	"github.com/okian/tilebingo/internal/domain/model"
	"github.com/okian/tilebingo/internal/domain/roster"
	"github.com/okian/tilebingo/internal/domain/types"
)

// pointValues maps a tile type to the points it awards once revealed.
var pointValues = map[model.TileType]int{
	model.TileKillCount:  1,
	model.TileCollection: 2,
	model.TileUnique:     3,
	model.TileBomb:       4,
}

// Points returns the point value for a tile type. Unknown types score zero.
func Points(t model.TileType) int {
	return pointValues[t]
}

// BoardScore sums the point values of every revealed tile on a board.
// Callers must have applied the projection first; this is a pure read.
func BoardScore(b *model.Board) (score, revealed int) {
	b.ForEach(func(tile *model.Tile) {
		if tile.Revealed {
			score += Points(tile.Type)
			revealed++
		}
	})
	return score, revealed
}

// Leaderboard ranks teams by projected score, descending, with team id
// ascending as the deterministic tie-breaker.
func Leaderboard(teams []*roster.Team) []types.LeaderboardEntry {
	entries := make([]types.LeaderboardEntry, 0, len(teams))
	for _, team := range teams {
		score, revealed := BoardScore(team.Board)
		entries = append(entries, types.LeaderboardEntry{
			TeamID:   team.ID,
			Score:    score,
			Revealed: revealed,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score // higher score ranks earlier
		}
		return entries[i].TeamID < entries[j].TeamID // tie-breaker by id asc
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
