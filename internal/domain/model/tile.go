package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TileType classifies a tile and drives both scoring and flavor text.
// Wire form is the original mixed encoding: 1, 2, 3 or "bomb".
type TileType int

// Tile type values. The integer values 1-3 double as the wire encoding.
const (
	TileKillCount TileType = iota + 1
	TileCollection
	TileUnique
	TileBomb
)

// String returns a human-readable type name.
func (t TileType) String() string {
	switch t {
	case TileKillCount:
		return "kill count"
	case TileCollection:
		return "collection"
	case TileUnique:
		return "unique"
	case TileBomb:
		return "bomb"
	default:
		return fmt.Sprintf("tile_type(%d)", int(t))
	}
}

// MarshalJSON renders 1, 2, 3 or "bomb".
func (t TileType) MarshalJSON() ([]byte, error) {
	if t == TileBomb {
		return json.Marshal("bomb")
	}
	return json.Marshal(int(t))
}

// UnmarshalJSON accepts 1, 2, 3 or "bomb" (case-insensitive).
func (t *TileType) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if n >= int(TileKillCount) && n <= int(TileUnique) {
			*t = TileType(n)
			return nil
		}
		return fmt.Errorf("%w: %d", ErrUnknownTileType, n)
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownTileType, data)
	}
	if strings.EqualFold(strings.TrimSpace(s), "bomb") {
		*t = TileBomb
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownTileType, s)
}

// Tile is a single board cell. Revealed is a projection cache over the move
// log, not source of truth; it must agree with the log at all times.
type Tile struct {
	Coordinates     Coordinate `json:"coordinates"`
	Type            TileType   `json:"tile_type"`
	DropSource      string     `json:"drop_source"`
	Drop            string     `json:"drop"`
	AlternativeDrop string     `json:"alternative_drop"`
	Count           int        `json:"count"`
	Notes           string     `json:"notes"`
	Description     string     `json:"description"`
	Revealed        bool       `json:"revealed"`
}
