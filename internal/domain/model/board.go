package model

import "fmt"

// Default tile synthesized for coordinates missing from the definitions.
const (
	defaultDropSource  = "General Graardor"
	defaultDrop        = "Bandos Chestplate"
	defaultCount       = 1
	defaultDescription = "Kill count or unique item drop"
)

// Board is a fully populated BoardSize x BoardSize grid of tiles.
type Board struct {
	tiles [BoardSize][BoardSize]*Tile
}

// NewBoard builds a board from tile definitions. Every one of the 49
// canonical coordinates gets a tile: the matching definition if present,
// otherwise a deterministic default. Fully deterministic given its input.
func NewBoard(defs []Tile) *Board {
	byCoord := make(map[Coordinate]Tile, len(defs))
	for _, d := range defs {
		if _, dup := byCoord[d.Coordinates]; dup {
			continue // first definition wins
		}
		byCoord[d.Coordinates] = d
	}

	b := &Board{}
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			coord := CoordinateAt(r, c)
			if def, ok := byCoord[coord]; ok {
				tile := def
				tile.Coordinates = coord
				b.tiles[r][c] = &tile
				continue
			}
			b.tiles[r][c] = defaultTile(coord)
		}
	}
	return b
}

func defaultTile(coord Coordinate) *Tile {
	return &Tile{
		Coordinates: coord,
		Type:        TileKillCount,
		DropSource:  defaultDropSource,
		Drop:        defaultDrop,
		Count:       defaultCount,
		Description: defaultDescription,
	}
}

// Lookup returns the tile at a coordinate.
func (b *Board) Lookup(coord Coordinate) (*Tile, error) {
	r, c := coord.RowIndex(), coord.ColIndex()
	if r < 0 || r >= BoardSize || c < 0 || c >= BoardSize {
		return nil, fmt.Errorf("%w: %s", ErrTileNotFound, coord)
	}
	return b.tiles[r][c], nil
}

// TileAt returns the tile at zero-based indices, or nil when out of range.
func (b *Board) TileAt(row, col int) *Tile {
	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return nil
	}
	return b.tiles[row][col]
}

// ForEach visits every tile in row-major order.
func (b *Board) ForEach(fn func(*Tile)) {
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			fn(b.tiles[r][c])
		}
	}
}
