// Package model contains domain models passed between layers.
package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// BoardSize is the fixed edge length of every board (rows A-G, columns 1-7).
const BoardSize = 7

// Coordinate identifies a single board cell as a row letter plus a 1-based
// column number. The canonical form is uppercase, e.g. A2.
// Wire form is a two-element JSON array: ["A", 2].
type Coordinate struct {
	Row rune
	Col int
}

// NewCoordinate builds a Coordinate from a row letter and column number,
// normalizing case and surrounding whitespace.
func NewCoordinate(row string, col int) (Coordinate, error) {
	row = strings.ToUpper(strings.TrimSpace(row))
	if len(row) != 1 || row[0] < 'A' || row[0] > 'Z' {
		return Coordinate{}, fmt.Errorf("%w: row %q", ErrInvalidCoordinateFormat, row)
	}
	c := Coordinate{Row: rune(row[0]), Col: col}
	if !c.inRange() {
		return Coordinate{}, fmt.Errorf("%w: %s", ErrCoordinateOutOfRange, c)
	}
	return c, nil
}

// ParseCoordinate parses user input of the form "A,2". Case and whitespace
// are tolerated ("a, 2" parses to A2).
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCoordinateFormat, s)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: column %q", ErrInvalidCoordinateFormat, parts[1])
	}
	return NewCoordinate(parts[0], col)
}

// CoordinateAt maps zero-based (row, col) indices back to a Coordinate.
// Indices must be inside the board; this is the inverse of RowIndex/ColIndex.
func CoordinateAt(row, col int) Coordinate {
	return Coordinate{Row: rune('A' + row), Col: col + 1}
}

func (c Coordinate) inRange() bool {
	return c.RowIndex() >= 0 && c.RowIndex() < BoardSize &&
		c.ColIndex() >= 0 && c.ColIndex() < BoardSize
}

// RowIndex returns the zero-based row index.
func (c Coordinate) RowIndex() int { return int(c.Row - 'A') }

// ColIndex returns the zero-based column index.
func (c Coordinate) ColIndex() int { return c.Col - 1 }

// String renders the canonical form, e.g. "A2".
func (c Coordinate) String() string {
	return fmt.Sprintf("%c%d", c.Row, c.Col)
}

// MarshalJSON renders the wire form ["A", 2].
func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{string(c.Row), c.Col})
}

// UnmarshalJSON parses the wire form ["A", 2], normalizing as NewCoordinate does.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidCoordinateFormat, data)
	}
	if len(parts) != 2 {
		return fmt.Errorf("%w: want [row, col], got %s", ErrInvalidCoordinateFormat, data)
	}
	var row string
	if err := json.Unmarshal(parts[0], &row); err != nil {
		return fmt.Errorf("%w: row %s", ErrInvalidCoordinateFormat, parts[0])
	}
	var col int
	if err := json.Unmarshal(parts[1], &col); err != nil {
		return fmt.Errorf("%w: column %s", ErrInvalidCoordinateFormat, parts[1])
	}
	parsed, err := NewCoordinate(row, col)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
