package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Move is an immutable record of one revealed tile. The ordered sequence of
// moves is the single source of truth for board state.
type Move struct {
	TeamID    int
	DiscordID int64
	Coord     Coordinate
	Timestamp time.Time
}

// moveJSON pins the persisted wire shape, including the ISO-8601 timestamp
// string used by the existing log files.
type moveJSON struct {
	TeamID    int        `json:"team_id"`
	DiscordID int64      `json:"discord_id"`
	Coord     Coordinate `json:"coord"`
	Timestamp string     `json:"timestamp"`
}

// isoNoZone matches timestamps written without an offset; they are UTC.
const isoNoZone = "2006-01-02T15:04:05.999999999"

// MarshalJSON renders the persisted form with an RFC 3339 UTC timestamp.
func (m Move) MarshalJSON() ([]byte, error) {
	return json.Marshal(moveJSON{
		TeamID:    m.TeamID,
		DiscordID: m.DiscordID,
		Coord:     m.Coord,
		Timestamp: m.Timestamp.UTC().Format(time.RFC3339),
	})
}

// UnmarshalJSON parses the persisted form. Timestamps without a zone
// (legacy logs) are interpreted as UTC.
func (m *Move) UnmarshalJSON(data []byte) error {
	var w moveJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode move: %w", err)
	}
	ts, err := time.Parse(time.RFC3339, w.Timestamp)
	if err != nil {
		ts, err = time.ParseInLocation(isoNoZone, w.Timestamp, time.UTC)
		if err != nil {
			return fmt.Errorf("decode move timestamp %q: %w", w.Timestamp, err)
		}
	}
	m.TeamID = w.TeamID
	m.DiscordID = w.DiscordID
	m.Coord = w.Coord
	m.Timestamp = ts.UTC()
	return nil
}
