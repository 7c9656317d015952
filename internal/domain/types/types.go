// Package types contains common read-model types used across the application
package types

import "time"

// LeaderboardEntry represents one team's row on the leaderboard
type LeaderboardEntry struct {
	Rank     int `json:"rank"`
	TeamID   int `json:"team_id"`
	Score    int `json:"score"`
	Revealed int `json:"revealed"`
}

// CooldownStatus represents one live cooldown gate entry. DiscordID is zero
// under the per-team policy.
type CooldownStatus struct {
	TeamID    int           `json:"team_id"`
	DiscordID int64         `json:"discord_id,omitempty"`
	LastUsed  time.Time     `json:"last_used"`
	Remaining time.Duration `json:"remaining"`
}
