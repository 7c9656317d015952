// Package cooldown rate-limits reveal attempts. State lives in process
// memory only; a restart clears every cooldown.
package cooldown

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/okian/tilebingo/internal/domain/types"
)

// DefaultWindow is the reveal cooldown length.
const DefaultWindow = 20 * time.Minute

// Policy selects how gate keys are derived.
type Policy int

const (
	// PolicyTeam blocks the whole team after any member's success.
	// This is the default.
	PolicyTeam Policy = iota
	// PolicyMember blocks only the acting member within their team.
	PolicyMember
)

// ParsePolicy parses a configuration string into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "team":
		return PolicyTeam, nil
	case "member":
		return PolicyMember, nil
	default:
		return PolicyTeam, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// String returns the configuration name of the policy.
func (p Policy) String() string {
	if p == PolicyMember {
		return "member"
	}
	return "team"
}

// key identifies one gate entry. DiscordID is zero under PolicyTeam.
type key struct {
	discordID int64
	teamID    int
}

// Gate tracks last-success timestamps per key and denies actions inside the
// window. Checks never mutate live entries; only Record stamps a key.
type Gate struct {
	mu     sync.Mutex
	last   map[key]time.Time
	window time.Duration
	policy Policy
	now    func() time.Time
}

// New creates a Gate with default configuration.
func New(opts ...Option) *Gate {
	g := &Gate{
		last:   make(map[key]time.Time),
		window: DefaultWindow,
		policy: PolicyTeam,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

func (g *Gate) keyFor(discordID int64, teamID int) key {
	if g.policy == PolicyMember {
		return key{discordID: discordID, teamID: teamID}
	}
	return key{teamID: teamID}
}

// gc drops expired entries. Callers must hold the lock.
func (g *Gate) gc(now time.Time) {
	for k, ts := range g.last {
		if now.Sub(ts) >= g.window {
			delete(g.last, k)
		}
	}
}

// Check reports whether the applicable key is on cooldown and, if so, how
// long remains. It expires stale entries but never stamps anything.
func (g *Gate) Check(discordID int64, teamID int) (remaining time.Duration, blocked bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	g.gc(now)

	if ts, ok := g.last[g.keyFor(discordID, teamID)]; ok {
		return g.window - now.Sub(ts), true
	}
	return 0, false
}

// Record stamps a fresh success for the applicable key. Call only after a
// reveal actually succeeded.
func (g *Gate) Record(discordID int64, teamID int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last[g.keyFor(discordID, teamID)] = g.now()
}

// Reset clears every entry for a team regardless of key policy and returns
// the number of entries cleared.
func (g *Gate) Reset(teamID int) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	cleared := 0
	for k := range g.last {
		if k.teamID == teamID {
			delete(g.last, k)
			cleared++
		}
	}
	return cleared
}

// Snapshot dumps the live, unexpired entries for admin inspection, ordered
// by team id then member id.
func (g *Gate) Snapshot() []types.CooldownStatus {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	g.gc(now)

	out := make([]types.CooldownStatus, 0, len(g.last))
	for k, ts := range g.last {
		out = append(out, types.CooldownStatus{
			TeamID:    k.teamID,
			DiscordID: k.discordID,
			LastUsed:  ts,
			Remaining: g.window - now.Sub(ts),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TeamID != out[j].TeamID {
			return out[i].TeamID < out[j].TeamID
		}
		return out[i].DiscordID < out[j].DiscordID
	})
	return out
}

// Window returns the configured cooldown window length.
func (g *Gate) Window() time.Duration { return g.window }

// PolicyInUse returns the configured key policy.
func (g *Gate) PolicyInUse() Policy { return g.policy }
