package entities

import (
	"math"
	"time"

	"guildbot/domain/progression"
)

const (
	// XPPerMessage is awarded for each message outside the cooldown
	XPPerMessage int64 = 15
	// XPCooldown is the minimum gap between XP awards for one user
	XPCooldown = 60 * time.Second
)

// XPRecord is a member's experience in one guild
type XPRecord struct {
	GuildID   int64     `db:"guild_id"`
	DiscordID int64     `db:"discord_id"`
	XP        int64     `db:"xp"`
	Level     int64     `db:"level"`
	Messages  int64     `db:"messages"`
	UpdatedAt time.Time `db:"updated_at"`
}

// CanAddXP reports whether amount fits on top of the current xp
func (r *XPRecord) CanAddXP(amount int64) bool {
	return amount <= math.MaxInt64-r.XP
}

// AddXP adds xp and recomputes the cached level.
// It returns true if the level went up.
func (r *XPRecord) AddXP(amount int64) bool {
	r.XP += amount
	newLevel := progression.LevelFromXP(r.XP)
	leveledUp := newLevel > r.Level
	r.Level = newLevel
	return leveledUp
}

// Progress returns the percentage of the current level completed
func (r *XPRecord) Progress() float64 {
	into, needed := progression.LevelProgress(r.XP, r.Level)
	if needed <= 0 {
		return 0
	}
	return float64(into) / float64(needed) * 100
}

// LevelUp describes a level change caused by a message
type LevelUp struct {
	OldLevel int64
	NewLevel int64
}
