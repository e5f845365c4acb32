package entities

import "time"

const (
	// AutoTimeoutWarningCount is the warning count that triggers an automatic timeout
	AutoTimeoutWarningCount = 5
	// AutoTimeoutDuration is how long the automatic timeout lasts
	AutoTimeoutDuration = 24 * time.Hour
	// DefaultWarningReason is used when a moderator gives no reason
	DefaultWarningReason = "No reason provided"
)

// Warning is a moderator warning issued to a guild member
type Warning struct {
	ID        int64     `db:"id"`
	GuildID   int64     `db:"guild_id"`
	DiscordID int64     `db:"discord_id"`
	IssuerID  int64     `db:"issuer_id"`
	Reason    string    `db:"reason"`
	CreatedAt time.Time `db:"created_at"`
}

// WarnResult is returned after a warning is issued
type WarnResult struct {
	Warning       *Warning
	TotalWarnings int
	ShouldTimeout bool
}
