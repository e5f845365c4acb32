package entities

import "time"

// Reminder is a message to deliver to a user at DueAt
type Reminder struct {
	ID          int64      `db:"id"`
	GuildID     int64      `db:"guild_id"`
	ChannelID   int64      `db:"channel_id"`
	DiscordID   int64      `db:"discord_id"`
	Message     string     `db:"message"`
	DueAt       time.Time  `db:"due_at"`
	DeliveredAt *time.Time `db:"delivered_at"`
	CreatedAt   time.Time  `db:"created_at"`
}

// IsDue reports whether the reminder should be delivered at now
func (r *Reminder) IsDue(now time.Time) bool {
	return r.DeliveredAt == nil && !r.DueAt.After(now)
}
