package application

import (
	"context"

	"guildbot/domain/entities"
	"guildbot/domain/events"
)

// DiscordPoster lets the application layer send messages without depending on the Discord API
type DiscordPoster interface {
	// PostLevelUp announces a level change in the channel the message was sent in
	PostLevelUp(ctx context.Context, channelID, userID, newLevel int64) error

	// DeliverReminder sends a reminder by DM and mentions the user in the original channel
	DeliverReminder(ctx context.Context, reminder *entities.Reminder) error
}

// LocalHandlerRegistrar registers in-process event handlers
type LocalHandlerRegistrar interface {
	RegisterLocalHandler(eventType events.EventType, handler events.Handler)
}
