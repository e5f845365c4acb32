package application

import (
	"guildbot/domain/events"
)

// RegisterApplicationSubscriptions registers the handlers that update Discord in response to domain events
func RegisterApplicationSubscriptions(registrar LocalHandlerRegistrar, poster DiscordPoster) {
	levelUpHandler := NewLevelUpHandler(poster)
	registrar.RegisterLocalHandler(events.EventTypeLevelUp, levelUpHandler.HandleLevelUp)
}
