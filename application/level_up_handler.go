package application

import (
	"context"

	"guildbot/domain/events"

	log "github.com/sirupsen/logrus"
)

// LevelUpHandler posts the level up announcement after the XP transaction commits
type LevelUpHandler struct {
	poster DiscordPoster
}

// NewLevelUpHandler creates a new level up handler
func NewLevelUpHandler(poster DiscordPoster) *LevelUpHandler {
	return &LevelUpHandler{poster: poster}
}

// HandleLevelUp processes a LevelUpEvent
func (h *LevelUpHandler) HandleLevelUp(ctx context.Context, event events.Event) {
	levelUp, ok := event.(events.LevelUpEvent)
	if !ok {
		log.WithField("eventType", event.Type()).Warn("Level up handler received unexpected event")
		return
	}

	if err := h.poster.PostLevelUp(ctx, levelUp.ChannelID, levelUp.UserID, levelUp.NewLevel); err != nil {
		log.WithFields(log.Fields{
			"guildID":   levelUp.GuildID,
			"channelID": levelUp.ChannelID,
			"userID":    levelUp.UserID,
			"newLevel":  levelUp.NewLevel,
		}).WithError(err).Error("Failed to post level up")
	}
}
