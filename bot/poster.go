package bot

import (
	"context"
	"fmt"

	"guildbot/bot/common"
	"guildbot/bot/features/leveling"
	"guildbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// discordPoster implements application.DiscordPoster on top of the session
type discordPoster struct {
	session *discordgo.Session
}

// PostLevelUp announces the new level in the channel that earned it
func (p *discordPoster) PostLevelUp(ctx context.Context, channelID, userID, newLevel int64) error {
	embed := leveling.BuildLevelUpEmbed(common.GetUserMention(userID), newLevel)
	if _, err := p.session.ChannelMessageSendEmbed(common.FormatID(channelID), embed); err != nil {
		return fmt.Errorf("failed to post level up: %w", err)
	}
	return nil
}

// DeliverReminder DMs the reminder and mentions the user where it was set.
// A closed DM channel only costs the DM.
func (p *discordPoster) DeliverReminder(ctx context.Context, reminder *entities.Reminder) error {
	userID := common.FormatID(reminder.DiscordID)

	dm, err := p.session.UserChannelCreate(userID)
	if err == nil {
		_, err = p.session.ChannelMessageSend(dm.ID, "Reminder: "+reminder.Message)
	}
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"reminderID": reminder.ID,
			"userID":     reminder.DiscordID,
		}).Warn("Failed to DM reminder")
	}

	content := fmt.Sprintf("%s, here's your reminder: %s", common.GetUserMention(reminder.DiscordID), reminder.Message)
	if _, err := p.session.ChannelMessageSend(common.FormatID(reminder.ChannelID), content); err != nil {
		return fmt.Errorf("failed to post reminder %d: %w", reminder.ID, err)
	}
	return nil
}
