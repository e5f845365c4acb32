package moderation

import (
	"fmt"
	"time"

	"guildbot/bot/common"
	"guildbot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

func buildWarnEmbed(mention, reason string, total int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "⚠️ Warning",
		Color: common.ColorWarning,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Member", Value: mention},
			{Name: "Reason", Value: reason},
			{Name: "Warnings", Value: fmt.Sprintf("Total: %d", total)},
		},
	}
}

func addAutoTimeoutField(embed *discordgo.MessageEmbed, until time.Time, err error) {
	if err != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Error",
			Value: "Could not timeout user. Make sure the bot has the necessary permissions.",
		})
		return
	}
	embed.Color = common.ColorDanger
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Automatic Timeout",
		Value: "User has been timed out until " + common.FormatDiscordTimestamp(until, "F"),
	})
}

func buildWarningsEmbed(name string, warnings []*entities.Warning, issuerName func(int64) string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Warnings for " + name,
		Color: common.ColorWarning,
	}
	for i, w := range warnings {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("Warning #%d", i+1),
			Value: fmt.Sprintf("**Reason:** %s\n**By:** %s\n**When:** %s",
				w.Reason, issuerName(w.IssuerID), common.FormatDiscordTimestamp(w.CreatedAt, "R")),
		})
	}
	return embed
}

func buildActionEmbed(title string, color int, member, reason string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:  title,
		Color:  color,
		Fields: []*discordgo.MessageEmbedField{{Name: "Member", Value: member}},
	}
	if reason != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Reason", Value: reason})
	}
	return embed
}

func buildTimeoutEmbed(mention string, minutes int64, reason string, until time.Time) *discordgo.MessageEmbed {
	embed := buildActionEmbed("🔇 Timeout", common.ColorDanger, mention, "")
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Duration", Value: fmt.Sprintf("%d minutes", minutes)})
	if reason != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Reason", Value: reason})
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Expires", Value: common.FormatDiscordTimestamp(until, "F")})
	return embed
}
