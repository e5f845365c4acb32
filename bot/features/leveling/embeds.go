package leveling

import (
	"fmt"
	"strings"

	"guildbot/bot/common"
	"guildbot/domain/entities"
	"guildbot/domain/progression"

	"github.com/bwmarrin/discordgo"
)

var medals = []string{"🥇", "🥈", "🥉"}

func buildRankEmbed(name string, record *entities.XPRecord) *discordgo.MessageEmbed {
	into, needed := progression.LevelProgress(record.XP, record.Level)
	progress := record.Progress()

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📊 %s's Rank", name),
		Color: common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Level", Value: fmt.Sprintf("%d", record.Level), Inline: true},
			{Name: "Total XP", Value: common.FormatBalance(record.XP), Inline: true},
			{Name: "Messages", Value: common.FormatBalance(record.Messages), Inline: true},
			{
				Name:  "Progress",
				Value: fmt.Sprintf("`%s` %.1f%%\n%d/%d XP to level %d", common.ProgressBar(progress, common.ProgressBarSize), progress, into, needed, record.Level+1),
			},
		},
	}
}

func buildLeaderboardEmbed(names []string, records []*entities.XPRecord) *discordgo.MessageEmbed {
	lines := make([]string, len(records))
	for i, record := range records {
		prefix := fmt.Sprintf("**%d.**", i+1)
		if i < len(medals) {
			prefix = medals[i]
		}
		lines[i] = fmt.Sprintf("%s %s • Level %d (%s XP)", prefix, names[i], record.Level, common.FormatBalance(record.XP))
	}
	return &discordgo.MessageEmbed{
		Title:       "🏆 Leaderboard",
		Description: strings.Join(lines, "\n"),
		Color:       common.ColorGold,
	}
}

// BuildLevelUpEmbed is the announcement posted when a member levels up
func BuildLevelUpEmbed(mention string, level int64) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎉 Level Up!",
		Description: fmt.Sprintf("%s has reached level %d!", mention, level),
		Color:       common.ColorSuccess,
	}
}
