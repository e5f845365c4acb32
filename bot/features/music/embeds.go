package music

import (
	"fmt"
	"strings"

	"guildbot/bot/common"
	"guildbot/domain/entities"
	"guildbot/infrastructure/audio"

	"github.com/bwmarrin/discordgo"
)

func buildNowPlayingEmbed(track *audio.Track) *discordgo.MessageEmbed {
	title := track.Title
	if title == "" {
		title = "Unknown title"
	}
	embed := &discordgo.MessageEmbed{
		Title:       "🎵 Now Playing",
		Description: fmt.Sprintf("🎧 **%s**", title),
		Color:       common.ColorInfo,
		URL:         track.WebpageURL,
	}
	if track.Duration > 0 {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Duration: %s", track.Duration)}
	}
	return embed
}

func buildPlaylistCreatedEmbed(p *entities.Playlist) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "✅ Playlist Created",
		Description: fmt.Sprintf("Created playlist '%s' with %d songs", p.Name, len(p.Songs)),
		Color:       common.ColorSuccess,
	}
}

func buildPlaylistsEmbed(custom []*entities.Playlist) *discordgo.MessageEmbed {
	moods := make([]string, 0, len(entities.MoodNames))
	for _, name := range entities.MoodNames {
		moods = append(moods, fmt.Sprintf("• %s (%d songs)", name, len(entities.MoodPlaylists[name])))
	}

	saved := make([]string, 0, len(custom))
	for _, p := range custom {
		saved = append(saved, fmt.Sprintf("• %s (%d songs)", p.Name, len(p.Songs)))
	}
	savedValue := "No custom playlists"
	if len(saved) > 0 {
		savedValue = common.Truncate(strings.Join(saved, "\n"), 1024)
	}

	return &discordgo.MessageEmbed{
		Title: "📝 Available Playlists",
		Color: common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Default Mood Playlists", Value: strings.Join(moods, "\n")},
			{Name: "Custom Playlists", Value: savedValue},
		},
	}
}
