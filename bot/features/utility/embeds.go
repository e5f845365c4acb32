package utility

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"guildbot/bot/common"

	"github.com/bwmarrin/discordgo"
)

const dateLayout = "2006-01-02"

func buildPingEmbed(roundTrip, heartbeat time.Duration) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🏓 Pong!",
		Color: common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Message Latency", Value: milliseconds(roundTrip), Inline: true},
			{Name: "WebSocket Latency", Value: milliseconds(heartbeat), Inline: true},
		},
	}
}

func milliseconds(d time.Duration) string {
	return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
}

// snowflakeDate formats the creation date encoded in a Discord id
func snowflakeDate(id string) string {
	created, err := discordgo.SnowflakeTimestamp(id)
	if err != nil {
		return "Unknown"
	}
	return created.UTC().Format(dateLayout)
}

type memberCounts struct {
	total  int
	online int
	bots   int
}

// countMembers prefers the cached member list and falls back to approximate counts
func countMembers(g *discordgo.Guild) memberCounts {
	var counts memberCounts
	if len(g.Members) == 0 {
		counts.total = g.ApproximateMemberCount
		if counts.total == 0 {
			counts.total = g.MemberCount
		}
		counts.online = g.ApproximatePresenceCount
		return counts
	}

	counts.total = len(g.Members)
	for _, m := range g.Members {
		if m.User != nil && m.User.Bot {
			counts.bots++
		}
	}
	for _, p := range g.Presences {
		if p.Status != discordgo.StatusOffline && p.Status != "" {
			counts.online++
		}
	}
	return counts
}

func buildServerInfoEmbed(g *discordgo.Guild, now time.Time) *discordgo.MessageEmbed {
	var text, voice, categories int
	for _, ch := range g.Channels {
		switch ch.Type {
		case discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildNews:
			text++
		case discordgo.ChannelTypeGuildVoice, discordgo.ChannelTypeGuildStageVoice:
			voice++
		case discordgo.ChannelTypeGuildCategory:
			categories++
		}
	}
	members := countMembers(g)

	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("%s Server Information", g.Name),
		Color:     common.ColorInfo,
		Timestamp: now.UTC().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Owner", Value: fmt.Sprintf("<@%s>", g.OwnerID), Inline: true},
			{Name: "Created At", Value: snowflakeDate(g.ID), Inline: true},
			{Name: "Members", Value: fmt.Sprintf("Total: %d\nOnline: %d\nBots: %d", members.total, members.online, members.bots), Inline: true},
			{Name: "Channels", Value: fmt.Sprintf("Text: %d\nVoice: %d\nCategories: %d", text, voice, categories), Inline: true},
			{Name: "Roles", Value: fmt.Sprintf("%d", len(g.Roles)), Inline: true},
			{Name: "Boost Level", Value: fmt.Sprintf("Level %d", g.PremiumTier), Inline: true},
			{Name: "Boosters", Value: fmt.Sprintf("%d", g.PremiumSubscriptionCount), Inline: true},
			{Name: "Verification Level", Value: verificationName(g.VerificationLevel), Inline: true},
		},
	}
	if g.Icon != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: g.IconURL("256")}
	}
	return embed
}

func verificationName(level discordgo.VerificationLevel) string {
	switch level {
	case discordgo.VerificationLevelNone:
		return "none"
	case discordgo.VerificationLevelLow:
		return "low"
	case discordgo.VerificationLevelMedium:
		return "medium"
	case discordgo.VerificationLevelHigh:
		return "high"
	case discordgo.VerificationLevelVeryHigh:
		return "highest"
	default:
		return "unknown"
	}
}

// memberRoles returns the member's roles ordered from highest to lowest position
func memberRoles(member *discordgo.Member, guildRoles []*discordgo.Role) []*discordgo.Role {
	held := make(map[string]bool, len(member.Roles))
	for _, id := range member.Roles {
		held[id] = true
	}
	roles := make([]*discordgo.Role, 0, len(member.Roles))
	for _, role := range guildRoles {
		if held[role.ID] {
			roles = append(roles, role)
		}
	}
	sort.SliceStable(roles, func(i, j int) bool { return roles[i].Position > roles[j].Position })
	return roles
}

func buildUserInfoEmbed(member *discordgo.Member, guildRoles []*discordgo.Role, now time.Time) *discordgo.MessageEmbed {
	user := member.User
	roles := memberRoles(member, guildRoles)

	color := common.ColorPrimary
	topRole := "@everyone"
	for i, role := range roles {
		if i == 0 {
			topRole = role.Mention()
		}
		if role.Color != 0 {
			color = role.Color
			break
		}
	}

	nick := member.Nick
	if nick == "" {
		nick = "None"
	}
	isBot := "No"
	if user.Bot {
		isBot = "Yes"
	}
	joined := "Unknown"
	if !member.JoinedAt.IsZero() {
		joined = member.JoinedAt.UTC().Format(dateLayout)
	}

	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("User Information - %s", user.Username),
		Color:     color,
		Timestamp: now.UTC().Format(time.RFC3339),
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: user.AvatarURL("256")},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "ID", Value: user.ID, Inline: true},
			{Name: "Nickname", Value: nick, Inline: true},
			{Name: "Account Created", Value: snowflakeDate(user.ID), Inline: true},
			{Name: "Joined Server", Value: joined, Inline: true},
			{Name: "Top Role", Value: topRole, Inline: true},
			{Name: "Bot", Value: isBot, Inline: true},
		},
	}

	if len(roles) > 0 {
		mentions := make([]string, len(roles))
		for i, role := range roles {
			mentions[i] = role.Mention()
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Roles [%d]", len(roles)),
			Value: common.Truncate(strings.Join(mentions, " "), 1024),
		})
	}
	return embed
}
