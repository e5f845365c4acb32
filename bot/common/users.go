package common

import (
	"strconv"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// GetDisplayName returns the server-specific display name for a user
// Falls back to username if nickname is not set or if there's an error
func GetDisplayName(s *discordgo.Session, guildID, userID string) string {
	member, err := s.State.Member(guildID, userID)
	if err != nil {
		member, err = s.GuildMember(guildID, userID)
	}
	if err == nil && member != nil {
		if member.Nick != "" {
			return member.Nick
		}
		if member.User != nil {
			if member.User.GlobalName != "" {
				return member.User.GlobalName
			}
			return member.User.Username
		}
	}

	user, err := s.User(userID)
	if err == nil && user != nil {
		return user.Username
	}

	return "Unknown"
}

// GetDisplayNameInt64 is a convenience wrapper that accepts int64 user IDs
func GetDisplayNameInt64(s *discordgo.Session, guildID string, userID int64) string {
	return GetDisplayName(s, guildID, FormatID(userID))
}

// ParseID converts a Discord snowflake string to int64
func ParseID(id string) (int64, error) {
	return strconv.ParseInt(id, 10, 64)
}

// FormatID converts an int64 snowflake to string
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// GetUserMention returns a Discord mention string for a user
func GetUserMention(userID int64) string {
	return "<@" + FormatID(userID) + ">"
}

// LookupUser resolves a user from state or the API
func LookupUser(s *discordgo.Session, guildID string, userID int64) (*discordgo.User, error) {
	id := FormatID(userID)
	if member, err := s.State.Member(guildID, id); err == nil && member.User != nil {
		return member.User, nil
	}
	return s.User(id)
}

// IsBotUser reports whether userID belongs to a bot account
func IsBotUser(s *discordgo.Session, guildID string, userID int64) bool {
	user, err := LookupUser(s, guildID, userID)
	if err != nil {
		log.WithError(err).WithField("userID", userID).Warn("Failed to look up user")
		return false
	}
	return user.Bot
}

// HighestRolePosition returns the position of the member's highest role
func HighestRolePosition(s *discordgo.Session, guildID string, member *discordgo.Member) int {
	highest := 0
	for _, roleID := range member.Roles {
		role, err := s.State.Role(guildID, roleID)
		if err != nil {
			continue
		}
		if role.Position > highest {
			highest = role.Position
		}
	}
	return highest
}
