package moderation

import (
	"strings"

	"guildbot/bot/commands"
	"guildbot/bot/common"
	"guildbot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// outranks reports whether an actor may moderate a target.
// The guild owner outranks everyone; otherwise the actor's top role must be strictly higher.
func outranks(actorPosition, targetPosition int, actorIsOwner, targetIsOwner bool) bool {
	if targetIsOwner {
		return false
	}
	if actorIsOwner {
		return true
	}
	return actorPosition > targetPosition
}

func lookupMember(s *discordgo.Session, guildID string, userID int64) (*discordgo.Member, error) {
	id := common.FormatID(userID)
	if member, err := s.State.Member(guildID, id); err == nil {
		return member, nil
	}
	member, err := s.GuildMember(guildID, id)
	if err != nil {
		return nil, entities.NewValidationError("That member isn't in this server!")
	}
	return member, nil
}

func guildOwner(s *discordgo.Session, guildID string) string {
	if guild, err := s.State.Guild(guildID); err == nil {
		return guild.OwnerID
	}
	if guild, err := s.Guild(guildID); err == nil {
		return guild.OwnerID
	}
	return ""
}

// checkHierarchy rejects moderating a member whose top role is not below the invoker's
func checkHierarchy(inv *commands.Invocation, targetID int64, action string) (*discordgo.Member, error) {
	guildID := inv.Message.GuildID
	target, err := lookupMember(inv.Session, guildID, targetID)
	if err != nil {
		return nil, err
	}
	actor, err := lookupMember(inv.Session, guildID, inv.AuthorID)
	if err != nil {
		return nil, err
	}

	owner := guildOwner(inv.Session, guildID)
	if !outranks(
		common.HighestRolePosition(inv.Session, guildID, actor),
		common.HighestRolePosition(inv.Session, guildID, target),
		actor.User != nil && actor.User.ID == owner,
		target.User != nil && target.User.ID == owner,
	) {
		return nil, entities.NewValidationError("You can't %s someone with a higher or equal role!", action)
	}
	return target, nil
}

// matchRole finds a role by mention, id or case-insensitive name
func matchRole(roles []*discordgo.Role, token string) *discordgo.Role {
	token = strings.TrimSpace(token)
	id := strings.TrimSuffix(strings.TrimPrefix(token, "<@&"), ">")
	for _, role := range roles {
		if role.ID == id {
			return role
		}
	}
	for _, role := range roles {
		if strings.EqualFold(role.Name, strings.TrimPrefix(token, "@")) {
			return role
		}
	}
	return nil
}

// matchBan finds a banned user by id, name or legacy name#discriminator
func matchBan(bans []*discordgo.GuildBan, query string) *discordgo.User {
	query = strings.TrimSpace(query)
	name, discriminator, hasTag := strings.Cut(query, "#")
	for _, ban := range bans {
		user := ban.User
		if user == nil {
			continue
		}
		switch {
		case user.ID == query:
			return user
		case hasTag && strings.EqualFold(user.Username, name) && user.Discriminator == discriminator:
			return user
		case !hasTag && strings.EqualFold(user.Username, query):
			return user
		}
	}
	return nil
}
