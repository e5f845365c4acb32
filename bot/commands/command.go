package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// ArgKind is the type an argument is parsed as
type ArgKind int

const (
	// ArgString takes one token
	ArgString ArgKind = iota
	// ArgInt takes one token parsed as a base 10 integer
	ArgInt
	// ArgUser takes a mention or a raw user id
	ArgUser
	// ArgRest takes every remaining token joined by spaces
	ArgRest
	// ArgList takes every remaining token as a slice
	ArgList
)

// ArgSpec declares one positional argument
type ArgSpec struct {
	Name     string
	Kind     ArgKind
	Optional bool
}

// Permission is the access level a command requires
type Permission int

const (
	PermissionEveryone Permission = iota
	PermissionAdministrator
	// PermissionGuildOwner requires Administrator and ownership of the guild
	PermissionGuildOwner
	PermissionKickMembers
	PermissionBanMembers
	PermissionManageMessages
	PermissionModerateMembers
	PermissionManageRoles
)

var permissionBits = map[Permission]int64{
	PermissionAdministrator:   discordgo.PermissionAdministrator,
	PermissionGuildOwner:      discordgo.PermissionAdministrator,
	PermissionKickMembers:     discordgo.PermissionKickMembers,
	PermissionBanMembers:      discordgo.PermissionBanMembers,
	PermissionManageMessages:  discordgo.PermissionManageMessages,
	PermissionModerateMembers: discordgo.PermissionModerateMembers,
	PermissionManageRoles:     discordgo.PermissionManageRoles,
}

// Allowed reports whether a member with the given permission bits may run a command
func (p Permission) Allowed(memberPermissions int64, isOwner bool) bool {
	if p == PermissionEveryone {
		return true
	}
	if p == PermissionGuildOwner && !isOwner {
		return false
	}
	if memberPermissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	return memberPermissions&permissionBits[p] != 0
}

var permissionNames = map[Permission]string{
	PermissionEveryone:        "Everyone",
	PermissionAdministrator:   "Administrator",
	PermissionGuildOwner:      "Server Owner",
	PermissionKickMembers:     "Kick Members",
	PermissionBanMembers:      "Ban Members",
	PermissionManageMessages:  "Manage Messages",
	PermissionModerateMembers: "Moderate Members",
	PermissionManageRoles:     "Manage Roles",
}

func (p Permission) String() string {
	if name, ok := permissionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Permission(%d)", int(p))
}

// Handler runs a command
type Handler func(ctx context.Context, inv *Invocation) error

// Command is a registered prefix command
type Command struct {
	Name        string
	Aliases     []string
	Category    string
	Description string
	Args        []ArgSpec
	Permission  Permission
	// GuildOnly commands are rejected in direct messages
	GuildOnly bool
	Handler   Handler
}

// Usage renders the argument list, e.g. "!gamble <amount>"
func (c *Command) Usage(prefix string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(c.Name)
	for _, arg := range c.Args {
		name := arg.Name
		if arg.Kind == ArgRest || arg.Kind == ArgList {
			name += "..."
		}
		if arg.Optional {
			fmt.Fprintf(&b, " [%s]", name)
		} else {
			fmt.Fprintf(&b, " <%s>", name)
		}
	}
	return b.String()
}

// Invocation is one parsed command message
type Invocation struct {
	Session   *discordgo.Session
	Message   *discordgo.MessageCreate
	Prefix    string
	GuildID   int64
	ChannelID int64
	AuthorID  int64
	Command   *Command
	Args      Args
}

// Reply sends a plain message to the invoking channel
func (inv *Invocation) Reply(content string) (*discordgo.Message, error) {
	return inv.Session.ChannelMessageSend(inv.Message.ChannelID, content)
}

// ReplyEmbed sends an embed to the invoking channel
func (inv *Invocation) ReplyEmbed(embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	return inv.Session.ChannelMessageSendEmbed(inv.Message.ChannelID, embed)
}

// ReplyComplex sends a message with files or multiple embeds
func (inv *Invocation) ReplyComplex(data *discordgo.MessageSend) (*discordgo.Message, error) {
	return inv.Session.ChannelMessageSendComplex(inv.Message.ChannelID, data)
}

// Author returns the invoking user
func (inv *Invocation) Author() *discordgo.User {
	return inv.Message.Author
}
