package moderation

import (
	"time"

	"guildbot/application"
	"guildbot/bot/commands"
	"guildbot/domain/interfaces"
	"guildbot/domain/services"
)

const (
	category = "Moderation"

	// purgeConfirmationTTL is how long the purge confirmation stays visible
	purgeConfirmationTTL = 3 * time.Second
	// maxPurge is the largest batch the bulk delete endpoint accepts, command message included
	maxPurge = 99
)

// Feature implements warnings and member management commands
type Feature struct {
	uowFactory application.UnitOfWorkFactory
	now        func() time.Time
}

// NewFeature creates a new moderation feature instance
func NewFeature(uowFactory application.UnitOfWorkFactory) *Feature {
	return &Feature{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

func (f *Feature) moderationService(uow application.UnitOfWork) interfaces.ModerationService {
	return services.NewModerationService(uow.WarningRepository(), uow.EventBus())
}

// Commands returns the moderation command table
func (f *Feature) Commands() []*commands.Command {
	member := commands.ArgSpec{Name: "member", Kind: commands.ArgUser}
	reason := commands.ArgSpec{Name: "reason", Kind: commands.ArgRest, Optional: true}

	return []*commands.Command{
		{
			Name:        "warn",
			Category:    category,
			Description: "Warn a member",
			Args:        []commands.ArgSpec{member, reason},
			Permission:  commands.PermissionAdministrator,
			GuildOnly:   true,
			Handler:     f.handleWarn,
		},
		{
			Name:        "warnings",
			Category:    category,
			Description: "List a member's warnings",
			Args:        []commands.ArgSpec{member},
			Permission:  commands.PermissionAdministrator,
			GuildOnly:   true,
			Handler:     f.handleWarnings,
		},
		{
			Name:        "clearwarns",
			Category:    category,
			Description: "Clear a member's warnings",
			Args:        []commands.ArgSpec{member},
			Permission:  commands.PermissionAdministrator,
			GuildOnly:   true,
			Handler:     f.handleClearWarnings,
		},
		{
			Name:        "kick",
			Category:    category,
			Description: "Kick a member",
			Args:        []commands.ArgSpec{member, reason},
			Permission:  commands.PermissionKickMembers,
			GuildOnly:   true,
			Handler:     f.handleKick,
		},
		{
			Name:        "ban",
			Category:    category,
			Description: "Ban a member",
			Args:        []commands.ArgSpec{member, reason},
			Permission:  commands.PermissionBanMembers,
			GuildOnly:   true,
			Handler:     f.handleBan,
		},
		{
			Name:        "unban",
			Category:    category,
			Description: "Unban a user by name or id",
			Args:        []commands.ArgSpec{{Name: "user", Kind: commands.ArgRest}},
			Permission:  commands.PermissionBanMembers,
			GuildOnly:   true,
			Handler:     f.handleUnban,
		},
		{
			Name:        "purge",
			Aliases:     []string{"clear"},
			Category:    category,
			Description: "Delete recent messages in this channel",
			Args:        []commands.ArgSpec{{Name: "amount", Kind: commands.ArgInt}},
			Permission:  commands.PermissionManageMessages,
			GuildOnly:   true,
			Handler:     f.handlePurge,
		},
		{
			Name:        "timeout",
			Aliases:     []string{"mute"},
			Category:    category,
			Description: "Time out a member for a number of minutes",
			Args: []commands.ArgSpec{
				member,
				{Name: "minutes", Kind: commands.ArgInt},
				reason,
			},
			Permission: commands.PermissionModerateMembers,
			GuildOnly:  true,
			Handler:    f.handleTimeout,
		},
		{
			Name:        "untimeout",
			Aliases:     []string{"unmute"},
			Category:    category,
			Description: "Remove a member's timeout",
			Args:        []commands.ArgSpec{member},
			Permission:  commands.PermissionModerateMembers,
			GuildOnly:   true,
			Handler:     f.handleUntimeout,
		},
		{
			Name:        "addrole",
			Category:    category,
			Description: "Give a role to a member",
			Args:        []commands.ArgSpec{member, {Name: "role", Kind: commands.ArgRest}},
			Permission:  commands.PermissionManageRoles,
			GuildOnly:   true,
			Handler:     f.handleAddRole,
		},
		{
			Name:        "removerole",
			Category:    category,
			Description: "Take a role from a member",
			Args:        []commands.ArgSpec{member, {Name: "role", Kind: commands.ArgRest}},
			Permission:  commands.PermissionManageRoles,
			GuildOnly:   true,
			Handler:     f.handleRemoveRole,
		},
	}
}
