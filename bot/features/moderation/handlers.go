package moderation

import (
	"context"
	"fmt"
	"time"

	"guildbot/application"
	"guildbot/bot/commands"
	"guildbot/bot/common"
	"guildbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleWarn(ctx context.Context, inv *commands.Invocation) error {
	targetID := inv.Args.User("member")
	if _, err := checkHierarchy(inv, targetID, "warn"); err != nil {
		return err
	}

	reason := inv.Args.String("reason")
	if reason == "" {
		reason = entities.DefaultWarningReason
	}

	var result *entities.WarnResult
	err := common.InTransaction(ctx, f.uowFactory, inv.GuildID, func(uow application.UnitOfWork) error {
		var err error
		result, err = f.moderationService(uow).Warn(ctx, inv.GuildID, targetID, inv.AuthorID, reason)
		return err
	})
	if err != nil {
		return err
	}

	embed := buildWarnEmbed(common.GetUserMention(targetID), reason, result.TotalWarnings)
	if result.ShouldTimeout {
		until := f.now().Add(entities.AutoTimeoutDuration)
		err := inv.Session.GuildMemberTimeout(inv.Message.GuildID, common.FormatID(targetID), &until)
		addAutoTimeoutField(embed, until, err)
		if err != nil {
			log.WithError(err).WithField("targetID", targetID).Warn("Automatic timeout failed")
		}
	}

	_, err = inv.ReplyEmbed(embed)
	return err
}

func (f *Feature) handleWarnings(ctx context.Context, inv *commands.Invocation) error {
	targetID := inv.Args.User("member")

	var warnings []*entities.Warning
	err := common.InTransaction(ctx, f.uowFactory, inv.GuildID, func(uow application.UnitOfWork) error {
		var err error
		warnings, err = f.moderationService(uow).ListWarnings(ctx, targetID)
		return err
	})
	if err != nil {
		return err
	}
	if len(warnings) == 0 {
		_, err = inv.Reply(fmt.Sprintf("%s has no warnings.", common.GetUserMention(targetID)))
		return err
	}

	guildID := inv.Message.GuildID
	name := common.GetDisplayNameInt64(inv.Session, guildID, targetID)
	embed := buildWarningsEmbed(name, warnings, func(id int64) string {
		return common.GetDisplayNameInt64(inv.Session, guildID, id)
	})
	_, err = inv.ReplyEmbed(embed)
	return err
}

func (f *Feature) handleClearWarnings(ctx context.Context, inv *commands.Invocation) error {
	targetID := inv.Args.User("member")
	if _, err := checkHierarchy(inv, targetID, "clear warnings for"); err != nil {
		return err
	}

	var cleared int64
	err := common.InTransaction(ctx, f.uowFactory, inv.GuildID, func(uow application.UnitOfWork) error {
		var err error
		cleared, err = f.moderationService(uow).ClearWarnings(ctx, targetID)
		return err
	})
	if err != nil {
		return err
	}

	mention := common.GetUserMention(targetID)
	if cleared == 0 {
		_, err = inv.Reply(fmt.Sprintf("%s has no warnings to clear.", mention))
		return err
	}
	_, err = inv.Reply(fmt.Sprintf("✅ Cleared all warnings for %s", mention))
	return err
}

func (f *Feature) handleKick(ctx context.Context, inv *commands.Invocation) error {
	targetID := inv.Args.User("member")
	if _, err := checkHierarchy(inv, targetID, "kick"); err != nil {
		return err
	}

	reason := inv.Args.String("reason")
	if err := inv.Session.GuildMemberDeleteWithReason(inv.Message.GuildID, common.FormatID(targetID), reason); err != nil {
		return common.NewPlatformError(err, "kick this member")
	}

	_, err := inv.ReplyEmbed(buildActionEmbed("👢 Kick", common.ColorDanger, common.GetUserMention(targetID), reason))
	return err
}

func (f *Feature) handleBan(ctx context.Context, inv *commands.Invocation) error {
	targetID := inv.Args.User("member")
	if _, err := checkHierarchy(inv, targetID, "ban"); err != nil {
		return err
	}

	reason := inv.Args.String("reason")
	if err := inv.Session.GuildBanCreateWithReason(inv.Message.GuildID, common.FormatID(targetID), reason, 0); err != nil {
		return common.NewPlatformError(err, "ban this member")
	}

	_, err := inv.ReplyEmbed(buildActionEmbed("🔨 Ban", common.ColorDanger, common.GetUserMention(targetID), reason))
	return err
}

func (f *Feature) handleUnban(ctx context.Context, inv *commands.Invocation) error {
	query := inv.Args.String("user")
	if id, ok := commands.ParseMention(query); ok {
		query = common.FormatID(id)
	}

	bans, err := inv.Session.GuildBans(inv.Message.GuildID, 1000, "", "")
	if err != nil {
		return common.NewPlatformError(err, "read the ban list")
	}
	user := matchBan(bans, query)
	if user == nil {
		return entities.NewValidationError("Couldn't find %s in ban list.", query)
	}

	if err := inv.Session.GuildBanDelete(inv.Message.GuildID, user.ID); err != nil {
		return common.NewPlatformError(err, "unban this user")
	}

	_, err = inv.ReplyEmbed(buildActionEmbed("🔓 Unban", common.ColorSuccess, user.String(), ""))
	return err
}

func (f *Feature) handlePurge(ctx context.Context, inv *commands.Invocation) error {
	amount := inv.Args.Int("amount")
	if amount <= 0 {
		return entities.NewValidationError("Please specify a positive number!")
	}
	if amount > maxPurge {
		return entities.NewValidationError("You can purge at most %d messages at a time!", maxPurge)
	}

	channelID := inv.Message.ChannelID
	messages, err := inv.Session.ChannelMessages(channelID, int(amount)+1, "", "", "")
	if err != nil {
		return common.NewPlatformError(err, "read messages in this channel")
	}

	ids := purgeIDs(messages, f.now())
	if len(ids) == 1 {
		err = inv.Session.ChannelMessageDelete(channelID, ids[0])
	} else if len(ids) > 1 {
		err = inv.Session.ChannelMessagesBulkDelete(channelID, ids)
	}
	if err != nil {
		return common.NewPlatformError(err, "delete messages")
	}

	deleted := len(ids) - 1
	if deleted < 0 {
		deleted = 0
	}
	msg, err := inv.Reply(fmt.Sprintf("✅ Deleted %d messages.", deleted))
	if err != nil {
		return err
	}

	s := inv.Session
	time.AfterFunc(purgeConfirmationTTL, func() {
		if err := s.ChannelMessageDelete(msg.ChannelID, msg.ID); err != nil {
			log.WithError(err).Debug("Failed to delete purge confirmation")
		}
	})
	return nil
}

// purgeIDs returns the ids the bulk delete endpoint will accept: messages younger than two weeks
func purgeIDs(messages []*discordgo.Message, now time.Time) []string {
	cutoff := now.Add(-14 * 24 * time.Hour)
	ids := make([]string, 0, len(messages))
	for _, m := range messages {
		if m.Timestamp.After(cutoff) {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

func (f *Feature) handleTimeout(ctx context.Context, inv *commands.Invocation) error {
	targetID := inv.Args.User("member")
	minutes := inv.Args.Int("minutes")
	if minutes <= 0 {
		return entities.NewValidationError("Duration must be positive!")
	}
	if _, err := checkHierarchy(inv, targetID, "timeout"); err != nil {
		return err
	}

	until := f.now().Add(time.Duration(minutes) * time.Minute)
	if err := inv.Session.GuildMemberTimeout(inv.Message.GuildID, common.FormatID(targetID), &until); err != nil {
		return common.NewPlatformError(err, "timeout this member")
	}

	reason := inv.Args.String("reason")
	_, err := inv.ReplyEmbed(buildTimeoutEmbed(common.GetUserMention(targetID), minutes, reason, until))
	return err
}

func (f *Feature) handleUntimeout(ctx context.Context, inv *commands.Invocation) error {
	targetID := inv.Args.User("member")
	if _, err := checkHierarchy(inv, targetID, "remove timeout from"); err != nil {
		return err
	}

	if err := inv.Session.GuildMemberTimeout(inv.Message.GuildID, common.FormatID(targetID), nil); err != nil {
		return common.NewPlatformError(err, "remove timeout from this member")
	}

	_, err := inv.ReplyEmbed(buildActionEmbed("🔊 Timeout Removed", common.ColorSuccess, common.GetUserMention(targetID), ""))
	return err
}

func (f *Feature) handleAddRole(ctx context.Context, inv *commands.Invocation) error {
	return f.changeRole(inv, true)
}

func (f *Feature) handleRemoveRole(ctx context.Context, inv *commands.Invocation) error {
	return f.changeRole(inv, false)
}

func (f *Feature) changeRole(inv *commands.Invocation, add bool) error {
	guildID := inv.Message.GuildID
	targetID := inv.Args.User("member")

	roles, err := inv.Session.GuildRoles(guildID)
	if err != nil {
		return common.NewPlatformError(err, "read the server roles")
	}
	role := matchRole(roles, inv.Args.String("role"))
	if role == nil {
		return entities.NewValidationError("Role not found!")
	}

	actor, err := lookupMember(inv.Session, guildID, inv.AuthorID)
	if err != nil {
		return err
	}
	isOwner := actor.User != nil && actor.User.ID == guildOwner(inv.Session, guildID)
	if !outranks(common.HighestRolePosition(inv.Session, guildID, actor), role.Position, isOwner, false) {
		return entities.NewValidationError("You can't manage a role higher than or equal to your own!")
	}

	mention := common.GetUserMention(targetID)
	if add {
		if err := inv.Session.GuildMemberRoleAdd(guildID, common.FormatID(targetID), role.ID); err != nil {
			return common.NewPlatformError(err, "add this role")
		}
		_, err = inv.Reply(fmt.Sprintf("✅ Added %s to %s", role.Name, mention))
		return err
	}

	if err := inv.Session.GuildMemberRoleRemove(guildID, common.FormatID(targetID), role.ID); err != nil {
		return common.NewPlatformError(err, "remove this role")
	}
	_, err = inv.Reply(fmt.Sprintf("✅ Removed %s from %s", role.Name, mention))
	return err
}
