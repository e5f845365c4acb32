package utility

import (
	"context"
	"fmt"

	"guildbot/application"
	"guildbot/bot/commands"
	"guildbot/bot/common"

	"github.com/bwmarrin/discordgo"
)

func (f *Feature) handlePing(ctx context.Context, inv *commands.Invocation) error {
	msg, err := inv.Reply("Pinging...")
	if err != nil {
		return err
	}

	roundTrip := msg.Timestamp.Sub(inv.Message.Timestamp)
	embed := buildPingEmbed(roundTrip, inv.Session.HeartbeatLatency())

	edit := discordgo.NewMessageEdit(msg.ChannelID, msg.ID).SetContent("").SetEmbed(embed)
	if _, err := inv.Session.ChannelMessageEditComplex(edit); err != nil {
		return common.NewPlatformError(err, "edit messages")
	}
	return nil
}

func (f *Feature) handleServerInfo(ctx context.Context, inv *commands.Invocation) error {
	guildID := inv.Message.GuildID

	guild, err := inv.Session.State.Guild(guildID)
	if err != nil {
		guild, err = inv.Session.GuildWithCounts(guildID)
		if err != nil {
			return common.NewPlatformError(err, "view this server")
		}
	}

	_, err = inv.ReplyEmbed(buildServerInfoEmbed(guild, f.now()))
	return err
}

func (f *Feature) handleUserInfo(ctx context.Context, inv *commands.Invocation) error {
	userID := inv.AuthorID
	if inv.Args.Has("member") {
		userID = inv.Args.User("member")
	}
	guildID := inv.Message.GuildID

	member, err := inv.Session.State.Member(guildID, common.FormatID(userID))
	if err != nil {
		member, err = inv.Session.GuildMember(guildID, common.FormatID(userID))
		if err != nil {
			return common.NewUserError("Member not found.", err.Error())
		}
	}

	roles, err := inv.Session.GuildRoles(guildID)
	if err != nil {
		return common.NewPlatformError(err, "view roles")
	}

	_, err = inv.ReplyEmbed(buildUserInfoEmbed(member, roles, f.now()))
	return err
}

func (f *Feature) handleRemind(ctx context.Context, inv *commands.Invocation) error {
	delay := inv.Args.String("time")
	text := inv.Args.String("reminder")

	err := common.InTransaction(ctx, f.uowFactory, inv.GuildID, func(uow application.UnitOfWork) error {
		_, err := f.reminderService(uow).Schedule(ctx, inv.ChannelID, inv.AuthorID, delay, text)
		return err
	})
	if err != nil {
		return err
	}

	_, err = inv.Reply(fmt.Sprintf("I'll remind you about '%s' in %s!", text, delay))
	return err
}

func (f *Feature) handleSystem(ctx context.Context, inv *commands.Invocation) error {
	info, err := f.system()
	if err != nil {
		return common.NewSystemError(err, "failed to collect system information")
	}
	_, err = inv.ReplyEmbed(buildSystemEmbed(info))
	return err
}

func (f *Feature) handleTest(ctx context.Context, inv *commands.Invocation) error {
	_, err := inv.Reply("Bot is working!")
	return err
}
