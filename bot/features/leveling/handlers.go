package leveling

import (
	"bytes"
	"context"
	"fmt"

	"guildbot/application"
	"guildbot/bot/commands"
	"guildbot/bot/common"
	"guildbot/bot/scoreboard"
	"guildbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleRank(ctx context.Context, inv *commands.Invocation) error {
	targetID := inv.AuthorID
	if inv.Args.Has("member") {
		targetID = inv.Args.User("member")
	}

	var record *entities.XPRecord
	err := common.InTransaction(ctx, f.uowFactory, inv.GuildID, func(uow application.UnitOfWork) error {
		var err error
		record, err = f.levelingService(uow).GetRank(ctx, targetID)
		return err
	})
	if err != nil {
		return err
	}

	name := common.GetDisplayNameInt64(inv.Session, inv.Message.GuildID, targetID)
	if record == nil {
		_, err = inv.Reply(fmt.Sprintf("%s hasn't earned any XP yet!", name))
		return err
	}

	_, err = inv.ReplyEmbed(buildRankEmbed(name, record))
	return err
}

func (f *Feature) handleLeaderboard(ctx context.Context, inv *commands.Invocation) error {
	var records []*entities.XPRecord
	err := common.InTransaction(ctx, f.uowFactory, inv.GuildID, func(uow application.UnitOfWork) error {
		var err error
		records, err = f.levelingService(uow).GetLeaderboard(ctx, common.LeaderboardSize)
		return err
	})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		_, err = inv.Reply("No one has earned XP yet!")
		return err
	}

	names := make([]string, len(records))
	entries := make([]scoreboard.XPEntry, len(records))
	for i, record := range records {
		names[i] = common.GetDisplayNameInt64(inv.Session, inv.Message.GuildID, record.DiscordID)
		entries[i] = scoreboard.XPEntry{
			Rank:     i + 1,
			Name:     names[i],
			Level:    record.Level,
			XP:       record.XP,
			Messages: record.Messages,
			Progress: record.Progress(),
		}
	}
	embed := buildLeaderboardEmbed(names, records)

	image, err := f.images.GenerateXPScoreboard(entries)
	if err != nil {
		log.WithError(err).Warn("Failed to render leaderboard image, sending embed only")
		_, err = inv.ReplyEmbed(embed)
		return err
	}

	embed.Image = &discordgo.MessageEmbedImage{URL: "attachment://leaderboard.png"}
	_, err = inv.ReplyComplex(&discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Files: []*discordgo.File{{
			Name:        "leaderboard.png",
			ContentType: "image/png",
			Reader:      bytes.NewReader(image),
		}},
	})
	return err
}

func (f *Feature) handleGiveXP(ctx context.Context, inv *commands.Invocation) error {
	targetID := inv.Args.User("member")
	amount := inv.Args.Int("amount")

	var record *entities.XPRecord
	err := common.InTransaction(ctx, f.uowFactory, inv.GuildID, func(uow application.UnitOfWork) error {
		var err error
		record, err = f.levelingService(uow).GiveXP(ctx, targetID, amount)
		return err
	})
	if err != nil {
		return err
	}

	_, err = inv.Reply(fmt.Sprintf("✅ Gave %s XP to %s. They are now level %d with %s XP.",
		common.FormatBalance(amount), common.GetUserMention(targetID), record.Level, common.FormatBalance(record.XP)))
	return err
}

func (f *Feature) handleResetXP(ctx context.Context, inv *commands.Invocation) error {
	if inv.Args.Has("member") {
		targetID := inv.Args.User("member")
		var removed bool
		err := common.InTransaction(ctx, f.uowFactory, inv.GuildID, func(uow application.UnitOfWork) error {
			var err error
			removed, err = f.levelingService(uow).ResetUser(ctx, targetID)
			return err
		})
		if err != nil {
			return err
		}
		if !removed {
			return entities.NewValidationError("That member has no XP to reset!")
		}
		_, err = inv.Reply(fmt.Sprintf("✅ Reset XP for %s.", common.GetUserMention(targetID)))
		return err
	}

	var count int64
	err := common.InTransaction(ctx, f.uowFactory, inv.GuildID, func(uow application.UnitOfWork) error {
		var err error
		count, err = f.levelingService(uow).ResetGuild(ctx)
		return err
	})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"guildID": inv.GuildID,
		"adminID": inv.AuthorID,
		"records": count,
	}).Info("Guild XP reset")

	_, err = inv.Reply(fmt.Sprintf("✅ Reset XP for %d members.", count))
	return err
}
