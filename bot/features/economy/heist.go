package economy

import (
	"context"
	"fmt"

	"guildbot/application"
	"guildbot/bot/commands"
	"guildbot/bot/common"
	"guildbot/domain/cooldown"
	"guildbot/domain/entities"
	"guildbot/domain/games"
	"guildbot/infrastructure/observability"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleBankrob(ctx context.Context, inv *commands.Invocation) error {
	targetID := inv.Args.User("member")

	var heist *entities.Heist
	var target *entities.Account
	bankrobCooldown := common.CooldownKey{Gate: f.cooldowns, Action: cooldown.ActionBankrob, Subject: inv.GuildID}
	err := common.InTransactionWithCooldown(ctx, f.uowFactory, inv.GuildID, bankrobCooldown, func(uow application.UnitOfWork) error {
		var err error
		heist, err = f.heistService(uow).Open(ctx, inv.GuildID, inv.ChannelID, inv.AuthorID, targetID)
		if err != nil {
			return err
		}
		target, err = f.economyService(uow).GetBalance(ctx, targetID)
		return err
	})
	if err != nil {
		return err
	}

	msg, err := inv.ReplyEmbed(buildHeistEmbed(common.GetUserMention(targetID), target.Bank))
	if err != nil {
		f.cooldowns.Clear(cooldown.ActionBankrob, inv.GuildID)
		return err
	}
	if err := inv.Session.MessageReactionAdd(msg.ChannelID, msg.ID, entities.HeistJoinEmoji); err != nil {
		log.WithError(err).Warn("Failed to add heist join reaction")
	}

	heist.MessageID, _ = common.ParseID(msg.ID)
	f.heists.Start(msg.ID, heist, heist.Deadline.Sub(f.clock()))
	observability.GetMetrics().UpdateActiveGames(observability.GameHeist, 1)
	return nil
}

// HandleReactionAdd processes 💰 reactions on open heist messages.
// It returns true if the reaction belonged to a heist.
func (f *Feature) HandleReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) bool {
	if r.Emoji.Name != entities.HeistJoinEmoji || !f.heists.Has(r.MessageID) {
		return false
	}
	if s.State.User != nil && r.UserID == s.State.User.ID {
		return true
	}

	userID, err := common.ParseID(r.UserID)
	if err != nil {
		log.WithError(err).WithField("userID", r.UserID).Warn("Invalid reaction user id")
		return true
	}
	isBot := common.IsBotUser(s, r.GuildID, userID)
	if r.Member != nil && r.Member.User != nil {
		isBot = r.Member.User.Bot
	}

	guildID, err := common.ParseID(r.GuildID)
	if err != nil {
		return true
	}

	ctx := context.Background()
	var wallet int64
	err = common.InTransaction(ctx, f.uowFactory, guildID, func(uow application.UnitOfWork) error {
		var err error
		wallet, err = f.heistService(uow).JoinerWallet(ctx, userID, isBot)
		return err
	})
	if err != nil {
		log.WithError(err).WithField("messageID", r.MessageID).Error("Failed to read heist joiner wallet")
		return true
	}

	notice, ready := f.joinHeist(r.MessageID, userID, isBot, wallet)
	if notice != "" {
		if _, err := s.ChannelMessageSend(r.ChannelID, notice); err != nil {
			log.WithError(err).Error("Failed to send heist join notice")
		}
	}
	if ready != nil {
		observability.GetMetrics().UpdateActiveGames(observability.GameHeist, -1)
		f.executeHeist(ctx, s, ready)
	}
	return true
}

// joinHeist applies a join to the open heist on messageID. It returns the notice to
// post and, once the crew is complete, the heist to execute.
func (f *Feature) joinHeist(messageID string, userID int64, isBot bool, wallet int64) (notice string, ready *entities.Heist) {
	f.heists.Update(messageID, func(h *entities.Heist) games.Step {
		mention := common.GetUserMention(userID)
		switch h.Join(userID, isBot, wallet, f.clock()) {
		case entities.JoinAccepted:
			notice = fmt.Sprintf("%s joined the heist! (%d/%d people)", mention, len(h.Members), entities.HeistCrewSize)
		case entities.JoinQuorumReached:
			notice = fmt.Sprintf("%s joined the heist! (%d/%d people)", mention, len(h.Members), entities.HeistCrewSize)
			ready = h
			return games.Finish
		case entities.JoinInsufficientFunds:
			notice = fmt.Sprintf("%s doesn't have enough money to join the heist!", mention)
		}
		// a closed heist is left for its timer to cancel
		return games.Hold
	})
	return notice, ready
}

func (f *Feature) executeHeist(ctx context.Context, s *discordgo.Session, heist *entities.Heist) {
	channelID := common.FormatID(heist.ChannelID)
	if _, err := s.ChannelMessageSend(channelID, "🏃‍♂️ The heist is starting..."); err != nil {
		log.WithError(err).Warn("Failed to announce heist start")
	}

	var outcome *entities.HeistOutcome
	err := common.InTransaction(ctx, f.uowFactory, heist.GuildID, func(uow application.UnitOfWork) error {
		var err error
		outcome, err = f.heistService(uow).Execute(ctx, heist)
		return err
	})
	if err != nil {
		common.RespondWithError(s, channelID, "bankrob", err)
		return
	}

	if _, err := s.ChannelMessageSendEmbed(channelID, buildHeistResultEmbed(outcome, common.GetUserMention(heist.TargetID))); err != nil {
		log.WithError(err).Error("Failed to send heist result")
	}
}

func (f *Feature) onHeistExpired(messageID string, heist *entities.Heist) {
	observability.GetMetrics().UpdateActiveGames(observability.GameHeist, -1)

	if !heist.Expire(f.clock()) {
		log.WithFields(log.Fields{
			"heistID": heist.ID,
			"state":   heist.State,
		}).Warn("Heist timer fired for a heist that cannot expire")
		return
	}

	log.WithFields(log.Fields{
		"heistID":   heist.ID,
		"messageID": messageID,
		"members":   len(heist.Members),
	}).Info("Heist cancelled")

	channelID := common.FormatID(heist.ChannelID)
	if _, err := f.session.ChannelMessageSend(channelID, "❌ Not enough people joined the heist in time! The heist has been cancelled."); err != nil {
		log.WithError(err).Error("Failed to send heist cancellation")
	}
}
