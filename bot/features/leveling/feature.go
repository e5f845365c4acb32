package leveling

import (
	"context"

	"guildbot/application"
	"guildbot/bot/commands"
	"guildbot/bot/common"
	"guildbot/bot/scoreboard"
	"guildbot/domain/cooldown"
	"guildbot/domain/entities"
	"guildbot/domain/interfaces"
	"guildbot/domain/services"
	"guildbot/infrastructure/observability"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const category = "Leveling"

// Feature awards message XP and serves the rank commands
type Feature struct {
	uowFactory application.UnitOfWorkFactory
	cooldowns  *cooldown.Gate
	images     *scoreboard.ImageGenerator
}

// NewFeature creates a new leveling feature instance
func NewFeature(uowFactory application.UnitOfWorkFactory, cooldowns *cooldown.Gate) *Feature {
	return &Feature{
		uowFactory: uowFactory,
		cooldowns:  cooldowns,
		images:     scoreboard.NewImageGenerator(),
	}
}

func (f *Feature) levelingService(uow application.UnitOfWork) interfaces.LevelingService {
	return services.NewLevelingService(uow.XPRepository(), uow.EventBus(), f.cooldowns)
}

// HandleMessage awards XP for a guild message. Level ups are announced by the
// level up event subscriber once the transaction commits.
func (f *Feature) HandleMessage(ctx context.Context, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	userID, err := common.ParseID(m.Author.ID)
	if err != nil {
		return
	}
	if f.cooldowns.Remaining(cooldown.ActionXP, userID) > 0 {
		return
	}
	guildID, err := common.ParseID(m.GuildID)
	if err != nil {
		return
	}
	channelID, err := common.ParseID(m.ChannelID)
	if err != nil {
		return
	}

	var levelUp *entities.LevelUp
	xpCooldown := common.CooldownKey{Gate: f.cooldowns, Action: cooldown.ActionXP, Subject: userID}
	err = common.InTransactionWithCooldown(ctx, f.uowFactory, guildID, xpCooldown, func(uow application.UnitOfWork) error {
		var err error
		levelUp, err = f.levelingService(uow).ProcessMessage(ctx, guildID, channelID, userID)
		return err
	})
	if err != nil {
		log.WithFields(log.Fields{
			"userID":  userID,
			"guildID": guildID,
		}).WithError(err).Error("Failed to award message XP")
		return
	}

	observability.GetMetrics().RecordXPAwarded(entities.XPPerMessage, levelUp != nil)
	if levelUp != nil {
		log.WithFields(log.Fields{
			"userID":   userID,
			"guildID":  guildID,
			"newLevel": levelUp.NewLevel,
		}).Debug("Member leveled up")
	}
}

// Commands returns the leveling command table
func (f *Feature) Commands() []*commands.Command {
	return []*commands.Command{
		{
			Name:        "rank",
			Aliases:     []string{"level"},
			Category:    category,
			Description: "Show your or another member's level",
			Args:        []commands.ArgSpec{{Name: "member", Kind: commands.ArgUser, Optional: true}},
			GuildOnly:   true,
			Handler:     f.handleRank,
		},
		{
			Name:        "leaderboard",
			Aliases:     []string{"lb"},
			Category:    category,
			Description: "Show the top members by level",
			GuildOnly:   true,
			Handler:     f.handleLeaderboard,
		},
		{
			Name:        "givexp",
			Category:    category,
			Description: "Give XP to a member",
			Args: []commands.ArgSpec{
				{Name: "member", Kind: commands.ArgUser},
				{Name: "amount", Kind: commands.ArgInt},
			},
			Permission: commands.PermissionAdministrator,
			GuildOnly:  true,
			Handler:    f.handleGiveXP,
		},
		{
			Name:        "resetxp",
			Category:    category,
			Description: "Reset XP for a member or the whole server",
			Args:        []commands.ArgSpec{{Name: "member", Kind: commands.ArgUser, Optional: true}},
			Permission:  commands.PermissionAdministrator,
			GuildOnly:   true,
			Handler:     f.handleResetXP,
		},
	}
}
