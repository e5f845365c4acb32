package economy

import (
	"time"

	"guildbot/application"
	"guildbot/bot/commands"
	"guildbot/bot/scoreboard"
	"guildbot/domain/cooldown"
	"guildbot/domain/entities"
	"guildbot/domain/games"
	"guildbot/domain/interfaces"
	"guildbot/domain/services"

	"github.com/bwmarrin/discordgo"
)

const category = "Economy"

// Feature owns the economy commands and the bank heist flow
type Feature struct {
	session    *discordgo.Session
	uowFactory application.UnitOfWorkFactory
	cooldowns  *cooldown.Gate
	rng        interfaces.RandomSource
	clock      cooldown.Clock
	images     *scoreboard.ImageGenerator
	heists     *games.Registry[string, *entities.Heist]
}

// NewFeature creates a new economy feature instance
func NewFeature(session *discordgo.Session, uowFactory application.UnitOfWorkFactory, cooldowns *cooldown.Gate, rng interfaces.RandomSource) *Feature {
	f := &Feature{
		session:    session,
		uowFactory: uowFactory,
		cooldowns:  cooldowns,
		rng:        rng,
		clock:      time.Now,
		images:     scoreboard.NewImageGenerator(),
	}
	f.heists = games.NewRegistry(f.onHeistExpired)
	return f
}

// Stop drops pending heists without firing their timeouts
func (f *Feature) Stop() {
	f.heists.Stop()
}

func (f *Feature) economyService(uow application.UnitOfWork) interfaces.EconomyService {
	return services.NewEconomyService(
		uow.AccountRepository(),
		uow.EconomyStatsRepository(),
		uow.InventoryRepository(),
		uow.BalanceHistoryRepository(),
		uow.EventBus(),
		f.cooldowns,
		f.rng,
	)
}

func (f *Feature) heistService(uow application.UnitOfWork) interfaces.HeistService {
	return services.NewHeistService(
		uow.AccountRepository(),
		uow.BalanceHistoryRepository(),
		uow.EventBus(),
		f.cooldowns,
		f.rng,
		f.clock,
	)
}

func (f *Feature) petService(uow application.UnitOfWork) interfaces.PetService {
	return services.NewPetService(
		uow.PetRepository(),
		uow.AccountRepository(),
		uow.BalanceHistoryRepository(),
		uow.EventBus(),
		f.rng,
	)
}

// Commands returns the economy command table
func (f *Feature) Commands() []*commands.Command {
	return []*commands.Command{
		{
			Name:        "balance",
			Aliases:     []string{"bal"},
			Category:    category,
			Description: "Check your or another member's balance",
			Args:        []commands.ArgSpec{{Name: "member", Kind: commands.ArgUser, Optional: true}},
			Handler:     f.handleBalance,
		},
		{
			Name:        "work",
			Category:    category,
			Description: "Work to earn money, optionally at a job",
			Args:        []commands.ArgSpec{{Name: "job", Kind: commands.ArgString, Optional: true}},
			Handler:     f.handleWork,
		},
		{
			Name:        "advancework",
			Category:    category,
			Description: "Work for doubled pay (requires 150 works)",
			Args:        []commands.ArgSpec{{Name: "job", Kind: commands.ArgString, Optional: true}},
			Handler:     f.handleAdvancedWork,
		},
		{
			Name:        "gamble",
			Category:    category,
			Description: "Gamble an amount or all of your wallet",
			Args:        []commands.ArgSpec{{Name: "amount", Kind: commands.ArgString}},
			Handler:     f.handleGamble,
		},
		{
			Name:        "advancegamble",
			Category:    category,
			Description: "Gamble with advanced odds (requires 75 wins)",
			Args:        []commands.ArgSpec{{Name: "amount", Kind: commands.ArgString}},
			Handler:     f.handleAdvancedGamble,
		},
		{
			Name:        "rob",
			Category:    category,
			Description: "Try to steal from another member's wallet",
			Args:        []commands.ArgSpec{{Name: "member", Kind: commands.ArgUser}},
			GuildOnly:   true,
			Handler:     f.handleRob,
		},
		{
			Name:        "deposit",
			Aliases:     []string{"dep"},
			Category:    category,
			Description: "Move money from your wallet to your bank",
			Args:        []commands.ArgSpec{{Name: "amount", Kind: commands.ArgString}},
			Handler:     f.handleDeposit,
		},
		{
			Name:        "withdraw",
			Category:    category,
			Description: "Move money from your bank to your wallet",
			Args:        []commands.ArgSpec{{Name: "amount", Kind: commands.ArgString}},
			Handler:     f.handleWithdraw,
		},
		{
			Name:        "bankrob",
			Aliases:     []string{"heist"},
			Category:    category,
			Description: "Plan a crew heist on a member's bank",
			Args:        []commands.ArgSpec{{Name: "member", Kind: commands.ArgUser}},
			GuildOnly:   true,
			Handler:     f.handleBankrob,
		},
		{
			Name:        "market",
			Category:    category,
			Description: "View the market or sell an item",
			Args: []commands.ArgSpec{
				{Name: "action", Kind: commands.ArgString, Optional: true},
				{Name: "item", Kind: commands.ArgString, Optional: true},
			},
			Handler: f.handleMarket,
		},
		{
			Name:        "inventory",
			Aliases:     []string{"inv"},
			Category:    category,
			Description: "List the items you own",
			Handler:     f.handleInventory,
		},
		{
			Name:        "pet",
			Category:    category,
			Description: "Show your pet or buy one",
			Args: []commands.ArgSpec{
				{Name: "action", Kind: commands.ArgString, Optional: true},
				{Name: "type", Kind: commands.ArgString, Optional: true},
			},
			Handler: f.handlePet,
		},
		{
			Name:        "challenge",
			Category:    category,
			Description: "Battle another member's pet for a bet",
			Args: []commands.ArgSpec{
				{Name: "member", Kind: commands.ArgUser},
				{Name: "bet", Kind: commands.ArgInt},
			},
			GuildOnly: true,
			Handler:   f.handleChallenge,
		},
		{
			Name:        "stats",
			Category:    category,
			Description: "View your job and gambling progress",
			Handler:     f.handleStats,
		},
		{
			Name:        "givemoney",
			Category:    category,
			Description: "Give money to a member (server owner only)",
			Args: []commands.ArgSpec{
				{Name: "member", Kind: commands.ArgUser},
				{Name: "amount", Kind: commands.ArgInt},
			},
			Permission: commands.PermissionGuildOwner,
			GuildOnly:  true,
			Handler:    f.handleGiveMoney,
		},
		{
			Name:        "removemoney",
			Category:    category,
			Description: "Remove money from a member (server owner only)",
			Args: []commands.ArgSpec{
				{Name: "member", Kind: commands.ArgUser},
				{Name: "amount", Kind: commands.ArgInt},
			},
			Permission: commands.PermissionGuildOwner,
			GuildOnly:  true,
			Handler:    f.handleRemoveMoney,
		},
		{
			Name:        "richest",
			Category:    category,
			Description: "Show the wealthiest members",
			Handler:     f.handleRichest,
		},
	}
}
