package economy

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"guildbot/application"
	"guildbot/bot/commands"
	"guildbot/bot/common"
	"guildbot/bot/scoreboard"
	"guildbot/domain/cooldown"
	"guildbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) displayName(inv *commands.Invocation, userID int64) string {
	return common.GetDisplayNameInt64(inv.Session, inv.Message.GuildID, userID)
}

func (f *Feature) handleBalance(ctx context.Context, inv *commands.Invocation) error {
	targetID := inv.AuthorID
	if inv.Args.Has("member") {
		targetID = inv.Args.User("member")
	}

	var account *entities.Account
	err := common.InTransaction(ctx, f.uowFactory, inv.GuildID, func(uow application.UnitOfWork) error {
		var err error
		account, err = f.economyService(uow).GetBalance(ctx, targetID)
		return err
	})
	if err != nil {
		return err
	}

	_, err = inv.ReplyEmbed(buildBalanceEmbed(f.displayName(inv, targetID), account))
	return err
}

func (f *Feature) handleWork(ctx context.Context, inv *commands.Invocation) error {
	return f.work(ctx, inv, false)
}

func (f *Feature) handleAdvancedWork(ctx context.Context, inv *commands.Invocation) error {
	return f.work(ctx, inv, true)
}

func (f *Feature) work(ctx context.Context, inv *commands.Invocation, advanced bool) error {
	job := inv.Args.String("job")

	var result *entities.WorkResult
	workCooldown := common.CooldownKey{Gate: f.cooldowns, Action: cooldown.ActionWork, Subject: inv.AuthorID}
	err := common.InTransactionWithCooldown(ctx, f.uowFactory, inv.GuildID, workCooldown, func(uow application.UnitOfWork) error {
		var err error
		if advanced {
			result, err = f.economyService(uow).AdvancedWork(ctx, inv.AuthorID, job)
		} else {
			result, err = f.economyService(uow).Work(ctx, inv.AuthorID, job)
		}
		return err
	})
	if err != nil {
		return err
	}

	_, err = inv.Reply(workMessage(result))
	return err
}

func (f *Feature) handleGamble(ctx context.Context, inv *commands.Invocation) error {
	return f.gamble(ctx, inv, false)
}

func (f *Feature) handleAdvancedGamble(ctx context.Context, inv *commands.Invocation) error {
	return f.gamble(ctx, inv, true)
}

func (f *Feature) gamble(ctx context.Context, inv *commands.Invocation, advanced bool) error {
	amount := inv.Args.String("amount")

	var result *entities.GambleResult
	err := common.InTransaction(ctx, f.uowFactory, inv.GuildID, func(uow application.UnitOfWork) error {
		var err error
		if advanced {
			result, err = f.economyService(uow).AdvancedGamble(ctx, inv.AuthorID, amount)
		} else {
			result, err = f.economyService(uow).Gamble(ctx, inv.AuthorID, amount)
		}
		return err
	})
	if err != nil {
		return err
	}

	_, err = inv.ReplyEmbed(buildGambleEmbed(result))
	return err
}

func (f *Feature) handleRob(ctx context.Context, inv *commands.Invocation) error {
	targetID := inv.Args.User("member")
	isBot := common.IsBotUser(inv.Session, inv.Message.GuildID, targetID)

	var result *entities.RobResult
	robCooldown := common.CooldownKey{Gate: f.cooldowns, Action: cooldown.ActionRob, Subject: inv.AuthorID}
	err := common.InTransactionWithCooldown(ctx, f.uowFactory, inv.GuildID, robCooldown, func(uow application.UnitOfWork) error {
		var err error
		result, err = f.economyService(uow).Rob(ctx, inv.AuthorID, targetID, isBot)
		return err
	})
	if err != nil {
		return err
	}

	_, err = inv.Reply(robMessage(result, f.displayName(inv, targetID)))
	return err
}

func (f *Feature) handleDeposit(ctx context.Context, inv *commands.Invocation) error {
	var result *entities.TransferResult
	err := common.InTransaction(ctx, f.uowFactory, inv.GuildID, func(uow application.UnitOfWork) error {
		var err error
		result, err = f.economyService(uow).Deposit(ctx, inv.AuthorID, inv.Args.String("amount"))
		return err
	})
	if err != nil {
		return err
	}

	_, err = inv.Reply(fmt.Sprintf("Successfully deposited %s into your bank!", common.FormatMoney(result.Amount)))
	return err
}

func (f *Feature) handleWithdraw(ctx context.Context, inv *commands.Invocation) error {
	var result *entities.TransferResult
	err := common.InTransaction(ctx, f.uowFactory, inv.GuildID, func(uow application.UnitOfWork) error {
		var err error
		result, err = f.economyService(uow).Withdraw(ctx, inv.AuthorID, inv.Args.String("amount"))
		return err
	})
	if err != nil {
		return err
	}

	_, err = inv.Reply(fmt.Sprintf("Successfully withdrew %s from your bank!", common.FormatMoney(result.Amount)))
	return err
}

func (f *Feature) handleMarket(ctx context.Context, inv *commands.Invocation) error {
	action := strings.ToLower(inv.Args.String("action"))

	switch action {
	case "":
		var items []*entities.InventoryItem
		err := common.InTransaction(ctx, f.uowFactory, inv.GuildID, func(uow application.UnitOfWork) error {
			var err error
			items, err = f.economyService(uow).GetInventory(ctx, inv.AuthorID)
			return err
		})
		if err != nil {
			return err
		}
		_, err = inv.ReplyEmbed(buildMarketEmbed(items))
		return err

	case "sell":
		if !inv.Args.Has("item") {
			return entities.NewValidationError("Please specify an item to sell! Usage: `%smarket sell <item>`", inv.Prefix)
		}
		var sale *entities.SaleResult
		err := common.InTransaction(ctx, f.uowFactory, inv.GuildID, func(uow application.UnitOfWork) error {
			var err error
			sale, err = f.economyService(uow).SellItem(ctx, inv.AuthorID, inv.Args.String("item"))
			return err
		})
		if err != nil {
			return err
		}
		_, err = inv.Reply(fmt.Sprintf("You sold %s for %s! (%d left)", sale.Item, common.FormatMoney(sale.Price), sale.Remaining))
		return err

	default:
		return entities.NewValidationError("Unknown market action! Usage: `%s`", inv.Command.Usage(inv.Prefix))
	}
}

func (f *Feature) handleInventory(ctx context.Context, inv *commands.Invocation) error {
	var items []*entities.InventoryItem
	err := common.InTransaction(ctx, f.uowFactory, inv.GuildID, func(uow application.UnitOfWork) error {
		var err error
		items, err = f.economyService(uow).GetInventory(ctx, inv.AuthorID)
		return err
	})
	if err != nil {
		return err
	}

	_, err = inv.ReplyEmbed(buildInventoryEmbed(f.displayName(inv, inv.AuthorID), items))
	return err
}

func (f *Feature) handlePet(ctx context.Context, inv *commands.Invocation) error {
	action := strings.ToLower(inv.Args.String("action"))

	switch action {
	case "":
		var pet *entities.Pet
		err := common.InTransaction(ctx, f.uowFactory, inv.GuildID, func(uow application.UnitOfWork) error {
			var err error
			pet, err = f.petService(uow).GetPet(ctx, inv.AuthorID)
			return err
		})
		if err != nil {
			return err
		}
		if pet == nil {
			_, err = inv.Reply(fmt.Sprintf("You don't have a pet! Use `%spet buy <type>` to get one.", inv.Prefix))
			return err
		}
		_, err = inv.ReplyEmbed(buildPetEmbed(pet))
		return err

	case "buy":
		var pet *entities.Pet
		err := common.InTransaction(ctx, f.uowFactory, inv.GuildID, func(uow application.UnitOfWork) error {
			var err error
			pet, err = f.petService(uow).BuyPet(ctx, inv.AuthorID, inv.Args.String("type"))
			return err
		})
		if err != nil {
			return err
		}
		_, err = inv.Reply(fmt.Sprintf("You bought a %s pet! Strength: %d", pet.Type, pet.Strength))
		return err

	default:
		return entities.NewValidationError("Unknown pet action! Usage: `%s`", inv.Command.Usage(inv.Prefix))
	}
}

func (f *Feature) handleChallenge(ctx context.Context, inv *commands.Invocation) error {
	opponentID := inv.Args.User("member")

	var result *entities.ChallengeResult
	err := common.InTransaction(ctx, f.uowFactory, inv.GuildID, func(uow application.UnitOfWork) error {
		var err error
		result, err = f.petService(uow).Challenge(ctx, inv.AuthorID, opponentID, inv.Args.Int("bet"))
		return err
	})
	if err != nil {
		return err
	}

	challengerName := f.displayName(inv, inv.AuthorID)
	opponentName := f.displayName(inv, opponentID)
	winnerName := opponentName
	if result.WinnerID == inv.AuthorID {
		winnerName = challengerName
	}

	_, err = inv.ReplyEmbed(buildBattleEmbed(result, challengerName, opponentName, winnerName))
	return err
}

func (f *Feature) handleStats(ctx context.Context, inv *commands.Invocation) error {
	var summary *entities.StatsSummary
	err := common.InTransaction(ctx, f.uowFactory, inv.GuildID, func(uow application.UnitOfWork) error {
		var err error
		summary, err = f.economyService(uow).GetStats(ctx, inv.AuthorID)
		return err
	})
	if err != nil {
		return err
	}

	_, err = inv.ReplyEmbed(buildStatsEmbed(f.displayName(inv, inv.AuthorID), summary))
	return err
}

func (f *Feature) handleGiveMoney(ctx context.Context, inv *commands.Invocation) error {
	return f.adjustMoney(ctx, inv, true)
}

func (f *Feature) handleRemoveMoney(ctx context.Context, inv *commands.Invocation) error {
	return f.adjustMoney(ctx, inv, false)
}

func (f *Feature) adjustMoney(ctx context.Context, inv *commands.Invocation, give bool) error {
	targetID := inv.Args.User("member")
	amount := inv.Args.Int("amount")

	var account *entities.Account
	err := common.InTransaction(ctx, f.uowFactory, inv.GuildID, func(uow application.UnitOfWork) error {
		var err error
		if give {
			account, err = f.economyService(uow).GrantMoney(ctx, targetID, amount)
		} else {
			account, err = f.economyService(uow).RemoveMoney(ctx, targetID, amount)
		}
		return err
	})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"adminID":  inv.AuthorID,
		"targetID": targetID,
		"amount":   amount,
		"give":     give,
	}).Info("Admin adjusted wallet")

	_, err = inv.ReplyEmbed(buildAdminMoneyEmbed(give, amount, common.GetUserMention(targetID), account))
	return err
}

func (f *Feature) handleRichest(ctx context.Context, inv *commands.Invocation) error {
	var accounts []*entities.Account
	err := common.InTransaction(ctx, f.uowFactory, inv.GuildID, func(uow application.UnitOfWork) error {
		var err error
		accounts, err = f.economyService(uow).GetRichest(ctx, common.LeaderboardSize)
		return err
	})
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		_, err = inv.Reply("Nobody has any money yet! Use `" + inv.Prefix + "work` to get started.")
		return err
	}

	entries := make([]scoreboard.WealthEntry, len(accounts))
	lines := make([]string, len(accounts))
	for i, account := range accounts {
		name := f.displayName(inv, account.DiscordID)
		entries[i] = scoreboard.WealthEntry{Rank: i + 1, Name: name, Wallet: account.Wallet, Bank: account.Bank}
		lines[i] = fmt.Sprintf("**%d.** %s • %s", i+1, name, common.FormatMoney(account.Total()))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "💰 Richest Members",
		Description: strings.Join(lines, "\n"),
		Color:       common.ColorGold,
	}

	image, err := f.images.GenerateWealthScoreboard(entries)
	if err != nil {
		log.WithError(err).Warn("Failed to render richest scoreboard, sending embed only")
		_, err = inv.ReplyEmbed(embed)
		return err
	}

	embed.Image = &discordgo.MessageEmbedImage{URL: "attachment://richest.png"}
	_, err = inv.ReplyComplex(&discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Files: []*discordgo.File{{
			Name:        "richest.png",
			ContentType: "image/png",
			Reader:      bytes.NewReader(image),
		}},
	})
	return err
}
