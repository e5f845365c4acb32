package economy

import (
	"fmt"
	"strings"

	"guildbot/bot/common"
	"guildbot/domain/entities"
	"guildbot/domain/progression"

	"github.com/bwmarrin/discordgo"
)

func buildBalanceEmbed(name string, account *entities.Account) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("💰 %s's Balance", name),
		Color: common.ColorGold,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Wallet", Value: common.FormatMoney(account.Wallet), Inline: true},
			{Name: "Bank", Value: common.FormatMoney(account.Bank), Inline: true},
			{Name: "Total", Value: common.FormatMoney(account.Total()), Inline: false},
		},
	}
}

func workMessage(result *entities.WorkResult) string {
	var sb strings.Builder
	if result.Job != "" {
		fmt.Fprintf(&sb, "You worked as a %s and earned %s!", result.Job, common.FormatMoney(result.Earnings))
	} else {
		fmt.Fprintf(&sb, "You %s and earned %s!", result.Activity, common.FormatMoney(result.Earnings))
	}
	if result.Doubled {
		sb.WriteString(" (advanced pay x2)")
	}
	if result.ItemFound {
		fmt.Fprintf(&sb, "\nYou found a %s!", result.Job)
	}
	if result.Job != "" {
		fmt.Fprintf(&sb, "\n%s level %d, %d more shifts to the next level.",
			titleCase(result.Job), result.JobLevel, result.JobsToNext)
	}
	return sb.String()
}

func buildGambleEmbed(result *entities.GambleResult) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{Title: "🎰 Gambling Results"}
	chance := fmt.Sprintf("%d.0%%", result.WinChance)
	if result.Won {
		embed.Description = fmt.Sprintf("Congratulations! You won %s!", common.FormatMoney(result.Amount))
		embed.Color = common.ColorSuccess
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Total Winnings", Value: common.FormatMoney(result.Amount), Inline: true},
			{Name: "New Balance", Value: common.FormatMoney(result.Wallet), Inline: true},
			{Name: "Win Chance", Value: chance, Inline: true},
		}
	} else {
		embed.Description = fmt.Sprintf("Sorry! You lost %s!", common.FormatMoney(result.Amount))
		embed.Color = common.ColorDanger
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Loss", Value: "-" + common.FormatMoney(result.Amount), Inline: true},
			{Name: "New Balance", Value: common.FormatMoney(result.Wallet), Inline: true},
			{Name: "Win Chance", Value: chance, Inline: true},
		}
	}
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Gamble level %d • %d wins", result.GambleLevel, result.GambleWins),
	}
	return embed
}

func robMessage(result *entities.RobResult, targetName string) string {
	if result.Success {
		return fmt.Sprintf("You successfully robbed %s from %s!", common.FormatMoney(result.Stolen), targetName)
	}
	return fmt.Sprintf("You were caught and fined %s!", common.FormatMoney(result.Fine))
}

func buildMarketEmbed(items []*entities.InventoryItem) *discordgo.MessageEmbed {
	owned := make(map[string]int64, len(items))
	for _, item := range items {
		owned[item.Item] = item.Count
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🏪 Market",
		Description: fmt.Sprintf("Sell items found while working for %s-%s each. Use `!market sell <item>`.", common.FormatMoney(entities.ItemSaleMinPrice), common.FormatMoney(entities.ItemSaleMaxPrice)),
		Color:       common.ColorInfo,
	}
	for _, name := range progression.JobNames() {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   name,
			Value:  fmt.Sprintf("Owned: %d", owned[name]),
			Inline: true,
		})
	}
	return embed
}

func buildInventoryEmbed(name string, items []*entities.InventoryItem) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🎒 %s's Inventory", name),
		Color: common.ColorInfo,
	}
	if len(items) == 0 {
		embed.Description = "Your inventory is empty. Work a job for a chance to find items!"
		return embed
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("**%s** x%d", item.Item, item.Count))
	}
	embed.Description = strings.Join(lines, "\n")
	return embed
}

func buildPetEmbed(pet *entities.Pet) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🐾 Your Pet",
		Color: common.ColorPurple,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Type", Value: pet.Type, Inline: true},
			{Name: "Strength", Value: fmt.Sprintf("%d", pet.Strength), Inline: true},
		},
	}
}

func buildBattleEmbed(result *entities.ChallengeResult, challengerName, opponentName, winnerName string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🐾 Pet Battle",
		Color: common.ColorPurple,
		Fields: []*discordgo.MessageEmbedField{
			{Name: fmt.Sprintf("%s's Pet", challengerName), Value: fmt.Sprintf("Power: %.2f", result.ChallengerPower), Inline: true},
			{Name: fmt.Sprintf("%s's Pet", opponentName), Value: fmt.Sprintf("Power: %.2f", result.OpponentPower), Inline: true},
			{Name: "Winner", Value: fmt.Sprintf("%s wins %s!", winnerName, common.FormatMoney(result.Bet)), Inline: false},
		},
	}
}

func buildStatsEmbed(name string, summary *entities.StatsSummary) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s's Stats", name),
		Color: common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{{
			Name:  "💼 Jobs Overview",
			Value: fmt.Sprintf("Level up every %d jobs. Each level increases salary by %s.", progression.JobLevelStep, common.FormatMoney(progression.SalaryPerLevel)),
		}},
	}

	for _, job := range summary.Jobs {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: titleCase(job.Job),
			Value: fmt.Sprintf("Level: %d\nTimes Worked: %d\nSalary: $%d-%d\nTo Next Level: %d jobs",
				job.Level, job.Count, job.SalaryMin, job.SalaryMax, job.JobsToNext),
			Inline: true,
		})
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: "🎲 Gambling",
		Value: fmt.Sprintf("Level: %d\nTimes Gambled: %d\nWins: %d\nWin Chance: %d%%\nTo Next Level: %d gambles",
			summary.GambleLevel, summary.GambleCount, summary.GambleWins, summary.WinChance, summary.GamblesToNext),
	})

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "🔓 Unlocks",
		Value: unlockLine("Advanced work", summary.AdvancedWork, summary.WorksRemaining, "works") + "\n" + unlockLine("Advanced gamble", summary.AdvancedGamble, summary.WinsRemaining, "wins"),
	})
	return embed
}

func unlockLine(name string, unlocked bool, remaining int64, unit string) string {
	if unlocked {
		return fmt.Sprintf("✅ %s unlocked", name)
	}
	return fmt.Sprintf("🔒 %s: %d more %s", name, remaining, unit)
}

func buildAdminMoneyEmbed(given bool, amount int64, mention string, account *entities.Account) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Fields: []*discordgo.MessageEmbedField{
			{Name: "New Balance", Value: common.FormatMoney(account.Wallet)},
		},
	}
	if given {
		embed.Title = "💰 Money Given"
		embed.Description = fmt.Sprintf("Successfully given %s to %s", common.FormatMoney(amount), mention)
		embed.Color = common.ColorSuccess
	} else {
		embed.Title = "💸 Money Removed"
		embed.Description = fmt.Sprintf("Successfully removed %s from %s", common.FormatMoney(amount), mention)
		embed.Color = common.ColorDanger
	}
	return embed
}

func buildHeistEmbed(targetMention string, targetBank int64) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🏦 Bank Heist",
		Description: fmt.Sprintf("A heist is being planned on %s's bank!\nNeed %d people to join! React with %s to join.\nYou have 30 minutes to gather your crew!",
			targetMention, entities.HeistCrewSize, entities.HeistJoinEmoji),
		Color: common.ColorDanger,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Potential Loot", Value: common.FormatMoney(targetBank), Inline: true},
			{Name: "Success Rate", Value: fmt.Sprintf("%.0f%%", entities.HeistSuccessChance*100), Inline: true},
			{Name: "Join Cost", Value: common.FormatMoney(entities.HeistEntryFee), Inline: true},
			{Name: "Time Limit", Value: "30 minutes", Inline: false},
		},
	}
}

func buildHeistResultEmbed(outcome *entities.HeistOutcome, targetMention string) *discordgo.MessageEmbed {
	if outcome.Success {
		return &discordgo.MessageEmbed{
			Title: "🎉 Heist Successful!",
			Description: fmt.Sprintf("The crew successfully robbed %s from %s's bank!\nEach participant got %s!",
				common.FormatMoney(outcome.Loot), targetMention, common.FormatMoney(outcome.Share)),
			Color: common.ColorSuccess,
		}
	}
	return &discordgo.MessageEmbed{
		Title:       "❌ Heist Failed!",
		Description: fmt.Sprintf("The police caught the crew! Everyone lost their %s join cost!", common.FormatMoney(entities.HeistEntryFee)),
		Color:       common.ColorDanger,
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
