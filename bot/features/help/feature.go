package help

import (
	"context"
	"fmt"
	"strings"

	"guildbot/bot/commands"
	"guildbot/bot/common"
	"guildbot/domain/entities"
	"guildbot/domain/progression"
	"guildbot/domain/services"

	"github.com/bwmarrin/discordgo"
)

const category = "Utility"

var categoryIcons = map[string]string{
	"Economy":    "💰",
	"Fun":        "🎮",
	"Games":      "🎲",
	"Leveling":   "⭐",
	"Moderation": "🛡️",
	"Music":      "🎵",
	"Utility":    "🔧",
}

// Feature renders help from the live command registry
type Feature struct {
	registry *commands.Registry
	prefix   string
}

// NewFeature creates a new help feature instance
func NewFeature(registry *commands.Registry, prefix string) *Feature {
	return &Feature{registry: registry, prefix: prefix}
}

// Commands returns the help command table
func (f *Feature) Commands() []*commands.Command {
	return []*commands.Command{
		{
			Name:        "help",
			Category:    category,
			Description: "Show this message",
			Args:        []commands.ArgSpec{{Name: "command", Kind: commands.ArgString, Optional: true}},
			Handler:     f.handleHelp,
		},
		{
			Name:        "helpeconomy",
			Category:    category,
			Description: "Detailed guide for the economy system",
			Handler:     f.handleHelpEconomy,
		},
	}
}

func (f *Feature) handleHelp(ctx context.Context, inv *commands.Invocation) error {
	if inv.Args.Has("command") {
		name := strings.TrimPrefix(inv.Args.String("command"), f.prefix)
		cmd, ok := f.registry.Lookup(name)
		if !ok {
			return entities.NewValidationError("Command not found. Use %shelp to see available commands.", f.prefix)
		}
		_, err := inv.ReplyEmbed(buildCommandEmbed(cmd, f.prefix))
		return err
	}

	categories, groups := f.registry.ByCategory()
	_, err := inv.ReplyEmbed(buildHelpEmbed(categories, groups, f.prefix))
	return err
}

func (f *Feature) handleHelpEconomy(ctx context.Context, inv *commands.Invocation) error {
	_, err := inv.ReplyEmbed(buildEconomyHelpEmbed(f.prefix))
	return err
}

func buildHelpEmbed(categories []string, groups map[string][]*commands.Command, prefix string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "Bot Commands",
		Description: "Here are all available commands:",
		Color:       common.ColorInfo,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Use %shelp <command> for more details about a specific command", prefix),
		},
	}
	for _, cat := range categories {
		lines := make([]string, 0, len(groups[cat]))
		for _, cmd := range groups[cat] {
			lines = append(lines, fmt.Sprintf("`%s%s` - %s", prefix, cmd.Name, cmd.Description))
		}
		name := cat
		if icon, ok := categoryIcons[cat]; ok {
			name = icon + " " + cat
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  name,
			Value: common.Truncate(strings.Join(lines, "\n"), 1024),
		})
	}
	return embed
}

func buildCommandEmbed(cmd *commands.Command, prefix string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       prefix + cmd.Name,
		Description: cmd.Description,
		Color:       common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Usage", Value: "`" + cmd.Usage(prefix) + "`"},
		},
	}
	if len(cmd.Aliases) > 0 {
		aliases := make([]string, len(cmd.Aliases))
		for i, a := range cmd.Aliases {
			aliases[i] = "`" + prefix + a + "`"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Aliases", Value: strings.Join(aliases, ", ")})
	}
	if cmd.Permission != commands.PermissionEveryone {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Requires", Value: cmd.Permission.String()})
	}
	return embed
}

func buildEconomyHelpEmbed(prefix string) *discordgo.MessageEmbed {
	p := func(name string) string { return "`" + prefix + name }

	jobs := make([]string, 0, len(progression.JobNames()))
	for _, name := range progression.JobNames() {
		job, _ := progression.LookupJob(name)
		jobs = append(jobs, fmt.Sprintf("• %s - %s-%s", name,
			common.FormatMoney(job.BaseSalary.Min), common.FormatMoney(job.BaseSalary.Max)))
	}

	basic := strings.Join([]string{
		p("balance") + "` - Check your wallet and bank balance",
		p("deposit") + " <amount/all>` - Deposit money to bank",
		p("withdraw") + " <amount/all>` - Withdraw money from bank",
		p("rob") + " <@user>` - Try to rob another user (risky!)",
		p("bankrob") + " <@user>` - Rob someone's bank. Requires " + fmt.Sprint(entities.HeistCrewSize) + " people.",
	}, "\n")

	work := strings.Join([]string{
		fmt.Sprintf("%s` - Basic work (%s cooldown)", p("work"), common.FormatCooldown(services.WorkCooldownNoJob)),
		fmt.Sprintf("%s <job>` - Work a specific job (%s cooldown)", p("work"), common.FormatCooldown(services.WorkCooldownWithJob)),
		fmt.Sprintf("• Level up every %d shifts, +%s salary per level", progression.JobLevelStep, common.FormatMoney(progression.SalaryPerLevel)),
		fmt.Sprintf("• %.0f%% chance to find a job item per shift", entities.ItemDropChance*100),
		"",
		"Available Jobs:",
		strings.Join(jobs, "\n"),
		"",
		fmt.Sprintf("💫 Advance Work unlocks after %d shifts and doubles earnings", progression.AdvancedWorkThreshold),
	}, "\n")

	gambling := strings.Join([]string{
		p("gamble") + " <amount>` - Gamble your money",
		fmt.Sprintf("• Win chance starts at %d%% and rises 1%% every %d gambles (max %d%%)",
			progression.BaseWinChance, progression.GambleLevelStep, progression.MaxWinChance),
		"• Win: 2x your bet",
		fmt.Sprintf("• Advance Gamble: 3x your bet (unlocks after %d wins)", progression.AdvancedGambleThreshold),
	}, "\n")

	market := strings.Join([]string{
		p("market") + "` - View available items",
		p("market") + " sell <item>` - Sell items for money",
		fmt.Sprintf("• Sell prices range from %s-%s", common.FormatMoney(entities.ItemSaleMinPrice), common.FormatMoney(entities.ItemSaleMaxPrice)),
	}, "\n")

	pets := strings.Join([]string{
		p("pet") + "` - View your current pet",
		fmt.Sprintf("%s buy <type>` - Buy a new pet (%s)", p("pet"), common.FormatMoney(entities.PetPrice)),
		p("challenge") + " <@user> <bet>` - Battle pets",
		fmt.Sprintf("• Each pet has random strength (%d-%d)", entities.PetMinStrength, entities.PetMaxStrength),
		"• Battle outcome depends on strength + luck",
		"• Winner takes the bet amount",
	}, "\n")

	return &discordgo.MessageEmbed{
		Title:       "💰 Economy System Help",
		Description: "Detailed guide for the economy system",
		Color:       common.ColorGold,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📋 Basic Commands", Value: basic},
			{Name: "💼 Work System", Value: work},
			{Name: "🎲 Gambling", Value: gambling},
			{Name: "🏪 Market", Value: market},
			{Name: "🐾 Pet System", Value: pets},
		},
	}
}
