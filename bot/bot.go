package bot

import (
	"context"
	"fmt"

	"guildbot/api"
	"guildbot/application"
	"guildbot/bot/commands"
	"guildbot/bot/features/economy"
	"guildbot/bot/features/fun"
	"guildbot/bot/features/games"
	"guildbot/bot/features/help"
	"guildbot/bot/features/leveling"
	"guildbot/bot/features/moderation"
	"guildbot/bot/features/music"
	"guildbot/bot/features/utility"
	"guildbot/domain/cooldown"
	"guildbot/domain/utils"
	"guildbot/infrastructure/audio"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token      string
	Prefix     string
	YTDLPPath  string
	FFmpegPath string
}

// Bot manages the Discord session and all feature modules
type Bot struct {
	config     Config
	session    *discordgo.Session
	uowFactory application.UnitOfWorkFactory
	registry   *commands.Registry
	dispatcher *Dispatcher

	economy    *economy.Feature
	leveling   *leveling.Feature
	moderation *moderation.Feature
	fun        *fun.Feature
	games      *games.Feature
	utility    *utility.Feature
	music      *music.Feature
	help       *help.Feature
}

// New creates a bot with every feature registered and opens the gateway connection
func New(config Config, uowFactory application.UnitOfWorkFactory) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsAll

	rng := utils.NewRandomSource()
	cooldowns := cooldown.NewGate()

	bot := &Bot{
		config:     config,
		session:    dg,
		uowFactory: uowFactory,
		registry:   commands.NewRegistry(),
	}

	bot.economy = economy.NewFeature(dg, uowFactory, cooldowns, rng)
	bot.leveling = leveling.NewFeature(uowFactory, cooldowns)
	bot.moderation = moderation.NewFeature(uowFactory)
	bot.fun = fun.NewFeature(rng, fun.DefaultEndpoints())
	bot.games = games.NewFeature(dg, rng)
	bot.utility = utility.NewFeature(uowFactory)
	bot.music = music.NewFeature(
		uowFactory,
		audio.NewResolver(config.YTDLPPath, audio.ExecRunner),
		audio.NewEncoder(config.FFmpegPath),
		rng,
	)
	// help renders the registry, so it sees every command registered before and after it
	bot.help = help.NewFeature(bot.registry, config.Prefix)

	if err := bot.registerCommands(); err != nil {
		return nil, err
	}
	bot.dispatcher = NewDispatcher(bot.registry, config.Prefix)

	dg.AddHandler(bot.handleReady)
	dg.AddHandler(bot.handleGuildCreate)
	dg.AddHandler(bot.handleMessageCreate)
	dg.AddHandler(bot.handleMessageReactionAdd)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	log.WithField("commands", len(bot.registry.Commands())).Info("Discord bot connected")
	return bot, nil
}

func (b *Bot) registerCommands() error {
	groups := [][]*commands.Command{
		b.economy.Commands(),
		b.leveling.Commands(),
		b.moderation.Commands(),
		b.fun.Commands(),
		b.games.Commands(),
		b.utility.Commands(),
		b.music.Commands(),
		b.help.Commands(),
	}
	for _, cmds := range groups {
		if err := b.registry.Register(cmds...); err != nil {
			return fmt.Errorf("error registering commands: %w", err)
		}
	}
	return nil
}

// GetDiscordPoster returns the poster used by event handlers and workers
func (b *Bot) GetDiscordPoster() application.DiscordPoster {
	return &discordPoster{session: b.session}
}

// GetSession returns the Discord session
func (b *Bot) GetSession() *discordgo.Session {
	return b.session
}

// Close stops every interactive session and closes the gateway
func (b *Bot) Close() error {
	b.economy.Stop()
	b.games.Stop()
	b.music.Stop()
	log.Info("Interactive sessions stopped")

	return b.session.Close()
}

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	log.WithFields(log.Fields{
		"user":   r.User.Username,
		"guilds": len(r.Guilds),
	}).Info("Bot is ready")
}

func (b *Bot) handleGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	log.WithFields(log.Fields{
		"guildID": g.ID,
		"name":    g.Name,
		"members": g.MemberCount,
	}).Info("Guild available")
}

// handleMessageCreate awards XP, then runs a command or feeds a running game
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}

	ctx := context.Background()
	b.leveling.HandleMessage(ctx, m)

	if b.dispatcher.Dispatch(ctx, s, m) {
		return
	}
	b.games.HandleMessage(s, m)
}

// handleMessageReactionAdd routes reactions to the heist or game that owns the message
func (b *Bot) handleMessageReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if s.State.User != nil && r.UserID == s.State.User.ID {
		return
	}
	if b.economy.HandleReactionAdd(s, r) {
		return
	}
	b.games.HandleReactionAdd(s, r)
}

// Guilds lists the guilds the bot is connected to
func (b *Bot) Guilds() []api.GuildInfo {
	guilds := make([]api.GuildInfo, 0, len(b.session.State.Guilds))
	for _, guild := range b.session.State.Guilds {
		guilds = append(guilds, api.GuildInfo{ID: guild.ID, Name: guild.Name})
	}

	if len(guilds) == 0 {
		log.Warn("No guilds in session state, attempting to fetch user guilds")
		userGuilds, err := b.session.UserGuilds(100, "", "", false)
		if err != nil {
			log.WithError(err).Error("Failed to fetch user guilds")
			return guilds
		}
		for _, guild := range userGuilds {
			guilds = append(guilds, api.GuildInfo{ID: guild.ID, Name: guild.Name})
		}
	}
	return guilds
}
