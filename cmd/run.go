package cmd

import (
	"context"
	"fmt"
	"time"

	"guildbot/api"
	"guildbot/application"
	"guildbot/bot"
	"guildbot/config"
	"guildbot/database"
	"guildbot/domain/events"
	"guildbot/infrastructure"
	"guildbot/infrastructure/observability"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()
	ConfigureLogging(cfg)
	log.WithField("environment", cfg.Environment).Info("Starting guildbot...")

	if err := observability.InitializeGlobalMetrics(ctx, cfg); err != nil {
		log.WithError(err).Warn("Failed to initialize metrics, continuing without them")
	}

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrationsWithURL(cfg.GetDatabaseURL()); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	log.Info("Database ready")

	var natsClient *infrastructure.NATSClient
	if cfg.NATSServers != "" {
		natsClient = infrastructure.NewNATSClient(cfg.NATSServers)
		if err := natsClient.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer func() {
			if err := natsClient.Close(); err != nil {
				log.WithError(err).Error("Error closing NATS client")
			}
		}()
	} else {
		log.Info("NATS_SERVERS not set, events stay in process")
	}

	eventPublisher := infrastructure.NewNATSEventPublisher(natsClient, infrastructure.NewEventSubjectMapper(), events.NewBus())
	if err := eventPublisher.EnsureDomainEventStream(); err != nil {
		log.WithError(err).Warn("Failed to ensure domain event stream")
	}

	uowFactory := infrastructure.NewUnitOfWorkFactory(db, eventPublisher)

	log.Info("Initializing Discord bot...")
	discordBot, err := bot.New(bot.Config{
		Token:      cfg.DiscordToken,
		Prefix:     cfg.CommandPrefix,
		YTDLPPath:  cfg.YTDLPPath,
		FFmpegPath: cfg.FFmpegPath,
	}, uowFactory)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}

	poster := discordBot.GetDiscordPoster()
	application.RegisterApplicationSubscriptions(uowFactory, poster)
	stopReminderWorker := application.NewReminderWorker(uowFactory, poster).Start(ctx)

	server := api.New(cfg.KeepaliveAddr, discordBot)
	server.Start()

	log.Info("Bot is running")
	<-ctx.Done()
	log.Info("Shutting down bot...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stopReminderWorker()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Error stopping keepalive server")
	}
	if err := discordBot.Close(); err != nil {
		log.WithError(err).Error("Error closing Discord bot")
	}
	if err := observability.ShutdownGlobalMetrics(shutdownCtx); err != nil {
		log.WithError(err).Error("Error shutting down metrics")
	}

	log.Info("Shutdown completed")
	return nil
}
