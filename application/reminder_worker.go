package application

import (
	"context"
	"fmt"
	"time"

	"guildbot/domain/services"

	log "github.com/sirupsen/logrus"
)

const (
	// ReminderPollInterval is how often the worker looks for due reminders
	ReminderPollInterval = 10 * time.Second
	// ReminderBatchSize caps how many reminders are claimed per poll
	ReminderBatchSize = 50
)

// ReminderWorker delivers persisted reminders once they are due
type ReminderWorker struct {
	uowFactory UnitOfWorkFactory
	poster     DiscordPoster
	interval   time.Duration
	now        func() time.Time
}

// NewReminderWorker creates a new reminder worker
func NewReminderWorker(uowFactory UnitOfWorkFactory, poster DiscordPoster) *ReminderWorker {
	return &ReminderWorker{
		uowFactory: uowFactory,
		poster:     poster,
		interval:   ReminderPollInterval,
		now:        time.Now,
	}
}

// Start runs the worker until ctx is done or the returned stop function is called
func (w *ReminderWorker) Start(ctx context.Context) func() {
	stopChan := make(chan struct{})

	go func() {
		log.Info("Reminder worker started")
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			if _, err := w.ProcessDue(ctx); err != nil {
				log.WithError(err).Error("Error delivering reminders")
			}

			select {
			case <-ctx.Done():
				log.Info("Reminder worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Reminder worker shutting down (stop requested)...")
				return
			case <-ticker.C:
			}
		}
	}()

	return func() {
		close(stopChan)
	}
}

// ProcessDue claims due reminders, delivers them and marks them delivered.
// A reminder whose delivery fails is still marked so a deleted channel cannot wedge the queue.
func (w *ReminderWorker) ProcessDue(ctx context.Context) (int, error) {
	// reminders are claimed across guilds
	uow := w.uowFactory.CreateForGuild(0)
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	reminderService := services.NewReminderService(uow.ReminderRepository(), w.now)

	due, err := reminderService.ClaimDue(ctx, w.now(), ReminderBatchSize)
	if err != nil {
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}

	delivered := 0
	for _, reminder := range due {
		if err := w.poster.DeliverReminder(ctx, reminder); err != nil {
			log.WithFields(log.Fields{
				"reminderID": reminder.ID,
				"guildID":    reminder.GuildID,
				"userID":     reminder.DiscordID,
			}).WithError(err).Warn("Failed to deliver reminder")
		} else {
			delivered++
		}

		if err := reminderService.MarkDelivered(ctx, reminder.ID); err != nil {
			return 0, err
		}
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit reminder deliveries: %w", err)
	}

	log.WithFields(log.Fields{
		"claimed":   len(due),
		"delivered": delivered,
	}).Info("Processed due reminders")

	return delivered, nil
}
