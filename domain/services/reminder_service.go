package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"guildbot/domain/cooldown"
	"guildbot/domain/entities"
	"guildbot/domain/interfaces"
)

var reminderUnits = map[byte]time.Duration{
	's': time.Second,
	'm': time.Minute,
	'h': time.Hour,
	'd': 24 * time.Hour,
}

// ParseReminderDelay parses delays such as 30s, 5m, 2h or 1d
func ParseReminderDelay(arg string) (time.Duration, error) {
	arg = strings.ToLower(strings.TrimSpace(arg))
	if len(arg) < 2 {
		return 0, entities.NewValidationError("Invalid time format! Example: 30s, 5m, 2h, 1d")
	}

	unit, ok := reminderUnits[arg[len(arg)-1]]
	amount, err := strconv.ParseInt(arg[:len(arg)-1], 10, 64)
	if err != nil {
		return 0, entities.NewValidationError("Invalid time format! Example: 30s, 5m, 2h, 1d")
	}
	if !ok {
		return 0, entities.NewValidationError("Invalid time unit! Use s/m/h/d")
	}
	if amount < 1 {
		return 0, entities.NewValidationError("Time must be positive!")
	}
	return time.Duration(amount) * unit, nil
}

type reminderService struct {
	reminderRepo interfaces.ReminderRepository
	now          cooldown.Clock
}

// NewReminderService creates a new reminder service
func NewReminderService(reminderRepo interfaces.ReminderRepository, clock cooldown.Clock) interfaces.ReminderService {
	if clock == nil {
		clock = time.Now
	}
	return &reminderService{reminderRepo: reminderRepo, now: clock}
}

func (s *reminderService) Schedule(ctx context.Context, channelID, discordID int64, delay string, message string) (*entities.Reminder, error) {
	d, err := ParseReminderDelay(delay)
	if err != nil {
		return nil, err
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, entities.NewValidationError("Please tell me what to remind you about!")
	}

	reminder := &entities.Reminder{
		ChannelID: channelID,
		DiscordID: discordID,
		Message:   message,
		DueAt:     s.now().Add(d),
	}
	if err := s.reminderRepo.Create(ctx, reminder); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}
	return reminder, nil
}

func (s *reminderService) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entities.Reminder, error) {
	reminders, err := s.reminderRepo.ClaimDue(ctx, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to claim due reminders: %w", err)
	}
	return reminders, nil
}

func (s *reminderService) MarkDelivered(ctx context.Context, id int64) error {
	if err := s.reminderRepo.MarkDelivered(ctx, id, s.now()); err != nil {
		return fmt.Errorf("failed to mark reminder %d delivered: %w", id, err)
	}
	return nil
}
