package services

import (
	"context"
	"fmt"
	"strings"

	"guildbot/domain/entities"
	"guildbot/domain/events"
	"guildbot/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

type moderationService struct {
	warningRepo    interfaces.WarningRepository
	eventPublisher interfaces.EventPublisher
}

// NewModerationService creates a new moderation service
func NewModerationService(warningRepo interfaces.WarningRepository, eventPublisher interfaces.EventPublisher) interfaces.ModerationService {
	return &moderationService{
		warningRepo:    warningRepo,
		eventPublisher: eventPublisher,
	}
}

func (s *moderationService) Warn(ctx context.Context, guildID, targetID, issuerID int64, reason string) (*entities.WarnResult, error) {
	if targetID == issuerID {
		return nil, entities.NewValidationError("You can't warn yourself!")
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = entities.DefaultWarningReason
	}

	warning := &entities.Warning{
		GuildID:   guildID,
		DiscordID: targetID,
		IssuerID:  issuerID,
		Reason:    reason,
	}
	if err := s.warningRepo.Add(ctx, warning); err != nil {
		return nil, fmt.Errorf("failed to add warning: %w", err)
	}

	count, err := s.warningRepo.CountByUser(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to count warnings: %w", err)
	}

	result := &entities.WarnResult{
		Warning:       warning,
		TotalWarnings: count,
		ShouldTimeout: count >= entities.AutoTimeoutWarningCount,
	}

	if err := s.eventPublisher.Publish(events.WarningIssuedEvent{
		GuildID:       guildID,
		UserID:        targetID,
		IssuerID:      issuerID,
		Reason:        reason,
		TotalWarnings: count,
		AutoTimeout:   result.ShouldTimeout,
	}); err != nil {
		log.WithError(err).Error("Failed to publish warning issued event")
	}

	return result, nil
}

func (s *moderationService) ListWarnings(ctx context.Context, targetID int64) ([]*entities.Warning, error) {
	warnings, err := s.warningRepo.ListByUser(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list warnings: %w", err)
	}
	return warnings, nil
}

func (s *moderationService) ClearWarnings(ctx context.Context, targetID int64) (int64, error) {
	n, err := s.warningRepo.ClearByUser(ctx, targetID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear warnings: %w", err)
	}
	return n, nil
}
