package services

import (
	"context"
	"fmt"
	"math"

	"guildbot/domain/cooldown"
	"guildbot/domain/entities"
	"guildbot/domain/events"
	"guildbot/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

type levelingService struct {
	xpRepo         interfaces.XPRepository
	eventPublisher interfaces.EventPublisher
	cooldowns      *cooldown.Gate
}

// NewLevelingService creates a new leveling service
func NewLevelingService(xpRepo interfaces.XPRepository, eventPublisher interfaces.EventPublisher, cooldowns *cooldown.Gate) interfaces.LevelingService {
	return &levelingService{
		xpRepo:         xpRepo,
		eventPublisher: eventPublisher,
		cooldowns:      cooldowns,
	}
}

func (s *levelingService) ProcessMessage(ctx context.Context, guildID, channelID, discordID int64) (levelUp *entities.LevelUp, err error) {
	if _, ok := s.cooldowns.TryStart(cooldown.ActionXP, discordID, entities.XPCooldown); !ok {
		return nil, nil
	}
	defer func() {
		if err != nil {
			s.cooldowns.Clear(cooldown.ActionXP, discordID)
		}
	}()

	record, err := s.xpRepo.GetForUpdate(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get xp record: %w", err)
	}

	if !record.CanAddXP(entities.XPPerMessage) {
		return nil, nil
	}

	oldLevel := record.Level
	leveledUp := record.AddXP(entities.XPPerMessage)
	record.Messages++

	if err := s.xpRepo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save xp record: %w", err)
	}

	if !leveledUp {
		return nil, nil
	}

	event := events.LevelUpEvent{
		UserID:    discordID,
		GuildID:   guildID,
		ChannelID: channelID,
		OldLevel:  oldLevel,
		NewLevel:  record.Level,
		TotalXP:   record.XP,
	}
	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithError(err).Error("Failed to publish level up event")
	}

	return &entities.LevelUp{OldLevel: oldLevel, NewLevel: record.Level}, nil
}

func (s *levelingService) GetRank(ctx context.Context, discordID int64) (*entities.XPRecord, error) {
	record, err := s.xpRepo.Get(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get xp record: %w", err)
	}
	return record, nil
}

func (s *levelingService) GetLeaderboard(ctx context.Context, limit int) ([]*entities.XPRecord, error) {
	records, err := s.xpRepo.GetLeaderboard(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	return records, nil
}

func (s *levelingService) GiveXP(ctx context.Context, discordID int64, amount int64) (*entities.XPRecord, error) {
	if amount <= 0 {
		return nil, entities.NewValidationError("Amount must be positive!")
	}

	record, err := s.xpRepo.GetForUpdate(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get xp record: %w", err)
	}
	if !record.CanAddXP(amount) {
		return nil, entities.NewValidationError("That would push their XP past the maximum of %d!", int64(math.MaxInt64))
	}
	record.AddXP(amount)

	if err := s.xpRepo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save xp record: %w", err)
	}
	return record, nil
}

func (s *levelingService) ResetUser(ctx context.Context, discordID int64) (bool, error) {
	removed, err := s.xpRepo.Reset(ctx, discordID)
	if err != nil {
		return false, fmt.Errorf("failed to reset xp: %w", err)
	}
	return removed, nil
}

func (s *levelingService) ResetGuild(ctx context.Context) (int64, error) {
	n, err := s.xpRepo.ResetGuild(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to reset guild xp: %w", err)
	}
	return n, nil
}
