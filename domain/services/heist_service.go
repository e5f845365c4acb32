package services

import (
	"context"
	"fmt"
	"time"

	"guildbot/domain/cooldown"
	"guildbot/domain/entities"
	"guildbot/domain/events"
	"guildbot/domain/interfaces"
	"guildbot/domain/utils"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type heistService struct {
	accountRepo        interfaces.AccountRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
	eventPublisher     interfaces.EventPublisher
	cooldowns          *cooldown.Gate
	rng                interfaces.RandomSource
	now                cooldown.Clock
}

// NewHeistService creates a new heist service
func NewHeistService(
	accountRepo interfaces.AccountRepository,
	balanceHistoryRepo interfaces.BalanceHistoryRepository,
	eventPublisher interfaces.EventPublisher,
	cooldowns *cooldown.Gate,
	rng interfaces.RandomSource,
	clock cooldown.Clock,
) interfaces.HeistService {
	if clock == nil {
		clock = time.Now
	}
	return &heistService{
		accountRepo:        accountRepo,
		balanceHistoryRepo: balanceHistoryRepo,
		eventPublisher:     eventPublisher,
		cooldowns:          cooldowns,
		rng:                rng,
		now:                clock,
	}
}

func (s *heistService) Open(ctx context.Context, guildID, channelID, initiatorID, targetID int64) (*entities.Heist, error) {
	if remaining := s.cooldowns.Remaining(cooldown.ActionBankrob, guildID); remaining > 0 {
		return nil, &entities.CooldownError{Action: "bankrob", Remaining: remaining}
	}
	if initiatorID == targetID {
		return nil, entities.NewValidationError("You can't rob your own bank!")
	}

	target, err := s.accountRepo.GetOrCreate(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get target account: %w", err)
	}
	if target.Bank < entities.HeistMinTargetBank {
		return nil, entities.NewValidationError("Target doesn't have enough money in their bank to rob! (Minimum: $%d)", entities.HeistMinTargetBank)
	}

	initiator, err := s.accountRepo.GetOrCreate(ctx, initiatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get initiator account: %w", err)
	}
	if initiator.Wallet < entities.HeistMinWallet {
		return nil, entities.NewValidationError("You need at least $%d in your wallet to start a heist!", entities.HeistMinWallet)
	}

	if remaining, ok := s.cooldowns.TryStart(cooldown.ActionBankrob, guildID, entities.HeistGuildCooldown); !ok {
		return nil, &entities.CooldownError{Action: "bankrob", Remaining: remaining}
	}

	heist := entities.NewHeist(uuid.NewString(), guildID, channelID, initiatorID, targetID, s.now())

	log.WithFields(log.Fields{
		"heistID":   heist.ID,
		"guildID":   guildID,
		"initiator": initiatorID,
		"target":    targetID,
	}).Info("Heist opened")

	return heist, nil
}

func (s *heistService) JoinerWallet(ctx context.Context, userID int64, isBot bool) (int64, error) {
	if isBot {
		return 0, nil
	}
	account, err := s.accountRepo.GetByDiscordID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get joiner account: %w", err)
	}
	if account == nil {
		return 0, nil
	}
	return account.Wallet, nil
}

func (s *heistService) Join(ctx context.Context, heist *entities.Heist, userID int64, isBot bool) (entities.JoinOutcome, error) {
	wallet, err := s.JoinerWallet(ctx, userID, isBot)
	if err != nil {
		return entities.JoinClosed, err
	}
	return heist.Join(userID, isBot, wallet, s.now()), nil
}

func (s *heistService) Execute(ctx context.Context, heist *entities.Heist) (*entities.HeistOutcome, error) {
	if heist.State != entities.HeistStateExecuting {
		return nil, fmt.Errorf("heist %s is %s, not executing", heist.ID, heist.State)
	}

	ids := append([]int64{heist.TargetID}, heist.Members...)
	accounts, err := s.accountRepo.LockForUpdate(ctx, ids...)
	if err != nil {
		return nil, fmt.Errorf("failed to lock heist accounts: %w", err)
	}

	outcome := &entities.HeistOutcome{
		Heist:   heist,
		Success: s.rng.Float64() < entities.HeistSuccessChance,
	}

	target := accounts[heist.TargetID]
	if outcome.Success {
		fraction := s.rng.FloatRange(entities.HeistMinLootFraction, entities.HeistMaxLootFraction)
		outcome.Loot = entities.HeistLoot(target.Bank, fraction)
		outcome.Share = outcome.Loot / int64(len(heist.Members))

		if outcome.Loot > 0 {
			if err := utils.ApplyBalanceChange(ctx, s.accountRepo, s.balanceHistoryRepo, s.eventPublisher,
				target, target.Wallet, target.Bank-outcome.Loot, entities.TransactionTypeHeistVictim,
				map[string]any{"heist_id": heist.ID}); err != nil {
				return nil, fmt.Errorf("failed to debit heist target: %w", err)
			}
		}
	}
	outcome.TargetBankAfter = target.Bank

	txType := entities.TransactionTypeHeistFee
	if outcome.Success {
		txType = entities.TransactionTypeHeistLoot
	}
	for _, memberID := range heist.Members {
		member := accounts[memberID]
		newWallet := max(0, member.Wallet+outcome.Share-entities.HeistEntryFee)
		if newWallet == member.Wallet {
			continue
		}
		metadata := map[string]any{
			"heist_id": heist.ID,
			"share":    outcome.Share,
			"fee":      entities.HeistEntryFee,
		}
		if err := utils.ApplyBalanceChange(ctx, s.accountRepo, s.balanceHistoryRepo, s.eventPublisher,
			member, newWallet, member.Bank, txType, metadata); err != nil {
			return nil, fmt.Errorf("failed to settle heist member %d: %w", memberID, err)
		}
	}

	if err := heist.Resolve(outcome.Success); err != nil {
		return nil, err
	}

	if err := s.eventPublisher.Publish(events.HeistResolvedEvent{
		HeistID:  heist.ID,
		GuildID:  heist.GuildID,
		TargetID: heist.TargetID,
		Members:  heist.Members,
		Success:  outcome.Success,
		Loot:     outcome.Loot,
		Share:    outcome.Share,
	}); err != nil {
		log.WithError(err).Error("Failed to publish heist resolved event")
	}

	log.WithFields(log.Fields{
		"heistID": heist.ID,
		"success": outcome.Success,
		"loot":    outcome.Loot,
		"share":   outcome.Share,
	}).Info("Heist resolved")

	return outcome, nil
}
