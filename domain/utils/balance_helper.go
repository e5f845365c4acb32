package utils

import (
	"context"
	"fmt"

	"guildbot/domain/entities"
	"guildbot/domain/events"
	"guildbot/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// RecordBalanceChange records a balance history entry and emits a BalanceChangeEvent.
func RecordBalanceChange(ctx context.Context, balanceHistoryRepo interfaces.BalanceHistoryRepository, eventPublisher interfaces.EventPublisher, history *entities.BalanceHistory) error {
	if err := balanceHistoryRepo.Record(ctx, history); err != nil {
		return fmt.Errorf("failed to record balance history: %w", err)
	}

	event := events.BalanceChangeEvent{
		UserID:          history.DiscordID,
		GuildID:         history.GuildID,
		OldWallet:       history.WalletBefore,
		NewWallet:       history.WalletAfter,
		OldBank:         history.BankBefore,
		NewBank:         history.BankAfter,
		TransactionType: history.TransactionType,
		ChangeAmount:    history.ChangeAmount,
	}
	log.WithFields(log.Fields{
		"userID":          event.UserID,
		"guildID":         event.GuildID,
		"oldWallet":       event.OldWallet,
		"newWallet":       event.NewWallet,
		"oldBank":         event.OldBank,
		"newBank":         event.NewBank,
		"transactionType": event.TransactionType,
		"changeAmount":    event.ChangeAmount,
	}).Debug("Publishing BalanceChangeEvent")
	if err := eventPublisher.Publish(event); err != nil {
		log.WithError(err).Error("Failed to publish balance change event")
	}

	return nil
}

// ApplyBalanceChange writes new balances for a locked account and records the change.
// This is the single entry point for every balance mutation in the system.
func ApplyBalanceChange(
	ctx context.Context,
	accountRepo interfaces.AccountRepository,
	balanceHistoryRepo interfaces.BalanceHistoryRepository,
	eventPublisher interfaces.EventPublisher,
	account *entities.Account,
	wallet, bank int64,
	txType entities.TransactionType,
	metadata map[string]any,
) error {
	if wallet < 0 || bank < 0 {
		return fmt.Errorf("refusing negative balance for user %d: wallet=%d bank=%d", account.DiscordID, wallet, bank)
	}

	before := *account
	if err := accountRepo.UpdateBalances(ctx, account.DiscordID, wallet, bank); err != nil {
		return fmt.Errorf("failed to update balances: %w", err)
	}
	account.Wallet = wallet
	account.Bank = bank

	history := entities.NewBalanceHistory(before, account, txType, metadata)
	return RecordBalanceChange(ctx, balanceHistoryRepo, eventPublisher, history)
}
