package utils

import (
	"context"
	"errors"
	"testing"

	"guildbot/domain/entities"
	"guildbot/domain/events"
	"guildbot/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecordBalanceChange(t *testing.T) {
	ctx := context.Background()

	mockBalanceHistoryRepo := new(testhelpers.MockBalanceHistoryRepository)
	mockEventPublisher := new(testhelpers.MockEventPublisher)

	mockBalanceHistoryRepo.On("Record", ctx, mock.Anything).Return(nil)
	mockEventPublisher.On("Publish", mock.MatchedBy(func(event interface{}) bool {
		e, ok := event.(events.BalanceChangeEvent)
		return ok && e.NewWallet == 1500 && e.ChangeAmount == 500
	})).Return(nil)

	history := &entities.BalanceHistory{
		DiscordID:       123456,
		GuildID:         789,
		WalletBefore:    1000,
		WalletAfter:     1500,
		ChangeAmount:    500,
		TransactionType: entities.TransactionTypeGambleWin,
	}

	err := RecordBalanceChange(ctx, mockBalanceHistoryRepo, mockEventPublisher, history)
	assert.NoError(t, err)

	mockBalanceHistoryRepo.AssertExpectations(t)
	mockEventPublisher.AssertExpectations(t)
}

func TestRecordBalanceChange_RecordFails(t *testing.T) {
	ctx := context.Background()

	mockBalanceHistoryRepo := new(testhelpers.MockBalanceHistoryRepository)
	mockEventPublisher := new(testhelpers.MockEventPublisher)

	mockBalanceHistoryRepo.On("Record", ctx, mock.Anything).Return(errors.New("db down"))

	err := RecordBalanceChange(ctx, mockBalanceHistoryRepo, mockEventPublisher, &entities.BalanceHistory{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to record balance history")
	mockEventPublisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestApplyBalanceChange(t *testing.T) {
	ctx := context.Background()

	mockAccountRepo := new(testhelpers.MockAccountRepository)
	mockBalanceHistoryRepo := new(testhelpers.MockBalanceHistoryRepository)
	mockEventPublisher := new(testhelpers.MockEventPublisher)

	account := &entities.Account{DiscordID: 42, Wallet: 500, Bank: 100}

	mockAccountRepo.On("UpdateBalances", ctx, int64(42), int64(200), int64(400)).Return(nil)
	mockBalanceHistoryRepo.On("Record", ctx, mock.MatchedBy(func(h *entities.BalanceHistory) bool {
		return h.WalletBefore == 500 && h.WalletAfter == 200 &&
			h.BankBefore == 100 && h.BankAfter == 400 &&
			h.ChangeAmount == 300 &&
			h.TransactionType == entities.TransactionTypeDeposit
	})).Return(nil)
	mockEventPublisher.On("Publish", mock.Anything).Return(nil)

	err := ApplyBalanceChange(ctx, mockAccountRepo, mockBalanceHistoryRepo, mockEventPublisher,
		account, 200, 400, entities.TransactionTypeDeposit, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(200), account.Wallet)
	assert.Equal(t, int64(400), account.Bank)
	mockAccountRepo.AssertExpectations(t)
	mockBalanceHistoryRepo.AssertExpectations(t)
}

func TestApplyBalanceChange_RejectsNegative(t *testing.T) {
	ctx := context.Background()
	mockAccountRepo := new(testhelpers.MockAccountRepository)

	account := &entities.Account{DiscordID: 42, Wallet: 10}
	err := ApplyBalanceChange(ctx, mockAccountRepo, nil, nil, account, -5, 0, entities.TransactionTypeGambleLoss, nil)

	require.Error(t, err)
	assert.Equal(t, int64(10), account.Wallet)
	mockAccountRepo.AssertNotCalled(t, "UpdateBalances", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
