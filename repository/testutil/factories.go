package testutil

import (
	"context"
	"testing"
	"time"

	"guildbot/database"
	"guildbot/domain/entities"

	"github.com/stretchr/testify/require"
)

// SeedAccount inserts an account with the given balances
func SeedAccount(t *testing.T, db *database.DB, discordID, wallet, bank int64) {
	t.Helper()
	_, err := db.Exec(context.Background(),
		`INSERT INTO accounts (discord_id, wallet, bank) VALUES ($1, $2, $3)
		 ON CONFLICT (discord_id) DO UPDATE SET wallet = EXCLUDED.wallet, bank = EXCLUDED.bank`,
		discordID, wallet, bank)
	require.NoError(t, err)
}

// CreateTestBalanceHistory builds a work payout history entry
func CreateTestBalanceHistory(discordID int64, transactionType entities.TransactionType) *entities.BalanceHistory {
	return &entities.BalanceHistory{
		DiscordID:       discordID,
		WalletBefore:    1000,
		WalletAfter:     1400,
		BankBefore:      500,
		BankAfter:       500,
		ChangeAmount:    400,
		TransactionType: transactionType,
		TransactionMetadata: map[string]any{
			"test": true,
		},
		CreatedAt: time.Now(),
	}
}

// CreateTestWarning builds a warning issued by issuerID
func CreateTestWarning(discordID, issuerID int64, reason string) *entities.Warning {
	return &entities.Warning{
		DiscordID: discordID,
		IssuerID:  issuerID,
		Reason:    reason,
	}
}

// CreateTestReminder builds a reminder due after delay
func CreateTestReminder(discordID, channelID int64, message string, delay time.Duration) *entities.Reminder {
	return &entities.Reminder{
		ChannelID: channelID,
		DiscordID: discordID,
		Message:   message,
		DueAt:     time.Now().UTC().Add(delay),
	}
}
