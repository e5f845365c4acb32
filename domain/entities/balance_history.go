package entities

import (
	"errors"
	"time"
)

// BalanceHistory is an audit row for one account mutation
type BalanceHistory struct {
	ID                  int64           `db:"id"`
	DiscordID           int64           `db:"discord_id"`
	GuildID             int64           `db:"guild_id"`
	WalletBefore        int64           `db:"wallet_before"`
	WalletAfter         int64           `db:"wallet_after"`
	BankBefore          int64           `db:"bank_before"`
	BankAfter           int64           `db:"bank_after"`
	ChangeAmount        int64           `db:"change_amount"`
	TransactionType     TransactionType `db:"transaction_type"`
	TransactionMetadata map[string]any  `db:"transaction_metadata"`
	CreatedAt           time.Time       `db:"created_at"`
}

// NewBalanceHistory captures the before and after of an account.
// ChangeAmount is the change in total wealth, or the moved amount for deposits and withdrawals.
// GuildID is filled in by the repository that records it.
func NewBalanceHistory(before Account, after *Account, txType TransactionType, metadata map[string]any) *BalanceHistory {
	change := after.Total() - before.Total()
	if txType.IsTransferType() {
		change = after.Bank - before.Bank
	}
	return &BalanceHistory{
		DiscordID:           after.DiscordID,
		WalletBefore:        before.Wallet,
		WalletAfter:         after.Wallet,
		BankBefore:          before.Bank,
		BankAfter:           after.Bank,
		ChangeAmount:        change,
		TransactionType:     txType,
		TransactionMetadata: metadata,
	}
}

// IsPositiveChange returns true if the change amount is positive
func (bh *BalanceHistory) IsPositiveChange() bool {
	return bh.ChangeAmount > 0
}

// GetTransactionDescription returns a human-readable description of the transaction
func (bh *BalanceHistory) GetTransactionDescription() string {
	switch bh.TransactionType {
	case TransactionTypeWork:
		return "Work shift"
	case TransactionTypeMarketSale:
		return "Market sale"
	case TransactionTypeGambleWin:
		return "Gamble win"
	case TransactionTypeGambleLoss:
		return "Gamble loss"
	case TransactionTypeRobSteal:
		return "Robbery"
	case TransactionTypeRobVictim:
		return "Robbed"
	case TransactionTypeRobFine:
		return "Robbery fine"
	case TransactionTypeHeistLoot:
		return "Heist loot"
	case TransactionTypeHeistFee:
		return "Heist fee"
	case TransactionTypeHeistVictim:
		return "Bank robbed"
	case TransactionTypeDeposit:
		return "Deposit"
	case TransactionTypeWithdraw:
		return "Withdrawal"
	case TransactionTypePetPurchase:
		return "Pet purchase"
	case TransactionTypeChallengeWin:
		return "Pet battle win"
	case TransactionTypeChallengeLoss:
		return "Pet battle loss"
	case TransactionTypeAdminGrant:
		return "Admin grant"
	case TransactionTypeAdminRemove:
		return "Admin removal"
	default:
		return string(bh.TransactionType)
	}
}

// Validate checks that balances stay non-negative
func (bh *BalanceHistory) Validate() error {
	if bh.WalletAfter < 0 || bh.BankAfter < 0 {
		return errors.New("balance cannot go negative")
	}
	if bh.WalletBefore == bh.WalletAfter && bh.BankBefore == bh.BankAfter {
		return errors.New("balance did not change")
	}
	return nil
}
