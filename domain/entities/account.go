package entities

import "time"

// Account holds a user's wallet and bank balances.
// Accounts are global: the same wallet follows a user across guilds.
type Account struct {
	DiscordID int64     `db:"discord_id"`
	Wallet    int64     `db:"wallet"`
	Bank      int64     `db:"bank"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Total returns wallet plus bank
func (a *Account) Total() int64 {
	return a.Wallet + a.Bank
}

// CanAfford checks if the wallet covers amount
func (a *Account) CanAfford(amount int64) bool {
	return a.Wallet >= amount
}

// CanWithdraw checks if the bank covers amount
func (a *Account) CanWithdraw(amount int64) bool {
	return a.Bank >= amount
}

// WalletAfter returns the wallet after a change, floored at zero
func (a *Account) WalletAfter(change int64) int64 {
	next := a.Wallet + change
	if next < 0 {
		return 0
	}
	return next
}
