package interfaces

import (
	"context"
	"time"

	"guildbot/domain/entities"
)

// EconomyService defines wallet, bank, work and gambling operations
type EconomyService interface {
	// GetBalance returns a user's account, creating it if needed
	GetBalance(ctx context.Context, discordID int64) (*entities.Account, error)

	// Work runs a shift at an optional job
	Work(ctx context.Context, discordID int64, job string) (*entities.WorkResult, error)

	// AdvancedWork runs a shift once doubled pay is unlocked
	AdvancedWork(ctx context.Context, discordID int64, job string) (*entities.WorkResult, error)

	// Gamble stakes an amount ("all" stakes the wallet)
	Gamble(ctx context.Context, discordID int64, amountArg string) (*entities.GambleResult, error)

	// AdvancedGamble gambles once enough wins are recorded
	AdvancedGamble(ctx context.Context, discordID int64, amountArg string) (*entities.GambleResult, error)

	// Rob attempts to steal from another user's wallet
	Rob(ctx context.Context, thiefID, targetID int64, targetIsBot bool) (*entities.RobResult, error)

	// Deposit moves money from wallet to bank
	Deposit(ctx context.Context, discordID int64, amountArg string) (*entities.TransferResult, error)

	// Withdraw moves money from bank to wallet
	Withdraw(ctx context.Context, discordID int64, amountArg string) (*entities.TransferResult, error)

	// SellItem sells one unit of a job item at the market
	SellItem(ctx context.Context, discordID int64, item string) (*entities.SaleResult, error)

	// GetInventory returns the user's items
	GetInventory(ctx context.Context, discordID int64) ([]*entities.InventoryItem, error)

	// GetStats returns job and gamble progression
	GetStats(ctx context.Context, discordID int64) (*entities.StatsSummary, error)

	// GrantMoney adds money to a wallet
	GrantMoney(ctx context.Context, discordID int64, amount int64) (*entities.Account, error)

	// RemoveMoney takes money from a wallet
	RemoveMoney(ctx context.Context, discordID int64, amount int64) (*entities.Account, error)

	// GetRichest returns the wealthiest accounts
	GetRichest(ctx context.Context, limit int) ([]*entities.Account, error)
}

// PetService defines pet ownership and battles
type PetService interface {
	// GetPet returns the user's pet or nil
	GetPet(ctx context.Context, discordID int64) (*entities.Pet, error)

	// BuyPet buys a pet of the given type
	BuyPet(ctx context.Context, discordID int64, petType string) (*entities.Pet, error)

	// Challenge battles two pets for a bet
	Challenge(ctx context.Context, challengerID, opponentID int64, bet int64) (*entities.ChallengeResult, error)
}

// HeistService defines bank heist operations
type HeistService interface {
	// Open validates and opens a heist against a target's bank
	Open(ctx context.Context, guildID, channelID, initiatorID, targetID int64) (*entities.Heist, error)

	// JoinerWallet reads the wallet a heist join is checked against
	JoinerWallet(ctx context.Context, userID int64, isBot bool) (int64, error)

	// Join tries to add a user to a gathering heist
	Join(ctx context.Context, heist *entities.Heist, userID int64, isBot bool) (entities.JoinOutcome, error)

	// Execute rolls the heist and moves the money
	Execute(ctx context.Context, heist *entities.Heist) (*entities.HeistOutcome, error)
}

// LevelingService defines message experience operations
type LevelingService interface {
	// ProcessMessage awards message XP and returns a level change, or nil
	ProcessMessage(ctx context.Context, guildID, channelID, discordID int64) (*entities.LevelUp, error)

	// GetRank returns a member's record or nil
	GetRank(ctx context.Context, discordID int64) (*entities.XPRecord, error)

	// GetLeaderboard returns the top members
	GetLeaderboard(ctx context.Context, limit int) ([]*entities.XPRecord, error)

	// GiveXP adds XP to a member
	GiveXP(ctx context.Context, discordID int64, amount int64) (*entities.XPRecord, error)

	// ResetUser clears one member's XP
	ResetUser(ctx context.Context, discordID int64) (bool, error)

	// ResetGuild clears everyone's XP
	ResetGuild(ctx context.Context) (int64, error)
}

// ModerationService defines warning operations
type ModerationService interface {
	// Warn records a warning and reports whether the auto timeout applies
	Warn(ctx context.Context, guildID, targetID, issuerID int64, reason string) (*entities.WarnResult, error)

	// ListWarnings returns a member's warnings
	ListWarnings(ctx context.Context, targetID int64) ([]*entities.Warning, error)

	// ClearWarnings removes a member's warnings
	ClearWarnings(ctx context.Context, targetID int64) (int64, error)
}

// PlaylistService defines playlist operations
type PlaylistService interface {
	// CreatePlaylist stores a playlist from a comma separated song list
	CreatePlaylist(ctx context.Context, name, songs string, creatorID int64) (*entities.Playlist, error)

	// GetPlaylist returns a saved playlist
	GetPlaylist(ctx context.Context, name string) (*entities.Playlist, error)

	// ListPlaylists returns every saved playlist
	ListPlaylists(ctx context.Context) ([]*entities.Playlist, error)
}

// ReminderService defines reminder operations
type ReminderService interface {
	// Schedule stores a reminder after a delay such as "10m"
	Schedule(ctx context.Context, channelID, discordID int64, delay string, message string) (*entities.Reminder, error)

	// ClaimDue returns reminders ready for delivery
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entities.Reminder, error)

	// MarkDelivered marks a reminder as sent
	MarkDelivered(ctx context.Context, id int64) error
}
