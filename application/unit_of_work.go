package application

import (
	"context"

	"guildbot/domain/interfaces"
)

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	AccountRepository() interfaces.AccountRepository
	EconomyStatsRepository() interfaces.EconomyStatsRepository
	InventoryRepository() interfaces.InventoryRepository
	PetRepository() interfaces.PetRepository
	BalanceHistoryRepository() interfaces.BalanceHistoryRepository
	XPRepository() interfaces.XPRepository
	WarningRepository() interfaces.WarningRepository
	PlaylistRepository() interfaces.PlaylistRepository
	ReminderRepository() interfaces.ReminderRepository
	EventBus() interfaces.EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// CreateForGuild creates a new UnitOfWork instance scoped to a specific guild
	CreateForGuild(guildID int64) UnitOfWork
}
