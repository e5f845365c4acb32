package repository

import (
	"context"
	"errors"
	"fmt"

	"guildbot/application"
	"guildbot/database"
	"guildbot/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

const notStarted = "unit of work not started - call Begin() first"

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db             *database.DB
	tx             pgx.Tx
	ctx            context.Context
	guildID        int64
	eventPublisher interfaces.EventPublisher

	accountRepo        interfaces.AccountRepository
	economyStatsRepo   interfaces.EconomyStatsRepository
	inventoryRepo      interfaces.InventoryRepository
	petRepo            interfaces.PetRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
	xpRepo             interfaces.XPRepository
	warningRepo        interfaces.WarningRepository
	playlistRepo       interfaces.PlaylistRepository
	reminderRepo       interfaces.ReminderRepository
}

type unitOfWorkFactory struct {
	db *database.DB
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB) *unitOfWorkFactory {
	return &unitOfWorkFactory{db: db}
}

// CreateForGuildWithPublisher creates a UnitOfWork whose EventBus is the given publisher
func (f *unitOfWorkFactory) CreateForGuildWithPublisher(guildID int64, eventPublisher interfaces.EventPublisher) application.UnitOfWork {
	return &unitOfWork{
		db:             f.db,
		guildID:        guildID,
		eventPublisher: eventPublisher,
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.accountRepo = newAccountRepository(tx)
	u.economyStatsRepo = newEconomyStatsRepository(tx)
	u.inventoryRepo = newInventoryRepository(tx)
	u.petRepo = newPetRepository(tx)
	u.balanceHistoryRepo = newBalanceHistoryRepository(tx, u.guildID)
	u.xpRepo = newXPRepository(tx, u.guildID)
	u.warningRepo = newWarningRepository(tx, u.guildID)
	u.playlistRepo = newPlaylistRepository(tx, u.guildID)
	u.reminderRepo = newReminderRepository(tx, u.guildID)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil
	return nil
}

// Rollback rolls back the transaction. It is a no-op after Commit.
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil
	return nil
}

func (u *unitOfWork) AccountRepository() interfaces.AccountRepository {
	if u.accountRepo == nil {
		panic(notStarted)
	}
	return u.accountRepo
}

func (u *unitOfWork) EconomyStatsRepository() interfaces.EconomyStatsRepository {
	if u.economyStatsRepo == nil {
		panic(notStarted)
	}
	return u.economyStatsRepo
}

func (u *unitOfWork) InventoryRepository() interfaces.InventoryRepository {
	if u.inventoryRepo == nil {
		panic(notStarted)
	}
	return u.inventoryRepo
}

func (u *unitOfWork) PetRepository() interfaces.PetRepository {
	if u.petRepo == nil {
		panic(notStarted)
	}
	return u.petRepo
}

func (u *unitOfWork) BalanceHistoryRepository() interfaces.BalanceHistoryRepository {
	if u.balanceHistoryRepo == nil {
		panic(notStarted)
	}
	return u.balanceHistoryRepo
}

func (u *unitOfWork) XPRepository() interfaces.XPRepository {
	if u.xpRepo == nil {
		panic(notStarted)
	}
	return u.xpRepo
}

func (u *unitOfWork) WarningRepository() interfaces.WarningRepository {
	if u.warningRepo == nil {
		panic(notStarted)
	}
	return u.warningRepo
}

func (u *unitOfWork) PlaylistRepository() interfaces.PlaylistRepository {
	if u.playlistRepo == nil {
		panic(notStarted)
	}
	return u.playlistRepo
}

func (u *unitOfWork) ReminderRepository() interfaces.ReminderRepository {
	if u.reminderRepo == nil {
		panic(notStarted)
	}
	return u.reminderRepo
}

// EventBus returns the publisher events are staged on until commit
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	if u.eventPublisher == nil {
		panic("event publisher not configured")
	}
	return u.eventPublisher
}
