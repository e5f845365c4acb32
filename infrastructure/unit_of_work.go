package infrastructure

import (
	"context"

	"guildbot/application"
	"guildbot/domain/interfaces"
)

// unitOfWork wraps the repository UnitOfWork and publishes queued events on commit
type unitOfWork struct {
	inner                  application.UnitOfWork
	transactionalPublisher *NATSTransactionalPublisher
	ctx                    context.Context
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	u.ctx = ctx
	return u.inner.Begin(ctx)
}

// Commit commits the transaction and flushes events on success
func (u *unitOfWork) Commit() error {
	if err := u.inner.Commit(); err != nil {
		return err
	}

	// the transaction is already durable, so publishing is best-effort
	_ = u.transactionalPublisher.Flush(u.ctx)
	return nil
}

// Rollback rolls back the transaction and discards pending events
func (u *unitOfWork) Rollback() error {
	u.transactionalPublisher.Discard()
	return u.inner.Rollback()
}

func (u *unitOfWork) AccountRepository() interfaces.AccountRepository {
	return u.inner.AccountRepository()
}

func (u *unitOfWork) EconomyStatsRepository() interfaces.EconomyStatsRepository {
	return u.inner.EconomyStatsRepository()
}

func (u *unitOfWork) InventoryRepository() interfaces.InventoryRepository {
	return u.inner.InventoryRepository()
}

func (u *unitOfWork) PetRepository() interfaces.PetRepository {
	return u.inner.PetRepository()
}

func (u *unitOfWork) BalanceHistoryRepository() interfaces.BalanceHistoryRepository {
	return u.inner.BalanceHistoryRepository()
}

func (u *unitOfWork) XPRepository() interfaces.XPRepository {
	return u.inner.XPRepository()
}

func (u *unitOfWork) WarningRepository() interfaces.WarningRepository {
	return u.inner.WarningRepository()
}

func (u *unitOfWork) PlaylistRepository() interfaces.PlaylistRepository {
	return u.inner.PlaylistRepository()
}

func (u *unitOfWork) ReminderRepository() interfaces.ReminderRepository {
	return u.inner.ReminderRepository()
}

// EventBus returns the transactional event publisher
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	return u.transactionalPublisher
}
