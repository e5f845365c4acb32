package common

import (
	"context"

	"guildbot/application"
	"guildbot/domain/cooldown"
)

// InTransaction runs fn inside a guild-scoped unit of work and commits when it succeeds
func InTransaction(ctx context.Context, factory application.UnitOfWorkFactory, guildID int64, fn func(uow application.UnitOfWork) error) error {
	uow := factory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return NewSystemError(err, "failed to begin transaction")
	}
	defer uow.Rollback()

	if err := fn(uow); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return NewSystemError(err, "failed to commit transaction")
	}
	return nil
}

// CooldownKey names the cooldown a transactional action starts
type CooldownKey struct {
	Gate    *cooldown.Gate
	Action  string
	Subject int64
}

// InTransactionWithCooldown is InTransaction for actions that start a cooldown inside fn.
// If fn succeeded but the commit failed, nothing was saved, so the cooldown is cleared.
func InTransactionWithCooldown(ctx context.Context, factory application.UnitOfWorkFactory, guildID int64, key CooldownKey, fn func(uow application.UnitOfWork) error) error {
	applied := false
	err := InTransaction(ctx, factory, guildID, func(uow application.UnitOfWork) error {
		if err := fn(uow); err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil && applied {
		key.Gate.Clear(key.Action, key.Subject)
	}
	return err
}
