package infrastructure

import (
	"guildbot/application"
	"guildbot/database"
	"guildbot/domain/events"
	"guildbot/domain/interfaces"
	"guildbot/repository"
)

type repositoryFactory interface {
	CreateForGuildWithPublisher(guildID int64, eventPublisher interfaces.EventPublisher) application.UnitOfWork
}

// UnitOfWorkFactory creates units of work that handle both database transactions and event publishing
type UnitOfWorkFactory struct {
	repoFactory    repositoryFactory
	eventPublisher interfaces.EventPublisher
}

// NewUnitOfWorkFactory creates a new UnitOfWorkFactory
func NewUnitOfWorkFactory(db *database.DB, eventPublisher interfaces.EventPublisher) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		repoFactory:    repository.NewUnitOfWorkFactory(db),
		eventPublisher: eventPublisher,
	}
}

// RegisterLocalHandler registers a handler invoked in this process after commit
func (f *UnitOfWorkFactory) RegisterLocalHandler(eventType events.EventType, handler events.Handler) {
	if natsPublisher, ok := f.eventPublisher.(*NATSEventPublisher); ok {
		natsPublisher.RegisterLocalHandler(eventType, handler)
	}
}

// CreateForGuild creates a new UnitOfWork with its own transactional publisher
func (f *UnitOfWorkFactory) CreateForGuild(guildID int64) application.UnitOfWork {
	transactionalPublisher := NewNATSTransactionalPublisher(f.eventPublisher)
	return &unitOfWork{
		inner:                  f.repoFactory.CreateForGuildWithPublisher(guildID, transactionalPublisher),
		transactionalPublisher: transactionalPublisher,
	}
}
