package repository

import (
	"guildbot/application"
	"guildbot/database"
	"guildbot/domain/interfaces"
)

// CreateTestUnitOfWork creates a unit of work for testing with the provided publisher
func CreateTestUnitOfWork(db *database.DB, guildID int64, publisher interfaces.EventPublisher) application.UnitOfWork {
	return NewUnitOfWorkFactory(db).CreateForGuildWithPublisher(guildID, publisher)
}
