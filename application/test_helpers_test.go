package application_test

import (
	"context"
	"sync"

	"guildbot/application"
	"guildbot/database"
	"guildbot/domain/entities"
	"guildbot/domain/interfaces"
	"guildbot/repository"
)

type levelUpPost struct {
	ChannelID int64
	UserID    int64
	NewLevel  int64
}

// MockDiscordPoster records everything the application asks Discord to post
type MockDiscordPoster struct {
	mu        sync.Mutex
	LevelUps  []levelUpPost
	Reminders []*entities.Reminder
	Error     error
}

func (m *MockDiscordPoster) PostLevelUp(ctx context.Context, channelID, userID, newLevel int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return m.Error
	}
	m.LevelUps = append(m.LevelUps, levelUpPost{ChannelID: channelID, UserID: userID, NewLevel: newLevel})
	return nil
}

func (m *MockDiscordPoster) DeliverReminder(ctx context.Context, reminder *entities.Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Error != nil {
		return m.Error
	}
	m.Reminders = append(m.Reminders, reminder)
	return nil
}

func (m *MockDiscordPoster) levelUpCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.LevelUps)
}

// TestUnitOfWorkFactory creates units of work against a test database
type TestUnitOfWorkFactory struct {
	db        *database.DB
	publisher interfaces.EventPublisher
}

func (f *TestUnitOfWorkFactory) CreateForGuild(guildID int64) application.UnitOfWork {
	return repository.CreateTestUnitOfWork(f.db, guildID, f.publisher)
}
