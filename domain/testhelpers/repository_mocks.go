package testhelpers

import (
	"context"
	"time"

	"guildbot/domain/entities"
	"guildbot/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByDiscordID(ctx context.Context, discordID int64) (*entities.Account, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) GetOrCreate(ctx context.Context, discordID int64) (*entities.Account, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) LockForUpdate(ctx context.Context, discordIDs ...int64) (map[int64]*entities.Account, error) {
	args := m.Called(ctx, discordIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateBalances(ctx context.Context, discordID int64, wallet, bank int64) error {
	args := m.Called(ctx, discordID, wallet, bank)
	return args.Error(0)
}

func (m *MockAccountRepository) GetRichest(ctx context.Context, limit int) ([]*entities.Account, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Account), args.Error(1)
}

// MockEconomyStatsRepository is a mock implementation of EconomyStatsRepository
type MockEconomyStatsRepository struct {
	mock.Mock
}

func (m *MockEconomyStatsRepository) GetOrCreate(ctx context.Context, discordID int64) (*entities.EconomyStats, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.EconomyStats), args.Error(1)
}

func (m *MockEconomyStatsRepository) IncrementWork(ctx context.Context, discordID int64, job string) error {
	args := m.Called(ctx, discordID, job)
	return args.Error(0)
}

func (m *MockEconomyStatsRepository) IncrementGamble(ctx context.Context, discordID int64, won bool) error {
	args := m.Called(ctx, discordID, won)
	return args.Error(0)
}

// MockInventoryRepository is a mock implementation of InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) GetByUser(ctx context.Context, discordID int64) ([]*entities.InventoryItem, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) GetCount(ctx context.Context, discordID int64, item string) (int64, error) {
	args := m.Called(ctx, discordID, item)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryRepository) AddItem(ctx context.Context, discordID int64, item string, quantity int64) error {
	args := m.Called(ctx, discordID, item, quantity)
	return args.Error(0)
}

func (m *MockInventoryRepository) RemoveOne(ctx context.Context, discordID int64, item string) (bool, error) {
	args := m.Called(ctx, discordID, item)
	return args.Bool(0), args.Error(1)
}

// MockPetRepository is a mock implementation of PetRepository
type MockPetRepository struct {
	mock.Mock
}

func (m *MockPetRepository) GetByDiscordID(ctx context.Context, discordID int64) (*entities.Pet, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Pet), args.Error(1)
}

func (m *MockPetRepository) Create(ctx context.Context, pet *entities.Pet) error {
	args := m.Called(ctx, pet)
	return args.Error(0)
}

// MockBalanceHistoryRepository is a mock implementation of BalanceHistoryRepository
type MockBalanceHistoryRepository struct {
	mock.Mock
}

func (m *MockBalanceHistoryRepository) Record(ctx context.Context, history *entities.BalanceHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockBalanceHistoryRepository) GetByUser(ctx context.Context, discordID int64, limit int) ([]*entities.BalanceHistory, error) {
	args := m.Called(ctx, discordID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.BalanceHistory), args.Error(1)
}

func (m *MockBalanceHistoryRepository) GetByDateRange(ctx context.Context, discordID int64, from, to time.Time) ([]*entities.BalanceHistory, error) {
	args := m.Called(ctx, discordID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.BalanceHistory), args.Error(1)
}

// MockXPRepository is a mock implementation of XPRepository
type MockXPRepository struct {
	mock.Mock
}

func (m *MockXPRepository) Get(ctx context.Context, discordID int64) (*entities.XPRecord, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.XPRecord), args.Error(1)
}

func (m *MockXPRepository) GetForUpdate(ctx context.Context, discordID int64) (*entities.XPRecord, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.XPRecord), args.Error(1)
}

func (m *MockXPRepository) Save(ctx context.Context, record *entities.XPRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockXPRepository) GetLeaderboard(ctx context.Context, limit int) ([]*entities.XPRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.XPRecord), args.Error(1)
}

func (m *MockXPRepository) Reset(ctx context.Context, discordID int64) (bool, error) {
	args := m.Called(ctx, discordID)
	return args.Bool(0), args.Error(1)
}

func (m *MockXPRepository) ResetGuild(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockWarningRepository is a mock implementation of WarningRepository
type MockWarningRepository struct {
	mock.Mock
}

func (m *MockWarningRepository) Add(ctx context.Context, warning *entities.Warning) error {
	args := m.Called(ctx, warning)
	return args.Error(0)
}

func (m *MockWarningRepository) ListByUser(ctx context.Context, discordID int64) ([]*entities.Warning, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Warning), args.Error(1)
}

func (m *MockWarningRepository) CountByUser(ctx context.Context, discordID int64) (int, error) {
	args := m.Called(ctx, discordID)
	return args.Int(0), args.Error(1)
}

func (m *MockWarningRepository) ClearByUser(ctx context.Context, discordID int64) (int64, error) {
	args := m.Called(ctx, discordID)
	return args.Get(0).(int64), args.Error(1)
}

// MockPlaylistRepository is a mock implementation of PlaylistRepository
type MockPlaylistRepository struct {
	mock.Mock
}

func (m *MockPlaylistRepository) Upsert(ctx context.Context, playlist *entities.Playlist) error {
	args := m.Called(ctx, playlist)
	return args.Error(0)
}

func (m *MockPlaylistRepository) GetByName(ctx context.Context, name string) (*entities.Playlist, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Playlist), args.Error(1)
}

func (m *MockPlaylistRepository) List(ctx context.Context) ([]*entities.Playlist, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Playlist), args.Error(1)
}

// MockReminderRepository is a mock implementation of ReminderRepository
type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) Create(ctx context.Context, reminder *entities.Reminder) error {
	args := m.Called(ctx, reminder)
	return args.Error(0)
}

func (m *MockReminderRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entities.Reminder, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Reminder), args.Error(1)
}

func (m *MockReminderRepository) MarkDelivered(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockReminderRepository) ListPending(ctx context.Context, discordID int64) ([]*entities.Reminder, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Reminder), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
