package interfaces

import (
	"context"
	"time"

	"guildbot/domain/entities"
	"guildbot/domain/events"
)

// AccountRepository defines the interface for wallet and bank data access.
// Accounts are global and ignore the unit of work's guild.
type AccountRepository interface {
	// GetByDiscordID retrieves an account, returning nil if none exists
	GetByDiscordID(ctx context.Context, discordID int64) (*entities.Account, error)

	// GetOrCreate retrieves an account, creating an empty one if needed
	GetOrCreate(ctx context.Context, discordID int64) (*entities.Account, error)

	// LockForUpdate creates any missing accounts and locks them for the rest of the transaction.
	// Rows are locked in ascending id order.
	LockForUpdate(ctx context.Context, discordIDs ...int64) (map[int64]*entities.Account, error)

	// UpdateBalances writes the wallet and bank of an account
	UpdateBalances(ctx context.Context, discordID int64, wallet, bank int64) error

	// GetRichest returns accounts ordered by total wealth
	GetRichest(ctx context.Context, limit int) ([]*entities.Account, error)
}

// EconomyStatsRepository defines the interface for progression counters
type EconomyStatsRepository interface {
	// GetOrCreate returns the counters for a user including per-job counts
	GetOrCreate(ctx context.Context, discordID int64) (*entities.EconomyStats, error)

	// IncrementWork adds one to work_count and, if job is not empty, to the job's count
	IncrementWork(ctx context.Context, discordID int64, job string) error

	// IncrementGamble adds one to gamble_count and, on a win, to gamble_wins
	IncrementGamble(ctx context.Context, discordID int64, won bool) error
}

// InventoryRepository defines the interface for item stacks
type InventoryRepository interface {
	// GetByUser returns every item with a positive count
	GetByUser(ctx context.Context, discordID int64) ([]*entities.InventoryItem, error)

	// GetCount returns how many of an item a user owns
	GetCount(ctx context.Context, discordID int64, item string) (int64, error)

	// AddItem increases an item's count
	AddItem(ctx context.Context, discordID int64, item string, quantity int64) error

	// RemoveOne decreases an item's count by one.
	// It returns false without changing anything when the count is already zero.
	RemoveOne(ctx context.Context, discordID int64, item string) (bool, error)
}

// PetRepository defines the interface for pets
type PetRepository interface {
	// GetByDiscordID returns the user's pet or nil
	GetByDiscordID(ctx context.Context, discordID int64) (*entities.Pet, error)

	// Create stores a new pet. It fails if the user already owns one.
	Create(ctx context.Context, pet *entities.Pet) error
}

// BalanceHistoryRepository defines the interface for balance history tracking
type BalanceHistoryRepository interface {
	// Record creates a new balance history entry
	Record(ctx context.Context, history *entities.BalanceHistory) error

	// GetByUser returns balance history for a specific user
	GetByUser(ctx context.Context, discordID int64, limit int) ([]*entities.BalanceHistory, error)

	// GetByDateRange returns balance history within a date range
	GetByDateRange(ctx context.Context, discordID int64, from, to time.Time) ([]*entities.BalanceHistory, error)
}

// XPRepository defines the interface for guild-scoped experience records
type XPRepository interface {
	// Get returns a member's record or nil
	Get(ctx context.Context, discordID int64) (*entities.XPRecord, error)

	// GetForUpdate returns a member's record, creating it if needed, and locks the row
	GetForUpdate(ctx context.Context, discordID int64) (*entities.XPRecord, error)

	// Save writes xp, level and messages for a record
	Save(ctx context.Context, record *entities.XPRecord) error

	// GetLeaderboard returns records ordered by level then xp
	GetLeaderboard(ctx context.Context, limit int) ([]*entities.XPRecord, error)

	// Reset removes one member's record and reports whether it existed
	Reset(ctx context.Context, discordID int64) (bool, error)

	// ResetGuild removes every record in the guild and returns how many were removed
	ResetGuild(ctx context.Context) (int64, error)
}

// WarningRepository defines the interface for guild-scoped warnings
type WarningRepository interface {
	// Add appends a warning and fills in its id and timestamp
	Add(ctx context.Context, warning *entities.Warning) error

	// ListByUser returns a member's warnings oldest first
	ListByUser(ctx context.Context, discordID int64) ([]*entities.Warning, error)

	// CountByUser returns how many warnings a member has
	CountByUser(ctx context.Context, discordID int64) (int, error)

	// ClearByUser removes all of a member's warnings and returns how many were removed
	ClearByUser(ctx context.Context, discordID int64) (int64, error)
}

// PlaylistRepository defines the interface for guild-scoped playlists
type PlaylistRepository interface {
	// Upsert creates or replaces a playlist by name
	Upsert(ctx context.Context, playlist *entities.Playlist) error

	// GetByName returns a playlist or nil
	GetByName(ctx context.Context, name string) (*entities.Playlist, error)

	// List returns every playlist in the guild ordered by name
	List(ctx context.Context) ([]*entities.Playlist, error)
}

// ReminderRepository defines the interface for scheduled reminders
type ReminderRepository interface {
	// Create stores a reminder for the unit of work's guild
	Create(ctx context.Context, reminder *entities.Reminder) error

	// ClaimDue locks and returns undelivered reminders due at or before now, across all guilds
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entities.Reminder, error)

	// MarkDelivered stamps a reminder as delivered
	MarkDelivered(ctx context.Context, id int64, at time.Time) error

	// ListPending returns a member's undelivered reminders
	ListPending(ctx context.Context, discordID int64) ([]*entities.Reminder, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}
