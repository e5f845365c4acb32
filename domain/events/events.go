package events

import "guildbot/domain/entities"

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange EventType = "balance_change"
	EventTypeLevelUp       EventType = "level_up"
	EventTypeHeistResolved EventType = "heist_resolved"
	EventTypeWarningIssued EventType = "warning_issued"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	UserID          int64                    `json:"user_id"`
	GuildID         int64                    `json:"guild_id"`
	OldWallet       int64                    `json:"old_wallet"`
	NewWallet       int64                    `json:"new_wallet"`
	OldBank         int64                    `json:"old_bank"`
	NewBank         int64                    `json:"new_bank"`
	TransactionType entities.TransactionType `json:"transaction_type"`
	ChangeAmount    int64                    `json:"change_amount"`
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// LevelUpEvent is published when a message pushes a member over a level threshold
type LevelUpEvent struct {
	UserID    int64 `json:"user_id"`
	GuildID   int64 `json:"guild_id"`
	ChannelID int64 `json:"channel_id"`
	OldLevel  int64 `json:"old_level"`
	NewLevel  int64 `json:"new_level"`
	TotalXP   int64 `json:"total_xp"`
}

func (e LevelUpEvent) Type() EventType {
	return EventTypeLevelUp
}

// HeistResolvedEvent is published once a heist crew has been paid out or caught
type HeistResolvedEvent struct {
	HeistID  string  `json:"heist_id"`
	GuildID  int64   `json:"guild_id"`
	TargetID int64   `json:"target_id"`
	Members  []int64 `json:"members"`
	Success  bool    `json:"success"`
	Loot     int64   `json:"loot"`
	Share    int64   `json:"share"`
}

func (e HeistResolvedEvent) Type() EventType {
	return EventTypeHeistResolved
}

// WarningIssuedEvent is published for every moderator warning
type WarningIssuedEvent struct {
	GuildID       int64  `json:"guild_id"`
	UserID        int64  `json:"user_id"`
	IssuerID      int64  `json:"issuer_id"`
	Reason        string `json:"reason"`
	TotalWarnings int    `json:"total_warnings"`
	AutoTimeout   bool   `json:"auto_timeout"`
}

func (e WarningIssuedEvent) Type() EventType {
	return EventTypeWarningIssued
}
