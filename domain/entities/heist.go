package entities

import (
	"fmt"
	"math"
	"time"
)

// HeistState represents where a bank heist is in its lifecycle
type HeistState string

const (
	HeistStateGathering HeistState = "gathering"
	HeistStateExecuting HeistState = "executing"
	HeistStateSucceeded HeistState = "succeeded"
	HeistStateFailed    HeistState = "failed"
	HeistStateCancelled HeistState = "cancelled"
)

// Heist rules
const (
	HeistCrewSize              = 5
	HeistEntryFee        int64 = 1000
	HeistMinWallet       int64 = 1000
	HeistMinTargetBank   int64 = 1000
	HeistJoinWindow            = 30 * time.Minute
	HeistGuildCooldown         = time.Hour
	HeistSuccessChance         = 0.5
	HeistMinLootFraction       = 0.2
	HeistMaxLootFraction       = 0.4
	HeistJoinEmoji             = "💰"
)

// JoinOutcome is the result of a join attempt
type JoinOutcome int

const (
	// JoinAccepted means the user is now a crew member
	JoinAccepted JoinOutcome = iota
	// JoinQuorumReached means the user filled the last slot and the heist is executing
	JoinQuorumReached
	// JoinIgnored covers bots, the target and users already in the crew
	JoinIgnored
	// JoinInsufficientFunds means the user cannot cover the entry fee
	JoinInsufficientFunds
	// JoinClosed means the heist is no longer gathering
	JoinClosed
)

// Heist is a bank robbery gathering a crew.
//
// Gathering -> Executing when the crew reaches HeistCrewSize.
// Gathering -> Cancelled when the join window expires.
// Executing -> Succeeded or Failed when resolved.
type Heist struct {
	ID          string
	GuildID     int64
	ChannelID   int64
	MessageID   int64
	InitiatorID int64
	TargetID    int64
	Members     []int64
	State       HeistState
	OpenedAt    time.Time
	Deadline    time.Time
}

// NewHeist opens a heist with the initiator as its first member
func NewHeist(id string, guildID, channelID, initiatorID, targetID int64, now time.Time) *Heist {
	return &Heist{
		ID:          id,
		GuildID:     guildID,
		ChannelID:   channelID,
		InitiatorID: initiatorID,
		TargetID:    targetID,
		Members:     []int64{initiatorID},
		State:       HeistStateGathering,
		OpenedAt:    now,
		Deadline:    now.Add(HeistJoinWindow),
	}
}

// HasMember reports whether a user is in the crew
func (h *Heist) HasMember(userID int64) bool {
	for _, id := range h.Members {
		if id == userID {
			return true
		}
	}
	return false
}

// Needed returns how many more members are required
func (h *Heist) Needed() int {
	return HeistCrewSize - len(h.Members)
}

// Join adds a user to the crew if they are eligible
func (h *Heist) Join(userID int64, isBot bool, wallet int64, now time.Time) JoinOutcome {
	if h.State != HeistStateGathering || !now.Before(h.Deadline) {
		return JoinClosed
	}
	if isBot || userID == h.TargetID || h.HasMember(userID) {
		return JoinIgnored
	}
	if wallet < HeistMinWallet {
		return JoinInsufficientFunds
	}

	h.Members = append(h.Members, userID)
	if len(h.Members) >= HeistCrewSize {
		h.State = HeistStateExecuting
		return JoinQuorumReached
	}
	return JoinAccepted
}

// Expire cancels a gathering heist whose window has closed.
// It returns true if the state changed.
func (h *Heist) Expire(now time.Time) bool {
	if h.State != HeistStateGathering || now.Before(h.Deadline) {
		return false
	}
	h.State = HeistStateCancelled
	return true
}

// Resolve moves an executing heist to its final state
func (h *Heist) Resolve(success bool) error {
	if h.State != HeistStateExecuting {
		return fmt.Errorf("cannot resolve heist in state %s", h.State)
	}
	if success {
		h.State = HeistStateSucceeded
	} else {
		h.State = HeistStateFailed
	}
	return nil
}

// IsTerminal reports whether the heist is finished
func (h *Heist) IsTerminal() bool {
	switch h.State {
	case HeistStateSucceeded, HeistStateFailed, HeistStateCancelled:
		return true
	}
	return false
}

// HeistLoot returns the amount taken from a bank for a loot fraction
func HeistLoot(bank int64, fraction float64) int64 {
	return int64(math.Floor(float64(bank) * fraction))
}

// HeistOutcome is the result of an executed heist
type HeistOutcome struct {
	Heist           *Heist
	Success         bool
	Loot            int64
	Share           int64
	TargetBankAfter int64
}
