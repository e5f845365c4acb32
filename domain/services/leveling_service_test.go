package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"guildbot/domain/cooldown"
	"guildbot/domain/entities"
	"guildbot/domain/events"
	"guildbot/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLevelingService_ProcessMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("awards xp without level up", func(t *testing.T) {
		mockXPRepo := new(testhelpers.MockXPRepository)
		mockEventPublisher := new(testhelpers.MockEventPublisher)
		gate := cooldown.NewGate()
		service := NewLevelingService(mockXPRepo, mockEventPublisher, gate)

		mockXPRepo.On("GetForUpdate", ctx, int64(1)).Return(&entities.XPRecord{DiscordID: 1}, nil)
		mockXPRepo.On("Save", ctx, mock.MatchedBy(func(r *entities.XPRecord) bool {
			return r.XP == 15 && r.Level == 0 && r.Messages == 1
		})).Return(nil)

		levelUp, err := service.ProcessMessage(ctx, 10, 20, 1)
		require.NoError(t, err)
		assert.Nil(t, levelUp)
		mockXPRepo.AssertExpectations(t)
		mockEventPublisher.AssertNotCalled(t, "Publish", mock.Anything)
	})

	t.Run("crossing the threshold publishes a level up", func(t *testing.T) {
		mockXPRepo := new(testhelpers.MockXPRepository)
		mockEventPublisher := new(testhelpers.MockEventPublisher)
		service := NewLevelingService(mockXPRepo, mockEventPublisher, cooldown.NewGate())

		mockXPRepo.On("GetForUpdate", ctx, int64(1)).Return(&entities.XPRecord{DiscordID: 1, XP: 90, Messages: 6}, nil)
		mockXPRepo.On("Save", ctx, mock.Anything).Return(nil)
		mockEventPublisher.On("Publish", events.LevelUpEvent{
			UserID:    1,
			GuildID:   10,
			ChannelID: 20,
			OldLevel:  0,
			NewLevel:  1,
			TotalXP:   105,
		}).Return(nil)

		levelUp, err := service.ProcessMessage(ctx, 10, 20, 1)
		require.NoError(t, err)
		require.NotNil(t, levelUp)
		assert.Equal(t, int64(1), levelUp.NewLevel)
		mockEventPublisher.AssertExpectations(t)
	})

	t.Run("cooldown skips the award", func(t *testing.T) {
		clock := newTestClock()
		mockXPRepo := new(testhelpers.MockXPRepository)
		service := NewLevelingService(mockXPRepo, new(testhelpers.MockEventPublisher), cooldown.NewGateWithClock(clock.Now))

		mockXPRepo.On("GetForUpdate", ctx, int64(1)).Return(&entities.XPRecord{DiscordID: 1}, nil)
		mockXPRepo.On("Save", ctx, mock.Anything).Return(nil)

		_, err := service.ProcessMessage(ctx, 10, 20, 1)
		require.NoError(t, err)
		clock.Advance(30 * time.Second)
		_, err = service.ProcessMessage(ctx, 10, 20, 1)
		require.NoError(t, err)
		mockXPRepo.AssertNumberOfCalls(t, "Save", 1)

		clock.Advance(30 * time.Second)
		_, err = service.ProcessMessage(ctx, 10, 20, 1)
		require.NoError(t, err)
		mockXPRepo.AssertNumberOfCalls(t, "Save", 2)
	})

	t.Run("failure clears the cooldown", func(t *testing.T) {
		gate := cooldown.NewGate()
		mockXPRepo := new(testhelpers.MockXPRepository)
		service := NewLevelingService(mockXPRepo, new(testhelpers.MockEventPublisher), gate)

		mockXPRepo.On("GetForUpdate", ctx, int64(1)).Return(nil, errors.New("db down"))

		_, err := service.ProcessMessage(ctx, 10, 20, 1)
		require.Error(t, err)
		assert.Zero(t, gate.Remaining(cooldown.ActionXP, 1))
	})
}

func TestLevelingService_GiveXP(t *testing.T) {
	ctx := context.Background()
	mockXPRepo := new(testhelpers.MockXPRepository)
	service := NewLevelingService(mockXPRepo, new(testhelpers.MockEventPublisher), cooldown.NewGate())

	_, err := service.GiveXP(ctx, 1, 0)
	assert.True(t, entities.IsValidationError(err))

	mockXPRepo.On("GetForUpdate", ctx, int64(1)).Return(&entities.XPRecord{DiscordID: 1, XP: 10}, nil)
	mockXPRepo.On("Save", ctx, mock.Anything).Return(nil)

	record, err := service.GiveXP(ctx, 1, 245)
	require.NoError(t, err)
	assert.Equal(t, int64(255), record.XP)
	assert.Equal(t, int64(2), record.Level)
}

func TestLevelingService_GiveXP_Overflow(t *testing.T) {
	ctx := context.Background()
	mockXPRepo := new(testhelpers.MockXPRepository)
	service := NewLevelingService(mockXPRepo, new(testhelpers.MockEventPublisher), cooldown.NewGate())

	mockXPRepo.On("GetForUpdate", ctx, int64(1)).Return(&entities.XPRecord{DiscordID: 1, XP: 15}, nil)

	_, err := service.GiveXP(ctx, 1, math.MaxInt64)
	require.Error(t, err)
	assert.True(t, entities.IsValidationError(err))
	mockXPRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)

	mockXPRepo.On("Save", ctx, mock.Anything).Return(nil)
	record, err := service.GiveXP(ctx, 1, math.MaxInt64-15)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), record.XP)
	assert.Positive(t, record.Level)
}

func TestLevelingService_ProcessMessage_AtMaximumXP(t *testing.T) {
	ctx := context.Background()
	mockXPRepo := new(testhelpers.MockXPRepository)
	service := NewLevelingService(mockXPRepo, new(testhelpers.MockEventPublisher), cooldown.NewGate())

	mockXPRepo.On("GetForUpdate", ctx, int64(1)).Return(&entities.XPRecord{DiscordID: 1, XP: math.MaxInt64 - 10}, nil)

	levelUp, err := service.ProcessMessage(ctx, 10, 20, 1)
	require.NoError(t, err)
	assert.Nil(t, levelUp)
	mockXPRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestLevelingService_Reset(t *testing.T) {
	ctx := context.Background()
	mockXPRepo := new(testhelpers.MockXPRepository)
	service := NewLevelingService(mockXPRepo, new(testhelpers.MockEventPublisher), cooldown.NewGate())

	mockXPRepo.On("Reset", ctx, int64(1)).Return(true, nil)
	mockXPRepo.On("ResetGuild", ctx).Return(int64(12), nil)

	removed, err := service.ResetUser(ctx, 1)
	require.NoError(t, err)
	assert.True(t, removed)

	n, err := service.ResetGuild(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
}
