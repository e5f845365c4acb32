package services

import (
	"context"
	"testing"

	"guildbot/domain/entities"
	"guildbot/domain/events"
	"guildbot/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestModerationService_Warn(t *testing.T) {
	ctx := context.Background()

	t.Run("default reason", func(t *testing.T) {
		mockWarningRepo := new(testhelpers.MockWarningRepository)
		mockEventPublisher := new(testhelpers.MockEventPublisher)
		service := NewModerationService(mockWarningRepo, mockEventPublisher)

		mockWarningRepo.On("Add", ctx, mock.MatchedBy(func(w *entities.Warning) bool {
			return w.Reason == "No reason provided" && w.DiscordID == 2 && w.IssuerID == 1
		})).Return(nil)
		mockWarningRepo.On("CountByUser", ctx, int64(2)).Return(1, nil)
		mockEventPublisher.On("Publish", mock.AnythingOfType("events.WarningIssuedEvent")).Return(nil)

		result, err := service.Warn(ctx, 10, 2, 1, "   ")
		require.NoError(t, err)
		assert.Equal(t, 1, result.TotalWarnings)
		assert.False(t, result.ShouldTimeout)
		mockWarningRepo.AssertExpectations(t)
		mockEventPublisher.AssertExpectations(t)
	})

	t.Run("fifth warning triggers timeout", func(t *testing.T) {
		mockWarningRepo := new(testhelpers.MockWarningRepository)
		mockEventPublisher := new(testhelpers.MockEventPublisher)
		service := NewModerationService(mockWarningRepo, mockEventPublisher)

		mockWarningRepo.On("Add", ctx, mock.Anything).Return(nil)
		mockWarningRepo.On("CountByUser", ctx, int64(2)).Return(5, nil)
		mockEventPublisher.On("Publish", mock.MatchedBy(func(e events.WarningIssuedEvent) bool {
			return e.AutoTimeout && e.TotalWarnings == 5 && e.Reason == "spam"
		})).Return(nil)

		result, err := service.Warn(ctx, 10, 2, 1, "spam")
		require.NoError(t, err)
		assert.True(t, result.ShouldTimeout)
		mockEventPublisher.AssertExpectations(t)
	})

	t.Run("cannot warn yourself", func(t *testing.T) {
		service := NewModerationService(new(testhelpers.MockWarningRepository), new(testhelpers.MockEventPublisher))
		_, err := service.Warn(ctx, 10, 1, 1, "x")
		assert.True(t, entities.IsValidationError(err))
	})
}

func TestModerationService_ClearWarnings(t *testing.T) {
	ctx := context.Background()
	mockWarningRepo := new(testhelpers.MockWarningRepository)
	service := NewModerationService(mockWarningRepo, new(testhelpers.MockEventPublisher))

	mockWarningRepo.On("ClearByUser", ctx, int64(2)).Return(int64(3), nil)

	n, err := service.ClearWarnings(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
