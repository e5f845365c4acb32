package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"guildbot/application"
	"guildbot/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistrar struct {
	bus *events.Bus
}

func (r *fakeRegistrar) RegisterLocalHandler(eventType events.EventType, handler events.Handler) {
	r.bus.Subscribe(eventType, handler)
}

func TestLevelUpHandler_PostsAnnouncement(t *testing.T) {
	poster := &MockDiscordPoster{}
	handler := application.NewLevelUpHandler(poster)

	handler.HandleLevelUp(context.Background(), events.LevelUpEvent{
		UserID:    42,
		GuildID:   1,
		ChannelID: 99,
		OldLevel:  1,
		NewLevel:  2,
	})

	require.Len(t, poster.LevelUps, 1)
	assert.Equal(t, int64(99), poster.LevelUps[0].ChannelID)
	assert.Equal(t, int64(42), poster.LevelUps[0].UserID)
	assert.Equal(t, int64(2), poster.LevelUps[0].NewLevel)
}

func TestLevelUpHandler_IgnoresOtherEvents(t *testing.T) {
	poster := &MockDiscordPoster{}
	handler := application.NewLevelUpHandler(poster)

	handler.HandleLevelUp(context.Background(), events.WarningIssuedEvent{UserID: 1})

	assert.Empty(t, poster.LevelUps)
}

func TestLevelUpHandler_PosterFailureIsLogged(t *testing.T) {
	poster := &MockDiscordPoster{Error: errors.New("missing access")}
	handler := application.NewLevelUpHandler(poster)

	assert.NotPanics(t, func() {
		handler.HandleLevelUp(context.Background(), events.LevelUpEvent{UserID: 1, NewLevel: 3})
	})
}

func TestRegisterApplicationSubscriptions(t *testing.T) {
	bus := events.NewBus()
	poster := &MockDiscordPoster{}

	application.RegisterApplicationSubscriptions(&fakeRegistrar{bus: bus}, poster)
	assert.Equal(t, 1, bus.HandlerCount(events.EventTypeLevelUp))

	bus.Emit(context.Background(), events.LevelUpEvent{UserID: 7, ChannelID: 8, NewLevel: 1})

	assert.Eventually(t, func() bool { return poster.levelUpCount() == 1 }, time.Second, 10*time.Millisecond)
}
