package infrastructure

import (
	"context"
	"errors"
	"testing"
	"time"

	"guildbot/domain/entities"
	"guildbot/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockEventPublisher records published events
type MockEventPublisher struct {
	PublishedEvents []events.Event
	PublishError    error
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	if m.PublishError != nil {
		return m.PublishError
	}
	m.PublishedEvents = append(m.PublishedEvents, event)
	return nil
}

func TestNATSTransactionalPublisher_QueuesUntilFlush(t *testing.T) {
	mockPublisher := &MockEventPublisher{}
	transPublisher := NewNATSTransactionalPublisher(mockPublisher)

	first := events.LevelUpEvent{UserID: 1, GuildID: 2, OldLevel: 0, NewLevel: 1, TotalXP: 100}
	second := events.BalanceChangeEvent{UserID: 1, OldWallet: 0, NewWallet: 250, TransactionType: entities.TransactionTypeWork, ChangeAmount: 250}

	require.NoError(t, transPublisher.Publish(first))
	require.NoError(t, transPublisher.Publish(second))

	assert.Empty(t, mockPublisher.PublishedEvents)
	assert.Equal(t, 2, transPublisher.PendingCount())

	require.NoError(t, transPublisher.Flush(context.Background()))

	require.Len(t, mockPublisher.PublishedEvents, 2)
	assert.Equal(t, first, mockPublisher.PublishedEvents[0])
	assert.Equal(t, second, mockPublisher.PublishedEvents[1])
	assert.Zero(t, transPublisher.PendingCount())
}

func TestNATSTransactionalPublisher_Discard(t *testing.T) {
	mockPublisher := &MockEventPublisher{}
	transPublisher := NewNATSTransactionalPublisher(mockPublisher)

	require.NoError(t, transPublisher.Publish(events.WarningIssuedEvent{GuildID: 1, UserID: 2, Reason: "spam"}))
	transPublisher.Discard()

	require.NoError(t, transPublisher.Flush(context.Background()))
	assert.Empty(t, mockPublisher.PublishedEvents)
}

func TestNATSTransactionalPublisher_FlushSwallowsPublishErrors(t *testing.T) {
	mockPublisher := &MockEventPublisher{PublishError: errors.New("nats down")}
	transPublisher := NewNATSTransactionalPublisher(mockPublisher)

	require.NoError(t, transPublisher.Publish(events.LevelUpEvent{UserID: 1, NewLevel: 2}))

	assert.NoError(t, transPublisher.Flush(context.Background()))
	assert.Zero(t, transPublisher.PendingCount())
}

func TestNATSEventPublisher_LocalHandlersWithoutClient(t *testing.T) {
	bus := events.NewBus()
	publisher := NewNATSEventPublisher(nil, NewEventSubjectMapper(), bus)

	received := make(chan events.Event, 1)
	publisher.RegisterLocalHandler(events.EventTypeLevelUp, func(ctx context.Context, event events.Event) {
		received <- event
	})

	event := events.LevelUpEvent{UserID: 5, GuildID: 6, NewLevel: 3}
	require.NoError(t, publisher.Publish(event))
	require.NoError(t, publisher.EnsureDomainEventStream())

	select {
	case got := <-received:
		assert.Equal(t, event, got)
	case <-time.After(time.Second):
		t.Fatal("local handler was not invoked")
	}
}

func TestEnvelope_RoundTrip(t *testing.T) {
	event := events.HeistResolvedEvent{
		HeistID:  "h-1",
		GuildID:  10,
		TargetID: 20,
		Members:  []int64{1, 2},
		Success:  true,
		Loot:     900,
		Share:    450,
	}

	data, eventID, err := encodeEnvelope(event)
	require.NoError(t, err)

	decoded, err := DecodeEnvelope(data)
	require.NoError(t, err)

	assert.Equal(t, eventID, decoded.EventID)
	assert.Equal(t, events.EventTypeHeistResolved, decoded.EventType)
	assert.Equal(t, "guildbot", decoded.SourceService)
	assert.False(t, decoded.Timestamp.IsZero())
	assert.Equal(t, "h-1", decoded.Payload["heist_id"])
	assert.Equal(t, float64(450), decoded.Payload["share"])
	assert.Equal(t, true, decoded.Payload["success"])
}

func TestDecodeEnvelope_RejectsGarbage(t *testing.T) {
	_, err := DecodeEnvelope([]byte("not json"))
	assert.Error(t, err)

	_, err = DecodeEnvelope([]byte(`{"payload":{}}`))
	assert.Error(t, err)
}
