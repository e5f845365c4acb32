package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_EmitReachesSubscribers(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	wg.Add(2)

	received := make(chan Event, 2)
	handler := func(ctx context.Context, event Event) {
		defer wg.Done()
		received <- event
	}
	bus.Subscribe(EventTypeLevelUp, handler)
	bus.Subscribe(EventTypeLevelUp, handler)
	bus.Subscribe(EventTypeWarningIssued, func(ctx context.Context, event Event) {
		t.Error("warning handler should not be called")
	})

	event := LevelUpEvent{UserID: 1, GuildID: 2, OldLevel: 1, NewLevel: 2}
	bus.Emit(context.Background(), event)

	waitTimeout(t, &wg)
	close(received)
	for got := range received {
		assert.Equal(t, event, got)
	}
	assert.Equal(t, 2, bus.HandlerCount(EventTypeLevelUp))
}

func TestBus_PanickingHandlerDoesNotStopOthers(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	wg.Add(1)

	bus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, event Event) {
		panic("boom")
	})
	bus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, event Event) {
		wg.Done()
	})

	bus.Emit(context.Background(), BalanceChangeEvent{UserID: 1})
	waitTimeout(t, &wg)
}

func waitTimeout(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		require.FailNow(t, "timed out waiting for handlers")
	}
}
