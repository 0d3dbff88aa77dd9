package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch, cancel := bus.Subscribe(4)
	defer cancel()

	bus.Publish(Event{Entity: EntityProduct, Action: ActionCreated})

	ev := <-ch
	assert.Equal(t, EntityProduct, ev.Entity)
	assert.Equal(t, ActionCreated, ev.Action)
}

func TestBus_PublishNeverBlocks(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch, cancel := bus.Subscribe(1)
	defer cancel()

	// Second publish overflows the buffer and must be dropped, not block.
	bus.Publish(Event{Entity: EntitySale, Action: ActionCreated})
	bus.Publish(Event{Entity: EntitySale, Action: ActionUpdated})

	ev := <-ch
	assert.Equal(t, ActionCreated, ev.Action)

	select {
	case ev, ok := <-ch:
		require.False(t, ok, "unexpected buffered event: %+v", ev)
	default:
		// dropped, as designed
	}
}

func TestBus_UnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch, cancel := bus.Subscribe(1)
	cancel()

	_, ok := <-ch
	assert.False(t, ok)

	// Publishing after unsubscribe must not panic.
	bus.Publish(Event{Entity: EntityProduct, Action: ActionDeleted})
}

func TestBus_CloseIsIdempotent(t *testing.T) {
	bus := NewBus()
	ch, _ := bus.Subscribe(1)

	bus.Close()
	bus.Close()

	_, ok := <-ch
	assert.False(t, ok)

	// Subscribe after close returns a closed channel.
	ch2, cancel := bus.Subscribe(1)
	defer cancel()
	_, ok = <-ch2
	assert.False(t, ok)
}
