package eventbus

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversToSubscriber(t *testing.T) {
	b := New()

	received := make(chan DomainEvent, 1)
	b.Subscribe(EventClipboardChanged, func(e DomainEvent) {
		received <- e
	})

	b.Publish(ClipboardChangedEvent{Text: "hello"})

	select {
	case e := <-received:
		ev, ok := e.(ClipboardChangedEvent)
		require.True(t, ok)
		assert.Equal(t, "hello", ev.Text)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event delivery")
	}
}

func TestSubscriberOnlySeesItsEventType(t *testing.T) {
	b := New()

	received := make(chan DomainEvent, 2)
	b.Subscribe(EventClipboardChanged, func(e DomainEvent) {
		received <- e
	})

	b.Publish(IndexScanStartedEvent{})
	b.Publish(ClipboardChangedEvent{Text: "only this"})

	select {
	case e := <-received:
		_, ok := e.(ClipboardChangedEvent)
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event delivery")
	}
	assert.Empty(t, received)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()

	received := make(chan DomainEvent, 4)
	unsubscribe := b.Subscribe(EventClipboardChanged, func(e DomainEvent) {
		received <- e
	})

	b.Publish(ClipboardChangedEvent{Text: "before"})
	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for first delivery")
	}

	unsubscribe()
	b.Publish(ClipboardChangedEvent{Text: "after"})

	select {
	case e := <-received:
		t.Fatalf("received event after unsubscribe: %v", e)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestUnsubscribeRemovesOnlyItsHandler(t *testing.T) {
	b := New()

	first := make(chan DomainEvent, 2)
	second := make(chan DomainEvent, 2)
	unsubFirst := b.Subscribe(EventClipboardChanged, func(e DomainEvent) { first <- e })
	b.Subscribe(EventClipboardChanged, func(e DomainEvent) { second <- e })

	unsubFirst()
	b.Publish(ClipboardChangedEvent{Text: "still delivered"})

	select {
	case <-second:
	case <-time.After(2 * time.Second):
		t.Fatal("remaining subscriber no longer receives events")
	}
	assert.Empty(t, first)
}

func TestEventsArriveInPublishOrder(t *testing.T) {
	b := New()

	const count = 20
	received := make(chan string, count)
	b.Subscribe(EventClipboardChanged, func(e DomainEvent) {
		if ev, ok := e.(ClipboardChangedEvent); ok {
			received <- ev.Text
		}
	})

	for i := 0; i < count; i++ {
		b.Publish(ClipboardChangedEvent{Text: fmt.Sprintf("entry-%d", i)})
	}

	for i := 0; i < count; i++ {
		select {
		case text := <-received:
			assert.Equal(t, fmt.Sprintf("entry-%d", i), text)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}
}

func TestPanickingHandlerDoesNotKillDispatcher(t *testing.T) {
	b := New()

	received := make(chan DomainEvent, 2)
	b.Subscribe(EventClipboardChanged, func(DomainEvent) {
		panic("misbehaving subscriber")
	})
	b.Subscribe(EventClipboardChanged, func(e DomainEvent) {
		received <- e
	})

	b.Publish(ClipboardChangedEvent{Text: "first"})
	b.Publish(ClipboardChangedEvent{Text: "second"})

	for i := 0; i < 2; i++ {
		select {
		case <-received:
		case <-time.After(2 * time.Second):
			t.Fatal("dispatcher stopped delivering after a handler panic")
		}
	}
}
