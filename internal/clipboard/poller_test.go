package clipboard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glint/internal/eventbus"
)

// pollerHarness drives a Poller with a manual tick channel and a scripted
// clipboard, collecting published events.
type pollerHarness struct {
	mu      sync.Mutex
	content string
	readErr error

	ticks  chan time.Time
	events chan eventbus.ClipboardChangedEvent
	done   chan struct{}
	cancel context.CancelFunc
}

func newPollerHarness(t *testing.T, initial string) *pollerHarness {
	t.Helper()

	h := &pollerHarness{
		ticks:   make(chan time.Time),
		content: initial,
		events:  make(chan eventbus.ClipboardChangedEvent, 16),
		done:    make(chan struct{}),
	}

	bus := eventbus.New()
	bus.Subscribe(eventbus.EventClipboardChanged, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ClipboardChangedEvent); ok {
			h.events <- ev
		}
	})

	p := NewPoller(bus, DefaultInterval)
	p.SetReadFunc(func() (string, error) {
		h.mu.Lock()
		defer h.mu.Unlock()
		return h.content, h.readErr
	})

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	t.Cleanup(cancel)
	go func() {
		defer close(h.done)
		p.Run(ctx, h.ticks)
	}()

	return h
}

func (h *pollerHarness) set(content string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.content = content
	h.readErr = err
}

func (h *pollerHarness) tick() {
	h.ticks <- time.Now()
}

func (h *pollerHarness) expectEvent(t *testing.T, text string) {
	t.Helper()
	select {
	case ev := <-h.events:
		assert.Equal(t, text, ev.Text)
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for clipboard event %q", text)
	}
}

func (h *pollerHarness) expectNoEvent(t *testing.T) {
	t.Helper()
	select {
	case ev := <-h.events:
		t.Fatalf("unexpected clipboard event %q", ev.Text)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPollerEmitsOnChange(t *testing.T) {
	h := newPollerHarness(t, "")

	h.set("copied text", nil)
	h.tick()
	h.expectEvent(t, "copied text")
}

func TestPollerDoesNotEmitPreexistingContent(t *testing.T) {
	h := newPollerHarness(t, "already there")

	h.tick()
	h.expectNoEvent(t)

	h.set("new content", nil)
	h.tick()
	h.expectEvent(t, "new content")
}

func TestPollerSkipsUnchangedContent(t *testing.T) {
	h := newPollerHarness(t, "")

	h.set("stable", nil)
	h.tick()
	h.expectEvent(t, "stable")

	h.tick()
	h.tick()
	h.expectNoEvent(t)
}

func TestPollerIgnoresWhitespaceOnlyContent(t *testing.T) {
	h := newPollerHarness(t, "something")

	h.set("   \n", nil)
	h.tick()
	h.expectNoEvent(t)

	// The blank value was still observed: returning to real content emits.
	h.set("back again", nil)
	h.tick()
	h.expectEvent(t, "back again")
}

func TestPollerIgnoresReadErrors(t *testing.T) {
	h := newPollerHarness(t, "")

	h.set("ignored", assert.AnError)
	h.tick()
	h.expectNoEvent(t)

	h.set("ignored", nil)
	h.tick()
	h.expectEvent(t, "ignored")
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	h := newPollerHarness(t, "")

	h.cancel()
	select {
	case <-h.done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop on context cancel")
	}

	// With Run stopped nothing receives ticks anymore.
	select {
	case h.ticks <- time.Now():
		t.Fatal("tick was consumed after shutdown")
	case <-time.After(50 * time.Millisecond):
	}
	require.Empty(t, h.events)
}
