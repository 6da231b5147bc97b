package clipboard

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"glint/internal/eventbus"
)

// DefaultInterval is the clipboard poll cadence.
const DefaultInterval = 500 * time.Millisecond

// ReadFunc reads the current clipboard text. Swappable for tests.
type ReadFunc func() (string, error)

// Poller watches the system clipboard at a fixed interval and publishes a
// ClipboardChangedEvent whenever it holds new non-empty text. Ingestion
// into the history store happens on the session's goroutine, never here.
type Poller struct {
	bus      eventbus.EventBus
	read     ReadFunc
	interval time.Duration
	last     string
	primed   bool
}

// NewPoller creates a poller reading the real system clipboard.
func NewPoller(bus eventbus.EventBus, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		bus:      bus,
		read:     clipboard.ReadAll,
		interval: interval,
	}
}

// SetReadFunc overrides the clipboard reader. Tests use this to avoid the
// real pasteboard.
func (p *Poller) SetReadFunc(read ReadFunc) {
	p.read = read
}

// Run polls until the context is cancelled. If ticks is nil an internal
// ticker at the configured interval is used. Content already on the
// clipboard when polling starts is treated as observed, not as a change.
func (p *Poller) Run(ctx context.Context, ticks <-chan time.Time) {
	if ticks == nil {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	p.prime()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticks:
			p.poll()
		}
	}
}

// prime records the starting clipboard content without emitting an event.
func (p *Poller) prime() {
	if p.primed {
		return
	}
	p.primed = true
	text, err := p.read()
	if err != nil {
		log.Printf("Clipboard read failed while priming: %v", err)
		return
	}
	p.last = text
}

// poll performs one observation and publishes when the content changed.
func (p *Poller) poll() {
	text, err := p.read()
	if err != nil {
		// Non-text or unavailable clipboard content is ignored.
		return
	}
	if text == p.last {
		return
	}
	p.last = text

	if strings.TrimSpace(text) == "" {
		return
	}
	p.bus.Publish(eventbus.ClipboardChangedEvent{Text: text})
}
