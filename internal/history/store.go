package history

import (
	"strings"
	"time"

	"glint/internal/domain"
)

// DefaultCapacity is the number of clipboard entries retained before the
// oldest is evicted.
const DefaultCapacity = 50

// Store is a bounded, ordered, deduplicating buffer of clipboard entries,
// newest first. Ingest is the only mutation path; eviction of the oldest
// entry is the only way an entry is ever removed. All methods must be
// called from the session's goroutine.
type Store struct {
	entries  []domain.ClipboardCandidate
	capacity int
	now      func() time.Time
}

// NewStore creates a store with the given capacity. A zero or negative
// capacity falls back to DefaultCapacity.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		capacity: capacity,
		now:      time.Now,
	}
}

// SetClock overrides the timestamp source. Tests use this to avoid real
// time.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Ingest records text as the newest entry. Whitespace-only text is
// ignored, as is text equal to the current newest entry; dedup is
// adjacency-only, so a value reappearing later is stored again. When the
// buffer exceeds capacity the oldest entry is dropped.
func (s *Store) Ingest(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	if len(s.entries) > 0 && s.entries[0].Text == text {
		return
	}

	entry := domain.ClipboardCandidate{Text: text, Timestamp: s.now()}
	s.entries = append([]domain.ClipboardCandidate{entry}, s.entries...)
	if len(s.entries) > s.capacity {
		s.entries = s.entries[:s.capacity]
	}
}

// Snapshot returns a copy of the entries, newest first.
func (s *Store) Snapshot() []domain.ClipboardCandidate {
	out := make([]domain.ClipboardCandidate, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// CopyOut returns the text payload of a candidate for downstream use; the
// actual pasteboard write belongs to the action executor.
func (s *Store) CopyOut(c domain.ClipboardCandidate) string {
	return c.Text
}
