package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventAppIndexUpdated    EventType = "AppIndexUpdated"
	EventIndexScanRequested EventType = "IndexScanRequested"
	EventIndexScanStarted   EventType = "IndexScanStarted"
	EventIndexScanCompleted EventType = "IndexScanCompleted"
	EventClipboardChanged   EventType = "ClipboardChanged"
	EventCommitPerformed    EventType = "CommitPerformed"
	EventError              EventType = "Error"
	EventConfigLoaded       EventType = "ConfigLoaded"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// AppIndexUpdatedEvent is emitted when a scan produced a full replacement
// snapshot of the installed-application corpus.
type AppIndexUpdatedEvent struct {
	Apps []AppCandidate
}

func (e AppIndexUpdatedEvent) Type() EventType { return EventAppIndexUpdated }

// IndexScanRequestedEvent asks the app index provider to rescan.
type IndexScanRequestedEvent struct {
	Roots []string
}

func (e IndexScanRequestedEvent) Type() EventType { return EventIndexScanRequested }

// IndexScanStartedEvent is emitted when an application scan begins.
type IndexScanStartedEvent struct {
	Roots []string
}

func (e IndexScanStartedEvent) Type() EventType { return EventIndexScanStarted }

// IndexScanCompletedEvent is emitted when an application scan finishes.
type IndexScanCompletedEvent struct {
	AppsFound int
}

func (e IndexScanCompletedEvent) Type() EventType { return EventIndexScanCompleted }

// ClipboardChangedEvent is emitted when the system clipboard holds new
// non-empty text that differs from the last observed value.
type ClipboardChangedEvent struct {
	Text string
}

func (e ClipboardChangedEvent) Type() EventType { return EventClipboardChanged }

// CommitPerformedEvent is emitted after a selection was committed, so the
// host can hide the overlay.
type CommitPerformedEvent struct {
	Mode  Mode
	Label string
}

func (e CommitPerformedEvent) Type() EventType { return EventCommitPerformed }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration has been loaded
type ConfigLoadedEvent struct {
	AppDirs []string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }
