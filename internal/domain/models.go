package domain

import (
	"strings"
	"time"
)

// Mode selects which corpus the session searches.
type Mode int

const (
	ModeApps Mode = iota
	ModeClipboard
)

func (m Mode) String() string {
	switch m {
	case ModeApps:
		return "Apps"
	case ModeClipboard:
		return "Clipboard"
	default:
		return "Unknown"
	}
}

// Other returns the opposite mode.
func (m Mode) Other() Mode {
	if m == ModeApps {
		return ModeClipboard
	}
	return ModeApps
}

// Candidate is a single searchable item. Callers switch on the concrete
// type (AppCandidate or ClipboardCandidate) when they need more than the
// match/display strings.
type Candidate interface {
	// MatchKey returns the text a query is scored against.
	MatchKey() string
	// DisplayLabel returns the text shown in the result list.
	DisplayLabel() string
}

// AppCandidate is an installed application. Identity is the path; the
// icon is kept as an opaque reference for the presentation layer to
// resolve.
type AppCandidate struct {
	Name    string
	Path    string
	IconRef string
}

func (a AppCandidate) MatchKey() string     { return a.Name }
func (a AppCandidate) DisplayLabel() string { return a.Name }

// ClipboardCandidate is one clipboard history entry. Identity is the
// insertion slot, not the content: the same text may reappear in the
// history at different slots.
type ClipboardCandidate struct {
	Text      string
	Timestamp time.Time
}

func (c ClipboardCandidate) MatchKey() string { return c.Text }

// DisplayLabel collapses the payload to its first line for list rendering.
func (c ClipboardCandidate) DisplayLabel() string {
	if i := strings.IndexAny(c.Text, "\r\n"); i >= 0 {
		return c.Text[:i] + " …"
	}
	return c.Text
}

// ScoredCandidate pairs a candidate with its ranking score. Only
// candidates that matched (score ≥ 1) are ever materialized.
type ScoredCandidate struct {
	Candidate Candidate
	Score     int
}
