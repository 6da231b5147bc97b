package session

import (
	"log"

	"glint/internal/action"
	"glint/internal/domain"
	"glint/internal/history"
	"glint/internal/ranking"
)

// DefaultUnfilteredLimit caps how many apps are listed when the query is
// empty. Clipboard mode always shows the whole history.
const DefaultUnfilteredLimit = 10

// Observers are explicit change notifications for a presentation layer.
// Any field may be nil. OnCommit doubles as the completion signal: it only
// fires after a selection was actually dispatched, so the host can hide
// the overlay.
type Observers struct {
	OnQueryChanged     func(query string)
	OnModeChanged      func(mode domain.Mode)
	OnResultsChanged   func(results []domain.Candidate)
	OnSelectionChanged func(index int)
	OnCommit           func(mode domain.Mode, committed domain.Candidate)
}

// Session ties query, mode, results and the selection cursor together.
// Every mutation re-derives results from the active corpus and clamps the
// cursor. All methods must be called from one goroutine (the UI update
// loop); the session does no locking of its own.
type Session struct {
	mode     domain.Mode
	query    string
	results  []domain.Candidate
	selected int

	apps      []domain.AppCandidate
	history   *history.Store
	executor  action.Executor
	limit     int
	observers Observers
}

// New creates a session in Apps mode with an empty query. The history
// store is borrowed: the session only ever reads snapshots from it.
func New(hist *history.Store, exec action.Executor, unfilteredLimit int) *Session {
	if unfilteredLimit <= 0 {
		unfilteredLimit = DefaultUnfilteredLimit
	}
	return &Session{
		mode:     domain.ModeApps,
		history:  hist,
		executor: exec,
		limit:    unfilteredLimit,
	}
}

// SetObservers installs the presentation callbacks.
func (s *Session) SetObservers(obs Observers) {
	s.observers = obs
}

// Query returns the current query text.
func (s *Session) Query() string { return s.query }

// Mode returns the active mode.
func (s *Session) Mode() domain.Mode { return s.mode }

// Results returns the current ordered result list.
func (s *Session) Results() []domain.Candidate { return s.results }

// SelectedIndex returns the selection cursor. It is 0 when results are
// empty.
func (s *Session) SelectedIndex() int { return s.selected }

// Selected returns the candidate under the cursor, if any.
func (s *Session) Selected() (domain.Candidate, bool) {
	if s.selected >= len(s.results) {
		return nil, false
	}
	return s.results[s.selected], true
}

// SetQuery replaces the query and recomputes results from the active
// corpus.
func (s *Session) SetQuery(query string) {
	s.query = query
	if s.observers.OnQueryChanged != nil {
		s.observers.OnQueryChanged(query)
	}
	s.recompute()
}

// SetMode switches the active corpus. The query is always cleared.
func (s *Session) SetMode(mode domain.Mode) {
	s.mode = mode
	s.query = ""
	if s.observers.OnModeChanged != nil {
		s.observers.OnModeChanged(mode)
	}
	if s.observers.OnQueryChanged != nil {
		s.observers.OnQueryChanged("")
	}
	s.recompute()
}

// ToggleMode switches to the other mode.
func (s *Session) ToggleMode() {
	s.SetMode(s.mode.Other())
}

// SetApps replaces the application corpus wholesale and recomputes with
// the current query and mode. Entries without a name or path were already
// filtered by the provider, but are skipped here as well.
func (s *Session) SetApps(apps []domain.AppCandidate) {
	kept := make([]domain.AppCandidate, 0, len(apps))
	for _, a := range apps {
		if a.Name == "" || a.Path == "" {
			continue
		}
		kept = append(kept, a)
	}
	s.apps = kept
	s.recompute()
}

// IngestClipboard feeds new clipboard text into the history and
// recomputes. The store applies its own trim/dedup policy.
func (s *Session) IngestClipboard(text string) {
	s.history.Ingest(text)
	s.recompute()
}

// SelectNext advances the cursor, wrapping past the end. No-op on empty
// results.
func (s *Session) SelectNext() {
	if len(s.results) == 0 {
		return
	}
	s.selected = (s.selected + 1) % len(s.results)
	if s.observers.OnSelectionChanged != nil {
		s.observers.OnSelectionChanged(s.selected)
	}
}

// SelectPrevious moves the cursor back, wrapping before the start. No-op
// on empty results.
func (s *Session) SelectPrevious() {
	if len(s.results) == 0 {
		return
	}
	s.selected = (s.selected - 1 + len(s.results)) % len(s.results)
	if s.observers.OnSelectionChanged != nil {
		s.observers.OnSelectionChanged(s.selected)
	}
}

// CommitSelection dispatches the selected candidate: apps launch,
// clipboard entries are copied and a paste keystroke is injected. The
// completion signal fires only when something was dispatched.
func (s *Session) CommitSelection() {
	candidate, ok := s.Selected()
	if !ok {
		return
	}

	switch c := candidate.(type) {
	case domain.AppCandidate:
		log.Printf("Launching %s (%s)", c.Name, c.Path)
		s.executor.Launch(c.Path)
	case domain.ClipboardCandidate:
		s.executor.SetClipboard(s.history.CopyOut(c))
		s.executor.SimulatePaste()
	default:
		return
	}

	if s.observers.OnCommit != nil {
		s.observers.OnCommit(s.mode, candidate)
	}
}

// RevealSelection shows the selected application in the file manager
// instead of launching it. No-op outside Apps mode or on empty results.
func (s *Session) RevealSelection() {
	candidate, ok := s.Selected()
	if !ok {
		return
	}
	app, ok := candidate.(domain.AppCandidate)
	if !ok {
		return
	}

	log.Printf("Revealing %s (%s)", app.Name, app.Path)
	s.executor.Reveal(app.Path)

	if s.observers.OnCommit != nil {
		s.observers.OnCommit(s.mode, candidate)
	}
}

// recompute re-derives results from the active corpus and resets the
// cursor. With an empty query Apps mode lists the first few corpus
// entries in their existing order and Clipboard mode lists the whole
// history; with a non-empty query candidates are ranked and zero scores
// are dropped.
func (s *Session) recompute() {
	corpus := s.activeCorpus()

	if s.query == "" {
		if s.mode == domain.ModeApps && len(corpus) > s.limit {
			corpus = corpus[:s.limit]
		}
		s.results = corpus
	} else {
		scored := ranking.Rank(s.query, corpus)
		results := make([]domain.Candidate, len(scored))
		for i, sc := range scored {
			results[i] = sc.Candidate
		}
		s.results = results
	}

	s.selected = 0
	if s.observers.OnResultsChanged != nil {
		s.observers.OnResultsChanged(s.results)
	}
	if s.observers.OnSelectionChanged != nil {
		s.observers.OnSelectionChanged(s.selected)
	}
}

func (s *Session) activeCorpus() []domain.Candidate {
	switch s.mode {
	case domain.ModeClipboard:
		snap := s.history.Snapshot()
		corpus := make([]domain.Candidate, len(snap))
		for i, c := range snap {
			corpus[i] = c
		}
		return corpus
	default:
		corpus := make([]domain.Candidate, len(s.apps))
		for i, a := range s.apps {
			corpus[i] = a
		}
		return corpus
	}
}
