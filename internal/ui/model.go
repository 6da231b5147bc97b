package ui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"glint/internal/config"
	"glint/internal/domain"
	"glint/internal/eventbus"
	"glint/internal/ranking"
	"glint/internal/session"
)

// keyMap defines the overlay key bindings
type keyMap struct {
	ToggleMode key.Binding
	Up         key.Binding
	Down       key.Binding
	Commit     key.Binding
	Reveal     key.Binding
	Preview    key.Binding
	Rescan     key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ToggleMode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch mode"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "next"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Reveal: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "reveal"),
		),
		Preview: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "full text"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "rescan apps"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "dismiss"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleMode, k.Up, k.Down, k.Commit, k.Reveal, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ToggleMode, k.Up, k.Down},
		{k.Commit, k.Reveal, k.Preview, k.Rescan, k.Quit},
	}
}

// Model is the overlay's Bubble Tea model. It owns the session and is the
// only goroutine that mutates it: async bus events arrive as eventMsg and
// are applied inside Update.
type Model struct {
	session *session.Session
	bus     eventbus.EventBus
	cfg     *config.Config

	input  textinput.Model
	help   help.Model
	keys   keyMap
	styles *Styles

	width  int
	height int

	scanning    bool
	appCount    int
	committed   bool
	inPagerMode bool // tracks if we're currently in pager mode

	preview *PreviewOps
	program *tea.Program

	eventChan <-chan eventbus.DomainEvent
}

// NewModel creates the overlay model
func NewModel(sess *session.Session, bus eventbus.EventBus, cfg *config.Config, eventChan <-chan eventbus.DomainEvent) *Model {
	ti := textinput.New()
	ti.Placeholder = "Type to search…"
	ti.Prompt = "❯ "
	ti.Focus()

	m := &Model{
		session:   sess,
		bus:       bus,
		cfg:       cfg,
		input:     ti,
		help:      help.New(),
		keys:      defaultKeyMap(),
		styles:    NewStyles(),
		preview:   NewPreviewOps(),
		eventChan: eventChan,
	}

	// The commit callback is the completion signal: the host hides the
	// overlay by quitting the program.
	sess.SetObservers(session.Observers{
		OnCommit: func(domain.Mode, domain.Candidate) {
			m.committed = true
		},
	})

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.preview.SetProgram(p)
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForEvent())
}

// waitForEvent blocks on the bus-fed channel and hands the next event to
// Update.
func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		e, ok := <-m.eventChan
		if !ok {
			return nil
		}
		return eventMsg{event: e}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - 8
		return m, nil

	case eventMsg:
		m.applyEvent(msg.event)
		return m, m.waitForEvent()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case previewPagerMsg:
		if msg.err != nil {
			log.Printf("Preview pager error: %v", msg.err)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// applyEvent folds an async bus event into the session
func (m *Model) applyEvent(e eventbus.DomainEvent) {
	switch ev := e.(type) {
	case eventbus.AppIndexUpdatedEvent:
		m.session.SetApps(ev.Apps)
		m.appCount = len(ev.Apps)
	case eventbus.ClipboardChangedEvent:
		m.session.IngestClipboard(ev.Text)
	case eventbus.IndexScanStartedEvent:
		m.scanning = true
	case eventbus.IndexScanCompletedEvent:
		m.scanning = false
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.ToggleMode):
		m.session.ToggleMode()
		m.input.SetValue("")
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.session.SelectPrevious()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.session.SelectNext()
		return m, nil

	case key.Matches(msg, m.keys.Commit):
		m.session.CommitSelection()
		if m.committed {
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.keys.Reveal):
		m.session.RevealSelection()
		if m.committed {
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.keys.Preview):
		if cand, ok := m.session.Selected(); ok {
			if clip, ok := cand.(domain.ClipboardCandidate); ok {
				return m, m.fetchPreviewPager(clip.Text)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Rescan):
		m.bus.Publish(eventbus.IndexScanRequestedEvent{Roots: m.cfg.AppDirs})
		return m, nil
	}

	// Everything else edits the query.
	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.session.SetQuery(after)
	}
	return m, cmd
}

// fetchPreviewPager shows a clipboard entry's full text in the external
// pager, pausing our own rendering while it owns the terminal.
func (m *Model) fetchPreviewPager(content string) tea.Cmd {
	return func() tea.Msg {
		if m.program != nil {
			m.program.Send(pauseRenderingMsg{})
		}
		err := m.preview.ShowInPager(content)
		if m.program != nil {
			m.program.Send(resumeRenderingMsg{})
		}
		return previewPagerMsg{err: err}
	}
}

// View implements tea.Model
func (m *Model) View() string {
	// Don't render anything while the pager owns the terminal
	if m.inPagerMode {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderResults())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))

	return m.styles.Main.Render(b.String())
}

func (m *Model) renderHeader() string {
	title := m.styles.Title.Render("glint")

	var tabs []string
	for _, mode := range []domain.Mode{domain.ModeApps, domain.ModeClipboard} {
		if mode == m.session.Mode() {
			tabs = append(tabs, m.styles.TabActive.Render(mode.String()))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(mode.String()))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", strings.Join(tabs, " "))
}

func (m *Model) renderResults() string {
	results := m.session.Results()
	if len(results) == 0 {
		if m.session.Query() == "" {
			if m.session.Mode() == domain.ModeClipboard {
				return m.styles.Empty.Render("Clipboard history is empty.")
			}
			return m.styles.Empty.Render("No applications indexed yet.")
		}
		return m.styles.Empty.Render("No matches.")
	}

	selected := m.session.SelectedIndex()
	visible := m.cfg.UISettings.MaxVisibleResults

	// Keep the cursor inside the visible window.
	start := 0
	if selected >= visible {
		start = selected - visible + 1
	}
	end := start + visible
	if end > len(results) {
		end = len(results)
	}

	var rows []string
	for i := start; i < end; i++ {
		label := results[i].DisplayLabel()
		if m.cfg.UISettings.ShowScores && m.session.Query() != "" {
			score := ranking.Score(m.session.Query(), results[i].MatchKey())
			label = fmt.Sprintf("%s %s", label, m.styles.Score.Render(fmt.Sprintf("(%d)", score)))
		}
		if i == selected {
			rows = append(rows, m.styles.ResultCursor.Render("▸ "+label))
		} else {
			rows = append(rows, m.styles.Result.Render(label))
		}
	}

	if end < len(results) {
		rows = append(rows, m.styles.Dim.Render(fmt.Sprintf("  … %d more", len(results)-end)))
	}

	return strings.Join(rows, "\n")
}

func (m *Model) renderStatus() string {
	if m.scanning {
		return m.styles.Status.Render("Scanning applications…")
	}

	switch m.session.Mode() {
	case domain.ModeClipboard:
		return m.styles.Status.Render(fmt.Sprintf("%d clipboard entries", len(m.session.Results())))
	default:
		return m.styles.Status.Render(fmt.Sprintf("%d applications indexed", m.appCount))
	}
}
