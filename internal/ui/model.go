package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/safecircle/internal/session"
	"github.com/smileynet/safecircle/internal/tracker"
)

// chromeHeight is the number of lines used by the tab bar and help bar.
const chromeHeight = 3

// Model is the root Bubble Tea model for the safecircle TUI.
// It routes keys by tab and, while a notice is open, accepts nothing but
// the acknowledgment.
type Model struct {
	tab      Tab
	width    int
	height   int
	session  *session.Session
	notices  *NoticeQueue
	tracker  *tracker.Tracker
	profile  ProfileInfo
	contacts contactsState
	track    trackState
	help     help.Model
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithTracker sets the tracker behind the track pane.
func WithTracker(tr *tracker.Tracker) ModelOption {
	return func(m *Model) { m.tracker = tr }
}

// WithProfile sets the profile pane content.
func WithProfile(p ProfileInfo) ModelOption {
	return func(m *Model) { m.profile = p }
}

// WithStartTab selects the tab shown first.
func WithStartTab(t Tab) ModelOption {
	return func(m *Model) { m.tab = t }
}

// NewModel creates a Model over sess. notices must be the Notifier the
// session was built with, so that session notices reach the screen.
func NewModel(sess *session.Session, notices *NoticeQueue, opts ...ModelOption) Model {
	m := Model{
		tab:      TabContacts,
		session:  sess,
		notices:  notices,
		tracker:  tracker.New(tracker.StaticLocator{}, tracker.Position{}),
		contacts: newContactsState(),
		track:    newTrackState(),
		help:     help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the initial locate for the track pane.
func (m Model) Init() tea.Cmd {
	return locateCmd(m.tracker)
}

// locateCmd queries the locator off the update loop; the result is applied
// in Update.
func locateCmd(tr *tracker.Tracker) tea.Cmd {
	return func() tea.Msg {
		pos, err := tr.Locate(context.Background())
		return locatedMsg{pos: pos, err: err}
	}
}

// Update handles incoming messages with tab-based routing.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case locatedMsg:
		m.tracker.ApplyInitial(msg.pos, msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey processes key messages: notice acknowledgment first, then
// global keys, then the active tab.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.notices.Len() > 0 {
		switch msg.String() {
		case "enter", "esc", " ":
			m.notices.Ack()
		}
		return m, nil
	}

	if !m.typing() {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "1":
			m.tab = TabTrack
			return m, nil
		case "2":
			m.tab = TabContacts
			return m, nil
		case "3":
			m.tab = TabProfile
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.tab {
	case TabContacts:
		m.contacts, cmd = m.contacts.Update(msg, m.session)
	case TabTrack:
		m.track, cmd = m.track.Update(msg, m.tracker, m.notices)
	}
	return m, cmd
}

// typing reports whether keys currently go to a text input.
func (m Model) typing() bool {
	switch m.tab {
	case TabContacts:
		return m.contacts.focus == FocusForm
	case TabTrack:
		return m.track.entering
	}
	return false
}

// bodyHeight returns the usable height for pane content.
func (m Model) bodyHeight() int {
	h := m.height - chromeHeight
	if h < 1 {
		return 1
	}
	return h
}

// View renders the tab bar, the active pane (or an open notice), and the
// help bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var body string
	n, open := m.notices.Peek()
	switch {
	case open:
		body = viewNotice(n, m.width, m.bodyHeight())
	case m.tab == TabContacts:
		body = m.contacts.View(m.width, m.bodyHeight(), m.session.Snapshot())
	case m.tab == TabTrack:
		body = m.track.View(m.tracker)
	default:
		body = viewProfile(m.profile)
	}

	helpView := m.help.View(HelpBindings(m.tab, m.contacts.focus, open))
	return lipgloss.JoinVertical(lipgloss.Left, m.viewTabs(), body, helpView)
}

func (m Model) viewTabs() string {
	parts := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		label := string(rune('1'+i)) + " " + name
		if Tab(i) == m.tab {
			parts = append(parts, activeTab.Render(label))
		} else {
			parts = append(parts, idleTab.Render(label))
		}
	}
	return strings.Join(parts, "   ") + "\n"
}
