package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/safecircle/internal/roster"
	"github.com/smileynet/safecircle/internal/session"
	"github.com/smileynet/safecircle/internal/tracker"
)

// stripANSI removes ANSI escape sequences from a string.
func stripANSI(s string) string {
	var out []byte
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 'A' || s[j] > 'Z') && (s[j] < 'a' || s[j] > 'z') {
				j++
			}
			if j < len(s) {
				j++
			}
			i = j
		} else {
			out = append(out, s[i])
			i++
		}
	}
	return string(out)
}

// containsPlainText checks if s contains sub after stripping ANSI escapes.
func containsPlainText(s, sub string) bool {
	return strings.Contains(stripANSI(s), sub)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func special(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// newTestModel returns a sized model on the contacts tab plus its session
// and notice queue.
func newTestModel(t *testing.T, opts ...ModelOption) (Model, *session.Session, *NoticeQueue) {
	t.Helper()
	q := NewNoticeQueue()
	sess := session.New(roster.DefaultSeed(), session.WithNotifier(q))
	opts = append([]ModelOption{
		WithTracker(tracker.New(tracker.StaticLocator{Granted: true, Fix: tracker.Position{Latitude: 28.6, Longitude: 77.2}},
			tracker.Position{Latitude: 37.78825, Longitude: -122.4324})),
		WithProfile(ProfileInfo{Name: "Tira Saha", Phone: "+91 9193226780"}),
	}, opts...)
	m := NewModel(sess, q, opts...)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, sess, q
}

// update sends msg and returns the resulting Model.
func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// typeText sends each rune of s as a separate key press.
func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = update(t, m, runes(string(r)))
	}
	return m
}
