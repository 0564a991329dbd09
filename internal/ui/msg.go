// Package ui implements the safecircle terminal UI: a tabbed Bubble Tea
// program with track, contacts and profile panes. Separate from
// internal/console, which serves non-terminal output.
package ui

import (
	"github.com/smileynet/safecircle/internal/session"
	"github.com/smileynet/safecircle/internal/tracker"
)

// Tab is the pane currently shown.
type Tab int

const (
	TabTrack    Tab = iota // Location tracking.
	TabContacts            // Emergency contact roster and entry form.
	TabProfile             // Static profile page.
)

var tabNames = [...]string{"Track", "Contacts", "Profile"}

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "?"
	}
	return tabNames[t]
}

// Focus is which part of the contacts pane receives keys.
type Focus int

const (
	FocusList Focus = iota // Contact list has focus.
	FocusForm              // Entry form has focus.
)

// Form field indices.
const (
	fieldName = iota
	fieldPhone
	fieldEmail
	fieldCount
)

// locatedMsg carries the result of the locate done when the program starts.
type locatedMsg struct {
	pos tracker.Position
	err error
}

// ProfileInfo is the static content of the profile pane.
type ProfileInfo struct {
	Name  string
	Phone string
}

// NoticeQueue buffers notices emitted by a session until the model shows
// them. It implements session.Notifier and is confined to the Bubble Tea
// update loop.
type NoticeQueue struct {
	pending []session.Notice
}

// NewNoticeQueue returns an empty queue.
func NewNoticeQueue() *NoticeQueue {
	return &NoticeQueue{}
}

// Notify enqueues n.
func (q *NoticeQueue) Notify(n session.Notice) {
	q.pending = append(q.pending, n)
}

// Len returns the number of unacknowledged notices.
func (q *NoticeQueue) Len() int {
	return len(q.pending)
}

// Peek returns the oldest notice.
func (q *NoticeQueue) Peek() (session.Notice, bool) {
	if len(q.pending) == 0 {
		return session.Notice{}, false
	}
	return q.pending[0], true
}

// Ack drops the oldest notice.
func (q *NoticeQueue) Ack() {
	if len(q.pending) > 0 {
		q.pending = q.pending[1:]
	}
}

var _ session.Notifier = (*NoticeQueue)(nil)
