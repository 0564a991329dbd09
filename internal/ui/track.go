package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/safecircle/internal/session"
	"github.com/smileynet/safecircle/internal/tracker"
)

// trackState holds the destination entry box for the track pane.
type trackState struct {
	entering bool
	input    textinput.Model
}

func newTrackState() trackState {
	ti := textinput.New()
	ti.Placeholder = "lat, lon"
	ti.Prompt = "Destination: "
	ti.CharLimit = 40
	return trackState{input: ti}
}

// Update handles keys for the track pane. Location errors are reported
// through notify.
func (ts trackState) Update(msg tea.KeyMsg, tr *tracker.Tracker, notify session.Notifier) (trackState, tea.Cmd) {
	if ts.entering {
		return ts.handleEntryKey(msg, tr, notify)
	}

	switch msg.String() {
	case "t":
		if _, err := tr.TrackMe(context.Background()); err != nil {
			title := "Location error"
			if errors.Is(err, tracker.ErrPermissionDenied) {
				title = "Permission Denied"
			}
			notify.Notify(session.Notice{Kind: session.NoticeDenied, Title: title, Message: locationMessage(tr, err)})
		}
		return ts, nil

	case "d":
		ts.entering = true
		ts.input.SetValue("")
		return ts, ts.input.Focus()
	}
	return ts, nil
}

func (ts trackState) handleEntryKey(msg tea.KeyMsg, tr *tracker.Tracker, notify session.Notifier) (trackState, tea.Cmd) {
	switch msg.String() {
	case "enter":
		pos, err := ParsePosition(ts.input.Value())
		if err != nil {
			notify.Notify(session.Notice{Kind: session.NoticeInvalid, Title: "Error", Message: err.Error()})
			return ts, nil
		}
		tr.SetDestination(pos)
		ts.entering = false
		ts.input.Blur()
		return ts, nil

	case "esc":
		ts.entering = false
		ts.input.Blur()
		return ts, nil
	}

	var cmd tea.Cmd
	ts.input, cmd = ts.input.Update(msg)
	return ts, cmd
}

func locationMessage(tr *tracker.Tracker, err error) string {
	if msg := tr.ErrorMessage(); msg != "" {
		return msg
	}
	return err.Error()
}

// ParsePosition parses "lat, lon" into a Position.
func ParsePosition(s string) (tracker.Position, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return tracker.Position{}, errors.New("enter coordinates as \"lat, lon\"")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || lat < -90 || lat > 90 {
		return tracker.Position{}, errors.New("latitude must be a number between -90 and 90")
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || lon < -180 || lon > 180 {
		return tracker.Position{}, errors.New("longitude must be a number between -180 and 180")
	}
	return tracker.Position{Latitude: lat, Longitude: lon}, nil
}

// View renders the map summary.
func (ts trackState) View(tr *tracker.Tracker) string {
	var b strings.Builder
	b.WriteString(titleText.Render("Live Location"))
	b.WriteString("\n\n")

	region := tr.Region()
	fmt.Fprintf(&b, "  Map centre:   %s  (span %.4f × %.4f)\n", region.Center, region.LatDelta, region.LonDelta)
	if pos, ok := tr.Current(); ok {
		fmt.Fprintf(&b, "  You are here: %s\n", pos)
	} else {
		b.WriteString(mutedText.Render("  You are here: unknown, press t to track") + "\n")
	}
	if dest, ok := tr.Destination(); ok {
		fmt.Fprintf(&b, "  Destination:  %s\n", dest)
	}
	if msg := tr.ErrorMessage(); msg != "" {
		b.WriteString("\n  " + errorText.Render(msg) + "\n")
	}
	if ts.entering {
		b.WriteString("\n  " + ts.input.View() + "\n")
	}
	return b.String()
}
