package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// HelpBindings returns the help.KeyMap for the current tab and focus,
// providing context-aware help bar content. An open notice overrides all.
func HelpBindings(tab Tab, focus Focus, noticeOpen bool) help.KeyMap {
	if noticeOpen {
		return NoticeKeyMap()
	}
	switch tab {
	case TabContacts:
		if focus == FocusForm {
			return FormKeyMap()
		}
		return ListKeyMap()
	case TabTrack:
		return TrackKeyMap()
	default:
		km := TrackKeyMap()
		km.TrackMe = key.NewBinding(key.WithDisabled())
		km.Destination = key.NewBinding(key.WithDisabled())
		return km
	}
}
