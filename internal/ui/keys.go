package ui

import "github.com/charmbracelet/bubbles/key"

// listKeys holds key bindings for the contact list.
type listKeys struct {
	Up     key.Binding
	Down   key.Binding
	Add    key.Binding
	Edit   key.Binding
	Remove key.Binding
	Focus  key.Binding
	Tabs   key.Binding
	Quit   key.Binding
}

// ShortHelp returns the list bindings for the help bar.
func (k listKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Add, k.Edit, k.Remove, k.Focus, k.Tabs, k.Quit}
}

// FullHelp returns the list bindings grouped for expanded help.
func (k listKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Add, k.Edit, k.Remove},
		{k.Focus, k.Tabs, k.Quit},
	}
}

// formKeys holds key bindings for the entry form.
type formKeys struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Cancel key.Binding
}

// ShortHelp returns the form bindings for the help bar.
func (k formKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Submit, k.Cancel}
}

// FullHelp returns the form bindings grouped for expanded help.
func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev}, {k.Submit, k.Cancel}}
}

// trackKeys holds key bindings for the track pane.
type trackKeys struct {
	TrackMe     key.Binding
	Destination key.Binding
	Tabs        key.Binding
	Quit        key.Binding
}

// ShortHelp returns the track bindings for the help bar.
func (k trackKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.TrackMe, k.Destination, k.Tabs, k.Quit}
}

// FullHelp returns the track bindings grouped for expanded help.
func (k trackKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.TrackMe, k.Destination}, {k.Tabs, k.Quit}}
}

// noticeKeys holds the acknowledgment binding shown while a notice is open.
type noticeKeys struct {
	Ack key.Binding
}

// ShortHelp returns the notice bindings for the help bar.
func (k noticeKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Ack}
}

// FullHelp returns the notice bindings grouped for expanded help.
func (k noticeKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Ack}}
}

// ListKeyMap returns the key bindings for the contact list.
func ListKeyMap() listKeys {
	return listKeys{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "form"),
		),
		Tabs: key.NewBinding(
			key.WithKeys("1", "2", "3"),
			key.WithHelp("1-3", "switch tab"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// FormKeyMap returns the key bindings for the entry form.
func FormKeyMap() formKeys {
	return formKeys{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// TrackKeyMap returns the key bindings for the track pane.
func TrackKeyMap() trackKeys {
	return trackKeys{
		TrackMe: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "track me"),
		),
		Destination: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "set destination"),
		),
		Tabs: key.NewBinding(
			key.WithKeys("1", "2", "3"),
			key.WithHelp("1-3", "switch tab"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NoticeKeyMap returns the key bindings for an open notice.
func NoticeKeyMap() noticeKeys {
	return noticeKeys{
		Ack: key.NewBinding(
			key.WithKeys("enter", "esc", " "),
			key.WithHelp("enter", "ok"),
		),
	}
}
