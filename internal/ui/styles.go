package ui

import "github.com/charmbracelet/lipgloss"

// CursorMarker is the prefix shown on the selected contact row.
const CursorMarker = "▸ "

// ProtectedBadge marks the reserved emergency entry.
const ProtectedBadge = "SOS"

var (
	accentColor = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	dimColor    = lipgloss.AdaptiveColor{Light: "240", Dark: "245"}
	dangerColor = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}
	okColor     = lipgloss.AdaptiveColor{Light: "2", Dark: "10"}

	mutedText  = lipgloss.NewStyle().Foreground(dimColor)
	titleText  = lipgloss.NewStyle().Bold(true)
	errorText  = lipgloss.NewStyle().Foreground(dangerColor)
	activeTab  = lipgloss.NewStyle().Bold(true).Foreground(accentColor).Underline(true)
	idleTab    = lipgloss.NewStyle().Foreground(dimColor)
	badgeStyle = lipgloss.NewStyle().Bold(true).Foreground(dangerColor)
)

// FocusedBorder returns a lipgloss style with an accent-colored rounded border.
func FocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(0, 1)
}

// UnfocusedBorder returns a lipgloss style with a dim rounded border.
func UnfocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "240", Dark: "240"}).
		Padding(0, 1)
}

// NoticeBorder returns the modal border for a notice of the given kind.
// Denials and validation errors are drawn in red, confirmations in green.
func NoticeBorder(danger bool) lipgloss.Style {
	color := okColor
	if danger {
		color = dangerColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(color).
		Padding(1, 3)
}

// Badge renders the protected-entry badge.
func Badge() string {
	return badgeStyle.Render(ProtectedBadge)
}

// PaneWidths splits the contacts pane between list and form.
// The list gets 1/2 (minimum MinListWidth), the form the rest.
func PaneWidths(totalWidth int) (list, form int) {
	if totalWidth <= 0 {
		return 0, 0
	}
	list = totalWidth / 2
	if list < MinListWidth {
		list = MinListWidth
	}
	form = totalWidth - list
	if form < 0 {
		form = 0
	}
	return list, form
}

// MinListWidth is the minimum character width for the contact list.
const MinListWidth = 30
