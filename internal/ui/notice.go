package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/safecircle/internal/session"
)

// viewNotice renders a notice as a centred modal. Nothing else is drawn
// while it is open; the user must acknowledge it first.
func viewNotice(n session.Notice, width, height int) string {
	danger := n.Kind == session.NoticeDenied || n.Kind == session.NoticeInvalid

	var b strings.Builder
	b.WriteString(titleText.Render(n.Title))
	b.WriteString("\n\n")
	b.WriteString(n.Message)
	b.WriteString("\n\n")
	b.WriteString(mutedText.Render("[Enter] OK"))

	box := NoticeBorder(danger).Render(b.String())
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
