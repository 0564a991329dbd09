package ui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

var profileMenu = []string{
	"Edit Profile",
	"Manage Guardians",
	"Ring Status",
	"Volunteer Community",
	"App Features",
	"Get Help",
}

var initialsStyle = lipgloss.NewStyle().
	Bold(true).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(accentColor).
	Padding(0, 2)

func viewProfile(p ProfileInfo) string {
	var b strings.Builder
	b.WriteString(titleText.Render("Profile"))
	b.WriteString("\n\n")
	b.WriteString(initialsStyle.Render(initials(p.Name)))
	b.WriteString("\n")
	b.WriteString(titleText.Render(p.Name) + "\n")
	b.WriteString(mutedText.Render(p.Phone) + "\n\n")
	for _, item := range profileMenu {
		b.WriteString("  " + item + "\n")
	}
	b.WriteString("\n  " + errorText.Render("LOG OUT"))
	return b.String()
}

// initials returns the upper-cased first letter of name, or "?".
func initials(name string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}
