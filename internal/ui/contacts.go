package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/safecircle/internal/form"
	"github.com/smileynet/safecircle/internal/session"
)

// contactsState manages the contact list cursor and the entry form inputs
// for the contacts pane. The roster and form buffers live in the session;
// the inputs mirror the buffers and push every change back as an intent.
type contactsState struct {
	cursor int
	focus  Focus
	field  int
	inputs [fieldCount]textinput.Model
}

func newContactsState() contactsState {
	var cs contactsState
	for i, label := range [fieldCount]string{"Name", "Phone Number", "Email (optional)"} {
		ti := textinput.New()
		ti.Placeholder = label
		ti.Prompt = ""
		ti.CharLimit = 64
		cs.inputs[i] = ti
	}
	return cs
}

// Update routes a key to the list or the form.
func (cs contactsState) Update(msg tea.KeyMsg, sess *session.Session) (contactsState, tea.Cmd) {
	if cs.focus == FocusForm {
		return cs.handleFormKey(msg, sess)
	}
	return cs.handleListKey(msg, sess)
}

func (cs contactsState) handleListKey(msg tea.KeyMsg, sess *session.Session) (contactsState, tea.Cmd) {
	n := sess.Roster().Len()

	switch msg.String() {
	case "up", "k":
		cs.cursor--
		if cs.cursor < 0 {
			cs.cursor = n - 1
		}
		return cs, nil

	case "down", "j":
		cs.cursor++
		if cs.cursor >= n {
			cs.cursor = 0
		}
		return cs, nil

	case "a":
		sess.AddRequested()
		cs = cs.loadForm(sess.Snapshot().Form)
		return cs.focusForm()

	case "e", "enter":
		if err := sess.EditRequested(cs.cursor); err != nil {
			return cs, nil
		}
		cs = cs.loadForm(sess.Snapshot().Form)
		return cs.focusForm()

	case "x", "delete":
		before := sess.Snapshot().Form.Mode
		if err := sess.RemoveRequested(cs.cursor); err != nil {
			return cs, nil
		}
		if after := sess.Snapshot().Form; after.Mode != before {
			cs = cs.loadForm(after)
		}
		cs.clamp(sess.Roster().Len())
		return cs, nil

	case "tab":
		return cs.focusForm()
	}

	return cs, nil
}

func (cs contactsState) handleFormKey(msg tea.KeyMsg, sess *session.Session) (contactsState, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return cs.moveField(1)

	case "shift+tab", "up":
		return cs.moveField(-1)

	case "enter":
		editing, isEdit := sess.Snapshot().Form.Mode.(form.Editing)
		if err := sess.SubmitPressed(); err != nil {
			return cs, nil
		}
		cs = cs.loadForm(sess.Snapshot().Form)
		if isEdit {
			cs.cursor = editing.Index
		} else {
			cs.cursor = sess.Roster().Len() - 1
		}
		return cs.focusList(), nil

	case "esc":
		if _, ok := sess.Snapshot().Form.Mode.(form.Editing); ok {
			sess.AddRequested()
			cs = cs.loadForm(sess.Snapshot().Form)
		}
		return cs.focusList(), nil
	}

	var cmd tea.Cmd
	cs.inputs[cs.field], cmd = cs.inputs[cs.field].Update(msg)
	value := cs.inputs[cs.field].Value()
	switch cs.field {
	case fieldName:
		sess.NameChanged(value)
	case fieldPhone:
		sess.PhoneChanged(value)
	case fieldEmail:
		sess.EmailChanged(value)
	}
	return cs, cmd
}

// loadForm copies the session's form buffers into the inputs.
func (cs contactsState) loadForm(fs form.State) contactsState {
	cs.inputs[fieldName].SetValue(fs.Name)
	cs.inputs[fieldPhone].SetValue(fs.Phone)
	cs.inputs[fieldEmail].SetValue(fs.Email)
	return cs
}

func (cs contactsState) focusForm() (contactsState, tea.Cmd) {
	cs.focus = FocusForm
	cs.field = fieldName
	return cs.focusField()
}

func (cs contactsState) focusList() contactsState {
	cs.focus = FocusList
	for i := range cs.inputs {
		cs.inputs[i].Blur()
	}
	return cs
}

func (cs contactsState) moveField(delta int) (contactsState, tea.Cmd) {
	cs.field = (cs.field + delta + fieldCount) % fieldCount
	return cs.focusField()
}

func (cs contactsState) focusField() (contactsState, tea.Cmd) {
	var cmd tea.Cmd
	for i := range cs.inputs {
		if i == cs.field {
			cmd = cs.inputs[i].Focus()
		} else {
			cs.inputs[i].Blur()
		}
	}
	return cs, cmd
}

func (cs *contactsState) clamp(n int) {
	if cs.cursor >= n {
		cs.cursor = n - 1
	}
	if cs.cursor < 0 {
		cs.cursor = 0
	}
}

// View renders the list and form side by side.
func (cs contactsState) View(width, height int, snap session.Snapshot) string {
	listWidth, formWidth := PaneWidths(width)

	listStyle, formStyle := FocusedBorder(), UnfocusedBorder()
	if cs.focus == FocusForm {
		listStyle, formStyle = UnfocusedBorder(), FocusedBorder()
	}
	if listWidth > 4 {
		listStyle = listStyle.Width(listWidth - 4)
	}
	if formWidth > 4 {
		formStyle = formStyle.Width(formWidth - 4)
	}
	if height > 2 {
		listStyle = listStyle.Height(height - 2)
		formStyle = formStyle.Height(height - 2)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		listStyle.Render(cs.viewList(snap)),
		formStyle.Render(cs.viewForm(snap.Form)),
	)
}

func (cs contactsState) viewList(snap session.Snapshot) string {
	editIdx := -1
	if e, ok := snap.Form.Mode.(form.Editing); ok {
		editIdx = e.Index
	}

	var b strings.Builder
	b.WriteString(titleText.Render("Safety Contacts"))
	b.WriteString("\n")
	b.WriteString(mutedText.Render("Your Trusted Circle"))
	b.WriteString("\n\n")
	for i, c := range snap.Contacts {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i == cs.cursor {
			b.WriteString(CursorMarker)
		} else {
			b.WriteString("  ")
		}
		line := fmt.Sprintf("%s  %s", c.DisplayName, c.PhoneNumber)
		if c.Protected {
			line += " " + Badge()
		}
		if i == editIdx {
			line += mutedText.Render(" (editing)")
		}
		b.WriteString(line)
		if c.Email != "" {
			b.WriteString("\n    " + mutedText.Render(c.Email))
		}
	}
	return b.String()
}

func (cs contactsState) viewForm(fs form.State) string {
	var b strings.Builder
	switch m := fs.Mode.(type) {
	case form.Editing:
		b.WriteString(titleText.Render(fmt.Sprintf("Edit contact #%d", m.Index)))
	default:
		b.WriteString(titleText.Render("Add contact"))
	}
	b.WriteString("\n\n")
	for i := range cs.inputs {
		marker := "  "
		if cs.focus == FocusForm && i == cs.field {
			marker = CursorMarker
		}
		fmt.Fprintf(&b, "%s%s\n\n", marker, cs.inputs[i].View())
	}
	return b.String()
}
