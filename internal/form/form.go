// Package form implements the contact entry form: working input buffers and
// a create/edit mode that decides whether a submit appends or overwrites.
package form

import (
	"fmt"

	"github.com/smileynet/safecircle/internal/roster"
)

// Mode is the form's current mode: Creating or Editing.
type Mode interface {
	isMode()
	String() string
}

// Creating means a submit appends a new contact.
type Creating struct{}

// Editing means a submit overwrites the contact at Index. ID is the target's
// stable ID, used to follow it when earlier entries are removed.
type Editing struct {
	Index int
	ID    string
}

func (Creating) isMode() {}
func (Editing) isMode()  {}

func (Creating) String() string  { return "creating" }
func (e Editing) String() string { return fmt.Sprintf("editing(%d)", e.Index) }

// State is a snapshot of the form for rendering.
type State struct {
	Name  string
	Phone string
	Email string
	Mode  Mode
}

// Store is the subset of *roster.Roster the controller commits through.
type Store interface {
	Get(index int) (roster.Contact, error)
	IndexOf(id string) int
	Append(c roster.Contact) (roster.Contact, error)
	ReplaceByID(id string, c roster.Contact) (roster.Contact, error)
}

// Controller owns the form buffers and mode. It is driven from a single
// event loop and is not safe for concurrent use.
type Controller struct {
	store Store
	name  string
	phone string
	email string
	mode  Mode
}

// NewController returns a Controller in Creating mode with empty buffers.
func NewController(store Store) *Controller {
	return &Controller{store: store, mode: Creating{}}
}

// SetName updates the name buffer.
func (c *Controller) SetName(s string) { c.name = s }

// SetPhone updates the phone buffer.
func (c *Controller) SetPhone(s string) { c.phone = s }

// SetEmail updates the optional email buffer.
func (c *Controller) SetEmail(s string) { c.email = s }

// Mode returns the current mode.
func (c *Controller) Mode() Mode { return c.mode }

// State returns a snapshot of the buffers and mode.
func (c *Controller) State() State {
	return State{Name: c.name, Phone: c.phone, Email: c.email, Mode: c.mode}
}

// BeginEdit loads the contact at index into the buffers and switches to
// Editing. The protected entry cannot be edited.
func (c *Controller) BeginEdit(index int) error {
	if index == roster.ProtectedIndex {
		return &roster.ProtectedEntryError{Index: index, Op: "edit"}
	}
	ct, err := c.store.Get(index)
	if err != nil {
		return err
	}
	if ct.Protected {
		return &roster.ProtectedEntryError{Index: index, Op: "edit", Name: ct.DisplayName}
	}

	c.name = ct.DisplayName
	c.phone = ct.PhoneNumber
	c.email = ct.Email
	c.mode = Editing{Index: index, ID: ct.ID}
	return nil
}

// Retarget moves an edit to its contact's current position after the roster
// changed underneath the form. If the contact is gone the edit is cancelled
// and Retarget returns false. Buffers are kept while the contact exists.
func (c *Controller) Retarget() bool {
	e, ok := c.mode.(Editing)
	if !ok {
		return true
	}
	i := c.store.IndexOf(e.ID)
	if i < 0 {
		c.reset()
		return false
	}
	c.mode = Editing{Index: i, ID: e.ID}
	return true
}

// CancelEdit clears the buffers and returns to Creating.
func (c *Controller) CancelEdit() {
	c.reset()
}

// Submit validates the buffers and commits them to the store. On failure the
// buffers and mode are left as they were so the user can correct and retry.
func (c *Controller) Submit() (roster.Contact, error) {
	draft := roster.Contact{DisplayName: c.name, PhoneNumber: c.phone, Email: c.email}
	if err := roster.Validate(draft); err != nil {
		return roster.Contact{}, err
	}

	var (
		saved roster.Contact
		err   error
	)
	switch m := c.mode.(type) {
	case Editing:
		saved, err = c.store.ReplaceByID(m.ID, draft)
	default:
		saved, err = c.store.Append(draft)
	}
	if err != nil {
		return roster.Contact{}, err
	}

	c.reset()
	return saved, nil
}

func (c *Controller) reset() {
	c.name, c.phone, c.email = "", "", ""
	c.mode = Creating{}
}
