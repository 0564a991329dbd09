// Package roster holds the ordered emergency-contact list for a session.
//
// Position 0 is always the protected emergency-services entry. Contacts are
// addressed by position for the UI and by a stable ID otherwise; removing an
// entry renumbers every later position, so callers holding an index across a
// removal must re-fetch it.
package roster

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Default seed values for the protected entry.
const (
	DefaultEmergencyName   = "Police of India"
	DefaultEmergencyNumber = "100"
)

// ProtectedIndex is the reserved position of the protected entry.
const ProtectedIndex = 0

// Contact is one emergency contact.
type Contact struct {
	ID          string
	DisplayName string
	PhoneNumber string
	Email       string // Optional.
	Protected   bool
}

// DefaultSeed returns the stock emergency-services contact.
func DefaultSeed() Contact {
	return Contact{DisplayName: DefaultEmergencyName, PhoneNumber: DefaultEmergencyNumber}
}

// Roster is an ordered contact list with a single protected entry at
// position 0. It is not safe for concurrent use; it is owned by one UI
// session and mutated from its event loop.
type Roster struct {
	byID  map[string]Contact
	order []string
}

// New creates a Roster holding only the protected seed entry.
// Empty seed fields fall back to DefaultSeed.
func New(seed Contact) *Roster {
	def := DefaultSeed()
	if strings.TrimSpace(seed.DisplayName) == "" {
		seed.DisplayName = def.DisplayName
	}
	if strings.TrimSpace(seed.PhoneNumber) == "" {
		seed.PhoneNumber = def.PhoneNumber
	}
	seed.ID = newID()
	seed.Protected = true

	return &Roster{
		byID:  map[string]Contact{seed.ID: seed},
		order: []string{seed.ID},
	}
}

// Len returns the number of contacts, including the protected entry.
func (r *Roster) Len() int {
	return len(r.order)
}

// Contacts returns a copy of all contacts in display order.
func (r *Roster) Contacts() []Contact {
	out := make([]Contact, len(r.order))
	for i, id := range r.order {
		out[i] = r.byID[id]
	}
	return out
}

// Get returns the contact at index.
func (r *Roster) Get(index int) (Contact, error) {
	if err := r.checkBounds(index); err != nil {
		return Contact{}, err
	}
	return r.byID[r.order[index]], nil
}

// Protected returns the reserved entry at position 0.
func (r *Roster) Protected() Contact {
	return r.byID[r.order[ProtectedIndex]]
}

// Append validates c and adds it at the end as a non-protected contact.
// The stored contact, with its assigned ID, is returned.
func (r *Roster) Append(c Contact) (Contact, error) {
	if err := Validate(c); err != nil {
		return Contact{}, err
	}
	c = normalize(c)
	c.ID = newID()
	c.Protected = false

	r.byID[c.ID] = c
	r.order = append(r.order, c.ID)
	return c, nil
}

// ReplaceAt overwrites the fields of the contact at index, keeping its ID
// and protected flag.
func (r *Roster) ReplaceAt(index int, c Contact) (Contact, error) {
	if err := r.checkMutable(index, "edit"); err != nil {
		return Contact{}, err
	}
	if err := Validate(c); err != nil {
		return Contact{}, err
	}

	orig := r.byID[r.order[index]]
	c = normalize(c)
	c.ID = orig.ID
	c.Protected = orig.Protected
	r.byID[c.ID] = c
	return c, nil
}

// RemoveAt deletes the contact at index and shifts later entries left.
func (r *Roster) RemoveAt(index int) (Contact, error) {
	if err := r.checkMutable(index, "remove"); err != nil {
		return Contact{}, err
	}

	id := r.order[index]
	removed := r.byID[id]
	delete(r.byID, id)
	r.order = append(r.order[:index], r.order[index+1:]...)
	return removed, nil
}

// IndexOf returns the current position of id, or -1.
func (r *Roster) IndexOf(id string) int {
	for i, v := range r.order {
		if v == id {
			return i
		}
	}
	return -1
}

// ReplaceByID is ReplaceAt at the current position of id.
func (r *Roster) ReplaceByID(id string, c Contact) (Contact, error) {
	i := r.IndexOf(id)
	if i < 0 {
		return Contact{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r.ReplaceAt(i, c)
}

// checkMutable rejects the protected position before checking bounds.
func (r *Roster) checkMutable(index int, op string) error {
	if index == ProtectedIndex {
		return &ProtectedEntryError{Index: index, Op: op, Name: r.Protected().DisplayName}
	}
	return r.checkBounds(index)
}

func (r *Roster) checkBounds(index int) error {
	if index < 0 || index >= len(r.order) {
		return &OutOfRangeError{Index: index, Len: len(r.order)}
	}
	return nil
}

// emailPattern mirrors a loose "something@something.something" check.
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// Validate checks the fields a contact needs before it can be committed.
// Name and phone are required; email is optional but must look like an
// address when given.
func Validate(c Contact) error {
	if strings.TrimSpace(c.DisplayName) == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if strings.TrimSpace(c.PhoneNumber) == "" {
		return &ValidationError{Field: "phone", Reason: "required"}
	}
	if email := strings.TrimSpace(c.Email); email != "" && !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Reason: "not a valid address"}
	}
	return nil
}

func normalize(c Contact) Contact {
	c.DisplayName = strings.TrimSpace(c.DisplayName)
	c.PhoneNumber = strings.TrimSpace(c.PhoneNumber)
	c.Email = strings.TrimSpace(c.Email)
	return c
}

func newID() string {
	return uuid.NewString()
}
