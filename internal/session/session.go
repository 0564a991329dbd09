// Package session binds the roster and the entry form to the user's intents.
//
// It is the boundary where roster and form errors become user-facing notices:
// protected-entry denials and validation failures are announced through a
// Notifier, while out-of-range indices are logged and returned to the caller.
package session

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/smileynet/safecircle/internal/form"
	"github.com/smileynet/safecircle/internal/roster"
)

// NoticeKind classifies a user-facing notice.
type NoticeKind string

const (
	NoticeDenied  NoticeKind = "denied"
	NoticeInvalid NoticeKind = "invalid"
	NoticeSaved   NoticeKind = "saved"
	NoticeRemoved NoticeKind = "removed"
)

// Notice is a message the rendering surface must show the user.
type Notice struct {
	Kind    NoticeKind
	Title   string
	Message string
}

// Notifier delivers notices to the user. Implementations are expected to
// hold the notice until the user acknowledges it.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Notice)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notice) { f(n) }

// Snapshot is everything the rendering surface needs to draw the contacts.
type Snapshot struct {
	Contacts []roster.Contact
	Form     form.State
}

// Session owns one roster and its entry form for the life of the UI.
type Session struct {
	roster   *roster.Roster
	form     *form.Controller
	notifier Notifier
	logger   *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithNotifier sets the notice sink. The default discards notices.
func WithNotifier(n Notifier) Option {
	return func(s *Session) { s.notifier = n }
}

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New creates a Session whose roster is seeded with the protected entry.
func New(seed roster.Contact, opts ...Option) *Session {
	r := roster.New(seed)
	s := &Session{
		roster:   r,
		form:     form.NewController(r),
		notifier: NotifierFunc(func(Notice) {}),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger.Debug("session started",
		zap.String("emergency_name", r.Protected().DisplayName),
		zap.String("emergency_number", r.Protected().PhoneNumber))
	return s
}

// Roster returns the session's roster for read access.
func (s *Session) Roster() *roster.Roster { return s.roster }

// Snapshot returns the current roster contents and form state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{Contacts: s.roster.Contacts(), Form: s.form.State()}
}

// NameChanged updates the name buffer.
func (s *Session) NameChanged(text string) { s.form.SetName(text) }

// PhoneChanged updates the phone buffer.
func (s *Session) PhoneChanged(text string) { s.form.SetPhone(text) }

// EmailChanged updates the email buffer.
func (s *Session) EmailChanged(text string) { s.form.SetEmail(text) }

// AddRequested reopens the form for a new contact, abandoning any edit.
func (s *Session) AddRequested() {
	if e, ok := s.form.Mode().(form.Editing); ok {
		s.logger.Debug("edit cancelled", zap.Int("index", e.Index))
	}
	s.form.CancelEdit()
}

// SubmitPressed commits the form.
func (s *Session) SubmitPressed() error {
	mode := s.form.Mode()
	saved, err := s.form.Submit()
	if err != nil {
		return s.fail("submit", err)
	}

	verb := "added"
	if _, ok := mode.(form.Editing); ok {
		verb = "updated"
	}
	s.logger.Info("contact "+verb,
		zap.String("id", saved.ID),
		zap.Int("index", s.roster.IndexOf(saved.ID)))
	s.notifier.Notify(Notice{
		Kind:    NoticeSaved,
		Title:   "Saved",
		Message: fmt.Sprintf("%s %s", saved.DisplayName, verb),
	})
	return nil
}

// EditRequested loads the contact at index into the form.
func (s *Session) EditRequested(index int) error {
	if err := s.form.BeginEdit(index); err != nil {
		return s.fail("edit", err)
	}
	s.logger.Debug("edit started", zap.Int("index", index))
	return nil
}

// RemoveRequested deletes the contact at index. Removing the contact being
// edited cancels the edit; any other removal leaves the edit and its buffers
// in place, following the target to its new position.
func (s *Session) RemoveRequested(index int) error {
	removed, err := s.roster.RemoveAt(index)
	if err != nil {
		return s.fail("remove", err)
	}
	if !s.form.Retarget() {
		s.logger.Debug("edit cancelled", zap.String("id", removed.ID))
	}

	s.logger.Info("contact removed", zap.String("id", removed.ID), zap.Int("index", index))
	s.notifier.Notify(Notice{
		Kind:    NoticeRemoved,
		Title:   "Removed",
		Message: fmt.Sprintf("%s removed", removed.DisplayName),
	})
	return nil
}

// fail turns an operation error into a notice where the user must see it,
// and returns the error unchanged.
func (s *Session) fail(op string, err error) error {
	var (
		pe *roster.ProtectedEntryError
		ve *roster.ValidationError
	)
	switch {
	case errors.As(err, &pe):
		s.logger.Info("protected entry denied", zap.String("op", op), zap.Int("index", pe.Index))
		s.notifier.Notify(DenialNotice(pe, s.roster.Protected().DisplayName))
	case errors.As(err, &ve):
		s.logger.Debug("validation failed", zap.String("op", op), zap.String("field", ve.Field))
		s.notifier.Notify(ValidationNotice(ve))
	default:
		s.logger.Warn("stale index", zap.String("op", op), zap.Error(err))
	}
	return err
}

// DenialNotice builds the notice for an attempted edit or removal of the
// protected entry.
func DenialNotice(pe *roster.ProtectedEntryError, name string) Notice {
	if pe.Name != "" {
		name = pe.Name
	}
	verb := "removed"
	if pe.Op == "edit" {
		verb = "edited"
	}
	return Notice{
		Kind:    NoticeDenied,
		Title:   "Not allowed",
		Message: fmt.Sprintf("%s cannot be %s", name, verb),
	}
}

// ValidationNotice builds the notice for a failed submit.
func ValidationNotice(ve *roster.ValidationError) Notice {
	var msg string
	switch {
	case ve.Field == "name":
		msg = "Please enter a name"
	case ve.Field == "phone":
		msg = "Please enter a phone number"
	case ve.Field == "email":
		msg = "Please enter a valid email address"
	default:
		msg = ve.Error()
	}
	return Notice{Kind: NoticeInvalid, Title: "Error", Message: msg}
}
