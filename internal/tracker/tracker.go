// Package tracker keeps the "track me" map state: the user's last known
// position, an optional destination, and the region the map should focus on.
// Geolocation itself is delegated to a Locator.
package tracker

import (
	"context"
	"errors"
	"fmt"
)

// ErrPermissionDenied is returned when the Locator refuses location access.
var ErrPermissionDenied = errors.New("tracker: location permission denied")

// Messages shown to the user when permission is denied: on the initial
// locate, and when tracking is requested.
const (
	DeniedMessage     = "Permission to access location was denied"
	PermissionMessage = "Location permission is required to use this feature."
)

// Region spans used for the initial wide view and for a focused fix.
const (
	wideLatDelta  = 0.0922
	wideLonDelta  = 0.0421
	closeLatDelta = 0.015
	closeLonDelta = 0.0121
)

// Position is a geographic coordinate.
type Position struct {
	Latitude  float64
	Longitude float64
}

func (p Position) String() string {
	return fmt.Sprintf("%.5f, %.5f", p.Latitude, p.Longitude)
}

// Region is a map viewport centred on a position.
type Region struct {
	Center   Position
	LatDelta float64
	LonDelta float64
}

// Locator provides device location.
type Locator interface {
	RequestPermission(ctx context.Context) (bool, error)
	CurrentPosition(ctx context.Context) (Position, error)
}

// Tracker holds map state for one session. Not safe for concurrent use.
type Tracker struct {
	locator     Locator
	initial     Position
	current     *Position
	destination *Position
	errMsg      string
}

// New returns a Tracker whose map starts at initial.
func New(locator Locator, initial Position) *Tracker {
	return &Tracker{locator: locator, initial: initial}
}

// Locate asks the Locator for permission and the current position without
// touching the tracker's state. It is safe to call from a tea.Cmd.
func (t *Tracker) Locate(ctx context.Context) (Position, error) {
	ok, err := t.locator.RequestPermission(ctx)
	if err != nil {
		return Position{}, fmt.Errorf("tracker: requesting permission: %w", err)
	}
	if !ok {
		return Position{}, ErrPermissionDenied
	}
	pos, err := t.locator.CurrentPosition(ctx)
	if err != nil {
		return Position{}, fmt.Errorf("tracker: reading position: %w", err)
	}
	return pos, nil
}

// ApplyInitial records the result of the locate done when the map opens.
// A fix becomes the current position and any destination is kept.
func (t *Tracker) ApplyInitial(pos Position, err error) {
	if err != nil {
		t.setError(err, DeniedMessage)
		return
	}
	t.current = &pos
	t.errMsg = ""
}

// TrackMe asks for permission, records the current position, and clears any
// destination so the map recentres on the user.
func (t *Tracker) TrackMe(ctx context.Context) (Position, error) {
	pos, err := t.Locate(ctx)
	if err != nil {
		t.setError(err, PermissionMessage)
		return Position{}, err
	}
	t.current = &pos
	t.destination = nil
	t.errMsg = ""
	return pos, nil
}

// setError stores the user-facing text for err; denied is used for a
// permission refusal.
func (t *Tracker) setError(err error, denied string) {
	if errors.Is(err, ErrPermissionDenied) {
		t.errMsg = denied
		return
	}
	t.errMsg = err.Error()
}

// SetDestination marks p as the destination.
func (t *Tracker) SetDestination(p Position) {
	t.destination = &p
}

// Current returns the last known position.
func (t *Tracker) Current() (Position, bool) {
	if t.current == nil {
		return Position{}, false
	}
	return *t.current, true
}

// Destination returns the marked destination.
func (t *Tracker) Destination() (Position, bool) {
	if t.destination == nil {
		return Position{}, false
	}
	return *t.destination, true
}

// ErrorMessage returns the last user-facing location error, if any.
func (t *Tracker) ErrorMessage() string {
	return t.errMsg
}

// Region returns the map focus. Without a fix the initial wide region is
// used; with a fix, the destination takes precedence over the user.
func (t *Tracker) Region() Region {
	if t.current == nil {
		return Region{Center: t.initial, LatDelta: wideLatDelta, LonDelta: wideLonDelta}
	}
	center := *t.current
	if t.destination != nil {
		center = *t.destination
	}
	return Region{Center: center, LatDelta: closeLatDelta, LonDelta: closeLonDelta}
}

// StaticLocator reports a fixed position, for terminals without a GPS.
type StaticLocator struct {
	Granted bool
	Fix     Position
}

// RequestPermission reports whether access is granted.
func (l StaticLocator) RequestPermission(context.Context) (bool, error) {
	return l.Granted, nil
}

// CurrentPosition returns the fixed position.
func (l StaticLocator) CurrentPosition(ctx context.Context) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, err
	}
	return l.Fix, nil
}
