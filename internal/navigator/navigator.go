// Package navigator holds the client-side screen state for the guest list:
// which view is showing, the one view "back" returns to, and the guest being
// edited. App wires it to the registry transport.
package navigator

import (
	"errors"
	"fmt"

	"wedding-guestlist/internal/models"
)

// View is one of the client's screens.
type View string

const (
	ViewList    View = "list"
	ViewAdd     View = "add"
	ViewDetails View = "details"
)

// Valid reports whether v names a known screen.
func (v View) Valid() bool {
	switch v {
	case ViewList, ViewAdd, ViewDetails:
		return true
	}
	return false
}

// AlreadyHereNotice is shown when the list is requested while already showing.
const AlreadyHereNotice = "You're already here!"

// ErrNoGuestSelected is returned when details is entered without a guest.
var ErrNoGuestSelected = errors.New("navigator: details view requires a selected guest")

// Notifier surfaces short, user-visible messages (alerts, advisories).
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

// State is a read-only copy of the navigator's state.
type State struct {
	Current  View
	Previous View
	// Selected is set only while Current is ViewDetails.
	Selected *models.Guest
}

// slot is one half of the history pair. Remembering the guest alongside the
// view means going back into details always has a guest to show.
type slot struct {
	view  View
	guest *models.Guest
}

// Navigator is the view state machine. It has exactly one level of history:
// GoBack swaps the current and previous slots, so calling it twice returns to
// where it started. It is not safe for concurrent use.
type Navigator struct {
	current  slot
	previous slot
	notifier Notifier
}

// New returns a navigator showing the list, with the list as its back target.
func New(notifier Notifier) *Navigator {
	if notifier == nil {
		notifier = NotifierFunc(func(string) {})
	}
	return &Navigator{
		current:  slot{view: ViewList},
		previous: slot{view: ViewList},
		notifier: notifier,
	}
}

// State returns a copy of the current state.
func (n *Navigator) State() State {
	return State{
		Current:  n.current.view,
		Previous: n.previous.view,
		Selected: cloneGuest(n.current.guest),
	}
}

// Current returns the visible view.
func (n *Navigator) Current() View { return n.current.view }

// Selected returns the guest shown in the details view.
func (n *Navigator) Selected() (models.Guest, bool) {
	if n.current.guest == nil {
		return models.Guest{}, false
	}
	return *n.current.guest, true
}

// SwitchView moves to target, remembering the current view for GoBack.
//
// Requesting the view that is already showing leaves the history untouched.
// For the list this raises AlreadyHereNotice; for details the form is
// refreshed with guest; for add nothing happens.
func (n *Navigator) SwitchView(target View, guest *models.Guest) error {
	if !target.Valid() {
		return fmt.Errorf("navigator: unknown view %q", target)
	}
	if target == ViewDetails && guest == nil {
		return ErrNoGuestSelected
	}

	if target == n.current.view {
		switch target {
		case ViewList:
			n.notifier.Notify(AlreadyHereNotice)
		case ViewDetails:
			n.current.guest = cloneGuest(guest)
		}
		return nil
	}

	next := slot{view: target}
	if target == ViewDetails {
		next.guest = cloneGuest(guest)
	}
	n.previous = n.current
	n.current = next
	return nil
}

// GoBack returns to the previous view.
func (n *Navigator) GoBack() {
	n.current, n.previous = n.previous, n.current
}

// CompleteSubmission records a successful add or update: the list becomes
// current and the view that was showing becomes the back target. When saved
// is the guest that was being edited, the remembered details slot is
// refreshed so going back shows the stored record.
func (n *Navigator) CompleteSubmission(saved *models.Guest) {
	prev := n.current
	if saved != nil && prev.view == ViewDetails && prev.guest != nil && prev.guest.ID == saved.ID {
		prev.guest = cloneGuest(saved)
	}
	n.previous = prev
	n.current = slot{view: ViewList}
}

func cloneGuest(g *models.Guest) *models.Guest {
	if g == nil {
		return nil
	}
	c := *g
	return &c
}
