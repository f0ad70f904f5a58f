package navigator

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"wedding-guestlist/internal/client"
	"wedding-guestlist/internal/models"
	"wedding-guestlist/internal/storage"
	"wedding-guestlist/internal/summary"
)

// Transport is the registry as seen from the client.
type Transport interface {
	FetchGuests(ctx context.Context) ([]models.Guest, error)
	CreateGuest(ctx context.Context, in models.GuestInput) (models.Guest, error)
	ReplaceGuest(ctx context.Context, id string, in models.GuestInput) (models.Guest, error)
	DeleteGuest(ctx context.Context, id string) error
}

var _ Transport = (*client.Client)(nil)

// App is the client session: a local copy of the guest list, the navigator,
// and the transport used to change the authoritative list.
//
// Every mutation waits for the transport before touching local state, so a
// failed or rejected call leaves both the list and the view where they were.
// App is not safe for concurrent use.
type App struct {
	transport Transport
	nav       *Navigator
	notifier  Notifier
	log       zerolog.Logger
	guests    []models.Guest
}

// NewApp creates a session showing an empty list. Call Refresh to load guests.
func NewApp(transport Transport, notifier Notifier, log zerolog.Logger) *App {
	if notifier == nil {
		notifier = NotifierFunc(func(string) {})
	}
	return &App{
		transport: transport,
		nav:       New(notifier),
		notifier:  notifier,
		log:       log,
		guests:    make([]models.Guest, 0),
	}
}

// State returns the navigator state.
func (a *App) State() State { return a.nav.State() }

// Guests returns a copy of the local guest list.
func (a *App) Guests() []models.Guest {
	out := make([]models.Guest, len(a.guests))
	copy(out, a.guests)
	return out
}

// Summary summarizes the local guest list.
func (a *App) Summary() summary.Summary {
	return summary.Summarize(a.guests)
}

// SwitchView forwards to the navigator.
func (a *App) SwitchView(target View, guest *models.Guest) error {
	return a.nav.SwitchView(target, guest)
}

// GoBack forwards to the navigator.
func (a *App) GoBack() { a.nav.GoBack() }

// SelectGuest opens the details view for the guest with the given id.
func (a *App) SelectGuest(id string) error {
	g, ok := models.FindGuest(a.guests, id)
	if !ok {
		a.notifier.Notify(fmt.Sprintf("No guest with id %q.", id))
		return storage.ErrGuestNotFound
	}
	return a.nav.SwitchView(ViewDetails, &g)
}

// Refresh replaces the local list with the server's.
func (a *App) Refresh(ctx context.Context) error {
	guests, err := a.transport.FetchGuests(ctx)
	if err != nil {
		return a.fail("Error fetching guests", err)
	}
	a.guests = guests
	return nil
}

// SubmitAdd checks the add form and creates the guest. On success the new
// guest is appended locally and the list is shown.
func (a *App) SubmitAdd(ctx context.Context, in models.GuestInput) error {
	if err := a.checkForm(in); err != nil {
		return err
	}
	created, err := a.transport.CreateGuest(ctx, in)
	if err != nil {
		return a.fail("Error adding guest", err)
	}
	a.log.Debug().Str("guest_id", created.ID).Msg("guest created")
	a.guests = models.AppendGuest(a.guests, created)
	a.nav.CompleteSubmission(nil)
	return nil
}

// SubmitUpdate checks the edit form and replaces the guest shown in the
// details view. On success the local copy is replaced and the list is shown.
func (a *App) SubmitUpdate(ctx context.Context, in models.GuestInput) error {
	selected, ok := a.nav.Selected()
	if !ok || a.nav.Current() != ViewDetails {
		return ErrNoGuestSelected
	}
	if err := a.checkForm(in); err != nil {
		return err
	}
	updated, err := a.transport.ReplaceGuest(ctx, selected.ID, in)
	if err != nil {
		return a.fail("Error updating guest", err)
	}
	a.log.Debug().Str("guest_id", updated.ID).Msg("guest replaced")
	a.guests = models.ReplaceGuest(a.guests, updated)
	a.nav.CompleteSubmission(&updated)
	return nil
}

// RemoveGuest deletes the guest with the given id and shows the list.
// Removing an id the server does not hold succeeds.
func (a *App) RemoveGuest(ctx context.Context, id string) error {
	if err := a.transport.DeleteGuest(ctx, id); err != nil {
		return a.fail("Error removing guest", err)
	}
	a.log.Debug().Str("guest_id", id).Msg("guest deleted")
	a.guests = models.RemoveGuest(a.guests, id)
	if a.nav.Current() != ViewList {
		a.nav.CompleteSubmission(nil)
	}
	return nil
}

func (a *App) checkForm(in models.GuestInput) error {
	if err := CheckForm(in); err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			a.notifier.Notify(vErr.Message)
		}
		return err
	}
	return nil
}

// fail reports err to the user. Rejections from the server are advisories;
// transport failures are also logged.
func (a *App) fail(prefix string, err error) error {
	var vErr *models.ValidationError
	switch {
	case client.IsTransport(err):
		a.log.Error().Err(err).Msg(prefix)
		a.notifier.Notify(fmt.Sprintf("%s: could not reach the server.", prefix))
	case errors.Is(err, storage.ErrGuestNotFound):
		a.notifier.Notify(fmt.Sprintf("%s: guest not found.", prefix))
	case errors.As(err, &vErr):
		a.notifier.Notify(fmt.Sprintf("%s: %s.", prefix, vErr.Message))
	default:
		a.log.Error().Err(err).Msg(prefix)
		a.notifier.Notify(fmt.Sprintf("%s: %v", prefix, err))
	}
	return err
}
