package dashboard

import (
	"context"
)

// Page wires the guard, store and dispatcher together for one admin session.
// It holds the only reference to the store, which lives for exactly as long
// as the admin keeps the page open.
type Page struct {
	session    Session
	api        BookingAPI
	nav        Navigator
	notify     Notifier
	store      *Store
	dispatcher *Dispatcher
}

func NewPage(session Session, api BookingAPI, notify Notifier, nav Navigator, reasons ReasonProvider) *Page {
	store := NewStore()
	return &Page{
		session:    session,
		api:        api,
		nav:        nav,
		notify:     notify,
		store:      store,
		dispatcher: NewDispatcher(api, store, notify, nav, reasons),
	}
}

// Load guards the session and, when allowed, populates the store from the
// remote fetch. A fetch failing with the unauthorized sentinel follows the
// same convention as the startup check and routes back to login.
func (p *Page) Load(ctx context.Context) error {
	if err := Guard(p.session, p.nav, p.notify); err != nil {
		return err
	}

	records, err := p.api.FetchBookings(ctx)
	if err != nil {
		p.notify.Error(err.Error())
		if IsUnauthorized(err) {
			p.nav.RedirectToLogin()
		}
		return err
	}
	p.store.Load(records)
	return nil
}

// Visible computes the rows the table should currently show.
func (p *Page) Visible(query, status string) ViewModel {
	return Visible(p.store.Snapshot(), query, status)
}

func (p *Page) Dispatcher() *Dispatcher {
	return p.dispatcher
}

// Close tears the page state down; late remote resolutions become no-ops.
func (p *Page) Close() {
	p.store.Close()
}
