package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/kimanzi254/consult_admin/models"
)

type MockSession struct {
	principal    Principal
	hasPrincipal bool
	admin        bool
	signedOut    bool
}

func (m *MockSession) CurrentPrincipal() (Principal, bool) {
	return m.principal, m.hasPrincipal
}

func (m *MockSession) IsAdmin() bool {
	return m.admin
}

func (m *MockSession) SignOut() error {
	m.signedOut = true
	return nil
}

func adminSession() *MockSession {
	return &MockSession{
		principal:    Principal{ID: uuid.New(), FullName: "Grace Wanjiru", Role: "admin"},
		hasPrincipal: true,
		admin:        true,
	}
}

func TestGuardRedirectsWhenNotAuthenticated(t *testing.T) {
	session := &MockSession{}
	nav := &MockNavigator{}
	notify := &MockNotifier{}

	err := Guard(session, nav, notify)

	if !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("err = %v, want ErrNotAuthenticated", err)
	}
	if nav.redirects != 1 {
		t.Errorf("redirects = %d, want 1", nav.redirects)
	}
	if len(notify.errors) != 0 {
		t.Errorf("error notices = %v, want none (silent redirect)", notify.errors)
	}
}

func TestGuardNotifiesThenRedirectsWhenNotAdmin(t *testing.T) {
	session := adminSession()
	session.admin = false
	nav := &MockNavigator{}
	notify := &MockNotifier{}

	err := Guard(session, nav, notify)

	if !IsUnauthorized(err) {
		t.Errorf("err = %v, want unauthorized", err)
	}
	if len(notify.errors) != 1 || notify.errors[0] != UnauthorizedMessage {
		t.Errorf("error notices = %v, want [%q]", notify.errors, UnauthorizedMessage)
	}
	if nav.redirects != 1 {
		t.Errorf("redirects = %d, want 1", nav.redirects)
	}
}

func TestGuardPassesAdminThrough(t *testing.T) {
	nav := &MockNavigator{}
	notify := &MockNotifier{}

	if err := Guard(adminSession(), nav, notify); err != nil {
		t.Errorf("err = %v, want nil", err)
	}
	if nav.redirects != 0 {
		t.Errorf("redirects = %d, want 0", nav.redirects)
	}
}

func TestPageLoadPopulatesStore(t *testing.T) {
	records := []models.Booking{pendingBooking("tax review"), pendingBooking("visa advice")}
	api := &MockBookingAPI{fetchRecords: records}
	page := NewPage(adminSession(), api, &MockNotifier{}, &MockNavigator{}, &MockReasonProvider{})

	if err := page.Load(context.Background()); err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	view := page.Visible("", StatusAll)
	if len(view.Bookings) != 2 {
		t.Errorf("len(view.Bookings) = %d, want 2", len(view.Bookings))
	}
}

func TestPageLoadSkipsFetchWhenGuardFails(t *testing.T) {
	api := &MockBookingAPI{fetchRecords: []models.Booking{pendingBooking("tax review")}}
	page := NewPage(&MockSession{}, api, &MockNotifier{}, &MockNavigator{}, &MockReasonProvider{})

	if err := page.Load(context.Background()); err == nil {
		t.Fatal("Load() = nil, want error")
	}
	if view := page.Visible("", StatusAll); len(view.Bookings) != 0 {
		t.Errorf("store populated despite failed guard: %d records", len(view.Bookings))
	}
}

func TestPageLoadUnauthorizedFetchRedirects(t *testing.T) {
	api := &MockBookingAPI{fetchErr: NewUnauthorizedError()}
	nav := &MockNavigator{}
	notify := &MockNotifier{}
	page := NewPage(adminSession(), api, notify, nav, &MockReasonProvider{})

	if err := page.Load(context.Background()); err == nil {
		t.Fatal("Load() = nil, want error")
	}
	if nav.redirects != 1 {
		t.Errorf("redirects = %d, want 1", nav.redirects)
	}
	if len(notify.errors) != 1 {
		t.Errorf("error notices = %d, want 1", len(notify.errors))
	}
}
