package dashboard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kimanzi254/consult_admin/models"
)

type MockBookingAPI struct {
	mu sync.Mutex

	fetchRecords []models.Booking
	fetchErr     error

	updateCalls int
	updateErr   error
	lastStatus  string
	lastReason  *string
	updateBlock chan struct{}

	link    string
	linkErr error
}

func (m *MockBookingAPI) FetchBookings(ctx context.Context) ([]models.Booking, error) {
	return m.fetchRecords, m.fetchErr
}

func (m *MockBookingAPI) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status string, reason *string) error {
	m.mu.Lock()
	m.updateCalls++
	m.lastStatus = status
	m.lastReason = reason
	block := m.updateBlock
	m.mu.Unlock()
	if block != nil {
		<-block
	}
	return m.updateErr
}

func (m *MockBookingAPI) GenerateMeetingLink(ctx context.Context, id uuid.UUID) (string, error) {
	return m.link, m.linkErr
}

type MockNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (m *MockNotifier) Success(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.successes = append(m.successes, message)
}

func (m *MockNotifier) Error(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, message)
}

type MockNavigator struct {
	redirects int
}

func (m *MockNavigator) RedirectToLogin() {
	m.redirects++
}

type MockReasonProvider struct {
	reason string
	ok     bool
	calls  int
}

func (m *MockReasonProvider) RejectionReason(id uuid.UUID) (string, bool) {
	m.calls++
	return m.reason, m.ok
}

func newTestDispatcher(api *MockBookingAPI, reasons *MockReasonProvider) (*Dispatcher, *Store, *MockNotifier, *MockNavigator) {
	store := NewStore()
	notify := &MockNotifier{}
	nav := &MockNavigator{}
	if reasons == nil {
		reasons = &MockReasonProvider{}
	}
	return NewDispatcher(api, store, notify, nav, reasons), store, notify, nav
}

func TestApproveSuccessPatchesStore(t *testing.T) {
	record := pendingBooking("tax review")
	api := &MockBookingAPI{}
	dispatcher, store, notify, nav := newTestDispatcher(api, nil)
	store.Load([]models.Booking{record})

	dispatcher.Approve(context.Background(), record.ID)

	if api.lastStatus != models.BookingStatusApproved {
		t.Errorf("remote status = %q, want %q", api.lastStatus, models.BookingStatusApproved)
	}
	snapshot := store.Snapshot()
	if snapshot[0].Status != models.BookingStatusApproved {
		t.Errorf("store status = %q, want %q", snapshot[0].Status, models.BookingStatusApproved)
	}
	if len(notify.successes) != 1 {
		t.Errorf("success notices = %d, want 1", len(notify.successes))
	}
	if nav.redirects != 0 {
		t.Errorf("redirects = %d, want 0", nav.redirects)
	}
}

func TestRejectWithReasonPatchesStore(t *testing.T) {
	record := pendingBooking("visa advice")
	api := &MockBookingAPI{}
	reasons := &MockReasonProvider{reason: "schedule conflict", ok: true}
	dispatcher, store, notify, _ := newTestDispatcher(api, reasons)
	store.Load([]models.Booking{record})

	dispatcher.Reject(context.Background(), record.ID)

	if api.lastReason == nil || *api.lastReason != "schedule conflict" {
		t.Errorf("remote reason = %v, want %q", api.lastReason, "schedule conflict")
	}
	snapshot := store.Snapshot()
	if snapshot[0].Status != models.BookingStatusRejected {
		t.Errorf("store status = %q, want %q", snapshot[0].Status, models.BookingStatusRejected)
	}
	if snapshot[0].RejectionReason == nil || *snapshot[0].RejectionReason != "schedule conflict" {
		t.Errorf("store rejection reason = %v, want %q", snapshot[0].RejectionReason, "schedule conflict")
	}
	if len(notify.successes) != 1 {
		t.Errorf("success notices = %d, want 1", len(notify.successes))
	}
}

func TestRejectCancelledIsSilentAbort(t *testing.T) {
	record := pendingBooking("visa advice")
	api := &MockBookingAPI{}
	reasons := &MockReasonProvider{ok: false}
	dispatcher, store, notify, _ := newTestDispatcher(api, reasons)
	store.Load([]models.Booking{record})

	dispatcher.Reject(context.Background(), record.ID)

	if api.updateCalls != 0 {
		t.Errorf("remote calls = %d, want 0", api.updateCalls)
	}
	if len(notify.successes) != 0 || len(notify.errors) != 0 {
		t.Errorf("notices = %d/%d, want none", len(notify.successes), len(notify.errors))
	}
	if snapshot := store.Snapshot(); snapshot[0].Status != models.BookingStatusPending {
		t.Errorf("store status = %q, want %q", snapshot[0].Status, models.BookingStatusPending)
	}
}

func TestGenerateMeetingLinkPatchesStore(t *testing.T) {
	record := pendingBooking("career call")
	api := &MockBookingAPI{link: "https://meet.consultly.app/room/ABCD1234"}
	dispatcher, store, notify, _ := newTestDispatcher(api, nil)
	store.Load([]models.Booking{record})

	dispatcher.GenerateMeetingLink(context.Background(), record.ID)

	snapshot := store.Snapshot()
	if snapshot[0].MeetingLink == nil || *snapshot[0].MeetingLink != api.link {
		t.Errorf("store meeting link = %v, want %q", snapshot[0].MeetingLink, api.link)
	}
	if len(notify.successes) != 1 {
		t.Errorf("success notices = %d, want 1", len(notify.successes))
	}
}

func TestRemoteFailureLeavesStoreUntouched(t *testing.T) {
	record := pendingBooking("tax review")
	api := &MockBookingAPI{updateErr: NewRemoteError("booking service unavailable")}
	dispatcher, store, notify, nav := newTestDispatcher(api, nil)
	store.Load([]models.Booking{record})

	dispatcher.Approve(context.Background(), record.ID)

	if snapshot := store.Snapshot(); snapshot[0].Status != models.BookingStatusPending {
		t.Errorf("store status = %q, want %q", snapshot[0].Status, models.BookingStatusPending)
	}
	if len(notify.errors) != 1 || notify.errors[0] != "booking service unavailable" {
		t.Errorf("error notices = %v, want the remote message", notify.errors)
	}
	if nav.redirects != 0 {
		t.Errorf("redirects = %d, want 0", nav.redirects)
	}
}

func TestUnauthorizedFailureRedirectsToLogin(t *testing.T) {
	record := pendingBooking("tax review")
	api := &MockBookingAPI{updateErr: NewUnauthorizedError()}
	dispatcher, store, notify, nav := newTestDispatcher(api, nil)
	store.Load([]models.Booking{record})

	dispatcher.Approve(context.Background(), record.ID)

	if len(notify.errors) != 1 || notify.errors[0] != UnauthorizedMessage {
		t.Errorf("error notices = %v, want [%q]", notify.errors, UnauthorizedMessage)
	}
	if nav.redirects != 1 {
		t.Errorf("redirects = %d, want 1", nav.redirects)
	}
	if snapshot := store.Snapshot(); snapshot[0].Status != models.BookingStatusPending {
		t.Errorf("store status = %q, want %q", snapshot[0].Status, models.BookingStatusPending)
	}
}

func TestUnauthorizedSentinelStringAlsoRedirects(t *testing.T) {
	// A collaborator that only speaks plain errors with the sentinel text
	// must still trigger the login redirect.
	record := pendingBooking("tax review")
	api := &MockBookingAPI{updateErr: plainError(UnauthorizedMessage)}
	dispatcher, _, _, nav := newTestDispatcher(api, nil)
	store := dispatcher.store
	store.Load([]models.Booking{record})

	dispatcher.Approve(context.Background(), record.ID)

	if nav.redirects != 1 {
		t.Errorf("redirects = %d, want 1", nav.redirects)
	}
}

type plainError string

func (e plainError) Error() string { return string(e) }

func TestDuplicateInFlightActionIsDropped(t *testing.T) {
	record := pendingBooking("tax review")
	block := make(chan struct{})
	api := &MockBookingAPI{updateBlock: block}
	dispatcher, store, _, _ := newTestDispatcher(api, nil)
	store.Load([]models.Booking{record})

	done := make(chan struct{})
	go func() {
		dispatcher.Approve(context.Background(), record.ID)
		close(done)
	}()

	// Wait for the first call to reach the remote boundary, then double-click.
	for {
		api.mu.Lock()
		started := api.updateCalls == 1
		api.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}
	dispatcher.Approve(context.Background(), record.ID)

	close(block)
	<-done

	api.mu.Lock()
	defer api.mu.Unlock()
	if api.updateCalls != 1 {
		t.Errorf("remote calls = %d, want 1 (duplicate must be dropped)", api.updateCalls)
	}
}
