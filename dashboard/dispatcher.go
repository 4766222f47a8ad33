package dashboard

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/kimanzi254/consult_admin/models"
)

const genericFailureMessage = "Something went wrong. Please try again."

// BookingAPI is the remote booking collaborator.
type BookingAPI interface {
	FetchBookings(ctx context.Context) ([]models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status string, reason *string) error
	GenerateMeetingLink(ctx context.Context, id uuid.UUID) (string, error)
}

// ReasonProvider supplies the rejection reason for a booking. ok=false means
// the admin dismissed the prompt and the rejection must be aborted entirely.
type ReasonProvider interface {
	RejectionReason(id uuid.UUID) (string, bool)
}

// Dispatcher executes the three admin actions against the remote API and, on
// confirmed success, applies the matching patch to the local store. The store
// is never touched before the remote call resolves.
type Dispatcher struct {
	api     BookingAPI
	store   *Store
	notify  Notifier
	nav     Navigator
	reasons ReasonProvider

	mu       sync.Mutex
	inflight map[uuid.UUID]struct{}
}

func NewDispatcher(api BookingAPI, store *Store, notify Notifier, nav Navigator, reasons ReasonProvider) *Dispatcher {
	return &Dispatcher{
		api:      api,
		store:    store,
		notify:   notify,
		nav:      nav,
		reasons:  reasons,
		inflight: make(map[uuid.UUID]struct{}),
	}
}

// Approve marks the booking approved.
func (d *Dispatcher) Approve(ctx context.Context, id uuid.UUID) {
	if !d.begin(id) {
		return
	}
	defer d.end(id)

	if err := d.api.UpdateBookingStatus(ctx, id, models.BookingStatusApproved, nil); err != nil {
		d.fail(err)
		return
	}
	status := models.BookingStatusApproved
	d.store.Patch(id, Patch{Status: &status})
	d.notify.Success("Booking approved successfully")
}

// Reject asks for a rejection reason first. A dismissed prompt aborts the
// whole operation: no remote call, no notification.
func (d *Dispatcher) Reject(ctx context.Context, id uuid.UUID) {
	reason, ok := d.reasons.RejectionReason(id)
	if !ok {
		return
	}

	if !d.begin(id) {
		return
	}
	defer d.end(id)

	if err := d.api.UpdateBookingStatus(ctx, id, models.BookingStatusRejected, &reason); err != nil {
		d.fail(err)
		return
	}
	status := models.BookingStatusRejected
	d.store.Patch(id, Patch{Status: &status, RejectionReason: &reason})
	d.notify.Success("Booking rejected successfully")
}

// GenerateMeetingLink mints a meeting link for the booking.
func (d *Dispatcher) GenerateMeetingLink(ctx context.Context, id uuid.UUID) {
	if !d.begin(id) {
		return
	}
	defer d.end(id)

	link, err := d.api.GenerateMeetingLink(ctx, id)
	if err != nil {
		d.fail(err)
		return
	}
	d.store.Patch(id, Patch{MeetingLink: &link})
	d.notify.Success("Meeting link generated successfully")
}

// begin claims the per-id in-flight slot. A second invocation on the same id
// while the first is still awaiting the remote call is dropped.
func (d *Dispatcher) begin(id uuid.UUID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, busy := d.inflight[id]; busy {
		return false
	}
	d.inflight[id] = struct{}{}
	return true
}

func (d *Dispatcher) end(id uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.inflight, id)
}

func (d *Dispatcher) fail(err error) {
	message := err.Error()
	if message == "" {
		message = genericFailureMessage
	}
	d.notify.Error(message)
	if IsUnauthorized(err) {
		d.nav.RedirectToLogin()
	}
}
