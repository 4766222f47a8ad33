package dashboard

import (
	"testing"

	"github.com/kimanzi254/consult_admin/models"
)

func TestVisibleAllReturnsEverythingInOrder(t *testing.T) {
	records := []models.Booking{pendingBooking("a"), pendingBooking("b"), pendingBooking("c")}
	records[1].Status = models.BookingStatusApproved

	view := Visible(records, "", StatusAll)

	if len(view.Bookings) != 3 {
		t.Fatalf("len(view.Bookings) = %d, want 3", len(view.Bookings))
	}
	for i, record := range view.Bookings {
		if record.ID != records[i].ID {
			t.Errorf("view.Bookings[%d].ID = %v, want %v (order must be preserved)", i, record.ID, records[i].ID)
		}
	}
}

func TestVisibleFiltersByStatusOnly(t *testing.T) {
	records := []models.Booking{pendingBooking("a"), pendingBooking("b"), pendingBooking("c")}
	records[0].Status = models.BookingStatusApproved
	records[2].Status = models.BookingStatusApproved

	// The free-text query belongs to the table widget; it must not narrow
	// the result here.
	view := Visible(records, "no booking matches this", models.BookingStatusApproved)

	if len(view.Bookings) != 2 {
		t.Fatalf("len(view.Bookings) = %d, want 2", len(view.Bookings))
	}
	if view.Bookings[0].ID != records[0].ID || view.Bookings[1].ID != records[2].ID {
		t.Errorf("approved subset out of order: got %v, %v", view.Bookings[0].ID, view.Bookings[1].ID)
	}
}

func TestVisiblePassesQueryThrough(t *testing.T) {
	view := Visible(nil, "jane doe", StatusAll)

	if view.Query != "jane doe" {
		t.Errorf("view.Query = %q, want %q", view.Query, "jane doe")
	}
	if len(view.Bookings) != 0 {
		t.Errorf("len(view.Bookings) = %d, want 0", len(view.Bookings))
	}
}

func TestVisibleEmptyStatusMeansAll(t *testing.T) {
	records := []models.Booking{pendingBooking("a"), pendingBooking("b")}

	view := Visible(records, "", "")

	if len(view.Bookings) != 2 {
		t.Errorf("len(view.Bookings) = %d, want 2", len(view.Bookings))
	}
}
