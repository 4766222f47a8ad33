package jobs

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/kimanzi254/consult_admin/database"
	"github.com/kimanzi254/consult_admin/models"
	"github.com/kimanzi254/consult_admin/notifications"
)

const stalePendingAge = 48 * time.Hour

// SendStalePendingDigest emails the admins a digest of bookings that have
// been waiting for a decision too long.
func SendStalePendingDigest() {
	log.Println("Running job: SendStalePendingDigest...")

	cutoff := time.Now().Add(-stalePendingAge)

	var bookings []models.Booking
	err := database.DB.
		Preload("Client").
		Where("status = ? AND created_at < ?", models.BookingStatusPending, cutoff).
		Order("created_at asc").
		Find(&bookings).Error
	if err != nil {
		log.Printf("Error checking for stale pending bookings: %v", err)
		return
	}

	if len(bookings) == 0 {
		return
	}

	admins, err := adminUsers()
	if err != nil {
		log.Printf("Error fetching admin users: %v", err)
		return
	}

	var rows strings.Builder
	for _, booking := range bookings {
		rows.WriteString(fmt.Sprintf(
			"<li>'%s' from %s, requested %s</li>",
			booking.Topic,
			booking.Client.FullName,
			booking.CreatedAt.Format("January 2, 2006"),
		))
	}

	emailSubject := fmt.Sprintf("%d Bookings Awaiting a Decision", len(bookings))
	emailBody := fmt.Sprintf(
		"<h1>Pending Bookings Digest</h1><p>These bookings have been pending for more than 48 hours:</p><ul>%s</ul>",
		rows.String(),
	)

	for _, admin := range admins {
		go notifications.SendEmail(admin.FullName, admin.Email, emailSubject, emailBody)
	}
}
