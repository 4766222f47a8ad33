package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/kimanzi254/consult_admin/database"
	"github.com/kimanzi254/consult_admin/models"
	"github.com/kimanzi254/consult_admin/notifications"
)

// SendMissingLinkReminders nudges the admins about approved bookings that
// start soon but still have no meeting link.
func SendMissingLinkReminders() {
	log.Println("Running job: SendMissingLinkReminders...")

	now := time.Now()
	upperBound := now.Add(24 * time.Hour)

	var bookings []models.Booking
	err := database.DB.
		Preload("Client").
		Preload("Expert").
		Where("status = ? AND meeting_link IS NULL AND start_time BETWEEN ? AND ?",
			models.BookingStatusApproved, now, upperBound).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Error checking for bookings without meeting links: %v", err)
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

	for _, booking := range bookings {
		log.Printf("Booking %s starts at %s without a meeting link", booking.ID, booking.StartTime.Format(time.RFC3339))

		emailSubject := "Action Needed: Booking Without a Meeting Link"
		emailBody := fmt.Sprintf(
			"<h1>Missing Meeting Link</h1><p>The consultation '%s' between %s and %s starts at %s and still has no meeting link. Please generate one from the dashboard.</p>",
			booking.Topic,
			booking.Client.FullName,
			booking.Expert.FullName,
			booking.StartTime.Format(time.Kitchen),
		)

		for _, admin := range admins {
			go notifications.SendEmail(admin.FullName, admin.Email, emailSubject, emailBody)
		}
	}
}

func adminUsers() ([]models.User, error) {
	var admins []models.User
	err := database.DB.Where("role = ? AND is_active = ?", "admin", true).Find(&admins).Error
	return admins, err
}
