package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/kimanzi254/consult_admin/dashboard"
	"github.com/kimanzi254/consult_admin/models"
	"github.com/kimanzi254/consult_admin/notifications"
	"github.com/kimanzi254/consult_admin/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AdminBookingService is the booking collaborator backing the admin
// dashboard. It implements dashboard.BookingAPI against Postgres.
type AdminBookingService struct {
	DB             *gorm.DB
	MeetingBaseURL string
}

func NewAdminBookingService(db *gorm.DB, meetingBaseURL string) *AdminBookingService {
	return &AdminBookingService{DB: db, MeetingBaseURL: meetingBaseURL}
}

func (s *AdminBookingService) FetchBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.WithContext(ctx).
		Preload("Client").
		Preload("Expert").
		Order("start_time asc").
		Find(&bookings).Error
	if err != nil {
		log.Printf("🔥 Failed to fetch bookings: %v", err)
		return nil, dashboard.NewRemoteError("Failed to fetch bookings")
	}
	return bookings, nil
}

func (s *AdminBookingService) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status string, reason *string) error {
	if status != models.BookingStatusApproved && status != models.BookingStatusRejected {
		return dashboard.NewRemoteError(fmt.Sprintf("Invalid target status: %s", status))
	}

	var booking models.Booking
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Client").Preload("Expert").
			First(&booking, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dashboard.NewRemoteError("Booking not found")
			}
			return err
		}

		if booking.Status != models.BookingStatusPending {
			return dashboard.NewRemoteError("Only pending bookings can be approved or rejected")
		}
		if status == models.BookingStatusRejected && (reason == nil || *reason == "") {
			return dashboard.NewRemoteError("A rejection reason is required")
		}

		booking.Status = status
		if status == models.BookingStatusRejected {
			booking.RejectionReason = reason
		}
		return tx.Save(&booking).Error
	})
	if err != nil {
		var remote *dashboard.RemoteError
		if errors.As(err, &remote) {
			return remote
		}
		log.Printf("🔥 Failed to update booking %s: %v", id, err)
		return dashboard.NewRemoteError("Failed to update booking status")
	}

	go s.notifyStatusChange(booking)
	return nil
}

func (s *AdminBookingService) GenerateMeetingLink(ctx context.Context, id uuid.UUID) (string, error) {
	var link string
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Client").Preload("Expert").
			First(&booking, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dashboard.NewRemoteError("Booking not found")
			}
			return err
		}

		// A minted link is permanent; repeated requests hand back the same one.
		if booking.MeetingLink != nil {
			link = *booking.MeetingLink
			return nil
		}
		if booking.Status != models.BookingStatusApproved {
			return dashboard.NewRemoteError("Meeting links can only be generated for approved bookings")
		}

		minted, err := utils.GenerateUniqueMeetingLink(tx, s.MeetingBaseURL)
		if err != nil {
			return err
		}
		booking.MeetingLink = &minted
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}
		link = minted

		emailBody := fmt.Sprintf(
			"<h1>Your Session Link is Ready</h1><p>Join your consultation at the scheduled time:</p><p><a href='%s'>%s</a></p>",
			minted, minted,
		)
		go notifications.SendEmail(booking.Client.FullName, booking.Client.Email, "Your Meeting Link", emailBody)
		go notifications.SendEmail(booking.Expert.FullName, booking.Expert.Email, "Meeting Link for Your Session", emailBody)
		return nil
	})
	if err != nil {
		var remote *dashboard.RemoteError
		if errors.As(err, &remote) {
			return "", remote
		}
		log.Printf("🔥 Failed to generate meeting link for booking %s: %v", id, err)
		return "", dashboard.NewRemoteError("Failed to generate meeting link")
	}
	return link, nil
}

func (s *AdminBookingService) notifyStatusChange(booking models.Booking) {
	switch booking.Status {
	case models.BookingStatusApproved:
		notifications.SendEmail(
			booking.Client.FullName,
			booking.Client.Email,
			"Your Booking has been Approved!",
			fmt.Sprintf("<h1>Booking Approved</h1><p>Your consultation '%s' has been approved. A meeting link will follow shortly.</p>", booking.Topic),
		)
	case models.BookingStatusRejected:
		reason := ""
		if booking.RejectionReason != nil {
			reason = *booking.RejectionReason
		}
		notifications.SendEmail(
			booking.Client.FullName,
			booking.Client.Email,
			"Update on Your Booking",
			fmt.Sprintf("<h1>Booking Update</h1><p>We are sorry, your consultation '%s' could not be accommodated.</p><p><b>Reason:</b> %s</p>", booking.Topic, reason),
		)
	}
}
