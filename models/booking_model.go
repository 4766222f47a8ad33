package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingStatusPending  = "pending"
	BookingStatusApproved = "approved"
	BookingStatusRejected = "rejected"
)

type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ClientID  uuid.UUID `gorm:"not null" json:"client_id"`
	ExpertID  uuid.UUID `gorm:"not null" json:"expert_id"`
	Topic     string    `gorm:"size:255;not null" json:"topic"`
	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	Status    string    `gorm:"size:20;not null;default:'pending'" json:"status"`

	RejectionReason *string `gorm:"type:text" json:"rejection_reason,omitempty"`
	MeetingLink     *string `gorm:"size:255" json:"meeting_link,omitempty"`

	Client User `gorm:"foreignkey:ClientID" json:"client,omitempty"`
	Expert User `gorm:"foreignkey:ExpertID" json:"expert,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
