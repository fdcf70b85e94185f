package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ContactTypeEmail    = "email"
	ContactTypeWhatsApp = "whatsapp"
)

// WaitlistEntry is a notify-me request for a course that has not launched.
type WaitlistEntry struct {
	ID           uuid.UUID `json:"id"`
	CourseID     uuid.UUID `json:"course_id"`
	ContactType  string    `json:"contact_type"`
	ContactValue string    `json:"contact_value"`
	CreatedAt    time.Time `json:"created_at"`
}
