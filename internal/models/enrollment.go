package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment lifecycle of an enrollment. pending is created optimistically
// before a gateway redirect; paid, free and failed are terminal. A retry
// after a failure is a new enrollment record, never a mutation.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFree    = "free"
	PaymentStatusFailed  = "failed"
)

type Enrollment struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	CourseID      uuid.UUID `json:"course_id"`
	PaymentStatus string    `json:"payment_status"`
	EnrolledAt    time.Time `json:"enrolled_at"`
}

// EnrolledCourse is the dashboard read model: an enrollment joined with its
// course and the progress percentage derived from the progress tracker.
type EnrolledCourse struct {
	Enrollment Enrollment `json:"enrollment"`
	Course     Course     `json:"course"`
	Progress   int        `json:"progress"`
}
