package models

import (
	"time"

	"github.com/google/uuid"
)

// LessonProgress marks one lesson completed by one user. At most one record
// exists per (user, lesson); completing an already-completed lesson is a no-op.
type LessonProgress struct {
	UserID      uuid.UUID `json:"user_id"`
	LessonID    uuid.UUID `json:"lesson_id"`
	CourseID    uuid.UUID `json:"course_id"`
	CompletedAt time.Time `json:"completed_at"`
}
