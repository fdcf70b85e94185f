package models

import (
	"time"

	"github.com/google/uuid"
)

type Chapter struct {
	ID         uuid.UUID `json:"id"`
	CourseID   uuid.UUID `json:"course_id"`
	Title      string    `json:"title"`
	OrderIndex int       `json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Section is one chapter with its lessons in display order.
type Section struct {
	Chapter Chapter  `json:"chapter"`
	Lessons []Lesson `json:"lessons"`
}
