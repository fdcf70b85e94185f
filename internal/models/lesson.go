package models

import (
	"time"

	"github.com/google/uuid"
)

type Lesson struct {
	ID              uuid.UUID `json:"id"`
	ChapterID       uuid.UUID `json:"chapter_id"`
	CourseID        uuid.UUID `json:"course_id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	OrderIndex      int       `json:"order_index"`
	IsFreePreview   bool      `json:"is_free_preview"`
	VideoURL        *string   `json:"video_url,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	ContentMarkdown string    `json:"content_markdown,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
