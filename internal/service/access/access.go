// Package access holds the rules deciding what a user may see. The functions
// are pure so both the services and the HTTP layer can share one truth.
package access

import (
	"github.com/zuhrulumam/code-builders-hub/internal/models"
)

// IsActive reports whether an enrollment grants access. Pending and failed
// attempts do not.
func IsActive(e *models.Enrollment) bool {
	if e == nil {
		return false
	}
	return e.PaymentStatus == models.PaymentStatusPaid || e.PaymentStatus == models.PaymentStatusFree
}

// CanAccessCourse reports whether the enrollment unlocks the course content
// as a whole. The course must be published regardless of enrollment state.
func CanAccessCourse(course *models.Course, enrollment *models.Enrollment) bool {
	if course == nil || course.Status != models.CourseStatusPublished {
		return false
	}
	return IsActive(enrollment)
}

// CanAccessLesson extends CanAccessCourse with the free preview escape
// hatch: preview lessons of a published course are open to everyone.
func CanAccessLesson(course *models.Course, lesson *models.Lesson, enrollment *models.Enrollment) bool {
	if course == nil || lesson == nil || course.Status != models.CourseStatusPublished {
		return false
	}
	if lesson.IsFreePreview {
		return true
	}
	return IsActive(enrollment)
}
