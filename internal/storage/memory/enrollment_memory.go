package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zuhrulumam/code-builders-hub/internal/app_errors"
	"github.com/zuhrulumam/code-builders-hub/internal/models"
)

// EnrollmentMemory is the in-memory enrollment ledger. Records are only
// appended or transitioned out of pending; nothing is ever deleted.
type EnrollmentMemory struct {
	mu      sync.Mutex
	records []models.Enrollment
}

func NewEnrollmentMemory() *EnrollmentMemory {
	return &EnrollmentMemory{}
}

func (s *EnrollmentMemory) Create(ctx context.Context, e models.Enrollment) (*models.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.EnrolledAt.IsZero() {
		e.EnrolledAt = time.Now().UTC()
	}
	s.records = append(s.records, e)
	return &e, nil
}

// ActiveByUserCourse returns the enrollment that grants access, if any.
func (s *EnrollmentMemory) ActiveByUserCourse(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		e := s.records[i]
		if e.UserID == userID && e.CourseID == courseID &&
			(e.PaymentStatus == models.PaymentStatusPaid || e.PaymentStatus == models.PaymentStatusFree) {
			return &e, nil
		}
	}
	return nil, app_errors.ErrEnrollmentNotFound
}

// LatestByUserCourse returns the most recent attempt regardless of status.
func (s *EnrollmentMemory) LatestByUserCourse(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *models.Enrollment
	for i := range s.records {
		e := s.records[i]
		if e.UserID != userID || e.CourseID != courseID {
			continue
		}
		if latest == nil || e.EnrolledAt.After(latest.EnrolledAt) {
			copied := e
			latest = &copied
		}
	}
	if latest == nil {
		return nil, app_errors.ErrEnrollmentNotFound
	}
	return latest, nil
}

func (s *EnrollmentMemory) LatestPendingByUserCourse(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *models.Enrollment
	for i := range s.records {
		e := s.records[i]
		if e.UserID != userID || e.CourseID != courseID || e.PaymentStatus != models.PaymentStatusPending {
			continue
		}
		if latest == nil || e.EnrolledAt.After(latest.EnrolledAt) {
			copied := e
			latest = &copied
		}
	}
	if latest == nil {
		return nil, app_errors.ErrNoPendingEnrollment
	}
	return latest, nil
}

func (s *EnrollmentMemory) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].PaymentStatus = status
			return nil
		}
	}
	return app_errors.ErrEnrollmentNotFound
}

func (s *EnrollmentMemory) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Enrollment
	for _, e := range s.records {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EnrolledAt.After(out[j].EnrolledAt) })
	return out, nil
}

func (s *EnrollmentMemory) ListAll(ctx context.Context) ([]models.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Enrollment, len(s.records))
	copy(out, s.records)
	sort.Slice(out, func(i, j int) bool { return out[i].EnrolledAt.After(out[j].EnrolledAt) })
	return out, nil
}
