package waitlist

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/zuhrulumam/code-builders-hub/internal/app_errors"
	"github.com/zuhrulumam/code-builders-hub/internal/models"
	"github.com/zuhrulumam/code-builders-hub/pkg/logger"
)

var (
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	whatsappRe = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
)

type waitlistRepo interface {
	Create(ctx context.Context, w models.WaitlistEntry) (*models.WaitlistEntry, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.WaitlistEntry, error)
	ListAll(ctx context.Context) ([]models.WaitlistEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
}

type WaitlistService struct {
	log          logger.Log
	waitlistRepo waitlistRepo
	courseRepo   courseRepo
}

func NewWaitlistService(log logger.Log, waitlistRepo waitlistRepo, courseRepo courseRepo) *WaitlistService {
	return &WaitlistService{log: log, waitlistRepo: waitlistRepo, courseRepo: courseRepo}
}

// Join adds a contact to a course waitlist. Any non-draft course accepts
// signups; coming soon is the usual case.
func (s *WaitlistService) Join(ctx context.Context, courseID uuid.UUID, contactType, contactValue string) (*models.WaitlistEntry, error) {
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.Status == models.CourseStatusDraft {
		return nil, app_errors.ErrCourseNotFound
	}

	contactValue = strings.TrimSpace(contactValue)
	switch contactType {
	case models.ContactTypeEmail:
		if !emailRe.MatchString(contactValue) {
			return nil, app_errors.ErrInvalidContact
		}
	case models.ContactTypeWhatsApp:
		if !whatsappRe.MatchString(contactValue) {
			return nil, app_errors.ErrInvalidContact
		}
	default:
		return nil, app_errors.ErrInvalidContact
	}

	entry, err := s.waitlistRepo.Create(ctx, models.WaitlistEntry{
		CourseID:     courseID,
		ContactType:  contactType,
		ContactValue: contactValue,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("waitlist signup",
		"course_id", courseID.String(), "contact_type", contactType)
	return entry, nil
}

func (s *WaitlistService) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.WaitlistEntry, error) {
	return s.waitlistRepo.ListByCourse(ctx, courseID)
}

func (s *WaitlistService) AllEntries(ctx context.Context) ([]models.WaitlistEntry, error) {
	return s.waitlistRepo.ListAll(ctx)
}

func (s *WaitlistService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.waitlistRepo.Delete(ctx, id)
}
