package progress

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"

	"github.com/zuhrulumam/code-builders-hub/internal/app_errors"
	"github.com/zuhrulumam/code-builders-hub/internal/models"
	"github.com/zuhrulumam/code-builders-hub/internal/service/access"
	"github.com/zuhrulumam/code-builders-hub/pkg/logger"
)

type progressRepo interface {
	MarkCompleted(ctx context.Context, p models.LessonProgress) error
	IsCompleted(ctx context.Context, userID, lessonID uuid.UUID) (bool, error)
	ListByUserCourse(ctx context.Context, userID, courseID uuid.UUID) ([]models.LessonProgress, error)
	CountByUserCourse(ctx context.Context, userID, courseID uuid.UUID) (int, error)
}

type catalogRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	LessonByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error)
	CountLessons(ctx context.Context, courseID uuid.UUID) (int, error)
}

type enrollmentRepo interface {
	ActiveByUserCourse(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error)
}

type ProgressService struct {
	log            logger.Log
	progressRepo   progressRepo
	catalogRepo    catalogRepo
	enrollmentRepo enrollmentRepo
}

func NewProgressService(log logger.Log, progressRepo progressRepo, catalogRepo catalogRepo, enrollmentRepo enrollmentRepo) *ProgressService {
	return &ProgressService{
		log:            log,
		progressRepo:   progressRepo,
		catalogRepo:    catalogRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// Percentage converts a completed/total pair into a whole-number percent,
// rounded half up. A course with no lessons sits at zero.
func Percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// MarkLessonComplete records a completion. Repeats are no-ops, so the count
// behind the percentage never inflates.
func (s *ProgressService) MarkLessonComplete(ctx context.Context, userID, courseID, lessonID uuid.UUID) error {
	lesson, err := s.catalogRepo.LessonByID(ctx, lessonID)
	if err != nil {
		return err
	}
	if lesson.CourseID != courseID {
		return app_errors.ErrLessonNotInCourse
	}

	course, err := s.catalogRepo.CourseByID(ctx, courseID)
	if err != nil {
		return err
	}
	enrollment, err := s.enrollmentRepo.ActiveByUserCourse(ctx, userID, courseID)
	if err != nil && !errors.Is(err, app_errors.ErrEnrollmentNotFound) {
		return err
	}
	if !access.CanAccessLesson(course, lesson, enrollment) {
		return app_errors.ErrEnrollmentNotFound
	}

	err = s.progressRepo.MarkCompleted(ctx, models.LessonProgress{
		UserID:   userID,
		LessonID: lessonID,
		CourseID: courseID,
	})
	if err != nil {
		return err
	}
	s.log.Debug("lesson completed",
		"user_id", userID.String(), "lesson_id", lessonID.String())
	return nil
}

func (s *ProgressService) IsLessonCompleted(ctx context.Context, userID, lessonID uuid.UUID) (bool, error) {
	return s.progressRepo.IsCompleted(ctx, userID, lessonID)
}

func (s *ProgressService) CompletedLessons(ctx context.Context, userID, courseID uuid.UUID) ([]models.LessonProgress, error) {
	return s.progressRepo.ListByUserCourse(ctx, userID, courseID)
}

// CourseProgress derives the percentage from the completion records and the
// current lesson count. Nothing is stored, so curriculum edits are always
// reflected.
func (s *ProgressService) CourseProgress(ctx context.Context, userID, courseID uuid.UUID) (int, error) {
	completed, err := s.progressRepo.CountByUserCourse(ctx, userID, courseID)
	if err != nil {
		return 0, err
	}
	total, err := s.catalogRepo.CountLessons(ctx, courseID)
	if err != nil {
		return 0, err
	}
	return Percentage(completed, total), nil
}
