package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/zuhrulumam/code-builders-hub/internal/app_errors"
	"github.com/zuhrulumam/code-builders-hub/internal/models"
	"github.com/zuhrulumam/code-builders-hub/pkg/logger"
)

type catalogRepo interface {
	CourseBySlug(ctx context.Context, slug string) (*models.Course, error)
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
	ChaptersByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Chapter, error)
	LessonBySlug(ctx context.Context, courseID uuid.UUID, slug string) (*models.Lesson, error)
	LessonsByChapter(ctx context.Context, chapterID uuid.UUID) ([]models.Lesson, error)
	LessonsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lesson, error)
	CountLessons(ctx context.Context, courseID uuid.UUID) (int, error)
}

type coverRepo interface {
	GetCoverURL(ctx context.Context, objectKey string) (string, error)
}

type CatalogService struct {
	log         logger.Log
	catalogRepo catalogRepo
	coverRepo   coverRepo
}

// NewCatalogService accepts a nil coverRepo when object storage is disabled;
// cover URLs are then simply omitted.
func NewCatalogService(log logger.Log, catalogRepo catalogRepo, coverRepo coverRepo) *CatalogService {
	return &CatalogService{log: log, catalogRepo: catalogRepo, coverRepo: coverRepo}
}

// Courses lists the storefront catalog: drafts are invisible, coming soon
// courses show so the waitlist can fill.
func (s *CatalogService) Courses(ctx context.Context) ([]models.Course, error) {
	all, err := s.catalogRepo.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	visible := make([]models.Course, 0, len(all))
	for _, c := range all {
		if c.Status == models.CourseStatusDraft {
			continue
		}
		visible = append(visible, c)
	}
	return visible, nil
}

func (s *CatalogService) CourseDetail(ctx context.Context, slug string) (*models.CourseDetail, error) {
	course, err := s.catalogRepo.CourseBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if course.Status == models.CourseStatusDraft {
		return nil, app_errors.ErrCourseNotFound
	}

	detail := models.CourseDetail{Course: *course}

	if s.coverRepo != nil && course.CoverObjectKey != "" {
		url, err := s.coverRepo.GetCoverURL(ctx, course.CoverObjectKey)
		if err != nil {
			s.log.ErrorErr("CourseDetail: failed to get cover URL", err)
		} else {
			detail.CoverURL = url
		}
	}

	chapters, err := s.catalogRepo.ChaptersByCourse(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	for _, ch := range chapters {
		lessons, err := s.catalogRepo.LessonsByChapter(ctx, ch.ID)
		if err != nil {
			return nil, err
		}
		for _, l := range lessons {
			detail.TotalLessons++
			detail.TotalMinutes += l.DurationMinutes
		}
		detail.Curriculum = append(detail.Curriculum, models.Section{
			Chapter: ch,
			Lessons: lessons,
		})
	}

	return &detail, nil
}

// Lesson resolves a lesson by course and lesson slug. The caller decides
// whether the requester may see the content.
func (s *CatalogService) Lesson(ctx context.Context, courseSlug, lessonSlug string) (*models.Course, *models.Lesson, error) {
	course, err := s.catalogRepo.CourseBySlug(ctx, courseSlug)
	if err != nil {
		return nil, nil, err
	}
	if course.Status == models.CourseStatusDraft {
		return nil, nil, app_errors.ErrCourseNotFound
	}
	lesson, err := s.catalogRepo.LessonBySlug(ctx, course.ID, lessonSlug)
	if err != nil {
		return nil, nil, err
	}
	return course, lesson, nil
}

func (s *CatalogService) CourseBySlug(ctx context.Context, slug string) (*models.Course, error) {
	return s.catalogRepo.CourseBySlug(ctx, slug)
}

func (s *CatalogService) CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return s.catalogRepo.CourseByID(ctx, id)
}

func (s *CatalogService) CourseLessons(ctx context.Context, courseID uuid.UUID) ([]models.Lesson, error) {
	return s.catalogRepo.LessonsByCourse(ctx, courseID)
}

func (s *CatalogService) GetCoverURL(ctx context.Context, courseID uuid.UUID) (string, error) {
	course, err := s.catalogRepo.CourseByID(ctx, courseID)
	if err != nil {
		return "", err
	}
	if s.coverRepo == nil || course.CoverObjectKey == "" {
		return "", app_errors.ErrCoverNotFound
	}
	url, err := s.coverRepo.GetCoverURL(ctx, course.CoverObjectKey)
	if err != nil {
		s.log.ErrorErr("failed to get cover URL", err)
		return "", err
	}
	return url, nil
}
