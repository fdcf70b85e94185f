package curriculum

import (
	"context"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/zuhrulumam/code-builders-hub/internal/app_errors"
	"github.com/zuhrulumam/code-builders-hub/internal/models"
	"github.com/zuhrulumam/code-builders-hub/pkg/logger"
)

const maxCoverSizeBytes = 5 << 20

type catalogRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	ChapterByID(ctx context.Context, id uuid.UUID) (*models.Chapter, error)
	LessonByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error)
	UpdateCourseCover(ctx context.Context, courseID uuid.UUID, objectKey string) error
	InsertChapter(ctx context.Context, chapter models.Chapter) (*models.Chapter, error)
	MaxChapterOrder(ctx context.Context, courseID uuid.UUID) (int, error)
	MaxLessonOrder(ctx context.Context, chapterID uuid.UUID) (int, error)
	InsertLesson(ctx context.Context, lesson models.Lesson) (*models.Lesson, error)
	DeleteLessonAndReorder(ctx context.Context, lessonID, chapterID uuid.UUID, orderIndex int) error
	DeleteChapterAndReorder(ctx context.Context, chapterID, courseID uuid.UUID, orderIndex int) error
	SwapLessons(ctx context.Context, lessonID1, lessonID2 uuid.UUID) error
	SwapChapters(ctx context.Context, chapterID1, chapterID2 uuid.UUID) error
}

type coverRepo interface {
	UploadCover(ctx context.Context, courseID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
	GetCoverURL(ctx context.Context, objectKey string) (string, error)
	DeleteCover(ctx context.Context, objectKey string) error
}

// CurriculumService is the admin-side write path for catalog structure.
// Everything here keeps order indexes dense: 1..N per parent with no gaps.
type CurriculumService struct {
	log         logger.Log
	catalogRepo catalogRepo
	coverRepo   coverRepo
}

func NewCurriculumService(log logger.Log, catalogRepo catalogRepo, coverRepo coverRepo) *CurriculumService {
	return &CurriculumService{log: log, catalogRepo: catalogRepo, coverRepo: coverRepo}
}

// CreateChapter appends a chapter when orderIndex is zero, or inserts at the
// given position shifting the rest down.
func (s *CurriculumService) CreateChapter(ctx context.Context, courseID uuid.UUID, title string, orderIndex int) (*models.Chapter, error) {
	if _, err := s.catalogRepo.CourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	if orderIndex <= 0 {
		max, err := s.catalogRepo.MaxChapterOrder(ctx, courseID)
		if err != nil {
			return nil, err
		}
		orderIndex = max + 1
	}
	chapter, err := s.catalogRepo.InsertChapter(ctx, models.Chapter{
		CourseID:   courseID,
		Title:      title,
		OrderIndex: orderIndex,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("chapter created",
		"course_id", courseID.String(), "chapter_id", chapter.ID.String())
	return chapter, nil
}

func (s *CurriculumService) CreateLesson(ctx context.Context, lesson models.Lesson) (*models.Lesson, error) {
	chapter, err := s.catalogRepo.ChapterByID(ctx, lesson.ChapterID)
	if err != nil {
		return nil, err
	}
	lesson.CourseID = chapter.CourseID

	if lesson.OrderIndex <= 0 {
		max, err := s.catalogRepo.MaxLessonOrder(ctx, lesson.ChapterID)
		if err != nil {
			return nil, err
		}
		lesson.OrderIndex = max + 1
	}
	created, err := s.catalogRepo.InsertLesson(ctx, lesson)
	if err != nil {
		return nil, err
	}
	s.log.Info("lesson created",
		"chapter_id", chapter.ID.String(), "lesson_id", created.ID.String())
	return created, nil
}

func (s *CurriculumService) DeleteLesson(ctx context.Context, lessonID uuid.UUID) error {
	lesson, err := s.catalogRepo.LessonByID(ctx, lessonID)
	if err != nil {
		return err
	}
	return s.catalogRepo.DeleteLessonAndReorder(ctx, lessonID, lesson.ChapterID, lesson.OrderIndex)
}

// DeleteChapter removes the chapter and all of its lessons, then closes the
// order gap among siblings.
func (s *CurriculumService) DeleteChapter(ctx context.Context, chapterID uuid.UUID) error {
	chapter, err := s.catalogRepo.ChapterByID(ctx, chapterID)
	if err != nil {
		return err
	}
	return s.catalogRepo.DeleteChapterAndReorder(ctx, chapterID, chapter.CourseID, chapter.OrderIndex)
}

func (s *CurriculumService) SwapLessons(ctx context.Context, lessonID1, lessonID2 uuid.UUID) error {
	l1, err := s.catalogRepo.LessonByID(ctx, lessonID1)
	if err != nil {
		return err
	}
	l2, err := s.catalogRepo.LessonByID(ctx, lessonID2)
	if err != nil {
		return err
	}
	if l1.ChapterID != l2.ChapterID {
		return app_errors.ErrChaptersDiffer
	}
	return s.catalogRepo.SwapLessons(ctx, lessonID1, lessonID2)
}

func (s *CurriculumService) SwapChapters(ctx context.Context, chapterID1, chapterID2 uuid.UUID) error {
	c1, err := s.catalogRepo.ChapterByID(ctx, chapterID1)
	if err != nil {
		return err
	}
	c2, err := s.catalogRepo.ChapterByID(ctx, chapterID2)
	if err != nil {
		return err
	}
	if c1.CourseID != c2.CourseID {
		return app_errors.ErrCoursesDiffer
	}
	return s.catalogRepo.SwapChapters(ctx, chapterID1, chapterID2)
}

func (s *CurriculumService) UploadCover(
	ctx context.Context,
	courseID uuid.UUID,
	filename string,
	reader io.Reader,
	size int64,
	contentType string,
) (string, error) {
	if s.coverRepo == nil {
		return "", app_errors.ErrCoverNotFound
	}
	course, err := s.catalogRepo.CourseByID(ctx, courseID)
	if err != nil {
		return "", err
	}

	if size > maxCoverSizeBytes {
		return "", app_errors.ErrFileSize
	}
	if contentType == "" {
		contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", app_errors.ErrNotImage
	}

	if course.CoverObjectKey != "" {
		if err := s.coverRepo.DeleteCover(ctx, course.CoverObjectKey); err != nil {
			s.log.ErrorErr("failed to delete previous cover", err)
		}
	}

	objectKey, err := s.coverRepo.UploadCover(ctx, courseID, filename, reader, size, contentType)
	if err != nil {
		s.log.ErrorErr("failed to upload cover to storage", err)
		return "", err
	}
	if err = s.catalogRepo.UpdateCourseCover(ctx, courseID, objectKey); err != nil {
		s.log.ErrorErr("failed to save cover key", err)
		return "", err
	}

	url, err := s.coverRepo.GetCoverURL(ctx, objectKey)
	if err != nil {
		s.log.ErrorErr("failed to get presigned URL", err)
		return "", err
	}
	return url, nil
}
