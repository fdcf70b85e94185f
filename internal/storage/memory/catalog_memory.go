package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zuhrulumam/code-builders-hub/internal/app_errors"
	"github.com/zuhrulumam/code-builders-hub/internal/models"
	"github.com/zuhrulumam/code-builders-hub/internal/storage/seed"
)

// CatalogMemory holds the course/chapter/lesson reference data. Reads hand
// out copies; the only writers are the admin curriculum operations, serialized
// by the mutex.
type CatalogMemory struct {
	mu       sync.Mutex
	courses  map[uuid.UUID]models.Course
	chapters map[uuid.UUID]models.Chapter
	lessons  map[uuid.UUID]models.Lesson
	bySlug   map[string]uuid.UUID
}

func NewCatalogMemory(data *seed.Data) *CatalogMemory {
	s := &CatalogMemory{
		courses:  make(map[uuid.UUID]models.Course),
		chapters: make(map[uuid.UUID]models.Chapter),
		lessons:  make(map[uuid.UUID]models.Lesson),
		bySlug:   make(map[string]uuid.UUID),
	}
	if data != nil {
		for _, c := range data.Courses {
			s.courses[c.ID] = c
			s.bySlug[c.Slug] = c.ID
		}
		for _, ch := range data.Chapters {
			s.chapters[ch.ID] = ch
		}
		for _, l := range data.Lessons {
			s.lessons[l.ID] = l
		}
	}
	return s
}

func (s *CatalogMemory) CourseBySlug(ctx context.Context, slug string) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.bySlug[slug]
	if !ok {
		return nil, app_errors.ErrCourseNotFound
	}
	c := s.courses[id]
	return &c, nil
}

func (s *CatalogMemory) CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courses[id]
	if !ok {
		return nil, app_errors.ErrCourseNotFound
	}
	return &c, nil
}

func (s *CatalogMemory) ListCourses(ctx context.Context) ([]models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	courses := make([]models.Course, 0, len(s.courses))
	for _, c := range s.courses {
		courses = append(courses, c)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].OrderIndex < courses[j].OrderIndex })
	return courses, nil
}

func (s *CatalogMemory) ChapterByID(ctx context.Context, id uuid.UUID) (*models.Chapter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.chapters[id]
	if !ok {
		return nil, app_errors.ErrChapterNotFound
	}
	return &ch, nil
}

func (s *CatalogMemory) ChaptersByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Chapter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var chapters []models.Chapter
	for _, ch := range s.chapters {
		if ch.CourseID == courseID {
			chapters = append(chapters, ch)
		}
	}
	sort.Slice(chapters, func(i, j int) bool { return chapters[i].OrderIndex < chapters[j].OrderIndex })
	return chapters, nil
}

func (s *CatalogMemory) LessonByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lessons[id]
	if !ok {
		return nil, app_errors.ErrLessonNotFound
	}
	return &l, nil
}

func (s *CatalogMemory) LessonBySlug(ctx context.Context, courseID uuid.UUID, slug string) (*models.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.lessons {
		if l.CourseID == courseID && l.Slug == slug {
			lesson := l
			return &lesson, nil
		}
	}
	return nil, app_errors.ErrLessonNotFound
}

func (s *CatalogMemory) LessonsByChapter(ctx context.Context, chapterID uuid.UUID) ([]models.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lessonsByChapterLocked(chapterID), nil
}

func (s *CatalogMemory) lessonsByChapterLocked(chapterID uuid.UUID) []models.Lesson {
	var lessons []models.Lesson
	for _, l := range s.lessons {
		if l.ChapterID == chapterID {
			lessons = append(lessons, l)
		}
	}
	sort.Slice(lessons, func(i, j int) bool { return lessons[i].OrderIndex < lessons[j].OrderIndex })
	return lessons
}

func (s *CatalogMemory) LessonsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var lessons []models.Lesson
	for _, l := range s.lessons {
		if l.CourseID == courseID {
			lessons = append(lessons, l)
		}
	}
	chapterOrder := make(map[uuid.UUID]int)
	for _, ch := range s.chapters {
		if ch.CourseID == courseID {
			chapterOrder[ch.ID] = ch.OrderIndex
		}
	}
	sort.Slice(lessons, func(i, j int) bool {
		if chapterOrder[lessons[i].ChapterID] != chapterOrder[lessons[j].ChapterID] {
			return chapterOrder[lessons[i].ChapterID] < chapterOrder[lessons[j].ChapterID]
		}
		return lessons[i].OrderIndex < lessons[j].OrderIndex
	})
	return lessons, nil
}

func (s *CatalogMemory) CountLessons(ctx context.Context, courseID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, l := range s.lessons {
		if l.CourseID == courseID {
			count++
		}
	}
	return count, nil
}

func (s *CatalogMemory) UpdateCourseCover(ctx context.Context, courseID uuid.UUID, objectKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courses[courseID]
	if !ok {
		return app_errors.ErrCourseNotFound
	}
	c.CoverObjectKey = objectKey
	c.UpdatedAt = time.Now().UTC()
	s.courses[courseID] = c
	return nil
}

// InsertChapter places the chapter at its order index, shifting later
// chapters of the same course up by one so indexes stay dense and unique.
func (s *CatalogMemory) InsertChapter(ctx context.Context, chapter models.Chapter) (*models.Chapter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ch := range s.chapters {
		if ch.CourseID == chapter.CourseID && ch.OrderIndex >= chapter.OrderIndex {
			ch.OrderIndex++
			s.chapters[id] = ch
		}
	}
	now := time.Now().UTC()
	if chapter.ID == uuid.Nil {
		chapter.ID = uuid.New()
	}
	chapter.CreatedAt = now
	chapter.UpdatedAt = now
	s.chapters[chapter.ID] = chapter
	return &chapter, nil
}

func (s *CatalogMemory) MaxChapterOrder(ctx context.Context, courseID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	max := 0
	for _, ch := range s.chapters {
		if ch.CourseID == courseID && ch.OrderIndex > max {
			max = ch.OrderIndex
		}
	}
	return max, nil
}

func (s *CatalogMemory) MaxLessonOrder(ctx context.Context, chapterID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	max := 0
	for _, l := range s.lessons {
		if l.ChapterID == chapterID && l.OrderIndex > max {
			max = l.OrderIndex
		}
	}
	return max, nil
}

func (s *CatalogMemory) InsertLesson(ctx context.Context, lesson models.Lesson) (*models.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.lessons {
		if l.ChapterID == lesson.ChapterID && l.OrderIndex == lesson.OrderIndex {
			return nil, app_errors.ErrDuplicateLesson
		}
	}
	now := time.Now().UTC()
	if lesson.ID == uuid.Nil {
		lesson.ID = uuid.New()
	}
	lesson.CreatedAt = now
	lesson.UpdatedAt = now
	s.lessons[lesson.ID] = lesson
	return &lesson, nil
}

func (s *CatalogMemory) DeleteLessonAndReorder(ctx context.Context, lessonID, chapterID uuid.UUID, orderIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lessons[lessonID]; !ok {
		return app_errors.ErrLessonNotFound
	}
	delete(s.lessons, lessonID)
	for id, l := range s.lessons {
		if l.ChapterID == chapterID && l.OrderIndex > orderIndex {
			l.OrderIndex--
			s.lessons[id] = l
		}
	}
	return nil
}

// DeleteChapterAndReorder removes the chapter with its lessons and closes the
// order gap among the remaining chapters of the course.
func (s *CatalogMemory) DeleteChapterAndReorder(ctx context.Context, chapterID, courseID uuid.UUID, orderIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.chapters[chapterID]; !ok {
		return app_errors.ErrChapterNotFound
	}
	for id, l := range s.lessons {
		if l.ChapterID == chapterID {
			delete(s.lessons, id)
		}
	}
	delete(s.chapters, chapterID)
	for id, ch := range s.chapters {
		if ch.CourseID == courseID && ch.OrderIndex > orderIndex {
			ch.OrderIndex--
			s.chapters[id] = ch
		}
	}
	return nil
}

func (s *CatalogMemory) SwapLessons(ctx context.Context, lessonID1, lessonID2 uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l1, ok := s.lessons[lessonID1]
	if !ok {
		return app_errors.ErrLessonNotFound
	}
	l2, ok := s.lessons[lessonID2]
	if !ok {
		return app_errors.ErrLessonNotFound
	}
	l1.OrderIndex, l2.OrderIndex = l2.OrderIndex, l1.OrderIndex
	s.lessons[lessonID1] = l1
	s.lessons[lessonID2] = l2
	return nil
}

func (s *CatalogMemory) SwapChapters(ctx context.Context, chapterID1, chapterID2 uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch1, ok := s.chapters[chapterID1]
	if !ok {
		return app_errors.ErrChapterNotFound
	}
	ch2, ok := s.chapters[chapterID2]
	if !ok {
		return app_errors.ErrChapterNotFound
	}
	ch1.OrderIndex, ch2.OrderIndex = ch2.OrderIndex, ch1.OrderIndex
	s.chapters[chapterID1] = ch1
	s.chapters[chapterID2] = ch2
	return nil
}
