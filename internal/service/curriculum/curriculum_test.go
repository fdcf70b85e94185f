package curriculum

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zuhrulumam/code-builders-hub/internal/app_errors"
	"github.com/zuhrulumam/code-builders-hub/internal/models"
	"github.com/zuhrulumam/code-builders-hub/internal/storage/memory"
	"github.com/zuhrulumam/code-builders-hub/internal/storage/seed"
	"github.com/zuhrulumam/code-builders-hub/pkg/logger"
)

// fakeCovers records upload calls in place of the object store.
type fakeCovers struct {
	uploaded map[string]string
	deleted  []string
}

func newFakeCovers() *fakeCovers {
	return &fakeCovers{uploaded: map[string]string{}}
}

func (f *fakeCovers) UploadCover(ctx context.Context, courseID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	key := "courses/" + courseID.String() + "/" + filename
	f.uploaded[key] = contentType
	return key, nil
}

func (f *fakeCovers) GetCoverURL(ctx context.Context, objectKey string) (string, error) {
	return "https://covers.local/" + objectKey, nil
}

func (f *fakeCovers) DeleteCover(ctx context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

type fixture struct {
	svc      *CurriculumService
	catalog  *memory.CatalogMemory
	covers   *fakeCovers
	courseA  models.Course
	courseB  models.Course
	chapters []models.Chapter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	data, err := seed.Build(seed.File{
		Courses: []seed.Course{
			{
				Title: "Course A", Slug: "course-a",
				Status: models.CourseStatusPublished, IsFree: true, OrderIndex: 1,
				Chapters: []seed.Chapter{
					{Title: "First", OrderIndex: 1, Lessons: []seed.Lesson{
						{Title: "One", Slug: "one", OrderIndex: 1, DurationMinutes: 5},
						{Title: "Two", Slug: "two", OrderIndex: 2, DurationMinutes: 5},
					}},
					{Title: "Second", OrderIndex: 2, Lessons: []seed.Lesson{
						{Title: "Three", Slug: "three", OrderIndex: 1, DurationMinutes: 5},
					}},
				},
			},
			{
				Title: "Course B", Slug: "course-b",
				Status: models.CourseStatusPublished, IsFree: true, OrderIndex: 2,
				Chapters: []seed.Chapter{
					{Title: "Only", OrderIndex: 1, Lessons: []seed.Lesson{
						{Title: "Solo", Slug: "solo", OrderIndex: 1, DurationMinutes: 5},
					}},
				},
			},
		},
	})
	require.NoError(t, err)

	catalog := memory.NewCatalogMemory(data)
	covers := newFakeCovers()
	f := &fixture{
		svc:     NewCurriculumService(logger.Discard(), catalog, covers),
		catalog: catalog,
		covers:  covers,
	}
	for _, c := range data.Courses {
		if c.Slug == "course-a" {
			f.courseA = c
		} else {
			f.courseB = c
		}
	}
	chapters, err := catalog.ChaptersByCourse(context.Background(), f.courseA.ID)
	require.NoError(t, err)
	f.chapters = chapters
	return f
}

func (f *fixture) lessonsOf(t *testing.T, chapterID uuid.UUID) []models.Lesson {
	t.Helper()
	lessons, err := f.catalog.LessonsByChapter(context.Background(), chapterID)
	require.NoError(t, err)
	return lessons
}

func TestCreateChapter_AppendsWhenNoOrderGiven(t *testing.T) {
	f := newFixture(t)

	chapter, err := f.svc.CreateChapter(context.Background(), f.courseA.ID, "Appended", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, chapter.OrderIndex)
	assert.Equal(t, f.courseA.ID, chapter.CourseID)
}

func TestCreateChapter_InsertKeepsOrderDense(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateChapter(ctx, f.courseA.ID, "Inserted", 2)
	require.NoError(t, err)

	chapters, err := f.catalog.ChaptersByCourse(ctx, f.courseA.ID)
	require.NoError(t, err)
	require.Len(t, chapters, 3)
	for i, ch := range chapters {
		assert.Equal(t, i+1, ch.OrderIndex)
	}
	assert.Equal(t, "First", chapters[0].Title)
	assert.Equal(t, "Inserted", chapters[1].Title)
	assert.Equal(t, "Second", chapters[2].Title)
}

func TestCreateChapter_UnknownCourse(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateChapter(context.Background(), uuid.New(), "Orphan", 0)
	assert.ErrorIs(t, err, app_errors.ErrCourseNotFound)
}

func TestCreateLesson_DerivesCourseFromChapter(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.CreateLesson(context.Background(), models.Lesson{
		ChapterID:       f.chapters[0].ID,
		Title:           "Appended",
		Slug:            "appended",
		DurationMinutes: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, f.courseA.ID, created.CourseID)
	assert.Equal(t, 3, created.OrderIndex)
}

func TestDeleteLesson_ClosesOrderGap(t *testing.T) {
	f := newFixture(t)
	lessons := f.lessonsOf(t, f.chapters[0].ID)
	require.Len(t, lessons, 2)

	require.NoError(t, f.svc.DeleteLesson(context.Background(), lessons[0].ID))

	remaining := f.lessonsOf(t, f.chapters[0].ID)
	require.Len(t, remaining, 1)
	assert.Equal(t, "two", remaining[0].Slug)
	assert.Equal(t, 1, remaining[0].OrderIndex)
}

func TestDeleteChapter_RemovesLessonsAndReorders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.DeleteChapter(ctx, f.chapters[0].ID))

	chapters, err := f.catalog.ChaptersByCourse(ctx, f.courseA.ID)
	require.NoError(t, err)
	require.Len(t, chapters, 1)
	assert.Equal(t, "Second", chapters[0].Title)
	assert.Equal(t, 1, chapters[0].OrderIndex)

	count, err := f.catalog.CountLessons(ctx, f.courseA.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSwapLessons_SameChapterOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.lessonsOf(t, f.chapters[0].ID)
	second := f.lessonsOf(t, f.chapters[1].ID)

	require.NoError(t, f.svc.SwapLessons(ctx, first[0].ID, first[1].ID))
	swapped := f.lessonsOf(t, f.chapters[0].ID)
	assert.Equal(t, "two", swapped[0].Slug)
	assert.Equal(t, "one", swapped[1].Slug)

	err := f.svc.SwapLessons(ctx, first[0].ID, second[0].ID)
	assert.ErrorIs(t, err, app_errors.ErrChaptersDiffer)
}

func TestSwapChapters_SameCourseOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other, err := f.catalog.ChaptersByCourse(ctx, f.courseB.ID)
	require.NoError(t, err)

	err = f.svc.SwapChapters(ctx, f.chapters[0].ID, other[0].ID)
	assert.ErrorIs(t, err, app_errors.ErrCoursesDiffer)

	require.NoError(t, f.svc.SwapChapters(ctx, f.chapters[0].ID, f.chapters[1].ID))
	chapters, err := f.catalog.ChaptersByCourse(ctx, f.courseA.ID)
	require.NoError(t, err)
	assert.Equal(t, "Second", chapters[0].Title)
	assert.Equal(t, "First", chapters[1].Title)
}

func TestUploadCover(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	body := strings.NewReader("fake image bytes")

	url, err := f.svc.UploadCover(ctx, f.courseA.ID, "cover.png", body, int64(body.Len()), "image/png")
	require.NoError(t, err)
	assert.Contains(t, url, f.courseA.ID.String())

	course, err := f.catalog.CourseByID(ctx, f.courseA.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, course.CoverObjectKey)

	// Replacing the cover deletes the previous object.
	_, err = f.svc.UploadCover(ctx, f.courseA.ID, "cover2.png", strings.NewReader("x"), 1, "image/png")
	require.NoError(t, err)
	require.Len(t, f.covers.deleted, 1)
	assert.Equal(t, course.CoverObjectKey, f.covers.deleted[0])
}

func TestUploadCover_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.UploadCover(ctx, f.courseA.ID, "notes.txt", strings.NewReader("x"), 1, "text/plain")
	assert.ErrorIs(t, err, app_errors.ErrNotImage)

	_, err = f.svc.UploadCover(ctx, f.courseA.ID, "huge.png", strings.NewReader("x"), maxCoverSizeBytes+1, "image/png")
	assert.ErrorIs(t, err, app_errors.ErrFileSize)

	// Content type falls back to the file extension.
	_, err = f.svc.UploadCover(ctx, f.courseA.ID, "cover.jpg", strings.NewReader("x"), 1, "")
	assert.NoError(t, err)
}

func TestUploadCover_DisabledWithoutObjectStore(t *testing.T) {
	f := newFixture(t)
	svc := NewCurriculumService(logger.Discard(), f.catalog, nil)

	_, err := svc.UploadCover(context.Background(), f.courseA.ID, "cover.png", strings.NewReader("x"), 1, "image/png")
	assert.ErrorIs(t, err, app_errors.ErrCoverNotFound)
}
