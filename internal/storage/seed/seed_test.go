package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zuhrulumam/code-builders-hub/internal/app_errors"
	"github.com/zuhrulumam/code-builders-hub/internal/models"
)

func int64ptr(v int64) *int64 { return &v }

func validFile() File {
	return File{
		Courses: []Course{
			{
				Title:         "Build SaaS",
				Slug:          "build-saas",
				Price:         150000,
				DiscountPrice: int64ptr(99000),
				Status:        models.CourseStatusPublished,
				OrderIndex:    1,
				Chapters: []Chapter{
					{
						Title:      "Basics",
						OrderIndex: 1,
						Lessons: []Lesson{
							{Title: "Intro", Slug: "intro", OrderIndex: 1, IsFreePreview: true, DurationMinutes: 8},
							{Title: "Setup", Slug: "setup", OrderIndex: 2, DurationMinutes: 5},
						},
					},
					{
						Title:      "Advanced",
						OrderIndex: 2,
						Lessons: []Lesson{
							{Title: "Deploy", Slug: "deploy", OrderIndex: 1, DurationMinutes: 15},
						},
					},
				},
			},
			{
				Title:      "Coming Soon Course",
				Slug:       "coming-soon",
				Price:      200000,
				Status:     models.CourseStatusComingSoon,
				OrderIndex: 2,
			},
		},
	}
}

func TestBuild_Valid(t *testing.T) {
	data, err := Build(validFile())
	require.NoError(t, err)

	assert.Len(t, data.Courses, 2)
	assert.Len(t, data.Chapters, 2)
	assert.Len(t, data.Lessons, 3)

	for _, c := range data.Courses {
		assert.NotEqual(t, "", c.ID.String())
	}
	for _, l := range data.Lessons {
		assert.NotZero(t, l.CourseID)
		assert.NotZero(t, l.ChapterID)
	}
}

func TestBuild_DiscountMustBeBelowPrice(t *testing.T) {
	f := validFile()
	f.Courses[0].DiscountPrice = int64ptr(150000)

	_, err := Build(f)
	assert.ErrorIs(t, err, app_errors.ErrInvalidDiscount)

	f.Courses[0].DiscountPrice = int64ptr(200000)
	_, err = Build(f)
	assert.ErrorIs(t, err, app_errors.ErrInvalidDiscount)
}

func TestBuild_RejectsUnknownStatus(t *testing.T) {
	f := validFile()
	f.Courses[0].Status = "archived"

	_, err := Build(f)
	assert.Error(t, err)
}

func TestBuild_RejectsDuplicateChapterOrder(t *testing.T) {
	f := validFile()
	f.Courses[0].Chapters[1].OrderIndex = 1

	_, err := Build(f)
	assert.ErrorIs(t, err, app_errors.ErrDuplicateChapter)
}

func TestBuild_RejectsDuplicateLessonOrder(t *testing.T) {
	f := validFile()
	f.Courses[0].Chapters[0].Lessons[1].OrderIndex = 1

	_, err := Build(f)
	assert.ErrorIs(t, err, app_errors.ErrDuplicateLesson)
}

func TestBuild_RejectsDuplicateCourseSlug(t *testing.T) {
	f := validFile()
	f.Courses[1].Slug = f.Courses[0].Slug

	_, err := Build(f)
	assert.Error(t, err)
}

func TestBuild_RejectsNegativePrice(t *testing.T) {
	f := validFile()
	f.Courses[0].Price = -1

	_, err := Build(f)
	assert.Error(t, err)
}
