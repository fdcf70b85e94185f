package seed

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/zuhrulumam/code-builders-hub/internal/app_errors"
	"github.com/zuhrulumam/code-builders-hub/internal/models"
)

// File mirrors the catalog seed yaml: courses own chapters, chapters own
// lessons. Identifiers are assigned at load time; slugs are the natural keys.
type File struct {
	Courses []Course `yaml:"courses"`
}

type Course struct {
	Title         string    `yaml:"title"`
	Slug          string    `yaml:"slug"`
	ShortDesc     string    `yaml:"short_desc"`
	LongDesc      string    `yaml:"long_desc"`
	Price         int64     `yaml:"price"`
	DiscountPrice *int64    `yaml:"discount_price"`
	Status        string    `yaml:"status"`
	IsFree        bool      `yaml:"is_free"`
	OrderIndex    int       `yaml:"order_index"`
	PaymentLink   string    `yaml:"payment_link"`
	GroupLink     string    `yaml:"group_link"`
	Chapters      []Chapter `yaml:"chapters"`
}

type Chapter struct {
	Title      string   `yaml:"title"`
	OrderIndex int      `yaml:"order_index"`
	Lessons    []Lesson `yaml:"lessons"`
}

type Lesson struct {
	Title           string  `yaml:"title"`
	Slug            string  `yaml:"slug"`
	OrderIndex      int     `yaml:"order_index"`
	IsFreePreview   bool    `yaml:"is_free_preview"`
	VideoURL        *string `yaml:"video_url"`
	DurationMinutes int     `yaml:"duration_minutes"`
	ContentMarkdown string  `yaml:"content_markdown"`
}

// Data is the flattened, validated catalog ready to hand to a store.
type Data struct {
	Courses  []models.Course
	Chapters []models.Chapter
	Lessons  []models.Lesson
}

// Load reads and validates the catalog seed. The catalog must be total: any
// invalid record fails the whole load so the process never starts with a
// partial catalog.
func Load(path string) (*Data, error) {
	var f File
	if err := cleanenv.ReadConfig(path, &f); err != nil {
		return nil, fmt.Errorf("failed to read catalog seed %s: %w", path, err)
	}
	return Build(f)
}

// Build validates a parsed seed file and assigns identities.
func Build(f File) (*Data, error) {
	now := time.Now().UTC()
	data := &Data{}
	courseSlugs := make(map[string]bool)

	for _, cs := range f.Courses {
		if err := validateCourse(cs); err != nil {
			return nil, err
		}
		if courseSlugs[cs.Slug] {
			return nil, fmt.Errorf("duplicate course slug %q", cs.Slug)
		}
		courseSlugs[cs.Slug] = true

		course := models.Course{
			ID:            uuid.New(),
			Title:         cs.Title,
			Slug:          cs.Slug,
			ShortDesc:     cs.ShortDesc,
			LongDesc:      cs.LongDesc,
			Price:         cs.Price,
			DiscountPrice: cs.DiscountPrice,
			Status:        cs.Status,
			IsFree:        cs.IsFree,
			OrderIndex:    cs.OrderIndex,
			PaymentLink:   cs.PaymentLink,
			GroupLink:     cs.GroupLink,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		data.Courses = append(data.Courses, course)

		chapterOrders := make(map[int]bool)
		for _, chs := range cs.Chapters {
			if chs.Title == "" {
				return nil, fmt.Errorf("course %q: chapter without title", cs.Slug)
			}
			if chapterOrders[chs.OrderIndex] {
				return nil, fmt.Errorf("course %q: chapter order %d: %w", cs.Slug, chs.OrderIndex, app_errors.ErrDuplicateChapter)
			}
			chapterOrders[chs.OrderIndex] = true

			chapter := models.Chapter{
				ID:         uuid.New(),
				CourseID:   course.ID,
				Title:      chs.Title,
				OrderIndex: chs.OrderIndex,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			data.Chapters = append(data.Chapters, chapter)

			lessonOrders := make(map[int]bool)
			for _, ls := range chs.Lessons {
				if ls.Title == "" {
					return nil, fmt.Errorf("course %q, chapter %q: lesson without title", cs.Slug, chs.Title)
				}
				if ls.DurationMinutes < 0 {
					return nil, fmt.Errorf("lesson %q: negative duration", ls.Title)
				}
				if lessonOrders[ls.OrderIndex] {
					return nil, fmt.Errorf("chapter %q: lesson order %d: %w", chs.Title, ls.OrderIndex, app_errors.ErrDuplicateLesson)
				}
				lessonOrders[ls.OrderIndex] = true

				data.Lessons = append(data.Lessons, models.Lesson{
					ID:              uuid.New(),
					ChapterID:       chapter.ID,
					CourseID:        course.ID,
					Title:           ls.Title,
					Slug:            ls.Slug,
					OrderIndex:      ls.OrderIndex,
					IsFreePreview:   ls.IsFreePreview,
					VideoURL:        ls.VideoURL,
					DurationMinutes: ls.DurationMinutes,
					ContentMarkdown: ls.ContentMarkdown,
					CreatedAt:       now,
					UpdatedAt:       now,
				})
			}
		}
	}

	return data, nil
}

func validateCourse(cs Course) error {
	if cs.Slug == "" || cs.Title == "" {
		return fmt.Errorf("course %q: slug and title are required", cs.Title)
	}
	switch cs.Status {
	case models.CourseStatusDraft, models.CourseStatusComingSoon, models.CourseStatusPublished:
	default:
		return fmt.Errorf("course %q: unknown status %q", cs.Slug, cs.Status)
	}
	if cs.Price < 0 {
		return fmt.Errorf("course %q: %w", cs.Slug, app_errors.ErrNegativeAmount)
	}
	if cs.DiscountPrice != nil {
		if *cs.DiscountPrice < 0 {
			return fmt.Errorf("course %q: %w", cs.Slug, app_errors.ErrNegativeAmount)
		}
		if *cs.DiscountPrice >= cs.Price {
			return fmt.Errorf("course %q: %w", cs.Slug, app_errors.ErrInvalidDiscount)
		}
	}
	return nil
}
