package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zuhrulumam/code-builders-hub/internal/app_errors"
	"github.com/zuhrulumam/code-builders-hub/internal/models"
	"github.com/zuhrulumam/code-builders-hub/internal/storage/seed"
)

const courseColumns = `id, title, slug, short_desc, long_desc, cover_object_key,
	price, discount_price, status, is_free, order_index, payment_link, group_link,
	created_at, updated_at`

const lessonColumns = `id, chapter_id, course_id, title, slug, order_index,
	is_free_preview, video_url, duration_minutes, content_markdown, created_at, updated_at`

type CatalogPostgres struct {
	db *pgxpool.Pool
}

func NewCatalogPostgres(db *pgxpool.Pool) *CatalogPostgres {
	return &CatalogPostgres{db: db}
}

// Seed upserts the validated catalog by course slug so restarts with an
// unchanged seed file are no-ops.
func (r *CatalogPostgres) Seed(ctx context.Context, data *seed.Data) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	courseQuery := `
    INSERT INTO courses (` + courseColumns + `)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
    ON CONFLICT (slug) DO NOTHING
    `
	for _, c := range data.Courses {
		_, err = tx.Exec(ctx, courseQuery,
			c.ID, c.Title, c.Slug, c.ShortDesc, c.LongDesc, c.CoverObjectKey,
			c.Price, c.DiscountPrice, c.Status, c.IsFree, c.OrderIndex,
			c.PaymentLink, c.GroupLink, c.CreatedAt, c.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to seed course %s: %w", c.Slug, err)
		}
	}

	chapterQuery := `
    INSERT INTO chapters (id, course_id, title, order_index, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6)
    ON CONFLICT (id) DO NOTHING
    `
	for _, ch := range data.Chapters {
		_, err = tx.Exec(ctx, chapterQuery,
			ch.ID, ch.CourseID, ch.Title, ch.OrderIndex, ch.CreatedAt, ch.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to seed chapter %s: %w", ch.Title, err)
		}
	}

	lessonQuery := `
    INSERT INTO lessons (` + lessonColumns + `)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    ON CONFLICT (id) DO NOTHING
    `
	for _, l := range data.Lessons {
		_, err = tx.Exec(ctx, lessonQuery,
			l.ID, l.ChapterID, l.CourseID, l.Title, l.Slug, l.OrderIndex,
			l.IsFreePreview, l.VideoURL, l.DurationMinutes, l.ContentMarkdown,
			l.CreatedAt, l.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to seed lesson %s: %w", l.Slug, err)
		}
	}

	return tx.Commit(ctx)
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	err := row.Scan(
		&c.ID, &c.Title, &c.Slug, &c.ShortDesc, &c.LongDesc, &c.CoverObjectKey,
		&c.Price, &c.DiscountPrice, &c.Status, &c.IsFree, &c.OrderIndex,
		&c.PaymentLink, &c.GroupLink, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrCourseNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CatalogPostgres) CourseBySlug(ctx context.Context, slug string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE slug = $1`
	return scanCourse(r.db.QueryRow(ctx, query, slug))
}

func (r *CatalogPostgres) CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	return scanCourse(r.db.QueryRow(ctx, query, id))
}

func (r *CatalogPostgres) ListCourses(ctx context.Context) ([]models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY order_index`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Slug, &c.ShortDesc, &c.LongDesc, &c.CoverObjectKey,
			&c.Price, &c.DiscountPrice, &c.Status, &c.IsFree, &c.OrderIndex,
			&c.PaymentLink, &c.GroupLink, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CatalogPostgres) ChapterByID(ctx context.Context, id uuid.UUID) (*models.Chapter, error) {
	var ch models.Chapter
	query := `
        SELECT id, course_id, title, order_index, created_at, updated_at
          FROM chapters
         WHERE id = $1
    `
	err := r.db.QueryRow(ctx, query, id).Scan(
		&ch.ID, &ch.CourseID, &ch.Title, &ch.OrderIndex, &ch.CreatedAt, &ch.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrChapterNotFound
		}
		return nil, err
	}
	return &ch, nil
}

func (r *CatalogPostgres) ChaptersByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Chapter, error) {
	query := `
        SELECT id, course_id, title, order_index, created_at, updated_at
          FROM chapters
         WHERE course_id = $1
         ORDER BY order_index
    `
	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chapters: %w", err)
	}
	defer rows.Close()

	var chapters []models.Chapter
	for rows.Next() {
		var ch models.Chapter
		if err := rows.Scan(&ch.ID, &ch.CourseID, &ch.Title, &ch.OrderIndex, &ch.CreatedAt, &ch.UpdatedAt); err != nil {
			return nil, err
		}
		chapters = append(chapters, ch)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return chapters, nil
}

func scanLesson(row pgx.Row) (*models.Lesson, error) {
	var l models.Lesson
	err := row.Scan(
		&l.ID, &l.ChapterID, &l.CourseID, &l.Title, &l.Slug, &l.OrderIndex,
		&l.IsFreePreview, &l.VideoURL, &l.DurationMinutes, &l.ContentMarkdown,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrLessonNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *CatalogPostgres) LessonByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`
	return scanLesson(r.db.QueryRow(ctx, query, id))
}

func (r *CatalogPostgres) LessonBySlug(ctx context.Context, courseID uuid.UUID, slug string) (*models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE course_id = $1 AND slug = $2`
	return scanLesson(r.db.QueryRow(ctx, query, courseID, slug))
}

func (r *CatalogPostgres) queryLessons(ctx context.Context, query string, args ...any) ([]models.Lesson, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		var l models.Lesson
		if err := rows.Scan(
			&l.ID, &l.ChapterID, &l.CourseID, &l.Title, &l.Slug, &l.OrderIndex,
			&l.IsFreePreview, &l.VideoURL, &l.DurationMinutes, &l.ContentMarkdown,
			&l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return lessons, nil
}

func (r *CatalogPostgres) LessonsByChapter(ctx context.Context, chapterID uuid.UUID) ([]models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE chapter_id = $1 ORDER BY order_index`
	return r.queryLessons(ctx, query, chapterID)
}

// LessonsByCourse returns lessons in reading order: chapters by their
// order_index, lessons by theirs within each chapter.
func (r *CatalogPostgres) LessonsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lesson, error) {
	query := `
        SELECT l.id, l.chapter_id, l.course_id, l.title, l.slug, l.order_index,
               l.is_free_preview, l.video_url, l.duration_minutes, l.content_markdown,
               l.created_at, l.updated_at
          FROM lessons l
          JOIN chapters c ON c.id = l.chapter_id
         WHERE l.course_id = $1
         ORDER BY c.order_index, l.order_index
    `
	return r.queryLessons(ctx, query, courseID)
}

func (r *CatalogPostgres) CountLessons(ctx context.Context, courseID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM lessons WHERE course_id = $1`, courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count lessons: %w", err)
	}
	return count, nil
}

func (r *CatalogPostgres) UpdateCourseCover(ctx context.Context, courseID uuid.UUID, objectKey string) error {
	query := `UPDATE courses SET cover_object_key = $1, updated_at = $2 WHERE id = $3`
	tag, err := r.db.Exec(ctx, query, objectKey, time.Now().UTC(), courseID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return app_errors.ErrCourseNotFound
	}
	return nil
}

func (r *CatalogPostgres) InsertChapter(ctx context.Context, chapter models.Chapter) (*models.Chapter, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	updateQuery := `
        UPDATE chapters SET order_index = order_index + 1
         WHERE course_id = $1 AND order_index >= $2
    `
	_, err = tx.Exec(ctx, updateQuery, chapter.CourseID, chapter.OrderIndex)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if chapter.ID == uuid.Nil {
		chapter.ID = uuid.New()
	}
	chapter.CreatedAt = now
	chapter.UpdatedAt = now

	insertQuery := `
    INSERT INTO chapters (id, course_id, title, order_index, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err = tx.Exec(ctx, insertQuery,
		chapter.ID, chapter.CourseID, chapter.Title,
		chapter.OrderIndex, chapter.CreatedAt, chapter.UpdatedAt,
	)
	if err != nil {
		if pgErr := UnwrapPgError(err); pgErr != nil && pgErr.Code == "23505" {
			return nil, app_errors.ErrDuplicateChapter
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (r *CatalogPostgres) MaxChapterOrder(ctx context.Context, courseID uuid.UUID) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(order_index), 0) FROM chapters WHERE course_id = $1`
	err := r.db.QueryRow(ctx, query, courseID).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("failed to get max chapter order: %w", err)
	}
	return max, nil
}

func (r *CatalogPostgres) MaxLessonOrder(ctx context.Context, chapterID uuid.UUID) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(order_index), 0) FROM lessons WHERE chapter_id = $1`
	err := r.db.QueryRow(ctx, query, chapterID).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("failed to get max lesson order: %w", err)
	}
	return max, nil
}

func (r *CatalogPostgres) InsertLesson(ctx context.Context, lesson models.Lesson) (*models.Lesson, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	updateQuery := `
        UPDATE lessons SET order_index = order_index + 1
         WHERE chapter_id = $1 AND order_index >= $2
    `
	_, err = tx.Exec(ctx, updateQuery, lesson.ChapterID, lesson.OrderIndex)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if lesson.ID == uuid.Nil {
		lesson.ID = uuid.New()
	}
	lesson.CreatedAt = now
	lesson.UpdatedAt = now

	insertQuery := `
    INSERT INTO lessons (` + lessonColumns + `)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `
	_, err = tx.Exec(ctx, insertQuery,
		lesson.ID, lesson.ChapterID, lesson.CourseID, lesson.Title, lesson.Slug,
		lesson.OrderIndex, lesson.IsFreePreview, lesson.VideoURL,
		lesson.DurationMinutes, lesson.ContentMarkdown, lesson.CreatedAt, lesson.UpdatedAt,
	)
	if err != nil {
		if pgErr := UnwrapPgError(err); pgErr != nil && pgErr.Code == "23505" {
			return nil, app_errors.ErrDuplicateLesson
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *CatalogPostgres) DeleteLessonAndReorder(ctx context.Context, lessonID, chapterID uuid.UUID, orderIndex int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM lessons WHERE id = $1`, lessonID)
	if err != nil {
		return err
	}

	updateQuery := `
        UPDATE lessons SET order_index = order_index - 1
         WHERE chapter_id = $1 AND order_index > $2
    `
	_, err = tx.Exec(ctx, updateQuery, chapterID, orderIndex)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *CatalogPostgres) DeleteChapterAndReorder(ctx context.Context, chapterID, courseID uuid.UUID, orderIndex int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM lessons WHERE chapter_id = $1`, chapterID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `DELETE FROM chapters WHERE id = $1`, chapterID)
	if err != nil {
		return err
	}

	updateQuery := `
        UPDATE chapters SET order_index = order_index - 1
         WHERE course_id = $1 AND order_index > $2
    `
	_, err = tx.Exec(ctx, updateQuery, courseID, orderIndex)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *CatalogPostgres) SwapLessons(ctx context.Context, lessonID1, lessonID2 uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var order1, order2 int
	query := `SELECT order_index FROM lessons WHERE id = $1`
	if err := tx.QueryRow(ctx, query, lessonID1).Scan(&order1); err != nil {
		return fmt.Errorf("failed to get order for lesson1: %w", err)
	}
	if err := tx.QueryRow(ctx, query, lessonID2).Scan(&order2); err != nil {
		return fmt.Errorf("failed to get order for lesson2: %w", err)
	}

	updateQuery := `UPDATE lessons SET order_index = $1 WHERE id = $2`
	tempOrder := -1
	if _, err := tx.Exec(ctx, updateQuery, tempOrder, lessonID1); err != nil {
		return fmt.Errorf("failed to update lesson1 to temp order: %w", err)
	}
	if _, err := tx.Exec(ctx, updateQuery, order1, lessonID2); err != nil {
		return fmt.Errorf("failed to update lesson2 order: %w", err)
	}
	if _, err := tx.Exec(ctx, updateQuery, order2, lessonID1); err != nil {
		return fmt.Errorf("failed to update lesson1 order: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *CatalogPostgres) SwapChapters(ctx context.Context, chapterID1, chapterID2 uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var order1, order2 int
	query := `SELECT order_index FROM chapters WHERE id = $1`
	if err := tx.QueryRow(ctx, query, chapterID1).Scan(&order1); err != nil {
		return fmt.Errorf("failed to get order for chapter1: %w", err)
	}
	if err := tx.QueryRow(ctx, query, chapterID2).Scan(&order2); err != nil {
		return fmt.Errorf("failed to get order for chapter2: %w", err)
	}

	updateQuery := `UPDATE chapters SET order_index = $1 WHERE id = $2`
	tempOrder := -1
	if _, err := tx.Exec(ctx, updateQuery, tempOrder, chapterID1); err != nil {
		return fmt.Errorf("failed to update chapter1 to temp order: %w", err)
	}
	if _, err := tx.Exec(ctx, updateQuery, order1, chapterID2); err != nil {
		return fmt.Errorf("failed to update chapter2 order: %w", err)
	}
	if _, err := tx.Exec(ctx, updateQuery, order2, chapterID1); err != nil {
		return fmt.Errorf("failed to update chapter1 order: %w", err)
	}

	return tx.Commit(ctx)
}
