package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zuhrulumam/code-builders-hub/internal/models"
)

type ProgressPostgres struct {
	db *pgxpool.Pool
}

func NewProgressPostgres(db *pgxpool.Pool) *ProgressPostgres {
	return &ProgressPostgres{db: db}
}

// MarkCompleted keeps the first completion timestamp on repeat calls.
func (r *ProgressPostgres) MarkCompleted(ctx context.Context, p models.LessonProgress) error {
	if p.CompletedAt.IsZero() {
		p.CompletedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO lesson_progress (user_id, lesson_id, course_id, completed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, lesson_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, p.UserID, p.LessonID, p.CourseID, p.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to mark lesson completed: %w", err)
	}
	return nil
}

func (r *ProgressPostgres) IsCompleted(ctx context.Context, userID, lessonID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM lesson_progress WHERE user_id = $1 AND lesson_id = $2)`
	err := r.db.QueryRow(ctx, query, userID, lessonID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check lesson progress: %w", err)
	}
	return exists, nil
}

func (r *ProgressPostgres) ListByUserCourse(ctx context.Context, userID, courseID uuid.UUID) ([]models.LessonProgress, error) {
	query := `
        SELECT user_id, lesson_id, course_id, completed_at
          FROM lesson_progress
         WHERE user_id = $1 AND course_id = $2
         ORDER BY completed_at
    `
	rows, err := r.db.Query(ctx, query, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lesson progress: %w", err)
	}
	defer rows.Close()

	var out []models.LessonProgress
	for rows.Next() {
		var p models.LessonProgress
		if err := rows.Scan(&p.UserID, &p.LessonID, &p.CourseID, &p.CompletedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProgressPostgres) CountByUserCourse(ctx context.Context, userID, courseID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM lesson_progress WHERE user_id = $1 AND course_id = $2`
	err := r.db.QueryRow(ctx, query, userID, courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed lessons: %w", err)
	}
	return count, nil
}
