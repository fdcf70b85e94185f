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
)

type EnrollmentPostgres struct {
	db *pgxpool.Pool
}

func NewEnrollmentPostgres(db *pgxpool.Pool) *EnrollmentPostgres {
	return &EnrollmentPostgres{db: db}
}

const enrollmentColumns = `id, user_id, course_id, payment_status, enrolled_at`

func (r *EnrollmentPostgres) Create(ctx context.Context, e models.Enrollment) (*models.Enrollment, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.EnrolledAt.IsZero() {
		e.EnrolledAt = time.Now().UTC()
	}

	query := `
    INSERT INTO enrollments (` + enrollmentColumns + `)
    VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.db.Exec(ctx, query, e.ID, e.UserID, e.CourseID, e.PaymentStatus, e.EnrolledAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}
	return &e, nil
}

func scanEnrollment(row pgx.Row, missing error) (*models.Enrollment, error) {
	var e models.Enrollment
	err := row.Scan(&e.ID, &e.UserID, &e.CourseID, &e.PaymentStatus, &e.EnrolledAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, missing
		}
		return nil, err
	}
	return &e, nil
}

func (r *EnrollmentPostgres) ActiveByUserCourse(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error) {
	query := `
        SELECT ` + enrollmentColumns + `
          FROM enrollments
         WHERE user_id = $1 AND course_id = $2 AND payment_status IN ($3, $4)
         ORDER BY enrolled_at DESC
         LIMIT 1
    `
	row := r.db.QueryRow(ctx, query, userID, courseID, models.PaymentStatusPaid, models.PaymentStatusFree)
	return scanEnrollment(row, app_errors.ErrEnrollmentNotFound)
}

func (r *EnrollmentPostgres) LatestByUserCourse(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error) {
	query := `
        SELECT ` + enrollmentColumns + `
          FROM enrollments
         WHERE user_id = $1 AND course_id = $2
         ORDER BY enrolled_at DESC
         LIMIT 1
    `
	return scanEnrollment(r.db.QueryRow(ctx, query, userID, courseID), app_errors.ErrEnrollmentNotFound)
}

func (r *EnrollmentPostgres) LatestPendingByUserCourse(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error) {
	query := `
        SELECT ` + enrollmentColumns + `
          FROM enrollments
         WHERE user_id = $1 AND course_id = $2 AND payment_status = $3
         ORDER BY enrolled_at DESC
         LIMIT 1
    `
	row := r.db.QueryRow(ctx, query, userID, courseID, models.PaymentStatusPending)
	return scanEnrollment(row, app_errors.ErrNoPendingEnrollment)
}

func (r *EnrollmentPostgres) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.db.Exec(ctx, `UPDATE enrollments SET payment_status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update enrollment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.ErrEnrollmentNotFound
	}
	return nil
}

func (r *EnrollmentPostgres) queryEnrollments(ctx context.Context, query string, args ...any) ([]models.Enrollment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	var out []models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		if err := rows.Scan(&e.ID, &e.UserID, &e.CourseID, &e.PaymentStatus, &e.EnrolledAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *EnrollmentPostgres) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Enrollment, error) {
	query := `
        SELECT ` + enrollmentColumns + `
          FROM enrollments
         WHERE user_id = $1
         ORDER BY enrolled_at DESC
    `
	return r.queryEnrollments(ctx, query, userID)
}

func (r *EnrollmentPostgres) ListAll(ctx context.Context) ([]models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments ORDER BY enrolled_at DESC`
	return r.queryEnrollments(ctx, query)
}
