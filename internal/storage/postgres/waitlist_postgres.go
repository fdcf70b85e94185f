package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zuhrulumam/code-builders-hub/internal/app_errors"
	"github.com/zuhrulumam/code-builders-hub/internal/models"
)

type WaitlistPostgres struct {
	db *pgxpool.Pool
}

func NewWaitlistPostgres(db *pgxpool.Pool) *WaitlistPostgres {
	return &WaitlistPostgres{db: db}
}

func (r *WaitlistPostgres) Create(ctx context.Context, w models.WaitlistEntry) (*models.WaitlistEntry, error) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}

	query := `
    INSERT INTO waitlist_entries (id, course_id, contact_type, contact_value, created_at)
    VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.db.Exec(ctx, query, w.ID, w.CourseID, w.ContactType, w.ContactValue, w.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create waitlist entry: %w", err)
	}
	return &w, nil
}

func (r *WaitlistPostgres) queryEntries(ctx context.Context, query string, args ...any) ([]models.WaitlistEntry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query waitlist entries: %w", err)
	}
	defer rows.Close()

	var out []models.WaitlistEntry
	for rows.Next() {
		var w models.WaitlistEntry
		if err := rows.Scan(&w.ID, &w.CourseID, &w.ContactType, &w.ContactValue, &w.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *WaitlistPostgres) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.WaitlistEntry, error) {
	query := `
        SELECT id, course_id, contact_type, contact_value, created_at
          FROM waitlist_entries
         WHERE course_id = $1
         ORDER BY created_at DESC
    `
	return r.queryEntries(ctx, query, courseID)
}

func (r *WaitlistPostgres) ListAll(ctx context.Context) ([]models.WaitlistEntry, error) {
	query := `
        SELECT id, course_id, contact_type, contact_value, created_at
          FROM waitlist_entries
         ORDER BY created_at DESC
    `
	return r.queryEntries(ctx, query)
}

func (r *WaitlistPostgres) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM waitlist_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete waitlist entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.ErrWaitlistEntryNotFound
	}
	return nil
}
