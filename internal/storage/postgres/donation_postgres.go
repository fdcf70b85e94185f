package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zuhrulumam/code-builders-hub/internal/models"
)

type DonationPostgres struct {
	db *pgxpool.Pool
}

func NewDonationPostgres(db *pgxpool.Pool) *DonationPostgres {
	return &DonationPostgres{db: db}
}

func (r *DonationPostgres) Create(ctx context.Context, d models.Donation) (*models.Donation, error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}

	query := `
    INSERT INTO donations (id, user_id, course_id, amount, message, created_at)
    VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := r.db.Exec(ctx, query, d.ID, d.UserID, d.CourseID, d.Amount, d.Message, d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create donation: %w", err)
	}
	return &d, nil
}

func (r *DonationPostgres) ListAll(ctx context.Context) ([]models.Donation, error) {
	query := `
        SELECT id, user_id, course_id, amount, message, created_at
          FROM donations
         ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query donations: %w", err)
	}
	defer rows.Close()

	var out []models.Donation
	for rows.Next() {
		var d models.Donation
		if err := rows.Scan(&d.ID, &d.UserID, &d.CourseID, &d.Amount, &d.Message, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *DonationPostgres) Total(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM donations`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum donations: %w", err)
	}
	return total, nil
}
