package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zuhrulumam/code-builders-hub/internal/models"
)

type TransactionPostgres struct {
	db *pgxpool.Pool
}

func NewTransactionPostgres(db *pgxpool.Pool) *TransactionPostgres {
	return &TransactionPostgres{db: db}
}

const transactionColumns = `id, user_id, course_id, original_price, discount_applied,
	amount, method, status, created_at`

func (r *TransactionPostgres) Create(ctx context.Context, t models.Transaction) (*models.Transaction, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	query := `
    INSERT INTO transactions (` + transactionColumns + `)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	_, err := r.db.Exec(ctx, query,
		t.ID, t.UserID, t.CourseID, t.OriginalPrice, t.DiscountApplied,
		t.Amount, t.Method, t.Status, t.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return &t, nil
}

func (r *TransactionPostgres) queryTransactions(ctx context.Context, query string, args ...any) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.CourseID, &t.OriginalPrice, &t.DiscountApplied,
			&t.Amount, &t.Method, &t.Status, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TransactionPostgres) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	query := `
        SELECT ` + transactionColumns + `
          FROM transactions
         WHERE user_id = $1
         ORDER BY created_at DESC
    `
	return r.queryTransactions(ctx, query, userID)
}

func (r *TransactionPostgres) ListAll(ctx context.Context) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY created_at DESC`
	return r.queryTransactions(ctx, query)
}

func (r *TransactionPostgres) Summary(ctx context.Context) (models.TransactionSummary, error) {
	var sum models.TransactionSummary
	query := `
        SELECT COALESCE(SUM(amount) FILTER (WHERE status = $1), 0),
               COUNT(*),
               COUNT(*) FILTER (WHERE status = $2)
          FROM transactions
    `
	err := r.db.QueryRow(ctx, query, models.TransactionStatusSuccess, models.TransactionStatusPending).Scan(
		&sum.TotalRevenue, &sum.TotalCount, &sum.PendingCount,
	)
	if err != nil {
		return models.TransactionSummary{}, fmt.Errorf("failed to get transaction summary: %w", err)
	}
	return sum, nil
}
