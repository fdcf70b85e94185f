package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TransactionStatusPending = "pending"
	TransactionStatusSuccess = "success"
	TransactionStatusFailed  = "failed"

	PaymentMethodMock    = "mock"
	PaymentMethodGateway = "gateway"
)

// Transaction records one payment event. Records are immutable once created;
// amount must equal original_price - discount_applied and be non-negative.
type Transaction struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	CourseID        uuid.UUID `json:"course_id"`
	OriginalPrice   int64     `json:"original_price"`
	DiscountApplied int64     `json:"discount_applied"`
	Amount          int64     `json:"amount"`
	Method          string    `json:"method"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// TransactionSummary backs the admin revenue cards.
type TransactionSummary struct {
	TotalRevenue int64 `json:"total_revenue"`
	TotalCount   int   `json:"total_count"`
	PendingCount int   `json:"pending_count"`
}
