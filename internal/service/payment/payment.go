package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/zuhrulumam/code-builders-hub/internal/app_errors"
	"github.com/zuhrulumam/code-builders-hub/internal/models"
	"github.com/zuhrulumam/code-builders-hub/pkg/logger"
)

type transactionRepo interface {
	Create(ctx context.Context, t models.Transaction) (*models.Transaction, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error)
	ListAll(ctx context.Context) ([]models.Transaction, error)
	Summary(ctx context.Context) (models.TransactionSummary, error)
}

type PaymentService struct {
	log             logger.Log
	transactionRepo transactionRepo
}

func NewPaymentService(log logger.Log, transactionRepo transactionRepo) *PaymentService {
	return &PaymentService{log: log, transactionRepo: transactionRepo}
}

// Record writes a transaction after checking its arithmetic. The amount must
// be exactly the original price minus the discount, and never negative.
func (s *PaymentService) Record(ctx context.Context, t models.Transaction) (*models.Transaction, error) {
	if t.Amount < 0 || t.OriginalPrice < 0 || t.DiscountApplied < 0 {
		return nil, app_errors.ErrNegativeAmount
	}
	if t.Amount != t.OriginalPrice-t.DiscountApplied {
		return nil, app_errors.ErrAmountMismatch
	}

	created, err := s.transactionRepo.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	s.log.Info("transaction recorded",
		"transaction_id", created.ID.String(),
		"course_id", created.CourseID.String(),
		"status", created.Status,
		"amount", created.Amount,
	)
	return created, nil
}

func (s *PaymentService) TransactionsByUser(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	return s.transactionRepo.ListByUser(ctx, userID)
}

func (s *PaymentService) Transactions(ctx context.Context) ([]models.Transaction, error) {
	return s.transactionRepo.ListAll(ctx)
}

func (s *PaymentService) Summary(ctx context.Context) (models.TransactionSummary, error) {
	return s.transactionRepo.Summary(ctx)
}
