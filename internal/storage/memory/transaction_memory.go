package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zuhrulumam/code-builders-hub/internal/models"
)

// TransactionMemory is the in-memory payment ledger. Transactions are
// immutable once created.
type TransactionMemory struct {
	mu      sync.Mutex
	records []models.Transaction
}

func NewTransactionMemory() *TransactionMemory {
	return &TransactionMemory{}
}

func (s *TransactionMemory) Create(ctx context.Context, t models.Transaction) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	s.records = append(s.records, t)
	return &t, nil
}

func (s *TransactionMemory) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Transaction
	for _, t := range s.records {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *TransactionMemory) ListAll(ctx context.Context) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Transaction, len(s.records))
	copy(out, s.records)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *TransactionMemory) Summary(ctx context.Context) (models.TransactionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum models.TransactionSummary
	for _, t := range s.records {
		sum.TotalCount++
		switch t.Status {
		case models.TransactionStatusSuccess:
			sum.TotalRevenue += t.Amount
		case models.TransactionStatusPending:
			sum.PendingCount++
		}
	}
	return sum, nil
}
