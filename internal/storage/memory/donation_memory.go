package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zuhrulumam/code-builders-hub/internal/models"
)

type DonationMemory struct {
	mu      sync.Mutex
	records []models.Donation
}

func NewDonationMemory() *DonationMemory {
	return &DonationMemory{}
}

func (s *DonationMemory) Create(ctx context.Context, d models.Donation) (*models.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	s.records = append(s.records, d)
	return &d, nil
}

func (s *DonationMemory) ListAll(ctx context.Context) ([]models.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Donation, len(s.records))
	copy(out, s.records)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *DonationMemory) Total(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, d := range s.records {
		total += d.Amount
	}
	return total, nil
}
