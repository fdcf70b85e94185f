package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zuhrulumam/code-builders-hub/internal/app_errors"
	"github.com/zuhrulumam/code-builders-hub/internal/models"
)

type WaitlistMemory struct {
	mu      sync.Mutex
	records map[uuid.UUID]models.WaitlistEntry
}

func NewWaitlistMemory() *WaitlistMemory {
	return &WaitlistMemory{records: make(map[uuid.UUID]models.WaitlistEntry)}
}

func (s *WaitlistMemory) Create(ctx context.Context, w models.WaitlistEntry) (*models.WaitlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}
	s.records[w.ID] = w
	return &w, nil
}

func (s *WaitlistMemory) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.WaitlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.WaitlistEntry
	for _, w := range s.records {
		if w.CourseID == courseID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *WaitlistMemory) ListAll(ctx context.Context) ([]models.WaitlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.WaitlistEntry, 0, len(s.records))
	for _, w := range s.records {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Delete is the only hard delete in the system, scoped to waitlist entries.
func (s *WaitlistMemory) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return app_errors.ErrWaitlistEntryNotFound
	}
	delete(s.records, id)
	return nil
}
