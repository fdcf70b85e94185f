package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zuhrulumam/code-builders-hub/internal/models"
)

type progressKey struct {
	userID   uuid.UUID
	lessonID uuid.UUID
}

// ProgressMemory keys completion records by (user, lesson), which makes
// MarkCompleted naturally idempotent.
type ProgressMemory struct {
	mu      sync.Mutex
	records map[progressKey]models.LessonProgress
}

func NewProgressMemory() *ProgressMemory {
	return &ProgressMemory{records: make(map[progressKey]models.LessonProgress)}
}

func (s *ProgressMemory) MarkCompleted(ctx context.Context, p models.LessonProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := progressKey{userID: p.UserID, lessonID: p.LessonID}
	if _, ok := s.records[key]; ok {
		return nil
	}
	if p.CompletedAt.IsZero() {
		p.CompletedAt = time.Now().UTC()
	}
	s.records[key] = p
	return nil
}

func (s *ProgressMemory) IsCompleted(ctx context.Context, userID, lessonID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[progressKey{userID: userID, lessonID: lessonID}]
	return ok, nil
}

func (s *ProgressMemory) ListByUserCourse(ctx context.Context, userID, courseID uuid.UUID) ([]models.LessonProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.LessonProgress
	for _, p := range s.records {
		if p.UserID == userID && p.CourseID == courseID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.Before(out[j].CompletedAt) })
	return out, nil
}

func (s *ProgressMemory) CountByUserCourse(ctx context.Context, userID, courseID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, p := range s.records {
		if p.UserID == userID && p.CourseID == courseID {
			count++
		}
	}
	return count, nil
}
