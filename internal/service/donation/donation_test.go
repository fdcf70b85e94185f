package donation

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zuhrulumam/code-builders-hub/internal/app_errors"
	"github.com/zuhrulumam/code-builders-hub/internal/models"
	"github.com/zuhrulumam/code-builders-hub/internal/storage/memory"
	"github.com/zuhrulumam/code-builders-hub/internal/storage/seed"
	"github.com/zuhrulumam/code-builders-hub/pkg/logger"
)

func newService(t *testing.T) (*DonationService, uuid.UUID) {
	t.Helper()
	data, err := seed.Build(seed.File{
		Courses: []seed.Course{
			{Title: "Free Course", Slug: "free-course", Status: models.CourseStatusPublished, IsFree: true, OrderIndex: 1},
		},
	})
	require.NoError(t, err)

	svc := NewDonationService(logger.Discard(), memory.NewDonationMemory(), memory.NewCatalogMemory(data))
	return svc, data.Courses[0].ID
}

func TestDonate(t *testing.T) {
	svc, courseID := newService(t)
	ctx := context.Background()

	d, err := svc.Donate(ctx, uuid.New(), courseID, 25000, "terima kasih")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, d.ID)
	assert.Equal(t, int64(25000), d.Amount)
	assert.Equal(t, "terima kasih", d.Message)

	// Message is optional.
	_, err = svc.Donate(ctx, uuid.New(), courseID, 10000, "")
	assert.NoError(t, err)
}

func TestDonate_RejectsNonPositiveAmount(t *testing.T) {
	svc, courseID := newService(t)
	ctx := context.Background()

	_, err := svc.Donate(ctx, uuid.New(), courseID, 0, "")
	assert.ErrorIs(t, err, app_errors.ErrInvalidAmount)

	_, err = svc.Donate(ctx, uuid.New(), courseID, -5000, "")
	assert.ErrorIs(t, err, app_errors.ErrInvalidAmount)
}

func TestDonate_RequiresExistingCourse(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Donate(context.Background(), uuid.New(), uuid.New(), 10000, "")
	assert.ErrorIs(t, err, app_errors.ErrCourseNotFound)
}

func TestTotalSumsAllDonations(t *testing.T) {
	svc, courseID := newService(t)
	ctx := context.Background()

	for _, amount := range QuickAmounts {
		_, err := svc.Donate(ctx, uuid.New(), courseID, amount, "")
		require.NoError(t, err)
	}

	total, err := svc.Total(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(185000), total)

	all, err := svc.Donations(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(QuickAmounts))
}
