package waitlist

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

func newService(t *testing.T) (*WaitlistService, comingSoonAndDraft) {
	t.Helper()
	data, err := seed.Build(seed.File{
		Courses: []seed.Course{
			{Title: "Mobile App", Slug: "mobile-app", Price: 200000, Status: models.CourseStatusComingSoon, OrderIndex: 1},
			{Title: "Hidden", Slug: "hidden", Status: models.CourseStatusDraft, OrderIndex: 2},
		},
	})
	require.NoError(t, err)

	ids := comingSoonAndDraft{}
	for _, c := range data.Courses {
		if c.Slug == "mobile-app" {
			ids.comingSoon = c.ID
		} else {
			ids.draft = c.ID
		}
	}
	svc := NewWaitlistService(logger.Discard(), memory.NewWaitlistMemory(), memory.NewCatalogMemory(data))
	return svc, ids
}

type comingSoonAndDraft struct {
	comingSoon uuid.UUID
	draft      uuid.UUID
}

func TestJoin_Email(t *testing.T) {
	svc, ids := newService(t)
	ctx := context.Background()

	entry, err := svc.Join(ctx, ids.comingSoon, models.ContactTypeEmail, "  umam@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "umam@example.com", entry.ContactValue)
	assert.NotEqual(t, uuid.Nil, entry.ID)

	_, err = svc.Join(ctx, ids.comingSoon, models.ContactTypeEmail, "not-an-email")
	assert.ErrorIs(t, err, app_errors.ErrInvalidContact)

	_, err = svc.Join(ctx, ids.comingSoon, models.ContactTypeEmail, "missing@tld")
	assert.ErrorIs(t, err, app_errors.ErrInvalidContact)
}

func TestJoin_WhatsApp(t *testing.T) {
	svc, ids := newService(t)
	ctx := context.Background()

	_, err := svc.Join(ctx, ids.comingSoon, models.ContactTypeWhatsApp, "+628123456789")
	require.NoError(t, err)

	_, err = svc.Join(ctx, ids.comingSoon, models.ContactTypeWhatsApp, "08123456789")
	require.NoError(t, err)

	_, err = svc.Join(ctx, ids.comingSoon, models.ContactTypeWhatsApp, "1234")
	assert.ErrorIs(t, err, app_errors.ErrInvalidContact)

	_, err = svc.Join(ctx, ids.comingSoon, models.ContactTypeWhatsApp, "+62-812-3456")
	assert.ErrorIs(t, err, app_errors.ErrInvalidContact)
}

func TestJoin_RejectsUnknownContactType(t *testing.T) {
	svc, ids := newService(t)

	_, err := svc.Join(context.Background(), ids.comingSoon, "telegram", "@umam")
	assert.ErrorIs(t, err, app_errors.ErrInvalidContact)
}

func TestJoin_DraftCourseStaysInvisible(t *testing.T) {
	svc, ids := newService(t)

	_, err := svc.Join(context.Background(), ids.draft, models.ContactTypeEmail, "umam@example.com")
	assert.ErrorIs(t, err, app_errors.ErrCourseNotFound)
}

func TestListAndDelete(t *testing.T) {
	svc, ids := newService(t)
	ctx := context.Background()

	entry, err := svc.Join(ctx, ids.comingSoon, models.ContactTypeEmail, "a@example.com")
	require.NoError(t, err)
	_, err = svc.Join(ctx, ids.comingSoon, models.ContactTypeWhatsApp, "08123456789")
	require.NoError(t, err)

	byCourse, err := svc.ListByCourse(ctx, ids.comingSoon)
	require.NoError(t, err)
	assert.Len(t, byCourse, 2)

	all, err := svc.AllEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.Delete(ctx, entry.ID))

	remaining, err := svc.AllEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	err = svc.Delete(ctx, entry.ID)
	assert.ErrorIs(t, err, app_errors.ErrWaitlistEntryNotFound)
}
