package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zuhrulumam/code-builders-hub/internal/delivery/http/controllers"
	"github.com/zuhrulumam/code-builders-hub/internal/models"
	"github.com/zuhrulumam/code-builders-hub/internal/service"
	"github.com/zuhrulumam/code-builders-hub/internal/service/catalog"
	"github.com/zuhrulumam/code-builders-hub/internal/service/curriculum"
	"github.com/zuhrulumam/code-builders-hub/internal/service/donation"
	"github.com/zuhrulumam/code-builders-hub/internal/service/enrollment"
	"github.com/zuhrulumam/code-builders-hub/internal/service/payment"
	"github.com/zuhrulumam/code-builders-hub/internal/service/progress"
	"github.com/zuhrulumam/code-builders-hub/internal/service/waitlist"
	"github.com/zuhrulumam/code-builders-hub/internal/storage/memory"
	"github.com/zuhrulumam/code-builders-hub/internal/storage/seed"
	"github.com/zuhrulumam/code-builders-hub/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	router  *gin.Engine
	catalog *memory.CatalogMemory
	courses map[string]models.Course
}

func newTestAPI(t *testing.T, declineAll bool) *testAPI {
	t.Helper()
	discount := int64(99000)
	data, err := seed.Build(seed.File{
		Courses: []seed.Course{
			{
				Title: "Build SaaS", Slug: "build-saas",
				Price: 150000, DiscountPrice: &discount,
				Status: models.CourseStatusPublished, OrderIndex: 1,
				Chapters: []seed.Chapter{
					{Title: "Basics", OrderIndex: 1, Lessons: []seed.Lesson{
						{Title: "Intro", Slug: "intro", OrderIndex: 1, IsFreePreview: true, DurationMinutes: 8},
						{Title: "Setup", Slug: "setup", OrderIndex: 2, DurationMinutes: 5},
					}},
					{Title: "Advanced", OrderIndex: 2, Lessons: []seed.Lesson{
						{Title: "Deploy", Slug: "deploy", OrderIndex: 1, DurationMinutes: 15},
					}},
				},
			},
			{
				Title: "Free Course", Slug: "free-course",
				Status: models.CourseStatusPublished, IsFree: true, OrderIndex: 2,
				Chapters: []seed.Chapter{
					{Title: "Start", OrderIndex: 1, Lessons: []seed.Lesson{
						{Title: "Welcome", Slug: "welcome", OrderIndex: 1, DurationMinutes: 10},
					}},
				},
			},
			{Title: "Soon", Slug: "soon", Price: 200000, Status: models.CourseStatusComingSoon, OrderIndex: 3},
			{Title: "Hidden", Slug: "hidden", Status: models.CourseStatusDraft, OrderIndex: 4},
		},
	})
	require.NoError(t, err)

	log := logger.Discard()
	catalogStore := memory.NewCatalogMemory(data)
	enrollments := memory.NewEnrollmentMemory()
	transactions := memory.NewTransactionMemory()
	progressStore := memory.NewProgressMemory()

	paymentSvc := payment.NewPaymentService(log, transactions)
	gateway := payment.NewMockGateway(0, declineAll)

	u := service.Collection{
		CatalogService:    catalog.NewCatalogService(log, catalogStore, nil),
		EnrollmentService: enrollment.NewEnrollmentService(log, enrollments, catalogStore, progressStore, paymentSvc, gateway),
		PaymentService:    paymentSvc,
		ProgressService:   progress.NewProgressService(log, progressStore, catalogStore, enrollments),
		WaitlistService:   waitlist.NewWaitlistService(log, memory.NewWaitlistMemory(), catalogStore),
		DonationService:   donation.NewDonationService(log, memory.NewDonationMemory(), catalogStore),
		CurriculumService: curriculum.NewCurriculumService(log, catalogStore, nil),
	}

	api := &testAPI{
		router:  InitRoutes(log, u),
		catalog: catalogStore,
		courses: map[string]models.Course{},
	}
	for _, c := range data.Courses {
		api.courses[c.Slug] = c
	}
	return api
}

func (a *testAPI) do(t *testing.T, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set(controllers.UserIDHeader, userID)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestStatusEndpoint(t *testing.T) {
	api := newTestAPI(t, false)

	w := api.do(t, stdhttp.MethodGet, "/v1/status", "", nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	assert.Equal(t, "Available", decode(t, w)["status"])
}

func TestListCourses_HidesDrafts(t *testing.T) {
	api := newTestAPI(t, false)

	w := api.do(t, stdhttp.MethodGet, "/v1/courses", "", nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)

	courses := decode(t, w)["courses"].([]any)
	require.Len(t, courses, 3)
	for _, c := range courses {
		assert.NotEqual(t, "hidden", c.(map[string]any)["slug"])
	}
}

func TestCourseDetail(t *testing.T) {
	api := newTestAPI(t, false)

	w := api.do(t, stdhttp.MethodGet, "/v1/courses/build-saas", "", nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)

	detail := decode(t, w)
	assert.Equal(t, float64(3), detail["total_lessons"])
	assert.Equal(t, float64(28), detail["total_minutes"])
	assert.Len(t, detail["curriculum"].([]any), 2)

	w = api.do(t, stdhttp.MethodGet, "/v1/courses/hidden", "", nil)
	assert.Equal(t, stdhttp.StatusNotFound, w.Code)
}

func TestLessonDetail_AccessPolicy(t *testing.T) {
	api := newTestAPI(t, false)
	userID := uuid.New().String()

	// Free preview lessons are open to anonymous visitors.
	w := api.do(t, stdhttp.MethodGet, "/v1/courses/build-saas/lessons/intro", "", nil)
	assert.Equal(t, stdhttp.StatusOK, w.Code)

	// Locked lessons are not, with or without an identity.
	w = api.do(t, stdhttp.MethodGet, "/v1/courses/build-saas/lessons/setup", "", nil)
	assert.Equal(t, stdhttp.StatusForbidden, w.Code)
	w = api.do(t, stdhttp.MethodGet, "/v1/courses/build-saas/lessons/setup", userID, nil)
	assert.Equal(t, stdhttp.StatusForbidden, w.Code)

	// A successful checkout unlocks them.
	w = api.do(t, stdhttp.MethodPost, "/v1/courses/build-saas/checkout", userID, nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	w = api.do(t, stdhttp.MethodGet, "/v1/courses/build-saas/lessons/setup", userID, nil)
	assert.Equal(t, stdhttp.StatusOK, w.Code)
}

func TestIdentityHeader(t *testing.T) {
	api := newTestAPI(t, false)

	w := api.do(t, stdhttp.MethodPost, "/v1/courses/free-course/join", "", nil)
	assert.Equal(t, stdhttp.StatusUnauthorized, w.Code)

	w = api.do(t, stdhttp.MethodPost, "/v1/courses/free-course/join", "not-a-uuid", nil)
	assert.Equal(t, stdhttp.StatusBadRequest, w.Code)
}

func TestCheckoutAndProgressFlow(t *testing.T) {
	api := newTestAPI(t, false)
	userID := uuid.New().String()

	w := api.do(t, stdhttp.MethodPost, "/v1/courses/build-saas/checkout", userID, nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	result := decode(t, w)
	assert.Equal(t, true, result["approved"])

	w = api.do(t, stdhttp.MethodGet, "/v1/courses/build-saas/enrollment", userID, nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	e := decode(t, w)["enrollment"].(map[string]any)
	assert.Equal(t, models.PaymentStatusPaid, e["payment_status"])

	w = api.do(t, stdhttp.MethodPost, "/v1/courses/build-saas/lessons/intro/complete", userID, nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	assert.Equal(t, float64(33), decode(t, w)["progress"])

	w = api.do(t, stdhttp.MethodGet, "/v1/courses/build-saas/progress", userID, nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	progressBody := decode(t, w)
	assert.Equal(t, float64(33), progressBody["progress"])
	assert.Len(t, progressBody["completed"].([]any), 1)

	w = api.do(t, stdhttp.MethodGet, "/v1/me/courses", userID, nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	mine := decode(t, w)["courses"].([]any)
	require.Len(t, mine, 1)
	assert.Equal(t, float64(33), mine[0].(map[string]any)["progress"])
}

func TestCheckout_Declined(t *testing.T) {
	api := newTestAPI(t, true)
	userID := uuid.New().String()

	w := api.do(t, stdhttp.MethodPost, "/v1/courses/build-saas/checkout", userID, nil)
	require.Equal(t, stdhttp.StatusPaymentRequired, w.Code)
	assert.Equal(t, false, decode(t, w)["approved"])

	w = api.do(t, stdhttp.MethodGet, "/v1/courses/build-saas/lessons/setup", userID, nil)
	assert.Equal(t, stdhttp.StatusForbidden, w.Code)
}

func TestJoinFreeCourse(t *testing.T) {
	api := newTestAPI(t, false)
	userID := uuid.New().String()

	w := api.do(t, stdhttp.MethodPost, "/v1/courses/free-course/join", userID, nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	e := decode(t, w)["enrollment"].(map[string]any)
	assert.Equal(t, models.PaymentStatusFree, e["payment_status"])

	// Paid courses reject the free join path.
	w = api.do(t, stdhttp.MethodPost, "/v1/courses/build-saas/join", userID, nil)
	assert.Equal(t, stdhttp.StatusBadRequest, w.Code)
}

func TestWaitlistFlow(t *testing.T) {
	api := newTestAPI(t, false)

	w := api.do(t, stdhttp.MethodPost, "/v1/courses/soon/waitlist", "", map[string]any{
		"contact_type": "email", "contact_value": "umam@example.com",
	})
	require.Equal(t, stdhttp.StatusCreated, w.Code)
	entry := decode(t, w)["entry"].(map[string]any)
	entryID := entry["id"].(string)

	w = api.do(t, stdhttp.MethodPost, "/v1/courses/soon/waitlist", "", map[string]any{
		"contact_type": "email", "contact_value": "not-an-email",
	})
	assert.Equal(t, stdhttp.StatusBadRequest, w.Code)

	w = api.do(t, stdhttp.MethodGet, "/v1/admin/waitlist", "", nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["entries"].([]any), 1)

	soonID := api.courses["soon"].ID.String()
	w = api.do(t, stdhttp.MethodGet, "/v1/admin/waitlist?course_id="+soonID, "", nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["entries"].([]any), 1)

	w = api.do(t, stdhttp.MethodDelete, "/v1/admin/waitlist/"+entryID, "", nil)
	assert.Equal(t, stdhttp.StatusOK, w.Code)
	w = api.do(t, stdhttp.MethodDelete, "/v1/admin/waitlist/"+entryID, "", nil)
	assert.Equal(t, stdhttp.StatusNotFound, w.Code)
}

func TestDonationFlow(t *testing.T) {
	api := newTestAPI(t, false)
	userID := uuid.New().String()

	w := api.do(t, stdhttp.MethodGet, "/v1/donations/amounts", "", nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["amounts"].([]any), 4)

	w = api.do(t, stdhttp.MethodPost, "/v1/donations", userID, map[string]any{
		"course_slug": "free-course", "amount": 25000, "message": "keep going",
	})
	require.Equal(t, stdhttp.StatusCreated, w.Code)

	w = api.do(t, stdhttp.MethodPost, "/v1/donations", "", map[string]any{
		"course_slug": "free-course", "amount": 25000,
	})
	assert.Equal(t, stdhttp.StatusUnauthorized, w.Code)

	w = api.do(t, stdhttp.MethodGet, "/v1/admin/donations", "", nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(25000), body["total"])
	assert.Len(t, body["donations"].([]any), 1)
}

func TestAdminPendingResolution(t *testing.T) {
	api := newTestAPI(t, false)
	userID := uuid.New()

	w := api.do(t, stdhttp.MethodPost, "/v1/courses/build-saas/enroll", userID.String(), nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	e := decode(t, w)["enrollment"].(map[string]any)
	assert.Equal(t, models.PaymentStatusPending, e["payment_status"])

	w = api.do(t, stdhttp.MethodPost, "/v1/admin/enrollments/confirm", "", map[string]any{
		"user_id": userID.String(), "course_id": api.courses["build-saas"].ID.String(),
	})
	require.Equal(t, stdhttp.StatusOK, w.Code)
	confirmed := decode(t, w)["enrollment"].(map[string]any)
	assert.Equal(t, models.PaymentStatusPaid, confirmed["payment_status"])

	// Confirming again finds nothing pending.
	w = api.do(t, stdhttp.MethodPost, "/v1/admin/enrollments/confirm", "", map[string]any{
		"user_id": userID.String(), "course_id": api.courses["build-saas"].ID.String(),
	})
	assert.Equal(t, stdhttp.StatusNotFound, w.Code)
}

func TestAdminTransactionSummary(t *testing.T) {
	api := newTestAPI(t, false)

	w := api.do(t, stdhttp.MethodPost, "/v1/courses/build-saas/checkout", uuid.New().String(), nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	w = api.do(t, stdhttp.MethodPost, "/v1/courses/build-saas/checkout", uuid.New().String(), nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)

	w = api.do(t, stdhttp.MethodGet, "/v1/admin/transactions/summary", "", nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	summary := decode(t, w)
	assert.Equal(t, float64(198000), summary["total_revenue"])
	assert.Equal(t, float64(2), summary["total_count"])
	assert.Equal(t, float64(0), summary["pending_count"])

	w = api.do(t, stdhttp.MethodGet, "/v1/admin/transactions", "", nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["transactions"].([]any), 2)

	w = api.do(t, stdhttp.MethodGet, "/v1/admin/transactions?status=failed", "", nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["transactions"].([]any), 0)

	courseID := api.courses["build-saas"].ID.String()
	w = api.do(t, stdhttp.MethodGet, "/v1/admin/transactions?status=success&course_id="+courseID, "", nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["transactions"].([]any), 2)
}

func TestAdminCurriculum(t *testing.T) {
	api := newTestAPI(t, false)
	ctx := context.Background()
	courseID := api.courses["build-saas"].ID

	w := api.do(t, stdhttp.MethodPost, "/v1/admin/courses/"+courseID.String()+"/chapters", "", map[string]any{
		"title": "Bonus",
	})
	require.Equal(t, stdhttp.StatusCreated, w.Code)
	chapter := decode(t, w)["chapter"].(map[string]any)
	assert.Equal(t, float64(3), chapter["order_index"])

	w = api.do(t, stdhttp.MethodPost, "/v1/admin/chapters/"+chapter["id"].(string)+"/lessons", "", map[string]any{
		"title": "Extra", "slug": "extra", "duration_minutes": 9,
	})
	require.Equal(t, stdhttp.StatusCreated, w.Code)
	lesson := decode(t, w)["lesson"].(map[string]any)
	assert.Equal(t, float64(1), lesson["order_index"])

	chapters, err := api.catalog.ChaptersByCourse(ctx, courseID)
	require.NoError(t, err)
	require.Len(t, chapters, 3)

	w = api.do(t, stdhttp.MethodPatch, "/v1/admin/chapters/swap", "", map[string]any{
		"first_id": chapters[0].ID.String(), "second_id": chapters[1].ID.String(),
	})
	require.Equal(t, stdhttp.StatusOK, w.Code)

	// Swapping chapters of different courses is rejected.
	otherChapters, err := api.catalog.ChaptersByCourse(ctx, api.courses["free-course"].ID)
	require.NoError(t, err)
	w = api.do(t, stdhttp.MethodPatch, "/v1/admin/chapters/swap", "", map[string]any{
		"first_id": chapters[0].ID.String(), "second_id": otherChapters[0].ID.String(),
	})
	assert.Equal(t, stdhttp.StatusBadRequest, w.Code)

	w = api.do(t, stdhttp.MethodDelete, "/v1/admin/lessons/"+lesson["id"].(string), "", nil)
	assert.Equal(t, stdhttp.StatusOK, w.Code)
	w = api.do(t, stdhttp.MethodDelete, "/v1/admin/chapters/"+chapter["id"].(string), "", nil)
	assert.Equal(t, stdhttp.StatusOK, w.Code)
}
