package controllers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zuhrulumam/code-builders-hub/internal/models"
	"github.com/zuhrulumam/code-builders-hub/pkg/logger"
)

type CurriculumService interface {
	CreateChapter(ctx context.Context, courseID uuid.UUID, title string, orderIndex int) (*models.Chapter, error)
	CreateLesson(ctx context.Context, lesson models.Lesson) (*models.Lesson, error)
	DeleteLesson(ctx context.Context, lessonID uuid.UUID) error
	DeleteChapter(ctx context.Context, chapterID uuid.UUID) error
	SwapLessons(ctx context.Context, lessonID1, lessonID2 uuid.UUID) error
	SwapChapters(ctx context.Context, chapterID1, chapterID2 uuid.UUID) error
	UploadCover(ctx context.Context, courseID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
}

type AdminLedgers interface {
	ListAll(ctx context.Context) ([]models.Enrollment, error)
	ConfirmPending(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error)
	FailPending(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error)
	Transactions(ctx context.Context) ([]models.Transaction, error)
	Summary(ctx context.Context) (models.TransactionSummary, error)
	Donations(ctx context.Context) ([]models.Donation, error)
	Total(ctx context.Context) (int64, error)
	AllEntries(ctx context.Context) ([]models.WaitlistEntry, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.WaitlistEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type AdminHandler struct {
	Curriculum CurriculumService
	Ledgers    AdminLedgers
	log        logger.Log
}

func NewAdminHandler(l logger.Log, curriculum CurriculumService, ledgers AdminLedgers) *AdminHandler {
	return &AdminHandler{
		Curriculum: curriculum,
		Ledgers:    ledgers,
		log:        l,
	}
}

func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	raw, ok := c.Params.Get(name)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " is required"})
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return uuid.Nil, false
	}
	return id, true
}

type createChapterRequest struct {
	Title      string `json:"title" binding:"required"`
	OrderIndex int    `json:"order_index"`
}

func (h *AdminHandler) CreateChapter(c *gin.Context) {
	courseID, ok := parseID(c, "course_id")
	if !ok {
		return
	}
	var input createChapterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	chapter, err := h.Curriculum.CreateChapter(c.Request.Context(), courseID, input.Title, input.OrderIndex)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"chapter": chapter})
}

type createLessonRequest struct {
	Title           string  `json:"title" binding:"required"`
	Slug            string  `json:"slug" binding:"required"`
	OrderIndex      int     `json:"order_index"`
	IsFreePreview   bool    `json:"is_free_preview"`
	VideoURL        *string `json:"video_url"`
	DurationMinutes int     `json:"duration_minutes"`
	ContentMarkdown string  `json:"content_markdown"`
}

func (h *AdminHandler) CreateLesson(c *gin.Context) {
	chapterID, ok := parseID(c, "chapter_id")
	if !ok {
		return
	}
	var input createLessonRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lesson, err := h.Curriculum.CreateLesson(c.Request.Context(), models.Lesson{
		ChapterID:       chapterID,
		Title:           input.Title,
		Slug:            input.Slug,
		OrderIndex:      input.OrderIndex,
		IsFreePreview:   input.IsFreePreview,
		VideoURL:        input.VideoURL,
		DurationMinutes: input.DurationMinutes,
		ContentMarkdown: input.ContentMarkdown,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"lesson": lesson})
}

func (h *AdminHandler) DeleteLesson(c *gin.Context) {
	lessonID, ok := parseID(c, "lesson_id")
	if !ok {
		return
	}
	if err := h.Curriculum.DeleteLesson(c.Request.Context(), lessonID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (h *AdminHandler) DeleteChapter(c *gin.Context) {
	chapterID, ok := parseID(c, "chapter_id")
	if !ok {
		return
	}
	if err := h.Curriculum.DeleteChapter(c.Request.Context(), chapterID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

type swapRequest struct {
	FirstID  uuid.UUID `json:"first_id" binding:"required"`
	SecondID uuid.UUID `json:"second_id" binding:"required"`
}

func (h *AdminHandler) SwapLessons(c *gin.Context) {
	var input swapRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Curriculum.SwapLessons(c.Request.Context(), input.FirstID, input.SecondID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (h *AdminHandler) SwapChapters(c *gin.Context) {
	var input swapRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Curriculum.SwapChapters(c.Request.Context(), input.FirstID, input.SecondID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (h *AdminHandler) UploadCover(c *gin.Context) {
	courseID, ok := parseID(c, "course_id")
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("cover")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cover file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	url, err := h.Curriculum.UploadCover(
		c.Request.Context(),
		courseID,
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cover_url": url})
}

func (h *AdminHandler) ListEnrollments(c *gin.Context) {
	enrollments, err := h.Ledgers.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enrollments": enrollments})
}

type resolvePendingRequest struct {
	UserID   uuid.UUID `json:"user_id" binding:"required"`
	CourseID uuid.UUID `json:"course_id" binding:"required"`
}

func (h *AdminHandler) ConfirmPending(c *gin.Context) {
	var input resolvePendingRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, err := h.Ledgers.ConfirmPending(c.Request.Context(), input.UserID, input.CourseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enrollment": e})
}

func (h *AdminHandler) FailPending(c *gin.Context) {
	var input resolvePendingRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, err := h.Ledgers.FailPending(c.Request.Context(), input.UserID, input.CourseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enrollment": e})
}

func (h *AdminHandler) ListTransactions(c *gin.Context) {
	transactions, err := h.Ledgers.Transactions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	status := c.Query("status")
	var courseID uuid.UUID
	if raw := c.Query("course_id"); raw != "" {
		courseID, err = uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if status != "" || courseID != uuid.Nil {
		filtered := make([]models.Transaction, 0, len(transactions))
		for _, t := range transactions {
			if status != "" && t.Status != status {
				continue
			}
			if courseID != uuid.Nil && t.CourseID != courseID {
				continue
			}
			filtered = append(filtered, t)
		}
		transactions = filtered
	}
	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

func (h *AdminHandler) TransactionSummary(c *gin.Context) {
	summary, err := h.Ledgers.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *AdminHandler) ListDonations(c *gin.Context) {
	donations, err := h.Ledgers.Donations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := h.Ledgers.Total(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"donations": donations, "total": total})
}

func (h *AdminHandler) ListWaitlist(c *gin.Context) {
	if raw := c.Query("course_id"); raw != "" {
		courseID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		entries, err := h.Ledgers.ListByCourse(c.Request.Context(), courseID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"entries": entries})
		return
	}

	entries, err := h.Ledgers.AllEntries(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *AdminHandler) DeleteWaitlistEntry(c *gin.Context) {
	entryID, ok := parseID(c, "entry_id")
	if !ok {
		return
	}
	if err := h.Ledgers.Delete(c.Request.Context(), entryID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
