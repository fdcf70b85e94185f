package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zuhrulumam/code-builders-hub/internal/models"
	"github.com/zuhrulumam/code-builders-hub/pkg/logger"
)

type ProgressService interface {
	MarkLessonComplete(ctx context.Context, userID, courseID, lessonID uuid.UUID) error
	CompletedLessons(ctx context.Context, userID, courseID uuid.UUID) ([]models.LessonProgress, error)
	CourseProgress(ctx context.Context, userID, courseID uuid.UUID) (int, error)
}

type lessonResolver interface {
	Lesson(ctx context.Context, courseSlug, lessonSlug string) (*models.Course, *models.Lesson, error)
	CourseBySlug(ctx context.Context, slug string) (*models.Course, error)
}

type ProgressHandler struct {
	ProgressService ProgressService
	Catalog         lessonResolver
	log             logger.Log
}

func NewProgressHandler(l logger.Log, progressService ProgressService, catalog lessonResolver) *ProgressHandler {
	return &ProgressHandler{
		ProgressService: progressService,
		Catalog:         catalog,
		log:             l,
	}
}

func (h *ProgressHandler) CompleteLesson(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	course, lesson, err := h.Catalog.Lesson(c.Request.Context(), c.Param("course_slug"), c.Param("lesson_slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.ProgressService.MarkLessonComplete(c.Request.Context(), uid, course.ID, lesson.ID); err != nil {
		respondError(c, err)
		return
	}

	pct, err := h.ProgressService.CourseProgress(c.Request.Context(), uid, course.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": pct})
}

func (h *ProgressHandler) CourseProgress(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	course, err := h.Catalog.CourseBySlug(c.Request.Context(), c.Param("course_slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	pct, err := h.ProgressService.CourseProgress(c.Request.Context(), uid, course.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	completed, err := h.ProgressService.CompletedLessons(c.Request.Context(), uid, course.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"progress":  pct,
		"completed": completed,
	})
}
