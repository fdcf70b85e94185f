package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zuhrulumam/code-builders-hub/internal/app_errors"
	"github.com/zuhrulumam/code-builders-hub/internal/models"
	"github.com/zuhrulumam/code-builders-hub/internal/service/access"
	"github.com/zuhrulumam/code-builders-hub/pkg/logger"
)

type CatalogService interface {
	Courses(ctx context.Context) ([]models.Course, error)
	CourseDetail(ctx context.Context, slug string) (*models.CourseDetail, error)
	Lesson(ctx context.Context, courseSlug, lessonSlug string) (*models.Course, *models.Lesson, error)
}

type enrollmentGetter interface {
	Get(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error)
}

type CatalogHandler struct {
	CatalogService CatalogService
	Enrollments    enrollmentGetter
	log            logger.Log
}

func NewCatalogHandler(l logger.Log, catalogService CatalogService, enrollments enrollmentGetter) *CatalogHandler {
	return &CatalogHandler{
		CatalogService: catalogService,
		Enrollments:    enrollments,
		log:            l,
	}
}

func (h *CatalogHandler) ListCourses(c *gin.Context) {
	courses, err := h.CatalogService.Courses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

func (h *CatalogHandler) CourseDetail(c *gin.Context) {
	slug := c.Param("course_slug")
	detail, err := h.CatalogService.CourseDetail(c.Request.Context(), slug)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// LessonDetail serves lesson content behind the access policy: free preview
// lessons are open, everything else needs an active enrollment.
func (h *CatalogHandler) LessonDetail(c *gin.Context) {
	courseSlug := c.Param("course_slug")
	lessonSlug := c.Param("lesson_slug")

	course, lesson, err := h.CatalogService.Lesson(c.Request.Context(), courseSlug, lessonSlug)
	if err != nil {
		respondError(c, err)
		return
	}

	var enrollment *models.Enrollment
	if uid, ok := userID(c); ok {
		enrollment, err = h.Enrollments.Get(c.Request.Context(), uid, course.ID)
		if err != nil && !errors.Is(err, app_errors.ErrEnrollmentNotFound) {
			respondError(c, err)
			return
		}
	}

	if !access.CanAccessLesson(course, lesson, enrollment) {
		c.JSON(http.StatusForbidden, gin.H{"error": "lesson is locked"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lesson": lesson})
}
