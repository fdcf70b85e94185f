package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zuhrulumam/code-builders-hub/internal/models"
	"github.com/zuhrulumam/code-builders-hub/internal/service/enrollment"
	"github.com/zuhrulumam/code-builders-hub/pkg/logger"
)

type EnrollmentService interface {
	JoinFree(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error)
	Checkout(ctx context.Context, userID, courseID uuid.UUID) (*enrollment.CheckoutResult, error)
	BeginPending(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error)
	Get(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.EnrolledCourse, error)
}

type courseResolver interface {
	CourseBySlug(ctx context.Context, slug string) (*models.Course, error)
}

type EnrollmentHandler struct {
	EnrollmentService EnrollmentService
	Courses           courseResolver
	log               logger.Log
}

func NewEnrollmentHandler(l logger.Log, enrollmentService EnrollmentService, courses courseResolver) *EnrollmentHandler {
	return &EnrollmentHandler{
		EnrollmentService: enrollmentService,
		Courses:           courses,
		log:               l,
	}
}

func (h *EnrollmentHandler) resolve(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	uid, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, uuid.Nil, false
	}
	course, err := h.Courses.CourseBySlug(c.Request.Context(), c.Param("course_slug"))
	if err != nil {
		respondError(c, err)
		return uuid.Nil, uuid.Nil, false
	}
	return uid, course.ID, true
}

func (h *EnrollmentHandler) JoinFree(c *gin.Context) {
	uid, courseID, ok := h.resolve(c)
	if !ok {
		return
	}
	e, err := h.EnrollmentService.JoinFree(c.Request.Context(), uid, courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enrollment": e})
}

func (h *EnrollmentHandler) Checkout(c *gin.Context) {
	uid, courseID, ok := h.resolve(c)
	if !ok {
		return
	}
	result, err := h.EnrollmentService.Checkout(c.Request.Context(), uid, courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if !result.Approved {
		status = http.StatusPaymentRequired
	}
	c.JSON(status, result)
}

func (h *EnrollmentHandler) BeginPending(c *gin.Context) {
	uid, courseID, ok := h.resolve(c)
	if !ok {
		return
	}
	e, err := h.EnrollmentService.BeginPending(c.Request.Context(), uid, courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enrollment": e})
}

func (h *EnrollmentHandler) GetEnrollment(c *gin.Context) {
	uid, courseID, ok := h.resolve(c)
	if !ok {
		return
	}
	e, err := h.EnrollmentService.Get(c.Request.Context(), uid, courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enrollment": e})
}

func (h *EnrollmentHandler) MyCourses(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	courses, err := h.EnrollmentService.ListByUser(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}
