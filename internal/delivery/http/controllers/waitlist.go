package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zuhrulumam/code-builders-hub/internal/models"
	"github.com/zuhrulumam/code-builders-hub/pkg/logger"
)

type WaitlistService interface {
	Join(ctx context.Context, courseID uuid.UUID, contactType, contactValue string) (*models.WaitlistEntry, error)
}

type WaitlistHandler struct {
	WaitlistService WaitlistService
	Courses         courseResolver
	log             logger.Log
}

func NewWaitlistHandler(l logger.Log, waitlistService WaitlistService, courses courseResolver) *WaitlistHandler {
	return &WaitlistHandler{
		WaitlistService: waitlistService,
		Courses:         courses,
		log:             l,
	}
}

type joinWaitlistRequest struct {
	ContactType  string `json:"contact_type" binding:"required"`
	ContactValue string `json:"contact_value" binding:"required"`
}

func (h *WaitlistHandler) Join(c *gin.Context) {
	var input joinWaitlistRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	course, err := h.Courses.CourseBySlug(c.Request.Context(), c.Param("course_slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	entry, err := h.WaitlistService.Join(c.Request.Context(), course.ID, input.ContactType, input.ContactValue)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}
