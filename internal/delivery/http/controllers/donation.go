package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zuhrulumam/code-builders-hub/internal/models"
	"github.com/zuhrulumam/code-builders-hub/internal/service/donation"
	"github.com/zuhrulumam/code-builders-hub/pkg/logger"
)

type DonationService interface {
	Donate(ctx context.Context, userID, courseID uuid.UUID, amount int64, message string) (*models.Donation, error)
}

type DonationHandler struct {
	DonationService DonationService
	Courses         courseResolver
	log             logger.Log
}

func NewDonationHandler(l logger.Log, donationService DonationService, courses courseResolver) *DonationHandler {
	return &DonationHandler{
		DonationService: donationService,
		Courses:         courses,
		log:             l,
	}
}

type donateRequest struct {
	CourseSlug string `json:"course_slug" binding:"required"`
	Amount     int64  `json:"amount" binding:"required"`
	Message    string `json:"message"`
}

func (h *DonationHandler) Donate(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var input donateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	course, err := h.Courses.CourseBySlug(c.Request.Context(), input.CourseSlug)
	if err != nil {
		respondError(c, err)
		return
	}
	d, err := h.DonationService.Donate(c.Request.Context(), uid, course.ID, input.Amount, input.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"donation": d})
}

func (h *DonationHandler) QuickAmounts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"amounts": donation.QuickAmounts})
}
