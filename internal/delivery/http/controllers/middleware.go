package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zuhrulumam/code-builders-hub/internal/app_errors"
	"github.com/zuhrulumam/code-builders-hub/pkg/logger"
)

const (
	UserIDCtx    = "user_id"
	UserIDHeader = "X-User-ID"
)

// IdentityMiddleware picks the caller identity off the X-User-ID header.
// The gateway in front of this service authenticates; we only thread the ID.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(UserIDHeader)
		if raw == "" {
			c.Next()
			return
		}
		userID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "malformed " + UserIDHeader + " header"})
			return
		}
		c.Set(UserIDCtx, userID)
		c.Next()
	}
}

// RequireUser guards routes that make no sense without an identity.
func RequireUser(c *gin.Context) {
	if _, ok := c.Get(UserIDCtx); !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Next()
}

// userID returns the identity set by IdentityMiddleware, or uuid.Nil when
// the request is anonymous.
func userID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDCtx)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func LoggingMiddleware(logger logger.Log) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		path := c.Request.URL.Path
		rawQuery := c.Request.URL.RawQuery
		if rawQuery != "" {
			path = fmt.Sprintf("%s?%s", path, rawQuery)
		}
		status := c.Writer.Status()

		msg := fmt.Sprintf("%s %s", method, path)

		logger.Info(msg,
			"status", status,
			"latency", latency,
			"client_ip", clientIP,
		)

		for _, ginErr := range c.Errors {
			logger.ErrorErr("HTTP request error", ginErr.Err,
				"status", status,
				"method", method,
				"path", path,
			)
		}
	}
}

// respondError maps service errors onto HTTP statuses in one place.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app_errors.ErrCourseNotFound),
		errors.Is(err, app_errors.ErrChapterNotFound),
		errors.Is(err, app_errors.ErrLessonNotFound),
		errors.Is(err, app_errors.ErrEnrollmentNotFound),
		errors.Is(err, app_errors.ErrWaitlistEntryNotFound),
		errors.Is(err, app_errors.ErrNoPendingEnrollment),
		errors.Is(err, app_errors.ErrCoverNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrDuplicateChapter),
		errors.Is(err, app_errors.ErrDuplicateLesson):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrCourseNotPublished),
		errors.Is(err, app_errors.ErrCourseNotFree),
		errors.Is(err, app_errors.ErrCourseFree),
		errors.Is(err, app_errors.ErrInvalidDiscount),
		errors.Is(err, app_errors.ErrAmountMismatch),
		errors.Is(err, app_errors.ErrNegativeAmount),
		errors.Is(err, app_errors.ErrInvalidAmount),
		errors.Is(err, app_errors.ErrInvalidContact),
		errors.Is(err, app_errors.ErrLessonNotInCourse),
		errors.Is(err, app_errors.ErrChaptersDiffer),
		errors.Is(err, app_errors.ErrCoursesDiffer),
		errors.Is(err, app_errors.ErrNotImage),
		errors.Is(err, app_errors.ErrFileSize):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
