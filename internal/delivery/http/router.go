package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/zuhrulumam/code-builders-hub/internal/delivery/http/controllers"
	"github.com/zuhrulumam/code-builders-hub/internal/service"
	"github.com/zuhrulumam/code-builders-hub/pkg/logger"
)

func InitRoutes(l logger.Log, u service.Collection) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", controllers.UserIDHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	r.Use(cors.New(config))

	statusController := controllers.NewStatusHandler()
	catalogController := controllers.NewCatalogHandler(l, u.CatalogService, u.EnrollmentService)
	enrollmentController := controllers.NewEnrollmentHandler(l, u.EnrollmentService, u.CatalogService)
	progressController := controllers.NewProgressHandler(l, u.ProgressService, u.CatalogService)
	waitlistController := controllers.NewWaitlistHandler(l, u.WaitlistService, u.CatalogService)
	donationController := controllers.NewDonationHandler(l, u.DonationService, u.CatalogService)
	adminController := controllers.NewAdminHandler(l, u.CurriculumService, u)

	v1 := r.Group("/v1", controllers.LoggingMiddleware(l), controllers.IdentityMiddleware())
	{
		v1.GET("/status", statusController.Status)
		v1.GET("/donations/amounts", donationController.QuickAmounts)

		courses := v1.Group("/courses")
		{
			courses.GET("", catalogController.ListCourses)
			courses.GET("/:course_slug", catalogController.CourseDetail)
			courses.GET("/:course_slug/lessons/:lesson_slug", catalogController.LessonDetail)
			courses.POST("/:course_slug/waitlist", waitlistController.Join)

			user := courses.Group("", controllers.RequireUser)
			{
				user.POST("/:course_slug/join", enrollmentController.JoinFree)
				user.POST("/:course_slug/checkout", enrollmentController.Checkout)
				user.POST("/:course_slug/enroll", enrollmentController.BeginPending)
				user.GET("/:course_slug/enrollment", enrollmentController.GetEnrollment)
				user.GET("/:course_slug/progress", progressController.CourseProgress)
				user.POST("/:course_slug/lessons/:lesson_slug/complete", progressController.CompleteLesson)
			}
		}

		me := v1.Group("/me", controllers.RequireUser)
		{
			me.GET("/courses", enrollmentController.MyCourses)
		}

		v1.POST("/donations", controllers.RequireUser, donationController.Donate)

		admin := v1.Group("/admin")
		{
			admin.GET("/enrollments", adminController.ListEnrollments)
			admin.POST("/enrollments/confirm", adminController.ConfirmPending)
			admin.POST("/enrollments/fail", adminController.FailPending)

			admin.GET("/transactions", adminController.ListTransactions)
			admin.GET("/transactions/summary", adminController.TransactionSummary)

			admin.GET("/donations", adminController.ListDonations)

			admin.GET("/waitlist", adminController.ListWaitlist)
			admin.DELETE("/waitlist/:entry_id", adminController.DeleteWaitlistEntry)

			admin.POST("/courses/:course_id/chapters", adminController.CreateChapter)
			admin.PUT("/courses/:course_id/cover", adminController.UploadCover)
			admin.POST("/chapters/:chapter_id/lessons", adminController.CreateLesson)
			admin.DELETE("/chapters/:chapter_id", adminController.DeleteChapter)
			admin.DELETE("/lessons/:lesson_id", adminController.DeleteLesson)
			admin.PATCH("/chapters/swap", adminController.SwapChapters)
			admin.PATCH("/lessons/swap", adminController.SwapLessons)
		}
	}
	return r
}
