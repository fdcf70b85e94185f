package app

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/zuhrulumam/code-builders-hub/internal/app/server"
	"github.com/zuhrulumam/code-builders-hub/internal/config"
	httpdelivery "github.com/zuhrulumam/code-builders-hub/internal/delivery/http"
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
	"github.com/zuhrulumam/code-builders-hub/internal/storage/minio_storage"
	"github.com/zuhrulumam/code-builders-hub/internal/storage/postgres"
	"github.com/zuhrulumam/code-builders-hub/internal/storage/seed"
	"github.com/zuhrulumam/code-builders-hub/pkg/logger"
)

// Store interfaces both backends satisfy. The memory driver is the default;
// postgres is selected via config for durable deployments.
type catalogStore interface {
	CourseBySlug(ctx context.Context, slug string) (*models.Course, error)
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
	ChapterByID(ctx context.Context, id uuid.UUID) (*models.Chapter, error)
	ChaptersByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Chapter, error)
	LessonByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error)
	LessonBySlug(ctx context.Context, courseID uuid.UUID, slug string) (*models.Lesson, error)
	LessonsByChapter(ctx context.Context, chapterID uuid.UUID) ([]models.Lesson, error)
	LessonsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lesson, error)
	CountLessons(ctx context.Context, courseID uuid.UUID) (int, error)
	UpdateCourseCover(ctx context.Context, courseID uuid.UUID, objectKey string) error
	InsertChapter(ctx context.Context, chapter models.Chapter) (*models.Chapter, error)
	MaxChapterOrder(ctx context.Context, courseID uuid.UUID) (int, error)
	MaxLessonOrder(ctx context.Context, chapterID uuid.UUID) (int, error)
	InsertLesson(ctx context.Context, lesson models.Lesson) (*models.Lesson, error)
	DeleteLessonAndReorder(ctx context.Context, lessonID, chapterID uuid.UUID, orderIndex int) error
	DeleteChapterAndReorder(ctx context.Context, chapterID, courseID uuid.UUID, orderIndex int) error
	SwapLessons(ctx context.Context, lessonID1, lessonID2 uuid.UUID) error
	SwapChapters(ctx context.Context, chapterID1, chapterID2 uuid.UUID) error
}

type enrollmentStore interface {
	Create(ctx context.Context, e models.Enrollment) (*models.Enrollment, error)
	ActiveByUserCourse(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error)
	LatestByUserCourse(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error)
	LatestPendingByUserCourse(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Enrollment, error)
	ListAll(ctx context.Context) ([]models.Enrollment, error)
}

type transactionStore interface {
	Create(ctx context.Context, t models.Transaction) (*models.Transaction, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error)
	ListAll(ctx context.Context) ([]models.Transaction, error)
	Summary(ctx context.Context) (models.TransactionSummary, error)
}

type progressStore interface {
	MarkCompleted(ctx context.Context, p models.LessonProgress) error
	IsCompleted(ctx context.Context, userID, lessonID uuid.UUID) (bool, error)
	ListByUserCourse(ctx context.Context, userID, courseID uuid.UUID) ([]models.LessonProgress, error)
	CountByUserCourse(ctx context.Context, userID, courseID uuid.UUID) (int, error)
}

type donationStore interface {
	Create(ctx context.Context, d models.Donation) (*models.Donation, error)
	ListAll(ctx context.Context) ([]models.Donation, error)
	Total(ctx context.Context) (int64, error)
}

type waitlistStore interface {
	Create(ctx context.Context, w models.WaitlistEntry) (*models.WaitlistEntry, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.WaitlistEntry, error)
	ListAll(ctx context.Context) ([]models.WaitlistEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type stores struct {
	catalog      catalogStore
	enrollments  enrollmentStore
	transactions transactionStore
	progress     progressStore
	donations    donationStore
	waitlist     waitlistStore
}

type coverStore interface {
	UploadCover(ctx context.Context, courseID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
	GetCoverURL(ctx context.Context, objectKey string) (string, error)
	DeleteCover(ctx context.Context, objectKey string) error
}

func Run(cfg *config.Config) {
	log := logger.New(cfg.Env)
	log.Info("Starting with Env: " + cfg.Env)

	data, err := seed.Load(cfg.Catalog.SeedPath)
	if err != nil {
		log.FatalErr("error loading catalog seed", err)
	}
	log.Info("catalog seed loaded",
		"courses", len(data.Courses),
		"chapters", len(data.Chapters),
		"lessons", len(data.Lessons),
	)

	var st stores
	switch cfg.Storage.Driver {
	case "postgres":
		pg, err := postgres.NewPostgresPool(cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
		if err != nil {
			log.FatalErr("error connecting to database", err)
		}
		defer pg.Close()

		catalogRepo := postgres.NewCatalogPostgres(pg.Pool)
		if err := catalogRepo.Seed(context.Background(), data); err != nil {
			log.FatalErr("error seeding catalog", err)
		}
		st = stores{
			catalog:      catalogRepo,
			enrollments:  postgres.NewEnrollmentPostgres(pg.Pool),
			transactions: postgres.NewTransactionPostgres(pg.Pool),
			progress:     postgres.NewProgressPostgres(pg.Pool),
			donations:    postgres.NewDonationPostgres(pg.Pool),
			waitlist:     postgres.NewWaitlistPostgres(pg.Pool),
		}
	default:
		st = stores{
			catalog:      memory.NewCatalogMemory(data),
			enrollments:  memory.NewEnrollmentMemory(),
			transactions: memory.NewTransactionMemory(),
			progress:     memory.NewProgressMemory(),
			donations:    memory.NewDonationMemory(),
			waitlist:     memory.NewWaitlistMemory(),
		}
	}

	var covers coverStore
	if cfg.Minio.Enabled {
		ms, err := minio_storage.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
		if err != nil {
			log.FatalErr("error connecting to minio", err)
		}
		covers, err = minio_storage.NewCoverStorage(ms, cfg.Minio.Bucket, cfg.Minio.PresignTTL)
		if err != nil {
			log.FatalErr("error preparing cover bucket", err)
		}
	}

	u := buildServices(log, cfg, st, covers)

	r := httpdelivery.InitRoutes(log, u)

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		log.ErrorErr("server error", err)
	}
	if err := srv.Shutdown(); err != nil {
		log.ErrorErr("shutdown error", err)
	}
}

func buildServices(log logger.Log, cfg *config.Config, st stores, covers coverStore) service.Collection {
	paymentSvc := payment.NewPaymentService(log, st.transactions)
	gateway := payment.NewMockGateway(cfg.Payment.GatewayDelay, cfg.Payment.DeclineAll)

	return service.Collection{
		CatalogService:    catalog.NewCatalogService(log, st.catalog, covers),
		EnrollmentService: enrollment.NewEnrollmentService(log, st.enrollments, st.catalog, st.progress, paymentSvc, gateway),
		PaymentService:    paymentSvc,
		ProgressService:   progress.NewProgressService(log, st.progress, st.catalog, st.enrollments),
		WaitlistService:   waitlist.NewWaitlistService(log, st.waitlist, st.catalog),
		DonationService:   donation.NewDonationService(log, st.donations, st.catalog),
		CurriculumService: curriculum.NewCurriculumService(log, st.catalog, covers),
	}
}
