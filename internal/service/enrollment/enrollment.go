package enrollment

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/zuhrulumam/code-builders-hub/internal/app_errors"
	"github.com/zuhrulumam/code-builders-hub/internal/models"
	"github.com/zuhrulumam/code-builders-hub/internal/service/payment"
	"github.com/zuhrulumam/code-builders-hub/internal/service/progress"
	"github.com/zuhrulumam/code-builders-hub/pkg/logger"
)

type enrollmentRepo interface {
	Create(ctx context.Context, e models.Enrollment) (*models.Enrollment, error)
	ActiveByUserCourse(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error)
	LatestByUserCourse(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error)
	LatestPendingByUserCourse(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Enrollment, error)
	ListAll(ctx context.Context) ([]models.Enrollment, error)
}

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	CountLessons(ctx context.Context, courseID uuid.UUID) (int, error)
}

type progressRepo interface {
	CountByUserCourse(ctx context.Context, userID, courseID uuid.UUID) (int, error)
}

type payments interface {
	Record(ctx context.Context, t models.Transaction) (*models.Transaction, error)
}

// CheckoutResult bundles what the payment page needs after a charge attempt.
type CheckoutResult struct {
	Enrollment  *models.Enrollment  `json:"enrollment"`
	Transaction *models.Transaction `json:"transaction"`
	Approved    bool                `json:"approved"`
}

type EnrollmentService struct {
	log            logger.Log
	enrollmentRepo enrollmentRepo
	courseRepo     courseRepo
	progressRepo   progressRepo
	payments       payments
	gateway        payment.Gateway
}

func NewEnrollmentService(
	log logger.Log,
	enrollmentRepo enrollmentRepo,
	courseRepo courseRepo,
	progressRepo progressRepo,
	payments payments,
	gateway payment.Gateway,
) *EnrollmentService {
	return &EnrollmentService{
		log:            log,
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		progressRepo:   progressRepo,
		payments:       payments,
		gateway:        gateway,
	}
}

// JoinFree enrolls a user in a free published course. Joining twice returns
// the existing enrollment unchanged.
func (s *EnrollmentService) JoinFree(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error) {
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.Status != models.CourseStatusPublished {
		return nil, app_errors.ErrCourseNotPublished
	}
	if !course.IsFree {
		return nil, app_errors.ErrCourseNotFree
	}

	if existing, err := s.enrollmentRepo.ActiveByUserCourse(ctx, userID, courseID); err == nil {
		return existing, nil
	} else if !errors.Is(err, app_errors.ErrEnrollmentNotFound) {
		return nil, err
	}

	created, err := s.enrollmentRepo.Create(ctx, models.Enrollment{
		UserID:        userID,
		CourseID:      courseID,
		PaymentStatus: models.PaymentStatusFree,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("user joined free course",
		"user_id", userID.String(), "course_id", courseID.String())
	return created, nil
}

// Checkout runs the full mock gateway cycle for a paid published course:
// create a pending enrollment, charge, then settle it as paid or failed with
// a matching transaction. A second checkout while access is already granted
// returns the active enrollment and charges nothing.
func (s *EnrollmentService) Checkout(ctx context.Context, userID, courseID uuid.UUID) (*CheckoutResult, error) {
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.Status != models.CourseStatusPublished {
		return nil, app_errors.ErrCourseNotPublished
	}
	if course.IsFree {
		return nil, app_errors.ErrCourseFree
	}

	if existing, err := s.enrollmentRepo.ActiveByUserCourse(ctx, userID, courseID); err == nil {
		return &CheckoutResult{Enrollment: existing, Approved: true}, nil
	} else if !errors.Is(err, app_errors.ErrEnrollmentNotFound) {
		return nil, err
	}

	pending, err := s.enrollmentRepo.Create(ctx, models.Enrollment{
		UserID:        userID,
		CourseID:      courseID,
		PaymentStatus: models.PaymentStatusPending,
	})
	if err != nil {
		return nil, err
	}

	amount := course.FinalPrice()
	approved, err := s.gateway.Charge(ctx, userID, courseID, amount)
	if err != nil {
		// Leave the enrollment pending; the user can retry or an admin
		// can resolve it through the pending endpoints.
		s.log.ErrorErr("checkout: gateway charge failed", err,
			"user_id", userID.String(), "course_id", courseID.String())
		return nil, err
	}

	status := models.TransactionStatusFailed
	enrollStatus := models.PaymentStatusFailed
	if approved {
		status = models.TransactionStatusSuccess
		enrollStatus = models.PaymentStatusPaid
	}

	tx, err := s.payments.Record(ctx, models.Transaction{
		UserID:          userID,
		CourseID:        courseID,
		OriginalPrice:   course.Price,
		DiscountApplied: course.DiscountApplied(),
		Amount:          amount,
		Method:          models.PaymentMethodMock,
		Status:          status,
	})
	if err != nil {
		return nil, err
	}

	if err := s.enrollmentRepo.UpdateStatus(ctx, pending.ID, enrollStatus); err != nil {
		return nil, err
	}
	pending.PaymentStatus = enrollStatus

	s.log.Info("checkout settled",
		"user_id", userID.String(), "course_id", courseID.String(),
		"approved", approved, "amount", amount)

	return &CheckoutResult{Enrollment: pending, Transaction: tx, Approved: approved}, nil
}

// BeginPending opens an enrollment for the external payment link flow. The
// user pays off-platform and an admin confirms or fails the attempt later.
func (s *EnrollmentService) BeginPending(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error) {
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.Status != models.CourseStatusPublished {
		return nil, app_errors.ErrCourseNotPublished
	}
	if course.IsFree {
		return nil, app_errors.ErrCourseFree
	}

	if existing, err := s.enrollmentRepo.ActiveByUserCourse(ctx, userID, courseID); err == nil {
		return existing, nil
	} else if !errors.Is(err, app_errors.ErrEnrollmentNotFound) {
		return nil, err
	}

	if pending, err := s.enrollmentRepo.LatestPendingByUserCourse(ctx, userID, courseID); err == nil {
		return pending, nil
	} else if !errors.Is(err, app_errors.ErrNoPendingEnrollment) {
		return nil, err
	}

	return s.enrollmentRepo.Create(ctx, models.Enrollment{
		UserID:        userID,
		CourseID:      courseID,
		PaymentStatus: models.PaymentStatusPending,
	})
}

func (s *EnrollmentService) ConfirmPending(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error) {
	return s.resolvePending(ctx, userID, courseID, true)
}

func (s *EnrollmentService) FailPending(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error) {
	return s.resolvePending(ctx, userID, courseID, false)
}

func (s *EnrollmentService) resolvePending(ctx context.Context, userID, courseID uuid.UUID, approved bool) (*models.Enrollment, error) {
	pending, err := s.enrollmentRepo.LatestPendingByUserCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	status := models.TransactionStatusFailed
	enrollStatus := models.PaymentStatusFailed
	if approved {
		status = models.TransactionStatusSuccess
		enrollStatus = models.PaymentStatusPaid
	}

	_, err = s.payments.Record(ctx, models.Transaction{
		UserID:          userID,
		CourseID:        courseID,
		OriginalPrice:   course.Price,
		DiscountApplied: course.DiscountApplied(),
		Amount:          course.FinalPrice(),
		Method:          models.PaymentMethodGateway,
		Status:          status,
	})
	if err != nil {
		return nil, err
	}

	if err := s.enrollmentRepo.UpdateStatus(ctx, pending.ID, enrollStatus); err != nil {
		return nil, err
	}
	pending.PaymentStatus = enrollStatus
	return pending, nil
}

// Get returns the enrollment that matters for the user and course: the one
// granting access when it exists, otherwise the latest attempt.
func (s *EnrollmentService) Get(ctx context.Context, userID, courseID uuid.UUID) (*models.Enrollment, error) {
	active, err := s.enrollmentRepo.ActiveByUserCourse(ctx, userID, courseID)
	if err == nil {
		return active, nil
	}
	if !errors.Is(err, app_errors.ErrEnrollmentNotFound) {
		return nil, err
	}
	return s.enrollmentRepo.LatestByUserCourse(ctx, userID, courseID)
}

// ListByUser builds the dashboard view: each enrollment joined with its
// course and the derived progress percentage.
func (s *EnrollmentService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.EnrolledCourse, error) {
	enrollments, err := s.enrollmentRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]models.EnrolledCourse, 0, len(enrollments))
	for _, e := range enrollments {
		course, err := s.courseRepo.CourseByID(ctx, e.CourseID)
		if err != nil {
			s.log.ErrorErr("enrollment list: failed to load course", err,
				"course_id", e.CourseID.String())
			continue
		}

		pct := 0
		if e.PaymentStatus == models.PaymentStatusPaid || e.PaymentStatus == models.PaymentStatusFree {
			completed, err := s.progressRepo.CountByUserCourse(ctx, userID, e.CourseID)
			if err != nil {
				return nil, err
			}
			total, err := s.courseRepo.CountLessons(ctx, e.CourseID)
			if err != nil {
				return nil, err
			}
			pct = progress.Percentage(completed, total)
		}

		out = append(out, models.EnrolledCourse{
			Enrollment: e,
			Course:     *course,
			Progress:   pct,
		})
	}
	return out, nil
}

func (s *EnrollmentService) ListAll(ctx context.Context) ([]models.Enrollment, error) {
	return s.enrollmentRepo.ListAll(ctx)
}
