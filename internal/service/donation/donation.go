package donation

import (
	"context"

	"github.com/google/uuid"

	"github.com/zuhrulumam/code-builders-hub/internal/app_errors"
	"github.com/zuhrulumam/code-builders-hub/internal/models"
	"github.com/zuhrulumam/code-builders-hub/pkg/logger"
)

// QuickAmounts are the preset buttons on the donation form, in rupiah.
// Arbitrary positive amounts are accepted too.
var QuickAmounts = []int64{10000, 25000, 50000, 100000}

type donationRepo interface {
	Create(ctx context.Context, d models.Donation) (*models.Donation, error)
	ListAll(ctx context.Context) ([]models.Donation, error)
	Total(ctx context.Context) (int64, error)
}

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
}

type DonationService struct {
	log          logger.Log
	donationRepo donationRepo
	courseRepo   courseRepo
}

func NewDonationService(log logger.Log, donationRepo donationRepo, courseRepo courseRepo) *DonationService {
	return &DonationService{log: log, donationRepo: donationRepo, courseRepo: courseRepo}
}

// Donate records a voluntary contribution tied to a course. The amount must
// be positive; the message is optional.
func (s *DonationService) Donate(ctx context.Context, userID, courseID uuid.UUID, amount int64, message string) (*models.Donation, error) {
	if amount <= 0 {
		return nil, app_errors.ErrInvalidAmount
	}
	if _, err := s.courseRepo.CourseByID(ctx, courseID); err != nil {
		return nil, err
	}

	created, err := s.donationRepo.Create(ctx, models.Donation{
		UserID:   userID,
		CourseID: courseID,
		Amount:   amount,
		Message:  message,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("donation recorded",
		"course_id", courseID.String(), "amount", amount)
	return created, nil
}

func (s *DonationService) Donations(ctx context.Context) ([]models.Donation, error) {
	return s.donationRepo.ListAll(ctx)
}

func (s *DonationService) Total(ctx context.Context) (int64, error) {
	return s.donationRepo.Total(ctx)
}
