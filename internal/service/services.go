package service

import (
	"github.com/zuhrulumam/code-builders-hub/internal/service/catalog"
	"github.com/zuhrulumam/code-builders-hub/internal/service/curriculum"
	"github.com/zuhrulumam/code-builders-hub/internal/service/donation"
	"github.com/zuhrulumam/code-builders-hub/internal/service/enrollment"
	"github.com/zuhrulumam/code-builders-hub/internal/service/payment"
	"github.com/zuhrulumam/code-builders-hub/internal/service/progress"
	"github.com/zuhrulumam/code-builders-hub/internal/service/waitlist"
)

type Collection struct {
	*catalog.CatalogService
	*enrollment.EnrollmentService
	*payment.PaymentService
	*progress.ProgressService
	*waitlist.WaitlistService
	*donation.DonationService
	*curriculum.CurriculumService
}
