package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Gateway is the charge authorization seam. The mock below stands in for a
// real provider; the payment_link flow bypasses it entirely.
type Gateway interface {
	Charge(ctx context.Context, userID, courseID uuid.UUID, amount int64) (bool, error)
}

// MockGateway simulates a provider round trip: a fixed processing delay,
// then approve or decline. A decline is an answer, not an error.
type MockGateway struct {
	delay      time.Duration
	declineAll bool
}

func NewMockGateway(delay time.Duration, declineAll bool) *MockGateway {
	return &MockGateway{delay: delay, declineAll: declineAll}
}

func (g *MockGateway) Charge(ctx context.Context, userID, courseID uuid.UUID, amount int64) (bool, error) {
	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	return !g.declineAll, nil
}
