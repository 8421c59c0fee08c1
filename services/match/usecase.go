package match

import (
	"context"

	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/google/uuid"
)

// Result is a nearest-driver match
type Result struct {
	Driver     *models.Driver `json:"driver"`
	DistanceM  float64        `json:"distance_m"`
	ETASeconds int            `json:"eta_seconds"`
}

// MatchUC drives a ride's dispatch phase: the offer race against a real
// online driver, then the simulated-pool fallback.
type MatchUC interface {
	// DispatchRide starts the dispatch flow for a freshly requested ride.
	// It returns once the ride is either offered or queued for fallback;
	// the outcome arrives asynchronously through the ride service.
	DispatchRide(ctx context.Context, ride *models.Ride) error
	// AcceptOffer resolves the ride's offer in the driver's favor
	AcceptOffer(driverID string, rideID uuid.UUID) error
	// RejectOffer resolves the offer as rejected and falls back
	RejectOffer(driverID string, rideID uuid.UUID) error
	// GetOfferForDriver returns the driver's pending offer, if any
	GetOfferForDriver(driverID string) (*models.PendingOffer, bool)
	// CancelDispatch withdraws any pending offer and stops its timer
	// (ride cancellation)
	CancelDispatch(rideID uuid.UUID)
}
