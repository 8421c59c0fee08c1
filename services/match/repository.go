package match

import (
	"errors"

	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/google/uuid"
)

var (
	// ErrOfferExists is returned when the ride or the driver already has a
	// pending offer
	ErrOfferExists = errors.New("pending offer already exists")
	// ErrOfferNotFound is returned when no pending offer matches
	ErrOfferNotFound = errors.New("no pending offer")
)

// OfferRepo keeps the pending-offer table. At most one offer per ride and
// one per driver; Take is the single resolution point for the accept /
// reject / expiry race - whoever takes the offer wins exclusively.
type OfferRepo interface {
	// Create stores a new pending offer; ErrOfferExists on a per-ride or
	// per-driver conflict
	Create(offer *models.PendingOffer) error
	// GetByRide returns the pending offer for a ride
	GetByRide(rideID uuid.UUID) (*models.PendingOffer, bool)
	// GetByDriver returns the pending offer targeted at a driver
	GetByDriver(driverID string) (*models.PendingOffer, bool)
	// Take atomically removes and returns the ride's pending offer. When
	// driverID is non-empty the offer must be targeted at that driver or
	// the take fails without removing anything.
	Take(rideID uuid.UUID, driverID string) (*models.PendingOffer, bool)
	// Count returns the number of pending offers
	Count() int
}
