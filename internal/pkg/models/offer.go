package models

import (
	"time"

	"github.com/google/uuid"
)

// PendingOffer is a time-boxed proposal of a ride to a specific online
// driver. At most one exists per ride and at most one per driver; it is
// created with the ride entering the searching status and destroyed by
// exactly one of acceptance, rejection or expiry.
type PendingOffer struct {
	RideID            uuid.UUID `json:"ride_id"`
	DriverID          string    `json:"driver_id"`
	Pickup            Location  `json:"pickup"`
	Destination       Location  `json:"destination"`
	DistanceM         float64   `json:"distance_m"`
	EstimatedEarnings float64   `json:"estimated_earnings"`
	OfferedAt         time.Time `json:"offered_at"`
	ExpiresAt         time.Time `json:"expires_at"`
}

// RemainingTime returns how long the offer is still open, floored at zero.
func (o *PendingOffer) RemainingTime(now time.Time) time.Duration {
	d := o.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// OfferResolution is the single winner of the accept/reject/expiry race
type OfferResolution string

const (
	OfferAccepted OfferResolution = "accepted"
	OfferRejected OfferResolution = "rejected"
	OfferExpired  OfferResolution = "expired"
)
