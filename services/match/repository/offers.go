package repository

import (
	"sync"

	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/dimasp/angkut/services/match"
	"github.com/google/uuid"
)

// OfferRepository is the in-memory pending-offer table. One mutex covers
// both indexes so create and take are atomic across the per-ride and
// per-driver invariants.
type OfferRepository struct {
	mu       sync.Mutex
	byRide   map[uuid.UUID]*models.PendingOffer
	byDriver map[string]*models.PendingOffer
}

// NewOfferRepository creates an empty offer table
func NewOfferRepository() *OfferRepository {
	return &OfferRepository{
		byRide:   make(map[uuid.UUID]*models.PendingOffer),
		byDriver: make(map[string]*models.PendingOffer),
	}
}

// Create stores a new pending offer
func (r *OfferRepository) Create(offer *models.PendingOffer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byRide[offer.RideID]; ok {
		return match.ErrOfferExists
	}
	if _, ok := r.byDriver[offer.DriverID]; ok {
		return match.ErrOfferExists
	}

	cp := *offer
	r.byRide[offer.RideID] = &cp
	r.byDriver[offer.DriverID] = &cp
	return nil
}

// GetByRide returns the pending offer for a ride
func (r *OfferRepository) GetByRide(rideID uuid.UUID) (*models.PendingOffer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.byRide[rideID]
	if !ok {
		return nil, false
	}
	cp := *o
	return &cp, true
}

// GetByDriver returns the pending offer targeted at a driver
func (r *OfferRepository) GetByDriver(driverID string) (*models.PendingOffer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.byDriver[driverID]
	if !ok {
		return nil, false
	}
	cp := *o
	return &cp, true
}

// Take atomically removes and returns the ride's pending offer. Exactly one
// of the racing resolvers (accept, reject, expiry) observes ok == true.
func (r *OfferRepository) Take(rideID uuid.UUID, driverID string) (*models.PendingOffer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.byRide[rideID]
	if !ok {
		return nil, false
	}
	if driverID != "" && o.DriverID != driverID {
		return nil, false
	}

	delete(r.byRide, rideID)
	delete(r.byDriver, o.DriverID)
	return o, true
}

// Count returns the number of pending offers
func (r *OfferRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byRide)
}
