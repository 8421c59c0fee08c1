package repository

import (
	"sync"

	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/dimasp/angkut/services/rides"
	"github.com/google/uuid"
)

// RideRepository is an in-memory ride table guarded by a single mutex.
type RideRepository struct {
	mu    sync.RWMutex
	rides map[uuid.UUID]*models.Ride
}

// NewRideRepository creates a new ride repository
func NewRideRepository() *RideRepository {
	return &RideRepository{
		rides: make(map[uuid.UUID]*models.Ride),
	}
}

// Create stores a new ride in the requested status
func (r *RideRepository) Create(ride *models.Ride) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ride.ID == uuid.Nil {
		ride.ID = uuid.New()
	}
	now := models.Now()
	ride.Status = models.RideStatusRequested
	ride.DriverID = ""
	ride.CreatedAt = now
	ride.UpdatedAt = now

	stored := *ride
	r.rides[ride.ID] = &stored
	return nil
}

// Get returns a snapshot of one ride
func (r *RideRepository) Get(rideID uuid.UUID) (*models.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ride, ok := r.rides[rideID]
	if !ok {
		return nil, rides.ErrRideNotFound
	}
	snapshot := *ride
	return &snapshot, nil
}

// List returns a snapshot of every ride
func (r *RideRepository) List() []*models.Ride {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Ride, 0, len(r.rides))
	for _, ride := range r.rides {
		snapshot := *ride
		out = append(out, &snapshot)
	}
	return out
}

// SetStatus transitions the ride. The driver reference is cleared whenever
// the new status does not imply an assigned driver, so a cancelled or
// completed ride never points at a driver.
func (r *RideRepository) SetStatus(rideID uuid.UUID, status models.RideStatus) (*models.Ride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ride, ok := r.rides[rideID]
	if !ok {
		return nil, rides.ErrRideNotFound
	}
	ride.Status = status
	if !status.HasDriver() {
		ride.DriverID = ""
	}
	ride.UpdatedAt = models.Now()

	snapshot := *ride
	return &snapshot, nil
}

// Assign binds a driver and moves the ride to the assigned status
func (r *RideRepository) Assign(rideID uuid.UUID, driverID string) (*models.Ride, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ride, ok := r.rides[rideID]
	if !ok {
		return nil, rides.ErrRideNotFound
	}
	if !ride.Status.Active() {
		return nil, rides.ErrRideNotActive
	}
	ride.Status = models.RideStatusAssigned
	ride.DriverID = driverID
	ride.UpdatedAt = models.Now()

	snapshot := *ride
	return &snapshot, nil
}
